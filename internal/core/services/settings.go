package services

import (
	"fmt"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeySearchThreshold  = "retrieval.search_threshold"
	KeySimilarThreshold = "retrieval.similar_threshold"
	KeyPageSize         = "retrieval.page_size"
	KeyFlagsFile        = "review.flags_file"
	KeySessionTTL       = "mcp.session_ttl_minutes"
)

// SettingsService manages retrieval settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current retrieval settings.
// Missing or out-of-range values fall back to defaults.
func (s *SettingsService) Get() (domain.RetrievalSettings, error) {
	defaults := domain.DefaultRetrievalSettings()

	settings := domain.RetrievalSettings{
		SearchThreshold:  s.getThreshold(KeySearchThreshold, defaults.SearchThreshold),
		SimilarThreshold: s.getThreshold(KeySimilarThreshold, defaults.SimilarThreshold),
		PageSize:         s.getInt(KeyPageSize, defaults.PageSize),
	}
	return settings, nil
}

// Save validates and persists retrieval settings.
func (s *SettingsService) Save(settings domain.RetrievalSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(KeySearchThreshold, settings.SearchThreshold); err != nil {
		return fmt.Errorf("save search threshold: %w", err)
	}
	if err := s.configStore.Set(KeySimilarThreshold, settings.SimilarThreshold); err != nil {
		return fmt.Errorf("save similar threshold: %w", err)
	}
	if err := s.configStore.Set(KeyPageSize, settings.PageSize); err != nil {
		return fmt.Errorf("save page size: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.RetrievalSettings {
	return domain.DefaultRetrievalSettings()
}

// FlagsFile returns the configured flag report path, or "" for the default.
func (s *SettingsService) FlagsFile() string {
	return s.configStore.GetString(KeyFlagsFile)
}

// SessionTTLMinutes returns the configured MCP session lifetime, or 0 for the default.
func (s *SettingsService) SessionTTLMinutes() int {
	return s.configStore.GetInt(KeySessionTTL)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getThreshold(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(key)
	if val < 0 || val >= 1 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}
