package driving

import "github.com/custodia-labs/repdesk/internal/core/domain"

// SettingsService manages retrieval settings.
type SettingsService interface {
	// Get retrieves the current retrieval settings.
	Get() (domain.RetrievalSettings, error)

	// Save validates and persists retrieval settings.
	Save(settings domain.RetrievalSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.RetrievalSettings
}
