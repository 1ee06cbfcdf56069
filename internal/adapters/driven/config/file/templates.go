package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// TemplateStore loads customer-email templates from user-editable files.
// Files are created lazily on first Load, never in the constructor.
type TemplateStore struct {
	mu       sync.RWMutex
	dir      string
	cache    map[string]string
	initOnce sync.Once
	initErr  error
}

var defaultTemplates = map[string]string{
	driven.TemplateAlternative:    "A great alternative to the %s is the product %s.",
	driven.TemplateBoughtTogether: "Based on your interest in %s, many customers also purchase %s for optimal performance.",
}

// NewTemplateStore creates a file-based template store.
// If dir is empty, defaults to ~/.repdesk/templates/.
func NewTemplateStore(dir string) (*TemplateStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".repdesk", "templates")
	}

	return &TemplateStore{
		dir:   dir,
		cache: make(map[string]string),
	}, nil
}

// Load returns the template for the given name.
// Falls back to the built-in default when the file is missing.
func (s *TemplateStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if tmpl, ok := defaultTemplates[name]; ok {
			return tmpl, nil
		}
		return "", fmt.Errorf("template store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if tmpl, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return tmpl, nil
	}
	s.mu.RUnlock()

	tmpl, err := s.loadFromFile(name)
	if err != nil {
		if def, ok := defaultTemplates[name]; ok {
			return def, nil
		}
		return "", fmt.Errorf("load template %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		tmpl = cached
	} else {
		s.cache[name] = tmpl
	}
	s.mu.Unlock()

	return tmpl, nil
}

// Reload clears the cache, forcing fresh loads from disk.
func (s *TemplateStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the template directory path.
func (s *TemplateStore) Dir() string {
	return s.dir
}

func (s *TemplateStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.initErr = fmt.Errorf("create template directory: %w", err)
		return
	}

	for name, content := range defaultTemplates {
		path := filepath.Join(s.dir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content+"\n"), 0600); err != nil {
				s.initErr = fmt.Errorf("create default template %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *TemplateStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+".txt"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *TemplateStore) createReadme() error {
	path := filepath.Join(s.dir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# Repdesk Email Templates

Sentences reps paste into customer replies when suggesting products.

## Files

- ` + "`alternative_email.txt`" + ` - Suggests a substitute product
- ` + "`bought_together_email.txt`" + ` - Suggests a companion product

Each template takes two ` + "`%s`" + ` placeholders: the product the customer
asked about, then the suggested product. A template with any other number
of placeholders is ignored and the built-in wording is used.
`
	return os.WriteFile(path, []byte(content), 0600)
}
