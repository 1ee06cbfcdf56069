package driven

// TemplateStore provides access to customer-email text templates.
// Templates use Go fmt placeholders.
type TemplateStore interface {
	// Load returns the template for the given name.
	Load(name string) (string, error)
}

// Template names.
const (
	// TemplateAlternative recommends a substitute product.
	// Placeholders: original product name, alternative product name.
	TemplateAlternative = "alternative_email"

	// TemplateBoughtTogether recommends a companion product.
	// Placeholders: original product name, companion product name.
	TemplateBoughtTogether = "bought_together_email"
)
