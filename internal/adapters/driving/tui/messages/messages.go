// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewAsk is the category, question and results view.
	ViewAsk
	// ViewProducts is the product lookup view.
	ViewProducts
	// ViewProductDetail shows a single product.
	ViewProductDetail
	// ViewAddQA is the add Q&A form.
	ViewAddQA
	// ViewSettings is the retrieval settings view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewAsk:
		return "ask"
	case ViewProducts:
		return "products"
	case ViewProductDetail:
		return "product_detail"
	case ViewAddQA:
		return "add_qa"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// CategoriesLoaded carries the category names a query can be filtered by.
type CategoriesLoaded struct {
	Names []string
	Err   error
}

// PageLoaded carries a page of the retained ranking.
// NoData is set when the corpus is empty.
type PageLoaded struct {
	Page   domain.ResultPage
	NoData bool
	Err    error
}

// AnswerUpvoted signals an upvote finished.
type AnswerUpvoted struct {
	AnswerID int64
	Votes    int
	Err      error
}

// AnswerFlagged signals a flag was handed to the reviewer.
type AnswerFlagged struct {
	Report *domain.FlagReport
	Err    error
}

// ProductsLoaded carries product lookup results.
type ProductsLoaded struct {
	Query    string
	Products []domain.Product
	Err      error
}

// ProductSelected signals a product was chosen for the detail view.
type ProductSelected struct {
	Product domain.Product
}

// SuggestionsLoaded carries customer-email suggestions for a product.
type SuggestionsLoaded struct {
	SKU            string
	Alternative    string
	BoughtTogether string
	Err            error
}

// SimilarLoaded carries near-duplicate questions found before adding a record.
type SimilarLoaded struct {
	Results []domain.RankedResult
	Err     error
}

// RecordAdded signals a Q&A record was stored.
type RecordAdded struct {
	QuestionID int64
	Err        error
}

// SettingsLoaded carries the retrieval settings.
type SettingsLoaded struct {
	Settings domain.RetrievalSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
