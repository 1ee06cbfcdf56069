package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/views/addqa"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/views/ask"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/views/productdetail"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/views/products"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView          *menu.View
	askView           *ask.View
	productsView      *products.View
	productDetailView *productdetail.View
	addQAView         *addqa.View
	settingsView      *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:             ports,
		ctx:               context.Background(),
		styles:            s,
		menuView:          menu.NewView(s),
		askView:           ask.NewView(s, keymap.DefaultKeyMap(), ports.Session, ports.Catalog, ports.Index),
		productsView:      products.NewView(s, ports.Catalog),
		productDetailView: productdetail.NewView(s, ports.Catalog),
		addQAView:         addqa.NewView(s, ports.Ingest),
		settingsView:      settings.NewView(s, ports.Settings),
		currentView:       messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.askView.WithContext(ctx)
	a.productsView.WithContext(ctx)
	a.productDetailView.WithContext(ctx)
	a.addQAView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("repdesk - Support Q&A"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(a.currentView, msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ProductSelected:
		a.currentView = messages.ViewProductDetail
		return a, a.productDetailView.SetProduct(msg.Product)

	case messages.CategoriesLoaded, messages.PageLoaded,
		messages.AnswerUpvoted, messages.AnswerFlagged:
		return a, a.forward(messages.ViewAsk, msg)

	case messages.ProductsLoaded:
		return a, a.forward(messages.ViewProducts, msg)

	case messages.SuggestionsLoaded:
		return a, a.forward(messages.ViewProductDetail, msg)

	case messages.SimilarLoaded, messages.RecordAdded:
		return a, a.forward(messages.ViewAddQA, msg)

	case messages.SettingsLoaded, messages.SettingsSaved:
		return a, a.forward(messages.ViewSettings, msg)

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(a.currentView, msg)

	case messages.Quit:
		return a, tea.Quit
	}

	// Cursor blink and other internal messages go to the active view.
	return a, a.forward(a.currentView, msg)
}

// switchTo activates a view, resetting and initialising it as needed.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewAsk:
		a.askView.Reset()
		return a.askView.Init()
	case messages.ViewProducts:
		// Returning from a product keeps the lookup results on screen.
		if len(a.productsView.Products()) == 0 {
			a.productsView.Reset()
		}
		return a.productsView.Init()
	case messages.ViewAddQA:
		a.addQAView.Reset()
		return a.addQAView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewProductDetail, messages.ViewHelp:
	}
	return nil
}

// forward routes msg to the given view.
func (a *App) forward(view messages.ViewType, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch view {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewAsk:
		a.askView, cmd = a.askView.Update(msg)
		a.err = a.askView.Err()
	case messages.ViewProducts:
		a.productsView, cmd = a.productsView.Update(msg)
	case messages.ViewProductDetail:
		a.productDetailView, cmd = a.productDetailView.Update(msg)
	case messages.ViewAddQA:
		a.addQAView, cmd = a.addQAView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewAsk:
		return a.askView.View()
	case messages.ViewProducts:
		return a.productsView.View()
	case messages.ViewProductDetail:
		return a.productDetailView.View()
	case messages.ViewAddQA:
		return a.addQAView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  1-6         Jump to option
  enter       Select option
  q           Quit

Ask a question:
  enter       Choose category, then submit question
  (blank)     Submit an empty question to leave

Results:
  m, pgdown   More results
  n           New question
  u           Upvote an additional answer
  f           Flag an additional answer for review
  enter       Choose an answer action

Product lookup:
  enter       Look up, then open details
  /           New lookup

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Query returns the last question submitted from the ask view.
func (a *App) Query() string {
	return a.askView.Query()
}

// Results returns the results on screen in the ask view.
func (a *App) Results() []domain.RankedResult {
	return a.askView.Results()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.askView.SetDimensions(width, height)
	a.productsView.SetDimensions(width, height)
	a.productDetailView.SetDimensions(width, height)
	a.addQAView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
