// Package settings provides the retrieval settings view for the TUI.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
)

// Field indexes.
const (
	fieldSearchThreshold = iota
	fieldSimilarThreshold
	fieldPageSize
	fieldCount
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

var fieldLabels = [fieldCount]string{
	"Search threshold",
	"Similar threshold",
	"Page size",
}

var fieldHints = [fieldCount]string{
	"Minimum similarity for lookup results, 0 to 1",
	"Minimum similarity for the add-record duplicate warning",
	"Results shown per page",
}

// View is the retrieval settings view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings domain.RetrievalSettings
	loaded   bool
	saved    bool
	err      error

	inputs     [fieldCount]textinput.Model
	focusIndex int
	editing    bool

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles:          s,
		settingsService: settingsService,
	}
	for i := range v.inputs {
		ti := textinput.New()
		ti.CharLimit = 8
		ti.Width = 10
		v.inputs[i] = ti
	}
	return v
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// saveSettings returns a command that persists settings.
func (v *View) saveSettings(settings domain.RetrievalSettings) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: v.settingsService.Save(settings)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.settings = msg.Settings
		v.loaded = true
		v.fillInputs()
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.saved = false
			return v, nil
		}
		v.err = nil
		v.saved = true
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// fillInputs copies the loaded settings into the inputs.
func (v *View) fillInputs() {
	v.inputs[fieldSearchThreshold].SetValue(strconv.FormatFloat(v.settings.SearchThreshold, 'g', -1, 64))
	v.inputs[fieldSimilarThreshold].SetValue(strconv.FormatFloat(v.settings.SimilarThreshold, 'g', -1, 64))
	v.inputs[fieldPageSize].SetValue(strconv.Itoa(v.settings.PageSize))
}

// handleKeyMsg handles key presses.
//
//nolint:gocritic // evalOrder: bubbletea pattern returns cmd from method call
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.editing {
		switch msg.String() {
		case "esc":
			v.editing = false
			v.inputs[v.focusIndex].Blur()
			v.fillInputs()
			return v, nil
		case keyEnter:
			next, err := v.parseInputs()
			if err != nil {
				v.err = err
				return v, nil
			}
			v.editing = false
			v.inputs[v.focusIndex].Blur()
			return v, v.saveSettings(next)
		default:
			var cmd tea.Cmd
			v.inputs[v.focusIndex], cmd = v.inputs[v.focusIndex].Update(msg)
			return v, cmd
		}
	}

	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k", "shift+tab":
		if v.focusIndex > 0 {
			v.focusIndex--
		}
	case keyDown, "j", keyTab:
		if v.focusIndex < fieldCount-1 {
			v.focusIndex++
		}
	case keyEnter, "e":
		if !v.loaded {
			return v, nil
		}
		v.editing = true
		v.saved = false
		return v, v.inputs[v.focusIndex].Focus()
	case "r":
		if v.settingsService == nil {
			return v, nil
		}
		v.saved = false
		return v, v.saveSettings(v.settingsService.GetDefaults())
	}
	return v, nil
}

// parseInputs reads all inputs into settings and validates them.
func (v *View) parseInputs() (domain.RetrievalSettings, error) {
	next := v.settings

	search, err := strconv.ParseFloat(strings.TrimSpace(v.inputs[fieldSearchThreshold].Value()), 64)
	if err != nil {
		return next, fmt.Errorf("search threshold must be a number")
	}
	similar, err := strconv.ParseFloat(strings.TrimSpace(v.inputs[fieldSimilarThreshold].Value()), 64)
	if err != nil {
		return next, fmt.Errorf("similar threshold must be a number")
	}
	pageSize, err := strconv.Atoi(strings.TrimSpace(v.inputs[fieldPageSize].Value()))
	if err != nil {
		return next, fmt.Errorf("page size must be a whole number")
	}

	next.SearchThreshold = search
	next.SimilarThreshold = similar
	next.PageSize = pageSize
	if err := next.Validate(); err != nil {
		return v.settings, err
	}
	return next, nil
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if !v.loaded {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	for i := 0; i < fieldCount; i++ {
		cursor := "  "
		label := v.styles.Normal
		if i == v.focusIndex {
			cursor = "> "
			label = v.styles.Subtitle
		}
		b.WriteString(cursor)
		b.WriteString(label.Render(fmt.Sprintf("%-18s", fieldLabels[i]+":")))
		if v.editing && i == v.focusIndex {
			b.WriteString(v.inputs[i].View())
		} else {
			b.WriteString(v.styles.Normal.Render(v.inputs[i].Value()))
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("    " + fieldHints[i]))
		b.WriteString("\n")
	}

	if v.saved {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render("Settings saved."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[j/k] navigate  [enter] edit  [r] reset to defaults  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.focusIndex = 0
	v.editing = false
	v.saved = false
	v.err = nil
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
}

// Settings returns the loaded settings.
func (v *View) Settings() domain.RetrievalSettings {
	return v.settings
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
