// Package ask provides the question answering view for the TUI.
// A round walks through category choice, question entry and a paged
// results list where additional answers can be upvoted or flagged.
package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
)

// MsgNoMatches is shown when a question matches nothing above the threshold.
const MsgNoMatches = "No matching questions found. Consider adding this as new data if it's a common query."

// MsgNoData is shown when the corpus is empty.
const MsgNoData = "No Q&A data yet. Add records or run 'repdesk seed' first."

// allCategories is the first entry of the category picker.
const allCategories = "All categories"

// Phase is the step of the round the view is showing.
type Phase int

const (
	PhaseCategory Phase = iota
	PhaseQuestion
	PhaseResults
	PhaseFlagReason
)

// action is a single entry of the answer action menu.
type action struct {
	label    string
	answerID int64
	flag     bool
}

// ActionMenu lists vote and flag actions for the selected result.
type ActionMenu struct {
	actions  []action
	selected int
}

// View represents the ask view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	reason    *input.Field
	list      *list.ResultList
	statusbar *status.Bar

	session driving.RetrievalSession
	catalog driving.CatalogService
	index   driving.IndexService
	ctx     context.Context

	phase      Phase
	categories []string
	cursor     int
	notice     string
	actionMenu *ActionMenu
	flagTarget int64

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new ask view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	session driving.RetrievalSession,
	catalog driving.CatalogService,
	index driving.IndexService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	reason := input.NewField(s, "Reason: ", "Why is this answer wrong?")
	reason.Blur()

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQuestionInput(s),
		reason:     reason,
		list:       list.NewResultList(s),
		statusbar:  status.NewBar(s, km),
		session:    session,
		catalog:    catalog,
		index:      index,
		ctx:        context.Background(),
		phase:      PhaseCategory,
		categories: []string{allCategories},
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts a round and loads the category picker.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadCategories())
}

// loadCategories returns a command that reads the category partition.
func (v *View) loadCategories() tea.Cmd {
	return func() tea.Msg {
		if v.catalog == nil {
			return messages.CategoriesLoaded{}
		}
		partition, err := v.catalog.Partition(v.ctx)
		if err != nil {
			return messages.CategoriesLoaded{Err: err}
		}
		return messages.CategoriesLoaded{Names: partition.Names()}
	}
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CategoriesLoaded:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.categories = append([]string{allCategories}, msg.Names...)
		if v.cursor >= len(v.categories) {
			v.cursor = 0
		}
		return v, nil

	case messages.PageLoaded:
		v.handlePageLoaded(msg)
		return v, nil

	case messages.AnswerUpvoted:
		if msg.Err != nil {
			v.statusbar.SetMessage("")
			v.notice = declined("upvote", msg.AnswerID, msg.Err)
			return v, nil
		}
		v.list.SetVotes(msg.AnswerID, msg.Votes)
		v.notice = ""
		v.statusbar.SetMessage(fmt.Sprintf("Upvoted answer %d (+%d)", msg.AnswerID, msg.Votes))
		return v, nil

	case messages.AnswerFlagged:
		if msg.Err != nil {
			v.notice = declined("flag", v.flagTarget, msg.Err)
			return v, nil
		}
		v.notice = ""
		v.statusbar.SetMessage(fmt.Sprintf("Flagged answer %d for review", msg.Report.AnswerID))
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.phase == PhaseQuestion {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg dispatches key presses by phase.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.actionMenu != nil {
		return v.handleActionMenuKey(msg)
	}

	switch v.phase {
	case PhaseCategory:
		return v.handleCategoryKey(msg)
	case PhaseQuestion:
		return v.handleQuestionKey(msg)
	case PhaseResults:
		return v.handleResultsKey(msg)
	case PhaseFlagReason:
		return v.handleReasonKey(msg)
	}
	return v, nil
}

func (v *View) handleCategoryKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, v.leave()
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.categories)-1 {
			v.cursor++
		}
	case "enter":
		name := ""
		if v.cursor > 0 {
			name = v.categories[v.cursor]
		}
		if err := v.startRound(name); err != nil {
			v.setError(err)
			return v, nil
		}
		v.err = nil
		v.phase = PhaseQuestion
		v.input.SetValue("")
		return v, v.input.Focus()
	}
	return v, nil
}

// startRound moves the session to AwaitingQuery with the chosen category.
func (v *View) startRound(category string) error {
	if v.session == nil {
		return ErrNoSession
	}
	if v.session.State() != domain.SessionAwaitingCategory {
		if err := v.session.Begin(); err != nil {
			return err
		}
	}
	return v.session.ChooseCategory(v.ctx, category)
}

func (v *View) handleQuestionKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return v, v.leave()
	case tea.KeyEnter:
		text := v.input.Value()
		if strings.TrimSpace(text) == "" {
			// A blank question ends the round.
			return v, v.leave()
		}
		v.statusbar.SetState(status.StateRanking)
		v.statusbar.SetMessage("")
		v.input.Blur()
		return v, v.submit(text)
	default:
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
}

func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case key == "esc":
		return v, v.leave()
	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(key, v.keymap.NewSearch):
		v.phase = PhaseCategory
		v.notice = ""
		v.statusbar.Clear()
		if v.session != nil {
			if err := v.session.Begin(); err != nil {
				v.setError(err)
			}
		}
	case keymap.Matches(key, v.keymap.NextPage):
		return v, v.nextPage()
	case keymap.Matches(key, v.keymap.Upvote):
		v.openActionMenu(false)
	case keymap.Matches(key, v.keymap.Flag):
		v.openActionMenu(true)
	case key == "enter":
		v.openActionMenu(false)
		if v.actionMenu != nil {
			v.addFlagActions()
		}
	}
	return v, nil
}

func (v *View) handleReasonKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.phase = PhaseResults
		v.reason.Blur()
		return v, nil
	case tea.KeyEnter:
		reason := strings.TrimSpace(v.reason.Value())
		v.phase = PhaseResults
		v.reason.Blur()
		return v, v.flag(v.flagTarget, reason)
	default:
		var cmd tea.Cmd
		v.reason, cmd = v.reason.Update(msg)
		return v, cmd
	}
}

// openActionMenu lists the selected result's additional answers.
// Primary answers are never offered.
func (v *View) openActionMenu(flag bool) {
	result := v.list.SelectedResult()
	if result == nil {
		return
	}
	if len(result.AdditionalAnswers) == 0 {
		v.notice = "This question has no additional answers to vote on or flag."
		return
	}

	verb := "Upvote"
	if flag {
		verb = "Flag"
	}
	menu := &ActionMenu{}
	for _, a := range result.AdditionalAnswers {
		menu.actions = append(menu.actions, action{
			label:    fmt.Sprintf("%s #%d %s", verb, a.ID, a.Text),
			answerID: a.ID,
			flag:     flag,
		})
	}
	menu.actions = append(menu.actions, action{label: "Cancel"})
	v.actionMenu = menu
	v.notice = ""
}

// addFlagActions appends flag entries before Cancel.
func (v *View) addFlagActions() {
	result := v.list.SelectedResult()
	cancel := v.actionMenu.actions[len(v.actionMenu.actions)-1]
	v.actionMenu.actions = v.actionMenu.actions[:len(v.actionMenu.actions)-1]
	for _, a := range result.AdditionalAnswers {
		v.actionMenu.actions = append(v.actionMenu.actions, action{
			label:    fmt.Sprintf("Flag #%d %s", a.ID, a.Text),
			answerID: a.ID,
			flag:     true,
		})
	}
	v.actionMenu.actions = append(v.actionMenu.actions, cancel)
}

// handleActionMenuKey processes keyboard input when the action menu is open.
func (v *View) handleActionMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.actionMenu.selected > 0 {
			v.actionMenu.selected--
		}
	case "down", "j":
		if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
			v.actionMenu.selected++
		}
	case "esc":
		v.actionMenu = nil
	case "enter":
		chosen := v.actionMenu.actions[v.actionMenu.selected]
		v.actionMenu = nil
		return v.executeAction(chosen)
	}
	return v, nil
}

// executeAction performs the chosen action.
func (v *View) executeAction(a action) (*View, tea.Cmd) {
	switch {
	case a.answerID == 0:
		return v, nil
	case a.flag:
		v.flagTarget = a.answerID
		v.phase = PhaseFlagReason
		v.reason.SetValue("")
		return v, v.reason.Focus()
	default:
		return v, v.upvote(a.answerID)
	}
}

// submit runs the question through the session.
func (v *View) submit(text string) tea.Cmd {
	return func() tea.Msg {
		page, err := v.session.Submit(v.ctx, text)
		if err != nil {
			return messages.PageLoaded{Err: err}
		}
		noData := page.Total == 0 && v.index != nil && v.index.Stats().Empty
		return messages.PageLoaded{Page: page, NoData: noData}
	}
}

// nextPage advances the retained ranking.
func (v *View) nextPage() tea.Cmd {
	return func() tea.Msg {
		page, err := v.session.Next()
		return messages.PageLoaded{Page: page, Err: err}
	}
}

func (v *View) upvote(answerID int64) tea.Cmd {
	return func() tea.Msg {
		votes, err := v.session.Upvote(v.ctx, answerID)
		return messages.AnswerUpvoted{AnswerID: answerID, Votes: votes, Err: err}
	}
}

func (v *View) flag(answerID int64, reason string) tea.Cmd {
	return func() tea.Msg {
		report, err := v.session.Flag(v.ctx, answerID, reason)
		return messages.AnswerFlagged{Report: report, Err: err}
	}
}

// leave resets the session and returns to the menu.
func (v *View) leave() tea.Cmd {
	if v.session != nil {
		v.session.Reset()
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: messages.ViewMenu}
	}
}

// handlePageLoaded shows a page of results.
func (v *View) handlePageLoaded(msg messages.PageLoaded) {
	if errors.Is(msg.Err, domain.ErrNoResults) {
		v.notice = "No more results."
		return
	}
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetPage(msg.Page)
	v.phase = PhaseResults
	v.statusbar.SetMessage("")
	v.statusbar.SetPage(msg.Page.Offset, len(msg.Page.Results), msg.Page.Total)

	switch {
	case msg.NoData:
		v.notice = MsgNoData
		v.statusbar.SetState(status.StateNoData)
	case msg.Page.Total == 0:
		v.notice = MsgNoMatches
		v.statusbar.SetState(status.StateResults)
	default:
		v.notice = ""
		v.statusbar.SetState(status.StateResults)
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// declined turns a rejected vote or flag into a rep-facing notice.
func declined(verb string, answerID int64, err error) string {
	switch {
	case errors.Is(err, domain.ErrPrimaryAnswer):
		return fmt.Sprintf("Answer %d is a primary answer and cannot be %s.", answerID, pastTense(verb))
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Sprintf("Answer %d is not in the current results.", answerID)
	default:
		return fmt.Sprintf("Could not %s answer %d: %v", verb, answerID, err)
	}
}

func pastTense(verb string) string {
	if verb == "flag" {
		return "flagged"
	}
	return verb + "d"
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render("Ask a Question"), "")

	switch v.phase {
	case PhaseCategory:
		sections = append(sections, v.renderCategories())
	case PhaseQuestion:
		sections = append(sections, v.renderFilter(), v.input.View())
	case PhaseResults, PhaseFlagReason:
		sections = append(sections, v.renderFilter(), v.styles.Muted.Render("Q: "+v.input.Value()), "")
		if v.notice != "" {
			sections = append(sections, v.styles.Warning.Render(v.notice), "")
		}
		if v.list.Total() > 0 {
			sections = append(sections, v.list.View())
		}
		if v.phase == PhaseFlagReason {
			sections = append(sections, "", v.reason.View())
		}
	}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	if v.actionMenu != nil {
		sections = append(sections, "", v.renderActionMenu())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderCategories() string {
	lines := []string{v.styles.Subtitle.Render("Choose a category"), ""}
	for i, name := range v.categories {
		if i == v.cursor {
			lines = append(lines, v.styles.Selected.Render("> "+name))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+name))
		}
	}
	lines = append(lines, "", v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back"))
	return strings.Join(lines, "\n")
}

func (v *View) renderFilter() string {
	category := allCategories
	if v.session != nil && v.session.Category() != "" {
		category = v.session.Category()
	}
	return v.styles.Muted.Render("Category: " + category)
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	lines := make([]string, 0, len(v.actionMenu.actions))
	for i, a := range v.actionMenu.actions {
		if i == v.actionMenu.selected {
			lines = append(lines, v.styles.Selected.Render("> "+a.label))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+a.label))
		}
	}
	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.reason.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Reset returns the view to the category picker and starts a new round.
func (v *View) Reset() {
	v.phase = PhaseCategory
	v.cursor = 0
	v.notice = ""
	v.actionMenu = nil
	v.err = nil
	v.input.SetValue("")
	v.list.SetPage(domain.ResultPage{})
	v.statusbar.Clear()
	if v.session != nil {
		v.session.Reset()
		if err := v.session.Begin(); err != nil {
			v.setError(err)
		}
	}
}

// Phase returns the current phase.
func (v *View) Phase() Phase {
	return v.phase
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the question text.
func (v *View) Query() string {
	return v.input.Value()
}

// Results returns the results on screen.
func (v *View) Results() []domain.RankedResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Notice returns the informational message on screen, if any.
func (v *View) Notice() string {
	return v.notice
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the question input has focus.
func (v *View) InputFocused() bool {
	return v.phase == PhaseQuestion
}
