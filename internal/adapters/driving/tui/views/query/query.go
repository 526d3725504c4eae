// Package query provides the main view of the TUI: a query input, the
// selected passages and a reader for the passage or generated answer.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/grokpedia/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/grokpedia/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/grokpedia/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/grokpedia/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/grokpedia/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/grokpedia/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driving"
)

// DefaultTopK is the number of passages requested per query.
const DefaultTopK = 5

// Services are the core services the view calls.
type Services struct {
	Context driving.ContextService
	Answer  driving.AnswerService
	Index   driving.IndexService
}

// View represents the query view with input, passage list, reader and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	reader    viewport.Model
	statusbar *status.Bar

	services Services
	ctx      context.Context
	topK     int

	mode       messages.Mode
	answer     *domain.Answer
	indexState *domain.IndexStatus

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing, false = navigating passages
}

// NewView creates a new query view.
func NewView(s *styles.Styles, km *keymap.KeyMap, services Services) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		list:       list.NewResultList(s),
		reader:     viewport.New(80, 8),
		statusbar:  status.NewBar(s, km),
		services:   services,
		ctx:        context.Background(),
		topK:       DefaultTopK,
		mode:       messages.ModeSearch,
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context passed to service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithTopK sets the number of passages requested per query.
func (v *View) WithTopK(topK int) *View {
	if topK > 0 {
		v.topK = topK
	}
	return v
}

// Init initialises the view and loads the index status.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadStatus())
}

// Update handles messages for the query view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		return v, v.handleSearchCompleted(msg)

	case messages.AnswerCompleted:
		return v, v.handleAnswerCompleted(msg)

	case messages.StatusLoaded:
		st := msg.Status
		v.indexState = &st
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	cmds = append(cmds, cmd)
	v.input, cmd = v.input.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Mode):
		v.toggleMode()
		return v, nil

	case key.Matches(msg, v.keymap.Status):
		return v, v.loadStatus()

	case key.Matches(msg, v.keymap.PageUp):
		v.reader.HalfViewUp()
		return v, nil

	case key.Matches(msg, v.keymap.PageDown):
		v.reader.HalfViewDown()
		return v, nil

	case key.Matches(msg, v.keymap.Back):
		v.focusInput = true
		return v, v.input.Focus()

	case key.Matches(msg, v.keymap.Submit) && v.focusInput:
		return v, v.submit()
	}

	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case key.Matches(msg, v.keymap.Up):
		v.list.MoveUp()
		v.refreshReader()
	case key.Matches(msg, v.keymap.Down):
		v.list.MoveDown()
		v.refreshReader()
	}
	return v, nil
}

func (v *View) toggleMode() {
	v.mode = v.mode.Next()
	if v.mode == messages.ModeAsk {
		v.input.SetLabel("Ask", "Ask a question about your documents...")
	} else {
		v.input.SetLabel("Search", "Search your documents...")
	}
	v.input.SetWidth(v.width)
	v.refreshReader()
}

// submit runs the current query in the current mode.
func (v *View) submit() tea.Cmd {
	query := strings.TrimSpace(v.input.Value())
	if query == "" {
		return nil
	}

	v.err = nil
	v.statusbar.SetMessage("")
	v.focusInput = false
	v.input.Blur()

	if v.mode == messages.ModeAsk {
		return tea.Batch(v.statusbar.SetState(status.StateAsking), v.ask(query))
	}
	return tea.Batch(v.statusbar.SetState(status.StateSearching), v.search(query))
}

func (v *View) search(query string) tea.Cmd {
	svc, ctx, topK := v.services.Context, v.ctx, v.topK
	return func() tea.Msg {
		if svc == nil {
			return messages.SearchCompleted{Query: query, Err: ErrNoContextService}
		}
		assembled, err := svc.Assemble(ctx, query, topK)
		return messages.SearchCompleted{Query: query, Context: assembled, Err: err}
	}
}

func (v *View) ask(question string) tea.Cmd {
	svc, ctx, topK := v.services.Answer, v.ctx, v.topK
	return func() tea.Msg {
		if svc == nil {
			return messages.AnswerCompleted{Question: question, Err: domain.ErrLLMUnavailable}
		}
		answer, err := svc.Ask(ctx, question, topK)
		return messages.AnswerCompleted{Question: question, Answer: answer, Err: err}
	}
}

func (v *View) loadStatus() tea.Cmd {
	svc, ctx := v.services.Index, v.ctx
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		return messages.StatusLoaded{Status: svc.Status(ctx)}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) tea.Cmd {
	if msg.Err != nil {
		v.setError(msg.Err)
		return nil
	}

	v.err = nil
	v.answer = nil
	var results []domain.SearchResult
	if msg.Context != nil {
		results = msg.Context.Results
	}
	v.list.SetResults(results)
	v.statusbar.SetResultCount(len(results))
	if len(results) == 0 {
		v.statusbar.SetMessage("No matching passages")
	}
	v.refreshReader()
	return v.statusbar.SetState(status.StateResults)
}

func (v *View) handleAnswerCompleted(msg messages.AnswerCompleted) tea.Cmd {
	if msg.Err != nil {
		v.setError(msg.Err)
		return nil
	}

	v.err = nil
	v.answer = msg.Answer
	var results []domain.SearchResult
	if msg.Answer != nil && msg.Answer.Context != nil {
		results = msg.Answer.Context.Results
	}
	v.list.SetResults(results)
	v.statusbar.SetResultCount(len(results))
	v.refreshReader()
	return v.statusbar.SetState(status.StateAnswer)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
	v.focusInput = true
	v.input.Focus()
}

// refreshReader shows the answer in ask mode, otherwise the selected passage.
func (v *View) refreshReader() {
	v.reader.SetContent(v.wrap(v.readerText()))
	v.reader.GotoTop()
}

func (v *View) readerText() string {
	if v.mode == messages.ModeAsk && v.answer != nil {
		return v.answer.Text + "\n\n" + v.styles.Muted.Render("Sources: "+strings.Join(answerSources(v.answer), ", "))
	}
	r := v.list.SelectedResult()
	if r == nil {
		return ""
	}
	return v.styles.Source.Render(fmt.Sprintf("[From %s]", r.Chunk.Source)) + "\n" + r.Chunk.Text
}

func (v *View) wrap(s string) string {
	if s == "" || v.reader.Width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(v.reader.Width).Render(s)
}

// answerSources lists the distinct sources of an answer's passages in order.
func answerSources(a *domain.Answer) []string {
	if a.Context == nil {
		return nil
	}
	seen := make(map[string]bool, len(a.Context.Results))
	var out []string
	for _, r := range a.Context.Results {
		if seen[r.Chunk.Source] {
			continue
		}
		seen[r.Chunk.Source] = true
		out = append(out, r.Chunk.Source)
	}
	return out
}

// View renders the query view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.renderHeader(), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections,
		v.list.View(),
		"",
		v.styles.Reader.Render(v.reader.View()),
		"",
		v.statusbar.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderHeader() string {
	title := v.styles.Title.Render("Grokpedia") + "  " + v.styles.Muted.Render("mode: "+v.mode.String())
	if v.indexState == nil {
		return title
	}
	st := v.indexState
	info := fmt.Sprintf("%d chunks, %d vectors", st.Entries, st.Vectors)
	if st.Stale {
		return title + "  " + v.styles.Muted.Render(info) + "  " + v.styles.Warning.Render("stale")
	}
	return title + "  " + v.styles.Muted.Render(info)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// header, input, reader border and status bar take 11 lines
	body := max(height-11, 6)
	listHeight := max(body/3, 3)

	v.input.SetWidth(width)
	v.list.SetDimensions(width, listHeight)
	v.reader.Width = max(width-4, 10)
	v.reader.Height = max(body-listHeight, 3)
	v.statusbar.SetWidth(width)
	v.refreshReader()
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Mode returns the current mode.
func (v *View) Mode() messages.Mode {
	return v.mode
}

// Query returns the current input.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the input.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the passages on display.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected passage.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Answer returns the last answer, or nil.
func (v *View) Answer() *domain.Answer {
	return v.answer
}

// IndexStatus returns the last loaded index status, or nil.
func (v *View) IndexStatus() *domain.IndexStatus {
	return v.indexState
}

// ReaderContent returns the unwrapped reader text.
func (v *View) ReaderContent() string {
	return v.readerText()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns the view to an empty search.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.answer = nil
	v.err = nil
	v.statusbar.Clear()
	v.refreshReader()
}
