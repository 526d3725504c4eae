package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/grokpedia/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/grokpedia/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/grokpedia/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/grokpedia/internal/adapters/driving/tui/views/query"
	"github.com/custodia-labs/grokpedia/internal/core/domain"
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

	// keymap holds the key bindings.
	keymap *keymap.KeyMap

	// queryView is the search and ask view.
	queryView *query.View

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
	km := keymap.DefaultKeyMap()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		queryView: query.NewView(s, km, query.Services{
			Context: ports.Context,
			Answer:  ports.Answer,
			Index:   ports.Index,
		}),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.queryView.WithContext(ctx)
	return a
}

// WithTopK sets the number of passages requested per query.
func (a *App) WithTopK(topK int) *App {
	a.queryView.WithTopK(topK)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("grokpedia"),
		a.queryView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.queryView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case messages.Quit:
		return a, tea.Quit
	}

	a.queryView, cmd = a.queryView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.queryView.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the current query input.
func (a *App) Query() string {
	return a.queryView.Query()
}

// Mode returns the current query mode.
func (a *App) Mode() messages.Mode {
	return a.queryView.Mode()
}

// Results returns the passages on display.
func (a *App) Results() []domain.SearchResult {
	return a.queryView.Results()
}

// SelectedIndex returns the currently selected passage index.
func (a *App) SelectedIndex() int {
	return a.queryView.SelectedIndex()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.queryView.Err()
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.queryView.SetDimensions(width, height)
}
