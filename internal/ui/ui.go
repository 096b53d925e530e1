package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moresonsunn/lynxtop/internal/lynx"
	"github.com/moresonsunn/lynxtop/internal/prefs"
	"github.com/moresonsunn/lynxtop/internal/state"
)

// Options configure the UI runtime.
type Options struct {
	Store         *state.Store
	Client        *lynx.Client
	Gate          *state.Gate
	OnForeground  func()
	Authenticated bool
	ThemeName     string
	PrefsPath     string
}

const uiTick = time.Second

type tickMsg time.Time

// Run starts the dashboard and blocks until ctx is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a data store")
	}
	m := newModel(ctx, opts)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Model is the root bubbletea model. It renders snapshots of the shared
// store and feeds the engine the two signals it cannot see on its own:
// focus regained and "heavy panel open".
type Model struct {
	ctx   context.Context
	opts  Options
	keys  keyMap
	theme Theme

	snapshot    state.State
	lastUpdated time.Time
	table       table.Model
	width       int
	height      int
	notice      string

	// helpRelease holds the suppression gate while the help overlay is
	// open; nil when closed.
	helpRelease func()
}

func newModel(ctx context.Context, opts Options) Model {
	theme := themeByName(opts.ThemeName)
	return Model{
		ctx:   ctx,
		opts:  opts,
		keys:  defaultKeyMap(),
		theme: theme,
		table: newServerTable(theme),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Tick(uiTick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		if h := msg.Height - chromeLines; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tickMsg:
		m.snapshot = m.opts.Store.Snapshot()
		m.lastUpdated = time.Time(msg)
		m.table.SetRows(serverRows(m.snapshot))
		return m, tea.Tick(uiTick, func(t time.Time) tea.Msg { return tickMsg(t) })

	case tea.FocusMsg:
		if m.opts.OnForeground != nil {
			m.opts.OnForeground()
		}
		return m, nil

	case tea.BlurMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.helpRelease != nil {
		// Any key closes the overlay and releases the gate.
		m.helpRelease()
		m.helpRelease = nil
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.opts.Gate != nil {
			m.helpRelease = m.opts.Gate.Hold()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.opts.OnForeground != nil {
			m.opts.OnForeground()
		}
		m.notice = "refreshing"
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.theme = nextTheme(m.theme.Name)
		m.table = restyleTable(m.table, m.theme)
		_ = prefs.Save(m.opts.PrefsPath, prefs.Prefs{Theme: m.theme.Name})
		return m, nil

	case key.Matches(msg, m.keys.Start):
		return m.powerAction("start", "starting")

	case key.Matches(msg, m.keys.Stop):
		return m.powerAction("stop", "stopping")

	case key.Matches(msg, m.keys.Restart):
		return m.powerAction("restart", "restarting")
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// powerAction applies the optimistic status patch and fires the backend
// call. The next authoritative roster refresh settles the real status;
// whichever lands last wins.
func (m Model) powerAction(action, optimisticStatus string) (tea.Model, tea.Cmd) {
	id := m.selectedServerID()
	if id == "" || !m.opts.Authenticated {
		return m, nil
	}
	m.opts.Store.SetServerStatus(id, optimisticStatus)
	m.notice = fmt.Sprintf("%s %s", action, id)
	client := m.opts.Client
	ctx := m.ctx
	return m, func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		_ = client.ServerAction(reqCtx, id, action)
		return nil
	}
}

func (m Model) selectedServerID() string {
	row := m.table.SelectedRow()
	if row == nil {
		return ""
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.snapshot.Servers) {
		return ""
	}
	return m.snapshot.Servers[idx].ID
}
