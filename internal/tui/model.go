package tui

import (
	"context"
	"slices"
	"strings"

	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/grievance"
	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/tui/components"
	"github.com/Veraticus/backoffice/internal/tui/themes"
	"github.com/Veraticus/backoffice/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI.
type State int

const (
	StateLoading State = iota
	StateList
	StateDetail
	StateHelp
)

// Model holds the main TUI state.
type Model struct {
	ctx       context.Context
	theme     themes.Theme
	board     *grievance.Board
	status    *statusLine
	config    Config
	keymap    KeyMap
	help      help.Model
	spinner   spinner.Model
	list      components.GrievanceListModel
	detail    components.GrievanceDetailModel
	height    int
	width     int
	loading   []model.UserType
	state     State
	prevState State
	quitting  bool
}

// statusLine is the board's notifier inside the TUI: every notification is
// logged and the latest one is shown in the status bar.
type statusLine struct {
	log   common.LogNotifier
	text  string
	seq   int
	isErr bool
}

func (s *statusLine) Error(err error, context string) {
	s.log.Error(err, context)
	s.set(context+": "+common.UserMessage(err), true)
}

func (s *statusLine) Info(message string) {
	s.log.Info(message)
	s.set(message, false)
}

func (s *statusLine) set(text string, isErr bool) {
	s.seq++
	s.text = text
	s.isErr = isErr
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	status := &statusLine{}

	opts := []grievance.Option{
		grievance.WithNotifier(status),
		grievance.WithFetchRetry(cfg.Retry),
		grievance.WithRequireMessage(cfg.RequireMessage),
	}
	if cfg.PageSize > 0 {
		opts = append(opts, grievance.WithPageSize(cfg.PageSize))
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(cfg.Theme.Primary)

	m := Model{
		ctx:     ctx,
		theme:   cfg.Theme,
		board:   grievance.NewBoard(cfg.Service, opts...),
		status:  status,
		config:  cfg,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		list:    components.NewGrievanceList(cfg.Theme),
		loading: slices.Clone(grievance.Sources),
		state:   StateLoading,
		width:   cfg.Width,
		height:  cfg.Height,
	}
	m.handleResize()
	return m
}

// Init starts the spinner and both fetches. The model already counts every
// source as loading.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchPending())
}

// Board returns the grievance board behind the UI.
func (m Model) Board() *grievance.Board {
	return m.board
}

// State returns the current screen.
func (m Model) State() State {
	return m.state
}

// Loading reports the sources whose fetch has not returned yet.
func (m Model) Loading() []model.UserType {
	return slices.Clone(m.loading)
}

func (m *Model) startFetch() tea.Cmd {
	m.loading = slices.Clone(grievance.Sources)
	return tea.Batch(m.spinner.Tick, m.fetchPending())
}

// fetchDone drops source from the loading set. The set is rebuilt rather
// than edited so copies of the model never share it.
func (m *Model) fetchDone(source model.UserType) {
	m.loading = slices.DeleteFunc(slices.Clone(m.loading), func(s model.UserType) bool {
		return s == source
	})
}

func (m Model) loadingLabel() string {
	names := make([]string, 0, len(m.loading))
	for _, source := range m.loading {
		names = append(names, string(source))
	}
	return "Loading " + strings.Join(names, ", ") + "..."
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		if len(m.loading) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchResultMsg:
		// A failed source is left empty and reported. The first result of a
		// round shows the list and a slower source fills in when it arrives.
		_ = m.board.Apply(msg.result)
		m.fetchDone(msg.result.Source)
		if m.state == StateLoading {
			m.state = StateList
		}
		m.refreshList()
		return m, m.statusCmd()

	case resolveResultMsg:
		return m.handleResolveResult(msg)

	case clearStatusMsg:
		if msg.seq == m.status.seq {
			m.status.text = ""
		}
		return m, nil

	case components.PageRequestMsg:
		m.board.SetPage(m.board.PageIndex() + msg.Delta)
		m.refreshList()
		return m, nil

	case components.GrievanceSelectedMsg:
		g, ok := m.board.Find(msg.Ref)
		if !ok {
			return m, nil
		}
		m.board.Open(msg.Ref)
		m.detail = components.NewGrievanceDetail(g, m.config.Dates, m.theme)
		m.detail.Resize(m.contentSize())
		m.state = StateDetail
		return m, nil

	case components.BackToListMsg:
		m.board.Close()
		m.state = StateList
		m.refreshList()
		return m, nil

	case components.ResolveRequestedMsg:
		if err := grievance.CheckMessage(msg.Message, m.board.RequireMessage()); err != nil {
			m.detail = m.detail.Failed("Resolution message is required")
			return m, nil
		}
		return m, m.resolve(msg.Ref, msg.Message)
	}

	return m.delegate(msg)
}

// delegate hands msg to the active component.
func (m Model) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateList:
		m.list, cmd = m.list.Update(msg)
	case StateDetail:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

func (m Model) handleResolveResult(msg resolveResultMsg) (tea.Model, tea.Cmd) {
	if err := m.board.ApplyResolution(msg.ref, msg.err); err != nil {
		if m.state == StateDetail {
			m.detail = m.detail.Failed(common.UserMessage(err))
		}
		return m, m.statusCmd()
	}

	if m.state == StateDetail {
		m.state = StateList
	}
	if m.prevState == StateDetail {
		m.prevState = StateList
	}
	m.refreshList()
	return m, m.statusCmd()
}

// handleGlobalKeys handles keys that work in any state. The bool reports
// whether the key was consumed.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return tea.Quit, true
	}

	// While typing a message every other key belongs to the text box.
	if m.state == StateDetail && m.detail.Editing() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		if m.state == StateHelp {
			m.state = m.prevState
		} else if m.state != StateLoading {
			m.prevState = m.state
			m.state = StateHelp
		}
		return nil, true

	case m.state == StateHelp && key.Matches(msg, m.keymap.Back):
		m.state = m.prevState
		return nil, true

	case m.state == StateList && key.Matches(msg, m.keymap.Reload):
		// The current list stays on screen until fresh results replace it.
		if len(m.loading) > 0 {
			return nil, true
		}
		return m.startFetch(), true
	}
	return nil, false
}

// statusCmd schedules the current status message to clear.
func (m Model) statusCmd() tea.Cmd {
	if m.status.text == "" {
		return nil
	}
	return clearStatusAfter(m.status.seq)
}

func (m *Model) refreshList() {
	m.list = m.list.SetView(viewmodel.FromBoard(m.board))
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	w, h := m.contentSize()
	m.list.Resize(w, h)
	if m.state == StateDetail || m.prevState == StateDetail {
		m.detail.Resize(w, h)
	}
	m.help.Width = w
}

// contentSize is the area inside the border and above the status bar.
func (m Model) contentSize() (int, int) {
	return max(m.width-4, 20), max(m.height-5, 5)
}
