package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/standups/internal/detail"
	"github.com/five82/standups/internal/edit"
	"github.com/five82/standups/internal/list"
	"github.com/five82/standups/internal/logging"
	"github.com/five82/standups/internal/mainloop"
	"github.com/five82/standups/internal/prefs"
	"github.com/five82/standups/internal/record"
	"github.com/five82/standups/internal/standup"
	"github.com/five82/standups/internal/state"
)

// screen is derived from the controller tree on every update.
type screen int

const (
	screenStandups screen = iota
	screenForm
	screenDetail
	screenMeeting
	screenRecord
)

// Options configures the UI.
type Options struct {
	Context context.Context
	List    *list.Controller
	// Loop is pumped into the program so background results run in Update.
	Loop         *mainloop.Loop
	Logger       *zap.Logger
	RefreshEvery time.Duration
	ThemeName    string
	PrefsPath    string
	// Now is used for relative dates; nil means time.Now.
	Now func() time.Time
}

// formState binds the single text input to one field of the open form.
type formState struct {
	owner *edit.Controller
	focus edit.Focus
	input textinput.Model
}

// Model is the root application state for Bubble Tea. It holds no standup
// data of its own: every view is rendered from the controller tree.
type Model struct {
	ctx       context.Context
	list      *list.Controller
	log       *zap.Logger
	prefsPath string
	refresh   time.Duration
	now       func() time.Time
	keys      keyMap

	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	status      state.Snapshot
	savePending bool

	selectedRow int
	meetingRow  int

	alertTitle  string
	alertCursor int

	form       formState
	viewing    standup.MeetingID
	transcript viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.RefreshEvery
	if refresh <= 0 {
		refresh = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 120

	return Model{
		ctx:        ctx,
		list:       opts.List,
		log:        logging.OrNop(opts.Logger),
		prefsPath:  prefsPath,
		refresh:    refresh,
		now:        now,
		keys:       DefaultKeyMap(),
		theme:      GetTheme(themeName),
		status:     opts.List.Status(),
		form:       formState{input: input},
		transcript: viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, tickCmd(m.refresh))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeTranscript()

	case dispatchMsg:
		msg()

	case tickMsg:
		m.status = m.list.Status()
		cmd = tickCmd(m.refresh)

	case paletteSavedMsg:
		if msg.err != nil {
			m.log.Warn("save palette failed", zap.String("palette", msg.name), zap.Error(msg.err))
		}
	}

	syncCmd := m.sync()
	return m, tea.Batch(cmd, syncCmd)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if a := m.activeAlert(); a != nil {
		return m.renderAlert(*a)
	}
	return m.renderMain()
}

// openDetail returns the open detail controller, if any.
func (m Model) openDetail() *detail.Controller {
	if d, ok := m.list.Destination().(list.Detail); ok {
		return d.Detail
	}
	return nil
}

// activeForm returns the open add or edit form, if any.
func (m Model) activeForm() *edit.Controller {
	switch dest := m.list.Destination().(type) {
	case list.Adding:
		return dest.Edit
	case list.Detail:
		if e, ok := dest.Detail.Destination().(detail.Editing); ok {
			return e.Edit
		}
	}
	return nil
}

func (m Model) activeRecording() *record.Controller {
	if d := m.openDetail(); d != nil {
		if r, ok := d.Destination().(detail.Recording); ok {
			return r.Record
		}
	}
	return nil
}

func (m Model) screen() screen {
	switch dest := m.list.Destination().(type) {
	case list.Adding:
		return screenForm
	case list.Detail:
		switch dest.Detail.Destination().(type) {
		case detail.Editing:
			return screenForm
		case detail.ViewingMeeting:
			return screenMeeting
		case detail.Recording:
			return screenRecord
		}
		return screenDetail
	}
	return screenStandups
}

// handleKey processes keyboard input for the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if a := m.activeAlert(); a != nil {
		m.handleAlertKey(msg, *a)
		return m, nil
	}

	// The form takes every printable key.
	if m.screen() == screenForm {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m, savePaletteCmd(m.prefsPath, m.theme.Name)
	}

	switch m.screen() {
	case screenStandups:
		return m.handleStandupsKey(msg)
	case screenDetail:
		m.handleDetailKey(msg)
	case screenMeeting:
		return m.handleMeetingKey(msg)
	case screenRecord:
		m.handleRecordKey(msg)
	}
	return m, nil
}

// sync reconciles view-local state with the controller tree after an update.
func (m *Model) sync() tea.Cmd {
	_, m.savePending = m.list.PendingSave()

	if n := len(m.list.Standups()); m.selectedRow >= n {
		m.selectedRow = max(n-1, 0)
	}

	if d := m.openDetail(); d != nil {
		if n := len(d.Standup().Meetings); m.meetingRow >= n {
			m.meetingRow = max(n-1, 0)
		}
		if v, ok := d.Destination().(detail.ViewingMeeting); ok && v.Meeting.ID != m.viewing {
			m.viewing = v.Meeting.ID
			m.loadTranscript(v.Meeting)
		}
	} else {
		m.meetingRow = 0
	}
	if m.screen() != screenMeeting {
		m.viewing = standup.MeetingID{}
	}

	title := ""
	if a := m.activeAlert(); a != nil {
		title = a.title
	}
	if title != m.alertTitle {
		m.alertTitle = title
		m.alertCursor = 0
	}

	return m.bindForm()
}

// Messages

type tickMsg time.Time

// dispatchMsg carries a closure queued on the main loop into Update.
type dispatchMsg func()

type paletteSavedMsg struct {
	name string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func savePaletteCmd(path, name string) tea.Cmd {
	return func() tea.Msg {
		err := prefs.Update(path, func(p *prefs.Prefs) { p.Palette = name })
		return paletteSavedMsg{name: name, err: err}
	}
}

// Run starts the Bubble Tea program and pumps opts.Loop into it until the
// program exits.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	pumpCtx, cancel := context.WithCancel(ctx)
	pumped := make(chan struct{})
	go func() {
		defer close(pumped)
		if opts.Loop != nil {
			_ = opts.Loop.Pump(pumpCtx, func(fn func()) { p.Send(dispatchMsg(fn)) })
		}
	}()

	_, err := p.Run()
	cancel()
	<-pumped

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
