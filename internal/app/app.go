// Package app contains the root application model: the driver that owns
// both views and runs the tick loop.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/keys"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/views"
)

// tickMsg drives one iteration of the driver loop.
type tickMsg time.Time

// fileChangedMsg reports an on-disk change of the opened file.
type fileChangedMsg struct{}

// Model is the root application state. Keystrokes accumulate between
// ticks; each tick feeds the batch through the command view and drains
// the resulting queues, application commands first so focus switches
// take effect before text commands are applied.
type Model struct {
	cfg   config.Config
	title string

	text *views.TextView
	cmd  *views.CommandView

	pending   []keys.Key
	textFocus bool
	ready     bool
	quitting  bool

	diskChanged bool
	watchCh     <-chan struct{}

	styles viewStyles
}

// New builds the driver over the given buffer contents. watchCh may be
// nil when file watching is disabled or no file is open.
func New(cfg config.Config, title, contents string, watchCh <-chan struct{}) Model {
	return Model{
		cfg:       cfg,
		title:     title,
		text:      views.NewTextView(contents),
		cmd:       views.NewCommandView(),
		textFocus: true,
		watchCh:   watchCh,
		styles:    newViewStyles(cfg.Theme),
	}
}

// Init schedules the first tick and arms the watcher listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick(), tea.SetWindowTitle("quill — " + m.title)}
	if c := waitForChange(m.watchCh); c != nil {
		cmds = append(cmds, c)
	}
	return tea.Batch(cmds...)
}

// tick returns the next driver-loop tick command.
func (m Model) tick() tea.Cmd {
	interval := time.Duration(m.cfg.Editor.TickRateMs) * time.Millisecond
	if interval <= 0 {
		interval = 30 * time.Millisecond
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitForChange blocks on the watcher channel and resurfaces the signal
// as a message.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// The layout is fixed at the first size report; runtime resize
		// is out of scope.
		if m.ready || msg.Height < 2 || msg.Width <= views.GutterWidth {
			return m, nil
		}
		m.text.SetSize(views.Position{Row: msg.Height - 1, Col: msg.Width})
		m.cmd.SetSize(views.Position{Row: 1, Col: msg.Width})
		m.ready = true
		log.Debug(log.CatApp, "Screen initialized", "rows", msg.Height, "cols", msg.Width)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Global.ForceQuit) {
			log.Info(log.CatApp, "Force quit")
			m.quitting = true
			return m, tea.Quit
		}
		k, ok := keys.FromKeyMsg(msg)
		if !ok {
			log.Debug(log.CatInput, "Dropped key", "key", msg.String())
			return m, nil
		}
		m.pending = append(m.pending, k)
		return m, nil

	case tickMsg:
		if !m.ready {
			return m, m.tick()
		}
		return m.runTick()

	case fileChangedMsg:
		log.Warn(log.CatWatcher, "File changed on disk", "file", m.title)
		m.diskChanged = true
		return m, waitForChange(m.watchCh)
	}

	return m, nil
}

// runTick performs one driver iteration: batch → interpreter → queues.
func (m Model) runTick() (tea.Model, tea.Cmd) {
	m.cmd.AddKeystrokes(m.pending)
	m.pending = nil

	for {
		cmd, ok := m.cmd.NextAppCommand()
		if !ok {
			break
		}
		switch c := cmd.(type) {
		case views.Quit:
			log.Info(log.CatApp, "Quit", "force", c.Force)
			m.quitting = true
			return m, tea.Quit
		case views.FocusText:
			m.textFocus = true
		case views.FocusCommand:
			m.textFocus = false
		}
	}

	for {
		cmd, ok := m.cmd.NextTextCommand()
		if !ok {
			break
		}
		m.text.ProcessCommand(cmd)
	}

	return m, m.tick()
}

// Mode exposes the interpreter state, used by tests.
func (m Model) Mode() views.Mode { return m.cmd.Mode() }

// Contents exposes the buffer, used by tests.
func (m Model) Contents() string { return m.text.Contents() }
