package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"glide/internal/config"
	"glide/internal/document"
	"glide/internal/eventbus"
	"glide/internal/scroll"
)

const positionTimeout = 2 * time.Second

// PositionStore loads saved reading positions.
type PositionStore interface {
	LoadPosition(ctx context.Context, path string) (offset float64, found bool, err error)
}

// Options configure a Model. Config and Document are required.
type Options struct {
	Config    *config.Config
	Document  *document.Document
	Bus       eventbus.EventBus
	Logger    *slog.Logger
	Positions PositionStore
	// Scheduler drives animation frames. When nil, frames are delivered
	// through the program set with SetProgram.
	Scheduler scroll.Scheduler
}

// Model is the pager: a viewport over one document driven by the scroll
// controller.
type Model struct {
	log       *slog.Logger
	bus       eventbus.EventBus
	config    *config.Config
	doc       *document.Document
	positions PositionStore

	width  int
	height int
	ready  bool
	vp     viewport.Model
	help   help.Model
	keys   keyMap
	styles *Styles

	surface    *pagerSurface
	frames     *frameScheduler
	engine     *scroll.Engine
	controller *scroll.Controller

	notice   string
	noticeID int
	pending  []tea.Cmd

	// saved offset waiting for the first window size
	restore *float64
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	m := &Model{
		log:       log.With("component", "ui"),
		bus:       opts.Bus,
		config:    opts.Config,
		doc:       opts.Document,
		positions: opts.Positions,
		vp:        viewport.New(0, 0),
		help:      help.New(),
		styles:    NewStyles(),
	}
	m.vp.SetContent(strings.Join(m.doc.Rendered(), "\n"))
	m.surface = newPagerSurface(&m.vp, m.doc, m.config.UI.CellHeight)

	sched := opts.Scheduler
	if sched == nil {
		m.frames = &frameScheduler{}
		sched = m.frames
	}
	m.engine = scroll.NewEngine(sched, log)
	m.keys = newKeyMap(m.config.Keys, m.log)
	m.controller = m.newController()
	return m
}

func (m *Model) newController() *scroll.Controller {
	return scroll.NewController(scroll.ControllerOptions{
		Engine:         m.engine,
		Resolver:       m,
		Notifier:       m,
		Bus:            m.bus,
		Logger:         m.log,
		NoticeDuration: m.config.NoticeDuration(),
	}, m.config.Settings())
}

// SetProgram sets the program that animation frames are posted to
func (m *Model) SetProgram(p *tea.Program) {
	if m.frames != nil {
		m.frames.setSend(p.Send)
	}
}

// ResolveSurface implements scroll.SurfaceResolver. The pager is only
// eligible once it knows its size.
func (m *Model) ResolveSurface() scroll.Surface {
	if !m.ready {
		return nil
	}
	return m.surface
}

// Notify implements scroll.Notifier.
func (m *Model) Notify(message string, d time.Duration) {
	m.noticeID++
	m.notice = message
	if d <= 0 {
		return
	}
	id := m.noticeID
	m.pending = append(m.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	}))
}

// Position reports the document path and the current offset.
func (m *Model) Position() (string, float64) {
	return m.doc.Path, m.surface.ScrollTop()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if m.bus != nil {
		m.bus.Publish(eventbus.DocumentOpenedEvent{
			Path:     m.doc.Path,
			Language: m.doc.Language,
			Lines:    m.doc.LineCount(),
			Sections: len(m.doc.Sections(m.config.Scroll.SectionSelectors)),
		})
	}
	if !m.config.UI.RememberPosition || m.positions == nil {
		return nil
	}
	positions, path := m.positions, m.doc.Path
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), positionTimeout)
		defer cancel()
		offset, found, err := positions.LoadPosition(ctx, path)
		return positionLoadedMsg{offset: offset, found: found, err: err}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.engine.StopAnimation()
		m.vp, cmd = m.vp.Update(msg)
		m.surface.sync()

	case frameMsg:
		msg.run()

	case positionLoadedMsg:
		m.handlePosition(msg)

	case noticeExpiredMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}

	case ConfigChangedMsg:
		m.applyConfig(msg.Config)

	case EventMsg:
		m.handleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			m.log.Error("help pager failed", "error", msg.err)
			m.Notify(fmt.Sprintf("Help pager failed: %v", msg.err), m.config.NoticeDuration())
		}
	}

	return m, m.flush(cmd)
}

// flush batches cmd with the commands queued by notices.
func (m *Model) flush(cmd tea.Cmd) tea.Cmd {
	if len(m.pending) == 0 {
		return cmd
	}
	cmds := append(m.pending, cmd)
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	id, ok := m.keys.action(msg)
	if !ok {
		return nil
	}

	cell := m.surface.cellHeight
	switch id {
	case actionQuit:
		m.engine.StopAnimation()
		return tea.Quit
	case actionHelp:
		m.engine.StopAnimation()
		content := renderHelpContent(m.styles, m.keys)
		return tea.Exec(newHelpPager(content), func(err error) tea.Msg {
			return helpPagerMsg{err: err}
		})
	case actionLineDown:
		m.jump(m.surface.ScrollTop() + cell)
	case actionLineUp:
		m.jump(m.surface.ScrollTop() - cell)
	case actionTop:
		m.jump(0)
	case actionBottom:
		m.jump(m.surface.ScrollHeight())
	default:
		m.execute(id)
	}
	return nil
}

// execute runs a scroll command and records the position once it settles.
func (m *Model) execute(id string) {
	done := m.controller.ExecuteCommand(id)
	done.OnDone(m.settled)
}

// jump stops any animation and moves directly to target.
func (m *Model) jump(target float64) {
	if !m.ready {
		return
	}
	m.engine.StopAnimation()
	m.direct(target)
	m.settled()
}

func (m *Model) direct(target float64) {
	m.engine.Activate(m.surface)
	defer m.engine.Deactivate()
	if err := m.engine.DirectScroll(target); err != nil {
		m.log.Error("direct scroll failed", "error", err)
	}
}

func (m *Model) settled() {
	if m.bus == nil || !m.config.UI.RememberPosition || m.doc.Path == "" {
		return
	}
	m.bus.Publish(eventbus.ScrollSettledEvent{Path: m.doc.Path, Offset: m.surface.ScrollTop()})
}

func (m *Model) handlePosition(msg positionLoadedMsg) {
	if msg.err != nil {
		m.log.Warn("failed to load reading position", "path", m.doc.Path, "error", msg.err)
		return
	}
	if !msg.found {
		return
	}
	if !m.ready {
		offset := msg.offset
		m.restore = &offset
		return
	}
	m.direct(msg.offset)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.vp.Width = width
	m.vp.Height = max(height-m.chromeHeight(), 1)
	m.surface.SetScrollTop(m.surface.ScrollTop())

	m.ready = true
	if m.restore != nil {
		m.direct(*m.restore)
		m.restore = nil
	}
}

// chromeHeight is the number of rows not used by the viewport.
func (m *Model) chromeHeight() int {
	h := 2 // header, status
	if m.config.UI.ShowHelp {
		h++
	}
	return h
}

// applyConfig swaps in a reloaded configuration. The running animation is
// stopped and a new controller replaces the old one.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.engine.StopAnimation()
	m.config = cfg
	m.surface.setCellHeight(cfg.UI.CellHeight)
	m.keys = newKeyMap(cfg.Keys, m.log)
	m.controller = m.newController()
	if m.ready {
		m.resize(m.width, m.height)
	}
	m.log.Info("configuration applied")
	m.Notify("Configuration reloaded", cfg.NoticeDuration())
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.ErrorEvent:
		message := e.Message
		if e.Err != nil {
			message = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		m.Notify(message, m.config.NoticeDuration())
	}
}
