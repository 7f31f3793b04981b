package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-fidget/internal/config"
	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/feedback"
	"github.com/vovakirdan/tui-fidget/internal/registry"
	"github.com/vovakirdan/tui-fidget/internal/sound"
	"github.com/vovakirdan/tui-fidget/internal/storage"
	"github.com/vovakirdan/tui-fidget/internal/tilt"
)

// Grid layout constants
const (
	defaultWidth  = 80
	defaultHeight = 24
	statusLines   = 2 // status line and onboarding hint
)

// Haptic pulse tuning. A pulse brightens the toy's frame and fades per tick.
const (
	pulseDecay = 0.85
	pulseFloor = 0.02
)

const onboardingHint = "arrows tilt, tab picks a toy, space presses it, drag with the mouse"

// pulseStrength maps an impact style to the frame pulse it starts.
var pulseStrength = map[core.HapticStyle]float64{
	core.HapticSelection: 0.3,
	core.HapticLight:     0.4,
	core.HapticSoft:      0.4,
	core.HapticMedium:    0.6,
	core.HapticRigid:     0.8,
	core.HapticHeavy:     1.0,
}

// Options wires a toy host to the shared services of its process or session.
type Options struct {
	Config    config.Config
	Adapter   *tilt.Adapter      // Source of smoothed tilt; nil holds tilt at rest
	Manual    *tilt.ManualSource // Arrow-key target; nil when tilt comes from elsewhere
	Player    *sound.Player      // nil plays nothing
	Store     *storage.Store     // nil disables persistence
	SessionID string
	Logger    *log.Logger
	Width     int // Initial terminal size, replaced by the first resize
	Height    int
}

// slot is one toy placed in the grid.
type slot struct {
	toy     registry.Toy
	screen  *core.Screen
	input   core.InputFrame
	pointer []core.Pointer
	state   core.ToyState
	visible bool
	touched bool
	pulse   float64
}

// GridModel is the Bubble Tea model that lays toys out in fixed-size cells.
// When the window cannot hold every cell the toys are split into pages, and
// toys off the current page are hidden so their simulators stop.
type GridModel struct {
	opts     Options
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	dispatch *feedback.Dispatcher
	slots    []*slot
	byID     map[string]*slot
	page     *core.Screen
	fps      int

	width, height int
	cellW, cellH  int
	cols, rows    int
	pageIdx       int
	focus         int
	drag          int // Slot receiving the current mouse drag, -1 when none
	lastTick      time.Time
	interacted    bool
	fill          bool // Single cell sized to the window
	quitting      bool
}

// NewGridModel creates a grid host for the given toys in display order.
func NewGridModel(toys []registry.Toy, opts Options) *GridModel {
	return newModel(toys, opts, false)
}

func newModel(toys []registry.Toy, opts Options, fill bool) *GridModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = defaultWidth, defaultHeight
	}

	m := &GridModel{
		opts:   opts,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		byID:   make(map[string]*slot, len(toys)),
		page:   core.NewScreen(1, 1),
		fps:    opts.Config.Grid.FPS,
		width:  opts.Width,
		height: opts.Height,
		cellW:  core.Max(opts.Config.Grid.CellWidth, config.MinCellWidth),
		cellH:  core.Max(opts.Config.Grid.CellHeight, config.MinCellHeight),
		drag:   -1,
		fill:   fill,
	}
	if m.fps <= 0 {
		m.fps = 60
	}
	m.help.Width = m.width

	var snd feedback.Sounder
	if opts.Player != nil {
		snd = opts.Player
	}
	m.dispatch = feedback.NewDispatcher(snd, feedback.HapticsFunc(m.impact), logger)

	for _, t := range toys {
		s := &slot{
			toy:    t,
			screen: core.NewScreen(m.cellW, m.cellH),
			input:  core.NewInputFrame(),
		}
		m.slots = append(m.slots, s)
		m.byID[t.ID()] = s
	}

	if opts.Store != nil {
		done, err := opts.Store.HasInteracted()
		if err != nil {
			logger.Warn("could not read interaction flag", "error", err)
		}
		m.interacted = done
	}
	return m
}

// Init lays out the first page and starts the tick loop.
func (m *GridModel) Init() tea.Cmd {
	m.layout()
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m *GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	case TickMsg:
		return m, m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m *GridModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Close()
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()

	case key.Matches(msg, m.keys.NextToy):
		m.setFocus(m.focus + 1)

	case key.Matches(msg, m.keys.PrevToy):
		m.setFocus(m.focus - 1)

	case key.Matches(msg, m.keys.NextPage):
		m.setPage(m.pageIdx + 1)

	case key.Matches(msg, m.keys.PrevPage):
		m.setPage(m.pageIdx - 1)

	case key.Matches(msg, m.keys.Level):
		if m.opts.Manual != nil {
			m.opts.Manual.Level()
		}

	case key.Matches(msg, m.keys.Sound):
		if m.opts.Player == nil {
			return nil
		}
		on := !m.opts.Player.Enabled()
		m.opts.Player.SetEnabled(on)
		m.logger.Debug("sound toggled", "on", on)
		return m.persist("sound", func(s *storage.Store) error {
			return s.SetBoolSetting(storage.KeySound, on)
		})

	case key.Matches(msg, m.keys.ReduceMotion):
		if m.opts.Adapter == nil {
			return nil
		}
		on := !m.opts.Adapter.ReduceMotion()
		m.opts.Adapter.SetReduceMotion(on)
		m.logger.Debug("reduced motion toggled", "on", on)
		return m.persist("reduce motion", func(s *storage.Store) error {
			return s.SetBoolSetting(storage.KeyReduceMotion, on)
		})

	default:
		if dx, dy, ok := m.keys.TiltStep(msg); ok {
			if m.opts.Manual != nil {
				step := m.opts.Config.Tilt.KeyStep
				m.opts.Manual.Nudge(dx*step, dy*step)
			}
			return nil
		}
		if a := m.keys.ToyAction(msg); a != core.ActionNone {
			if s := m.focused(); s != nil {
				s.input.Set(a)
			}
		}
	}
	return nil
}

// handleMouse maps press, drag and release to pointer samples relative to
// the cell where the drag began.
func (m *GridModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		i, ok := m.slotAt(msg.X, msg.Y)
		if !ok {
			return
		}
		m.focus = i
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.drag = i
			m.queuePointer(i, core.PointerDown, msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			m.slots[i].input.Set(core.ActionIncrease)
		case tea.MouseButtonWheelDown:
			m.slots[i].input.Set(core.ActionDecrease)
		}

	case tea.MouseActionMotion:
		if m.drag >= 0 {
			m.queuePointer(m.drag, core.PointerMove, msg.X, msg.Y)
		}

	case tea.MouseActionRelease:
		if m.drag >= 0 {
			m.queuePointer(m.drag, core.PointerUp, msg.X, msg.Y)
			m.drag = -1
		}
	}
}

// queuePointer appends a sample for slot i. Consecutive moves collapse into
// the latest one so a fast drag never lags behind the mouse.
func (m *GridModel) queuePointer(i int, phase core.PointerPhase, x, y int) {
	s := m.slots[i]
	if !s.visible {
		return
	}
	ox, oy := m.cellOrigin(i)
	p := core.Pointer{Phase: phase, X: float64(x - ox), Y: float64(y - oy)}
	if n := len(s.pointer); n > 0 && phase == core.PointerMove && s.pointer[n-1].Phase == core.PointerMove {
		s.pointer[n-1] = p
		return
	}
	s.pointer = append(s.pointer, p)
}

// handleTick advances every visible toy by one frame.
func (m *GridModel) handleTick(now time.Time) tea.Cmd {
	dt := frameDT(m.lastTick, now, m.fps)
	m.lastTick = now
	st := m.tilt()

	cmds := []tea.Cmd{tickCmd(m.fps)}
	for _, s := range m.slots {
		s.pulse *= pulseDecay
		if s.pulse < pulseFloor {
			s.pulse = 0
		}
		if !s.visible {
			continue
		}

		f := core.Frame{
			Input:        s.input,
			TiltX:        st.X,
			TiltY:        st.Y,
			ReduceMotion: st.ReduceMotion,
			DT:           dt,
		}
		if len(s.pointer) > 0 {
			f.Pointer = s.pointer[0]
			s.pointer = s.pointer[1:]
		}

		res := s.toy.Step(f)
		s.input.Clear()
		s.state = res.State
		m.dispatch.Dispatch(s.toy.ID(), res.Feedback)

		if res.State.Touched && !s.touched {
			cmds = append(cmds, m.touch(s.toy.ID()))
		}
		s.touched = res.State.Touched
	}
	return tea.Batch(cmds...)
}

// touch records the start of a gesture. The first gesture ever also plays
// the welcome chime and retires the onboarding hint.
func (m *GridModel) touch(toyID string) tea.Cmd {
	var cmds []tea.Cmd
	if !m.interacted {
		m.interacted = true
		m.dispatch.Dispatch(toyID, []core.Feedback{{Effect: string(sound.Chime)}})
		cmds = append(cmds, m.persist("interacted", func(s *storage.Store) error {
			return s.MarkInteracted()
		}))
	}
	session := m.opts.SessionID
	cmds = append(cmds, m.persist("interaction", func(s *storage.Store) error {
		_, err := s.RecordInteraction(toyID, session)
		return err
	}))
	return tea.Batch(cmds...)
}

// persist runs a best-effort storage write off the UI loop.
func (m *GridModel) persist(what string, fn func(*storage.Store) error) tea.Cmd {
	store, logger := m.opts.Store, m.logger
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		if err := fn(store); err != nil {
			logger.Warn("storage write failed", "what", what, "error", err)
		}
		return nil
	}
}

// impact implements feedback.Haptics as a frame pulse.
func (m *GridModel) impact(toyID string, style core.HapticStyle) {
	s, ok := m.byID[toyID]
	if !ok {
		return
	}
	if p := pulseStrength[style]; p > s.pulse {
		s.pulse = p
	}
}

func (m *GridModel) tilt() tilt.State {
	if m.opts.Adapter == nil {
		return tilt.State{}
	}
	return m.opts.Adapter.State()
}

// layout recomputes the cell grid for the current window and shows the
// page holding the focused toy.
func (m *GridModel) layout() {
	avail := m.height - m.footerHeight()

	if m.fill {
		w := core.Max(config.MinCellWidth, m.width)
		h := core.Max(config.MinCellHeight, avail)
		if w != m.cellW || h != m.cellH {
			m.cellW, m.cellH = w, h
			for _, s := range m.slots {
				s.screen.Resize(w, h)
				if s.visible {
					s.toy.Reset(m.runtime())
				}
			}
		}
	}

	m.cols = core.Max(1, m.width/m.cellW)
	m.rows = core.Max(1, avail/m.cellH)
	m.page.Resize(m.cols*m.cellW, m.rows*m.cellH)

	if n := len(m.slots); n > 0 {
		m.focus = core.Clamp(m.focus, 0, n-1)
	}
	m.pageIdx = m.focus / m.perPage()
	m.showPage()
}

// showPage resets toys that come into view and hides those that leave it.
func (m *GridModel) showPage() {
	per := m.perPage()
	for i, s := range m.slots {
		onPage := i/per == m.pageIdx
		switch {
		case onPage && !s.visible:
			s.toy.Reset(m.runtime())
			s.state = s.toy.State()
			s.visible = true
		case !onPage && s.visible:
			s.toy.Hide()
			s.visible = false
			s.pointer = nil
			s.input.Clear()
			s.touched = false
			if m.drag == i {
				m.drag = -1
			}
		}
	}
}

func (m *GridModel) setFocus(i int) {
	n := len(m.slots)
	if n == 0 {
		return
	}
	m.focus = ((i % n) + n) % n
	if p := m.focus / m.perPage(); p != m.pageIdx {
		m.pageIdx = p
		m.showPage()
	}
}

func (m *GridModel) setPage(p int) {
	pages := m.Pages()
	p = ((p % pages) + pages) % pages
	if p == m.pageIdx {
		return
	}
	m.pageIdx = p
	m.focus = p * m.perPage()
	m.showPage()
}

func (m *GridModel) runtime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: m.cellW, ScreenH: m.cellH, TickRate: m.fps}
}

func (m *GridModel) perPage() int {
	return core.Max(1, m.cols*m.rows)
}

// Pages returns how many pages the toys span at the current size.
func (m *GridModel) Pages() int {
	per := m.perPage()
	return core.Max(1, (len(m.slots)+per-1)/per)
}

// Page returns the zero-based index of the page on screen.
func (m *GridModel) Page() int {
	return m.pageIdx
}

// Focused returns the ID of the toy receiving key actions.
func (m *GridModel) Focused() string {
	if s := m.focused(); s != nil {
		return s.toy.ID()
	}
	return ""
}

func (m *GridModel) focused() *slot {
	if m.focus < 0 || m.focus >= len(m.slots) {
		return nil
	}
	return m.slots[m.focus]
}

// Visible reports whether the toy is on the current page.
func (m *GridModel) Visible(toyID string) bool {
	s, ok := m.byID[toyID]
	return ok && s.visible
}

// Interacted reports whether the first gesture has happened.
func (m *GridModel) Interacted() bool {
	return m.interacted
}

// cellOrigin returns the top-left corner of slot i on its page.
func (m *GridModel) cellOrigin(i int) (x, y int) {
	pos := i % m.perPage()
	return (pos % m.cols) * m.cellW, (pos / m.cols) * m.cellH
}

// slotAt returns the slot under a screen position on the current page.
func (m *GridModel) slotAt(x, y int) (int, bool) {
	if !core.NewRect(0, 0, m.cols*m.cellW, m.rows*m.cellH).Contains(x, y) {
		return 0, false
	}
	i := m.pageIdx*m.perPage() + (y/m.cellH)*m.cols + x/m.cellW
	if i >= len(m.slots) {
		return 0, false
	}
	return i, true
}

func (m *GridModel) footerHeight() int {
	return statusLines + lipgloss.Height(m.help.View(m.keys))
}

// Close hides every toy so their simulators stop.
func (m *GridModel) Close() {
	for _, s := range m.slots {
		if s.visible {
			s.toy.Hide()
			s.visible = false
		}
	}
}

// View renders the current page, the status line and the help footer.
func (m *GridModel) View() string {
	if m.quitting {
		return ""
	}

	st := m.tilt()
	m.page.Clear()
	for i, s := range m.slots {
		if !s.visible {
			continue
		}
		s.screen.Clear()
		s.toy.Render(s.screen, core.View{
			TiltX:        st.X,
			TiltY:        st.Y,
			ReduceMotion: st.ReduceMotion,
			Focused:      i == m.focus,
			Pulse:        s.pulse,
		})
		titleColor := core.ColorGray
		if i == m.focus {
			titleColor = core.ColorBrightWhite
		}
		s.screen.DrawTextColored(2, 0, " "+s.toy.Title()+" ", titleColor)

		x, y := m.cellOrigin(i)
		m.page.Blit(s.screen, x, y)
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.page))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status(st)))
	b.WriteString("\n")
	if !m.interacted {
		b.WriteString(hintStyle.Render(onboardingHint))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *GridModel) status(st tilt.State) string {
	var parts []string
	if s := m.focused(); s != nil {
		parts = append(parts, fmt.Sprintf("%s: %s", s.toy.Title(), s.state.Label))
	}
	if pages := m.Pages(); pages > 1 {
		parts = append(parts, fmt.Sprintf("page %d/%d", m.pageIdx+1, pages))
	}
	parts = append(parts, fmt.Sprintf("tilt %+.2f %+.2f", st.X, st.Y))

	snd := "off"
	if m.opts.Player != nil && m.opts.Player.Enabled() {
		snd = "on"
	}
	parts = append(parts, "sound "+snd)
	if st.ReduceMotion {
		parts = append(parts, "reduced motion")
	}
	return strings.Join(parts, "  |  ")
}

// ToyModel hosts a single toy in a cell that fills the window.
type ToyModel struct {
	grid *GridModel
}

// NewToyModel creates a full-window host for one toy.
func NewToyModel(toy registry.Toy, opts Options) ToyModel {
	return ToyModel{grid: newModel([]registry.Toy{toy}, opts, true)}
}

// Init starts the tick loop.
func (m ToyModel) Init() tea.Cmd {
	return m.grid.Init()
}

// Update handles messages.
func (m ToyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.grid.Update(msg)
	return m, cmd
}

// View renders the toy.
func (m ToyModel) View() string {
	return m.grid.View()
}

// Close hides the toy.
func (m ToyModel) Close() {
	m.grid.Close()
}

// Grid exposes the underlying host.
func (m ToyModel) Grid() *GridModel {
	return m.grid
}

// BuildToys creates the toys named in ids with the given tuning.
func BuildToys(ids []string, env registry.Env) ([]registry.Toy, error) {
	toys := make([]registry.Toy, 0, len(ids))
	for _, id := range ids {
		t, err := registry.Create(id, env)
		if err != nil {
			return nil, err
		}
		toys = append(toys, t)
	}
	return toys, nil
}

// Run starts a Bubble Tea program for a toy host with mouse tracking and
// blocks until it quits.
func Run(model tea.Model, opts ...tea.ProgramOption) error {
	base := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	p := tea.NewProgram(model, append(base, opts...)...)
	_, err := p.Run()
	return err
}
