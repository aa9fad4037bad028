package panel

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muurk/quickpanel/internal/action"
	"github.com/muurk/quickpanel/internal/config"
	"github.com/muurk/quickpanel/internal/expansion"
	"github.com/muurk/quickpanel/internal/logging"
	"github.com/muurk/quickpanel/internal/module"
	"github.com/muurk/quickpanel/internal/overlay"
	"github.com/muurk/quickpanel/internal/render"
	"github.com/muurk/quickpanel/internal/state"
	"go.uber.org/zap"
)

// sliderStep is the percentage a slider moves per key press.
const sliderStep = 5

// Snapshotter produces state snapshots.
type Snapshotter interface {
	Snapshot(ctx context.Context, req state.Request) state.Snapshot
}

// Runner executes actions.
type Runner interface {
	Run(ctx context.Context, a action.Action) action.Outcome
}

// Deps are the collaborators of a panel session.
type Deps struct {
	Registry  *module.Registry
	Resolvers module.Resolvers
	State     Snapshotter
	Actions   Runner
	// Overlay is created when nil.
	Overlay *overlay.Controller
}

// Options controls panel placement.
type Options struct {
	Anchor    string
	Width     int
	Margin    int
	SessionID string
}

// OptionsFromConfig extracts placement options from cfg.
func OptionsFromConfig(cfg *config.Config, sessionID string) Options {
	return Options{
		Anchor:    cfg.Panel.Anchor,
		Width:     cfg.Panel.Width,
		Margin:    cfg.Panel.Margin,
		SessionID: sessionID,
	}
}

type snapshotMsg struct {
	generation uint64
	snapshot   state.Snapshot
}

type actionDoneMsg struct {
	action  action.Action
	outcome action.Outcome
}

// Model is the Bubble Tea model of one panel session.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	registry  *module.Registry
	resolvers module.Resolvers
	state     Snapshotter
	actions   Runner
	overlay   *overlay.Controller
	expansion *expansion.State
	zones     *zone.Manager
	opts      Options

	generation uint64
	refreshing bool
	loaded     bool
	snapshot   state.Snapshot
	tree       render.Tree

	targets []target
	focus   int

	running bool
	queue   []action.Action

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	bar     progress.Model

	width    int
	height   int
	quitting bool
}

// New creates a panel session bound to ctx. The session's own context is
// cancelled when the panel is dismissed.
func New(ctx context.Context, deps Deps, opts Options) Model {
	sessionCtx, cancel := context.WithCancel(ctx)

	ov := deps.Overlay
	if ov == nil {
		ov = overlay.NewController()
	}
	ov.Show(overlay.Rect{})

	if opts.Width <= 0 {
		opts.Width = config.Default().Panel.Width
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = SubtleStyle

	return Model{
		ctx:       sessionCtx,
		cancel:    cancel,
		registry:  deps.Registry,
		resolvers: deps.Resolvers,
		state:     deps.State,
		actions:   deps.Actions,
		overlay:   ov,
		expansion: expansion.New(),
		zones:     zone.New(),
		opts:      opts,
		// The opening query is issued by Init.
		generation: 1,
		refreshing: true,
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    s,
		bar: progress.New(
			progress.WithSolidFill(string(PrimaryColor)),
			progress.WithoutPercentage(),
		),
	}
}

// Init starts the opening snapshot query.
func (m Model) Init() tea.Cmd {
	logging.LogSession(m.opts.SessionID, "opened")
	return tea.Batch(m.fetch(m.generation), m.spinner.Tick)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncBounds()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case snapshotMsg:
		if msg.generation != m.generation {
			logging.Debug("Dropping stale snapshot",
				zap.Uint64("generation", msg.generation),
				zap.Uint64("current", m.generation))
			return m, nil
		}
		m.apply(msg.snapshot)
		return m, nil

	case actionDoneMsg:
		return m.finish(msg.outcome)

	case spinner.TickMsg:
		if !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit("interrupt")
	}

	switch {
	case key.Matches(msg, m.keys.Dismiss):
		if m.overlay.Key(msg.String()) {
			return m.quit("escape")
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.Left):
		return m.nudge(-sliderStep)

	case key.Matches(msg, m.keys.Right):
		return m.nudge(sliderStep)

	case key.Matches(msg, m.keys.Activate):
		if t, ok := m.focused(); ok {
			return m.activate(t.action)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.syncBounds()
		return m, nil
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || tea.MouseEvent(msg).IsWheel() {
		return m, nil
	}

	if m.overlay.Click(msg.X, msg.Y) {
		return m.quit("outside click")
	}
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	for i, t := range m.targets {
		z := m.zones.Get(t.zone)
		if z == nil || !z.InBounds(msg) {
			continue
		}
		m.focus = i
		if t.kind == targetSlider {
			x, _ := z.Pos(msg)
			return m.setLevel(i, x*100/max(z.EndX-z.StartX, 1))
		}
		return m.activate(t.action)
	}

	return m, nil
}

// activate fires a. Expansion is handled here since it only touches
// session state; everything else goes through the action queue.
func (m Model) activate(a action.Action) (tea.Model, tea.Cmd) {
	switch a.Kind {
	case action.KindNone:
		return m, nil
	case action.KindExpand:
		m.expansion.Toggle(a.Target)
		return m, m.refresh()
	case action.KindRefresh:
		return m, m.refresh()
	}
	return m.enqueue(a)
}

// nudge moves the focused slider by delta.
func (m Model) nudge(delta int) (tea.Model, tea.Cmd) {
	t, ok := m.focused()
	if !ok || t.kind != targetSlider {
		return m, nil
	}
	return m.setLevel(m.focus, m.tree.Sliders[t.slider].Percent+delta)
}

// setLevel shows percent on the slider behind targets[i] and queues the
// matching action. The next snapshot replaces the displayed value.
func (m Model) setLevel(i, percent int) (tea.Model, tea.Cmd) {
	percent = min(max(percent, 0), 100)
	t := m.targets[i]

	sliders := make([]render.Slider, len(m.tree.Sliders))
	copy(sliders, m.tree.Sliders)
	sliders[t.slider].Percent = percent
	m.tree.Sliders = sliders

	return m.enqueue(action.Level(sliders[t.slider].Kind, percent))
}

// enqueue runs a now or after the running action finishes.
func (m Model) enqueue(a action.Action) (tea.Model, tea.Cmd) {
	if !m.running {
		m.running = true
		return m, m.execute(a)
	}

	n := len(m.queue)
	if n > 0 && isLevel(a) && m.queue[n-1].Kind == a.Kind {
		m.queue = append(m.queue[:n-1:n-1], a)
	} else {
		m.queue = append(m.queue[:n:n], a)
	}
	return m, nil
}

func isLevel(a action.Action) bool {
	return a.Kind == action.KindVolume || a.Kind == action.KindBrightness
}

func (m Model) execute(a action.Action) tea.Cmd {
	ctx, runner := m.ctx, m.actions
	return func() tea.Msg {
		outcome := runner.Run(ctx, a)
		if ctx.Err() != nil {
			return nil
		}
		return actionDoneMsg{action: a, outcome: outcome}
	}
}

// finish applies the outcome of the action that just ran and starts the
// next queued one.
func (m Model) finish(out action.Outcome) (tea.Model, tea.Cmd) {
	m.running = false
	if out.Close {
		return m.quit("action")
	}

	var cmds []tea.Cmd
	if out.CollapseAll {
		m.expansion.CollapseAll()
	}
	if out.Collapse != "" {
		m.expansion.Collapse(out.Collapse)
	}
	if out.Rebuild || out.CollapseAll || out.Collapse != "" {
		cmds = append(cmds, m.refresh())
	}

	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		m.running = true
		cmds = append(cmds, m.execute(next))
	}

	return m, tea.Batch(cmds...)
}

// refresh starts a snapshot query for a new generation. Results of
// earlier generations are discarded on arrival.
func (m *Model) refresh() tea.Cmd {
	m.generation++
	fetch := m.fetch(m.generation)
	if m.refreshing {
		return fetch
	}
	m.refreshing = true
	return tea.Batch(fetch, m.spinner.Tick)
}

func (m Model) fetch(generation uint64) tea.Cmd {
	ctx, provider := m.ctx, m.state
	req := m.registry.Needs(m.expansion.IDs())
	return func() tea.Msg {
		snap := provider.Snapshot(ctx, req)
		if ctx.Err() != nil {
			return nil
		}
		return snapshotMsg{generation: generation, snapshot: snap}
	}
}

// apply renders snap as the current tree.
func (m *Model) apply(snap state.Snapshot) {
	previous, _ := m.focused()

	m.snapshot = snap
	m.tree = render.Render(m.registry, m.resolvers, snap, m.expansion)
	m.targets = targets(m.tree)
	m.loaded = true
	m.refreshing = false

	m.focus = 0
	for i, t := range m.targets {
		if t.zone == previous.zone {
			m.focus = i
			break
		}
	}

	m.syncBounds()
}

func (m *Model) syncBounds() {
	_, bounds := m.layout()
	m.overlay.SetBounds(bounds)
}

func (m Model) focused() (target, bool) {
	if m.focus < 0 || m.focus >= len(m.targets) {
		return target{}, false
	}
	return m.targets[m.focus], true
}

func (m *Model) moveFocus(delta int) {
	n := len(m.targets)
	if n == 0 {
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
}

// quit ends the session: the overlay is torn down and everything still
// in flight is cancelled.
func (m Model) quit(reason string) (tea.Model, tea.Cmd) {
	m.overlay.Dismiss()
	m.cancel()
	m.quitting = true
	logging.LogSession(m.opts.SessionID, "dismissed: "+reason)
	return m, tea.Quit
}

// Done reports whether the session has ended.
func (m Model) Done() bool {
	return m.quitting
}

// Tree returns the tree currently on screen.
func (m Model) Tree() render.Tree {
	return m.tree
}
