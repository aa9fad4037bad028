package panel

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/muurk/quickpanel/internal/action"
	"github.com/muurk/quickpanel/internal/config"
	"github.com/muurk/quickpanel/internal/module"
	"github.com/muurk/quickpanel/internal/overlay"
	"github.com/muurk/quickpanel/internal/state"
)

type fakeState struct {
	mu       sync.Mutex
	snap     state.Snapshot
	requests []state.Request
}

func (f *fakeState) Snapshot(ctx context.Context, req state.Request) state.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	snap := f.snap
	snap.Request = req
	return snap
}

func (f *fakeState) lastRequest() state.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return state.Summary
	}
	return f.requests[len(f.requests)-1]
}

type fakeRunner struct {
	mu       sync.Mutex
	outcomes map[action.Kind]action.Outcome
	ran      []action.Action
}

func (f *fakeRunner) Run(ctx context.Context, a action.Action) action.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ran = append(f.ran, a)
	if out, ok := f.outcomes[a.Kind]; ok {
		return out
	}
	return action.Outcome{Rebuild: true}
}

func (f *fakeRunner) actions() []action.Action {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]action.Action(nil), f.ran...)
}

func testSnapshot() state.Snapshot {
	return state.Snapshot{
		Network: state.NetworkStatus{
			Connected:    true,
			Kind:         state.KindWiFi,
			Name:         "home",
			Icon:         state.IconWiFi,
			RadioEnabled: true,
		},
		PowerProfile:  "balanced",
		PowerProfiles: state.DefaultPowerProfiles,
		Volume:        50,
		Brightness:    70,
		Battery:       88,
		WiFiNetworks: []state.WiFiNetwork{
			{SSID: "home", Signal: 80, Security: "WPA2", InUse: true},
			{SSID: "cafe", Signal: 40},
		},
	}
}

type harness struct {
	model   Model
	state   *fakeState
	runner  *fakeRunner
	overlay *overlay.Controller
}

// newHarness returns a loaded panel on a 120x40 terminal.
func newHarness(t *testing.T) *harness {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	reg, err := module.Default(config.Default())
	if err != nil {
		t.Fatalf("module.Default() error = %v", err)
	}

	h := &harness{
		state:   &fakeState{snap: testSnapshot()},
		runner:  &fakeRunner{outcomes: map[action.Kind]action.Outcome{}},
		overlay: overlay.NewController(),
	}
	h.model = New(context.Background(), Deps{
		Registry:  reg,
		Resolvers: module.DefaultResolvers(),
		State:     h.state,
		Actions:   h.runner,
		Overlay:   h.overlay,
	}, Options{Anchor: config.AnchorTopRight, Width: 44, Margin: 1, SessionID: "test"})
	t.Cleanup(h.model.zones.Close)

	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.drain(h.model.Init())
	if !h.model.loaded {
		t.Fatal("panel not loaded after Init")
	}
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

// drain runs cmd and feeds the resulting messages back into the model,
// following up to depth levels of resulting commands.
func (h *harness) drain(cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		h.send(msg)
	}
}

func (h *harness) focusOn(t *testing.T, zoneID string) {
	t.Helper()
	for i, tg := range h.model.targets {
		if tg.zone == zoneID {
			h.model.focus = i
			return
		}
	}
	t.Fatalf("no focus target %q", zoneID)
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func isQuit(cmd tea.Cmd) bool {
	for _, msg := range collect(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEscape}
	rightKey = tea.KeyMsg{Type: tea.KeyRight}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(x, y int, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: button}
}

func TestOpeningQueryIsSummaryOnly(t *testing.T) {
	h := newHarness(t)

	if got := h.state.lastRequest(); got != state.Summary {
		t.Errorf("opening request = %v, want Summary", got)
	}
	if got := h.model.Tree().Sliders[0].Percent; got != 50 {
		t.Errorf("volume slider = %d, want 50", got)
	}
	if h.model.refreshing {
		t.Error("still refreshing after the opening snapshot")
	}
}

func TestStaleSnapshotIsDropped(t *testing.T) {
	h := newHarness(t)
	old := h.model.generation

	cmd := h.send(runeKey('r'))
	if h.model.generation != old+1 {
		t.Fatalf("generation = %d, want %d", h.model.generation, old+1)
	}

	stale := testSnapshot()
	stale.Volume = 10
	h.send(snapshotMsg{generation: old, snapshot: stale})
	if got := h.model.Tree().Sliders[0].Percent; got != 50 {
		t.Errorf("stale snapshot applied: volume = %d, want 50", got)
	}

	h.state.snap.Volume = 20
	h.drain(cmd)
	if got := h.model.Tree().Sliders[0].Percent; got != 20 {
		t.Errorf("fresh snapshot not applied: volume = %d, want 20", got)
	}
}

func TestEscapeDismisses(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(escKey)
	if !isQuit(cmd) {
		t.Fatal("Escape did not quit")
	}
	if !h.model.Done() {
		t.Error("model not done after Escape")
	}
	if got := h.overlay.State(); got != overlay.Dismissed {
		t.Errorf("overlay state = %v, want dismissed", got)
	}
	if h.model.ctx.Err() == nil {
		t.Error("session context not cancelled")
	}
}

func TestClicks(t *testing.T) {
	tests := []struct {
		name   string
		point  func(b overlay.Rect) (int, int)
		button tea.MouseButton
		quit   bool
	}{
		{
			name:   "left click outside",
			point:  func(b overlay.Rect) (int, int) { return 0, 39 },
			button: tea.MouseButtonLeft,
			quit:   true,
		},
		{
			name:   "right click outside",
			point:  func(b overlay.Rect) (int, int) { return b.X - 1, b.Y },
			button: tea.MouseButtonRight,
			quit:   true,
		},
		{
			name:   "click below panel",
			point:  func(b overlay.Rect) (int, int) { return b.X, b.Y + b.Height },
			button: tea.MouseButtonLeft,
			quit:   true,
		},
		{
			name:   "click inside",
			point:  func(b overlay.Rect) (int, int) { return b.X + 1, b.Y + 1 },
			button: tea.MouseButtonLeft,
			quit:   false,
		},
		{
			name:   "wheel outside",
			point:  func(b overlay.Rect) (int, int) { return 0, 0 },
			button: tea.MouseButtonWheelUp,
			quit:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			x, y := tt.point(h.overlay.Bounds())

			cmd := h.send(press(x, y, tt.button))
			if got := isQuit(cmd); got != tt.quit {
				t.Errorf("quit = %v, want %v", got, tt.quit)
			}
			if got := h.model.Done(); got != tt.quit {
				t.Errorf("Done() = %v, want %v", got, tt.quit)
			}
		})
	}
}

func TestBoundsFollowAnchorAndResize(t *testing.T) {
	h := newHarness(t)

	b := h.overlay.Bounds()
	if b.Width != 44 {
		t.Errorf("width = %d, want 44", b.Width)
	}
	if b.X != 120-1-44 || b.Y != 1 {
		t.Errorf("origin = (%d,%d), want (%d,1)", b.X, b.Y, 120-1-44)
	}

	h.send(tea.WindowSizeMsg{Width: 30, Height: 40})
	b = h.overlay.Bounds()
	if b.Width != 28 || b.X != 1 {
		t.Errorf("after resize: width = %d x = %d, want 28 and 1", b.Width, b.X)
	}
}

func TestAnchorOrigin(t *testing.T) {
	tests := []struct {
		anchor string
		x, y   int
	}{
		{config.AnchorTopRight, 70, 2},
		{config.AnchorTopLeft, 2, 2},
		{config.AnchorBottomRight, 70, 28},
		{config.AnchorBottomLeft, 2, 28},
	}

	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			x, y := anchorOrigin(tt.anchor, 100, 40, 28, 10, 2)
			if x != tt.x || y != tt.y {
				t.Errorf("anchorOrigin() = (%d,%d), want (%d,%d)", x, y, tt.x, tt.y)
			}
		})
	}

	if x, y := anchorOrigin(config.AnchorBottomRight, 10, 5, 28, 10, 2); x != 0 || y != 0 {
		t.Errorf("oversized box origin = (%d,%d), want (0,0)", x, y)
	}
}

func TestExpandFetchesDetail(t *testing.T) {
	h := newHarness(t)
	h.focusOn(t, moduleZone(module.IDNetwork))

	h.drain(h.send(enterKey))

	if !h.state.lastRequest().Has(state.WiFiList) {
		t.Errorf("request = %v, want WiFiList", h.state.lastRequest())
	}
	if len(h.runner.actions()) != 0 {
		t.Errorf("expansion went through the executor: %v", h.runner.actions())
	}

	var found bool
	for _, row := range h.model.Tree().Rows {
		for _, sec := range row.Sections {
			if sec.ID == module.IDNetwork {
				found = true
				if len(sec.Items) != 2 {
					t.Errorf("network items = %d, want 2", len(sec.Items))
				}
			}
		}
	}
	if !found {
		t.Fatal("network section not rendered")
	}

	// Focus stays on the tile that was activated.
	if tg, _ := h.model.focused(); tg.zone != moduleZone(module.IDNetwork) {
		t.Errorf("focus = %q, want network tile", tg.zone)
	}

	// Activating again collapses.
	h.drain(h.send(enterKey))
	if h.model.expansion.Has(module.IDNetwork) {
		t.Error("network still expanded")
	}
}


func TestFocusFollowsItemAcrossReorder(t *testing.T) {
	h := newHarness(t)
	h.focusOn(t, moduleZone(module.IDNetwork))
	h.drain(h.send(enterKey))

	h.focusOn(t, itemZone(module.IDNetwork, "cafe"))

	h.state.mu.Lock()
	h.state.snap.WiFiNetworks = []state.WiFiNetwork{
		{SSID: "cafe", Signal: 90},
		{SSID: "home", Signal: 60, Security: "WPA2", InUse: true},
	}
	h.state.mu.Unlock()
	h.drain(h.send(runeKey('r')))

	tg, ok := h.model.focused()
	if !ok {
		t.Fatal("nothing focused after refresh")
	}
	if tg.action.Target != "cafe" || tg.action.Kind != action.KindConnectWiFi {
		t.Errorf("focused action = %v, want connect to cafe", tg.action)
	}
}
func TestToggleRunsActionAndRebuilds(t *testing.T) {
	h := newHarness(t)
	h.focusOn(t, moduleZone(module.IDNightLight))
	before := h.model.generation

	h.drain(h.send(enterKey))

	ran := h.runner.actions()
	if len(ran) != 1 {
		t.Fatalf("actions run = %d, want 1", len(ran))
	}
	want := action.Switch(action.KindNightLight, true)
	if ran[0] != want {
		t.Errorf("action = %v, want %v", ran[0], want)
	}
	if h.model.generation != before+1 {
		t.Errorf("generation = %d, want a rebuild to %d", h.model.generation, before+1)
	}
	if h.model.running {
		t.Error("executor still marked running")
	}
}

func TestActionsAreSerialized(t *testing.T) {
	h := newHarness(t)
	h.focusOn(t, sliderZone(module.IDVolume))

	first := h.send(rightKey)
	h.send(rightKey)
	h.send(rightKey)

	if got := h.model.Tree().Sliders[0].Percent; got != 65 {
		t.Errorf("displayed volume = %d, want 65", got)
	}
	if len(h.model.queue) != 1 {
		t.Fatalf("queue = %v, want one coalesced level", h.model.queue)
	}
	if got := h.model.queue[0]; got != action.Level(action.KindVolume, 65) {
		t.Errorf("queued = %v, want volume(65)", got)
	}

	// Finishing the first action starts the queued one.
	for _, msg := range collect(first) {
		h.drain(h.send(msg))
	}

	ran := h.runner.actions()
	if len(ran) != 2 {
		t.Fatalf("actions run = %v, want 2", ran)
	}
	if ran[0].Level != 55 || ran[1].Level != 65 {
		t.Errorf("levels = %d, %d, want 55, 65", ran[0].Level, ran[1].Level)
	}
	if len(h.model.queue) != 0 || h.model.running {
		t.Error("queue not drained")
	}
}

func TestOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		outcome  action.Outcome
		expanded []string
		quit     bool
		want     []string
	}{
		{
			name:    "close",
			outcome: action.Outcome{Close: true},
			quit:    true,
		},
		{
			name:     "collapse all",
			outcome:  action.Outcome{Rebuild: true, CollapseAll: true},
			expanded: []string{module.IDNetwork},
		},
		{
			name:     "collapse one",
			outcome:  action.Outcome{Rebuild: true, Collapse: module.IDPowerMode},
			expanded: []string{module.IDPowerMode},
		},
		{
			name:     "rebuild keeps expansion",
			outcome:  action.Outcome{Rebuild: true},
			expanded: []string{module.IDBluetooth},
			want:     []string{module.IDBluetooth},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			for _, id := range tt.expanded {
				h.model.expansion.Toggle(id)
			}
			h.model.running = true

			cmd := h.send(actionDoneMsg{outcome: tt.outcome})
			if got := isQuit(cmd); got != tt.quit {
				t.Fatalf("quit = %v, want %v", got, tt.quit)
			}
			if tt.quit {
				return
			}

			ids := h.model.expansion.IDs()
			if strings.Join(ids, ",") != strings.Join(tt.want, ",") {
				t.Errorf("expanded = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestLauncherClosesPanel(t *testing.T) {
	h := newHarness(t)
	h.runner.outcomes[action.KindLaunch] = action.Outcome{Close: true}
	h.focusOn(t, buttonZone(module.IDSettings))

	cmd := h.send(enterKey)
	var quit bool
	for _, msg := range collect(cmd) {
		quit = quit || isQuit(h.send(msg))
	}

	if !quit {
		t.Fatal("launcher did not close the panel")
	}
	if got := h.overlay.State(); got != overlay.Dismissed {
		t.Errorf("overlay state = %v, want dismissed", got)
	}
}

func TestDismissalAbandonsInFlightWork(t *testing.T) {
	h := newHarness(t)
	refresh := h.send(runeKey('r'))
	h.focusOn(t, moduleZone(module.IDDarkStyle))
	run := h.send(enterKey)

	h.send(escKey)

	for _, msg := range collect(refresh) {
		if _, ok := msg.(snapshotMsg); ok {
			t.Error("snapshot delivered after dismissal")
		}
	}
	for _, msg := range collect(run) {
		if _, ok := msg.(actionDoneMsg); ok {
			t.Error("action result delivered after dismissal")
		}
	}
}

func TestFocusWraps(t *testing.T) {
	h := newHarness(t)
	n := len(h.model.targets)
	if n == 0 {
		t.Fatal("no focus targets")
	}

	h.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	if h.model.focus != n-1 {
		t.Errorf("focus = %d, want %d", h.model.focus, n-1)
	}
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	if h.model.focus != 0 {
		t.Errorf("focus = %d, want 0", h.model.focus)
	}
}

func TestViewPlacesPanel(t *testing.T) {
	h := newHarness(t)
	b := h.overlay.Bounds()

	lines := strings.Split(h.model.View(), "\n")
	if len(lines) != b.Y+b.Height {
		t.Fatalf("view has %d lines, want %d", len(lines), b.Y+b.Height)
	}
	for i := 0; i < b.Y; i++ {
		if lines[i] != "" {
			t.Errorf("line %d = %q, want blank", i, lines[i])
		}
	}
	top := lines[b.Y]
	if !strings.HasPrefix(top, strings.Repeat(" ", b.X)+"╭") {
		t.Errorf("top border not at column %d: %q", b.X, top)
	}

	view := h.model.View()
	for _, want := range []string{"Network", "home", "Night Light", "esc"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	h.send(escKey)
	if got := h.model.View(); got != "" {
		t.Errorf("view after dismissal = %q, want empty", got)
	}
}
