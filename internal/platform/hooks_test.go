package platform

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type recordingPlugin struct {
	PluginBase
	calls      *[]string
	updateErr  error
	activate   bool
	onActivate func(*Platform)
	shutdowns  int
}

func newRecordingPlugin(name string, calls *[]string, hooks ...Hook) *recordingPlugin {
	return &recordingPlugin{
		PluginBase: PluginBase{PluginName: name, PluginHooks: hooks},
		calls:      calls,
		activate:   true,
	}
}

func (p *recordingPlugin) record(event string) {
	if p.calls != nil {
		*p.calls = append(*p.calls, p.PluginName+":"+event)
	}
}

func (p *recordingPlugin) Activate(pl *Platform, _ Arguments) bool {
	if p.onActivate != nil {
		p.onActivate(pl)
	}
	return p.activate
}

func (p *recordingPlugin) OnUpdate(float64) error {
	p.record("update")
	return p.updateErr
}

func (p *recordingPlugin) OnAppStart(app string) { p.record("start " + app) }
func (p *recordingPlugin) OnAppClose(app string) { p.record("close " + app) }
func (p *recordingPlugin) OnAppError(app string) { p.record("error " + app) }
func (p *recordingPlugin) OnPlatformClose() { p.record("platform-close") }

func (p *recordingPlugin) OnPostDraw(RenderContext) error {
	p.record("post-draw")
	return nil
}

func (p *recordingPlugin) Shutdown() {
	p.shutdowns++
	p.record("shutdown")
}

func TestHookString(t *testing.T) {
	tests := []struct {
		hook Hook
		want string
	}{
		{OnUpdate, "on-update"},
		{OnAppStart, "on-app-start"},
		{OnAppClose, "on-app-close"},
		{OnAppError, "on-app-error"},
		{OnPlatformClose, "on-platform-close"},
		{PostDraw, "post-draw"},
		{Hook(42), "hook(42)"},
	}
	for _, tt := range tests {
		if got := tt.hook.String(); got != tt.want {
			t.Fatalf("Hook(%d).String() = %q, want %q", int(tt.hook), got, tt.want)
		}
	}
}

func TestHookTableDispatchOrder(t *testing.T) {
	var calls []string
	table := NewHookTable()
	a := newRecordingPlugin("a", &calls)
	b := newRecordingPlugin("b", &calls)
	for _, p := range []Plugin{a, b} {
		if err := table.Subscribe(OnUpdate, p); err != nil {
			t.Fatalf("Subscribe() error: %v", err)
		}
	}

	if err := table.Dispatch(OnUpdate, func(p Plugin) error { return p.OnUpdate(0.016) }); err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	want := []string{"a:update", "b:update"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, calls)
	}
}

func TestHookTableDispatchMissIsNoop(t *testing.T) {
	table := NewHookTable()
	called := false
	if err := table.Dispatch(PostDraw, func(Plugin) error { called = true; return nil }); err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if called {
		t.Fatalf("expected no subscriber to be called")
	}
}

func TestHookTableDispatchStopsOnFirstError(t *testing.T) {
	var calls []string
	table := NewHookTable()
	boom := errors.New("boom")
	a := newRecordingPlugin("a", &calls)
	a.updateErr = boom
	b := newRecordingPlugin("b", &calls)
	_ = table.Subscribe(OnUpdate, a)
	_ = table.Subscribe(OnUpdate, b)

	err := table.Dispatch(OnUpdate, func(p Plugin) error { return p.OnUpdate(1) })
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if !strings.Contains(err.Error(), "on-update") || !strings.Contains(err.Error(), "a") {
		t.Fatalf("expected hook and plugin in error, got %q", err.Error())
	}
	if len(calls) != 1 {
		t.Fatalf("expected dispatch to stop after first error, got %v", calls)
	}
}

func TestHookTableSealed(t *testing.T) {
	table := NewHookTable()
	table.Seal()
	err := table.Subscribe(OnUpdate, newRecordingPlugin("late", nil))
	if !errors.Is(err, ErrHooksSealed) {
		t.Fatalf("expected ErrHooksSealed, got %v", err)
	}
	if len(table.Subscribers(OnUpdate)) != 0 {
		t.Fatalf("expected no subscribers after sealed subscribe")
	}
}

func TestHookTableSubscribersIsCopy(t *testing.T) {
	table := NewHookTable()
	p := newRecordingPlugin("a", nil)
	_ = table.Subscribe(OnAppStart, p)
	_ = table.Subscribe(OnAppStart, p)

	subs := table.Subscribers(OnAppStart)
	if len(subs) != 1 {
		t.Fatalf("expected duplicate subscribe to be ignored, got %d subscribers", len(subs))
	}
	subs[0] = nil
	if table.Subscribers(OnAppStart)[0] == nil {
		t.Fatalf("expected Subscribers to return a copy")
	}
}

// mapPlugin is a value-type plugin; its map field makes it uncomparable.
type mapPlugin struct {
	name   string
	hooks  []Hook
	counts map[string]int
}

func (p mapPlugin) Name() string { return p.name }
func (p mapPlugin) Description() string { return "" }
func (p mapPlugin) Tags() []Tag { return nil }
func (p mapPlugin) Hooks() []Hook { return p.hooks }
func (p mapPlugin) Activate(*Platform, Arguments) bool { return true }
func (p mapPlugin) OnAppStart(string) {}
func (p mapPlugin) OnAppClose(string) {}
func (p mapPlugin) OnAppError(string) {}
func (p mapPlugin) OnPlatformClose() {}
func (p mapPlugin) OnPostDraw(RenderContext) error { return nil }
func (p mapPlugin) Shutdown() {}

func (p mapPlugin) OnUpdate(float64) error {
	p.counts["update"]++
	return nil
}

func TestNewWithUncomparablePlugin(t *testing.T) {
	p := mapPlugin{name: "map", hooks: []Hook{OnUpdate, OnUpdate}, counts: map[string]int{}}
	pl, err := New(Options{Logger: testLogger(new(bytes.Buffer)), Plugins: []Plugin{p}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := len(pl.Hooks().Subscribers(OnUpdate)); got != 1 {
		t.Fatalf("expected 1 update subscriber, got %d", got)
	}
	if err := pl.Update(0.1); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if p.counts["update"] != 1 {
		t.Fatalf("expected one update, got %d", p.counts["update"])
	}
}

func TestHookTableSubscribeUncomparable(t *testing.T) {
	table := NewHookTable()
	a := mapPlugin{name: "a", counts: map[string]int{}}
	b := mapPlugin{name: "b", counts: map[string]int{}}
	if err := table.Subscribe(OnUpdate, a); err != nil {
		t.Fatalf("Subscribe(a) error: %v", err)
	}
	if err := table.Subscribe(OnUpdate, b); err != nil {
		t.Fatalf("Subscribe(b) error: %v", err)
	}
	if got := len(table.Subscribers(OnUpdate)); got != 2 {
		t.Fatalf("expected 2 subscribers, got %d", got)
	}
}
