package viz

import (
	"bytes"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/swsim/internal/ocean"
)

func TestGlyph(t *testing.T) {
	tests := []struct {
		u, v float64
		want rune
	}{
		{1, 0, '→'},
		{0, 1, '↓'},
		{-1, 0, '←'},
		{0, -1, '↑'},
		{1, 1, '↘'},
		{-1, -1, '↖'},
		{1, -1, '↗'},
		{-1, 1, '↙'},
		{1e-6, 0, '·'},
	}
	for _, tt := range tests {
		if got := glyph(tt.u, tt.v, 1, 0.01); got != tt.want {
			t.Errorf("glyph(%g, %g) = %c, want %c", tt.u, tt.v, got, tt.want)
		}
	}
}

func TestPaletteIndex(t *testing.T) {
	p := NewPalette("viridis", 0.5)
	last := len(p.Colors()) - 1
	tests := []struct {
		h    float64
		want int
	}{
		{-0.5, 0},
		{-3, 0},
		{0.5, last},
		{10, last},
		{0, 128},
	}
	for _, tt := range tests {
		if got := p.Index(tt.h); got != tt.want {
			t.Errorf("Index(%g) = %d, want %d", tt.h, got, tt.want)
		}
	}
	if hex := p.Hex(0); len(hex) != 7 || hex[0] != '#' {
		t.Errorf("Hex(0) = %q", hex)
	}
}

func TestPaletteFallbacks(t *testing.T) {
	p := NewPalette("nope", 0)
	if p.Name != "viridis" || p.Limit != 0.5 {
		t.Errorf("got %s/%g, want viridis/0.5", p.Name, p.Limit)
	}
	for _, name := range PaletteNames() {
		if got := NewPalette(name, 1).Name; got != name {
			t.Errorf("NewPalette(%q).Name = %q", name, got)
		}
	}
}

func stillEngine(t *testing.T) *ocean.Engine {
	t.Helper()
	p := ocean.DefaultParams()
	p.Rotation, p.Wind = ocean.RotationNone, ocean.WindCalm
	e, err := ocean.New(p)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestHeatMapRender(t *testing.T) {
	e := stillEngine(t)
	e.Advance(144)
	out := NewHeatMap(NewPalette("viridis", 0.5), 30).Render(e.Snapshot())

	if !strings.HasPrefix(out, "Time: 1.0 days\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(out, "\n", 2)[0])
	}
	if n := strings.Count(out, "\n"); n != 11 {
		t.Errorf("got %d lines, want 11", n)
	}
	if n := strings.Count(out, "·"); n != 100 {
		t.Errorf("still ocean should show 100 dots, got %d", n)
	}
}

func TestHeatMapShowsTowerOutflow(t *testing.T) {
	p := ocean.DefaultParams()
	p.Wind, p.Perturbation = ocean.WindCalm, ocean.PerturbTower
	e, err := ocean.New(p)
	if err != nil {
		t.Fatal(err)
	}
	e.Advance(1)
	out := NewHeatMap(NewPalette("viridis", 0.5), 1e4).Render(e.Snapshot())
	for _, r := range "→↓↖" {
		if !strings.ContainsRune(out, r) {
			t.Errorf("expected %c in outflow:\n%s", r, out)
		}
	}
}

func TestDays(t *testing.T) {
	tests := map[float64]string{
		0:      "0.0 days",
		86400:  "1.0 days",
		129600: "1.5 days",
		86399:  "0.9 days",
	}
	for secs, want := range tests {
		if got := Days(secs); got != want {
			t.Errorf("Days(%g) = %q, want %q", secs, got, want)
		}
	}
}

func TestRecorderEncode(t *testing.T) {
	e := stillEngine(t)
	rec := NewRecorder(NewPalette("turbo", 0.5), 2, 7)
	for i := 0; i < 3; i++ {
		rec.OnFrame(e.Snapshot())
		e.Advance(1)
	}
	if rec.Frames() != 3 {
		t.Fatalf("Frames() = %d, want 3", rec.Frames())
	}

	var buf bytes.Buffer
	if err := rec.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Fatalf("decoded %d frames, want 3", len(anim.Image))
	}
	if b := anim.Image[0].Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Errorf("frame bounds %v, want 20x20", b)
	}
	if anim.Delay[2] != 7 {
		t.Errorf("delay = %d, want 7", anim.Delay[2])
	}

	rec.Reset()
	if rec.Frames() != 0 {
		t.Error("Reset should drop frames")
	}
}

func TestDump(t *testing.T) {
	e := stillEngine(t)
	e.Advance(2)
	var buf bytes.Buffer
	if err := Dump(&buf, e); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "time step 2") {
		t.Errorf("unexpected header in %q", out[:min(len(out), 40)])
	}
	for _, name := range []string{"H", "dHdX", "dHdY", "U", "dUdX", "rotV", "V", "dVdY", "rotU", "dHdT", "dUdT", "dVdT"} {
		if !strings.Contains(out, "\n"+name+"\n") {
			t.Errorf("dump missing field %s", name)
		}
	}
}

func newModel(t *testing.T) Model {
	t.Helper()
	p := ocean.DefaultParams()
	p.Perturbation = ocean.PerturbTower
	m, err := NewModel("tower", p, 4, NewHeatMap(NewPalette("viridis", 0.5), 30))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTickAdvancesBurst(t *testing.T) {
	m := newModel(t)
	m = update(m, TickMsg(time.Now()))
	m = update(m, TickMsg(time.Now()))
	if got := m.Engine().Steps(); got != 8 {
		t.Errorf("Steps() = %d, want 8", got)
	}
	if len(m.energy) != 2 {
		t.Errorf("energy history = %d, want 2", len(m.energy))
	}
}

func TestModelPause(t *testing.T) {
	m := newModel(t)
	m = update(m, runes(" "))
	if m.Running() {
		t.Fatal("space should pause")
	}
	m = update(m, TickMsg(time.Now()))
	if m.Engine().Steps() != 0 {
		t.Error("paused model should not advance")
	}
}

func TestModelBurstKeys(t *testing.T) {
	m := newModel(t)
	m = update(m, runes("+"))
	if m.Burst() != 8 {
		t.Errorf("after + burst = %d, want 8", m.Burst())
	}
	for i := 0; i < 10; i++ {
		m = update(m, runes("-"))
	}
	if m.Burst() != 1 {
		t.Errorf("burst should floor at 1, got %d", m.Burst())
	}
}

func TestModelReset(t *testing.T) {
	m := newModel(t)
	m = update(m, TickMsg(time.Now()))
	m = update(m, runes("r"))
	if m.Engine().Steps() != 0 || len(m.energy) != 0 {
		t.Error("reset should rebuild the engine and clear history")
	}
}

func TestModelRecordsGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	m := newModel(t)
	m.gifPath = func() string { return path }

	m = update(m, runes("g"))
	if !m.Recording() {
		t.Fatal("g should start recording")
	}
	m = update(m, TickMsg(time.Now()))
	m = update(m, TickMsg(time.Now()))
	m = update(m, runes("g"))
	if m.Recording() {
		t.Fatal("second g should stop recording")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("gif not written: %v", err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 2 {
		t.Errorf("got %d frames, want 2", len(anim.Image))
	}
}

func TestModelView(t *testing.T) {
	m := newModel(t)
	m = update(m, TickMsg(time.Now()))
	m = update(m, TickMsg(time.Now()))
	view := m.View()
	for _, want := range []string{"TOWER", "RUNNING", "Burst", "Energy"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
