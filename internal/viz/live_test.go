package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/springrk/internal/frame"
	"github.com/san-kum/springrk/internal/spring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frameMs = 1000.0 / 60

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// settle feeds frames to the model until the spring goes idle.
func settle(t *testing.T, m Model, clock *frame.Manual) Model {
	t.Helper()
	for i := 0; i < 2000 && m.Spring().IsAnimating(); i++ {
		clock.Advance(frameMs)
		next, _ := m.Update(FrameMsg{})
		m = next.(Model)
	}
	require.False(t, m.Spring().IsAnimating(), "spring did not settle")
	return m
}

func newTestModel(t *testing.T, opts Options) (Model, *frame.Manual) {
	t.Helper()
	clock := frame.NewManual()
	opts.Clock = clock
	m, err := NewModel(opts)
	require.NoError(t, err)
	return m, clock
}

func TestHostTick(t *testing.T) {
	t.Parallel()

	h := NewHost(60, frame.NewManual())
	assert.Nil(t, h.Tick(), "nothing pending")

	calls := 0
	h.RequestFrame(func(float64) { calls++ })
	assert.NotNil(t, h.Tick())
	assert.Nil(t, h.Tick(), "tick already in flight")

	assert.Equal(t, 1, h.Fire())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, h.Pending())
}

func TestHostCancel(t *testing.T) {
	t.Parallel()

	h := NewHost(60, frame.NewManual())
	fired := false
	handle := h.RequestFrame(func(float64) { fired = true })
	h.CancelFrame(handle)

	assert.Equal(t, 0, h.Fire())
	assert.False(t, fired)
}

func TestHostDefersNestedRequests(t *testing.T) {
	t.Parallel()

	h := NewHost(60, frame.NewManual())
	var order []int
	h.RequestFrame(func(float64) {
		order = append(order, 1)
		h.RequestFrame(func(float64) { order = append(order, 2) })
	})

	h.Fire()
	assert.Equal(t, []int{1}, order)
	h.Fire()
	assert.Equal(t, []int{1, 2}, order)
}

func TestModelAnimatesToTarget(t *testing.T) {
	t.Parallel()

	m, clock := newTestModel(t, Options{From: 0, To: 100})
	assert.Equal(t, 0.0, m.Spring().Value())

	cmd := m.Init()
	assert.NotNil(t, cmd)
	assert.True(t, m.Spring().IsAnimating())

	m = settle(t, m, clock)
	assert.Equal(t, 100.0, m.Spring().Value())
	hist := m.History()
	require.NotEmpty(t, hist)
	assert.Equal(t, 100.0, hist[len(hist)-1])
}

func TestModelRetargetAndReset(t *testing.T) {
	t.Parallel()

	m, clock := newTestModel(t, Options{From: 0, To: 10})
	m.Init()
	m = settle(t, m, clock)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, 0.0, m.Spring().Target())
	m = settle(t, m, clock)
	assert.Equal(t, 0.0, m.Spring().Value())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	clock.Advance(frameMs)
	next, _ = m.Update(FrameMsg{})
	m = next.(Model)
	require.True(t, m.Spring().IsAnimating())

	next, _ = m.Update(runes("r"))
	m = next.(Model)
	assert.False(t, m.Spring().IsAnimating())
	assert.Equal(t, 0.0, m.Spring().Value())
	assert.Equal(t, 0.0, m.Spring().Velocity())
}

func TestModelStop(t *testing.T) {
	t.Parallel()

	m, clock := newTestModel(t, Options{From: 0, To: 10})
	m.Init()
	clock.Advance(frameMs)
	next, _ := m.Update(FrameMsg{})
	m = next.(Model)

	next, _ = m.Update(runes("s"))
	m = next.(Model)
	assert.False(t, m.Spring().IsAnimating())
	stopped := m.Spring().Value()

	// a tick already in flight finds nothing to run
	clock.Advance(frameMs)
	next, cmd := m.Update(FrameMsg{})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, stopped, m.Spring().Value())
}

func TestModelCyclesPresets(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, Options{Preset: "gentle", To: 10})
	assert.Equal(t, "gentle", m.Preset())

	next, _ := m.Update(runes("p"))
	m = next.(Model)
	want, ok := spring.LookupPreset(m.Preset())
	require.True(t, ok)
	assert.NotEqual(t, "gentle", m.Preset())
	assert.Equal(t, want.Tension, m.Spring().Tension())
}

func TestModelUnknownPreset(t *testing.T) {
	t.Parallel()

	_, err := NewModel(Options{Preset: "bouncy"})
	assert.ErrorIs(t, err, spring.ErrPresetNotFound)
}

func TestModelView(t *testing.T) {
	t.Parallel()

	m, clock := newTestModel(t, Options{From: 0, To: 10})
	m.Init()
	clock.Advance(frameMs)
	next, _ := m.Update(FrameMsg{})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "ANIMATING")
	assert.Contains(t, view, "Velocity")
	assert.Contains(t, view, "retarget")

	next, cmd := m.Update(runes("q"))
	assert.NotNil(t, cmd)
	assert.False(t, next.(Model).Spring().IsAnimating())
}

func TestCanvasCoil(t *testing.T) {
	t.Parallel()

	c := NewCanvas(10, 2)
	assert.Equal(t, strings.Repeat(string(rune(brailleBlank)), 10)+"\n"+strings.Repeat(string(rune(brailleBlank)), 10), c.String())

	c.DrawCoil(0, 19, 4, 3, 2)
	assert.NotEqual(t, rune(brailleBlank), c.Grid[0][0]|c.Grid[1][0])
	assert.NotEqual(t, rune(brailleBlank), c.Grid[0][9]|c.Grid[1][9])

	c.Clear()
	c.Set(-1, 100)
	for _, row := range c.Grid {
		for _, r := range row {
			assert.Equal(t, rune(brailleBlank), r)
		}
	}
}

func TestBlend(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#ff0000", strings.ToLower(string(Blend("#ff0000", "#0000ff", 0))))
	assert.Equal(t, "#0000ff", strings.ToLower(string(Blend("#ff0000", "#0000ff", 2))))
	assert.Equal(t, "nope", string(Blend("nope", "#0000ff", 0.5)))
}

func TestModelTheme(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"cyberpunk", "retro", "ocean", "sunset"}, ThemeNames())

	m, _ := newTestModel(t, Options{Theme: "ocean", To: 10})
	assert.Equal(t, "ocean", m.theme.Name)

	next, _ := m.Update(runes("t"))
	assert.Equal(t, "sunset", next.(Model).theme.Name)

	m, _ = newTestModel(t, Options{Theme: "neon", To: 10})
	assert.Equal(t, ThemeNames()[0], m.theme.Name)
}
