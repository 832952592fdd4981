package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/springrk/internal/frame"
	"github.com/san-kum/springrk/internal/spring"
	"go.uber.org/zap"
)

const (
	canvasWidth     = 60
	canvasHeight    = 5
	historyCapacity = 240
	coils           = 8
)

// Options configures the live view. Spring options are applied before the
// host's scheduler and clock, so they cannot replace them.
type Options struct {
	Preset string
	// Theme names the starting color theme; unknown names use the first.
	Theme  string
	Spring []spring.Option
	From   float64
	To     float64
	FPS    int
	Clock  frame.Clock
	Logger *zap.Logger
}

// track records the values delivered by the spring. It lives behind a
// pointer because frame callbacks outlive any single copy of Model.
type track struct {
	values []float64
}

func (t *track) record(v float64) {
	if len(t.values) == historyCapacity {
		copy(t.values, t.values[1:])
		t.values = t.values[:historyCapacity-1]
	}
	t.values = append(t.values, v)
}

// Model is the Bubble Tea model of the live view.
type Model struct {
	host     *Host
	spring   *spring.Spring
	track    *track
	canvas   *Canvas
	help     help.Model
	theme    Theme
	styles   styles
	presets  []string
	preset   int
	from, to float64
	width    int
}

// NewModel builds the spring on a fresh Host, resting at opts.From.
func NewModel(opts Options) (Model, error) {
	if opts.FPS <= 0 {
		opts.FPS = frame.DefaultFPS
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	host := NewHost(opts.FPS, opts.Clock)
	springOpts := append(append([]spring.Option{}, opts.Spring...),
		spring.WithInitialValue(opts.From),
		spring.WithTarget(opts.From),
		spring.WithScheduler(host),
		spring.WithClock(host),
		spring.WithLogger(opts.Logger.Named("spring")),
	)

	presets := spring.Presets()
	preset := -1
	var s *spring.Spring
	if opts.Preset != "" {
		var err error
		s, err = spring.NewWithPreset(opts.Preset, springOpts...)
		if err != nil {
			return Model{}, err
		}
		for i, name := range presets {
			if name == opts.Preset {
				preset = i
			}
		}
	} else {
		s = spring.New(springOpts...)
	}

	theme := GetTheme(opts.Theme)
	return Model{
		host:    host,
		spring:  s,
		track:   &track{values: make([]float64, 0, historyCapacity)},
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		help:    help.New(),
		theme:   theme,
		styles:  newStyles(theme),
		presets: presets,
		preset:  preset,
		from:    opts.From,
		to:      opts.To,
		width:   canvasWidth,
	}, nil
}

// Spring exposes the animated spring, mainly for tests.
func (m Model) Spring() *spring.Spring { return m.spring }

// History returns the recorded values, oldest first.
func (m Model) History() []float64 { return m.track.values }

// Preset returns the name of the active preset, or "custom".
func (m Model) Preset() string {
	if m.preset < 0 {
		return "custom"
	}
	return m.presets[m.preset]
}

// Init sends the spring towards the far end.
func (m Model) Init() tea.Cmd {
	m.spring.Start(m.to, m.track.record)
	return m.host.Tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.spring.Stop()
			return m, tea.Quit
		case key.Matches(msg, keys.Retarget):
			m.retarget()
		case key.Matches(msg, keys.Reset):
			m.reset()
		case key.Matches(msg, keys.Preset):
			m.nextPreset()
		case key.Matches(msg, keys.Stop):
			m.spring.Stop()
		case key.Matches(msg, keys.Theme):
			m.theme = nextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case FrameMsg:
		m.host.Fire()
	}

	return m, m.host.Tick()
}

// retarget sends the spring to whichever end it is not already heading for.
func (m *Model) retarget() {
	target := m.to
	if m.spring.Target() == m.to {
		target = m.from
	}
	m.spring.Start(target, m.track.record)
}

func (m *Model) reset() {
	m.spring.Stop()
	m.spring.SetValue(m.from, true)
	m.track.values = m.track.values[:0]
	m.spring.Start(m.from, m.track.record)
}

// nextPreset retunes the spring in place; an animation in flight continues
// with the new physics.
func (m *Model) nextPreset() {
	if len(m.presets) == 0 {
		return
	}
	m.preset = (m.preset + 1) % len(m.presets)
	m.spring.ApplyPreset(m.presets[m.preset])
}

// dotX maps a spring value onto the canvas, leaving a margin on both sides
// for overshoot.
func (m Model) dotX(v float64) int {
	lo, hi := math.Min(m.from, m.to), math.Max(m.from, m.to)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.25
	span *= 1.5

	x := int((v - lo) / span * float64(m.canvas.DotsWide()-1))
	return max(0, min(m.canvas.DotsWide()-1, x))
}

func (m Model) draw() {
	c := m.canvas
	c.Clear()

	mid := c.DotsHigh() / 2
	c.DrawLine(0, 0, 0, c.DotsHigh()-1)

	x := m.dotX(m.spring.Value())
	c.DrawCoil(1, x, mid, coils, c.DotsHigh()/4)
	c.DrawBlock(x, mid, 4, c.DotsHigh()/2)

	tx := m.dotX(m.spring.Target())
	for y := 0; y < c.DotsHigh(); y += 2 {
		c.Set(tx, y)
	}
}

func (m Model) View() string {
	m.draw()
	st := m.styles

	var s strings.Builder
	title := GradientText("SPRING · "+strings.ToUpper(m.Preset()), m.theme.Rest, m.theme.Stretched)
	s.WriteString(st.header.Render(title) + "\n")

	status := st.idle.Render("● IDLE")
	if m.spring.IsAnimating() {
		status = st.active.Render(AnimatedSpinner(m.spring.Frames()) + " ANIMATING")
	}
	s.WriteString(status + "\n\n")

	s.WriteString(st.panel.Render(m.canvas.String()) + "\n")

	span := m.to - m.from
	frac := 0.0
	if span != 0 {
		frac = (m.spring.Target() - m.spring.Value()) / span
	}
	s.WriteString(st.label.Render("Offset") + DisplacementBar(frac, 30, m.theme) + "\n")

	rows := []struct {
		label string
		value string
	}{
		{"Value", fmt.Sprintf("%.3f", m.spring.Value())},
		{"Velocity", fmt.Sprintf("%.3f", m.spring.Velocity())},
		{"Target", fmt.Sprintf("%.3f", m.spring.Target())},
		{"Energy", fmt.Sprintf("%.4f", m.spring.Energy())},
		{"Frames", fmt.Sprintf("%d", m.spring.Frames())},
		{"Physics", fmt.Sprintf("m=%.2f k=%.1f c=%.2f", m.spring.Mass(), m.spring.Tension(), m.spring.Friction())},
	}
	for _, r := range rows {
		s.WriteString(st.label.Render(r.label) + st.value.Render(r.value) + "\n")
	}

	if len(m.track.values) > 1 {
		chart := asciigraph.Plot(m.track.values,
			asciigraph.Height(6),
			asciigraph.Width(min(60, max(20, m.width-12))),
			asciigraph.Caption("value"),
		)
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}

	s.WriteString("\n" + Separator(min(60, m.width), st.muted) + "\n")
	s.WriteString(m.help.View(keys))
	return s.String()
}
