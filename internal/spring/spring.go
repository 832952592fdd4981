package spring

import (
	"fmt"

	"github.com/san-kum/springrk/internal/frame"
	"github.com/san-kum/springrk/internal/integrators"
	"go.uber.org/zap"
)

const (
	DefaultMass      = 1.0
	DefaultTension   = 170.0
	DefaultPrecision = 0.01
)

// Callback receives the spring's current value.
type Callback func(value float64)

// State is a copy of a spring's physical and animation state.
type State struct {
	Mass      float64
	Tension   float64
	Friction  float64
	Precision float64
	Value     float64
	Velocity  float64
	Target    float64
	// LastTime is the clock reading of the previous step, 0 while idle.
	LastTime  float64
	Animating bool
}

type Spring struct {
	mass      float64
	tension   float64
	friction  float64
	precision float64

	value    float64
	velocity float64
	target   float64

	lastTime  float64
	animating bool
	frames    int
	maxDelta  float64

	onFrame  Callback
	onStart  Callback
	onUpdate Callback
	onEnd    Callback

	sched     frame.Scheduler
	clock     frame.Clock
	handle    frame.Handle
	scheduled bool
	gen       uint64

	integ integrators.RK4
	log   *zap.Logger
}

type settings struct {
	mass      float64
	tension   float64
	friction  *float64
	precision float64
	value     float64
	velocity  float64
	target    float64
	maxDelta  float64

	onStart  Callback
	onUpdate Callback
	onEnd    Callback

	sched  frame.Scheduler
	clock  frame.Clock
	logger *zap.Logger
}

type Option func(*settings)

func WithMass(m float64) Option         { return func(s *settings) { s.mass = m } }
func WithTension(k float64) Option      { return func(s *settings) { s.tension = k } }
func WithPrecision(p float64) Option    { return func(s *settings) { s.precision = p } }
func WithInitialValue(v float64) Option { return func(s *settings) { s.value = v } }
func WithVelocity(v float64) Option     { return func(s *settings) { s.velocity = v } }
func WithTarget(t float64) Option       { return func(s *settings) { s.target = t } }

// WithFriction sets the damping coefficient. Without it the spring is
// critically damped.
func WithFriction(c float64) Option { return func(s *settings) { s.friction = &c } }

// WithMaxDelta caps the seconds integrated in one frame. Zero disables the
// cap.
func WithMaxDelta(seconds float64) Option { return func(s *settings) { s.maxDelta = seconds } }

func OnStart(cb Callback) Option  { return func(s *settings) { s.onStart = cb } }
func OnUpdate(cb Callback) Option { return func(s *settings) { s.onUpdate = cb } }
func OnEnd(cb Callback) Option    { return func(s *settings) { s.onEnd = cb } }

func WithScheduler(sched frame.Scheduler) Option { return func(s *settings) { s.sched = sched } }
func WithClock(c frame.Clock) Option             { return func(s *settings) { s.clock = c } }
func WithLogger(l *zap.Logger) Option            { return func(s *settings) { s.logger = l } }

// New builds an idle spring. Without a scheduler frames are never requested
// and the caller drives Animate directly.
func New(opts ...Option) *Spring {
	cfg := settings{
		mass:      DefaultMass,
		tension:   DefaultTension,
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sched == nil {
		cfg.sched = frame.Nop{}
	}
	if cfg.clock == nil {
		cfg.clock = frame.NewSystemClock()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	s := &Spring{
		mass:      cfg.mass,
		tension:   cfg.tension,
		precision: cfg.precision,
		value:     cfg.value,
		velocity:  cfg.velocity,
		target:    cfg.target,
		maxDelta:  cfg.maxDelta,
		onStart:   cfg.onStart,
		onUpdate:  cfg.onUpdate,
		onEnd:     cfg.onEnd,
		sched:     cfg.sched,
		clock:     cfg.clock,
		log:       cfg.logger,
	}
	if cfg.friction != nil {
		s.friction = *cfg.friction
	} else {
		s.friction = s.CriticalDamping()
	}
	return s
}

// NewWithPreset builds a spring from a named preset; opts override the
// preset's values.
func NewWithPreset(name string, opts ...Option) (*Spring, error) {
	p, ok := LookupPreset(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	return New(append(p.options(), opts...)...), nil
}

// ApplyPreset replaces mass, tension and friction with a preset's values.
// Unknown names leave the spring untouched and report false.
func (s *Spring) ApplyPreset(name string) bool {
	p, ok := LookupPreset(name)
	if !ok {
		return false
	}
	s.mass = p.Mass
	s.tension = p.Tension
	if p.Friction != nil {
		s.friction = *p.Friction
	} else {
		s.friction = s.CriticalDamping()
	}
	s.log.Debug("preset applied", zap.String("preset", name))
	return true
}

func (s *Spring) Value() float64     { return s.value }
func (s *Spring) Velocity() float64  { return s.velocity }
func (s *Spring) Target() float64    { return s.target }
func (s *Spring) Mass() float64      { return s.mass }
func (s *Spring) Tension() float64   { return s.tension }
func (s *Spring) Friction() float64  { return s.friction }
func (s *Spring) Precision() float64 { return s.precision }
func (s *Spring) IsAnimating() bool  { return s.animating }

// Frames counts the steps taken since the last Start from idle.
func (s *Spring) Frames() int { return s.frames }

func (s *Spring) State() State {
	return State{
		Mass:      s.mass,
		Tension:   s.tension,
		Friction:  s.friction,
		Precision: s.precision,
		Value:     s.value,
		Velocity:  s.velocity,
		Target:    s.target,
		LastTime:  s.lastTime,
		Animating: s.animating,
	}
}
