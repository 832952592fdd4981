package spring

import "sort"

// Preset is a named set of physical constants. A nil Friction means
// critical damping for the preset's mass and tension.
type Preset struct {
	Mass     float64
	Tension  float64
	Friction *float64
}

func friction(f float64) *float64 { return &f }

var presets = map[string]Preset{
	"gentle":   {Mass: 1, Tension: 120},
	"wobbly":   {Mass: 1, Tension: 180},
	"stiff":    {Mass: 1, Tension: 210},
	"slow":     {Mass: 1, Tension: 280},
	"molasses": {Mass: 1, Tension: 280, Friction: friction(120)},
}

// LookupPreset returns the named preset and whether it exists.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Presets lists the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p Preset) options() []Option {
	opts := []Option{WithMass(p.Mass), WithTension(p.Tension)}
	if p.Friction != nil {
		opts = append(opts, WithFriction(*p.Friction))
	}
	return opts
}
