package integrators

import (
	"fmt"
	"sort"
)

var registry = map[string]func() Stepper{
	"euler":    func() Stepper { return NewEuler() },
	"rk4":      func() Stepper { return NewRK4() },
	"verlet":   func() Stepper { return NewVerlet() },
	"leapfrog": func() Stepper { return NewLeapfrog() },
}

// Get returns a fresh stepper by name.
func Get(name string) (Stepper, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

// Names lists registered integrators in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
