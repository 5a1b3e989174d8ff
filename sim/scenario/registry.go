package scenario

import (
	"fmt"
	"sort"

	"github.com/cosim-backend/cosim-backend/sim"
)

type entry struct {
	summary string
	build   func() sim.Scenario
}

var registry = map[string]entry{
	"simple": {"two nodes on a point-to-point link", func() sim.Scenario { return NewSimple() }},
	"tc3":    {"smart meters and tap changer behind a WiFi access point", func() sim.Scenario { return NewTC3() }},
	"lss2":   {"up to 100 devices in contending WiFi cells", func() sim.Scenario { return NewLSS2() }},
}

// IsValid reports whether name is a registered scenario.
func IsValid(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names returns the registered scenario names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summary returns a one-line description of a registered scenario.
func Summary(name string) string {
	return registry[name].summary
}

// New creates a fresh scenario by name.
func New(name string) (sim.Scenario, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q; valid scenarios: %v", name, Names())
	}
	return e.build(), nil
}
