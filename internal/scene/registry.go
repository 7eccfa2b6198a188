package scene

import (
	"fmt"
	"sort"
)

// Builder constructs a scene from tuning parameters.
type Builder func(p Params) *Scene

var builders = map[string]Builder{
	"cube":      Cube,
	"trebuchet": Trebuchet,
	"wheel":     Wheel,
	"pointgrav": PointGrav,
	"uplift":    Uplift,
	"damping":   Damping,
	"lighter":   Lighter,
}

// Build constructs the named scene.
func Build(name string, p Params) (*Scene, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s (available: %v)", name, List())
	}
	return b(p), nil
}

// List returns all scene names, sorted.
func List() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
