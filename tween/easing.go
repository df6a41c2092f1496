package tween

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// easings only lists curves that never overshoot their end value, so every
// tween moves monotonically from From to To.
var easings = map[string]ease.TweenFunc{
	"none":         ease.Linear,
	"linear":       ease.Linear,
	"power1.in":    ease.InQuad,
	"power1.out":   ease.OutQuad,
	"power1.inOut": ease.InOutQuad,
	"power2.in":    ease.InCubic,
	"power2.out":   ease.OutCubic,
	"power2.inOut": ease.InOutCubic,
	"sine.in":      ease.InSine,
	"sine.out":     ease.OutSine,
	"sine.inOut":   ease.InOutSine,
}

// ParseEasing resolves an easing name such as "power2.out".
func ParseEasing(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (known: %v)", name, EasingNames())
	}
	return fn, nil
}

// MustEasing is ParseEasing for names known at compile time.
func MustEasing(name string) ease.TweenFunc {
	fn, err := ParseEasing(name)
	if err != nil {
		panic(err)
	}
	return fn
}

// EasingNames lists the accepted easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
