package registry

import "sync"

// DefaultUnits returns fresh copies of the built-in units, so a Builder can
// extend them without touching the shared default registry.
func DefaultUnits() []*Unit {
	return []*Unit{
		// length, base meter
		Base("meter", Length, "m", "metre", "meters", "metres"),
		Linear("inch", Length, 0.0254, "in", "inches"),
		Linear("thou", Length, 0.0000254, "mil"),
		Linear("foot", Length, 0.3048, "ft", "feet"),
		Linear("yard", Length, 0.9144, "yd", "yards"),
		Linear("mile", Length, 1609.344, "mi", "miles"),
		Linear("league", Length, 4828.0417, "leagues"),
		Linear("nauticalmile", Length, 1852, "nmi"),

		// time, base second
		Base("second", Time, "s", "sec", "secs", "seconds"),
		Linear("minute", Time, 60, "min", "mins", "minutes"),
		Linear("hour", Time, 3600, "h", "hr", "hrs", "hours"),
		Linear("day", Time, 86400, "d", "days"),
		Linear("week", Time, 604800, "wk", "weeks"),
		// apparent interval between two returns of the Sun to the same
		// meridian on Mars
		Linear("sol", Time, 88740.244, "sols"),

		// mass, base gram
		Base("gram", Mass, "g", "grams"),
		Linear("tonne", Mass, 1e6, "t", "tonnes"),
		Linear("pound", Mass, 453.59237, "lb", "lbs", "pounds"),
		Linear("ounce", Mass, 28.349523125, "oz", "ounces"),
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of built-in units. It panics if the built-in
// table is inconsistent, which the tests guard against.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewBuilder().Add(DefaultUnits()...).Build()
		if err != nil {
			panic("registry: built-in units: " + err.Error())
		}
		defaultRegistry = r
	})
	return defaultRegistry
}
