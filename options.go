package rrecur

// Option configures an Iterator at construction time, the functional-
// options idiom cyp0633-libcaldora's server constructors and
// xfeldman-aegisvm's option constructors both use for optional
// constructor knobs, in preference to a bare boolean parameter.
type Option func(*iteratorConfig)

type iteratorConfig struct {
	yearlySkipUpperLimit bool
}

func defaultIteratorConfig() iteratorConfig {
	return iteratorConfig{yearlySkipUpperLimit: true}
}

// WithYearlySkipUpperLimit controls how a FREQ=YEARLY scan behaves when
// it runs off the end of the representable calendar (the horizon,
// 9999-12-31T23:59:59Z). When enabled (the default), the scan silently
// gives up and the cursor becomes exhausted. When disabled, it fails
// with ErrHorizonExceeded instead.
func WithYearlySkipUpperLimit(enabled bool) Option {
	return func(c *iteratorConfig) {
		c.yearlySkipUpperLimit = enabled
	}
}
