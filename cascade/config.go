package cascade

// Config holds the orchestrator's acceptance thresholds. All values are
// flat numbers: the core never reads files or the environment.
type Config struct {
	// StageThresholds maps a backend name to the minimum quantity ratio
	// its attempt must reach to be accepted. Backends without an entry use
	// DefaultThreshold.
	StageThresholds map[string]float64

	// DefaultThreshold is the stage quantity-ratio threshold used when no
	// per-backend value is configured.
	DefaultThreshold float64

	// WeakItemCount and WeakQtyRatio define a weak attempt: even after an
	// acceptance, later (costlier) backends are still tried while the best
	// attempt so far has fewer records than WeakItemCount or a quantity
	// ratio below WeakQtyRatio.
	WeakItemCount int
	WeakQtyRatio  float64
}

// DefaultConfig returns the default cascade configuration.
func DefaultConfig() Config {
	return Config{
		StageThresholds:  map[string]float64{},
		DefaultThreshold: 0.5,
		WeakItemCount:    3,
		WeakQtyRatio:     0.3,
	}
}

// threshold returns the stage threshold for a backend.
func (c Config) threshold(backend string) float64 {
	if t, ok := c.StageThresholds[backend]; ok {
		return t
	}
	return c.DefaultThreshold
}
