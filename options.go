package tally

import "log/slog"

// extractOptions holds the configuration accumulated by the fluent chain.
type extractOptions struct {
	// Page selection (1-indexed); nil means all pages.
	pages []int

	// Recognition / extraction language hint.
	language string

	// Per-backend acceptance thresholds by backend name.
	thresholds map[string]float64

	// Post-selection reconciliation.
	skipDedupe bool

	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		language: "por",
	}
}

// clone creates a deep copy of the options.
func (o extractOptions) clone() extractOptions {
	out := o
	if o.pages != nil {
		out.pages = make([]int, len(o.pages))
		copy(out.pages, o.pages)
	}
	if o.thresholds != nil {
		out.thresholds = make(map[string]float64, len(o.thresholds))
		for k, v := range o.thresholds {
			out.thresholds[k] = v
		}
	}
	return out
}
