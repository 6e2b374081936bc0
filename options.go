package stabiliser

type checkOptions struct {
	allowGlobalFactor bool
	tolerance         float64
}

// CheckOption configures IsPauli, the Checker and the batch helpers.
type CheckOption func(*checkOptions)

// WithGlobalFactor accepts inputs that are a valid object times any nonzero scalar.
func WithGlobalFactor() CheckOption {
	return func(o *checkOptions) {
		o.allowGlobalFactor = true
	}
}

// WithTolerance sets the phase comparison tolerance. Non-positive values are ignored.
func WithTolerance(tol float64) CheckOption {
	return func(o *checkOptions) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

func newCheckOptions(opts []CheckOption) checkOptions {
	o := checkOptions{tolerance: DefaultTolerance}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
