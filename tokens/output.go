package tokens

// Defaults for OutputEstimator.
const (
	// DefaultOutputRatio assumes a response three times the size of the request.
	DefaultOutputRatio = 3.0

	// DefaultFloor is the smallest output estimate. Task descriptions are short
	// and the work they describe is not, so the floor usually dominates.
	DefaultFloor = 1000.0
)

// OutputEstimator predicts output tokens for a task description.
type OutputEstimator struct {
	counter Counter
	ratio   float64
	floor   float64
}

// OutputOption configures an OutputEstimator.
type OutputOption func(*OutputEstimator)

// WithCounter sets the counter used for the description itself.
func WithCounter(c Counter) OutputOption {
	return func(e *OutputEstimator) {
		if c != nil {
			e.counter = c
		}
	}
}

// WithOutputRatio sets output tokens per description token. Values <= 0 are ignored.
func WithOutputRatio(ratio float64) OutputOption {
	return func(e *OutputEstimator) {
		if ratio > 0 {
			e.ratio = ratio
		}
	}
}

// WithFloor sets the minimum estimate. Negative values are ignored.
func WithFloor(floor float64) OutputOption {
	return func(e *OutputEstimator) {
		if floor >= 0 {
			e.floor = floor
		}
	}
}

// NewOutputEstimator creates an estimator with the default counter, ratio and floor.
func NewOutputEstimator(opts ...OutputOption) *OutputEstimator {
	e := &OutputEstimator{
		counter: NewEstimatingCounter(),
		ratio:   DefaultOutputRatio,
		floor:   DefaultFloor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate returns the expected output tokens for description:
// the counted tokens times the ratio, but never less than the floor.
func (e *OutputEstimator) Estimate(description string) float64 {
	est := float64(e.counter.Count(description)) * e.ratio
	if est < e.floor {
		return e.floor
	}
	return est
}
