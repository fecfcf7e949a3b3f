package dice

import "go.uber.org/zap"

// RollOnce returns spec.Count independent uniform draws in [1, spec.Sides].
//
// The spec must already be valid.
func RollOnce(src Source, spec Spec) []int {
	values := make([]int, spec.Count)
	for i := range values {
		values[i] = src.Intn(spec.Sides) + 1
	}
	return values
}

// Roll validates spec and rolls it.
func Roll(src Source, spec Spec) (Result, error) {
	if err := spec.Validate(); err != nil {
		return Result{}, err
	}
	return Result{Spec: spec, Values: RollOnce(src, spec)}, nil
}

// Roller wraps a Source and logs every authoritative roll at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller. A nil logger disables logging.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Source returns the underlying randomness provider.
func (r *Roller) Source() Source { return r.src }

// Roll rolls spec and logs the outcome.
func (r *Roller) Roll(spec Spec) (Result, error) {
	if err := spec.Validate(); err != nil {
		return Result{}, err
	}
	return r.rollValid(spec), nil
}

// rollValid rolls and logs a spec the caller has already validated.
func (r *Roller) rollValid(spec Spec) Result {
	result := Result{Spec: spec, Values: RollOnce(r.src, spec)}
	r.logger.Debug("dice roll",
		zap.Stringer("spec", spec),
		zap.Ints("dice", result.Values),
		zap.Int("total", result.Total()),
	)
	return result
}
