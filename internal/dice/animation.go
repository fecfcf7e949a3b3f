package dice

import "iter"

// DefaultFrameCount is the number of cosmetic frames shown before the real roll.
const DefaultFrameCount = 12

// Frame is one step of a roll animation. Only the Final frame is the real roll.
type Frame struct {
	Index  int
	Values []int
	Final  bool
}

// Result returns the frame as a Result for spec.
func (f Frame) Result(spec Spec) Result {
	return Result{Spec: spec, Values: f.Values}
}

// Animation is a finite, single-use sequence of frames: frameCount cosmetic
// frames followed by one final frame.
type Animation struct {
	spec       Spec
	frameCount int
	next       int
	cosmetic   func() []int
	final      func() []int
}

// NewAnimation builds an animation for a valid spec. Every frame is a fresh
// independent draw from src.
func NewAnimation(src Source, spec Spec, frameCount int) (*Animation, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	roll := func() []int { return RollOnce(src, spec) }
	return newAnimation(spec, frameCount, roll, roll), nil
}

// NewLoggedAnimation is NewAnimation with the final frame drawn by roller,
// so only the authoritative roll is logged.
func NewLoggedAnimation(roller *Roller, spec Spec, frameCount int) (*Animation, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	cosmetic := func() []int { return RollOnce(roller.Source(), spec) }
	final := func() []int { return roller.rollValid(spec).Values }
	return newAnimation(spec, frameCount, cosmetic, final), nil
}

func newAnimation(spec Spec, frameCount int, cosmetic, final func() []int) *Animation {
	if frameCount < 0 {
		frameCount = 0
	}
	return &Animation{spec: spec, frameCount: frameCount, cosmetic: cosmetic, final: final}
}

// Spec returns the spec being animated.
func (a *Animation) Spec() Spec { return a.spec }

// Len is the total number of frames including the final one.
func (a *Animation) Len() int { return a.frameCount + 1 }

// Next returns the next frame, or false once the final frame has been produced.
func (a *Animation) Next() (Frame, bool) {
	switch {
	case a.next < a.frameCount:
		f := Frame{Index: a.next, Values: a.cosmetic()}
		a.next++
		return f, true
	case a.next == a.frameCount:
		f := Frame{Index: a.next, Values: a.final(), Final: true}
		a.next++
		return f, true
	default:
		return Frame{}, false
	}
}

// All yields the remaining frames.
func (a *Animation) All() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for {
			f, ok := a.Next()
			if !ok || !yield(f) {
				return
			}
		}
	}
}
