// Package dice holds die specs, roll results and the random sources that
// produce them.
package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MinCount = 1
	MaxCount = 20

	// MaxSides bounds the side count so that MaxCount dice always sum
	// exactly in an int, including on 32-bit platforms.
	MaxSides = 1_000_000
)

// StandardSides lists the die types offered by the controls, in display order.
var StandardSides = []int{4, 6, 8, 10, 12, 20, 100}

// ErrInvalidConfiguration is returned when a die spec is out of bounds.
var ErrInvalidConfiguration = errors.New("invalid dice configuration")

// Spec is a (count, sides) pair, e.g. 2d6.
type Spec struct {
	Count int `json:"count" yaml:"count"`
	Sides int `json:"sides" yaml:"sides"`
}

// Configure validates count and sides and returns the resulting Spec.
func Configure(count, sides int) (Spec, error) {
	spec := Spec{Count: count, Sides: sides}
	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// Validate reports whether the spec can be rolled.
func (s Spec) Validate() error {
	if s.Count < MinCount || s.Count > MaxCount {
		return fmt.Errorf("%w: die count must be %d-%d, got %d", ErrInvalidConfiguration, MinCount, MaxCount, s.Count)
	}
	if s.Sides < 1 || s.Sides > MaxSides {
		return fmt.Errorf("%w: side count must be 1-%d, got %d", ErrInvalidConfiguration, MaxSides, s.Sides)
	}
	return nil
}

func (s Spec) String() string {
	return strconv.Itoa(s.Count) + "d" + strconv.Itoa(s.Sides)
}

// Result is one complete roll. It is not modified after creation.
type Result struct {
	Spec   Spec
	Values []int
}

// Total returns the exact sum of the rolled values.
func (r Result) Total() int {
	total := 0
	for _, v := range r.Values {
		total += v
	}
	return total
}

// String renders the history form of the roll: "2d6 -> [3, 5] = 8".
func (r Result) String() string {
	return fmt.Sprintf("%s -> %s = %d", r.Spec, FormatValues(r.Values), r.Total())
}

// FormatValues renders values as "[3, 5]".
func FormatValues(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// NextSides returns the standard die type after sides, wrapping around.
// Non-standard sides move to the first standard type larger than them.
func NextSides(sides int) int {
	for _, s := range StandardSides {
		if s > sides {
			return s
		}
	}
	return StandardSides[0]
}

// PrevSides is the inverse of NextSides.
func PrevSides(sides int) int {
	for i := len(StandardSides) - 1; i >= 0; i-- {
		if StandardSides[i] < sides {
			return StandardSides[i]
		}
	}
	return StandardSides[len(StandardSides)-1]
}
