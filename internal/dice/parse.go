package dice

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse parses a die spec such as "2d6", "d20" or "1D100".
// A missing count defaults to 1. The result is validated.
func Parse(expr string) (Spec, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Spec{}, fmt.Errorf("%w: empty die spec", ErrInvalidConfiguration)
	}
	countStr, sidesStr, ok := strings.Cut(s, "d")
	if !ok {
		return Spec{}, fmt.Errorf("%w: missing 'd' in %q", ErrInvalidConfiguration, expr)
	}

	count := 1
	if countStr != "" {
		var err error
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: invalid die count in %q", ErrInvalidConfiguration, expr)
		}
	}
	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: invalid side count in %q", ErrInvalidConfiguration, expr)
	}
	return Configure(count, sides)
}

// MustParse is Parse for package-level literals; it panics on error.
func MustParse(expr string) Spec {
	spec, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for " + expr + ": " + err.Error())
	}
	return spec
}

// Preset is a named quick roll.
type Preset struct {
	Name string
	Spec Spec
}

// DefaultPresets is the quick-roll row, in display order.
var DefaultPresets = []Preset{
	{Name: "1d4", Spec: MustParse("1d4")},
	{Name: "1d6", Spec: MustParse("1d6")},
	{Name: "1d8", Spec: MustParse("1d8")},
	{Name: "1d10", Spec: MustParse("1d10")},
	{Name: "1d12", Spec: MustParse("1d12")},
	{Name: "1d20", Spec: MustParse("1d20")},
	{Name: "2d6", Spec: MustParse("2d6")},
	{Name: "3d6", Spec: MustParse("3d6")},
	{Name: "4d6", Spec: MustParse("4d6")},
	{Name: "1d100", Spec: MustParse("1d100")},
}

// FindPreset looks a preset up by name (case-insensitive).
func FindPreset(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

type presetFile struct {
	Presets []struct {
		Name string `yaml:"name"`
		Dice string `yaml:"dice"`
	} `yaml:"presets"`
}

// LoadPresets reads a YAML preset list:
//
//	presets:
//	  - name: fireball
//	    dice: 8d6
//
// A missing name defaults to the dice string.
func LoadPresets(r io.Reader) ([]Preset, error) {
	var file presetFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding presets: %w", err)
	}
	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("preset file lists no presets")
	}
	out := make([]Preset, 0, len(file.Presets))
	for i, p := range file.Presets {
		spec, err := Parse(p.Dice)
		if err != nil {
			return nil, fmt.Errorf("preset %d: %w", i, err)
		}
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = spec.String()
		}
		out = append(out, Preset{Name: name, Spec: spec})
	}
	return out, nil
}
