package mathml

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var measure = regexp.MustCompile(`^(-?[0-9]*(?:\.[0-9]+)?)\s*(%|[a-z]*)$`)

// namedSpaces are MathML named lengths in em
var namedSpaces = map[string]float32{
	"veryverythinmathspace":          1.0 / 18,
	"verythinmathspace":              2.0 / 18,
	"thinmathspace":                  3.0 / 18,
	"mediummathspace":                4.0 / 18,
	"thickmathspace":                 5.0 / 18,
	"verythickmathspace":             6.0 / 18,
	"veryverythickmathspace":         7.0 / 18,
	"negativeveryverythinmathspace":  -1.0 / 18,
	"negativeverythinmathspace":      -2.0 / 18,
	"negativethinmathspace":          -3.0 / 18,
	"negativemediummathspace":        -4.0 / 18,
	"negativethickmathspace":         -5.0 / 18,
	"negativeverythickmathspace":     -6.0 / 18,
	"negativeveryverythickmathspace": -7.0 / 18,
}

// Measure parses length value, a number and units, for example: 0.5em, 3px, thinmathspace
func Measure(raw string) (float32, string, error) {
	raw = strings.TrimSpace(raw)
	if em, ok := namedSpaces[raw]; ok {
		return em, "em", nil
	}

	match := measure.FindStringSubmatch(raw)
	if len(match) == 0 || match[1] == "" || match[1] == "-" {
		return 0, "", errors.Errorf("unable to parse length %q", raw)
	}

	number, err := strconv.ParseFloat(match[1], 32)
	if err != nil {
		return 0, "", err
	}

	return float32(number), match[2], nil
}

// IsNegligibleWidth is true when the width is too narrow to be a meaningful gap,
// for example a thin space between a number and its unit.
func IsNegligibleWidth(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}

	value, unit, err := Measure(raw)
	if err != nil {
		return false
	}

	if value <= 0 {
		return true
	}

	switch unit {
	case "em", "rem":
		return value < 0.25
	case "ex":
		return value < 0.5
	case "px":
		return value < 6.1
	default:
		return false
	}
}
