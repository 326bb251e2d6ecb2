package input

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/ChristianF88/linsort/steps"
)

// MaxValues bounds how many values a single replay accepts
const MaxValues = 64

// ParseValues parses numbers separated by commas and/or whitespace,
// e.g. "4, 2 2,8".
func ParseValues(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("please enter numbers first")
	}
	if len(fields) > MaxValues {
		return nil, fmt.Errorf("too many values: %d (maximum %d)", len(fields), MaxValues)
	}

	values := make([]float64, 0, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d (%q) is not a number: %w", i+1, field, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("value %d (%q) is not a finite number", i+1, field)
		}
		values = append(values, v)
	}
	return values, nil
}

// Validate checks values against the precondition of alg: non-negative
// integers for counting and radix sort, values in [0, 1) for bucket sort.
func Validate(alg steps.Algorithm, values []float64) error {
	switch alg {
	case steps.Counting, steps.Radix:
		for i, v := range values {
			if v < 0 || v != math.Trunc(v) {
				return fmt.Errorf("%s sort needs non-negative integers: value %d is %s", alg, i+1, steps.FormatValue(v))
			}
			if alg == steps.Counting && v >= steps.MaxCountingRange {
				return fmt.Errorf("counting sort values must be below %d: value %d is %s", steps.MaxCountingRange, i+1, steps.FormatValue(v))
			}
			if v > math.MaxInt32 {
				return fmt.Errorf("value %d is too large: %s", i+1, steps.FormatValue(v))
			}
		}
	case steps.Bucket:
		for i, v := range values {
			if v < 0 || v >= 1 {
				return fmt.Errorf("all numbers must be between 0 and 1 for bucket sort: value %d is %s", i+1, steps.FormatValue(v))
			}
		}
	default:
		return fmt.Errorf("unknown algorithm %q", alg)
	}
	return nil
}

// ParseFor parses s and validates the result for alg
func ParseFor(alg steps.Algorithm, s string) ([]float64, error) {
	values, err := ParseValues(s)
	if err != nil {
		return nil, err
	}
	if err := Validate(alg, values); err != nil {
		return nil, err
	}
	return values, nil
}

// Random returns n values suited to alg, reproducible for a given seed:
// integers below 100 for counting sort, below 1000 for radix sort, and
// two-decimal values in [0, 1) for bucket sort.
func Random(alg steps.Algorithm, n int, seed int64) ([]float64, error) {
	if n <= 0 || n > MaxValues {
		return nil, fmt.Errorf("random array size must be between 1 and %d, got %d", MaxValues, n)
	}
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	for i := range values {
		switch alg {
		case steps.Counting:
			values[i] = float64(rng.Intn(100))
		case steps.Radix:
			values[i] = float64(rng.Intn(1000))
		case steps.Bucket:
			values[i] = float64(rng.Intn(100)) / 100
		default:
			return nil, fmt.Errorf("unknown algorithm %q", alg)
		}
	}
	return values, nil
}

// Format renders values as a comma separated list that ParseValues accepts
func Format(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = steps.FormatValue(v)
	}
	return strings.Join(parts, ", ")
}
