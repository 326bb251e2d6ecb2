package steps

import "fmt"

// RadixBase is the digit base of the LSD radix sort, and so the size of each pass's count array
const RadixBase = 10

var radixLines = passLines{
	initCount:  3,
	initOutput: 3,
	count:      5,
	cumulative: 7,
	process:    8,
	place:      9,
	decrement:  10,
	copyBack:   12,
}

func digitAt(v, exp int) int {
	return (v / exp) % RadixBase
}

// radixPasses returns how many digit passes a maximum of maxVal needs (0 for maxVal == 0)
func radixPasses(maxVal int) int {
	passes := 0
	for exp := 1; maxVal/exp > 0; exp *= RadixBase {
		passes++
		if exp > maxVal/RadixBase {
			break
		}
	}
	return passes
}

// GenerateRadixSortSteps returns every micro-step of an LSD base-10 radix sort of arr.
// Each digit pass is a stable counting pass whose steps carry the pass exponent.
func GenerateRadixSortSteps(arr []int) []Step {
	if len(arr) == 0 {
		return nil
	}

	maxVal := 0
	for i, v := range arr {
		if v < 0 {
			return errorSequence(AuxCounting, intsToFloats(arr),
				"Invalid input: A[%d] = %d is negative; radix sort needs non-negative integers", i, v)
		}
		if v > maxVal {
			maxVal = v
		}
	}

	r := newCountingRecorder(arr)
	passes := radixPasses(maxVal)
	r.emit(PhaseInit, 1, highlight(), NoIndex, NoIndex,
		"Maximum value is %d, so %d digit pass(es) are needed", maxVal, passes)

	pass := 0
	for exp := 1; maxVal/exp > 0; exp *= RadixBase {
		pass++
		r.exp = exp
		r.count = []int{}
		r.output = []int{}
		r.emit(PhasePass, 2, highlight(), NoIndex, NoIndex,
			"Pass %d of %d: sorting by the digit at exp = %d", pass, passes, exp)

		e := exp
		r.countingPass(RadixBase,
			func(v int) int { return digitAt(v, e) },
			func(v int) string { return fmt.Sprintf("digit %d at exp %d", digitAt(v, e), e) },
			radixLines,
		)

		r.emit(PhasePass, 2, highlight(), NoIndex, NoIndex,
			"Pass %d of %d complete: array is sorted by its last %d digit(s)", pass, passes, pass)

		// exp would overflow before maxVal/exp reaches 0 only near the int limit
		if exp > maxVal/RadixBase {
			break
		}
	}

	r.done("Radix sort complete: %d elements sorted in %d pass(es)", len(arr), passes)
	return r.steps
}
