package steps

import "fmt"

// MaxCountingRange caps the size of the count array (max value + 1) so a single
// large value cannot produce millions of cumulative-sum steps.
const MaxCountingRange = 1 << 16

// passLines maps each counting-pass operation to its pseudocode line.
// Counting sort and the radix digit pass share the same structure but not the same listing.
type passLines struct {
	initCount  int
	initOutput int
	count      int
	cumulative int
	process    int
	place      int
	decrement  int
	copyBack   int
}

var countingLines = passLines{
	initCount:  1,
	initOutput: 2,
	count:      4,
	cumulative: 6,
	process:    7,
	place:      8,
	decrement:  9,
	copyBack:   11,
}

// countingRecorder owns the working buffers of one counting or radix run and
// snapshots them into steps.
type countingRecorder struct {
	steps  []Step
	arr    []int
	count  []int
	output []int
	exp    int // digit exponent of the running radix pass, 0 for plain counting sort
}

func newCountingRecorder(arr []int) *countingRecorder {
	work := make([]int, len(arr))
	copy(work, arr)
	return &countingRecorder{
		arr:    work,
		count:  []int{},
		output: []int{},
	}
}

func (r *countingRecorder) emit(phase Phase, line int, highlighted []int, countIdx, outputIdx int, format string, args ...any) {
	r.steps = append(r.steps, Step{
		Array:       intsToFloats(r.arr),
		Highlighted: highlighted,
		Aux: Auxiliary{
			Kind: AuxCounting,
			Counting: &CountingAux{
				Count:         cloneInts(r.count),
				Output:        cloneInts(r.output),
				CountIndex:    countIdx,
				OutputIndex:   outputIdx,
				DigitExponent: r.exp,
			},
		},
		PseudocodeLine: line,
		Description:    fmt.Sprintf(format, args...),
		Phase:          phase,
	})
}

func (r *countingRecorder) done(format string, args ...any) {
	r.exp = 0
	r.emit(PhaseDone, 0, highlight(), NoIndex, NoIndex, format, args...)
}

// countingPass runs one stable counting pass over r.arr keyed by key, with k
// count slots, recording every micro-step. label names the key of a value in
// descriptions.
func (r *countingRecorder) countingPass(k int, key func(int) int, label func(int) string, lines passLines) {
	n := len(r.arr)

	r.count = make([]int, k)
	r.emit(PhaseInit, lines.initCount, highlight(), NoIndex, NoIndex,
		"Created count array of size %d filled with zeros", k)

	r.output = make([]int, n)
	for i := range r.output {
		r.output[i] = EmptySlot
	}
	r.emit(PhaseInit, lines.initOutput, highlight(), NoIndex, NoIndex,
		"Created empty output array of size %d", n)

	for i := 0; i < n; i++ {
		c := key(r.arr[i])
		r.count[c]++
		r.emit(PhaseCount, lines.count, highlight(i), c, NoIndex,
			"A[%d] = %d has %s: count[%d] is now %d", i, r.arr[i], label(r.arr[i]), c, r.count[c])
	}

	// Every slot is summed, but adding an empty slot changes nothing and a lone
	// element always lands at output[0], so neither gets a step of its own.
	for i := 1; i < k; i++ {
		r.count[i] += r.count[i-1]
		if r.count[i-1] == 0 || n == 1 {
			continue
		}
		r.emit(PhaseCumulative, lines.cumulative, highlight(), i, NoIndex,
			"count[%d] += count[%d]: %d elements have a key <= %d", i, i-1, r.count[i], i)
	}

	// Right to left keeps equal keys in input order.
	for i := n - 1; i >= 0; i-- {
		v := r.arr[i]
		c := key(v)
		pos := r.count[c] - 1
		r.emit(PhasePlace, lines.process, highlight(i), c, NoIndex,
			"Processing A[%d] = %d (%s): count[%d] = %d, so it belongs at output[%d]", i, v, label(v), c, r.count[c], pos)

		r.output[pos] = v
		r.emit(PhasePlace, lines.place, highlight(i), c, pos,
			"Placed %d at output[%d]", v, pos)

		r.count[c]--
		r.emit(PhasePlace, lines.decrement, highlight(i), c, NoIndex,
			"Decremented count[%d] to %d for the next element with the same key", c, r.count[c])
	}

	for i := 0; i < n; i++ {
		r.arr[i] = r.output[i]
		r.emit(PhaseCopy, lines.copyBack, highlight(i), NoIndex, i,
			"Copied output[%d] = %d back to A[%d]", i, r.output[i], i)
	}
}

// GenerateCountingSortSteps returns every micro-step of a stable counting sort of arr.
// An empty input yields no steps. A negative value, or a range larger than
// MaxCountingRange, yields a single error step.
func GenerateCountingSortSteps(arr []int) []Step {
	if len(arr) == 0 {
		return nil
	}

	maxVal := 0
	for i, v := range arr {
		if v < 0 {
			return errorSequence(AuxCounting, intsToFloats(arr),
				"Invalid input: A[%d] = %d is negative; counting sort needs non-negative integers", i, v)
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal >= MaxCountingRange {
		return errorSequence(AuxCounting, intsToFloats(arr),
			"Invalid input: maximum %d needs a count array of %d slots, the limit is %d", maxVal, uint(maxVal)+1, MaxCountingRange)
	}

	r := newCountingRecorder(arr)
	r.countingPass(maxVal+1,
		func(v int) int { return v },
		func(v int) string { return fmt.Sprintf("value %d", v) },
		countingLines,
	)
	r.done("Counting sort complete: %d elements sorted", len(arr))
	return r.steps
}
