package steps

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func lastOfPhase(t *testing.T, seq []Step, phase Phase) Step {
	t.Helper()
	for i := len(seq) - 1; i >= 0; i-- {
		if seq[i].Phase == phase {
			return seq[i]
		}
	}
	t.Fatalf("no step with phase %q", phase)
	return Step{}
}

func countPhase(seq []Step, phase Phase) int {
	n := 0
	for _, s := range seq {
		if s.Phase == phase {
			n++
		}
	}
	return n
}

func sortedInts(arr []int) []float64 {
	c := make([]int, len(arr))
	copy(c, arr)
	sort.Ints(c)
	return intsToFloats(c)
}

// placementOrder replays the placement steps of one counting pass and returns,
// for each output position, the input index that was written there.
func placementOrder(t *testing.T, pass []Step) []int {
	t.Helper()
	var order []int
	for _, s := range pass {
		if s.Phase == PhasePlace && s.Aux.Counting.OutputIndex != NoIndex {
			if order == nil {
				order = make([]int, len(s.Array))
			}
			order[s.Aux.Counting.OutputIndex] = s.Highlighted[0]
		}
	}
	return order
}

func TestGenerateCountingSortSteps_Empty(t *testing.T) {
	if seq := GenerateCountingSortSteps(nil); len(seq) != 0 {
		t.Errorf("expected empty sequence, got %d steps", len(seq))
	}
	if seq := GenerateCountingSortSteps([]int{}); len(seq) != 0 {
		t.Errorf("expected empty sequence, got %d steps", len(seq))
	}
}

func TestGenerateCountingSortSteps_Scenario(t *testing.T) {
	input := []int{4, 2, 2, 8, 3, 3, 1}
	seq := GenerateCountingSortSteps(input)

	final := seq[len(seq)-1]
	want := []float64{1, 2, 2, 3, 3, 4, 8}
	if !reflect.DeepEqual(final.Array, want) {
		t.Errorf("final array: expected %v, got %v", want, final.Array)
	}
	if final.PseudocodeLine != 0 || len(final.Highlighted) != 0 || final.Phase != PhaseDone {
		t.Errorf("terminal step malformed: %+v", final)
	}

	counted := lastOfPhase(t, seq, PhaseCount).Aux.Counting.Count
	if counted[2] != 2 || counted[3] != 2 {
		t.Errorf("after counting: expected count[2]=2 and count[3]=2, got %v", counted)
	}
	if len(counted) != 9 {
		t.Errorf("expected count array of size 9, got %d", len(counted))
	}

	cumulative := lastOfPhase(t, seq, PhaseCumulative).Aux.Counting.Count
	if cumulative[8] != 7 {
		t.Errorf("after prefix sum: expected count[8]=7, got %d", cumulative[8])
	}
	if !reflect.DeepEqual(cumulative, []int{0, 1, 3, 5, 6, 6, 6, 6, 7}) {
		t.Errorf("unexpected prefix sums %v", cumulative)
	}

	if got := countPhase(seq, PhaseCount); got != len(input) {
		t.Errorf("expected %d counting steps, got %d", len(input), got)
	}
	// count[0] is empty, so adding it into count[1] is skipped
	if got := countPhase(seq, PhaseCumulative); got != 7 {
		t.Errorf("expected 7 cumulative steps, got %d", got)
	}
	if got := countPhase(seq, PhasePlace); got != 3*len(input) {
		t.Errorf("expected %d placement steps, got %d", 3*len(input), got)
	}
	if got := countPhase(seq, PhaseCopy); got != len(input) {
		t.Errorf("expected %d copy steps, got %d", len(input), got)
	}
	if len(seq) != 45 {
		t.Errorf("expected 45 steps, got %d", len(seq))
	}
}

func TestGenerateCountingSortSteps_FirstStepsInitialize(t *testing.T) {
	seq := GenerateCountingSortSteps([]int{3, 1, 2})

	first := seq[0]
	if first.Phase != PhaseInit || first.PseudocodeLine != 1 {
		t.Errorf("first step should initialize count at line 1, got phase %q line %d", first.Phase, first.PseudocodeLine)
	}
	if !reflect.DeepEqual(first.Aux.Counting.Count, []int{0, 0, 0, 0}) {
		t.Errorf("expected zeroed count of size 4, got %v", first.Aux.Counting.Count)
	}

	second := seq[1]
	if second.PseudocodeLine != 2 {
		t.Errorf("second step should initialize output at line 2, got %d", second.PseudocodeLine)
	}
	for i, v := range second.Aux.Counting.Output {
		if v != EmptySlot {
			t.Errorf("output[%d] should be empty, got %d", i, v)
		}
	}
}

func TestGenerateCountingSortSteps_PlacementIsBackward(t *testing.T) {
	seq := GenerateCountingSortSteps([]int{2, 0, 1, 0})

	var sources []int
	for _, s := range seq {
		if s.Phase == PhasePlace && s.PseudocodeLine == countingLines.process {
			sources = append(sources, s.Highlighted[0])
		}
	}
	if !reflect.DeepEqual(sources, []int{3, 2, 1, 0}) {
		t.Errorf("expected right-to-left scan, got %v", sources)
	}

	// Each element gets processing, placement and decrement in that order.
	var lines []int
	for _, s := range seq {
		if s.Phase == PhasePlace {
			lines = append(lines, s.PseudocodeLine)
		}
	}
	for i := 0; i < len(lines); i += 3 {
		if lines[i] != 7 || lines[i+1] != 8 || lines[i+2] != 9 {
			t.Fatalf("placement triple %d has lines %v", i/3, lines[i:i+3])
		}
	}
}

func TestGenerateCountingSortSteps_Stable(t *testing.T) {
	input := []int{3, 1, 3, 0, 1, 3, 0, 2}
	seq := GenerateCountingSortSteps(input)
	order := placementOrder(t, seq)

	for pos := 1; pos < len(order); pos++ {
		a, b := order[pos-1], order[pos]
		if input[a] == input[b] && a > b {
			t.Errorf("equal keys out of input order at output %d: source %d before %d", pos, a, b)
		}
	}
}

func TestGenerateCountingSortSteps_AllEqual(t *testing.T) {
	input := []int{7, 7, 7, 7}
	seq := GenerateCountingSortSteps(input)

	counted := lastOfPhase(t, seq, PhaseCount).Aux.Counting.Count
	if counted[7] != 4 {
		t.Errorf("expected count[7]=4, got %d", counted[7])
	}
	if got := countPhase(seq, PhaseCumulative); got != 0 {
		t.Errorf("expected no cumulative steps when only the last slot is filled, got %d", got)
	}
	if !reflect.DeepEqual(seq[len(seq)-1].Array, []float64{7, 7, 7, 7}) {
		t.Errorf("unexpected final array %v", seq[len(seq)-1].Array)
	}
}

func TestGenerateCountingSortSteps_SingleElement(t *testing.T) {
	for _, v := range []int{0, 1, 42} {
		t.Run(fmt.Sprintf("value_%d", v), func(t *testing.T) {
			seq := GenerateCountingSortSteps([]int{v})
			if got := countPhase(seq, PhaseCumulative); got != 0 {
				t.Errorf("expected no cumulative steps, got %d", got)
			}
			if got := countPhase(seq, PhasePlace); got != 3 {
				t.Errorf("expected one placement (3 steps), got %d", got)
			}
			if !reflect.DeepEqual(seq[len(seq)-1].Array, []float64{float64(v)}) {
				t.Errorf("expected [%d], got %v", v, seq[len(seq)-1].Array)
			}
		})
	}
}

func TestGenerateCountingSortSteps_Negative(t *testing.T) {
	seq := GenerateCountingSortSteps([]int{3, -1, 2})
	if !IsError(seq) {
		t.Fatalf("expected a single error step, got %d steps", len(seq))
	}
	s := seq[0]
	if s.PseudocodeLine != 0 || len(s.Highlighted) != 0 {
		t.Errorf("error step should have no line and no highlights: %+v", s)
	}
	if !reflect.DeepEqual(s.Array, []float64{3, -1, 2}) {
		t.Errorf("error step should carry the input, got %v", s.Array)
	}
	if s.Aux.Kind != AuxCounting || s.Aux.Counting == nil {
		t.Errorf("error step should carry an empty counting payload")
	}
}

func TestGenerateCountingSortSteps_RangeTooLarge(t *testing.T) {
	seq := GenerateCountingSortSteps([]int{1, MaxCountingRange})
	if !IsError(seq) {
		t.Fatalf("expected error step for range %d", MaxCountingRange+1)
	}

	seq = GenerateCountingSortSteps([]int{1, math.MaxInt})
	if !IsError(seq) {
		t.Fatalf("expected error step for maximum %d", math.MaxInt)
	}

	seq = GenerateCountingSortSteps([]int{1, MaxCountingRange - 1})
	if IsError(seq) {
		t.Fatalf("range %d should be accepted", MaxCountingRange)
	}
}

func TestGenerateCountingSortSteps_PrefixInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		input := make([]int, 1+rng.Intn(12))
		for i := range input {
			input[i] = rng.Intn(15)
		}
		assertPrefixInvariant(t, GenerateCountingSortSteps(input))
	}
}

func TestGenerateCountingSortSteps_MatchesStdSort(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 100; trial++ {
		input := make([]int, 1+rng.Intn(30))
		for i := range input {
			input[i] = rng.Intn(50)
		}
		seq := GenerateCountingSortSteps(input)
		want := sortedInts(input)
		if got := seq[len(seq)-1].Array; !reflect.DeepEqual(got, want) {
			t.Fatalf("input %v: expected %v, got %v", input, want, got)
		}
	}
}

func TestGenerateCountingSortSteps_InputUntouched(t *testing.T) {
	input := []int{5, 3, 4}
	GenerateCountingSortSteps(input)
	if !reflect.DeepEqual(input, []int{5, 3, 4}) {
		t.Errorf("generator mutated its input: %v", input)
	}
}

func BenchmarkGenerateCountingSortSteps(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	input := make([]int, 200)
	for i := range input {
		input[i] = rng.Intn(100)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		GenerateCountingSortSteps(input)
	}
}
