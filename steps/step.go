package steps

// EmptySlot marks an output slot that has not been written yet.
// Inputs to counting and radix sort are non-negative, so -1 never collides with a value.
const EmptySlot = -1

// NoIndex marks an absent auxiliary highlight.
const NoIndex = -1

// Phase identifies the part of an algorithm that produced a step
type Phase string

const (
	PhaseInit       Phase = "init"
	PhaseCount      Phase = "count"
	PhaseCumulative Phase = "cumulative"
	PhasePlace      Phase = "place"
	PhaseCopy       Phase = "copy"
	PhasePass       Phase = "pass"
	PhaseDistribute Phase = "distribute"
	PhaseSortBucket Phase = "sort_bucket"
	PhaseConcat     Phase = "concat"
	PhaseDone       Phase = "done"
	PhaseError      Phase = "error"
)

// AuxKind tags which auxiliary payload a step carries
type AuxKind string

const (
	AuxNone     AuxKind = ""
	AuxCounting AuxKind = "counting"
	AuxBucket   AuxKind = "bucket"
)

// CountingAux is the auxiliary state of counting sort and of each radix pass
type CountingAux struct {
	Count         []int `json:"count"`
	Output        []int `json:"output"`
	CountIndex    int   `json:"count_index"`
	OutputIndex   int   `json:"output_index"`
	DigitExponent int   `json:"digit_exponent,omitempty"`
}

// BucketAux is the auxiliary state of bucket sort
type BucketAux struct {
	Buckets     [][]float64 `json:"buckets"`
	BucketIndex int         `json:"bucket_index"`
}

// Auxiliary is a tagged variant: exactly one payload is set and it matches Kind.
type Auxiliary struct {
	Kind     AuxKind      `json:"kind"`
	Counting *CountingAux `json:"counting,omitempty"`
	Bucket   *BucketAux   `json:"bucket,omitempty"`
}

// Step is one immutable snapshot of an algorithm run.
// Array holds the main array after the operation the step represents.
type Step struct {
	Array          []float64 `json:"array"`
	Highlighted    []int     `json:"highlighted"`
	Aux            Auxiliary `json:"auxiliary"`
	PseudocodeLine int       `json:"pseudocode_line"`
	Description    string    `json:"description"`
	Phase          Phase     `json:"phase"`
}

// IsTerminal reports whether the step closes a sequence
func (s Step) IsTerminal() bool {
	return s.Phase == PhaseDone || s.Phase == PhaseError
}

// Clone returns a deep copy of the step
func (s Step) Clone() Step {
	c := s
	c.Array = cloneFloats(s.Array)
	c.Highlighted = cloneInts(s.Highlighted)
	c.Aux = s.Aux.clone()
	return c
}

func (a Auxiliary) clone() Auxiliary {
	c := Auxiliary{Kind: a.Kind}
	if a.Counting != nil {
		ca := *a.Counting
		ca.Count = cloneInts(a.Counting.Count)
		ca.Output = cloneInts(a.Counting.Output)
		c.Counting = &ca
	}
	if a.Bucket != nil {
		c.Bucket = &BucketAux{
			Buckets:     cloneBuckets(a.Bucket.Buckets),
			BucketIndex: a.Bucket.BucketIndex,
		}
	}
	return c
}

func cloneInts(src []int) []int {
	dst := make([]int, len(src))
	copy(dst, src)
	return dst
}

func cloneFloats(src []float64) []float64 {
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}

func cloneBuckets(src [][]float64) [][]float64 {
	dst := make([][]float64, len(src))
	for i, b := range src {
		dst[i] = cloneFloats(b)
	}
	return dst
}

func intsToFloats(src []int) []float64 {
	dst := make([]float64, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

// highlight builds a highlight set, always non-nil
func highlight(indices ...int) []int {
	h := make([]int, 0, len(indices))
	return append(h, indices...)
}
