package steps

import "fmt"

// errorSequence reports an input contract violation as a one-step sequence so
// a renderer never needs a separate error path.
func errorSequence(kind AuxKind, arr []float64, format string, args ...any) []Step {
	aux := Auxiliary{Kind: kind}
	switch kind {
	case AuxCounting:
		aux.Counting = &CountingAux{
			Count:       []int{},
			Output:      []int{},
			CountIndex:  NoIndex,
			OutputIndex: NoIndex,
		}
	case AuxBucket:
		aux.Bucket = &BucketAux{
			Buckets:     [][]float64{},
			BucketIndex: NoIndex,
		}
	}

	return []Step{{
		Array:          arr,
		Highlighted:    highlight(),
		Aux:            aux,
		PseudocodeLine: 0,
		Description:    fmt.Sprintf(format, args...),
		Phase:          PhaseError,
	}}
}

// IsError reports whether seq is the single-step report of an invalid input
func IsError(seq []Step) bool {
	return len(seq) == 1 && seq[0].Phase == PhaseError
}
