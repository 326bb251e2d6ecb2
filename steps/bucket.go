package steps

import (
	"fmt"
	"math"
	"strconv"
)

// BucketCount is the fixed number of buckets; a value v lands in bucket floor(v * BucketCount).
const BucketCount = 10

type bucketRecorder struct {
	steps   []Step
	arr     []float64
	buckets [][]float64
}

func (r *bucketRecorder) emit(phase Phase, line int, highlighted []int, bucketIdx int, format string, args ...any) {
	r.steps = append(r.steps, Step{
		Array:       cloneFloats(r.arr),
		Highlighted: highlighted,
		Aux: Auxiliary{
			Kind: AuxBucket,
			Bucket: &BucketAux{
				Buckets:     cloneBuckets(r.buckets),
				BucketIndex: bucketIdx,
			},
		},
		PseudocodeLine: line,
		Description:    fmt.Sprintf(format, args...),
		Phase:          phase,
	})
}

// bucketOf maps v in [0, 1) to its bucket
func bucketOf(v float64) int {
	return int(math.Floor(v * BucketCount))
}

// GenerateBucketSortSteps returns every micro-step of a bucket sort of arr over
// BucketCount buckets. Values must lie in [0, 1); anything else yields a single
// error step rather than being clamped. Sorting a bucket with fewer than two
// values changes nothing, so such buckets emit no step.
func GenerateBucketSortSteps(arr []float64) []Step {
	if len(arr) == 0 {
		return nil
	}

	for i, v := range arr {
		if math.IsNaN(v) || v < 0 || v >= 1 {
			return errorSequence(AuxBucket, cloneFloats(arr),
				"Invalid input: A[%d] = %s is outside [0, 1); bucket sort needs values in that range", i, FormatValue(v))
		}
	}

	r := &bucketRecorder{
		arr:     cloneFloats(arr),
		buckets: make([][]float64, BucketCount),
	}
	for i := range r.buckets {
		r.buckets[i] = []float64{}
	}
	r.emit(PhaseInit, 1, highlight(), NoIndex, "Created %d empty buckets", BucketCount)

	for i, v := range r.arr {
		b := bucketOf(v)
		r.buckets[b] = append(r.buckets[b], v)
		r.emit(PhaseDistribute, 3, highlight(i), b,
			"A[%d] = %s goes to bucket floor(%s x %d) = %d", i, FormatValue(v), FormatValue(v), BucketCount, b)
	}

	for b := range r.buckets {
		if len(r.buckets[b]) < 2 {
			continue
		}
		insertionSort(r.buckets[b])
		r.emit(PhaseSortBucket, 5, highlight(), b,
			"Sorted bucket %d with insertion sort (%d values)", b, len(r.buckets[b]))
	}

	k := 0
	for b, bucket := range r.buckets {
		for _, v := range bucket {
			r.arr[k] = v
			r.emit(PhaseConcat, 8, highlight(k), b,
				"Wrote %s from bucket %d to A[%d]", FormatValue(v), b, k)
			k++
		}
	}

	r.emit(PhaseDone, 0, highlight(), NoIndex, "Bucket sort complete: %d elements sorted", len(arr))
	return r.steps
}

// insertionSort sorts a bucket in place. Buckets hold a handful of values.
func insertionSort(data []float64) {
	for i := 1; i < len(data); i++ {
		key := data[i]
		j := i - 1
		for j >= 0 && data[j] > key {
			data[j+1] = data[j]
			j--
		}
		data[j+1] = key
	}
}

// FormatValue renders a value the shortest way that round-trips: integers without a decimal point.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
