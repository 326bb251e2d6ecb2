package steps

import (
	"fmt"
	"math"
	"strings"
)

// Algorithm selects one of the three step generators
type Algorithm string

const (
	Counting Algorithm = "counting"
	Radix    Algorithm = "radix"
	Bucket   Algorithm = "bucket"
)

// AlgorithmInfo is the descriptive panel shown next to a replay
type AlgorithmInfo struct {
	Title      string   `json:"title"`
	Outline    []string `json:"outline"`
	Complexity string   `json:"complexity"`
}

type generator struct {
	generate   func(values []float64) []Step
	info       AlgorithmInfo
	pseudocode []string
}

var generators = map[Algorithm]generator{
	Counting: {
		generate: integerGenerator(Counting, GenerateCountingSortSteps),
		info: AlgorithmInfo{
			Title: "Counting Sort Algorithm",
			Outline: []string{
				"1. Find the maximum value in the array.",
				"2. Create a count array to store the frequency of each value.",
				"3. Add up the counts so each slot holds the number of elements <= its index (prefix sum).",
				"4. Walk the input right to left and place each element at output[count[value] - 1].",
				"5. Copy the output back to the original array.",
			},
			Complexity: "Time Complexity: O(n + k)",
		},
		pseudocode: []string{
			"k ← max(A) + 1; count ← array of k zeros",
			"output ← array of n empty slots",
			"for i ← 0 to n-1 do",
			"    count[A[i]] ← count[A[i]] + 1",
			"for i ← 1 to k-1 do",
			"    count[i] ← count[i] + count[i-1]",
			"for i ← n-1 downto 0 do",
			"    output[count[A[i]] - 1] ← A[i]",
			"    count[A[i]] ← count[A[i]] - 1",
			"for i ← 0 to n-1 do",
			"    A[i] ← output[i]",
		},
	},
	Radix: {
		generate: integerGenerator(Radix, GenerateRadixSortSteps),
		info: AlgorithmInfo{
			Title: "Radix Sort Algorithm",
			Outline: []string{
				"1. Find the maximum number to know the number of digits.",
				"2. Perform a stable counting sort for every digit, from least to most significant.",
				"3. In each pass, count the elements by their current digit (0-9).",
				"4. Place the elements right to left by digit, copy back, and move to the next digit.",
			},
			Complexity: "Time Complexity: O(d * (n + k))",
		},
		pseudocode: []string{
			"max ← max(A)",
			"for exp ← 1; ⌊max / exp⌋ > 0; exp ← exp × 10 do",
			"    count ← array of 10 zeros; output ← array of n empty slots",
			"    for i ← 0 to n-1 do",
			"        count[digit(A[i], exp)] ← count[digit(A[i], exp)] + 1",
			"    for d ← 1 to 9 do",
			"        count[d] ← count[d] + count[d-1]",
			"    for i ← n-1 downto 0 do",
			"        output[count[digit(A[i], exp)] - 1] ← A[i]",
			"        count[digit(A[i], exp)] ← count[digit(A[i], exp)] - 1",
			"    for i ← 0 to n-1 do",
			"        A[i] ← output[i]",
		},
	},
	Bucket: {
		generate: GenerateBucketSortSteps,
		info: AlgorithmInfo{
			Title: "Bucket Sort Algorithm",
			Outline: []string{
				fmt.Sprintf("1. Create %d empty buckets.", BucketCount),
				"2. Distribute the elements into buckets based on their value range.",
				"3. Sort each bucket individually with insertion sort.",
				"4. Concatenate all buckets to get the sorted array.",
			},
			Complexity: "Time Complexity: O(n + k)",
		},
		pseudocode: []string{
			fmt.Sprintf("buckets ← %d empty lists", BucketCount),
			"for i ← 0 to n-1 do",
			fmt.Sprintf("    append A[i] to buckets[⌊%d × A[i]⌋]", BucketCount),
			fmt.Sprintf("for b ← 0 to %d do", BucketCount-1),
			"    insertion-sort buckets[b]",
			fmt.Sprintf("k ← 0; for b ← 0 to %d do", BucketCount-1),
			"    for each x in buckets[b] do",
			"        A[k] ← x; k ← k + 1",
		},
	},
}

// integerGenerator adapts an integer generator to the shared float input.
// Non-integral values are an input contract violation.
func integerGenerator(alg Algorithm, gen func([]int) []Step) func([]float64) []Step {
	return func(values []float64) []Step {
		ints := make([]int, len(values))
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
				return errorSequence(AuxCounting, cloneFloats(values),
					"Invalid input: A[%d] = %s is not an integer; %s sort needs non-negative integers", i, FormatValue(v), alg)
			}
			if v > math.MaxInt32 {
				return errorSequence(AuxCounting, cloneFloats(values),
					"Invalid input: A[%d] = %s is too large", i, FormatValue(v))
			}
			ints[i] = int(v)
		}
		return gen(ints)
	}
}

// Algorithms lists the supported algorithms in display order
func Algorithms() []Algorithm {
	return []Algorithm{Counting, Radix, Bucket}
}

// ParseAlgorithm accepts "counting", "radix" or "bucket", case-insensitively,
// with an optional " sort" suffix.
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, " sort")
	name = strings.TrimSuffix(name, "sort")
	name = strings.TrimSpace(name)
	alg := Algorithm(name)
	if _, ok := generators[alg]; !ok {
		return "", fmt.Errorf("unknown algorithm %q (expected one of counting, radix, bucket)", s)
	}
	return alg, nil
}

// Next returns the algorithm after a in display order, wrapping around
func (a Algorithm) Next() Algorithm {
	all := Algorithms()
	for i, alg := range all {
		if alg == a {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Generate runs the generator for alg over values. Counting and radix sort
// require integral values; a violation comes back as a single error step.
// The returned error is reserved for an unknown algorithm.
func Generate(alg Algorithm, values []float64) ([]Step, error) {
	g, ok := generators[alg]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm %q", alg)
	}
	return g.generate(values), nil
}

// Info returns the title, outline and complexity of alg
func Info(alg Algorithm) (AlgorithmInfo, error) {
	g, ok := generators[alg]
	if !ok {
		return AlgorithmInfo{}, fmt.Errorf("unknown algorithm %q", alg)
	}
	info := g.info
	info.Outline = append([]string(nil), g.info.Outline...)
	return info, nil
}

// Pseudocode returns the listing whose 1-based line numbers Step.PseudocodeLine refers to
func Pseudocode(alg Algorithm) []string {
	g, ok := generators[alg]
	if !ok {
		return nil
	}
	return append([]string(nil), g.pseudocode...)
}
