package tui

import (
	"sync/atomic"

	"github.com/ChristianF88/linsort/input"
	"github.com/ChristianF88/linsort/steps"
	"github.com/alphadose/haxmap"
)

// MaxCachedSequences bounds the cache. Once it is full the next miss clears
// it, so generating random arrays forever keeps memory flat.
const MaxCachedSequences = 64

// SequenceCache holds generated step sequences in RAM so switching back to an
// algorithm/input pair replays instantly instead of regenerating.
type SequenceCache struct {
	sequences *haxmap.Map[string, []steps.Step]

	// Performance metrics
	hits   atomic.Int64
	misses atomic.Int64
}

// NewSequenceCache creates an empty cache
func NewSequenceCache() *SequenceCache {
	return &SequenceCache{
		sequences: haxmap.New[string, []steps.Step](32),
	}
}

func cacheKey(alg steps.Algorithm, values []float64) string {
	return string(alg) + ":" + input.Format(values)
}

// Sequence returns the cached sequence for alg and values, generating it on a miss.
// Sequences are immutable once generated, so callers share them.
func (sc *SequenceCache) Sequence(alg steps.Algorithm, values []float64) ([]steps.Step, error) {
	key := cacheKey(alg, values)
	if seq, ok := sc.sequences.Get(key); ok {
		sc.hits.Add(1)
		return seq, nil
	}
	sc.misses.Add(1)

	seq, err := steps.Generate(alg, values)
	if err != nil {
		return nil, err
	}
	if sc.Len() >= MaxCachedSequences {
		sc.Clear()
	}
	sc.sequences.Set(key, seq)
	return seq, nil
}

// Clear drops every cached sequence
func (sc *SequenceCache) Clear() {
	sc.sequences.Clear()
}

// Invalidate drops the sequence for alg and values
func (sc *SequenceCache) Invalidate(alg steps.Algorithm, values []float64) {
	sc.sequences.Del(cacheKey(alg, values))
}

// Len returns the number of cached sequences
func (sc *SequenceCache) Len() int {
	return int(sc.sequences.Len())
}

// Stats returns cache hits and misses
func (sc *SequenceCache) Stats() (hits, misses int64) {
	return sc.hits.Load(), sc.misses.Load()
}
