package output

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ChristianF88/linsort/steps"
	"github.com/google/uuid"
)

// StepsOutput represents the complete step-history document
type StepsOutput struct {
	Metadata  Metadata         `json:"metadata"`
	Algorithm AlgorithmSection `json:"algorithm"`
	Input     []float64        `json:"input"`
	Summary   steps.Summary    `json:"summary"`
	Steps     []steps.Step     `json:"steps"`
	Warnings  []Warning        `json:"warnings"`
	Errors    []Error          `json:"errors"`

	// Mutex for thread-safe warning/error appending
	mu sync.Mutex `json:"-"`
}

// Metadata contains information about the generation run
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	RunID       string    `json:"run_id"`
	Version     string    `json:"version"`
	DurationMS  int64     `json:"duration_ms"`
}

// AlgorithmSection describes the algorithm that produced the steps
type AlgorithmSection struct {
	Name       steps.Algorithm     `json:"name"`
	Info       steps.AlgorithmInfo `json:"info"`
	Pseudocode []string            `json:"pseudocode"`
}

// Warning represents a warning message
type Warning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// Error represents an error message
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// NewStepsOutput creates a document for alg with fresh metadata
func NewStepsOutput(alg steps.Algorithm, startTime time.Time) *StepsOutput {
	info, _ := steps.Info(alg)
	return &StepsOutput{
		Metadata: Metadata{
			GeneratedAt: time.Now(),
			RunID:       uuid.NewString(),
			DurationMS:  time.Since(startTime).Milliseconds(),
		},
		Algorithm: AlgorithmSection{
			Name:       alg,
			Info:       info,
			Pseudocode: steps.Pseudocode(alg),
		},
		Input:    []float64{},
		Steps:    []steps.Step{},
		Warnings: []Warning{},
		Errors:   []Error{},
	}
}

// SetSequence stores the input and its step sequence and derives the summary.
// An error step is also reported in Errors.
func (j *StepsOutput) SetSequence(values []float64, seq []steps.Step) {
	j.Input = append([]float64{}, values...)
	if seq == nil {
		seq = []steps.Step{}
	}
	j.Steps = seq
	j.Summary = steps.Summarize(seq)
	if j.Summary.Invalid {
		j.AddError("invalid_input", seq[0].Description, 0)
	}
	if len(seq) == 0 {
		j.AddWarning("empty_input", "no values to sort, no steps generated", 0)
	}
}

// ToJSON converts the output to pretty-printed JSON
func (j *StepsOutput) ToJSON() ([]byte, error) {
	return json.MarshalIndent(j, "", "  ")
}

// ToCompactJSON converts the output to compact JSON
func (j *StepsOutput) ToCompactJSON() ([]byte, error) {
	return json.Marshal(j)
}

// AddWarning adds a warning to the output (thread-safe)
func (j *StepsOutput) AddWarning(warningType, message string, count int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Warnings = append(j.Warnings, Warning{
		Type:    warningType,
		Message: message,
		Count:   count,
	})
}

// AddError adds an error to the output (thread-safe)
func (j *StepsOutput) AddError(errorType, message string, count int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Errors = append(j.Errors, Error{
		Type:    errorType,
		Message: message,
		Count:   count,
	})
}

// UpdateDuration updates the duration in metadata
func (j *StepsOutput) UpdateDuration(startTime time.Time) {
	j.Metadata.DurationMS = time.Since(startTime).Milliseconds()
}
