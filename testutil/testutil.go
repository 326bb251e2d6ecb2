package testutil

import (
	"os"
	"sort"
	"testing"
)

// GenerateTestConfigFile writes content to a temporary config file whose
// extension (".toml", ".yaml", ...) selects the decoder.
// Returns the file path and a cleanup function.
func GenerateTestConfigFile(t *testing.T, ext, content string) (string, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test_config_*"+ext)
	if err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write to temp config file: %v", err)
	}

	tmpFile.Close()

	cleanup := func() {
		os.Remove(tmpFile.Name())
	}

	return tmpFile.Name(), cleanup
}

// TempFilePath returns a cross-platform temporary file path
// with the given pattern. Does not create the file.
func TempFilePath(t *testing.T, pattern string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	path := tmpFile.Name()
	tmpFile.Close()
	os.Remove(path) // Remove immediately, just need the path

	return path
}

// AssertSortedPermutation fails the test unless got is want in ascending order
func AssertSortedPermutation(t *testing.T, want, got []float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length %d, want %d", len(got), len(want))
	}
	sorted := append([]float64(nil), want...)
	sort.Float64s(sorted)
	for i := range sorted {
		if got[i] != sorted[i] {
			t.Fatalf("result %v is not the sorted input %v", got, sorted)
		}
	}
}
