package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ChristianF88/linsort/output"
	"github.com/ChristianF88/linsort/testutil"
)

// runCLI runs the app with args and returns its error and everything written to stdout/stderr
func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	var capturedOutput bytes.Buffer
	done := make(chan bool)
	go func() {
		buf := make([]byte, 1024)
		for {
			n, err := r.Read(buf)
			if err != nil {
				break
			}
			capturedOutput.Write(buf[:n])
		}
		done <- true
	}()

	err := App.Run(args)

	w.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr
	<-done

	return capturedOutput.String(), err
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 6, 1, 13, 45, 0, 0, time.UTC)
	if got := parseDate("2025-06-01T13:45:00Z"); !got.Equal(want) {
		t.Errorf("parseDate() = %v, want %v", got, want)
	}
	before := time.Now()
	if got := parseDate("not-a-date"); got.Before(before) {
		t.Errorf("parseDate() of an invalid date should fall back to now, got %v", got)
	}
}

func TestStepsCommandValidation(t *testing.T) {
	plotDir := t.TempDir()

	tests := []struct {
		name        string
		args        []string
		expectError bool
		errorMatch  string
	}{
		{
			name:        "Counting sort with values",
			args:        []string{"linsort", "steps", "--values", "4,2,2,8,3,3,1"},
			expectError: false,
		},
		{
			name:        "Radix sort compact",
			args:        []string{"linsort", "steps", "--algorithm", "radix", "--values", "170 45 75 90", "--compact"},
			expectError: false,
		},
		{
			name:        "Bucket sort random",
			args:        []string{"linsort", "steps", "-a", "bucket", "--random", "8", "--seed", "3", "--plain"},
			expectError: false,
		},
		{
			name:        "With plot",
			args:        []string{"linsort", "steps", "--values", "3,1,2", "--plotPath", filepath.Join(plotDir, "steps.html")},
			expectError: false,
		},
		{
			name:        "Missing input",
			args:        []string{"linsort", "steps"},
			expectError: true,
			errorMatch:  "either --values or --random",
		},
		{
			name:        "Values and random",
			args:        []string{"linsort", "steps", "--values", "1", "--random", "3"},
			expectError: true,
			errorMatch:  "mutually exclusive",
		},
		{
			name:        "Unknown algorithm",
			args:        []string{"linsort", "steps", "--algorithm", "heap", "--values", "1"},
			expectError: true,
			errorMatch:  "unknown algorithm",
		},
		{
			name:        "Bucket value out of range",
			args:        []string{"linsort", "steps", "--algorithm", "bucket", "--values", "0.5, 1.5"},
			expectError: true,
			errorMatch:  "invalid configuration",
		},
		{
			name:        "Not a number",
			args:        []string{"linsort", "steps", "--values", "1, two"},
			expectError: true,
			errorMatch:  "invalid values",
		},
		{
			name:        "Missing plot directory",
			args:        []string{"linsort", "steps", "--values", "1", "--plotPath", "/nonexistent/dir/steps.html"},
			expectError: true,
			errorMatch:  "does not exist",
		},
		{
			name:        "Interval without playback",
			args:        []string{"linsort", "steps", "--values", "1", "--interval", "1s"},
			expectError: true,
			errorMatch:  "only applies to playback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runCLI(t, tt.args)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none. Output: %s", output)
				} else if tt.errorMatch != "" && !strings.Contains(err.Error(), tt.errorMatch) && !strings.Contains(output, tt.errorMatch) {
					t.Errorf("Expected error to contain '%s', got: %v. Output: %s", tt.errorMatch, err, output)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v. Output: %s", err, output)
				}
			}
		})
	}
}

func TestStepsCommandJSON(t *testing.T) {
	stdout, err := runCLI(t, []string{"linsort", "steps", "--values", "4,2,2,8,3,3,1", "--compact"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var doc output.StepsOutput
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &doc); err != nil {
		t.Fatalf("Output is not a JSON document: %v\n%s", err, stdout)
	}
	if doc.Algorithm.Name != "counting" {
		t.Errorf("Algorithm = %q, want counting", doc.Algorithm.Name)
	}
	if doc.Summary.TotalSteps != len(doc.Steps) || len(doc.Steps) == 0 {
		t.Errorf("Summary.TotalSteps = %d, len(Steps) = %d", doc.Summary.TotalSteps, len(doc.Steps))
	}
	testutil.AssertSortedPermutation(t, doc.Input, doc.Summary.Final)
}

func TestStepsCommandPlotKeepsJSON(t *testing.T) {
	plotPath := filepath.Join(t.TempDir(), "steps.html")

	stdout, err := runCLI(t, []string{"linsort", "steps", "--values", "3,1,2", "--plotPath", plotPath})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var doc output.StepsOutput
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("Output with --plotPath is not a JSON document: %v\n%s", err, stdout)
	}
	if _, err := os.Stat(plotPath); err != nil {
		t.Errorf("Plot file not written: %v", err)
	}

	found := false
	for _, w := range doc.Warnings {
		if strings.Contains(w.Message, plotPath) {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected the plot location among the warnings, got %+v", doc.Warnings)
	}
}

func TestStepsCommandOutFile(t *testing.T) {
	outFile := testutil.TempFilePath(t, "steps_*.json")
	defer os.Remove(outFile)

	stdout, err := runCLI(t, []string{"linsort", "steps", "--algorithm", "radix", "--values", "170,45,75,90,802,24,2,66", "--out", outFile})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Steps written to") {
		t.Errorf("Expected confirmation on stdout, got: %s", stdout)
	}

	content, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("Failed to read out file: %v", err)
	}
	var doc output.StepsOutput
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("Out file is not a JSON document: %v", err)
	}
	if len(doc.Summary.Passes) != 3 {
		t.Errorf("Summary.Passes = %v, want 3 passes", doc.Summary.Passes)
	}
}

func TestStepsCommandConfigMode(t *testing.T) {
	tomlPath, cleanup := testutil.GenerateTestConfigFile(t, ".toml", `
[input]
algorithm = "bucket"
values = [0.78, 0.17, 0.39, 0.26]

[output]
compact = true
`)
	defer cleanup()

	yamlPath, cleanupYAML := testutil.GenerateTestConfigFile(t, ".yaml", `
input:
  algorithm: radix
  random: 6
  seed: 11
`)
	defer cleanupYAML()

	badPath, cleanupBad := testutil.GenerateTestConfigFile(t, ".toml", `
[input]
algorithm = "counting"
`)
	defer cleanupBad()

	tests := []struct {
		name        string
		args        []string
		expectError bool
		errorMatch  string
	}{
		{
			name: "TOML config",
			args: []string{"linsort", "steps", "--config", tomlPath},
		},
		{
			name: "YAML config with plain output",
			args: []string{"linsort", "steps", "--config", yamlPath, "--plain"},
		},
		{
			name:        "Config with input flag",
			args:        []string{"linsort", "steps", "--config", tomlPath, "--values", "1,2"},
			expectError: true,
			errorMatch:  "only",
		},
		{
			name:        "Config without values",
			args:        []string{"linsort", "steps", "--config", badPath},
			expectError: true,
			errorMatch:  "either values or random",
		},
		{
			name:        "Missing config file",
			args:        []string{"linsort", "steps", "--config", "/nonexistent/config.toml"},
			expectError: true,
			errorMatch:  "failed to load config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runCLI(t, tt.args)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none. Output: %s", output)
				} else if tt.errorMatch != "" && !strings.Contains(err.Error(), tt.errorMatch) {
					t.Errorf("Expected error to contain '%s', got: %v", tt.errorMatch, err)
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v. Output: %s", err, output)
			}
		})
	}
}

func TestInfoCommand(t *testing.T) {
	stdout, err := runCLI(t, []string{"linsort", "info"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"Counting Sort", "Radix Sort", "Bucket Sort", "O(n + k)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("info output missing %q", want)
		}
	}

	stdout, err = runCLI(t, []string{"linsort", "info", "--algorithm", "bucket"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Contains(stdout, "Counting Sort") || !strings.Contains(stdout, "Bucket Sort") {
		t.Errorf("info --algorithm bucket should only describe bucket sort:\n%s", stdout)
	}

	if _, err := runCLI(t, []string{"linsort", "info", "--algorithm", "heap"}); err == nil {
		t.Errorf("Expected error for unknown algorithm")
	}
}

func TestPlayCommandValidation(t *testing.T) {
	if _, err := runCLI(t, []string{"linsort", "play"}); err == nil {
		t.Errorf("Expected error without input")
	}
	if _, err := runCLI(t, []string{"linsort", "play", "--values", "1", "--interval", "1ms"}); err == nil {
		t.Errorf("Expected error for an interval below the minimum")
	}
}

func TestCLIFlags(t *testing.T) {
	// Test that all expected flags are present
	stepsCmd := App.Commands[0] // steps command is first

	expectedFlags := []string{"config", "algorithm", "values", "random", "seed", "interval",
		"tui", "plotPath", "out", "compact", "plain"}

	for _, expectedFlag := range expectedFlags {
		found := false
		for _, flag := range stepsCmd.Flags {
			if flag.Names()[0] == expectedFlag {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected flag '%s' not found in steps command", expectedFlag)
		}
	}
}

func TestCreateConfigFromCLI(t *testing.T) {
	cfg, err := createConfigFromCLI("radix", "170, 45", 0, 0, time.Second, "", "", true, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(cfg.Input.Values) != 2 || cfg.Input.Algorithm != "radix" {
		t.Errorf("Unexpected input config: %+v", cfg.Input)
	}
	if !cfg.Output.Compact || cfg.Playback.Interval != time.Second {
		t.Errorf("Unexpected output/playback config: %+v %+v", cfg.Output, cfg.Playback)
	}

	cfg, err = createConfigFromCLI("counting", "", 5, 0, time.Second, "", "", false, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Input.Seed == 0 {
		t.Errorf("Random input without a seed should get a time-based seed")
	}
}
