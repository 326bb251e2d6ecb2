package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ChristianF88/linsort/config"
	"github.com/ChristianF88/linsort/input"
	"github.com/ChristianF88/linsort/output"
	"github.com/ChristianF88/linsort/steps"
	"github.com/ChristianF88/linsort/tui"
	"github.com/ChristianF88/linsort/version"
)

// OutputConfig contains output formatting options
type OutputConfig struct {
	Compact bool
	Plain   bool
	TUI     bool
}

// StepsFromConfig generates the step history described by cfg and writes it
// in the requested format. With TUI set it launches the player instead.
func StepsFromConfig(cfg *config.Config, outputConfig OutputConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	alg, err := cfg.GetAlgorithm()
	if err != nil {
		return err
	}
	values, err := cfg.GetValues()
	if err != nil {
		return err
	}

	if outputConfig.TUI {
		return executeTUI(alg, values, cfg.Playback.Interval)
	}

	start := time.Now()
	seq, err := steps.Generate(alg, values)
	if err != nil {
		return fmt.Errorf("generating steps: %w", err)
	}

	result := output.NewStepsOutput(alg, start)
	result.Metadata.Version = version.Version
	result.SetSequence(values, seq)

	// Generate plot if plotPath is provided
	if cfg.Output.PlotPath != "" && len(seq) > 0 {
		plotStart := time.Now()
		info, _ := steps.Info(alg)
		if err := output.PlotSteps(seq, info.Title, cfg.Output.PlotPath); err != nil {
			result.AddError("plot", err.Error(), 0)
		} else {
			result.AddWarning("info", fmt.Sprintf("Plot generated in %v at %s", time.Since(plotStart), cfg.Output.PlotPath), 0)
		}
	}
	result.UpdateDuration(start)

	return outputResult(result, outputConfig, cfg.Output.OutFile)
}

// Play launches the interactive player for cfg
func Play(cfg *config.Config) error {
	return StepsFromConfig(cfg, OutputConfig{TUI: true})
}

func executeTUI(alg steps.Algorithm, values []float64, interval time.Duration) error {
	app := tui.NewApp(alg, values, interval)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// createConfigFromCLI builds the same config structure a config file yields
func createConfigFromCLI(algorithm, values string, random int, seed int64, interval time.Duration,
	plotPath, outFile string, compact, plain bool) (*config.Config, error) {

	cfg := &config.Config{
		Input: &config.InputConfig{
			Algorithm: algorithm,
			Random:    random,
			Seed:      seed,
		},
		Playback: &config.PlaybackConfig{
			Interval: interval,
		},
		Output: &config.OutputConfig{
			PlotPath: plotPath,
			OutFile:  outFile,
			Compact:  compact,
			Plain:    plain,
		},
	}

	if strings.TrimSpace(values) != "" {
		parsed, err := input.ParseValues(values)
		if err != nil {
			return nil, fmt.Errorf("invalid values: %w", err)
		}
		cfg.Input.Values = parsed
	}

	if random > 0 && seed == 0 {
		cfg.Input.Seed = time.Now().UnixNano()
	}

	return cfg, nil
}

// outputResult is the unified output function that handles all output formats
func outputResult(result *output.StepsOutput, outputConfig OutputConfig, outFile string) error {
	if outputConfig.Plain {
		return output.WritePlain(os.Stdout, result)
	}

	var jsonBytes []byte
	var err error

	if outputConfig.Compact {
		jsonBytes, err = result.ToCompactJSON()
	} else {
		jsonBytes, err = result.ToJSON()
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}

	if outFile != "" {
		if err := output.WriteToFile(outFile, jsonBytes); err != nil {
			return err
		}
		fmt.Printf("Steps written to %s\n", outFile)
		return nil
	}

	fmt.Println(string(jsonBytes))
	return nil
}

// printInfo prints the description and pseudocode of each algorithm
func printInfo(algs []steps.Algorithm) error {
	for i, alg := range algs {
		info, err := steps.Info(alg)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (%s)\n", info.Title, alg)
		fmt.Println(strings.Repeat("─", len(info.Title)+len(alg)+3))
		for _, line := range info.Outline {
			fmt.Printf("  %s\n", line)
		}
		fmt.Printf("  %s\n\n", info.Complexity)
		for n, line := range steps.Pseudocode(alg) {
			fmt.Printf("  %2d  %s\n", n+1, line)
		}
	}
	return nil
}
