package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ChristianF88/linsort/config"
	"github.com/ChristianF88/linsort/playback"
	"github.com/ChristianF88/linsort/steps"
	"github.com/ChristianF88/linsort/version"
	cli "github.com/urfave/cli/v2"
)

// parseDate attempts to parse the build date
func parseDate(d string) time.Time {
	t, err := time.Parse(time.RFC3339, d)
	if err != nil {
		return time.Now()
	}
	return t
}

// Shared flag definitions to eliminate duplication
var (
	// Configuration flags
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to configuration file, TOML or YAML (mutually exclusive with input flags)",
	}

	// Input flags
	algorithmFlag = &cli.StringFlag{
		Name:    "algorithm",
		Aliases: []string{"a"},
		Usage:   "Sorting algorithm: counting, radix or bucket",
		Value:   string(steps.Counting),
	}
	valuesFlag = &cli.StringFlag{
		Name:  "values",
		Usage: "Numbers to sort, separated by commas or spaces (e.g., '4,2,2,8,3,3,1')",
	}
	randomFlag = &cli.IntFlag{
		Name:  "random",
		Usage: "Sort a random array of this many values instead of --values",
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Seed for --random, for reproducible arrays",
	}

	// Playback flags
	intervalFlag = &cli.DurationFlag{
		Name:  "interval",
		Usage: "Delay between two steps during playback",
		Value: playback.DefaultInterval,
	}

	// Output flags
	plotPathFlag = &cli.StringFlag{
		Name:  "plotPath",
		Usage: "Path where to save the step plot (e.g., '/path/to/steps.html'). If not provided, no plot will be generated.",
	}
	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Write the JSON document to this file instead of stdout",
	}
	compactFlag = &cli.BoolFlag{
		Name:  "compact",
		Usage: "Output compact JSON (no pretty printing)",
		Value: false,
	}
	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Output plain text format for easy readability",
		Value: false,
	}
	tuiFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Launch TUI (Terminal User Interface) mode",
		Value: false,
	}
)

// Shared validation functions
func validateConfigModeFlags(c *cli.Context, allowedFlags []string) error {
	// Create a map for quick lookup of allowed flags
	allowed := make(map[string]bool)
	for _, flag := range allowedFlags {
		allowed[flag] = true
	}

	// Check all possible flags
	flagsToCheck := []string{
		"algorithm", "values", "random", "seed", "interval",
		"plotPath", "out", "tui", "compact", "plain",
	}

	for _, flag := range flagsToCheck {
		if c.IsSet(flag) && !allowed[flag] {
			return fmt.Errorf("when using --config, only %v flags are allowed", allowedFlags)
		}
	}
	return nil
}

func validatePlotPath(plotPath string) error {
	if plotPath != "" {
		plotDir := filepath.Dir(plotPath)
		if plotDir == "." {
			plotDir, _ = os.Getwd()
		}
		if _, err := os.Stat(plotDir); os.IsNotExist(err) {
			return fmt.Errorf("plot directory does not exist: %s", plotDir)
		}
	}
	return nil
}

func validateInputFlags(c *cli.Context) error {
	if c.IsSet("values") && c.IsSet("random") {
		return fmt.Errorf("--values and --random are mutually exclusive")
	}
	if !c.IsSet("values") && !c.IsSet("random") {
		return fmt.Errorf("either --values or --random is required when not using --config")
	}
	if _, err := steps.ParseAlgorithm(c.String("algorithm")); err != nil {
		return err
	}
	return nil
}

// loadConfig reads the config file and applies the output flags allowed in config mode
func loadConfig(c *cli.Context, configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.Bool("compact") {
		cfg.Output.Compact = true
	}
	if c.Bool("plain") {
		cfg.Output.Plain = true
	}
	return cfg, nil
}

// configFromFlags builds the config for flags mode
func configFromFlags(c *cli.Context) (*config.Config, error) {
	if err := validateInputFlags(c); err != nil {
		return nil, err
	}
	if err := validatePlotPath(c.String("plotPath")); err != nil {
		return nil, err
	}
	return createConfigFromCLI(
		c.String("algorithm"),
		c.String("values"),
		c.Int("random"),
		c.Int64("seed"),
		c.Duration("interval"),
		c.String("plotPath"),
		c.String("out"),
		c.Bool("compact"),
		c.Bool("plain"),
	)
}

// Command handler functions to reduce deep nesting

// handleStepsCommand processes the steps command with proper separation of concerns
func handleStepsCommand(c *cli.Context) error {
	configPath := c.String("config")
	if configPath != "" {
		return handleStepsConfigMode(c, configPath)
	}
	return handleStepsFlagsMode(c)
}

// handleStepsConfigMode handles steps command when using config file
func handleStepsConfigMode(c *cli.Context, configPath string) error {
	// Validate only allowed flags in config mode
	if err := validateConfigModeFlags(c, []string{"tui", "compact", "plain"}); err != nil {
		return err
	}

	cfg, err := loadConfig(c, configPath)
	if err != nil {
		return err
	}

	return StepsFromConfig(cfg, OutputConfig{
		Compact: cfg.Output.Compact,
		Plain:   cfg.Output.Plain,
		TUI:     c.Bool("tui"),
	})
}

// handleStepsFlagsMode handles steps command when using CLI flags only
func handleStepsFlagsMode(c *cli.Context) error {
	if c.IsSet("interval") && !c.Bool("tui") {
		return fmt.Errorf("--interval only applies to playback, use it with --tui or the play command")
	}

	cfg, err := configFromFlags(c)
	if err != nil {
		return err
	}

	return StepsFromConfig(cfg, OutputConfig{
		Compact: c.Bool("compact"),
		Plain:   c.Bool("plain"),
		TUI:     c.Bool("tui"),
	})
}

// handlePlayCommand launches the interactive player
func handlePlayCommand(c *cli.Context) error {
	configPath := c.String("config")
	if configPath != "" {
		if err := validateConfigModeFlags(c, []string{}); err != nil {
			return err
		}
		cfg, err := loadConfig(c, configPath)
		if err != nil {
			return err
		}
		return Play(cfg)
	}

	cfg, err := configFromFlags(c)
	if err != nil {
		return err
	}
	return Play(cfg)
}

// handleInfoCommand prints the algorithm descriptions
func handleInfoCommand(c *cli.Context) error {
	if !c.IsSet("algorithm") {
		return printInfo(steps.Algorithms())
	}
	alg, err := steps.ParseAlgorithm(c.String("algorithm"))
	if err != nil {
		return err
	}
	return printInfo([]steps.Algorithm{alg})
}

var App = &cli.App{
	Name:     "linsort",
	Usage:    "Step through counting, radix and bucket sort one micro-step at a time",
	Version:  version.Version,
	Compiled: parseDate(version.Date),
	Commands: []*cli.Command{
		{
			Name:  "steps",
			Usage: "Generate the step history of a sort and print it",
			Flags: []cli.Flag{
				// Configuration
				configFlag,
				// Input flags
				algorithmFlag,
				valuesFlag,
				randomFlag,
				seedFlag,
				// Playback flags
				intervalFlag,
				tuiFlag,
				// Output flags
				plotPathFlag,
				outFlag,
				compactFlag,
				plainFlag,
			},
			Action: handleStepsCommand,
		},
		{
			Name:  "play",
			Usage: "Replay a sort interactively in the terminal",
			Flags: []cli.Flag{
				// Configuration
				configFlag,
				// Input flags
				algorithmFlag,
				valuesFlag,
				randomFlag,
				seedFlag,
				// Playback flags
				intervalFlag,
			},
			Action: handlePlayCommand,
		},
		{
			Name:  "info",
			Usage: "Describe the algorithms and print their pseudocode",
			Flags: []cli.Flag{
				algorithmFlag,
			},
			Action: handleInfoCommand,
		},
	},
}
