package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ChristianF88/linsort/input"
	"github.com/ChristianF88/linsort/playback"
	"github.com/ChristianF88/linsort/steps"
	"gopkg.in/yaml.v3"
)

type InputConfig struct {
	Algorithm string    `toml:"algorithm" yaml:"algorithm"`
	Values    []float64 `toml:"values" yaml:"values"`
	Random    int       `toml:"random" yaml:"random"`
	Seed      int64     `toml:"seed" yaml:"seed"`
}

type PlaybackConfig struct {
	Interval time.Duration `toml:"interval" yaml:"interval"`
}

type OutputConfig struct {
	PlotPath string `toml:"plotPath" yaml:"plotPath"`
	OutFile  string `toml:"outFile" yaml:"outFile"`
	Compact  bool   `toml:"compact" yaml:"compact"`
	Plain    bool   `toml:"plain" yaml:"plain"`
}

type Config struct {
	Input    *InputConfig    `toml:"input" yaml:"input"`
	Playback *PlaybackConfig `toml:"playback" yaml:"playback"`
	Output   *OutputConfig   `toml:"output" yaml:"output"`
}

// LoadConfig reads a TOML file, or a YAML file when the extension is .yaml or .yml.
func LoadConfig(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]any
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(configData, &rawConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if _, err := toml.Decode(string(configData), &rawConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return fromRaw(rawConfig)
}

func fromRaw(rawConfig map[string]any) (*Config, error) {
	config := &Config{}

	for key, value := range rawConfig {
		section, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("section %q must be a table", key)
		}
		var err error
		switch key {
		case "input":
			config.Input, err = parseInputConfig(section)
		case "playback":
			config.Playback, err = parsePlaybackConfig(section)
		case "output":
			config.Output, err = parseOutputConfig(section)
		default:
			return nil, fmt.Errorf("unknown section %q", key)
		}
		if err != nil {
			return nil, fmt.Errorf("parsing [%s]: %w", key, err)
		}
	}

	if config.Input == nil {
		config.Input = &InputConfig{}
	}
	if config.Playback == nil {
		config.Playback = &PlaybackConfig{}
	}
	if config.Output == nil {
		config.Output = &OutputConfig{}
	}
	if config.Playback.Interval == 0 {
		config.Playback.Interval = playback.DefaultInterval
	}

	return config, nil
}

// toFloat accepts the numeric types of both decoders: TOML yields int64 and
// float64, YAML yields int and float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// toInt accepts whole numbers only, so 3.7 is rejected rather than truncated
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 {
			return int64(n), true
		}
	}
	return 0, false
}

// checkKeys rejects keys a section does not know, like fromRaw does for sections
func checkKeys(m map[string]any, known ...string) error {
	for key := range m {
		if !slices.Contains(known, key) {
			return fmt.Errorf("unknown key %q (known keys: %s)", key, strings.Join(known, ", "))
		}
	}
	return nil
}

func parseInputConfig(m map[string]any) (*InputConfig, error) {
	if err := checkKeys(m, "algorithm", "values", "random", "seed"); err != nil {
		return nil, err
	}
	config := &InputConfig{}
	if v, ok := m["algorithm"]; ok {
		name, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("algorithm must be a string, got %T", v)
		}
		config.Algorithm = name
	}
	switch v := m["values"].(type) {
	case []any:
		for i, item := range v {
			f, ok := toFloat(item)
			if !ok {
				return nil, fmt.Errorf("values[%d] is not a number: %v", i, item)
			}
			config.Values = append(config.Values, f)
		}
	case string:
		values, err := input.ParseValues(v)
		if err != nil {
			return nil, fmt.Errorf("invalid values %q: %w", v, err)
		}
		config.Values = values
	case nil:
	default:
		return nil, fmt.Errorf("values must be a list or a string, got %T", v)
	}
	if v, ok := m["random"]; ok {
		n, ok := toInt(v)
		if !ok {
			return nil, fmt.Errorf("random must be a whole number, got %v", v)
		}
		config.Random = int(n)
	}
	if v, ok := m["seed"]; ok {
		n, ok := toInt(v)
		if !ok {
			return nil, fmt.Errorf("seed must be a whole number, got %v", v)
		}
		config.Seed = n
	}
	return config, nil
}

func parsePlaybackConfig(m map[string]any) (*PlaybackConfig, error) {
	if err := checkKeys(m, "interval"); err != nil {
		return nil, err
	}
	config := &PlaybackConfig{}
	if v, ok := m["interval"].(string); ok {
		duration, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid interval %q: %w", v, err)
		}
		config.Interval = duration
	} else if v, ok := toFloat(m["interval"]); ok {
		// bare numbers are milliseconds
		config.Interval = time.Duration(v * float64(time.Millisecond))
	}
	return config, nil
}

func parseOutputConfig(m map[string]any) (*OutputConfig, error) {
	if err := checkKeys(m, "plotPath", "outFile", "compact", "plain"); err != nil {
		return nil, err
	}
	config := &OutputConfig{}
	if v, ok := m["plotPath"].(string); ok {
		config.PlotPath = v
	}
	if v, ok := m["outFile"].(string); ok {
		config.OutFile = v
	}
	if v, ok := m["compact"].(bool); ok {
		config.Compact = v
	}
	if v, ok := m["plain"].(bool); ok {
		config.Plain = v
	}
	return config, nil
}

// GetAlgorithm returns the configured algorithm, counting sort by default
func (c *Config) GetAlgorithm() (steps.Algorithm, error) {
	if c.Input == nil || c.Input.Algorithm == "" {
		return steps.Counting, nil
	}
	return steps.ParseAlgorithm(c.Input.Algorithm)
}

// GetValues returns the explicit values, or a random array when random is set.
func (c *Config) GetValues() ([]float64, error) {
	alg, err := c.GetAlgorithm()
	if err != nil {
		return nil, err
	}
	if c.Input != nil && c.Input.Random > 0 {
		return input.Random(alg, c.Input.Random, c.Input.Seed)
	}
	if c.Input == nil || len(c.Input.Values) == 0 {
		return nil, fmt.Errorf("no input values configured")
	}
	return c.Input.Values, nil
}

func (c *Config) Validate() error {
	if c.Input == nil {
		return fmt.Errorf("input configuration section is required")
	}

	alg, err := c.GetAlgorithm()
	if err != nil {
		return err
	}

	if len(c.Input.Values) > 0 && c.Input.Random > 0 {
		return fmt.Errorf("values and random are mutually exclusive in input configuration")
	}
	if len(c.Input.Values) == 0 && c.Input.Random == 0 {
		return fmt.Errorf("either values or random is required in input configuration")
	}
	if c.Input.Random < 0 || c.Input.Random > input.MaxValues {
		return fmt.Errorf("random must be between 1 and %d", input.MaxValues)
	}
	if len(c.Input.Values) > input.MaxValues {
		return fmt.Errorf("too many values: %d (maximum %d)", len(c.Input.Values), input.MaxValues)
	}
	if err := input.Validate(alg, c.Input.Values); err != nil {
		return err
	}

	if c.Playback != nil && c.Playback.Interval < playback.MinInterval {
		return fmt.Errorf("playback interval must be at least %v", playback.MinInterval)
	}

	if c.Output != nil && c.Output.PlotPath != "" {
		plotDir := filepath.Dir(c.Output.PlotPath)
		if _, err := os.Stat(plotDir); os.IsNotExist(err) {
			return fmt.Errorf("plot directory does not exist: %s", plotDir)
		}
	}

	return nil
}
