package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sibexico/pagesim/replacement"
	"github.com/sibexico/pagesim/tracefile"
)

// Config holds simulator configuration
type Config struct {
	// Simulation
	Frames           int    `json:"frames"`            // Default number of frames
	Policy           string `json:"policy"`            // Default policy (fifo, lru, optimal, all)
	OptimalLookahead string `json:"optimal_lookahead"` // Optimal lookahead strategy (scan, indexed)

	// Result cache
	CacheSize int `json:"cache_size"` // Memoized runs kept in memory, 0 disables

	// Trace export
	TraceCompression string `json:"trace_compression"` // none, lz4, snappy

	// Output
	EmptyMarker string `json:"empty_marker"` // Printed for an empty frame
	FaultMarker string `json:"fault_marker"` // Printed under a faulting step

	// Observability
	EnableMetrics bool   `json:"enable_metrics"`
	LogLevel      string `json:"log_level"`  // debug, info, warn, error
	LogFormat     string `json:"log_format"` // text, json
}

// PolicyAll selects compare mode
const PolicyAll = "all"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Frames:           3,
		Policy:           PolicyAll,
		OptimalLookahead: string(replacement.LookaheadScan),
		CacheSize:        64,
		TraceCompression: "lz4",
		EmptyMarker:      "-",
		FaultMarker:      "F",
		EnableMetrics:    true,
		LogLevel:         "warn",
		LogFormat:        "text",
	}
}

// LoadConfigFromFile loads configuration from a JSON file. Fields missing
// from the file keep their default values.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigFromEnv loads configuration from PAGESIM_* environment
// variables on top of the defaults.
func LoadConfigFromEnv() (*Config, error) {
	config := DefaultConfig()
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields from PAGESIM_* environment variables.
// A numeric variable that does not parse is an error; c keeps the
// fields applied before it.
func (c *Config) ApplyEnv() error {
	if val := os.Getenv("PAGESIM_FRAMES"); val != "" {
		frames, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("invalid PAGESIM_FRAMES %q: %w", val, err)
		}
		c.Frames = frames
	}

	if val := os.Getenv("PAGESIM_POLICY"); val != "" {
		c.Policy = val
	}

	if val := os.Getenv("PAGESIM_OPTIMAL_LOOKAHEAD"); val != "" {
		c.OptimalLookahead = val
	}

	if val := os.Getenv("PAGESIM_CACHE_SIZE"); val != "" {
		size, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("invalid PAGESIM_CACHE_SIZE %q: %w", val, err)
		}
		c.CacheSize = size
	}

	if val := os.Getenv("PAGESIM_TRACE_COMPRESSION"); val != "" {
		c.TraceCompression = val
	}

	if val := os.Getenv("PAGESIM_ENABLE_METRICS"); val != "" {
		c.EnableMetrics = val == "true" || val == "1"
	}

	if val := os.Getenv("PAGESIM_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}

	if val := os.Getenv("PAGESIM_LOG_FORMAT"); val != "" {
		c.LogFormat = val
	}

	return nil
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Frames < 1 {
		return fmt.Errorf("frames must be greater than 0, got %d", c.Frames)
	}

	if c.Policy != PolicyAll {
		if _, err := replacement.ParsePolicy(c.Policy); err != nil {
			return fmt.Errorf("invalid policy %q (must be fifo, lru, optimal, or all)", c.Policy)
		}
	}

	if _, err := replacement.ParseLookahead(c.OptimalLookahead); err != nil {
		return fmt.Errorf("invalid optimal lookahead %q (must be scan or indexed)", c.OptimalLookahead)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("cache size cannot be negative")
	}

	if _, err := tracefile.ParseCompression(c.TraceCompression); err != nil {
		return err
	}

	if c.EmptyMarker == "" || c.FaultMarker == "" {
		return fmt.Errorf("empty and fault markers cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.LogFormat)
	}

	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
