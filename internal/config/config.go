// Package config loads and validates the compressor's YAML configuration
// file (als.yml) against the CUE schema at docs/config.cue.
package config

import (
	stdlibErrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	cueErrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Config is the root of als.yml: the compressor's five knobs plus the file
// discovery and server sections.
type Config struct {
	Compressor CompressorConfig `yaml:"compressor"`
	Files      FilesConfig      `yaml:"files"`
	Server     ServerConfig     `yaml:"server"`
}

// CompressorConfig mirrors the knobs spec.md §6 names for the compression
// driver.
type CompressorConfig struct {
	MinPatternLength     int     `yaml:"min_pattern_length" cue:"min_pattern_length"`
	CtxFallbackThreshold float64 `yaml:"ctx_fallback_threshold" cue:"ctx_fallback_threshold"`
	MaxRangeExpansion    int64   `yaml:"max_range_expansion" cue:"max_range_expansion"`
	DictMinOccurrences   int     `yaml:"dict_min_occurrences" cue:"dict_min_occurrences"`
	DictMaxEntries       int     `yaml:"dict_max_entries" cue:"dict_max_entries"`
}

// FilesConfig names the doublestar include/exclude globs the CLI expands
// when a compress argument is a directory rather than a single file.
type FilesConfig struct {
	Include []string `yaml:"include" cue:"include"`
	Exclude []string `yaml:"exclude" cue:"exclude"`
}

// ServerConfig configures `alsc server`.
type ServerConfig struct {
	Host      string     `yaml:"host" cue:"host"`
	Port      int        `yaml:"port" cue:"port"`
	Auth      AuthConfig `yaml:"auth" cue:"auth"`
	RateLimit RateConfig `yaml:"rate_limit" cue:"rate_limit"`
}

// AuthConfig holds a bearer token named by an environment variable, never
// stored directly in the config file.
type AuthConfig struct {
	Type     string `yaml:"type" cue:"type"`
	TokenEnv string `yaml:"token_env" cue:"token_env"`
}

// RateConfig configures the per-IP token bucket guarding the compress and
// decompress endpoints.
type RateConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" cue:"requests_per_second"`
	Burst             int     `yaml:"burst" cue:"burst"`
}

// ErrUnknownField is returned when the config file sets a field the CUE
// schema does not declare.
type ErrUnknownField struct {
	Err error
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown field in configuration: %v", e.Err)
}

func (e *ErrUnknownField) Unwrap() error { return e.Err }

const (
	DefaultConfigPath    = "als.yml"
	DefaultCueSchemaPath = "docs/config.cue"
)

// Load reads configPath as YAML and validates it against the CUE schema at
// cueSchemaPath in two stages: yaml.Unmarshal, then CUE Unify+Validate.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	if cueSchemaPath == "" {
		cueSchemaPath = DefaultCueSchemaPath
	}

	schemaBytes, err := os.ReadFile(cueSchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CUE schema file %s: %w", cueSchemaPath, err)
	}

	yamlData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(yamlData, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML data from %s: %w", configPath, err)
	}

	ctx := cuecontext.New()
	schemaVal := ctx.CompileBytes(schemaBytes, cue.Filename(cueSchemaPath))
	if err := schemaVal.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE schema from %s: %w", cueSchemaPath, err)
	}

	cueVal := ctx.Encode(cfg)
	if err := cueVal.Err(); err != nil {
		return nil, fmt.Errorf("failed to encode config struct to CUE value: %w", err)
	}

	configDef := schemaVal.LookupPath(cue.ParsePath("#Config"))
	if !configDef.Exists() {
		return nil, fmt.Errorf("#Config definition not found in CUE schema %s", cueSchemaPath)
	}

	instanceVal := configDef.Unify(cueVal)
	if err := classifyCueErr(instanceVal.Err()); err != nil {
		return nil, err
	}
	if err := classifyCueErr(instanceVal.Validate(cue.Concrete(true))); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func classifyCueErr(err error) error {
	if err == nil {
		return nil
	}
	var cueErrList cueErrors.Error
	if stdlibErrors.As(err, &cueErrList) {
		for _, single := range cueErrors.Errors(cueErrList) {
			detail := cueErrors.Details(single, nil)
			if strings.Contains(detail, "field not allowed") || strings.Contains(detail, "is not a field in") {
				return &ErrUnknownField{Err: err}
			}
		}
	}
	return fmt.Errorf("configuration validation failed: %w", err)
}

// GetDefaultConfig returns the defaults named in spec.md §7.
func GetDefaultConfig() *Config {
	return &Config{
		Compressor: CompressorConfig{
			MinPatternLength:     3,
			CtxFallbackThreshold: 1.0,
			MaxRangeExpansion:    1_000_000,
			DictMinOccurrences:   2,
			DictMaxEntries:       4096,
		},
		Files: FilesConfig{
			Include: []string{"**/*.csv", "**/*.json", "**/*.xlsx", "**/*.parquet", "**/*.sqlite"},
			Exclude: []string{".git/**", "node_modules/**"},
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8787,
			Auth: AuthConfig{
				Type:     "token",
				TokenEnv: "ALS_SERVER_TOKEN",
			},
			RateLimit: RateConfig{
				RequestsPerSecond: 5,
				Burst:             10,
			},
		},
	}
}

// WriteDefaultConfig writes GetDefaultConfig() to configPath as YAML,
// creating the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg := GetDefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for config file %s: %w", configPath, err)
		}
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write default config to %s: %w", configPath, err)
	}
	return nil
}
