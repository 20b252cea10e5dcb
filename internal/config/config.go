package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/seqtree/internal/errors"
	"github.com/vango-dev/seqtree/pkg/builder"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "seqtree.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 4000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultScriptsDir is the default directory of build scripts.
	DefaultScriptsDir = "scripts"

	// DefaultPollInterval is the default watcher poll interval.
	DefaultPollInterval = "500ms"

	// DefaultRegion is the default publish region.
	DefaultRegion = "us-east-1"
)

// Config represents the complete seqtree.json configuration.
type Config struct {
	// Builder contains tree builder settings.
	Builder BuilderConfig `json:"builder"`

	// Render contains HTML renderer settings.
	Render RenderConfig `json:"render"`

	// Preview contains preview server settings.
	Preview PreviewConfig `json:"preview"`

	// Publish contains object storage settings.
	Publish PublishConfig `json:"publish"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// BuilderConfig contains tree builder settings.
type BuilderConfig struct {
	// PrettyPrint interleaves whitespace fragments into the output.
	PrettyPrint bool `json:"prettyPrint,omitempty"`

	// BaseIndent is the indentation level of the outermost block.
	BaseIndent int `json:"baseIndent,omitempty"`

	// MaxPerLine is the per-line sequence capacity.
	MaxPerLine int `json:"maxPerLine,omitempty"`

	// IndentUnit is repeated once per indentation level.
	IndentUnit string `json:"indentUnit,omitempty"`

	// LineMode is "caller" or "counter". Empty leaves the choice to the
	// caller: Go builds number by source line, scripts by counter.
	LineMode string `json:"lineMode,omitempty"`
}

// RenderConfig contains HTML renderer settings.
type RenderConfig struct {
	// Pretty re-indents rendered HTML.
	Pretty bool `json:"pretty,omitempty"`

	// Indent is the renderer's indentation string.
	Indent string `json:"indent,omitempty"`
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// ScriptsDir holds the *.json build scripts to serve.
	ScriptsDir string `json:"scriptsDir,omitempty"`

	// Watch enables live reload when scripts change.
	Watch bool `json:"watch"`

	// PollInterval is how often the watcher scans (e.g., "500ms").
	PollInterval string `json:"pollInterval,omitempty"`
}

// PublishConfig contains object storage settings.
type PublishConfig struct {
	// Bucket is the destination bucket.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty"`

	// Region is the storage region.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the service endpoint for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty"`

	// PathStyle forces path-style addressing.
	PathStyle bool `json:"pathStyle,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Builder: BuilderConfig{
			MaxPerLine: builder.DefaultMaxPerLine,
			IndentUnit: "\t",
		},
		Render: RenderConfig{
			Indent: "  ",
		},
		Preview: PreviewConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			ScriptsDir:   DefaultScriptsDir,
			Watch:        true,
			PollInterval: DefaultPollInterval,
		},
		Publish: PublishConfig{
			Region: DefaultRegion,
		},
		LogLevel: "info",
	}
}

// Load reads configuration from the specified directory.
// It looks for seqtree.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No seqtree.json found in " + filepath.Dir(path)).
				WithSuggestion("Create seqtree.json or pass settings as flags")
		}
		return nil, errors.New(errors.CodeConfigParse).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithDetail("Failed to parse seqtree.json: " + err.Error()).
			WithSuggestion("Check that seqtree.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Builder.MaxPerLine == 0 {
		c.Builder.MaxPerLine = builder.DefaultMaxPerLine
	}
	if c.Builder.IndentUnit == "" {
		c.Builder.IndentUnit = "\t"
	}

	if c.Render.Indent == "" {
		c.Render.Indent = "  "
	}

	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
	if c.Preview.ScriptsDir == "" {
		c.Preview.ScriptsDir = DefaultScriptsDir
	}
	if c.Preview.PollInterval == "" {
		c.Preview.PollInterval = DefaultPollInterval
	}

	if c.Publish.Region == "" {
		c.Publish.Region = DefaultRegion
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Builder.MaxPerLine <= 0 {
		return invalid("builder.maxPerLine must be positive, got %d", c.Builder.MaxPerLine)
	}
	if c.Builder.BaseIndent < 0 {
		return invalid("builder.baseIndent must not be negative, got %d", c.Builder.BaseIndent)
	}
	if c.Builder.PrettyPrint && c.Builder.IndentUnit == "" {
		return invalid("builder.indentUnit must not be empty when prettyPrint is set")
	}
	if _, ok := builder.ParseLineMode(c.Builder.LineMode); !ok {
		return invalid("builder.lineMode must be \"caller\" or \"counter\", got %q", c.Builder.LineMode)
	}
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return invalid("preview.port must be between 0 and 65535")
	}
	if d, err := time.ParseDuration(c.Preview.PollInterval); err != nil || d <= 0 {
		return invalid("preview.pollInterval must be a positive duration, got %q", c.Preview.PollInterval)
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return invalid("logLevel must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.CodeConfigInvalid).WithDetailf(format, args...)
}

// BuilderOptions converts the builder section to builder options.
func (c *Config) BuilderOptions() ([]builder.Option, error) {
	mode, ok := builder.ParseLineMode(c.Builder.LineMode)
	if !ok {
		return nil, invalid("builder.lineMode must be \"caller\" or \"counter\", got %q", c.Builder.LineMode)
	}
	opts := []builder.Option{
		builder.WithPrettyPrint(c.Builder.PrettyPrint),
		builder.WithBaseIndent(c.Builder.BaseIndent),
		builder.WithMaxPerLine(c.Builder.MaxPerLine),
		builder.WithIndentUnit(c.Builder.IndentUnit),
	}
	if c.Builder.LineMode != "" {
		opts = append(opts, builder.WithLineMode(mode))
	}
	return opts, nil
}

// PreviewAddress returns the listen address for the preview server.
func (c *Config) PreviewAddress() string {
	return c.Preview.Host + ":" + strconv.Itoa(c.Preview.Port)
}

// PreviewURL returns the URL of the preview server.
func (c *Config) PreviewURL() string {
	return "http://" + c.PreviewAddress()
}

// ScriptsPath returns the absolute path to the scripts directory.
func (c *Config) ScriptsPath() string {
	if filepath.IsAbs(c.Preview.ScriptsDir) {
		return c.Preview.ScriptsDir
	}
	return filepath.Join(c.Dir(), c.Preview.ScriptsDir)
}

// PollInterval returns the parsed watcher poll interval, falling back to
// the default when unset or invalid.
func (c *Config) PollInterval() time.Duration {
	if d, err := time.ParseDuration(c.Preview.PollInterval); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultPollInterval)
	return d
}

// SlogLevel returns the configured log level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing seqtree.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.CodeConfigNotFound).
				WithDetail("No seqtree.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadOrDefault loads seqtree.json from the project root above startDir.
// If there is none, it returns the defaults rooted at startDir.
func LoadOrDefault(startDir string) (*Config, error) {
	root, err := FindProjectRoot(startDir)
	if err != nil {
		if errors.CodeOf(err) != errors.CodeConfigNotFound {
			return nil, err
		}
		abs, absErr := filepath.Abs(startDir)
		if absErr != nil {
			return nil, absErr
		}
		cfg := New()
		cfg.configPath = filepath.Join(abs, ConfigFileName)
		return cfg, nil
	}
	return Load(root)
}
