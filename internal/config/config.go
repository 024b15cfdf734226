package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docgallery/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "docgallery.yaml"

// Config represents the application configuration.
type Config struct {
	Version     string            `yaml:"version"`
	Preset      string            `yaml:"preset,omitempty"`
	Project     ProjectConfig     `yaml:"project"`
	Source      SourceConfig      `yaml:"source"`
	Output      OutputConfig      `yaml:"output"`
	Build       BuildConfig       `yaml:"build"`
	Gallery     GalleryConfig     `yaml:"gallery"`
	Intersphinx IntersphinxConfig `yaml:"intersphinx"`
}

// ProjectConfig describes the documentation project and its presentation.
type ProjectConfig struct {
	Title string `yaml:"title"`
	Theme string `yaml:"theme"`
	Logo  string `yaml:"logo,omitempty"`
	// Navbar links rendered in the page header by the HTML layout.
	Navbar []NavLink `yaml:"navbar,omitempty"`
	// LastUpdatedFormat is a Go time layout; empty disables the footer stamp.
	LastUpdatedFormat string `yaml:"last_updated_format,omitempty"`
}

// NavLink is a navbar entry; entries with children render as a dropdown.
type NavLink struct {
	Name     string    `yaml:"name"`
	URL      string    `yaml:"url,omitempty"`
	Children []NavLink `yaml:"children,omitempty"`
}

// SourceConfig locates source documents.
type SourceConfig struct {
	Dir       string   `yaml:"dir"`
	Suffix    string   `yaml:"suffix"`
	Exclude   []string `yaml:"exclude,omitempty"`
	MasterDoc string   `yaml:"master_doc"`
}

// OutputConfig controls what the build writes.
type OutputConfig struct {
	Dir         string       `yaml:"dir"`
	Format      OutputFormat `yaml:"format"`
	Clean       bool         `yaml:"clean"`
	StaticPaths []string     `yaml:"static_paths,omitempty"`
}

// BuildConfig controls the build process.
type BuildConfig struct {
	// Workers is the number of parallel read workers; 0 means one per CPU.
	Workers     int       `yaml:"workers"`
	LogLevel    LogLevel  `yaml:"log_level"`
	LogFormat   LogFormat `yaml:"log_format"`
	MetricsFile string    `yaml:"metrics_file,omitempty"`
}

// GalleryConfig configures the example gallery.
type GalleryConfig struct {
	Enabled bool `yaml:"enabled"`
	// Dir is the generated gallery directory, relative to the source dir.
	Dir              string `yaml:"dir"`
	HeadingUnderline string `yaml:"heading_underline"`
	// TemplateDir holds templates overriding the built-in page templates.
	TemplateDir string `yaml:"template_dir,omitempty"`
}

// IntersphinxConfig maps external documentation sets to base URLs.
type IntersphinxConfig struct {
	Disabled bool              `yaml:"disabled"`
	Mapping  map[string]string `yaml:"mapping,omitempty"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Version: "1",
		Project: ProjectConfig{
			Title: "Documentation",
			Theme: "basic",
		},
		Source: SourceConfig{
			Dir:       "docs",
			Suffix:    ".md",
			Exclude:   []string{"_build"},
			MasterDoc: "index",
		},
		Output: OutputConfig{
			Dir:    "_build/html",
			Format: FormatHTML,
			Clean:  true,
		},
		Build: BuildConfig{
			Workers:   1,
			LogLevel:  LogLevelInfo,
			LogFormat: LogFormatText,
		},
		Gallery: GalleryConfig{
			Enabled:          true,
			Dir:              "examples",
			HeadingUnderline: "=",
		},
		Intersphinx: IntersphinxConfig{
			Mapping: map[string]string{},
		},
	}
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, derrors.ConfigError(fmt.Sprintf("configuration file not found: %s", configPath)).
				WithContext("path", configPath).Build()
		}
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Fatal().Build()
	}
	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configPath, or returns the defaults when configPath is
// the default file name and that file does not exist.
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath == DefaultPath {
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			loadEnvFile()
			cfg := Default()
			if err := Finalize(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
	}
	return Load(configPath)
}

// Parse decodes YAML configuration on top of the defaults and the preset
// named in the document, then finalizes it.
func Parse(data []byte) (*Config, error) {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	cfg := Default()
	if head.Preset != "" {
		if err := ApplyPreset(cfg, head.Preset); err != nil {
			return nil, err
		}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	if err := Finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies environment overrides, normalization, defaults and
// validation, in that order.
func Finalize(cfg *Config) error {
	applyEnvOverrides(cfg)
	res, err := NormalizeConfig(cfg)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		slog.Warn("config normalized", slog.String("detail", w))
	}
	if err := NewDefaultApplier().ApplyDefaults(cfg); err != nil {
		return err
	}
	return ValidateConfig(cfg)
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Init writes a starter configuration based on preset ("" for none).
func Init(configPath, preset string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.NewError(derrors.CategoryAlreadyExists,
			fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			UserAction().Build()
	}

	cfg := Default()
	if preset != "" {
		if err := ApplyPreset(cfg, preset); err != nil {
			return err
		}
		cfg.Preset = preset
	}
	cfg.Project.Title = "My Project"

	data, err := Marshal(cfg)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}
