package config

import (
	"fmt"
	"runtime"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// CompositeDefaultApplier applies defaults across all configuration domains.
type CompositeDefaultApplier struct {
	appliers []DefaultApplier
}

// NewDefaultApplier creates a composite default applier with all domain appliers.
func NewDefaultApplier() *CompositeDefaultApplier {
	return &CompositeDefaultApplier{
		appliers: []DefaultApplier{
			&ProjectDefaultApplier{},
			&SourceDefaultApplier{},
			&OutputDefaultApplier{},
			&BuildDefaultApplier{},
			&GalleryDefaultApplier{},
		},
	}
}

// ApplyDefaults applies defaults for all configuration domains.
func (c *CompositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, applier := range c.appliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", applier.Domain(), err)
		}
	}
	return nil
}

// ProjectDefaultApplier handles project defaults.
type ProjectDefaultApplier struct{}

func (*ProjectDefaultApplier) Domain() string { return "project" }

func (*ProjectDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Project.Title == "" {
		cfg.Project.Title = "Documentation"
	}
	if cfg.Project.Theme == "" {
		cfg.Project.Theme = "basic"
	}
	return nil
}

// SourceDefaultApplier handles source defaults.
type SourceDefaultApplier struct{}

func (*SourceDefaultApplier) Domain() string { return "source" }

func (*SourceDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Source.Dir == "" {
		cfg.Source.Dir = "docs"
	}
	if cfg.Source.Suffix == "" {
		cfg.Source.Suffix = ".md"
	}
	if cfg.Source.MasterDoc == "" {
		cfg.Source.MasterDoc = "index"
	}
	return nil
}

// OutputDefaultApplier handles output defaults.
type OutputDefaultApplier struct{}

func (*OutputDefaultApplier) Domain() string { return "output" }

func (*OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "_build/html"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatHTML
	}
	return nil
}

// BuildDefaultApplier handles build defaults.
type BuildDefaultApplier struct{}

func (*BuildDefaultApplier) Domain() string { return "build" }

func (*BuildDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Build.Workers == 0 {
		cfg.Build.Workers = runtime.NumCPU()
	}
	if cfg.Build.LogLevel == "" {
		cfg.Build.LogLevel = LogLevelInfo
	}
	if cfg.Build.LogFormat == "" {
		cfg.Build.LogFormat = LogFormatText
	}
	return nil
}

// GalleryDefaultApplier handles example gallery defaults.
type GalleryDefaultApplier struct{}

func (*GalleryDefaultApplier) Domain() string { return "gallery" }

func (*GalleryDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Gallery.Dir == "" {
		cfg.Gallery.Dir = "examples"
	}
	if cfg.Gallery.HeadingUnderline == "" {
		cfg.Gallery.HeadingUnderline = "="
	}
	if cfg.Intersphinx.Mapping == nil {
		cfg.Intersphinx.Mapping = map[string]string{}
	}
	return nil
}
