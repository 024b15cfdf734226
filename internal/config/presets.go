package config

import (
	"fmt"
	"maps"
	"slices"

	derrors "git.home.luguber.info/inful/docgallery/internal/foundation/errors"
)

// Preset names.
const (
	PresetV1 = "v1"
	PresetV2 = "v2"
	PresetV3 = "v3"
)

// presets layer on top of each other: v2 extends v1 and v3 extends v2.
var presets = map[string]func(cfg *Config){
	PresetV1: presetV1,
	PresetV2: func(cfg *Config) {
		presetV1(cfg)
		cfg.Gallery.Enabled = true
	},
	PresetV3: func(cfg *Config) {
		presetV1(cfg)
		cfg.Gallery.Enabled = true
		cfg.Project.Theme = "astropy"
		cfg.Project.Logo = "https://raw.githubusercontent.com/astropy/astropy-logo/refs/heads/main/astropy_logo_notext.svg"
		cfg.Project.Navbar = astropyNavbar()
	},
}

func presetV1(cfg *Config) {
	cfg.Project.Theme = "basic"
	cfg.Project.LastUpdatedFormat = "02 Jan 2006"
	cfg.Source.Exclude = []string{"_build"}
	cfg.Source.MasterDoc = "index"
	cfg.Output.StaticPaths = []string{"_static"}
	cfg.Gallery.Enabled = false
	cfg.Intersphinx.Mapping = map[string]string{
		"python":     "https://docs.python.org/3/",
		"numpy":      "https://numpy.org/doc/stable/",
		"scipy":      "https://docs.scipy.org/doc/scipy/",
		"matplotlib": "https://matplotlib.org/stable/",
		"astropy":    "https://docs.astropy.org/en/stable/",
		"h5py":       "https://docs.h5py.org/en/stable/",
	}
}

func astropyNavbar() []NavLink {
	return []NavLink{
		{Name: "About", Children: []NavLink{
			{Name: "About Astropy", URL: "https://astropy.org/about.html"},
			{Name: "Code of Conduct", URL: "https://astropy.org/code_of_conduct.html"},
			{Name: "Acknowledging & Citing", URL: "https://astropy.org/acknowledging.html"},
			{Name: "History", URL: "https://astropy.org/history.html"},
		}},
		{Name: "Documentation", Children: []NavLink{
			{Name: "astropy", URL: "https://docs.astropy.org"},
			{Name: "astroquery", URL: "https://astroquery.readthedocs.io"},
			{Name: "photutils", URL: "https://photutils.readthedocs.io"},
			{Name: "specutils", URL: "https://specutils.readthedocs.io"},
		}},
		{Name: "Get Help", URL: "https://astropy.org/help.html"},
		{Name: "Contribute", URL: "https://astropy.org/contribute.html"},
		{Name: "Team", URL: "https://astropy.org/team.html"},
	}
}

// Presets returns the known preset names, sorted.
func Presets() []string {
	return slices.Sorted(maps.Keys(presets))
}

// ApplyPreset overwrites the preset's fields on cfg.
func ApplyPreset(cfg *Config, name string) error {
	apply, ok := presets[name]
	if !ok {
		return derrors.ConfigError(fmt.Sprintf("unknown preset %q (known: %v)", name, Presets())).
			WithContext("preset", name).Build()
	}
	apply(cfg)
	return nil
}

// PresetConfig returns the finalized configuration of a preset alone.
func PresetConfig(name string) (*Config, error) {
	cfg := Default()
	if err := ApplyPreset(cfg, name); err != nil {
		return nil, err
	}
	cfg.Preset = name
	if err := Finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
