package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Input struct {
		Path     string `yaml:"path" json:"path"`
		Encoding string `yaml:"encoding" json:"encoding"`
		PreClean *bool  `yaml:"preClean" json:"preClean"`
	} `yaml:"input" json:"input"`

	Output struct {
		Mode     string `yaml:"mode" json:"mode"`
		Dir      string `yaml:"dir" json:"dir"`
		Path     string `yaml:"path" json:"path"`
		Encoding string `yaml:"encoding" json:"encoding"`
		Manifest bool   `yaml:"manifest" json:"manifest"`
		Trace    string `yaml:"trace" json:"trace"`
		Handout  string `yaml:"handoutPDF" json:"handoutPDF"`
		Strict   bool   `yaml:"strict" json:"strict"`
	} `yaml:"output" json:"output"`

	Dialect string `yaml:"dialect" json:"dialect"`

	Chapters struct {
		From       string `yaml:"from" json:"from"`
		To         string `yaml:"to" json:"to"`
		Duplicates string `yaml:"duplicates" json:"duplicates"`
	} `yaml:"chapters" json:"chapters"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are unset or still at their flag default, so explicit flags win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if (cfg.InputPath == "" || cfg.InputPath == DefaultInput) && fc.Input.Path != "" {
		cfg.InputPath = fc.Input.Path
	}
	if (cfg.InputEncoding == "" || cfg.InputEncoding == DefaultInputEncoding) && fc.Input.Encoding != "" {
		cfg.InputEncoding = fc.Input.Encoding
	}
	// PreClean defaults to on; only that default may be overridden, so an
	// explicit -no-preclean survives a file that enables it.
	if cfg.PreClean && fc.Input.PreClean != nil {
		cfg.PreClean = *fc.Input.PreClean
	}

	if (cfg.Mode == "" || cfg.Mode == DefaultMode) && fc.Output.Mode != "" {
		cfg.Mode = fc.Output.Mode
	}
	if (cfg.OutputDir == "" || cfg.OutputDir == DefaultOutputDir) && fc.Output.Dir != "" {
		cfg.OutputDir = fc.Output.Dir
	}
	if (cfg.OutputPath == "" || cfg.OutputPath == DefaultOutputPath) && fc.Output.Path != "" {
		cfg.OutputPath = fc.Output.Path
	}
	if (cfg.OutputEncoding == "" || cfg.OutputEncoding == DefaultOutputEncoding) && fc.Output.Encoding != "" {
		cfg.OutputEncoding = fc.Output.Encoding
	}
	if !cfg.Manifest && fc.Output.Manifest {
		cfg.Manifest = true
	}
	if cfg.TracePath == "" && fc.Output.Trace != "" {
		cfg.TracePath = fc.Output.Trace
	}
	if cfg.HandoutPDF == "" && fc.Output.Handout != "" {
		cfg.HandoutPDF = fc.Output.Handout
	}
	if !cfg.Strict && fc.Output.Strict {
		cfg.Strict = true
	}

	if cfg.Dialect == "" && fc.Dialect != "" {
		cfg.Dialect = fc.Dialect
	}
	if cfg.From == "" && fc.Chapters.From != "" {
		cfg.From = fc.Chapters.From
	}
	if cfg.To == "" && fc.Chapters.To != "" {
		cfg.To = fc.Chapters.To
	}
	if (cfg.Duplicates == "" || cfg.Duplicates == "error") && fc.Chapters.Duplicates != "" {
		cfg.Duplicates = fc.Chapters.Duplicates
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
