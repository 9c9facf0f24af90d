package app

import (
	"os"
	"strings"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, def string, envKey string) {
		if *dst != "" && *dst != def {
			return
		}
		if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
			*dst = v
		}
	}
	setString(&cfg.InputPath, DefaultInput, "ATOMIZER_INPUT")
	setString(&cfg.InputEncoding, DefaultInputEncoding, "ATOMIZER_INPUT_ENCODING")
	setString(&cfg.OutputDir, DefaultOutputDir, "ATOMIZER_OUTPUT_DIR")
	setString(&cfg.OutputEncoding, DefaultOutputEncoding, "ATOMIZER_OUTPUT_ENCODING")
	setString(&cfg.Dialect, "", "ATOMIZER_DIALECT")

	if !cfg.Verbose {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv("ATOMIZER_VERBOSE"))); s != "" {
			if s == "1" || s == "true" || s == "yes" || s == "on" {
				cfg.Verbose = true
			}
		}
	}
}
