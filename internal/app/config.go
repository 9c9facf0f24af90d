package app

import (
	"errors"
	"strings"
)

// Output modes.
const (
	ModeSlides = "slides"
	ModeBook   = "book"
)

// Defaults reproduce the fixed pipeline the tool grew out of.
const (
	DefaultInput          = "AtomicScala*.htm"
	DefaultInputEncoding  = "windows-1252"
	DefaultOutputDir      = "slides"
	DefaultOutputPath     = "AtomicScala.adoc"
	DefaultMode           = ModeSlides
	DefaultOutputEncoding = "utf-8"
)

// Config holds runtime configuration for the application.
type Config struct {
	// InputPath may be a glob; the first match in lexical order is used.
	InputPath     string
	InputEncoding string
	PreClean      bool

	Mode           string
	OutputDir      string
	OutputPath     string
	OutputEncoding string
	Dialect        string

	// From and To select a chapter range; see book.Book.Select.
	From string
	To   string

	// Duplicates is "error" or "suffix".
	Duplicates string

	Manifest   bool
	TracePath  string
	HandoutPDF string

	// Strict turns structural problems in rendered chapters into errors.
	Strict bool

	Verbose bool
}

// Defaults returns a Config with every default applied.
func Defaults() Config {
	return Config{
		InputPath:      DefaultInput,
		InputEncoding:  DefaultInputEncoding,
		PreClean:       true,
		Mode:           DefaultMode,
		OutputDir:      DefaultOutputDir,
		OutputPath:     DefaultOutputPath,
		OutputEncoding: DefaultOutputEncoding,
		Duplicates:     "error",
	}
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.InputPath) == "" {
		return errors.New("config: input path is required")
	}
	switch cfg.Mode {
	case ModeSlides:
		if strings.TrimSpace(cfg.OutputDir) == "" {
			return errors.New("config: output dir is required in slides mode")
		}
	case ModeBook:
		if strings.TrimSpace(cfg.OutputPath) == "" {
			return errors.New("config: output path is required in book mode")
		}
	default:
		return errors.New("config: mode must be slides or book")
	}
	switch cfg.Duplicates {
	case "", "error", "suffix":
	default:
		return errors.New("config: duplicates must be error or suffix")
	}
	return nil
}
