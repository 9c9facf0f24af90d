package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/atomizer/internal/app"
	"github.com/hyperifyio/atomizer/internal/classify"
	"github.com/hyperifyio/atomizer/internal/dialect"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	def := app.Defaults()
	var (
		cfg         app.Config
		configPath  string
		envFiles    string
		noPreClean  bool
		showVersion bool
	)

	flag.StringVar(&cfg.InputPath, "input", def.InputPath, "Manuscript path or glob; the first match is used")
	flag.StringVar(&cfg.InputEncoding, "input.encoding", def.InputEncoding, "Character set of the manuscript")
	flag.BoolVar(&noPreClean, "no-preclean", false, "Skip removal of page breaks and empty paragraphs")
	flag.StringVar(&cfg.Mode, "mode", def.Mode, "Output mode: slides (one file per chapter) or book (single file)")
	flag.StringVar(&cfg.OutputDir, "out.dir", def.OutputDir, "Directory for per-chapter slide files")
	flag.StringVar(&cfg.OutputPath, "out", def.OutputPath, "Path of the single AsciiDoc file in book mode")
	flag.StringVar(&cfg.OutputEncoding, "out.encoding", def.OutputEncoding, "Character set of written files")
	flag.StringVar(&cfg.Dialect, "dialect", "", "Rendering dialect: "+strings.Join(dialect.Names(), ", "))
	flag.StringVar(&cfg.From, "from", "", "First chapter to emit (inclusive)")
	flag.StringVar(&cfg.To, "to", "", "Chapter to stop before (exclusive)")
	flag.StringVar(&cfg.Duplicates, "duplicates", def.Duplicates, "Duplicate chapter titles: error or suffix")
	flag.BoolVar(&cfg.Manifest, "manifest", false, "Write manifest.json next to the output")
	flag.StringVar(&cfg.TracePath, "trace", "", "Write every classified code block to this file")
	flag.StringVar(&cfg.HandoutPDF, "handout", "", "Also render the selected chapters as a PDF handout")
	flag.BoolVar(&cfg.Strict, "strict", false, "Fail when a rendered chapter is not well-formed AsciiDoc")
	flag.StringVar(&configPath, "config", os.Getenv("ATOMIZER_CONFIG"), "YAML or JSON config file")
	flag.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files to load")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()
	cfg.PreClean = !noPreClean

	if showVersion {
		fmt.Printf("atomizer %s (%s, %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return
	}

	if err := app.LoadEnvFiles(strings.Split(envFiles, ",")...); err != nil {
		log.Warn().Err(err).Msg("load env files")
	}
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("load config")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(exitCode(err))
	}
}

// exitCode maps a run error to the process status. A numbered list that
// lost its structure means the manuscript itself needs fixing.
func exitCode(err error) int {
	if errors.Is(err, classify.ErrListUnsynchronized) {
		return 2
	}
	return 1
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
