package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/hyperifyio/atomizer/internal/book"
	"github.com/hyperifyio/atomizer/internal/classify"
	"github.com/hyperifyio/atomizer/internal/dialect"
	"github.com/hyperifyio/atomizer/internal/markup"
	"github.com/hyperifyio/atomizer/internal/output"
	"github.com/hyperifyio/atomizer/internal/validate"
)

// ErrNoInput is returned when the input pattern matches no file.
var ErrNoInput = errors.New("no input file matches")

type App struct {
	cfg     Config
	dialect dialect.Dialect
	encoder *encoding.Encoder
}

// New validates cfg and resolves the dialect and output encoding.
func New(ctx context.Context, cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	d, err := dialect.Get(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	enc, err := output.Encoder(cfg.OutputEncoding)
	if err != nil {
		return nil, err
	}
	return &App{cfg: cfg, dialect: d, encoder: enc}, nil
}

func (a *App) Close() {
	// nothing yet
}

// Run executes the whole pipeline: read, pre-clean, chapterize, classify,
// render and write.
func (a *App) Run(ctx context.Context) error {
	inputPath, err := ResolveInput(a.cfg.InputPath)
	if err != nil {
		return err
	}
	src, err := readInput(inputPath, a.cfg.InputEncoding)
	if err != nil {
		return err
	}
	log.Info().Str("input", inputPath).Str("size", humanize.Bytes(uint64(len(src)))).Str("dialect", string(a.dialect.Type)).Msg("read manuscript")

	if a.cfg.PreClean {
		cleaned, stats, err := markup.PreClean(src)
		if err != nil {
			return fmt.Errorf("pre-clean: %w", err)
		}
		log.Debug().Int("page_breaks", stats.PageBreaks).Int("empty_paragraphs", stats.EmptyParagraphs).Msg("pre-cleaned manuscript")
		src = cleaned
	}

	b, err := book.Build(src, book.Options{
		Classify:   classify.Options{ExerciseHeadings: a.dialect.ExerciseHeadings},
		Duplicates: book.DuplicatePolicy(a.cfg.Duplicates),
	})
	if err != nil {
		return err
	}
	log.Info().Int("chapters", b.Len()).Msg("classified manuscript")

	chapters := b.Chapters()
	if a.cfg.From != "" || a.cfg.To != "" {
		if chapters, err = b.Select(a.cfg.From, a.cfg.To); err != nil {
			return err
		}
		log.Info().Str("from", a.cfg.From).Str("to", a.cfg.To).Int("chapters", len(chapters)).Msg("selected chapter range")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, ch := range chapters {
		if err := validate.ValidateChapter(output.RenderChapter(ch, a.dialect)); err != nil {
			if a.cfg.Strict {
				return fmt.Errorf("chapter %q: %w", ch.Name, err)
			}
			log.Warn().Err(err).Str("chapter", ch.Name).Msg("rendered chapter has structural problems")
		}
	}

	var written []output.Written
	base := a.cfg.OutputDir
	switch a.cfg.Mode {
	case ModeBook:
		w, err := output.WriteBook(a.cfg.OutputPath, chapters, a.dialect, a.encoder)
		if err != nil {
			return err
		}
		written = append(written, w)
		base = filepath.Dir(a.cfg.OutputPath)
	default:
		if written, err = output.WriteSlides(a.cfg.OutputDir, chapters, a.dialect, a.encoder); err != nil {
			return err
		}
	}

	if a.cfg.Manifest {
		m := output.NewManifest(inputPath, string(a.dialect.Type), a.cfg.OutputEncoding, base, written, time.Now())
		if err := output.WriteManifest(filepath.Join(base, "manifest.json"), m); err != nil {
			return err
		}
	}
	if a.cfg.TracePath != "" {
		if err := output.WriteTrace(a.cfg.TracePath, chapters, a.dialect); err != nil {
			return err
		}
		log.Info().Str("out", a.cfg.TracePath).Msg("wrote trace")
	}
	if a.cfg.HandoutPDF != "" {
		if err := output.WriteHandoutPDF(a.cfg.HandoutPDF, chapters, a.dialect); err != nil {
			return fmt.Errorf("handout pdf: %w", err)
		}
		log.Info().Str("out", a.cfg.HandoutPDF).Msg("wrote handout PDF")
	}
	return nil
}

// ResolveInput expands a glob pattern and returns the first match in
// lexical order. A plain path is returned as is when it exists.
func ResolveInput(pattern string) (string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return "", fmt.Errorf("input pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w %q", ErrNoInput, pattern)
	}
	sort.Strings(matches)
	if len(matches) > 1 {
		log.Warn().Strs("matches", matches).Msg("several inputs match; using the first")
	}
	return matches[0], nil
}

// readInput reads the manuscript and decodes it from the named charset.
func readInput(path, charset string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if charset == "" || charset == "utf-8" {
		return string(raw), nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("input encoding %q: %w", charset, err)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode input: %w", err)
	}
	return string(decoded), nil
}
