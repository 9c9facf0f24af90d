package output

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// manifestEntry is a compact record of a single written chapter file.
type manifestEntry struct {
	File     string `json:"file"`
	Chapter  string `json:"chapter,omitempty"`
	Elements int    `json:"elements"`
	Bytes    int    `json:"bytes"`
	SHA256   string `json:"sha256"`
}

// Manifest captures what a run produced so reruns can be compared.
type Manifest struct {
	Source      string          `json:"source"`
	Dialect     string          `json:"dialect"`
	Encoding    string          `json:"encoding"`
	GeneratedAt time.Time       `json:"generated_at"`
	Files       []manifestEntry `json:"files"`
}

// computeSHA256Hex returns a lowercase hex-encoded SHA-256 of data.
func computeSHA256Hex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// NewManifest builds a manifest from writer results. File paths are stored
// relative to base when possible.
func NewManifest(source, dialectName, encodingName, base string, written []Written, now time.Time) Manifest {
	m := Manifest{Source: source, Dialect: dialectName, Encoding: encodingName, GeneratedAt: now.UTC()}
	for _, w := range written {
		file := w.Path
		if rel, err := filepath.Rel(base, w.Path); err == nil {
			file = rel
		}
		m.Files = append(m.Files, manifestEntry{
			File:     filepath.ToSlash(file),
			Chapter:  w.Chapter,
			Elements: w.Elements,
			Bytes:    w.Bytes,
			SHA256:   w.SHA256,
		})
	}
	return m
}

// WriteManifest writes m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
