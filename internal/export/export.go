// Package export writes the ranking pages as a static site.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"top10animes.net/rank-web/internal/assets"
	"top10animes.net/rank-web/internal/observability"
	"top10animes.net/rank-web/internal/pages"
)

// ManifestFile is written last; its presence marks a complete build.
const ManifestFile = "build.json"

// Options configures a static build.
type Options struct {
	Assembler *pages.Assembler
	OutDir    string
	Lang      string
	Now       func() time.Time
}

// Manifest describes one build.
type Manifest struct {
	ID          string         `json:"id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Lang        string         `json:"lang"`
	Languages   []string       `json:"languages"`
	Pages       []PageManifest `json:"pages"`
	Assets      []string       `json:"assets"`
}

// PageManifest records what a page contains.
type PageManifest struct {
	Kind   string `json:"kind"`
	Path   string `json:"path"`
	Period string `json:"period"`
	Items  int    `json:"items"`
	Cards  int    `json:"cards"`
}

var outputs = []struct {
	kind pages.Kind
	file string
}{
	{pages.KindEpisodes, "index.html"},
	{pages.KindAnticipated, filepath.Join("anticipated", "index.html")},
}

// Build renders both pages and the assets into opts.OutDir. Missing payloads
// produce empty pages rather than errors.
func Build(ctx context.Context, opts Options) (Manifest, error) {
	if opts.Assembler == nil {
		return Manifest{}, fmt.Errorf("export: assembler is required")
	}
	if opts.OutDir == "" {
		return Manifest{}, fmt.Errorf("export: output directory is required")
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	logger := observability.FromContext(ctx)
	bundle := opts.Assembler.Bundle()

	m := Manifest{
		ID:          ulid.Make().String(),
		GeneratedAt: now().UTC(),
		Languages:   bundle.Supported(),
	}

	for _, out := range outputs {
		if err := ctx.Err(); err != nil {
			return Manifest{}, err
		}
		view := opts.Assembler.Assemble(ctx, pages.Request{Kind: out.kind, Lang: opts.Lang, Static: true})
		m.Lang = view.Lang
		var buf bytes.Buffer
		if err := opts.Assembler.Render(&buf, view); err != nil {
			return Manifest{}, fmt.Errorf("render %s: %w", out.kind, err)
		}
		if err := writeFile(filepath.Join(opts.OutDir, out.file), buf.Bytes()); err != nil {
			return Manifest{}, err
		}
		m.Pages = append(m.Pages, PageManifest{
			Kind:   out.kind.String(),
			Path:   filepath.ToSlash(out.file),
			Period: view.Period,
			Items:  view.Total,
			Cards:  len(view.Cards),
		})
		logger.Info("page exported", zap.String("kind", out.kind.String()), zap.Int("cards", len(view.Cards)))
	}

	files, err := assets.Files()
	if err != nil {
		return Manifest{}, err
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writeFile(filepath.Join(opts.OutDir, "assets", name), files[name]); err != nil {
			return Manifest{}, err
		}
		m.Assets = append(m.Assets, "assets/"+name)
	}

	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("encode manifest: %w", err)
	}
	if err := writeFile(filepath.Join(opts.OutDir, ManifestFile), append(raw, '\n')); err != nil {
		return Manifest{}, err
	}
	logger.Info("build complete", zap.String("build_id", m.ID), zap.String("out", opts.OutDir))
	return m, nil
}

// writeFile replaces path atomically.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open tmp: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}
