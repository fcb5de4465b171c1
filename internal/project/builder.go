// Package project holds the multi-file tooling: incremental builds, project
// scaffolding and the file watcher.
package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/vadererr"
)

// SourceExt is the extension of Vader source files.
const SourceExt = ".vdr"

// Builder transpiles every .vdr file under SrcDir into OutDir.
type Builder struct {
	SrcDir string
	OutDir string
	Target transpiler.Transpiler
	// Force rebuilds files whose hash is unchanged.
	Force  bool
	Logger *log.Logger
}

// Report lists what a build did, by slash-separated path relative to SrcDir.
type Report struct {
	Built   []string
	Skipped []string
	Removed []string
}

// NewBuilder creates a builder for target.
func NewBuilder(srcDir, outDir string, target transpiler.Transpiler, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{SrcDir: srcDir, OutDir: outDir, Target: target, Logger: logger}
}

// OutputPath returns where the translation of the source at rel is written.
func (b *Builder) OutputPath(rel string) string {
	rel = strings.TrimSuffix(filepath.FromSlash(rel), SourceExt) + b.Target.Extension()
	return filepath.Join(b.OutDir, rel)
}

// Sources lists the .vdr files under SrcDir, skipping hidden directories and OutDir.
func (b *Builder) Sources() ([]string, error) {
	outAbs, _ := filepath.Abs(b.OutDir)
	var files []string
	err := filepath.WalkDir(b.SrcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != b.SrcDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if abs, _ := filepath.Abs(path); abs == outAbs && path != b.SrcDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			rel, err := filepath.Rel(b.SrcDir, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return files, nil
}

// Build transpiles changed sources and drops outputs whose source is gone.
// Per-file failures are collected into a *vadererr.MultiError; the manifest is
// still saved for the files that succeeded.
func (b *Builder) Build(ctx context.Context) (Report, error) {
	var report Report
	sources, err := b.Sources()
	if err != nil {
		return report, err
	}
	manifest, err := LoadManifest(b.OutDir)
	if err != nil {
		return report, fmt.Errorf("build manifest: %w", err)
	}

	errs := &vadererr.MultiError{}
	present := make(map[string]bool, len(sources))
	for _, rel := range sources {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		present[rel] = true

		hash, err := HashSource(filepath.Join(b.SrcDir, filepath.FromSlash(rel)), b.Target.Name())
		if err != nil {
			errs.Errors = append(errs.Errors, err)
			continue
		}
		if old, ok := manifest.Hash(rel); ok && old == hash && !b.Force && exists(b.OutputPath(rel)) {
			report.Skipped = append(report.Skipped, rel)
			continue
		}
		if _, err := b.BuildFile(rel); err != nil {
			errs.Errors = append(errs.Errors, err)
			continue
		}
		manifest.SetHash(rel, hash)
		report.Built = append(report.Built, rel)
	}

	for _, rel := range manifest.Sources() {
		if present[rel] {
			continue
		}
		manifest.Remove(rel)
		if err := os.Remove(b.OutputPath(rel)); err != nil && !os.IsNotExist(err) {
			errs.Errors = append(errs.Errors, err)
			continue
		}
		report.Removed = append(report.Removed, rel)
		b.Logger.Debug("removed stale output", "source", rel)
	}

	if err := manifest.Save(); err != nil {
		errs.Errors = append(errs.Errors, fmt.Errorf("build manifest: %w", err))
	}
	b.Logger.Info("build finished", "target", b.Target.Name(), "built", len(report.Built), "skipped", len(report.Skipped))
	return report, errs.ErrOrNil()
}

// BuildFile transpiles one source, given relative to SrcDir, and returns the output path.
func (b *Builder) BuildFile(rel string) (string, error) {
	src, err := os.ReadFile(filepath.Join(b.SrcDir, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}
	out, err := b.Target.Transpile(string(src))
	if err != nil {
		return "", fmt.Errorf("%s: %w", rel, err)
	}
	dest := b.OutputPath(rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dest, []byte(out), 0o644); err != nil {
		return "", err
	}
	b.Logger.Debug("built", "source", rel, "output", dest)
	return dest, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Clean removes every output recorded in the manifest, then the manifest.
// Files in OutDir that the builder did not write are left alone.
func (b *Builder) Clean() ([]string, error) {
	manifest, err := LoadManifest(b.OutDir)
	if err != nil {
		return nil, err
	}
	var removed []string
	errs := &vadererr.MultiError{}
	for _, rel := range manifest.Sources() {
		if err := os.Remove(b.OutputPath(rel)); err != nil && !os.IsNotExist(err) {
			errs.Errors = append(errs.Errors, err)
			continue
		}
		removed = append(removed, rel)
	}
	if err := os.Remove(manifest.path); err != nil && !os.IsNotExist(err) {
		errs.Errors = append(errs.Errors, err)
	}
	return removed, errs.ErrOrNil()
}
