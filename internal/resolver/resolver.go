// Package resolver turns an import specifier plus its importing module
// into a ResolvedId: a Resolver struct holding immutable lookup tables, a
// public Resolve method, and fatal resolution errors reported through the
// logger with both the bad specifier and its importer attached.
//
// This Resolver does not read package.json "main"/"browser"/"exports"
// fields or tsconfig.json path mappings — the reduced grammar this
// bundler targets has no bundler-specific package metadata, so a
// package's directory is resolved straight to its "index.js" file.
package resolver

import (
	"fmt"
	"path"
	"strings"

	"github.com/esbundle/esbundle/internal/config"
	"github.com/esbundle/esbundle/internal/iofs"
)

// hostModules lists the bare specifiers treated as external host-platform
// modules, scoped down to the handful a linking-layer demo actually needs
// to reference.
var hostModules = map[string]bool{
	"fs": true, "path": true, "os": true, "url": true, "util": true,
	"events": true, "stream": true, "assert": true, "buffer": true,
	"crypto": true, "http": true, "https": true, "process": true,
}

// ResolveError is returned (never panicked) when a non-external specifier
// cannot be found on disk; the graph builder turns it into a logger.Msg
// carrying both Source and Importer.
type ResolveError struct {
	Source   string
	Importer string
}

func (e *ResolveError) Error() string {
	if e.Importer == "" {
		return fmt.Sprintf("could not resolve %q", e.Source)
	}
	return fmt.Sprintf("could not resolve %q from %q", e.Source, e.Importer)
}

// Resolver implements the three-step resolution algorithm.
type Resolver struct {
	fs      iofs.FS
	cwd     string
	plugins []config.Plugin
	// external reports whether an otherwise-resolved bare specifier should
	// be marked external rather than bundled (step 2's "configured
	// predicate").
	external func(source string) bool
}

func New(fs iofs.FS, cwd string, plugins []config.Plugin, external func(string) bool) *Resolver {
	if external == nil {
		external = func(string) bool { return false }
	}
	return &Resolver{fs: fs, cwd: cwd, plugins: plugins, external: external}
}

func isRelativeOrAbsolute(source string) bool {
	return path.IsAbs(source) || strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../")
}

// Resolve implements the three-step algorithm. importer is "" for an
// entry point, standing in for "resolved from the command line".
func (r *Resolver) Resolve(source string, importer string) (config.ResolvedId, error) {
	// Step 1: plugin chain, first Some wins.
	for _, p := range r.plugins {
		if p.ResolveID == nil {
			continue
		}
		if id, ok := p.ResolveID(source, importer, importer != ""); ok {
			return id, nil
		}
	}

	// Step 2: bare specifiers.
	if !isRelativeOrAbsolute(source) && importer != "" {
		stripped := strings.TrimPrefix(source, "node:")
		if hostModules[stripped] {
			return config.ResolvedId{ID: stripped, External: true}, nil
		}
		if id, err := r.resolveNodeModules(stripped, importer); err == nil {
			id.External = r.external(stripped)
			return id, nil
		}
		return config.ResolvedId{}, &ResolveError{Source: source, Importer: importer}
	}

	// Step 3: relative (or entry-point bare) path resolution.
	baseDir := r.cwd
	if importer != "" {
		baseDir = path.Dir(importer)
	}
	abs := source
	if !path.IsAbs(abs) {
		abs = path.Join(baseDir, source)
	}
	resolved, ok := r.resolveFile(abs)
	if !ok {
		return config.ResolvedId{}, &ResolveError{Source: source, Importer: importer}
	}
	return config.ResolvedId{ID: resolved, External: false}, nil
}

// resolveFile appends ".js" when abs has no extension and neither form
// exists verbatim, per §4.1 step 3. A path that is a directory resolves to
// its "index.js".
func (r *Resolver) resolveFile(abs string) (string, bool) {
	if isDir, ok := r.fs.Stat(abs); ok {
		if isDir {
			idx := path.Join(abs, "index.js")
			if _, ok := r.fs.Stat(idx); ok {
				return idx, true
			}
			return "", false
		}
		return abs, true
	}
	if path.Ext(abs) == "" {
		withExt := abs + ".js"
		if isDir, ok := r.fs.Stat(withExt); ok && !isDir {
			return withExt, true
		}
	}
	return "", false
}

// resolveNodeModules performs a Node-style upward walk from importer's
// directory through a chain of "node_modules" directories, per §4.1 step
// 2's fallback. It only looks for "<pkg>/index.js" or "<pkg>.js" — no
// package.json inspection, matching this resolver's reduced scope.
func (r *Resolver) resolveNodeModules(specifier string, importer string) (config.ResolvedId, error) {
	dir := path.Dir(importer)
	for {
		candidateDir := path.Join(dir, "node_modules", specifier)
		if resolved, ok := r.resolveFile(candidateDir); ok {
			return config.ResolvedId{ID: resolved}, nil
		}
		idx := path.Join(candidateDir, "index.js")
		if isDir, ok := r.fs.Stat(idx); ok && !isDir {
			return config.ResolvedId{ID: idx}, nil
		}
		parent := path.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return config.ResolvedId{}, &ResolveError{Source: specifier, Importer: importer}
}
