// Package bundler orchestrates the full resolve/scan/link/shake/fold/
// rename/render pipeline behind one entry-point orchestration function,
// and implements chunk rendering, the final stage that turns the linked
// graph into source text. Code-splitting, CSS, and source maps are out
// of scope.
package bundler

import (
	"fmt"
	"path"
	"strings"

	"github.com/esbundle/esbundle/internal/config"
	"github.com/esbundle/esbundle/internal/exportfold"
	"github.com/esbundle/esbundle/internal/graph"
	"github.com/esbundle/esbundle/internal/graphbuilder"
	"github.com/esbundle/esbundle/internal/iofs"
	"github.com/esbundle/esbundle/internal/js_ast"
	"github.com/esbundle/esbundle/internal/js_printer"
	"github.com/esbundle/esbundle/internal/linker"
	"github.com/esbundle/esbundle/internal/logger"
	"github.com/esbundle/esbundle/internal/renamer"
	"github.com/esbundle/esbundle/internal/resolver"
	"github.com/esbundle/esbundle/internal/symtab"
	"github.com/esbundle/esbundle/internal/treeshake"
)

// OutputFile is one {file_name, code} pair from §6's "Outputs" section.
type OutputFile struct {
	Path     string
	Contents string
}

// BuildResult is what Build returns: the rendered chunk(s) plus every
// diagnostic collected along the way.
type BuildResult struct {
	OutputFiles []OutputFile
	Errors      []logger.Msg
	Warnings    []logger.Msg

	// ModuleCount is the number of modules the graph builder reached from
	// the entry points, for the CLI's summary footer. Zero for a build
	// that failed before the graph was built.
	ModuleCount int
}

// Build runs the full pipeline: resolve entry points, build the module
// graph, link, optionally tree-shake, fold exports, rename, and render.
func Build(fs iofs.FS, cwd string, in config.InputOptions, out config.OutputOptions) BuildResult {
	log := logger.NewDeferredLog()

	if out.Format != config.FormatES {
		log.AddMsg(logger.Msg{Kind: logger.Error, Data: logger.MsgData{
			Text: fmt.Sprintf("output format %q is not supported by this bundler's code generator", out.Format),
		}})
		return finish(log)
	}

	symbols := symtab.New(0)
	r := resolver.New(fs, cwd, in.Plugins, in.ExternalFn)

	var entries []config.ResolvedId
	for _, spec := range in.Input {
		id, err := r.Resolve(spec, "")
		if err != nil {
			log.AddMsg(logger.Msg{Kind: logger.Error, Data: logger.MsgData{Text: err.Error()}})
			continue
		}
		entries = append(entries, id)
	}
	if log.HasErrors() {
		return finish(log)
	}

	poolSize := 4
	gb := graphbuilder.New(fs, r, symbols, &log, poolSize)
	g := gb.Build(entries)

	linkResult := linker.Link(g, symbols)
	for _, c := range linkResult.Cycles {
		log.AddMsg(logger.Msg{Kind: logger.Warning, Data: logger.MsgData{Text: c.Error()}})
	}
	for _, d := range linkResult.Duplicates {
		log.AddMsg(logger.Msg{Kind: logger.Error, Data: logger.MsgData{Text: d.Error()}})
	}
	if log.HasErrors() {
		result := finish(log)
		result.ModuleCount = len(g.Modules)
		return result
	}

	if in.TreeShake {
		treeshake.Shake(g, linkResult.OrderedModules, symbols)
	} else {
		treeshake.IncludeAll(g, linkResult.OrderedModules)
	}

	for _, id := range linkResult.OrderedModules {
		if m := g.Modules[id]; m != nil {
			exportfold.Fold(m)
		}
	}

	renamer.Rename(g, linkResult.OrderedModules, symbols)

	code := RenderChunk(g, linkResult.OrderedModules)

	result := finish(log)
	result.ModuleCount = len(g.Modules)
	if result.HasFatalErrors() {
		return result
	}

	outPath := outputPath(out, entries)
	result.OutputFiles = append(result.OutputFiles, OutputFile{Path: outPath, Contents: code})
	return result
}

func (r BuildResult) HasFatalErrors() bool {
	return len(r.Errors) > 0
}

func finish(log logger.Log) BuildResult {
	msgs := log.Done()
	var result BuildResult
	for _, m := range msgs {
		switch m.Kind {
		case logger.Error:
			result.Errors = append(result.Errors, m)
		case logger.Warning:
			result.Warnings = append(result.Warnings, m)
		}
	}
	return result
}

// outputPath implements §6's `entry_file_names` substitution for the
// single-chunk case this bundler supports.
func outputPath(out config.OutputOptions, entries []config.ResolvedId) string {
	if out.File != "" {
		return out.File
	}
	name := "bundle"
	if len(entries) > 0 {
		base := path.Base(entries[0].ID)
		name = strings.TrimSuffix(base, path.Ext(base))
	}
	fileName := strings.ReplaceAll(out.EntryFileNamesOrDefault(), "[name]", name)
	if out.Dir != "" {
		return path.Join(out.Dir, fileName)
	}
	return fileName
}

// RenderChunk implements component C9, per §4.9: emit every included
// statement in ordered_modules order, each module's statements preceded
// by a one-line source comment, delegating byte-level output to
// js_printer.
func RenderChunk(g *graph.ModuleGraph, ordered []string) string {
	var b strings.Builder
	commonPrefix := commonPathPrefix(g, ordered)
	for _, id := range ordered {
		m := g.Modules[id]
		if m == nil {
			continue
		}

		var toPrint []js_ast.Stmt
		for _, s := range m.Stmts {
			if s.Included {
				toPrint = append(toPrint, s.Stmt)
			}
		}
		if len(toPrint) == 0 {
			continue
		}

		fmt.Fprintf(&b, "// %s\n", strings.TrimPrefix(id, commonPrefix))
		b.WriteString(js_printer.PrintStmts(toPrint))
		b.WriteString("\n")
	}
	return b.String()
}

func commonPathPrefix(g *graph.ModuleGraph, ordered []string) string {
	if len(ordered) == 0 {
		return ""
	}
	prefix := path.Dir(ordered[0])
	for _, id := range ordered[1:] {
		dir := path.Dir(id)
		for !strings.HasPrefix(dir+"/", prefix+"/") && prefix != "." && prefix != "/" {
			prefix = path.Dir(prefix)
		}
	}
	if prefix == "." {
		return ""
	}
	return prefix + "/"
}
