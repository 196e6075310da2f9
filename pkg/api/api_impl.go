package api

// This file adapts the public options/result shapes onto the internal
// pipeline's config.InputOptions/OutputOptions and bundler.Build.

import (
	"os"

	"github.com/esbundle/esbundle/internal/bundler"
	"github.com/esbundle/esbundle/internal/config"
	"github.com/esbundle/esbundle/internal/iofs"
	"github.com/esbundle/esbundle/internal/logger"
)

func buildImpl(options BuildOptions) BuildResult {
	cwd := options.AbsWorkingDir
	if cwd == "" {
		if wd, err := os.Getwd(); err == nil {
			cwd = wd
		}
	}

	externalSet := make(map[string]bool, len(options.External))
	for _, e := range options.External {
		externalSet[e] = true
	}

	in := config.InputOptions{
		Input:     options.EntryPoints,
		TreeShake: options.TreeShake,
		Plugins:   convertPlugins(options.Plugins),
		ExternalFn: func(source string) bool {
			return externalSet[source]
		},
	}

	out := config.OutputOptions{
		File:           options.Outfile,
		Dir:            options.Outdir,
		EntryFileNames: options.EntryNames,
		Format:         convertFormat(options.Format),
	}

	result := bundler.Build(iofs.Real{}, cwd, in, out)

	return BuildResult{
		Errors:      convertMsgs(result.Errors),
		Warnings:    convertMsgs(result.Warnings),
		OutputFiles: convertOutputFiles(result.OutputFiles),
		ModuleCount: result.ModuleCount,
	}
}

func convertPlugins(plugins []Plugin) []config.Plugin {
	if len(plugins) == 0 {
		return nil
	}
	out := make([]config.Plugin, len(plugins))
	for i, p := range plugins {
		p := p
		out[i] = config.Plugin{
			Name: p.Name,
			ResolveID: func(source string, importer string, hasImporter bool) (config.ResolvedId, bool) {
				if p.ResolveID == nil {
					return config.ResolvedId{}, false
				}
				id, external, ok := p.ResolveID(source, importer)
				if !ok {
					return config.ResolvedId{}, false
				}
				return config.ResolvedId{ID: id, External: external}, true
			},
			Load: p.Load,
		}
	}
	return out
}

func convertFormat(f Format) config.Format {
	switch f {
	case FormatCommonJS:
		return config.FormatCJS
	case FormatAMD:
		return config.FormatAMD
	case FormatUMD:
		return config.FormatUMD
	default:
		return config.FormatES
	}
}

func convertOutputFiles(files []bundler.OutputFile) []OutputFile {
	if len(files) == 0 {
		return nil
	}
	out := make([]OutputFile, len(files))
	for i, f := range files {
		out[i] = OutputFile{Path: f.Path, Contents: f.Contents}
	}
	return out
}

func convertMsgs(msgs []logger.Msg) []Message {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = Message{Text: m.Data.Text, Location: convertLocation(m.Data.Location)}
	}
	return out
}

func convertLocation(loc *logger.MsgLocation) *Location {
	if loc == nil {
		return nil
	}
	return &Location{
		File:     loc.File,
		Line:     loc.Line,
		Column:   loc.Column,
		Length:   loc.Length,
		LineText: loc.LineText,
	}
}
