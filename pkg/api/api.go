// Package api exposes this bundler's one operation: building a set of
// ECMAScript module entry points into a linked, tree-shaken, renamed
// output chunk. It's intended for integrating the bundler into other Go
// tools as a library.
//
// There is no separate Transform API (no TypeScript/JSX/minify-only
// pipeline to expose — this bundler only does whole-program linking) and
// no serve/watch mode, since a single-shot library Build call has no
// long-running process to host.
//
// Example usage:
//
//	package main
//
//	import (
//	    "fmt"
//	    "os"
//
//	    "github.com/esbundle/esbundle/pkg/api"
//	)
//
//	func main() {
//	    result := api.Build(api.BuildOptions{
//	        EntryPoints: []string{"input.js"},
//	        Outfile:     "output.js",
//	        TreeShake:   true,
//	    })
//
//	    fmt.Printf("%d errors and %d warnings\n",
//	        len(result.Errors), len(result.Warnings))
//
//	    for _, out := range result.OutputFiles {
//	        os.WriteFile(out.Path, []byte(out.Contents), 0644)
//	    }
//	}
package api

// Format is the output module format a build targets. Only FormatESModule
// is implemented by the code generator; the others are accepted as
// configuration so callers can express intent, but Build reports an error
// if asked to render one.
type Format uint8

const (
	FormatESModule Format = iota
	FormatCommonJS
	FormatAMD
	FormatUMD
)

// Location is a byte-accurate source position.
type Location struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
	LineText string
}

// Message is one diagnostic: an error or warning with an optional source
// location attached.
type Message struct {
	Text     string
	Location *Location
}

// Plugin lets a caller hook module resolution. ResolveID hooks are
// consulted in order by the resolver, the first match winning.
type Plugin struct {
	Name string

	// ResolveID returns a resolved id and true to short-circuit the
	// default resolution algorithm for this specifier.
	ResolveID func(source string, importer string) (id string, external bool, ok bool)

	// Load is passed through to the build configuration but is not
	// called: every module's source is read from the filesystem.
	Load func(id string) (source string, ok bool)
}

////////////////////////////////////////////////////////////////////////////////
// Build API

// BuildOptions is reduced to the options this bundler's pipeline actually
// consumes.
type BuildOptions struct {
	EntryPoints []string

	Outfile        string
	Outdir         string
	EntryNames     string // defaults to "[name].js"
	Format         Format
	TreeShake      bool

	External []string
	Plugins  []Plugin

	AbsWorkingDir string
}

// BuildResult is what Build returns: every output file the pipeline
// produced, plus every diagnostic collected along the way.
type BuildResult struct {
	Errors   []Message
	Warnings []Message

	OutputFiles []OutputFile

	// ModuleCount is how many modules the build reached from EntryPoints.
	ModuleCount int
}

// OutputFile is one file the caller should write to disk (or not, if it
// only wants the in-memory contents).
type OutputFile struct {
	Path     string
	Contents string
}

// Build runs an end-to-end build: resolving EntryPoints and every module
// they import, linking, optionally tree-shaking, and rendering a single
// output chunk.
func Build(options BuildOptions) BuildResult {
	return buildImpl(options)
}
