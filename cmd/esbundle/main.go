// Command esbundle is a thin CLI over pkg/api, parsed by hand: a switch
// over strings.HasPrefix on each raw argument, rather than the flag
// package. It carries no --serve/--watch/--service(stdio)/profiling
// flags, since those need a long-running process or a second language
// runtime to talk to, neither of which this bundler has.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/esbundle/esbundle/internal/logger"
	"github.com/esbundle/esbundle/pkg/api"
)

var helpText = `
Usage:
  esbundle [options] [entry points]

Options:
  --outfile=...       The output file (for a single entry point)
  --outdir=...        The output directory (for multiple entry points)
  --entry-names=...   Path template for the output file name (default "[name].js")
  --format=...         Output format: esm | cjs | amd | umd (default esm)
  --tree-shake         Drop statements unreachable from the entry points' exports
  --external:M         Treat module M as external; leave its import/export as-is
  -h, --help           Show this help text
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	options := api.BuildOptions{EntryNames: "[name].js"}
	var entryPoints []string

	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			fmt.Print(helpText)
			return 0

		case strings.HasPrefix(arg, "--outfile="):
			options.Outfile = arg[len("--outfile="):]

		case strings.HasPrefix(arg, "--outdir="):
			options.Outdir = arg[len("--outdir="):]

		case strings.HasPrefix(arg, "--entry-names="):
			options.EntryNames = arg[len("--entry-names="):]

		case strings.HasPrefix(arg, "--format="):
			switch arg[len("--format="):] {
			case "esm":
				options.Format = api.FormatESModule
			case "cjs":
				options.Format = api.FormatCommonJS
			case "amd":
				options.Format = api.FormatAMD
			case "umd":
				options.Format = api.FormatUMD
			default:
				fmt.Fprintf(os.Stderr, "error: unknown format %q\n", arg[len("--format="):])
				return 1
			}

		case arg == "--tree-shake":
			options.TreeShake = true

		case strings.HasPrefix(arg, "--external:"):
			options.External = append(options.External, arg[len("--external:"):])

		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(os.Stderr, "error: unknown flag %q\n", arg)
			return 1

		default:
			entryPoints = append(entryPoints, arg)
		}
	}

	if len(entryPoints) == 0 {
		fmt.Print(helpText)
		return 1
	}
	options.EntryPoints = entryPoints

	result := api.Build(options)
	colors := logger.TerminalColors()

	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, colors.Bold+formatMsg("warning", w)+colors.Reset)
	}
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, colors.Red+formatMsg("error", e)+colors.Reset)
	}

	summary := summaryLine(result)
	if len(result.Errors) > 0 {
		fmt.Fprintln(os.Stderr, summary)
		return 1
	}

	for _, out := range result.OutputFiles {
		if err := writeOutputFile(out); err != nil {
			fmt.Fprintf(os.Stderr, "error: could not write %q: %s\n", out.Path, err)
			return 1
		}
	}

	fmt.Fprintln(os.Stderr, summary)
	return 0
}

func summaryLine(result api.BuildResult) string {
	var msgs []logger.Msg
	for _, e := range result.Errors {
		msgs = append(msgs, logger.Msg{Kind: logger.Error, Data: logger.MsgData{Text: e.Text}})
	}
	for _, w := range result.Warnings {
		msgs = append(msgs, logger.Msg{Kind: logger.Warning, Data: logger.MsgData{Text: w.Text}})
	}
	if s := logger.Summary(msgs, result.ModuleCount); s != "" {
		return s
	}
	return "0 errors"
}

func formatMsg(kind string, m api.Message) string {
	if m.Location == nil {
		return fmt.Sprintf("%s: %s", kind, m.Text)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", m.Location.File, m.Location.Line, m.Location.Column, kind, m.Text)
}

func writeOutputFile(out api.OutputFile) error {
	if dir := dirname(out.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(out.Path, []byte(out.Contents), 0644)
}

func dirname(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return ""
}
