package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/esbundle/esbundle/pkg/api"
)

func TestRunBuildsEntryPointToOutfile(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.js")
	if err := os.WriteFile(entry, []byte(`export const x = 1; console.log(x)`), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	outfile := filepath.Join(dir, "out.js")

	code := run([]string{"--outfile=" + outfile, entry})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	contents, err := os.ReadFile(outfile)
	if err != nil {
		t.Fatalf("expected output file to be written: %v", err)
	}
	if string(contents) == "" {
		t.Fatalf("expected non-empty bundle output")
	}
}

func TestRunWithNoEntryPointsPrintsHelp(t *testing.T) {
	if code := run(nil); code != 1 {
		t.Fatalf("expected exit code 1 with no entry points, got %d", code)
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.js")
	os.WriteFile(entry, []byte(`console.log(1)`), 0644)

	if code := run([]string{"--format=bogus", entry}); code != 1 {
		t.Fatalf("expected exit code 1 for an unknown format, got %d", code)
	}
}

// The trailing summary reports both the module count and the
// error/warning count, not just the latter.
func TestSummaryLineReportsModuleCountAndDiagnostics(t *testing.T) {
	result := api.BuildResult{ModuleCount: 3}
	line := summaryLine(result)
	if !strings.Contains(line, "3 module(s)") {
		t.Fatalf("expected module count in summary, got %q", line)
	}

	result.Errors = []api.Message{{Text: "boom"}}
	line = summaryLine(result)
	if !strings.Contains(line, "3 module(s)") || !strings.Contains(line, "1 error(s)") {
		t.Fatalf("expected both module count and error count, got %q", line)
	}
}
