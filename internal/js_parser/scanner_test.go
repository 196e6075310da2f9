package js_parser

import (
	"testing"

	"github.com/esbundle/esbundle/internal/logger"
	"github.com/esbundle/esbundle/internal/symtab"
)

func parseAndScan(t *testing.T, source string) (ScanResult, logger.Log) {
	t.Helper()
	log := logger.NewDeferredLog()
	p := NewParser("test.js", source, log)
	stmts, ok := p.ParseModule()
	if !ok {
		t.Fatalf("parse failed: %v", log.Done())
	}
	symbols := symtab.New(0)
	return Scan("test.js", stmts, symbols, log), log
}

func TestScanRecordsLocalExport(t *testing.T) {
	scan, log := parseAndScan(t, `export const x = 1`)
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Done())
	}
	if _, ok := scan.LocalExports["x"]; !ok {
		t.Fatalf("expected local export %q, got %+v", "x", scan.LocalExports)
	}
}

func TestScanRecordsReExportAll(t *testing.T) {
	scan, _ := parseAndScan(t, `export * from './a'`)
	if len(scan.ReExportAllSources) != 1 || scan.ReExportAllSources[0].Source != "./a" {
		t.Fatalf("got %+v", scan.ReExportAllSources)
	}
}

func TestScanResolvesReadsAcrossStatements(t *testing.T) {
	scan, _ := parseAndScan(t, `const x = 1; console.log(x)`)
	var declMark, readMark symtab.Mark
	for _, mark := range scan.Stmts[0].Declared {
		declMark = mark
	}
	for mark := range scan.Stmts[1].Reads {
		readMark = mark
	}
	if declMark == 0 || declMark != readMark {
		t.Fatalf("expected the second statement's read to resolve to the first statement's declaration, got decl=%v read=%v", declMark, readMark)
	}
}

func TestScanDuplicateLetDeclarationIsParseError(t *testing.T) {
	_, log := parseAndScan(t, `let x = 1; let x = 2`)
	if !log.HasErrors() {
		t.Fatalf("expected a duplicate-declaration error")
	}
}

func TestScanDuplicateVarDeclarationIsAllowed(t *testing.T) {
	_, log := parseAndScan(t, `var x = 1; var x = 2`)
	if log.HasErrors() {
		t.Fatalf("unexpected errors for repeated var: %v", log.Done())
	}
}

func TestScanBareExportClauseUnionsWithLocalDeclaration(t *testing.T) {
	symbols := symtab.New(0)
	log := logger.NewDeferredLog()
	p := NewParser("test.js", `const x = 1; export { x }`, log)
	stmts, ok := p.ParseModule()
	if !ok {
		t.Fatalf("parse failed: %v", log.Done())
	}
	scan := Scan("test.js", stmts, symbols, log)
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Done())
	}

	entry, ok := scan.LocalExports["x"]
	if !ok {
		t.Fatalf("expected a local export entry for %q, got %+v", "x", scan.LocalExports)
	}
	var declMark symtab.Mark
	for _, mark := range scan.Stmts[0].Declared {
		declMark = mark
	}
	if declMark == 0 {
		t.Fatalf("expected the const declaration to produce a mark")
	}
	if symbols.Find(declMark) != symbols.Find(entry.Mark) {
		t.Fatalf("expected export mark and local declaration mark to be unioned to the same root, got decl root %v, export root %v", symbols.Find(declMark), symbols.Find(entry.Mark))
	}
}

func TestScanExportClauseWithAliasUnionsWithLocalDeclaration(t *testing.T) {
	symbols := symtab.New(0)
	log := logger.NewDeferredLog()
	p := NewParser("test.js", `const x = 1; export { x as y }`, log)
	stmts, ok := p.ParseModule()
	if !ok {
		t.Fatalf("parse failed: %v", log.Done())
	}
	scan := Scan("test.js", stmts, symbols, log)

	entry, ok := scan.LocalExports["y"]
	if !ok {
		t.Fatalf("expected a local export entry for %q, got %+v", "y", scan.LocalExports)
	}
	var declMark symtab.Mark
	for _, mark := range scan.Stmts[0].Declared {
		declMark = mark
	}
	if symbols.Find(declMark) != symbols.Find(entry.Mark) {
		t.Fatalf("expected export mark and local declaration mark to be unioned, got decl root %v, export root %v", symbols.Find(declMark), symbols.Find(entry.Mark))
	}
}
