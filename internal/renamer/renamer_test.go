package renamer

import (
	"testing"

	"github.com/esbundle/esbundle/internal/graph"
	"github.com/esbundle/esbundle/internal/js_ast"
	"github.com/esbundle/esbundle/internal/js_parser"
	"github.com/esbundle/esbundle/internal/symtab"
)

func TestClaimNameDeconflicts(t *testing.T) {
	used := make(map[string]bool)
	first := claimName(used, "x")
	second := claimName(used, "x")
	third := claimName(used, "x")

	if first != "x" || second != "x$0" || third != "x$1" {
		t.Fatalf("got %q, %q, %q", first, second, third)
	}
}

func TestRenameAssignsDistinctNamesPerRoot(t *testing.T) {
	symbols := symtab.New(0)
	g := graph.New()

	a := graph.NewModule("a.js")
	aMark := symbols.NewMark()
	a.DeclaredSymbols["x"] = aMark
	a.DeclaredOrder = []js_parser.DeclaredSymbol{{Name: "x", Mark: aMark, Kind: js_ast.SymbolConst}}
	a.Stmts = []js_parser.StmtInfo{{
		Stmt:     js_ast.Stmt{Data: &js_ast.SVarDecl{Kind: js_ast.SymbolConst, Decls: []js_ast.Declarator{{Ident: js_ast.Ident{Name: "x", Ref: aMark}}}}},
		Included: true,
	}}

	b := graph.NewModule("b.js")
	bMark := symbols.NewMark()
	b.DeclaredSymbols["x"] = bMark
	b.DeclaredOrder = []js_parser.DeclaredSymbol{{Name: "x", Mark: bMark, Kind: js_ast.SymbolConst}}
	b.Stmts = []js_parser.StmtInfo{{
		Stmt:     js_ast.Stmt{Data: &js_ast.SVarDecl{Kind: js_ast.SymbolConst, Decls: []js_ast.Declarator{{Ident: js_ast.Ident{Name: "x", Ref: bMark}}}}},
		Included: true,
	}}

	g.AddModule(a)
	g.AddModule(b)

	Rename(g, []string{"a.js", "b.js"}, symbols)

	nameA := a.Stmts[0].Stmt.Data.(*js_ast.SVarDecl).Decls[0].Ident.Name
	nameB := b.Stmts[0].Stmt.Data.(*js_ast.SVarDecl).Decls[0].Ident.Name
	if nameA == nameB {
		t.Fatalf("expected distinct names, got %q and %q", nameA, nameB)
	}
	if nameA != "x" || nameB != "x$0" {
		t.Fatalf("got %q, %q", nameA, nameB)
	}
}

func TestEntriesFirstPutsEntryModulesFirst(t *testing.T) {
	g := graph.New()
	lib := graph.NewModule("lib.js")
	main := graph.NewModule("main.js")
	main.IsEntry = true
	g.AddModule(lib)
	g.AddModule(main)

	order := entriesFirst(g, []string{"lib.js", "main.js"})
	if order[0] != "main.js" {
		t.Fatalf("expected entry module first, got %v", order)
	}
}
