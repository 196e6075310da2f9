package exportfold

import (
	"testing"

	"github.com/esbundle/esbundle/internal/graph"
	"github.com/esbundle/esbundle/internal/js_ast"
	"github.com/esbundle/esbundle/internal/js_parser"
	"github.com/esbundle/esbundle/internal/symtab"
)

func TestFoldExportDeclUnwraps(t *testing.T) {
	m := graph.NewModule("a.js")
	m.Stmts = []js_parser.StmtInfo{{
		Stmt: js_ast.Stmt{Data: &js_ast.SExportDecl{
			Decl: js_ast.Stmt{Data: &js_ast.SVarDecl{Kind: js_ast.SymbolConst}},
		}},
		Included: true,
	}}

	Fold(m)

	if len(m.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(m.Stmts))
	}
	if _, ok := m.Stmts[0].Stmt.Data.(*js_ast.SVarDecl); !ok {
		t.Fatalf("expected bare var decl, got %T", m.Stmts[0].Stmt.Data)
	}
}

func TestFoldDropsImport(t *testing.T) {
	m := graph.NewModule("a.js")
	m.Stmts = []js_parser.StmtInfo{{
		Stmt:     js_ast.Stmt{Data: &js_ast.SImport{Source: "./b"}},
		Included: true,
	}}

	Fold(m)

	if len(m.Stmts) != 0 {
		t.Fatalf("expected import statement to be dropped, got %d stmts", len(m.Stmts))
	}
}

func TestFoldAnonymousDefaultClassIsNamed(t *testing.T) {
	m := graph.NewModule("foo.js")
	mark := symtab.Mark(1)
	m.LocalExports["default"] = js_parser.LocalExportEntry{LocalName: "default", Mark: mark}
	m.Stmts = []js_parser.StmtInfo{{
		Stmt:     js_ast.Stmt{Data: &js_ast.SExportDefault{ClassDecl: &js_ast.Class{}}},
		Included: true,
	}}

	Fold(m)

	decl, ok := m.Stmts[0].Stmt.Data.(*js_ast.SClassDecl)
	if !ok {
		t.Fatalf("expected bare class decl, got %T", m.Stmts[0].Stmt.Data)
	}
	if decl.Class.Name == nil || decl.Class.Name.Name == "" {
		t.Fatalf("expected a synthesized class name")
	}
	if m.DeclaredSymbols[decl.Class.Name.Name] != mark {
		t.Fatalf("expected the synthesized name to be declared with the default export's mark")
	}
}

func TestFoldDefaultExportOfIdentDropsStatement(t *testing.T) {
	m := graph.NewModule("a.js")
	m.Stmts = []js_parser.StmtInfo{{
		Stmt: js_ast.Stmt{Data: &js_ast.SExportDefault{
			Expr: &js_ast.Expr{Data: &js_ast.EIdentifier{Name: "existing"}},
		}},
		Included: true,
	}}

	Fold(m)

	if len(m.Stmts) != 0 {
		t.Fatalf("expected `export default <ident>` to drop entirely, got %d stmts", len(m.Stmts))
	}
}

func TestFoldAppendsNamespaceWhenIncluded(t *testing.T) {
	m := graph.NewModule("foo.js")
	m.Namespace.Included = true
	m.Namespace.Mark = symtab.Mark(7)
	aMark := symtab.Mark(8)
	m.Exports["a"] = aMark

	Fold(m)

	found := false
	for _, s := range m.Stmts {
		if vd, ok := s.Stmt.Data.(*js_ast.SVarDecl); ok {
			if _, isCall := vd.Decls[0].Init.Data.(*js_ast.ECall); isCall {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a synthesized namespace object declaration, got %+v", m.Stmts)
	}
}
