package treeshake

import (
	"testing"

	"github.com/esbundle/esbundle/internal/ast"
	"github.com/esbundle/esbundle/internal/graph"
	"github.com/esbundle/esbundle/internal/js_parser"
	"github.com/esbundle/esbundle/internal/symtab"
)

func TestIncludeAllMarksEverything(t *testing.T) {
	g := graph.New()
	m := graph.NewModule("a")
	m.Stmts = []js_parser.StmtInfo{{}, {}}
	g.AddModule(m)

	IncludeAll(g, []string{"a"})

	for i, s := range m.Stmts {
		if !s.Included {
			t.Fatalf("statement %d not included", i)
		}
	}
}

func TestShakeDropsUnreachableExport(t *testing.T) {
	symbols := symtab.New(0)
	g := graph.New()

	lib := graph.NewModule("lib")
	usedMark := symbols.NewMark()
	deadMark := symbols.NewMark()
	lib.Stmts = []js_parser.StmtInfo{
		{Declared: map[string]symtab.Mark{"used": usedMark}, SideEffect: ast.SideEffectNone},
		{Declared: map[string]symtab.Mark{"dead": deadMark}, SideEffect: ast.SideEffectNone},
	}
	lib.LocalExports = map[string]js_parser.LocalExportEntry{
		"used": {LocalName: "used", Mark: usedMark},
		"dead": {LocalName: "dead", Mark: deadMark},
	}
	g.AddModule(lib)

	main := graph.NewModule("main")
	mainUseMark := symbols.NewMark()
	main.Stmts = []js_parser.StmtInfo{
		{Reads: map[symtab.Mark]bool{mainUseMark: true}, SideEffect: ast.SideEffectFnCall},
	}
	main.IsEntry = true
	g.AddModule(main)
	g.Entries = []string{"main"}

	g.AddEdge("main", graph.Edge{
		Kind: graph.EdgeImport, To: "lib", Source: "./lib",
		Specifiers: []js_parser.ImportSpec{{Original: "used", Used: "used", Mark: mainUseMark}},
	})
	// Shake runs after Link, which unions an import's mark with the
	// exported mark it binds to.
	symbols.Union(mainUseMark, usedMark)

	Shake(g, []string{"lib", "main"}, symbols)

	if !lib.Stmts[0].Included {
		t.Fatalf("expected 'used' declaration to be included")
	}
	if lib.Stmts[1].Included {
		t.Fatalf("expected 'dead' declaration to stay excluded")
	}
	if !main.Stmts[0].Included {
		t.Fatalf("expected main's side-effecting statement to be included")
	}
}

func TestShakeIsIdempotent(t *testing.T) {
	symbols := symtab.New(0)
	g := graph.New()
	m := graph.NewModule("main")
	m.IsEntry = true
	mark := symbols.NewMark()
	m.Stmts = []js_parser.StmtInfo{{Declared: map[string]symtab.Mark{"x": mark}, SideEffect: ast.SideEffectFnCall}}
	g.AddModule(m)
	g.Entries = []string{"main"}

	Shake(g, []string{"main"}, symbols)
	firstPass := m.Stmts[0].Included
	Shake(g, []string{"main"}, symbols)

	if m.Stmts[0].Included != firstPass {
		t.Fatalf("tree-shaking should be idempotent at its fixed point")
	}
}
