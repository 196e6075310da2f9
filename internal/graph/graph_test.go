package graph

import "testing"

func TestNewModuleInitializesMaps(t *testing.T) {
	m := NewModule("a.js")
	// None of these should panic on assignment, even before a scanner
	// populates them from a real parse.
	m.DeclaredSymbols["x"] = 1
	m.ImportedSymbols["y"] = 2
	m.LocalExports["x"] = m.LocalExports["x"]
	m.ReExports["y"] = m.ReExports["y"]
	m.Exports["x"] = 1
	m.SuggestedNames["x"] = "x"

	if m.ID != "a.js" {
		t.Fatalf("got %q", m.ID)
	}
}

func TestAddModuleAndEdge(t *testing.T) {
	g := New()
	a := NewModule("a.js")
	g.AddModule(a)
	g.AddEdge("a.js", Edge{Kind: EdgeImport, To: "b.js", Order: 0})

	if g.Modules["a.js"] != a {
		t.Fatalf("expected module to be registered")
	}
	if len(g.Edges["a.js"]) != 1 || g.Edges["a.js"][0].To != "b.js" {
		t.Fatalf("got %+v", g.Edges["a.js"])
	}
}
