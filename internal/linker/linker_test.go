package linker

import (
	"testing"

	"github.com/esbundle/esbundle/internal/graph"
	"github.com/esbundle/esbundle/internal/js_parser"
	"github.com/esbundle/esbundle/internal/symtab"
)

func newModule(id string) *graph.Module {
	return graph.NewModule(id)
}

func TestPostOrderSimpleChain(t *testing.T) {
	symbols := symtab.New(0)
	g := graph.New()
	a, b, c := newModule("a"), newModule("b"), newModule("c")
	g.AddModule(a)
	g.AddModule(b)
	g.AddModule(c)
	g.Entries = []string{"a"}
	g.AddEdge("a", graph.Edge{Kind: graph.EdgeImport, To: "b", Order: 0})
	g.AddEdge("b", graph.Edge{Kind: graph.EdgeImport, To: "c", Order: 0})

	res := Link(g, symbols)

	if len(res.OrderedModules) != 3 {
		t.Fatalf("expected 3 modules in order, got %v", res.OrderedModules)
	}
	// post-order: dependencies before dependents
	pos := map[string]int{}
	for i, id := range res.OrderedModules {
		pos[id] = i
	}
	if pos["c"] > pos["b"] || pos["b"] > pos["a"] {
		t.Fatalf("expected c, b, a order, got %v", res.OrderedModules)
	}
}

func TestCycleDetected(t *testing.T) {
	symbols := symtab.New(0)
	g := graph.New()
	a, b := newModule("a"), newModule("b")
	g.AddModule(a)
	g.AddModule(b)
	g.Entries = []string{"a"}
	g.AddEdge("a", graph.Edge{Kind: graph.EdgeImport, To: "b", Order: 0})
	g.AddEdge("b", graph.Edge{Kind: graph.EdgeImport, To: "a", Order: 0})

	res := Link(g, symbols)

	if len(res.Cycles) == 0 {
		t.Fatalf("expected a cycle to be detected")
	}
}

func TestExportFanInMergesExportAll(t *testing.T) {
	symbols := symtab.New(0)
	g := graph.New()
	a := newModule("a")
	xMark := symbols.NewMark()
	a.LocalExports["x"] = js_parser.LocalExportEntry{LocalName: "x", Mark: xMark}
	a.Exports["x"] = xMark // fanIn reads dep.Exports directly; populate as if already linked

	idx := newModule("index")
	idx.ReExportAllSources = append(idx.ReExportAllSources, js_parser.ReExportAllSource{Source: "./a"})

	g.AddModule(a)
	g.AddModule(idx)
	g.Entries = []string{"index"}
	g.AddEdge("index", graph.Edge{Kind: graph.EdgeReExportAll, To: "a", Source: "./a", Order: 0})

	res := Link(g, symbols)
	if len(res.Duplicates) != 0 {
		t.Fatalf("unexpected duplicates: %v", res.Duplicates)
	}
	if idx.Exports["x"] != xMark {
		t.Fatalf("expected index to fan in a's export x, got %v", idx.Exports)
	}
}

func TestExportFanInDuplicateDetected(t *testing.T) {
	symbols := symtab.New(0)
	g := graph.New()
	a, b := newModule("a"), newModule("b")
	aMark, bMark := symbols.NewMark(), symbols.NewMark()
	a.Exports["x"] = aMark
	b.Exports["x"] = bMark

	idx := newModule("index")
	idx.ReExportAllSources = append(idx.ReExportAllSources,
		js_parser.ReExportAllSource{Source: "./a"}, js_parser.ReExportAllSource{Source: "./b"})

	g.AddModule(a)
	g.AddModule(b)
	g.AddModule(idx)
	g.Entries = []string{"index"}
	g.AddEdge("index", graph.Edge{Kind: graph.EdgeReExportAll, To: "a", Source: "./a", Order: 0})
	g.AddEdge("index", graph.Edge{Kind: graph.EdgeReExportAll, To: "b", Source: "./b", Order: 1})

	res := Link(g, symbols)
	if len(res.Duplicates) != 1 || res.Duplicates[0].Name != "x" {
		t.Fatalf("expected one duplicate-export error for x, got %v", res.Duplicates)
	}
	dup := res.Duplicates[0]
	if dup.Module != "index" {
		t.Fatalf("expected the error to name the re-exporting module, got %q", dup.Module)
	}
	if dup.SourceA != "./a" || dup.SourceB != "./b" {
		t.Fatalf("expected the error to name both export * sources, got %q and %q", dup.SourceA, dup.SourceB)
	}
}
