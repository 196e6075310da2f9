// Package linker computes a post-order module schedule, export fan-in,
// and binding-union across every import/re-export edge, as a single
// pass making graph-global ordering decisions. Code-splitting and CSS
// are out of scope here.
package linker

import (
	"fmt"
	"sort"

	"github.com/esbundle/esbundle/internal/graph"
	"github.com/esbundle/esbundle/internal/symtab"
)

// CycleError reports an import cycle detected during the post-order walk
// (§7: cycles detected and reported, not fatal).
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	s := "import cycle: "
	for i, id := range e.Path {
		if i > 0 {
			s += " -> "
		}
		s += id
	}
	return s
}

// DuplicateExportError reports two sources of the same exported name
// reaching a module via `export * from` fan-in (§4.5). SourceA and
// SourceB are the two `export * from` specifiers that both produced
// Name; Module is the re-exporting module where the collision landed.
type DuplicateExportError struct {
	Module  string
	Name    string
	SourceA string
	SourceB string
}

func (e *DuplicateExportError) Error() string {
	return fmt.Sprintf("%s: duplicate export %q from both %q and %q", e.Module, e.Name, e.SourceA, e.SourceB)
}

// Result is what the Linker hands downstream: the post-order schedule plus
// the import cycles (non-fatal) and duplicate exports (fatal in
// bundler.Build) found along the way.
type Result struct {
	OrderedModules []string
	Cycles         []*CycleError
	Duplicates     []*DuplicateExportError
}

// Link runs the full §4.5 algorithm: post-order scheduling, export
// fan-in, and binding union. It mutates every graph.Module's Exports map
// and every Namespace.Included flag in place.
func Link(g *graph.ModuleGraph, symbols *symtab.SymbolTable) Result {
	var res Result
	res.OrderedModules = postOrder(g, &res)

	for _, id := range res.OrderedModules {
		fanIn(g, id, &res)
	}
	for _, id := range res.OrderedModules {
		unionBindings(g, id, symbols)
	}

	return res
}

// postOrder implements §4.5's "depth-first walk with stack, children
// visited in ascending order" schedule, starting from the entry set.
func postOrder(g *graph.ModuleGraph, res *Result) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int)
	var order []string
	var stack []string

	var visit func(id string)
	visit = func(id string) {
		if color[id] == black {
			return
		}
		if color[id] == gray {
			res.Cycles = append(res.Cycles, &CycleError{Path: append(append([]string{}, stack...), id)})
			return
		}
		color[id] = gray
		stack = append(stack, id)

		edges := append([]graph.Edge{}, g.Edges[id]...)
		sort.SliceStable(edges, func(i, j int) bool { return edges[i].Order < edges[j].Order })
		for _, e := range edges {
			if _, ok := g.Modules[e.To]; !ok {
				continue // external
			}
			visit(e.To)
		}

		stack = stack[:len(stack)-1]
		color[id] = black
		order = append(order, id)
	}

	for _, entry := range g.Entries {
		visit(entry)
	}
	return order
}

// fanIn implements §4.5's export fan-in step for one module: merge
// local_exports and re_exports directly, and recursively pull in every
// `export * from` dependency's non-default exports.
func fanIn(g *graph.ModuleGraph, id string, res *Result) {
	m := g.Modules[id]
	if m == nil {
		return
	}

	// sourceOf tracks which `export * from` specifier last contributed
	// each name, so a later collision can name both sources.
	sourceOf := make(map[string]string)

	for _, src := range m.ReExportAllSources {
		dep := g.Modules[resolveEdgeTarget(g, id, src.Source, graph.EdgeReExportAll)]
		if dep == nil {
			continue // external export * — kept as-is by the ExportFolder
		}
		for name, mark := range dep.Exports {
			if name == "default" {
				continue
			}
			if existing, ok := m.Exports[name]; ok && existing != mark {
				res.Duplicates = append(res.Duplicates, &DuplicateExportError{
					Module:  id,
					Name:    name,
					SourceA: sourceOf[name],
					SourceB: src.Source,
				})
				continue
			}
			m.Exports[name] = mark
			sourceOf[name] = src.Source
		}
	}

	for name, entry := range m.LocalExports {
		m.Exports[name] = entry.Mark
	}
	for name, entry := range m.ReExports {
		m.Exports[name] = entry.Mark
	}
}

func resolveEdgeTarget(g *graph.ModuleGraph, from, source string, kind graph.EdgeKind) string {
	for _, e := range g.Edges[from] {
		if e.Kind == kind && e.Source == source {
			return e.To
		}
	}
	return ""
}

// unionBindings implements §4.5's binding-union step: for every specifier
// on an outgoing Import/ReExport edge, union the local mark with the
// target module's exported mark, and record suggested names / namespace
// requirements along the way.
func unionBindings(g *graph.ModuleGraph, id string, symbols *symtab.SymbolTable) {
	for _, e := range g.Edges[id] {
		if e.Kind != graph.EdgeImport && e.Kind != graph.EdgeReExport {
			continue
		}
		dep := g.Modules[e.To]
		if dep == nil {
			continue // external: no binding to union
		}
		for _, spec := range e.Specifiers {
			if spec.Original == "*" {
				dep.Namespace.Included = true
				symbols.Union(spec.Mark, dep.Namespace.Mark)
				if spec.Used != "default" {
					dep.SuggestedNames["*"] = spec.Used
				}
				continue
			}
			targetMark, ok := dep.Exports[spec.Original]
			if !ok {
				continue // unresolved export name: the mark stays un-unioned and no diagnostic is reported
			}
			symbols.Union(spec.Mark, targetMark)
			if (spec.Original == "default") && spec.Used != "default" {
				dep.SuggestedNames["default"] = spec.Used
			}
		}
	}
}
