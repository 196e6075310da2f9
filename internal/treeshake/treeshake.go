// Package treeshake marks statements included or excluded by reachability
// from the entry modules. Tree-shaking is off by default (the `treeshake`
// option defaults to false) — a conservative default.
package treeshake

import (
	"github.com/esbundle/esbundle/internal/ast"
	"github.com/esbundle/esbundle/internal/graph"
	"github.com/esbundle/esbundle/internal/symtab"
)

// IncludeAll implements the default (tree-shaking off) behavior: every
// statement in every reachable module is included.
func IncludeAll(g *graph.ModuleGraph, ordered []string) {
	for _, id := range ordered {
		m := g.Modules[id]
		if m == nil {
			continue
		}
		for i := range m.Stmts {
			m.Stmts[i].Included = true
		}
	}
}

// stmtRef locates one statement within the whole graph, used by the
// transitive-closure step to find the defining statement for a Mark.
type stmtRef struct {
	moduleID string
	index    int
}

// Shake implements §4.6's tree-shaking-on algorithm.
func Shake(g *graph.ModuleGraph, ordered []string, symbols *symtab.SymbolTable) {
	// Index every statement by the root of every Mark it declares, so step
	// 3's closure can find "any statement anywhere in the graph" in O(1).
	byRoot := make(map[symtab.Mark][]stmtRef)
	for _, id := range ordered {
		m := g.Modules[id]
		if m == nil {
			continue
		}
		for i, stmt := range m.Stmts {
			for _, mark := range stmt.Declared {
				root := symbols.Find(mark)
				byRoot[root] = append(byRoot[root], stmtRef{moduleID: id, index: i})
			}
		}
	}

	include := func(ref stmtRef) bool {
		m := g.Modules[ref.moduleID]
		if m.Stmts[ref.index].Included {
			return false
		}
		m.Stmts[ref.index].Included = true
		return true
	}

	var worklist []stmtRef

	// Step 1: every statement with a non-None side effect is a root.
	for _, id := range ordered {
		m := g.Modules[id]
		if m == nil {
			continue
		}
		for i, stmt := range m.Stmts {
			if stmt.SideEffect != ast.SideEffectNone {
				if include(stmtRef{moduleID: id, index: i}) {
					worklist = append(worklist, stmtRef{moduleID: id, index: i})
				}
			}
		}
	}

	// Step 2: every entry module's local_exports is a root.
	for _, id := range ordered {
		m := g.Modules[id]
		if m == nil || !m.IsEntry {
			continue
		}
		for _, entry := range m.LocalExports {
			root := symbols.Find(entry.Mark)
			for _, ref := range byRoot[root] {
				if include(ref) {
					worklist = append(worklist, ref)
				}
			}
		}
	}

	// Step 3: transitive closure over reads.
	for len(worklist) > 0 {
		ref := worklist[0]
		worklist = worklist[1:]
		m := g.Modules[ref.moduleID]
		stmt := m.Stmts[ref.index]
		for mark := range stmt.Reads {
			root := symbols.Find(mark)
			for _, defRef := range byRoot[root] {
				if include(defRef) {
					worklist = append(worklist, defRef)
				}
			}
		}
	}

	// Step 4: recurse through import/re-export edges whose target
	// statement became included, pulling in the corresponding exported
	// Mark (and its defining statement) in the dependency module.
	for _, id := range ordered {
		for _, e := range g.Edges[id] {
			if e.Kind == graph.EdgeReExportAll {
				continue // handled by export-all fan-in at link time
			}
			dep := g.Modules[e.To]
			if dep == nil {
				continue
			}
			for _, spec := range e.Specifiers {
				if spec.Original == "*" {
					dep.Namespace.Included = true
					continue
				}
				root := symbols.Find(spec.Mark)
				for _, ref := range byRoot[root] {
					if include(ref) {
						worklist = append(worklist, ref)
					}
				}
			}
		}
		for len(worklist) > 0 {
			ref := worklist[0]
			worklist = worklist[1:]
			m := g.Modules[ref.moduleID]
			stmt := m.Stmts[ref.index]
			for mark := range stmt.Reads {
				root := symbols.Find(mark)
				for _, defRef := range byRoot[root] {
					if include(defRef) {
						worklist = append(worklist, defRef)
					}
				}
			}
		}
	}
}
