// Package graph holds the Module and ModuleGraph data model: the shared
// structure the graph builder populates and every later stage (linker,
// tree shaker, export folder, renamer, chunk renderer) reads and mutates
// in place rather than copying between passes.
package graph

import (
	"github.com/esbundle/esbundle/internal/config"
	"github.com/esbundle/esbundle/internal/js_ast"
	"github.com/esbundle/esbundle/internal/js_parser"
	"github.com/esbundle/esbundle/internal/symtab"
)

// EdgeKind distinguishes the three dependency-edge shapes from §3.
type EdgeKind uint8

const (
	EdgeImport EdgeKind = iota
	EdgeReExport
	EdgeReExportAll
)

// Edge is one dependency arrow in the ModuleGraph, carrying the specifier
// list needed by the Linker's binding-union pass (empty for
// EdgeReExportAll, which instead drives export fan-in).
type Edge struct {
	Kind       EdgeKind
	To         string // target module id
	Source     string // the specifier string as written
	Specifiers []js_parser.ImportSpec
	Order      int
}

// Namespace is a module's lazily-materialized `import *` / `export *`
// binding, per §3's Module.namespace field.
type Namespace struct {
	Mark     symtab.Mark
	Included bool
}

// Module is the per-file record described in §3.
type Module struct {
	ID string

	Stmts []js_parser.StmtInfo

	// DeclaredOrder/ImportedOrder preserve source order, which the
	// Renamer walks directly (§4.8 step 2); DeclaredSymbols/
	// ImportedSymbols mirror the same data as name-keyed lookups for the
	// Linker and ExportFolder.
	DeclaredOrder   []js_parser.DeclaredSymbol
	ImportedOrder   []js_parser.DeclaredSymbol
	DeclaredSymbols map[string]symtab.Mark
	ImportedSymbols map[string]symtab.Mark

	LocalExports       map[string]js_parser.LocalExportEntry
	ReExports          map[string]js_parser.ReExportEntry
	ReExportAllSources []js_parser.ReExportAllSource

	// Exports is built during linking: the fan-in of LocalExports,
	// ReExports, and ReExportAll chains (§4.5).
	Exports map[string]symtab.Mark

	// ResolvedIDs caches specifier -> ResolvedId, per §3's `resolved_ids`
	// field; the ExportFolder uses it to tell an internal `export * from`
	// source from an external one.
	ResolvedIDs    map[string]config.ResolvedId
	SuggestedNames map[string]string

	Namespace Namespace
	IsEntry   bool
	External  bool

	ModuleScope *js_ast.Scope
}

func NewModule(id string) *Module {
	return &Module{
		ID:              id,
		DeclaredSymbols: make(map[string]symtab.Mark),
		ImportedSymbols: make(map[string]symtab.Mark),
		LocalExports:    make(map[string]js_parser.LocalExportEntry),
		ReExports:       make(map[string]js_parser.ReExportEntry),
		Exports:         make(map[string]symtab.Mark),
		ResolvedIDs:     make(map[string]config.ResolvedId),
		SuggestedNames:  make(map[string]string),
	}
}

// ModuleGraph is the directed graph of §3: nodes keyed by module id, edges
// stable-ordered by the `order` field assigned at scan time.
type ModuleGraph struct {
	Modules map[string]*Module
	Edges   map[string][]Edge // from id -> outgoing edges
	Entries []string          // entry module ids, in input order
}

func New() *ModuleGraph {
	return &ModuleGraph{
		Modules: make(map[string]*Module),
		Edges:   make(map[string][]Edge),
	}
}

func (g *ModuleGraph) AddModule(m *Module) {
	g.Modules[m.ID] = m
}

func (g *ModuleGraph) AddEdge(from string, e Edge) {
	g.Edges[from] = append(g.Edges[from], e)
}
