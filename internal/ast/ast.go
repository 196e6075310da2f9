// Package ast holds the handful of shared, format-agnostic types used by
// the lexer, parser, graph, and linker packages: a home for types that
// every later stage needs but that don't belong to any one stage.
package ast

// Loc is a 0-based byte offset from the start of a source file.
type Loc struct {
	Start int32
}

// Range is a Loc plus a byte length.
type Range struct {
	Loc Loc
	Len int32
}

func (r Range) End() int32 { return r.Loc.Start + r.Len }

// ImportKind distinguishes how a dependency was referenced, so the
// resolver and graph builder can treat a static "import" differently from
// a dynamic "import()" expression.
type ImportKind uint8

const (
	ImportEntryPoint ImportKind = iota
	ImportStmt
	ImportReExport
	ImportReExportAll
	ImportDynamic
)

func (k ImportKind) String() string {
	switch k {
	case ImportEntryPoint:
		return "entry-point"
	case ImportStmt:
		return "import-statement"
	case ImportReExport:
		return "re-export"
	case ImportReExportAll:
		return "re-export-all"
	case ImportDynamic:
		return "dynamic-import"
	default:
		return "unknown"
	}
}

// SideEffectTag classifies a top-level statement for tree-shaking
// purposes. Anything other than SideEffectNone is automatically included
// as a root by the tree-shaker.
type SideEffectTag uint8

const (
	SideEffectNone SideEffectTag = iota
	SideEffectTodo
	SideEffectFnCall
	SideEffectVisitGlobal
	SideEffectVisitThis
	SideEffectModuleDecl
	SideEffectNonTopLevelBlock
)

func (t SideEffectTag) String() string {
	switch t {
	case SideEffectNone:
		return "none"
	case SideEffectTodo:
		return "todo"
	case SideEffectFnCall:
		return "fn-call"
	case SideEffectVisitGlobal:
		return "visit-global"
	case SideEffectVisitThis:
		return "visit-this"
	case SideEffectModuleDecl:
		return "module-decl"
	case SideEffectNonTopLevelBlock:
		return "non-top-level-block"
	default:
		return "unknown"
	}
}
