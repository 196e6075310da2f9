package js_parser

import (
	"github.com/esbundle/esbundle/internal/ast"
	"github.com/esbundle/esbundle/internal/js_ast"
	"github.com/esbundle/esbundle/internal/logger"
	"github.com/esbundle/esbundle/internal/symtab"
)

// ImportSpec is one {original, used, mark, order} entry attached to an
// import or re-export descriptor, per §3's Edge.info shape.
type ImportSpec struct {
	Original string
	Used     string
	Mark     symtab.Mark
	Order    int
}

// ImportDesc groups every specifier imported from one source specifier,
// in first-seen order, per §4.2's "keyed by source specifier, preserving
// first-seen order" requirement.
type ImportDesc struct {
	Source     string
	Specifiers []ImportSpec
	Order      int
}

// ReExportDesc is the re-export analogue of ImportDesc (`export {x} from
// 's'` / `export * as n from 's'`).
type ReExportDesc struct {
	Source     string
	Specifiers []ImportSpec
	Order      int
}

type ReExportAllSource struct {
	Source string
	Order  int
}

type DynamicImportDesc struct {
	Source    string
	HasSource bool
}

type LocalExportEntry struct {
	LocalName  string
	Identifier *string // referenced identifier name, when applicable
	Mark       symtab.Mark
}

type ReExportEntry struct {
	Source   string
	Original string
	Mark     symtab.Mark
}

type DeclaredSymbol struct {
	Name string
	Mark symtab.Mark
	Kind js_ast.SymbolKind
}

// StmtInfo is the per-(top-level)-statement record from §3: declared
// bindings, read/write sets (accumulated through any nested scopes), and
// a side-effect tag.
type StmtInfo struct {
	Stmt       js_ast.Stmt
	Included   bool
	Declared   map[string]symtab.Mark
	Reads      map[symtab.Mark]bool
	Writes     map[symtab.Mark]bool
	SideEffect ast.SideEffectTag
	ExportMark symtab.Mark // set when this statement defines a local_exports entry
}

// ScanResult is everything the Scanner (component C2) produces for one
// module: the statement-level facts the Linker, TreeShaker, ExportFolder
// and Renamer all consume.
type ScanResult struct {
	Stmts              []StmtInfo
	DeclaredSymbols    []DeclaredSymbol // top-level only, source order
	ImportedSymbols    []DeclaredSymbol // top-level only, source order
	LocalExports       map[string]LocalExportEntry
	ReExports          map[string]ReExportEntry
	ReExportAllSources []ReExportAllSource
	Imports            []ImportDesc
	ReExportDescs      []ReExportDesc
	DynamicImports     []DynamicImportDesc
	ModuleScope        *js_ast.Scope
	SuggestedNames     map[string]string
}

type scanner struct {
	symbols *symtab.SymbolTable
	order   int
	res     ScanResult
	exports map[string]bool // dedup guard for per-statement export mark wiring
	absPath string
	log     logger.Log

	// Accumulators for the top-level statement currently being visited.
	curDeclared map[string]symtab.Mark
	curReads    map[symtab.Mark]bool
	curWrites   map[symtab.Mark]bool
}

// Scan runs component C2 over a freshly parsed module AST, assigning a
// fresh Mark (via the shared SymbolTable) to every binding occurrence and
// resolving every identifier use to the Mark visible in its lexical
// scope. absPath/log are used only to report a duplicate non-var
// declaration in the same block as a parse-time error (see declare()).
func Scan(absPath string, stmts []js_ast.Stmt, symbols *symtab.SymbolTable, log logger.Log) ScanResult {
	s := &scanner{
		symbols: symbols,
		exports: make(map[string]bool),
		absPath: absPath,
		log:     log,
	}
	s.res.LocalExports = make(map[string]LocalExportEntry)
	s.res.ReExports = make(map[string]ReExportEntry)
	s.res.SuggestedNames = make(map[string]string)

	moduleScope := js_ast.NewScope(js_ast.ScopeFn, nil)
	s.res.ModuleScope = moduleScope

	s.hoistTopLevel(stmts, moduleScope)

	for _, stmt := range stmts {
		s.curDeclared = make(map[string]symtab.Mark)
		s.curReads = make(map[symtab.Mark]bool)
		s.curWrites = make(map[symtab.Mark]bool)

		info := StmtInfo{Stmt: stmt}
		s.visitTopLevelStmt(stmt, moduleScope, &info)
		info.Declared = s.curDeclared
		info.Reads = s.curReads
		info.Writes = s.curWrites
		info.SideEffect = classifySideEffect(stmt)
		s.res.Stmts = append(s.res.Stmts, info)
	}

	return s.res
}

// ---- hoisting ----

func (s *scanner) declare(scope *js_ast.Scope, name string, kind js_ast.SymbolKind) symtab.Mark {
	mark := s.symbols.NewMark()
	if !scope.Declare(name, mark, kind) && s.log.AddMsg != nil {
		s.log.AddMsg(logger.Msg{Kind: logger.Error, Data: logger.MsgData{
			Text: "\"" + name + "\" has already been declared in this scope",
			Location: &logger.MsgLocation{File: s.absPath},
		}})
	}
	return mark
}

// hoistTopLevel performs the module-level pre-pass: every declaration
// visible at the top level (var/let/const/function/class/import, plus
// names introduced by `export <decl>`) gets a Mark and a scope entry
// before any statement body is visited, so mutually-referencing top-level
// declarations resolve correctly regardless of source order.
func (s *scanner) hoistTopLevel(stmts []js_ast.Stmt, scope *js_ast.Scope) {
	for _, stmt := range stmts {
		s.hoistTopLevelStmt(stmt, scope)
	}
}

func (s *scanner) hoistTopLevelStmt(stmt js_ast.Stmt, scope *js_ast.Scope) {
	switch d := stmt.Data.(type) {
	case *js_ast.SVarDecl:
		s.hoistVarDecl(d, scope, true)

	case *js_ast.SFunctionDecl:
		s.hoistFunctionDecl(d, scope, true)

	case *js_ast.SClassDecl:
		s.hoistClassDecl(d, scope, true)

	case *js_ast.SImport:
		s.hoistImport(d, scope)

	case *js_ast.SExportDecl:
		s.hoistTopLevelStmt(d.Decl, scope)
		s.recordExportDeclNames(d.Decl)

	case *js_ast.SExportDefault:
		s.hoistExportDefault(d, scope)

	case *js_ast.SExportClause:
		s.recordExportClause(d)

	case *js_ast.SExportAll:
		s.recordExportAll(d)
	}
}

func (s *scanner) hoistVarDecl(d *js_ast.SVarDecl, scope *js_ast.Scope, topLevel bool) {
	for i := range d.Decls {
		name := d.Decls[i].Ident.Name
		mark := s.declare(scope, name, d.Kind)
		d.Decls[i].Ident.Ref = mark
		if topLevel {
			s.res.DeclaredSymbols = append(s.res.DeclaredSymbols, DeclaredSymbol{Name: name, Mark: mark, Kind: d.Kind})
		}
	}
}

func (s *scanner) hoistFunctionDecl(d *js_ast.SFunctionDecl, scope *js_ast.Scope, topLevel bool) {
	if d.Fn.Name == nil {
		return
	}
	mark := s.declare(scope, d.Fn.Name.Name, js_ast.SymbolFunction)
	d.Fn.Name.Ref = mark
	if topLevel {
		s.res.DeclaredSymbols = append(s.res.DeclaredSymbols, DeclaredSymbol{Name: d.Fn.Name.Name, Mark: mark, Kind: js_ast.SymbolFunction})
	}
}

func (s *scanner) hoistClassDecl(d *js_ast.SClassDecl, scope *js_ast.Scope, topLevel bool) {
	if d.Class.Name == nil {
		return
	}
	mark := s.declare(scope, d.Class.Name.Name, js_ast.SymbolClass)
	d.Class.Name.Ref = mark
	if topLevel {
		s.res.DeclaredSymbols = append(s.res.DeclaredSymbols, DeclaredSymbol{Name: d.Class.Name.Name, Mark: mark, Kind: js_ast.SymbolClass})
	}
}

func (s *scanner) hoistImport(d *js_ast.SImport, scope *js_ast.Scope) {
	s.order++
	order := s.order
	var specs []ImportSpec

	if d.Default != nil {
		mark := s.declare(scope, d.Default.Name, js_ast.SymbolImport)
		d.Default.Ref = mark
		s.res.ImportedSymbols = append(s.res.ImportedSymbols, DeclaredSymbol{Name: d.Default.Name, Mark: mark, Kind: js_ast.SymbolImport})
		specs = append(specs, ImportSpec{Original: "default", Used: d.Default.Name, Mark: mark, Order: order})
	}
	if d.Namespace != nil {
		mark := s.declare(scope, d.Namespace.Name, js_ast.SymbolImport)
		d.Namespace.Ref = mark
		s.res.ImportedSymbols = append(s.res.ImportedSymbols, DeclaredSymbol{Name: d.Namespace.Name, Mark: mark, Kind: js_ast.SymbolImport})
		specs = append(specs, ImportSpec{Original: "*", Used: d.Namespace.Name, Mark: mark, Order: order})
	}
	for i := range d.Named {
		spec := &d.Named[i]
		mark := s.declare(scope, spec.Local.Name, js_ast.SymbolImport)
		spec.Local.Ref = mark
		s.res.ImportedSymbols = append(s.res.ImportedSymbols, DeclaredSymbol{Name: spec.Local.Name, Mark: mark, Kind: js_ast.SymbolImport})
		specs = append(specs, ImportSpec{Original: spec.Imported, Used: spec.Local.Name, Mark: mark, Order: order})
	}

	if len(specs) == 0 && d.Default == nil && d.Namespace == nil && len(d.Named) == 0 {
		// Bare `import 's'` — no bindings, recorded with an empty specifier list.
	}
	s.res.Imports = append(s.res.Imports, ImportDesc{Source: d.Source, Specifiers: specs, Order: order})
}

// recordExportDeclNames handles `export var/let/const/function/class X`:
// every name bound by the inner declaration becomes a local_exports entry
// whose mark is unioned with the already-hoisted declaration mark.
func (s *scanner) recordExportDeclNames(inner js_ast.Stmt) {
	switch d := inner.Data.(type) {
	case *js_ast.SVarDecl:
		for _, decl := range d.Decls {
			s.addLocalExport(decl.Ident.Name, decl.Ident.Name, decl.Ident.Ref)
		}
	case *js_ast.SFunctionDecl:
		if d.Fn.Name != nil {
			s.addLocalExport(d.Fn.Name.Name, d.Fn.Name.Name, d.Fn.Name.Ref)
		}
	case *js_ast.SClassDecl:
		if d.Class.Name != nil {
			s.addLocalExport(d.Class.Name.Name, d.Class.Name.Name, d.Class.Name.Ref)
		}
	}
}

func (s *scanner) addLocalExport(exportedName, localName string, localMark symtab.Mark) {
	exportMark := s.symbols.NewMark()
	s.symbols.Union(exportMark, localMark)
	ident := localName
	s.res.LocalExports[exportedName] = LocalExportEntry{LocalName: localName, Identifier: &ident, Mark: exportMark}
}

func (s *scanner) hoistExportDefault(d *js_ast.SExportDefault, scope *js_ast.Scope) {
	exportMark := s.symbols.NewMark()
	switch {
	case d.FnDecl != nil:
		if d.FnDecl.Name != nil {
			mark := s.declare(scope, d.FnDecl.Name.Name, js_ast.SymbolFunction)
			d.FnDecl.Name.Ref = mark
			s.res.DeclaredSymbols = append(s.res.DeclaredSymbols, DeclaredSymbol{Name: d.FnDecl.Name.Name, Mark: mark, Kind: js_ast.SymbolFunction})
			s.symbols.Union(exportMark, mark)
			name := d.FnDecl.Name.Name
			s.res.LocalExports["default"] = LocalExportEntry{LocalName: "default", Identifier: &name, Mark: exportMark}
		} else {
			s.res.LocalExports["default"] = LocalExportEntry{LocalName: "default", Mark: exportMark}
		}
	case d.ClassDecl != nil:
		if d.ClassDecl.Name != nil {
			mark := s.declare(scope, d.ClassDecl.Name.Name, js_ast.SymbolClass)
			d.ClassDecl.Name.Ref = mark
			s.res.DeclaredSymbols = append(s.res.DeclaredSymbols, DeclaredSymbol{Name: d.ClassDecl.Name.Name, Mark: mark, Kind: js_ast.SymbolClass})
			s.symbols.Union(exportMark, mark)
			name := d.ClassDecl.Name.Name
			s.res.LocalExports["default"] = LocalExportEntry{LocalName: "default", Identifier: &name, Mark: exportMark}
		} else {
			s.res.LocalExports["default"] = LocalExportEntry{LocalName: "default", Mark: exportMark}
		}
	default:
		// `export default <expr>`. If expr is a plain identifier, record it
		// as the referenced identifier (unioned with its mark during the
		// visit pass below, once we can resolve it); otherwise identifier
		// stays nil and ExportFolder synthesizes a variable.
		var identifier *string
		if id, ok := d.Expr.Data.(*js_ast.EIdentifier); ok {
			name := id.Name
			identifier = &name
		}
		s.res.LocalExports["default"] = LocalExportEntry{LocalName: "default", Identifier: identifier, Mark: exportMark}
	}
}

func (s *scanner) recordExportClause(d *js_ast.SExportClause) {
	if d.HasSource {
		s.order++
		order := s.order
		var specs []ImportSpec
		for _, spec := range d.Specifiers {
			mark := s.symbols.NewMark()
			specs = append(specs, ImportSpec{Original: spec.Local, Used: spec.Exported, Mark: mark, Order: order})
			s.res.ReExports[spec.Exported] = ReExportEntry{Source: d.Source, Original: spec.Local, Mark: mark}
		}
		s.res.ReExportDescs = append(s.res.ReExportDescs, ReExportDesc{Source: d.Source, Specifiers: specs, Order: order})
		return
	}
	for _, spec := range d.Specifiers {
		mark := s.symbols.NewMark()
		local := spec.Local
		s.res.LocalExports[spec.Exported] = LocalExportEntry{LocalName: spec.Local, Identifier: &local, Mark: mark}
	}
}

func (s *scanner) recordExportAll(d *js_ast.SExportAll) {
	s.order++
	order := s.order
	if d.Alias != "" {
		mark := s.symbols.NewMark()
		s.res.ReExports[d.Alias] = ReExportEntry{Source: d.Source, Original: "*", Mark: mark}
		s.res.ReExportDescs = append(s.res.ReExportDescs, ReExportDesc{
			Source:     d.Source,
			Specifiers: []ImportSpec{{Original: "*", Used: d.Alias, Mark: mark, Order: order}},
			Order:      order,
		})
		return
	}
	s.res.ReExportAllSources = append(s.res.ReExportAllSources, ReExportAllSource{Source: d.Source, Order: order})
}
