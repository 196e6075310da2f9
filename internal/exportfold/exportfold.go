// Package exportfold rewrites each module's export-prefixed statements
// into their bare equivalents and synthesizes default-export and
// namespace-object statements, operating on this bundler's flat
// Module/Mark model.
package exportfold

import (
	"path"
	"sort"
	"strings"

	"github.com/esbundle/esbundle/internal/ast"
	"github.com/esbundle/esbundle/internal/graph"
	"github.com/esbundle/esbundle/internal/js_ast"
	"github.com/esbundle/esbundle/internal/js_parser"
	"github.com/esbundle/esbundle/internal/symtab"
)

// Fold rewrites every statement of m in place per the §4.7 table, then
// appends a namespace statement if the linker flagged one as needed.
func Fold(m *graph.Module) {
	var rewritten []js_parser.StmtInfo
	for _, info := range m.Stmts {
		newStmt, drop := foldStmt(m, info)
		if drop {
			continue
		}
		info.Stmt = newStmt
		rewritten = append(rewritten, info)
	}
	m.Stmts = rewritten

	if m.Namespace.Included {
		appendNamespace(m)
	}
}

// foldStmt applies one row of §4.7's table to a single statement.
func foldStmt(m *graph.Module, info js_parser.StmtInfo) (js_ast.Stmt, bool) {
	stmt := info.Stmt
	switch d := stmt.Data.(type) {
	case *js_ast.SImport:
		// An import of an internal module drops: its bindings were already
		// unioned with the dependency's declarations at link time, so the
		// statement itself carries nothing the bundle still needs. An
		// import of an external specifier is kept (renamed, then printed
		// as-is) since nothing else in the bundle provides that binding.
		if isExternalSource(m, d.Source) {
			return stmt, false
		}
		return stmt, true

	case *js_ast.SExportDecl:
		return d.Decl, false

	case *js_ast.SExportClause:
		// `export {…}` / `export {…} from …` always drops: the binding
		// itself was already unioned with its source at link time.
		return stmt, true

	case *js_ast.SExportAll:
		if isExternalSource(m, d.Source) {
			return stmt, false
		}
		return stmt, true

	case *js_ast.SExportDefault:
		return foldExportDefault(m, stmt.Loc, d)

	default:
		return stmt, false
	}
}

func isExternalSource(m *graph.Module, source string) bool {
	id, ok := m.ResolvedIDs[source]
	return ok && id.External
}

// foldExportDefault covers every `export default` row of §4.7's table.
func foldExportDefault(m *graph.Module, loc ast.Loc, d *js_ast.SExportDefault) (js_ast.Stmt, bool) {
	switch {
	case d.ClassDecl != nil:
		if d.ClassDecl.Name == nil {
			name := synthDefaultName(m)
			mark := m.LocalExports["default"].Mark
			d.ClassDecl.Name = &js_ast.Ident{Name: name, Ref: mark}
			declareSynth(m, name, mark)
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SClassDecl{Class: d.ClassDecl}}, false

	case d.FnDecl != nil:
		if d.FnDecl.Name == nil {
			name := synthDefaultName(m)
			mark := m.LocalExports["default"].Mark
			d.FnDecl.Name = &js_ast.Ident{Name: name, Ref: mark}
			declareSynth(m, name, mark)
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SFunctionDecl{Fn: d.FnDecl}}, false

	default:
		if _, ok := d.Expr.Data.(*js_ast.EIdentifier); ok {
			// `export default <ident>`: the binding is reused, drop the
			// statement entirely.
			return js_ast.Stmt{}, true
		}
		name := synthDefaultName(m)
		mark := m.LocalExports["default"].Mark
		declareSynth(m, name, mark)
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SVarDecl{
			Kind: js_ast.SymbolConst,
			Decls: []js_ast.Declarator{{
				Ident: js_ast.Ident{Name: name, Ref: mark},
				Init:  d.Expr,
			}},
		}}, false
	}
}

// synthDefaultName implements §4.7's `<synth-default>` naming rule.
func synthDefaultName(m *graph.Module) string {
	if name, ok := m.SuggestedNames["default"]; ok && name != "" {
		return name
	}
	base := path.Base(m.ID)
	base = strings.TrimSuffix(base, path.Ext(base))
	return sanitizeIdentifier(base, "default")
}

func sanitizeIdentifier(s, fallback string) string {
	var b strings.Builder
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
		isDigit := r >= '0' && r <= '9'
		switch {
		case isLetter:
			b.WriteRune(r)
		case isDigit && (i > 0 || b.Len() > 0):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" {
		return fallback
	}
	return out
}

// declareSynth inserts a synthesized declaration into a module's
// declared_symbols, per §4.7's "inserted into declared_symbols with the
// export's Mark so renaming can see it".
func declareSynth(m *graph.Module, name string, mark symtab.Mark) {
	m.DeclaredSymbols[name] = mark
	m.DeclaredOrder = append(m.DeclaredOrder, js_parser.DeclaredSymbol{Name: name, Mark: mark, Kind: js_ast.SymbolConst})
}

// appendNamespace implements §4.7's "Namespace materialisation": a frozen
// plain object carrying one property per export, keyed by an identifier
// with the export's own Mark so the Renamer's later pass rewrites the
// reference consistently with the exported binding.
func appendNamespace(m *graph.Module) {
	name := synthNamespaceName(m)
	mark := m.Namespace.Mark

	names := make([]string, 0, len(m.Exports))
	for k := range m.Exports {
		if k == "*" {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)

	props := []js_ast.EObjectProperty{
		{Key: "__proto__", Value: js_ast.Expr{Data: &js_ast.ENull{}}},
	}
	for _, k := range names {
		props = append(props, js_ast.EObjectProperty{
			Key:   k,
			Value: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: m.Exports[k], Name: k}},
		})
	}

	freeze := js_ast.Expr{Data: &js_ast.ECall{
		Target: js_ast.Expr{Data: &js_ast.EDot{
			Target: js_ast.Expr{Data: &js_ast.EIdentifier{Name: "Object"}},
			Name:   "freeze",
		}},
		Args: []js_ast.Expr{{Data: &js_ast.EObject{Properties: props}}},
	}}

	declareSynth(m, name, mark)
	stmt := js_ast.Stmt{Data: &js_ast.SVarDecl{
		Kind: js_ast.SymbolConst,
		Decls: []js_ast.Declarator{{
			Ident: js_ast.Ident{Name: name, Ref: mark},
			Init:  &freeze,
		}},
	}}
	m.Stmts = append(m.Stmts, js_parser.StmtInfo{Stmt: stmt, Included: true, SideEffect: ast.SideEffectNone})
	m.Exports["*"] = mark
}

func synthNamespaceName(m *graph.Module) string {
	if name, ok := m.SuggestedNames["*"]; ok && name != "" {
		return name
	}
	base := path.Base(m.ID)
	base = strings.TrimSuffix(base, path.Ext(base))
	return sanitizeIdentifier(base, "ns") + "_ns"
}
