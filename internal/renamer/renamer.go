// Package renamer assigns every union-find root a name unique across the
// whole bundle and rewrites every identifier occurrence to use it, using
// a global used-names set where entry modules claim names first, and a
// flat `base`, `base$0`, `base$1`, … numbering scheme for collisions. The
// tree walk mirrors js_parser/scanner_visit.go's traversal shape, since
// both need to visit exactly the same set of binding/use sites.
package renamer

import (
	"fmt"
	"sort"

	"github.com/esbundle/esbundle/internal/graph"
	"github.com/esbundle/esbundle/internal/js_ast"
	"github.com/esbundle/esbundle/internal/symtab"
)

// Rename runs the full §4.8 algorithm over every included statement in
// ordered (the Linker's post-order schedule).
func Rename(g *graph.ModuleGraph, ordered []string, symbols *symtab.SymbolTable) {
	order := entriesFirst(g, ordered)

	usedNames := make(map[string]bool)
	rootNames := make(map[symtab.Mark]string)

	for _, id := range order {
		m := g.Modules[id]
		if m == nil {
			continue
		}
		for _, d := range m.DeclaredOrder {
			root := symbols.Find(d.Mark)
			if _, ok := rootNames[root]; ok {
				continue
			}
			rootNames[root] = claimName(usedNames, d.Name)
		}
	}
	// Import bindings no declaration names (imports of external modules)
	// claim their names after every declaration has.
	for _, id := range order {
		if m := g.Modules[id]; m != nil {
			for _, d := range m.ImportedOrder {
				if root := symbols.Find(d.Mark); rootNames[root] == "" {
					rootNames[root] = claimName(usedNames, d.Name)
				}
			}
		}
	}

	r := &rewriter{symbols: symbols, rootNames: rootNames}
	for _, id := range order {
		m := g.Modules[id]
		if m == nil {
			continue
		}
		for i := range m.Stmts {
			if !m.Stmts[i].Included {
				continue
			}
			r.stmt(m.Stmts[i].Stmt)
		}
	}
}

// entriesFirst implements §4.8 step 1: a stable sort by is_entry
// descending, otherwise preserving the Linker's post-order.
func entriesFirst(g *graph.ModuleGraph, ordered []string) []string {
	out := append([]string{}, ordered...)
	sort.SliceStable(out, func(i, j int) bool {
		mi, mj := g.Modules[out[i]], g.Modules[out[j]]
		entryI := mi != nil && mi.IsEntry
		entryJ := mj != nil && mj.IsEntry
		return entryI && !entryJ
	})
	return out
}

// claimName implements §4.8 step 2's "pick the first base, base$0,
// base$1, … not already used" rule.
func claimName(used map[string]bool, base string) string {
	if !used[base] {
		used[base] = true
		return base
	}
	for n := 0; ; n++ {
		candidate := fmt.Sprintf("%s$%d", base, n)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}

// rewriter walks every statement an included module keeps, renaming each
// identifier whose Mark resolved to an assigned canonical name and
// expanding object-literal shorthand before it would otherwise be
// mis-renamed (§4.8 step 3).
type rewriter struct {
	symbols   *symtab.SymbolTable
	rootNames map[symtab.Mark]string
}

func (r *rewriter) nameFor(mark symtab.Mark) (string, bool) {
	if mark == symtab.NoMark {
		return "", false
	}
	name, ok := r.rootNames[r.symbols.Find(mark)]
	return name, ok
}

func (r *rewriter) renameIdent(id *js_ast.Ident) {
	if name, ok := r.nameFor(id.Ref); ok {
		id.Name = name
	}
}

func (r *rewriter) stmt(stmt js_ast.Stmt) {
	switch d := stmt.Data.(type) {
	case *js_ast.SVarDecl:
		for i := range d.Decls {
			r.renameIdent(&d.Decls[i].Ident)
			if d.Decls[i].Init != nil {
				r.expr(d.Decls[i].Init)
			}
		}
	case *js_ast.SFunctionDecl:
		r.fn(d.Fn)
	case *js_ast.SClassDecl:
		r.class(d.Class)
	case *js_ast.SBlock:
		for _, st := range d.Stmts {
			r.stmt(st)
		}
	case *js_ast.SIf:
		r.expr(&d.Test)
		r.stmt(d.Yes)
		if d.No != nil {
			r.stmt(*d.No)
		}
	case *js_ast.SFor:
		if d.Init != nil {
			r.stmt(*d.Init)
		}
		if d.Test != nil {
			r.expr(d.Test)
		}
		if d.Update != nil {
			r.expr(d.Update)
		}
		r.stmt(d.Body)
	case *js_ast.SForInOf:
		if d.Decl != nil {
			for i := range d.Decl.Decls {
				r.renameIdent(&d.Decl.Decls[i].Ident)
			}
		} else if d.Target != nil {
			r.expr(d.Target)
		}
		r.expr(&d.Value)
		r.stmt(d.Body)
	case *js_ast.SWhile:
		r.expr(&d.Test)
		r.stmt(d.Body)
	case *js_ast.SDoWhile:
		r.stmt(d.Body)
		r.expr(&d.Test)
	case *js_ast.SReturn:
		if d.Value != nil {
			r.expr(d.Value)
		}
	case *js_ast.SThrow:
		r.expr(&d.Value)
	case *js_ast.SExpr:
		r.expr(&d.Value)
	case *js_ast.STry:
		for _, st := range d.Body {
			r.stmt(st)
		}
		if d.Catch != nil {
			if d.Catch.Param != nil {
				r.renameIdent(d.Catch.Param)
			}
			for _, st := range d.Catch.Body {
				r.stmt(st)
			}
		}
		for _, st := range d.Finally {
			r.stmt(st)
		}
	case *js_ast.SSwitch:
		r.expr(&d.Test)
		for _, c := range d.Cases {
			if c.Test != nil {
				r.expr(c.Test)
			}
			for _, st := range c.Body {
				r.stmt(st)
			}
		}
	case *js_ast.SExportDecl:
		r.stmt(d.Decl)
	case *js_ast.SExportDefault:
		switch {
		case d.FnDecl != nil:
			r.fn(d.FnDecl)
		case d.ClassDecl != nil:
			r.class(d.ClassDecl)
		default:
			r.expr(d.Expr)
		}
	case *js_ast.SExportClause:
		// §4.8 step 4: collapse `export {orig as exp}` to `export {name}`
		// once both sides share a post-rename identifier. Only reachable
		// when the ExportFolder has not already dropped this statement
		// (e.g. a future multi-chunk output retaining internal re-export
		// clauses); harmless no-op otherwise.
		for i, spec := range d.Specifiers {
			if spec.Local == spec.Exported {
				continue
			}
			d.Specifiers[i].Exported = spec.Local
		}
	case *js_ast.SImport:
		if d.Default != nil {
			r.renameIdent(d.Default)
		}
		if d.Namespace != nil {
			r.renameIdent(d.Namespace)
		}
		for i := range d.Named {
			r.renameIdent(&d.Named[i].Local)
		}
	}
}

func (r *rewriter) fn(fn *js_ast.Fn) {
	if fn.Name != nil {
		r.renameIdent(fn.Name)
	}
	for i := range fn.Params {
		r.renameIdent(&fn.Params[i].Ident)
		if fn.Params[i].Default != nil {
			r.expr(fn.Params[i].Default)
		}
	}
	if fn.ArrowExprBody != nil {
		r.expr(fn.ArrowExprBody)
		return
	}
	for _, st := range fn.Body {
		r.stmt(st)
	}
}

func (r *rewriter) class(class *js_ast.Class) {
	if class.Name != nil {
		r.renameIdent(class.Name)
	}
	if class.ExtendsRef != nil {
		r.expr(class.ExtendsRef)
	}
	for _, m := range class.Members {
		r.fn(m.Value)
	}
}

func (r *rewriter) expr(e *js_ast.Expr) {
	switch d := e.Data.(type) {
	case *js_ast.EIdentifier:
		if name, ok := r.nameFor(d.Ref); ok {
			d.Name = name
		}
	case *js_ast.EArray:
		for i := range d.Items {
			r.expr(&d.Items[i])
		}
	case *js_ast.EObject:
		for i := range d.Properties {
			// Expand shorthand before the value might get renamed, so the
			// key keeps the source name per §4.8 step 3.
			if d.Properties[i].WasShorthand {
				d.Properties[i].WasShorthand = false
			}
			r.expr(&d.Properties[i].Value)
		}
	case *js_ast.EFunction:
		r.fn(d.Fn)
	case *js_ast.EArrow:
		r.fn(d.Fn)
	case *js_ast.EClass:
		r.class(d.Class)
	case *js_ast.ECall:
		r.expr(&d.Target)
		for i := range d.Args {
			r.expr(&d.Args[i])
		}
	case *js_ast.EDot:
		r.expr(&d.Target)
	case *js_ast.EIndex:
		r.expr(&d.Target)
		r.expr(&d.Index)
	case *js_ast.EUnary:
		r.expr(&d.Value)
	case *js_ast.EBinary:
		r.expr(&d.Left)
		r.expr(&d.Right)
	case *js_ast.EAssign:
		r.expr(&d.Target)
		r.expr(&d.Value)
	case *js_ast.EConditional:
		r.expr(&d.Test)
		r.expr(&d.Yes)
		r.expr(&d.No)
	case *js_ast.ESpread:
		r.expr(&d.Value)
	case *js_ast.ESequence:
		for i := range d.Exprs {
			r.expr(&d.Exprs[i])
		}
	case *js_ast.EImportCall:
		r.expr(&d.Arg)
	}
}
