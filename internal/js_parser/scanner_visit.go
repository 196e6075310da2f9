package js_parser

import (
	"github.com/esbundle/esbundle/internal/js_ast"
	"github.com/esbundle/esbundle/internal/symtab"
)

// visitTopLevelStmt dispatches a top-level statement into the expression/
// statement walker, accumulating into the scanner's cur* accumulators.
// It also completes two pieces of per-statement bookkeeping that need a
// fully-built module scope to resolve: unioning `export default <ident>`
// with the identifier it references, and wiring `info.ExportMark`.
func (s *scanner) visitTopLevelStmt(stmt js_ast.Stmt, scope *js_ast.Scope, info *StmtInfo) {
	switch d := stmt.Data.(type) {
	case *js_ast.SVarDecl:
		for i := range d.Decls {
			s.curDeclared[d.Decls[i].Ident.Name] = d.Decls[i].Ident.Ref
			if d.Decls[i].Init != nil {
				s.visitExpr(d.Decls[i].Init, scope, false)
			}
		}
	case *js_ast.SFunctionDecl:
		if d.Fn.Name != nil {
			s.curDeclared[d.Fn.Name.Name] = d.Fn.Name.Ref
		}
		s.visitFn(d.Fn, scope)
	case *js_ast.SClassDecl:
		if d.Class.Name != nil {
			s.curDeclared[d.Class.Name.Name] = d.Class.Name.Ref
		}
		s.visitClass(d.Class, scope)
	case *js_ast.SImport:
		// Bindings already resolved during hoisting; record each one as
		// declared by this statement so tree-shaking's byRoot index can
		// find it as the definer of an imported Mark.
		if d.Default != nil {
			s.curDeclared[d.Default.Name] = d.Default.Ref
		}
		if d.Namespace != nil {
			s.curDeclared[d.Namespace.Name] = d.Namespace.Ref
		}
		for i := range d.Named {
			s.curDeclared[d.Named[i].Local.Name] = d.Named[i].Local.Ref
		}
	case *js_ast.SExportDecl:
		s.visitTopLevelStmt(d.Decl, scope, info)
	case *js_ast.SExportDefault:
		s.visitExportDefault(d, scope)
	case *js_ast.SExportClause:
		// No expressions; specifiers reference already-declared locals when
		// there's no `from` clause. Record a read so tree-shaking can find
		// the defining statement of a locally re-exported name, and union
		// the export entry's mark with the local declaration it names so
		// the two roots aren't left as separate identities (matches
		// visitExportDefault's `export default <ident>` handling above).
		if !d.HasSource {
			for _, spec := range d.Specifiers {
				if m := scope.Resolve(spec.Local); m != symtab.NoMark {
					s.curReads[m] = true
					if entry, exists := s.res.LocalExports[spec.Exported]; exists {
						s.symbols.Union(entry.Mark, m)
					}
				}
			}
		}
	case *js_ast.SExportAll:
		// Nothing to resolve locally; handled entirely by the linker's
		// export fan-in against the dependency module's exports.
	default:
		s.visitStmt(stmt, scope)
	}
}

func (s *scanner) visitExportDefault(d *js_ast.SExportDefault, scope *js_ast.Scope) {
	switch {
	case d.FnDecl != nil:
		if d.FnDecl.Name != nil {
			s.curDeclared[d.FnDecl.Name.Name] = d.FnDecl.Name.Ref
		}
		s.visitFn(d.FnDecl, scope)
	case d.ClassDecl != nil:
		if d.ClassDecl.Name != nil {
			s.curDeclared[d.ClassDecl.Name.Name] = d.ClassDecl.Name.Ref
		}
		s.visitClass(d.ClassDecl, scope)
	default:
		s.visitExpr(d.Expr, scope, false)
		if id, ok := d.Expr.Data.(*js_ast.EIdentifier); ok {
			if entry, exists := s.res.LocalExports["default"]; exists && id.Ref != symtab.NoMark {
				s.symbols.Union(entry.Mark, id.Ref)
			}
		}
	}
}

// ---- statements ----

func (s *scanner) visitStmt(stmt js_ast.Stmt, scope *js_ast.Scope) {
	switch d := stmt.Data.(type) {
	case *js_ast.SVarDecl:
		// hoistBlockLevel/hoistFunctionBody already marked most
		// declarations; only unmarked ones (a var nested in a block) are
		// declared here.
		if len(d.Decls) > 0 && d.Decls[0].Ident.Ref == symtab.NoMark {
			s.hoistVarDecl(d, scope, false)
		}
		for i := range d.Decls {
			if d.Decls[i].Init != nil {
				s.visitExpr(d.Decls[i].Init, scope, false)
			}
		}
	case *js_ast.SFunctionDecl:
		if d.Fn.Name != nil && d.Fn.Name.Ref == symtab.NoMark {
			s.hoistFunctionDecl(d, scope, false)
		}
		s.visitFn(d.Fn, scope)
	case *js_ast.SClassDecl:
		if d.Class.Name != nil && d.Class.Name.Ref == symtab.NoMark {
			s.hoistClassDecl(d, scope, false)
		}
		s.visitClass(d.Class, scope)
	case *js_ast.SBlock:
		inner := js_ast.NewScope(js_ast.ScopeBlock, scope)
		s.hoistBlockLevel(d.Stmts, inner)
		for _, st := range d.Stmts {
			s.visitStmt(st, inner)
		}
	case *js_ast.SIf:
		s.visitExpr(&d.Test, scope, false)
		s.visitStmt(d.Yes, scope)
		if d.No != nil {
			s.visitStmt(*d.No, scope)
		}
	case *js_ast.SFor:
		inner := js_ast.NewScope(js_ast.ScopeBlock, scope)
		if d.Init != nil {
			if vd, ok := d.Init.Data.(*js_ast.SVarDecl); ok {
				s.hoistVarDecl(vd, inner, false)
				for i := range vd.Decls {
					if vd.Decls[i].Init != nil {
						s.visitExpr(vd.Decls[i].Init, inner, false)
					}
				}
			} else {
				s.visitStmt(*d.Init, inner)
			}
		}
		if d.Test != nil {
			s.visitExpr(d.Test, inner, false)
		}
		if d.Update != nil {
			s.visitExpr(d.Update, inner, false)
		}
		s.visitStmt(d.Body, inner)
	case *js_ast.SForInOf:
		inner := js_ast.NewScope(js_ast.ScopeBlock, scope)
		if d.Decl != nil {
			s.hoistVarDecl(d.Decl, inner, false)
		} else if d.Target != nil {
			s.visitExpr(d.Target, inner, true)
		}
		s.visitExpr(&d.Value, inner, false)
		s.visitStmt(d.Body, inner)
	case *js_ast.SWhile:
		s.visitExpr(&d.Test, scope, false)
		s.visitStmt(d.Body, scope)
	case *js_ast.SDoWhile:
		s.visitStmt(d.Body, scope)
		s.visitExpr(&d.Test, scope, false)
	case *js_ast.SReturn:
		if d.Value != nil {
			s.visitExpr(d.Value, scope, false)
		}
	case *js_ast.SThrow:
		s.visitExpr(&d.Value, scope, false)
	case *js_ast.SExpr:
		s.visitExpr(&d.Value, scope, false)
	case *js_ast.STry:
		inner := js_ast.NewScope(js_ast.ScopeBlock, scope)
		s.hoistBlockLevel(d.Body, inner)
		for _, st := range d.Body {
			s.visitStmt(st, inner)
		}
		if d.Catch != nil {
			catchScope := js_ast.NewScope(js_ast.ScopeCatch, scope)
			if d.Catch.Param != nil {
				mark := s.declare(catchScope, d.Catch.Param.Name, js_ast.SymbolParam)
				d.Catch.Param.Ref = mark
			}
			bodyScope := js_ast.NewScope(js_ast.ScopeBlock, catchScope)
			s.hoistBlockLevel(d.Catch.Body, bodyScope)
			for _, st := range d.Catch.Body {
				s.visitStmt(st, bodyScope)
			}
		}
		if d.Finally != nil {
			finScope := js_ast.NewScope(js_ast.ScopeBlock, scope)
			s.hoistBlockLevel(d.Finally, finScope)
			for _, st := range d.Finally {
				s.visitStmt(st, finScope)
			}
		}
	case *js_ast.SSwitch:
		s.visitExpr(&d.Test, scope, false)
		inner := js_ast.NewScope(js_ast.ScopeBlock, scope)
		for _, c := range d.Cases {
			s.hoistBlockLevel(c.Body, inner)
		}
		for _, c := range d.Cases {
			if c.Test != nil {
				s.visitExpr(c.Test, inner, false)
			}
			for _, st := range c.Body {
				s.visitStmt(st, inner)
			}
		}
	case *js_ast.SEmpty, *js_ast.SBreak, *js_ast.SContinue:
		// nothing to resolve
	}
}

// hoistBlockLevel registers let/const/class/function declarations
// directly inside a block (var/function-var hoisting is handled by
// Scope.Declare walking up to the nearest Fn scope).
func (s *scanner) hoistBlockLevel(stmts []js_ast.Stmt, scope *js_ast.Scope) {
	for _, stmt := range stmts {
		switch d := stmt.Data.(type) {
		case *js_ast.SVarDecl:
			if d.Kind != js_ast.SymbolVar {
				for i := range d.Decls {
					mark := s.declare(scope, d.Decls[i].Ident.Name, d.Kind)
					d.Decls[i].Ident.Ref = mark
				}
			}
		case *js_ast.SFunctionDecl:
			if d.Fn.Name != nil {
				mark := s.declare(scope, d.Fn.Name.Name, js_ast.SymbolFunction)
				d.Fn.Name.Ref = mark
			}
		case *js_ast.SClassDecl:
			if d.Class.Name != nil {
				mark := s.declare(scope, d.Class.Name.Name, js_ast.SymbolClass)
				d.Class.Name.Ref = mark
			}
		}
	}
}

// ---- functions & classes ----

func (s *scanner) visitFn(fn *js_ast.Fn, parent *js_ast.Scope) {
	fnScope := js_ast.NewScope(js_ast.ScopeFn, parent)
	for i := range fn.Params {
		mark := s.declare(fnScope, fn.Params[i].Ident.Name, js_ast.SymbolParam)
		fn.Params[i].Ident.Ref = mark
		if fn.Params[i].Default != nil {
			s.visitExpr(fn.Params[i].Default, fnScope, false)
		}
	}
	if fn.ArrowExprBody != nil {
		s.visitExpr(fn.ArrowExprBody, fnScope, false)
		return
	}
	s.hoistFunctionBody(fn.Body, fnScope)
	for _, st := range fn.Body {
		s.visitStmt(st, fnScope)
	}
}

// hoistFunctionBody is hoistBlockLevel plus var declarations, which is
// exactly hoistTopLevel's declaration subset minus import/export (those
// never appear inside a function body).
func (s *scanner) hoistFunctionBody(stmts []js_ast.Stmt, scope *js_ast.Scope) {
	for _, stmt := range stmts {
		switch d := stmt.Data.(type) {
		case *js_ast.SVarDecl:
			s.hoistVarDecl(d, scope, false)
		case *js_ast.SFunctionDecl:
			s.hoistFunctionDecl(d, scope, false)
		case *js_ast.SClassDecl:
			s.hoistClassDecl(d, scope, false)
		}
	}
}

func (s *scanner) visitClass(class *js_ast.Class, scope *js_ast.Scope) {
	if class.ExtendsRef != nil {
		s.visitExpr(class.ExtendsRef, scope, false)
	}
	for _, m := range class.Members {
		s.visitFn(m.Value, scope)
	}
}

// ---- expressions ----

func (s *scanner) visitExpr(e *js_ast.Expr, scope *js_ast.Scope, isWrite bool) {
	switch d := e.Data.(type) {
	case *js_ast.EIdentifier:
		ref := scope.Resolve(d.Name)
		d.Ref = ref
		if ref != symtab.NoMark {
			s.curReads[ref] = true
			if isWrite {
				s.curWrites[ref] = true
			}
		}
	case *js_ast.ENumber, *js_ast.EString, *js_ast.ETemplate, *js_ast.EBoolean,
		*js_ast.ENull, *js_ast.EUndefined, *js_ast.EThis, *js_ast.ESuper:
		// leaves

	case *js_ast.EArray:
		for i := range d.Items {
			s.visitExpr(&d.Items[i], scope, false)
		}
	case *js_ast.EObject:
		for i := range d.Properties {
			s.visitExpr(&d.Properties[i].Value, scope, false)
		}
	case *js_ast.EFunction:
		s.visitFn(d.Fn, scope)
	case *js_ast.EArrow:
		s.visitFn(d.Fn, scope)
	case *js_ast.EClass:
		s.visitClass(d.Class, scope)
	case *js_ast.ECall:
		s.visitExpr(&d.Target, scope, false)
		for i := range d.Args {
			s.visitExpr(&d.Args[i], scope, false)
		}
	case *js_ast.EDot:
		s.visitExpr(&d.Target, scope, false)
	case *js_ast.EIndex:
		s.visitExpr(&d.Target, scope, false)
		s.visitExpr(&d.Index, scope, false)
	case *js_ast.EUnary:
		isMutating := d.Op == "++" || d.Op == "--"
		s.visitExpr(&d.Value, scope, isMutating)
	case *js_ast.EBinary:
		s.visitExpr(&d.Left, scope, false)
		s.visitExpr(&d.Right, scope, false)
	case *js_ast.EAssign:
		targetIsWrite := true
		s.visitExpr(&d.Target, scope, targetIsWrite)
		if d.Op != "=" {
			// Compound assignment also reads the target.
			if id, ok := d.Target.Data.(*js_ast.EIdentifier); ok && id.Ref != symtab.NoMark {
				s.curReads[id.Ref] = true
			}
		}
		s.visitExpr(&d.Value, scope, false)
	case *js_ast.EConditional:
		s.visitExpr(&d.Test, scope, false)
		s.visitExpr(&d.Yes, scope, false)
		s.visitExpr(&d.No, scope, false)
	case *js_ast.ESpread:
		s.visitExpr(&d.Value, scope, false)
	case *js_ast.ESequence:
		for i := range d.Exprs {
			s.visitExpr(&d.Exprs[i], scope, false)
		}
	case *js_ast.EImportCall:
		s.res.DynamicImports = append(s.res.DynamicImports, DynamicImportDesc{Source: d.Source, HasSource: d.HasSource})
		s.visitExpr(&d.Arg, scope, false)
	}
}
