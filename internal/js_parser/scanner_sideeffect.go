package js_parser

import (
	"github.com/esbundle/esbundle/internal/ast"
	"github.com/esbundle/esbundle/internal/js_ast"
	"github.com/esbundle/esbundle/internal/symtab"
)

// classifySideEffect implements §4.2's side-effect tagging table. It is a
// pure function of the top-level statement's own shape — nested bodies
// don't change a statement's own tag, only its read/write sets.
func classifySideEffect(stmt js_ast.Stmt) ast.SideEffectTag {
	switch d := stmt.Data.(type) {
	case *js_ast.SImport:
		if d.Default == nil && d.Namespace == nil && len(d.Named) == 0 {
			return ast.SideEffectModuleDecl
		}
		return ast.SideEffectNone

	case *js_ast.SExportAll, *js_ast.SExportClause:
		return ast.SideEffectNone

	case *js_ast.SExportDecl:
		return classifySideEffect(d.Decl)

	case *js_ast.SExportDefault:
		switch {
		case d.FnDecl != nil, d.ClassDecl != nil:
			return ast.SideEffectNone
		default:
			return classifyExprSideEffect(*d.Expr)
		}

	case *js_ast.SVarDecl:
		for _, decl := range d.Decls {
			if decl.Init == nil {
				continue
			}
			if tag := classifyExprSideEffect(*decl.Init); tag != ast.SideEffectNone {
				return tag
			}
		}
		return ast.SideEffectNone

	case *js_ast.SFunctionDecl, *js_ast.SClassDecl:
		return ast.SideEffectNone

	case *js_ast.SBlock, *js_ast.SIf, *js_ast.SFor, *js_ast.SForInOf,
		*js_ast.SWhile, *js_ast.SDoWhile, *js_ast.STry, *js_ast.SSwitch:
		return ast.SideEffectNonTopLevelBlock

	case *js_ast.SEmpty:
		return ast.SideEffectNone

	default:
		// SExpr and anything else not specifically analysable.
		if se, ok := stmt.Data.(*js_ast.SExpr); ok {
			return classifyExprSideEffect(se.Value)
		}
		return ast.SideEffectTodo
	}
}

func isPureLiteral(e js_ast.Expr) bool {
	switch e.Data.(type) {
	case *js_ast.ENumber, *js_ast.EString, *js_ast.ETemplate, *js_ast.EBoolean,
		*js_ast.ENull, *js_ast.EUndefined, *js_ast.EFunction, *js_ast.EArrow,
		*js_ast.EClass, *js_ast.EIdentifier:
		return true
	case *js_ast.EArray:
		arr := e.Data.(*js_ast.EArray)
		for _, item := range arr.Items {
			if !isPureLiteral(item) {
				return false
			}
		}
		return true
	case *js_ast.EObject:
		obj := e.Data.(*js_ast.EObject)
		for _, prop := range obj.Properties {
			if !isPureLiteral(prop.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func classifyExprSideEffect(e js_ast.Expr) ast.SideEffectTag {
	if isPureLiteral(e) {
		return ast.SideEffectNone
	}
	switch d := e.Data.(type) {
	case *js_ast.ECall:
		return ast.SideEffectFnCall
	case *js_ast.EThis:
		return ast.SideEffectVisitThis
	case *js_ast.EDot:
		if isUnboundGlobal(d.Target) {
			return ast.SideEffectVisitGlobal
		}
		return ast.SideEffectTodo
	case *js_ast.EIndex:
		if isUnboundGlobal(d.Target) {
			return ast.SideEffectVisitGlobal
		}
		return ast.SideEffectTodo
	default:
		return ast.SideEffectTodo
	}
}

// isUnboundGlobal reports whether e is an identifier that the scanner
// could not resolve to any lexical binding — i.e. a reference to a global
// like `console` or `Object`.
func isUnboundGlobal(e js_ast.Expr) bool {
	id, ok := e.Data.(*js_ast.EIdentifier)
	return ok && id.Ref == symtab.NoMark
}
