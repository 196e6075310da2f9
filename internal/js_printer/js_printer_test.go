package js_printer

import (
	"strings"
	"testing"

	"github.com/esbundle/esbundle/internal/js_ast"
)

func TestPrintVarDecl(t *testing.T) {
	stmt := js_ast.Stmt{Data: &js_ast.SVarDecl{
		Kind: js_ast.SymbolConst,
		Decls: []js_ast.Declarator{{
			Ident: js_ast.Ident{Name: "x"},
			Init:  &js_ast.Expr{Data: &js_ast.ENumber{Value: 1}},
		}},
	}}
	got := PrintStmts([]js_ast.Stmt{stmt})
	if got != "const x = 1;\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintFunctionDecl(t *testing.T) {
	fn := &js_ast.Fn{
		Name: &js_ast.Ident{Name: "add"},
		Params: []js_ast.Param{
			{Ident: js_ast.Ident{Name: "a"}},
			{Ident: js_ast.Ident{Name: "b"}},
		},
		Body: []js_ast.Stmt{{Data: &js_ast.SReturn{Value: &js_ast.Expr{Data: &js_ast.EBinary{
			Op:    "+",
			Left:  js_ast.Expr{Data: &js_ast.EIdentifier{Name: "a"}},
			Right: js_ast.Expr{Data: &js_ast.EIdentifier{Name: "b"}},
		}}}}},
	}
	got := PrintStmts([]js_ast.Stmt{{Data: &js_ast.SFunctionDecl{Fn: fn}}})
	want := "function add(a, b) {\n  return (a + b);\n}\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestPrintIfElse(t *testing.T) {
	stmt := js_ast.Stmt{Data: &js_ast.SIf{
		Test: js_ast.Expr{Data: &js_ast.EIdentifier{Name: "cond"}},
		Yes:  js_ast.Stmt{Data: &js_ast.SReturn{Value: &js_ast.Expr{Data: &js_ast.ENumber{Value: 1}}}},
		No:   &js_ast.Stmt{Data: &js_ast.SReturn{Value: &js_ast.Expr{Data: &js_ast.ENumber{Value: 2}}}},
	}}
	got := PrintStmts([]js_ast.Stmt{stmt})
	if !strings.Contains(got, "if (cond)") || !strings.Contains(got, "else") {
		t.Fatalf("got %q", got)
	}
}

func TestPrintExportDeclUnwrapsToBareDecl(t *testing.T) {
	decl := js_ast.Stmt{Data: &js_ast.SVarDecl{
		Kind:  js_ast.SymbolConst,
		Decls: []js_ast.Declarator{{Ident: js_ast.Ident{Name: "x"}, Init: &js_ast.Expr{Data: &js_ast.ENumber{Value: 1}}}},
	}}
	stmt := js_ast.Stmt{Data: &js_ast.SExportDecl{Decl: decl}}
	got := PrintStmts([]js_ast.Stmt{stmt})
	if got != "export const x = 1;\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintObjectLiteralWithProtoNull(t *testing.T) {
	e := js_ast.Expr{Data: &js_ast.EObject{Properties: []js_ast.EObjectProperty{
		{Key: "__proto__", Value: js_ast.Expr{Data: &js_ast.ENull{}}},
		{Key: "foo", Value: js_ast.Expr{Data: &js_ast.EIdentifier{Name: "foo"}}},
	}}}
	got := PrintExpr(e)
	if got != "{ __proto__: null, foo: foo }" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintBinaryIsFullyParenthesized(t *testing.T) {
	e := js_ast.Expr{Data: &js_ast.EBinary{
		Op:   "*",
		Left: js_ast.Expr{Data: &js_ast.EBinary{Op: "+", Left: js_ast.Expr{Data: &js_ast.ENumber{Value: 1}}, Right: js_ast.Expr{Data: &js_ast.ENumber{Value: 2}}}},
		Right: js_ast.Expr{Data: &js_ast.ENumber{Value: 3}},
	}}
	got := PrintExpr(e)
	if got != "((1 + 2) * 3)" {
		t.Fatalf("got %q", got)
	}
}
