package js_parser

import (
	"github.com/esbundle/esbundle/internal/ast"
	"github.com/esbundle/esbundle/internal/js_ast"
	"github.com/esbundle/esbundle/internal/js_lexer"
)

// parseImport handles every §4.2 import form:
//
//	import 's'
//	import x from 's'
//	import {a, b as c} from 's'
//	import * as n from 's'
//	import x, {a} from 's'
//	import x, * as n from 's'
func (p *Parser) parseImport() *js_ast.SImport {
	p.expectWord("import")
	imp := &js_ast.SImport{}

	if p.lexer.Token == js_lexer.TStringLiteral {
		imp.Source = p.lexer.StringValue
		p.lexer.Next()
		p.consumeSemicolon()
		return imp
	}

	if p.lexer.Token == js_lexer.TIdentifier && !p.at("from") {
		id := p.parseIdent()
		imp.Default = &id
		if p.lexer.Token == js_lexer.TComma {
			p.lexer.Next()
		}
	}

	if p.lexer.Token == js_lexer.TStar {
		p.lexer.Next()
		p.expectWord("as")
		id := p.parseIdent()
		imp.Namespace = &id
	} else if p.lexer.Token == js_lexer.TOpenBrace {
		imp.Named = p.parseNamedImportClause()
	}

	p.expectWord("from")
	imp.Source = p.parseStringLiteralValue()
	p.consumeSemicolon()
	return imp
}

func (p *Parser) parseStringLiteralValue() string {
	if p.lexer.Token != js_lexer.TStringLiteral {
		p.fail("expected a string literal module specifier")
	}
	v := p.lexer.StringValue
	p.lexer.Next()
	return v
}

func (p *Parser) parseNamedImportClause() []js_ast.ImportSpecifier {
	p.expect(js_lexer.TOpenBrace, "{")
	var specs []js_ast.ImportSpecifier
	for p.lexer.Token != js_lexer.TCloseBrace {
		original := p.parseIdentName()
		local := js_ast.Ident{Name: original}
		if p.at("as") {
			p.lexer.Next()
			local = p.parseIdent()
		} else {
			local.Loc = p.lexer.Range().Loc
		}
		specs = append(specs, js_ast.ImportSpecifier{Imported: original, Local: local})
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	p.expect(js_lexer.TCloseBrace, "}")
	return specs
}

// parseExport handles every §4.2 export form.
func (p *Parser) parseExport(loc ast.Loc) js_ast.Stmt {
	p.expectWord("export")

	if p.lexer.Token == js_lexer.TStar {
		p.lexer.Next()
		alias := ""
		if p.at("as") {
			p.lexer.Next()
			alias = p.parseIdentName()
		}
		p.expectWord("from")
		source := p.parseStringLiteralValue()
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportAll{Alias: alias, Source: source}}
	}

	if p.lexer.Token == js_lexer.TOpenBrace {
		specs := p.parseExportClauseSpecifiers()
		clause := &js_ast.SExportClause{Specifiers: specs}
		if p.at("from") {
			p.lexer.Next()
			clause.Source = p.parseStringLiteralValue()
			clause.HasSource = true
		}
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: clause}
	}

	if p.at("default") {
		p.lexer.Next()
		return js_ast.Stmt{Loc: loc, Data: p.parseExportDefault()}
	}

	// export <var/let/const/function/class decl>
	inner := p.parseStmt()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDecl{Decl: inner}}
}

func (p *Parser) parseExportClauseSpecifiers() []js_ast.ExportSpecifier {
	p.expect(js_lexer.TOpenBrace, "{")
	var specs []js_ast.ExportSpecifier
	for p.lexer.Token != js_lexer.TCloseBrace {
		local := p.parseIdentName()
		exported := local
		if p.at("as") {
			p.lexer.Next()
			exported = p.parseIdentName()
		}
		specs = append(specs, js_ast.ExportSpecifier{Local: local, Exported: exported})
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	p.expect(js_lexer.TCloseBrace, "}")
	return specs
}

func (p *Parser) parseExportDefault() *js_ast.SExportDefault {
	switch {
	case p.at("function"):
		fn := p.parseFunction(false)
		return &js_ast.SExportDefault{FnDecl: fn}
	case p.at("async") && p.peekIsFunctionAfterAsync():
		p.lexer.Next()
		fn := p.parseFunction(true)
		return &js_ast.SExportDefault{FnDecl: fn}
	case p.at("class"):
		class := p.parseClass()
		return &js_ast.SExportDefault{ClassDecl: class}
	default:
		e := p.parseAssignExpr()
		p.consumeSemicolon()
		return &js_ast.SExportDefault{Expr: &e}
	}
}
