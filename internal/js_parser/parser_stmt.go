package js_parser

import (
	"github.com/esbundle/esbundle/internal/ast"
	"github.com/esbundle/esbundle/internal/js_ast"
	"github.com/esbundle/esbundle/internal/js_lexer"
)

func (p *Parser) parseStmt() js_ast.Stmt {
	loc := p.lexer.Range().Loc

	switch {
	case p.at("import"):
		return js_ast.Stmt{Loc: loc, Data: p.parseImport()}

	case p.at("export"):
		return p.parseExport(loc)

	case p.at("const"):
		p.lexer.Next()
		decl := p.parseVarDecl(js_ast.SymbolConst)
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &decl}

	case p.at("let"):
		p.lexer.Next()
		decl := p.parseVarDecl(js_ast.SymbolLet)
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &decl}

	case p.at("var"):
		p.lexer.Next()
		decl := p.parseVarDecl(js_ast.SymbolVar)
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &decl}

	case p.at("async") && p.peekIsFunctionAfterAsync():
		p.lexer.Next() // "async"
		fn := p.parseFunction(true)
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SFunctionDecl{Fn: fn}}

	case p.at("function"):
		fn := p.parseFunction(false)
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SFunctionDecl{Fn: fn}}

	case p.at("class"):
		class := p.parseClass()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SClassDecl{Class: class}}

	case p.lexer.Token == js_lexer.TOpenBrace:
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SBlock{Stmts: p.parseBlockStmts()}}

	case p.at("if"):
		return js_ast.Stmt{Loc: loc, Data: p.parseIf()}

	case p.at("for"):
		return p.parseFor(loc)

	case p.at("while"):
		p.lexer.Next()
		p.expect(js_lexer.TOpenParen, "(")
		test := p.parseExpr()
		p.expect(js_lexer.TCloseParen, ")")
		body := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SWhile{Test: test, Body: body}}

	case p.at("do"):
		p.lexer.Next()
		body := p.parseStmt()
		p.expectWord("while")
		p.expect(js_lexer.TOpenParen, "(")
		test := p.parseExpr()
		p.expect(js_lexer.TCloseParen, ")")
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDoWhile{Body: body, Test: test}}

	case p.at("return"):
		p.lexer.Next()
		var value *js_ast.Expr
		if p.lexer.Token != js_lexer.TSemicolon && p.lexer.Token != js_lexer.TCloseBrace &&
			p.lexer.Token != js_lexer.TEndOfFile && !p.lexer.HasNewlineBefore {
			e := p.parseExpr()
			value = &e
		}
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SReturn{Value: value}}

	case p.at("throw"):
		p.lexer.Next()
		value := p.parseExpr()
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SThrow{Value: value}}

	case p.at("break"):
		p.lexer.Next()
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SBreak{}}

	case p.at("continue"):
		p.lexer.Next()
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SContinue{}}

	case p.at("try"):
		return js_ast.Stmt{Loc: loc, Data: p.parseTry()}

	case p.at("switch"):
		return js_ast.Stmt{Loc: loc, Data: p.parseSwitch()}

	case p.lexer.Token == js_lexer.TSemicolon:
		p.lexer.Next()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SEmpty{}}

	default:
		value := p.parseExpr()
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: value}}
	}
}

func (p *Parser) peekIsFunctionAfterAsync() bool {
	saved := *p.lexer
	p.lexer.Next()
	isFn := p.at("function")
	*p.lexer = saved
	return isFn
}

func (p *Parser) parseVarDecl(kind js_ast.SymbolKind) js_ast.SVarDecl {
	var decls []js_ast.Declarator
	for {
		ident := p.parseIdent()
		var init *js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			e := p.parseAssignExpr()
			init = &e
		}
		decls = append(decls, js_ast.Declarator{Ident: ident, Init: init})
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	return js_ast.SVarDecl{Kind: kind, Decls: decls}
}

func (p *Parser) parseBlockStmts() []js_ast.Stmt {
	p.expect(js_lexer.TOpenBrace, "{")
	var stmts []js_ast.Stmt
	for p.lexer.Token != js_lexer.TCloseBrace && p.lexer.Token != js_lexer.TEndOfFile {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(js_lexer.TCloseBrace, "}")
	return stmts
}

func (p *Parser) parseIf() js_ast.S {
	p.lexer.Next()
	p.expect(js_lexer.TOpenParen, "(")
	test := p.parseExpr()
	p.expect(js_lexer.TCloseParen, ")")
	yes := p.parseStmt()
	var no *js_ast.Stmt
	if p.at("else") {
		p.lexer.Next()
		n := p.parseStmt()
		no = &n
	}
	return &js_ast.SIf{Test: test, Yes: yes, No: no}
}

// parseFor handles "for (;;)", "for (init; test; update)", "for (x in e)",
// and "for (x of e)", including the var/let/const-declaring forms.
func (p *Parser) parseFor(loc ast.Loc) js_ast.Stmt {
	p.lexer.Next()
	p.expect(js_lexer.TOpenParen, "(")

	var initDecl *js_ast.SVarDecl
	var initStmt *js_ast.Stmt
	var initTarget *js_ast.Expr

	declKind := js_ast.SymbolKind(255)
	switch {
	case p.at("const"):
		declKind = js_ast.SymbolConst
	case p.at("let"):
		declKind = js_ast.SymbolLet
	case p.at("var"):
		declKind = js_ast.SymbolVar
	}

	if declKind != 255 {
		p.lexer.Next()
		ident := p.parseIdent()
		if p.at("in") || p.at("of") {
			isOf := p.at("of")
			p.lexer.Next()
			value := p.parseAssignExpr()
			p.expect(js_lexer.TCloseParen, ")")
			body := p.parseStmt()
			decl := js_ast.SVarDecl{Kind: declKind, Decls: []js_ast.Declarator{{Ident: ident}}}
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SForInOf{IsOf: isOf, Decl: &decl, Value: value, Body: body}}
		}
		// Regular "for (let x = ...; ...; ...)" — finish the declarator list.
		var init *js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			e := p.parseAssignExpr()
			init = &e
		}
		decls := []js_ast.Declarator{{Ident: ident, Init: init}}
		for p.lexer.Token == js_lexer.TComma {
			p.lexer.Next()
			id2 := p.parseIdent()
			var init2 *js_ast.Expr
			if p.lexer.Token == js_lexer.TEquals {
				p.lexer.Next()
				e := p.parseAssignExpr()
				init2 = &e
			}
			decls = append(decls, js_ast.Declarator{Ident: id2, Init: init2})
		}
		decl := js_ast.SVarDecl{Kind: declKind, Decls: decls}
		initDecl = &decl
	} else if p.lexer.Token != js_lexer.TSemicolon {
		e := p.parseExpr()
		if p.at("in") || p.at("of") {
			isOf := p.at("of")
			p.lexer.Next()
			value := p.parseAssignExpr()
			p.expect(js_lexer.TCloseParen, ")")
			body := p.parseStmt()
			target := e
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SForInOf{IsOf: isOf, Target: &target, Value: value, Body: body}}
		}
		s := js_ast.Stmt{Data: &js_ast.SExpr{Value: e}}
		initStmt = &s
		_ = initTarget
	}

	p.expect(js_lexer.TSemicolon, ";")
	var test *js_ast.Expr
	if p.lexer.Token != js_lexer.TSemicolon {
		e := p.parseExpr()
		test = &e
	}
	p.expect(js_lexer.TSemicolon, ";")
	var update *js_ast.Expr
	if p.lexer.Token != js_lexer.TCloseParen {
		e := p.parseExpr()
		update = &e
	}
	p.expect(js_lexer.TCloseParen, ")")
	body := p.parseStmt()

	var init *js_ast.Stmt
	switch {
	case initDecl != nil:
		s := js_ast.Stmt{Data: initDecl}
		init = &s
	case initStmt != nil:
		init = initStmt
	}
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFor{Init: init, Test: test, Update: update, Body: body}}
}

func (p *Parser) parseTry() js_ast.S {
	p.lexer.Next()
	body := p.parseBlockStmts()
	var catch *js_ast.CatchClause
	var finally []js_ast.Stmt
	if p.at("catch") {
		p.lexer.Next()
		var param *js_ast.Ident
		if p.lexer.Token == js_lexer.TOpenParen {
			p.lexer.Next()
			id := p.parseIdent()
			param = &id
			p.expect(js_lexer.TCloseParen, ")")
		}
		catchBody := p.parseBlockStmts()
		catch = &js_ast.CatchClause{Param: param, Body: catchBody}
	}
	if p.at("finally") {
		p.lexer.Next()
		finally = p.parseBlockStmts()
	}
	return &js_ast.STry{Body: body, Catch: catch, Finally: finally}
}

func (p *Parser) parseSwitch() js_ast.S {
	p.lexer.Next()
	p.expect(js_lexer.TOpenParen, "(")
	test := p.parseExpr()
	p.expect(js_lexer.TCloseParen, ")")
	p.expect(js_lexer.TOpenBrace, "{")
	var cases []js_ast.SwitchCase
	for p.lexer.Token != js_lexer.TCloseBrace && p.lexer.Token != js_lexer.TEndOfFile {
		var c js_ast.SwitchCase
		if p.at("case") {
			p.lexer.Next()
			e := p.parseExpr()
			c.Test = &e
		} else {
			p.expectWord("default")
		}
		p.expect(js_lexer.TColon, ":")
		for !p.at("case") && !p.at("default") && p.lexer.Token != js_lexer.TCloseBrace && p.lexer.Token != js_lexer.TEndOfFile {
			c.Body = append(c.Body, p.parseStmt())
		}
		cases = append(cases, c)
	}
	p.expect(js_lexer.TCloseBrace, "}")
	return &js_ast.SSwitch{Test: test, Cases: cases}
}

