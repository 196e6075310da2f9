package js_parser

import "github.com/esbundle/esbundle/internal/js_ast"
import "github.com/esbundle/esbundle/internal/js_lexer"

// parseFunction parses a function declaration or named/anonymous function
// expression, starting at the "function" keyword.
func (p *Parser) parseFunction(isAsync bool) *js_ast.Fn {
	p.expectWord("function")
	if p.lexer.Token == js_lexer.TStar {
		p.lexer.Next() // generator
	}
	var name *js_ast.Ident
	if p.lexer.Token == js_lexer.TIdentifier {
		id := p.parseIdent()
		name = &id
	}
	fn := p.parseFunctionTail(isAsync)
	fn.Name = name
	return fn
}

func (p *Parser) parseFunctionTail(isAsync bool) *js_ast.Fn {
	params := p.parseParamList()
	body := p.parseBlockStmts()
	return &js_ast.Fn{Params: params, Body: body, IsAsync: isAsync}
}

func (p *Parser) parseParamList() []js_ast.Param {
	p.expect(js_lexer.TOpenParen, "(")
	var params []js_ast.Param
	for p.lexer.Token != js_lexer.TCloseParen {
		ident := p.parseIdent()
		var def *js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			e := p.parseAssignExpr()
			def = &e
		}
		params = append(params, js_ast.Param{Ident: ident, Default: def})
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	p.expect(js_lexer.TCloseParen, ")")
	return params
}

// parseClass parses a class declaration or expression, starting at the
// "class" keyword. An "extends" clause takes a primary expression followed
// by any member/call chain (`extends a.B`, `extends mixin(C)`).
func (p *Parser) parseClass() *js_ast.Class {
	p.expectWord("class")
	class := &js_ast.Class{}
	if p.lexer.Token == js_lexer.TIdentifier && !p.at("extends") {
		id := p.parseIdent()
		class.Name = &id
	}
	if p.at("extends") {
		p.lexer.Next()
		e := p.parseCallOrMember(p.parsePrimary(), true)
		class.ExtendsRef = &e
	}
	p.expect(js_lexer.TOpenBrace, "{")
	for p.lexer.Token != js_lexer.TCloseBrace {
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next()
			continue
		}
		class.Members = append(class.Members, p.parseClassMember())
	}
	p.expect(js_lexer.TCloseBrace, "}")
	return class
}

func (p *Parser) parseClassMember() js_ast.ClassMember {
	isStatic := false
	if p.at("static") {
		saved := *p.lexer
		p.lexer.Next()
		if p.lexer.Token == js_lexer.TOpenParen {
			// "static" used as a method name
			*p.lexer = saved
		} else {
			isStatic = true
		}
	}
	// Skip "get"/"set" accessor markers; treated as regular methods since
	// the bundler only needs to see the body's reads/writes, not property
	// descriptor semantics.
	if (p.at("get") || p.at("set")) {
		saved := *p.lexer
		p.lexer.Next()
		if p.lexer.Token == js_lexer.TOpenParen {
			*p.lexer = saved
		}
	}
	isAsync := false
	if p.at("async") {
		p.lexer.Next()
		isAsync = true
	}
	if p.lexer.Token == js_lexer.TStar {
		p.lexer.Next()
	}
	key := p.parseIdentName()
	fn := p.parseFunctionTail(isAsync)
	return js_ast.ClassMember{Key: key, Value: fn, IsStatic: isStatic}
}
