package js_parser

import (
	"github.com/esbundle/esbundle/internal/ast"
	"github.com/esbundle/esbundle/internal/js_ast"
	"github.com/esbundle/esbundle/internal/js_lexer"
)

var binaryPrec = map[js_lexer.T]int{
	js_lexer.TBarBar:             1,
	js_lexer.TQuestionQuestion:   1,
	js_lexer.TAmpersandAmpersand: 2,
	js_lexer.TBar:                3,
	js_lexer.TCaret:              4,
	js_lexer.TAmpersand:          5,
	js_lexer.TEqualsEquals:       6,
	js_lexer.TExclamationEquals:  6,
	js_lexer.TEqualsEqualsEquals: 6,
	js_lexer.TExclamationEqualsEquals: 6,
	js_lexer.TLessThan:           7,
	js_lexer.TGreaterThan:        7,
	js_lexer.TLessThanEquals:     7,
	js_lexer.TGreaterThanEquals:  7,
	js_lexer.TPlus:               9,
	js_lexer.TMinus:              9,
	js_lexer.TStar:               10,
	js_lexer.TSlash:              10,
	js_lexer.TPercent:            10,
	js_lexer.TStarStar:           11,
}

var binaryOpText = map[js_lexer.T]string{
	js_lexer.TBarBar: "||", js_lexer.TQuestionQuestion: "??", js_lexer.TAmpersandAmpersand: "&&",
	js_lexer.TBar: "|", js_lexer.TCaret: "^", js_lexer.TAmpersand: "&",
	js_lexer.TEqualsEquals: "==", js_lexer.TExclamationEquals: "!=",
	js_lexer.TEqualsEqualsEquals: "===", js_lexer.TExclamationEqualsEquals: "!==",
	js_lexer.TLessThan: "<", js_lexer.TGreaterThan: ">",
	js_lexer.TLessThanEquals: "<=", js_lexer.TGreaterThanEquals: ">=",
	js_lexer.TPlus: "+", js_lexer.TMinus: "-",
	js_lexer.TStar: "*", js_lexer.TSlash: "/", js_lexer.TPercent: "%",
	js_lexer.TStarStar: "**",
}

var assignOpText = map[js_lexer.T]string{
	js_lexer.TEquals: "=", js_lexer.TPlusEquals: "+=", js_lexer.TMinusEquals: "-=",
	js_lexer.TStarEquals: "*=", js_lexer.TSlashEquals: "/=",
}

func (p *Parser) parseExpr() js_ast.Expr {
	first := p.parseAssignExpr()
	if p.lexer.Token != js_lexer.TComma {
		return first
	}
	exprs := []js_ast.Expr{first}
	for p.lexer.Token == js_lexer.TComma {
		p.lexer.Next()
		exprs = append(exprs, p.parseAssignExpr())
	}
	return js_ast.Expr{Loc: first.Loc, Data: &js_ast.ESequence{Exprs: exprs}}
}

func (p *Parser) parseAssignExpr() js_ast.Expr {
	left := p.parseConditional()
	if op, ok := assignOpText[p.lexer.Token]; ok {
		p.lexer.Next()
		right := p.parseAssignExpr()
		return js_ast.Expr{Loc: left.Loc, Data: &js_ast.EAssign{Op: op, Target: left, Value: right}}
	}
	return left
}

func (p *Parser) parseConditional() js_ast.Expr {
	test := p.parseBinary(1)
	if p.lexer.Token == js_lexer.TQuestion {
		p.lexer.Next()
		yes := p.parseAssignExpr()
		p.expect(js_lexer.TColon, ":")
		no := p.parseAssignExpr()
		return js_ast.Expr{Loc: test.Loc, Data: &js_ast.EConditional{Test: test, Yes: yes, No: no}}
	}
	return test
}

func (p *Parser) parseBinary(minPrec int) js_ast.Expr {
	left := p.parseUnary()
	for {
		prec, ok := binaryPrec[p.lexer.Token]
		if !ok || prec < minPrec {
			break
		}
		op := binaryOpText[p.lexer.Token]
		tok := p.lexer.Token
		p.lexer.Next()
		nextMin := prec + 1
		if tok == js_lexer.TStarStar {
			nextMin = prec // right-associative
		}
		right := p.parseBinary(nextMin)
		left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: op, Left: left, Right: right}}
	}
	return left
}

var prefixUnaryOps = map[js_lexer.T]string{
	js_lexer.TExclamation: "!", js_lexer.TTilde: "~", js_lexer.TPlus: "+unary", js_lexer.TMinus: "-unary",
	js_lexer.TPlusPlus: "++", js_lexer.TMinusMinus: "--",
}

func (p *Parser) parseUnary() js_ast.Expr {
	loc := p.lexer.Range().Loc
	if op, ok := prefixUnaryOps[p.lexer.Token]; ok {
		p.lexer.Next()
		value := p.parseUnary()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: op, Value: value, Prefix: true}}
	}
	if p.at("typeof") || p.at("void") || p.at("delete") || p.at("await") || p.at("yield") {
		op := p.lexer.Identifier
		p.lexer.Next()
		value := p.parseUnary()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: op, Value: value, Prefix: true}}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() js_ast.Expr {
	expr := p.parseCallOrMember(p.parsePrimary(), true)
	if p.lexer.Token == js_lexer.TPlusPlus || p.lexer.Token == js_lexer.TMinusMinus {
		op := "++"
		if p.lexer.Token == js_lexer.TMinusMinus {
			op = "--"
		}
		p.lexer.Next()
		expr = js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EUnary{Op: op, Value: expr, Prefix: false}}
	}
	return expr
}

// parseCallOrMember parses the postfix chain of "." / "[" / "(" following
// a primary expression. allowCalls is false while parsing the callee of a
// "new" expression, so the argument list that follows belongs to the "new".
func (p *Parser) parseCallOrMember(expr js_ast.Expr, allowCalls bool) js_ast.Expr {
	for {
		switch p.lexer.Token {
		case js_lexer.TDot, js_lexer.TQuestionDot:
			p.lexer.Next()
			name := p.parseIdentName()
			expr = js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EDot{Target: expr, Name: name}}
		case js_lexer.TOpenBracket:
			p.lexer.Next()
			index := p.parseExpr()
			p.expect(js_lexer.TCloseBracket, "]")
			expr = js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EIndex{Target: expr, Index: index}}
		case js_lexer.TOpenParen:
			if !allowCalls {
				return expr
			}
			args := p.parseArgs()
			expr = js_ast.Expr{Loc: expr.Loc, Data: &js_ast.ECall{Target: expr, Args: args}}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() []js_ast.Expr {
	p.expect(js_lexer.TOpenParen, "(")
	var args []js_ast.Expr
	for p.lexer.Token != js_lexer.TCloseParen {
		if p.lexer.Token == js_lexer.TDotDotDot {
			loc := p.lexer.Range().Loc
			p.lexer.Next()
			args = append(args, js_ast.Expr{Loc: loc, Data: &js_ast.ESpread{Value: p.parseAssignExpr()}})
		} else {
			args = append(args, p.parseAssignExpr())
		}
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	p.expect(js_lexer.TCloseParen, ")")
	return args
}

func (p *Parser) parsePrimary() js_ast.Expr {
	loc := p.lexer.Range().Loc

	switch p.lexer.Token {
	case js_lexer.TNumericLiteral:
		v := p.lexer.Number
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: v}}

	case js_lexer.TStringLiteral:
		v := p.lexer.StringValue
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: v}}

	case js_lexer.TNoSubstitutionTemplateLiteral, js_lexer.TTemplateLiteral:
		v := p.lexer.StringValue
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ETemplate{Value: v}}

	case js_lexer.TOpenBracket:
		return p.parseArrayLiteral(loc)

	case js_lexer.TOpenBrace:
		return p.parseObjectLiteral(loc)

	case js_lexer.TOpenParen:
		return p.parseParenOrArrow(loc)
	}

	switch {
	case p.at("this"):
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EThis{}}
	case p.at("super"):
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ESuper{}}
	case p.at("null"):
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENull{}}
	case p.at("undefined"):
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUndefined{}}
	case p.at("true"):
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: true}}
	case p.at("false"):
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: false}}
	case p.at("function"):
		fn := p.parseFunction(false)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
	case p.at("async") && p.peekIsFunctionAfterAsync():
		p.lexer.Next()
		fn := p.parseFunction(true)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
	case p.at("class"):
		class := p.parseClass()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EClass{Class: class}}
	case p.at("new"):
		p.lexer.Next()
		callee := p.parseCallOrMember(p.parsePrimary(), false)
		var args []js_ast.Expr
		if p.lexer.Token == js_lexer.TOpenParen {
			args = p.parseArgs()
		}
		return p.parseCallOrMember(js_ast.Expr{Loc: loc, Data: &js_ast.ECall{Target: callee, Args: args, IsNew: true}}, true)
	case p.at("import"):
		p.lexer.Next()
		args := p.parseArgs()
		var arg js_ast.Expr
		if len(args) > 0 {
			arg = args[0]
		}
		source, hasSource := "", false
		if s, ok := arg.Data.(*js_ast.EString); ok {
			source, hasSource = s.Value, true
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.EImportCall{Source: source, HasSource: hasSource, Arg: arg}}
	case p.lexer.Token == js_lexer.TIdentifier:
		name := p.lexer.Identifier
		p.lexer.Next()
		if p.lexer.Token == js_lexer.TArrow && !p.lexer.HasNewlineBefore {
			p.lexer.Next()
			return p.finishArrow(loc, []js_ast.Param{{Ident: js_ast.Ident{Name: name, Loc: loc}}})
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Name: name}}
	}

	p.fail("unexpected token " + p.lexer.Raw())
	panic(parseError{})
}

func (p *Parser) parseArrayLiteral(loc ast.Loc) js_ast.Expr {
	p.lexer.Next()
	var items []js_ast.Expr
	for p.lexer.Token != js_lexer.TCloseBracket {
		if p.lexer.Token == js_lexer.TDotDotDot {
			p.lexer.Next()
			items = append(items, js_ast.Expr{Data: &js_ast.ESpread{Value: p.parseAssignExpr()}})
		} else {
			items = append(items, p.parseAssignExpr())
		}
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	p.expect(js_lexer.TCloseBracket, "]")
	return js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: items}}
}

func (p *Parser) parseObjectLiteral(loc ast.Loc) js_ast.Expr {
	p.lexer.Next()
	var props []js_ast.EObjectProperty
	for p.lexer.Token != js_lexer.TCloseBrace {
		if p.lexer.Token == js_lexer.TDotDotDot {
			p.lexer.Next()
			props = append(props, js_ast.EObjectProperty{Key: "...", Value: p.parseAssignExpr()})
			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
			continue
		}
		var key string
		if p.lexer.Token == js_lexer.TStringLiteral {
			key = p.lexer.StringValue
			p.lexer.Next()
		} else {
			key = p.parseIdentName()
		}
		if p.lexer.Token == js_lexer.TColon {
			p.lexer.Next()
			val := p.parseAssignExpr()
			props = append(props, js_ast.EObjectProperty{Key: key, Value: val})
		} else if p.lexer.Token == js_lexer.TOpenParen {
			// Shorthand method: { f() {...} }
			fn := p.parseFunctionTail(false)
			props = append(props, js_ast.EObjectProperty{Key: key, Value: js_ast.Expr{Data: &js_ast.EFunction{Fn: fn}}})
		} else {
			// Shorthand property: { x } — expanded later by the renamer
			// per §4.8 point 3, but recorded as shorthand here too.
			props = append(props, js_ast.EObjectProperty{
				Key:          key,
				Value:        js_ast.Expr{Data: &js_ast.EIdentifier{Name: key}},
				WasShorthand: true,
			})
		}
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	p.expect(js_lexer.TCloseBrace, "}")
	return js_ast.Expr{Loc: loc, Data: &js_ast.EObject{Properties: props}}
}

// parseParenOrArrow disambiguates "(expr)" from "(params) => body" by
// attempting the arrow-parameter-list parse first and rewinding the lexer
// if that turns out not to be followed by "=>".
func (p *Parser) parseParenOrArrow(loc ast.Loc) js_ast.Expr {
	saved := *p.lexer
	if params, ok := p.tryParseArrowParams(); ok {
		return p.finishArrow(loc, params)
	}
	*p.lexer = saved

	p.expect(js_lexer.TOpenParen, "(")
	expr := p.parseExpr()
	p.expect(js_lexer.TCloseParen, ")")
	return expr
}

func (p *Parser) tryParseArrowParams() (params []js_ast.Param, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	p.expect(js_lexer.TOpenParen, "(")
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
	if p.lexer.Token != js_lexer.TCloseParen {
		return nil, false
	}
	p.lexer.Next()
	if p.lexer.Token != js_lexer.TArrow {
		return nil, false
	}
	p.lexer.Next()
	return params, true
}

func (p *Parser) finishArrow(loc ast.Loc, params []js_ast.Param) js_ast.Expr {
	fn := &js_ast.Fn{Params: params, IsArrow: true}
	if p.lexer.Token == js_lexer.TOpenBrace {
		fn.Body = p.parseBlockStmts()
	} else {
		e := p.parseAssignExpr()
		fn.ArrowExprBody = &e
	}
	return js_ast.Expr{Loc: loc, Data: &js_ast.EArrow{Fn: fn}}
}
