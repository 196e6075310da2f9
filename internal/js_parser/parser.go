// Package js_parser implements the parsed-module-AST producer and, in
// Scan, the scanner: a single AST traversal that marks bindings, resolves
// uses, and records per-statement read/write sets and side-effect tags.
//
// Parsing and scanning are kept as two separate passes inside this one
// package (Parse then Scan) rather than fused, which keeps hoisting
// simple: by the time Scan visits a scope's body, the full statement list
// for that scope already exists, so declarations can be pre-registered
// before any reference inside the scope is resolved.
package js_parser

import (
	"fmt"

	"github.com/esbundle/esbundle/internal/ast"
	"github.com/esbundle/esbundle/internal/js_ast"
	"github.com/esbundle/esbundle/internal/js_lexer"
	"github.com/esbundle/esbundle/internal/logger"
)

type Parser struct {
	lexer   *js_lexer.Lexer
	absPath string
	source  logger.Source
	log     logger.Log
}

func NewParser(absPath, source string, log logger.Log) *Parser {
	return &Parser{
		lexer:   js_lexer.NewLexer(absPath, source),
		absPath: absPath,
		source:  logger.Source{AbsPath: absPath, Contents: source},
		log:     log,
	}
}

func (p *Parser) addError(r ast.Range, text string) {
	p.log.AddMsg(logger.Msg{
		Kind: logger.Error,
		Data: logger.MsgData{Text: text, Location: p.source.LocationForRange(r)},
	})
}

func (p *Parser) fail(text string) {
	p.addError(p.lexer.Range(), text)
	panic(parseError{})
}

type parseError struct{}

// ParseModule parses the whole file into a flat top-level statement list.
// Parse errors are reported through the Parser's logger.Log and also
// short-circuit via a recovered panic so a single bad file doesn't bring
// down the whole worker pool; ok is false when parsing failed.
func (p *Parser) ParseModule() (stmts []js_ast.Stmt, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseError := r.(parseError); isParseError {
				ok = false
				return
			}
			panic(r)
		}
	}()
	for p.lexer.Token != js_lexer.TEndOfFile {
		stmts = append(stmts, p.parseStmt())
	}
	return stmts, true
}

func (p *Parser) at(word string) bool {
	return p.lexer.Token == js_lexer.TIdentifier && p.lexer.Identifier == word
}

func (p *Parser) expect(tok js_lexer.T, what string) {
	if p.lexer.Token != tok {
		p.fail(fmt.Sprintf("expected %s but found %q", what, p.lexer.Raw()))
	}
	p.lexer.Next()
}

func (p *Parser) expectWord(word string) {
	if !p.at(word) {
		p.fail(fmt.Sprintf("expected %q but found %q", word, p.lexer.Raw()))
	}
	p.lexer.Next()
}

// consumeSemicolon implements a permissive automatic-semicolon-insertion:
// an explicit ";" is consumed, otherwise a newline or "}" or EOF is
// accepted silently.
func (p *Parser) consumeSemicolon() {
	if p.lexer.Token == js_lexer.TSemicolon {
		p.lexer.Next()
		return
	}
	if p.lexer.HasNewlineBefore || p.lexer.Token == js_lexer.TCloseBrace || p.lexer.Token == js_lexer.TEndOfFile {
		return
	}
	p.fail(fmt.Sprintf("expected \";\" but found %q", p.lexer.Raw()))
}

func (p *Parser) parseIdentName() string {
	if p.lexer.Token != js_lexer.TIdentifier {
		p.fail(fmt.Sprintf("expected identifier but found %q", p.lexer.Raw()))
	}
	name := p.lexer.Identifier
	p.lexer.Next()
	return name
}

func (p *Parser) parseIdent() js_ast.Ident {
	loc := ast.Loc{Start: p.lexer.Range().Loc.Start}
	name := p.parseIdentName()
	return js_ast.Ident{Name: name, Loc: loc}
}
