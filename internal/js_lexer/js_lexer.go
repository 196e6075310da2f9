// Package js_lexer tokenizes the ECMAScript module subset this bundler
// understands: import/export declarations, var/let/const, function and
// class declarations and expressions, and the common statement and
// expression forms needed to compute read/write sets and side-effect
// tags. It does not attempt full ECMAScript coverage: regular expression
// literals, destructuring patterns and template-literal substitutions
// ("${expr}") are out of scope.
package js_lexer

import (
	"strconv"
	"strings"

	"github.com/esbundle/esbundle/internal/ast"
)

type T uint8

const (
	TEndOfFile T = iota
	TIdentifier
	TNumericLiteral
	TStringLiteral
	TTemplateLiteral
	TNoSubstitutionTemplateLiteral

	// Punctuators
	TOpenParen
	TCloseParen
	TOpenBrace
	TCloseBrace
	TOpenBracket
	TCloseBracket
	TSemicolon
	TComma
	TDot
	TDotDotDot
	TColon
	TQuestion
	TQuestionDot
	TArrow
	TEquals
	TPlusEquals
	TMinusEquals
	TStarEquals
	TSlashEquals
	TEqualsEqualsEquals
	TExclamationEqualsEquals
	TEqualsEquals
	TExclamationEquals
	TLessThan
	TLessThanEquals
	TGreaterThan
	TGreaterThanEquals
	TPlus
	TMinus
	TStar
	TStarStar
	TSlash
	TPercent
	TAmpersandAmpersand
	TBarBar
	TQuestionQuestion
	TAmpersand
	TBar
	TCaret
	TExclamation
	TTilde
	TPlusPlus
	TMinusMinus

	TEnd // sentinel
)

// Keywords recognized by the parser. Kept as a lookup table the way the
// teacher keeps js_lexer.Keywords, so the parser can ask "is this
// identifier actually a keyword" without a long if-chain.
var Keywords = map[string]bool{
	"import": true, "export": true, "from": true, "as": true, "default": true,
	"const": true, "let": true, "var": true, "function": true, "class": true,
	"extends": true, "return": true, "if": true, "else": true, "for": true,
	"while": true, "do": true, "break": true, "continue": true, "new": true,
	"typeof": true, "instanceof": true, "in": true, "of": true, "this": true,
	"null": true, "true": true, "false": true, "void": true, "delete": true,
	"try": true, "catch": true, "finally": true, "throw": true, "switch": true,
	"case": true, "static": true, "get": true, "set": true, "async": true,
	"await": true, "yield": true, "super": true, "undefined": true,
}

type Lexer struct {
	Source       string
	AbsPath      string
	start        int
	end          int
	current      int
	Token        T
	Identifier   string
	Number       float64
	StringValue  string
	HasNewlineBefore bool
}

func NewLexer(absPath, source string) *Lexer {
	l := &Lexer{Source: source, AbsPath: absPath}
	l.Next()
	return l
}

func (l *Lexer) Range() ast.Range {
	return ast.Range{Loc: ast.Loc{Start: int32(l.start)}, Len: int32(l.end - l.start)}
}

func (l *Lexer) Raw() string { return l.Source[l.start:l.end] }

func (l *Lexer) IsIdentifierOrKeyword() bool { return l.Token == TIdentifier }

func (l *Lexer) IsContextualKeyword(text string) bool {
	return l.Token == TIdentifier && l.Identifier == text
}

func (l *Lexer) peekByte() byte {
	if l.current >= len(l.Source) {
		return 0
	}
	return l.Source[l.current]
}

func (l *Lexer) peekByteAt(off int) byte {
	i := l.current + off
	if i >= len(l.Source) {
		return 0
	}
	return l.Source[i]
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Next scans the next token, skipping whitespace and comments, and
// records whether a newline was crossed (used by the parser for
// automatic-semicolon-insertion-adjacent decisions around arrow bodies).
func (l *Lexer) Next() {
	l.HasNewlineBefore = false
	for {
		l.start = l.current
		if l.current >= len(l.Source) {
			l.Token = TEndOfFile
			l.end = l.current
			return
		}
		c := l.Source[l.current]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.current++
			continue
		case c == '\n':
			l.HasNewlineBefore = true
			l.current++
			continue
		case c == '/' && l.peekByteAt(1) == '/':
			for l.current < len(l.Source) && l.Source[l.current] != '\n' {
				l.current++
			}
			continue
		case c == '/' && l.peekByteAt(1) == '*':
			l.current += 2
			for l.current < len(l.Source) {
				if l.Source[l.current] == '*' && l.peekByteAt(1) == '/' {
					l.current += 2
					break
				}
				if l.Source[l.current] == '\n' {
					l.HasNewlineBefore = true
				}
				l.current++
			}
			continue
		}
		break
	}

	c := l.Source[l.current]
	switch {
	case isIdentStart(c):
		l.current++
		for l.current < len(l.Source) && isIdentPart(l.Source[l.current]) {
			l.current++
		}
		l.end = l.current
		l.Identifier = l.Source[l.start:l.end]
		l.Token = TIdentifier

	case isDigit(c) || (c == '.' && isDigit(l.peekByteAt(1))):
		l.current++
		for l.current < len(l.Source) && (isDigit(l.Source[l.current]) || l.Source[l.current] == '.') {
			l.current++
		}
		l.end = l.current
		l.Number, _ = strconv.ParseFloat(l.Source[l.start:l.end], 64)
		l.Token = TNumericLiteral

	case c == '"' || c == '\'':
		l.scanString(c)

	case c == '`':
		l.scanTemplate()

	default:
		l.scanPunctuator()
	}
}

func (l *Lexer) scanString(quote byte) {
	l.current++
	var sb strings.Builder
	for l.current < len(l.Source) && l.Source[l.current] != quote {
		ch := l.Source[l.current]
		if ch == '\\' && l.current+1 < len(l.Source) {
			l.current++
			sb.WriteByte(unescape(l.Source[l.current]))
			l.current++
			continue
		}
		sb.WriteByte(ch)
		l.current++
	}
	l.current++ // closing quote
	l.end = l.current
	l.StringValue = sb.String()
	l.Token = TStringLiteral
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}

// scanTemplate treats a template literal as an atomic, non-substituted
// string token. Template substitutions ("${expr}") are not supported; see
// the package doc comment.
func (l *Lexer) scanTemplate() {
	l.current++
	var sb strings.Builder
	for l.current < len(l.Source) && l.Source[l.current] != '`' {
		ch := l.Source[l.current]
		if ch == '\\' && l.current+1 < len(l.Source) {
			l.current++
			sb.WriteByte(unescape(l.Source[l.current]))
			l.current++
			continue
		}
		sb.WriteByte(ch)
		l.current++
	}
	l.current++
	l.end = l.current
	l.StringValue = sb.String()
	l.Token = TNoSubstitutionTemplateLiteral
}

type punct struct {
	text string
	tok  T
}

// Longest-match-first punctuator table.
var punctuators = []punct{
	{"...", TDotDotDot},
	{"=>", TArrow},
	{"===", TEqualsEqualsEquals},
	{"!==", TExclamationEqualsEquals},
	{"==", TEqualsEquals},
	{"!=", TExclamationEquals},
	{"<=", TLessThanEquals},
	{">=", TGreaterThanEquals},
	{"&&", TAmpersandAmpersand},
	{"||", TBarBar},
	{"??", TQuestionQuestion},
	{"?.", TQuestionDot},
	{"**", TStarStar},
	{"++", TPlusPlus},
	{"--", TMinusMinus},
	{"+=", TPlusEquals},
	{"-=", TMinusEquals},
	{"*=", TStarEquals},
	{"/=", TSlashEquals},
	{"(", TOpenParen},
	{")", TCloseParen},
	{"{", TOpenBrace},
	{"}", TCloseBrace},
	{"[", TOpenBracket},
	{"]", TCloseBracket},
	{";", TSemicolon},
	{",", TComma},
	{".", TDot},
	{":", TColon},
	{"?", TQuestion},
	{"=", TEquals},
	{"<", TLessThan},
	{">", TGreaterThan},
	{"+", TPlus},
	{"-", TMinus},
	{"*", TStar},
	{"/", TSlash},
	{"%", TPercent},
	{"&", TAmpersand},
	{"|", TBar},
	{"^", TCaret},
	{"!", TExclamation},
	{"~", TTilde},
}

func (l *Lexer) scanPunctuator() {
	for _, p := range punctuators {
		n := len(p.text)
		if l.current+n <= len(l.Source) && l.Source[l.current:l.current+n] == p.text {
			l.current += n
			l.end = l.current
			l.Token = p.tok
			return
		}
	}
	// An unknown character becomes a one-byte TEnd token, which the parser
	// reports as a syntax error at this position.
	l.current++
	l.end = l.current
	l.Token = TEnd
}
