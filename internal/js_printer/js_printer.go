// Package js_printer turns a statement list back into ECMAScript source
// text: a printer struct wrapping a byte buffer with one print method per
// node kind, reduced to the statement/expression forms this bundler's
// parser produces.
package js_printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/esbundle/esbundle/internal/js_ast"
)

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.sb.WriteString("  ")
	}
}

// PrintStmts renders a flat statement list, matching what the
// ChunkRenderer hands it: the already tree-shaken, export-folded,
// renamed statement sequence for one chunk.
func PrintStmts(stmts []js_ast.Stmt) string {
	p := &printer{}
	for _, s := range stmts {
		p.printStmt(s)
	}
	return p.sb.String()
}

// PrintExpr renders a single expression, used by callers (such as tests)
// that want one expression's text without a surrounding statement.
func PrintExpr(e js_ast.Expr) string {
	p := &printer{}
	p.printExpr(e)
	return p.sb.String()
}

func (p *printer) printStmt(stmt js_ast.Stmt) {
	p.writeIndent()
	p.printStmtBody(stmt)
}

// printStmtBody prints stmt's content without a leading indent, so
// `export <decl>` can write "export " and continue on the same line.
func (p *printer) printStmtBody(stmt js_ast.Stmt) {
	switch d := stmt.Data.(type) {
	case *js_ast.SVarDecl:
		p.sb.WriteString(kindKeyword(d.Kind))
		p.sb.WriteByte(' ')
		for i, decl := range d.Decls {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(decl.Ident.Name)
			if decl.Init != nil {
				p.sb.WriteString(" = ")
				p.printExpr(*decl.Init)
			}
		}
		p.sb.WriteString(";\n")

	case *js_ast.SFunctionDecl:
		p.printFn("function", d.Fn)
		p.sb.WriteByte('\n')

	case *js_ast.SClassDecl:
		p.printClass(d.Class)
		p.sb.WriteByte('\n')

	case *js_ast.SBlock:
		p.sb.WriteString("{\n")
		p.indent++
		for _, s := range d.Stmts {
			p.printStmt(s)
		}
		p.indent--
		p.writeIndent()
		p.sb.WriteString("}\n")

	case *js_ast.SIf:
		p.sb.WriteString("if (")
		p.printExpr(d.Test)
		p.sb.WriteString(") ")
		p.printInlineStmt(d.Yes)
		if d.No != nil {
			p.writeIndent()
			p.sb.WriteString("else ")
			p.printInlineStmt(*d.No)
		}

	case *js_ast.SFor:
		p.sb.WriteString("for (")
		if d.Init != nil {
			p.printForClause(*d.Init)
		}
		p.sb.WriteString("; ")
		if d.Test != nil {
			p.printExpr(*d.Test)
		}
		p.sb.WriteString("; ")
		if d.Update != nil {
			p.printExpr(*d.Update)
		}
		p.sb.WriteString(") ")
		p.printInlineStmt(d.Body)

	case *js_ast.SForInOf:
		p.sb.WriteString("for (")
		if d.Decl != nil {
			p.sb.WriteString(kindKeyword(d.Decl.Kind))
			p.sb.WriteByte(' ')
			p.sb.WriteString(d.Decl.Decls[0].Ident.Name)
		} else if d.Target != nil {
			p.printExpr(*d.Target)
		}
		if d.IsOf {
			p.sb.WriteString(" of ")
		} else {
			p.sb.WriteString(" in ")
		}
		p.printExpr(d.Value)
		p.sb.WriteString(") ")
		p.printInlineStmt(d.Body)

	case *js_ast.SWhile:
		p.sb.WriteString("while (")
		p.printExpr(d.Test)
		p.sb.WriteString(") ")
		p.printInlineStmt(d.Body)

	case *js_ast.SDoWhile:
		p.sb.WriteString("do ")
		p.printInlineStmt(d.Body)
		p.writeIndent()
		p.sb.WriteString("while (")
		p.printExpr(d.Test)
		p.sb.WriteString(");\n")

	case *js_ast.SReturn:
		p.sb.WriteString("return")
		if d.Value != nil {
			p.sb.WriteByte(' ')
			p.printExpr(*d.Value)
		}
		p.sb.WriteString(";\n")

	case *js_ast.SThrow:
		p.sb.WriteString("throw ")
		p.printExpr(d.Value)
		p.sb.WriteString(";\n")

	case *js_ast.SBreak:
		p.sb.WriteString("break;\n")

	case *js_ast.SContinue:
		p.sb.WriteString("continue;\n")

	case *js_ast.SEmpty:
		p.sb.WriteString(";\n")

	case *js_ast.SExpr:
		p.printExpr(d.Value)
		p.sb.WriteString(";\n")

	case *js_ast.STry:
		p.sb.WriteString("try {\n")
		p.indent++
		for _, s := range d.Body {
			p.printStmt(s)
		}
		p.indent--
		p.writeIndent()
		p.sb.WriteString("}")
		if d.Catch != nil {
			p.sb.WriteString(" catch")
			if d.Catch.Param != nil {
				fmt.Fprintf(&p.sb, " (%s)", d.Catch.Param.Name)
			}
			p.sb.WriteString(" {\n")
			p.indent++
			for _, s := range d.Catch.Body {
				p.printStmt(s)
			}
			p.indent--
			p.writeIndent()
			p.sb.WriteString("}")
		}
		if d.Finally != nil {
			p.sb.WriteString(" finally {\n")
			p.indent++
			for _, s := range d.Finally {
				p.printStmt(s)
			}
			p.indent--
			p.writeIndent()
			p.sb.WriteString("}")
		}
		p.sb.WriteString("\n")

	case *js_ast.SSwitch:
		p.sb.WriteString("switch (")
		p.printExpr(d.Test)
		p.sb.WriteString(") {\n")
		p.indent++
		for _, c := range d.Cases {
			p.writeIndent()
			if c.Test != nil {
				p.sb.WriteString("case ")
				p.printExpr(*c.Test)
				p.sb.WriteString(":\n")
			} else {
				p.sb.WriteString("default:\n")
			}
			p.indent++
			for _, s := range c.Body {
				p.printStmt(s)
			}
			p.indent--
		}
		p.indent--
		p.writeIndent()
		p.sb.WriteString("}\n")

	case *js_ast.SImport:
		p.printImport(d)

	case *js_ast.SExportClause:
		p.printExportClause(d)

	case *js_ast.SExportAll:
		p.sb.WriteString("export * ")
		if d.Alias != "" {
			fmt.Fprintf(&p.sb, "as %s ", d.Alias)
		}
		fmt.Fprintf(&p.sb, "from %s;\n", quoteString(d.Source))

	case *js_ast.SExportDecl:
		p.sb.WriteString("export ")
		p.printStmtBody(d.Decl)

	case *js_ast.SExportDefault:
		p.sb.WriteString("export default ")
		switch {
		case d.FnDecl != nil:
			p.printFn("function", d.FnDecl)
			p.sb.WriteByte('\n')
		case d.ClassDecl != nil:
			p.printClass(d.ClassDecl)
			p.sb.WriteByte('\n')
		default:
			p.printExpr(*d.Expr)
			p.sb.WriteString(";\n")
		}

	default:
		p.sb.WriteString("/* unknown statement */\n")
	}
}

// printInlineStmt prints the single-statement body of an if/for/while/
// do-while header. A block body prints on the same line as the header
// (the normal `) {` style); any other body prints indented on its own
// line, since this printer doesn't track same-line single-statement
// bodies.
func (p *printer) printInlineStmt(stmt js_ast.Stmt) {
	if _, ok := stmt.Data.(*js_ast.SBlock); ok {
		saved := p.indent
		p.indent = 0
		p.printStmt(stmt)
		p.indent = saved
		return
	}
	p.sb.WriteString("\n")
	p.indent++
	p.printStmt(stmt)
	p.indent--
}

func (p *printer) printForClause(stmt js_ast.Stmt) {
	if vd, ok := stmt.Data.(*js_ast.SVarDecl); ok {
		p.sb.WriteString(kindKeyword(vd.Kind))
		p.sb.WriteByte(' ')
		for i, decl := range vd.Decls {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(decl.Ident.Name)
			if decl.Init != nil {
				p.sb.WriteString(" = ")
				p.printExpr(*decl.Init)
			}
		}
		return
	}
	if se, ok := stmt.Data.(*js_ast.SExpr); ok {
		p.printExpr(se.Value)
	}
}

func (p *printer) printImport(d *js_ast.SImport) {
	p.sb.WriteString("import ")
	wrote := false
	if d.Default != nil {
		p.sb.WriteString(d.Default.Name)
		wrote = true
	}
	if d.Namespace != nil {
		if wrote {
			p.sb.WriteString(", ")
		}
		fmt.Fprintf(&p.sb, "* as %s", d.Namespace.Name)
		wrote = true
	}
	if len(d.Named) > 0 {
		if wrote {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString("{ ")
		for i, spec := range d.Named {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			if spec.Imported == spec.Local.Name {
				p.sb.WriteString(spec.Local.Name)
			} else {
				fmt.Fprintf(&p.sb, "%s as %s", spec.Imported, spec.Local.Name)
			}
		}
		p.sb.WriteString(" }")
		wrote = true
	}
	if wrote {
		p.sb.WriteString(" from ")
	}
	fmt.Fprintf(&p.sb, "%s;\n", quoteString(d.Source))
}

func (p *printer) printExportClause(d *js_ast.SExportClause) {
	p.sb.WriteString("export { ")
	for i, spec := range d.Specifiers {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		if spec.Local == spec.Exported {
			p.sb.WriteString(spec.Local)
		} else {
			fmt.Fprintf(&p.sb, "%s as %s", spec.Local, spec.Exported)
		}
	}
	p.sb.WriteString(" }")
	if d.HasSource {
		fmt.Fprintf(&p.sb, " from %s", quoteString(d.Source))
	}
	p.sb.WriteString(";\n")
}

func (p *printer) printFn(keyword string, fn *js_ast.Fn) {
	if fn.IsAsync {
		p.sb.WriteString("async ")
	}
	p.sb.WriteString(keyword)
	if fn.IsGenerator {
		p.sb.WriteByte('*')
	}
	p.sb.WriteByte(' ')
	if fn.Name != nil {
		p.sb.WriteString(fn.Name.Name)
	}
	p.printParams(fn.Params)
	p.sb.WriteString(" {\n")
	p.indent++
	for _, s := range fn.Body {
		p.printStmt(s)
	}
	p.indent--
	p.writeIndent()
	p.sb.WriteString("}")
}

func (p *printer) printParams(params []js_ast.Param) {
	p.sb.WriteByte('(')
	for i, param := range params {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(param.Ident.Name)
		if param.Default != nil {
			p.sb.WriteString(" = ")
			p.printExpr(*param.Default)
		}
	}
	p.sb.WriteByte(')')
}

func (p *printer) printClass(class *js_ast.Class) {
	p.sb.WriteString("class")
	if class.Name != nil {
		p.sb.WriteByte(' ')
		p.sb.WriteString(class.Name.Name)
	}
	if class.ExtendsRef != nil {
		p.sb.WriteString(" extends ")
		p.printExpr(*class.ExtendsRef)
	}
	p.sb.WriteString(" {\n")
	p.indent++
	for _, m := range class.Members {
		p.writeIndent()
		if m.IsStatic {
			p.sb.WriteString("static ")
		}
		p.sb.WriteString(m.Key)
		p.printParams(m.Value.Params)
		p.sb.WriteString(" {\n")
		p.indent++
		for _, s := range m.Value.Body {
			p.printStmt(s)
		}
		p.indent--
		p.writeIndent()
		p.sb.WriteString("}\n")
	}
	p.indent--
	p.writeIndent()
	p.sb.WriteString("}")
}

// precedence-free expression printer: every compound expression is fully
// parenthesized around binary/conditional operators to stay unambiguous
// without needing an operator-precedence table.
func (p *printer) printExpr(e js_ast.Expr) {
	switch d := e.Data.(type) {
	case *js_ast.EIdentifier:
		p.sb.WriteString(d.Name)
	case *js_ast.ENumber:
		p.sb.WriteString(strconv.FormatFloat(d.Value, 'g', -1, 64))
	case *js_ast.EString:
		p.sb.WriteString(quoteString(d.Value))
	case *js_ast.ETemplate:
		p.sb.WriteByte('`')
		p.sb.WriteString(d.Value)
		p.sb.WriteByte('`')
	case *js_ast.EBoolean:
		if d.Value {
			p.sb.WriteString("true")
		} else {
			p.sb.WriteString("false")
		}
	case *js_ast.ENull:
		p.sb.WriteString("null")
	case *js_ast.EUndefined:
		p.sb.WriteString("undefined")
	case *js_ast.EThis:
		p.sb.WriteString("this")
	case *js_ast.ESuper:
		p.sb.WriteString("super")
	case *js_ast.EArray:
		p.sb.WriteByte('[')
		for i, item := range d.Items {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.printExpr(item)
		}
		p.sb.WriteByte(']')
	case *js_ast.EObject:
		p.sb.WriteString("{ ")
		for i, prop := range d.Properties {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			if prop.Key == "__proto__" {
				p.sb.WriteString("__proto__: ")
			} else {
				fmt.Fprintf(&p.sb, "%s: ", prop.Key)
			}
			p.printExpr(prop.Value)
		}
		p.sb.WriteString(" }")
	case *js_ast.EFunction:
		p.printFn("function", d.Fn)
	case *js_ast.EArrow:
		p.printParams(d.Fn.Params)
		p.sb.WriteString(" => ")
		if d.Fn.ArrowExprBody != nil {
			p.printExpr(*d.Fn.ArrowExprBody)
		} else {
			p.sb.WriteString("{\n")
			p.indent++
			for _, s := range d.Fn.Body {
				p.printStmt(s)
			}
			p.indent--
			p.writeIndent()
			p.sb.WriteString("}")
		}
	case *js_ast.EClass:
		p.printClass(d.Class)
	case *js_ast.ECall:
		if d.IsNew {
			p.sb.WriteString("new ")
		}
		p.printExpr(d.Target)
		p.sb.WriteByte('(')
		for i, arg := range d.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.printExpr(arg)
		}
		p.sb.WriteByte(')')
	case *js_ast.EDot:
		p.printExpr(d.Target)
		p.sb.WriteByte('.')
		p.sb.WriteString(d.Name)
	case *js_ast.EIndex:
		p.printExpr(d.Target)
		p.sb.WriteByte('[')
		p.printExpr(d.Index)
		p.sb.WriteByte(']')
	case *js_ast.EUnary:
		if d.Prefix {
			// The parser tags prefix plus/minus as "+unary"/"-unary"; keyword
			// operators need a space before their operand.
			op := strings.TrimSuffix(d.Op, "unary")
			p.sb.WriteString(op)
			if op == "typeof" || op == "void" || op == "delete" || op == "await" || op == "yield" {
				p.sb.WriteByte(' ')
			}
			p.printExpr(d.Value)
		} else {
			p.printExpr(d.Value)
			p.sb.WriteString(d.Op)
		}
	case *js_ast.EBinary:
		p.sb.WriteByte('(')
		p.printExpr(d.Left)
		fmt.Fprintf(&p.sb, " %s ", d.Op)
		p.printExpr(d.Right)
		p.sb.WriteByte(')')
	case *js_ast.EAssign:
		p.printExpr(d.Target)
		fmt.Fprintf(&p.sb, " %s ", d.Op)
		p.printExpr(d.Value)
	case *js_ast.EConditional:
		p.sb.WriteByte('(')
		p.printExpr(d.Test)
		p.sb.WriteString(" ? ")
		p.printExpr(d.Yes)
		p.sb.WriteString(" : ")
		p.printExpr(d.No)
		p.sb.WriteByte(')')
	case *js_ast.ESpread:
		p.sb.WriteString("...")
		p.printExpr(d.Value)
	case *js_ast.ESequence:
		for i, sub := range d.Exprs {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.printExpr(sub)
		}
	case *js_ast.EImportCall:
		p.sb.WriteString("import(")
		p.printExpr(d.Arg)
		p.sb.WriteByte(')')
	default:
		p.sb.WriteString("/* unknown expr */")
	}
}

func kindKeyword(kind js_ast.SymbolKind) string {
	switch kind {
	case js_ast.SymbolLet:
		return "let"
	case js_ast.SymbolConst:
		return "const"
	default:
		return "var"
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString("\\\"")
		case '\\':
			b.WriteString("\\\\")
		case '\n':
			b.WriteString("\\n")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
