// Package js_ast defines the AST node types produced by js_parser and
// consumed by every downstream stage (linker, tree-shaker, renamer,
// export-folder, printer). Every identifier occurrence — declaration or
// use — carries a symtab.Mark as its per-identifier identity.
package js_ast

import (
	"github.com/esbundle/esbundle/internal/ast"
	"github.com/esbundle/esbundle/internal/symtab"
)

// SymbolKind records how a name was introduced, which drives hoisting
// (var hoists to the nearest Fn scope) and export-folding
// (default/namespace synthesis needs to know if a name is a class vs var).
type SymbolKind uint8

const (
	SymbolVar SymbolKind = iota
	SymbolLet
	SymbolConst
	SymbolFunction
	SymbolClass
	SymbolImport
	SymbolParam
	SymbolNamespace
)

// Ident is an identifier occurrence: Ref is symtab.NoMark for a use that
// never resolved to any lexical binding (a global reference).
type Ident struct {
	Name string
	Ref  symtab.Mark
	Loc  ast.Loc
}

// ---- Expressions ----

type Expr struct {
	Loc  ast.Loc
	Data E
}

type E interface{ isExpr() }

type EIdentifier struct{ Ref symtab.Mark; Name string }
type ENumber struct{ Value float64 }
type EString struct{ Value string }
type ETemplate struct{ Value string }
type EBoolean struct{ Value bool }
type ENull struct{}
type EUndefined struct{}
type EThis struct{}
type ESuper struct{}
type EArray struct{ Items []Expr }
type EObjectProperty struct {
	Key       string
	Value     Expr
	Computed  bool
	WasShorthand bool
}
type EObject struct{ Properties []EObjectProperty }
type EFunction struct{ Fn *Fn }
type EArrow struct{ Fn *Fn }
type EClass struct{ Class *Class }
type ECall struct {
	Target Expr
	Args   []Expr
	IsNew  bool
}
type EDot struct {
	Target Expr
	Name   string
}
type EIndex struct {
	Target Expr
	Index  Expr
}
type EUnary struct {
	Op     string
	Value  Expr
	Prefix bool
}
type EBinary struct {
	Op    string
	Left  Expr
	Right Expr
}
type EAssign struct {
	Op     string
	Target Expr
	Value  Expr
}
type EConditional struct {
	Test, Yes, No Expr
}
type ESpread struct{ Value Expr }
type ESequence struct{ Exprs []Expr }

// EImportCall models a dynamic `import('s')` expression. Source is set
// only when the argument was a string literal, per §4.2's dynamic-import
// handling; otherwise it's recorded as present-but-unanalyzable.
type EImportCall struct {
	Source   string
	HasSource bool
	Arg      Expr
}

func (*EIdentifier) isExpr()  {}
func (*ENumber) isExpr()      {}
func (*EString) isExpr()      {}
func (*ETemplate) isExpr()    {}
func (*EBoolean) isExpr()     {}
func (*ENull) isExpr()        {}
func (*EUndefined) isExpr()   {}
func (*EThis) isExpr()        {}
func (*ESuper) isExpr()       {}
func (*EArray) isExpr()       {}
func (*EObject) isExpr()      {}
func (*EFunction) isExpr()    {}
func (*EArrow) isExpr()       {}
func (*EClass) isExpr()       {}
func (*ECall) isExpr()        {}
func (*EDot) isExpr()         {}
func (*EIndex) isExpr()       {}
func (*EUnary) isExpr()       {}
func (*EBinary) isExpr()      {}
func (*EAssign) isExpr()      {}
func (*EConditional) isExpr() {}
func (*ESpread) isExpr()      {}
func (*ESequence) isExpr()    {}
func (*EImportCall) isExpr()  {}

// ---- Functions & classes ----

type Param struct {
	Ident   Ident
	Default *Expr
}

type Fn struct {
	Name   *Ident // nil for anonymous function/arrow expressions
	Params []Param
	Body   []Stmt
	IsArrow bool
	ArrowExprBody *Expr // non-nil when an arrow has a concise (expression) body
	IsAsync bool
	IsGenerator bool
}

type ClassMember struct {
	Key      string
	Value    *Fn
	IsStatic bool
}

type Class struct {
	Name       *Ident
	ExtendsRef *Expr
	Members    []ClassMember
}

// ---- Statements ----

type Stmt struct {
	Loc  ast.Loc
	Data S
}

type S interface{ isStmt() }

type Declarator struct {
	Ident Ident
	Init  *Expr
}

type SVarDecl struct {
	Kind  SymbolKind // SymbolVar, SymbolLet, or SymbolConst
	Decls []Declarator
}

type SFunctionDecl struct {
	Fn *Fn
}

type SClassDecl struct {
	Class *Class
}

type SBlock struct{ Stmts []Stmt }

type SIf struct {
	Test Expr
	Yes  Stmt
	No   *Stmt
}

type SFor struct {
	Init   *Stmt
	Test   *Expr
	Update *Expr
	Body   Stmt
}

type SForInOf struct {
	IsOf   bool
	Decl   *SVarDecl // nil when the loop variable is an existing binding
	Target *Expr     // non-nil when the loop variable is an existing binding
	Value  Expr
	Body   Stmt
}

type SWhile struct {
	Test Expr
	Body Stmt
}

type SDoWhile struct {
	Body Stmt
	Test Expr
}

type SReturn struct{ Value *Expr }
type SThrow struct{ Value Expr }
type SBreak struct{}
type SContinue struct{}
type SEmpty struct{}
type SExpr struct{ Value Expr }

type CatchClause struct {
	Param *Ident
	Body  []Stmt
}

type STry struct {
	Body    []Stmt
	Catch   *CatchClause
	Finally []Stmt
}

type SwitchCase struct {
	Test *Expr // nil for default
	Body []Stmt
}

type SSwitch struct {
	Test  Expr
	Cases []SwitchCase
}

// ---- Import / export declarations ----

type ImportSpecifier struct {
	Imported string // "default" | "*" | original exported name
	Local    Ident
}

type SImport struct {
	Default   *Ident
	Namespace *Ident
	Named     []ImportSpecifier
	Source    string
}

type ExportSpecifier struct {
	Local    string
	Exported string
}

// SExportClause covers `export {a, b as c}` and, when Source != "",
// `export {a, b as c} from 's'`.
type SExportClause struct {
	Specifiers []ExportSpecifier
	Source     string
	HasSource  bool
}

// SExportAll covers `export * from 's'` and `export * as n from 's'`.
type SExportAll struct {
	Alias  string // "" for the plain `export * from` form
	Source string
}

// SExportDecl wraps `export <var/function/class decl>`.
type SExportDecl struct {
	Decl Stmt
}

// SExportDefault covers both `export default <named decl>` and
// `export default <expr>`.
type SExportDefault struct {
	FnDecl    *Fn    // set when the value is a function declaration
	ClassDecl *Class // set when the value is a class declaration
	Expr      *Expr  // set when the value is a plain expression
}

func (*SVarDecl) isStmt()       {}
func (*SFunctionDecl) isStmt()  {}
func (*SClassDecl) isStmt()     {}
func (*SBlock) isStmt()         {}
func (*SIf) isStmt()            {}
func (*SFor) isStmt()           {}
func (*SForInOf) isStmt()       {}
func (*SWhile) isStmt()         {}
func (*SDoWhile) isStmt()       {}
func (*SReturn) isStmt()        {}
func (*SThrow) isStmt()         {}
func (*SBreak) isStmt()         {}
func (*SContinue) isStmt()      {}
func (*SEmpty) isStmt()         {}
func (*SExpr) isStmt()          {}
func (*STry) isStmt()           {}
func (*SSwitch) isStmt()        {}
func (*SImport) isStmt()        {}
func (*SExportClause) isStmt()  {}
func (*SExportAll) isStmt()     {}
func (*SExportDecl) isStmt()    {}
func (*SExportDefault) isStmt() {}
