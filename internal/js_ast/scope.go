package js_ast

import "github.com/esbundle/esbundle/internal/symtab"

// ScopeKind distinguishes function scopes (where `var` hoists to) from
// block/catch scopes, per §4.2's scope discipline and the original
// rolldown-shaped scope-kind enum this was supplemented from (see
// SPEC_FULL.md's "Supplemented features" section).
type ScopeKind uint8

const (
	ScopeFn ScopeKind = iota
	ScopeBlock
	ScopeCatch
)

// ScopeMember is one binding visible in a Scope.
type ScopeMember struct {
	Name string
	Ref  symtab.Mark
	Kind SymbolKind
}

// Scope is a lexical scope built during scanning. Scopes form a tree
// rooted at the module's top level; the parser keeps a stack of these
// while walking the AST and discards it once scanning finishes (only the
// resolved Marks on AST nodes are needed afterward).
type Scope struct {
	Kind     ScopeKind
	Parent   *Scope
	Members  map[string]ScopeMember
	Children []*Scope
}

func NewScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{Kind: kind, Parent: parent, Members: make(map[string]ScopeMember)}
}

// Declare introduces name into the scope appropriate for kind: var hoists
// to the nearest Fn scope, everything else (function declarations
// included) binds in s itself.
// Returns false if a duplicate non-var declaration exists in the same
// block, which the parser reports as a parse error (per the Supplemented
// Features section: this is a parse-time error here, not only a linker
// concern).
func (s *Scope) Declare(name string, ref symtab.Mark, kind SymbolKind) bool {
	target := s
	if kind == SymbolVar {
		for target.Kind != ScopeFn && target.Parent != nil {
			target = target.Parent
		}
	} else if existing, ok := s.Members[name]; ok && existing.Kind != SymbolVar {
		return false
	}
	target.Members[name] = ScopeMember{Name: name, Ref: ref, Kind: kind}
	return true
}

// Resolve finds the innermost scope on the chain from s upward that binds
// name, returning symtab.NoMark if nothing does (an unresolved/global
// reference, handled permissively per §4.2).
func (s *Scope) Resolve(name string) symtab.Mark {
	for cur := s; cur != nil; cur = cur.Parent {
		if m, ok := cur.Members[name]; ok {
			return m.Ref
		}
	}
	return symtab.NoMark
}
