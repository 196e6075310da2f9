// Package logger is the diagnostics subsystem shared by every later stage,
// styled after clang's error format: a message with a Location carries the
// offending line's text and a byte-accurate column so a CLI can point
// straight at the problem; messages without one (resolution and link
// errors, for instance) carry only their text.
package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/esbundle/esbundle/internal/ast"
)

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Note
)

func (k MsgKind) String() string {
	switch k {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		panic("unreachable")
	}
}

type MsgLocation struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, bytes
	Length   int
	LineText string
}

type MsgData struct {
	Text     string
	Location *MsgLocation
}

type Msg struct {
	Kind  MsgKind
	Data  MsgData
	Notes []MsgData
}

// Log accumulates messages as the build proceeds. A single Log is shared
// across every worker goroutine in the graph builder, so AddMsg must be
// safe to call concurrently; the implementation returned by NewDeferredLog
// guards its slice with a mutex.
type Log struct {
	AddMsg    func(Msg)
	HasErrors func() bool
	Done      func() []Msg
}

// Source is the minimal slice of a loaded file the logger needs in order
// to turn a byte Range into a line/column/line-text location.
type Source struct {
	AbsPath string
	Contents string
}

func (s *Source) LocationForRange(r ast.Range) *MsgLocation {
	lineStart := 0
	line := 1
	for i := 0; i < int(r.Loc.Start) && i < len(s.Contents); i++ {
		if s.Contents[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := len(s.Contents)
	if idx := strings.IndexByte(s.Contents[lineStart:], '\n'); idx != -1 {
		lineEnd = lineStart + idx
	}
	col := int(r.Loc.Start) - lineStart
	if col < 0 {
		col = 0
	}
	return &MsgLocation{
		File:     s.AbsPath,
		Line:     line,
		Column:   col,
		Length:   int(r.Len),
		LineText: s.Contents[lineStart:lineEnd],
	}
}

func (s *Source) RangeOfString(loc ast.Loc) ast.Range {
	return ast.Range{Loc: loc, Len: 0}
}

type sortableMsgs []Msg

func (a sortableMsgs) Len() int      { return len(a) }
func (a sortableMsgs) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a sortableMsgs) Less(i, j int) bool {
	li, lj := a[i].Data.Location, a[j].Data.Location
	if li == nil || lj == nil {
		return lj != nil
	}
	if li.File != lj.File {
		return li.File < lj.File
	}
	return li.Line < lj.Line
}

// NewDeferredLog returns a Log that buffers messages in memory until Done
// is called, at which point they're sorted by file/line for stable,
// deterministic output (§8's "deterministic order" property applies to
// diagnostics too).
func NewDeferredLog() Log {
	var mu sync.Mutex
	var msgs []Msg
	return Log{
		AddMsg: func(m Msg) {
			mu.Lock()
			defer mu.Unlock()
			msgs = append(msgs, m)
		},
		HasErrors: func() bool {
			mu.Lock()
			defer mu.Unlock()
			for _, m := range msgs {
				if m.Kind == Error {
					return true
				}
			}
			return false
		},
		Done: func() []Msg {
			mu.Lock()
			defer mu.Unlock()
			sorted := make([]Msg, len(msgs))
			copy(sorted, msgs)
			sort.Stable(sortableMsgs(sorted))
			return sorted
		},
	}
}

func MsgString(m Msg) string {
	var b strings.Builder
	if loc := m.Data.Location; loc != nil {
		fmt.Fprintf(&b, "%s:%d:%d: ", loc.File, loc.Line, loc.Column)
	}
	fmt.Fprintf(&b, "%s: %s", m.Kind, m.Data.Text)
	for _, n := range m.Notes {
		b.WriteByte('\n')
		if n.Location != nil {
			fmt.Fprintf(&b, "  %s:%d:%d: note: %s", n.Location.File, n.Location.Line, n.Location.Column, n.Text)
		} else {
			fmt.Fprintf(&b, "  note: %s", n.Text)
		}
	}
	return b.String()
}

// SupportsColor reports whether stderr is a terminal capable of ANSI
// escapes, checked before deciding whether to colorize error output.
func SupportsColor() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Colors holds the small set of ANSI escapes the CLI summary uses, empty
// when SupportsColor is false (or NO_COLOR is set).
type Colors struct {
	Bold string
	Red  string
	Reset string
}

func TerminalColors() Colors {
	if !SupportsColor() {
		return Colors{}
	}
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "NO_COLOR=") {
			return Colors{}
		}
	}
	return Colors{Bold: "\x1b[1m", Red: "\x1b[31m", Reset: "\x1b[0m"}
}

// Summary formats the trailing "N module(s), M error(s), K warning(s)"
// footer printed after every build; a part whose count is zero is left
// out. moduleCount is 0 for a build that failed before the module graph
// existed, in which case it's omitted.
func Summary(msgs []Msg, moduleCount int) string {
	errs, warns := 0, 0
	for _, m := range msgs {
		switch m.Kind {
		case Error:
			errs++
		case Warning:
			warns++
		}
	}

	var counts string
	switch {
	case errs == 0 && warns == 0:
		counts = ""
	case errs == 0:
		counts = fmt.Sprintf("%d warning(s)", warns)
	case warns == 0:
		counts = fmt.Sprintf("%d error(s)", errs)
	default:
		counts = fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)
	}

	if moduleCount == 0 {
		return counts
	}
	modules := fmt.Sprintf("%d module(s)", moduleCount)
	if counts == "" {
		return modules
	}
	return modules + ", " + counts
}
