package graphbuilder

import (
	"testing"

	"github.com/esbundle/esbundle/internal/config"
	"github.com/esbundle/esbundle/internal/iofs"
	"github.com/esbundle/esbundle/internal/logger"
	"github.com/esbundle/esbundle/internal/resolver"
	"github.com/esbundle/esbundle/internal/symtab"
)

func TestBuildCrawlsDependencies(t *testing.T) {
	fs := iofs.NewMem()
	fs.Files["/proj/main.js"] = `import {x} from './a'; console.log(x)`
	fs.Files["/proj/a.js"] = `export const x = 1`

	symbols := symtab.New(0)
	log := logger.NewDeferredLog()
	r := resolver.New(fs, "/proj", nil, nil)
	b := New(fs, r, symbols, &log, 2)

	entry, err := r.Resolve("./main.js", "")
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}

	g := b.Build([]config.ResolvedId{entry})

	if len(g.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d: %v", len(g.Modules), g.Modules)
	}
	if !g.Modules["/proj/main.js"].IsEntry {
		t.Fatalf("expected main.js to be marked as an entry")
	}
	if g.Modules["/proj/a.js"].IsEntry {
		t.Fatalf("a.js should not be marked as an entry")
	}
	if len(g.Edges["/proj/main.js"]) != 1 || g.Edges["/proj/main.js"][0].To != "/proj/a.js" {
		t.Fatalf("expected one import edge from main.js to a.js, got %+v", g.Edges["/proj/main.js"])
	}
}

func TestBuildHandlesDiamondDependency(t *testing.T) {
	fs := iofs.NewMem()
	fs.Files["/proj/main.js"] = `import {x} from './a'; import {y} from './b'; console.log(x, y)`
	fs.Files["/proj/a.js"] = `import {z} from './c'; export const x = z`
	fs.Files["/proj/b.js"] = `import {z} from './c'; export const y = z`
	fs.Files["/proj/c.js"] = `export const z = 1`

	symbols := symtab.New(0)
	log := logger.NewDeferredLog()
	r := resolver.New(fs, "/proj", nil, nil)
	b := New(fs, r, symbols, &log, 4)

	entry, _ := r.Resolve("./main.js", "")
	g := b.Build([]config.ResolvedId{entry})

	if len(g.Modules) != 4 {
		t.Fatalf("expected 4 distinct modules (c.js visited once), got %d", len(g.Modules))
	}
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Done())
	}
}

func TestBuildReportsUnresolvedImport(t *testing.T) {
	fs := iofs.NewMem()
	fs.Files["/proj/main.js"] = `import {x} from './missing'`

	symbols := symtab.New(0)
	log := logger.NewDeferredLog()
	r := resolver.New(fs, "/proj", nil, nil)
	b := New(fs, r, symbols, &log, 2)

	entry, _ := r.Resolve("./main.js", "")
	b.Build([]config.ResolvedId{entry})

	if !log.HasErrors() {
		t.Fatalf("expected an unresolved-import error")
	}
}
