package resolver

import (
	"testing"

	"github.com/esbundle/esbundle/internal/config"
	"github.com/esbundle/esbundle/internal/iofs"
)

func TestResolveRelative(t *testing.T) {
	fs := iofs.NewMem()
	fs.Files["/proj/src/entry.js"] = ""
	fs.Files["/proj/src/util.js"] = ""
	r := New(fs, "/proj", nil, nil)

	id, err := r.Resolve("./util", "/proj/src/entry.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.ID != "/proj/src/util.js" || id.External {
		t.Fatalf("got %+v", id)
	}
}

func TestResolveDirectoryIndex(t *testing.T) {
	fs := iofs.NewMem()
	fs.Dirs["/proj/src/lib"] = true
	fs.Files["/proj/src/lib/index.js"] = ""
	r := New(fs, "/proj", nil, nil)

	id, err := r.Resolve("./lib", "/proj/src/entry.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.ID != "/proj/src/lib/index.js" {
		t.Fatalf("got %+v", id)
	}
}

func TestResolveHostModuleExternal(t *testing.T) {
	fs := iofs.NewMem()
	r := New(fs, "/proj", nil, nil)

	id, err := r.Resolve("node:fs", "/proj/src/entry.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !id.External || id.ID != "fs" {
		t.Fatalf("got %+v", id)
	}
}

func TestResolveNodeModules(t *testing.T) {
	fs := iofs.NewMem()
	fs.Files["/proj/node_modules/left-pad/index.js"] = ""
	r := New(fs, "/proj", nil, func(source string) bool { return source == "left-pad" })

	id, err := r.Resolve("left-pad", "/proj/src/deep/entry.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.ID != "/proj/node_modules/left-pad/index.js" || !id.External {
		t.Fatalf("got %+v", id)
	}
}

func TestResolveUnresolvable(t *testing.T) {
	fs := iofs.NewMem()
	r := New(fs, "/proj", nil, nil)

	if _, err := r.Resolve("./missing", "/proj/src/entry.js"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestResolvePluginFirstWins(t *testing.T) {
	fs := iofs.NewMem()
	plugins := []config.Plugin{
		{Name: "virtual", ResolveID: func(source, importer string, hasImporter bool) (config.ResolvedId, bool) {
			if source == "virtual:thing" {
				return config.ResolvedId{ID: "\x00virtual:thing"}, true
			}
			return config.ResolvedId{}, false
		}},
	}
	r := New(fs, "/proj", plugins, nil)

	id, err := r.Resolve("virtual:thing", "/proj/src/entry.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.ID != "\x00virtual:thing" {
		t.Fatalf("got %+v", id)
	}
}
