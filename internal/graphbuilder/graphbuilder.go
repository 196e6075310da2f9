// Package graphbuilder implements component C4: a fixed-size worker pool
// that turns a set of entry ResolvedIds into a fully populated
// graph.ModuleGraph, per §4.4 and the concurrency model in §5.
//
// The worker loop fetches a job, parses, scans, fast-path pre-scans
// dependencies, and emits both dependency edges and the finished module,
// built with Go's goroutines/channels/sync.WaitGroup: parallelizing the
// parse across entry points and imports with a result channel drained on
// the main goroutine.
package graphbuilder

import (
	"sync"

	"github.com/esbundle/esbundle/internal/config"
	"github.com/esbundle/esbundle/internal/graph"
	"github.com/esbundle/esbundle/internal/iofs"
	"github.com/esbundle/esbundle/internal/js_parser"
	"github.com/esbundle/esbundle/internal/logger"
	"github.com/esbundle/esbundle/internal/resolver"
	"github.com/esbundle/esbundle/internal/symtab"
)

// msgKind discriminates the two message shapes workers send to the main
// goroutine, per §4.4 steps 4 and 7.
type msgKind uint8

const (
	msgNewModule msgKind = iota
	msgDependencyReference
)

type message struct {
	kind msgKind

	module *graph.Module // msgNewModule

	from string // msgDependencyReference
	edge graph.Edge
}

// queue is the shared work queue plus the idle-counter termination
// protocol from §5: a worker parks on cond while idle and the pool is
// finished once idle == pool size with the queue empty.
type queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []config.ResolvedId
	seen    map[string]bool
	idle    int
	pool    int
	stopped bool
}

func newQueue(pool int) *queue {
	q := &queue{seen: make(map[string]bool), pool: pool}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *queue) push(id config.ResolvedId) {
	q.mu.Lock()
	q.items = append(q.items, id)
	q.mu.Unlock()
	q.cond.Broadcast()
}

// claim implements §4.4 step 1 and §5's termination check. It blocks a
// worker on cond while the queue is empty and other workers might still
// produce more work; it returns ok=false once every worker is idle and
// the queue is empty, signalling the worker to exit.
func (q *queue) claim() (config.ResolvedId, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		for len(q.items) > 0 {
			id := q.items[len(q.items)-1]
			q.items = q.items[:len(q.items)-1]
			if q.seen[id.ID] {
				continue
			}
			q.seen[id.ID] = true
			return id, true
		}
		if q.idle == q.pool-1 {
			q.stopped = true
			q.cond.Broadcast()
			return config.ResolvedId{}, false
		}
		if q.stopped {
			return config.ResolvedId{}, false
		}
		q.idle++
		q.cond.Wait()
		q.idle--
	}
}

// Builder owns the shared state a worker pool needs: the job queue, the
// processed-id set, the output channel, and the idle counter, per §5's
// "Shared resources" list.
type Builder struct {
	fs       iofs.FS
	resolver *resolver.Resolver
	symbols  *symtab.SymbolTable
	log      *logger.Log

	q    *queue
	msgs chan message
	pool int
}

func New(fs iofs.FS, r *resolver.Resolver, symbols *symtab.SymbolTable, log *logger.Log, poolSize int) *Builder {
	if poolSize < 1 {
		poolSize = 1
	}
	return &Builder{
		fs:       fs,
		resolver: r,
		symbols:  symbols,
		log:      log,
		q:        newQueue(poolSize),
		msgs:     make(chan message, 64),
		pool:     poolSize,
	}
}

// Build runs the worker pool to completion and returns the populated
// graph. entries are the already-resolved entry-point ids.
func (b *Builder) Build(entries []config.ResolvedId) *graph.ModuleGraph {
	g := graph.New()
	for _, e := range entries {
		b.q.push(e)
		g.Entries = append(g.Entries, e.ID)
	}

	var wg sync.WaitGroup
	wg.Add(b.pool)
	for i := 0; i < b.pool; i++ {
		go func() {
			defer wg.Done()
			b.workerLoop()
		}()
	}

	go func() {
		wg.Wait()
		close(b.msgs)
	}()

	for msg := range b.msgs {
		switch msg.kind {
		case msgNewModule:
			g.AddModule(msg.module)
		case msgDependencyReference:
			g.AddEdge(msg.from, msg.edge)
		}
	}

	for _, id := range g.Entries {
		if m, ok := g.Modules[id]; ok {
			m.IsEntry = true
		}
	}

	return g
}

func (b *Builder) workerLoop() {
	for {
		id, ok := b.q.claim()
		if !ok {
			return
		}
		b.process(id)
	}
}

// process implements §4.4 steps 2-7 for one claimed ResolvedId.
func (b *Builder) process(id config.ResolvedId) {
	if id.External {
		return
	}

	source, err := b.fs.ReadFile(id.ID)
	if err != nil {
		b.log.AddMsg(logger.Msg{Kind: logger.Error, Data: logger.MsgData{
			Text: "could not read " + id.ID + ": " + err.Error(),
		}})
		return
	}

	p := js_parser.NewParser(id.ID, source, *b.log)
	stmts, ok := p.ParseModule()
	if !ok {
		return
	}

	scan := js_parser.Scan(id.ID, stmts, b.symbols, *b.log)

	// Fast-path pre-scan (§4.4 step 3): push every top-level dependency's
	// resolved id onto the queue before this worker does anything else,
	// enabling depth-first work stealing by idle peers.
	b.preScanDependencies(id.ID, scan)

	m := graph.NewModule(id.ID)
	m.Stmts = scan.Stmts
	m.LocalExports = scan.LocalExports
	m.ReExports = scan.ReExports
	m.ReExportAllSources = scan.ReExportAllSources
	m.SuggestedNames = scan.SuggestedNames
	m.ModuleScope = scan.ModuleScope

	m.DeclaredOrder = scan.DeclaredSymbols
	m.ImportedOrder = scan.ImportedSymbols
	for _, d := range scan.DeclaredSymbols {
		m.DeclaredSymbols[d.Name] = d.Mark
	}
	for _, d := range scan.ImportedSymbols {
		m.ImportedSymbols[d.Name] = d.Mark
	}

	m.Namespace.Mark = b.symbols.NewMark()

	b.emitDependencyEdges(m, scan)

	b.msgs <- message{kind: msgNewModule, module: m}
}

func (b *Builder) preScanDependencies(fromID string, scan js_parser.ScanResult) {
	for _, imp := range scan.Imports {
		b.resolveAndQueue(imp.Source, fromID)
	}
	for _, re := range scan.ReExportDescs {
		b.resolveAndQueue(re.Source, fromID)
	}
	for _, all := range scan.ReExportAllSources {
		b.resolveAndQueue(all.Source, fromID)
	}
}

func (b *Builder) resolveAndQueue(source, importer string) {
	id, err := b.resolver.Resolve(source, importer)
	if err != nil {
		b.log.AddMsg(logger.Msg{Kind: logger.Error, Data: logger.MsgData{
			Text: err.Error(),
		}})
		return
	}
	b.q.push(id)
}

// emitDependencyEdges implements §4.4 step 4: one DependencyReference
// message per import/re-export/export-all descriptor.
func (b *Builder) emitDependencyEdges(m *graph.Module, scan js_parser.ScanResult) {
	fromID := m.ID
	for _, imp := range scan.Imports {
		id, err := b.resolver.Resolve(imp.Source, fromID)
		if err != nil {
			continue
		}
		m.ResolvedIDs[imp.Source] = id
		b.msgs <- message{kind: msgDependencyReference, from: fromID, edge: graph.Edge{
			Kind: graph.EdgeImport, To: id.ID, Source: imp.Source, Specifiers: imp.Specifiers, Order: imp.Order,
		}}
	}
	for _, re := range scan.ReExportDescs {
		id, err := b.resolver.Resolve(re.Source, fromID)
		if err != nil {
			continue
		}
		m.ResolvedIDs[re.Source] = id
		b.msgs <- message{kind: msgDependencyReference, from: fromID, edge: graph.Edge{
			Kind: graph.EdgeReExport, To: id.ID, Source: re.Source, Specifiers: re.Specifiers, Order: re.Order,
		}}
	}
	for _, all := range scan.ReExportAllSources {
		id, err := b.resolver.Resolve(all.Source, fromID)
		if err != nil {
			continue
		}
		m.ResolvedIDs[all.Source] = id
		b.msgs <- message{kind: msgDependencyReference, from: fromID, edge: graph.Edge{
			Kind: graph.EdgeReExportAll, To: id.ID, Source: all.Source, Order: all.Order,
		}}
	}
}
