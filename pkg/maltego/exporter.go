package maltego

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vtmaltego/pkg/graph"
	"github.com/matzehuels/vtmaltego/pkg/observability"
)

// Stats describes what an [Exporter] has written so far.
type Stats struct {
	Entities     map[string]int // entity rows per Maltego kind
	Links        int            // link rows
	SkippedNodes int            // nodes with no Maltego mapping
	SkippedLinks int            // two-hop paths whose final target has no entity
}

// Rows returns the total number of data rows (entities plus links).
func (s Stats) Rows() int {
	n := s.Links
	for _, c := range s.Entities {
		n += c
	}
	return n
}

// Exporter holds the state of one export: the ID generator, the value index
// and the resolver used for URL nodes. Use a new Exporter per graph; IDs and
// index entries from an earlier export would otherwise leak into links.
type Exporter struct {
	urls   URLResolver
	ids    *IDGenerator
	index  *Index
	logger *log.Logger
	stats  Stats
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithIDSource draws IDs from src instead of a randomly seeded source.
func WithIDSource(src rand.Source) Option {
	return func(e *Exporter) {
		e.ids = NewIDGenerator(src)
	}
}

// WithLogger sets the logger for per-node debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExporter returns an exporter that resolves URL nodes through urls.
// urls may be nil when the graph is known to contain no URL nodes.
func NewExporter(urls URLResolver, opts ...Option) *Exporter {
	e := &Exporter{
		urls:   urls,
		index:  NewIndex(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		stats:  Stats{Entities: make(map[string]int)},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ids == nil {
		e.ids = NewIDGenerator(nil)
	}
	return e
}

// Index returns the value index built so far.
func (e *Exporter) Index() *Index { return e.index }

// Stats returns counters for everything rendered so far.
func (e *Exporter) Stats() Stats { return e.stats }

// RenderNode renders the CSV block for one node. Nodes of unknown type
// render as "" and are not registered.
//
// The node's value is registered under a fresh ID before its block is
// built, so a URL node whose resolution fails still holds an ID.
func (e *Exporter) RenderNode(ctx context.Context, n graph.Node) (string, error) {
	ent, ok := EntityFor(n)
	if !ok {
		e.stats.SkippedNodes++
		e.logger.Debug("skipping node", "type", n.Type, "entity", n.EntityID)
		observability.Export().OnNodeSkipped(ctx, n.EntityID, n.Type)
		return "", nil
	}

	id := e.ids.Next()
	e.index.Register(ent.Value(), id)

	block, err := ent.render(ctx, id, e.urls)
	if err != nil {
		return "", err
	}
	e.stats.Entities[ent.Kind()]++
	e.logger.Debug("rendered node", "kind", ent.Kind(), "entity", n.EntityID, "id", id)
	return block, nil
}

// RenderLinks renders the link block for rel. For every relation key whose
// source is a registered entity, each relationship node it points to is
// followed one more hop under the same connection type, and one row is
// written per final target.
//
// Keys whose source is not registered (relationship nodes, skipped node
// types) contribute nothing, as do relationship nodes with no outgoing
// links of the same type and final targets that were never registered.
func (e *Exporter) RenderLinks(rel *graph.Relations) string {
	return e.renderLinks(context.Background(), rel)
}

func (e *Exporter) renderLinks(ctx context.Context, rel *graph.Relations) string {
	var b strings.Builder
	b.WriteString(LinkHeader)

	for _, key := range rel.Keys() {
		sourceID, ok := e.index.Lookup(key.Source)
		if !ok {
			continue
		}
		relationships, _ := rel.Targets(key.Source, key.Type)
		for _, relationship := range relationships {
			targets, _ := rel.Targets(relationship, key.Type)
			for _, target := range targets {
				targetID, ok := e.index.Lookup(target)
				if !ok {
					e.stats.SkippedLinks++
					e.logger.Debug("skipping link", "source", key.Source, "target", target, "type", key.Type)
					observability.Export().OnLinkSkipped(ctx, key.Source, target, key.Type)
					continue
				}
				b.WriteString(LinkRow(e.ids.Next(), sourceID, targetID, key.Type))
				e.stats.Links++
			}
		}
	}
	return b.String()
}

// Export writes the Maltego CSV for g to w: every node's block followed by
// a blank line, in node order, then the link block.
//
// Output is written as it is produced. On error w may hold a partial file.
func (e *Exporter) Export(ctx context.Context, g *graph.Graph, w io.Writer) (err error) {
	start := time.Now()
	hooks := observability.Export()
	hooks.OnExportStart(ctx, len(g.Nodes), len(g.Links))
	defer func() {
		hooks.OnExportComplete(ctx, e.stats.Rows(), time.Since(start), err)
	}()

	for _, n := range g.Nodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		block, err := e.RenderNode(ctx, n)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, block+"\n"); err != nil {
			return fmt.Errorf("write %s block: %w", n, err)
		}
	}

	if _, err := io.WriteString(w, e.renderLinks(ctx, graph.GroupLinks(g.Links))); err != nil {
		return fmt.Errorf("write links: %w", err)
	}
	return nil
}
