package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/vtmaltego/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node type below each label and keeps long
	// identifiers (hashes, URL IDs) unabbreviated.
	Detailed bool
}

// maxLabel is the identifier length above which labels are abbreviated.
const maxLabel = 24

// relationshipType is the node type VirusTotal uses for relationship nodes
// when it does list them.
const relationshipType = "relationship"

// fill colours per exported node type.
var fills = map[string]string{
	graph.TypeFile:      "#fde2e4",
	graph.TypeIPAddress: "#e2ece9",
	graph.TypeDomain:    "#dfe7fd",
	graph.TypeURL:       "#fff1e6",
}

// ToDOT converts a graph to Graphviz DOT format. The result can be rendered
// with [RenderSVG].
//
// Link endpoints missing from the node list are emitted as relationship
// nodes so every edge has both ends declared.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10, fontcolor=\"#555555\"];\n")
	buf.WriteString("\n")

	declared := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if declared[n.EntityID] {
			continue
		}
		declared[n.EntityID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", n.EntityID, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}
	for _, l := range g.Links {
		for _, id := range []string{l.Source, l.Target} {
			if declared[id] {
				continue
			}
			declared[id] = true
			n := graph.Node{EntityID: id, Type: relationshipType}
			fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
		}
	}

	buf.WriteString("\n")
	for _, l := range g.Links {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", l.Source, l.Target, l.ConnectionType)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return abbreviate(n.EntityID)
	}
	return n.EntityID + "\n" + n.Type
}

func fmtAttrs(n graph.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if n.Type == relationshipType {
		return append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	if fill, ok := fills[n.Type]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	return attrs
}

func abbreviate(id string) string {
	if len(id) <= maxLabel {
		return id
	}
	return id[:maxLabel-3] + "..."
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg tag with a plain
// viewBox so browsers scale the preview.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
