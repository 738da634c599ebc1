package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/vtmaltego/pkg/graph"
)

func testGraph() *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Node{
			{EntityID: "www.hooli.com", Type: "domain"},
			{EntityID: "8.8.8.8", Type: "ip_address"},
		},
		Links: []graph.Link{
			{Source: "www.hooli.com", Target: "relationships_resolutions_wwwhoolicom", ConnectionType: "resolutions"},
			{Source: "relationships_resolutions_wwwhoolicom", Target: "8.8.8.8", ConnectionType: "resolutions"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"www.hooli.com" [label="www.hooli.com", fillcolor="#dfe7fd"];`,
		`"8.8.8.8" [label="8.8.8.8", fillcolor="#e2ece9"];`,
		`"relationships_resolutions_wwwhoolicom" [label="relationships_resolut...", style="rounded,filled,dashed"`,
		`"www.hooli.com" -> "relationships_resolutions_wwwhoolicom" [label="resolutions"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, `"relationships_resolutions_wwwhoolicom" [`); n != 1 {
		t.Errorf("relationship node declared %d times, want 1", n)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testGraph(), Options{Detailed: true})
	if !strings.Contains(dot, `label="www.hooli.com\ndomain"`) {
		t.Errorf("detailed label missing type:\n%s", dot)
	}
	if !strings.Contains(dot, `label="relationships_resolutions_wwwhoolicom\nrelationship"`) {
		t.Errorf("detailed label should not abbreviate:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(&graph.Graph{}, Options{})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT() = %q", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %q, want %q", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without viewBox changed input: %q", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testGraph(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "www.hooli.com") {
		t.Errorf("RenderSVG() output is not an SVG of the graph:\n%.200s", svg)
	}
}

func TestRenderSVGInvalid(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG() should fail on invalid DOT")
	}
}
