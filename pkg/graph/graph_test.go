package graph

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/vtmaltego/pkg/errors"
)

const hooliResponse = `{
  "data": {
    "type": "graph",
    "id": "g1",
    "attributes": {
      "graph_data": {"description": "ignored"},
      "nodes": [
        {"entity_id": "www.hooli.com", "type": "domain", "entity_attributes": {}},
        {"entity_id": "8.8.8.8", "type": "ip_address"}
      ],
      "links": [
        {"source": "www.hooli.com", "target": "relationships_resolutions_wwwhoolicom", "connection_type": "resolutions"},
        {"source": "relationships_resolutions_wwwhoolicom", "target": "8.8.8.8", "connection_type": "resolutions"}
      ]
    }
  }
}`

func TestDecode(t *testing.T) {
	g, err := Decode(strings.NewReader(hooliResponse))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	wantNodes := []Node{
		{EntityID: "www.hooli.com", Type: TypeDomain},
		{EntityID: "8.8.8.8", Type: TypeIPAddress},
	}
	if !reflect.DeepEqual(g.Nodes, wantNodes) {
		t.Errorf("Nodes = %v, want %v", g.Nodes, wantNodes)
	}
	if len(g.Links) != 2 {
		t.Fatalf("len(Links) = %d, want 2", len(g.Links))
	}
	if g.Links[1].Source != "relationships_resolutions_wwwhoolicom" || g.Links[1].ConnectionType != "resolutions" {
		t.Errorf("Links[1] = %+v", g.Links[1])
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"null data", `{"data": null}`},
		{"no attributes", `{"data": {"id": "g1"}}`},
		{"null attributes", `{"data": {"attributes": null}}`},
		{"not json", `<html>`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.body))
			if !errors.Is(err, errors.ErrCodeMalformedResponse) {
				t.Errorf("Decode(%q) error = %v, want %s", tt.body, err, errors.ErrCodeMalformedResponse)
			}
		})
	}
}

func TestDecodeEmptyGraph(t *testing.T) {
	g, err := Decode(strings.NewReader(`{"data": {"attributes": {}}}`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(g.Nodes) != 0 || len(g.Links) != 0 {
		t.Errorf("got %d nodes, %d links; want empty graph", len(g.Nodes), len(g.Links))
	}
}

func TestDecodeURL(t *testing.T) {
	t.Run("with title", func(t *testing.T) {
		u, err := DecodeURL(strings.NewReader(`{"data": {"attributes": {"url": "http://hooli.com/", "title": "Hooli"}}}`))
		if err != nil {
			t.Fatalf("DecodeURL() error: %v", err)
		}
		if u.URL != "http://hooli.com/" || u.Title != "Hooli" {
			t.Errorf("DecodeURL() = %+v", u)
		}
	})

	t.Run("without title", func(t *testing.T) {
		u, err := DecodeURL(strings.NewReader(`{"data": {"attributes": {"url": "http://hooli.com/"}}}`))
		if err != nil {
			t.Fatalf("DecodeURL() error: %v", err)
		}
		if u.Title != "" {
			t.Errorf("Title = %q, want empty", u.Title)
		}
	})

	t.Run("missing url", func(t *testing.T) {
		_, err := DecodeURL(strings.NewReader(`{"data": {"attributes": {"title": "Hooli"}}}`))
		if !errors.Is(err, errors.ErrCodeMalformedResponse) {
			t.Errorf("DecodeURL() error = %v, want %s", err, errors.ErrCodeMalformedResponse)
		}
	})
}

func TestStats(t *testing.T) {
	g, err := Decode(strings.NewReader(hooliResponse))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	s := g.Stats()
	if s.Nodes != 2 || s.Links != 2 {
		t.Errorf("Stats() nodes=%d links=%d, want 2, 2", s.Nodes, s.Links)
	}
	if s.ByType[TypeDomain] != 1 || s.ByType[TypeIPAddress] != 1 {
		t.Errorf("Stats().ByType = %v", s.ByType)
	}
	if s.Related != 1 {
		t.Errorf("Stats().Related = %d, want 1", s.Related)
	}
	if !g.HasNode("8.8.8.8") || g.HasNode("relationships_resolutions_wwwhoolicom") {
		t.Error("HasNode() should only report real nodes")
	}
}

func TestGroupLinks(t *testing.T) {
	links := []Link{
		{Source: "a", Target: "rel_a", ConnectionType: "resolutions"},
		{Source: "b", Target: "rel_b", ConnectionType: "contacted_ips"},
		{Source: "rel_a", Target: "x", ConnectionType: "resolutions"},
		{Source: "a", Target: "rel_a2", ConnectionType: "resolutions"},
		{Source: "rel_a", Target: "y", ConnectionType: "resolutions"},
		{Source: "a", Target: "rel_a3", ConnectionType: "siblings"},
	}
	r := GroupLinks(links)

	wantKeys := []RelationKey{
		{Source: "a", Type: "resolutions"},
		{Source: "b", Type: "contacted_ips"},
		{Source: "rel_a", Type: "resolutions"},
		{Source: "a", Type: "siblings"},
	}
	if !reflect.DeepEqual(r.Keys(), wantKeys) {
		t.Errorf("Keys() = %v, want %v", r.Keys(), wantKeys)
	}
	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}

	got, ok := r.Targets("a", "resolutions")
	if !ok || !reflect.DeepEqual(got, []string{"rel_a", "rel_a2"}) {
		t.Errorf("Targets(a, resolutions) = %v, %v", got, ok)
	}
	got, ok = r.Targets("rel_a", "resolutions")
	if !ok || !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("Targets(rel_a, resolutions) = %v, %v", got, ok)
	}
	if _, ok := r.Targets("rel_a", "siblings"); ok {
		t.Error("Targets() should miss for an unseen connection type")
	}
}
