package graph

import "fmt"

// Node types reported by the VirusTotal graph API that vtmaltego exports.
// Other types (actor, email, ssl_cert, ...) may appear in a graph and are
// carried through as plain strings.
const (
	TypeFile      = "file"
	TypeIPAddress = "ip_address"
	TypeDomain    = "domain"
	TypeURL       = "url"
)

// Graph is the data.attributes payload of a graph response.
// Nodes and Links keep the order in which the API returned them.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Node is a single graph entity. EntityID is opaque: a file hash, an IP
// address, a domain name, or for URLs the SHA-256 of the URL which has to
// be resolved through the URL endpoint.
type Node struct {
	EntityID string `json:"entity_id"`
	Type     string `json:"type"`
}

// String implements fmt.Stringer for log output.
func (n Node) String() string {
	return fmt.Sprintf("%s:%s", n.Type, n.EntityID)
}

// Link is a directed edge. Source or Target may be a relationship node that
// does not appear in [Graph.Nodes].
type Link struct {
	Source         string `json:"source"`
	Target         string `json:"target"`
	ConnectionType string `json:"connection_type"`
}

// URL holds the attributes of a URL object that matter for export.
// Title is empty when the API does not report one.
type URL struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// Stats summarizes a graph for logging and CLI output.
type Stats struct {
	Nodes   int            // total nodes
	Links   int            // total links
	ByType  map[string]int // node count per type
	Related int            // distinct relationship endpoints (link endpoints that are not nodes)
}

// Stats computes node and link counts for g.
func (g *Graph) Stats() Stats {
	s := Stats{
		Nodes:  len(g.Nodes),
		Links:  len(g.Links),
		ByType: make(map[string]int),
	}
	known := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		s.ByType[n.Type]++
		known[n.EntityID] = true
	}
	related := make(map[string]bool)
	for _, l := range g.Links {
		for _, id := range []string{l.Source, l.Target} {
			if !known[id] {
				related[id] = true
			}
		}
	}
	s.Related = len(related)
	return s
}

// HasNode reports whether id is the entity ID of one of g's nodes.
func (g *Graph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.EntityID == id {
			return true
		}
	}
	return false
}
