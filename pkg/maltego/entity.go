package maltego

import (
	"context"
	"fmt"

	"github.com/matzehuels/vtmaltego/pkg/graph"
)

// URLResolver looks up the URL string and title behind a URL node's
// identifier. *virustotal.Client implements it.
type URLResolver interface {
	GetFullURL(ctx context.Context, id string) (*graph.URL, error)
}

// Entity is one exportable node. The set of implementations is closed:
// [FileEntity], [IPv4Entity], [DomainEntity] and [URLEntity].
type Entity interface {
	// Value is the string registered in the [Index] for this entity.
	Value() string
	// Kind is the Maltego entity type, e.g. "maltego.Hash".
	Kind() string
	// render returns the CSV block for the entity under id.
	render(ctx context.Context, id string, urls URLResolver) (string, error)
}

// FileEntity is a file node, identified by its hash.
type FileEntity struct{ Hash string }

// IPv4Entity is an ip_address node.
type IPv4Entity struct{ Address string }

// DomainEntity is a domain node.
type DomainEntity struct{ FQDN string }

// URLEntity is a url node. Key is the VirusTotal URL identifier; the URL
// itself is only known after resolution.
type URLEntity struct{ Key string }

func (e FileEntity) Value() string   { return e.Hash }
func (e IPv4Entity) Value() string   { return e.Address }
func (e DomainEntity) Value() string { return e.FQDN }
func (e URLEntity) Value() string    { return e.Key }

func (FileEntity) Kind() string   { return "maltego.Hash" }
func (IPv4Entity) Kind() string   { return "maltego.IPv4Address" }
func (DomainEntity) Kind() string { return "maltego.Domain" }
func (URLEntity) Kind() string    { return "maltego.URL" }

func (e FileEntity) render(_ context.Context, id string, _ URLResolver) (string, error) {
	return FileBlock(id, e.Hash), nil
}

func (e IPv4Entity) render(_ context.Context, id string, _ URLResolver) (string, error) {
	return IPv4Block(id, e.Address), nil
}

func (e DomainEntity) render(_ context.Context, id string, _ URLResolver) (string, error) {
	return DomainBlock(id, e.FQDN), nil
}

func (e URLEntity) render(ctx context.Context, id string, urls URLResolver) (string, error) {
	if urls == nil {
		return "", fmt.Errorf("url node %s: no URL resolver configured", e.Key)
	}
	u, err := urls.GetFullURL(ctx, e.Key)
	if err != nil {
		return "", fmt.Errorf("resolve url node %s: %w", e.Key, err)
	}
	return URLBlock(id, u.URL, u.Title), nil
}

// EntityFor maps a graph node to its entity. ok is false for node types
// that have no Maltego mapping.
func EntityFor(n graph.Node) (e Entity, ok bool) {
	switch n.Type {
	case graph.TypeFile:
		return FileEntity{Hash: n.EntityID}, true
	case graph.TypeIPAddress:
		return IPv4Entity{Address: n.EntityID}, true
	case graph.TypeDomain:
		return DomainEntity{FQDN: n.EntityID}, true
	case graph.TypeURL:
		return URLEntity{Key: n.EntityID}, true
	default:
		return nil, false
	}
}
