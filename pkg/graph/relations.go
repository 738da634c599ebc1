package graph

// RelationKey identifies every link leaving Source with one connection type.
type RelationKey struct {
	Source string
	Type   string
}

// Relations groups links by (source, connection type). Keys iterate in the
// order they first appear in the link list and each target list keeps link
// order, so output built from it is deterministic for a given response.
type Relations struct {
	keys    []RelationKey
	targets map[RelationKey][]string
}

// GroupLinks builds the relation index for links.
func GroupLinks(links []Link) *Relations {
	r := &Relations{targets: make(map[RelationKey][]string)}
	for _, l := range links {
		r.Add(l)
	}
	return r
}

// Add appends l's target under its (source, connection type) key.
func (r *Relations) Add(l Link) {
	key := RelationKey{Source: l.Source, Type: l.ConnectionType}
	if _, ok := r.targets[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.targets[key] = append(r.targets[key], l.Target)
}

// Keys returns the relation keys in first-seen order.
// The returned slice must not be modified.
func (r *Relations) Keys() []RelationKey {
	return r.keys
}

// Targets returns the targets grouped under (source, relType).
// ok is false when no link has that source and type.
func (r *Relations) Targets(source, relType string) (targets []string, ok bool) {
	targets, ok = r.targets[RelationKey{Source: source, Type: relType}]
	return targets, ok
}

// Len returns the number of distinct relation keys.
func (r *Relations) Len() int {
	return len(r.keys)
}
