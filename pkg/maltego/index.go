package maltego

// Index maps node values (hash, address, domain or URL identifier) to the
// entity IDs assigned to them during an export.
//
// Registering a value twice keeps the later ID; the earlier entity row is
// still written but links will point at the later one.
type Index struct {
	ids map[string]string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{ids: make(map[string]string)}
}

// Register associates value with id, replacing any previous association.
func (x *Index) Register(value, id string) {
	x.ids[value] = id
}

// Lookup returns the entity ID registered for value.
func (x *Index) Lookup(value string) (string, bool) {
	id, ok := x.ids[value]
	return id, ok
}

// Len returns the number of distinct registered values.
func (x *Index) Len() int {
	return len(x.ids)
}
