package maltego

import (
	"math/rand/v2"
)

// IDLength is the number of decimal digits in a generated ID.
const IDLength = 13

// IDGenerator hands out 13-digit decimal identifiers that are unique among
// the IDs it has produced. Entity and link IDs share one generator so they
// never collide with each other.
//
// IDs are not cryptographically random. An IDGenerator is not safe for
// concurrent use.
type IDGenerator struct {
	rng  *rand.Rand
	used map[string]struct{}
}

// NewIDGenerator returns a generator drawing from src. A nil src uses a
// randomly seeded PCG source.
func NewIDGenerator(src rand.Source) *IDGenerator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &IDGenerator{
		rng:  rand.New(src),
		used: make(map[string]struct{}),
	}
}

// Next returns a fresh ID. Candidates that were already handed out are
// discarded and redrawn.
func (g *IDGenerator) Next() string {
	for {
		id := g.draw()
		if _, dup := g.used[id]; dup {
			continue
		}
		g.used[id] = struct{}{}
		return id
	}
}

// Used reports whether id was handed out by g.
func (g *IDGenerator) Used(id string) bool {
	_, ok := g.used[id]
	return ok
}

// Len returns the number of IDs handed out so far.
func (g *IDGenerator) Len() int {
	return len(g.used)
}

func (g *IDGenerator) draw() string {
	var b [IDLength]byte
	for i := range b {
		b[i] = '0' + byte(g.rng.IntN(10))
	}
	return string(b[:])
}
