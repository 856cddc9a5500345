// Package graph holds the in-memory RDF graph of annotated text spans and the
// builder that maps annotation records onto NIF triples.
package graph

import (
	"sort"
	"sync/atomic"
)

// Prefix binds a short name to a namespace IRI.
type Prefix struct {
	Name string
	IRI  string
}

// Graph is an append-only set of triples plus a namespace prefix table.
// Triples keep first-insertion order; duplicates are stored once. After
// Freeze the graph is read-only and safe for concurrent readers.
type Graph struct {
	triples  []Triple
	index    map[Triple]struct{}
	prefixes map[string]string
	frozen   atomic.Bool
}

// New returns an empty graph with the given prefix table.
func New(prefixes map[string]string) *Graph {
	p := make(map[string]string, len(prefixes))
	for k, v := range prefixes {
		p[k] = v
	}
	return &Graph{
		index:    make(map[Triple]struct{}),
		prefixes: p,
	}
}

// Add appends a triple. It reports false when the triple was already present.
// Add panics on a frozen graph.
func (g *Graph) Add(t Triple) bool {
	if g.frozen.Load() {
		panic("graph: add to frozen graph")
	}
	if _, ok := g.index[t]; ok {
		return false
	}
	g.index[t] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// Freeze makes the graph read-only.
func (g *Graph) Freeze() {
	g.frozen.Store(true)
}

// Frozen reports whether Freeze has been called.
func (g *Graph) Frozen() bool {
	return g.frozen.Load()
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns a copy of the triples in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Contains reports whether the triple is in the graph.
func (g *Graph) Contains(t Triple) bool {
	_, ok := g.index[t]
	return ok
}

// Subjects returns the distinct subjects in first-seen order.
func (g *Graph) Subjects() []string {
	seen := make(map[string]struct{})
	subjects := make([]string, 0)
	for _, t := range g.triples {
		if _, ok := seen[t.Subject]; ok {
			continue
		}
		seen[t.Subject] = struct{}{}
		subjects = append(subjects, t.Subject)
	}
	return subjects
}

// BySubject groups triples by subject. Groups follow Subjects order and
// triples inside a group keep insertion order.
func (g *Graph) BySubject() [][]Triple {
	pos := make(map[string]int)
	groups := make([][]Triple, 0)
	for _, t := range g.triples {
		i, ok := pos[t.Subject]
		if !ok {
			i = len(groups)
			pos[t.Subject] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], t)
	}
	return groups
}

// Prefixes returns the prefix table sorted by prefix name.
func (g *Graph) Prefixes() []Prefix {
	out := make([]Prefix, 0, len(g.prefixes))
	for name, iri := range g.prefixes {
		out = append(out, Prefix{Name: name, IRI: iri})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Namespace returns the IRI bound to a prefix.
func (g *Graph) Namespace(prefix string) (string, bool) {
	iri, ok := g.prefixes[prefix]
	return iri, ok
}

// Equal reports whether two graphs hold the same triple set. Prefixes and
// insertion order are ignored.
func (g *Graph) Equal(other *Graph) bool {
	return EqualSets(g.triples, other.triples)
}

// EqualSets reports whether a and b contain the same triples, ignoring order
// and duplicates.
func EqualSets(a, b []Triple) bool {
	sa := make(map[Triple]struct{}, len(a))
	for _, t := range a {
		sa[t] = struct{}{}
	}
	sb := make(map[Triple]struct{}, len(b))
	for _, t := range b {
		sb[t] = struct{}{}
	}
	if len(sa) != len(sb) {
		return false
	}
	for t := range sa {
		if _, ok := sb[t]; !ok {
			return false
		}
	}
	return true
}
