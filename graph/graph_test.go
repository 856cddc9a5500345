package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraph_AddDeduplicates(t *testing.T) {
	g := New(nil)
	tr := Triple{Subject: "http://ex.org/s", Predicate: "http://ex.org/p", Object: Literal("o")}

	assert.True(t, g.Add(tr))
	assert.False(t, g.Add(tr))
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Contains(tr))
}

func TestGraph_LiteralAndIRIDiffer(t *testing.T) {
	g := New(nil)
	g.Add(Triple{Subject: "http://ex.org/s", Predicate: "http://ex.org/p", Object: Literal("http://ex.org/o")})
	g.Add(Triple{Subject: "http://ex.org/s", Predicate: "http://ex.org/p", Object: IRI("http://ex.org/o")})
	assert.Equal(t, 2, g.Len())
}

func TestGraph_FrozenPanics(t *testing.T) {
	g := New(nil)
	g.Freeze()
	assert.Panics(t, func() {
		g.Add(Triple{Subject: "http://ex.org/s", Predicate: "http://ex.org/p", Object: IRI("http://ex.org/o")})
	})
}

func TestGraph_TriplesIsCopy(t *testing.T) {
	g := New(nil)
	g.Add(Triple{Subject: "http://ex.org/s", Predicate: "http://ex.org/p", Object: Literal("o")})

	ts := g.Triples()
	ts[0].Subject = "http://ex.org/changed"
	assert.Equal(t, "http://ex.org/s", g.Triples()[0].Subject)
}

func TestGraph_BySubject(t *testing.T) {
	g := New(nil)
	g.Add(Triple{Subject: "http://ex.org/a", Predicate: "http://ex.org/p", Object: Literal("1")})
	g.Add(Triple{Subject: "http://ex.org/b", Predicate: "http://ex.org/p", Object: Literal("2")})
	g.Add(Triple{Subject: "http://ex.org/a", Predicate: "http://ex.org/q", Object: Literal("3")})

	assert.Equal(t, []string{"http://ex.org/a", "http://ex.org/b"}, g.Subjects())

	groups := g.BySubject()
	assert.Len(t, groups, 2)
	assert.Len(t, groups[0], 2)
	assert.Equal(t, "http://ex.org/q", groups[0][1].Predicate)
	assert.Len(t, groups[1], 1)
}

func TestGraph_PrefixesSorted(t *testing.T) {
	g := New(map[string]string{"rdf": "urn:rdf:", "nif": "urn:nif:", "itsrdf": "urn:its:"})
	prefixes := g.Prefixes()
	assert.Equal(t, []Prefix{
		{Name: "itsrdf", IRI: "urn:its:"},
		{Name: "nif", IRI: "urn:nif:"},
		{Name: "rdf", IRI: "urn:rdf:"},
	}, prefixes)

	iri, ok := g.Namespace("nif")
	assert.True(t, ok)
	assert.Equal(t, "urn:nif:", iri)
}

func TestEqualSets(t *testing.T) {
	a := Triple{Subject: "http://ex.org/a", Predicate: "http://ex.org/p", Object: Literal("1")}
	b := Triple{Subject: "http://ex.org/b", Predicate: "http://ex.org/p", Object: Literal("2")}

	assert.True(t, EqualSets([]Triple{a, b}, []Triple{b, a}))
	assert.True(t, EqualSets([]Triple{a, a, b}, []Triple{b, a}))
	assert.False(t, EqualSets([]Triple{a}, []Triple{a, b}))
	assert.False(t, EqualSets([]Triple{a}, []Triple{b}))
}

func TestTermKindString(t *testing.T) {
	assert.Equal(t, "iri", KindIRI.String())
	assert.Equal(t, "literal", KindLiteral.String())
	assert.Equal(t, "TermKind(7)", TermKind(7).String())
}
