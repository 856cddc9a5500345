package graph

import (
	"github.com/c360studio/semnif/annotation"
)

// Build maps records onto a frozen graph. Records are applied in input order
// and each contributes all of its applicable triples:
//
//  1. subject rdf:type format-marker
//  2. subject beginIndex "begin"
//  3. subject endIndex "end"
//  4. subject referenceContext <ctx>     (span placement only)
//  5. subject isString "content"
//  6. subject rdf:type Context           (context placement only)
//  7. subject rdf:type <type>            (one per resource type)
//
// Build panics if vocab fails validation.
func Build(records []annotation.Record, vocab Vocabulary) *Graph {
	if err := vocab.Validate(); err != nil {
		panic("graph: " + err.Error())
	}

	g := New(vocab.Prefixes)
	for _, r := range records {
		for _, t := range RecordTriples(r, vocab) {
			g.Add(t)
		}
	}
	g.Freeze()
	return g
}

// RecordTriples returns the triples a single record contributes, in emission
// order.
func RecordTriples(r annotation.Record, vocab Vocabulary) []Triple {
	s := r.Subject
	out := make([]Triple, 0, 5+len(r.Types))

	out = append(out,
		Triple{Subject: s, Predicate: vocab.Type, Object: IRI(vocab.FormatMarker)},
		Triple{Subject: s, Predicate: vocab.BeginIndex, Object: Literal(r.BeginLiteral())},
		Triple{Subject: s, Predicate: vocab.EndIndex, Object: Literal(r.EndLiteral())},
	)

	ref, inContext := r.Placement.ReferenceContext()
	if inContext {
		out = append(out, Triple{Subject: s, Predicate: vocab.ReferenceContext, Object: IRI(ref)})
	}

	out = append(out, Triple{Subject: s, Predicate: vocab.IsString, Object: Literal(r.Content)})

	if !inContext {
		out = append(out, Triple{Subject: s, Predicate: vocab.Type, Object: IRI(vocab.Context)})
	}

	for _, typeIRI := range r.Types {
		out = append(out, Triple{Subject: s, Predicate: vocab.Type, Object: IRI(typeIRI)})
	}

	return out
}
