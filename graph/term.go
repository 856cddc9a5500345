package graph

import "fmt"

// TermKind distinguishes IRI references from literals.
type TermKind int

const (
	// KindIRI is an IRI reference.
	KindIRI TermKind = iota

	// KindLiteral is a plain string literal.
	KindLiteral
)

// String returns the kind name.
func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindLiteral:
		return "literal"
	default:
		return fmt.Sprintf("TermKind(%d)", int(k))
	}
}

// Term is the object of a triple. No blank nodes are used.
type Term struct {
	Kind  TermKind
	Value string
}

// IRI returns an IRI reference term.
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// Literal returns a plain string literal term.
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// IsIRI reports whether t is an IRI reference.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsLiteral reports whether t is a literal.
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// String returns the term in N-Triples-like notation for diagnostics.
func (t Term) String() string {
	if t.IsIRI() {
		return "<" + t.Value + ">"
	}
	return fmt.Sprintf("%q", t.Value)
}

// Triple is a subject-predicate-object statement. Subjects and predicates are
// always IRIs.
type Triple struct {
	Subject   string
	Predicate string
	Object    Term
}

// String returns the triple for diagnostics.
func (t Triple) String() string {
	return fmt.Sprintf("<%s> <%s> %s", t.Subject, t.Predicate, t.Object)
}
