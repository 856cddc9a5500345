package nif

import "github.com/c360studio/semstreams/vocabulary"

// Offset predicates.
const (
	// OffsetBegin is the begin character index of a span.
	OffsetBegin = "nif.offset.begin"

	// OffsetEnd is the end character index of a span.
	OffsetEnd = "nif.offset.end"
)

// Context predicates.
const (
	// ContextReference links a span to its reference context.
	// Domain: span entity, Range: context entity
	ContextReference = "nif.context.reference"
)

// Content predicates.
const (
	// ContentString is the literal text covered by a span.
	ContentString = "nif.content.string"
)

func init() {
	vocabulary.Register(OffsetBegin,
		vocabulary.WithDescription("Begin character index of the annotated span"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(PropBeginIndex))

	vocabulary.Register(OffsetEnd,
		vocabulary.WithDescription("End character index of the annotated span"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(PropEndIndex))

	vocabulary.Register(ContextReference,
		vocabulary.WithDescription("Context document the span was taken from"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropReferenceContext))

	vocabulary.Register(ContentString,
		vocabulary.WithDescription("Text content covered by the span"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropIsString))
}

// PredicateIRI resolves a dotted predicate name to its registered IRI.
// Unregistered names are returned unchanged.
func PredicateIRI(name string) string {
	meta := vocabulary.GetPredicateMetadata(name)
	if meta == nil || meta.StandardIRI == "" {
		return name
	}
	return meta.StandardIRI
}
