package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c360studio/semnif/vocabulary/nif"
)

// ErrInvalidVocabulary is returned by Vocabulary.Validate for malformed
// configuration.
var ErrInvalidVocabulary = errors.New("invalid vocabulary")

// Vocabulary is the fixed set of predicate and class IRIs the builder emits,
// plus the prefixes bound in serialized output.
type Vocabulary struct {
	Type             string
	FormatMarker     string
	Context          string
	BeginIndex       string
	EndIndex         string
	ReferenceContext string
	IsString         string
	Prefixes         map[string]string
}

// DefaultVocabulary returns the NIF 2.0 core vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Type:             nif.RDFType,
		FormatMarker:     nif.ClassRFC5147String,
		Context:          nif.ClassContext,
		BeginIndex:       nif.PredicateIRI(nif.OffsetBegin),
		EndIndex:         nif.PredicateIRI(nif.OffsetEnd),
		ReferenceContext: nif.PredicateIRI(nif.ContextReference),
		IsString:         nif.PredicateIRI(nif.ContentString),
		Prefixes:         nif.Prefixes(),
	}
}

// Validate checks that every term is an absolute IRI and every prefix is bound.
func (v Vocabulary) Validate() error {
	terms := []struct {
		name string
		iri  string
	}{
		{"type", v.Type},
		{"format_marker", v.FormatMarker},
		{"context", v.Context},
		{"begin_index", v.BeginIndex},
		{"end_index", v.EndIndex},
		{"reference_context", v.ReferenceContext},
		{"is_string", v.IsString},
	}
	for _, term := range terms {
		if !absoluteIRI(term.iri) {
			return fmt.Errorf("%w: %s is not an absolute IRI: %q", ErrInvalidVocabulary, term.name, term.iri)
		}
	}
	for prefix, iri := range v.Prefixes {
		if prefix == "" {
			return fmt.Errorf("%w: empty prefix name", ErrInvalidVocabulary)
		}
		if !validPrefixName(prefix) {
			return fmt.Errorf("%w: prefix name %q is not usable in Turtle and RDF/XML", ErrInvalidVocabulary, prefix)
		}
		if !absoluteIRI(iri) {
			return fmt.Errorf("%w: prefix %s bound to %q", ErrInvalidVocabulary, prefix, iri)
		}
	}
	return nil
}

// validPrefixName reports whether name is both an XML namespace prefix and a
// Turtle PN_PREFIX: an ASCII letter followed by letters, digits, '_' or '-'.
func validPrefixName(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		letter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if i == 0 {
			if !letter {
				return false
			}
			continue
		}
		if !(letter || (c >= '0' && c <= '9') || c == '_' || c == '-') {
			return false
		}
	}
	return name != ""
}

// absoluteIRI reports whether s has a scheme and contains no characters that
// are illegal inside an IRI reference.
func absoluteIRI(s string) bool {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return false
	}
	return !strings.ContainsAny(s, " <>\"{}|^`\\\n\r\t")
}
