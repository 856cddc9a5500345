// Package annotation defines the annotation records consumed by the NIF
// exporter.
package annotation

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Placement says whether a record is itself a context or a span situated in
// another context. The zero value is a standalone context.
type Placement struct {
	referenceContext string
}

// Standalone returns the placement of a record that is its own context.
func Standalone() Placement {
	return Placement{}
}

// InContext returns the placement of a span taken from the given context.
// An empty IRI is the same input as no reference context and yields
// Standalone.
func InContext(iri string) Placement {
	return Placement{referenceContext: iri}
}

// IsContext reports whether the record is itself a context.
func (p Placement) IsContext() bool {
	return p.referenceContext == ""
}

// ReferenceContext returns the reference context IRI and whether one is set.
func (p Placement) ReferenceContext() (string, bool) {
	return p.referenceContext, p.referenceContext != ""
}

// String returns a short description of the placement.
func (p Placement) String() string {
	if p.IsContext() {
		return "context"
	}
	return "span of " + p.referenceContext
}

// Record is one annotated span or context. Records are treated as immutable
// once handed to the graph builder.
type Record struct {
	// Subject is the IRI naming the span or context.
	Subject string

	// Begin is the start character offset. Not validated.
	Begin uint64

	// End is the end character offset. Not validated.
	End uint64

	// Content is the text covered by the span. May be empty.
	Content string

	// Placement selects between a standalone context and a span with a
	// reference context.
	Placement Placement

	// Types are the semantic class IRIs of the span. Order is irrelevant.
	Types []string
}

// NewSpan creates a record for a span of the given reference context.
func NewSpan(subject string, begin, end uint64, content, referenceContext string, types ...string) Record {
	return Record{
		Subject:   subject,
		Begin:     begin,
		End:       end,
		Content:   content,
		Placement: InContext(referenceContext),
		Types:     types,
	}
}

// NewContext creates a record that is itself a context.
func NewContext(subject string, begin, end uint64, content string, types ...string) Record {
	return Record{
		Subject:   subject,
		Begin:     begin,
		End:       end,
		Content:   content,
		Placement: Standalone(),
		Types:     types,
	}
}

// BeginLiteral returns the begin offset in base-10 form.
func (r Record) BeginLiteral() string {
	return strconv.FormatUint(r.Begin, 10)
}

// EndLiteral returns the end offset in base-10 form.
func (r Record) EndLiteral() string {
	return strconv.FormatUint(r.End, 10)
}

// CharIRI builds an RFC 5147 character-range IRI for a span of doc,
// e.g. http://ex.org/doc1#char=0,5.
func CharIRI(doc string, begin, end uint64) string {
	return fmt.Sprintf("%s#char=%d,%d", doc, begin, end)
}

// wireRecord is the interchange shape of a Record in JSON and YAML.
type wireRecord struct {
	Subject          string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Document         string   `json:"document,omitempty" yaml:"document,omitempty"`
	Begin            uint64   `json:"begin" yaml:"begin"`
	End              uint64   `json:"end" yaml:"end"`
	Content          string   `json:"content" yaml:"content"`
	ReferenceContext string   `json:"reference_context,omitempty" yaml:"reference_context,omitempty"`
	Types            []string `json:"types,omitempty" yaml:"types,omitempty"`
}

func (w wireRecord) record() Record {
	subject := w.Subject
	if subject == "" && w.Document != "" {
		subject = CharIRI(w.Document, w.Begin, w.End)
	}
	return Record{
		Subject:   subject,
		Begin:     w.Begin,
		End:       w.End,
		Content:   w.Content,
		Placement: InContext(w.ReferenceContext),
		Types:     w.Types,
	}
}

func (r Record) wire() wireRecord {
	ref, _ := r.Placement.ReferenceContext()
	return wireRecord{
		Subject:          r.Subject,
		Begin:            r.Begin,
		End:              r.End,
		Content:          r.Content,
		ReferenceContext: ref,
		Types:            r.Types,
	}
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = w.record()
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Record) MarshalYAML() (any, error) {
	return r.wire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Record) UnmarshalYAML(value *yaml.Node) error {
	var w wireRecord
	if err := value.Decode(&w); err != nil {
		return err
	}
	*r = w.record()
	return nil
}
