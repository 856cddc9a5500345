package nifexport

import (
	"encoding/json"
	"errors"

	"github.com/c360studio/semnif/annotation"
)

// Batch is an inbound message carrying annotation records to export.
type Batch struct {
	ID      string              `json:"id,omitempty"`
	Format  string              `json:"format,omitempty"` // overrides the component format
	Records []annotation.Record `json:"records"`
}

// Payload is the serialized RDF produced for one batch.
type Payload struct {
	ID       string `json:"id"`
	BatchID  string `json:"batch_id,omitempty"`
	Format   string `json:"format"`
	MIMEType string `json:"mime_type"`
	Triples  int    `json:"triples"`
	Content  string `json:"content"`
}

// Validate validates the payload. An empty graph may render to empty content
// in N-Triples.
func (p *Payload) Validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if p.Format == "" {
		return errors.New("format is required")
	}
	if p.Triples < 0 {
		return errors.New("triples must not be negative")
	}
	if p.Triples > 0 && p.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *Payload) MarshalJSON() ([]byte, error) {
	type Alias Payload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Payload) UnmarshalJSON(data []byte) error {
	type Alias Payload
	return json.Unmarshal(data, (*Alias)(p))
}
