package graph

import (
	"time"

	"github.com/c360studio/semstreams/message"
)

// GraphIngestSubject is the subject semstreams graph processors ingest
// entities from.
const GraphIngestSubject = "graph.ingest.entity"

// EntityIngestMessage is the message format for graph ingestion. It matches
// the format used by semstreams components.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// EntityMessages converts g into one ingest message per subject, in
// first-seen subject order. IRI and literal objects are both carried as
// their lexical string.
func EntityMessages(g *Graph, source string, now time.Time) []EntityIngestMessage {
	groups := g.BySubject()
	msgs := make([]EntityIngestMessage, 0, len(groups))
	for _, group := range groups {
		triples := make([]message.Triple, 0, len(group))
		for _, t := range group {
			triples = append(triples, message.Triple{
				Subject:    t.Subject,
				Predicate:  t.Predicate,
				Object:     t.Object.Value,
				Source:     source,
				Timestamp:  now,
				Confidence: 1.0,
			})
		}
		msgs = append(msgs, EntityIngestMessage{
			ID:        group[0].Subject,
			Triples:   triples,
			UpdatedAt: now,
		})
	}
	return msgs
}
