package export

import (
	"bufio"

	"github.com/c360studio/semnif/graph"
)

// writeNTriples writes one triple per line with absolute IRIs.
func writeNTriples(w *bufio.Writer, g *graph.Graph) {
	for _, t := range g.Triples() {
		w.WriteString("<" + escapeIRI(t.Subject) + "> <" + escapeIRI(t.Predicate) + "> ")
		w.WriteString(formatObjectNTriples(t.Object))
		w.WriteString(" .\n")
	}
}

// formatObjectNTriples formats an object term for N-Triples output.
func formatObjectNTriples(o graph.Term) string {
	if o.IsIRI() {
		return "<" + escapeIRI(o.Value) + ">"
	}
	return `"` + escapeLiteral(o.Value) + `"`
}
