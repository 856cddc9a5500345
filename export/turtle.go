package export

import (
	"bufio"
	"strings"

	"github.com/c360studio/semnif/graph"
	"github.com/c360studio/semnif/vocabulary/nif"
)

// writeTurtle writes the prefix block followed by one subject block per
// subject. rdf:type is written as "a".
func writeTurtle(w *bufio.Writer, g *graph.Graph) {
	prefixes := g.Prefixes()
	for _, p := range prefixes {
		w.WriteString("@prefix " + p.Name + ": <" + escapeIRI(p.IRI) + "> .\n")
	}

	for _, group := range g.BySubject() {
		w.WriteString("\n")
		w.WriteString(turtleIRI(group[0].Subject, prefixes))
		w.WriteString("\n")
		for i, t := range group {
			w.WriteString("        ")
			if t.Predicate == nif.RDFType {
				w.WriteString("a")
			} else {
				w.WriteString(turtleIRI(t.Predicate, prefixes))
			}
			w.WriteString(" ")
			w.WriteString(formatObjectTurtle(t.Object, prefixes))
			if i < len(group)-1 {
				w.WriteString(" ;\n")
			} else {
				w.WriteString(" .\n")
			}
		}
	}
}

// turtleIRI abbreviates iri to a prefixed name when a declared namespace
// covers it with a safe local part, else writes <iri>.
func turtleIRI(iri string, prefixes []graph.Prefix) string {
	best := -1
	for i, p := range prefixes {
		if !strings.HasPrefix(iri, p.IRI) || !isPNLocal(iri[len(p.IRI):]) {
			continue
		}
		if best < 0 || len(p.IRI) > len(prefixes[best].IRI) {
			best = i
		}
	}
	if best < 0 {
		return "<" + escapeIRI(iri) + ">"
	}
	return prefixes[best].Name + ":" + iri[len(prefixes[best].IRI):]
}

// formatObjectTurtle formats an object term for Turtle output.
func formatObjectTurtle(o graph.Term, prefixes []graph.Prefix) string {
	if o.IsIRI() {
		return turtleIRI(o.Value, prefixes)
	}
	return `"` + escapeLiteral(o.Value) + `"`
}
