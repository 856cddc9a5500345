package export

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/c360studio/semnif/graph"
	"github.com/c360studio/semnif/vocabulary/nif"
)

// xmlNamespaces assigns an XML prefix to every namespace a predicate needs.
type xmlNamespaces struct {
	declared []graph.Prefix
	rdf      string
	extra    int
}

func newXMLNamespaces(g *graph.Graph) *xmlNamespaces {
	ns := &xmlNamespaces{declared: g.Prefixes()}
	for _, p := range ns.declared {
		if p.IRI == nif.RDFNamespace {
			ns.rdf = p.Name
			break
		}
	}
	if ns.rdf == "" {
		ns.rdf = ns.add("rdf", nif.RDFNamespace)
	}
	return ns
}

// add declares iri under name, or under a generated j.N name when name is
// taken.
func (ns *xmlNamespaces) add(name, iri string) string {
	for _, p := range ns.declared {
		if p.Name == name {
			name = ""
			break
		}
	}
	for name == "" || ns.taken(name) {
		name = fmt.Sprintf("j.%d", ns.extra)
		ns.extra++
	}
	ns.declared = append(ns.declared, graph.Prefix{Name: name, IRI: iri})
	return name
}

func (ns *xmlNamespaces) taken(name string) bool {
	for _, p := range ns.declared {
		if p.Name == name {
			return true
		}
	}
	return false
}

// qname returns prefix:local for a predicate IRI. Predicates that cannot be
// split into a namespace and an NCName cannot be expressed in RDF/XML.
func (ns *xmlNamespaces) qname(iri string) string {
	best := -1
	for i, p := range ns.declared {
		if !strings.HasPrefix(iri, p.IRI) || !isNCName(iri[len(p.IRI):]) {
			continue
		}
		if best < 0 || len(p.IRI) > len(ns.declared[best].IRI) {
			best = i
		}
	}
	if best >= 0 {
		return ns.declared[best].Name + ":" + iri[len(ns.declared[best].IRI):]
	}

	// Split before the longest NCName suffix.
	cut := -1
	for i := len(iri) - 1; i > 0; i-- {
		if isNCName(iri[i:]) {
			cut = i
		}
	}
	if cut < 0 {
		panic(fmt.Sprintf("export: predicate %s has no XML qualified name", iri))
	}
	name := ns.add("", iri[:cut])
	return name + ":" + iri[cut:]
}

// writeRDFXML writes an rdf:RDF document with one rdf:Description per
// subject. Namespaces needed by predicates are resolved before the root
// element is opened.
//
// XML 1.0 has no representation for C0 controls other than tab, newline and
// carriage return, nor for invalid UTF-8. Such characters in literals are
// written as U+FFFD, so RDF/XML is lossy for them where N-Triples and Turtle
// are exact. See lossyXMLLiterals.
func writeRDFXML(w *bufio.Writer, g *graph.Graph) {
	ns := newXMLNamespaces(g)
	groups := g.BySubject()

	qnames := make(map[string]string)
	for _, group := range groups {
		for _, t := range group {
			if _, ok := qnames[t.Predicate]; !ok {
				qnames[t.Predicate] = ns.qname(t.Predicate)
			}
		}
	}

	w.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	w.WriteString("<" + ns.rdf + ":RDF")
	for _, p := range ns.declared {
		w.WriteString("\n    xmlns:" + p.Name + `="` + xmlEscape(p.IRI) + `"`)
	}
	w.WriteString(">\n")

	for _, group := range groups {
		w.WriteString("  <" + ns.rdf + ":Description " + ns.rdf + `:about="` + xmlEscape(group[0].Subject) + `">` + "\n")
		for _, t := range group {
			name := qnames[t.Predicate]
			w.WriteString("    <" + name)
			if t.Object.IsIRI() {
				w.WriteString(" " + ns.rdf + `:resource="` + xmlEscape(t.Object.Value) + `"/>` + "\n")
				continue
			}
			w.WriteString(">" + xmlEscape(t.Object.Value) + "</" + name + ">\n")
		}
		w.WriteString("  </" + ns.rdf + ":Description>\n")
	}

	w.WriteString("</" + ns.rdf + ":RDF>\n")
}

// lossyXMLLiterals counts the literals in g that hold characters XML 1.0
// cannot carry.
func lossyXMLLiterals(g *graph.Graph) int {
	n := 0
	for _, t := range g.Triples() {
		if t.Object.IsLiteral() && !xmlRepresentable(t.Object.Value) {
			n++
		}
	}
	return n
}

func xmlRepresentable(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return false
		}
		if !isXMLChar(r) {
			return false
		}
		i += size
	}
	return true
}

// isXMLChar reports whether r matches the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

// xmlEscape escapes s for element text or a double-quoted attribute.
func xmlEscape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
