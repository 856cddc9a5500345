package export_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/c360studio/semnif/graph"
	"github.com/c360studio/semnif/vocabulary/nif"
	"github.com/geoknoesis/rdf-go/rdf"
	"github.com/stretchr/testify/require"
)

const xsdString = "http://www.w3.org/2001/XMLSchema#string"

// readRDF decodes text with an independent RDF parser. Only IRIs and plain
// literals are accepted since the writers never produce anything else.
func readRDF(t *testing.T, text string, format rdf.Format) []graph.Triple {
	t.Helper()
	r, err := rdf.NewReader(strings.NewReader(text), format)
	require.NoError(t, err)
	defer func() {
		_ = r.Close()
	}()

	var out []graph.Triple
	for {
		st, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err, "decode %s", format)
		require.True(t, st.IsTriple(), "unexpected quad in %s", format)
		out = append(out, graph.Triple{
			Subject:   iriValue(t, st.S),
			Predicate: st.P.Value,
			Object:    objectTerm(t, st.O),
		})
	}
}

func iriValue(t *testing.T, term rdf.Term) string {
	t.Helper()
	iri, ok := term.(rdf.IRI)
	require.True(t, ok, "subject %s is not an IRI", term)
	return iri.Value
}

func objectTerm(t *testing.T, term rdf.Term) graph.Term {
	t.Helper()
	switch v := term.(type) {
	case rdf.IRI:
		return graph.IRI(v.Value)
	case rdf.Literal:
		require.Empty(t, v.Lang, "literal %s has a language tag", v)
		if v.Datatype.Value != "" {
			require.Equal(t, xsdString, v.Datatype.Value, "literal %s is typed", v)
		}
		return graph.Literal(v.Lexical)
	default:
		t.Fatalf("unexpected object term %s", term)
		return graph.Term{}
	}
}

func parseNTriples(t *testing.T, text string) []graph.Triple {
	t.Helper()
	return readRDF(t, text, rdf.FormatNTriples)
}

func parseTurtle(t *testing.T, text string) []graph.Triple {
	t.Helper()
	return readRDF(t, text, rdf.FormatTurtle)
}

func xmlAttr(n *xmlquery.Node, local string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// parseRDFXML reads RDF/XML with xmlquery, keeping element text verbatim.
func parseRDFXML(t *testing.T, text string) []graph.Triple {
	t.Helper()
	doc, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("parse RDF/XML: %v", err)
	}

	var root *xmlquery.Node
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			root = n
			break
		}
	}
	if root == nil || root.NamespaceURI+root.Data != nif.RDFNamespace+"RDF" {
		t.Fatalf("missing rdf:RDF root")
	}

	var out []graph.Triple
	for desc := root.FirstChild; desc != nil; desc = desc.NextSibling {
		if desc.Type != xmlquery.ElementNode {
			continue
		}
		subject, ok := xmlAttr(desc, "about")
		if !ok {
			t.Fatalf("description without rdf:about")
		}
		for prop := desc.FirstChild; prop != nil; prop = prop.NextSibling {
			if prop.Type != xmlquery.ElementNode {
				continue
			}
			tr := graph.Triple{Subject: subject, Predicate: prop.NamespaceURI + prop.Data}
			if res, ok := xmlAttr(prop, "resource"); ok {
				tr.Object = graph.IRI(res)
			} else {
				tr.Object = graph.Literal(prop.InnerText())
			}
			out = append(out, tr)
		}
	}
	return out
}

// xpathCount evaluates a count() expression against an RDF/XML document with
// the rdf and nif prefixes bound.
func xpathCount(t *testing.T, text, expr string) int {
	t.Helper()
	doc, err := xmlquery.Parse(strings.NewReader(text))
	require.NoError(t, err)

	compiled, err := xpath.CompileWithNS(expr, map[string]string{
		"rdf": nif.RDFNamespace,
		"nif": nif.Namespace,
	})
	require.NoError(t, err)

	n, ok := compiled.Evaluate(xmlquery.CreateXPathNavigator(doc)).(float64)
	require.True(t, ok, "expression %q is not numeric", expr)
	return int(n)
}
