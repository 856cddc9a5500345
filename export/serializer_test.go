package export

import (
	"bufio"
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/c360studio/semnif/graph"
	"github.com/c360studio/semnif/metric"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type brokenSink struct {
	sb strings.Builder
	w  *bufio.Writer
}

func (s *brokenSink) Writer() *bufio.Writer {
	if s.w == nil {
		s.w = bufio.NewWriter(&s.sb)
	}
	return s.w
}

func (s *brokenSink) Text() string {
	_ = s.w.Flush()
	return s.sb.String()
}

func (s *brokenSink) Close() error { return errors.New("close failed") }

func TestRenderSwallowsCloseFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	m := metric.New(nil)

	g := graph.New(nil)
	g.Add(graph.Triple{Subject: "http://ex.org/s", Predicate: "http://ex.org/p", Object: graph.Literal("o")})
	g.Freeze()

	s := NewSerializer(logger, m)
	s.newSink = func() sink { return &brokenSink{} }

	var out string
	assert.NotPanics(t, func() {
		out = s.Render(g, FormatNTriples)
	})
	assert.Equal(t, "<http://ex.org/s> <http://ex.org/p> \"o\" .\n", out)
	assert.Contains(t, logs.String(), "Failed to close render sink")
	assert.Contains(t, logs.String(), "close failed")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CleanupFailures))
}

func TestRenderRDFXMLWarnsOnControlCharacters(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	g := graph.New(nil)
	g.Add(graph.Triple{Subject: "http://ex.org/s", Predicate: "http://ex.org/p", Object: graph.Literal("a\x01b\x7f\r\n")})
	g.Add(graph.Triple{Subject: "http://ex.org/s", Predicate: "http://ex.org/q", Object: graph.Literal("clean")})
	g.Freeze()

	s := NewSerializer(logger, nil)

	out := s.Render(g, FormatRDFXML)
	assert.Contains(t, out, "a\uFFFDb\x7f")
	assert.Contains(t, logs.String(), "RDF/XML cannot represent some literal characters")
	assert.Contains(t, logs.String(), "literals=1")

	logs.Reset()
	_ = s.Render(g, FormatNTriples)
	_ = s.Render(g, FormatTurtle)
	assert.Empty(t, logs.String())

	var buf bytes.Buffer
	assert.NoError(t, s.RenderTo(&buf, g, FormatRDFXML))
	assert.Contains(t, logs.String(), "literals=1")
}

func TestXMLRepresentable(t *testing.T) {
	assert.True(t, xmlRepresentable("tab\tline\ncr\r"))
	assert.True(t, xmlRepresentable("del\x7f ünïcødé"))
	assert.True(t, xmlRepresentable(""))
	assert.False(t, xmlRepresentable("bell\x07"))
	assert.False(t, xmlRepresentable("nul\x00"))
	assert.False(t, xmlRepresentable("bad\xff utf8"))
	assert.False(t, xmlRepresentable("\uFFFE"))
}

func TestEscapeLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`he said "hi"`, `he said \"hi\"`},
		{`back\slash`, `back\\slash`},
		{"line\nbreak\r", `line\nbreak\r`},
		{"tab\t", `tab\t`},
		{"bell\x07", `bell\u0007`},
		{"del\x7f", `del\u007F`},
		{"ünïcødé", "ünïcødé"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLiteral(tt.in))
		})
	}
}

func TestEscapeIRI(t *testing.T) {
	assert.Equal(t, "http://ex.org/doc1#char=0,5", escapeIRI("http://ex.org/doc1#char=0,5"))
	assert.Equal(t, `http://ex.org/a\u0020b`, escapeIRI("http://ex.org/a b"))
	assert.Equal(t, `http://ex.org/\u003Cx\u003E`, escapeIRI("http://ex.org/<x>"))
}

func TestIsPNLocal(t *testing.T) {
	assert.True(t, isPNLocal("beginIndex"))
	assert.True(t, isPNLocal("RFC5147String"))
	assert.True(t, isPNLocal("a-b_c"))
	assert.True(t, isPNLocal("1abc"))
	assert.False(t, isPNLocal(""))
	assert.False(t, isPNLocal("-abc"))
	assert.False(t, isPNLocal("char=0,5"))
	assert.False(t, isPNLocal("a.b"))
}

func TestIsNCName(t *testing.T) {
	assert.True(t, isNCName("type"))
	assert.True(t, isNCName("_x.y-z"))
	assert.False(t, isNCName("1type"))
	assert.False(t, isNCName("a:b"))
	assert.False(t, isNCName(""))
}

func TestTurtleIRI(t *testing.T) {
	prefixes := []graph.Prefix{
		{Name: "ex", IRI: "http://ex.org/"},
		{Name: "exv", IRI: "http://ex.org/vocab#"},
	}
	assert.Equal(t, "ex:thing", turtleIRI("http://ex.org/thing", prefixes))
	assert.Equal(t, "exv:term", turtleIRI("http://ex.org/vocab#term", prefixes))
	assert.Equal(t, "<http://ex.org/doc#char=0,5>", turtleIRI("http://ex.org/doc#char=0,5", prefixes))
	assert.Equal(t, "<http://other.org/x>", turtleIRI("http://other.org/x", prefixes))
}

func TestXMLQName(t *testing.T) {
	g := graph.New(map[string]string{"ex": "http://ex.org/"})
	ns := newXMLNamespaces(g)

	assert.Equal(t, "rdf", ns.rdf)
	assert.Equal(t, "ex:p", ns.qname("http://ex.org/p"))
	assert.Equal(t, "j.0:q", ns.qname("http://other.org/terms#q"))
	assert.Equal(t, "j.0:r", ns.qname("http://other.org/terms#r"))
	assert.Equal(t, "j.1:p2", ns.qname("urn:x:p2"))
	assert.Panics(t, func() { ns.qname("http://other.org/123") })
}

func TestXMLNamespacesRebindsRDF(t *testing.T) {
	g := graph.New(map[string]string{"rdf": "http://not-rdf.org/"})
	ns := newXMLNamespaces(g)
	assert.Equal(t, "j.0", ns.rdf)
}

func TestWriterForUnsupported(t *testing.T) {
	assert.Panics(t, func() { writerFor(Format("n3")) })
	for _, f := range Formats() {
		assert.NotNil(t, writerFor(f))
	}
}
