package export

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/c360studio/semnif/graph"
	"github.com/c360studio/semnif/metric"
)

// writerFor returns the writer for a format. An unsupported format is a
// programming error and panics.
func writerFor(format Format) func(*bufio.Writer, *graph.Graph) {
	switch format {
	case FormatRDFXML:
		return writeRDFXML
	case FormatNTriples:
		return writeNTriples
	case FormatTurtle:
		return writeTurtle
	default:
		panic(fmt.Sprintf("export: unsupported format %q", format))
	}
}

// sink receives one render. Text returns the fully materialized output; Close
// releases the sink afterwards and its failure does not affect the text.
type sink interface {
	Writer() *bufio.Writer
	Text() string
	io.Closer
}

// memorySink buffers a render in memory.
type memorySink struct {
	sb strings.Builder
	w  *bufio.Writer
}

func newMemorySink() sink {
	s := &memorySink{}
	s.w = bufio.NewWriter(&s.sb)
	return s
}

func (s *memorySink) Writer() *bufio.Writer { return s.w }

func (s *memorySink) Text() string {
	_ = s.w.Flush()
	return s.sb.String()
}

func (s *memorySink) Close() error {
	return s.w.Flush()
}

// Serializer renders graphs. It never mutates the graph and is safe for
// concurrent use.
type Serializer struct {
	logger  *slog.Logger
	metrics *metric.Metrics
	newSink func() sink
}

// NewSerializer creates a serializer. A nil logger uses slog.Default and nil
// metrics records nothing.
func NewSerializer(logger *slog.Logger, metrics *metric.Metrics) *Serializer {
	return &Serializer{
		logger:  logger,
		metrics: metrics,
		newSink: newMemorySink,
	}
}

// Render returns g serialized in format. It panics on an unsupported format.
func (s *Serializer) Render(g *graph.Graph, format Format) string {
	write := writerFor(format)
	s.warnLossy(g, format)

	out := s.newSink()
	defer s.release(out, format)

	write(out.Writer(), g)
	text := out.Text()

	s.metrics.ObserveRender(string(format), len(text))
	return text
}

// RenderTo streams g serialized in format to w. Write errors are returned.
func (s *Serializer) RenderTo(w io.Writer, g *graph.Graph, format Format) error {
	write := writerFor(format)
	s.warnLossy(g, format)

	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	write(bw, g)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}

	s.metrics.ObserveRender(string(format), cw.n)
	return nil
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

func (s *Serializer) log() *slog.Logger {
	if s.logger == nil {
		return slog.Default()
	}
	return s.logger
}

// warnLossy logs when an RDF/XML render will replace literal characters.
func (s *Serializer) warnLossy(g *graph.Graph, format Format) {
	if format != FormatRDFXML {
		return
	}
	if n := lossyXMLLiterals(g); n > 0 {
		s.log().Warn("RDF/XML cannot represent some literal characters, writing U+FFFD",
			"format", string(format),
			"literals", n)
	}
}

// release closes a sink on a best-effort basis. The rendered text has already
// been taken, so a failure is logged and dropped.
func (s *Serializer) release(out sink, format Format) {
	if err := out.Close(); err != nil {
		s.metrics.ObserveCleanupFailure()
		s.log().Warn("Failed to close render sink",
			"format", string(format),
			"error", err)
	}
}

var defaultSerializer = NewSerializer(nil, nil)

// Render serializes g with a serializer that logs through slog.Default.
func Render(g *graph.Graph, format Format) string {
	return defaultSerializer.Render(g, format)
}
