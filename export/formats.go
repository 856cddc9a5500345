package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedFormat is returned by ParseFormat for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format specifies the output serialization format.
type Format string

const (
	// FormatRDFXML produces RDF/XML (.rdf) output.
	FormatRDFXML Format = "rdfxml"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatRDFXML: {
		Name:        FormatRDFXML,
		MIMEType:    "application/rdf+xml",
		Extension:   ".rdf",
		Description: "RDF/XML - XML syntax for RDF",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
}

// aliases maps accepted spellings to formats.
var aliases = map[string]Format{
	"rdfxml":    FormatRDFXML,
	"rdf/xml":   FormatRDFXML,
	"rdf-xml":   FormatRDFXML,
	"xml":       FormatRDFXML,
	"rdf":       FormatRDFXML,
	"ntriples":  FormatNTriples,
	"n-triples": FormatNTriples,
	"nt":        FormatNTriples,
	"turtle":    FormatTurtle,
	"ttl":       FormatTurtle,
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// Formats returns the supported formats sorted by name.
func Formats() []Format {
	out := make([]Format, 0, len(FormatRegistry))
	for f := range FormatRegistry {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	_, ok := FormatRegistry[f]
	return ok
}

// ParseFormat resolves a user-supplied format name or alias.
func ParseFormat(name string) (Format, error) {
	if f, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %s (valid: rdfxml, ntriples, turtle)", ErrUnsupportedFormat, name)
}

// FormatForExtension resolves a file extension such as ".ttl".
func FormatForExtension(ext string) (Format, bool) {
	ext = strings.ToLower(ext)
	for f, info := range FormatRegistry {
		if info.Extension == ext {
			return f, true
		}
	}
	return "", false
}
