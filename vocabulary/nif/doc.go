// Package nif provides the NIF 2.0 core vocabulary used to describe annotated
// text spans: offsets, string content, reference contexts and the RFC 5147
// addressing scheme.
//
// # Semstreams Integration
//
// This package follows semstreams vocabulary patterns:
//   - Predicates use three-level dotted notation (domain.category.property)
//   - Predicates are registered in init() using vocabulary.Register()
//   - IRI mappings use vocabulary.WithIRI() for RDF export compatibility
//
// # Namespaces
//
// Three prefixes are bound in every exported document:
//
//	rdf    → http://www.w3.org/1999/02/22-rdf-syntax-ns#
//	itsrdf → http://www.w3.org/2005/11/its/rdf#
//	nif    → http://persistence.uni-leipzig.org/nlp2rdf/ontologies/nif-core#
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/c360studio/semnif/vocabulary/nif"
package nif
