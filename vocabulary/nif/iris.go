package nif

// Prefix names bound in serialized documents.
const (
	PrefixRDF    = "rdf"
	PrefixITSRDF = "itsrdf"
	PrefixNIF    = "nif"
)

// Namespace bases.
const (
	// RDFNamespace is the RDF core syntax namespace.
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// ITSRDFNamespace is the Internationalization Tag Set RDF namespace.
	ITSRDFNamespace = "http://www.w3.org/2005/11/its/rdf#"

	// Namespace is the NIF 2.0 core ontology namespace.
	Namespace = "http://persistence.uni-leipzig.org/nlp2rdf/ontologies/nif-core#"
)

// RDFType is rdf:type.
const RDFType = RDFNamespace + "type"

// Class IRIs.
const (
	// ClassRFC5147String marks a subject addressed with an RFC 5147
	// char=begin,end fragment.
	ClassRFC5147String = Namespace + "RFC5147String"

	// ClassContext marks a subject that is itself the context of its spans.
	ClassContext = Namespace + "Context"
)

// Property IRIs.
const (
	// PropBeginIndex is the inclusive start offset of a span.
	PropBeginIndex = Namespace + "beginIndex"

	// PropEndIndex is the exclusive end offset of a span.
	PropEndIndex = Namespace + "endIndex"

	// PropReferenceContext links a span to the context it was taken from.
	PropReferenceContext = Namespace + "referenceContext"

	// PropIsString carries the text covered by a span or context.
	PropIsString = Namespace + "isString"
)

// Prefixes returns the prefix table bound in every exported document.
func Prefixes() map[string]string {
	return map[string]string{
		PrefixRDF:    RDFNamespace,
		PrefixITSRDF: ITSRDFNamespace,
		PrefixNIF:    Namespace,
	}
}
