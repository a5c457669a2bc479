// Package owl contains constants of the Web Ontology Language (OWL).
package owl

import "github.com/rdfcanon/rdfcanon/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://www.w3.org/2002/07/owl#`
	Prefix = `owl`
)

const (
	UnionOf        = NS + `unionOf`
	Restriction    = NS + `Restriction`
	OnProperty     = NS + `onProperty`
	Cardinality    = NS + `cardinality`
	MaxCardinality = NS + `maxCardinality`

	// Ontology marks the subject of an ontology header (§3 "ontology
	// subject"); the sorted-index and base-IRI inference logic key off it.
	Ontology = NS + `Ontology`

	// NamedIndividual, Class, ObjectProperty, DatatypeProperty, and
	// AnnotationProperty (then Ontology above) are the preferred rdf:type
	// values the RDF/XML writer consults, in that priority order, to pick a
	// subject's enclosing element name (§4.2 "Preferred RDF types").
	NamedIndividual    = NS + `NamedIndividual`
	Class              = NS + `Class`
	ObjectProperty     = NS + `ObjectProperty`
	DatatypeProperty   = NS + `DatatypeProperty`
	AnnotationProperty = NS + `AnnotationProperty`

	EquivalentClass    = NS + `equivalentClass`
	EquivalentProperty = NS + `equivalentProperty`

	// Thing is discarded from the preferred-type search when a subject
	// carries it alongside another, more specific, type (§4.8).
	Thing = NS + `Thing`
)
