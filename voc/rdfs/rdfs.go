// Package rdfs contains constants of the RDF Schema vocabulary (RDFS).
package rdfs

import "github.com/rdfcanon/rdfcanon/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://www.w3.org/2000/01/rdf-schema#`
	Prefix = `rdfs`
)

const (
	// Classes

	// The class resource, everything.
	Resource = NS + `Resource`
	// The class of classes.
	Class = NS + `Class`
	// The class of literal values, eg. textual strings and integers.
	Literal = NS + `Literal`
	// The class of RDF containers.
	Container = NS + `Container`
	// The class of RDF datatypes.
	Datatype = NS + `Datatype`
	// The class of container membership properties, rdf:_1, rdf:_2, ..., all sub-properties of 'member'.
	ContainerMembershipProperty = NS + `ContainerMembershipProperty`

	// Properties

	// The subject is a subclass of a class.
	SubClassOf = NS + `subClassOf`
	// The subject is a subproperty of a property.
	SubPropertyOf = NS + `subPropertyOf`
	// A description of the subject resource.
	Comment = NS + `comment`
	// A human-readable name for the subject.
	Label = NS + `label`
	// A domain of the subject property.
	Domain = NS + `domain`
	// A range of the subject property.
	Range = NS + `range`
	// Further information about the subject resource.
	SeeAlso = NS + `seeAlso`
	// The definition of the subject resource.
	IsDefinedBy = NS + `isDefinedBy`
	// A member of the subject resource.
	Member = NS + `member`
)
