// Package rdf contains constants of the RDF Concepts Vocabulary (RDF).
package rdf

import "github.com/rdfcanon/rdfcanon/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://www.w3.org/1999/02/22-rdf-syntax-ns#`
	Prefix = `rdf`
)

const (
	// Types

	// The datatype of RDF literals storing fragments of HTML content.
	HTML = NS + `HTML`
	// The datatype of language-tagged string values.
	LangString = NS + `langString`
	// The class of plain (i.e. untyped) literal values, as used in RIF and OWL 2.
	PlainLiteral = NS + `PlainLiteral`
	// The class of RDF properties.
	Property = NS + `Property`
	// The class of RDF statements.
	Statement = NS + `Statement`
	// The class of unordered containers.
	Bag = NS + `Bag`
	// The class of ordered containers.
	Seq = NS + `Seq`
	// The class of containers of alternatives.
	Alt = NS + `Alt`
	// The class of RDF Lists.
	List = NS + `List`
	// The datatype of XML literal values.
	XMLLiteral = NS + `XMLLiteral`

	// Properties

	// The subject is an instance of a class.
	Type = NS + `type`
	// Idiomatic property used for structured values.
	Value = NS + `value`
	// The subject of the subject RDF statement.
	Subject = NS + `subject`
	// The predicate of the subject RDF statement.
	Predicate = NS + `predicate`
	// The object of the subject RDF statement.
	Object = NS + `object`
	// The empty list; the rest of a list is nil when it has no more items.
	Nil = NS + `nil`
	// The first item in the subject RDF list.
	First = NS + `first`
	// The rest of the subject RDF list after the first item.
	Rest = NS + `rest`
)
