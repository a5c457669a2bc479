// Package xsd contains the XML Schema Definition datatype IRIs referenced
// by the RDF 1.1 plain-literal defaulting rule (§9).
package xsd

import "github.com/rdfcanon/rdfcanon/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://www.w3.org/2001/XMLSchema#`
	Prefix = `xsd`
)

const (
	String  = NS + `string`
	Boolean = NS + `boolean`
	Decimal = NS + `decimal`
	Integer = NS + `integer`
	Float   = NS + `float`
	Double  = NS + `double`
	AnyURI  = NS + `anyURI`
)
