package compare

import (
	"github.com/rdfcanon/rdfcanon/quad"
	"github.com/rdfcanon/rdfcanon/voc/rdf"
)

var (
	rdfFirstIRI = quad.IRI(rdf.First)
	rdfRestIRI  = quad.IRI(rdf.Rest)
	rdfNilIRI   = quad.IRI(rdf.Nil)
)

// IsCollection reports whether b is the head of an RDF collection (§4.2
// "Collection detection"): a chain of blank nodes each carrying exactly an
// rdf:first and an rdf:rest, terminating at rdf:nil. It returns the member
// terms in list order. A blank node with any extraneous outbound predicate,
// a missing first/rest pair, or a rest chain that never reaches rdf:nil is
// not a collection.
func IsCollection(b quad.BlankNode, outbound map[quad.BlankNode][]quad.Statement) (members []quad.Term, ok bool) {
	current := b
	seen := make(map[quad.BlankNode]bool)
	for {
		if seen[current] {
			return nil, false // cyclic rest chain, not a well-formed list
		}
		seen[current] = true

		stmts := outbound[current]
		if len(stmts) != 2 {
			return nil, false
		}
		var first quad.Term
		var rest quad.Term
		var haveFirst, haveRest bool
		for _, st := range stmts {
			switch st.Predicate {
			case rdfFirstIRI:
				if haveFirst {
					return nil, false
				}
				first, haveFirst = st.Object, true
			case rdfRestIRI:
				if haveRest {
					return nil, false
				}
				rest, haveRest = st.Object, true
			default:
				return nil, false
			}
		}
		if !haveFirst || !haveRest {
			return nil, false
		}
		members = append(members, first)

		if iri, isIRI := rest.(quad.IRI); isIRI {
			if iri != rdfNilIRI {
				return nil, false
			}
			return members, true
		}
		bn, isBlank := rest.(quad.BlankNode)
		if !isBlank {
			return nil, false
		}
		current = bn
	}
}

// AllResources reports whether every member is an IRI or blank node — the
// extra constraint RDF/XML's parseType="Collection" form requires (§4.2).
func AllResources(members []quad.Term) bool {
	for _, m := range members {
		switch m.(type) {
		case quad.IRI, quad.BlankNode:
		default:
			return false
		}
	}
	return true
}
