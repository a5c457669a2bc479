package compare

import (
	"testing"

	"github.com/rdfcanon/rdfcanon/quad"
)

func TestTermsVariantRank(t *testing.T) {
	ctx := &Context{}
	iri := quad.IRI("http://ex/a")
	bn := quad.BlankNode("b0")
	lit := quad.NewLiteral("x", "", "")
	if ctx.Terms(iri, bn) >= 0 {
		t.Fatal("expected IRI before BlankNode")
	}
	if ctx.Terms(bn, lit) >= 0 {
		t.Fatal("expected BlankNode before Literal")
	}
	if ctx.Terms(iri, lit) >= 0 {
		t.Fatal("expected IRI before Literal")
	}
}

func TestTermsLiteralOrder(t *testing.T) {
	ctx := &Context{}
	a := quad.NewLiteral("x", "", "")
	b := quad.NewLiteral("x", "en", "")
	if ctx.Terms(a, b) >= 0 {
		t.Fatal("expected absent language before present language")
	}
	c := quad.NewLiteral("x", "en", "")
	d := quad.NewLiteral("x", "fr", "")
	if ctx.Terms(c, d) >= 0 {
		t.Fatal("expected lexicographic language ordering")
	}
}

func TestCompareBlankNodesStructural(t *testing.T) {
	p := quad.IRI("http://ex/p")
	a, b := quad.BlankNode("a"), quad.BlankNode("b")
	outbound := map[quad.BlankNode][]quad.Statement{
		a: {{Subject: a, Predicate: p, Object: quad.NewLiteral("1", "", "")}},
		b: {{Subject: b, Predicate: p, Object: quad.NewLiteral("2", "", "")}},
	}
	ctx := &Context{Outbound: outbound}
	if ctx.Terms(a, b) >= 0 {
		t.Fatal("expected a (lower structural content) before b")
	}
}

func TestCompareBlankNodesCyclic(t *testing.T) {
	p := quad.IRI("http://ex/p")
	a, b := quad.BlankNode("a"), quad.BlankNode("b")
	outbound := map[quad.BlankNode][]quad.Statement{
		a: {{Subject: a, Predicate: p, Object: b}},
		b: {{Subject: b, Predicate: p, Object: a}},
	}
	ctx := &Context{Outbound: outbound, Labels: map[quad.BlankNode]string{"a": "a0", "b": "a1"}}
	// Must terminate and be a consistent total order, not panic or loop.
	r1 := ctx.Terms(a, b)
	r2 := ctx.Terms(b, a)
	if (r1 < 0) == (r2 < 0) && r1 != 0 {
		t.Fatalf("comparator not antisymmetric: %d vs %d", r1, r2)
	}
}

func TestIsCollection(t *testing.T) {
	b0, b1 := quad.BlankNode("b0"), quad.BlankNode("b1")
	x := quad.IRI("http://ex/x")
	y := quad.IRI("http://ex/y")
	outbound := map[quad.BlankNode][]quad.Statement{
		b0: {
			{Subject: b0, Predicate: rdfFirstIRI, Object: x},
			{Subject: b0, Predicate: rdfRestIRI, Object: b1},
		},
		b1: {
			{Subject: b1, Predicate: rdfFirstIRI, Object: y},
			{Subject: b1, Predicate: rdfRestIRI, Object: rdfNilIRI},
		},
	}
	members, ok := IsCollection(b0, outbound)
	if !ok || len(members) != 2 || !quad.Equal(members[0], x) || !quad.Equal(members[1], y) {
		t.Fatalf("unexpected collection detection: %v %v", members, ok)
	}
	if !AllResources(members) {
		t.Fatal("expected all members to be resources")
	}
}

func TestIsCollectionRejectsExtraPredicate(t *testing.T) {
	b0 := quad.BlankNode("b0")
	x := quad.IRI("http://ex/x")
	extra := quad.IRI("http://ex/extra")
	outbound := map[quad.BlankNode][]quad.Statement{
		b0: {
			{Subject: b0, Predicate: rdfFirstIRI, Object: x},
			{Subject: b0, Predicate: rdfRestIRI, Object: rdfNilIRI},
			{Subject: b0, Predicate: extra, Object: x},
		},
	}
	if _, ok := IsCollection(b0, outbound); ok {
		t.Fatal("expected collection detection to reject an extraneous predicate")
	}
}
