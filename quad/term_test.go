package quad

import "testing"

func TestGraphValidateRejectsNonIRIOrBlankSubject(t *testing.T) {
	g := Graph{Statements: []Statement{
		{Subject: NewLiteral("bad", "", ""), Predicate: IRI("http://ex/p"), Object: IRI("http://ex/o")},
	}}
	if err := g.Validate(); err == nil {
		t.Fatal("expected an input-defect error for a literal subject")
	}
}

func TestGraphValidateAcceptsWellFormedIRIs(t *testing.T) {
	g := Graph{Statements: []Statement{
		{Subject: IRI("http://ex/a"), Predicate: IRI("http://ex/p"), Object: IRI("http://ex/b")},
		{Subject: BlankNode("b0"), Predicate: IRI("http://ex/q"), Object: NewLiteral("x", "", "")},
	}}
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error for well-formed IRIs: %v", err)
	}
}

// A malformed IDNA host in any IRI position - subject, predicate, or
// object - is a §7 kind-1 "unresolvable IRI" input defect.
func TestGraphValidateRejectsUnresolvableAuthority(t *testing.T) {
	bad := IRI("http://xn--/a")
	cases := []Statement{
		{Subject: bad, Predicate: IRI("http://ex/p"), Object: IRI("http://ex/o")},
		{Subject: IRI("http://ex/a"), Predicate: bad, Object: IRI("http://ex/o")},
		{Subject: IRI("http://ex/a"), Predicate: IRI("http://ex/p"), Object: bad},
	}
	for i, st := range cases {
		g := Graph{Statements: []Statement{st}}
		if err := g.Validate(); err == nil {
			t.Fatalf("case %d: expected an unresolvable-IRI error for %+v", i, st)
		}
	}
}
