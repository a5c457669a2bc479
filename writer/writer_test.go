package writer

import (
	"strings"
	"testing"

	"github.com/rdfcanon/rdfcanon/internal/index"
	"github.com/rdfcanon/rdfcanon/quad"
)

type nopCloser struct{ *strings.Builder }

func (nopCloser) Close() error { return nil }

type recordingFormat struct {
	subjects []string
	headers  int
	footers  int
}

func (f *recordingFormat) WriteHeader(b *Base) error { f.headers++; return nil }
func (f *recordingFormat) WriteSubjectTriples(b *Base, subj quad.Term, preds []index.PredicateEntry) error {
	f.subjects = append(f.subjects, subj.String())
	return nil
}
func (f *recordingFormat) WriteSubjectSeparator(b *Base) error { return nil }
func (f *recordingFormat) WriteFooter(b *Base) error           { f.footers++; return nil }

func TestSerializeOrdersOntologiesFirst(t *testing.T) {
	var buf strings.Builder
	rf := &recordingFormat{}
	b := New(nopCloser{&buf}, Config{}, rf)

	a := quad.IRI("http://ex/a")
	o := quad.IRI("http://ex/o")
	typ := quad.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	ontology := quad.IRI("http://www.w3.org/2002/07/owl#Ontology")
	label := quad.IRI("http://www.w3.org/2000/01/rdf-schema#label")

	g := quad.Graph{Statements: []quad.Statement{
		{Subject: a, Predicate: label, Object: quad.NewLiteral("x", "", "")},
		{Subject: o, Predicate: typ, Object: ontology},
	}}
	if err := b.Serialize(g); err != nil {
		t.Fatal(err)
	}
	if rf.headers != 1 || rf.footers != 1 {
		t.Fatalf("expected exactly one header/footer call, got %d/%d", rf.headers, rf.footers)
	}
	if len(rf.subjects) != 2 || rf.subjects[0] != o.String() {
		t.Fatalf("expected ontology subject first, got %+v", rf.subjects)
	}
}

func TestSerializeRejectsInvalidConfig(t *testing.T) {
	var buf strings.Builder
	b := New(nopCloser{&buf}, Config{StringDataType: "bogus"}, &recordingFormat{})
	err := b.Serialize(quad.Graph{})
	if err == nil {
		t.Fatal("expected a configuration error")
	}
	werr, ok := err.(*Error)
	if !ok || werr.Kind != ErrConfiguration {
		t.Fatalf("expected ErrConfiguration, got %#v", err)
	}
}

func TestSerializeRejectsBlankNodeCycleWhenInlining(t *testing.T) {
	var buf strings.Builder
	b := New(nopCloser{&buf}, Config{InlineBlankNodes: true}, &recordingFormat{})
	p := quad.IRI("http://ex/p")
	b0, b1 := quad.BlankNode("b0"), quad.BlankNode("b1")
	g := quad.Graph{Statements: []quad.Statement{
		{Subject: b0, Predicate: p, Object: b1},
		{Subject: b1, Predicate: p, Object: b0},
	}}
	err := b.Serialize(g)
	if err == nil {
		t.Fatal("expected an input-defect error for a blank-node cycle")
	}
	werr, ok := err.(*Error)
	if !ok || werr.Kind != ErrInputDefect {
		t.Fatalf("expected ErrInputDefect, got %#v", err)
	}
}

func TestSerializeEmptyGraph(t *testing.T) {
	var buf strings.Builder
	rf := &recordingFormat{}
	b := New(nopCloser{&buf}, Config{}, rf)
	if err := b.Serialize(quad.Graph{}); err != nil {
		t.Fatal(err)
	}
	if len(rf.subjects) != 0 {
		t.Fatalf("expected no subjects for an empty graph, got %+v", rf.subjects)
	}
}
