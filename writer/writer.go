// Package writer implements the base serialization orchestrator (§4.6):
// it ingests a graph, builds the sorted index, resolves the namespace
// table, relabels blank nodes, and drives a Format implementation through
// header/subject/footer hooks. writer/turtle and writer/rdfxml are its two
// Format implementations.
package writer

import (
	"io"
	"strings"
	"time"

	"github.com/rdfcanon/rdfcanon/clog"
	"github.com/rdfcanon/rdfcanon/internal/compare"
	"github.com/rdfcanon/rdfcanon/internal/index"
	"github.com/rdfcanon/rdfcanon/internal/relabel"
	"github.com/rdfcanon/rdfcanon/metrics"
	"github.com/rdfcanon/rdfcanon/quad"
	"github.com/rdfcanon/rdfcanon/voc"
)

// Format is the set of hooks a concrete syntax (Turtle, RDF/XML) supplies
// to Base. Base calls them in the order described at §4.6: WriteHeader
// once, then WriteSubjectTriples once per subject (ontology subjects
// first, both halves in sorted order) separated by WriteSubjectSeparator,
// then WriteFooter once.
type Format interface {
	WriteHeader(b *Base) error
	WriteSubjectTriples(b *Base, subj quad.Term, preds []index.PredicateEntry) error
	WriteSubjectSeparator(b *Base) error
	WriteFooter(b *Base) error
}

// Base orchestrates one serialization. Format hooks read graph state
// through its accessor methods and write output bytes through WriteString.
type Base struct {
	Config Config

	sink   io.WriteCloser
	format Format
	err    error // sticky: once set, further writes are no-ops

	idx      *index.Index
	ctx      *compare.Context
	ns       *voc.Table
	labels   map[quad.BlankNode]string
	baseIRI  string
	diags    []index.Diagnostic
	subjByID map[string]index.SubjectEntry
	inlined  map[quad.BlankNode]bool
}

// New returns a Base ready to Serialize onto sink using format, once
// configured by cfg.
func New(sink io.WriteCloser, cfg Config, format Format) *Base {
	return &Base{Config: cfg.WithDefaults(), sink: sink, format: format}
}

// Index returns the sorted graph index built during Serialize.
func (b *Base) Index() *index.Index { return b.idx }

// Namespaces returns the namespace table used to resolve QNames.
func (b *Base) Namespaces() *voc.Table { return b.ns }

// Context returns the comparison context, for format hooks that need to
// order collection members or re-check blank-node structure.
func (b *Base) Context() *compare.Context { return b.ctx }

// BaseIRI returns the resolved base IRI (explicit, inferred, or "").
func (b *Base) BaseIRI() string { return b.baseIRI }

// Diagnostics returns the non-fatal diagnostics accumulated during
// Serialize (§7 kind 2).
func (b *Base) Diagnostics() []index.Diagnostic { return b.diags }

// BlankLabel returns bn's canonical "_:a<k>" label (§4.5).
func (b *Base) BlankLabel(bn quad.BlankNode) string {
	if l, ok := b.labels[bn]; ok {
		return "_:" + l
	}
	return bn.String()
}

// SubjectEntry looks up subj's sorted predicate list, for Format hooks
// that recurse into a nested subject (an inlined blank-node object).
func (b *Base) SubjectEntry(subj quad.Term) (index.SubjectEntry, bool) {
	e, ok := b.subjByID[subj.String()]
	return e, ok
}

// ShouldInline reports whether bn should be rendered nested ("[ ... ]" in
// Turtle, a nested element in RDF/XML) at its sole reference point rather
// than by a "_:label" reference and a separate top-level subject block
// (§4.7). Only a blank node referenced as an object exactly once qualifies:
// inlining the same node at two object positions would fork it into two
// distinct blank nodes on re-parse, so a multiply-referenced node always
// falls back to its label.
func (b *Base) ShouldInline(bn quad.BlankNode) bool { return b.inlined[bn] }

// WriteString appends s to the output sink. Once a write fails, every
// subsequent call is a silent no-op (the sticky-err pattern quad/nquads
// writers use); Serialize reports the first failure as ErrWriterIO.
func (b *Base) WriteString(s string) {
	if b.err != nil {
		return
	}
	_, b.err = io.WriteString(b.sink, s)
}

// Serialize runs the full lifecycle of §4.6 against g: validate, index,
// relabel, resolve base IRI, then the format's header/subject/footer hooks.
func (b *Base) Serialize(g quad.Graph) (err error) {
	format := b.Config.TargetFormat
	timer := metricsTimer(format)
	defer func() {
		timer()
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.Serializations.WithLabelValues(format, outcome).Inc()
	}()
	// The sink is released on every exit path, including errors (§5).
	defer func() {
		if cerr := b.sink.Close(); err == nil && cerr != nil {
			err = wrapIO(cerr)
		}
	}()

	if verr := b.Config.Validate(); verr != nil {
		return verr
	}
	if verr := g.Validate(); verr != nil {
		return &Error{Kind: ErrInputDefect, Err: verr}
	}

	b.ctx = &compare.Context{Inline: b.Config.InlineBlankNodes}
	idx, diags, ierr := index.Build(&g, b.ctx)
	if ierr != nil {
		return &Error{Kind: ErrInputDefect, Err: ierr}
	}
	b.idx = idx
	b.diags = diags
	for _, d := range diags {
		clog.Diagnostic(d.Message)
	}

	b.subjByID = make(map[string]index.SubjectEntry, len(idx.Sorted))
	for _, e := range idx.Sorted {
		b.subjByID[e.Subject.String()] = e
	}

	b.labels = relabel.Labels(idx)
	b.ctx.Labels = b.labels

	if b.Config.InlineBlankNodes {
		if cyc := relabel.DetectCycle(idx); len(cyc) > 0 {
			return &Error{Kind: ErrInputDefect, Err: cycleError(cyc)}
		}
		if bn := subjectOnlyBlankNode(&g, idx); bn != "" {
			return &Error{Kind: ErrInputDefect, Err: subjectOnlyError(bn)}
		}
	}

	if b.Config.InlineBlankNodes {
		occurrences := make(map[quad.BlankNode]int)
		for _, st := range g.Statements {
			if bn, ok := st.Object.(quad.BlankNode); ok {
				occurrences[bn]++
			}
		}
		b.inlined = make(map[quad.BlankNode]bool, len(occurrences))
		for bn, n := range occurrences {
			if n == 1 {
				b.inlined[bn] = true
			}
		}
	}

	b.baseIRI = b.Config.BaseIri
	if b.baseIRI == "" && b.Config.InferBaseIri && len(idx.Ontologies) > 0 {
		if iri, ok := idx.Ontologies[0].(quad.IRI); ok {
			b.baseIRI = string(iri)
		}
	}

	b.ns = voc.NewTable(g.Prefixes)

	if herr := b.format.WriteHeader(b); herr != nil {
		return wrapIO(herr)
	}

	ontologySet := make(map[string]bool, len(idx.Ontologies))
	for _, o := range idx.Ontologies {
		ontologySet[o.String()] = true
	}

	first := true
	emit := func(e index.SubjectEntry) error {
		if !first {
			if serr := b.format.WriteSubjectSeparator(b); serr != nil {
				return wrapIO(serr)
			}
		}
		first = false
		if serr := b.format.WriteSubjectTriples(b, e.Subject, e.Predicates); serr != nil {
			return wrapIO(serr)
		}
		return nil
	}

	skip := func(subj quad.Term) bool {
		bn, ok := subj.(quad.BlankNode)
		return ok && b.inlined[bn]
	}

	for _, o := range idx.Ontologies {
		if skip(o) {
			continue
		}
		if e, ok := b.subjByID[o.String()]; ok {
			if serr := emit(e); serr != nil {
				return serr
			}
		}
	}
	for _, e := range idx.Sorted {
		if ontologySet[e.Subject.String()] || skip(e.Subject) {
			continue
		}
		if serr := emit(e); serr != nil {
			return serr
		}
	}

	if ferr := b.format.WriteFooter(b); ferr != nil {
		return wrapIO(ferr)
	}

	if b.err != nil {
		return wrapIO(b.err)
	}
	metrics.StatementsServed.Add(float64(len(g.Statements)))
	return nil
}

func wrapIO(err error) error {
	if err == nil {
		return nil
	}
	if werr, ok := err.(*Error); ok {
		return werr
	}
	return &Error{Kind: ErrWriterIO, Err: err}
}

// subjectOnlyBlankNode returns the first blank node (in idx.BlankNodes
// order) that appears only as a subject and never as an object, or "" if
// none does. inlineBlankNodes cannot legally represent such a node (§7).
func subjectOnlyBlankNode(g *quad.Graph, idx *index.Index) quad.BlankNode {
	appearsAsObject := make(map[quad.BlankNode]bool)
	for _, st := range g.Statements {
		if bn, ok := st.Object.(quad.BlankNode); ok {
			appearsAsObject[bn] = true
		}
	}
	for _, bn := range idx.BlankNodes {
		if _, isSubject := idx.Unsorted[bn]; isSubject && !appearsAsObject[bn] {
			return bn
		}
	}
	return ""
}

func metricsTimer(format string) func() {
	hist := metrics.SerializeDuration.WithLabelValues(format)
	start := time.Now()
	return func() { hist.Observe(time.Since(start).Seconds()) }
}

type blankNodeError struct {
	reason  string
	members []quad.BlankNode
}

func (e *blankNodeError) Error() string {
	labels := make([]string, len(e.members))
	for i, m := range e.members {
		labels[i] = string(m)
	}
	return e.reason + ": " + strings.Join(labels, ", ")
}

func cycleError(cyc []quad.BlankNode) error {
	return &blankNodeError{reason: "inlineBlankNodes: blank-node cycle", members: cyc}
}

func subjectOnlyError(bn quad.BlankNode) error {
	return &blankNodeError{reason: "inlineBlankNodes: blank-node subject never appears as an object", members: []quad.BlankNode{bn}}
}
