// Package compare implements the total order over RDF terms, statements,
// and blank-node structure (§4.2) that the sorted index and relabeler build
// on. Every comparison the engine performs — predicate lists, object
// lists, subject lists, collection members — goes through a Context so
// that a single definition of "canonical order" governs all of them.
package compare

import (
	"bytes"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/rdfcanon/rdfcanon/quad"
	"github.com/rdfcanon/rdfcanon/voc/owl"
	"github.com/rdfcanon/rdfcanon/voc/rdf"
	"github.com/rdfcanon/rdfcanon/voc/rdfs"
)

// PredicatePriority lists the "first predicates" (§4.2) that render before
// all others under a subject, in this order. Anything else sorts after the
// last entry, in term order.
var PredicatePriority = []quad.IRI{
	quad.IRI(rdf.Type),
	quad.IRI(rdfs.SubClassOf),
	quad.IRI(rdfs.SubPropertyOf),
	quad.IRI(owl.EquivalentClass),
	quad.IRI(owl.EquivalentProperty),
	quad.IRI(rdfs.Domain),
	quad.IRI(rdfs.Range),
	quad.IRI(rdfs.Label),
	quad.IRI(rdfs.Comment),
}

// PreferredTypes is the ordered preference list (§4.2) used to pick the
// rdf:type that names a subject's enclosing RDF/XML element, and the order
// remaining types are listed in.
var PreferredTypes = []quad.IRI{
	quad.IRI(owl.NamedIndividual),
	quad.IRI(owl.Class),
	quad.IRI(owl.ObjectProperty),
	quad.IRI(owl.DatatypeProperty),
	quad.IRI(owl.AnnotationProperty),
	quad.IRI(owl.Ontology),
}

// PredicateRank returns p's position in PredicatePriority, or
// len(PredicatePriority) if p is not a first predicate.
func PredicateRank(p quad.IRI) int {
	for i, cand := range PredicatePriority {
		if cand == p {
			return i
		}
	}
	return len(PredicatePriority)
}

// TypeRank returns t's position in PreferredTypes, or len(PreferredTypes)
// if t carries no preference.
func TypeRank(t quad.IRI) int {
	for i, cand := range PreferredTypes {
		if cand == t {
			return i
		}
	}
	return len(PreferredTypes)
}

// Context carries the rendering decisions that affect term and statement
// ordering (§3 "Comparison context"). Labels is nil (or incomplete) while
// building the initial sorted index, since canonical labels are only
// assigned afterward (§4.5); once populated it breaks ties between
// structurally-identical blank nodes so re-serialization after relabeling
// stays stable. Outbound is the unsorted subject->statements map, needed to
// compare blank nodes by what they point to. Inline mirrors the
// inlineBlankNodes configuration option; collection detection only matters
// when it, or RDF/XML's parseType="Collection", is in play.
type Context struct {
	Labels   map[quad.BlankNode]string
	Outbound map[quad.BlankNode][]quad.Statement
	Inline   bool

	sigCache    map[quad.BlankNode][32]byte
	sigVisiting map[quad.BlankNode]bool
}

// variantRank fixes IRI < BlankNode < Literal (§4.2 rule 1).
func variantRank(t quad.Term) int {
	switch t.(type) {
	case quad.IRI:
		return 0
	case quad.BlankNode:
		return 1
	case quad.Literal:
		return 2
	default:
		return 3
	}
}

// Terms implements the total order of §4.2 rules 1-4.
func (c *Context) Terms(a, b quad.Term) int {
	ra, rb := variantRank(a), variantRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch av := a.(type) {
	case quad.IRI:
		return strings.Compare(string(av), string(b.(quad.IRI)))
	case quad.Literal:
		bv := b.(quad.Literal)
		if av.Lexical != bv.Lexical {
			return strings.Compare(av.Lexical, bv.Lexical)
		}
		if av.Lang != bv.Lang {
			switch {
			case av.Lang == "":
				return -1
			case bv.Lang == "":
				return 1
			default:
				return strings.Compare(av.Lang, bv.Lang)
			}
		}
		return strings.Compare(string(av.EffectiveDatatype()), string(bv.EffectiveDatatype()))
	case quad.BlankNode:
		return c.compareBlankNodes(av, b.(quad.BlankNode))
	default:
		return 0
	}
}

// compareBlankNodes orders a and b by the byte order of their structural
// signatures. That order is deterministic, but it is not a lexicographic
// order over the nodes' outbound predicate/object content.
func (c *Context) compareBlankNodes(a, b quad.BlankNode) int {
	if a == b {
		return 0
	}
	sigA, sigB := c.structuralSignature(a), c.structuralSignature(b)
	if cmp := bytes.Compare(sigA[:], sigB[:]); cmp != 0 {
		return cmp
	}
	// Structurally indistinguishable: fall back to already-assigned
	// canonical labels (§9 "comparator composition"). Before labels exist,
	// leave them tied; a stable sort then preserves first-encountered
	// order, which is itself what the relabeler's walk assigns labels by.
	la, aok := c.Labels[a]
	lb, bok := c.Labels[b]
	if aok && bok {
		return strings.Compare(la, lb)
	}
	return 0
}

// cycleSignature is returned for a blank node reached while its own
// signature is still being computed, so mutually-referential blank nodes
// terminate with an equal (not infinitely recursive) signature rather than
// looping forever (§9 "comparator composition").
var cycleSignature = blake2b.Sum256([]byte("rdfcanon:cycle"))

// structuralSignature memoizes a hash of b's outbound predicate/object
// structure, recursing into blank-node objects. Memoization plus
// cycleSignature is what keeps this terminating on cyclic graphs.
func (c *Context) structuralSignature(b quad.BlankNode) [32]byte {
	if sig, ok := c.sigCache[b]; ok {
		return sig
	}
	if c.sigVisiting[b] {
		return cycleSignature
	}
	if c.sigVisiting == nil {
		c.sigVisiting = make(map[quad.BlankNode]bool)
	}
	c.sigVisiting[b] = true

	stmts := append([]quad.Statement(nil), c.Outbound[b]...)
	sort.SliceStable(stmts, func(i, j int) bool {
		if stmts[i].Predicate != stmts[j].Predicate {
			return stmts[i].Predicate < stmts[j].Predicate
		}
		return c.Terms(stmts[i].Object, stmts[j].Object) < 0
	})

	var buf bytes.Buffer
	for _, st := range stmts {
		buf.WriteString(string(st.Predicate))
		buf.WriteByte(0)
		buf.WriteString(c.termSignatureBytes(st.Object))
		buf.WriteByte(0)
	}

	delete(c.sigVisiting, b)
	sig := blake2b.Sum256(buf.Bytes())
	if c.sigCache == nil {
		c.sigCache = make(map[quad.BlankNode][32]byte)
	}
	c.sigCache[b] = sig
	return sig
}

func (c *Context) termSignatureBytes(t quad.Term) string {
	switch v := t.(type) {
	case quad.IRI:
		return "I:" + string(v)
	case quad.Literal:
		return "L:" + v.Lexical + "\x1f" + v.Lang + "\x1f" + string(v.EffectiveDatatype())
	case quad.BlankNode:
		sig := c.structuralSignature(v)
		return "B:" + string(sig[:])
	default:
		return ""
	}
}

// Statements orders two statements by subject, then predicate (via
// PredicateRank, then term order), then object.
func (c *Context) Statements(a, b quad.Statement) int {
	if cmp := c.Terms(a.Subject, b.Subject); cmp != 0 {
		return cmp
	}
	if ra, rb := PredicateRank(a.Predicate), PredicateRank(b.Predicate); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if a.Predicate != b.Predicate {
		return strings.Compare(string(a.Predicate), string(b.Predicate))
	}
	return c.Terms(a.Object, b.Object)
}
