// Package index builds the sorted graph index (§4.3): the subject ->
// predicate -> object structure the writers iterate, plus the sorted
// ontology and blank-node lists it is derived alongside.
package index

import (
	"sort"

	boom "github.com/tylertreat/BoomFilters"

	"github.com/rdfcanon/rdfcanon/internal/compare"
	"github.com/rdfcanon/rdfcanon/quad"
	"github.com/rdfcanon/rdfcanon/voc/owl"
	"github.com/rdfcanon/rdfcanon/voc/rdf"
)

// PredicateEntry is one predicate and its sorted object list under a
// subject.
type PredicateEntry struct {
	Predicate quad.IRI
	Objects   []quad.Term
}

// SubjectEntry is one subject and its sorted predicate list.
type SubjectEntry struct {
	Subject    quad.Term
	Predicates []PredicateEntry
}

// Diagnostic is a non-fatal observation surfaced during index construction
// (§7 kind 2 "sort anomaly").
type Diagnostic struct {
	Message string
}

// Index is the sorted view of a Graph that the base writer hands to format
// hooks: subjects in canonical order, each with predicates and objects in
// canonical order, plus the ontology subjects and blank nodes the base
// writer needs for base-IRI inference and relabeling.
type Index struct {
	Sorted     []SubjectEntry
	Ontologies []quad.Term
	BlankNodes []quad.BlankNode

	// Unsorted mirrors the same content as an unordered lookup structure
	// (subject -> predicate -> objects in ingestion order), for lookups by
	// subject such as relabel.DetectCycle's walk over blank-node edges.
	Unsorted map[quad.Term]map[quad.IRI][]quad.Term
}

var (
	rdfTypeIRI     = quad.IRI(rdf.Type)
	owlOntologyIRI = quad.IRI(owl.Ontology)
)

// Build constructs the sorted index from g's statements using ctx's total
// order. It also fills ctx.Outbound (creating it if nil, otherwise adding
// to it) from the blank-node subjects it discovers, since the comparator
// needs that map to order blank nodes structurally while the index itself
// is still being built.
//
// A BoomFilters-backed pre-check flags statements that may repeat an
// earlier one; repeats collapse into a single entry, same as any other
// multiset-to-set projection, and a repeat is reported as a diagnostic only
// when the filter flags it and the exact object map confirms it. The stable
// Bloom filter can forget earlier entries, so a repeat is not guaranteed to
// be reported.
func Build(g *quad.Graph, ctx *compare.Context) (*Index, []Diagnostic, error) {
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}

	var diags []Diagnostic

	unsortedBySubject := make(map[quad.Term]map[quad.IRI]map[string]quad.Term)
	order := make(map[quad.Term][]quad.IRI)
	objOrder := make(map[quad.Term]map[quad.IRI][]string)
	var subjectOrder []quad.Term

	outbound := make(map[quad.BlankNode][]quad.Statement)
	blankSeen := make(map[quad.BlankNode]bool)
	var blankNodes []quad.BlankNode

	seenStatements := boom.NewDefaultStableBloomFilter(uint(len(g.Statements)*2+64), 0.01)
	seenCount := 0

	for _, st := range g.Statements {
		key := []byte(st.Key())
		maybeDup := seenStatements.Test(key)
		seenStatements.Add(key)
		seenCount++

		if bn, ok := st.Subject.(quad.BlankNode); ok {
			outbound[bn] = append(outbound[bn], st)
			if !blankSeen[bn] {
				blankSeen[bn] = true
				blankNodes = append(blankNodes, bn)
			}
		}
		if bn, ok := st.Object.(quad.BlankNode); ok {
			if !blankSeen[bn] {
				blankSeen[bn] = true
				blankNodes = append(blankNodes, bn)
			}
		}

		preds, ok := unsortedBySubject[st.Subject]
		if !ok {
			preds = make(map[quad.IRI]map[string]quad.Term)
			unsortedBySubject[st.Subject] = preds
			objOrder[st.Subject] = make(map[quad.IRI][]string)
			subjectOrder = append(subjectOrder, st.Subject)
		}
		objs, ok := preds[st.Predicate]
		if !ok {
			objs = make(map[string]quad.Term)
			preds[st.Predicate] = objs
			order[st.Subject] = append(order[st.Subject], st.Predicate)
		}
		objKey := st.Object.String()
		if _, dup := objs[objKey]; !dup {
			objs[objKey] = st.Object
			objOrder[st.Subject][st.Predicate] = append(objOrder[st.Subject][st.Predicate], objKey)
		} else if maybeDup {
			diags = append(diags, Diagnostic{Message: "duplicate statement ingested: " + st.Key()})
		}
	}

	if ctx.Outbound == nil {
		ctx.Outbound = outbound
	} else {
		for bn, stmts := range outbound {
			ctx.Outbound[bn] = stmts
		}
	}

	unsorted := make(map[quad.Term]map[quad.IRI][]quad.Term, len(unsortedBySubject))
	// subjects is seeded from subjectOrder, not by ranging unsortedBySubject:
	// map iteration order is randomized per run, and sort.SliceStable only
	// preserves whatever order it's handed ties in. Two structurally
	// identical blank-node subjects tie in compareBlankNodes until labels
	// are assigned, so a randomized seed order would make their relative
	// position nondeterministic across runs on the same graph.
	subjects := make([]quad.Term, len(subjectOrder))
	copy(subjects, subjectOrder)
	for _, subj := range subjects {
		preds := unsortedBySubject[subj]
		flatPreds := make(map[quad.IRI][]quad.Term, len(preds))
		for pred, objs := range preds {
			list := make([]quad.Term, 0, len(objs))
			for _, k := range objOrder[subj][pred] {
				list = append(list, objs[k])
			}
			flatPreds[pred] = list
		}
		unsorted[subj] = flatPreds
	}

	sort.SliceStable(subjects, func(i, j int) bool { return ctx.Terms(subjects[i], subjects[j]) < 0 })

	sorted := make([]SubjectEntry, 0, len(subjects))
	unsortedSize := 0
	sortedSize := 0
	var ontologies []quad.Term

	for _, subj := range subjects {
		predsMap := unsortedBySubject[subj]
		preds := order[subj]
		sort.SliceStable(preds, func(i, j int) bool {
			ri, rj := compare.PredicateRank(preds[i]), compare.PredicateRank(preds[j])
			if ri != rj {
				return ri < rj
			}
			return preds[i] < preds[j]
		})

		entry := SubjectEntry{Subject: subj}
		for _, pred := range preds {
			objs := make([]quad.Term, 0, len(predsMap[pred]))
			for _, k := range objOrder[subj][pred] {
				objs = append(objs, predsMap[pred][k])
			}
			unsortedSize += len(objs)
			sort.SliceStable(objs, func(i, j int) bool { return ctx.Terms(objs[i], objs[j]) < 0 })
			sortedSize += len(objs)
			entry.Predicates = append(entry.Predicates, PredicateEntry{Predicate: pred, Objects: objs})

			if pred == rdfTypeIRI {
				for _, o := range objs {
					if quad.Equal(o, owlOntologyIRI) {
						ontologies = append(ontologies, subj)
					}
				}
			}
		}
		sorted = append(sorted, entry)
	}

	if unsortedSize != sortedSize {
		diags = append(diags, Diagnostic{Message: "sort anomaly: unsorted/sorted object counts differ"})
	}

	sort.SliceStable(ontologies, func(i, j int) bool { return ctx.Terms(ontologies[i], ontologies[j]) < 0 })
	sort.SliceStable(blankNodes, func(i, j int) bool { return ctx.Terms(blankNodes[i], blankNodes[j]) < 0 })

	return &Index{
		Sorted:     sorted,
		Ontologies: ontologies,
		BlankNodes: blankNodes,
		Unsorted:   unsorted,
	}, diags, nil
}
