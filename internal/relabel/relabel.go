// Package relabel assigns canonical blank-node labels by structural
// position (§4.5) and detects blank-node cycles that would make inline
// rendering unsound (§9 "blank-node cycles").
package relabel

import (
	"strconv"

	"github.com/rdfcanon/rdfcanon/internal/index"
	"github.com/rdfcanon/rdfcanon/quad"
)

// Labels walks idx.Sorted in order — each subject, then each predicate's
// sorted objects — and assigns the next "a<k>" label to every blank node
// the first time it is seen, whether as subject or object. Subjects that
// never appear in idx.Sorted's subject list (impossible by construction,
// since index.Build always adds a subject entry for anything it sees as a
// subject) still get a label from idx.BlankNodes, in case the relabeler is
// ever fed an index built a different way.
func Labels(idx *index.Index) map[quad.BlankNode]string {
	labels := make(map[quad.BlankNode]string, len(idx.BlankNodes))
	next := 0
	assign := func(bn quad.BlankNode) {
		if _, ok := labels[bn]; ok {
			return
		}
		labels[bn] = "a" + strconv.Itoa(next)
		next++
	}

	for _, entry := range idx.Sorted {
		if bn, ok := entry.Subject.(quad.BlankNode); ok {
			assign(bn)
		}
		for _, pred := range entry.Predicates {
			for _, obj := range pred.Objects {
				if bn, ok := obj.(quad.BlankNode); ok {
					assign(bn)
				}
			}
		}
	}
	for _, bn := range idx.BlankNodes {
		assign(bn)
	}
	return labels
}

// DetectCycle performs a DFS over blank-node subjects with a
// visited-on-stack set, returning the cycle's members (in traversal order)
// if one exists among blank-node-to-blank-node edges, or nil if the
// blank-node subgraph is acyclic. inlineBlankNodes must refuse to proceed
// when this returns non-nil (§9).
func DetectCycle(idx *index.Index) []quad.BlankNode {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[quad.BlankNode]int, len(idx.BlankNodes))
	var stack []quad.BlankNode

	var visit func(bn quad.BlankNode) []quad.BlankNode
	visit = func(bn quad.BlankNode) []quad.BlankNode {
		color[bn] = gray
		stack = append(stack, bn)
		for _, pred := range idx.Unsorted[bn] {
			for _, obj := range pred {
				next, ok := obj.(quad.BlankNode)
				if !ok {
					continue
				}
				switch color[next] {
				case white:
					if cyc := visit(next); cyc != nil {
						return cyc
					}
				case gray:
					// Found the back edge; slice the stack from next's
					// first occurrence to the end to report just the cycle.
					for i, s := range stack {
						if s == next {
							return append([]quad.BlankNode(nil), stack[i:]...)
						}
					}
				}
			}
		}
		color[bn] = black
		stack = stack[:len(stack)-1]
		return nil
	}

	for _, bn := range idx.BlankNodes {
		if color[bn] == white {
			if cyc := visit(bn); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}
