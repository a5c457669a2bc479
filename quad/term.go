// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package quad defines the RDF term model and statement shape consumed by
// the canonical serialization engine.
//
// A Term is one of three variants: IRI, BlankNode, or Literal. Traversals
// pattern-match on the concrete type rather than on an inheritance
// hierarchy; termSealed exists only to keep Term closed to this package's
// three implementations.
package quad

import (
	"strings"

	"github.com/rdfcanon/rdfcanon/voc"
	"github.com/rdfcanon/rdfcanon/voc/rdf"
	"github.com/rdfcanon/rdfcanon/voc/xsd"
)

// Term is any RDF value usable as a subject, predicate, or object.
type Term interface {
	// String renders a debug form (e.g. "<http://ex/a>", "_:b0", `"x"@en`).
	// Format writers never call this for final output; they have their own
	// QName/escaping rules per §4.7/§4.8.
	String() string
	termSealed()
}

// IRI is an RDF Internationalized Resource Identifier (ex: <http://ex/a>).
type IRI string

func (s IRI) String() string { return `<` + string(s) + `>` }
func (IRI) termSealed()      {}

// Namespace returns the longest prefix of s ending at the last '#', '/', or
// ':' in the IRI, and LocalName returns the remainder. When no such
// character is found, Namespace is "" and LocalName is the whole IRI.
func (s IRI) Namespace() string {
	ns, _ := s.split()
	return ns
}

// LocalName returns the suffix of the IRI after its Namespace.
func (s IRI) LocalName() string {
	_, local := s.split()
	return local
}

func (s IRI) split() (namespace, local string) {
	str := string(s)
	cut := -1
	for i, r := range str {
		switch r {
		case '#', '/', ':':
			cut = i + 1
		}
	}
	if cut < 0 {
		return "", str
	}
	return str[:cut], str[cut:]
}

// BlankNode is an RDF Blank Node (ex: _:b0). Its identifier has no meaning
// outside one serialization (§1 non-goals: original labels are not
// preserved).
type BlankNode string

func (s BlankNode) String() string { return `_:` + string(s) }
func (BlankNode) termSealed()      {}

// Literal is an RDF value with a lexical form and either a language tag or
// a datatype IRI (never both, per RDF 1.1).
type Literal struct {
	Lexical  string
	Lang     string // "" when absent
	Datatype IRI    // "" defers to the RDF 1.1 default below
}

func (l Literal) termSealed() {}

func (l Literal) String() string {
	switch {
	case l.Lang != "":
		return `"` + l.Lexical + `"@` + l.Lang
	default:
		return `"` + l.Lexical + `"^^` + string(l.EffectiveDatatype())
	}
}

// EffectiveDatatype applies the RDF 1.1 plain-literal defaulting rule
// (§9 "String/langString defaulting"): a language-tagged literal is always
// rdf:langString; otherwise the literal is xsd:string unless some other
// datatype was given explicitly.
func (l Literal) EffectiveDatatype() IRI {
	switch {
	case l.Lang != "":
		return IRI(rdf.LangString)
	case l.Datatype != "":
		return l.Datatype
	default:
		return IRI(xsd.String)
	}
}

// IsPlainString reports whether l's effective datatype is xsd:string with
// no language tag — the case the string-datatype policy (§6) can omit.
func (l Literal) IsPlainString() bool {
	return l.Lang == "" && (l.Datatype == "" || l.Datatype == IRI(xsd.String))
}

// NewLiteral builds a Literal, applying the RDF 1.1 defaulting rule so every
// value constructed through it already carries its effective datatype in
// Datatype when lang is empty.
func NewLiteral(lexical, lang, datatype string) Literal {
	l := Literal{Lexical: lexical, Lang: lang, Datatype: IRI(datatype)}
	if lang == "" && datatype == "" {
		l.Datatype = IRI(xsd.String)
	}
	return l
}

// Equal reports term equality: IRIs and blank nodes compare by identifier,
// literals by (lexical, language, datatype) per §4.1.
func Equal(a, b Term) bool {
	switch av := a.(type) {
	case IRI:
		bv, ok := b.(IRI)
		return ok && av == bv
	case BlankNode:
		bv, ok := b.(BlankNode)
		return ok && av == bv
	case Literal:
		bv, ok := b.(Literal)
		return ok && av.Lexical == bv.Lexical && av.Lang == bv.Lang &&
			av.EffectiveDatatype() == bv.EffectiveDatatype()
	default:
		return false
	}
}

// Statement is an immutable RDF triple: subject ∈ {IRI, BlankNode},
// predicate ∈ IRI, object ∈ Term.
type Statement struct {
	Subject   Term
	Predicate IRI
	Object    Term
}

// Key returns a stable string form of the statement suitable for set
// membership / Bloom-filter keys; it is not a serialization format.
func (s Statement) Key() string {
	var b strings.Builder
	b.WriteString(s.Subject.String())
	b.WriteByte(' ')
	b.WriteString(s.Predicate.String())
	b.WriteByte(' ')
	b.WriteString(s.Object.String())
	return b.String()
}

// Graph is a multiset of statements plus the prefix table declared for it.
// The empty-string prefix is the default (unprefixed) namespace.
type Graph struct {
	Statements []Statement
	Prefixes   map[string]string
}

// Validate enforces the Term variant constraints the type system alone
// cannot (subject must be IRI/BlankNode, predicate must be IRI), and checks
// every IRI's authority component with voc.ValidateAuthority: it is the
// single place §7 kind-1 "invalid subject/predicate" and "unresolvable
// IRI" input defects surface from, rather than checks scattered through
// every consumer.
func (g Graph) Validate() error {
	for _, st := range g.Statements {
		switch subj := st.Subject.(type) {
		case IRI:
			if err := validateIRI(subj); err != nil {
				return err
			}
		case BlankNode:
		default:
			return &InputDefectError{Reason: "subject must be an IRI or blank node: " + st.Subject.String()}
		}
		if _, ok := st.Object.(Term); !ok {
			return &InputDefectError{Reason: "object is not a term"}
		}
		if err := validateIRI(st.Predicate); err != nil {
			return err
		}
		if obj, ok := st.Object.(IRI); ok {
			if err := validateIRI(obj); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateIRI(iri IRI) error {
	if err := voc.ValidateAuthority(string(iri)); err != nil {
		return &InputDefectError{Reason: "unresolvable IRI " + string(iri) + ": " + err.Error()}
	}
	return nil
}

// InputDefectError reports a graph that cannot be serialized as given
// (§7 kind 1).
type InputDefectError struct {
	Reason string
}

func (e *InputDefectError) Error() string { return "quad: input defect: " + e.Reason }
