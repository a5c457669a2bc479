// Package rdfxml implements the RDF/XML writer.Format (§4.8) atop
// internal/xmlstream: the prologue, optional DTD entity subset, the
// <rdf:RDF> root and its namespace declarations, per-subject node
// elements with preferred-type element naming, and per-predicate
// property elements (resource reference, nodeID reference, inline
// nested subject, inline collection, or literal content).
package rdfxml

import (
	"sort"
	"strings"

	"github.com/rdfcanon/rdfcanon/internal/compare"
	"github.com/rdfcanon/rdfcanon/internal/index"
	"github.com/rdfcanon/rdfcanon/internal/xmlstream"
	"github.com/rdfcanon/rdfcanon/quad"
	"github.com/rdfcanon/rdfcanon/voc"
	"github.com/rdfcanon/rdfcanon/voc/owl"
	"github.com/rdfcanon/rdfcanon/voc/rdf"
	"github.com/rdfcanon/rdfcanon/voc/xsd"
	"github.com/rdfcanon/rdfcanon/writer"
)

var (
	rdfTypeIRI   = quad.IRI(rdf.Type)
	owlThingIRI  = quad.IRI(owl.Thing)
	xsdStringIRI = quad.IRI(xsd.String)
)

// Writer is a writer.Format that renders RDF/XML.
type Writer struct {
	x            *xmlstream.Writer
	entitiesByNS map[string]string // populated when useDtdSubset is on
}

// New returns a fresh RDF/XML Writer.
func New() *Writer { return &Writer{} }

// baseSink adapts writer.Base's WriteString into the io.Writer xmlstream
// expects; the sticky-err bookkeeping happens on the Base side, so Write
// always reports the full length and no error, even after a failed write —
// Serialize notices the Base's own sticky error once WriteFooter returns.
type baseSink struct{ b *writer.Base }

func (s baseSink) Write(p []byte) (int, error) {
	s.b.WriteString(string(p))
	return len(p), nil
}

func (w *Writer) WriteHeader(b *writer.Base) error {
	w.x = xmlstream.New(baseSink{b}, xmlstream.Options{Indent: b.Config.Indent, LineEnd: b.Config.LineEnd})
	w.x.Prolog("1.0", "UTF-8")

	// QNames are resolved against the whole index before the root element
	// is opened: RDF/XML always uses QNames (never "no QName") and the
	// root's xmlns declarations (and DTD entities) must already know every
	// prefix the body will go on to use.
	w.prescan(b)

	used := b.Namespaces().UsedPrefixes()
	w.entitiesByNS = nil
	if b.Config.UseDtdSubset {
		w.entitiesByNS = make(map[string]string, len(used))
		entities := make([]xmlstream.Entity, 0, len(used))
		for _, ns := range used {
			w.entitiesByNS[ns.Full] = ns.Prefix
			entities = append(entities, xmlstream.Entity{Name: ns.Prefix, Value: ns.Full})
		}
		w.x.DTD("rdf:RDF", entities)
	}

	haveRDF := false
	xmlnsAttrs := make([]xmlstream.Attr, 0, len(used)+1)
	for _, ns := range used {
		if ns.Prefix == "rdf" {
			haveRDF = true
		}
		xmlnsAttrs = append(xmlnsAttrs, xmlnsAttr(ns))
	}
	if !haveRDF {
		xmlnsAttrs = append(xmlnsAttrs, xmlstream.Attr{Name: "xmlns:rdf", Value: rdf.NS})
	}
	sort.Slice(xmlnsAttrs, func(i, j int) bool { return xmlnsAttrs[i].Name < xmlnsAttrs[j].Name })

	attrs := xmlnsAttrs
	if base := b.BaseIRI(); base != "" {
		attrs = append([]xmlstream.Attr{{Name: "xml:base", Value: base}}, xmlnsAttrs...)
	}
	w.x.StartElement("rdf:RDF", attrs)

	if b.Config.LeadingComments != "" {
		for _, line := range strings.Split(b.Config.LeadingComments, "\n") {
			w.x.Comment(line)
		}
	}
	return w.x.Err()
}

func xmlnsAttr(ns voc.Namespace) xmlstream.Attr {
	name := "xmlns:" + ns.Prefix
	if ns.Prefix == "" {
		name = "xmlns"
	}
	return xmlstream.Attr{Name: name, Value: ns.Full}
}

// prescan resolves a QName for every IRI the document will mention —
// subjects, predicates, objects, and literal datatypes — across the whole
// index, including blank-node subjects whose own content will only ever
// be rendered nested inside a parent's property element. The lookups are
// repeated, harmlessly, when the real per-subject rendering walks the
// same index; what matters is that every prefix is already registered as
// "used" by the time the root element and DTD subset are written.
func (w *Writer) prescan(b *writer.Base) {
	ns := b.Namespaces()
	for _, e := range b.Index().Sorted {
		if iri, ok := e.Subject.(quad.IRI); ok {
			ns.QName(string(iri), true)
		}
		for _, p := range e.Predicates {
			ns.QName(string(p.Predicate), true)
			for _, o := range p.Objects {
				switch v := o.(type) {
				case quad.IRI:
					ns.QName(string(v), true)
				case quad.Literal:
					ns.QName(string(v.EffectiveDatatype()), true)
				}
			}
		}
	}
}

func (w *Writer) WriteSubjectSeparator(b *writer.Base) error { return nil }

func (w *Writer) WriteSubjectTriples(b *writer.Base, subj quad.Term, preds []index.PredicateEntry) error {
	w.renderSubject(b, subj, preds)
	return w.x.Err()
}

func (w *Writer) WriteFooter(b *writer.Base) error {
	if b.Config.TrailingComments != "" {
		for _, line := range strings.Split(b.Config.TrailingComments, "\n") {
			w.x.Comment(line)
		}
	}
	w.x.EndElement()
	if err := w.x.Err(); err != nil {
		return err
	}
	b.WriteString(b.Config.LineEnd)
	return nil
}

// renderSubject opens the subject's node element (§4.8 "choose enclosing
// element name"), writes its identifying attribute, then its remaining
// predicate/object content. A blank-node subject reaching this hook is
// always non-inline — an inline-eligible blank node is skipped by Base's
// top-level loop and only ever rendered through renderBlankObject instead.
func (w *Writer) renderSubject(b *writer.Base, subj quad.Term, preds []index.PredicateEntry) {
	prefix, local, remaining := w.chooseElementName(b, preds)
	elemName := prefix + ":" + local

	switch v := subj.(type) {
	case quad.IRI:
		w.x.StartElement(elemName, nil)
		w.writeResourceAttr(b, "rdf:about", string(v))
	case quad.BlankNode:
		w.x.StartElement(elemName, []xmlstream.Attr{{Name: "rdf:nodeID", Value: nodeID(b, v)}})
	}
	w.renderPredicateObjects(b, remaining)
	w.x.EndElement()
}

// chooseElementName picks the subject's enclosing element name from its
// rdf:type values (§4.2 "Preferred RDF types", §4.8) and returns the
// predicate list with that one type removed from its rdf:type objects.
func (w *Writer) chooseElementName(b *writer.Base, preds []index.PredicateEntry) (prefix, local string, remaining []index.PredicateEntry) {
	typeIdx := -1
	for i, p := range preds {
		if p.Predicate == rdfTypeIRI {
			typeIdx = i
			break
		}
	}
	if typeIdx < 0 {
		return "rdf", "Description", preds
	}

	types := preds[typeIdx].Objects
	candidates := make([]quad.IRI, 0, len(types))
	for _, t := range types {
		if iri, ok := t.(quad.IRI); ok {
			candidates = append(candidates, iri)
		}
	}
	usable := candidates
	if len(candidates) > 1 {
		filtered := make([]quad.IRI, 0, len(candidates))
		for _, c := range candidates {
			if c != owlThingIRI {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) > 0 {
			usable = filtered
		}
	}
	sort.SliceStable(usable, func(i, j int) bool { return compare.TypeRank(usable[i]) < compare.TypeRank(usable[j]) })

	var chosen quad.IRI
	var pfx, loc string
	found := false
	for _, c := range usable {
		if p, l, ok := b.Namespaces().QName(string(c), true); ok {
			chosen, pfx, loc, found = c, p, l, true
			break
		}
	}
	if !found && len(usable) == 1 {
		if p, l, ok := b.Namespaces().QName(string(usable[0]), true); ok {
			chosen, pfx, loc, found = usable[0], p, l, true
		}
	}
	if !found {
		return "rdf", "Description", preds
	}

	remaining = make([]index.PredicateEntry, 0, len(preds))
	for i, p := range preds {
		if i != typeIdx {
			remaining = append(remaining, p)
			continue
		}
		objs := make([]quad.Term, 0, len(p.Objects))
		for _, o := range p.Objects {
			if iri, ok := o.(quad.IRI); ok && iri == chosen {
				continue
			}
			objs = append(objs, o)
		}
		if len(objs) > 0 {
			remaining = append(remaining, index.PredicateEntry{Predicate: p.Predicate, Objects: objs})
		}
	}
	return pfx, loc, remaining
}

func (w *Writer) renderPredicateObjects(b *writer.Base, preds []index.PredicateEntry) {
	for _, p := range preds {
		predName := w.iriElementName(b, p.Predicate)
		for _, o := range p.Objects {
			w.renderPropertyElement(b, predName, o)
		}
	}
}

func (w *Writer) renderPropertyElement(b *writer.Base, predName string, obj quad.Term) {
	switch v := obj.(type) {
	case quad.IRI:
		w.x.StartElement(predName, nil)
		w.writeResourceAttr(b, "rdf:resource", string(v))
		w.x.EndElement()
	case quad.Literal:
		w.renderLiteralElement(b, predName, v)
	case quad.BlankNode:
		w.renderBlankObject(b, predName, v)
	}
}

// renderBlankObject renders a blank-node object: by nodeID reference, or —
// when it is inline-eligible — either a detected Resource-only collection
// (parseType="Collection") or a nested subject element (§4.8).
func (w *Writer) renderBlankObject(b *writer.Base, predName string, bn quad.BlankNode) {
	if !(b.Config.InlineBlankNodes && b.ShouldInline(bn)) {
		w.x.StartElement(predName, []xmlstream.Attr{{Name: "rdf:nodeID", Value: nodeID(b, bn)}})
		w.x.EndElement()
		return
	}
	if members, ok := compare.IsCollection(bn, b.Context().Outbound); ok && compare.AllResources(members) {
		w.x.StartElement(predName, []xmlstream.Attr{{Name: "rdf:parseType", Value: "Collection"}})
		for _, m := range members {
			w.renderCollectionMember(b, m)
		}
		w.x.EndElement()
		return
	}
	prefix, local, remaining := "rdf", "Description", []index.PredicateEntry(nil)
	if entry, ok := b.SubjectEntry(bn); ok {
		prefix, local, remaining = w.chooseElementName(b, entry.Predicates)
	}
	w.x.StartElement(predName, nil)
	w.x.StartElement(prefix+":"+local, nil)
	w.renderPredicateObjects(b, remaining)
	w.x.EndElement()
	w.x.EndElement()
}

func (w *Writer) renderCollectionMember(b *writer.Base, m quad.Term) {
	switch v := m.(type) {
	case quad.IRI:
		w.x.StartElement("rdf:Description", nil)
		w.writeResourceAttr(b, "rdf:resource", string(v))
		w.x.EndElement()
	case quad.BlankNode:
		prefix, local, remaining := "rdf", "Description", []index.PredicateEntry(nil)
		if entry, ok := b.SubjectEntry(v); ok {
			prefix, local, remaining = w.chooseElementName(b, entry.Predicates)
		}
		w.x.StartElement(prefix+":"+local, nil)
		w.renderPredicateObjects(b, remaining)
		w.x.EndElement()
	}
}

// renderLiteralElement applies the override-language and string-datatype
// policies, then writes the literal's xml:lang or rdf:datatype attribute
// and its whitespace-trimmed text content (§4.8, §6, §9).
func (w *Writer) renderLiteralElement(b *writer.Base, predName string, lit quad.Literal) {
	lang := lit.Lang
	dt := lit.EffectiveDatatype()
	if lang == "" && b.Config.OverrideStringLanguage != "" && lit.IsPlainString() {
		lang = b.Config.OverrideStringLanguage
	}

	var attrs []xmlstream.Attr
	switch {
	case lang != "":
		attrs = append(attrs, xmlstream.Attr{Name: "xml:lang", Value: normalizeLangTag(lang)})
	case dt == xsdStringIRI && b.Config.StringDataType == writer.StringDataTypeImplicit:
	default:
		attrs = append(attrs, xmlstream.Attr{Name: "rdf:datatype", Value: string(dt)})
	}
	w.x.StartElement(predName, attrs)
	w.x.Characters(strings.TrimSpace(lit.Lexical))
	w.x.EndElement()
}

func (w *Writer) iriElementName(b *writer.Base, iri quad.IRI) string {
	pfx, local, ok := b.Namespaces().QName(string(iri), true)
	if !ok {
		return "rdf:Description"
	}
	return pfx + ":" + local
}

// writeResourceAttr writes an IRI-valued attribute, using the DTD entity
// reference form ("&prefix;local") in place of the full IRI when
// useDtdSubset declared an entity for its namespace (§4.4).
func (w *Writer) writeResourceAttr(b *writer.Base, name, iri string) {
	w.x.StartAttribute(name)
	if w.entitiesByNS != nil {
		if ns, local, ok := voc.Split(iri); ok {
			if entity, declared := w.entitiesByNS[ns]; declared {
				w.x.WriteAttributeEntityRef(entity)
				w.x.WriteAttributeCharacters(local)
				w.x.EndAttribute()
				return
			}
		}
	}
	w.x.WriteAttributeCharacters(iri)
	w.x.EndAttribute()
}

func nodeID(b *writer.Base, bn quad.BlankNode) string {
	return strings.TrimPrefix(b.BlankLabel(bn), "_:")
}

// normalizeLangTag lowercases the primary subtag and uppercases the region
// subtag (e.g. "EN-us" -> "en-US"); matches writer/turtle's rule (§4.7).
func normalizeLangTag(tag string) string {
	primary, rest, ok := strings.Cut(tag, "-")
	primary = strings.ToLower(primary)
	if !ok {
		return primary
	}
	return primary + "-" + strings.ToUpper(rest)
}
