// Package turtle implements the Turtle writer.Format (§4.7): subject
// blocks with "a" for rdf:type, inline blank nodes and collections, and
// the literal/language-tag/datatype rendering rules shared with RDF/XML.
package turtle

import (
	"strings"

	"github.com/rdfcanon/rdfcanon/internal/compare"
	"github.com/rdfcanon/rdfcanon/internal/index"
	"github.com/rdfcanon/rdfcanon/quad"
	"github.com/rdfcanon/rdfcanon/voc/rdf"
	"github.com/rdfcanon/rdfcanon/voc/xsd"
	"github.com/rdfcanon/rdfcanon/writer"
)

var (
	rdfTypeIRI   = quad.IRI(rdf.Type)
	xsdStringIRI = quad.IRI(xsd.String)
)

// Writer is a writer.Format that renders Turtle. Header composition
// (leading comments, @base, sorted @prefix declarations) has to happen
// after every subject has been resolved to a QName at least once, since
// that is when the namespace table knows which prefixes were actually
// used (§4.4); Writer buffers the body as subjects come in and only
// assembles the full document in WriteFooter.
type Writer struct {
	body strings.Builder
}

// New returns a fresh Turtle Writer.
func New() *Writer { return &Writer{} }

func (t *Writer) WriteHeader(b *writer.Base) error {
	t.body.Reset()
	return nil
}

func (t *Writer) WriteSubjectSeparator(b *writer.Base) error {
	t.body.WriteString("\n")
	return nil
}

func (t *Writer) WriteSubjectTriples(b *writer.Base, subj quad.Term, preds []index.PredicateEntry) error {
	t.body.WriteString(t.termText(b, subj))
	t.body.WriteString("\n")
	indent := b.Config.Indent
	for i, p := range preds {
		t.body.WriteString(indent)
		t.body.WriteString(t.predicateClause(b, p))
		if i == len(preds)-1 {
			t.body.WriteString(" .\n")
		} else {
			t.body.WriteString(" ;\n")
		}
	}
	return nil
}

func (t *Writer) WriteFooter(b *writer.Base) error {
	var out strings.Builder
	if b.Config.LeadingComments != "" {
		out.WriteString(commentLines(b.Config.LeadingComments))
	}
	if base := b.BaseIRI(); base != "" {
		out.WriteString("@base <" + base + "> .\n")
	}
	for _, ns := range b.Namespaces().UsedPrefixes() {
		out.WriteString("@prefix " + ns.Prefix + ": <" + ns.Full + "> .\n")
	}
	if out.Len() > 0 {
		out.WriteString("\n")
	}
	out.WriteString(t.body.String())
	if b.Config.TrailingComments != "" {
		out.WriteString(commentLines(b.Config.TrailingComments))
	}
	b.WriteString(out.String())
	return nil
}

func (t *Writer) predicateClause(b *writer.Base, p index.PredicateEntry) string {
	tok := "a"
	if p.Predicate != rdfTypeIRI {
		tok = t.iriText(b, p.Predicate)
	}
	objs := make([]string, len(p.Objects))
	for i, o := range p.Objects {
		objs[i] = t.termText(b, o)
	}
	return tok + " " + strings.Join(objs, ", ")
}

func (t *Writer) termText(b *writer.Base, term quad.Term) string {
	switch v := term.(type) {
	case quad.IRI:
		return t.iriText(b, v)
	case quad.Literal:
		return t.literalText(b, v)
	case quad.BlankNode:
		return t.blankNodeText(b, v)
	default:
		return ""
	}
}

// iriText resolves an IRI to whichever of QName / base-relative / full
// form the namespace table and §6 shortIriPriority select.
func (t *Writer) iriText(b *writer.Base, iri quad.IRI) string {
	full := string(iri)
	pfx, local, qnameOK := b.Namespaces().QName(full, false)

	base := b.BaseIRI()
	rel, relOK := "", false
	if base != "" && len(full) > len(base) && strings.HasPrefix(full, base) {
		rel, relOK = full[len(base):], true
	}

	switch {
	case qnameOK && relOK:
		if b.Config.ShortIriPriority == writer.ShortIriPriorityBaseIRI {
			return "<" + rel + ">"
		}
		return pfx + ":" + local
	case qnameOK:
		return pfx + ":" + local
	case relOK:
		return "<" + rel + ">"
	default:
		return "<" + full + ">"
	}
}

// blankNodeText renders bn inline (as "[ ... ]" or, for a list, "( ... )")
// when it qualifies (§4.7), or as its "_:label" reference otherwise.
func (t *Writer) blankNodeText(b *writer.Base, bn quad.BlankNode) string {
	if !b.Config.InlineBlankNodes || !b.ShouldInline(bn) {
		return b.BlankLabel(bn)
	}
	if members, ok := compare.IsCollection(bn, b.Context().Outbound); ok {
		parts := make([]string, len(members))
		for i, m := range members {
			parts[i] = t.termText(b, m)
		}
		return "( " + strings.Join(parts, " ") + " )"
	}
	entry, ok := b.SubjectEntry(bn)
	if !ok || len(entry.Predicates) == 0 {
		return "[ ]"
	}
	clauses := make([]string, len(entry.Predicates))
	for i, p := range entry.Predicates {
		clauses[i] = t.predicateClause(b, p)
	}
	return "[ " + strings.Join(clauses, " ; ") + " ]"
}

// literalText applies the string-datatype policy, the override-language
// option, and BCP47 primary/region normalization before emitting a literal
// (§4.7, §6, §9).
func (t *Writer) literalText(b *writer.Base, lit quad.Literal) string {
	lang := lit.Lang
	dt := lit.EffectiveDatatype()
	if lang == "" && b.Config.OverrideStringLanguage != "" && lit.IsPlainString() {
		lang = b.Config.OverrideStringLanguage
		dt = quad.IRI(rdf.LangString)
	}

	quote := `"`
	if strings.Contains(lit.Lexical, "\n") {
		quote = `"""`
	}
	s := quote + escapeLexical(lit.Lexical, quote) + quote

	switch {
	case lang != "":
		return s + "@" + normalizeLangTag(lang)
	case dt == xsdStringIRI && b.Config.StringDataType == writer.StringDataTypeImplicit:
		return s
	default:
		return s + "^^" + t.iriText(b, dt)
	}
}

func escapeLexical(s, quote string) string {
	var out strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			out.WriteString(`\\`)
		case '"':
			if quote == `"""` {
				out.WriteByte('"')
			} else {
				out.WriteString(`\"`)
			}
		case '\n':
			if quote == `"""` {
				out.WriteByte('\n')
			} else {
				out.WriteString(`\n`)
			}
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// normalizeLangTag lowercases the primary subtag and uppercases the region
// subtag (e.g. "EN-us" -> "en-US"); it does not attempt full BCP47 subtag
// classification (script vs. region vs. variant).
func normalizeLangTag(tag string) string {
	primary, rest, ok := strings.Cut(tag, "-")
	primary = strings.ToLower(primary)
	if !ok {
		return primary
	}
	return primary + "-" + strings.ToUpper(rest)
}

func commentLines(s string) string {
	var out strings.Builder
	for _, line := range strings.Split(s, "\n") {
		out.WriteString("# " + line + "\n")
	}
	return out.String()
}
