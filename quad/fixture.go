package quad

import (
	"encoding/json"
	"fmt"
	"io"
)

// fixtureTerm is the JSON encoding of a Term used by graph fixtures (§6
// "CLI"): an explicit, closed encoding for test and CLI use, not a general
// RDF parser (parsing proper is out of scope).
type fixtureTerm struct {
	Type     string `json:"type"` // "iri", "blank", or "literal"
	Value    string `json:"value"`
	Lang     string `json:"lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

func (t fixtureTerm) term() (Term, error) {
	switch t.Type {
	case "iri":
		return IRI(t.Value), nil
	case "blank":
		return BlankNode(t.Value), nil
	case "literal":
		return NewLiteral(t.Value, t.Lang, t.Datatype), nil
	default:
		return nil, fmt.Errorf("quad: unknown fixture term type %q", t.Type)
	}
}

func encodeFixtureTerm(t Term) (fixtureTerm, error) {
	switch v := t.(type) {
	case IRI:
		return fixtureTerm{Type: "iri", Value: string(v)}, nil
	case BlankNode:
		return fixtureTerm{Type: "blank", Value: string(v)}, nil
	case Literal:
		return fixtureTerm{Type: "literal", Value: v.Lexical, Lang: v.Lang, Datatype: string(v.Datatype)}, nil
	default:
		return fixtureTerm{}, fmt.Errorf("quad: unsupported term type %T", t)
	}
}

type fixtureStatement struct {
	Subject   fixtureTerm `json:"subject"`
	Predicate string      `json:"predicate"`
	Object    fixtureTerm `json:"object"`
}

type fixtureGraph struct {
	Statements []fixtureStatement `json:"statements"`
	Prefixes   map[string]string  `json:"prefixes"`
}

// DecodeFixture reads a JSON-encoded Graph fixture from r: a flat list of
// {subject, predicate, object} records plus a prefix table, each term
// tagged with its variant. It is the CLI's and test suite's on-disk graph
// format, not a Turtle/RDF-XML/JSON-LD parser.
func DecodeFixture(r io.Reader) (Graph, error) {
	var fg fixtureGraph
	if err := json.NewDecoder(r).Decode(&fg); err != nil {
		return Graph{}, err
	}
	g := Graph{Prefixes: fg.Prefixes}
	for i, fs := range fg.Statements {
		subj, err := fs.Subject.term()
		if err != nil {
			return Graph{}, fmt.Errorf("quad: statement %d subject: %w", i, err)
		}
		obj, err := fs.Object.term()
		if err != nil {
			return Graph{}, fmt.Errorf("quad: statement %d object: %w", i, err)
		}
		g.Statements = append(g.Statements, Statement{Subject: subj, Predicate: IRI(fs.Predicate), Object: obj})
	}
	return g, nil
}

// EncodeFixture writes g in the DecodeFixture JSON form, for fixtures built
// programmatically and for round-trip tests.
func EncodeFixture(w io.Writer, g Graph) error {
	fg := fixtureGraph{Prefixes: g.Prefixes}
	for i, st := range g.Statements {
		subj, err := encodeFixtureTerm(st.Subject)
		if err != nil {
			return fmt.Errorf("quad: statement %d subject: %w", i, err)
		}
		obj, err := encodeFixtureTerm(st.Object)
		if err != nil {
			return fmt.Errorf("quad: statement %d object: %w", i, err)
		}
		fg.Statements = append(fg.Statements, fixtureStatement{Subject: subj, Predicate: string(st.Predicate), Object: obj})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fg)
}
