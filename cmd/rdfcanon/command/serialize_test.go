package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureBody = `{
	"prefixes": {"ex": "http://ex/", "rdfs": "http://www.w3.org/2000/01/rdf-schema#"},
	"statements": [
		{"subject": {"type": "iri", "value": "http://ex/a"},
		 "predicate": "http://www.w3.org/2000/01/rdf-schema#label",
		 "object": {"type": "literal", "value": "hi"}}
	]
}`

func TestSerializeCmdTurtle(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "graph.json")
	out := filepath.Join(dir, "graph.ttl")
	require.NoError(t, os.WriteFile(in, []byte(fixtureBody), 0o644))

	cmd := NewSerializeCmd()
	cmd.SetArgs([]string{"--in", in, "--out", out, "--format", "turtle"})
	require.NoError(t, cmd.Execute())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(got), "ex:a")
	require.Contains(t, string(got), `"hi"`)
}

func TestSerializeCmdRequiresInAndOut(t *testing.T) {
	cmd := NewSerializeCmd()
	cmd.SetArgs([]string{})
	require.Error(t, cmd.Execute())
}

func TestSerializeCmdRdfXml(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "graph.json")
	out := filepath.Join(dir, "graph.rdf")
	require.NoError(t, os.WriteFile(in, []byte(fixtureBody), 0o644))

	cmd := NewSerializeCmd()
	cmd.SetArgs([]string{"--in", in, "--out", out, "--format", "rdf-xml"})
	require.NoError(t, cmd.Execute())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(got), "<rdf:RDF")
	require.Contains(t, string(got), "rdf:about=\"http://ex/a\"")
}
