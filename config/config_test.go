package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/rdfcanon/rdfcanon/writer"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, "\t", cfg.Indent)
	require.Equal(t, "\n", cfg.LineEnd)
	require.Equal(t, writer.StringDataTypeImplicit, cfg.StringDataType)
	require.Equal(t, writer.ShortIriPriorityPrefix, cfg.ShortIriPriority)
	require.Equal(t, writer.TargetFormatTurtle, cfg.TargetFormat)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rdfcanon.yaml")
	body := "serialize:\n  target_format: rdf-xml\n  inline_blank_nodes: true\n  base_iri: http://ex/\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, writer.TargetFormatRdfXML, cfg.TargetFormat)
	require.True(t, cfg.InlineBlankNodes)
	require.Equal(t, "http://ex/", cfg.BaseIri)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RDFCANON_SERIALIZE_TARGET_FORMAT", "rdf-xml")
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, writer.TargetFormatRdfXML, cfg.TargetFormat)
}
