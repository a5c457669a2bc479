// Package config loads a writer.Config from flags, environment variables,
// and an optional file, via viper (§6 "EXTERNAL INTERFACES", CLI).
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/rdfcanon/rdfcanon/writer"
)

// Viper keys for each writer.Config field (§4.6, §6).
const (
	KeyBaseIri                = "serialize.base_iri"
	KeyInferBaseIri           = "serialize.infer_base_iri"
	KeyIndent                 = "serialize.indent"
	KeyLineEnd                = "serialize.line_end"
	KeyInlineBlankNodes       = "serialize.inline_blank_nodes"
	KeyUseDtdSubset           = "serialize.use_dtd_subset"
	KeyStringDataType         = "serialize.string_data_type"
	KeyOverrideStringLanguage = "serialize.override_string_language"
	KeyShortIriPriority       = "serialize.short_iri_priority"
	KeyLeadingComments        = "serialize.leading_comments"
	KeyTrailingComments       = "serialize.trailing_comments"
	KeyTargetFormat           = "serialize.target_format"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyIndent, "\t")
	v.SetDefault(KeyLineEnd, "\n")
	v.SetDefault(KeyStringDataType, writer.StringDataTypeImplicit)
	v.SetDefault(KeyShortIriPriority, writer.ShortIriPriorityPrefix)
	v.SetDefault(KeyTargetFormat, writer.TargetFormatTurtle)
}

// Load builds a writer.Config from v, in viper's own override order: an
// explicit file (if any), then RDFCANON_* environment variables, then any
// flags already bound onto v via viper.BindPFlag — flags win last. Callers
// that only need flags/env/defaults may pass an empty file.
func Load(v *viper.Viper, file string) (writer.Config, error) {
	v.SetEnvPrefix("rdfcanon")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return writer.Config{}, err
		}
	}

	cfg := writer.Config{
		BaseIri:                v.GetString(KeyBaseIri),
		InferBaseIri:           v.GetBool(KeyInferBaseIri),
		Indent:                 v.GetString(KeyIndent),
		LineEnd:                v.GetString(KeyLineEnd),
		InlineBlankNodes:       v.GetBool(KeyInlineBlankNodes),
		UseDtdSubset:           v.GetBool(KeyUseDtdSubset),
		StringDataType:         v.GetString(KeyStringDataType),
		OverrideStringLanguage: v.GetString(KeyOverrideStringLanguage),
		ShortIriPriority:       v.GetString(KeyShortIriPriority),
		LeadingComments:        v.GetString(KeyLeadingComments),
		TrailingComments:       v.GetString(KeyTrailingComments),
		TargetFormat:           v.GetString(KeyTargetFormat),
	}
	return cfg.WithDefaults(), nil
}
