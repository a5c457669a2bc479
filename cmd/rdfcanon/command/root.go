// Package command implements the rdfcanon cobra commands.
package command

import (
	"github.com/spf13/cobra"
)

// NewRootCmd returns the rdfcanon root command with every subcommand
// attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rdfcanon",
		Short: "Canonical RDF serialization (Turtle / RDF-XML).",
	}
	cmd.AddCommand(NewSerializeCmd())
	return cmd
}
