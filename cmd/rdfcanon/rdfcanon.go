package main

import (
	"errors"
	"os"

	_ "github.com/rdfcanon/rdfcanon/clog/glog"
	"github.com/rdfcanon/rdfcanon/cmd/rdfcanon/command"
	"github.com/rdfcanon/rdfcanon/writer"
)

// Exit codes (§6): 0 success, 1 I/O or serialization failure, 2 invalid
// configuration. cobra's own Execute already prints the error.
func main() {
	if err := command.NewRootCmd().Execute(); err != nil {
		var werr *writer.Error
		if errors.As(err, &werr) && werr.Kind == writer.ErrConfiguration {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
