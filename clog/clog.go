// Copyright 2016 The Cayley Authors. All rights reserved.
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

// Package clog provides the logging interface used across the
// serialization engine and its command-line tool. Every caller belongs to
// the same binary, so the package owns the "rdfcanon: " prefix itself
// rather than leaving every call site to repeat the same literal.
package clog

import (
	"log"

	"github.com/rdfcanon/rdfcanon/metrics"
)

// Logger is the clog logging interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

var logger Logger = stdlog{}

// SetLogger set the clog logging implementation.
func SetLogger(l Logger) { logger = l }

var verbosity int

// V returns whether the current clog verbosity is above the specified level.
func V(level int) bool { return verbosity >= level }

// SetV sets the clog verbosity level.
func SetV(level int) { verbosity = level }

const enginePrefix = "rdfcanon: "

// Infof logs information level messages.
func Infof(format string, args ...interface{}) {
	if logger != nil {
		logger.Infof(enginePrefix+format, args...)
	}
}

// Warningf logs warning level messages.
func Warningf(format string, args ...interface{}) {
	if logger != nil {
		logger.Warningf(enginePrefix+format, args...)
	}
}

// Errorf logs error level messages.
func Errorf(format string, args ...interface{}) {
	if logger != nil {
		logger.Errorf(enginePrefix+format, args...)
	}
}

// Fatalf logs fatal messages and terminates the program.
func Fatalf(format string, args ...interface{}) {
	if logger != nil {
		logger.Fatalf(enginePrefix+format, args...)
	}
}

// Diagnostic logs a non-fatal index.Diagnostic (§7 kind 2) at warning level
// and records it against metrics.SortAnomalies in the same call, so
// writer.Base doesn't have to increment the counter and log the message as
// two separate steps at its call site.
func Diagnostic(message string) {
	metrics.SortAnomalies.Inc()
	Warningf("%s", message)
}

// stdlog wraps the standard library logger.
type stdlog struct{}

func (stdlog) Infof(format string, args ...interface{})    { log.Printf(format, args...) }
func (stdlog) Warningf(format string, args ...interface{}) { log.Printf("WARN: "+format, args...) }
func (stdlog) Errorf(format string, args ...interface{})   { log.Printf("ERROR: "+format, args...) }
func (stdlog) Fatalf(format string, args ...interface{})   { log.Fatalf("FATAL: "+format, args...) }
