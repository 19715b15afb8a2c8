// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package diag

import (
	"errors"
	"fmt"

	"github.com/consensys/go-xt/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Severity classifies a diagnostic message.
type Severity uint8

const (
	// DEBUG messages trace the progress of the pipeline.
	DEBUG Severity = iota
	// INFO messages are of general interest.
	INFO
	// WARN messages indicate something suspicious which is not fatal.
	WARN
	// ERROR messages describe the defect which halted compilation.
	ERROR
)

func (s Severity) String() string {
	switch s {
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case WARN:
		return "warning"
	case ERROR:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", uint8(s))
	}
}

// Sink receives diagnostics from the lexer, parser and backend loader.  The
// lifetime of a sink is owned by whoever runs the pipeline.
type Sink interface {
	// Report a message of a given severity at a given location.  The location
	// may be the zero position, when no source location applies.
	Report(severity Severity, msg string, loc source.Position)
}

// Discard is a sink which drops every report.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(Severity, string, source.Position) {}

// ============================================================================
// Logrus sink
// ============================================================================

// NewLogSink constructs a sink which forwards reports onto a logrus logger.
// Locations are attached as the "location" field.
func NewLogSink(logger *log.Logger) Sink {
	return &logSink{logger}
}

type logSink struct {
	logger *log.Logger
}

func (p *logSink) Report(severity Severity, msg string, loc source.Position) {
	entry := log.NewEntry(p.logger)
	//
	if loc.IsValid() {
		entry = entry.WithField("location", loc.String())
	}
	//
	switch severity {
	case DEBUG:
		entry.Debug(msg)
	case INFO:
		entry.Info(msg)
	case WARN:
		entry.Warn(msg)
	default:
		entry.Error(msg)
	}
}

// ============================================================================
// Recorder
// ============================================================================

// Report captures a single diagnostic.
type Report struct {
	Severity Severity
	Message  string
	Location source.Position
}

// Recorder is a sink which retains every report it receives, in order.
type Recorder struct {
	Reports []Report
}

// Report implements the Sink interface.
func (p *Recorder) Report(severity Severity, msg string, loc source.Position) {
	p.Reports = append(p.Reports, Report{severity, msg, loc})
}

// Filter returns those reports with (at least) the given severity.
func (p *Recorder) Filter(severity Severity) []Report {
	var reports []Report
	//
	for _, r := range p.Reports {
		if r.Severity >= severity {
			reports = append(reports, r)
		}
	}
	//
	return reports
}

// ReportError reports an error on a sink.  Syntax errors are reported at their
// position, whilst all other errors have no location.
func ReportError(sink Sink, err error) {
	var serr *source.SyntaxError
	//
	if errors.As(err, &serr) {
		sink.Report(ERROR, serr.Message(), serr.Position())
	} else {
		sink.Report(ERROR, err.Error(), source.Position{})
	}
}
