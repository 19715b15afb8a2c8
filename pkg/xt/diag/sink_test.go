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
	"bytes"
	"strings"
	"testing"

	"github.com/consensys/go-xt/pkg/util/source"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLogSink_Location(t *testing.T) {
	var (
		buf    bytes.Buffer
		logger = log.New()
	)
	//
	logger.SetOutput(&buf)
	logger.SetFormatter(&log.TextFormatter{DisableColors: true, DisableTimestamp: true})
	//
	sink := NewLogSink(logger)
	sink.Report(ERROR, "unknown section 'sekshun'", source.NewPosition("a.xt", 3, 1))
	//
	out := buf.String()
	require.Contains(t, out, "level=error")
	require.Contains(t, out, "location=\"a.xt:3:1\"")
	require.Contains(t, out, "unknown section 'sekshun'")
}

func TestLogSink_Level(t *testing.T) {
	var (
		buf    bytes.Buffer
		logger = log.New()
	)
	//
	logger.SetOutput(&buf)
	logger.SetLevel(log.InfoLevel)
	//
	sink := NewLogSink(logger)
	sink.Report(DEBUG, "lexed 3 tokens", source.Position{})
	require.Empty(t, buf.String())
	//
	sink.Report(WARN, "careful", source.Position{})
	require.True(t, strings.Contains(buf.String(), "careful"))
	require.NotContains(t, buf.String(), "location")
}

func TestReportError(t *testing.T) {
	var recorder Recorder
	//
	pos := source.NewPosition("b.xt", 2, 7)
	ReportError(&recorder, errors.Wrap(source.NewSyntaxError(pos, 2, "both sides can't be values"), "parsing"))
	ReportError(&recorder, errors.New("unable to open backend 'x.so'"))
	//
	require.Equal(t, []Report{
		{ERROR, "both sides can't be values", pos},
		{ERROR, "unable to open backend 'x.so'", source.Position{}},
	}, recorder.Reports)
}

func TestRecorder_Filter(t *testing.T) {
	var recorder Recorder
	//
	recorder.Report(DEBUG, "a", source.Position{})
	recorder.Report(WARN, "b", source.Position{})
	recorder.Report(ERROR, "c", source.Position{})
	//
	require.Len(t, recorder.Filter(WARN), 2)
	require.Len(t, recorder.Filter(DEBUG), 3)
}
