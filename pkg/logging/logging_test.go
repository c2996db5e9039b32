//
// Copyright 2025 The SignedDocs Authors.
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

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{input: "debug", want: LevelDebug},
		{input: "info", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "warning", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "silent", want: LevelSilent},
		{input: "off", want: LevelSilent},
		{input: "DEBUG", want: LevelDebug},
		{input: "  info  ", want: LevelInfo},
		{input: "bogus", want: LevelInfo},
		{input: "", want: LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLogFormat(t *testing.T) {
	if got := ParseLogFormat("json"); got != FormatJSON {
		t.Errorf("ParseLogFormat(\"json\") = %v, want FormatJSON", got)
	}
	if got := ParseLogFormat("text"); got != FormatText {
		t.Errorf("ParseLogFormat(\"text\") = %v, want FormatText", got)
	}
	if got := ParseLogFormat("bogus"); got != FormatText {
		t.Errorf("ParseLogFormat(\"bogus\") = %v, want FormatText", got)
	}
}

func TestDefaultLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: LevelWarn, Output: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("below-threshold messages were logged: %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("at-or-above-threshold messages missing: %q", out)
	}
}

func TestDefaultLogger_SilentSuppressesAll(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: LevelSilent, Output: &buf})

	logger.Error("should not appear")

	if buf.Len() != 0 {
		t.Errorf("silent logger wrote output: %q", buf.String())
	}
}

func TestDefaultLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Format: FormatJSON, Output: &buf})

	logger.Info("signed %d documents", 3)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "signed 3 documents" {
		t.Errorf("message = %v, want formatted message", entry["message"])
	}
}

func TestDefaultLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerOptions{Format: FormatJSON, Output: &buf})

	derived := base.WithField("component", "signer").WithFields(map[string]interface{}{"document": "doc.txt"})
	derived.Info("signing")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["component"] != "signer" || entry["document"] != "doc.txt" {
		t.Errorf("fields missing from entry: %v", entry)
	}

	// The base logger must not have inherited the fields.
	buf.Reset()
	base.Info("plain")
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if _, ok := entry["component"]; ok {
		t.Error("WithField mutated the base logger")
	}
}

func TestEnsureLogger(t *testing.T) {
	if EnsureLogger(nil) == nil {
		t.Error("EnsureLogger(nil) returned nil")
	}

	logger := NewLogger(LoggerOptions{Level: LevelError})
	if got := EnsureLogger(logger); got != Logger(logger) {
		t.Error("EnsureLogger did not return the provided logger")
	}
}
