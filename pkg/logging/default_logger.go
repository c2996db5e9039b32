// Copyright 2025 The SignedDocs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Verify DefaultLogger implements Logger at compile time.
var _ Logger = (*DefaultLogger)(nil)

// LoggerOptions configures a DefaultLogger instance.
type LoggerOptions struct {
	// Level sets the minimum log level to output. Defaults to LevelInfo.
	Level LogLevel
	// Format selects the output format (FormatText or FormatJSON).
	Format LogFormat
	// Output sets the io.Writer for log output. Defaults to os.Stderr.
	Output io.Writer
	// TimeFormat sets the time format for log entries. Empty disables timestamps.
	TimeFormat string
}

// DefaultLogger is a leveled logger writing either human-readable text or
// one JSON object per line.
type DefaultLogger struct {
	mu     sync.Mutex
	level  LogLevel
	format LogFormat
	out    io.Writer
	tf     string
	fields map[string]interface{}
}

// NewLogger creates a new DefaultLogger with the specified options.
func NewLogger(opts LoggerOptions) *DefaultLogger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return &DefaultLogger{
		level:  opts.Level,
		format: opts.Format,
		out:    out,
		tf:     opts.TimeFormat,
	}
}

// Debug logs a message at debug level.
func (l *DefaultLogger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs a message at info level.
func (l *DefaultLogger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a message at warn level.
func (l *DefaultLogger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs a message at error level.
func (l *DefaultLogger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// GetLevel returns the minimum level this logger emits.
func (l *DefaultLogger) GetLevel() LogLevel {
	return l.level
}

// WithField returns a new Logger with the given field added to all entries.
func (l *DefaultLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a new Logger with the given fields added to all entries.
// The receiver is not modified.
func (l *DefaultLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &DefaultLogger{
		level:  l.level,
		format: l.format,
		out:    l.out,
		tf:     l.tf,
		fields: merged,
	}
}

func (l *DefaultLogger) log(level LogLevel, format string, args ...interface{}) {
	if level < l.level || l.level == LevelSilent {
		return
	}

	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.format == FormatJSON {
		entry := map[string]interface{}{
			"level":   level.String(),
			"message": msg,
		}
		if l.tf != "" {
			entry["timestamp"] = time.Now().Format(l.tf)
		}
		for k, v := range l.fields {
			entry[k] = v
		}
		line, err := json.Marshal(entry)
		if err != nil {
			// Fall back to text so the message is not lost.
			fmt.Fprintf(l.out, "[%s] %s\n", strings.ToUpper(level.String()), msg)
			return
		}
		fmt.Fprintf(l.out, "%s\n", line)
		return
	}

	var parts []string
	if l.tf != "" {
		parts = append(parts, time.Now().Format(l.tf))
	}
	parts = append(parts, fmt.Sprintf("[%s]", strings.ToUpper(level.String())), msg)
	for k, v := range l.fields {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	fmt.Fprintln(l.out, strings.Join(parts, " "))
}
