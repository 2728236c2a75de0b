// Package logger implements the logger behind ports.Logger. Debug and Info
// lines only appear when CHATTY_DEBUG put the CLI in verbose mode; warnings
// and errors always reach stderr, where they stay clear of the answer text
// on stdout.
package logger

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// StdLogger writes level-tagged lines through the standard log package.
type StdLogger struct {
	verbose bool
	out     *log.Logger
}

// NewStd creates a StdLogger writing to stderr.
func NewStd(verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose, out: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if l.verbose {
		l.out.Printf("[DEBUG] %s%s", msg, formatFields(fields))
	}
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if l.verbose {
		l.out.Printf("[INFO] %s%s", msg, formatFields(fields))
	}
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.out.Printf("[WARN] %s%s", msg, formatFields(fields))
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	suffix := formatFields(fields)
	if err != nil {
		suffix = " error=" + err.Error() + suffix
	}
	l.out.Printf("[ERROR] %s%s", msg, suffix)
}

// formatFields renders fields as sorted key=value pairs so log lines are
// stable enough to grep.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, " %s=%v", key, fields[key])
	}
	return b.String()
}
