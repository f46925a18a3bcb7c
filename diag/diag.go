// Package diag provides the diagnostic sink the assembler reports validation failures to.
package diag

import (
	"fmt"
	"io"
	"log"
)

// Logger accepts one diagnostic line per validation failure.
type Logger interface {
	// Errorf writes a single "Error: ..." line.
	Errorf(format string, args ...any)
}

// Log writes diagnostics to an io.Writer, one line each, without timestamps.
type Log struct {
	l     *log.Logger
	count int
}

// New returns a Log writing to w.
func New(w io.Writer) *Log {
	return &Log{l: log.New(w, "", 0)}
}

func (d *Log) Errorf(format string, args ...any) {
	d.count++
	d.l.Print("Error: " + fmt.Sprintf(format, args...))
}

// Count returns the number of lines written so far.
func (d *Log) Count() int {
	return d.count
}

type discard struct{}

func (discard) Errorf(string, ...any) {}

// Discard drops every diagnostic.
var Discard Logger = discard{}
