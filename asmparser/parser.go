// Package asmparser defines the source line model fed to the assembler.
package asmparser

import (
	"fmt"
	"io"
	"strings"
)

// Parser holds interface for turning assembly source into lines
type Parser interface {
	Parse(r io.Reader) ([]*Line, error)
	ParseFile(path string) ([]*Line, error)
}

// Line is one source line with an instruction, a label, or both.
type Line struct {
	Number   int      // 1-based line number in the source
	Text     string   // raw source text
	Label    string   // label defined on this line, if any
	Mnemonic string   // empty for a label-only line
	Args     []string // operand tokens
}

// HasInstruction reports whether the line emits code.
func (l *Line) HasInstruction() bool {
	return l.Mnemonic != ""
}

func (l *Line) String() string {
	var b strings.Builder
	if l.Label != "" {
		b.WriteString(l.Label)
		b.WriteString(":")
		if l.HasInstruction() {
			b.WriteString(" ")
		}
	}
	if l.HasInstruction() {
		b.WriteString(l.Mnemonic)
		if len(l.Args) > 0 {
			b.WriteString(" ")
			b.WriteString(strings.Join(l.Args, ", "))
		}
	}
	return b.String()
}

// Error ties a failure to the source line it came from.
type Error struct {
	Line int
	Text string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, strings.TrimSpace(e.Text), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
