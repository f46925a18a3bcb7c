// Package mips provides the implementation of the asmparser interfaces for MIPS assembly source.
package mips

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ChainSafe/mipsasm/asmparser"
	"github.com/ChainSafe/mipsasm/operand"
)

var (
	ErrInvalidLabel     = errors.New("invalid label")
	ErrUnknownDirective = errors.New("unsupported directive")
)

var (
	// label: mnemonic operands...
	labelRegex       = regexp.MustCompile(`^([^\s:]+)\s*:\s*(.*)$`)
	instructionRegex = regexp.MustCompile(`^([A-Za-z.][A-Za-z0-9.]*)\s*(.*)$`)
	// operands are separated by commas, whitespace or the parentheses of offset(base)
	separatorRegex = regexp.MustCompile(`[\s,()]+`)
)

// parserImpl implements the asmparser.Parser interface.
type parserImpl struct{}

// NewParser returns a new instance of a MIPS assembly source parser.
func NewParser() asmparser.Parser {
	return &parserImpl{}
}

// ParseFile reads and parses a MIPS assembly file.
func (p *parserImpl) ParseFile(path string) ([]*asmparser.Line, error) {
	fpath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving absolute filepath: %w", err)
	}

	codefile, err := os.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer func() {
		_ = codefile.Close()
	}()
	return p.Parse(codefile)
}

// Parse reads assembly source and returns every line that defines a label or
// holds an instruction. All malformed lines are reported together.
func (p *parserImpl) Parse(r io.Reader) ([]*asmparser.Line, error) {
	var (
		lines []*asmparser.Line
		errs  []error
	)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := scanner.Text()
		line, err := p.parseLine(text)
		if err != nil {
			errs = append(errs, &asmparser.Error{Line: lineNum, Text: text, Err: err})
			continue
		}
		if line == nil { // comments, blank lines and .text
			continue
		}
		line.Number = lineNum
		line.Text = text
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading source: %w", err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return lines, nil
}

// parseLine attempts to parse a line of MIPS assembly.
func (p *parserImpl) parseLine(text string) (*asmparser.Line, error) {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	line := &asmparser.Line{}
	if matches := labelRegex.FindStringSubmatch(text); matches != nil {
		if !operand.IsLabel(matches[1]) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLabel, matches[1])
		}
		line.Label = matches[1]
		text = matches[2]
		if text == "" {
			return line, nil
		}
	}

	matches := instructionRegex.FindStringSubmatch(text)
	if matches == nil {
		return nil, fmt.Errorf("failed to parse instruction: %s", text)
	}
	if strings.HasPrefix(matches[1], ".") {
		if matches[1] == ".text" && matches[2] == "" && line.Label == "" {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownDirective, matches[1])
	}
	line.Mnemonic = matches[1]
	line.Args = parseArgs(matches[2])
	return line, nil
}

func parseArgs(argsStr string) []string {
	args := []string{}
	for _, tok := range separatorRegex.Split(argsStr, -1) {
		if tok != "" {
			args = append(args, tok)
		}
	}
	return args
}
