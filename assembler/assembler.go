// Package assembler drives the two assembly passes over parsed source lines.
package assembler

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/ChainSafe/mipsasm/asmparser"
	"github.com/ChainSafe/mipsasm/diag"
	"github.com/ChainSafe/mipsasm/encoder"
	"github.com/ChainSafe/mipsasm/symtab"
)

var (
	ErrTooManyErrors = errors.New("too many errors")
	ErrTextBase      = errors.New("text base is not a multiple of 4")
)

// Program is the result of a successful assembly.
type Program struct {
	TextBase    uint32         `json:"textBase"`
	Text        []uint32       `json:"text"`
	Symbols     []symtab.Entry `json:"symbols"`
	Relocations []symtab.Entry `json:"relocations"`
}

// WriteWord appends word to the text section.
func (p *Program) WriteWord(word uint32) error {
	p.Text = append(p.Text, word)
	return nil
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the diagnostic sink.
func WithLogger(log diag.Logger) Option {
	return func(a *Assembler) { a.log = log }
}

// WithTextBase sets the address of the first instruction.
func WithTextBase(base uint32) Option {
	return func(a *Assembler) { a.textBase = base }
}

// WithMaxErrors stops a pass after n failed lines. 0 means no limit.
func WithMaxErrors(n int) Option {
	return func(a *Assembler) { a.maxErrors = n }
}

// Assembler owns the encoder and the pass configuration.
type Assembler struct {
	log       diag.Logger
	enc       *encoder.Encoder
	textBase  uint32
	maxErrors int
}

// New returns an Assembler starting at address 0 with no error limit.
func New(opts ...Option) *Assembler {
	a := &Assembler{log: diag.Discard}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = diag.Discard
	}
	a.enc = encoder.New(a.log)
	return a
}

// Assemble runs both passes. Pass two is skipped when pass one fails.
func (a *Assembler) Assemble(lines []*asmparser.Line) (*Program, error) {
	symbols := symtab.NewSymbolTable(a.log)
	relocs := symtab.NewRelocationTable(a.log)
	defer symbols.Release()
	defer relocs.Release()

	if err := a.PassOne(lines, symbols); err != nil {
		return nil, fmt.Errorf("pass one: %w", err)
	}
	prog := &Program{TextBase: a.textBase}
	if err := a.PassTwo(prog, lines, symbols, relocs); err != nil {
		return nil, fmt.Errorf("pass two: %w", err)
	}
	prog.Symbols = symbols.Entries()
	prog.Relocations = relocs.Entries()
	return prog, nil
}

// PassOne assigns every label the address of the next instruction, using
// the predicted size of each line.
func (a *Assembler) PassOne(lines []*asmparser.Line, symbols *symtab.SymbolTable) error {
	glog.V(1).Infof("Beginning pass 1 over %d lines", len(lines))
	if a.textBase%4 != 0 {
		return fmt.Errorf("%w: 0x%x", ErrTextBase, a.textBase)
	}
	errs := newErrorList(a.maxErrors)
	addr := a.textBase
	for _, line := range lines {
		if line.Label != "" {
			if err := symbols.Define(line.Label, addr); err != nil {
				if errs.add(line, err) {
					break
				}
			} else {
				glog.V(2).Infof("Defining %q at 0x%08x", line.Label, addr)
			}
		}
		if !line.HasInstruction() {
			continue
		}
		n, err := a.enc.PredictSize(line.Mnemonic, line.Args)
		if err != nil {
			if errs.add(line, err) {
				break
			}
			// keep later labels close to their real address
			n = 1
		}
		addr += uint32(4 * n)
	}
	glog.V(1).Infof("Pass 1 done: %d symbols, %d errors", symbols.Len(), errs.count())
	return errs.err()
}

// PassTwo encodes every instruction in order and writes the words to w.
func (a *Assembler) PassTwo(
	w encoder.WordWriter,
	lines []*asmparser.Line,
	symbols *symtab.SymbolTable,
	relocs *symtab.RelocationTable,
) error {
	glog.V(1).Infof("Beginning pass 2 over %d lines", len(lines))
	if relocs == nil {
		relocs = symtab.NewRelocationTable(a.log)
	}
	errs := newErrorList(a.maxErrors)
	counter := &countingWriter{w: w}
	addr := a.textBase
	for _, line := range lines {
		if !line.HasInstruction() {
			continue
		}
		before := counter.n
		if err := a.enc.Encode(counter, line.Mnemonic, line.Args, addr, symbols, relocs); err != nil {
			if errs.add(line, err) {
				break
			}
			// a failed line still occupies the space pass one gave it
			n, sizeErr := a.enc.PredictSize(line.Mnemonic, line.Args)
			if sizeErr != nil {
				n = 1
			}
			addr += uint32(4 * n)
			continue
		}
		glog.V(2).Infof("0x%08x: %s (%d words)", addr, line, counter.n-before)
		addr += uint32(4 * (counter.n - before))
	}
	glog.V(1).Infof("Pass 2 done: %d words, %d relocations, %d errors", counter.n, relocs.Len(), errs.count())
	return errs.err()
}

type countingWriter struct {
	w encoder.WordWriter
	n int
}

func (c *countingWriter) WriteWord(word uint32) error {
	if err := c.w.WriteWord(word); err != nil {
		return err
	}
	c.n++
	return nil
}

// errorList collects per-line failures up to a limit.
type errorList struct {
	limit int
	errs  []error
}

func newErrorList(limit int) *errorList {
	return &errorList{limit: limit}
}

// add records err and reports whether the limit has been reached.
func (l *errorList) add(line *asmparser.Line, err error) bool {
	l.errs = append(l.errs, &asmparser.Error{Line: line.Number, Text: line.Text, Err: err})
	if l.limit > 0 && len(l.errs) >= l.limit {
		l.errs = append(l.errs, fmt.Errorf("%w: stopped after %d", ErrTooManyErrors, len(l.errs)))
		return true
	}
	return false
}

func (l *errorList) count() int {
	return len(l.errs)
}

func (l *errorList) err() error {
	return errors.Join(l.errs...)
}
