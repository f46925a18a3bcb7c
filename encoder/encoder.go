// Package encoder translates MIPS mnemonics and their operand tokens into
// machine words.
//
// Assembly runs in two passes. Pass one calls PredictSize for each line to
// assign label addresses; pass two calls Encode with the complete symbol
// table.
package encoder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ChainSafe/mipsasm/diag"
	"github.com/ChainSafe/mipsasm/symtab"
)

// WordWriter receives encoded machine words in program order.
type WordWriter interface {
	WriteWord(word uint32) error
}

var instructions = map[string]variant{
	"addu":  rFormat{funct: fnADDU},
	"or":    rFormat{funct: fnOR},
	"slt":   rFormat{funct: fnSLT},
	"sltu":  rFormat{funct: fnSLTU},
	"sll":   shiftFormat{funct: fnSLL},
	"jr":    jumpRegister{funct: fnJR},
	"nop":   fixed{word: formR(0, 0, 0, 0, fnSLL)},
	"addiu": iFormat{opcode: opADDIU, signed: true},
	"ori":   iFormat{opcode: opORI},
	"lui":   upperImmediate{opcode: opLUI},
	"lb":    loadStore{opcode: opLB},
	"lbu":   loadStore{opcode: opLBU},
	"lw":    loadStore{opcode: opLW},
	"sb":    loadStore{opcode: opSB},
	"sw":    loadStore{opcode: opSW},
	"beq":   branch{opcode: opBEQ},
	"bne":   branch{opcode: opBNE},
	"j":     jump{opcode: opJ},
	"jal":   jump{opcode: opJAL},
	"li":    loadImmediate{lui: opLUI, ori: opORI},
}

// Mnemonics returns every supported mnemonic, sorted.
func Mnemonics() []string {
	names := make([]string, 0, len(instructions))
	for name := range instructions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeOf returns the encoding category of mnemonic.
func TypeOf(mnemonic string) (InstructionType, error) {
	v, err := resolve(mnemonic)
	if err != nil {
		return "", err
	}
	return v.Type(), nil
}

func resolve(mnemonic string) (variant, error) {
	v, ok := instructions[mnemonic]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMnemonic, mnemonic)
	}
	return v, nil
}

// Encoder reports every failed instruction to its logger, one line each.
type Encoder struct {
	log diag.Logger
}

// New returns an Encoder. A nil logger discards diagnostics.
func New(log diag.Logger) *Encoder {
	if log == nil {
		log = diag.Discard
	}
	return &Encoder{log: log}
}

// PredictSize returns the number of words mnemonic will occupy once
// encoded. It validates the operand count and numeric literals but resolves
// neither registers nor label addresses.
func (e *Encoder) PredictSize(mnemonic string, args []string) (int, error) {
	v, err := resolve(mnemonic)
	if err != nil {
		return 0, e.fail(mnemonic, err)
	}
	n, err := v.size(args)
	if err != nil {
		return 0, e.fail(mnemonic, err)
	}
	return n, nil
}

// Encode encodes one instruction located at addr and writes its words to w.
// Jumps to labels missing from symbols are recorded in relocs. Nothing is
// written when the instruction fails to encode.
func (e *Encoder) Encode(
	w WordWriter,
	mnemonic string,
	args []string,
	addr uint32,
	symbols *symtab.SymbolTable,
	relocs *symtab.RelocationTable,
) error {
	v, err := resolve(mnemonic)
	if err != nil {
		return e.fail(mnemonic, err)
	}
	if addr%4 != 0 {
		return e.fail(mnemonic, fmt.Errorf("%w: 0x%x", ErrUnaligned, addr))
	}
	if symbols == nil {
		symbols = symtab.NewSymbolTable(nil)
	}
	out, err := v.encode(lineContext{addr: addr, symbols: symbols}, args)
	if err != nil {
		return e.fail(mnemonic, err)
	}
	if out.reloc != nil {
		if relocs == nil {
			return e.fail(mnemonic, fmt.Errorf("%w: %s (no relocation table)", ErrUndefinedLabel, out.reloc.Name))
		}
		if err := relocs.Add(out.reloc.Name, out.reloc.Address); err != nil {
			return fmt.Errorf("%s: %w", mnemonic, err)
		}
	}
	for _, word := range out.words {
		if err := w.WriteWord(word); err != nil {
			return fmt.Errorf("writing %s: %w", mnemonic, err)
		}
	}
	return nil
}

// fail attaches the mnemonic to err and logs it.
func (e *Encoder) fail(mnemonic string, err error) error {
	var opErr *OperandError
	var shapeErr *ShapeError
	switch {
	case errors.As(err, &opErr):
		opErr.Mnemonic = mnemonic
	case errors.As(err, &shapeErr):
		shapeErr.Mnemonic = mnemonic
	}
	e.log.Errorf("%v.", err)
	return err
}
