package encoder

import (
	"math"

	"github.com/ChainSafe/mipsasm/operand"
	"github.com/ChainSafe/mipsasm/symtab"
)

// lineContext carries what pass two knows about the line being encoded.
type lineContext struct {
	addr    uint32
	symbols *symtab.SymbolTable
}

// encoded is the output of one source instruction. reloc is set when the
// words refer to a symbol the link step has to patch.
type encoded struct {
	words []uint32
	reloc *symtab.Entry
}

// variant is implemented once per instruction format. The set is closed:
// every mnemonic maps to one of the types below.
type variant interface {
	Type() InstructionType
	size(args []string) (int, error)
	encode(ctx lineContext, args []string) (encoded, error)
}

func one(word uint32) encoded {
	return encoded{words: []uint32{word}}
}

func registerAt(args []string, i int) (uint8, error) {
	r, err := operand.ParseRegister(args[i])
	if err != nil {
		return 0, operandErr(i+1, args[i], err)
	}
	return r, nil
}

func registers(args []string, n int) ([]uint8, error) {
	regs := make([]uint8, n)
	for i := 0; i < n; i++ {
		r, err := registerAt(args, i)
		if err != nil {
			return nil, err
		}
		regs[i] = r
	}
	return regs, nil
}

func numberAt(args []string, i int, lower, upper int64) (int64, error) {
	v, err := operand.ParseNum(args[i], lower, upper)
	if err != nil {
		return 0, operandErr(i+1, args[i], err)
	}
	return v, nil
}

func labelAt(args []string, i int) (string, error) {
	if !operand.IsLabel(args[i]) {
		return "", operandErr(i+1, args[i], ErrInvalidLabel)
	}
	return args[i], nil
}

// rFormat: op rd, rs, rt
type rFormat struct {
	funct uint32
}

func (rFormat) Type() InstructionType { return RType }

func (v rFormat) size(args []string) (int, error) {
	return 1, checkCount(args, 3)
}

func (v rFormat) encode(_ lineContext, args []string) (encoded, error) {
	if err := checkCount(args, 3); err != nil {
		return encoded{}, err
	}
	regs, err := registers(args, 3)
	if err != nil {
		return encoded{}, err
	}
	return one(formR(regs[1], regs[2], regs[0], 0, v.funct)), nil
}

// shiftFormat: op rd, rt, shamt
type shiftFormat struct {
	funct uint32
}

func (shiftFormat) Type() InstructionType { return RType }

func (v shiftFormat) size(args []string) (int, error) {
	return 1, checkCount(args, 3)
}

func (v shiftFormat) encode(_ lineContext, args []string) (encoded, error) {
	if err := checkCount(args, 3); err != nil {
		return encoded{}, err
	}
	regs, err := registers(args, 2)
	if err != nil {
		return encoded{}, err
	}
	shamt, err := numberAt(args, 2, 0, shamtMax)
	if err != nil {
		return encoded{}, err
	}
	return one(formR(0, regs[1], regs[0], uint8(shamt), v.funct)), nil
}

// jumpRegister: op rs
type jumpRegister struct {
	funct uint32
}

func (jumpRegister) Type() InstructionType { return RType }

func (v jumpRegister) size(args []string) (int, error) {
	return 1, checkCount(args, 1)
}

func (v jumpRegister) encode(_ lineContext, args []string) (encoded, error) {
	if err := checkCount(args, 1); err != nil {
		return encoded{}, err
	}
	rs, err := registerAt(args, 0)
	if err != nil {
		return encoded{}, err
	}
	return one(formR(rs, 0, 0, 0, v.funct)), nil
}

// fixed is an operand-less alias for a constant word.
type fixed struct {
	word uint32
}

func (fixed) Type() InstructionType { return RType }

func (v fixed) size(args []string) (int, error) {
	return 1, checkCount(args, 0)
}

func (v fixed) encode(_ lineContext, args []string) (encoded, error) {
	if err := checkCount(args, 0); err != nil {
		return encoded{}, err
	}
	return one(v.word), nil
}

// iFormat: op rt, rs, imm. signed selects a sign-extended immediate,
// otherwise the immediate is zero-extended.
type iFormat struct {
	opcode uint32
	signed bool
}

func (iFormat) Type() InstructionType { return IType }

func (v iFormat) bounds() (int64, int64) {
	if v.signed {
		return imm16Min, imm16Max
	}
	return 0, uimm16Max
}

func (v iFormat) size(args []string) (int, error) {
	return 1, checkCount(args, 3)
}

func (v iFormat) encode(_ lineContext, args []string) (encoded, error) {
	if err := checkCount(args, 3); err != nil {
		return encoded{}, err
	}
	regs, err := registers(args, 2)
	if err != nil {
		return encoded{}, err
	}
	lower, upper := v.bounds()
	imm, err := numberAt(args, 2, lower, upper)
	if err != nil {
		return encoded{}, err
	}
	return one(formI(v.opcode, regs[1], regs[0], uint32(imm))), nil
}

// upperImmediate: op rt, imm
type upperImmediate struct {
	opcode uint32
}

func (upperImmediate) Type() InstructionType { return IType }

func (v upperImmediate) size(args []string) (int, error) {
	return 1, checkCount(args, 2)
}

func (v upperImmediate) encode(_ lineContext, args []string) (encoded, error) {
	if err := checkCount(args, 2); err != nil {
		return encoded{}, err
	}
	rt, err := registerAt(args, 0)
	if err != nil {
		return encoded{}, err
	}
	imm, err := numberAt(args, 1, 0, uimm16Max)
	if err != nil {
		return encoded{}, err
	}
	return one(formI(v.opcode, 0, rt, uint32(imm))), nil
}

// loadStore: op rt, offset, rs. The source form "offset(rs)" arrives
// already split into two tokens.
type loadStore struct {
	opcode uint32
}

func (loadStore) Type() InstructionType { return IType }

func (v loadStore) size(args []string) (int, error) {
	return 1, checkCount(args, 3)
}

func (v loadStore) encode(_ lineContext, args []string) (encoded, error) {
	if err := checkCount(args, 3); err != nil {
		return encoded{}, err
	}
	rt, err := registerAt(args, 0)
	if err != nil {
		return encoded{}, err
	}
	offset, err := numberAt(args, 1, imm16Min, imm16Max)
	if err != nil {
		return encoded{}, err
	}
	rs, err := registerAt(args, 2)
	if err != nil {
		return encoded{}, err
	}
	return one(formI(v.opcode, rs, rt, uint32(offset))), nil
}

// branch: op rs, rt, label. The label must already be defined.
type branch struct {
	opcode uint32
}

func (branch) Type() InstructionType { return IType }

func (v branch) size(args []string) (int, error) {
	if err := checkCount(args, 3); err != nil {
		return 0, err
	}
	_, err := labelAt(args, 2)
	return 1, err
}

func (v branch) encode(ctx lineContext, args []string) (encoded, error) {
	if err := checkCount(args, 3); err != nil {
		return encoded{}, err
	}
	regs, err := registers(args, 2)
	if err != nil {
		return encoded{}, err
	}
	label, err := labelAt(args, 2)
	if err != nil {
		return encoded{}, err
	}
	target, ok := ctx.symbols.Lookup(label)
	if !ok {
		return encoded{}, operandErr(3, label, ErrUndefinedLabel)
	}
	offset := (int64(target) - (int64(ctx.addr) + 4)) / 4
	if offset < imm16Min || offset > imm16Max {
		return encoded{}, operandErr(3, label, ErrBranchRange)
	}
	return one(formI(v.opcode, regs[0], regs[1], uint32(offset))), nil
}

// jump: op label. Unresolved labels leave a zero target and a relocation.
type jump struct {
	opcode uint32
}

func (jump) Type() InstructionType { return JType }

func (v jump) size(args []string) (int, error) {
	if err := checkCount(args, 1); err != nil {
		return 0, err
	}
	_, err := labelAt(args, 0)
	return 1, err
}

func (v jump) encode(ctx lineContext, args []string) (encoded, error) {
	if err := checkCount(args, 1); err != nil {
		return encoded{}, err
	}
	label, err := labelAt(args, 0)
	if err != nil {
		return encoded{}, err
	}
	target, ok := ctx.symbols.Lookup(label)
	if !ok {
		return encoded{
			words: []uint32{formJ(v.opcode, 0)},
			reloc: &symtab.Entry{Name: label, Address: ctx.addr},
		}, nil
	}
	// the upper four bits come from the delay slot address
	if target&0xf0000000 != (ctx.addr+4)&0xf0000000 {
		return encoded{}, operandErr(1, label, ErrJumpRange)
	}
	return one(formJ(v.opcode, target/4)), nil
}

// loadImmediate expands "li rt, imm" into ori, or lui+ori for values that
// do not fit an unsigned 16-bit immediate.
type loadImmediate struct {
	lui uint32
	ori uint32
}

func (loadImmediate) Type() InstructionType { return IType }

// plan validates the operands and returns the word count with the literal.
func (v loadImmediate) plan(args []string) (int, int64, error) {
	if err := checkCount(args, 2); err != nil {
		return 0, 0, err
	}
	imm, err := numberAt(args, 1, math.MinInt32, math.MaxUint32)
	if err != nil {
		return 0, 0, err
	}
	if imm >= 0 && imm <= uimm16Max {
		return 1, imm, nil
	}
	return 2, imm, nil
}

func (v loadImmediate) size(args []string) (int, error) {
	n, _, err := v.plan(args)
	return n, err
}

func (v loadImmediate) encode(_ lineContext, args []string) (encoded, error) {
	n, imm, err := v.plan(args)
	if err != nil {
		return encoded{}, err
	}
	rt, err := registerAt(args, 0)
	if err != nil {
		return encoded{}, err
	}
	word := uint32(imm)
	if n == 1 {
		return one(formI(v.ori, operand.RegZero, rt, word)), nil
	}
	return encoded{words: []uint32{
		formI(v.lui, operand.RegZero, operand.RegAT, word>>16),
		formI(v.ori, operand.RegAT, rt, word&immMask),
	}}, nil
}
