package encoder

import "fmt"

// Opcodes, bits 31..26.
const (
	opSpecial = 0x00 // R-format
	opJ       = 0x02
	opJAL     = 0x03
	opBEQ     = 0x04
	opBNE     = 0x05
	opADDIU   = 0x09
	opORI     = 0x0d
	opLUI     = 0x0f
	opLB      = 0x20
	opLW      = 0x23
	opLBU     = 0x24
	opSB      = 0x28
	opSW      = 0x2b
)

// Function codes for opSpecial, bits 5..0.
const (
	fnSLL  = 0x00
	fnJR   = 0x08
	fnADDU = 0x21
	fnOR   = 0x25
	fnSLT  = 0x2a
	fnSLTU = 0x2b
)

// Field widths and ranges.
const (
	regMask    = 0x1f
	shamtMax   = 31
	immMask    = 0xffff
	imm16Min   = -1 << 15
	imm16Max   = 1<<15 - 1
	uimm16Max  = 1<<16 - 1
	targetMask = 0x03ffffff
)

// InstructionType defines MIPS instruction encoding categories.
type InstructionType string

const (
	RType InstructionType = "R-Type"
	IType InstructionType = "I-Type"
	JType InstructionType = "J-Type"
)

func formR(rs, rt, rd, shamt uint8, funct uint32) uint32 {
	return opSpecial<<26 |
		uint32(rs&regMask)<<21 |
		uint32(rt&regMask)<<16 |
		uint32(rd&regMask)<<11 |
		uint32(shamt&regMask)<<6 |
		funct&0x3f
}

func formI(opcode uint32, rs, rt uint8, imm uint32) uint32 {
	return opcode<<26 |
		uint32(rs&regMask)<<21 |
		uint32(rt&regMask)<<16 |
		imm&immMask
}

func formJ(opcode uint32, target uint32) uint32 {
	return opcode<<26 | target&targetMask
}

// Fields is a machine word split into its encoding fields.
type Fields struct {
	Type   InstructionType
	Opcode uint32
	Rs     uint8
	Rt     uint8
	Rd     uint8
	Shamt  uint8
	Funct  uint32
	Imm    uint16
	Target uint32
}

// Decode splits word into fields according to its opcode.
// https://en.wikibooks.org/wiki/MIPS_Assembly/Instruction_Formats
func Decode(word uint32) Fields {
	f := Fields{Opcode: word >> 26 & 0x3f}
	switch f.Opcode {
	case opSpecial:
		f.Type = RType
		f.Rs = uint8(word >> 21 & regMask)
		f.Rt = uint8(word >> 16 & regMask)
		f.Rd = uint8(word >> 11 & regMask)
		f.Shamt = uint8(word >> 6 & regMask)
		f.Funct = word & 0x3f
	case opJ, opJAL:
		f.Type = JType
		f.Target = word & targetMask
	default:
		f.Type = IType
		f.Rs = uint8(word >> 21 & regMask)
		f.Rt = uint8(word >> 16 & regMask)
		f.Imm = uint16(word & immMask)
	}
	return f
}

func (f Fields) String() string {
	switch f.Type {
	case RType:
		return fmt.Sprintf("%s op=0x%x rs=%d rt=%d rd=%d shamt=%d funct=0x%x",
			f.Type, f.Opcode, f.Rs, f.Rt, f.Rd, f.Shamt, f.Funct)
	case JType:
		return fmt.Sprintf("%s op=0x%x target=0x%x", f.Type, f.Opcode, f.Target)
	default:
		return fmt.Sprintf("%s op=0x%x rs=%d rt=%d imm=0x%04x", f.Type, f.Opcode, f.Rs, f.Rt, f.Imm)
	}
}
