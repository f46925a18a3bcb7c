package operand

import "fmt"

// registers lists the only register spellings accepted as operands. Numeric
// forms other than $0 are deliberately absent.
var registers = map[string]uint8{
	"$0":    0,
	"$zero": 0,
	"$at":   1,
	"$v0":   2,
	"$v1":   3,
	"$a0":   4,
	"$a1":   5,
	"$a2":   6,
	"$a3":   7,
	"$t0":   8,
	"$t1":   9,
	"$t2":   10,
	"$t3":   11,
	"$t4":   12,
	"$t5":   13,
	"$t6":   14,
	"$t7":   15,
	"$s0":   16,
	"$s1":   17,
	"$s2":   18,
	"$s3":   19,
	"$s4":   20,
	"$s5":   21,
	"$s6":   22,
	"$s7":   23,
	"$t8":   24,
	"$t9":   25,
	"$k0":   26,
	"$k1":   27,
	"$gp":   28,
	"$sp":   29,
	"$fp":   30,
	"$ra":   31,
}

// Register indexes used when synthesising instructions.
const (
	RegZero uint8 = 0
	RegAT   uint8 = 1
)

// ParseRegister maps a register name such as "$t3" to its 5-bit index.
func ParseRegister(token string) (uint8, error) {
	if r, ok := registers[token]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRegister, token)
}
