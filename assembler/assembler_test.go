package assembler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ChainSafe/mipsasm/asmparser"
	"github.com/ChainSafe/mipsasm/asmparser/mips"
	"github.com/ChainSafe/mipsasm/diag"
	"github.com/ChainSafe/mipsasm/encoder"
	"github.com/ChainSafe/mipsasm/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
main:	li $t0, 0x12345678
loop:	addiu $t0, $t0, -1
	bne $t0, $0, loop
	jal helper
	jal printf
helper:	jr $ra
`

func parse(t *testing.T, src string) []*asmparser.Line {
	t.Helper()
	lines, err := mips.NewParser().Parse(strings.NewReader(src))
	require.NoError(t, err)
	return lines
}

func TestAssemble(t *testing.T) {
	prog, err := New().Assemble(parse(t, sample))
	require.NoError(t, err)

	assert.Equal(t, []uint32{
		0x3c011234, 0x34285678, // li
		0x2508ffff,
		0x1500fffe,
		0x0c000006,
		0x0c000000,
		0x03e00008,
	}, prog.Text)
	assert.Equal(t, []symtab.Entry{
		{Name: "main", Address: 0x0},
		{Name: "loop", Address: 0x8},
		{Name: "helper", Address: 0x18},
	}, prog.Symbols)
	assert.Equal(t, []symtab.Entry{{Name: "printf", Address: 0x14}}, prog.Relocations)
}

func TestAssembleTextBase(t *testing.T) {
	prog, err := New(WithTextBase(0x00400000)).Assemble(parse(t, sample))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0c100006), prog.Text[4])
	assert.Equal(t, uint32(0x1500fffe), prog.Text[3])
	assert.Equal(t, uint32(0x00400014), prog.Relocations[0].Address)

	_, err = New(WithTextBase(2)).Assemble(parse(t, sample))
	assert.ErrorIs(t, err, ErrTextBase)
}

func TestPassOneAssignsAddressesFromPredictedSizes(t *testing.T) {
	lines := []*asmparser.Line{
		{Number: 1, Label: "a", Mnemonic: "li", Args: []string{"$v0", "26"}},
		{Number: 2, Label: "b", Mnemonic: "li", Args: []string{"$v0", "0x10000"}},
		{Number: 3, Label: "c"},
		{Number: 4, Label: "d", Mnemonic: "jr", Args: []string{"$ra"}},
	}
	symbols := symtab.NewSymbolTable(nil)
	require.NoError(t, New().PassOne(lines, symbols))

	for name, want := range map[string]uint32{"a": 0, "b": 4, "c": 12, "d": 12} {
		addr, ok := symbols.Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, addr, name)
	}
}

func TestAssembleReportsEveryFailedLine(t *testing.T) {
	src := `
start:	addu $t0, $t0, $3
start:	jr $ra
	beq $t0, $t1, nowhere
	li $t0, 12q
`
	var logBuf bytes.Buffer
	_, err := New(WithLogger(diag.New(&logBuf))).Assemble(parse(t, src))
	require.Error(t, err)
	assert.ErrorIs(t, err, symtab.ErrDuplicate)
	assert.Contains(t, err.Error(), "pass one")
	assert.Equal(t, "Error: name 'start' already exists in table.\n"+
		"Error: li operand 2 (\"12q\"): malformed number: \"12q\".\n", logBuf.String())

	src = `
	addu $t0, $t0, $3
	beq $t0, $t1, nowhere
	jr $ra
`
	logBuf.Reset()
	_, err = New(WithLogger(diag.New(&logBuf))).Assemble(parse(t, src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass two")
	assert.ErrorIs(t, err, encoder.ErrUndefinedLabel)
	assert.Equal(t, 2, strings.Count(logBuf.String(), "\n"))

	var lineErr *asmparser.Error
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)
}

func TestMaxErrors(t *testing.T) {
	src := `
	addu $1, $0, $0
	addu $2, $0, $0
	addu $3, $0, $0
`
	var logBuf bytes.Buffer
	_, err := New(WithMaxErrors(2), WithLogger(diag.New(&logBuf))).Assemble(parse(t, src))
	assert.ErrorIs(t, err, ErrTooManyErrors)
	assert.Equal(t, 2, strings.Count(logBuf.String(), "\n"))
}

func TestPassTwoLeavesNoOutputForFailedLines(t *testing.T) {
	lines := parse(t, `
	ori $t0, $0, 1
	ori $t0, $0, -1
	ori $t0, $0, 2
`)
	var prog Program
	err := New().PassTwo(&prog, lines, symtab.NewSymbolTable(nil), nil)
	require.Error(t, err)
	assert.Equal(t, []uint32{0x34080001, 0x34080002}, prog.Text)
}
