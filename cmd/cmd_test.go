package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const source = `
main:   li    $t0, 26
loop:   addiu $t0, $t0, -1
        bne   $t0, $0, loop
        jal   printf
        jr    $ra
`

func runApp(t *testing.T, args ...string) error {
	t.Helper()
	app := cli.NewApp()
	app.Commands = []*cli.Command{AssembleCommand, SymbolsCommand}
	return app.RunContext(context.Background(), append([]string{"mipsasm"}, args...))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestAssembleCommand(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "prog.s", source)
	out := filepath.Join(dir, "prog.o")

	require.NoError(t, runApp(t, "assemble", "--output", out, src))
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	want := ".text\n" +
		"3408001a\n" +
		"2508ffff\n" +
		"1500fffe\n" +
		"0c000000\n" +
		"03e00008\n" +
		"\n" +
		".symbol\n" +
		"0\tmain\n" +
		"4\tloop\n" +
		"\n" +
		".relocation\n" +
		"12\tprintf\n"
	assert.Equal(t, want, string(got))
}

func TestAssembleCommandProfile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "prog.s", source)
	prof := writeFile(t, dir, "profile.yaml", "name: hex\nformat: hex\ntext_base: 4194304\n")
	out := filepath.Join(dir, "prog.hex")

	require.NoError(t, runApp(t, "assemble", "--profile", prof, "--output", out, src))
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "3408001a\n2508ffff\n1500fffe\n0c000000\n03e00008\n", string(got))

	// the flag wins over the profile
	require.NoError(t, runApp(t, "assemble", "--profile", prof, "--format", "json", "--output", out, src))
	got, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), `"textBase":4194304`)
}

func TestAssembleCommandErrors(t *testing.T) {
	dir := t.TempDir()

	err := runApp(t, "assemble")
	assert.ErrorContains(t, err, "missing source file")

	src := writeFile(t, dir, "bad.s", "addu $t0, $t1\nj 1bad\n")
	err = runApp(t, "assemble", "--output", filepath.Join(dir, "bad.o"), src)
	assert.ErrorContains(t, err, "assembly failed with 2 errors")
	assert.NoFileExists(t, filepath.Join(dir, "bad.o"))

	err = runApp(t, "assemble", "--format", "srec", src)
	assert.ErrorContains(t, err, "invalid format: srec")

	err = runApp(t, "assemble", "--profile", filepath.Join(dir, "missing.yaml"), src)
	assert.ErrorContains(t, err, "error loading profile")
}

func TestSymbolsCommand(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "prog.s", source)
	out := filepath.Join(dir, "symbols.txt")

	require.NoError(t, runApp(t, "symbols", "--output", out, src))
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "0\tmain\n4\tloop\n", string(got))
}

func TestAssembleCommandReportsLine(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "bad.s", "main: jr $ra\n\tjr $ra\n\tbeq $t0, $t1, nowhere\n")

	err := runApp(t, "assemble", "--output", filepath.Join(dir, "bad.o"), src)
	assert.ErrorContains(t, err, "assembly failed with 1 errors")
	assert.ErrorContains(t, err, "line 3 (beq $t0, $t1, nowhere)")
	assert.ErrorContains(t, err, `operand 3 ("nowhere"): undefined label`)
}

func TestSymbolsCommandReportsLine(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "dup.s", "main: nop\nloop: nop\nmain: jr $ra\n")

	err := runApp(t, "symbols", src)
	assert.ErrorContains(t, err, "pass one failed with 1 errors")
	assert.ErrorContains(t, err, "line 3")
}

func TestAssembleCommandDescription(t *testing.T) {
	desc := AssembleCommand.Description
	assert.Contains(t, desc, "R-Type: addu jr nop or sll slt sltu")
	assert.Contains(t, desc, "I-Type: addiu beq bne lb lbu li lui lw ori sb sw")
	assert.Contains(t, desc, "J-Type: j jal")
}
