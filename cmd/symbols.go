package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ChainSafe/mipsasm/assembler"
	"github.com/ChainSafe/mipsasm/diag"
	"github.com/ChainSafe/mipsasm/symtab"
)

func CreateSymbolsCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "symbols",
		Usage:       "Prints the labels of a MIPS source file with their addresses",
		Description: "Runs the first assembly pass and prints the resulting symbol table",
		ArgsUsage:   "<file.s>",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			OutputFlag,
			VerboseFlag,
		},
	}
}

var SymbolsCommand = CreateSymbolsCommand(PrintSymbols)

func PrintSymbols(ctx *cli.Context) error {
	prof, err := loadProfile(ctx)
	if err != nil {
		return err
	}
	if ctx.Bool(VerboseFlag.Name) {
		enableTracing()
	}
	lines, err := parseSource(ctx)
	if err != nil {
		return err
	}

	log := diag.New(os.Stderr)
	symbols := symtab.NewSymbolTable(log)
	defer symbols.Release()

	asm := assembler.New(
		assembler.WithLogger(log),
		assembler.WithTextBase(prof.TextBase),
		assembler.WithMaxErrors(prof.MaxErrors),
	)
	if err := asm.PassOne(lines, symbols); err != nil {
		return fmt.Errorf("pass one failed with %d errors: %w", max(log.Count(), 1), err)
	}

	return writeOutput(ctx.Path(OutputFlag.Name), func(w io.Writer) error {
		_, err := symbols.WriteTo(w)
		return err
	})
}
