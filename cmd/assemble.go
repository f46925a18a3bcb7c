// Package cmd defines all the commands for the cli
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"

	"github.com/ChainSafe/mipsasm/asmparser"
	"github.com/ChainSafe/mipsasm/asmparser/mips"
	"github.com/ChainSafe/mipsasm/assembler"
	"github.com/ChainSafe/mipsasm/diag"
	"github.com/ChainSafe/mipsasm/encoder"
	"github.com/ChainSafe/mipsasm/profile"
	"github.com/ChainSafe/mipsasm/renderer"
)

var (
	ProfileFlag = &cli.PathFlag{
		Name:     "profile",
		Usage:    "Path to the assembler profile config file",
		Required: false,
	}
	FormatFlag = &cli.StringFlag{
		Name:        "format",
		Usage:       "format of the output. Options: text, json, hex, listing",
		Required:    false,
		DefaultText: "text",
	}
	OutputFlag = &cli.PathFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "output file path. Default: stdout",
		Required: false,
	}
	VerboseFlag = &cli.BoolFlag{
		Name:     "verbose",
		Usage:    "trace both passes on stderr",
		Required: false,
		Value:    false,
	}
	DumpTablesFlag = &cli.BoolFlag{
		Name:     "dump-tables",
		Usage:    "pretty print the symbol and relocation tables on stderr",
		Required: false,
		Value:    false,
	}
)

func CreateAssembleCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "assemble",
		Usage:       "Assembles a MIPS source file into an object",
		Description: instructionSet(),
		ArgsUsage:   "<file.s>",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			FormatFlag,
			OutputFlag,
			VerboseFlag,
			DumpTablesFlag,
		},
	}
}

var AssembleCommand = CreateAssembleCommand(AssembleSource)

// instructionSet describes the command with the supported mnemonics
// grouped by encoding type.
func instructionSet() string {
	groups := make(map[encoder.InstructionType][]string)
	for _, name := range encoder.Mnemonics() {
		typ, err := encoder.TypeOf(name)
		if err != nil {
			continue
		}
		groups[typ] = append(groups[typ], name)
	}
	var b strings.Builder
	b.WriteString("Assembles a MIPS source file into an object.\n\nSupported instructions:")
	for _, typ := range []encoder.InstructionType{encoder.RType, encoder.IType, encoder.JType} {
		fmt.Fprintf(&b, "\n  %s: %s", typ, strings.Join(groups[typ], " "))
	}
	return b.String()
}

func AssembleSource(ctx *cli.Context) error {
	prof, err := loadProfile(ctx)
	if err != nil {
		return err
	}
	if ctx.Bool(VerboseFlag.Name) {
		enableTracing()
	}
	if format := ctx.String(FormatFlag.Name); format != "" {
		prof.Format = format
	}
	render, err := renderer.New(prof.Format)
	if err != nil {
		return err
	}

	lines, err := parseSource(ctx)
	if err != nil {
		return err
	}

	log := diag.New(os.Stderr)
	asm := assembler.New(
		assembler.WithLogger(log),
		assembler.WithTextBase(prof.TextBase),
		assembler.WithMaxErrors(prof.MaxErrors),
	)
	prog, err := asm.Assemble(lines)
	if err != nil {
		return fmt.Errorf("assembly failed with %d errors: %w", max(log.Count(), 1), err)
	}

	if ctx.Bool(DumpTablesFlag.Name) {
		pp.Fprintln(os.Stderr, map[string]any{
			"symbols":     prog.Symbols,
			"relocations": prog.Relocations,
		})
	}

	if err := writeOutput(ctx.Path(OutputFlag.Name), func(w io.Writer) error {
		return render.Render(prog, w)
	}); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}

func loadProfile(ctx *cli.Context) (*profile.AsmProfile, error) {
	path := ctx.Path(ProfileFlag.Name)
	if path == "" {
		return profile.Default(), nil
	}
	prof, err := profile.LoadProfile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	return prof, nil
}

func parseSource(ctx *cli.Context) ([]*asmparser.Line, error) {
	source := ctx.Args().First()
	if source == "" {
		return nil, fmt.Errorf("missing source file")
	}
	lines, err := mips.NewParser().ParseFile(source)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", source, err)
	}
	return lines, nil
}

// enableTracing routes glog output to stderr with pass-level detail.
func enableTracing() {
	_ = flag.Set("logtostderr", "true")
	_ = flag.Set("v", "2")
}

func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
