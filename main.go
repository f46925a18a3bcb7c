package main

import (
	"context"
	"log"
	"os"

	"github.com/ChainSafe/mipsasm/cmd"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = os.Args[0]
	app.Usage = "Reduced MIPS assembler"
	app.Description = "Two-pass assembler for a reduced MIPS instruction set"
	app.Commands = []*cli.Command{
		cmd.AssembleCommand,
		cmd.SymbolsCommand,
	}
	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
