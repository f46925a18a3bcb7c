package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ChainSafe/mipsasm/assembler"
	"github.com/ChainSafe/mipsasm/encoder"
)

const (
	ansiBlue  = "\033[94m"
	ansiReset = "\033[0m"
)

// ListingRenderer prints one line per word with its address and decoded
// fields. Labels are highlighted when writing to a terminal.
type ListingRenderer struct{}

// NewListingRenderer creates a new instance of ListingRenderer.
func NewListingRenderer() Renderer {
	return &ListingRenderer{}
}

func (r *ListingRenderer) Render(prog *assembler.Program, output io.Writer) error {
	color := isTerminal(output)
	labels := make(map[uint32][]string)
	for _, s := range prog.Symbols {
		labels[s.Address] = append(labels[s.Address], s.Name)
	}
	relocated := make(map[uint32]string)
	for _, rel := range prog.Relocations {
		relocated[rel.Address] = rel.Name
	}

	var report strings.Builder
	for i, word := range prog.Text {
		addr := prog.TextBase + uint32(4*i)
		for _, name := range labels[addr] {
			if color {
				report.WriteString(fmt.Sprintf("%s%s:%s\n", ansiBlue, name, ansiReset))
			} else {
				report.WriteString(fmt.Sprintf("%s:\n", name))
			}
		}
		report.WriteString(fmt.Sprintf("  0x%08x  %08x  %s", addr, word, encoder.Decode(word)))
		if name, ok := relocated[addr]; ok {
			report.WriteString(fmt.Sprintf("  <reloc %s>", name))
		}
		report.WriteString("\n")
	}

	_, err := output.Write([]byte(report.String()))
	return err
}

func (r *ListingRenderer) Format() string {
	return "listing"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
