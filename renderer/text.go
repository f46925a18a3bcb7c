package renderer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ChainSafe/mipsasm/assembler"
	"github.com/ChainSafe/mipsasm/symtab"
)

// TextRenderer writes the object file layout: the text section as hex
// words followed by the symbol and relocation tables.
type TextRenderer struct{}

// NewTextRenderer creates a new instance of TextRenderer.
func NewTextRenderer() Renderer {
	return &TextRenderer{}
}

func (r *TextRenderer) Render(prog *assembler.Program, output io.Writer) error {
	w := bufio.NewWriter(output)

	fmt.Fprintln(w, ".text")
	hex := NewHexWriter(w)
	for _, word := range prog.Text {
		if err := hex.WriteWord(word); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, ".symbol")
	if _, err := symtab.WriteEntries(w, prog.Symbols); err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, ".relocation")
	if _, err := symtab.WriteEntries(w, prog.Relocations); err != nil {
		return err
	}

	return w.Flush()
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}

// HexWriter streams words to an io.Writer as eight hex digits per line.
type HexWriter struct {
	w io.Writer
}

// NewHexWriter returns a HexWriter on w.
func NewHexWriter(w io.Writer) *HexWriter {
	return &HexWriter{w: w}
}

func (h *HexWriter) WriteWord(word uint32) error {
	_, err := fmt.Fprintf(h.w, "%08x\n", word)
	return err
}

// HexRenderer writes only the text section, one word per line.
type HexRenderer struct{}

func NewHexRenderer() Renderer {
	return &HexRenderer{}
}

func (r *HexRenderer) Render(prog *assembler.Program, output io.Writer) error {
	w := bufio.NewWriter(output)
	hex := NewHexWriter(w)
	for _, word := range prog.Text {
		if err := hex.WriteWord(word); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (r *HexRenderer) Format() string {
	return "hex"
}
