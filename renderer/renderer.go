// Package renderer provides a way to write assembled programs in different formats.
package renderer

import (
	"fmt"
	"io"

	"github.com/ChainSafe/mipsasm/assembler"
	"github.com/ChainSafe/mipsasm/profile"
)

// Renderer defines the interface for writing an assembled program.
type Renderer interface {
	// Render writes prog to output in the renderer's format.
	Render(prog *assembler.Program, output io.Writer) error

	// Format returns the name of the output format (e.g., "json", "text").
	Format() string
}

// New returns the renderer registered for format.
func New(format string) (Renderer, error) {
	switch format {
	case profile.FormatText:
		return NewTextRenderer(), nil
	case profile.FormatJSON:
		return NewJSONRenderer(), nil
	case profile.FormatHex:
		return NewHexRenderer(), nil
	case profile.FormatListing:
		return NewListingRenderer(), nil
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}
}
