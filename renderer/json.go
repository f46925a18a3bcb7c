package renderer

import (
	"encoding/json"
	"io"

	"github.com/ChainSafe/mipsasm/assembler"
)

// JSONRenderer renders programs in JSON format.
type JSONRenderer struct{}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Render(prog *assembler.Program, output io.Writer) error {
	return json.NewEncoder(output).Encode(prog)
}

func (r *JSONRenderer) Format() string {
	return "json"
}
