package encoder

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	ErrInvalidLabel    = errors.New("invalid label")
	ErrUndefinedLabel  = errors.New("undefined label")
	ErrBranchRange     = errors.New("branch offset does not fit in 16 bits")
	ErrJumpRange       = errors.New("jump target outside the current 256MB region")
	ErrUnaligned       = errors.New("instruction address is not a multiple of 4")
)

// ShapeError reports a wrong operand count.
type ShapeError struct {
	Mnemonic string
	Want     int
	Got      int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s expects %d operands, got %d", e.Mnemonic, e.Want, e.Got)
}

// OperandError reports the operand that failed validation. Index is 1-based.
type OperandError struct {
	Mnemonic string
	Index    int
	Token    string
	Err      error
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("%s operand %d (%q): %v", e.Mnemonic, e.Index, e.Token, e.Err)
}

func (e *OperandError) Unwrap() error {
	return e.Err
}

func operandErr(index int, token string, err error) *OperandError {
	return &OperandError{Index: index, Token: token, Err: err}
}

func checkCount(args []string, want int) error {
	if len(args) != want {
		return &ShapeError{Want: want, Got: len(args)}
	}
	return nil
}
