package cpu

import (
	"errors"

	"github.com/ezrec/ubf/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrLoopOpen    = errors.New(f("'[' without matching ']'"))
	ErrLoopClose   = errors.New(f("']' without matching '['"))
	ErrJumpRange   = errors.New(f("loop body exceeds jump offset range"))
	ErrProgramSize = errors.New(f("program exceeds the program store"))
)

// ErrSyntax locates an assembler error in the source text.
type ErrSyntax struct {
	LineNo int
	Col    int
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d col %d %v", err.LineNo, err.Col, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
