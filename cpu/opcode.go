package cpu

import (
	"fmt"
	"iter"
	"maps"
)

// Op is an instruction opcode.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_RIGHT = Op(0) // right
	OP_LEFT  = Op(1) // left
	OP_ADD   = Op(2) // add
	OP_SUB   = Op(3) // sub
	OP_OUT   = Op(4) // out
	OP_IN    = Op(5) // in
	OP_JZ    = Op(6) // jz
	OP_JNZ   = Op(7) // jnz
)

const (
	// CODE_OP_SHIFT positions the opcode in the instruction word.
	CODE_OP_SHIFT = 5
	// CODE_ARG_MASK masks the 5-bit argument field.
	CODE_ARG_MASK = (1 << CODE_OP_SHIFT) - 1
	// CODE_ARG_MIN and CODE_ARG_MAX bound the signed argument range.
	CODE_ARG_MIN = -(CODE_ARG_MASK + 1) / 2
	CODE_ARG_MAX = (CODE_ARG_MASK+1)/2 - 1
)

// CODE_HALT is the reserved all-zero halt encoding (right, offset 0).
const CODE_HALT = Code(0)

var _cpu_defines = map[string]string{
	"OP_RIGHT": fmt.Sprintf("%v", int(OP_RIGHT)),
	"OP_LEFT":  fmt.Sprintf("%v", int(OP_LEFT)),
	"OP_ADD":   fmt.Sprintf("%v", int(OP_ADD)),
	"OP_SUB":   fmt.Sprintf("%v", int(OP_SUB)),
	"OP_OUT":   fmt.Sprintf("%v", int(OP_OUT)),
	"OP_IN":    fmt.Sprintf("%v", int(OP_IN)),
	"OP_JZ":    fmt.Sprintf("%v", int(OP_JZ)),
	"OP_JNZ":   fmt.Sprintf("%v", int(OP_JNZ)),
}

// Defines returns an iter of defines for the package.
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Code is a single packed instruction word.
type Code uint8

// MakeCode packs an opcode with an unsigned magnitude argument (0..31).
func MakeCode(op Op, arg uint8) Code {
	return Code((uint8(op) << CODE_OP_SHIFT) | (arg & CODE_ARG_MASK))
}

// MakeCodeOffset packs an opcode with a signed offset argument (-16..15).
func MakeCodeOffset(op Op, offset int) Code {
	return MakeCode(op, uint8(offset)&CODE_ARG_MASK)
}

// Op returns the opcode field.
func (code Code) Op() Op {
	return Op(code >> CODE_OP_SHIFT)
}

// Arg returns the raw 5-bit argument field.
func (code Code) Arg() uint8 {
	return uint8(code) & CODE_ARG_MASK
}

// Offset returns the argument as a signed offset.
func (code Code) Offset() (offset int) {
	offset = int(code.Arg())
	if offset > CODE_ARG_MAX {
		offset -= CODE_ARG_MASK + 1
	}
	return
}

// IsHalt reports whether this is the reserved halt encoding.
func (code Code) IsHalt() bool {
	return code == CODE_HALT
}

// NeedsCell reports whether execution requires the current data cell.
// Pointer ops and input do not; arithmetic, output, and jumps do.
func (op Op) NeedsCell() bool {
	switch op {
	case OP_ADD, OP_SUB, OP_OUT, OP_JZ, OP_JNZ:
		return true
	}
	return false
}

// String returns the assembly language representation of the word.
func (code Code) String() (out string) {
	if code.IsHalt() {
		out = "halt"
		return
	}

	op := code.Op()
	switch op {
	case OP_RIGHT, OP_LEFT, OP_JZ, OP_JNZ:
		out = fmt.Sprintf("%v %+d", op.String(), code.Offset())
	case OP_ADD, OP_SUB:
		out = fmt.Sprintf("%v %d", op.String(), code.Arg())
	case OP_OUT, OP_IN:
		out = op.String()
	}

	return
}
