package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Program is an assembled sequence of instruction words.
type Program struct {
	Codes []Code
}

// Binary returns the packed instruction bytes, ready for upload.
func (prog *Program) Binary() (bins []uint8) {
	for _, code := range prog.Codes {
		bins = append(bins, uint8(code))
	}

	return
}

// FromBinary replaces the program with raw instruction bytes.
func (prog *Program) FromBinary(bins []uint8) {
	prog.Codes = prog.Codes[:0]
	for _, bin := range bins {
		prog.Codes = append(prog.Codes, Code(bin))
	}
}

// All returns an iterator over (address, code) pairs.
func (prog *Program) All() iter.Seq2[uint, Code] {
	return func(yield func(addr uint, code Code) bool) {
		for n, code := range prog.Codes {
			if !yield(uint(n), code) {
				return
			}
		}
	}
}

// String returns a disassembly listing of the program.
func (prog *Program) String() (out string) {
	var sb strings.Builder
	for addr, code := range prog.All() {
		fmt.Fprintf(&sb, "%2d: 0x%02x  %v\n", addr, uint8(code), code)
	}
	out = sb.String()

	return
}
