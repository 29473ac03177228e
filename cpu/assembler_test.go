package cpu

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Name   string
		Source string
		Codes  []Code
	}){
		{
			Name:   "loop",
			Source: "+++[-.]",
			Codes:  []Code{0x43, 0xc4, 0x61, 0x80, 0xfd, 0x00},
		},
		{
			Name:   "empty",
			Source: "",
			Codes:  []Code{0x00},
		},
		{
			Name:   "comments-only",
			Source: "read a byte; halt\n",
			Codes:  []Code{0x00},
		},
		{
			Name:   "io",
			Source: ",.",
			Codes:  []Code{0xa0, 0x80, 0x00},
		},
		{
			Name:   "fold-add",
			Source: strings.Repeat("+", 40),
			Codes:  []Code{0x5f, 0x49, 0x00},
		},
		{
			Name:   "fold-right",
			Source: strings.Repeat(">", 17),
			Codes:  []Code{0x0f, 0x02, 0x00},
		},
		{
			Name:   "fold-left",
			Source: "<<<",
			Codes:  []Code{0x23, 0x00},
		},
		{
			Name:   "fold-break",
			Source: "+-+",
			Codes:  []Code{0x41, 0x61, 0x41, 0x00},
		},
		{
			Name:   "multiline",
			Source: ",\n[\n-\n.\n]\n",
			Codes:  []Code{0xa0, 0xc4, 0x61, 0x80, 0xfd, 0x00},
		},
		{
			Name:   "nested",
			Source: "[[-]]",
			Codes: []Code{
				MakeCodeOffset(OP_JZ, 5),
				MakeCodeOffset(OP_JZ, 3),
				MakeCode(OP_SUB, 1),
				MakeCodeOffset(OP_JNZ, -2),
				MakeCodeOffset(OP_JNZ, -4),
				CODE_HALT,
			},
		},
	}

	for _, testcase := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(testcase.Source))
		assert.NoError(err, testcase.Name)
		assert.Equal(testcase.Codes, prog.Codes, fmt.Sprintf("%+v", testcase))
	}
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Name   string
		Source string
		Depth  uint
		Err    error
		LineNo int
		Col    int
	}){
		{Name: "open", Source: "+[", Err: ErrLoopOpen, LineNo: 1, Col: 2},
		{Name: "close", Source: "xx]", Err: ErrLoopClose, LineNo: 1, Col: 3},
		{Name: "close-line", Source: ",\n]]", Err: ErrLoopClose, LineNo: 2, Col: 1},
		{Name: "range", Source: "[" + strings.Repeat(".", 16) + "]", Err: ErrJumpRange, LineNo: 1, Col: 18},
		{Name: "size", Source: strings.Repeat(".", 5), Depth: 4, Err: ErrProgramSize},
	}

	for _, testcase := range table {
		asm := &Assembler{Depth: testcase.Depth}
		_, err := asm.Parse(strings.NewReader(testcase.Source))
		assert.ErrorIs(err, testcase.Err, testcase.Name)

		var syn ErrSyntax
		if errors.As(err, &syn) && testcase.LineNo != 0 {
			assert.Equal(testcase.LineNo, syn.LineNo, testcase.Name)
			assert.Equal(testcase.Col, syn.Col, testcase.Name)
		}
	}
}

func TestDefaultProgram(t *testing.T) {
	assert := assert.New(t)

	prog := DefaultProgram()
	assert.Equal([]uint8{0xa0, 0xc6, 0x70, 0x6f, 0x61, 0x80, 0xfa, 0x4a, 0x80, 0x00}, prog.Binary())

	// The three decrements subtract exactly 32.
	total := 0
	for _, code := range prog.Codes {
		if code.Op() == OP_SUB {
			total += int(code.Arg())
		}
	}
	assert.Equal(32, total)

	var cell [32]uint8
	FillDefault(cell[:])
	assert.Equal(prog.Binary(), cell[:len(prog.Codes)])
	for _, value := range cell[len(prog.Codes):] {
		assert.Equal(uint8(0), value)
	}
}

func TestProgramListing(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	prog.FromBinary([]uint8{0x43, 0x80, 0x00})

	listing := prog.String()
	assert.Contains(listing, "add 3")
	assert.Contains(listing, "out")
	assert.Contains(listing, "halt")
}
