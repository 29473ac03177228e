// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
)

// Assembler compiles Brainfuck source text into the packed μBF
// encoding. Runs of pointer and arithmetic commands fold into a single
// instruction argument, and bracket pairs resolve into relative
// conditional jumps. Every character outside the eight command
// characters is a comment.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.
	Depth   uint // Program store depth limit; 0 disables the check.
}

// bfPos tracks the source position of a pending item.
type bfPos struct {
	LineNo int
	Col    int
}

// loopMark is an open bracket awaiting its match.
type loopMark struct {
	bfPos
	Index int // Instruction index of the placeholder jump.
}

// Parse assembles a source stream into a program. The program always
// ends with the halt encoding.
func (asm *Assembler) Parse(reader io.Reader) (prog *Program, err error) {
	prog = &Program{}

	var loops []loopMark
	var runCmd rune
	var runLen int

	flush := func() {
		if runLen == 0 {
			return
		}
		op := OP_ADD
		limit := CODE_ARG_MASK
		switch runCmd {
		case '-':
			op = OP_SUB
		case '>':
			op = OP_RIGHT
			limit = CODE_ARG_MAX
		case '<':
			op = OP_LEFT
			limit = CODE_ARG_MAX
		}
		for runLen > 0 {
			arg := runLen
			if arg > limit {
				arg = limit
			}
			prog.Codes = append(prog.Codes, MakeCode(op, uint8(arg)))
			runLen -= arg
		}
	}

	lineno := 0
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lineno++
		for n, cmd := range scanner.Text() {
			here := bfPos{LineNo: lineno, Col: n + 1}

			switch cmd {
			case '+', '-', '>', '<':
				if runLen != 0 && runCmd != cmd {
					flush()
					runLen = 0
				}
				if runLen == 0 {
					runCmd = cmd
				}
				runLen++
				continue
			case '.', ',', '[', ']':
				flush()
				runLen = 0
			default:
				// Comment character.
				continue
			}

			switch cmd {
			case '.':
				prog.Codes = append(prog.Codes, MakeCode(OP_OUT, 0))
			case ',':
				prog.Codes = append(prog.Codes, MakeCode(OP_IN, 0))
			case '[':
				loops = append(loops, loopMark{bfPos: here, Index: len(prog.Codes)})
				// Placeholder, patched at the matching ']'.
				prog.Codes = append(prog.Codes, MakeCode(OP_JZ, 0))
			case ']':
				if len(loops) == 0 {
					err = ErrSyntax{LineNo: here.LineNo, Col: here.Col, Err: ErrLoopClose}
					return
				}
				mark := loops[len(loops)-1]
				loops = loops[:len(loops)-1]

				open := mark.Index
				end := len(prog.Codes)

				// jz skips past the ']'; jnz re-tests at the '['.
				jz := end + 1 - open
				jnz := open - end
				if jz > CODE_ARG_MAX || jnz < CODE_ARG_MIN {
					err = ErrSyntax{LineNo: here.LineNo, Col: here.Col, Err: ErrJumpRange}
					return
				}

				prog.Codes[open] = MakeCodeOffset(OP_JZ, jz)
				prog.Codes = append(prog.Codes, MakeCodeOffset(OP_JNZ, jnz))
			}
		}
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	flush()

	if len(loops) != 0 {
		mark := loops[len(loops)-1]
		err = ErrSyntax{LineNo: mark.LineNo, Col: mark.Col, Err: ErrLoopOpen}
		return
	}

	prog.Codes = append(prog.Codes, CODE_HALT)

	if asm.Depth != 0 && uint(len(prog.Codes)) > asm.Depth {
		err = ErrProgramSize
		return
	}

	if asm.Verbose {
		log.Printf("asm: %d words\n%v", len(prog.Codes), prog)
	}

	return
}
