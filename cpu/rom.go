package cpu

// DefaultProgram is the program reloaded into the program store on every
// system reset: a UART echo loop with case conversion. Each received
// byte has 32 subtracted (lowercase to uppercase for ASCII letters) and
// is transmitted back; a zero byte transmits a newline and halts.
func DefaultProgram() (prog Program) {
	prog.Codes = []Code{
		MakeCode(OP_IN, 0),          //  0: read a byte into the cell
		MakeCodeOffset(OP_JZ, 6),    //  1: zero byte ends the session
		MakeCode(OP_SUB, 16),        //  2: subtract 32 in three steps
		MakeCode(OP_SUB, 15),        //  3:
		MakeCode(OP_SUB, 1),         //  4:
		MakeCode(OP_OUT, 0),         //  5: transmit the converted byte
		MakeCodeOffset(OP_JNZ, -6),  //  6: loop for the next byte
		MakeCode(OP_ADD, 10),        //  7: newline
		MakeCode(OP_OUT, 0),         //  8:
		CODE_HALT,                   //  9:
	}

	return
}

// FillDefault loads the default program into a program store image,
// zero-filling the remainder. Used as the program store reset contents.
func FillDefault(cell []uint8) {
	clear(cell)
	prog := DefaultProgram()
	copy(cell, prog.Binary())
}
