// Package cpu implements the execution engine, program loader, and
// assembler for the μBF serial Brainfuck core.
//
// Instructions are single bytes: a 3-bit opcode in the high bits and a
// 5-bit argument in the low bits. The engine is an 11-state machine that
// absorbs the one-step latency of the program store and data tape with
// explicit wait states, and interlocks with the serial transceivers
// through busy/valid polling. The loader writes received bytes into the
// program store while upload mode is active.
package cpu
