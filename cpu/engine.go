// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"log"

	"github.com/ezrec/ubf/mem"
	"github.com/ezrec/ubf/uart"
)

// State is the execution engine state machine state.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	ST_IDLE       = State(0)  // idle
	ST_FETCH      = State(1)  // fetch
	ST_WAIT_FETCH = State(2)  // fetch-wait
	ST_DECODE     = State(3)  // decode
	ST_READ_CELL  = State(4)  // read
	ST_WAIT_CELL  = State(5)  // read-wait
	ST_EXECUTE    = State(6)  // execute
	ST_WRITE_CELL = State(7)  // write
	ST_WAIT_TX    = State(8)  // tx-wait
	ST_WAIT_RX    = State(9)  // rx-wait
	ST_HALT       = State(10) // halt
)

// Engine is the 11-state fetch/decode/execute sequencer.
//
// The engine owns the program counter and data pointer, reads the
// program store, reads and writes the data tape, starts transmissions,
// and consumes received bytes when it is routed the receiver output.
// There is no fault path: every opcode value is defined, overflow wraps,
// and the only terminal state is the halt encoding reached in decode.
type Engine struct {
	Verbose bool // Set to enable verbose logging.

	Prog *mem.Latched      // Program store (read port).
	Tape *mem.Latched      // Data tape (read/write ports).
	Tx   *uart.Transmitter // Serial transmitter.

	Pc uint // Program counter, wraps modulo program depth.
	Dp uint // Data pointer, wraps modulo tape depth.

	State State

	Cycles int // Steps since the last run start.

	code Code  // Latched instruction.
	cell uint8 // Latched data cell value.
}

// NewEngine creates an engine wired to its memories and transmitter.
func NewEngine(prog, tape *mem.Latched, tx *uart.Transmitter) (eng *Engine) {
	eng = &Engine{
		Prog: prog,
		Tape: tape,
		Tx:   tx,
	}

	eng.Reset()

	return
}

// Reset returns the engine to idle. Only a reset leaves the halt state.
func (eng *Engine) Reset() {
	eng.Pc = 0
	eng.Dp = 0
	eng.State = ST_IDLE
	eng.Cycles = 0
	eng.code = CODE_HALT
	eng.cell = 0
}

// Busy reports whether an execution run is in progress.
func (eng *Engine) Busy() bool {
	return eng.State != ST_IDLE && eng.State != ST_HALT
}

// Halted reports whether the engine has reached the terminal state.
func (eng *Engine) Halted() bool {
	return eng.State == ST_HALT
}

// Code returns the latched instruction word.
func (eng *Engine) Code() Code {
	return eng.code
}

// Cell returns the last data cell value read.
func (eng *Engine) Cell() uint8 {
	return eng.cell
}

// Step advances the engine one state transition. run is the run-start
// pulse, honored only in idle. rxValid and rxData are the routed
// receiver outputs; rxValid is a one-step pulse.
func (eng *Engine) Step(run bool, rxValid bool, rxData uint8) {
	if eng.Busy() {
		eng.Cycles++
	}

	switch eng.State {
	case ST_IDLE:
		if run {
			eng.Pc = 0
			eng.Cycles = 0
			eng.State = ST_FETCH
		}
	case ST_FETCH:
		eng.Prog.RequestRead(eng.Pc)
		eng.State = ST_WAIT_FETCH
	case ST_WAIT_FETCH:
		// One-step memory latency; the word is valid at the end of
		// this state.
		eng.code = Code(eng.Prog.Observe())
		eng.State = ST_DECODE
	case ST_DECODE:
		if eng.Verbose {
			log.Printf("cpu: %2d: %v", eng.Pc, eng.code)
		}
		switch {
		case eng.code.IsHalt():
			eng.State = ST_HALT
		case eng.code.Op().NeedsCell():
			eng.State = ST_READ_CELL
		default:
			eng.State = ST_EXECUTE
		}
	case ST_READ_CELL:
		eng.Tape.RequestRead(eng.Dp)
		eng.State = ST_WAIT_CELL
	case ST_WAIT_CELL:
		eng.cell = eng.Tape.Observe()
		eng.State = ST_EXECUTE
	case ST_EXECUTE:
		eng.execute(rxValid, rxData)
	case ST_WRITE_CELL:
		// One-step write commit delay.
		eng.State = ST_FETCH
	case ST_WAIT_TX:
		if !eng.Tx.Busy {
			eng.Tx.Start(eng.cell)
			eng.advance()
			eng.State = ST_FETCH
		}
	case ST_WAIT_RX:
		if rxValid {
			eng.input(rxData)
		}
	case ST_HALT:
		// Terminal; only a system reset exits.
	}
}

// execute performs the latched instruction's effect.
func (eng *Engine) execute(rxValid bool, rxData uint8) {
	op := eng.code.Op()

	switch op {
	case OP_RIGHT:
		eng.Dp = eng.wrapDp(int(eng.Dp) + eng.code.Offset())
		eng.advance()
		eng.State = ST_FETCH
	case OP_LEFT:
		eng.Dp = eng.wrapDp(int(eng.Dp) - eng.code.Offset())
		eng.advance()
		eng.State = ST_FETCH
	case OP_ADD:
		eng.Tape.CommitWrite(eng.Dp, eng.cell+eng.code.Arg())
		eng.advance()
		eng.State = ST_WRITE_CELL
	case OP_SUB:
		eng.Tape.CommitWrite(eng.Dp, eng.cell-eng.code.Arg())
		eng.advance()
		eng.State = ST_WRITE_CELL
	case OP_OUT:
		if !eng.Tx.Busy {
			eng.Tx.Start(eng.cell)
			eng.advance()
			eng.State = ST_FETCH
		} else {
			eng.State = ST_WAIT_TX
		}
	case OP_IN:
		if rxValid {
			eng.input(rxData)
		} else {
			eng.State = ST_WAIT_RX
		}
	case OP_JZ:
		eng.jump(eng.cell == 0)
	case OP_JNZ:
		eng.jump(eng.cell != 0)
	}
}

// input writes a received byte to the current cell.
func (eng *Engine) input(rxData uint8) {
	eng.Tape.CommitWrite(eng.Dp, rxData)
	eng.advance()
	eng.State = ST_WRITE_CELL
}

// jump applies the PC-relative offset from the current PC when taken.
func (eng *Engine) jump(taken bool) {
	if taken {
		eng.Pc = eng.wrapPc(int(eng.Pc) + eng.code.Offset())
	} else {
		eng.advance()
	}
	eng.State = ST_FETCH
}

// advance moves the program counter to the next instruction.
func (eng *Engine) advance() {
	eng.Pc = eng.wrapPc(int(eng.Pc) + 1)
}

func (eng *Engine) wrapPc(pc int) uint {
	depth := int(eng.Prog.Depth())
	return uint(((pc % depth) + depth) % depth)
}

func (eng *Engine) wrapDp(dp int) uint {
	depth := int(eng.Tape.Depth())
	return uint(((dp % depth) + depth) % depth)
}
