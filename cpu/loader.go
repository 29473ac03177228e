// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"log"

	"github.com/ezrec/ubf/mem"
)

// LoaderState is the program loader state machine state.
type LoaderState int

//go:generate go tool stringer -linecomment -type=LoaderState
const (
	LD_IDLE  = LoaderState(0) // idle
	LD_WRITE = LoaderState(1) // write
	LD_WAIT  = LoaderState(2) // wait
)

// Loader writes received bytes to sequential program store addresses
// while upload mode is active. The write address is the loader's own
// counter, independent of the engine's program counter, and is held at
// zero whenever upload mode is inactive.
type Loader struct {
	Verbose bool // Set to enable verbose logging.

	Prog *mem.Latched // Program store (write port).

	Addr uint // Next write address.

	State LoaderState

	data uint8 // Latched received byte.
}

// NewLoader creates a loader wired to the program store write port.
func NewLoader(prog *mem.Latched) (ld *Loader) {
	ld = &Loader{Prog: prog}
	ld.Reset()
	return
}

// Reset returns the loader to idle with the write address at zero.
func (ld *Loader) Reset() {
	ld.Addr = 0
	ld.State = LD_IDLE
	ld.data = 0
}

// Busy reports whether a write sequence is in progress.
func (ld *Loader) Busy() bool {
	return ld.State != LD_IDLE
}

// Step advances the loader one state transition. upload gates the
// loader; valid and data are the routed receiver outputs.
func (ld *Loader) Step(upload bool, valid bool, data uint8) {
	if !upload {
		ld.Addr = 0
		ld.State = LD_IDLE
		return
	}

	switch ld.State {
	case LD_IDLE:
		if valid {
			ld.data = data
			ld.State = LD_WRITE
		}
	case LD_WRITE:
		if ld.Verbose {
			log.Printf("loader: [%2d] <- 0x%02x", ld.Addr, ld.data)
		}
		ld.Prog.CommitWrite(ld.Addr, ld.data)
		ld.State = LD_WAIT
	case LD_WAIT:
		ld.Addr = (ld.Addr + 1) % ld.Prog.Depth()
		ld.State = LD_IDLE
	}
}
