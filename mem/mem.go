// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package mem implements the synchronous on-chip memories of the μBF core.
//
// Both the program store and the data tape are instances of Latched: a
// fixed-depth byte array with a one-step read latency and write-first
// update semantics. A read requested during step T is observable during
// step T+1; a write committed during step T is visible to a same-address
// read in the same step, and to all reads afterward.
package mem

import (
	"log"
)

// Latched is a synchronous memory with registered read output.
type Latched struct {
	Verbose bool // Set to enable verbose logging.

	Cell []uint8 // Memory contents.

	fill func(cell []uint8) // Reset contents, nil to zero.

	out       uint8 // Registered read output.
	readAddr  uint
	readReq   bool
	writeAddr uint
	writeData uint8
	writeReq  bool
}

// NewLatched creates a memory of the given depth. The fill function
// provides the reset contents; nil clears every location to zero.
func NewLatched(depth uint, fill func(cell []uint8)) (lm *Latched) {
	lm = &Latched{
		Cell: make([]uint8, depth),
		fill: fill,
	}

	lm.Reset()

	return
}

// Depth returns the number of addressable locations.
func (lm *Latched) Depth() uint {
	return uint(len(lm.Cell))
}

// Reset reloads the reset contents and clears any pending requests.
func (lm *Latched) Reset() {
	clear(lm.Cell)
	if lm.fill != nil {
		lm.fill(lm.Cell)
	}

	lm.out = 0
	lm.readReq = false
	lm.writeReq = false
}

// RequestRead asserts a read of addr for the current step. The value
// becomes observable on the next step. Addresses wrap modulo depth.
func (lm *Latched) RequestRead(addr uint) {
	lm.readAddr = addr % lm.Depth()
	lm.readReq = true
}

// CommitWrite asserts a write of value to addr for the current step.
// Addresses wrap modulo depth.
func (lm *Latched) CommitWrite(addr uint, value uint8) {
	lm.writeAddr = addr % lm.Depth()
	lm.writeData = value
	lm.writeReq = true
}

// Observe returns the registered read output. With no read requested the
// previously observed value is held stable indefinitely.
func (lm *Latched) Observe() uint8 {
	return lm.out
}

// Step commits the pending write, then resolves the pending read. The
// write lands first, so a same-address read observes the written value.
func (lm *Latched) Step() {
	if lm.writeReq {
		if lm.Verbose {
			log.Printf("mem: [%2d] <- 0x%02x", lm.writeAddr, lm.writeData)
		}
		lm.Cell[lm.writeAddr] = lm.writeData
		lm.writeReq = false
	}

	if lm.readReq {
		lm.out = lm.Cell[lm.readAddr]
		lm.readReq = false
	}
}
