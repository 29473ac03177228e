// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package uart

import (
	"log"
)

// TxState is the transmitter state machine state.
type TxState int

//go:generate go tool stringer -linecomment -type=TxState
const (
	TX_IDLE  = TxState(0) // idle
	TX_START = TxState(1) // start
	TX_DATA  = TxState(2) // data
	TX_STOP  = TxState(3) // stop
)

// Transmitter serializes bytes onto the output line at the bit rate.
//
// Line is the registered output level, idle high. Busy holds from the
// start request until the stop bit period has fully elapsed.
type Transmitter struct {
	Verbose bool // Set to enable verbose logging.

	Line bool // Serial output level.
	Busy bool // Transmission in progress.

	State TxState

	data  uint8
	bits  uint
	fresh bool // Start latched this step; defer a same-step bit tick.
}

// NewTransmitter creates a transmitter with the line idle.
func NewTransmitter() (tx *Transmitter) {
	tx = &Transmitter{}
	tx.Reset()
	return
}

// Reset returns the transmitter to idle with the line high.
func (tx *Transmitter) Reset() {
	tx.Line = true
	tx.Busy = false
	tx.State = TX_IDLE
	tx.data = 0
	tx.bits = 0
	tx.fresh = false
}

// Start latches a byte and drives the start bit immediately. A request
// while busy is ignored; ok reports whether the byte was accepted.
func (tx *Transmitter) Start(value uint8) (ok bool) {
	if tx.Busy {
		return
	}

	if tx.Verbose {
		log.Printf("uart: tx 0x%02x", value)
	}

	tx.data = value
	tx.Line = false
	tx.Busy = true
	tx.State = TX_START
	tx.fresh = true
	ok = true

	return
}

// Step advances the transmitter by one system step, moving to the next
// bit position on each bit-rate tick.
func (tx *Transmitter) Step(tick bool) {
	if tx.fresh {
		// The start bit must span at least one step on the wire.
		tx.fresh = false
		return
	}

	if !tick {
		return
	}

	switch tx.State {
	case TX_IDLE:
		// Line stays idle high.
	case TX_START:
		tx.bits = 0
		tx.Line = (tx.data & 1) != 0
		tx.State = TX_DATA
	case TX_DATA:
		tx.bits++
		if tx.bits == 8 {
			tx.Line = true
			tx.State = TX_STOP
		} else {
			tx.Line = ((tx.data >> tx.bits) & 1) != 0
		}
	case TX_STOP:
		// Stop bit period complete.
		tx.Busy = false
		tx.State = TX_IDLE
	}
}
