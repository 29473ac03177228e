// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package uart

import (
	"log"
)

// RxState is the receiver state machine state.
type RxState int

//go:generate go tool stringer -linecomment -type=RxState
const (
	RX_IDLE  = RxState(0) // idle
	RX_START = RxState(1) // start
	RX_DATA  = RxState(2) // data
	RX_STOP  = RxState(3) // stop
)

// Start bit confirmation point, in oversample ticks from edge detection.
const rxStartMid = OVERSAMPLE/2 - 1

// Receiver reconstructs bytes from an asynchronous serial line.
//
// Data, Valid and FrameError are registered outputs. Valid and
// FrameError are one-step pulses raised when the stop bit is sampled.
type Receiver struct {
	Verbose bool // Set to enable verbose logging.

	Data       uint8 // Last byte assembled.
	Valid      bool  // One-step pulse: Data is freshly valid.
	FrameError bool  // One-step pulse: stop bit was low, byte discarded.
	Busy       bool  // Frame reception in progress.

	State RxState

	sync  [2]bool // Line synchronizer stages.
	shift uint8
	count uint
	bits  uint
}

// NewReceiver creates a receiver with the line assumed idle.
func NewReceiver() (rx *Receiver) {
	rx = &Receiver{}
	rx.Reset()
	return
}

// Reset returns the receiver to idle with the synchronizer primed high.
func (rx *Receiver) Reset() {
	rx.Data = 0
	rx.Valid = false
	rx.FrameError = false
	rx.Busy = false
	rx.State = RX_IDLE
	rx.sync = [2]bool{true, true}
	rx.shift = 0
	rx.count = 0
	rx.bits = 0
}

// Step advances the receiver by one system step. The line level is
// sampled only on oversample ticks, through a two-stage synchronizer.
func (rx *Receiver) Step(line bool, tick bool) {
	rx.Valid = false
	rx.FrameError = false

	if !tick {
		return
	}

	level := rx.sync[1]
	rx.sync[1] = rx.sync[0]
	rx.sync[0] = line

	switch rx.State {
	case RX_IDLE:
		if !level {
			rx.Busy = true
			rx.State = RX_START
			rx.count = 0
		}
	case RX_START:
		rx.count++
		if rx.count == rxStartMid {
			if level {
				// Glitch: line recovered before the midpoint.
				rx.Busy = false
				rx.State = RX_IDLE
			} else {
				rx.State = RX_DATA
				rx.count = 0
				rx.bits = 0
				rx.shift = 0
			}
		}
	case RX_DATA:
		rx.count++
		if rx.count == OVERSAMPLE {
			rx.count = 0
			rx.shift >>= 1
			if level {
				rx.shift |= 0x80
			}
			rx.bits++
			if rx.bits == 8 {
				rx.State = RX_STOP
			}
		}
	case RX_STOP:
		rx.count++
		if rx.count == OVERSAMPLE {
			if level {
				rx.Data = rx.shift
				rx.Valid = true
				if rx.Verbose {
					log.Printf("uart: rx 0x%02x", rx.Data)
				}
			} else {
				rx.FrameError = true
				if rx.Verbose {
					log.Printf("uart: rx frame error")
				}
			}
		}
		if rx.count == OVERSAMPLE+OVERSAMPLE/2 {
			// End of the stop bit period.
			rx.Busy = false
			rx.State = RX_IDLE
		}
	}
}
