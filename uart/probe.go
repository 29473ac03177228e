// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package uart

import (
	"iter"

	"github.com/ezrec/ubf/internal"
)

// Frame returns the line levels of one serial frame for a byte: a low
// start bit, eight data bits LSB first, and a high stop bit. The driver
// is expected to hold each level for one full bit period.
func Frame(value uint8) iter.Seq[bool] {
	start := func(yield func(bool) bool) {
		yield(false)
	}
	data := func(yield func(bool) bool) {
		for n := range 8 {
			if !yield(((value >> n) & 1) != 0) {
				return
			}
		}
	}
	stop := func(yield func(bool) bool) {
		yield(true)
	}

	return internal.IterSeqConcat(start, data, stop)
}

// Probe is a host-side frame decoder for a transmit line that shares the
// transmitter's tick source. It resynchronizes on the falling edge of
// each start bit and samples data bits on the bit-rate grid, so it
// tolerates the variable-length start bit of an arbitrarily timed start
// request.
type Probe struct {
	Data  uint8 // Last byte decoded.
	Valid bool  // One-step pulse: Data is freshly valid.

	last   bool
	active bool
	shift  uint8
	bits   uint
}

// NewProbe creates a probe with the line assumed idle.
func NewProbe() (pb *Probe) {
	pb = &Probe{last: true}
	return
}

// Reset returns the probe to the idle-line state.
func (pb *Probe) Reset() {
	pb.last = true
	pb.active = false
	pb.shift = 0
	pb.bits = 0
	pb.Valid = false
}

// Step feeds the probe one step of line level and bit-rate tick.
func (pb *Probe) Step(line bool, tick bool) {
	pb.Valid = false

	if !pb.active {
		// A tick coincident with the falling edge belongs to the old
		// frame; the transmitter defers it the same way.
		if pb.last && !line {
			pb.active = true
			pb.shift = 0
			pb.bits = 0
		}
		pb.last = line
		return
	}
	pb.last = line

	if !tick {
		return
	}

	if pb.bits < 8 {
		pb.shift >>= 1
		if line {
			pb.shift |= 0x80
		}
		pb.bits++
		return
	}

	// Stop bit position; a low line here means a broken frame.
	if line {
		pb.Data = pb.shift
		pb.Valid = true
	}
	pb.active = false
}
