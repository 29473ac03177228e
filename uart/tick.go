// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package uart implements the serial transceivers of the μBF core.
//
// The receiver samples an asynchronous line with a 16x oversampled tick;
// the transmitter serializes with the bit-rate tick. Both are stepped
// once per system step and communicate only through registered signals.
// Frame format is 8-N-1: one low start bit, eight data bits LSB first,
// one high stop bit, idle high.
package uart

import (
	"fmt"
	"iter"
	"maps"
)

// OVERSAMPLE is the number of oversample ticks per serial bit period.
const OVERSAMPLE = 16

var _uart_defines = map[string]string{
	"OVERSAMPLE": fmt.Sprintf("%v", OVERSAMPLE),
}

// Defines returns an iter of defines for the package.
func Defines() iter.Seq2[string, string] {
	return maps.All(_uart_defines)
}

// Tick divides the system step rate down to the oversample and bit-rate
// pulses consumed by the transceivers. Each pulse is one step wide.
type Tick struct {
	Div uint // Steps per oversample tick.

	count uint
}

// NewTick creates a tick source with the given oversample divisor.
// A divisor of 0 is treated as 1 (one oversample tick every step).
func NewTick(div uint) (tk *Tick) {
	tk = &Tick{Div: div}
	tk.Reset()
	return
}

// DivisorFor computes the oversample divisor for a clock rate and a
// target bit rate.
func DivisorFor(clockHz uint, baud uint) uint {
	return clockHz / (baud * OVERSAMPLE)
}

// Reset restarts the divider phase.
func (tk *Tick) Reset() {
	tk.count = 0
}

// Step advances the divider and reports the oversample and bit-rate
// pulses for this step.
func (tk *Tick) Step() (oversample bool, bit bool) {
	div := tk.Div
	if div == 0 {
		div = 1
	}

	tk.count++
	oversample = (tk.count % div) == 0
	bit = (tk.count % (div * OVERSAMPLE)) == 0

	return
}
