package uart

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// drive feeds the receiver a line level for n oversample ticks.
func drive(rx *Receiver, level bool, n int) {
	for range n {
		rx.Step(level, true)
	}
}

// driveFrame bit-bangs one 8-N-1 frame into the receiver, with the stop
// bit level under test control.
func driveFrame(rx *Receiver, value uint8, stop bool) (data uint8, valid bool, ferr bool) {
	levels := []bool{}
	for bit := range Frame(value) {
		levels = append(levels, bit)
	}
	levels[len(levels)-1] = stop

	for _, level := range levels {
		for range OVERSAMPLE {
			rx.Step(level, true)
			if rx.Valid {
				data = rx.Data
				valid = true
			}
			if rx.FrameError {
				ferr = true
			}
		}
	}

	// Trailing idle, to flush the synchronizer and stop period.
	for range OVERSAMPLE {
		rx.Step(true, true)
		if rx.Valid {
			data = rx.Data
			valid = true
		}
		if rx.FrameError {
			ferr = true
		}
	}

	return
}

func TestFrame(t *testing.T) {
	assert := assert.New(t)

	var levels []bool
	for bit := range Frame(0xa5) {
		levels = append(levels, bit)
	}

	expect := []bool{
		false, // start
		true, false, true, false, false, true, false, true, // 0xa5 LSB first
		true, // stop
	}
	assert.Equal(expect, levels)
}

func TestReceiverFrames(t *testing.T) {
	assert := assert.New(t)

	for value := range 256 {
		rx := NewReceiver()
		drive(rx, true, 4)

		data, valid, ferr := driveFrame(rx, uint8(value), true)
		assert.True(valid, fmt.Sprintf("value 0x%02x", value))
		assert.False(ferr, fmt.Sprintf("value 0x%02x", value))
		assert.Equal(uint8(value), data, fmt.Sprintf("value 0x%02x", value))
		assert.Equal(RX_IDLE, rx.State)
	}
}

func TestReceiverFramingError(t *testing.T) {
	assert := assert.New(t)

	rx := NewReceiver()
	drive(rx, true, 4)

	_, valid, ferr := driveFrame(rx, 0x5a, false)
	assert.False(valid)
	assert.True(ferr)
	assert.Equal(RX_IDLE, rx.State)

	// The receiver recovers: the next good frame decodes.
	data, valid, ferr := driveFrame(rx, 0x5a, true)
	assert.True(valid)
	assert.False(ferr)
	assert.Equal(uint8(0x5a), data)
}

func TestReceiverGlitch(t *testing.T) {
	assert := assert.New(t)

	rx := NewReceiver()
	drive(rx, true, 4)

	// A glitch shorter than half a start bit is discarded without effect.
	drive(rx, false, 3)
	assert.True(rx.Busy)
	drive(rx, true, OVERSAMPLE*2)
	assert.False(rx.Busy)
	assert.Equal(RX_IDLE, rx.State)
	assert.False(rx.Valid)
	assert.False(rx.FrameError)
}

func TestTransmitterLoopback(t *testing.T) {
	assert := assert.New(t)

	for value := range 256 {
		tk := NewTick(1)
		tx := NewTransmitter()
		rx := NewReceiver()

		// Settle the receiver synchronizer on the idle line.
		for range 4 {
			os, bit := tk.Step()
			tx.Step(bit)
			rx.Step(tx.Line, os)
		}

		ok := tx.Start(uint8(value))
		assert.True(ok)

		var data uint8
		var valid bool
		var ferr bool
		for range OVERSAMPLE * 14 {
			os, bit := tk.Step()
			tx.Step(bit)
			rx.Step(tx.Line, os)
			if rx.Valid {
				data = rx.Data
				valid = true
			}
			if rx.FrameError {
				ferr = true
			}
		}

		assert.True(valid, fmt.Sprintf("value 0x%02x", value))
		assert.False(ferr, fmt.Sprintf("value 0x%02x", value))
		assert.Equal(uint8(value), data, fmt.Sprintf("value 0x%02x", value))
		assert.False(tx.Busy)
	}
}

func TestTransmitterBusy(t *testing.T) {
	assert := assert.New(t)

	tk := NewTick(1)
	tx := NewTransmitter()
	pb := NewProbe()

	assert.True(tx.Start(0x55))
	assert.True(tx.Busy)

	// A start request while busy is ignored, not queued.
	assert.False(tx.Start(0xaa))

	var data uint8
	var valid bool
	for range OVERSAMPLE * 14 {
		_, bit := tk.Step()
		tx.Step(bit)
		pb.Step(tx.Line, bit)
		if pb.Valid {
			data = pb.Data
			valid = true
		}
	}

	assert.True(valid)
	assert.Equal(uint8(0x55), data)
	assert.False(tx.Busy)
	assert.Equal(TX_IDLE, tx.State)
}

func TestProbeMidPhaseStart(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Phase int // Steps consumed before the start request.
	}){
		{Phase: 1}, {Phase: 5}, {Phase: 15}, {Phase: 16}, {Phase: 23},
	}

	for _, testcase := range table {
		tk := NewTick(1)
		tx := NewTransmitter()
		pb := NewProbe()

		for range testcase.Phase {
			_, bit := tk.Step()
			tx.Step(bit)
			pb.Step(tx.Line, bit)
		}

		assert.True(tx.Start(0xc3))

		var data uint8
		var valid bool
		for range OVERSAMPLE * 14 {
			_, bit := tk.Step()
			tx.Step(bit)
			pb.Step(tx.Line, bit)
			if pb.Valid {
				data = pb.Data
				valid = true
			}
		}

		assert.True(valid, fmt.Sprintf("%+v", testcase))
		assert.Equal(uint8(0xc3), data, fmt.Sprintf("%+v", testcase))
	}
}

func TestTickRates(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint(1), DivisorFor(1843200, 115200))
	assert.Equal(uint(12), DivisorFor(1843200, 9600))

	tk := NewTick(2)
	var os, bits int
	for range 64 {
		oversample, bit := tk.Step()
		if oversample {
			os++
		}
		if bit {
			bits++
		}
	}
	assert.Equal(32, os)
	assert.Equal(2, bits)
}
