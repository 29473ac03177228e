// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package machine wires the μBF core together: tick source, serial
// receiver and transmitter, program store, data tape, program loader,
// and execution engine, advanced in lockstep one step at a time.
//
// The receiver output is routed to exactly one consumer per step: the
// loader while upload mode is active, the engine otherwise. The package
// also provides the host side of the serial link — byte transmit,
// receive, and the wire-level program upload protocol.
package machine

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/ubf/cpu"
	"github.com/ezrec/ubf/internal"
	"github.com/ezrec/ubf/mem"
	"github.com/ezrec/ubf/uart"
)

const (
	// CODE_DEPTH is the program store depth, in instruction words.
	CODE_DEPTH = 32
	// TAPE_DEPTH is the data tape depth, in cells.
	TAPE_DEPTH = 16
)

var _machine_defines = map[string]string{
	"CODE_DEPTH": fmt.Sprintf("%v", CODE_DEPTH),
	"TAPE_DEPTH": fmt.Sprintf("%v", TAPE_DEPTH),
}

// Machine is the simulated μBF board.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Clock  *uart.Tick        // Oversample and bit-rate tick source.
	Rx     *uart.Receiver    // Serial receiver.
	Tx     *uart.Transmitter // Serial transmitter.
	Probe  *uart.Probe       // Host-side transmit line decoder.
	Prog   *mem.Latched      // Program store.
	Tape   *mem.Latched      // Data tape.
	Engine *cpu.Engine       // Execution engine.
	Loader *cpu.Loader       // Program loader.

	Upload bool // Upload-mode select: receiver output routes to the loader.
	RxLine bool // Serial input line level, idle high.
	Halt   bool // External halt input; the engine only halts at decode.

	Steps int // Total steps since reset.

	run bool // Pending run-start pulse.
}

// NewMachine creates a machine in the reference configuration.
func NewMachine() (m *Machine) {
	prog := mem.NewLatched(CODE_DEPTH, cpu.FillDefault)
	tape := mem.NewLatched(TAPE_DEPTH, nil)
	tx := uart.NewTransmitter()

	m = &Machine{
		Clock:  uart.NewTick(1),
		Rx:     uart.NewReceiver(),
		Tx:     tx,
		Probe:  uart.NewProbe(),
		Prog:   prog,
		Tape:   tape,
		Engine: cpu.NewEngine(prog, tape, tx),
		Loader: cpu.NewLoader(prog),
	}

	m.Reset()

	return
}

// Defines returns an iterator over all of the defines.
func (m *Machine) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_machine_defines),
		cpu.Defines(),
		uart.Defines(),
	)
}

// Reset restores the power-on state: default program, zeroed tape, all
// sequencers idle, serial line idle high.
func (m *Machine) Reset() {
	m.Clock.Reset()
	m.Rx.Reset()
	m.Tx.Reset()
	m.Probe.Reset()
	m.Prog.Reset()
	m.Tape.Reset()
	m.Engine.Reset()
	m.Loader.Reset()

	m.Upload = false
	m.RxLine = true
	m.Halt = false
	m.Steps = 0
	m.run = false
}

// RunStart requests a one-step run-start pulse for the next step the
// engine is routed the receiver (i.e. not in upload mode).
func (m *Machine) RunStart() {
	m.run = true
}

// Step advances every component one step.
func (m *Machine) Step() {
	m.Engine.Verbose = m.Verbose
	m.Loader.Verbose = m.Verbose

	oversample, bit := m.Clock.Step()

	m.Rx.Step(m.RxLine, oversample)

	// The receiver output feeds exactly one consumer.
	if m.Upload {
		m.Loader.Step(true, m.Rx.Valid, m.Rx.Data)
		m.Engine.Step(false, false, 0)
	} else {
		m.Loader.Step(false, false, 0)
		m.Engine.Step(m.run, m.Rx.Valid, m.Rx.Data)
		m.run = false
	}

	m.Tx.Step(bit)
	m.Probe.Step(m.Tx.Line, bit)

	m.Prog.Step()
	m.Tape.Step()

	m.Steps++
}

// bitSteps returns the number of steps per serial bit period.
func (m *Machine) bitSteps() (steps uint) {
	steps = m.Clock.Div
	if steps == 0 {
		steps = 1
	}
	steps *= uart.OVERSAMPLE
	return
}

// SendByte bit-bangs one frame into the receive line, stepping the
// whole machine one bit period per level.
func (m *Machine) SendByte(value uint8) {
	for level := range uart.Frame(value) {
		m.RxLine = level
		for range m.bitSteps() {
			m.Step()
		}
	}
	m.RxLine = true
}

// RecvByte steps the machine until the transmit line probe decodes a
// byte, or the step limit expires.
func (m *Machine) RecvByte(limit int) (value uint8, ok bool) {
	for range limit {
		m.Step()
		if m.Probe.Valid {
			value = m.Probe.Data
			ok = true
			return
		}
	}

	return
}

// UploadBinary sends raw instruction bytes over the wire with upload
// mode asserted, then deasserts it, resetting the loader address.
func (m *Machine) UploadBinary(bins []uint8) {
	m.Upload = true
	for _, bin := range bins {
		m.SendByte(bin)
	}
	m.Upload = false
	m.Step()
}

// UploadProgram uploads an assembled program.
func (m *Machine) UploadProgram(prog *cpu.Program) {
	m.UploadBinary(prog.Binary())
}

// Starved reports whether the engine is blocked waiting for a received
// byte.
func (m *Machine) Starved() bool {
	return m.Engine.State == cpu.ST_WAIT_RX
}

// Pc is the program counter debug tap.
func (m *Machine) Pc() uint {
	return m.Engine.Pc
}

// Dp is the data pointer debug tap.
func (m *Machine) Dp() uint {
	return m.Engine.Dp
}

// Cell is the last-read data cell debug tap.
func (m *Machine) Cell() uint8 {
	return m.Engine.Cell()
}

// EngineBusy is the engine busy debug tap.
func (m *Machine) EngineBusy() bool {
	return m.Engine.Busy()
}

// LoaderBusy is the loader busy debug tap.
func (m *Machine) LoaderBusy() bool {
	return m.Loader.Busy()
}

// Halted reports whether the engine reached the terminal halt state.
func (m *Machine) Halted() bool {
	return m.Engine.Halted()
}
