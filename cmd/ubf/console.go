// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/ubf/machine"
)

// runConsole bridges cooked stdio to the serial link: transmitted bytes
// go to stdout, and whenever the engine stalls on input one byte is read
// from stdin. End of input sends a zero byte, which the default program
// treats as end of session.
func runConsole(m *machine.Machine) {
	reader := bufio.NewReader(os.Stdin)
	eof := false

	m.RunStart()
	for {
		m.Step()

		if m.Probe.Valid {
			os.Stdout.Write([]byte{m.Probe.Data})
		}

		if m.Starved() {
			value := uint8(0)
			if !eof {
				b, err := reader.ReadByte()
				if err == io.EOF {
					eof = true
				} else if err != nil {
					return
				} else {
					value = b
				}
			}
			m.SendByte(value)
		}

		if m.Halted() && !m.Tx.Busy {
			return
		}
	}
}

// runTerminal is the raw-mode variant: no local echo or line buffering,
// every keystroke goes straight down the wire. Ctrl-] exits.
func runTerminal(m *machine.Machine) (err error) {
	fd := int(os.Stdin.Fd())

	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer term.Restore(fd, state)

	reader := bufio.NewReader(os.Stdin)

	m.RunStart()
	for {
		m.Step()

		if m.Probe.Valid {
			value := m.Probe.Data
			// Raw mode needs an explicit carriage return.
			if value == '\n' {
				os.Stdout.Write([]byte{'\r'})
			}
			os.Stdout.Write([]byte{value})
		}

		if m.Starved() {
			b, rerr := reader.ReadByte()
			if rerr != nil {
				return
			}
			switch b {
			case 0x1d: // Ctrl-]
				return
			case '\r':
				b = '\n'
			}
			m.SendByte(b)
		}

		if m.Halted() && !m.Tx.Busy {
			os.Stdout.Write([]byte("\r\n"))
			return
		}
	}
}
