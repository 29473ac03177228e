// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ezrec/ubf/cpu"
	"github.com/ezrec/ubf/machine"
)

const monitorHelp = `  step [n]     Advance n machine steps (default 1)
  run [limit]  Run until halt or input stall (default limit 1000000)
  regs         Show engine registers
  tape         Dump the data tape
  code         Disassemble the program store
  send <arg>   Send a byte (number) or a string down the wire
  recv [limit] Step until a byte is transmitted
  load <file>  Assemble a .bf file and upload it
  reset        System reset
  quit         Leave the monitor
`

// runMonitor is an interactive line-oriented monitor on the machine.
func runMonitor(m *machine.Machine) (err error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "ubf> ",
	})
	if err != nil {
		return
	}
	defer rl.Close()

	for {
		line, rerr := rl.Readline()
		if rerr == readline.ErrInterrupt {
			continue
		}
		if rerr != nil {
			if rerr != io.EOF {
				err = rerr
			}
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if cerr := monitorCommand(m, fields[0], fields[1:]); cerr != nil {
			if cerr == errMonitorQuit {
				return
			}
			fmt.Printf("%v\n", cerr)
		}
	}
}

var errMonitorQuit = fmt.Errorf("quit")

func monitorCommand(m *machine.Machine, cmd string, args []string) (err error) {
	switch cmd {
	case "step", "s":
		count := argInt(args, 0, 1)
		for range count {
			m.Step()
		}
		monitorRegs(m)
	case "run", "r":
		m.RunStart()
		limit := argInt(args, 0, 1000000)
		for range limit {
			m.Step()
			if m.Probe.Valid {
				fmt.Printf("recv: 0x%02x %q\n", m.Probe.Data, m.Probe.Data)
			}
			if m.Halted() && !m.Tx.Busy {
				break
			}
			if m.Starved() {
				break
			}
		}
		monitorRegs(m)
	case "regs":
		monitorRegs(m)
	case "tape":
		fmt.Printf("dp=%v\n", m.Dp())
		for n, value := range m.Tape.Cell {
			fmt.Printf(" %02x", value)
			if (n % 16) == 15 {
				fmt.Printf("\n")
			}
		}
		if (len(m.Tape.Cell) % 16) != 0 {
			fmt.Printf("\n")
		}
	case "code":
		prog := &cpu.Program{}
		prog.FromBinary(m.Prog.Cell)
		fmt.Printf("%v", prog)
	case "send":
		if len(args) == 0 {
			err = fmt.Errorf("send: need a byte or string")
			return
		}
		if value, perr := strconv.ParseUint(args[0], 0, 8); perr == nil {
			m.SendByte(uint8(value))
			return
		}
		for _, c := range []byte(strings.Join(args, " ")) {
			m.SendByte(c)
		}
	case "recv":
		limit := argInt(args, 0, 1000000)
		value, ok := m.RecvByte(limit)
		if !ok {
			err = fmt.Errorf("recv: nothing transmitted in %v steps", limit)
			return
		}
		fmt.Printf("recv: 0x%02x %q\n", value, value)
	case "load":
		if len(args) != 1 {
			err = fmt.Errorf("load: need a .bf file")
			return
		}
		err = monitorLoad(m, args[0])
	case "reset":
		m.Reset()
		monitorRegs(m)
	case "quit", "q", "exit":
		err = errMonitorQuit
	case "help", "?":
		fmt.Printf("%v", monitorHelp)
	default:
		err = fmt.Errorf("%v: unknown command (try 'help')", cmd)
	}

	return
}

func monitorRegs(m *machine.Machine) {
	fmt.Printf("pc=%-2v dp=%-2v cell=0x%02x state=%v steps=%v\n",
		m.Pc(), m.Dp(), m.Cell(), m.Engine.State, m.Steps)
}

func monitorLoad(m *machine.Machine, name string) (err error) {
	inf, err := os.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Depth: m.Prog.Depth()}
	prog, err := asm.Parse(inf)
	if err != nil {
		return
	}

	m.UploadProgram(prog)
	fmt.Printf("loaded %v words\n", len(prog.Codes))

	return
}

// argInt parses an optional numeric argument, with a fallback.
func argInt(args []string, n int, fallback int) (value int) {
	value = fallback
	if len(args) > n {
		if parsed, err := strconv.Atoi(args[n]); err == nil {
			value = parsed
		}
	}
	return
}
