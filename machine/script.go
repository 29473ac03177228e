// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"log"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ubf/cpu"
)

// Script drives a machine from a Starlark scenario program. The script
// sees the board through a small builtin set: reset, run, step, send,
// recv, upload, pc, dp, cell, halted, and steps.
type Script struct {
	Machine *Machine // Board under test.
}

// NewScript creates a script context for a machine.
func NewScript(m *Machine) (sc *Script) {
	sc = &Script{Machine: m}
	return
}

// Run executes a Starlark scenario. src may be a string, byte slice, or
// io.Reader; name is used for error positions.
func (sc *Script) Run(name string, src any) (err error) {
	thread := starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("script: %v", msg)
		},
	}
	opts := syntax.FileOptions{}

	_, err = starlark.ExecFileOptions(&opts, &thread, name, src, sc.predeclared())

	return
}

func (sc *Script) predeclared() starlark.StringDict {
	return starlark.StringDict{
		"reset":  starlark.NewBuiltin("reset", sc.stReset),
		"run":    starlark.NewBuiltin("run", sc.stRun),
		"step":   starlark.NewBuiltin("step", sc.stStep),
		"send":   starlark.NewBuiltin("send", sc.stSend),
		"recv":   starlark.NewBuiltin("recv", sc.stRecv),
		"upload": starlark.NewBuiltin("upload", sc.stUpload),
		"pc":     starlark.NewBuiltin("pc", sc.stPc),
		"dp":     starlark.NewBuiltin("dp", sc.stDp),
		"cell":   starlark.NewBuiltin("cell", sc.stCell),
		"halted": starlark.NewBuiltin("halted", sc.stHalted),
		"steps":  starlark.NewBuiltin("steps", sc.stSteps),
	}
}

func (sc *Script) stReset(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}
	sc.Machine.Reset()
	return starlark.None, nil
}

func (sc *Script) stRun(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}
	sc.Machine.RunStart()
	return starlark.None, nil
}

func (sc *Script) stStep(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	count := 1
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "count?", &count); err != nil {
		return nil, err
	}
	for range count {
		sc.Machine.Step()
	}
	return starlark.None, nil
}

func (sc *Script) stSend(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "value", &value); err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case starlark.String:
		for _, c := range []byte(string(v)) {
			sc.Machine.SendByte(c)
		}
	case starlark.Int:
		b, err := byteOf(v)
		if err != nil {
			return nil, err
		}
		sc.Machine.SendByte(b)
	default:
		return nil, ErrScriptByte
	}

	return starlark.None, nil
}

func (sc *Script) stRecv(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	limit := 100000
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "limit?", &limit); err != nil {
		return nil, err
	}

	value, ok := sc.Machine.RecvByte(limit)
	if !ok {
		return starlark.None, nil
	}
	return starlark.MakeInt(int(value)), nil
}

func (sc *Script) stUpload(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "program", &value); err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case starlark.String:
		asm := &cpu.Assembler{Depth: sc.Machine.Prog.Depth()}
		prog, err := asm.Parse(strings.NewReader(string(v)))
		if err != nil {
			return nil, err
		}
		sc.Machine.UploadProgram(prog)
	case *starlark.List:
		var bins []uint8
		for item := range v.Elements() {
			iv, ok := item.(starlark.Int)
			if !ok {
				return nil, ErrScriptProgram
			}
			b, err := byteOf(iv)
			if err != nil {
				return nil, err
			}
			bins = append(bins, b)
		}
		sc.Machine.UploadBinary(bins)
	default:
		return nil, ErrScriptProgram
	}

	return starlark.None, nil
}

func (sc *Script) stPc(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return starlark.MakeInt(int(sc.Machine.Pc())), nil
}

func (sc *Script) stDp(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return starlark.MakeInt(int(sc.Machine.Dp())), nil
}

func (sc *Script) stCell(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return starlark.MakeInt(int(sc.Machine.Cell())), nil
}

func (sc *Script) stHalted(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return starlark.Bool(sc.Machine.Halted()), nil
}

func (sc *Script) stSteps(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return starlark.MakeInt(sc.Machine.Steps), nil
}

// byteOf narrows a Starlark integer to a byte.
func byteOf(v starlark.Int) (b uint8, err error) {
	i64, ok := v.Int64()
	if !ok || i64 < 0 || i64 > 255 {
		err = ErrScriptByte
		return
	}
	b = uint8(i64)
	return
}
