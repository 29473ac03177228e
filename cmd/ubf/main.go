// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"

	"github.com/ezrec/ubf/cpu"
	"github.com/ezrec/ubf/machine"
)

func main() {
	var compile string
	var binary string
	var save string
	var script string
	var terminal bool
	var monitor bool
	var defines bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".bf file to compile")
	flag.StringVar(&binary, "b", "", ".bin file to upload")
	flag.StringVar(&save, "o", "", "Save compiled binary, do not execute")
	flag.StringVar(&script, "x", "", ".star scenario script to execute")
	flag.BoolVar(&terminal, "t", false, "Raw terminal mode (exit with Ctrl-])")
	flag.BoolVar(&monitor, "m", false, "Interactive monitor")
	flag.BoolVar(&defines, "defines", false, "Dump machine defines")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	m := machine.NewMachine()
	m.Verbose = verbose

	if defines {
		all := maps.Collect(m.Defines())
		for _, key := range slices.Sorted(maps.Keys(all)) {
			fmt.Printf("%v=%v\n", key, all[key])
		}
		return
	}

	var prog *cpu.Program

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose, Depth: m.Prog.Depth()}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if len(save) != 0 {
		if prog == nil {
			log.Fatalf("%v: Nothing compiled to save (need -c)", os.Args[0])
		}
		if err := os.WriteFile(save, prog.Binary(), 0o644); err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		return
	}

	// Upload over the serial wire; without -c or -b the machine keeps
	// the default program it resets with.
	if prog != nil {
		m.UploadProgram(prog)
	} else if len(binary) != 0 {
		bins, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		m.UploadBinary(bins)
	}

	switch {
	case len(script) != 0:
		src, err := os.ReadFile(script)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
		sc := machine.NewScript(m)
		if err := sc.Run(script, src); err != nil {
			log.Fatalf("%v: %v", script, err)
		}
	case monitor:
		if err := runMonitor(m); err != nil {
			log.Fatal(err)
		}
	case terminal:
		if err := runTerminal(m); err != nil {
			log.Fatal(err)
		}
	default:
		runConsole(m)
	}
}
