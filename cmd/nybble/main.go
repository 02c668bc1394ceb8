// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ezrec/nybble/asm"
	"github.com/ezrec/nybble/emulator"
	"github.com/ezrec/nybble/io"
)

func main() {
	var compile string
	var output string
	var run string
	var ticks uint
	var listing bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".ns file to compile")
	flag.StringVar(&output, "o", "", "Save compiled image, do not execute")
	flag.StringVar(&run, "r", "", "Image file to execute")
	flag.UintVar(&ticks, "n", 0, "Ticks to execute (0 runs until the program ends)")
	flag.BoolVar(&listing, "l", false, "Print a listing of the program")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(run) != 0 {
		log.Fatalf("%v: -c and -r are exclusive", os.Args[0])
	}

	emu, err := emulator.NewEmulator(nil)
	if err != nil {
		log.Fatal(err)
	}
	emu.Verbose = verbose
	emu.Console.Output = os.Stdout

	rom := &io.Rom{Program: emu.Computer.Program}

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		p := &asm.Parser{Verbose: verbose}
		for key, value := range emu.Defines() {
			p.Predefine(key, value)
		}

		src, err := p.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		as := &asm.Assembler{Verbose: verbose}
		prog, err := as.Program(src.Nodes)
		if err != nil {
			for _, e := range src.Describe(err) {
				log.Printf("%v: %v", compile, e)
			}
			os.Exit(1)
		}
		*rom.Program = *prog
	}

	if len(run) != 0 {
		err = rom.Unmarshal(io.DirFS(filepath.Dir(run)), filepath.Base(run))
		if err != nil {
			log.Fatal(err)
		}
		*emu.Computer.Program = *rom.Program
		rom.Program = emu.Computer.Program
	}

	if listing {
		for _, line := range rom.Program.Listing() {
			fmt.Println(line)
		}
	}

	if len(output) != 0 {
		err = rom.Marshal(io.DirFS(filepath.Dir(output)), filepath.Base(output))
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	if len(compile) == 0 && len(run) == 0 {
		return
	}

	if ticks == 0 {
		err = emu.RunUntilHalt(0)
	} else {
		_, err = emu.Run(uint32(ticks))
	}
	if err != nil {
		log.Fatal(err)
	}
}
