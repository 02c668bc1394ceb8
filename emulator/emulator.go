// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/nybble/cpu"
	"github.com/ezrec/nybble/device"
	"github.com/ezrec/nybble/fixed"
	"github.com/ezrec/nybble/internal"
	"github.com/ezrec/nybble/io"
)

const (
	CONSOLE_LO_PORT   = 0 // Port driving the low nibble of the console character.
	CONSOLE_HI_PORT   = 1 // Port driving the high nibble of the console character.
	CONSOLE_WRITE_PIN = 0 // Pin strobing the console.
)

var _emulator_defines = map[string]string{
	"CONSOLE_LO_PORT":   fmt.Sprintf("%d", CONSOLE_LO_PORT),
	"CONSOLE_HI_PORT":   fmt.Sprintf("%d", CONSOLE_HI_PORT),
	"CONSOLE_WRITE_PIN": fmt.Sprintf("%d", CONSOLE_WRITE_PIN),
}

// ConsoleSplitter joins two 4-bit ports into the 8-bit console character.
type ConsoleSplitter = device.Splitter[fixed.W4, fixed.W4, fixed.W8]

// Emulator state. Computer + console, and the splitter joining them.
type Emulator struct {
	Verbose    bool               // If set, enables verbose logging.
	Bus        *device.Bus        // Stores of all devices.
	Computer   *cpu.Computer      // Reference to the CPU simulation.
	Splitter   *ConsoleSplitter   // Console character splitter.
	Console    *io.Console        // Console output device.
	Simulation *device.Simulation // Tick driver, in device order.
}

// NewEmulator creates a new emulator running the program.
//
// The console character is assembled from CONSOLE_LO_PORT and
// CONSOLE_HI_PORT, and written when CONSOLE_WRITE_PIN is set.
// The computer is ticked first, so its writes reach the console in the
// same tick.
func NewEmulator(prog *cpu.Program) (emu *Emulator, err error) {
	bus := device.NewBus()

	splitter, err := device.NewSplitter[fixed.W4, fixed.W4, fixed.W8](bus)
	if err != nil {
		return
	}

	emu = &Emulator{
		Bus:      bus,
		Computer: cpu.NewComputer(bus, prog),
		Splitter: splitter,
		Console:  io.NewConsole(bus, nil),
	}

	emu.Computer.Port(fixed.New[fixed.W4](CONSOLE_LO_PORT)).ConnectTo(splitter.LowEnd())
	emu.Computer.Port(fixed.New[fixed.W4](CONSOLE_HI_PORT)).ConnectTo(splitter.HighEnd())
	emu.Console.AsciiPort().ConnectTo(splitter)
	emu.Console.WritePin().ConnectTo(emu.Computer.Pin(fixed.New[fixed.W4](CONSOLE_WRITE_PIN)))

	emu.Simulation = device.NewSimulation(emu.Computer, emu.Splitter, emu.Console)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Unique(internal.IterSeq2Concat(
		maps.All(_emulator_defines),
		emu.Computer.Defines(),
	))
}

// Reset the computer, keeping the program and wiring.
//
// Only the computer state is cleared. The tick counter keeps counting, and
// the wired stores (ports, pins, the console character) keep their last
// values and write ticks. The console only prints on new pin writes, so
// nothing is printed again by a reset alone.
func (emu *Emulator) Reset() {
	emu.Computer.Reset()
}

// Ticks returns the total ticks simulated.
func (emu *Emulator) Ticks() uint32 {
	return emu.Simulation.Ticks()
}

// Tick performs a single tick of the emulator.
// A return from an empty stack ends the program, and is not an error.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set verbosity
	emu.Computer.Verbose = emu.Verbose
	emu.Splitter.Verbose = emu.Verbose
	emu.Console.Verbose = emu.Verbose
	emu.Simulation.Verbose = emu.Verbose

	tick := emu.Simulation.Ticks()
	defer func() {
		if err != nil {
			done = true
			err = &ErrRuntime{Tick: tick, Err: err}
		}
	}()

	emu.Simulation.Step()

	err = emu.Console.Err()
	if err != nil {
		return
	}

	err = emu.Computer.Err()
	if errors.Is(err, cpu.ErrStackEmpty) {
		err = nil
		done = true
	}

	return
}

// Run performs a bounded number of ticks, stopping early when the program
// ends.
func (emu *Emulator) Run(ticks uint32) (done bool, err error) {
	for range ticks {
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	return
}

// RunUntilHalt ticks until the program ends. A limit of 0 is unbounded;
// otherwise exceeding the limit is ErrTickLimit.
func (emu *Emulator) RunUntilHalt(limit uint32) (err error) {
	for steps := uint32(0); limit == 0 || steps < limit; steps++ {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	err = ErrTickLimit
	return
}
