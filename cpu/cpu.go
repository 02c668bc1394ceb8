// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/nybble/device"
	"github.com/ezrec/nybble/fixed"
)

var _cpu_defines = map[string]string{
	"PAGE_SIZE":           fmt.Sprintf("%d", PAGE_SIZE),
	"PAGE_COUNT":          fmt.Sprintf("%d", PAGE_COUNT),
	"PROGRAM_MEMORY_SIZE": fmt.Sprintf("%d", PROGRAM_MEMORY_SIZE),
	"RAM_SIZE":            fmt.Sprintf("%d", RAM_SIZE),
	"PORT_COUNT":          fmt.Sprintf("%d", PORT_COUNT),
	"PIN_COUNT":           fmt.Sprintf("%d", PIN_COUNT),
	"STACK_LIMIT":         fmt.Sprintf("%d", STACK_LIMIT),
	"MAX_IMMEDIATE":       fmt.Sprintf("%d", MAX_IMMEDIATE),
}

// Computer is the simulation of the nybble processor.
//
// One instruction is executed per tick. The first failing instruction halts
// the computer; the failure is kept in Err().
type Computer struct {
	Verbose bool     // Set to enable verbose logging.
	Program *Program // Program memory.

	Location Location             // Program counter.
	Register [REGISTER_COUNT]Word // Register bank.
	Ram      [RAM_SIZE]Word       // Data memory.
	Flag     bool                 // Branch condition flag.
	Link     bool                 // If set, BRN pushes the return location.
	Stack    Stack                // Return stack.

	Ticks int // Instructions executed.

	ports [PORT_COUNT]device.Store[fixed.W4]
	pins  [PIN_COUNT]device.Store[fixed.W1]
	err   error
}

var _ device.Device = (*Computer)(nil)

// NewComputer creates a computer with its ports and pins on the bus.
func NewComputer(bus *device.Bus, prog *Program) (cpu *Computer) {
	if prog == nil {
		prog = &Program{}
	}

	cpu = &Computer{
		Program: prog,
	}

	for n := range cpu.ports {
		cpu.ports[n] = device.NewStore(bus, Word{})
	}
	for n := range cpu.pins {
		cpu.pins[n] = device.NewStore(bus, fixed.U[fixed.W1]{})
	}

	return
}

// Defines for the cpu
func (cpu *Computer) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Port returns the connectable 4-bit port.
func (cpu *Computer) Port(id PortId) device.Connectable[fixed.W4] {
	return device.NewSocket(&cpu.ports[id.Int()])
}

// Pin returns the connectable 1-bit pin.
func (cpu *Computer) Pin(id PinId) device.Connectable[fixed.W1] {
	return device.NewSocket(&cpu.pins[id.Int()])
}

// Err is the error that halted the computer, if any.
func (cpu *Computer) Err() error {
	return cpu.err
}

// Halted is true once an instruction has failed.
func (cpu *Computer) Halted() bool {
	return cpu.err != nil
}

// Reset the processor state.
// Program memory and the port and pin wiring are kept.
func (cpu *Computer) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Location = Location{}
	clear(cpu.Register[:])
	clear(cpu.Ram[:])
	cpu.Flag = false
	cpu.Link = false
	cpu.Stack.Reset()
	cpu.Ticks = 0
	cpu.err = nil
}

// String returns the current CPU state as a string.
func (cpu *Computer) String() (text string) {
	text += fmt.Sprintf("% 5s: %v\n", "pc", cpu.Location)
	for n, name := range RegisterName {
		text += fmt.Sprintf("% 5s: %v\n", name, cpu.Register[n])
	}
	text += fmt.Sprintf("% 5s: %v\n", "flag", cpu.Flag)
	text += fmt.Sprintf("% 5s: %v\n", "link", cpu.Link)

	loc, ok := cpu.Stack.Peek()
	if ok {
		text += fmt.Sprintf("% 5s: %v\n", "stack", loc)
	} else {
		text += fmt.Sprintf("% 5s: %v\n", "stack", "-.-")
	}

	return
}

// Fetch decodes the instruction at the program counter.
func (cpu *Computer) Fetch() (word uint8, inst Instruction, err error) {
	word = cpu.Program.Word(cpu.Location)
	inst, err = Decode(word)
	return
}

// Tick executes a single instruction, unless halted.
func (cpu *Computer) Tick(tick uint32) {
	if cpu.err != nil {
		return
	}

	loc := cpu.Location
	word, inst, err := cpu.Fetch()
	if err == nil {
		err = cpu.Execute(inst, tick)
	}

	if err != nil {
		cpu.err = &ErrExecute{Location: loc, Word: word, Err: err}
		if cpu.Verbose {
			log.Printf("cpu: halt: %v", cpu.err)
		}
	}
}

// Execute executes a single decoded instruction.
func (cpu *Computer) Execute(inst Instruction, tick uint32) (err error) {
	if cpu.Verbose {
		log.Printf("%v: %v", cpu.Location, inst)
	}

	next := cpu.Location.Next()
	a := &cpu.Register[REG_A.Int()]

	switch inst.Kind {
	case OP_NOP:
		// pass
	case OP_STR:
		cpu.Ram[cpu.Register[inst.Register.Int()].Int()] = *a
	case OP_LOD:
		*a = cpu.Ram[cpu.Register[inst.Register.Int()].Int()]
	case OP_LDI:
		cpu.Register[inst.Register.Int()] = inst.Immediate
	case OP_MOV:
		cpu.Register[inst.To.Int()] = cpu.Register[inst.From.Int()]
	case OP_OUT:
		cpu.ports[inst.Port.Int()].Set(*a, tick)
	case OP_SEP:
		cpu.pins[inst.Pin.Int()].Set(fixed.Max[fixed.W1](), tick)
	case OP_RSP:
		cpu.pins[inst.Pin.Int()].Set(fixed.U[fixed.W1]{}, tick)
	case OP_SSF:
		cpu.Flag = true
	case OP_RSF:
		cpu.Flag = false
	case OP_SSJ:
		cpu.Link = true
	case OP_RSJ:
		cpu.Link = false
	case OP_BRN:
		if !cpu.Flag {
			break
		}
		if cpu.Link {
			err = cpu.Stack.Push(next)
			if err != nil {
				return
			}
		}
		next = Location{Page: cpu.Location.Page, Address: inst.Address}
	case OP_RET:
		var ok bool
		next, ok = cpu.Stack.Pop()
		if !ok {
			err = ErrStackEmpty
			return
		}
	default:
		err = ErrUnimplemented(inst.Kind)
		return
	}

	cpu.Location = next
	cpu.Ticks++

	return
}
