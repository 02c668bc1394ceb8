package emulator

import (
	"bytes"
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nybble/asm"
	"github.com/ezrec/nybble/cpu"
)

func assemble(t *testing.T, emu *Emulator, program ...string) *cpu.Program {
	p := &asm.Parser{}
	if emu != nil {
		for key, value := range emu.Defines() {
			p.Predefine(key, value)
		}
	}

	src, err := p.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatalf("%v", err)
	}

	prog, err := (&asm.Assembler{}).Program(src.Nodes)
	if err != nil {
		for _, e := range src.Describe(err) {
			t.Log(e)
		}
		t.Fatalf("%v", err)
	}

	return prog
}

func newEmulator(t *testing.T, program ...string) (emu *Emulator, output *bytes.Buffer) {
	emu, err := NewEmulator(nil)
	if err != nil {
		t.Fatalf("%v", err)
	}

	*emu.Computer.Program = *assemble(t, emu, program...)
	output = &bytes.Buffer{}
	emu.Console.Output = output

	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(&cpu.Program{})
	assert.NoError(err)
	assert.False(emu.Verbose)
	assert.Equal(uint32(0), emu.Ticks())

	defines := maps.Collect(emu.Defines())
	assert.Equal("0", defines["CONSOLE_LO_PORT"])
	assert.Equal("1", defines["CONSOLE_HI_PORT"])
	assert.Equal("0", defines["CONSOLE_WRITE_PIN"])
	assert.Equal("16", defines["PAGE_SIZE"])
}

func TestEmulator_Wiring(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(&cpu.Program{})
	assert.NoError(err)

	lo := emu.Computer.Port(cpu.PortId{}).Store()
	assert.True(lo.Same(emu.Splitter.LowEnd().Store()))
	assert.True(emu.Console.AsciiPort().Store().Same(emu.Splitter.Store()))
	assert.True(emu.Console.WritePin().Store().Same(emu.Computer.Pin(cpu.PinId{}).Store()))
}

var helloProgram = []string{
	"; Print a string, one nibble at a time",
	"start:  LDI A 'H'          ; LDI keeps the low nibble",
	"        OUT CONSOLE_LO_PORT",
	"        LDI A $('H' >> 4)",
	"        OUT CONSOLE_HI_PORT",
	"        SEP CONSOLE_WRITE_PIN",
	"        RSP CONSOLE_WRITE_PIN",
	"        LDI A 'i'",
	"        OUT CONSOLE_LO_PORT",
	"        LDI A $('i' >> 4)",
	"        OUT CONSOLE_HI_PORT",
	"        SEP CONSOLE_WRITE_PIN",
	"        RSP CONSOLE_WRITE_PIN",
	"        RET",
}

func TestEmulator_Hello(t *testing.T) {
	assert := assert.New(t)

	emu, output := newEmulator(t, helloProgram...)

	err := emu.RunUntilHalt(100)
	assert.NoError(err)
	assert.Equal("Hi", output.String())
	assert.Equal(uint32(13), emu.Ticks())
	assert.Equal(2, emu.Console.Written)
}

func TestEmulator_Run(t *testing.T) {
	assert := assert.New(t)

	emu, output := newEmulator(t, helloProgram...)

	// Stop just after the first character.
	done, err := emu.Run(5)
	assert.NoError(err)
	assert.False(done)
	assert.Equal("H", output.String())

	done, err = emu.Run(100)
	assert.NoError(err)
	assert.True(done)
	assert.Equal("Hi", output.String())

	// Reset restarts the program, but not the wiring or tick counter.
	ticks := emu.Ticks()
	emu.Reset()
	assert.Equal(ticks, emu.Ticks())
	assert.Equal(uint64(0x69), emu.Splitter.Store().Get().Uint64())
	assert.Equal(2, emu.Console.Written)

	// Nothing new is written until the program strobes the pin again.
	done, err = emu.Run(4)
	assert.NoError(err)
	assert.False(done)
	assert.Equal("Hi", output.String())

	done, err = emu.Run(100)
	assert.NoError(err)
	assert.True(done)
	assert.Equal("HiHi", output.String())
	assert.Equal(ticks+13, emu.Ticks())
}

func TestEmulator_Subroutine(t *testing.T) {
	assert := assert.New(t)

	emu, output := newEmulator(t,
		"        SSF",
		"        SSJ",
		"        LDI X 'o'",
		"        BRN putc",
		"        LDI X 'k'",
		"        BRN putc",
		"        RSJ",
		"        BRN done",
		"putc:   MOV A X",
		"        OUT CONSOLE_LO_PORT",
		"        LDI A 6",
		"        OUT CONSOLE_HI_PORT",
		"        SEP CONSOLE_WRITE_PIN",
		"        RET",
		"done:   RET",
	)

	err := emu.RunUntilHalt(0)
	assert.NoError(err)
	assert.Equal("ok", output.String())
}

func TestEmulator_Errors(t *testing.T) {
	assert := assert.New(t)

	// Unimplemented opcode in the image.
	emu, err := NewEmulator(&cpu.Program{Code: [cpu.PROGRAM_MEMORY_SIZE]uint8{0x00, 0x18}})
	assert.NoError(err)

	done, err := emu.Run(10)
	assert.True(done)
	assert.ErrorIs(err, cpu.ErrOpcodeUnimplemented)
	var rerr *ErrRuntime
	if assert.True(errors.As(err, &rerr)) {
		assert.Equal(uint32(1), rerr.Tick)
	}

	// Undecodable word.
	emu, err = NewEmulator(&cpu.Program{Code: [cpu.PROGRAM_MEMORY_SIZE]uint8{0x06}})
	assert.NoError(err)
	err = emu.RunUntilHalt(0)
	assert.ErrorIs(err, cpu.ErrOpcodeDecode)

	// Endless loop.
	emu, _ = newEmulator(t,
		"loop: SSF",
		"      BRN loop",
	)
	err = emu.RunUntilHalt(50)
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(uint32(50), emu.Ticks())
}
