package io

import (
	"io"
	"log"

	"github.com/ezrec/nybble/device"
	"github.com/ezrec/nybble/fixed"
)

// Console is a character output device.
//
// Every write of a 1 to the write pin prints the character on the ASCII
// port. The pin is not edge triggered: each new write stamp counts, so
// setting the pin twice prints twice.
type Console struct {
	Verbose bool      // If set, logs every character.
	Output  io.Writer // Destination of the characters.
	Written int       // Characters written.

	ascii device.Store[fixed.W8]
	write device.Store[fixed.W1]

	seen      bool
	lastWrite uint32
	err       error
}

var _ device.Device = (*Console)(nil)

// NewConsole creates a console with fresh stores on the bus.
func NewConsole(bus *device.Bus, output io.Writer) (con *Console) {
	con = &Console{
		Output: output,
		ascii:  device.NewStore(bus, fixed.U[fixed.W8]{}),
		write:  device.NewStore(bus, fixed.U[fixed.W1]{}),
	}

	return
}

// AsciiPort is the 8-bit character input of the console.
func (con *Console) AsciiPort() device.Connectable[fixed.W8] {
	return device.NewSocket(&con.ascii)
}

// WritePin is the write strobe of the console.
func (con *Console) WritePin() device.Connectable[fixed.W1] {
	return device.NewSocket(&con.write)
}

// Err returns the first output error.
func (con *Console) Err() error {
	return con.err
}

// Tick prints a character if the write pin was set since the last tick.
func (con *Console) Tick(tick uint32) {
	if con.write.Get().IsZero() {
		return
	}

	stamp := con.write.Tick()
	if con.seen && stamp == con.lastWrite {
		return
	}
	con.seen = true
	con.lastWrite = stamp

	char := con.ascii.Get().Uint8()
	if con.Verbose {
		log.Printf("console: %d: %q", tick, char)
	}

	if con.Output == nil || con.err != nil {
		return
	}

	_, err := con.Output.Write([]byte{char})
	if err != nil {
		con.err = err
		return
	}
	con.Written++
}
