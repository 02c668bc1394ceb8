package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ezrec/nybble/device"
	"github.com/ezrec/nybble/fixed"
	"github.com/stretchr/testify/assert"
)

// signals drives the console from the outside.
type signals struct {
	ascii device.Store[fixed.W8]
	write device.Store[fixed.W1]
}

func newWiredConsole(output *bytes.Buffer) (con *Console, sig *signals) {
	bus := device.NewBus()
	con = NewConsole(bus, output)
	sig = &signals{
		ascii: device.NewStore(bus, fixed.U[fixed.W8]{}),
		write: device.NewStore(bus, fixed.U[fixed.W1]{}),
	}
	con.AsciiPort().ConnectTo(device.NewSocket(&sig.ascii))
	con.WritePin().ConnectTo(device.NewSocket(&sig.write))
	return
}

func TestConsole_Idle(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	con, _ := newWiredConsole(&out)

	for tick := range uint32(4) {
		con.Tick(tick)
	}
	assert.Equal("", out.String())
	assert.Equal(0, con.Written)
}

func TestConsole_Write(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	con, sig := newWiredConsole(&out)

	sig.ascii.Set(fixed.New[fixed.W8]('H'), 1)
	sig.write.Set(fixed.New[fixed.W1](1), 1)
	con.Tick(1)
	assert.Equal("H", out.String())

	// Same write stamp, no new character.
	con.Tick(2)
	con.Tick(3)
	assert.Equal("H", out.String())

	// Pin stays high, but is written again.
	sig.ascii.Set(fixed.New[fixed.W8]('i'), 4)
	sig.write.Set(fixed.New[fixed.W1](1), 4)
	con.Tick(4)
	assert.Equal("Hi", out.String())

	// Cleared pin never writes.
	sig.ascii.Set(fixed.New[fixed.W8]('!'), 5)
	sig.write.Set(fixed.New[fixed.W1](0), 5)
	con.Tick(5)
	assert.Equal("Hi", out.String())
	assert.Equal(2, con.Written)
	assert.NoError(con.Err())
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write(p []byte) (int, error) {
	return 0, errWrite
}

func TestConsole_WriteError(t *testing.T) {
	assert := assert.New(t)

	bus := device.NewBus()
	con := NewConsole(bus, failWriter{})
	con.ascii.Set(fixed.New[fixed.W8]('x'), 1)
	con.write.Set(fixed.New[fixed.W1](1), 1)
	con.Tick(1)

	assert.ErrorIs(con.Err(), errWrite)
	assert.Equal(0, con.Written)
}
