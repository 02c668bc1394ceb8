package cpu

import (
	"errors"

	"github.com/ezrec/nybble/translate"
)

var f = translate.From

var (
	// Computer errors
	ErrStackEmpty = errors.New(f("stack empty"))
	ErrStackFull  = errors.New(f("stack full"))

	// Instruction errors
	ErrOpcodeDecode        = errors.New(f("decode"))
	ErrOpcodeUnimplemented = errors.New(f("opcode unimplemented"))

	// Program image errors
	ErrProgramTooLarge = errors.New(f("program too large"))
	ErrProgramShort    = errors.New(f("program image short"))
)

// ErrOpcode is an instruction byte that does not decode.
type ErrOpcode uint8

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x", uint8(eo))
}

func (eo ErrOpcode) Unwrap() error {
	return ErrOpcodeDecode
}

// ErrOpcodeKind is an opcode kind outside of the instruction set.
type ErrOpcodeKind Kind

func (ek ErrOpcodeKind) Error() string {
	return f("opcode kind %d invalid", int(ek))
}

// ErrUnimplemented is an instruction whose behavior is not yet defined.
type ErrUnimplemented Kind

func (eu ErrUnimplemented) Error() string {
	return f("%v: opcode unimplemented", Kind(eu).String())
}

func (eu ErrUnimplemented) Unwrap() error {
	return ErrOpcodeUnimplemented
}

// ErrExecute locates a failed instruction.
type ErrExecute struct {
	Location Location
	Word     uint8
	Err      error
}

func (err *ErrExecute) Error() string {
	return f("%v: 0x%02x %v", err.Location.String(), err.Word, err.Err)
}

func (err *ErrExecute) Unwrap() error {
	return err.Err
}
