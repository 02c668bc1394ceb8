package asm

import (
	"github.com/ezrec/nybble/cpu"
)

// Node is an element of a parsed program.
type Node interface {
	node()
}

// Instruction is an opcode and its argument nodes.
type Instruction struct {
	Kind      cpu.Kind
	Arguments []Node
}

// Label marks the location of the next instruction.
type Label struct {
	Name string
}

// RegisterLiteral is a register argument.
type RegisterLiteral struct {
	Register cpu.RegisterId
}

// NumberLiteral is a numeric argument. It is truncated to the width of
// the operand when encoded.
type NumberLiteral struct {
	Value uint64
}

// Property selects what part of a label location is referenced.
type Property int

//go:generate go tool stringer -linecomment -type=Property
const (
	PROPERTY_ADDRESS = Property(0) // address
	PROPERTY_PAGE    = Property(1) // page
)

// LabelReference is a label argument.
type LabelReference struct {
	Name     string
	Property Property
}

func (Instruction) node()     {}
func (Label) node()           {}
func (RegisterLiteral) node() {}
func (NumberLiteral) node()   {}
func (LabelReference) node()  {}
