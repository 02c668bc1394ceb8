package cpu

import (
	"fmt"

	"github.com/ezrec/nybble/fixed"
)

// Kind is the opcode of an instruction.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	OP_NOP = Kind(0)  // NOP
	OP_STR = Kind(1)  // STR
	OP_LOD = Kind(2)  // LOD
	OP_LDI = Kind(3)  // LDI
	OP_INC = Kind(4)  // INC
	OP_DEC = Kind(5)  // DEC
	OP_MOV = Kind(6)  // MOV
	OP_INP = Kind(7)  // INP
	OP_OUT = Kind(8)  // OUT
	OP_SEP = Kind(9)  // SEP
	OP_RSP = Kind(10) // RSP
	OP_ADD = Kind(11) // ADD
	OP_SUB = Kind(12) // SUB
	OP_BOR = Kind(13) // BOR
	OP_AND = Kind(14) // AND
	OP_CMP = Kind(15) // CMP
	OP_GRT = Kind(16) // GRT
	OP_LES = Kind(17) // LES
	OP_BRN = Kind(18) // BRN
	OP_SSJ = Kind(19) // SSJ
	OP_RSJ = Kind(20) // RSJ
	OP_RET = Kind(21) // RET
	OP_SSF = Kind(22) // SSF
	OP_RSF = Kind(23) // RSF

	KIND_COUNT = 24
)

// Shape is the operand layout of an opcode.
type Shape int

//go:generate go tool stringer -linecomment -type=Shape
const (
	SHAPE_NONE     = Shape(0) // none
	SHAPE_REGISTER = Shape(1) // register
	SHAPE_MOVE     = Shape(2) // move
	SHAPE_PORT     = Shape(3) // port
	SHAPE_PIN      = Shape(4) // pin
	SHAPE_ADDRESS  = Shape(5) // address
	SHAPE_LOAD     = Shape(6) // load
)

// operandMask is the mask of the operand bits in the instruction byte.
func (shape Shape) operandMask() uint8 {
	switch shape {
	case SHAPE_REGISTER:
		return 0x03
	case SHAPE_MOVE, SHAPE_PORT, SHAPE_PIN, SHAPE_ADDRESS:
		return 0x0f
	case SHAPE_LOAD:
		return 0x3f
	}
	return 0x00
}

type encoding struct {
	prefix uint8
	shape  Shape
}

// encodingTable is indexed by Kind.
var encodingTable = [KIND_COUNT]encoding{
	OP_NOP: {0x00, SHAPE_NONE},
	OP_SSJ: {0x01, SHAPE_NONE},
	OP_RSJ: {0x02, SHAPE_NONE},
	OP_RET: {0x03, SHAPE_NONE},
	OP_SSF: {0x04, SHAPE_NONE},
	OP_RSF: {0x05, SHAPE_NONE},
	OP_STR: {0x10, SHAPE_REGISTER},
	OP_LOD: {0x14, SHAPE_REGISTER},
	OP_INC: {0x18, SHAPE_REGISTER},
	OP_DEC: {0x1c, SHAPE_REGISTER},
	OP_ADD: {0x20, SHAPE_REGISTER},
	OP_SUB: {0x24, SHAPE_REGISTER},
	OP_BOR: {0x28, SHAPE_REGISTER},
	OP_AND: {0x2c, SHAPE_REGISTER},
	OP_CMP: {0x30, SHAPE_REGISTER},
	OP_GRT: {0x34, SHAPE_REGISTER},
	OP_LES: {0x38, SHAPE_REGISTER},
	OP_MOV: {0x40, SHAPE_MOVE},
	OP_OUT: {0x50, SHAPE_PORT},
	OP_SEP: {0x60, SHAPE_PIN},
	OP_RSP: {0x70, SHAPE_PIN},
	OP_INP: {0x80, SHAPE_PORT},
	OP_BRN: {0x90, SHAPE_ADDRESS},
	OP_LDI: {0xc0, SHAPE_LOAD},
}

// Shape returns the operand layout of the opcode.
func (kind Kind) Shape() Shape {
	return encodingTable[kind].shape
}

// Instruction is a single decoded instruction.
//
// Only the operand fields used by the Kind's Shape are meaningful; the Make
// functions leave the others zero, which is also what Decode produces.
type Instruction struct {
	Kind      Kind
	Register  RegisterId // SHAPE_REGISTER and SHAPE_LOAD target
	From      RegisterId // SHAPE_MOVE source
	To        RegisterId // SHAPE_MOVE destination
	Immediate Word       // SHAPE_LOAD value
	Port      PortId     // SHAPE_PORT
	Pin       PinId      // SHAPE_PIN
	Address   Address    // SHAPE_ADDRESS
}

// MakeBare creates an instruction with no operands.
func MakeBare(kind Kind) Instruction {
	return Instruction{Kind: kind}
}

// MakeRegister creates a single register operand instruction.
func MakeRegister(kind Kind, reg RegisterId) Instruction {
	return Instruction{Kind: kind, Register: reg}
}

// MakeLdi creates a load immediate instruction.
func MakeLdi(reg RegisterId, imm Word) Instruction {
	return Instruction{Kind: OP_LDI, Register: reg, Immediate: imm}
}

// MakeMov creates a register to register move.
func MakeMov(to, from RegisterId) Instruction {
	return Instruction{Kind: OP_MOV, To: to, From: from}
}

// MakePort creates a port instruction (OUT, INP).
func MakePort(kind Kind, port PortId) Instruction {
	return Instruction{Kind: kind, Port: port}
}

// MakePin creates a pin instruction (SEP, RSP).
func MakePin(kind Kind, pin PinId) Instruction {
	return Instruction{Kind: kind, Pin: pin}
}

// MakeBrn creates a branch to an address in the current page.
func MakeBrn(addr Address) Instruction {
	return Instruction{Kind: OP_BRN, Address: addr}
}

// Encode packs an instruction into its byte encoding.
func Encode(inst Instruction) (word uint8) {
	if inst.Kind < 0 || inst.Kind >= KIND_COUNT {
		panic(ErrOpcodeKind(inst.Kind))
	}

	enc := encodingTable[inst.Kind]
	word = enc.prefix

	switch enc.shape {
	case SHAPE_REGISTER:
		word |= inst.Register.Uint8()
	case SHAPE_MOVE:
		word |= (inst.From.Uint8() << 2) | inst.To.Uint8()
	case SHAPE_PORT:
		word |= inst.Port.Uint8()
	case SHAPE_PIN:
		word |= inst.Pin.Uint8()
	case SHAPE_ADDRESS:
		word |= inst.Address.Uint8()
	case SHAPE_LOAD:
		word |= (inst.Register.Uint8() << 4) | inst.Immediate.Uint8()
	}

	return
}

// Decode unpacks a byte into an instruction.
func Decode(word uint8) (inst Instruction, err error) {
	for kind, enc := range encodingTable {
		if word&^enc.shape.operandMask() != enc.prefix {
			continue
		}

		inst.Kind = Kind(kind)
		switch enc.shape {
		case SHAPE_REGISTER:
			inst.Register = fixed.From[fixed.W2](word)
		case SHAPE_MOVE:
			inst.From = fixed.From[fixed.W2](word >> 2)
			inst.To = fixed.From[fixed.W2](word)
		case SHAPE_PORT:
			inst.Port = fixed.From[fixed.W4](word)
		case SHAPE_PIN:
			inst.Pin = fixed.From[fixed.W4](word)
		case SHAPE_ADDRESS:
			inst.Address = fixed.From[fixed.W4](word)
		case SHAPE_LOAD:
			inst.Register = fixed.From[fixed.W2](word >> 4)
			inst.Immediate = fixed.From[fixed.W4](word)
		}
		return
	}

	err = ErrOpcode(word)
	return
}

// String returns the assembly language representation of the instruction.
func (inst Instruction) String() (out string) {
	switch inst.Kind.Shape() {
	case SHAPE_REGISTER:
		out = fmt.Sprintf("%v %v", inst.Kind, RegisterName[inst.Register.Int()])
	case SHAPE_MOVE:
		out = fmt.Sprintf("%v %v %v", inst.Kind, RegisterName[inst.To.Int()], RegisterName[inst.From.Int()])
	case SHAPE_PORT:
		out = fmt.Sprintf("%v %d", inst.Kind, inst.Port.Uint64())
	case SHAPE_PIN:
		out = fmt.Sprintf("%v %d", inst.Kind, inst.Pin.Uint64())
	case SHAPE_ADDRESS:
		out = fmt.Sprintf("%v %d", inst.Kind, inst.Address.Uint64())
	case SHAPE_LOAD:
		out = fmt.Sprintf("%v %v %d", inst.Kind, RegisterName[inst.Register.Int()], inst.Immediate.Uint64())
	default:
		out = inst.Kind.String()
	}

	return
}
