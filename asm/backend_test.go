package asm

import (
	"errors"
	"testing"

	"github.com/ezrec/nybble/cpu"
	"github.com/ezrec/nybble/fixed"
	"github.com/stretchr/testify/assert"
)

func op(kind cpu.Kind, args ...Node) Node {
	return Instruction{Kind: kind, Arguments: args}
}

func reg(id uint64) Node {
	return RegisterLiteral{Register: fixed.New[fixed.W2](id)}
}

func num(value uint64) Node {
	return NumberLiteral{Value: value}
}

func label(name string) Node {
	return Label{Name: name}
}

func ref(name string, prop Property) Node {
	return LabelReference{Name: name, Property: prop}
}

func TestBuildLabelMap(t *testing.T) {
	assert := assert.New(t)

	nodes := []Node{
		op(cpu.OP_NOP),
		op(cpu.OP_NOP),
		label("L"),
		op(cpu.OP_NOP),
		op(cpu.OP_NOP),
	}

	table := [](struct {
		pageSize uint64
		expect   location
	}){
		{16, location{address: 2, page: 0}},
		{4, location{address: 2, page: 0}},
		{2, location{address: 0, page: 1}},
	}

	for _, entry := range table {
		labels, errs := buildLabelMap(nodes, entry.pageSize)
		assert.Empty(errs)
		assert.Equal(entry.expect, labels["L"], "page size %d", entry.pageSize)
	}
}

func TestBuildLabelMap_Duplicate(t *testing.T) {
	assert := assert.New(t)

	nodes := []Node{
		label("L"),
		op(cpu.OP_NOP),
		label("L"),
		op(cpu.OP_NOP),
	}

	labels, errs := buildLabelMap(nodes, cpu.PAGE_SIZE)
	assert.Equal(CompileErrors{{Kind: ERROR_DUPLICATE_LABEL, Index: 2}}, errs)
	assert.Equal(location{address: 0, page: 0}, labels["L"])
}

func TestCompile(t *testing.T) {
	assert := assert.New(t)

	nodes := []Node{
		label("start"),
		op(cpu.OP_LDI, reg(0), num(0x8)),
		op(cpu.OP_MOV, reg(0), reg(1)),
		label("loop"),
		op(cpu.OP_STR, reg(2)),
		op(cpu.OP_LOD, reg(3)),
		op(cpu.OP_OUT, num(1)),
		op(cpu.OP_SEP, num(0)),
		op(cpu.OP_RSP, num(0)),
		op(cpu.OP_SSF),
		op(cpu.OP_SSJ),
		op(cpu.OP_BRN, ref("loop", PROPERTY_ADDRESS)),
		op(cpu.OP_RET),
	}

	asm := &Assembler{}
	code, err := asm.Compile(nodes)
	assert.NoError(err)
	assert.Equal([]uint8{0xc8, 0x44, 0x12, 0x17, 0x51, 0x60, 0x70, 0x04, 0x01, 0x92, 0x03}, code)
}

func TestCompile_Truncation(t *testing.T) {
	assert := assert.New(t)

	nodes := []Node{
		op(cpu.OP_LDI, reg(1), num(0x1f)),
		op(cpu.OP_OUT, num(17)),
		op(cpu.OP_SEP, num(0x100)),
	}

	code, err := (&Assembler{}).Compile(nodes)
	assert.NoError(err)
	assert.Equal([]uint8{0xdf, 0x51, 0x60}, code)
}

func TestCompile_PageReference(t *testing.T) {
	assert := assert.New(t)

	nodes := []Node{
		op(cpu.OP_NOP),
		op(cpu.OP_NOP),
		op(cpu.OP_NOP),
		label("far"),
		op(cpu.OP_BRN, ref("far", PROPERTY_PAGE)),
		op(cpu.OP_BRN, ref("far", PROPERTY_ADDRESS)),
	}

	asm := &Assembler{pageSize: 2}
	code, err := asm.Compile(nodes)
	assert.NoError(err)
	assert.Equal([]uint8{0x00, 0x00, 0x00, 0x91, 0x91}, code)

	asm = &Assembler{}
	code, err = asm.Compile(nodes)
	assert.NoError(err)
	assert.Equal([]uint8{0x00, 0x00, 0x00, 0x90, 0x93}, code)
}

func TestCompile_Accumulate(t *testing.T) {
	assert := assert.New(t)

	nodes := []Node{
		op(cpu.OP_NOP),
		op(cpu.OP_STR, num(1)),
		op(cpu.OP_NOP),
		op(cpu.OP_LDI, reg(0)),
		op(cpu.OP_NOP),
	}

	code, err := (&Assembler{}).Compile(nodes)
	assert.Nil(code)

	var errs CompileErrors
	assert.True(errors.As(err, &errs))
	assert.Equal(CompileErrors{
		{Kind: ERROR_BAD_INSTRUCTION_ARGUMENTS, Index: 1},
		{Kind: ERROR_BAD_INSTRUCTION_ARGUMENTS, Index: 3},
	}, errs)
	assert.ErrorIs(err, ERROR_BAD_INSTRUCTION_ARGUMENTS)
	assert.NotErrorIs(err, ERROR_DUPLICATE_LABEL)
}

func TestCompile_BadArguments(t *testing.T) {
	assert := assert.New(t)

	table := []Node{
		op(cpu.OP_NOP, reg(0)),
		op(cpu.OP_RET, num(0)),
		op(cpu.OP_STR),
		op(cpu.OP_LOD, reg(0), reg(1)),
		op(cpu.OP_LDI, num(1), reg(0)),
		op(cpu.OP_LDI, reg(0), reg(1)),
		op(cpu.OP_MOV, reg(0)),
		op(cpu.OP_MOV, reg(0), num(1)),
		op(cpu.OP_OUT, reg(0)),
		op(cpu.OP_SEP),
		op(cpu.OP_RSP, num(0), num(1)),
		op(cpu.OP_BRN, num(3)),
		op(cpu.OP_BRN),
	}

	for n, node := range table {
		_, err := (&Assembler{}).Compile([]Node{node})
		assert.Equal(CompileErrors{{Kind: ERROR_BAD_INSTRUCTION_ARGUMENTS, Index: 0}}, err, "entry %d", n)
	}
}

func TestCompile_BadLabelReference(t *testing.T) {
	assert := assert.New(t)

	nodes := []Node{
		label("here"),
		op(cpu.OP_BRN, ref("there", PROPERTY_ADDRESS)),
		op(cpu.OP_BRN, ref("here", PROPERTY_ADDRESS)),
	}

	code, err := (&Assembler{}).Compile(nodes)
	assert.Nil(code)
	assert.Equal(CompileErrors{{Kind: ERROR_BAD_LABEL_REFERENCE, Index: 1}}, err)
	assert.ErrorIs(err, ERROR_BAD_LABEL_REFERENCE)
}

func TestCompile_LabelErrorsFirst(t *testing.T) {
	assert := assert.New(t)

	nodes := []Node{
		label("L"),
		op(cpu.OP_STR),
		num(4),
		label("L"),
		op(cpu.OP_BRN, ref("missing", PROPERTY_ADDRESS)),
	}

	code, err := (&Assembler{}).Compile(nodes)
	assert.Nil(code)
	// Instruction errors are not reported until labels are valid.
	assert.Equal(CompileErrors{
		{Kind: ERROR_UNEXPECTED_NODE_KIND, Index: 2},
		{Kind: ERROR_DUPLICATE_LABEL, Index: 3},
	}, err)
}

func TestCompile_Unimplemented(t *testing.T) {
	assert := assert.New(t)

	unimplemented := []cpu.Kind{
		cpu.OP_INC, cpu.OP_DEC, cpu.OP_INP,
		cpu.OP_ADD, cpu.OP_SUB, cpu.OP_BOR, cpu.OP_AND,
		cpu.OP_CMP, cpu.OP_GRT, cpu.OP_LES,
	}

	for _, kind := range unimplemented {
		nodes := []Node{
			op(cpu.OP_STR),
			op(kind, reg(0)),
			op(cpu.OP_STR),
		}
		code, err := (&Assembler{}).Compile(nodes)
		assert.Nil(code)
		var abort *ErrAbort
		assert.True(errors.As(err, &abort), kind.String())
		assert.Equal(1, abort.Index)
		assert.ErrorIs(err, cpu.ErrOpcodeUnimplemented)
	}
}

func TestCompileErrors_Error(t *testing.T) {
	assert := assert.New(t)

	errs := CompileErrors{
		{Kind: ERROR_UNEXPECTED_NODE_KIND, Index: 0},
		{Kind: ERROR_BAD_LABEL_REFERENCE, Index: 7},
	}
	assert.Equal("node 0: unexpected node kind\nnode 7: bad label reference", errs.Error())
}

func TestProgram(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Program([]Node{op(cpu.OP_LDI, reg(0), num(3)), op(cpu.OP_RET)})
	assert.NoError(err)
	assert.Equal(uint8(0xc3), prog.Code[0])
	assert.Equal(uint8(0x03), prog.Code[1])
	assert.Equal(2, prog.Len())

	nodes := make([]Node, cpu.PROGRAM_MEMORY_SIZE+1)
	for n := range nodes {
		nodes[n] = op(cpu.OP_SSF)
	}
	_, err = asm.Program(nodes)
	assert.ErrorIs(err, cpu.ErrProgramTooLarge)
}
