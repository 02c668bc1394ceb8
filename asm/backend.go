// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"errors"
	"log"

	"github.com/ezrec/nybble/cpu"
	"github.com/ezrec/nybble/fixed"
)

// Assembler compiles node sequences into program bytes.
type Assembler struct {
	Verbose bool // If set, logs every emitted instruction.

	pageSize uint64 // Instructions per page, if not cpu.PAGE_SIZE.
}

// location of a label.
type location struct {
	address uint64
	page    uint64
}

type labelMap map[string]location

func (asm *Assembler) instructionsPerPage() uint64 {
	if asm.pageSize == 0 {
		return cpu.PAGE_SIZE
	}
	return asm.pageSize
}

// buildLabelMap locates every label. The first definition of a label wins.
func buildLabelMap(nodes []Node, pageSize uint64) (labels labelMap, errs CompileErrors) {
	labels = make(labelMap)

	var count uint64
	for index, node := range nodes {
		switch node := node.(type) {
		case Label:
			_, ok := labels[node.Name]
			if ok {
				errs = append(errs, CompileError{Kind: ERROR_DUPLICATE_LABEL, Index: index})
				continue
			}
			labels[node.Name] = location{
				address: count % pageSize,
				page:    count / pageSize,
			}
		case Instruction:
			count++
		default:
			errs = append(errs, CompileError{Kind: ERROR_UNEXPECTED_NODE_KIND, Index: index})
		}
	}

	return
}

func registerArg(arg Node) (reg cpu.RegisterId, ok bool) {
	lit, ok := arg.(RegisterLiteral)
	reg = lit.Register
	return
}

func numberArg[W fixed.Width](arg Node) (value fixed.U[W], ok bool) {
	lit, ok := arg.(NumberLiteral)
	value = fixed.New[W](lit.Value)
	return
}

// compileInstruction matches the arguments of an instruction node against
// the operand shape of its opcode.
func compileInstruction(node Instruction, index int, labels labelMap) (inst cpu.Instruction, err error) {
	args := node.Arguments
	badArgs := CompileError{Kind: ERROR_BAD_INSTRUCTION_ARGUMENTS, Index: index}

	var ok bool
	switch node.Kind {
	case cpu.OP_NOP, cpu.OP_SSJ, cpu.OP_RSJ, cpu.OP_RET, cpu.OP_SSF, cpu.OP_RSF:
		if len(args) != 0 {
			err = badArgs
			return
		}
		inst = cpu.MakeBare(node.Kind)
	case cpu.OP_STR, cpu.OP_LOD:
		var reg cpu.RegisterId
		if len(args) == 1 {
			reg, ok = registerArg(args[0])
		}
		if !ok {
			err = badArgs
			return
		}
		inst = cpu.MakeRegister(node.Kind, reg)
	case cpu.OP_LDI:
		var reg cpu.RegisterId
		var imm cpu.Word
		if len(args) == 2 {
			reg, ok = registerArg(args[0])
			if ok {
				imm, ok = numberArg[fixed.W4](args[1])
			}
		}
		if !ok {
			err = badArgs
			return
		}
		inst = cpu.MakeLdi(reg, imm)
	case cpu.OP_MOV:
		var to, from cpu.RegisterId
		if len(args) == 2 {
			to, ok = registerArg(args[0])
			if ok {
				from, ok = registerArg(args[1])
			}
		}
		if !ok {
			err = badArgs
			return
		}
		inst = cpu.MakeMov(to, from)
	case cpu.OP_OUT:
		var port cpu.PortId
		if len(args) == 1 {
			port, ok = numberArg[fixed.W4](args[0])
		}
		if !ok {
			err = badArgs
			return
		}
		inst = cpu.MakePort(node.Kind, port)
	case cpu.OP_SEP, cpu.OP_RSP:
		var pin cpu.PinId
		if len(args) == 1 {
			pin, ok = numberArg[fixed.W4](args[0])
		}
		if !ok {
			err = badArgs
			return
		}
		inst = cpu.MakePin(node.Kind, pin)
	case cpu.OP_BRN:
		var ref LabelReference
		if len(args) == 1 {
			ref, ok = args[0].(LabelReference)
		}
		if !ok {
			err = badArgs
			return
		}
		loc, found := labels[ref.Name]
		if !found {
			err = CompileError{Kind: ERROR_BAD_LABEL_REFERENCE, Index: index}
			return
		}
		value := loc.address
		if ref.Property == PROPERTY_PAGE {
			value = loc.page
		}
		inst = cpu.MakeBrn(fixed.New[fixed.W4](value))
	default:
		err = &ErrAbort{Index: index, Err: cpu.ErrUnimplemented(node.Kind)}
	}

	return
}

// Compile the nodes into program bytes, one byte per instruction.
//
// On failure the result is either CompileErrors, holding every diagnostic,
// or an ErrAbort. Label errors prevent instruction compilation, so only
// they are reported when present. No bytes are returned on failure.
func (asm *Assembler) Compile(nodes []Node) (code []uint8, err error) {
	labels, errs := buildLabelMap(nodes, asm.instructionsPerPage())
	if len(errs) != 0 {
		err = errs
		return
	}

	for index, node := range nodes {
		switch node := node.(type) {
		case Label:
			continue
		case Instruction:
			inst, ierr := compileInstruction(node, index, labels)
			if ierr != nil {
				var cerr CompileError
				if !errors.As(ierr, &cerr) {
					return nil, ierr
				}
				errs = append(errs, cerr)
				continue
			}
			if asm.Verbose {
				log.Printf("asm: %d: %v", index, inst)
			}
			code = append(code, cpu.Encode(inst))
		default:
			errs = append(errs, CompileError{Kind: ERROR_UNEXPECTED_NODE_KIND, Index: index})
		}
	}

	if len(errs) != 0 {
		code = nil
		err = errs
		return
	}

	return
}

// Program compiles the nodes into a program image.
func (asm *Assembler) Program(nodes []Node) (prog *cpu.Program, err error) {
	code, err := asm.Compile(nodes)
	if err != nil {
		return
	}

	prog, err = cpu.NewProgram(code)
	return
}
