package asm

import (
	"errors"
	"strings"

	"github.com/ezrec/nybble/translate"
)

var f = translate.From

var (
	// Front-end errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrorKind classifies a compile diagnostic.
type ErrorKind int

//go:generate go tool stringer -linecomment -type=ErrorKind
const (
	ERROR_UNEXPECTED_NODE_KIND      = ErrorKind(0) // unexpected node kind
	ERROR_BAD_INSTRUCTION_ARGUMENTS = ErrorKind(1) // bad instruction arguments
	ERROR_BAD_LABEL_REFERENCE       = ErrorKind(2) // bad label reference
	ERROR_DUPLICATE_LABEL           = ErrorKind(3) // duplicate label
)

// Error allows an ErrorKind to be matched with errors.Is.
func (kind ErrorKind) Error() string {
	return f("%v", kind.String())
}

// CompileError is a diagnostic for the node at Index.
type CompileError struct {
	Kind  ErrorKind
	Index int // Zero-based index into the node sequence.
}

func (err CompileError) Error() string {
	return f("node %d: %v", err.Index, err.Kind)
}

func (err CompileError) Unwrap() error {
	return err.Kind
}

// CompileErrors is every diagnostic of a failed compile, in node order.
type CompileErrors []CompileError

func (errs CompileErrors) Error() string {
	text := make([]string, len(errs))
	for n, err := range errs {
		text[n] = err.Error()
	}
	return strings.Join(text, "\n")
}

func (errs CompileErrors) Unwrap() []error {
	list := make([]error, len(errs))
	for n, err := range errs {
		list[n] = err
	}
	return list
}

// ErrAbort stops a compile at the node at Index.
// Unlike a CompileError, it reports a limitation of the assembler rather
// than a fault in the program.
type ErrAbort struct {
	Index int
	Err   error
}

func (err *ErrAbort) Error() string {
	return f("node %d: %v", err.Index, err.Err)
}

func (err *ErrAbort) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseArgument string

func (err ErrParseArgument) Error() string {
	return f("'%v' is not a valid argument", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
