// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/nybble/cpu"
	"github.com/ezrec/nybble/fixed"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":        "0",
	"PAGE_SIZE":     fmt.Sprintf("%d", cpu.PAGE_SIZE),
	"MAX_IMMEDIATE": fmt.Sprintf("%d", cpu.MAX_IMMEDIATE),
}

// kindMap maps mnemonics to opcodes.
var kindMap = func() map[string]cpu.Kind {
	kinds := make(map[string]cpu.Kind, cpu.KIND_COUNT)
	for kind := range cpu.Kind(cpu.KIND_COUNT) {
		kinds[kind.String()] = kind
	}
	return kinds
}()

var (
	reCharacter = regexp.MustCompile(`'\\?[^']'`)
	reParen     = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Source is a parsed program, with the source text kept for diagnostics.
type Source struct {
	Nodes  []Node   // Top-level nodes.
	LineNo []int    // Source line number of each node.
	Lines  []string // Source text, by line number - 1.
}

// Locate returns the source line of a node.
func (src *Source) Locate(index int) (lineno int, line string) {
	if index < 0 || index >= len(src.LineNo) {
		return
	}
	lineno = src.LineNo[index]
	if lineno > 0 && lineno <= len(src.Lines) {
		line = strings.TrimSpace(src.Lines[lineno-1])
	}
	return
}

// Describe attaches source lines to compile errors.
func (src *Source) Describe(err error) (errs []error) {
	var cerrs CompileErrors
	var abort *ErrAbort
	switch {
	case errors.As(err, &cerrs):
		for _, cerr := range cerrs {
			lineno, line := src.Locate(cerr.Index)
			errs = append(errs, ErrSyntax{LineNo: lineno, Line: line, Err: cerr.Kind})
		}
	case errors.As(err, &abort):
		lineno, line := src.Locate(abort.Index)
		errs = append(errs, ErrSyntax{LineNo: lineno, Line: line, Err: abort.Err})
	case err != nil:
		errs = append(errs, err)
	}

	return
}

// Parser is the line based front-end of the assembler.
type Parser struct {
	Verbose bool              // If set, verbosely logs the parsed lines.
	Equate  map[string]string // Map of equates.

	predefine map[string]string // Predefines
}

// Predefine defines a new equate or redefines an existing equate.
func (p *Parser) Predefine(equ string, value string) {
	if p.predefine == nil {
		p.predefine = map[string]string{equ: value}
	} else {
		p.predefine[equ] = value
	}
}

// Parse parses source text with the default equates.
func Parse(input io.Reader) (src *Source, err error) {
	return (&Parser{}).Parse(input)
}

// valueOf returns the value of a number.
func valueOf(word string) (value uint64, err error) {
	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}

	v64, perr := strconv.ParseInt(word, 0, 64)
	if perr != nil {
		value, perr = strconv.ParseUint(word, 0, 64)
		if perr != nil {
			err = ErrParseNumber(word)
			return
		}
	} else {
		value = uint64(v64)
	}

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (p *Parser) parenEval(expr string) (value uint64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range p.Equate {
		v, verr := valueOf(str)
		if verr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeUint64(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint64(st_int64)
	return
}

// expand replaces character literals and $() expressions with numbers.
func (p *Parser) expand(line string) (out string, err error) {
	out = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "e":
				str = "\033"
			case "0":
				str = "\000"
			default:
				return word
			}
		}
		return fmt.Sprintf("%d", str[0])
	})

	out = reParen.ReplaceAllStringFunc(out, func(str string) string {
		value, perr := p.parenEval(str[2 : len(str)-1])
		if perr != nil {
			err = perr
		}
		return fmt.Sprintf("%#x", value)
	})

	return
}

// parseArgument parses a single instruction argument.
func parseArgument(word string) (arg Node, err error) {
	if len(word) == 1 {
		for n, name := range cpu.RegisterName {
			if strings.EqualFold(word, name) {
				arg = RegisterLiteral{Register: fixed.New[fixed.W2](uint64(n))}
				return
			}
		}
	}

	if word[0] == '~' || word[0] == '-' || (word[0] >= '0' && word[0] <= '9') {
		var value uint64
		value, err = valueOf(word)
		if err != nil {
			return
		}
		arg = NumberLiteral{Value: value}
		return
	}

	name, prop, dotted := strings.Cut(word, ".")
	if !reLabel.MatchString(name) {
		err = ErrParseArgument(word)
		return
	}

	ref := LabelReference{Name: name, Property: PROPERTY_ADDRESS}
	if dotted {
		switch prop {
		case PROPERTY_ADDRESS.String():
			ref.Property = PROPERTY_ADDRESS
		case PROPERTY_PAGE.String():
			ref.Property = PROPERTY_PAGE
		default:
			err = ErrParseArgument(word)
			return
		}
	}

	arg = ref
	return
}

// parseLine parses a single line into nodes.
func (p *Parser) parseLine(line string, lineno int) (nodes []Node, err error) {
	// Set line number.
	p.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line, err = p.expand(line)
	if err != nil {
		return
	}

	line, _, _ = strings.Cut(line, ";")
	line = strings.ReplaceAll(line, ",", " ")
	words := strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := p.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		p.Equate[words[1]] = words[2]
		return
	}

	for n, word := range words {
		equate, ok := p.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if !reLabel.MatchString(label) {
			err = ErrLabelSyntax
			return
		}
		nodes = append(nodes, Label{Name: label})
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	kind, ok := kindMap[strings.ToUpper(words[0])]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	inst := Instruction{Kind: kind}
	for _, word := range words[1:] {
		var arg Node
		arg, err = parseArgument(word)
		if err != nil {
			return
		}
		inst.Arguments = append(inst.Arguments, arg)
	}
	nodes = append(nodes, inst)

	return
}

// Parse parses an input stream into a Source containing nodes.
// The first syntax error stops the parse.
func (p *Parser) Parse(input io.Reader) (src *Source, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			src = nil
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	p.Equate = maps.Clone(sysEquate)
	maps.Copy(p.Equate, p.predefine)

	src = &Source{}
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1
		src.Lines = append(src.Lines, text)

		if p.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(text)

		var nodes []Node
		nodes, err = p.parseLine(line, lineno)
		if err != nil {
			return
		}

		src.Nodes = append(src.Nodes, nodes...)
		src.LineNo = append(src.LineNo, slices.Repeat([]int{lineno}, len(nodes))...)
	}

	err = scanner.Err()

	return
}
