// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm is the nybble assembler.
//
// The front-end (Parser) turns source text into a flat sequence of nodes.
// The backend (Assembler) compiles the nodes in two passes: the first
// resolves labels into a page and an address within the page, the second
// encodes instructions. Backend diagnostics accumulate, so a single compile
// reports every bad node at once.
package asm
