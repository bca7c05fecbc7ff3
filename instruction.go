// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package riscv

// Mnemonic is an instruction's base mnemonic: the lowercase text before any
// "."-separated suffix (size, ordering, rounding-mode, or FCVT/FMV
// width). It doubles as the tag distinguishing instructions that share an
// encoding shape (e.g. ADD and SUB are both RType, told apart by Op).
type Mnemonic string

// Instr is satisfied by every instruction shape. Width reports the encoded
// size in bytes (4 for standard instructions, 2 for compressed ones);
// Encode's result is only ever populated in its low Width*8 bits.
type Instr interface {
	Width() int
	Encode() uint32
	String() string
}

// opKey identifies one mnemonic's fixed bit pattern within a shared
// instruction shape: the 7-bit opcode plus whichever of funct3/funct7 (or
// funct6/funct5, as the shape needs) disambiguate it from siblings sharing
// that opcode. Each shape's table (below, in tables.go) maps Mnemonic to
// opKey and back, the same "array keyed by the funct fields" idiom the
// teacher's decode.go uses for its single flat instruction table, just
// split one table per shape instead of one table for everything.
type opKey struct {
	opcode, funct3, funct7 uint32
}
