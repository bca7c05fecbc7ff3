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

import "fmt"

// amoFunct5 maps each atomic-memory-operation base mnemonic (without its
// .w/.d width suffix) to its 5-bit operation code, shared by LR, SC and the
// AMO* read-modify-write ops. riscv-spec-v2.2.pdf Table 8.1.
var amoFunct5 = map[Mnemonic]uint32{
	"lr":      0b00010,
	"sc":      0b00011,
	"amoswap": 0b00001,
	"amoadd":  0b00000,
	"amoxor":  0b00100,
	"amoand":  0b01100,
	"amoor":   0b01000,
	"amomin":  0b10000,
	"amomax":  0b10100,
	"amominu": 0b11000,
	"amomaxu": 0b11100,
}

var amoFunct5ByKey = func() map[uint32]Mnemonic {
	m := make(map[uint32]Mnemonic, len(amoFunct5))
	for mn, f5 := range amoFunct5 {
		m[f5] = mn
	}
	return m
}()

func amoOrderSuffix(aq, rl bool) string {
	switch {
	case aq && rl:
		return ".aqrl"
	case aq:
		return ".aq"
	case rl:
		return ".rl"
	default:
		return ""
	}
}

func amoWidthFunct3(wide bool) uint32 {
	if wide {
		return 0b011
	}
	return 0b010
}

func amoWidthSuffix(wide bool) string {
	if wide {
		return ".d"
	}
	return ".w"
}

// LrType is LR.W/LR.D: a load-reserved with no second source register.
type LrType struct {
	Rd, Rs1 Reg
	Wide    bool
	Aq, Rl  bool
}

func (i LrType) Width() int { return 4 }

func (i LrType) Encode() uint32 {
	return opAmo | i.Rd.Bits()<<7 | amoWidthFunct3(i.Wide)<<12 | i.Rs1.Bits()<<15 |
		boolBit(i.Rl)<<25 | boolBit(i.Aq)<<26 | amoFunct5["lr"]<<27
}

func (i LrType) String() string {
	return fmt.Sprintf("lr%s%s %s,%s", amoWidthSuffix(i.Wide), amoOrderSuffix(i.Aq, i.Rl), i.Rd, i.Rs1)
}

// ScType is SC.W/SC.D: a store-conditional.
type ScType struct {
	Rd, Rs1, Rs2 Reg
	Wide         bool
	Aq, Rl       bool
}

func (i ScType) Width() int { return 4 }

func (i ScType) Encode() uint32 {
	return opAmo | i.Rd.Bits()<<7 | amoWidthFunct3(i.Wide)<<12 | i.Rs1.Bits()<<15 | i.Rs2.Bits()<<20 |
		boolBit(i.Rl)<<25 | boolBit(i.Aq)<<26 | amoFunct5["sc"]<<27
}

func (i ScType) String() string {
	return fmt.Sprintf("sc%s%s %s,%s,%s", amoWidthSuffix(i.Wide), amoOrderSuffix(i.Aq, i.Rl), i.Rd, i.Rs2, i.Rs1)
}

// AmoType is the read-modify-write AMO family: AMOSWAP, AMOADD, AMOXOR,
// AMOAND, AMOOR, AMOMIN(U), AMOMAX(U), each in .w and .d widths.
type AmoType struct {
	Op           Mnemonic
	Rd, Rs1, Rs2 Reg
	Wide         bool
	Aq, Rl       bool
}

func (i AmoType) Width() int { return 4 }

func (i AmoType) Encode() uint32 {
	return opAmo | i.Rd.Bits()<<7 | amoWidthFunct3(i.Wide)<<12 | i.Rs1.Bits()<<15 | i.Rs2.Bits()<<20 |
		boolBit(i.Rl)<<25 | boolBit(i.Aq)<<26 | amoFunct5[i.Op]<<27
}

func (i AmoType) String() string {
	return fmt.Sprintf("%s%s%s %s,%s,%s", i.Op, amoWidthSuffix(i.Wide), amoOrderSuffix(i.Aq, i.Rl), i.Rd, i.Rs2, i.Rs1)
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func amoTypeFromWord(word uint32) (Instr, error) {
	f3 := (word >> 12) & 0x7
	if f3 != 0b010 && f3 != 0b011 {
		return nil, &ReservedEncodingError{Word: word, Detail: "amo funct3 must select w or d"}
	}
	wide := f3 == 0b011
	f5 := (word >> 27) & 0x1f
	mn, ok := amoFunct5ByKey[f5]
	if !ok {
		return nil, &ReservedEncodingError{Word: word, Detail: "unknown amo funct5"}
	}
	rd := RegFromBits((word >> 7) & 0x1f)
	rs1 := RegFromBits((word >> 15) & 0x1f)
	rs2 := RegFromBits((word >> 20) & 0x1f)
	aq := (word>>26)&1 != 0
	rl := (word>>25)&1 != 0
	switch mn {
	case "lr":
		if rs2 != Zero {
			return nil, &ReservedEncodingError{Word: word, Detail: "lr requires rs2 == x0"}
		}
		return LrType{Rd: rd, Rs1: rs1, Wide: wide, Aq: aq, Rl: rl}, nil
	case "sc":
		return ScType{Rd: rd, Rs1: rs1, Rs2: rs2, Wide: wide, Aq: aq, Rl: rl}, nil
	default:
		return AmoType{Op: mn, Rd: rd, Rs1: rs1, Rs2: rs2, Wide: wide, Aq: aq, Rl: rl}, nil
	}
}
