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

// packedImm is satisfied by every immediate wrapper type (they all embed
// imm); it lets the compressed shapes below hold "whichever immediate this
// mnemonic uses" without one struct field per shape.
type packedImm interface {
	Value() int64
	String() string
	packed() uint64
}

// Compressed quadrant-0 funct3 values (word bits 15:13).
const (
	cq0Fld = 0b001
	cq0Lw  = 0b010
	cq0Ld  = 0b011
	cq0Fsd = 0b101
	cq0Sw  = 0b110
	cq0Sd  = 0b111
)

// CIWType is C.ADDI4SPN: the CIW-format shape, implicit rs1 = sp.
type CIWType struct {
	Rd  CReg
	Imm CWideImm
}

func (i CIWType) Width() int { return 2 }

func (i CIWType) Encode() uint32 {
	return uint32(0b00) | i.Rd.Bits()<<2 | uint32(i.Imm.packed()) | uint32(cq0AddiOp)<<13
}

const cq0AddiOp = 0b000

func (i CIWType) String() string {
	return fmt.Sprintf("c.addi4spn %s,%s", i.Rd, i.Imm)
}

// CLType is the compressed integer-destination load shape: C.LW, C.LD.
type CLType struct {
	Op      Mnemonic
	Rd, Rs1 CReg
	Imm     packedImm
}

var clFunct3 = map[Mnemonic]uint32{"c.lw": cq0Lw, "c.ld": cq0Ld}

func (i CLType) Width() int { return 2 }

func (i CLType) Encode() uint32 {
	return uint32(0b00) | i.Rd.Bits()<<2 | i.Rs1.Bits()<<7 | uint32(i.Imm.packed()) | clFunct3[i.Op]<<13
}

func (i CLType) String() string {
	return fmt.Sprintf("%s %s,%s(%s)", i.Op, i.Rd, i.Imm, i.Rs1)
}

// CFLType is the compressed float-destination load shape: C.FLD.
type CFLType struct {
	Rd  CFReg
	Rs1 CReg
	Imm CDImm
}

func (i CFLType) Width() int { return 2 }

func (i CFLType) Encode() uint32 {
	return uint32(0b00) | i.Rd.Bits()<<2 | i.Rs1.Bits()<<7 | uint32(i.Imm.packed()) | cq0Fld<<13
}

func (i CFLType) String() string {
	return fmt.Sprintf("c.fld %s,%s(%s)", i.Rd, i.Imm, i.Rs1)
}

// CSType is the compressed integer-source store shape: C.SW, C.SD.
type CSType struct {
	Op       Mnemonic
	Rs1, Rs2 CReg
	Imm      packedImm
}

var csFunct3 = map[Mnemonic]uint32{"c.sw": cq0Sw, "c.sd": cq0Sd}

func (i CSType) Width() int { return 2 }

func (i CSType) Encode() uint32 {
	return uint32(0b00) | i.Rs2.Bits()<<2 | i.Rs1.Bits()<<7 | uint32(i.Imm.packed()) | csFunct3[i.Op]<<13
}

func (i CSType) String() string {
	return fmt.Sprintf("%s %s,%s(%s)", i.Op, i.Rs2, i.Imm, i.Rs1)
}

// CFSType is the compressed float-source store shape: C.FSD.
type CFSType struct {
	Rs1 CReg
	Rs2 CFReg
	Imm CDImm
}

func (i CFSType) Width() int { return 2 }

func (i CFSType) Encode() uint32 {
	return uint32(0b00) | i.Rs2.Bits()<<2 | i.Rs1.Bits()<<7 | uint32(i.Imm.packed()) | cq0Fsd<<13
}

func (i CFSType) String() string {
	return fmt.Sprintf("c.fsd %s,%s(%s)", i.Rs2, i.Imm, i.Rs1)
}

// CIType is the quadrant-1 register-immediate shape: C.ADDI, C.ADDIW, C.LI.
// rd = x0 is accepted as a hint (C.NOP, for C.ADDI with a zero immediate)
// and decodes to the same value a non-hint encoding would.
type CIType struct {
	Op  Mnemonic
	Rd  Reg
	Imm CIImm
}

var ciFunct3 = map[Mnemonic]uint32{"c.addi": 0b000, "c.addiw": 0b001, "c.li": 0b010}

func (i CIType) Width() int { return 2 }

func (i CIType) Encode() uint32 {
	return uint32(0b01) | i.Rd.Bits()<<7 | uint32(i.Imm.packed()) | ciFunct3[i.Op]<<13
}

func (i CIType) String() string {
	return fmt.Sprintf("%s %s,%s", i.Op, i.Rd, i.Imm)
}

// CLuiType is C.LUI: quadrant 1, funct3 011, rd != x2. rd = x0 is a hint
// and decodes to the same value a non-hint encoding would.
type CLuiType struct {
	Rd  Reg
	Imm CIImm
}

func (i CLuiType) Width() int { return 2 }

func (i CLuiType) Encode() uint32 {
	return uint32(0b01) | i.Rd.Bits()<<7 | uint32(i.Imm.packed()) | 0b011<<13
}

func (i CLuiType) String() string {
	return fmt.Sprintf("c.lui %s,%s", i.Rd, i.Imm)
}

// CAddi16SpType is C.ADDI16SP: the funct3=011, rd=x2(sp) case of the slot
// C.LUI otherwise occupies.
type CAddi16SpType struct {
	Imm C16SPImm
}

func (i CAddi16SpType) Width() int { return 2 }

func (i CAddi16SpType) Encode() uint32 {
	return uint32(0b01) | SP.Bits()<<7 | uint32(i.Imm.packed()) | 0b011<<13
}

func (i CAddi16SpType) String() string {
	return fmt.Sprintf("c.addi16sp sp,%s", i.Imm)
}

// CShiftType is the quadrant-1 compressed-register shift shape: C.SRLI,
// C.SRAI.
type CShiftType struct {
	Op    Mnemonic
	Rd    CReg
	Shamt CShamt
}

func (i CShiftType) Width() int { return 2 }

func (i CShiftType) Encode() uint32 {
	hi := map[Mnemonic]uint32{"c.srli": 0b00, "c.srai": 0b01}[i.Op]
	return uint32(0b01) | i.Rd.Bits()<<7 | uint32(i.Shamt.packed()) | hi<<10 | 0b100<<13
}

func (i CShiftType) String() string {
	return fmt.Sprintf("%s %s,%s", i.Op, i.Rd, i.Shamt)
}

// CAndiType is C.ANDI: quadrant 1, funct3 100, bits[11:10]==10.
type CAndiType struct {
	Rd  CReg
	Imm CIImm
}

func (i CAndiType) Width() int { return 2 }

func (i CAndiType) Encode() uint32 {
	return uint32(0b01) | i.Rd.Bits()<<7 | uint32(i.Imm.packed()) | 0b10<<10 | 0b100<<13
}

func (i CAndiType) String() string {
	return fmt.Sprintf("c.andi %s,%s", i.Rd, i.Imm)
}

// CArithType is the CA-format shape: C.SUB, C.XOR, C.OR, C.AND, C.SUBW,
// C.ADDW.
type CArithType struct {
	Op     Mnemonic
	Rd     CReg
	Rs2    CReg
}

var cArithKey = map[Mnemonic]struct{ wide bool; f2 uint32 }{
	"c.sub":  {false, 0b00},
	"c.xor":  {false, 0b01},
	"c.or":   {false, 0b10},
	"c.and":  {false, 0b11},
	"c.subw": {true, 0b00},
	"c.addw": {true, 0b01},
}

func (i CArithType) Width() int { return 2 }

func (i CArithType) Encode() uint32 {
	k := cArithKey[i.Op]
	wideBit := uint32(0)
	if k.wide {
		wideBit = 1
	}
	return uint32(0b01) | i.Rd.Bits()<<7 | i.Rs2.Bits()<<2 | k.f2<<5 | 0b11<<10 | wideBit<<12 | 0b100<<13
}

func (i CArithType) String() string {
	return fmt.Sprintf("%s %s,%s", i.Op, i.Rd, i.Rs2)
}

// CJType is C.J: quadrant 1, funct3 101.
type CJType struct {
	Imm CJImm
}

func (i CJType) Width() int { return 2 }

func (i CJType) Encode() uint32 {
	return uint32(0b01) | uint32(i.Imm.packed()) | 0b101<<13
}

func (i CJType) String() string {
	return fmt.Sprintf("c.j %s", i.Imm)
}

// CBranchType is C.BEQZ/C.BNEZ: quadrant 1, funct3 110/111.
type CBranchType struct {
	Op  Mnemonic
	Rs1 CReg
	Imm CBImm
}

var cBranchFunct3 = map[Mnemonic]uint32{"c.beqz": 0b110, "c.bnez": 0b111}

func (i CBranchType) Width() int { return 2 }

func (i CBranchType) Encode() uint32 {
	return uint32(0b01) | i.Rs1.Bits()<<7 | uint32(i.Imm.packed()) | cBranchFunct3[i.Op]<<13
}

func (i CBranchType) String() string {
	return fmt.Sprintf("%s %s,%s", i.Op, i.Rs1, i.Imm)
}

// CSlliType is C.SLLI: quadrant 2, funct3 000, full (uncompressed) rd.
type CSlliType struct {
	Rd    Reg
	Shamt CShamt
}

func (i CSlliType) Width() int { return 2 }

func (i CSlliType) Encode() uint32 {
	return uint32(0b10) | i.Rd.Bits()<<7 | uint32(i.Shamt.packed())
}

func (i CSlliType) String() string {
	return fmt.Sprintf("c.slli %s,%s", i.Rd, i.Shamt)
}

// CFLoadSPType is C.FLDSP: quadrant 2, funct3 001.
type CFLoadSPType struct {
	Rd  FReg
	Imm CDSPImm
}

func (i CFLoadSPType) Width() int { return 2 }

func (i CFLoadSPType) Encode() uint32 {
	return uint32(0b10) | i.Rd.Bits()<<7 | uint32(i.Imm.packed()) | 0b001<<13
}

func (i CFLoadSPType) String() string {
	return fmt.Sprintf("c.fldsp %s,%s(sp)", i.Rd, i.Imm)
}

// CLoadSPType is the sp-relative integer load shape: C.LWSP, C.LDSP.
type CLoadSPType struct {
	Op  Mnemonic
	Rd  Reg
	Imm packedImm
}

var cLoadSPFunct3 = map[Mnemonic]uint32{"c.lwsp": 0b010, "c.ldsp": 0b011}

func (i CLoadSPType) Width() int { return 2 }

func (i CLoadSPType) Encode() uint32 {
	return uint32(0b10) | i.Rd.Bits()<<7 | uint32(i.Imm.packed()) | cLoadSPFunct3[i.Op]<<13
}

func (i CLoadSPType) String() string {
	return fmt.Sprintf("%s %s,%s(sp)", i.Op, i.Rd, i.Imm)
}

// CJrType is C.JR: quadrant 2, funct3 100, bit12=0, rs2=0, rd!=0.
type CJrType struct{ Rs1 Reg }

func (i CJrType) Width() int     { return 2 }
func (i CJrType) Encode() uint32 { return uint32(0b10) | i.Rs1.Bits()<<7 | 0b100<<13 }
func (i CJrType) String() string { return fmt.Sprintf("c.jr %s", i.Rs1) }

// CMvType is C.MV: quadrant 2, funct3 100, bit12=0, rs2!=0.
type CMvType struct{ Rd, Rs2 Reg }

func (i CMvType) Width() int { return 2 }
func (i CMvType) Encode() uint32 {
	return uint32(0b10) | i.Rd.Bits()<<7 | i.Rs2.Bits()<<2 | 0b100<<13
}
func (i CMvType) String() string { return fmt.Sprintf("c.mv %s,%s", i.Rd, i.Rs2) }

// CEbreakType is C.EBREAK: quadrant 2, funct3 100, bit12=1, rd=rs2=0.
type CEbreakType struct{}

func (i CEbreakType) Width() int     { return 2 }
func (i CEbreakType) Encode() uint32 { return uint32(0b10) | 1<<12 | 0b100<<13 }
func (i CEbreakType) String() string { return "c.ebreak" }

// CJalrType is C.JALR: quadrant 2, funct3 100, bit12=1, rs2=0, rd!=0
// (rd is implicitly ra).
type CJalrType struct{ Rs1 Reg }

func (i CJalrType) Width() int     { return 2 }
func (i CJalrType) Encode() uint32 { return uint32(0b10) | i.Rs1.Bits()<<7 | 1<<12 | 0b100<<13 }
func (i CJalrType) String() string { return fmt.Sprintf("c.jalr %s", i.Rs1) }

// CAddType is C.ADD: quadrant 2, funct3 100, bit12=1, rs2!=0.
type CAddType struct{ Rd, Rs2 Reg }

func (i CAddType) Width() int { return 2 }
func (i CAddType) Encode() uint32 {
	return uint32(0b10) | i.Rd.Bits()<<7 | i.Rs2.Bits()<<2 | 1<<12 | 0b100<<13
}
func (i CAddType) String() string { return fmt.Sprintf("c.add %s,%s", i.Rd, i.Rs2) }

// CFStoreSPType is C.FSDSP: quadrant 2, funct3 101.
type CFStoreSPType struct {
	Rs2 FReg
	Imm CSDSPImm
}

func (i CFStoreSPType) Width() int { return 2 }

func (i CFStoreSPType) Encode() uint32 {
	return uint32(0b10) | i.Rs2.Bits()<<2 | uint32(i.Imm.packed()) | 0b101<<13
}

func (i CFStoreSPType) String() string {
	return fmt.Sprintf("c.fsdsp %s,%s(sp)", i.Rs2, i.Imm)
}

// CStoreSPType is the sp-relative integer store shape: C.SWSP, C.SDSP.
type CStoreSPType struct {
	Op  Mnemonic
	Rs2 Reg
	Imm packedImm
}

var cStoreSPFunct3 = map[Mnemonic]uint32{"c.swsp": 0b110, "c.sdsp": 0b111}

func (i CStoreSPType) Width() int { return 2 }

func (i CStoreSPType) Encode() uint32 {
	return uint32(0b10) | i.Rs2.Bits()<<2 | uint32(i.Imm.packed()) | cStoreSPFunct3[i.Op]<<13
}

func (i CStoreSPType) String() string {
	return fmt.Sprintf("%s %s,%s(sp)", i.Op, i.Rs2, i.Imm)
}
