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

// Opcodes. riscv-spec-v2.2.pdf; Table 19.1 (format) / 24.1 (listing).
const (
	opLoad    = 0x03
	opLoadFp  = 0x07
	opMiscMem = 0x0F
	opOpImm   = 0x13
	opAuipc   = 0x17
	opOpImm32 = 0x1B
	opStore   = 0x23
	opStoreFp = 0x27
	opAmo     = 0x2F
	opOp      = 0x33
	opLui     = 0x37
	opOp32    = 0x3B
	opMadd    = 0x43
	opMsub    = 0x47
	opNmsub   = 0x4B
	opNmadd   = 0x4F
	opOpFp    = 0x53
	opBranch  = 0x63
	opJalr    = 0x67
	opJal     = 0x6F
	opSystem  = 0x73
)

// rTypeOps maps every R-type integer mnemonic (opcode Op or Op32) to its
// (funct3, funct7) pair.
var rTypeOps = map[Mnemonic]opKey{
	"add":  {opOp, 0b000, 0b0000000},
	"sub":  {opOp, 0b000, 0b0100000},
	"sll":  {opOp, 0b001, 0b0000000},
	"slt":  {opOp, 0b010, 0b0000000},
	"sltu": {opOp, 0b011, 0b0000000},
	"xor":  {opOp, 0b100, 0b0000000},
	"srl":  {opOp, 0b101, 0b0000000},
	"sra":  {opOp, 0b101, 0b0100000},
	"or":   {opOp, 0b110, 0b0000000},
	"and":  {opOp, 0b111, 0b0000000},

	"addw": {opOp32, 0b000, 0b0000000},
	"subw": {opOp32, 0b000, 0b0100000},
	"sllw": {opOp32, 0b001, 0b0000000},
	"srlw": {opOp32, 0b101, 0b0000000},
	"sraw": {opOp32, 0b101, 0b0100000},

	"mul":    {opOp, 0b000, 0b0000001},
	"mulh":   {opOp, 0b001, 0b0000001},
	"mulhsu": {opOp, 0b010, 0b0000001},
	"mulhu":  {opOp, 0b011, 0b0000001},
	"div":    {opOp, 0b100, 0b0000001},
	"divu":   {opOp, 0b101, 0b0000001},
	"rem":    {opOp, 0b110, 0b0000001},
	"remu":   {opOp, 0b111, 0b0000001},

	"mulw":  {opOp32, 0b000, 0b0000001},
	"divw":  {opOp32, 0b100, 0b0000001},
	"divuw": {opOp32, 0b101, 0b0000001},
	"remw":  {opOp32, 0b110, 0b0000001},
	"remuw": {opOp32, 0b111, 0b0000001},
}

var rTypeByKey = reverseOpKey(rTypeOps)

// iTypeOps maps ADDI-family mnemonics (opcode OpImm or OpImm32) to funct3.
var iTypeOps = map[Mnemonic]opKey{
	"addi":  {opOpImm, 0b000, 0},
	"slti":  {opOpImm, 0b010, 0},
	"sltiu": {opOpImm, 0b011, 0},
	"xori":  {opOpImm, 0b100, 0},
	"ori":   {opOpImm, 0b110, 0},
	"andi":  {opOpImm, 0b111, 0},
	"addiw": {opOpImm32, 0b000, 0},
}

var iTypeByKey = reverseOpKey(iTypeOps)

// shiftOps maps SLLI/SRLI/SRAI (opcode OpImm, 6-bit shamt) to (funct3,
// funct6); funct6 occupies the top 6 bits of the word's upper 12 bits,
// since on RV64 the shift amount is 6 bits wide and eats the bit that
// would be funct7's LSB.
var shiftOps = map[Mnemonic]opKey{
	"slli": {opOpImm, 0b001, 0b000000},
	"srli": {opOpImm, 0b101, 0b000000},
	"srai": {opOpImm, 0b101, 0b010000},
}

var shiftByKey = reverseOpKey(shiftOps)

// shiftWOps maps SLLIW/SRLIW/SRAIW (opcode OpImm32, 5-bit shamt, full
// 7-bit funct7).
var shiftWOps = map[Mnemonic]opKey{
	"slliw": {opOpImm32, 0b001, 0b0000000},
	"srliw": {opOpImm32, 0b101, 0b0000000},
	"sraiw": {opOpImm32, 0b101, 0b0100000},
}

var shiftWByKey = reverseOpKey(shiftWOps)

// loadOps maps integer load mnemonics (opcode Load) to funct3.
var loadOps = map[Mnemonic]opKey{
	"lb":  {opLoad, 0b000, 0},
	"lh":  {opLoad, 0b001, 0},
	"lw":  {opLoad, 0b010, 0},
	"ld":  {opLoad, 0b011, 0},
	"lbu": {opLoad, 0b100, 0},
	"lhu": {opLoad, 0b101, 0},
	"lwu": {opLoad, 0b110, 0},
}

var loadByKey = reverseOpKey(loadOps)

// storeOps maps integer store mnemonics (opcode Store) to funct3.
var storeOps = map[Mnemonic]opKey{
	"sb": {opStore, 0b000, 0},
	"sh": {opStore, 0b001, 0},
	"sw": {opStore, 0b010, 0},
	"sd": {opStore, 0b011, 0},
}

var storeByKey = reverseOpKey(storeOps)

// branchOps maps branch mnemonics (opcode Branch) to funct3.
var branchOps = map[Mnemonic]opKey{
	"beq":  {opBranch, 0b000, 0},
	"bne":  {opBranch, 0b001, 0},
	"blt":  {opBranch, 0b100, 0},
	"bge":  {opBranch, 0b101, 0},
	"bltu": {opBranch, 0b110, 0},
	"bgeu": {opBranch, 0b111, 0},
}

var branchByKey = reverseOpKey(branchOps)

// csrOps maps register-source CSR mnemonics (opcode System) to funct3.
var csrOps = map[Mnemonic]opKey{
	"csrrw": {opSystem, 0b001, 0},
	"csrrs": {opSystem, 0b010, 0},
	"csrrc": {opSystem, 0b011, 0},
}

var csrByKey = reverseOpKey(csrOps)

// csrImmOps maps immediate-source CSR mnemonics (opcode System) to funct3.
var csrImmOps = map[Mnemonic]opKey{
	"csrrwi": {opSystem, 0b101, 0},
	"csrrsi": {opSystem, 0b110, 0},
	"csrrci": {opSystem, 0b111, 0},
}

var csrImmByKey = reverseOpKey(csrImmOps)

func reverseOpKey(m map[Mnemonic]opKey) map[opKey]Mnemonic {
	r := make(map[opKey]Mnemonic, len(m))
	for mn, k := range m {
		r[k] = mn
	}
	return r
}
