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

// DecodeCompressed decodes a 16-bit compressed instruction word. Hint
// encodings (e.g. C.ADDI with rd=x0, which is also C.NOP) decode to the
// same value their canonical, non-hint form would; only bit patterns the
// ISA manual lists as truly reserved return a *ReservedEncodingError.
func DecodeCompressed(word uint16) (Instr, error) {
	quadrant := word & 0b11
	funct3 := (word >> 13) & 0x7

	switch quadrant {
	case 0b00:
		return decodeQuadrant0(word, funct3)
	case 0b01:
		return decodeQuadrant1(word, funct3)
	case 0b10:
		return decodeQuadrant2(word, funct3)
	default:
		return nil, &ReservedEncodingError{Word: uint32(word), Detail: "quadrant 11 is not a compressed instruction"}
	}
}

func decodeQuadrant0(word, funct3 uint16) (Instr, error) {
	rdp := CRegFromBits((word >> 2) & 0x7)
	rs1p := CRegFromBits((word >> 7) & 0x7)

	switch funct3 {
	case 0b000:
		imm := cWideImmFromWord(word)
		if imm.Value() == 0 {
			return nil, &ReservedEncodingError{Word: uint32(word), Detail: "c.addi4spn requires a non-zero immediate"}
		}
		return CIWType{Rd: rdp, Imm: imm}, nil
	case cq0Fld:
		return CFLType{Rd: CFRegFromBits((word >> 2) & 0x7), Rs1: rs1p, Imm: cDImmFromWord(word)}, nil
	case cq0Lw:
		return CLType{Op: "c.lw", Rd: rdp, Rs1: rs1p, Imm: cWImmFromWord(word)}, nil
	case cq0Ld:
		return CLType{Op: "c.ld", Rd: rdp, Rs1: rs1p, Imm: cDImmFromWord(word)}, nil
	case cq0Fsd:
		return CFSType{Rs1: rs1p, Rs2: CFRegFromBits((word >> 2) & 0x7), Imm: cDImmFromWord(word)}, nil
	case cq0Sw:
		return CSType{Op: "c.sw", Rs1: rs1p, Rs2: CRegFromBits((word >> 2) & 0x7), Imm: cWImmFromWord(word)}, nil
	case cq0Sd:
		return CSType{Op: "c.sd", Rs1: rs1p, Rs2: CRegFromBits((word >> 2) & 0x7), Imm: cDImmFromWord(word)}, nil
	default:
		return nil, &ReservedEncodingError{Word: uint32(word), Detail: "reserved quadrant-0 funct3"}
	}
}

func decodeQuadrant1(word, funct3 uint16) (Instr, error) {
	rd := RegFromBits(uint32((word >> 7) & 0x1f))

	switch funct3 {
	case 0b000:
		return CIType{Op: "c.addi", Rd: rd, Imm: cIImmFromWord(word)}, nil
	case 0b001:
		if rd == Zero {
			return nil, &ReservedEncodingError{Word: uint32(word), Detail: "c.addiw requires rd != x0"}
		}
		return CIType{Op: "c.addiw", Rd: rd, Imm: cIImmFromWord(word)}, nil
	case 0b010:
		return CIType{Op: "c.li", Rd: rd, Imm: cIImmFromWord(word)}, nil
	case 0b011:
		if rd == SP {
			imm := c16SPImmFromWord(word)
			if imm.Value() == 0 {
				return nil, &ReservedEncodingError{Word: uint32(word), Detail: "c.addi16sp requires a non-zero immediate"}
			}
			return CAddi16SpType{Imm: imm}, nil
		}
		imm := cIImmFromWord(word)
		if imm.Value() == 0 {
			return nil, &ReservedEncodingError{Word: uint32(word), Detail: "c.lui requires a non-zero immediate"}
		}
		return CLuiType{Rd: rd, Imm: imm}, nil
	case 0b100:
		return decodeQuadrant1MiscAlu(word)
	case 0b101:
		return CJType{Imm: cJImmFromWord(word)}, nil
	case 0b110:
		return CBranchType{Op: "c.beqz", Rs1: CRegFromBits((word >> 7) & 0x7), Imm: cBImmFromWord(word)}, nil
	case 0b111:
		return CBranchType{Op: "c.bnez", Rs1: CRegFromBits((word >> 7) & 0x7), Imm: cBImmFromWord(word)}, nil
	default:
		return nil, &ReservedEncodingError{Word: uint32(word), Detail: "reserved quadrant-1 funct3"}
	}
}

func decodeQuadrant1MiscAlu(word uint16) (Instr, error) {
	rdp := CRegFromBits((word >> 7) & 0x7)
	hi := (word >> 10) & 0x3

	switch hi {
	case 0b00:
		return CShiftType{Op: "c.srli", Rd: rdp, Shamt: cShamtFromWord(word)}, nil
	case 0b01:
		return CShiftType{Op: "c.srai", Rd: rdp, Shamt: cShamtFromWord(word)}, nil
	case 0b10:
		return CAndiType{Rd: rdp, Imm: cIImmFromWord(word)}, nil
	default: // 0b11: CA format
		rs2p := CRegFromBits((word >> 2) & 0x7)
		f2 := (word >> 5) & 0x3
		wide := (word>>12)&1 != 0
		var op Mnemonic
		switch {
		case !wide && f2 == 0b00:
			op = "c.sub"
		case !wide && f2 == 0b01:
			op = "c.xor"
		case !wide && f2 == 0b10:
			op = "c.or"
		case !wide && f2 == 0b11:
			op = "c.and"
		case wide && f2 == 0b00:
			op = "c.subw"
		case wide && f2 == 0b01:
			op = "c.addw"
		default:
			return nil, &ReservedEncodingError{Word: uint32(word), Detail: "reserved CA-format funct2"}
		}
		return CArithType{Op: op, Rd: rdp, Rs2: rs2p}, nil
	}
}

func decodeQuadrant2(word, funct3 uint16) (Instr, error) {
	rd := RegFromBits(uint32((word >> 7) & 0x1f))

	switch funct3 {
	case 0b000:
		return CSlliType{Rd: rd, Shamt: cShamtFromWord(word)}, nil
	case 0b001:
		return CFLoadSPType{Rd: FRegFromBits(uint32((word >> 7) & 0x1f)), Imm: cDSPImmFromWord(word)}, nil
	case 0b010:
		if rd == Zero {
			return nil, &ReservedEncodingError{Word: uint32(word), Detail: "c.lwsp requires rd != x0"}
		}
		return CLoadSPType{Op: "c.lwsp", Rd: rd, Imm: cWSPImmFromWord(word)}, nil
	case 0b011:
		if rd == Zero {
			return nil, &ReservedEncodingError{Word: uint32(word), Detail: "c.ldsp requires rd != x0"}
		}
		return CLoadSPType{Op: "c.ldsp", Rd: rd, Imm: cDSPImmFromWord(word)}, nil
	case 0b100:
		return decodeQuadrant2JrMvAdd(word, rd)
	case 0b101:
		return CFStoreSPType{Rs2: FRegFromBits(uint32((word >> 2) & 0x1f)), Imm: cSDSPImmFromWord(word)}, nil
	case 0b110:
		return CStoreSPType{Op: "c.swsp", Rs2: RegFromBits(uint32((word >> 2) & 0x1f)), Imm: cSWSPImmFromWord(word)}, nil
	case 0b111:
		return CStoreSPType{Op: "c.sdsp", Rs2: RegFromBits(uint32((word >> 2) & 0x1f)), Imm: cSDSPImmFromWord(word)}, nil
	default:
		return nil, &ReservedEncodingError{Word: uint32(word), Detail: "reserved quadrant-2 funct3"}
	}
}

func decodeQuadrant2JrMvAdd(word uint16, rd Reg) (Instr, error) {
	rs2 := RegFromBits(uint32((word >> 2) & 0x1f))
	bit12 := (word>>12)&1 != 0

	switch {
	case !bit12 && rs2 == Zero:
		if rd == Zero {
			return nil, &ReservedEncodingError{Word: uint32(word), Detail: "c.jr requires rs1 != x0"}
		}
		return CJrType{Rs1: rd}, nil
	case !bit12:
		return CMvType{Rd: rd, Rs2: rs2}, nil
	case bit12 && rs2 == Zero && rd == Zero:
		return CEbreakType{}, nil
	case bit12 && rs2 == Zero:
		return CJalrType{Rs1: rd}, nil
	default:
		return CAddType{Rd: rd, Rs2: rs2}, nil
	}
}
