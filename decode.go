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

// Decode decodes a 32-bit instruction word into its structured form. It
// returns a *ReservedEncodingError for any bit pattern the ISA leaves
// undefined: unknown opcode/funct combinations, illegal shift amounts,
// reserved rounding modes, and non-zero reserved register/immediate fields.
func Decode(word uint32) (Instr, error) {
	switch word & 0x7f {
	case opLoad:
		return loadTypeFromWord(word)
	case opLoadFp:
		return fLoadTypeFromWord(word)
	case opMiscMem:
		switch (word >> 12) & 0x7 {
		case 0b000:
			return fenceTypeFromWord(word)
		case 0b001:
			return fenceITypeFromWord(word)
		default:
			return nil, &ReservedEncodingError{Word: word, Detail: "unknown MISC-MEM funct3"}
		}
	case opOpImm:
		switch (word >> 12) & 0x7 {
		case 0b001, 0b101:
			return shiftTypeFromWord(word)
		default:
			return iTypeFromWord(word)
		}
	case opAuipc:
		return uTypeFromWord("auipc", word)
	case opOpImm32:
		switch (word >> 12) & 0x7 {
		case 0b001, 0b101:
			return shiftWTypeFromWord(word)
		default:
			return iTypeFromWord(word)
		}
	case opStore:
		return storeTypeFromWord(word)
	case opStoreFp:
		return fStoreTypeFromWord(word)
	case opAmo:
		return amoTypeFromWord(word)
	case opOp, opOp32:
		return rTypeFromWord(word)
	case opLui:
		return uTypeFromWord("lui", word)
	case opMadd, opMsub, opNmsub, opNmadd:
		return fmaddTypeFromWord(word)
	case opOpFp:
		return opFpFromWord(word)
	case opBranch:
		return branchTypeFromWord(word)
	case opJalr:
		return jalrTypeFromWord(word)
	case opJal:
		return jalTypeFromWord(word)
	case opSystem:
		switch f3 := (word >> 12) & 0x7; f3 {
		case 0b000:
			return systemMiscFromWord(word)
		case 0b001, 0b010, 0b011:
			return csrTypeFromWord(word)
		case 0b101, 0b110, 0b111:
			return csrImmTypeFromWord(word)
		default:
			return nil, &ReservedEncodingError{Word: word, Detail: "unknown SYSTEM funct3"}
		}
	default:
		return nil, &ReservedEncodingError{Word: word, Detail: "unknown opcode"}
	}
}

// Encode encodes an already-validated instruction back into its word form.
// Width reports whether the result occupies the low 32 or low 16 bits.
func Encode(i Instr) uint32 { return i.Encode() }

// Display renders an instruction in canonical textual assembly.
func Display(i Instr) string { return i.String() }
