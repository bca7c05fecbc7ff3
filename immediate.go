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

import "strconv"

// shape describes how one immediate's logical bit pattern scatters into an
// instruction word. Width counts the full logical value including any
// low-order bits that are always zero (never stored); Slots lists only the
// bits that are actually stored, in (logical-bit, width, word-bit) triples.
// This table is the single source of truth consulted by extraction,
// packing, range-checking and display for every immediate shape in the
// ISA. Scatter positions follow the RISC-V instruction set manual's
// per-format bit layouts (I/S/U/J/B and the compressed CI/CSS/CIW/CL/CS/
// CB/CJ formats).
type shape struct {
	signed bool
	width  uint8 // total logical width, including implicit zero low bits
	slots  []slot
}

type slot struct {
	lo, width, wordPos uint8
}

func mask64(width uint8) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// storedWidth is the number of bits actually carried in the word (width
// minus the implicit always-zero low bits).
func (s *shape) storedWidth() uint8 {
	var n uint8
	for _, sl := range s.slots {
		n += sl.width
	}
	return n
}

// align is the implicit alignment this shape imposes: 2^(width-storedWidth).
func (s *shape) align() int64 {
	return int64(1) << (s.width - s.storedWidth())
}

func (s *shape) bounds() (min, max int64) {
	if s.signed {
		max = int64(1)<<(s.width-1) - 1
		min = -(int64(1) << (s.width - 1))
		return
	}
	return 0, int64(1)<<s.width - 1
}

func (s *shape) validate(v int64) error {
	min, max := s.bounds()
	if v < min || v > max {
		return &OutOfRangeError{Value: v, Min: min, Max: max}
	}
	if a := s.align(); a > 1 && v%a != 0 {
		return &MisalignedImmediateError{Value: v, Align: a}
	}
	return nil
}

// extract gathers this shape's bits out of a 16- or 32-bit word and
// returns the logical value, sign-extended if the shape is signed.
func (s *shape) extract(word uint64) int64 {
	var raw uint64
	for _, sl := range s.slots {
		bits := (word >> sl.wordPos) & mask64(sl.width)
		raw |= bits << sl.lo
	}
	if !s.signed {
		return int64(raw)
	}
	signBit := uint64(1) << (s.width - 1)
	if raw&signBit == 0 {
		return int64(raw)
	}
	return int64(raw) - int64(signBit<<1)
}

// pack scatters a logical value's bits into the word positions this shape
// occupies. The caller ORs the result into the encoded instruction word;
// bits outside this shape's slots are left zero.
func (s *shape) pack(v int64) uint64 {
	raw := uint64(v) & mask64(s.width)
	var word uint64
	for _, sl := range s.slots {
		bits := (raw >> sl.lo) & mask64(sl.width)
		word |= bits << sl.wordPos
	}
	return word
}

func (s *shape) display(v int64) string {
	if s.signed {
		return strconv.FormatInt(v, 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

// Shape tables. Word-bit positions are given verbatim from the RISC-V ISA
// manual's per-format tables; compressed-format positions follow the C
// extension chapter's per-instruction encoding diagrams.
var (
	shapeI      = &shape{signed: true, width: 12, slots: []slot{{0, 12, 20}}}
	shapeS      = &shape{signed: true, width: 12, slots: []slot{{0, 5, 7}, {5, 7, 25}}}
	shapeU      = &shape{signed: true, width: 20, slots: []slot{{0, 20, 12}}}
	shapeJ      = &shape{signed: true, width: 21, slots: []slot{{12, 8, 12}, {11, 1, 20}, {1, 10, 21}, {20, 1, 31}}}
	shapeB      = &shape{signed: true, width: 13, slots: []slot{{11, 1, 7}, {1, 4, 8}, {5, 6, 25}, {12, 1, 31}}}
	shapeShamt  = &shape{signed: false, width: 6, slots: []slot{{0, 6, 20}}}
	shapeShamtW = &shape{signed: false, width: 5, slots: []slot{{0, 5, 20}}}
	shapeCSR    = &shape{signed: false, width: 12, slots: []slot{{0, 12, 20}}}
	shapeCSRImm = &shape{signed: false, width: 5, slots: []slot{{0, 5, 15}}}

	shapeCWide = &shape{signed: false, width: 10, slots: []slot{{3, 1, 5}, {2, 1, 6}, {6, 4, 7}, {4, 2, 11}}}
	shapeCD    = &shape{signed: false, width: 8, slots: []slot{{6, 2, 5}, {3, 3, 10}}}
	shapeCW    = &shape{signed: false, width: 7, slots: []slot{{6, 1, 5}, {2, 1, 6}, {3, 3, 10}}}
	shapeCI    = &shape{signed: true, width: 6, slots: []slot{{0, 5, 2}, {5, 1, 12}}}
	shapeCB    = &shape{signed: true, width: 9, slots: []slot{{5, 1, 2}, {1, 2, 3}, {6, 2, 5}, {3, 2, 10}, {8, 1, 12}}}
	shapeCShmt = &shape{signed: false, width: 6, slots: []slot{{0, 5, 2}, {5, 1, 12}}}
	shapeCJ    = &shape{signed: true, width: 12, slots: []slot{{5, 1, 2}, {1, 3, 3}, {7, 1, 6}, {6, 1, 7}, {10, 1, 8}, {8, 2, 9}, {4, 1, 11}, {11, 1, 12}}}
	shapeCDSP  = &shape{signed: false, width: 9, slots: []slot{{6, 3, 2}, {3, 2, 5}, {5, 1, 12}}}
	shapeCWSP  = &shape{signed: false, width: 8, slots: []slot{{6, 2, 2}, {2, 3, 4}, {5, 1, 12}}}
	shapeCSDSP = &shape{signed: false, width: 9, slots: []slot{{6, 3, 7}, {3, 3, 10}}}
	shapeCSWSP = &shape{signed: false, width: 8, slots: []slot{{6, 2, 7}, {2, 4, 9}}}
	shapeC16SP = &shape{signed: true, width: 10, slots: []slot{{5, 1, 2}, {7, 2, 3}, {6, 1, 5}, {4, 1, 6}, {9, 1, 12}}}
)

// imm is the shared representation behind every immediate value type: a
// validated logical integer paired with the shape that produced it.
type imm struct {
	v int64
	s *shape
}

func newImm(s *shape, v int64) (imm, error) {
	if err := s.validate(v); err != nil {
		return imm{}, err
	}
	return imm{v: v, s: s}, nil
}

func immFromWord(s *shape, word uint64) imm {
	return imm{v: s.extract(word), s: s}
}

func (i imm) Value() int64    { return i.v }
func (i imm) String() string  { return i.s.display(i.v) }
func (i imm) packed() uint64  { return i.s.pack(i.v) }

// IImm is the 12-bit signed I-type immediate (ADDI, loads, JALR, ...).
type IImm struct{ imm }

// NewIImm constructs an I-type immediate, validating range.
func NewIImm(v int64) (IImm, error) { i, err := newImm(shapeI, v); return IImm{i}, err }
func iImmFromWord(word uint32) IImm { return IImm{immFromWord(shapeI, uint64(word))} }

// SImm is the 12-bit signed S-type immediate (stores).
type SImm struct{ imm }

func NewSImm(v int64) (SImm, error) { i, err := newImm(shapeS, v); return SImm{i}, err }
func sImmFromWord(word uint32) SImm { return SImm{immFromWord(shapeS, uint64(word))} }

// UImm is the 20-bit signed U-type immediate (LUI, AUIPC); its value is the
// 20-bit field itself (not shifted), which packing places at word bits 12..31.
type UImm struct{ imm }

func NewUImm(v int64) (UImm, error) { i, err := newImm(shapeU, v); return UImm{i}, err }
func uImmFromWord(word uint32) UImm { return UImm{immFromWord(shapeU, uint64(word))} }

// JImm is the 21-bit signed J-type immediate (JAL), bit 0 always zero.
type JImm struct{ imm }

func NewJImm(v int64) (JImm, error) { i, err := newImm(shapeJ, v); return JImm{i}, err }
func jImmFromWord(word uint32) JImm { return JImm{immFromWord(shapeJ, uint64(word))} }

// BImm is the 13-bit signed B-type immediate (branches), bit 0 always zero.
type BImm struct{ imm }

func NewBImm(v int64) (BImm, error) { i, err := newImm(shapeB, v); return BImm{i}, err }
func bImmFromWord(word uint32) BImm { return BImm{immFromWord(shapeB, uint64(word))} }

// Shamt is the 6-bit unsigned shift amount used by 64-bit-width shifts.
type Shamt struct{ imm }

func NewShamt(v int64) (Shamt, error) { i, err := newImm(shapeShamt, v); return Shamt{i}, err }
func shamtFromWord(word uint32) Shamt { return Shamt{immFromWord(shapeShamt, uint64(word))} }

// ShamtW is the 5-bit unsigned shift amount used by word-width shifts.
type ShamtW struct{ imm }

func NewShamtW(v int64) (ShamtW, error) { i, err := newImm(shapeShamtW, v); return ShamtW{i}, err }
func shamtWFromWord(word uint32) ShamtW { return ShamtW{immFromWord(shapeShamtW, uint64(word))} }

// CSRAddr is the 12-bit unsigned CSR address field.
type CSRAddr struct{ imm }

func NewCSRAddr(v int64) (CSRAddr, error) { i, err := newImm(shapeCSR, v); return CSRAddr{i}, err }
func csrAddrFromWord(word uint32) CSRAddr { return CSRAddr{immFromWord(shapeCSR, uint64(word))} }

// CSRImm is the 5-bit unsigned immediate used by CSRRWI/CSRRSI/CSRRCI.
type CSRImm struct{ imm }

func NewCSRImm(v int64) (CSRImm, error) { i, err := newImm(shapeCSRImm, v); return CSRImm{i}, err }
func csrImmFromWord(word uint32) CSRImm { return CSRImm{immFromWord(shapeCSRImm, uint64(word))} }

// CWideImm is C.ADDI4SPN's 10-bit unsigned, 4-byte-aligned immediate.
type CWideImm struct{ imm }

func NewCWideImm(v int64) (CWideImm, error) { i, err := newImm(shapeCWide, v); return CWideImm{i}, err }
func cWideImmFromWord(word uint16) CWideImm { return CWideImm{immFromWord(shapeCWide, uint64(word))} }

// CDImm is the 8-bit unsigned, 8-byte-aligned offset used by C.LD/C.SD/
// C.FLD/C.FSD doubleword loads and stores.
type CDImm struct{ imm }

func NewCDImm(v int64) (CDImm, error) { i, err := newImm(shapeCD, v); return CDImm{i}, err }
func cDImmFromWord(word uint16) CDImm { return CDImm{immFromWord(shapeCD, uint64(word))} }

// CWImm is the 7-bit unsigned, 4-byte-aligned offset used by C.LW/C.SW
// word loads and stores.
type CWImm struct{ imm }

func NewCWImm(v int64) (CWImm, error) { i, err := newImm(shapeCW, v); return CWImm{i}, err }
func cWImmFromWord(word uint16) CWImm { return CWImm{immFromWord(shapeCW, uint64(word))} }

// CIImm is the 6-bit signed immediate used by C.ADDI/C.ADDIW/C.LI/C.LUI/
// C.ANDI.
type CIImm struct{ imm }

func NewCIImm(v int64) (CIImm, error) { i, err := newImm(shapeCI, v); return CIImm{i}, err }
func cIImmFromWord(word uint16) CIImm { return CIImm{immFromWord(shapeCI, uint64(word))} }

// CBImm is the 9-bit signed, 2-byte-aligned offset used by C.BEQZ/C.BNEZ.
type CBImm struct{ imm }

func NewCBImm(v int64) (CBImm, error) { i, err := newImm(shapeCB, v); return CBImm{i}, err }
func cBImmFromWord(word uint16) CBImm { return CBImm{immFromWord(shapeCB, uint64(word))} }

// CShamt is the 6-bit unsigned shift amount used by C.SRLI/C.SRAI/C.SLLI.
type CShamt struct{ imm }

func NewCShamt(v int64) (CShamt, error) { i, err := newImm(shapeCShmt, v); return CShamt{i}, err }
func cShamtFromWord(word uint16) CShamt { return CShamt{immFromWord(shapeCShmt, uint64(word))} }

// CJImm is the 12-bit signed, 2-byte-aligned offset used by C.J.
type CJImm struct{ imm }

func NewCJImm(v int64) (CJImm, error) { i, err := newImm(shapeCJ, v); return CJImm{i}, err }
func cJImmFromWord(word uint16) CJImm { return CJImm{immFromWord(shapeCJ, uint64(word))} }

// CDSPImm is the 9-bit unsigned, 8-byte-aligned sp-relative offset used by
// C.LDSP/C.FLDSP.
type CDSPImm struct{ imm }

func NewCDSPImm(v int64) (CDSPImm, error) { i, err := newImm(shapeCDSP, v); return CDSPImm{i}, err }
func cDSPImmFromWord(word uint16) CDSPImm { return CDSPImm{immFromWord(shapeCDSP, uint64(word))} }

// CWSPImm is the 8-bit unsigned, 4-byte-aligned sp-relative offset used by
// C.LWSP.
type CWSPImm struct{ imm }

func NewCWSPImm(v int64) (CWSPImm, error) { i, err := newImm(shapeCWSP, v); return CWSPImm{i}, err }
func cWSPImmFromWord(word uint16) CWSPImm { return CWSPImm{immFromWord(shapeCWSP, uint64(word))} }

// CSDSPImm is the 9-bit unsigned, 8-byte-aligned sp-relative offset used by
// C.SDSP/C.FSDSP.
type CSDSPImm struct{ imm }

func NewCSDSPImm(v int64) (CSDSPImm, error) { i, err := newImm(shapeCSDSP, v); return CSDSPImm{i}, err }
func cSDSPImmFromWord(word uint16) CSDSPImm { return CSDSPImm{immFromWord(shapeCSDSP, uint64(word))} }

// CSWSPImm is the 8-bit unsigned, 4-byte-aligned sp-relative offset used by
// C.SWSP.
type CSWSPImm struct{ imm }

func NewCSWSPImm(v int64) (CSWSPImm, error) { i, err := newImm(shapeCSWSP, v); return CSWSPImm{i}, err }
func cSWSPImmFromWord(word uint16) CSWSPImm { return CSWSPImm{immFromWord(shapeCSWSP, uint64(word))} }

// C16SPImm is the 10-bit signed, 16-byte-aligned immediate used by
// C.ADDI16SP.
type C16SPImm struct{ imm }

func NewC16SPImm(v int64) (C16SPImm, error) { i, err := newImm(shapeC16SP, v); return C16SPImm{i}, err }
func c16SPImmFromWord(word uint16) C16SPImm { return C16SPImm{immFromWord(shapeC16SP, uint64(word))} }
