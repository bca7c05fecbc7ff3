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

// FFmt is a floating-point format: single (F extension) or double (D
// extension), carried in OP-FP's 2-bit fmt field.
type FFmt uint8

const (
	FmtS FFmt = 0
	FmtD FFmt = 1
)

func fFmtFromBits(bits uint32) (FFmt, error) {
	switch bits {
	case 0:
		return FmtS, nil
	case 1:
		return FmtD, nil
	default:
		return 0, &ReservedEncodingError{Detail: "reserved fp fmt (Q/H not supported)"}
	}
}

func (f FFmt) Bits() uint32 { return uint32(f) }

func (f FFmt) String() string {
	if f == FmtD {
		return "d"
	}
	return "s"
}

// IntKind is the integer operand width/signedness selected by FCVT's rs2
// field: 32- or 64-bit, signed or unsigned.
type IntKind uint8

const (
	IntW  IntKind = 0
	IntWU IntKind = 1
	IntL  IntKind = 2
	IntLU IntKind = 3
)

var intKindNames = [4]string{"w", "wu", "l", "lu"}

func intKindFromBits(bits uint32) (IntKind, error) {
	if bits > 3 {
		return 0, &ReservedEncodingError{Detail: "reserved fcvt int kind"}
	}
	return IntKind(bits), nil
}

func (k IntKind) Bits() uint32  { return uint32(k) }
func (k IntKind) String() string { return intKindNames[k] }

// OP-FP funct5 values (word bits 31:27). riscv-spec-v2.2.pdf Table 11.1-11.5.
const (
	f5Fadd     = 0b00000
	f5Fsub     = 0b00001
	f5Fmul     = 0b00010
	f5Fdiv     = 0b00011
	f5Fsgnj    = 0b00100
	f5Fminmax  = 0b00101
	f5FcvtFF   = 0b01000
	f5Fsqrt    = 0b01011
	f5Fcmp     = 0b10100
	f5FcvtToI  = 0b11000
	f5FcvtFmI  = 0b11010
	f5FmvXClass = 0b11100
	f5FmvWX    = 0b11110
)

func rmSuffix(rm RM) string {
	if rm == DYN {
		return ""
	}
	return "." + rm.String()
}

// FRType is the three-register-plus-rounding-mode FP arithmetic shape:
// FADD, FSUB, FMUL, FDIV.
type FRType struct {
	Op           Mnemonic
	Fmt          FFmt
	Rd, Rs1, Rs2 FReg
	Rm           RM
}

func (i FRType) Width() int { return 4 }

func (i FRType) Encode() uint32 {
	f5 := map[Mnemonic]uint32{"fadd": f5Fadd, "fsub": f5Fsub, "fmul": f5Fmul, "fdiv": f5Fdiv}[i.Op]
	return opOpFp | i.Rd.Bits()<<7 | i.Rm.Bits()<<12 | i.Rs1.Bits()<<15 | i.Rs2.Bits()<<20 |
		i.Fmt.Bits()<<25 | f5<<27
}

func (i FRType) String() string {
	return fmt.Sprintf("%s.%s%s %s,%s,%s", i.Op, i.Fmt, rmSuffix(i.Rm), i.Rd, i.Rs1, i.Rs2)
}

// FSqrtType is FSQRT.S/FSQRT.D: rs2 fixed to 0.
type FSqrtType struct {
	Fmt     FFmt
	Rd, Rs1 FReg
	Rm      RM
}

func (i FSqrtType) Width() int { return 4 }

func (i FSqrtType) Encode() uint32 {
	return opOpFp | i.Rd.Bits()<<7 | i.Rm.Bits()<<12 | i.Rs1.Bits()<<15 | i.Fmt.Bits()<<25 | f5Fsqrt<<27
}

func (i FSqrtType) String() string {
	return fmt.Sprintf("fsqrt.%s%s %s,%s", i.Fmt, rmSuffix(i.Rm), i.Rd, i.Rs1)
}

// FSgnjType is FSGNJ/FSGNJN/FSGNJX: a bitwise sign-manipulation op, no
// rounding mode.
type FSgnjType struct {
	Op           Mnemonic
	Fmt          FFmt
	Rd, Rs1, Rs2 FReg
}

func (i FSgnjType) Width() int { return 4 }

func (i FSgnjType) Encode() uint32 {
	f3 := map[Mnemonic]uint32{"fsgnj": 0, "fsgnjn": 1, "fsgnjx": 2}[i.Op]
	return opOpFp | i.Rd.Bits()<<7 | f3<<12 | i.Rs1.Bits()<<15 | i.Rs2.Bits()<<20 | i.Fmt.Bits()<<25 | f5Fsgnj<<27
}

func (i FSgnjType) String() string {
	return fmt.Sprintf("%s.%s %s,%s,%s", i.Op, i.Fmt, i.Rd, i.Rs1, i.Rs2)
}

// FMinMaxType is FMIN/FMAX.
type FMinMaxType struct {
	Op           Mnemonic
	Fmt          FFmt
	Rd, Rs1, Rs2 FReg
}

func (i FMinMaxType) Width() int { return 4 }

func (i FMinMaxType) Encode() uint32 {
	f3 := map[Mnemonic]uint32{"fmin": 0, "fmax": 1}[i.Op]
	return opOpFp | i.Rd.Bits()<<7 | f3<<12 | i.Rs1.Bits()<<15 | i.Rs2.Bits()<<20 | i.Fmt.Bits()<<25 | f5Fminmax<<27
}

func (i FMinMaxType) String() string {
	return fmt.Sprintf("%s.%s %s,%s,%s", i.Op, i.Fmt, i.Rd, i.Rs1, i.Rs2)
}

// FCmpType is FEQ/FLT/FLE: comparison result goes to an integer register.
type FCmpType struct {
	Op       Mnemonic
	Fmt      FFmt
	Rd       Reg
	Rs1, Rs2 FReg
}

func (i FCmpType) Width() int { return 4 }

func (i FCmpType) Encode() uint32 {
	f3 := map[Mnemonic]uint32{"fle": 0, "flt": 1, "feq": 2}[i.Op]
	return opOpFp | i.Rd.Bits()<<7 | f3<<12 | i.Rs1.Bits()<<15 | i.Rs2.Bits()<<20 | i.Fmt.Bits()<<25 | f5Fcmp<<27
}

func (i FCmpType) String() string {
	return fmt.Sprintf("%s.%s %s,%s,%s", i.Op, i.Fmt, i.Rd, i.Rs1, i.Rs2)
}

// FClassType is FCLASS: classifies a float's value into the 10-bit mask
// defined by riscv-spec-v2.2.pdf Table 11.5, result in an integer register.
type FClassType struct {
	Fmt FFmt
	Rd  Reg
	Rs1 FReg
}

func (i FClassType) Width() int { return 4 }

func (i FClassType) Encode() uint32 {
	return opOpFp | i.Rd.Bits()<<7 | 1<<12 | i.Rs1.Bits()<<15 | i.Fmt.Bits()<<25 | f5FmvXClass<<27
}

func (i FClassType) String() string {
	return fmt.Sprintf("fclass.%s %s,%s", i.Fmt, i.Rd, i.Rs1)
}

// FMvXType is FMV.X.W/FMV.X.D: reinterprets a float register's bits as an
// integer, with no conversion.
type FMvXType struct {
	Fmt FFmt
	Rd  Reg
	Rs1 FReg
}

func (i FMvXType) Width() int { return 4 }

func (i FMvXType) Encode() uint32 {
	return opOpFp | i.Rd.Bits()<<7 | i.Rs1.Bits()<<15 | i.Fmt.Bits()<<25 | f5FmvXClass<<27
}

func (i FMvXType) String() string {
	return fmt.Sprintf("fmv.x.%s %s,%s", i.dstSuffix(), i.Rd, i.Rs1)
}

func (i FMvXType) dstSuffix() string {
	if i.Fmt == FmtD {
		return "d"
	}
	return "w"
}

// FMvWType is FMV.W.X/FMV.D.X: the inverse of FMvXType.
type FMvWType struct {
	Fmt FFmt
	Rd  FReg
	Rs1 Reg
}

func (i FMvWType) Width() int { return 4 }

func (i FMvWType) Encode() uint32 {
	return opOpFp | i.Rd.Bits()<<7 | i.Rs1.Bits()<<15 | i.Fmt.Bits()<<25 | f5FmvWX<<27
}

func (i FMvWType) String() string {
	kind := "w"
	if i.Fmt == FmtD {
		kind = "d"
	}
	return fmt.Sprintf("fmv.%s.x %s,%s", kind, i.Rd, i.Rs1)
}

// FCvtFFType is FCVT.S.D/FCVT.D.S: float-to-float conversion. rs2's 5-bit
// field names the source format, fmt names the destination.
type FCvtFFType struct {
	DstFmt, SrcFmt FFmt
	Rd, Rs1        FReg
	Rm             RM
}

func (i FCvtFFType) Width() int { return 4 }

func (i FCvtFFType) Encode() uint32 {
	return opOpFp | i.Rd.Bits()<<7 | i.Rm.Bits()<<12 | i.Rs1.Bits()<<15 | i.SrcFmt.Bits()<<20 |
		i.DstFmt.Bits()<<25 | f5FcvtFF<<27
}

func (i FCvtFFType) String() string {
	return fmt.Sprintf("fcvt.%s.%s%s %s,%s", i.DstFmt, i.SrcFmt, rmSuffix(i.Rm), i.Rd, i.Rs1)
}

// FCvtToIntType is FCVT.W/WU/L/LU.S/D: float-to-integer conversion.
type FCvtToIntType struct {
	Dst IntKind
	Fmt FFmt
	Rd  Reg
	Rs1 FReg
	Rm  RM
}

func (i FCvtToIntType) Width() int { return 4 }

func (i FCvtToIntType) Encode() uint32 {
	return opOpFp | i.Rd.Bits()<<7 | i.Rm.Bits()<<12 | i.Rs1.Bits()<<15 | i.Dst.Bits()<<20 |
		i.Fmt.Bits()<<25 | f5FcvtToI<<27
}

func (i FCvtToIntType) String() string {
	return fmt.Sprintf("fcvt.%s.%s%s %s,%s", i.Dst, i.Fmt, rmSuffix(i.Rm), i.Rd, i.Rs1)
}

// FCvtFromIntType is FCVT.S/D.W/WU/L/LU: integer-to-float conversion.
type FCvtFromIntType struct {
	Fmt FFmt
	Src IntKind
	Rd  FReg
	Rs1 Reg
	Rm  RM
}

func (i FCvtFromIntType) Width() int { return 4 }

func (i FCvtFromIntType) Encode() uint32 {
	return opOpFp | i.Rd.Bits()<<7 | i.Rm.Bits()<<12 | i.Rs1.Bits()<<15 | i.Src.Bits()<<20 |
		i.Fmt.Bits()<<25 | f5FcvtFmI<<27
}

func (i FCvtFromIntType) String() string {
	return fmt.Sprintf("fcvt.%s.%s%s %s,%s", i.Fmt, i.Src, rmSuffix(i.Rm), i.Rd, i.Rs1)
}

// FLoadType is FLW/FLD: opcode LoadFp, funct3 selects width.
type FLoadType struct {
	Wide    bool
	Rd      FReg
	Rs1     Reg
	Imm     IImm
}

func (i FLoadType) Width() int { return 4 }

func (i FLoadType) Encode() uint32 {
	return opLoadFp | i.Rd.Bits()<<7 | amoWidthFunct3(i.Wide)<<12 | i.Rs1.Bits()<<15 | uint32(i.Imm.packed())
}

func (i FLoadType) String() string {
	op := "flw"
	if i.Wide {
		op = "fld"
	}
	return fmt.Sprintf("%s %s,%s(%s)", op, i.Rd, i.Imm, i.Rs1)
}

// FStoreType is FSW/FSD: opcode StoreFp, funct3 selects width.
type FStoreType struct {
	Wide bool
	Rs1  Reg
	Rs2  FReg
	Imm  SImm
}

func (i FStoreType) Width() int { return 4 }

func (i FStoreType) Encode() uint32 {
	return opStoreFp | amoWidthFunct3(i.Wide)<<12 | i.Rs1.Bits()<<15 | i.Rs2.Bits()<<20 | uint32(i.Imm.packed())
}

func (i FStoreType) String() string {
	op := "fsw"
	if i.Wide {
		op = "fsd"
	}
	return fmt.Sprintf("%s %s,%s(%s)", op, i.Rs2, i.Imm, i.Rs1)
}

// FMaddType is the R4-format fused multiply-add family: FMADD, FMSUB,
// FNMSUB, FNMADD, each in .s and .d widths.
type FMaddType struct {
	Op                Mnemonic
	Fmt               FFmt
	Rd, Rs1, Rs2, Rs3 FReg
	Rm                RM
}

var fmaddOpcodes = map[Mnemonic]uint32{
	"fmadd":  opMadd,
	"fmsub":  opMsub,
	"fnmsub": opNmsub,
	"fnmadd": opNmadd,
}

var fmaddOpcodeByKey = func() map[uint32]Mnemonic {
	m := make(map[uint32]Mnemonic, len(fmaddOpcodes))
	for mn, op := range fmaddOpcodes {
		m[op] = mn
	}
	return m
}()

func (i FMaddType) Width() int { return 4 }

func (i FMaddType) Encode() uint32 {
	return fmaddOpcodes[i.Op] | i.Rd.Bits()<<7 | i.Rm.Bits()<<12 | i.Rs1.Bits()<<15 | i.Rs2.Bits()<<20 |
		i.Fmt.Bits()<<25 | i.Rs3.Bits()<<27
}

func (i FMaddType) String() string {
	return fmt.Sprintf("%s.%s%s %s,%s,%s,%s", i.Op, i.Fmt, rmSuffix(i.Rm), i.Rd, i.Rs1, i.Rs2, i.Rs3)
}

func fmaddTypeFromWord(word uint32) (Instr, error) {
	mn, ok := fmaddOpcodeByKey[word&0x7f]
	if !ok {
		return nil, &ReservedEncodingError{Word: word, Detail: "unknown R4 opcode"}
	}
	fmt_, err := fFmtFromBits((word >> 25) & 0x3)
	if err != nil {
		return nil, err
	}
	rm, err := RMFromBits((word >> 12) & 0x7)
	if err != nil {
		return nil, err
	}
	return FMaddType{
		Op:  mn,
		Fmt: fmt_,
		Rd:  FRegFromBits((word >> 7) & 0x1f),
		Rs1: FRegFromBits((word >> 15) & 0x1f),
		Rs2: FRegFromBits((word >> 20) & 0x1f),
		Rs3: FRegFromBits((word >> 27) & 0x1f),
		Rm:  rm,
	}, nil
}

func fLoadTypeFromWord(word uint32) (Instr, error) {
	f3 := (word >> 12) & 0x7
	if f3 != 0b010 && f3 != 0b011 {
		return nil, &ReservedEncodingError{Word: word, Detail: "flw/fld funct3 must select w or d"}
	}
	return FLoadType{
		Wide: f3 == 0b011,
		Rd:   FRegFromBits((word >> 7) & 0x1f),
		Rs1:  RegFromBits((word >> 15) & 0x1f),
		Imm:  iImmFromWord(word),
	}, nil
}

func fStoreTypeFromWord(word uint32) (Instr, error) {
	f3 := (word >> 12) & 0x7
	if f3 != 0b010 && f3 != 0b011 {
		return nil, &ReservedEncodingError{Word: word, Detail: "fsw/fsd funct3 must select w or d"}
	}
	return FStoreType{
		Wide: f3 == 0b011,
		Rs1:  RegFromBits((word >> 15) & 0x1f),
		Rs2:  FRegFromBits((word >> 20) & 0x1f),
		Imm:  sImmFromWord(word),
	}, nil
}

func opFpFromWord(word uint32) (Instr, error) {
	f5 := (word >> 27) & 0x1f
	fmtBits := (word >> 25) & 0x3
	f3 := (word >> 12) & 0x7
	rd, rs1, rs2 := (word>>7)&0x1f, (word>>15)&0x1f, (word>>20)&0x1f

	switch f5 {
	case f5Fadd, f5Fsub, f5Fmul, f5Fdiv:
		fmt_, err := fFmtFromBits(fmtBits)
		if err != nil {
			return nil, err
		}
		rm, err := RMFromBits(f3)
		if err != nil {
			return nil, err
		}
		mn := map[uint32]Mnemonic{f5Fadd: "fadd", f5Fsub: "fsub", f5Fmul: "fmul", f5Fdiv: "fdiv"}[f5]
		return FRType{Op: mn, Fmt: fmt_, Rd: FRegFromBits(rd), Rs1: FRegFromBits(rs1), Rs2: FRegFromBits(rs2), Rm: rm}, nil

	case f5Fsqrt:
		fmt_, err := fFmtFromBits(fmtBits)
		if err != nil {
			return nil, err
		}
		if rs2 != 0 {
			return nil, &ReservedEncodingError{Word: word, Detail: "fsqrt requires rs2 == 0"}
		}
		rm, err := RMFromBits(f3)
		if err != nil {
			return nil, err
		}
		return FSqrtType{Fmt: fmt_, Rd: FRegFromBits(rd), Rs1: FRegFromBits(rs1), Rm: rm}, nil

	case f5Fsgnj:
		fmt_, err := fFmtFromBits(fmtBits)
		if err != nil {
			return nil, err
		}
		mn, ok := map[uint32]Mnemonic{0: "fsgnj", 1: "fsgnjn", 2: "fsgnjx"}[f3]
		if !ok {
			return nil, &ReservedEncodingError{Word: word, Detail: "unknown fsgnj funct3"}
		}
		return FSgnjType{Op: mn, Fmt: fmt_, Rd: FRegFromBits(rd), Rs1: FRegFromBits(rs1), Rs2: FRegFromBits(rs2)}, nil

	case f5Fminmax:
		fmt_, err := fFmtFromBits(fmtBits)
		if err != nil {
			return nil, err
		}
		mn, ok := map[uint32]Mnemonic{0: "fmin", 1: "fmax"}[f3]
		if !ok {
			return nil, &ReservedEncodingError{Word: word, Detail: "unknown fmin/fmax funct3"}
		}
		return FMinMaxType{Op: mn, Fmt: fmt_, Rd: FRegFromBits(rd), Rs1: FRegFromBits(rs1), Rs2: FRegFromBits(rs2)}, nil

	case f5Fcmp:
		fmt_, err := fFmtFromBits(fmtBits)
		if err != nil {
			return nil, err
		}
		mn, ok := map[uint32]Mnemonic{0: "fle", 1: "flt", 2: "feq"}[f3]
		if !ok {
			return nil, &ReservedEncodingError{Word: word, Detail: "unknown fcmp funct3"}
		}
		return FCmpType{Op: mn, Fmt: fmt_, Rd: RegFromBits(rd), Rs1: FRegFromBits(rs1), Rs2: FRegFromBits(rs2)}, nil

	case f5FmvXClass:
		fmt_, err := fFmtFromBits(fmtBits)
		if err != nil {
			return nil, err
		}
		if rs2 != 0 {
			return nil, &ReservedEncodingError{Word: word, Detail: "fmv.x/fclass require rs2 == 0"}
		}
		switch f3 {
		case 0:
			return FMvXType{Fmt: fmt_, Rd: RegFromBits(rd), Rs1: FRegFromBits(rs1)}, nil
		case 1:
			return FClassType{Fmt: fmt_, Rd: RegFromBits(rd), Rs1: FRegFromBits(rs1)}, nil
		default:
			return nil, &ReservedEncodingError{Word: word, Detail: "unknown fmv.x/fclass funct3"}
		}

	case f5FmvWX:
		fmt_, err := fFmtFromBits(fmtBits)
		if err != nil {
			return nil, err
		}
		if rs2 != 0 || f3 != 0 {
			return nil, &ReservedEncodingError{Word: word, Detail: "fmv.w.x/fmv.d.x require rs2 == 0, funct3 == 0"}
		}
		return FMvWType{Fmt: fmt_, Rd: FRegFromBits(rd), Rs1: RegFromBits(rs1)}, nil

	case f5FcvtFF:
		dst, err := fFmtFromBits(fmtBits)
		if err != nil {
			return nil, err
		}
		src, err := fFmtFromBits(rs2)
		if err != nil {
			return nil, err
		}
		rm, err := RMFromBits(f3)
		if err != nil {
			return nil, err
		}
		return FCvtFFType{DstFmt: dst, SrcFmt: src, Rd: FRegFromBits(rd), Rs1: FRegFromBits(rs1), Rm: rm}, nil

	case f5FcvtToI:
		fmt_, err := fFmtFromBits(fmtBits)
		if err != nil {
			return nil, err
		}
		dst, err := intKindFromBits(rs2)
		if err != nil {
			return nil, err
		}
		rm, err := RMFromBits(f3)
		if err != nil {
			return nil, err
		}
		return FCvtToIntType{Dst: dst, Fmt: fmt_, Rd: RegFromBits(rd), Rs1: FRegFromBits(rs1), Rm: rm}, nil

	case f5FcvtFmI:
		fmt_, err := fFmtFromBits(fmtBits)
		if err != nil {
			return nil, err
		}
		src, err := intKindFromBits(rs2)
		if err != nil {
			return nil, err
		}
		rm, err := RMFromBits(f3)
		if err != nil {
			return nil, err
		}
		return FCvtFromIntType{Fmt: fmt_, Src: src, Rd: FRegFromBits(rd), Rs1: RegFromBits(rs1), Rm: rm}, nil

	default:
		return nil, &ReservedEncodingError{Word: word, Detail: "unknown OP-FP funct5"}
	}
}
