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

// Reg is one of the 32 integer registers, x0..x31.
//
// riscv-spec-v2.2.pdf; Table 20.1 (ABI names); page 109.
type Reg uint8

const (
	Zero Reg = iota
	RA
	SP
	GP
	TP
	T0
	T1
	T2
	S0 // also known as FP
	S1
	A0
	A1
	A2
	A3
	A4
	A5
	A6
	A7
	S2
	S3
	S4
	S5
	S6
	S7
	S8
	S9
	S10
	S11
	T3
	T4
	T5
	T6
)

// FP is an alias for S0: both name integer register 8. S0 is the
// canonical spelling used by String and the printer.
const FP = S0

var regNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

var regByName = func() map[string]Reg {
	m := make(map[string]Reg, 34)
	for i, n := range regNames {
		m[n] = Reg(i)
	}
	m["fp"] = S0
	return m
}()

// RegFromBits returns the integer register named by a 5-bit field value.
// bits must be in 0..=31; any other value indicates an internal bug, not
// caller-provided input (instruction-word register fields are always 5
// bits wide), so it panics rather than returning an error.
func RegFromBits(bits uint32) Reg {
	if bits > 31 {
		panic(fmt.Sprintf("register bits out of range: %d", bits))
	}
	return Reg(bits)
}

// Bits returns r's 5-bit encoding.
func (r Reg) Bits() uint32 { return uint32(r) }

// String returns r's canonical ABI name (e.g. "s0", never "fp").
func (r Reg) String() string {
	if int(r) >= len(regNames) {
		return fmt.Sprintf("x%d", uint8(r))
	}
	return regNames[r]
}

// RegFromName looks up an integer register by its ABI name. "fp" is
// accepted as an alias for "s0".
func RegFromName(name string) (Reg, error) {
	if r, ok := regByName[name]; ok {
		return r, nil
	}
	return 0, &UnknownRegisterError{Text: name}
}

// FReg is one of the 32 floating-point registers, f0..f31.
type FReg uint8

const (
	FT0 FReg = iota
	FT1
	FT2
	FT3
	FT4
	FT5
	FT6
	FT7
	FS0
	FS1
	FA0
	FA1
	FA2
	FA3
	FA4
	FA5
	FA6
	FA7
	FS2
	FS3
	FS4
	FS5
	FS6
	FS7
	FS8
	FS9
	FS10
	FS11
	FT8
	FT9
	FT10
	FT11
)

var fregNames = [32]string{
	"ft0", "ft1", "ft2", "ft3", "ft4", "ft5", "ft6", "ft7",
	"fs0", "fs1", "fa0", "fa1", "fa2", "fa3", "fa4", "fa5",
	"fa6", "fa7", "fs2", "fs3", "fs4", "fs5", "fs6", "fs7",
	"fs8", "fs9", "fs10", "fs11", "ft8", "ft9", "ft10", "ft11",
}

var fregByName = func() map[string]FReg {
	m := make(map[string]FReg, 32)
	for i, n := range fregNames {
		m[n] = FReg(i)
	}
	return m
}()

// FRegFromBits returns the float register named by a 5-bit field value.
func FRegFromBits(bits uint32) FReg {
	if bits > 31 {
		panic(fmt.Sprintf("float register bits out of range: %d", bits))
	}
	return FReg(bits)
}

// Bits returns r's 5-bit encoding.
func (r FReg) Bits() uint32 { return uint32(r) }

func (r FReg) String() string {
	if int(r) >= len(fregNames) {
		return fmt.Sprintf("f%d", uint8(r))
	}
	return fregNames[r]
}

// FRegFromName looks up a float register by its ABI name.
func FRegFromName(name string) (FReg, error) {
	if r, ok := fregByName[name]; ok {
		return r, nil
	}
	return 0, &UnknownRegisterError{Text: name}
}

// CReg is one of the 8 integer registers reachable from a compressed
// instruction's 3-bit register field: x8..x15 (s0, s1, a0..a5).
type CReg uint8

const (
	CS0 CReg = iota
	CS1
	CA0
	CA1
	CA2
	CA3
	CA4
	CA5
)

// cRegOffset is added to a compressed 3-bit register index to reach the
// corresponding full 5-bit integer register index (x8..x15).
const cRegOffset = 8

var cregNames = [8]string{"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5"}

var cregByName = func() map[string]CReg {
	m := make(map[string]CReg, 9)
	for i, n := range cregNames {
		m[n] = CReg(i)
	}
	m["fp"] = CS0
	return m
}()

// CRegFromBits returns the compressed integer register named by a 3-bit
// field value. bits must be in 0..=7.
func CRegFromBits(bits uint16) CReg {
	if bits > 7 {
		panic(fmt.Sprintf("compressed register bits out of range: %d", bits))
	}
	return CReg(bits)
}

// Bits returns r's 3-bit encoding.
func (r CReg) Bits() uint32 { return uint32(r) }

// Expand widens a compressed register to its full integer register.
func (r CReg) Expand() Reg { return Reg(uint8(r) + cRegOffset) }

func (r CReg) String() string {
	if int(r) >= len(cregNames) {
		return fmt.Sprintf("x%d", uint8(r)+cRegOffset)
	}
	return cregNames[r]
}

// CRegFromName looks up a compressed integer register by ABI name.
func CRegFromName(name string) (CReg, error) {
	if r, ok := cregByName[name]; ok {
		return r, nil
	}
	return 0, &UnknownRegisterError{Text: name}
}

// CFReg is one of the 8 float registers reachable from a compressed
// instruction's 3-bit register field: f8..f15 (fs0, fs1, fa0..fa5).
type CFReg uint8

const (
	CFS0 CFReg = iota
	CFS1
	CFA0
	CFA1
	CFA2
	CFA3
	CFA4
	CFA5
)

var cfregNames = [8]string{"fs0", "fs1", "fa0", "fa1", "fa2", "fa3", "fa4", "fa5"}

var cfregByName = func() map[string]CFReg {
	m := make(map[string]CFReg, 8)
	for i, n := range cfregNames {
		m[n] = CFReg(i)
	}
	return m
}()

// CFRegFromBits returns the compressed float register named by a 3-bit
// field value. bits must be in 0..=7.
func CFRegFromBits(bits uint16) CFReg {
	if bits > 7 {
		panic(fmt.Sprintf("compressed float register bits out of range: %d", bits))
	}
	return CFReg(bits)
}

// Bits returns r's 3-bit encoding.
func (r CFReg) Bits() uint32 { return uint32(r) }

// Expand widens a compressed float register to its full float register.
func (r CFReg) Expand() FReg { return FReg(uint8(r) + cRegOffset) }

func (r CFReg) String() string {
	if int(r) >= len(cfregNames) {
		return fmt.Sprintf("f%d", uint8(r)+cRegOffset)
	}
	return cfregNames[r]
}

// CFRegFromName looks up a compressed float register by ABI name.
func CFRegFromName(name string) (CFReg, error) {
	if r, ok := cfregByName[name]; ok {
		return r, nil
	}
	return 0, &UnknownRegisterError{Text: name}
}

// RM is a floating-point rounding mode, encoded in the 3-bit rm field of
// FP instructions. Values 5 and 6 are reserved and never constructed.
type RM uint8

const (
	RNE RM = 0 // round to nearest, ties to even
	RTZ RM = 1 // round towards zero
	RDN RM = 2 // round down (towards -inf)
	RUP RM = 3 // round up (towards +inf)
	RMM RM = 4 // round to nearest, ties to max magnitude
	DYN RM = 7 // dynamic: take rounding mode from the frm CSR
)

var rmNames = map[RM]string{
	RNE: "rne",
	RTZ: "rtz",
	RDN: "rdn",
	RUP: "rup",
	RMM: "rmm",
	DYN: "dyn",
}

var rmByName = map[string]RM{
	"rne": RNE,
	"rtz": RTZ,
	"rdn": RDN,
	"rup": RUP,
	"rmm": RMM,
	"dyn": DYN,
}

// RMFromBits decodes a 3-bit rm field. Bits 5 and 6 are reserved.
func RMFromBits(bits uint32) (RM, error) {
	switch bits {
	case 0, 1, 2, 3, 4, 7:
		return RM(bits), nil
	default:
		return 0, &ReservedEncodingError{Detail: fmt.Sprintf("reserved rounding mode %#o", bits)}
	}
}

// Bits returns rm's 3-bit encoding.
func (rm RM) Bits() uint32 { return uint32(rm) }

func (rm RM) String() string { return rmNames[rm] }

// RMFromName looks up a rounding mode by its suffix spelling (without the
// leading dot), e.g. "rne", "dyn".
func RMFromName(name string) (RM, error) {
	if rm, ok := rmByName[name]; ok {
		return rm, nil
	}
	return 0, &BadSuffixError{Text: name}
}
