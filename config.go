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

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Profile lists which optional extensions rvtool's disasm/asm/fuzz/
// exhaustive subcommands are allowed to touch. The base integer ISA
// (RV64I), Zicsr and Zifencei are always on; M/A/F/D/C can each be turned
// off to restrict a session to a narrower target.
type Profile struct {
	M bool `toml:"m"`
	A bool `toml:"a"`
	F bool `toml:"f"`
	D bool `toml:"d"`
	C bool `toml:"c"`
}

// DefaultProfile enables every extension this codec implements.
func DefaultProfile() Profile {
	return Profile{M: true, A: true, F: true, D: true, C: true}
}

// LoadProfile reads a Profile from a TOML file. A missing or empty path
// yields DefaultProfile.
func LoadProfile(path string) (Profile, error) {
	if path == "" {
		return DefaultProfile(), nil
	}
	var p Profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Profile{}, fmt.Errorf("loading profile %s: %w", path, err)
	}
	return p, nil
}

// Allows reports whether i's extension is enabled under p. Base-ISA
// mnemonics (anything not recognized as M/A/F/D/C) are always allowed.
func (p Profile) Allows(i Instr) bool {
	switch i.(type) {
	case RType:
		if _, isM := mExtension[i.(RType).Op]; isM {
			return p.M
		}
		return true
	case LrType, ScType, AmoType:
		return p.A
	case FCvtFFType:
		// converts between S and D, so both formats must be enabled.
		return p.F && p.D
	case FRType, FSqrtType, FSgnjType, FMinMaxType, FCmpType, FClassType,
		FMvXType, FMvWType, FCvtToIntType, FCvtFromIntType,
		FLoadType, FStoreType, FMaddType:
		return p.fpAllowsFmt(i)
	case CIWType, CLType, CFLType, CSType, CFSType, CIType, CLuiType,
		CAddi16SpType, CShiftType, CAndiType, CArithType, CJType, CBranchType,
		CSlliType, CFLoadSPType, CLoadSPType, CJrType, CMvType, CEbreakType,
		CJalrType, CAddType, CFStoreSPType, CStoreSPType:
		return p.C
	default:
		return true
	}
}

// fpAllowsFmt lets single-precision-only instructions pass under F without
// requiring D, and vice versa: the F and D extensions are independently
// toggleable even though this codec shares their shapes.
func (p Profile) fpAllowsFmt(i Instr) bool {
	fmt_, ok := fpFormatOf(i)
	if !ok {
		return p.F
	}
	if fmt_ == FmtD {
		return p.D
	}
	return p.F
}

func fpFormatOf(i Instr) (FFmt, bool) {
	switch v := i.(type) {
	case FRType:
		return v.Fmt, true
	case FSqrtType:
		return v.Fmt, true
	case FSgnjType:
		return v.Fmt, true
	case FMinMaxType:
		return v.Fmt, true
	case FCmpType:
		return v.Fmt, true
	case FClassType:
		return v.Fmt, true
	case FMvXType:
		return v.Fmt, true
	case FMvWType:
		return v.Fmt, true
	case FCvtToIntType:
		return v.Fmt, true
	case FCvtFromIntType:
		return v.Fmt, true
	case FMaddType:
		return v.Fmt, true
	case FLoadType:
		if v.Wide {
			return FmtD, true
		}
		return FmtS, true
	case FStoreType:
		if v.Wide {
			return FmtD, true
		}
		return FmtS, true
	default:
		return 0, false
	}
}

// mExtension is the set of RType mnemonics contributed by the M extension,
// as opposed to the RV64I base.
var mExtension = map[Mnemonic]struct{}{
	"mul": {}, "mulh": {}, "mulhsu": {}, "mulhu": {}, "div": {}, "divu": {}, "rem": {}, "remu": {},
	"mulw": {}, "divw": {}, "divuw": {}, "remw": {}, "remuw": {},
}
