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

import "testing"

func TestEncodeSeedVariants(t *testing.T) {
	tests := []struct {
		desc  string
		instr Instr
		want  uint32
	}{
		{
			desc: "addi t0,t1,1024",
			instr: IType{Op: "addi", Rd: T0, Rs1: T1, Imm: mustIImm(t, 1024)},
			want:  0x40030293,
		},
		{
			desc:  "lui s2,400",
			instr: UType{Op: "lui", Rd: S2, Imm: mustUImm(t, 400)},
			want:  0x00190937,
		},
		{
			desc:  "lr.w.aq a0,a1",
			instr: LrType{Rd: A0, Rs1: A1, Wide: false, Aq: true, Rl: false},
			want:  0x1405A52F,
		},
		{
			desc:  "ecall",
			instr: EcallType{},
			want:  0x00000073,
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := tt.instr.Encode(); got != tt.want {
				t.Errorf("Encode() = %#08x, want %#08x", got, tt.want)
			}
		})
	}
}

func mustIImm(t *testing.T, v int64) IImm {
	t.Helper()
	i, err := NewIImm(v)
	if err != nil {
		t.Fatalf("NewIImm(%d): %v", v, err)
	}
	return i
}

func mustUImm(t *testing.T, v int64) UImm {
	t.Helper()
	i, err := NewUImm(v)
	if err != nil {
		t.Fatalf("NewUImm(%d): %v", v, err)
	}
	return i
}

func TestEncodeRTypeMandUExtensions(t *testing.T) {
	tests := []struct {
		desc string
		op   Mnemonic
	}{
		{desc: "add", op: "add"},
		{desc: "sub", op: "sub"},
		{desc: "mul", op: "mul"},
		{desc: "divu", op: "divu"},
		{desc: "remw", op: "remw"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			instr := RType{Op: tt.op, Rd: A0, Rs1: A1, Rs2: A2}
			word := instr.Encode()
			back, err := Decode(word)
			if err != nil {
				t.Fatalf("Decode(%#08x) error: %v", word, err)
			}
			if back.(RType).Op != tt.op {
				t.Errorf("round trip mnemonic = %s, want %s", back.(RType).Op, tt.op)
			}
		})
	}
}
