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

func TestIImmRange(t *testing.T) {
	tests := []struct {
		desc    string
		v       int64
		wantErr bool
	}{
		{desc: "zero", v: 0},
		{desc: "max", v: 2047},
		{desc: "min", v: -2048},
		{desc: "one over max", v: 2048, wantErr: true},
		{desc: "one under min", v: -2049, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := NewIImm(tt.v)
			if tt.wantErr && err == nil {
				t.Fatalf("NewIImm(%d) should have errored", tt.v)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("NewIImm(%d) error: %v", tt.v, err)
			}
		})
	}
}

func TestJImmAlignment(t *testing.T) {
	if _, err := NewJImm(3); err == nil {
		t.Error("NewJImm(3) should have errored: not 2-byte aligned")
	}
	if _, err := NewJImm(72); err != nil {
		t.Errorf("NewJImm(72) error: %v", err)
	}
}

func TestBImmAlignment(t *testing.T) {
	if _, err := NewBImm(1); err == nil {
		t.Error("NewBImm(1) should have errored: not 2-byte aligned")
	}
	v, err := NewBImm(72)
	if err != nil {
		t.Fatalf("NewBImm(72) error: %v", err)
	}
	if v.Value() != 72 {
		t.Errorf("Value() = %d, want 72", v.Value())
	}
}

// TestImmRoundTrip packs each immediate's value into a word and re-extracts
// it through the same shape, covering every base-ISA branch/jump/upper/shift
// shape and a sample of the signed and aligned compressed shapes.
func TestImmRoundTrip(t *testing.T) {
	tests := []struct {
		desc string
		s    *shape
		v    int64
	}{
		{desc: "I", s: shapeI, v: 1024},
		{desc: "I negative", s: shapeI, v: -1},
		{desc: "S", s: shapeS, v: -2048},
		{desc: "U", s: shapeU, v: 400},
		{desc: "J", s: shapeJ, v: 72},
		{desc: "J negative", s: shapeJ, v: -1048576},
		{desc: "B", s: shapeB, v: 72},
		{desc: "B negative", s: shapeB, v: -4096},
		{desc: "Shamt", s: shapeShamt, v: 63},
		{desc: "ShamtW", s: shapeShamtW, v: 31},
		{desc: "CWide", s: shapeCWide, v: 280},
		{desc: "CD", s: shapeCD, v: 248},
		{desc: "CW", s: shapeCW, v: 124},
		{desc: "CI", s: shapeCI, v: -32},
		{desc: "CB", s: shapeCB, v: -256},
		{desc: "CJ", s: shapeCJ, v: -2048},
		{desc: "C16SP", s: shapeC16SP, v: -512},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			word := tt.s.pack(tt.v)
			got := tt.s.extract(word)
			if got != tt.v {
				t.Errorf("round trip: packed %#x, extracted %d, want %d", word, got, tt.v)
			}
		})
	}
}

func TestCWideImmC_ADDI4SPN(t *testing.T) {
	// c.addi4spn a0,280 -> word 0x0A28 (seed scenario 6).
	imm := cWideImmFromWord(0x0A28)
	if imm.Value() != 280 {
		t.Errorf("cWideImmFromWord(0x0A28) = %d, want 280", imm.Value())
	}
}
