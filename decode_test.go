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

// TestDecodeSeedWords covers the worked binary-to-text scenarios: each word
// must decode to the stated text, and BNE(a4,a5,72) for word 1 since its
// own funct3 field (0b001) is BNE's, not BEQ's, regardless of how the word
// was originally labeled.
func TestDecodeSeedWords(t *testing.T) {
	tests := []struct {
		desc string
		word uint32
		want string
	}{
		{desc: "bne a4,a5,72", word: 0x04F71463, want: "bne a4,a5,72"},
		{desc: "addi t0,t1,1024", word: 0x40030293, want: "addi t0,t1,1024"},
		{desc: "lr.w.aq a0,a1", word: 0x1405A52F, want: "lr.w.aq a0,a1"},
		{desc: "lui s2,400", word: 0x00190937, want: "lui s2,400"},
		{desc: "fmv.x.d a6,ft11", word: 0xE20F8853, want: "fmv.x.d a6,ft11"},
		{desc: "ecall", word: 0x00000073, want: "ecall"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			instr, err := Decode(tt.word)
			if err != nil {
				t.Fatalf("Decode(%#08x) error: %v", tt.word, err)
			}
			if got := instr.String(); got != tt.want {
				t.Errorf("Decode(%#08x).String() = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	words := []uint32{0x04F71463, 0x40030293, 0x1405A52F, 0x00190937, 0xE20F8853, 0x00000073}
	for _, w := range words {
		instr, err := Decode(w)
		if err != nil {
			t.Fatalf("Decode(%#08x) error: %v", w, err)
		}
		if got := instr.Encode(); got != w {
			t.Errorf("Decode(%#08x).Encode() = %#08x, want %#08x", w, got, w)
		}
	}
}

func TestDecodeFenceTso(t *testing.T) {
	// fence rw,rw with fm=0b1000 normalizes to fence.tso.
	word := uint32(0x8330000F)
	instr, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode(%#08x) error: %v", word, err)
	}
	if _, ok := instr.(FenceTsoType); !ok {
		t.Fatalf("Decode(%#08x) = %T, want FenceTsoType", word, instr)
	}
	if got, want := instr.String(), "fence.tso"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := instr.Encode(); got != word {
		t.Errorf("Encode() = %#08x, want %#08x", got, word)
	}
}

func TestDecodeShiftFunct6Overlap(t *testing.T) {
	// srai a0,a0,5: RV64's shift-immediate shape keys on funct6, not the
	// full funct7, since the 6-bit shamt's top bit would otherwise collide
	// with funct7's low bit.
	instr, err := Assemble("srai a0, a0, 5")
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}
	word := instr.Encode()
	back, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode(%#08x) error: %v", word, err)
	}
	if got, want := back.String(), "srai a0,a0,5"; got != want {
		t.Errorf("round trip = %q, want %q", got, want)
	}
}

func TestDecodeReservedEncodings(t *testing.T) {
	tests := []struct {
		desc string
		word uint32
	}{
		{desc: "unknown opcode", word: 0x0000007F},
		{desc: "jalr funct3 != 0", word: 0x00001067},
		{desc: "lr.w with rs2 != 0", word: 0x14C5A52F},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if _, err := Decode(tt.word); err == nil {
				t.Fatalf("Decode(%#08x) should have errored", tt.word)
			}
		})
	}
}

func TestDecodeCompressedAddi4spn(t *testing.T) {
	instr, err := DecodeCompressed(0x0A28)
	if err != nil {
		t.Fatalf("DecodeCompressed(0x0A28) error: %v", err)
	}
	if got, want := instr.String(), "c.addi4spn a0,280"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := instr.Encode(); got != 0x0A28 {
		t.Errorf("Encode() = %#04x, want 0x0a28", got)
	}
}

func TestDecodeCompressedReservedAddi4spnZeroImm(t *testing.T) {
	// quadrant 0, funct3 0, all-zero immediate: reserved, not c.addi4spn.
	if _, err := DecodeCompressed(0x0000); err == nil {
		t.Error("DecodeCompressed(0x0000) should have errored: reserved all-zero word")
	}
}

func TestDecodeCompressedHints(t *testing.T) {
	// c.addi x0, 0 is the canonical C.NOP hint: it decodes, it does not
	// error, and it reports itself as an ordinary c.addi.
	instr, err := DecodeCompressed(0x0001)
	if err != nil {
		t.Fatalf("DecodeCompressed(0x0001) error: %v", err)
	}
	if got, want := instr.String(), "c.addi zero,0"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
