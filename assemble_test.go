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

func TestAssembleSeedText(t *testing.T) {
	tests := []struct {
		desc string
		text string
		want uint32
	}{
		{desc: "bne", text: "bne a4, a5, 72", want: 0x04F71463},
		{desc: "addi", text: "addi t0, t1, 1024", want: 0x40030293},
		{desc: "lr.w.aq", text: "lr.w.aq a0,a1", want: 0x1405A52F},
		{desc: "lui", text: "lui s2, 400", want: 0x00190937},
		{desc: "ecall", text: "ecall", want: 0x00000073},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			instr, err := Assemble(tt.text)
			if err != nil {
				t.Fatalf("Assemble(%q) error: %v", tt.text, err)
			}
			if got := instr.Encode(); got != tt.want {
				t.Errorf("Assemble(%q).Encode() = %#08x, want %#08x", tt.text, got, tt.want)
			}
		})
	}
}

// TestAssembleSPRelativeCompressed locks in the fix for the compressed
// sp-relative load/store mnemonics, whose own String() output includes an
// "(sp)" suffix on the second operand that the assembler must parse back
// out rather than double-appending or feeding whole to the integer parser.
func TestAssembleSPRelativeCompressed(t *testing.T) {
	tests := []string{
		"c.lwsp a0,4(sp)",
		"c.ldsp a0,24(sp)",
		"c.swsp a0,4(sp)",
		"c.sdsp a0,24(sp)",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			instr, err := Assemble(text)
			if err != nil {
				t.Fatalf("Assemble(%q) error: %v", text, err)
			}
			if got := instr.String(); got != text {
				t.Errorf("Assemble(%q).String() = %q, want %q", text, got, text)
			}
		})
	}
}

// TestAssembleSPRelativeFP covers the two floating-point sp-relative forms,
// c.fldsp and c.fsdsp, whose assembler cases had the same "(sp)"-parsing bug.
func TestAssembleSPRelativeFP(t *testing.T) {
	tests := []string{
		"c.fldsp fa0,24(sp)",
		"c.fsdsp fa0,24(sp)",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			instr, err := Assemble(text)
			if err != nil {
				t.Fatalf("Assemble(%q) error: %v", text, err)
			}
			if got := instr.String(); got != text {
				t.Errorf("Assemble(%q).String() = %q, want %q", text, got, text)
			}
		})
	}
}

func TestAssembleAddi4spn(t *testing.T) {
	instr, err := Assemble("c.addi4spn a0, 280")
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}
	if got, want := instr.Encode(), uint32(0x0A28); got != want {
		t.Errorf("Encode() = %#04x, want %#04x", got, want)
	}
}

func TestAssembleUnknownMnemonic(t *testing.T) {
	if _, err := Assemble("frobnicate a0, a1"); err == nil {
		t.Error("Assemble(\"frobnicate a0, a1\") should have errored")
	}
}

func TestAssembleWrongOperandCount(t *testing.T) {
	if _, err := Assemble("add a0, a1"); err == nil {
		t.Error("Assemble(\"add a0, a1\") should have errored: add needs 3 operands")
	}
}

func TestAssembleImmediateOutOfRange(t *testing.T) {
	if _, err := Assemble("addi t0, t1, 4096"); err == nil {
		t.Error("Assemble with out-of-range I-immediate should have errored")
	}
}
