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

func TestRegNames(t *testing.T) {
	tests := []struct {
		desc string
		r    Reg
		want string
	}{
		{desc: "zero", r: Zero, want: "zero"},
		{desc: "a0", r: A0, want: "a0"},
		{desc: "a4", r: A4, want: "a4"},
		{desc: "s0 not fp", r: S0, want: "s0"},
		{desc: "fp alias is s0", r: FP, want: "s0"},
		{desc: "t6", r: T6, want: "t6"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := tt.r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegFromName(t *testing.T) {
	tests := []struct {
		desc string
		name string
		want Reg
	}{
		{desc: "a0", name: "a0", want: A0},
		{desc: "fp aliases s0", name: "fp", want: S0},
		{desc: "sp", name: "sp", want: SP},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := RegFromName(tt.name)
			if err != nil {
				t.Fatalf("RegFromName(%q) error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("RegFromName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
	if _, err := RegFromName("bogus"); err == nil {
		t.Error("RegFromName(\"bogus\") should have errored")
	}
}

func TestCRegExpand(t *testing.T) {
	tests := []struct {
		desc string
		c    CReg
		want Reg
	}{
		{desc: "cs0 expands to s0", c: CS0, want: S0},
		{desc: "ca0 expands to a0", c: CA0, want: A0},
		{desc: "ca5 expands to a5", c: CA5, want: A5},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := tt.c.Expand(); got != tt.want {
				t.Errorf("Expand() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMFromBits(t *testing.T) {
	tests := []struct {
		desc    string
		bits    uint32
		want    RM
		wantErr bool
	}{
		{desc: "rne", bits: 0, want: RNE},
		{desc: "dyn", bits: 7, want: DYN},
		{desc: "reserved 5", bits: 5, wantErr: true},
		{desc: "reserved 6", bits: 6, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := RMFromBits(tt.bits)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("RMFromBits(%d) should have errored", tt.bits)
				}
				return
			}
			if err != nil {
				t.Fatalf("RMFromBits(%d) error: %v", tt.bits, err)
			}
			if got != tt.want {
				t.Errorf("RMFromBits(%d) = %v, want %v", tt.bits, got, tt.want)
			}
		})
	}
}
