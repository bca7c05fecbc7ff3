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
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRiscv(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RISC-V codec suite")
}

var _ = Describe("binary round trip", func() {
	words := []uint32{
		0x04F71463, // bne a4,a5,72
		0x40030293, // addi t0,t1,1024
		0x1405A52F, // lr.w.aq a0,a1
		0x00190937, // lui s2,400
		0xE20F8853, // fmv.x.d a6,ft11
		0x00000073, // ecall
		0x8330000F, // fence.tso
	}

	for _, w := range words {
		w := w
		It("decodes and re-encodes to the same word", func() {
			instr, err := Decode(w)
			Expect(err).NotTo(HaveOccurred())
			Expect(instr.Encode()).To(Equal(w))
		})
	}
})

var _ = Describe("text round trip", func() {
	lines := []string{
		"bne a4,a5,72",
		"addi t0,t1,1024",
		"lui s2,400",
		"ecall",
		"add a0,a1,a2",
		"srai a0,a0,5",
		"jal ra,72",
		"c.addi4spn a0,280",
		"c.lwsp a0,4(sp)",
	}

	for _, line := range lines {
		line := line
		It("assembles and disassembles back to the same text", func() {
			instr, err := Assemble(line)
			Expect(err).NotTo(HaveOccurred())
			Expect(instr.String()).To(Equal(line))
		})
	}
})

var _ = Describe("structural decode equality", func() {
	It("decodes lui s2,400 to the expected UType value", func() {
		instr, err := Decode(0x00190937)
		Expect(err).NotTo(HaveOccurred())

		wantImm, err := NewUImm(400)
		Expect(err).NotTo(HaveOccurred())
		want := UType{Op: "lui", Rd: S2, Imm: wantImm}

		if diff := cmp.Diff(want, instr, cmp.AllowUnexported(UImm{}, imm{}, shape{}, slot{})); diff != "" {
			Fail("decode mismatch (-want +got):\n" + diff)
		}
	})
})

var _ = Describe("immediate range and alignment", func() {
	It("rejects an I-immediate one past the positive limit", func() {
		_, err := NewIImm(2048)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an I-immediate one past the negative limit", func() {
		_, err := NewIImm(-2049)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a misaligned B-immediate", func() {
		_, err := NewBImm(1)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a misaligned J-immediate", func() {
		_, err := NewJImm(3)
		Expect(err).To(HaveOccurred())
	})

	It("accepts a 2-byte-aligned J-immediate at the edge of its range", func() {
		v, err := NewJImm(1048574)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Value()).To(Equal(int64(1048574)))
	})
})
