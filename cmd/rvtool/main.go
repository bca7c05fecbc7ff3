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

// rvtool is a command-line front end for the riscv codec: it disassembles
// words into text, assembles text into words, and fuzzes the codec's
// round-trip property against itself.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"

	riscv "github.com/RebelAndroid/riscv-codec-sub000"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rvtool",
		Short: "Disassemble, assemble, and fuzz RV64GC instruction words.",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML profile enabling/disabling extensions")

	root.AddCommand(newDisasmCmd(), newAsmCmd(), newFuzzCmd(), newExhaustiveCmd())
	return root
}

func loadProfile() (riscv.Profile, error) {
	return riscv.LoadProfile(configPath)
}

// readLines yields args if given, else each line of stdin.
func readLines(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm [word ...]",
		Short: "Decode hex instruction words into assembly text, one per line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile()
			if err != nil {
				return err
			}
			words, err := readLines(args)
			if err != nil {
				return err
			}
			for _, w := range words {
				instr, err := decodeHex(w)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", w, err)
					continue
				}
				if !profile.Allows(instr) {
					fmt.Fprintf(os.Stderr, "%s: decodes to %s, disabled by profile\n", w, instr)
					continue
				}
				fmt.Println(instr)
			}
			return nil
		},
	}
}

func decodeHex(tok string) (riscv.Instr, error) {
	v, err := strconv.ParseUint(tok, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("not a hex word: %q", tok)
	}
	if v&0x3 == 0x3 {
		return riscv.Decode(uint32(v))
	}
	return riscv.DecodeCompressed(uint16(v))
}

func newAsmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "asm [line ...]",
		Short: "Encode assembly text into hex instruction words, one per line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile()
			if err != nil {
				return err
			}
			lines, err := readLines(args)
			if err != nil {
				return err
			}
			for _, line := range lines {
				instr, err := riscv.Assemble(line)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", line, err)
					continue
				}
				if !profile.Allows(instr) {
					fmt.Fprintf(os.Stderr, "%s: disabled by profile\n", line)
					continue
				}
				if instr.Width() == 2 {
					fmt.Printf("%04x\n", uint16(instr.Encode()))
				} else {
					fmt.Printf("%08x\n", instr.Encode())
				}
			}
			return nil
		},
	}
}

func newFuzzCmd() *cobra.Command {
	var count int
	var seed int64
	cmd := &cobra.Command{
		Use:   "fuzz",
		Short: "Decode random words and verify encode(decode(w)) == w.",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile()
			if err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(seed))
			failures, decoded := 0, 0
			for i := 0; i < count; i++ {
				raw := rng.Uint32()
				var instr riscv.Instr
				var err error
				var want uint32
				if raw&0x3 == 0x3 {
					instr, err = riscv.Decode(raw)
					want = raw
				} else {
					word16 := uint16(raw)
					instr, err = riscv.DecodeCompressed(word16)
					want = uint32(word16)
				}
				if err != nil {
					continue // not every random word is valid; that's expected
				}
				if !profile.Allows(instr) {
					continue
				}
				decoded++
				if instr.Encode() != want {
					fmt.Printf("round-trip mismatch: word=%#08x decoded=%s re-encoded=%#08x\n", want, instr, instr.Encode())
					failures++
				}
			}
			fmt.Printf("%d/%d words decoded, %d round-tripped cleanly\n", decoded, count, decoded-failures)
			if failures > 0 {
				return fmt.Errorf("%d round-trip failures", failures)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 10000, "number of random words to try")
	cmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed")
	return cmd
}

// exhaustiveTally holds the counters a shard accumulates while walking its
// slice of the word space: every accepted encoding is re-encoded and checked
// against the word that produced it.
type exhaustiveTally struct {
	accepted atomic.Uint64
	reserved atomic.Uint64
	mismatch atomic.Uint64
}

// walk32Shard checks every word in [lo, hi) against Decode, recording a
// mismatch for any word whose re-encoded form doesn't match the word that
// decoded to it.
func walk32Shard(lo, hi uint64, profile riscv.Profile, tally *exhaustiveTally) {
	for w := lo; w < hi; w++ {
		word := uint32(w)
		instr, err := riscv.Decode(word)
		if err != nil || !profile.Allows(instr) {
			tally.reserved.Add(1)
			continue
		}
		tally.accepted.Add(1)
		if got := instr.Encode(); got != word {
			tally.mismatch.Add(1)
			fmt.Fprintf(os.Stderr, "32-bit round-trip mismatch: word=%#08x decoded=%s re-encoded=%#08x\n", word, instr, got)
		}
	}
}

// walk16 checks every compressed word against DecodeCompressed, skipping the
// quadrant reserved for 32-bit instructions (low two bits == 0b11).
func walk16(profile riscv.Profile, tally *exhaustiveTally) {
	for w := 0; w < 1<<16; w++ {
		word := uint16(w)
		if word&0x3 == 0x3 {
			continue
		}
		instr, err := riscv.DecodeCompressed(word)
		if err != nil || !profile.Allows(instr) {
			tally.reserved.Add(1)
			continue
		}
		tally.accepted.Add(1)
		if got := instr.Encode(); got != uint32(word) {
			tally.mismatch.Add(1)
			fmt.Fprintf(os.Stderr, "16-bit round-trip mismatch: word=%#04x decoded=%s re-encoded=%#04x\n", word, instr, got)
		}
	}
}

func newExhaustiveCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "exhaustive",
		Short: "Walk every 32-bit word and every 16-bit compressed word, checking decode/encode agree.",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile()
			if err != nil {
				return err
			}
			n := workers
			if n <= 0 {
				n = runtime.GOMAXPROCS(0)
			}

			const space32 = uint64(1) << 32
			shard := space32 / uint64(n)
			if shard == 0 {
				n = 1
				shard = space32
			}

			var wide exhaustiveTally
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				lo := uint64(i) * shard
				hi := lo + shard
				if i == n-1 {
					hi = space32
				}
				wg.Add(1)
				go func(lo, hi uint64) {
					defer wg.Done()
					walk32Shard(lo, hi, profile, &wide)
				}(lo, hi)
			}
			wg.Wait()

			var narrow exhaustiveTally
			walk16(profile, &narrow)

			fmt.Printf("32-bit: %d accepted, %d reserved, %d round-trip mismatches (of %d words, %d workers)\n",
				wide.accepted.Load(), wide.reserved.Load(), wide.mismatch.Load(), space32, n)
			fmt.Printf("16-bit: %d accepted, %d reserved, %d round-trip mismatches (of %d words)\n",
				narrow.accepted.Load(), narrow.reserved.Load(), narrow.mismatch.Load(), uint64(1)<<16)

			if wide.mismatch.Load()+narrow.mismatch.Load() > 0 {
				return fmt.Errorf("exhaustive check found round-trip mismatches")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "shards to run concurrently over the 32-bit word space (default GOMAXPROCS)")
	return cmd
}
