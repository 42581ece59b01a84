// This file is part of GopherC64.
//
// GopherC64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherC64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherC64.  If not, see <https://www.gnu.org/licenses/>.

package cpu_test

import (
	"testing"

	"github.com/jetsetilly/gopherc64/hardware/cpu"
	"github.com/jetsetilly/gopherc64/test"
)

// mockMem is a flat 64K of RAM. good enough to run the CPU on its own
type mockMem struct {
	internal []uint8
}

func newMockMem() *mockMem {
	return &mockMem{internal: make([]uint8, 0x10000)}
}

func (m *mockMem) Peek(addr uint16) uint8 {
	return m.internal[addr]
}

func (m *mockMem) Poke(addr uint16, data uint8) {
	m.internal[addr] = data
}

func (m *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for _, b := range bytes {
		m.internal[origin] = b
		origin++
	}
	return origin
}

// prepare a CPU with the reset sequence already run. the reset vector
// points at 0x1000
func startup(t *testing.T) (*cpu.CPU, *mockMem) {
	t.Helper()

	mem := newMockMem()
	mem.internal[0xfffc] = 0x00
	mem.internal[0xfffd] = 0x10

	mc := cpu.NewCPU(mem)
	for !mc.AtInstructionBoundary() {
		if err := mc.ExecuteCycle(); err != nil {
			t.Fatal(err)
		}
	}
	test.Equate(t, mc.PC, 0x1000)

	return mc, mem
}

// run one instruction to completion, returning the number of cycles it
// took
func step(t *testing.T, mc *cpu.CPU) int {
	t.Helper()

	cycles := 0
	for {
		if err := mc.ExecuteCycle(); err != nil {
			t.Fatal(err)
		}
		cycles++
		if mc.AtInstructionBoundary() {
			return cycles
		}
	}
}

func TestResetSequence(t *testing.T) {
	mc, _ := startup(t)

	// three (suppressed) stack pushes from an initial stack pointer of
	// 0x00 leave the stack pointer at 0xfd
	test.Equate(t, mc.SP, 0xfd)
	test.Equate(t, mc.Status.InterruptDisable, true)
}

func TestDecimalADC(t *testing.T) {
	mc, mem := startup(t)

	// A=0x15, C=0, D=1: ADC #$27 gives BCD 0x42
	mem.putInstructions(0x1000, 0xf8, 0xa9, 0x15, 0x18, 0x69, 0x27)
	step(t, mc) // SED
	step(t, mc) // LDA #$15
	step(t, mc) // CLC
	step(t, mc) // ADC #$27

	test.Equate(t, mc.A, 0x42)
	test.Equate(t, mc.Status.Carry, false)
	test.Equate(t, mc.Status.Zero, false)
	test.Equate(t, mc.Status.Sign, false)
}

func TestDecimalSBC(t *testing.T) {
	mc, mem := startup(t)

	// 0x42 - 0x27 = BCD 0x15
	mem.putInstructions(0x1000, 0xf8, 0xa9, 0x42, 0x38, 0xe9, 0x27)
	step(t, mc)
	step(t, mc)
	step(t, mc)
	step(t, mc)

	test.Equate(t, mc.A, 0x15)
	test.Equate(t, mc.Status.Carry, true)
}

func TestPageCrossTiming(t *testing.T) {
	mc, mem := startup(t)

	// LDA $12FE,X with X=5 crosses into page 0x13: 5 cycles
	mem.putInstructions(0x1000, 0xa2, 0x05, 0xbd, 0xfe, 0x12)
	step(t, mc) // LDX #$05
	test.Equate(t, step(t, mc), 5)

	// LDA $12FA,X with X=5 stays in page 0x12: 4 cycles
	mem.putInstructions(0x1005, 0xbd, 0xfa, 0x12)
	test.Equate(t, step(t, mc), 4)

	// LDA $12FE,X with X=0x20: 5 cycles again
	mem.putInstructions(0x1008, 0xa2, 0x20, 0xbd, 0xfe, 0x12)
	step(t, mc)
	test.Equate(t, step(t, mc), 5)
}

func TestIndexedWriteTiming(t *testing.T) {
	mc, mem := startup(t)

	// indexed writes always pay the fix-up cycle, page-cross or not
	mem.putInstructions(0x1000, 0xa2, 0x05, 0x9d, 0x00, 0x20)
	step(t, mc)
	test.Equate(t, step(t, mc), 5)
}

func TestPHPPLP(t *testing.T) {
	mc, mem := startup(t)

	mem.putInstructions(0x1000, 0x38, 0xf8, 0x08, 0x18, 0xd8, 0x28)
	step(t, mc) // SEC
	step(t, mc) // SED
	step(t, mc) // PHP
	step(t, mc) // CLC
	step(t, mc) // CLD
	step(t, mc) // PLP

	test.Equate(t, mc.Status.Carry, true)
	test.Equate(t, mc.Status.DecimalMode, true)

	// B is always observed as set after a pull
	test.Equate(t, mc.Status.Break, true)
}

func TestRMWTiming(t *testing.T) {
	mc, mem := startup(t)

	// INC abs is 6 cycles; INC abs,X is 7
	mem.putInstructions(0x1000, 0xee, 0x00, 0x20, 0xfe, 0x00, 0x20)
	test.Equate(t, step(t, mc), 6)
	test.Equate(t, step(t, mc), 7)
	test.Equate(t, mem.internal[0x2000], 0x02)
}

func TestBranchTiming(t *testing.T) {
	mc, mem := startup(t)

	// not taken: 2 cycles
	mem.putInstructions(0x1000, 0x18, 0xb0, 0x10)
	step(t, mc) // CLC
	test.Equate(t, step(t, mc), 2)

	// taken, same page: 3 cycles
	mem.putInstructions(0x1003, 0x90, 0x02)
	test.Equate(t, step(t, mc), 3)
	test.Equate(t, mc.PC, 0x1007)

	// taken, crossing a page: 4 cycles
	mem.putInstructions(0x1007, 0x90, 0xf0)
	test.Equate(t, step(t, mc), 4)
	test.Equate(t, mc.PC, 0x0ff9)
}

func TestRdyLineFreezesReads(t *testing.T) {
	mc, mem := startup(t)

	mem.putInstructions(0x1000, 0xa9, 0x55)

	// pull RDY low before the fetch. the CPU must not make progress
	mc.RdyLine = false
	for i := 0; i < 10; i++ {
		if err := mc.ExecuteCycle(); err != nil {
			t.Fatal(err)
		}
	}
	test.Equate(t, mc.AtInstructionBoundary(), true)
	test.Equate(t, mc.A, 0x00)

	mc.RdyLine = true
	test.Equate(t, step(t, mc), 2)
	test.Equate(t, mc.A, 0x55)
}

func TestRdyLineDoesNotFreezeWrites(t *testing.T) {
	mc, mem := startup(t)

	mem.putInstructions(0x1000, 0xa9, 0x55, 0x85, 0x80)
	step(t, mc) // LDA #$55

	// STA zero page: one read cycle (operand), one write cycle. with
	// RDY low after the operand read the write still completes
	if err := mc.ExecuteCycle(); err != nil { // opcode fetch
		t.Fatal(err)
	}
	if err := mc.ExecuteCycle(); err != nil { // operand read
		t.Fatal(err)
	}
	mc.RdyLine = false
	if err := mc.ExecuteCycle(); err != nil { // write cycle
		t.Fatal(err)
	}
	test.Equate(t, mem.internal[0x0080], 0x55)
	mc.RdyLine = true
}

func TestIRQ(t *testing.T) {
	mc, mem := startup(t)

	// IRQ vector to 0x2000; handler is RTI
	mem.internal[0xfffe] = 0x00
	mem.internal[0xffff] = 0x20
	mem.putInstructions(0x2000, 0x40)

	mem.putInstructions(0x1000, 0x58, 0xea, 0xea)
	step(t, mc) // CLI

	mc.SetIRQLine(cpu.IRQSourceVIC, true)

	// line must be asserted for at least two cycles before it is taken
	step(t, mc) // NOP runs normally

	// the next "instruction" is the 7 cycle interrupt sequence
	test.Equate(t, step(t, mc), 7)
	test.Equate(t, mc.PC, 0x2000)
	test.Equate(t, mc.Status.InterruptDisable, true)

	mc.SetIRQLine(cpu.IRQSourceVIC, false)

	// RTI returns to the interrupted instruction
	test.Equate(t, step(t, mc), 6)
	test.Equate(t, mc.PC, 0x1002)
}

func TestNMIEdge(t *testing.T) {
	mc, mem := startup(t)

	mem.internal[0xfffa] = 0x00
	mem.internal[0xfffb] = 0x30
	mem.putInstructions(0x3000, 0x40)
	mem.putInstructions(0x1000, 0xea, 0xea, 0xea, 0xea)

	// NMI ignores the I flag (still set after reset)
	mc.SetNMILine(cpu.NMISourceCIA, true)
	step(t, mc)
	test.Equate(t, step(t, mc), 7)
	test.Equate(t, mc.PC, 0x3000)

	step(t, mc) // RTI

	// the line is still asserted. without a new edge no second NMI
	// fires
	step(t, mc)
	test.Equate(t, mc.PC, 0x1002)
}

func TestBreakpoints(t *testing.T) {
	mc, mem := startup(t)

	mem.putInstructions(0x1000, 0xea, 0xea, 0xea)
	mc.SetBreakpoint(0x1001, cpu.SoftBreakpoint)

	step(t, mc) // NOP at 0x1000

	if err := mc.ExecuteCycle(); err != nil {
		t.Fatal(err)
	}
	test.Equate(t, mc.ErrorState() == cpu.SoftBreakpointReached, true)

	// soft breakpoints clear on hit
	test.Equate(t, mc.Breakpoint(0x1001), 0x00)

	// resuming runs the instruction at the breakpoint
	mc.ClearErrorState()
	step(t, mc)
	test.Equate(t, mc.PC, 0x1002)
}

func TestUnstableOpcodeHalts(t *testing.T) {
	mc, mem := startup(t)

	mem.putInstructions(0x1000, 0x02)
	err := mc.ExecuteCycle()
	test.ExpectedFailure(t, err)
	test.Equate(t, mc.ErrorState() == cpu.IllegalInstruction, true)
}

func TestJSRRecordsCall(t *testing.T) {
	mc, mem := startup(t)

	mem.putInstructions(0x1000, 0x20, 0x00, 0x40)
	mem.putInstructions(0x4000, 0x60)

	test.Equate(t, step(t, mc), 6)
	test.Equate(t, mc.PC, 0x4000)

	calls := mc.CallStack(1)
	test.Equate(t, calls[0], 0x4000)

	// RTS takes us back past the JSR operand
	test.Equate(t, step(t, mc), 6)
	test.Equate(t, mc.PC, 0x1003)
}

func TestJmpIndirectPageWrap(t *testing.T) {
	mc, mem := startup(t)

	mem.internal[0x20ff] = 0x34
	mem.internal[0x2000] = 0x12
	mem.internal[0x2100] = 0xff
	mem.putInstructions(0x1000, 0x6c, 0xff, 0x20)

	test.Equate(t, step(t, mc), 5)
	test.Equate(t, mc.PC, 0x1234)
}
