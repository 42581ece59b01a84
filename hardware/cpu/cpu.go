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

// Package cpu implements the 6510 found in the C64. The CPU is a
// per-cycle state machine: every instruction decomposes into a fixed
// sequence of micro-steps and the scheduler advances the machine one
// micro-step per system clock with ExecuteCycle().
//
// The RDY line falls out of this model naturally. Every micro-step
// performs at most one bus access; a step that wants to read while RDY
// is low simply runs again on the next clock. Write cycles are never
// stalled, exactly as on the real chip.
package cpu

import (
	"fmt"

	"github.com/jetsetilly/gopherc64/curated"
)

// Bus is the CPU's view of the address space.
type Bus interface {
	Peek(addr uint16) uint8
	Poke(addr uint16, data uint8)
}

// ErrorState describes why the CPU has stopped executing. Anything
// other than OK halts the execution thread until the state is cleared.
type ErrorState int

// List of valid ErrorState values.
const (
	OK ErrorState = iota
	SoftBreakpointReached
	HardBreakpointReached
	IllegalInstruction
)

func (es ErrorState) String() string {
	switch es {
	case OK:
		return "ok"
	case SoftBreakpointReached:
		return "soft breakpoint reached"
	case HardBreakpointReached:
		return "hard breakpoint reached"
	case IllegalInstruction:
		return "illegal instruction"
	}
	panic("unknown error state")
}

// Breakpoint tags. Every address carries a tag; NoBreakpoint has no
// effect. Soft tags are deleted when they are hit.
const (
	NoBreakpoint   = 0x00
	HardBreakpoint = 0x01
	SoftBreakpoint = 0x02
)

// Sources on the IRQ line. The line is a bitmask because it is driven
// by several chips at once (wired AND on the real board).
const (
	IRQSourceCIA uint8 = 0x01
	IRQSourceVIC uint8 = 0x02
	IRQSourceVIA uint8 = 0x10
	IRQSourceATN uint8 = 0x40
)

// Sources on the NMI line.
const (
	NMISourceCIA   uint8 = 0x01
	NMISourceReset uint8 = 0x08
)

// interrupt vectors
const (
	NMIVector   uint16 = 0xfffa
	ResetVector uint16 = 0xfffc
	IRQVector   uint16 = 0xfffe
)

// depth of the JSR ring buffer. debug only; execution is not affected
// when it wraps
const callStackDepth = 256

// CPU implements the 6510 as a per-cycle state machine.
type CPU struct {
	mem Bus

	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16

	Status StatusRegister

	// micro state for the instruction in flight
	opcode    uint8
	defn      *definition
	seq       []microStep
	step      int
	addrLo    uint8
	addrHi    uint8
	ptr       uint8
	data      uint8
	pageCross bool

	// address of the opcode of the instruction in flight. used by the
	// disassembler and the debugger
	PCAtCycle0 uint16

	// RdyLine mirrors pin 2 of the 6510. when false, read micro-steps
	// repeat instead of advancing
	RdyLine bool

	// interrupt lines. each bit is an asserting source
	irqLine uint8
	nmiLine uint8

	// a falling edge on the NMI line latches this flag. it survives
	// until the interrupt is taken
	nmiPending bool

	// an interrupt only fires if its line has been asserted for at
	// least two cycles
	nextPossibleIRQ uint64
	nextPossibleNMI uint64

	// value of the I flag before the most recent SEI/CLI/PLP. an
	// interrupt arriving in the same instruction observes the old mask
	oldI    bool
	useOldI bool

	// cycle counter. local to the CPU but advances in lockstep with the
	// machine clock
	cycles uint64

	errorState ErrorState

	// acknowledged breakpoint address; prevents immediate re-triggering
	// after the debugger resumes
	breakpointAck uint16
	ackValid      bool
	breakpoints   []uint8

	// ring buffer of JSR targets
	callStack    [callStackDepth]uint16
	callStackPtr uint8

	// pending interrupt servicing decided at the fetch step
	interruptVector uint16
	interruptDummy  bool // reset sequence suppresses the stack writes

	scratch snapshotScratch
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem Bus) *CPU {
	mc := &CPU{
		mem:         mem,
		breakpoints: make([]uint8, 0x10000),
	}
	mc.Reset()
	return mc
}

func (mc *CPU) String() string {
	return fmt.Sprintf("PC=%04x A=%02x X=%02x Y=%02x SP=%02x %s",
		mc.PC, mc.A, mc.X, mc.Y, mc.SP, mc.Status)
}

// Reset puts the CPU into its power-on state and installs the hardware
// reset sequence: the same seven micro-steps as an interrupt, with the
// stack writes suppressed, ending with the PC loaded from the reset
// vector.
func (mc *CPU) Reset() {
	mc.A = 0
	mc.X = 0
	mc.Y = 0
	mc.SP = 0x00
	mc.Status.Reset()
	mc.RdyLine = true
	mc.irqLine = 0
	mc.nmiLine = 0
	mc.nmiPending = false
	mc.useOldI = false
	mc.errorState = OK
	mc.ackValid = false
	mc.callStackPtr = 0

	mc.interruptVector = ResetVector
	mc.interruptDummy = true
	mc.seq = interruptSeq
	mc.step = 0
}

// Plumb a new bus into the CPU.
func (mc *CPU) Plumb(mem Bus) {
	mc.mem = mem
}

// ErrorState returns the current error state of the CPU.
func (mc *CPU) ErrorState() ErrorState {
	return mc.errorState
}

// ClearErrorState resumes a halted CPU. If the halt was caused by a
// breakpoint the instruction at the breakpoint address will run without
// re-triggering.
func (mc *CPU) ClearErrorState() {
	if mc.errorState == SoftBreakpointReached || mc.errorState == HardBreakpointReached {
		mc.breakpointAck = mc.PC
		mc.ackValid = true
	}
	mc.errorState = OK
}

// AtInstructionBoundary returns true if the next micro-step begins a
// new instruction. Debuggers step to this point.
func (mc *CPU) AtInstructionBoundary() bool {
	return mc.step == 0 && &mc.seq[0] == &fetchSeq[0]
}

// Cycles returns the number of clock ticks the CPU has seen.
func (mc *CPU) Cycles() uint64 {
	return mc.cycles
}

// ExecuteCycle advances the CPU by one micro-step. A CPU in an error
// state does nothing. The returned error is the transition into the
// IllegalInstruction state; breakpoint states are reported through
// ErrorState() only.
func (mc *CPU) ExecuteCycle() error {
	mc.cycles++

	if mc.errorState != OK {
		return nil
	}

	switch mc.seq[mc.step](mc) {
	case stepRepeat:
		// blocked on RDY. run the same micro-step next cycle
	case stepNext:
		mc.step++
	case stepDone:
		mc.seq = fetchSeq
		mc.step = 0
	case stepJump:
		// the micro-step has installed a new sequence itself
	}

	if mc.errorState == IllegalInstruction {
		return curated.Errorf(curated.UnsupportedOpcode, mc.opcode, mc.PCAtCycle0)
	}

	return nil
}

// bus helpers. busRead returns false when the RDY line blocks the
// access. writes are never blocked.

func (mc *CPU) busRead(addr uint16) (uint8, bool) {
	if !mc.RdyLine {
		return 0, false
	}
	return mc.mem.Peek(addr), true
}

func (mc *CPU) busWrite(addr uint16, data uint8) {
	mc.mem.Poke(addr, data)
}

func (mc *CPU) push(data uint8) {
	if !mc.interruptDummy {
		mc.busWrite(0x0100|uint16(mc.SP), data)
	}
	mc.SP--
}

// effective address assembled from the internal address registers
func (mc *CPU) ea() uint16 {
	return uint16(mc.addrHi)<<8 | uint16(mc.addrLo)
}

//
// interrupt lines
//

// SetIRQLine asserts or releases one source bit on the IRQ line.
func (mc *CPU) SetIRQLine(source uint8, state bool) {
	if state {
		if mc.irqLine == 0 {
			mc.nextPossibleIRQ = mc.cycles + 2
		}
		mc.irqLine |= source
	} else {
		mc.irqLine &^= source
	}
}

// SetNMILine asserts or releases one source bit on the NMI line. The
// transition of the line from released to asserted latches the
// NMI-pending flag; the level itself is not observed again until the
// next edge.
func (mc *CPU) SetNMILine(source uint8, state bool) {
	if state {
		if mc.nmiLine == 0 {
			mc.nmiPending = true
			mc.nextPossibleNMI = mc.cycles + 2
		}
		mc.nmiLine |= source
	} else {
		mc.nmiLine &^= source
	}
}

// IRQLine returns the current IRQ line bitmask.
func (mc *CPU) IRQLine() uint8 {
	return mc.irqLine
}

// convenience line setters for the attached chips

// SetIRQLineVIC asserts or releases the VIC source on the IRQ line.
func (mc *CPU) SetIRQLineVIC(state bool) { mc.SetIRQLine(IRQSourceVIC, state) }

// SetIRQLineCIA asserts or releases the CIA 1 source on the IRQ line.
func (mc *CPU) SetIRQLineCIA(state bool) { mc.SetIRQLine(IRQSourceCIA, state) }

// SetNMILineCIA asserts or releases the CIA 2 source on the NMI line.
func (mc *CPU) SetNMILineCIA(state bool) { mc.SetNMILine(NMISourceCIA, state) }

// the I flag that applies to the interrupt decision in the current
// fetch. see the oldI field
func (mc *CPU) effectiveI() bool {
	if mc.useOldI {
		return mc.oldI
	}
	return mc.Status.InterruptDisable
}

// called by SEI/CLI/PLP so that an interrupt arriving simultaneously
// with the flag change observes the old mask
func (mc *CPU) snapshotI(old bool) {
	mc.oldI = old
	mc.useOldI = true
}

//
// breakpoints
//

// SetBreakpoint tags an address with a hard or soft breakpoint.
func (mc *CPU) SetBreakpoint(addr uint16, tag uint8) {
	mc.breakpoints[addr] |= tag
}

// ClearBreakpoint removes a tag from an address.
func (mc *CPU) ClearBreakpoint(addr uint16, tag uint8) {
	mc.breakpoints[addr] &^= tag
}

// Breakpoint returns the tag at an address.
func (mc *CPU) Breakpoint(addr uint16) uint8 {
	return mc.breakpoints[addr]
}

//
// callstack
//

func (mc *CPU) recordCall(target uint16) {
	mc.callStack[mc.callStackPtr] = target
	mc.callStackPtr++
}

// CallStack returns the most recent JSR targets, newest last. Debug
// only.
func (mc *CPU) CallStack(depth int) []uint16 {
	if depth > callStackDepth {
		depth = callStackDepth
	}
	s := make([]uint16, 0, depth)
	p := mc.callStackPtr - uint8(depth)
	for i := 0; i < depth; i++ {
		s = append(s, mc.callStack[p])
		p++
	}
	return s
}
