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

package cpu

// A microStep performs the work of one clock cycle. Every step performs
// at most one bus access.
type microStep func(mc *CPU) int

// return values for micro-steps
const (
	stepRepeat = iota // blocked on RDY; run the same step next cycle
	stepNext          // advance to the next step of the sequence
	stepDone          // instruction complete; fetch next
	stepJump          // the step has installed a new sequence itself
)

// the fetch "sequence". a single step that decodes the next opcode and
// installs its micro sequence
var fetchSeq = []microStep{stepFetch}

// the seven step interrupt sequence. shared by IRQ, NMI and hardware
// reset (reset suppresses the stack writes). reset runs all seven
// steps; for IRQ and NMI the fetch cycle that detects the interrupt
// performs the first dummy read and the sequence is entered at its
// second step
var interruptSeq = []microStep{
	stepIntDummy1,
	stepIntDummy2,
	stepIntPushPCH,
	stepIntPushPCL,
	stepIntPushP,
	stepVectorLo,
	stepVectorHi,
}

// the BRK sequence differs from the interrupt sequence in the first
// step (the padding byte is consumed) and in pushing P with B set
var brkSeq = []microStep{
	stepBrkPadding,
	stepIntPushPCH,
	stepIntPushPCL,
	stepBrkPushP,
	stepVectorLo,
	stepVectorHi,
}

func stepFetch(mc *CPU) int {
	// breakpoint check happens when a new instruction begins at a
	// tagged address. the acknowledge address lets the debugger resume
	// over the breakpoint it just reported
	if tag := mc.breakpoints[mc.PC]; tag != NoBreakpoint && !(mc.ackValid && mc.breakpointAck == mc.PC) {
		if tag&HardBreakpoint == HardBreakpoint {
			mc.errorState = HardBreakpointReached
		} else {
			mc.errorState = SoftBreakpointReached
			mc.breakpoints[mc.PC] &^= SoftBreakpoint
		}
		return stepRepeat
	}
	mc.ackValid = false

	// interrupt servicing replaces the fetched instruction. NMI wins
	// over IRQ. the opcode read of this cycle is discarded; it is the
	// first dummy read of the interrupt sequence
	if mc.nmiPending && mc.cycles >= mc.nextPossibleNMI {
		if _, ok := mc.busRead(mc.PC); !ok {
			return stepRepeat
		}
		mc.nmiPending = false
		mc.useOldI = false
		mc.interruptVector = NMIVector
		mc.seq = interruptSeq
		mc.step = 1
		return stepJump
	}
	if mc.irqLine != 0 && !mc.effectiveI() && mc.cycles >= mc.nextPossibleIRQ {
		if _, ok := mc.busRead(mc.PC); !ok {
			return stepRepeat
		}
		mc.useOldI = false
		mc.interruptVector = IRQVector
		mc.seq = interruptSeq
		mc.step = 1
		return stepJump
	}
	mc.useOldI = false

	v, ok := mc.busRead(mc.PC)
	if !ok {
		return stepRepeat
	}

	mc.PCAtCycle0 = mc.PC
	mc.PC++
	mc.opcode = v
	mc.defn = &definitions[v]
	mc.pageCross = false

	if mc.defn.class == classUnstable {
		mc.errorState = IllegalInstruction
		return stepRepeat
	}

	mc.seq = mc.defn.seq
	mc.step = 0
	return stepJump
}

//
// interrupt steps
//

func stepIntDummy1(mc *CPU) int {
	if _, ok := mc.busRead(mc.PC); !ok {
		return stepRepeat
	}
	return stepNext
}

func stepIntDummy2(mc *CPU) int {
	if _, ok := mc.busRead(mc.PC); !ok {
		return stepRepeat
	}
	return stepNext
}

func stepIntPushPCH(mc *CPU) int {
	mc.push(uint8(mc.PC >> 8))
	return stepNext
}

func stepIntPushPCL(mc *CPU) int {
	mc.push(uint8(mc.PC))
	return stepNext
}

func stepIntPushP(mc *CPU) int {
	mc.push(mc.Status.ValueWithClearedB())
	mc.Status.InterruptDisable = true
	return stepNext
}

func stepVectorLo(mc *CPU) int {
	v, ok := mc.busRead(mc.interruptVector)
	if !ok {
		return stepRepeat
	}
	mc.addrLo = v
	return stepNext
}

func stepVectorHi(mc *CPU) int {
	v, ok := mc.busRead(mc.interruptVector + 1)
	if !ok {
		return stepRepeat
	}
	mc.PC = uint16(v)<<8 | uint16(mc.addrLo)
	mc.interruptDummy = false
	return stepDone
}

//
// BRK steps
//

func stepBrkPadding(mc *CPU) int {
	// the byte after BRK is read and discarded
	if _, ok := mc.busRead(mc.PC); !ok {
		return stepRepeat
	}
	mc.PC++
	mc.interruptVector = IRQVector
	return stepNext
}

func stepBrkPushP(mc *CPU) int {
	mc.push(mc.Status.Value() | BFlag)
	mc.Status.InterruptDisable = true

	// an NMI edge arriving during BRK hijacks the vector
	if mc.nmiPending && mc.cycles >= mc.nextPossibleNMI {
		mc.nmiPending = false
		mc.interruptVector = NMIVector
	}
	return stepNext
}

//
// operand steps
//

func stepOperandLo(mc *CPU) int {
	v, ok := mc.busRead(mc.PC)
	if !ok {
		return stepRepeat
	}
	mc.PC++
	mc.addrLo = v
	mc.addrHi = 0
	return stepNext
}

func stepOperandHi(mc *CPU) int {
	v, ok := mc.busRead(mc.PC)
	if !ok {
		return stepRepeat
	}
	mc.PC++
	mc.addrHi = v
	return stepNext
}

// high operand byte for indexed absolute modes. the index is added to
// the low byte here; the carry into the high byte costs the extra cycle
func stepOperandHiIndexed(mc *CPU) int {
	v, ok := mc.busRead(mc.PC)
	if !ok {
		return stepRepeat
	}
	mc.PC++
	mc.addrHi = v

	idx := mc.X
	if mc.defn.Mode == AbsoluteY {
		idx = mc.Y
	}
	sum := uint16(mc.addrLo) + uint16(idx)
	mc.addrLo = uint8(sum)
	mc.pageCross = sum > 0xff
	return stepNext
}

func stepImmediate(mc *CPU) int {
	v, ok := mc.busRead(mc.PC)
	if !ok {
		return stepRepeat
	}
	mc.PC++
	mc.defn.read(mc, v)
	return stepDone
}

//
// zero page steps
//

func stepZpIndex(mc *CPU) int {
	// the pre-index address is read and the result thrown away
	if _, ok := mc.busRead(uint16(mc.addrLo)); !ok {
		return stepRepeat
	}
	if mc.defn.Mode == ZeroPageY {
		mc.addrLo += mc.Y
	} else {
		mc.addrLo += mc.X
	}
	return stepNext
}

func stepZpRead(mc *CPU) int {
	v, ok := mc.busRead(uint16(mc.addrLo))
	if !ok {
		return stepRepeat
	}
	mc.defn.read(mc, v)
	return stepDone
}

func stepZpWrite(mc *CPU) int {
	mc.busWrite(uint16(mc.addrLo), mc.defn.write(mc))
	return stepDone
}

//
// absolute steps
//

func stepAbsRead(mc *CPU) int {
	v, ok := mc.busRead(mc.ea())
	if !ok {
		return stepRepeat
	}
	mc.defn.read(mc, v)
	return stepDone
}

func stepAbsWrite(mc *CPU) int {
	mc.busWrite(mc.ea(), mc.defn.write(mc))
	return stepDone
}

//
// indexed absolute steps
//

// read from the possibly unfixed address. without a page-cross this is
// the real read and the instruction completes; with a page-cross the
// value is discarded and the fixed address is read next cycle
func stepIndexedReadMaybe(mc *CPU) int {
	v, ok := mc.busRead(mc.ea())
	if !ok {
		return stepRepeat
	}
	if mc.pageCross {
		mc.addrHi++
		return stepNext
	}
	mc.defn.read(mc, v)
	return stepDone
}

func stepIndexedReadFixed(mc *CPU) int {
	v, ok := mc.busRead(mc.ea())
	if !ok {
		return stepRepeat
	}
	mc.defn.read(mc, v)
	return stepDone
}

// indexed writes (and RMWs) always pay the fix-up cycle: the unfixed
// address is read and discarded
func stepIndexedDummyRead(mc *CPU) int {
	if _, ok := mc.busRead(mc.ea()); !ok {
		return stepRepeat
	}
	if mc.pageCross {
		mc.addrHi++
	}
	return stepNext
}

func stepIndexedWrite(mc *CPU) int {
	mc.busWrite(mc.ea(), mc.defn.write(mc))
	return stepDone
}

//
// read-modify-write steps
//

func stepRMWRead(mc *CPU) int {
	v, ok := mc.busRead(rmwAddr(mc))
	if !ok {
		return stepRepeat
	}
	mc.data = v
	return stepNext
}

func stepRMWDummyWrite(mc *CPU) int {
	// the unmodified value is written back while the ALU works
	mc.busWrite(rmwAddr(mc), mc.data)
	mc.data = mc.defn.modify(mc, mc.data)
	return stepNext
}

func stepRMWWrite(mc *CPU) int {
	mc.busWrite(rmwAddr(mc), mc.data)
	return stepDone
}

func rmwAddr(mc *CPU) uint16 {
	switch mc.defn.Mode {
	case ZeroPage, ZeroPageX, ZeroPageY:
		return uint16(mc.addrLo)
	}
	return mc.ea()
}

//
// indirect addressing steps
//

func stepPtr(mc *CPU) int {
	v, ok := mc.busRead(mc.PC)
	if !ok {
		return stepRepeat
	}
	mc.PC++
	mc.ptr = v
	return stepNext
}

func stepPtrAddX(mc *CPU) int {
	if _, ok := mc.busRead(uint16(mc.ptr)); !ok {
		return stepRepeat
	}
	mc.ptr += mc.X
	return stepNext
}

func stepPtrLo(mc *CPU) int {
	v, ok := mc.busRead(uint16(mc.ptr))
	if !ok {
		return stepRepeat
	}
	mc.addrLo = v
	return stepNext
}

func stepPtrHi(mc *CPU) int {
	v, ok := mc.busRead(uint16(mc.ptr + 1))
	if !ok {
		return stepRepeat
	}
	mc.addrHi = v
	return stepNext
}

func stepPtrHiIndexY(mc *CPU) int {
	v, ok := mc.busRead(uint16(mc.ptr + 1))
	if !ok {
		return stepRepeat
	}
	mc.addrHi = v
	sum := uint16(mc.addrLo) + uint16(mc.Y)
	mc.addrLo = uint8(sum)
	mc.pageCross = sum > 0xff
	return stepNext
}

//
// implied and accumulator steps
//

func stepImplied(mc *CPU) int {
	if _, ok := mc.busRead(mc.PC); !ok {
		return stepRepeat
	}
	mc.defn.implied(mc)
	return stepDone
}

func stepAccumulator(mc *CPU) int {
	if _, ok := mc.busRead(mc.PC); !ok {
		return stepRepeat
	}
	mc.A = mc.defn.modify(mc, mc.A)
	return stepDone
}

//
// branch steps
//

func stepBranchOperand(mc *CPU) int {
	v, ok := mc.busRead(mc.PC)
	if !ok {
		return stepRepeat
	}
	mc.PC++
	mc.data = v
	if !mc.defn.branch(mc) {
		return stepDone
	}
	return stepNext
}

func stepBranchTaken(mc *CPU) int {
	if _, ok := mc.busRead(mc.PC); !ok {
		return stepRepeat
	}
	target := mc.PC + uint16(int8(mc.data))
	if target&0xff00 == mc.PC&0xff00 {
		mc.PC = target
		return stepDone
	}
	// fix the high byte next cycle; the low byte is already correct
	mc.addrHi = uint8(target >> 8)
	mc.PC = mc.PC&0xff00 | target&0x00ff
	return stepNext
}

func stepBranchFix(mc *CPU) int {
	if _, ok := mc.busRead(mc.PC); !ok {
		return stepRepeat
	}
	mc.PC = uint16(mc.addrHi)<<8 | mc.PC&0x00ff
	return stepDone
}

//
// stack steps
//

func stepStackDummy(mc *CPU) int {
	if _, ok := mc.busRead(mc.PC); !ok {
		return stepRepeat
	}
	return stepNext
}

func stepPush(mc *CPU) int {
	mc.push(mc.defn.write(mc))
	return stepDone
}

func stepIncSP(mc *CPU) int {
	if _, ok := mc.busRead(0x0100 | uint16(mc.SP)); !ok {
		return stepRepeat
	}
	mc.SP++
	return stepNext
}

func stepPull(mc *CPU) int {
	v, ok := mc.busRead(0x0100 | uint16(mc.SP))
	if !ok {
		return stepRepeat
	}
	mc.defn.read(mc, v)
	return stepDone
}

//
// JMP, JSR, RTS, RTI steps
//

func stepJmp(mc *CPU) int {
	v, ok := mc.busRead(mc.PC)
	if !ok {
		return stepRepeat
	}
	mc.addrHi = v
	mc.PC = mc.ea()
	return stepDone
}

func stepJmpIndLo(mc *CPU) int {
	v, ok := mc.busRead(mc.ea())
	if !ok {
		return stepRepeat
	}
	mc.data = v
	return stepNext
}

func stepJmpIndHi(mc *CPU) int {
	// the pointer high byte is read without carrying into the page;
	// JMP (xxFF) wraps. a quirk of the NMOS 6502 that programs rely on
	v, ok := mc.busRead(mc.ea()&0xff00 | uint16(uint8(mc.addrLo+1)))
	if !ok {
		return stepRepeat
	}
	mc.PC = uint16(v)<<8 | uint16(mc.data)
	return stepDone
}

func stepJsrInternal(mc *CPU) int {
	if _, ok := mc.busRead(0x0100 | uint16(mc.SP)); !ok {
		return stepRepeat
	}
	return stepNext
}

func stepJsrFinal(mc *CPU) int {
	v, ok := mc.busRead(mc.PC)
	if !ok {
		return stepRepeat
	}
	mc.addrHi = v
	mc.PC = mc.ea()
	mc.recordCall(mc.PC)
	return stepDone
}

func stepRtsPullPCL(mc *CPU) int {
	v, ok := mc.busRead(0x0100 | uint16(mc.SP))
	if !ok {
		return stepRepeat
	}
	mc.SP++
	mc.PC = mc.PC&0xff00 | uint16(v)
	return stepNext
}

func stepRtsPullPCH(mc *CPU) int {
	v, ok := mc.busRead(0x0100 | uint16(mc.SP))
	if !ok {
		return stepRepeat
	}
	mc.PC = uint16(v)<<8 | mc.PC&0x00ff
	return stepNext
}

func stepRtsFinal(mc *CPU) int {
	if _, ok := mc.busRead(mc.PC); !ok {
		return stepRepeat
	}
	mc.PC++
	return stepDone
}

func stepRtiPullP(mc *CPU) int {
	v, ok := mc.busRead(0x0100 | uint16(mc.SP))
	if !ok {
		return stepRepeat
	}
	mc.SP++
	mc.Status.Load(v)
	mc.Status.Break = true
	return stepNext
}

func stepRtiPullPCH(mc *CPU) int {
	v, ok := mc.busRead(0x0100 | uint16(mc.SP))
	if !ok {
		return stepRepeat
	}
	mc.PC = uint16(v)<<8 | mc.PC&0x00ff
	return stepDone
}

//
// sequence tables, keyed by addressing mode
//

var readSequences = map[AddressingMode][]microStep{
	Immediate: {stepImmediate},
	ZeroPage:  {stepOperandLo, stepZpRead},
	ZeroPageX: {stepOperandLo, stepZpIndex, stepZpRead},
	ZeroPageY: {stepOperandLo, stepZpIndex, stepZpRead},
	Absolute:  {stepOperandLo, stepOperandHi, stepAbsRead},
	AbsoluteX: {stepOperandLo, stepOperandHiIndexed, stepIndexedReadMaybe, stepIndexedReadFixed},
	AbsoluteY: {stepOperandLo, stepOperandHiIndexed, stepIndexedReadMaybe, stepIndexedReadFixed},
	IndirectX: {stepPtr, stepPtrAddX, stepPtrLo, stepPtrHi, stepAbsRead},
	IndirectY: {stepPtr, stepPtrLo, stepPtrHiIndexY, stepIndexedReadMaybe, stepIndexedReadFixed},
}

var writeSequences = map[AddressingMode][]microStep{
	ZeroPage:  {stepOperandLo, stepZpWrite},
	ZeroPageX: {stepOperandLo, stepZpIndex, stepZpWrite},
	ZeroPageY: {stepOperandLo, stepZpIndex, stepZpWrite},
	Absolute:  {stepOperandLo, stepOperandHi, stepAbsWrite},
	AbsoluteX: {stepOperandLo, stepOperandHiIndexed, stepIndexedDummyRead, stepIndexedWrite},
	AbsoluteY: {stepOperandLo, stepOperandHiIndexed, stepIndexedDummyRead, stepIndexedWrite},
	IndirectX: {stepPtr, stepPtrAddX, stepPtrLo, stepPtrHi, stepAbsWrite},
	IndirectY: {stepPtr, stepPtrLo, stepPtrHiIndexY, stepIndexedDummyRead, stepIndexedWrite},
}

var rmwSequences = map[AddressingMode][]microStep{
	ZeroPage:  {stepOperandLo, stepRMWRead, stepRMWDummyWrite, stepRMWWrite},
	ZeroPageX: {stepOperandLo, stepZpIndex, stepRMWRead, stepRMWDummyWrite, stepRMWWrite},
	Absolute:  {stepOperandLo, stepOperandHi, stepRMWRead, stepRMWDummyWrite, stepRMWWrite},
	AbsoluteX: {stepOperandLo, stepOperandHiIndexed, stepIndexedDummyRead, stepRMWRead, stepRMWDummyWrite, stepRMWWrite},
	AbsoluteY: {stepOperandLo, stepOperandHiIndexed, stepIndexedDummyRead, stepRMWRead, stepRMWDummyWrite, stepRMWWrite},
	IndirectX: {stepPtr, stepPtrAddX, stepPtrLo, stepPtrHi, stepRMWRead, stepRMWDummyWrite, stepRMWWrite},
	IndirectY: {stepPtr, stepPtrLo, stepPtrHiIndexY, stepIndexedDummyRead, stepRMWRead, stepRMWDummyWrite, stepRMWWrite},
}

var (
	impliedSeq     = []microStep{stepImplied}
	accumulatorSeq = []microStep{stepAccumulator}
	branchSeq      = []microStep{stepBranchOperand, stepBranchTaken, stepBranchFix}
	pushSeq        = []microStep{stepStackDummy, stepPush}
	pullSeq        = []microStep{stepStackDummy, stepIncSP, stepPull}
	jmpSeq         = []microStep{stepOperandLo, stepJmp}
	jmpIndSeq      = []microStep{stepOperandLo, stepOperandHi, stepJmpIndLo, stepJmpIndHi}
	jsrSeq         = []microStep{stepOperandLo, stepJsrInternal, stepIntPushPCH, stepIntPushPCL, stepJsrFinal}
	rtsSeq         = []microStep{stepStackDummy, stepIncSP, stepRtsPullPCL, stepRtsPullPCH, stepRtsFinal}
	rtiSeq         = []microStep{stepStackDummy, stepIncSP, stepRtiPullP, stepRtsPullPCL, stepRtiPullPCH}
)
