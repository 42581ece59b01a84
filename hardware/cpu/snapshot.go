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

import (
	"github.com/jetsetilly/gopherc64/curated"
	"github.com/jetsetilly/gopherc64/snapshot"
)

// identifies which micro sequence the CPU is executing. the sequence
// slices themselves cannot be serialised
const (
	seqIDFetch uint8 = iota
	seqIDInterrupt
	seqIDBrk
	seqIDInstruction
)

// scratch fields for the snapshot; see PreSnapshot and
// PostSnapshotRestore
type snapshotScratch struct {
	seqID uint8
	step  uint8
	errSt uint8
}

// SnapshotLabel implements the snapshot.Component interface.
func (mc *CPU) SnapshotLabel() string {
	return "cpu"
}

// PreSnapshot implements the snapshot.Preparer interface. The live
// micro sequence is reduced to an identifier.
func (mc *CPU) PreSnapshot() {
	switch {
	case len(mc.seq) > 0 && &mc.seq[0] == &fetchSeq[0]:
		mc.scratch.seqID = seqIDFetch
	case len(mc.seq) > 0 && &mc.seq[0] == &interruptSeq[0]:
		mc.scratch.seqID = seqIDInterrupt
	case len(mc.seq) > 0 && &mc.seq[0] == &brkSeq[0]:
		mc.scratch.seqID = seqIDBrk
	default:
		mc.scratch.seqID = seqIDInstruction
	}
	mc.scratch.step = uint8(mc.step)
	mc.scratch.errSt = uint8(mc.errorState)
}

// PostSnapshotRestore implements the snapshot.Restorer interface. The
// micro sequence is rebuilt from its identifier.
func (mc *CPU) PostSnapshotRestore() error {
	switch mc.scratch.seqID {
	case seqIDFetch:
		mc.seq = fetchSeq
	case seqIDInterrupt:
		mc.seq = interruptSeq
	case seqIDBrk:
		mc.seq = brkSeq
	case seqIDInstruction:
		mc.defn = &definitions[mc.opcode]
		if mc.defn.seq == nil {
			return curated.Errorf(curated.InvalidSnapshot, "cpu mid-instruction state invalid")
		}
		mc.seq = mc.defn.seq
	default:
		return curated.Errorf(curated.InvalidSnapshot, "cpu sequence id invalid")
	}

	if int(mc.scratch.step) >= len(mc.seq) {
		return curated.Errorf(curated.InvalidSnapshot, "cpu step out of range")
	}
	mc.step = int(mc.scratch.step)
	mc.errorState = ErrorState(mc.scratch.errSt)

	return nil
}

// SnapshotItems implements the snapshot.Component interface.
func (mc *CPU) SnapshotItems() []snapshot.Item {
	items := []snapshot.Item{
		{Ptr: &mc.A},
		{Ptr: &mc.X},
		{Ptr: &mc.Y},
		{Ptr: &mc.SP},
		{Ptr: &mc.PC},
		{Ptr: &mc.Status.Sign},
		{Ptr: &mc.Status.Overflow},
		{Ptr: &mc.Status.Break},
		{Ptr: &mc.Status.DecimalMode},
		{Ptr: &mc.Status.InterruptDisable},
		{Ptr: &mc.Status.Zero},
		{Ptr: &mc.Status.Carry},
		{Ptr: &mc.opcode},
		{Ptr: &mc.addrLo},
		{Ptr: &mc.addrHi},
		{Ptr: &mc.ptr},
		{Ptr: &mc.data},
		{Ptr: &mc.pageCross},
		{Ptr: &mc.PCAtCycle0},
		{Ptr: &mc.RdyLine},
		{Ptr: &mc.irqLine},
		{Ptr: &mc.nmiLine},
		{Ptr: &mc.nmiPending},
		{Ptr: &mc.nextPossibleIRQ},
		{Ptr: &mc.nextPossibleNMI},
		{Ptr: &mc.oldI},
		{Ptr: &mc.useOldI},
		{Ptr: &mc.cycles},
		{Ptr: &mc.interruptVector},
		{Ptr: &mc.interruptDummy},
		{Ptr: &mc.scratch.seqID},
		{Ptr: &mc.scratch.step},
		{Ptr: &mc.scratch.errSt},
		{Ptr: &mc.callStackPtr},
	}

	for i := range mc.callStack {
		items = append(items, snapshot.Item{Ptr: &mc.callStack[i]})
	}

	return items
}
