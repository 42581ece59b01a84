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

package hardware

import (
	"github.com/jetsetilly/gopherc64/hardware/cpu"
)

// Step advances the machine by one system clock. The order of operation
// within the tick mirrors the phases of the real clock:
//
//  1. the VIC runs its cycle, possibly pulling BA (and with it the CPU
//     RDY line) low
//  2. the CPU runs one micro-step; a read step with RDY low repeats
//  3. the two CIAs run their cycle, possibly raising IRQ or NMI
//  4. the SID is told how far the clock has advanced
//  5. every tenth of a second of simulated time the TOD clocks tick
//
// Returns true at the end of a frame.
func (c64 *C64) Step() (bool, error) {
	c64.Cycles++

	endOfFrame := c64.VIC.Step()

	if err := c64.CPU.ExecuteCycle(); err != nil {
		c64.PostMessage(MsgCPUHalted)
		return endOfFrame, err
	}

	c64.CIA1.Step()
	c64.CIA2.Step()

	if c64.Datasette != nil {
		// the motor is driven from bit 5 of the processor port, active
		// low
		c64.Datasette.SetMotor(c64.Mem.Port.Lines()&0x20 == 0)
		c64.Datasette.Step()
	}

	c64.SID.ExecuteUntil(c64.Cycles)

	c64.todCounter--
	if c64.todCounter == 0 {
		c64.todCounter = c64.clockFrequency / 10
		c64.CIA1.TODTick()
		c64.CIA2.TODTick()
	}

	return endOfFrame, nil
}

// StepInstruction advances the machine until the CPU reaches the next
// instruction boundary. Used by the debugger.
func (c64 *C64) StepInstruction() error {
	// move off the current boundary first
	for {
		if _, err := c64.Step(); err != nil {
			return err
		}
		if !c64.CPU.AtInstructionBoundary() {
			break
		}
		// a CPU frozen by the RDY line stays on the boundary; keep
		// ticking
		if c64.CPU.ErrorState() != cpu.OK {
			return nil
		}
	}

	for !c64.CPU.AtInstructionBoundary() {
		if _, err := c64.Step(); err != nil {
			return err
		}
		if c64.CPU.ErrorState() != cpu.OK {
			return nil
		}
	}

	return nil
}
