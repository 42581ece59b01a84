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

// Run sets the emulation running as fast as possible. continueCheck is
// called at the end of every frame; returning false stops the run. A
// CPU halt (breakpoint, illegal instruction) also stops the run.
func (c64 *C64) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	for {
		endOfFrame, err := c64.Step()
		if err != nil {
			return err
		}

		if c64.CPU.ErrorState() != cpu.OK {
			c64.PostMessage(MsgBreakpoint)
			return nil
		}

		if endOfFrame {
			cont, err := continueCheck()
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
		}
	}
}

// RunForCycles advances the machine by the specified number of system
// clocks. Useful for tests and batch runs.
func (c64 *C64) RunForCycles(cycles uint64) error {
	target := c64.Cycles + cycles
	for c64.Cycles < target {
		if _, err := c64.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunForFrameCount sets the emulator running for the specified number
// of frames. The callback, if non-nil, runs at the end of every frame.
func (c64 *C64) RunForFrameCount(numFrames int, callback func() error) error {
	frames := 0
	for frames < numFrames {
		endOfFrame, err := c64.Step()
		if err != nil {
			return err
		}
		if endOfFrame {
			frames++
			if callback != nil {
				if err := callback(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
