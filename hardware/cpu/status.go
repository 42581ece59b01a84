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

import "strings"

// Bit positions of the flags in the packed status byte.
const (
	NFlag = 0x80
	VFlag = 0x40
	BFlag = 0x10
	DFlag = 0x08
	IFlag = 0x04
	ZFlag = 0x02
	CFlag = 0x01
)

// StatusRegister is the 6510 status register. Individual flags are
// stored as booleans; the packed representation is only produced when
// the register crosses the bus (PHP, BRK, interrupts).
type StatusRegister struct {
	Sign             bool
	Overflow         bool
	Break            bool
	DecimalMode      bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// Reset the status register to its power-on state.
func (sr *StatusRegister) Reset() {
	*sr = StatusRegister{}
	sr.Break = true
	sr.InterruptDisable = true
}

func (sr StatusRegister) String() string {
	s := strings.Builder{}
	flag := func(set bool, ch string) {
		if set {
			s.WriteString(strings.ToUpper(ch))
		} else {
			s.WriteString(ch)
		}
	}
	flag(sr.Sign, "n")
	flag(sr.Overflow, "v")
	s.WriteString("-")
	flag(sr.Break, "b")
	flag(sr.DecimalMode, "d")
	flag(sr.InterruptDisable, "i")
	flag(sr.Zero, "z")
	flag(sr.Carry, "c")
	return s.String()
}

// Value returns the packed status byte. The unused bit 5 always reads
// as 1; the B flag position follows the Break field. PHP and BRK force
// it set, IRQ and NMI push it cleared (see ValueWithClearedB).
func (sr StatusRegister) Value() uint8 {
	v := uint8(0x20)
	if sr.Sign {
		v |= NFlag
	}
	if sr.Overflow {
		v |= VFlag
	}
	if sr.Break {
		v |= BFlag
	}
	if sr.DecimalMode {
		v |= DFlag
	}
	if sr.InterruptDisable {
		v |= IFlag
	}
	if sr.Zero {
		v |= ZFlag
	}
	if sr.Carry {
		v |= CFlag
	}
	return v
}

// ValueWithClearedB returns the packed status byte with the B flag
// position cleared. Used when an IRQ or NMI pushes the register.
func (sr StatusRegister) ValueWithClearedB() uint8 {
	return sr.Value() &^ BFlag
}

// Load unpacks a status byte into the register. Bit 5 is ignored. The B
// flag position is accepted as given; callers that pull the register
// from the stack force it set first (see PLP and RTI).
func (sr *StatusRegister) Load(v uint8) {
	sr.Sign = v&NFlag != 0
	sr.Overflow = v&VFlag != 0
	sr.Break = v&BFlag != 0
	sr.DecimalMode = v&DFlag != 0
	sr.InterruptDisable = v&IFlag != 0
	sr.Zero = v&ZFlag != 0
	sr.Carry = v&CFlag != 0
}
