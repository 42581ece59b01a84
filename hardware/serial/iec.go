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

// Package serial models the IEC serial bus between the C64 and its
// drives. Only the bus coupling is implemented here: the three open
// collector lines driven from CIA 2 port A and by any attached device.
// Drive internals live behind the Device interface.
package serial

// The three bus lines.
const (
	ATN = iota
	CLK
	DATA
)

// Device is anything attached to the bus: a disk drive, a printer. A
// device observes line transitions and contributes its own pull on the
// CLK and DATA lines.
type Device interface {
	// LinesChanged is called whenever the C64 side changes a line.
	// atn, clk and data are the resulting bus levels (true = released)
	LinesChanged(atn bool, clk bool, data bool)

	// Pull returns the device's current pull on CLK and DATA (true =
	// pulling the line low)
	Pull() (clk bool, data bool)
}

// Bus is the IEC serial bus. The wired-AND of all pulls determines the
// level of each line.
type Bus struct {
	// the C64 side pulls, from CIA 2 port A bits 3 to 5
	hostATN  bool
	hostCLK  bool
	hostDATA bool

	devices []Device
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	return &Bus{}
}

// Attach adds a device to the bus.
func (bus *Bus) Attach(dev Device) {
	bus.devices = append(bus.devices, dev)
}

// SetHostLines updates the pulls of the C64 side. The arguments are the
// raw output bits of CIA 2 port A: bit 3 ATN out, bit 4 CLK out, bit 5
// DATA out. An output bit of 1 pulls the line low (the port drives
// inverters).
func (bus *Bus) SetHostLines(portA uint8) {
	atn := portA&0x08 != 0
	clk := portA&0x10 != 0
	data := portA&0x20 != 0

	if atn == bus.hostATN && clk == bus.hostCLK && data == bus.hostDATA {
		return
	}
	bus.hostATN = atn
	bus.hostCLK = clk
	bus.hostDATA = data

	a, c, d := bus.Lines()
	for _, dev := range bus.devices {
		dev.LinesChanged(a, c, d)
	}
}

// Lines returns the resolved bus levels (true = released/high).
func (bus *Bus) Lines() (atn bool, clk bool, data bool) {
	atn = !bus.hostATN
	clk = !bus.hostCLK
	data = !bus.hostDATA

	for _, dev := range bus.devices {
		c, d := dev.Pull()
		clk = clk && !c
		data = data && !d
	}
	return atn, clk, data
}

// PortABits returns the CLK and DATA input bits as seen on CIA 2 port A
// bits 6 and 7 (low on the port when the line is low).
func (bus *Bus) PortABits() uint8 {
	_, clk, data := bus.Lines()
	v := uint8(0x3f)
	if clk {
		v |= 0x40
	}
	if data {
		v |= 0x80
	}
	return v
}
