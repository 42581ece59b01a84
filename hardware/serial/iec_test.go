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

package serial_test

import (
	"testing"

	"github.com/jetsetilly/gopherc64/hardware/serial"
	"github.com/jetsetilly/gopherc64/test"
)

type mockDrive struct {
	atn, clk, data bool

	pullClk  bool
	pullData bool

	notified int
}

func (d *mockDrive) LinesChanged(atn bool, clk bool, data bool) {
	d.atn = atn
	d.clk = clk
	d.data = data
	d.notified++
}

func (d *mockDrive) Pull() (bool, bool) {
	return d.pullClk, d.pullData
}

func TestHostPulls(t *testing.T) {
	bus := serial.NewBus()
	drive := &mockDrive{}
	bus.Attach(drive)

	// all released
	atn, clk, data := bus.Lines()
	test.Equate(t, atn && clk && data, true)

	// host asserts ATN (port A bit 3)
	bus.SetHostLines(0x08)
	test.Equate(t, drive.notified, 1)
	test.Equate(t, drive.atn, false)
	test.Equate(t, drive.clk, true)

	// no change, no notification
	bus.SetHostLines(0x08)
	test.Equate(t, drive.notified, 1)
}

func TestWiredAnd(t *testing.T) {
	bus := serial.NewBus()
	drive := &mockDrive{pullData: true}
	bus.Attach(drive)

	// the drive holds DATA low even though the host releases it
	_, _, data := bus.Lines()
	test.Equate(t, data, false)

	// visible on the port A input bits: bit 7 low
	test.Equate(t, bus.PortABits()&0x80, 0x00)
	test.Equate(t, bus.PortABits()&0x40, 0x40)
}
