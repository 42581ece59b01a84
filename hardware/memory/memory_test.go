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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gopherc64/hardware/memory"
	"github.com/jetsetilly/gopherc64/test"
)

func TestDefaultBanking(t *testing.T) {
	mem := memory.NewMemory()
	mem.Kernal[0x1ffc] = 0x34
	mem.Basic[0x0000] = 0x94
	mem.RAM[0xfffc] = 0xff
	mem.RAM[0xa000] = 0xff

	// all three lines float high after reset so the full ROM set is in
	test.Equate(t, mem.Peek(0xfffc), 0x34)
	test.Equate(t, mem.Peek(0xa000), 0x94)

	// banking out HIRAM drops both kernal and basic
	mem.Poke(0x0000, 0x2f)
	mem.Poke(0x0001, 0x25)
	test.Equate(t, mem.Peek(0xfffc), 0xff)
	test.Equate(t, mem.Peek(0xa000), 0xff)
}

func TestCharROMvsIO(t *testing.T) {
	mem := memory.NewMemory()
	mem.Char[0x0000] = 0x3c
	mem.RAM[0xd000] = 0xaa

	mem.Poke(0x0000, 0x2f)

	// CHAREN low: character rom replaces the I/O window
	mem.Poke(0x0001, 0x23)
	test.Equate(t, mem.Peek(0xd000), 0x3c)

	// all lines low: RAM everywhere
	mem.Poke(0x0001, 0x20)
	test.Equate(t, mem.Peek(0xd000), 0xaa)
}

func TestROMWriteFallsThrough(t *testing.T) {
	mem := memory.NewMemory()
	mem.Kernal[0x0000] = 0x85

	mem.Poke(0xe000, 0x42)
	test.Equate(t, mem.Peek(0xe000), 0x85)
	test.Equate(t, mem.RAM[0xe000], 0x42)
}

func TestColorRAMNibble(t *testing.T) {
	mem := memory.NewMemory()

	mem.Poke(0xd800, 0xff)
	test.Equate(t, mem.Color[0], 0x0f)

	// upper nibble of a color RAM read comes from the last bus value
	mem.RAM[0x1000] = 0xa0
	_ = mem.Peek(0x1000)
	test.Equate(t, mem.Peek(0xd800), 0xaf)
}

func TestOpenBus(t *testing.T) {
	mem := memory.NewMemory()
	mem.RAM[0x2000] = 0x56
	_ = mem.Peek(0x2000)

	// expansion port area with no cartridge returns the last bus byte
	test.Equate(t, mem.Peek(0xde00), 0x56)
}

func TestVICCharShadow(t *testing.T) {
	mem := memory.NewMemory()
	mem.Char[0x0123] = 0x77
	mem.RAM[0x1123] = 0x11
	mem.RAM[0x9123] = 0x22
	mem.RAM[0x5123] = 0x33

	// banks 0 and 2 shadow the character rom at offset 0x1000
	test.Equate(t, mem.VICRead(0x1123), 0x77)
	test.Equate(t, mem.VICRead(0x9123), 0x77)

	// bank 1 does not
	test.Equate(t, mem.VICRead(0x5123), 0x33)
}
