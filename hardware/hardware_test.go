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

package hardware_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/gopherc64/curated"
	"github.com/jetsetilly/gopherc64/hardware"
	"github.com/jetsetilly/gopherc64/hardware/vic"
	"github.com/jetsetilly/gopherc64/test"
)

// build a machine with a minimal "kernal" whose reset vector points at
// a program in RAM
func startup(t *testing.T, program ...uint8) *hardware.C64 {
	t.Helper()

	c64 := hardware.NewC64(vic.MOS6569PAL)

	// reset vector to 0x1000
	c64.Mem.Kernal[0x1ffc] = 0x00
	c64.Mem.Kernal[0x1ffd] = 0x10
	copy(c64.Mem.RAM[0x1000:], program)

	return c64
}

func TestSnapshotRoundTrip(t *testing.T) {
	// a busy little program: increment a counter forever
	c64 := startup(t, 0xe6, 0x80, 0x4c, 0x00, 0x10)

	test.ExpectedSuccess(t, c64.RunForCycles(5000))

	// snapshot and restore must be bit identical
	snap := c64.SnapshotToBuffer()
	test.ExpectedSuccess(t, c64.SnapshotFromBuffer(snap))
	snap2 := c64.SnapshotToBuffer()
	test.Equate(t, bytes.Equal(snap, snap2), true)

	// running on from the restored state must match running on from the
	// original state
	test.ExpectedSuccess(t, c64.RunForCycles(1000))
	after1 := c64.SnapshotToBuffer()

	test.ExpectedSuccess(t, c64.SnapshotFromBuffer(snap))
	test.ExpectedSuccess(t, c64.RunForCycles(1000))
	after2 := c64.SnapshotToBuffer()

	test.Equate(t, bytes.Equal(after1, after2), true)
}

func TestSnapshotRejectsBadMagic(t *testing.T) {
	c64 := startup(t, 0x4c, 0x00, 0x10)
	test.ExpectedSuccess(t, c64.RunForCycles(100))

	before := c64.SnapshotToBuffer()

	bad := append([]uint8{}, before...)
	bad[0] = 'X'
	err := c64.SnapshotFromBuffer(bad)
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, curated.InvalidSnapshot), true)

	// state is preserved
	after := c64.SnapshotToBuffer()
	test.Equate(t, bytes.Equal(before, after), true)
}

func TestSnapshotRejectsVersionMismatch(t *testing.T) {
	c64 := startup(t, 0x4c, 0x00, 0x10)
	test.ExpectedSuccess(t, c64.RunForCycles(100))

	bad := c64.SnapshotToBuffer()
	bad[4]++
	test.ExpectedFailure(t, c64.SnapshotFromBuffer(bad))
}

func TestCIA1TimerInterruptsCPU(t *testing.T) {
	// program: CLI, then spin. the IRQ handler at 0x2000 increments
	// 0x80 and returns
	c64 := startup(t, 0x58, 0x4c, 0x01, 0x10)

	// IRQ vector through the kernal rom
	c64.Mem.Kernal[0x1ffe] = 0x00
	c64.Mem.Kernal[0x1fff] = 0x20
	copy(c64.Mem.RAM[0x2000:], []uint8{
		0xe6, 0x80, // INC $80
		0xad, 0x0d, 0xdc, // LDA $DC0D (acknowledge)
		0x40, // RTI
	})

	// timer A: latch 0x100, continuous, interrupts enabled
	c64.Mem.Poke(0xdc04, 0x00)
	c64.Mem.Poke(0xdc05, 0x01)
	c64.Mem.Poke(0xdc0d, 0x81)
	c64.Mem.Poke(0xdc0e, 0x11)

	test.ExpectedSuccess(t, c64.RunForCycles(3000))

	// around ten underflows in 3000 cycles; at least five handler runs
	// even allowing for interrupt latency
	if c64.Mem.RAM[0x80] < 5 {
		t.Errorf("IRQ handler ran %d times, expected more", c64.Mem.RAM[0x80])
	}
}

func TestVICBankSelection(t *testing.T) {
	c64 := startup(t, 0x4c, 0x00, 0x10)

	// CIA 2 port A low bits select the VIC bank, inverted
	c64.Mem.Poke(0xdd02, 0x03) // DDR: bits 0-1 output
	c64.Mem.Poke(0xdd00, 0x00) // drive 00 -> bank 3
	test.Equate(t, c64.VIC.Bank(), 0xc000)

	c64.Mem.Poke(0xdd00, 0x03) // drive 11 -> bank 0
	test.Equate(t, c64.VIC.Bank(), 0x0000)
}

func TestOpenBusRead(t *testing.T) {
	c64 := startup(t, 0x4c, 0x00, 0x10)

	c64.Mem.RAM[0x4000] = 0x5a
	_ = c64.Mem.Peek(0x4000)
	test.Equate(t, c64.Mem.Peek(0xdef0), 0x5a)
}
