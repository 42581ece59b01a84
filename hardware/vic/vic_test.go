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

package vic_test

import (
	"testing"

	"github.com/jetsetilly/gopherc64/hardware/memory"
	"github.com/jetsetilly/gopherc64/hardware/vic"
	"github.com/jetsetilly/gopherc64/test"
)

type mockCPU struct {
	rdy bool
	irq bool
	pc  uint16
}

func (m *mockCPU) SetRDY(state bool)     { m.rdy = state }
func (m *mockCPU) SetIRQVIC(state bool)  { m.irq = state }
func (m *mockCPU) ProgramCounter() uint16 { return m.pc }

func startup(t *testing.T, model vic.ChipModel) (*vic.VIC, *memory.Memory, *mockCPU) {
	t.Helper()
	mem := memory.NewMemory()
	cpu := &mockCPU{rdy: true}
	v := vic.NewVIC(mem, cpu, model)
	return v, mem, cpu
}

func TestCounterInvariants(t *testing.T) {
	v, _, _ := startup(t, vic.MOS6569PAL)

	// a frame and a bit, sampling the internal counters every cycle
	for i := 0; i < vic.PALLinesPerFrame*vic.PALCyclesPerLine+1000; i++ {
		v.Step()

		vc, rc, vmli := v.Counters()
		if vc >= 1024 {
			t.Fatalf("VC out of range: %d", vc)
		}
		if rc >= 8 {
			t.Fatalf("RC out of range: %d", rc)
		}
		if vmli >= 64 {
			t.Fatalf("VMLI out of range: %d", vmli)
		}
		for s := 0; s < 8; s++ {
			mc, mcbase := v.SpriteCounters(s)
			if mc > 63 || mcbase > 63 {
				t.Fatalf("sprite %d counters out of range: %d %d", s, mc, mcbase)
			}
		}
	}
}

func TestFiveRefreshesPerLine(t *testing.T) {
	v, _, _ := startup(t, vic.MOS6569PAL)

	lines := 0
	for lines < 400 {
		v.Step()
		if v.RasterCycle() == 1 {
			// a rasterline has just completed; its counters have not
			// been reset yet
			test.Equate(t, v.RAccessCount, 5)
			lines++
		}
	}
}

func TestBadLineCAccesses(t *testing.T) {
	v, _, _ := startup(t, vic.MOS6569PAL)

	// DEN is set from reset so bad lines occur on every rasterline in
	// 0x30 to 0xf7 whose low bits match YSCROLL (0)
	badlines := 0
	for frame := false; !frame; {
		frame = v.Step()
		if v.RasterCycle() == 1 {
			y := v.Rasterline()
			if y >= 0x30 && y <= 0xf7 && y&0x07 == 0 {
				test.Equate(t, v.CAccessCount, 40)
				badlines++
			} else {
				test.Equate(t, v.CAccessCount, 0)
			}
		}
	}
	test.Equate(t, badlines, 25)
}

func TestBadLineFreezesCPU(t *testing.T) {
	v, _, cpu := startup(t, vic.MOS6569PAL)

	// find a bad line and check RDY is low during the cAccess cycles
	for {
		v.Step()
		if v.BadLineCondition() && v.RasterCycle() == 20 {
			break
		}
	}
	test.Equate(t, cpu.rdy, false)
}

func TestRasterIRQ(t *testing.T) {
	v, _, cpu := startup(t, vic.MOS6569PAL)

	// enable the raster IRQ for line 100
	v.Poke(0x12, 100)
	v.Poke(0x11, 0x10)
	v.Poke(0x1a, 0x01)

	count := 0
	frames := 0
	for frames < 50 {
		if v.Step() {
			frames++
		}
		if cpu.irq {
			// the handler acknowledges by writing the latch
			test.Equate(t, v.Rasterline(), 100)
			v.Poke(0x19, 0x0f)
			count++
		}
	}

	// exactly one interrupt per frame
	test.Equate(t, count, 50)
}

func TestSpriteSpriteCollision(t *testing.T) {
	v, mem, _ := startup(t, vic.MOS6569PAL)

	// sprite pointers at the end of the default video matrix; both
	// sprites use solid data at 0x0340
	mem.RAM[0x07f8] = 13
	mem.RAM[0x07f9] = 13
	for i := 0; i < 63; i++ {
		mem.RAM[0x0340+i] = 0xff
	}

	// overlapping positions inside the visible area
	v.Poke(0x00, 100) // sprite 0 X
	v.Poke(0x01, 100) // sprite 0 Y
	v.Poke(0x02, 110) // sprite 1 X
	v.Poke(0x03, 100) // sprite 1 Y
	v.Poke(0x15, 0x03)

	for frame := 0; frame < 2; frame++ {
		for !v.Step() {
		}
	}

	// both sprites collided; the register clears on read
	test.Equate(t, v.Peek(0x1e), 0x03)
	test.Equate(t, v.Peek(0x1e), 0x00)
}

func TestLightPen(t *testing.T) {
	v, _, cpu := startup(t, vic.MOS6569PAL)

	// run into the middle of a frame, enable the light pen IRQ source
	v.Poke(0x1a, 0x08)
	for i := 0; i < 100*vic.PALCyclesPerLine; i++ {
		v.Step()
	}

	y := uint8(v.Rasterline())
	v.TriggerLightPenInterrupt()

	test.Equate(t, v.Peek(0x14), y)
	test.Equate(t, cpu.irq, true)
	test.Equate(t, v.Peek(0x19)&0x08, 0x08)

	// only one trigger per frame
	v.Poke(0x19, 0x0f)
	v.TriggerLightPenInterrupt()
	test.Equate(t, v.Peek(0x19)&0x08, 0x00)
}

func TestNTSCGeometry(t *testing.T) {
	v, _, _ := startup(t, vic.MOS6567NTSC)

	cycles := 0
	for !v.Step() {
		cycles++
	}
	cycles++

	test.Equate(t, cycles, vic.NTSCLinesPerFrame*vic.NTSCCyclesPerLine)
}

func TestRasterlineWrap(t *testing.T) {
	v, _, _ := startup(t, vic.MOS6569PAL)

	// the yCounter resets in cycle 2 of the first physical line; after
	// one full frame plus two cycles it must read zero
	for !v.Step() {
	}
	v.Step()
	v.Step()
	test.Equate(t, v.Rasterline(), 0)
}
