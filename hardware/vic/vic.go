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

// Package vic implements the 6567/6569 video interface controller. The
// VIC owns the system clock: a PAL frame is 312 rasterlines of 63
// cycles, an NTSC frame 263 lines of 65 cycles, and the scheduler calls
// Step() once per cycle.
//
// Every cycle runs the same five phases in order: frame flipflop logic,
// drawing (through the pixel engine), the first bus fetch, the
// IRQ/sprite/counter/BA logic, and the second bus fetch. Which fetches
// happen in which cycle follows the fixed schedule in cycles.go,
// transcribed from Christian Bauer's VIC article and the 6569 die
// analyses.
package vic

import (
	"fmt"

	"github.com/jetsetilly/gopherc64/hardware/memory"
	"github.com/jetsetilly/gopherc64/hardware/vic/pixelengine"
	"github.com/jetsetilly/gopherc64/logger"
)

// ChipModel selects between the NTSC and PAL revisions of the chip.
type ChipModel int

// List of valid ChipModel values.
const (
	MOS6569PAL ChipModel = iota
	MOS6567NTSC
)

// Frame geometry per chip model.
const (
	PALCyclesPerLine  = 63
	PALLinesPerFrame  = 312
	NTSCCyclesPerLine = 65
	NTSCLinesPerFrame = 263

	// NTSCYCounterOverflowLine is the physical rasterline in which the
	// NTSC yCounter wraps to zero. Chip revision 6567R8; the older
	// 6567R56A wraps one line earlier, change this constant if that
	// revision is ever needed.
	NTSCYCounterOverflowLine = 238

	PALUpperVBlank  = 16
	NTSCUpperVBlank = 16
)

// sprite bits for the BA schedule
const (
	spr0 uint8 = 1 << iota
	spr1
	spr2
	spr3
	spr4
	spr5
	spr6
	spr7
)

// IRQ source bits in register 0xd019.
const (
	IRQRaster           uint8 = 0x01
	IRQSpriteBackground uint8 = 0x02
	IRQSpriteSprite     uint8 = 0x04
	IRQLightPen         uint8 = 0x08
)

// CPULines is the VIC's handle on the processor: the BA line freezes
// the CPU through RDY and the chip's interrupt output drives one bit of
// the CPU IRQ line.
type CPULines interface {
	SetRDY(state bool)
	SetIRQVIC(state bool)

	// ProgramCounter is needed for an obscure detail of the first three
	// cAccesses after BA falls (see cAccess)
	ProgramCounter() uint16
}

// VIC implements the video interface controller.
type VIC struct {
	mem *memory.Memory
	cpu CPULines

	// PixelEngine encapsulates everything related to the synthesis of
	// pixels
	PixelEngine *pixelengine.PixelEngine

	chipModel ChipModel

	// working copy of the pixel engine pipe. latched into the engine by
	// preparePixelEngine one cycle before drawing
	p pixelengine.Pipe

	// color pipes
	bp pixelengine.BorderColorPipe
	cp pixelengine.CanvasColorPipe
	sp pixelengine.SpriteColorPipe

	// I/O registers. registers with live semantics are shadowed by the
	// fields below; iomem keeps the raw written values
	iomem [64]uint8

	// physical rasterline and cycle within it. line counts 0 to
	// linesPerFrame-1; rasterCycle counts 1 to cyclesPerLine
	line        int
	rasterCycle int

	// 9 bit rasterline counter as seen by the registers. the overflow
	// to zero happens in cycle 2 (see yCounterOverflow)
	yCounter uint32

	// set in cycles 1, 63 and 65 when yCounter matches the IRQ line;
	// the raster IRQ is edge triggered on this condition
	yCounterEqualsIRQLine bool

	// internal counters
	registerVC     uint16 // 10 bit video counter
	registerVCBASE uint16 // 10 bit video counter base
	registerRC     uint8  // 3 bit row counter
	registerVMLI   uint8  // 6 bit video matrix line index

	refreshCounter uint8

	// the 40 byte character and color line buffers filled by the
	// cAccesses of a bad line
	characterSpace [40]uint8
	colorSpace     [40]uint8

	// address and data bus as driven by the VIC. observable by the
	// debugger and by open bus reads
	addrBus uint16
	dataBus uint8

	// start address of the 16KiB bank selected by CIA 2
	bankAddr uint16

	vblank bool

	badLineCondition        bool
	denWasSetInRasterline30 bool
	displayState            bool

	verticalFrameFFsetCond   bool
	verticalFrameFFclearCond bool

	// BA line. non-zero means pulled low; the bits name the sprites
	// responsible (wired AND with the bad line pull encoded as bit 8)
	baLow           uint16
	baWentLowAt     uint64
	cycles          uint64

	// sprite state
	mc        [8]uint8
	mcbase    [8]uint8
	spritePtr [8]uint16

	spriteOnOff    uint8
	spriteDmaOnOff uint8
	expansionFF    uint8

	// bits the CPU cleared in 0xd017 during the write phase of cycle
	// 15. consumed by the MCBASE update of cycle 16
	clearedBitsInD017 uint8

	isFirstDMACycle  uint8
	isSecondDMACycle uint8

	lightpenIRQhasOccurred bool

	// counts of the bus accesses performed in the current rasterline.
	// exposed for the property tests
	RAccessCount int
	CAccessCount int

	// scratch fields bridging int-typed state into the snapshot
	scratchChipModel   uint8
	scratchLine        uint32
	scratchRasterCycle uint8
	scratchXCounter    uint32
}

// NewVIC is the preferred method of initialisation for the VIC type.
func NewVIC(mem *memory.Memory, cpu CPULines, model ChipModel) *VIC {
	vic := &VIC{
		mem:         mem,
		cpu:         cpu,
		PixelEngine: pixelengine.NewPixelEngine(),
	}
	vic.SetChipModel(model)
	vic.Reset()
	return vic
}

// Reset the VIC to its power-on state.
func (vic *VIC) Reset() {
	for i := range vic.iomem {
		vic.iomem[i] = 0
	}
	vic.p = pixelengine.Pipe{}
	vic.bp = pixelengine.BorderColorPipe{}
	vic.cp = pixelengine.CanvasColorPipe{}
	vic.sp = pixelengine.SpriteColorPipe{}

	vic.line = 0
	vic.rasterCycle = 1
	vic.yCounter = uint32(vic.LinesPerFrame())
	vic.registerVC = 0
	vic.registerVCBASE = 0
	vic.registerRC = 0
	vic.registerVMLI = 0
	vic.refreshCounter = 0
	vic.bankAddr = 0

	vic.badLineCondition = false
	vic.denWasSetInRasterline30 = false
	vic.displayState = false
	vic.baLow = 0
	vic.spriteOnOff = 0
	vic.spriteDmaOnOff = 0
	vic.expansionFF = 0xff
	vic.lightpenIRQhasOccurred = false

	// make the first frame look right before the kernal programs the
	// chip: light blue border, blue background, screen memory at 0x0400
	// and the display enabled
	vic.bp.BorderColor = pixelengine.LtBlue
	vic.cp.BackgroundColor[0] = pixelengine.Blue
	vic.iomem[0x18] = 0x10
	vic.p.CTRL1 = 0x10

	vic.PixelEngine.Reset()
	vic.cpu.SetRDY(true)
}

// SetChipModel switches the VIC between PAL and NTSC timing.
func (vic *VIC) SetChipModel(model ChipModel) {
	vic.chipModel = model
	logger.Logf("vic", "chip model %s", map[ChipModel]string{
		MOS6569PAL:  "6569 (PAL)",
		MOS6567NTSC: "6567 (NTSC)",
	}[model])
}

// IsPAL returns true when the VIC runs with PAL timing.
func (vic *VIC) IsPAL() bool {
	return vic.chipModel == MOS6569PAL
}

// CyclesPerLine returns the number of cycles in a rasterline for the
// selected chip model.
func (vic *VIC) CyclesPerLine() int {
	if vic.IsPAL() {
		return PALCyclesPerLine
	}
	return NTSCCyclesPerLine
}

// LinesPerFrame returns the number of rasterlines in a frame for the
// selected chip model.
func (vic *VIC) LinesPerFrame() int {
	if vic.IsPAL() {
		return PALLinesPerFrame
	}
	return NTSCLinesPerFrame
}

// Rasterline returns the current value of the rasterline counter.
func (vic *VIC) Rasterline() uint32 {
	return vic.yCounter
}

// RasterCycle returns the cycle number within the current rasterline,
// counting from 1.
func (vic *VIC) RasterCycle() int {
	return vic.rasterCycle
}

// Counters returns the internal VC, RC and VMLI counters. Exposed for
// the debugger and the property tests.
func (vic *VIC) Counters() (vc uint16, rc uint8, vmli uint8) {
	return vic.registerVC, vic.registerRC, vic.registerVMLI
}

// SpriteCounters returns the MC and MCBASE counters of a sprite.
func (vic *VIC) SpriteCounters(nr int) (mc uint8, mcbase uint8) {
	return vic.mc[nr], vic.mcbase[nr]
}

// BadLineCondition returns true while the bad line condition holds.
func (vic *VIC) BadLineCondition() bool {
	return vic.badLineCondition
}

// SetBank selects one of the four 16KiB banks the VIC can see. Wired to
// the inverted low bits of CIA 2 port A.
func (vic *VIC) SetBank(bank uint8) {
	vic.bankAddr = uint16(bank&0x03) << 14
}

// Bank returns the start address of the selected bank.
func (vic *VIC) Bank() uint16 {
	return vic.bankAddr
}

// DataBus returns the last value the VIC saw on its data bus.
func (vic *VIC) DataBus() uint8 {
	return vic.dataBus
}

// ScreenBuffer returns the stable front pixel buffer.
func (vic *VIC) ScreenBuffer() []uint32 {
	return vic.PixelEngine.ScreenBuffer()
}

func (vic *VIC) String() string {
	return fmt.Sprintf("(%d,%d) VC=%03x VCBASE=%03x RC=%d VMLI=%02d badline=%v display=%v BA=%v",
		vic.rasterCycle, vic.yCounter,
		vic.registerVC, vic.registerVCBASE, vic.registerRC, vic.registerVMLI,
		vic.badLineCondition, vic.displayState, vic.baLow != 0)
}

//
// properties of the control registers
//

func (vic *VIC) denBit() bool  { return vic.p.CTRL1&0x10 != 0 }
func (vic *VIC) bmmBit() bool  { return vic.p.CTRL1&0x20 != 0 }
func (vic *VIC) ecmBit() bool  { return vic.p.CTRL1&0x40 != 0 }
func (vic *VIC) isCSEL() bool  { return vic.p.CTRL2&0x08 != 0 }
func (vic *VIC) isRSEL() bool  { return vic.p.CTRL1&0x08 != 0 }
func (vic *VIC) yscroll() uint8 { return vic.p.CTRL1 & 0x07 }

// bits of register 0xd018 that address the video matrix and the
// character generator
func (vic *VIC) vm13to10() uint16 { return uint16(vic.iomem[0x18]&0xf0) }
func (vic *VIC) cb13to11() uint16 { return uint16(vic.iomem[0x18]&0x0e) }

// bmm and ecm as they were one cycle ago, via the latched pipe in the
// pixel engine. the address generator of the gAccess runs on the old
// values
func (vic *VIC) bmmBitInPreviousCycle() bool {
	return vic.PixelEngine.Pipe.CTRL1&0x20 != 0
}

func (vic *VIC) ecmBitInPreviousCycle() bool {
	return vic.PixelEngine.Pipe.CTRL1&0x40 != 0
}

// comparison values for the frame flipflops
func (vic *VIC) leftComparisonValue() int {
	if vic.isCSEL() {
		return 24
	}
	return 31
}

func (vic *VIC) rightComparisonValue() int {
	if vic.isCSEL() {
		return 344
	}
	return 335
}

func (vic *VIC) upperComparisonValue() uint32 {
	if vic.isRSEL() {
		return 51
	}
	return 55
}

func (vic *VIC) lowerComparisonValue() uint32 {
	if vic.isRSEL() {
		return 251
	}
	return 247
}

// rasterInterruptLine composes the 9 bit IRQ rasterline from register
// 0xd012 and bit 7 of 0xd011.
func (vic *VIC) rasterInterruptLine() uint32 {
	return uint32(vic.p.CTRL1&0x80)<<1 | uint32(vic.iomem[0x12])
}

//
// bad line and display state
//

// the bad line condition holds when the rasterline is inside the bad
// line window, its low three bits match YSCROLL and DEN was seen set at
// some cycle of rasterline 0x30 this frame
func (vic *VIC) updateBadLineCondition() {
	vic.badLineCondition = vic.yCounter >= 0x30 && vic.yCounter <= 0xf7 &&
		uint8(vic.yCounter&0x07) == vic.yscroll() &&
		vic.denWasSetInRasterline30
}

func (vic *VIC) updateDisplayState() {
	if vic.badLineCondition {
		vic.displayState = true
	}
}

//
// BA line and interrupts
//

// bit of baLow that marks the bad line pull (as opposed to a sprite)
const baBadLine = 0x100

func (vic *VIC) setBALow(pull uint16) {
	if vic.baLow == 0 && pull != 0 {
		vic.baWentLowAt = vic.cycles
	}
	vic.baLow = pull
	vic.cpu.SetRDY(pull == 0)
}

// cAccesses and sAccesses only deliver data once BA has been low for at
// least three cycles; until then the bus drivers are still tri-state
func (vic *VIC) baPulledDownForAtLeastThreeCycles() bool {
	return vic.baLow != 0 && vic.cycles-vic.baWentLowAt > 2
}

// BALow returns true while the VIC is pulling the BA line low.
func (vic *VIC) BALow() bool {
	return vic.baLow != 0
}

func (vic *VIC) triggerIRQ(source uint8) {
	vic.iomem[0x19] |= source
	if vic.iomem[0x1a]&source != 0 {
		vic.iomem[0x19] |= 0x80
		vic.cpu.SetIRQVIC(true)
	}
}

// TriggerLightPenInterrupt latches the current raster position into the
// light pen registers and raises the light pen IRQ source. Only one
// trigger is honoured per frame.
func (vic *VIC) TriggerLightPenInterrupt() {
	if vic.lightpenIRQhasOccurred {
		return
	}
	vic.lightpenIRQhasOccurred = true

	vic.iomem[0x13] = uint8((vic.p.XCounter - 4) / 2)
	vic.iomem[0x14] = uint8(vic.yCounter)

	vic.triggerIRQ(IRQLightPen)
}
