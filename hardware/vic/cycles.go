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

package vic

import (
	"github.com/jetsetilly/gopherc64/hardware/vic/pixelengine"
)

// The fixed cycle schedule of a rasterline. Each cycle runs its five
// phases in order:
//
//	Phi1.1 frame logic
//	Phi1.2 draw
//	Phi1.3 first fetch
//	Phi2.1 rasterline interrupt
//	Phi2.2 sprite logic
//	Phi2.3 VC/RC logic
//	Phi2.4 BA logic
//	Phi2.5 second fetch
//
// The sprite fetch slots differ between the 63 cycle PAL line and the
// 65 cycle NTSC line, hence the chip model branches throughout.

// Step advances the VIC by one cycle. Returns true at the end of a
// frame, after the pixel buffers have swapped.
func (vic *VIC) Step() bool {
	vic.cycles++

	if vic.rasterCycle == 1 {
		if vic.line == 0 {
			vic.beginFrame()
		}
		vic.beginRasterline()
	}

	vic.executeCycle()
	vic.drainCollisions()

	if vic.rasterCycle < vic.CyclesPerLine() {
		vic.rasterCycle++
		return false
	}

	vic.endRasterline()
	vic.rasterCycle = 1
	vic.line++
	if vic.line < vic.LinesPerFrame() {
		return false
	}

	vic.endFrame()
	vic.line = 0
	return true
}

func (vic *VIC) beginFrame() {
	vic.PixelEngine.BeginFrame()

	vic.lightpenIRQhasOccurred = false

	// the refresh counter restarts at 0xff in rasterline 0 and counts
	// down through five accesses per line
	vic.refreshCounter = 0xff

	// VCBASE is cleared somewhere outside the bad line window; line 0
	// is as good a place as the silicon's
	vic.registerVCBASE = 0
}

func (vic *VIC) endFrame() {
	vic.PixelEngine.EndFrame()
}

func (vic *VIC) beginRasterline() {
	vic.verticalFrameFFsetCond = false
	vic.verticalFrameFFclearCond = false

	vic.RAccessCount = 0
	vic.CAccessCount = 0

	upperVBlank := PALUpperVBlank
	visible := pixelengine.PALVisibleLines
	if !vic.IsPAL() {
		upperVBlank = NTSCUpperVBlank
		visible = pixelengine.NTSCVisibleLines
	}
	vic.vblank = vic.line < upperVBlank || vic.line >= upperVBlank+visible

	// the rasterline counter increments here; the overflow to zero is
	// handled in cycle 2
	if !vic.yCounterOverflow() {
		vic.yCounter++
	}

	// DEN seen set at any cycle of rasterline 0x30 enables bad lines
	// for this frame. the register can still change mid-line; poke()
	// handles that
	if vic.line == 0x30 {
		vic.denWasSetInRasterline30 = vic.denBit()
	}

	vic.updateBadLineCondition()

	vic.PixelEngine.BeginRasterline(vic.line-upperVBlank, vic.vblank)
}

func (vic *VIC) endRasterline() {
	if vic.verticalFrameFFsetCond {
		vic.p.VerticalFrameFF = true
	}

	vic.PixelEngine.EndRasterline()
}

// yCounterOverflow returns true in the rasterline in which the counter
// wraps to zero: the first physical line on PAL machines, the middle of
// the lower border on NTSC machines.
func (vic *VIC) yCounterOverflow() bool {
	if vic.IsPAL() {
		return vic.line == 0
	}
	return vic.line == NTSCYCounterOverflowLine
}

// preparePixelEngine pushes everything the drawing routines need one
// cycle before the pixels are produced.
func (vic *VIC) preparePixelEngine() {
	vic.p.YCounter = vic.yCounter
	vic.p.SpriteOnOff = vic.spriteOnOff
	vic.p.SpriteMulticolor = vic.iomem[0x1c]
	vic.p.SpritePriority = vic.iomem[0x1b]

	vic.PixelEngine.Prepare(vic.p)
	vic.PixelEngine.BorderPipe = vic.bp
	vic.PixelEngine.CanvasPipe = vic.cp
	vic.PixelEngine.SpritePipe = vic.sp
}

func (vic *VIC) countX() {
	vic.p.XCounter += 8
}

// collisions accumulated by the drawing routines land in the collision
// registers; the first bit after a clear raises the IRQ source
func (vic *VIC) drainCollisions() {
	ss, sb := vic.PixelEngine.DrainCollisions()
	if ss != 0 {
		if vic.iomem[0x1e] == 0 {
			vic.triggerIRQ(IRQSpriteSprite)
		}
		vic.iomem[0x1e] |= ss
	}
	if sb != 0 {
		if vic.iomem[0x1f] == 0 {
			vic.triggerIRQ(IRQSpriteBackground)
		}
		vic.iomem[0x1f] |= sb
	}
}

func (vic *VIC) executeCycle() {
	switch vic.rasterCycle {
	case 1:
		vic.cycle1()
	case 2:
		vic.cycle2()
	case 3:
		vic.cycle3()
	case 4:
		vic.cycle4()
	case 5:
		vic.cycle5()
	case 6:
		vic.cycle6()
	case 7:
		vic.cycle7()
	case 8:
		vic.cycle8()
	case 9:
		vic.cycle9()
	case 10:
		vic.cycle10()
	case 11:
		vic.cycle11()
	case 12:
		vic.cycle12()
	case 13:
		vic.cycle13()
	case 14:
		vic.cycle14()
	case 15:
		vic.cycle15()
	case 16:
		vic.cycle16()
	case 17:
		vic.cycle17()
	case 18:
		vic.cycle18()
	case 55:
		vic.cycle55()
	case 56:
		vic.cycle56()
	case 57:
		vic.cycle57()
	case 58:
		vic.cycle58()
	case 59:
		vic.cycle59()
	case 60:
		vic.cycle60()
	case 61:
		vic.cycle61()
	case 62:
		vic.cycle62()
	case 63:
		vic.cycle63()
	case 64:
		vic.cycle64()
	case 65:
		vic.cycle65()
	default:
		vic.cycle19to54()
	}
}

func (vic *VIC) cycle1() {
	// Phi1.1
	vic.checkVerticalFrameFF()
	if vic.verticalFrameFFsetCond {
		vic.p.VerticalFrameFF = true
	}

	// Phi1.3
	if vic.IsPAL() {
		vic.sFinalize(2)
		vic.PixelEngine.LoadSpriteShiftRegister(2)
		vic.pAccess(3)
	} else {
		vic.sSecondAccess(3)
	}

	// Phi2.1 rasterline interrupt (edge triggered)
	edgeOnYCounter := vic.line != 0
	edgeOnIRQCond := vic.yCounter == vic.rasterInterruptLine() && !vic.yCounterEqualsIRQLine
	if edgeOnYCounter && edgeOnIRQCond {
		vic.triggerIRQ(IRQRaster)
	}
	vic.yCounterEqualsIRQLine = vic.yCounter == vic.rasterInterruptLine()

	// Phi2.4
	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr3 | spr4)))
	} else {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr3 | spr4 | spr5)))
	}

	// Phi2.5
	if vic.IsPAL() {
		vic.sFirstAccess(3)
	} else {
		vic.sThirdAccess(3)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle2() {
	if vic.yCounterOverflow() {
		vic.yCounter = 0
	}

	// Phi1.1
	vic.checkVerticalFrameFF()

	// Phi1.3
	if vic.IsPAL() {
		vic.sSecondAccess(3)
	} else {
		vic.sFinalize(3)
		vic.PixelEngine.LoadSpriteShiftRegister(3)
		vic.pAccess(4)
	}

	// Phi2.1 the wrapped rasterline 0 performs its IRQ edge check here
	edgeOnYCounter := vic.yCounter == 0
	edgeOnIRQCond := vic.yCounter == vic.rasterInterruptLine() && !vic.yCounterEqualsIRQLine
	if edgeOnYCounter && edgeOnIRQCond {
		vic.triggerIRQ(IRQRaster)
	}

	// Phi2.4
	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr3 | spr4 | spr5)))
	} else {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr4 | spr5)))
	}

	// Phi2.5
	if vic.IsPAL() {
		vic.sThirdAccess(3)
	} else {
		vic.sFirstAccess(4)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle3() {
	vic.checkVerticalFrameFF()

	if vic.IsPAL() {
		vic.sFinalize(3)
		vic.PixelEngine.LoadSpriteShiftRegister(3)
		vic.pAccess(4)
	} else {
		vic.sSecondAccess(4)
	}

	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr4 | spr5)))
	} else {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr4 | spr5 | spr6)))
	}

	if vic.IsPAL() {
		vic.sFirstAccess(4)
	} else {
		vic.sThirdAccess(4)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle4() {
	vic.checkVerticalFrameFF()

	if vic.IsPAL() {
		vic.sSecondAccess(4)
	} else {
		vic.sFinalize(4)
		vic.PixelEngine.LoadSpriteShiftRegister(4)
		vic.pAccess(5)
	}

	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr4 | spr5 | spr6)))
	} else {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr5 | spr6)))
	}

	if vic.IsPAL() {
		vic.sThirdAccess(4)
	} else {
		vic.sFirstAccess(5)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle5() {
	vic.checkVerticalFrameFF()

	if vic.IsPAL() {
		vic.sFinalize(4)
		vic.PixelEngine.LoadSpriteShiftRegister(4)
		vic.pAccess(5)
	} else {
		vic.sSecondAccess(5)
	}

	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr5 | spr6)))
	} else {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr5 | spr6 | spr7)))
	}

	if vic.IsPAL() {
		vic.sFirstAccess(5)
	} else {
		vic.sThirdAccess(5)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle6() {
	vic.checkVerticalFrameFF()

	if vic.IsPAL() {
		vic.sSecondAccess(5)
	} else {
		vic.sFinalize(5)
		vic.PixelEngine.LoadSpriteShiftRegister(5)
		vic.pAccess(6)
	}

	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr5 | spr6 | spr7)))
	} else {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr6 | spr7)))
	}

	if vic.IsPAL() {
		vic.sThirdAccess(5)
	} else {
		vic.sFirstAccess(6)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle7() {
	vic.checkVerticalFrameFF()

	if vic.IsPAL() {
		vic.sFinalize(5)
		vic.PixelEngine.LoadSpriteShiftRegister(5)
		vic.pAccess(6)
	} else {
		vic.sSecondAccess(6)
	}

	vic.setBALow(uint16(vic.spriteDmaOnOff & (spr6 | spr7)))

	if vic.IsPAL() {
		vic.sFirstAccess(6)
	} else {
		vic.sThirdAccess(6)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle8() {
	vic.checkVerticalFrameFF()

	if vic.IsPAL() {
		vic.sSecondAccess(6)
	} else {
		vic.sFinalize(6)
		vic.PixelEngine.LoadSpriteShiftRegister(6)
		vic.pAccess(7)
	}

	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr6 | spr7)))
	} else {
		vic.setBALow(uint16(vic.spriteDmaOnOff & spr7))
	}

	if vic.IsPAL() {
		vic.sThirdAccess(6)
	} else {
		vic.sFirstAccess(7)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle9() {
	vic.checkVerticalFrameFF()

	if vic.IsPAL() {
		vic.sFinalize(6)
		vic.PixelEngine.LoadSpriteShiftRegister(6)
		vic.pAccess(7)
	} else {
		vic.sSecondAccess(7)
	}

	vic.setBALow(uint16(vic.spriteDmaOnOff & spr7))

	if vic.IsPAL() {
		vic.sFirstAccess(7)
	} else {
		vic.sThirdAccess(7)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle10() {
	vic.checkVerticalFrameFF()

	vic.preparePixelEngine()

	if vic.IsPAL() {
		vic.sSecondAccess(7)
	} else {
		vic.sFinalize(7)
		vic.PixelEngine.LoadSpriteShiftRegister(7)
		vic.rIdleAccess()
	}

	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & spr7))
	} else {
		vic.setBALow(0)
	}

	if vic.IsPAL() {
		vic.sThirdAccess(7)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle11() {
	vic.checkVerticalFrameFF()

	// runs the sprite sequencers only; the visible columns have not
	// begun
	vic.PixelEngine.DrawOutsideBorder()
	vic.preparePixelEngine()

	// first of the five DRAM refreshes
	if vic.IsPAL() {
		vic.sFinalize(7)
		vic.PixelEngine.LoadSpriteShiftRegister(7)
	}
	vic.rAccess()

	vic.setBALow(0)

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle12() {
	vic.checkVerticalFrameFF()

	vic.PixelEngine.DrawOutsideBorder()
	vic.preparePixelEngine()

	vic.rAccess()

	// a bad line pulls BA low from cycle 12 so that the cAccesses of
	// cycle 15 onwards find the bus free
	if vic.badLineCondition {
		vic.setBALow(baBadLine)
	} else {
		vic.setBALow(0)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle13() {
	vic.checkVerticalFrameFF()

	vic.PixelEngine.DrawOutsideBorder()
	vic.preparePixelEngine()

	vic.rAccess()

	if vic.badLineCondition {
		vic.setBALow(baBadLine)
	} else {
		vic.setBALow(0)
	}

	vic.updateDisplayState()
	vic.p.XCounter = 0
}

func (vic *VIC) cycle14() {
	vic.checkVerticalFrameFF()

	// first visible column
	vic.PixelEngine.VisibleColumn = true
	vic.PixelEngine.Draw()
	vic.preparePixelEngine()

	vic.rAccess()

	// VC loads from VCBASE and VMLI clears; on a bad line RC clears too
	vic.registerVC = vic.registerVCBASE
	vic.registerVMLI = 0
	if vic.badLineCondition {
		vic.registerRC = 0
	}

	if vic.badLineCondition {
		vic.setBALow(baBadLine)
	} else {
		vic.setBALow(0)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle15() {
	vic.checkVerticalFrameFF()

	vic.PixelEngine.Draw()
	vic.preparePixelEngine()

	vic.rAccess()

	if vic.badLineCondition {
		vic.setBALow(baBadLine)
	} else {
		vic.setBALow(0)
	}

	// Phi2.5
	vic.cAccess()

	vic.clearedBitsInD017 = 0
	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle16() {
	vic.checkVerticalFrameFF()

	vic.PixelEngine.Draw()
	vic.preparePixelEngine()

	vic.gAccess()

	// Phi2.2
	vic.turnSpriteDmaOff()

	if vic.badLineCondition {
		vic.setBALow(baBadLine)
	} else {
		vic.setBALow(0)
	}

	vic.cAccess()

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle17() {
	vic.checkVerticalFrameFF()
	vic.checkFrameFlipflopsLeft(24)

	vic.PixelEngine.Draw()
	vic.preparePixelEngine()

	vic.gAccess()

	if vic.badLineCondition {
		vic.setBALow(baBadLine)
	} else {
		vic.setBALow(0)
	}

	vic.cAccess()

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle18() {
	vic.checkVerticalFrameFF()
	vic.checkFrameFlipflopsLeft(31)

	// entering the canvas area
	vic.PixelEngine.SR.CanLoad = true
	vic.PixelEngine.Draw17()
	vic.preparePixelEngine()

	vic.gAccess()

	if vic.badLineCondition {
		vic.setBALow(baBadLine)
	} else {
		vic.setBALow(0)
	}

	vic.cAccess()

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle19to54() {
	vic.checkVerticalFrameFF()

	vic.PixelEngine.Draw()
	vic.preparePixelEngine()

	vic.gAccess()

	if vic.badLineCondition {
		vic.setBALow(baBadLine)
	} else {
		vic.setBALow(0)
	}

	vic.cAccess()

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle55() {
	vic.checkVerticalFrameFF()

	vic.PixelEngine.Draw()
	vic.preparePixelEngine()

	vic.gAccess()

	// Phi2.2
	vic.turnSpriteDmaOn()

	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & spr0))
	} else {
		vic.setBALow(0)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle56() {
	vic.checkVerticalFrameFF()
	vic.checkFrameFlipflopsRight(335)

	vic.PixelEngine.Draw55()
	vic.preparePixelEngine()

	vic.rIdleAccess()

	vic.turnSpriteDmaOn()
	vic.toggleExpansionFlipflop()

	vic.setBALow(uint16(vic.spriteDmaOnOff & spr0))

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle57() {
	vic.checkVerticalFrameFF()
	vic.checkFrameFlipflopsRight(344)

	// the right border has begun
	vic.PixelEngine.Draw()
	vic.preparePixelEngine()
	vic.PixelEngine.SR.CanLoad = false

	vic.rIdleAccess()

	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr0 | spr1)))
	} else {
		vic.setBALow(uint16(vic.spriteDmaOnOff & spr0))
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle58() {
	vic.checkVerticalFrameFF()

	vic.PixelEngine.Draw()
	vic.preparePixelEngine()

	if vic.IsPAL() {
		vic.pAccess(0)
	} else {
		vic.rIdleAccess()
	}

	// Phi2.2
	vic.updateSpriteOnOff()

	// Phi2.3 when RC reaches 7 the video logic returns to idle state
	// and VCBASE is reloaded from VC
	if vic.registerRC == 7 {
		vic.registerVCBASE = vic.registerVC
		if !vic.badLineCondition {
			vic.displayState = false
		}
	}

	vic.updateDisplayState()

	if vic.displayState {
		vic.registerRC = (vic.registerRC + 1) & 0x07
	}

	vic.setBALow(uint16(vic.spriteDmaOnOff & (spr0 | spr1)))

	if vic.IsPAL() {
		vic.sFirstAccess(0)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle59() {
	vic.checkVerticalFrameFF()

	vic.PixelEngine.Draw()
	vic.preparePixelEngine()

	if vic.IsPAL() {
		vic.sSecondAccess(0)
	} else {
		vic.pAccess(0)
	}

	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr0 | spr1 | spr2)))
	} else {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr0 | spr1)))
	}

	if vic.IsPAL() {
		vic.sThirdAccess(0)
	} else {
		vic.sFirstAccess(0)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle60() {
	vic.checkVerticalFrameFF()

	// last visible cycle
	vic.PixelEngine.Draw()
	vic.preparePixelEngine()

	if vic.IsPAL() {
		vic.sFinalize(0)
		vic.PixelEngine.LoadSpriteShiftRegister(0)
		vic.pAccess(1)
	} else {
		vic.sSecondAccess(0)
	}

	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr1 | spr2)))
	} else {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr0 | spr1 | spr2)))
	}

	if vic.IsPAL() {
		vic.sFirstAccess(1)
	} else {
		vic.sThirdAccess(0)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle61() {
	vic.checkVerticalFrameFF()

	vic.PixelEngine.Draw()
	vic.PixelEngine.VisibleColumn = false

	if vic.IsPAL() {
		vic.sSecondAccess(1)
	} else {
		vic.sFinalize(0)
		vic.PixelEngine.LoadSpriteShiftRegister(0)
		vic.pAccess(1)
	}

	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr1 | spr2 | spr3)))
	} else {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr1 | spr2)))
	}

	if vic.IsPAL() {
		vic.sThirdAccess(1)
	} else {
		vic.sFirstAccess(1)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle62() {
	vic.checkVerticalFrameFF()

	if vic.IsPAL() {
		vic.sFinalize(1)
		vic.PixelEngine.LoadSpriteShiftRegister(1)
		vic.pAccess(2)
	} else {
		vic.sSecondAccess(1)
	}

	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr2 | spr3)))
	} else {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr1 | spr2 | spr3)))
	}

	if vic.IsPAL() {
		vic.sFirstAccess(2)
	} else {
		vic.sThirdAccess(1)
	}

	vic.updateDisplayState()
	vic.countX()
}

func (vic *VIC) cycle63() {
	vic.checkVerticalFrameFF()
	vic.yCounterEqualsIRQLine = vic.yCounter == vic.rasterInterruptLine()

	if vic.IsPAL() {
		vic.sSecondAccess(2)
	} else {
		vic.sFinalize(1)
		vic.PixelEngine.LoadSpriteShiftRegister(1)
		vic.pAccess(2)
	}

	if vic.IsPAL() {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr2 | spr3 | spr4)))
	} else {
		vic.setBALow(uint16(vic.spriteDmaOnOff & (spr2 | spr3)))
	}

	if vic.IsPAL() {
		vic.sThirdAccess(2)
	} else {
		vic.sFirstAccess(2)
	}

	vic.updateDisplayState()
	vic.countX()
}

// cycle64 exists on NTSC machines only.
func (vic *VIC) cycle64() {
	vic.checkVerticalFrameFF()

	vic.sSecondAccess(2)

	vic.setBALow(uint16(vic.spriteDmaOnOff & (spr2 | spr3 | spr4)))

	vic.sThirdAccess(2)

	vic.updateDisplayState()
	vic.countX()
}

// cycle65 exists on NTSC machines only.
func (vic *VIC) cycle65() {
	vic.checkVerticalFrameFF()
	vic.yCounterEqualsIRQLine = vic.yCounter == vic.rasterInterruptLine()

	vic.sFinalize(2)
	vic.PixelEngine.LoadSpriteShiftRegister(2)
	vic.pAccess(3)

	vic.setBALow(uint16(vic.spriteDmaOnOff & (spr3 | spr4)))

	vic.sFirstAccess(3)

	vic.updateDisplayState()
	vic.countX()
}
