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

// The five kinds of VIC bus reads: character matrix (cAccess), graphics
// (gAccess), sprite pointer (pAccess), sprite data (sAccess) and DRAM
// refresh (rAccess).

// memAccess reads through the VIC's 14 bit address bus. The two missing
// address bits come from the bank selection; the character ROM shadows
// are resolved by the memory package.
func (vic *VIC) memAccess(addr uint16) uint8 {
	vic.addrBus = vic.bankAddr | addr&0x3fff
	vic.dataBus = vic.mem.VICRead(vic.addrBus)
	return vic.dataBus
}

// memIdleAccess performs the idle read at 0x3fff.
func (vic *VIC) memIdleAccess() uint8 {
	vic.addrBus = vic.bankAddr | 0x3fff
	vic.dataBus = vic.mem.RAM[vic.addrBus]
	return vic.dataBus
}

// cAccess fills one cell of the character and color line buffers during
// a bad line.
func (vic *VIC) cAccess() {
	if !vic.badLineCondition {
		return
	}

	vic.CAccessCount++

	if vic.baPulledDownForAtLeastThreeCycles() {
		// |VM13|VM12|VM11|VM10| VC9| VC8| VC7| VC6| VC5| VC4| VC3| VC2| VC1| VC0|
		addr := vic.vm13to10()<<6 | vic.registerVC

		vic.characterSpace[vic.registerVMLI] = vic.memAccess(addr)
		vic.colorSpace[vic.registerVMLI] = vic.mem.VICColorRead(vic.registerVC)
		return
	}

	// in the first three cycles after BA fell the bus drivers are still
	// tri-state: the VIC reads 0xff as character data and, through the
	// unbuffered upper address lines, the low nibble of whatever the
	// CPU is about to fetch as color data
	vic.characterSpace[vic.registerVMLI] = 0xff
	vic.colorSpace[vic.registerVMLI] = vic.mem.RAM[vic.cpu.ProgramCounter()] & 0x0f
}

// gAccess fetches one byte of graphics data. In display state the
// address generator combines the character generator base with the
// latched character (text) or the video counter (bitmap); in idle state
// the access goes to 0x3fff (0x39ff with ECM set).
func (vic *VIC) gAccess() {
	var addr uint16

	if vic.displayState {
		// BMM = 1 : |CB13| VC9| VC8| VC7| VC6| VC5| VC4| VC3| VC2| VC1| VC0| RC2| RC1| RC0|
		// BMM = 0 : |CB13|CB12|CB11| D7 | D6 | D5 | D4 | D3 | D2 | D1 | D0 | RC2| RC1| RC0|
		if vic.bmmBitInPreviousCycle() {
			addr = (vic.cb13to11()&0x08)<<10 | vic.registerVC<<3 | uint16(vic.registerRC)
		} else {
			addr = vic.cb13to11()<<10 | uint16(vic.characterSpace[vic.registerVMLI])<<3 | uint16(vic.registerRC)
		}

		// with ECM set the address generator forces bits 9 and 10 low
		if vic.ecmBitInPreviousCycle() {
			addr &= 0xf9ff
		}

		vic.p.GData = vic.memAccess(addr)
		vic.p.GCharacter = vic.characterSpace[vic.registerVMLI]
		vic.p.GColor = vic.colorSpace[vic.registerVMLI]

		// VC and VMLI advance after every gAccess in display state
		vic.registerVC = (vic.registerVC + 1) & 0x3ff
		vic.registerVMLI = (vic.registerVMLI + 1) & 0x3f
		return
	}

	addr = 0x3fff
	if vic.ecmBitInPreviousCycle() {
		addr = 0x39ff
	}
	vic.p.GData = vic.memAccess(addr)
	vic.p.GCharacter = 0
	vic.p.GColor = 0
}

// pAccess reads the pointer of a sprite from the end of the video
// matrix.
func (vic *VIC) pAccess(sprite int) {
	// |VM13|VM12|VM11|VM10|  1 |  1 |  1 |  1 |  1 |  1 |  1 | sprite number |
	vic.spritePtr[sprite] = uint16(vic.memAccess(vic.vm13to10()<<6|0x03f8|uint16(sprite))) << 6
}

// the three sAccesses of a sprite fill the chunk latches of its shift
// register. each one advances MC.

func (vic *VIC) sFirstAccess(sprite int) {
	var data uint8

	vic.isFirstDMACycle = 1 << sprite

	if vic.spriteDmaOnOff&(1<<sprite) != 0 {
		if vic.baPulledDownForAtLeastThreeCycles() {
			data = vic.memAccess(vic.spritePtr[sprite] | uint16(vic.mc[sprite]))
		}
		vic.mc[sprite] = (vic.mc[sprite] + 1) & 0x3f
	}

	vic.PixelEngine.SpriteSR[sprite].Chunk1 = data
}

func (vic *VIC) sSecondAccess(sprite int) {
	var data uint8
	accessed := false

	vic.isFirstDMACycle = 0
	vic.isSecondDMACycle = 1 << sprite

	if vic.spriteDmaOnOff&(1<<sprite) != 0 {
		if vic.baPulledDownForAtLeastThreeCycles() {
			data = vic.memAccess(vic.spritePtr[sprite] | uint16(vic.mc[sprite]))
			accessed = true
		}
		vic.mc[sprite] = (vic.mc[sprite] + 1) & 0x3f
	}

	// a sprite without DMA still occupies the bus slot with an idle
	// access
	if !accessed {
		vic.memIdleAccess()
	}

	vic.PixelEngine.SpriteSR[sprite].Chunk2 = data
}

func (vic *VIC) sThirdAccess(sprite int) {
	var data uint8

	if vic.spriteDmaOnOff&(1<<sprite) != 0 {
		if vic.baPulledDownForAtLeastThreeCycles() {
			data = vic.memAccess(vic.spritePtr[sprite] | uint16(vic.mc[sprite]))
		}
		vic.mc[sprite] = (vic.mc[sprite] + 1) & 0x3f
	}

	vic.PixelEngine.SpriteSR[sprite].Chunk3 = data
}

// sFinalize ends the DMA slot of a sprite, one cycle after the second
// and third sAccess.
func (vic *VIC) sFinalize(sprite int) {
	vic.isSecondDMACycle = 0
}

// rAccess performs one of the five DRAM refresh reads of a rasterline.
func (vic *VIC) rAccess() {
	_ = vic.memAccess(0x3f00 | uint16(vic.refreshCounter))
	vic.refreshCounter--
	vic.RAccessCount++
}

func (vic *VIC) rIdleAccess() {
	_ = vic.memIdleAccess()
}
