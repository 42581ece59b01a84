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

// compareSpriteY returns a bitmask of the sprites whose Y register
// matches the given value.
func (vic *VIC) compareSpriteY(y uint8) uint8 {
	var m uint8
	for i := 0; i < 8; i++ {
		if vic.iomem[1+2*i] == y {
			m |= 1 << i
		}
	}
	return m
}

// turnSpriteDmaOn starts DMA for every enabled sprite whose Y register
// matches the low byte of the rasterline counter. Runs in the first
// phase of cycles 55 and 56. MCBASE is cleared for sprites whose DMA
// switches on.
func (vic *VIC) turnSpriteDmaOn() {
	risingEdges := ^vic.spriteDmaOnOff & (vic.iomem[0x15] & vic.compareSpriteY(uint8(vic.yCounter)))
	for i := 0; i < 8; i++ {
		if risingEdges&(1<<i) != 0 {
			vic.mcbase[i] = 0
		}
	}
	vic.expansionFF |= risingEdges
	vic.spriteDmaOnOff |= risingEdges
}

// turnSpriteDmaOff runs in the first phase of cycle 16. For every
// sprite with its expansion flipflop set, MCBASE is loaded from MC;
// when MCBASE reaches 63 all 21 sprite lines have been fetched and DMA
// switches off.
//
// If the CPU cleared the sprite's bit in 0xd017 during the second phase
// of cycle 15, MCBASE is instead computed by mixing the bits of MCBASE
// and MC exactly as the silicon does:
//
//	MCBASE = (0b101010 & (MCBASE & MC)) | (0b010101 & (MCBASE | MC))
func (vic *VIC) turnSpriteDmaOff() {
	for i := 0; i < 8; i++ {
		if vic.expansionFF&(1<<i) != 0 {
			if vic.clearedBitsInD017&(1<<i) != 0 {
				vic.mcbase[i] = 0x2a&(vic.mcbase[i]&vic.mc[i]) | 0x15&(vic.mcbase[i]|vic.mc[i])
			} else {
				vic.mcbase[i] = vic.mc[i]
			}

			if vic.mcbase[i] == 63 {
				vic.spriteDmaOnOff &^= 1 << i
			}
		}
	}
}

// toggleExpansionFlipflop inverts the expansion flipflop of every
// vertically stretched sprite. Runs in cycle 56; a cleared flipflop
// makes the MCBASE advance of the next line a no-op, which is what
// stretches the sprite.
func (vic *VIC) toggleExpansionFlipflop() {
	vic.expansionFF ^= vic.iomem[0x17]
}

// updateSpriteOnOff runs in cycle 58: MC is reloaded from MCBASE and
// sprite display switches on for sprites with running DMA and a
// matching Y coordinate.
func (vic *VIC) updateSpriteOnOff() {
	for i := 0; i < 8; i++ {
		vic.mc[i] = vic.mcbase[i]
	}

	vic.spriteOnOff |= vic.spriteDmaOnOff & vic.iomem[0x15] & vic.compareSpriteY(uint8(vic.yCounter))
	vic.spriteOnOff &= vic.spriteDmaOnOff
}
