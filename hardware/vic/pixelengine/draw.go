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

package pixelengine

// Draw renders the 8 pixels described by the latched pipe: border if
// the frame flipflops demand it, otherwise canvas, then the sprite
// sequencers on top. Cycles 17 and 55 transition the border inside the
// chunk and have dedicated entry points.
func (pe *PixelEngine) Draw() {
	if !pe.VisibleColumn {
		return
	}

	if pe.Pipe.MainFrameFF {
		pe.drawBorder(0, 8)
	} else {
		pe.drawCanvas()
	}
	pe.drawSprites()
}

// DrawOutsideBorder runs the sprite sequencers only. Used in the cycles
// before the visible columns begin, where sprites with small X
// coordinates must already be shifting.
func (pe *PixelEngine) DrawOutsideBorder() {
	pe.drawSprites()
}

// Draw17 renders the chunk containing the left border edge. The border
// ends mid-chunk when the 38/40 column bit moved the comparison value.
func (pe *PixelEngine) Draw17() {
	if !pe.VisibleColumn {
		return
	}

	pe.drawCanvas()
	if pe.Pipe.MainFrameFF {
		left := 31
		if pe.Pipe.CSEL() {
			left = 24
		}
		for i := 0; i < 8; i++ {
			if pe.Pipe.XCounter+i < left {
				pe.setFramePixel(pe.bufferOffset(i), Colors[pe.BorderPipe.BorderColor])
			}
		}
	}
	pe.drawSprites()
}

// Draw55 renders the chunk containing the right border edge.
func (pe *PixelEngine) Draw55() {
	if !pe.VisibleColumn {
		return
	}

	pe.drawCanvas()
	if pe.Pipe.MainFrameFF {
		right := 335
		if pe.Pipe.CSEL() {
			right = 344
		}
		for i := 0; i < 8; i++ {
			if pe.Pipe.XCounter+i >= right {
				pe.setFramePixel(pe.bufferOffset(i), Colors[pe.BorderPipe.BorderColor])
			}
		}
	}
	pe.drawSprites()
}

func (pe *PixelEngine) bufferOffset(pixel int) int {
	return pe.lineStart + drawOffset + pe.Pipe.XCounter + pixel
}

func (pe *PixelEngine) drawBorder(from int, to int) {
	c := Colors[pe.BorderPipe.BorderColor]
	for i := from; i < to; i++ {
		pe.setFramePixel(pe.bufferOffset(i), c)
	}
}

func (pe *PixelEngine) drawCanvas() {
	for i := 0; i < 8; i++ {
		pe.drawCanvasPixel(i)
	}
}

func (pe *PixelEngine) drawCanvasPixel(pixel int) {
	p := &pe.Pipe

	// the shift register loads when the pixel number matches the
	// horizontal scroll offset. outside the canvas columns loading is
	// inhibited and the register runs empty
	if pixel == int(p.XScroll()) && pe.SR.CanLoad {
		pe.SR.data = p.GData
		pe.SR.latchedCharacter = p.GCharacter
		pe.SR.latchedColor = p.GColor
		pe.SR.mcFlop = true
	}

	pe.loadColors(p.DisplayMode(), pe.SR.latchedCharacter, pe.SR.latchedColor)

	offset := pe.bufferOffset(pixel)

	if pe.multicol {
		// one pair of bits covers two pixels
		if pe.SR.mcFlop {
			pe.SR.colorbits = pe.SR.data >> 6
		}
		pe.setMultiColorPixel(offset, pe.SR.colorbits)
	} else {
		pe.setSingleColorPixel(offset, pe.SR.data>>7)
	}

	pe.SR.data <<= 1
	pe.SR.mcFlop = !pe.SR.mcFlop
}

// loadColors resolves the four drawing colors for the current display
// mode. It also decides whether the shift register feeds one or two
// bits per pixel.
func (pe *PixelEngine) loadColors(mode DisplayMode, character uint8, color uint8) {
	cp := &pe.CanvasPipe

	switch mode {
	case StandardText:
		pe.multicol = false
		pe.colRGBA[0] = Colors[cp.BackgroundColor[0]]
		pe.colRGBA[1] = Colors[color]

	case MulticolorText:
		if color&0x08 != 0 {
			pe.multicol = true
			pe.colRGBA[0] = Colors[cp.BackgroundColor[0]]
			pe.colRGBA[1] = Colors[cp.BackgroundColor[1]]
			pe.colRGBA[2] = Colors[cp.BackgroundColor[2]]
			pe.colRGBA[3] = Colors[color&0x07]
		} else {
			pe.multicol = false
			pe.colRGBA[0] = Colors[cp.BackgroundColor[0]]
			pe.colRGBA[1] = Colors[color]
		}

	case StandardBitmap:
		pe.multicol = false
		pe.colRGBA[0] = Colors[character&0x0f]
		pe.colRGBA[1] = Colors[character>>4]

	case MulticolorBitmap:
		pe.multicol = true
		pe.colRGBA[0] = Colors[cp.BackgroundColor[0]]
		pe.colRGBA[1] = Colors[character>>4]
		pe.colRGBA[2] = Colors[character&0x0f]
		pe.colRGBA[3] = Colors[color]

	case ExtendedBackgroundColor:
		pe.multicol = false
		pe.colRGBA[0] = Colors[cp.BackgroundColor[character>>6]]
		pe.colRGBA[1] = Colors[color]

	default:
		// the three invalid modes output black. the shift register
		// still consumes bits at the mode's usual rate
		pe.multicol = mode == InvalidMulticolorBitmap ||
			(mode == InvalidText && color&0x08 != 0)
		pe.colRGBA[0] = Colors[Black]
		pe.colRGBA[1] = Colors[Black]
		pe.colRGBA[2] = Colors[Black]
		pe.colRGBA[3] = Colors[Black]
	}
}

func (pe *PixelEngine) setSingleColorPixel(offset int, bit uint8) {
	if bit != 0 {
		pe.setForegroundPixel(offset, pe.colRGBA[1])
	} else {
		pe.setBackgroundPixel(offset, pe.colRGBA[0])
	}
}

func (pe *PixelEngine) setMultiColorPixel(offset int, bits uint8) {
	// bit pattern 01 renders in a background color and does not count
	// as foreground for collision purposes
	if bits&0x02 != 0 {
		pe.setForegroundPixel(offset, pe.colRGBA[bits])
	} else {
		pe.setBackgroundPixel(offset, pe.colRGBA[bits])
	}
}

//
// sprites
//

func (pe *PixelEngine) drawSprites() {
	p := &pe.Pipe

	for pixel := 0; pixel < 8; pixel++ {
		x := p.XCounter + pixel

		for nr := 0; nr < 8; nr++ {
			if p.SpriteOnOff&(1<<nr) == 0 {
				continue
			}
			sr := &pe.SpriteSR[nr]

			// the sequencer arms when the raster X reaches the sprite
			// X coordinate
			if x == int(p.SpriteX[nr]) {
				sr.remainingBits = 24
				if p.SpriteXExpand&(1<<nr) != 0 {
					sr.remainingBits = 26
				}
				sr.mcFlop = true
				sr.expFlop = true
			}

			if sr.remainingBits > 0 {
				pe.drawSpritePixel(nr, pixel)
			}
		}
	}
}

func (pe *PixelEngine) drawSpritePixel(nr int, pixel int) {
	p := &pe.Pipe
	sr := &pe.SpriteSR[nr]
	multicolor := p.SpriteMulticolor&(1<<nr) != 0
	expanded := p.SpriteXExpand&(1<<nr) != 0
	behind := p.SpritePriority&(1<<nr) != 0

	// the expansion flipflop halves the shift rate of x-expanded
	// sprites
	if sr.expFlop {
		if sr.mcFlop {
			sr.colorbits = uint8(sr.data>>22) & 0x03
		}
		if multicolor {
			sr.mcFlop = !sr.mcFlop
		}
		sr.data <<= 1
		sr.remainingBits--
	}
	if expanded {
		sr.expFlop = !sr.expFlop
	}

	offset := pe.bufferOffset(pixel)

	if multicolor {
		switch sr.colorbits {
		case 0x01:
			pe.setSpritePixel(offset, Colors[pe.SpritePipe.SpriteExtraColor1], nr, behind)
		case 0x02:
			pe.setSpritePixel(offset, Colors[pe.SpritePipe.SpriteColor[nr]], nr, behind)
		case 0x03:
			pe.setSpritePixel(offset, Colors[pe.SpritePipe.SpriteExtraColor2], nr, behind)
		}
	} else {
		if sr.colorbits&0x02 != 0 {
			pe.setSpritePixel(offset, Colors[pe.SpritePipe.SpriteColor[nr]], nr, behind)
		}
	}
}
