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

package pixelengine_test

import (
	"testing"

	"github.com/jetsetilly/gopherc64/hardware/vic/pixelengine"
	"github.com/jetsetilly/gopherc64/test"
)

func TestDoubleBuffering(t *testing.T) {
	pe := pixelengine.NewPixelEngine()

	front := pe.ScreenBuffer()
	pe.EndFrame()
	swapped := pe.ScreenBuffer()

	// the front buffer changed identity on the frame boundary
	test.Equate(t, &front[0] != &swapped[0], true)

	pe.EndFrame()
	again := pe.ScreenBuffer()
	test.Equate(t, &front[0] == &again[0], true)
}

func TestBorderDrawing(t *testing.T) {
	pe := pixelengine.NewPixelEngine()

	pe.BeginFrame()
	pe.BeginRasterline(100, false)
	pe.VisibleColumn = true

	pe.BorderPipe.BorderColor = pixelengine.LtBlue
	pe.Pipe.MainFrameFF = true
	pe.Pipe.XCounter = 0

	pe.Draw()
	pe.EndRasterline()
	pe.EndFrame()

	buf := pe.ScreenBuffer()
	test.Equate(t, buf[100*pixelengine.BufferWidth+30], pixelengine.Colors[pixelengine.LtBlue])
}

func TestSpriteCollisionAccumulation(t *testing.T) {
	pe := pixelengine.NewPixelEngine()

	pe.BeginFrame()
	pe.BeginRasterline(100, false)
	pe.VisibleColumn = true

	// two solid sprites at the same X coordinate
	for nr := 0; nr < 2; nr++ {
		pe.SpriteSR[nr].Chunk1 = 0xff
		pe.SpriteSR[nr].Chunk2 = 0xff
		pe.SpriteSR[nr].Chunk3 = 0xff
		pe.LoadSpriteShiftRegister(nr)
	}

	pe.Pipe.XCounter = 96
	pe.Pipe.SpriteOnOff = 0x03
	pe.Pipe.SpriteX = [8]uint16{100, 100}
	pe.SpritePipe.SpriteColor = [8]uint8{pixelengine.White, pixelengine.Red}

	pe.Draw()

	ss, _ := pe.DrainCollisions()
	test.Equate(t, ss, 0x03)

	// draining clears the accumulator
	ss, _ = pe.DrainCollisions()
	test.Equate(t, ss, 0x00)
}

func TestCanvasForegroundCollision(t *testing.T) {
	pe := pixelengine.NewPixelEngine()

	pe.BeginFrame()
	pe.BeginRasterline(50, false)
	pe.VisibleColumn = true

	// a standard text chunk with all bits set, then a sprite across it
	pe.SR.CanLoad = true
	pe.Pipe.XCounter = 96
	pe.Pipe.GData = 0xff
	pe.Pipe.GColor = pixelengine.White
	pe.Draw()

	pe.SpriteSR[3].Chunk1 = 0xff
	pe.LoadSpriteShiftRegister(3)
	pe.Pipe.XCounter = 96
	pe.Pipe.SpriteOnOff = 0x08
	pe.Pipe.SpriteX = [8]uint16{0, 0, 0, 97}
	pe.Draw()

	_, sb := pe.DrainCollisions()
	test.Equate(t, sb, 0x08)
}
