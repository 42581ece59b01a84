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

// Package pixelengine synthesises the pixels of the VIC. The engine is
// double buffered: the VIC draws into the back buffer and the host
// render thread reads the stable front buffer through ScreenBuffer().
// The buffer pointer flips once per frame, atomically.
//
// The engine never looks at the VIC directly. Everything it needs to
// draw a cycle's worth of pixels arrives in the Pipe and color pipe
// snapshots, which the VIC latches one cycle (or one chunk) before the
// pixels are produced.
package pixelengine

import (
	"sync/atomic"
)

// canvas shift register
type shiftRegister struct {
	data uint8

	// CanLoad is set while the raster is inside the canvas columns
	// (cycles 18 to 56)
	CanLoad bool

	// multicolor synchronisation flipflop
	mcFlop bool

	// character and color latched when the register loads
	latchedCharacter uint8
	latchedColor     uint8

	// the two bits latched every second pixel in multicolor modes
	colorbits uint8
}

// sprite shift register
type spriteShiftRegister struct {
	// the three byte chunks filled by the sAccesses
	Chunk1 uint8
	Chunk2 uint8
	Chunk3 uint8

	data          uint32
	remainingBits int
	mcFlop        bool
	expFlop       bool
	colorbits     uint8
}

// PixelEngine owns the pixel buffers and the shift registers of the
// VIC.
type PixelEngine struct {
	// Pipe is the latched VIC state for the chunk being drawn. The VIC
	// overwrites it via Prepare() one cycle ahead of the draw
	Pipe Pipe

	// color pipes, latched separately with chunk granularity
	BorderPipe BorderColorPipe
	CanvasPipe CanvasColorPipe
	SpritePipe SpriteColorPipe

	// the canvas shift register
	SR shiftRegister

	// the eight sprite shift registers
	SpriteSR [8]spriteShiftRegister

	// VisibleColumn is set between cycles 14 and 61
	VisibleColumn bool

	buffers [2][]uint32

	// index of the buffer being drawn into. the front buffer index is
	// published atomically for the render thread
	back  int
	front int32

	// per-rasterline working state
	lineStart int // offset of the current rasterline in the back buffer
	vblank    bool

	zBuffer     [BufferWidth]int
	pixelSource [BufferWidth]int

	// collisions accumulated during the current cycle. drained by the
	// VIC after each draw
	collisionSS uint8
	collisionSB uint8

	// resolved colors for the current chunk. index 0/1 for single
	// color; 0 to 3 for multicolor
	colRGBA  [4]uint32
	multicol bool

	// scratch fields for the snapshot items
	scratchRemaining [8]uint32
}

// NewPixelEngine is the preferred method of initialisation for the
// PixelEngine type.
func NewPixelEngine() *PixelEngine {
	pe := &PixelEngine{}
	pe.buffers[0] = make([]uint32, BufferWidth*BufferHeight)
	pe.buffers[1] = make([]uint32, BufferWidth*BufferHeight)
	pe.Reset()
	return pe
}

// Reset the pixel engine. Both buffers are cleared to black.
func (pe *PixelEngine) Reset() {
	for i := range pe.buffers[0] {
		pe.buffers[0][i] = Colors[Black]
		pe.buffers[1][i] = Colors[Black]
	}
	pe.back = 0
	atomic.StoreInt32(&pe.front, 1)
	pe.SR = shiftRegister{}
	for i := range pe.SpriteSR {
		pe.SpriteSR[i] = spriteShiftRegister{}
	}
	pe.VisibleColumn = false
}

// ScreenBuffer returns the currently stable front buffer. Safe to call
// from the render thread while the emulation is producing the next
// frame.
func (pe *PixelEngine) ScreenBuffer() []uint32 {
	return pe.buffers[atomic.LoadInt32(&pe.front)]
}

// Prepare latches the VIC state for the next chunk of pixels.
func (pe *PixelEngine) Prepare(p Pipe) {
	pe.Pipe = p
}

// BeginFrame is called prior to cycle 1 of rasterline 0.
func (pe *PixelEngine) BeginFrame() {
	pe.lineStart = 0
}

// BeginRasterline is called prior to cycle 1 of every rasterline. line
// is the buffer row to draw into; vblank suppresses all drawing.
func (pe *PixelEngine) BeginRasterline(line int, vblank bool) {
	pe.vblank = vblank
	pe.lineStart = line * BufferWidth
	for i := range pe.zBuffer {
		pe.zBuffer[i] = 0x7fffffff
		pe.pixelSource[i] = 0
	}
	for i := range pe.SpriteSR {
		pe.SpriteSR[i].remainingBits = -1
	}
}

// EndRasterline is called after the last cycle of every rasterline.
func (pe *PixelEngine) EndRasterline() {
	if !pe.vblank {
		pe.expandBorders()
	}
}

// EndFrame is called after the last rasterline. The buffers swap; what
// was drawn becomes visible to the render thread.
func (pe *PixelEngine) EndFrame() {
	atomic.StoreInt32(&pe.front, int32(pe.back))
	pe.back ^= 1
}

// DrainCollisions returns and clears the collision bits accumulated
// since the last call.
func (pe *PixelEngine) DrainCollisions() (ss uint8, sb uint8) {
	ss = pe.collisionSS
	sb = pe.collisionSB
	pe.collisionSS = 0
	pe.collisionSB = 0
	return ss, sb
}

// LoadSpriteShiftRegister assembles the 24-bit shift register of a
// sprite from its three chunk latches. Called by the VIC when the
// sAccesses of the sprite are complete.
func (pe *PixelEngine) LoadSpriteShiftRegister(nr int) {
	sr := &pe.SpriteSR[nr]
	sr.data = uint32(sr.Chunk1)<<16 | uint32(sr.Chunk2)<<8 | uint32(sr.Chunk3)
}

//
// low level buffer access
//

func (pe *PixelEngine) offsetValid(offset int) bool {
	if pe.vblank {
		return false
	}
	col := offset - pe.lineStart
	return col >= 0 && col < BufferWidth
}

// border pixels sit in front of everything
func (pe *PixelEngine) setFramePixel(offset int, rgba uint32) {
	if !pe.offsetValid(offset) {
		return
	}
	col := offset - pe.lineStart
	pe.zBuffer[col] = depthBorder
	pe.pixelSource[col] = 0
	pe.buffers[pe.back][offset] = rgba
}

func (pe *PixelEngine) setForegroundPixel(offset int, rgba uint32) {
	if !pe.offsetValid(offset) {
		return
	}
	col := offset - pe.lineStart
	if depthForeground <= pe.zBuffer[col] {
		pe.zBuffer[col] = depthForeground
		pe.buffers[pe.back][offset] = rgba
	}
	pe.pixelSource[col] |= sourceForeground
}

func (pe *PixelEngine) setBackgroundPixel(offset int, rgba uint32) {
	if !pe.offsetValid(offset) {
		return
	}
	col := offset - pe.lineStart
	if depthBackground <= pe.zBuffer[col] {
		pe.zBuffer[col] = depthBackground
		pe.buffers[pe.back][offset] = rgba
	}
}

// sprite pixels take part in collision detection whether they win the
// depth test or not
func (pe *PixelEngine) setSpritePixel(offset int, rgba uint32, nr int, behindScenery bool) {
	if !pe.offsetValid(offset) {
		return
	}
	col := offset - pe.lineStart

	src := pe.pixelSource[col]
	if src&0xff != 0 {
		pe.collisionSS |= uint8(src&0xff) | 1<<nr
	}
	if src&sourceForeground != 0 {
		pe.collisionSB |= 1 << nr
	}

	depth := depthSpriteFG | nr
	if behindScenery {
		depth = depthSpriteBG | nr
	}
	if depth <= pe.zBuffer[col] {
		pe.zBuffer[col] = depth
		pe.buffers[pe.back][offset] = rgba
	}
	pe.pixelSource[col] |= 1 << nr
}

// expandBorders replicates the leftmost and rightmost drawn pixel so
// that the full buffer width carries sensible border color.
func (pe *PixelEngine) expandBorders() {
	buf := pe.buffers[pe.back]
	left := buf[pe.lineStart+drawOffset]
	right := buf[pe.lineStart+drawOffset+drawnPixels-1]
	for i := 0; i < drawOffset; i++ {
		buf[pe.lineStart+i] = left
	}
	for i := pe.lineStart + drawOffset + drawnPixels; i < pe.lineStart+BufferWidth; i++ {
		buf[i] = right
	}
}

// MarkLine paints a full rasterline in the given color. Debugging aid
// for visualising IRQ and DMA lines.
func (pe *PixelEngine) MarkLine(color uint8) {
	if pe.vblank {
		return
	}
	buf := pe.buffers[pe.back]
	for i := 0; i < BufferWidth; i++ {
		buf[pe.lineStart+i] = Colors[color]
	}
}
