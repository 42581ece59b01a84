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

// Package memory implements the address space of the C64: 64KiB of
// dynamic RAM, the three system ROMs, 1KiB of color RAM and the I/O
// window at 0xd000. Which of these a CPU access reaches is decided by
// the PLA from the low three bits of the processor port (see pla.go).
//
// The chips on the I/O window register themselves on the bus with the
// ChipBus interface. Reads from unmapped I/O addresses return the last
// byte seen on the data bus (open bus).
package memory

import (
	"os"

	"github.com/jetsetilly/gopherc64/curated"
)

// ChipBus is implemented by every chip that lives in the I/O window.
// The address passed to Peek/Poke is relative to the chip's base
// address; mirroring has already been applied.
type ChipBus interface {
	Peek(reg uint16) uint8
	Poke(reg uint16, data uint8)
}

// Sizes of the individual memory areas.
const (
	RAMSize      = 0x10000
	KernalSize   = 0x2000
	BasicSize    = 0x2000
	CharSize     = 0x1000
	ColorRAMSize = 0x0400
)

// Memory is the complete address space of the C64.
type Memory struct {
	RAM [RAMSize]uint8

	Kernal [KernalSize]uint8
	Basic  [BasicSize]uint8
	Char   [CharSize]uint8

	// color RAM is a separate 4-bit SRAM chip. only the lower nibble of
	// each cell is backed by silicon; the upper nibble reads as the
	// upper nibble of the last data bus value.
	Color [ColorRAMSize]uint8

	// the chips attached to the I/O window
	VIC  ChipBus
	SID  ChipBus
	CIA1 ChipBus
	CIA2 ChipBus

	// optional cartridge ROM mapped at 0x8000 (8K) and 0xa000 (16K
	// images). nil when no cartridge is attached.
	CartLo []uint8
	CartHi []uint8

	// the processor port at addresses 0x0000/0x0001
	Port ProcessorPort

	// CassetteSense, when non-nil, reports whether a key on the
	// datasette is pressed. pulls bit 4 of the processor port low
	CassetteSense func() bool

	// the last byte that crossed the data bus. reads of unmapped
	// addresses return this value
	LastByte uint8
}

// NewMemory is the preferred method of initialisation for the Memory
// type. ROMs are zeroed; load them with LoadROMs() or by writing to the
// ROM fields directly (the test harnesses do the latter).
func NewMemory() *Memory {
	mem := &Memory{}
	mem.Reset()
	return mem
}

// Reset the memory to its power-on state. Color RAM is deliberately not
// cleared; the physical chip keeps its content across a soft reset,
// dynamic RAM does not.
func (mem *Memory) Reset() {
	for i := range mem.RAM {
		mem.RAM[i] = 0x00
	}
	mem.Port.Reset()
	mem.LastByte = 0x00
}

// LoadROMs reads the kernal, basic and character ROM images from the
// given files.
func (mem *Memory) LoadROMs(kernal string, basic string, char string) error {
	load := func(path string, target []uint8) error {
		d, err := os.ReadFile(path)
		if err != nil {
			return curated.Errorf("memory: %v", err)
		}
		if len(d) != len(target) {
			return curated.Errorf("memory: rom %s: wrong size (%d)", path, len(d))
		}
		copy(target, d)
		return nil
	}

	if err := load(kernal, mem.Kernal[:]); err != nil {
		return err
	}
	if err := load(basic, mem.Basic[:]); err != nil {
		return err
	}
	return load(char, mem.Char[:])
}

// Peek returns the byte at the specified address, as seen by the CPU
// through the current PLA mapping. I/O registers that are naturally
// side-effecting on read (collision registers, ICR, ...) do see those
// side effects; that is what the hardware does.
func (mem *Memory) Peek(addr uint16) uint8 {
	if addr <= 0x0001 {
		v := mem.Port.Peek(addr)
		if addr == 0x0001 && mem.Port.Direction&0x10 == 0 &&
			mem.CassetteSense != nil && mem.CassetteSense() {
			v &^= 0x10
		}
		mem.LastByte = v
		return mem.LastByte
	}

	m := visibility(mem.Port.Lines(), addr)

	// a cartridge ROM replaces the RAM at 0x8000 (and BASIC at 0xa000
	// for 16K images) while both banking lines are high
	if mem.CartLo != nil && addr >= 0x8000 && addr <= 0x9fff &&
		mem.Port.Lines()&(plaLORAM|plaHIRAM) == plaLORAM|plaHIRAM {
		m = mappedCartLo
	}
	if mem.CartHi != nil && m == mappedBasic {
		m = mappedCartHi
	}

	switch m {
	case mappedRAM:
		mem.LastByte = mem.RAM[addr]

	case mappedBasic:
		mem.LastByte = mem.Basic[addr-0xa000]

	case mappedKernal:
		mem.LastByte = mem.Kernal[addr-0xe000]

	case mappedChar:
		mem.LastByte = mem.Char[addr-0xd000]

	case mappedCartLo:
		if mem.CartLo != nil {
			mem.LastByte = mem.CartLo[int(addr-0x8000)%len(mem.CartLo)]
		} else {
			mem.LastByte = mem.RAM[addr]
		}

	case mappedCartHi:
		if mem.CartHi != nil {
			mem.LastByte = mem.CartHi[int(addr-0xa000)%len(mem.CartHi)]
		} else {
			mem.LastByte = mem.RAM[addr]
		}

	case mappedIO:
		mem.LastByte = mem.peekIO(addr)
	}

	return mem.LastByte
}

// Poke writes a byte to the specified address through the current PLA
// mapping. Writes to ROM areas fall through to the RAM underneath.
func (mem *Memory) Poke(addr uint16, data uint8) {
	mem.LastByte = data

	if addr <= 0x0001 {
		mem.Port.Poke(addr, data)
		return
	}

	if visibility(mem.Port.Lines(), addr) == mappedIO {
		mem.pokeIO(addr, data)
		return
	}

	mem.RAM[addr] = data
}

func (mem *Memory) peekIO(addr uint16) uint8 {
	switch {
	case addr < 0xd400:
		if mem.VIC != nil {
			return mem.VIC.Peek(addr & 0x003f)
		}
	case addr < 0xd800:
		if mem.SID != nil {
			return mem.SID.Peek(addr & 0x001f)
		}
	case addr < 0xdc00:
		// color RAM cells are four bits wide. the upper nibble is
		// whatever the bus carried last
		return (mem.LastByte & 0xf0) | (mem.Color[addr-0xd800] & 0x0f)
	case addr < 0xdd00:
		if mem.CIA1 != nil {
			return mem.CIA1.Peek(addr & 0x000f)
		}
	case addr < 0xde00:
		if mem.CIA2 != nil {
			return mem.CIA2.Peek(addr & 0x000f)
		}
	default:
		// 0xde00 to 0xdfff is the expansion port. open bus without a
		// cartridge
		return mem.LastByte
	}
	return mem.LastByte
}

func (mem *Memory) pokeIO(addr uint16, data uint8) {
	switch {
	case addr < 0xd400:
		if mem.VIC != nil {
			mem.VIC.Poke(addr&0x003f, data)
		}
	case addr < 0xd800:
		if mem.SID != nil {
			mem.SID.Poke(addr&0x001f, data)
		}
	case addr < 0xdc00:
		mem.Color[addr-0xd800] = data & 0x0f
	case addr < 0xdd00:
		if mem.CIA1 != nil {
			mem.CIA1.Poke(addr&0x000f, data)
		}
	case addr < 0xde00:
		if mem.CIA2 != nil {
			mem.CIA2.Poke(addr&0x000f, data)
		}
	}
}

// VICRead performs a read on behalf of the VIC. The address is the full
// 16-bit address after bank extension. Within banks 0 and 2 the
// character ROM shadows the RAM at 0x1000-0x1fff and 0x9000-0x9fff. A
// VIC read never mutates RAM.
func (mem *Memory) VICRead(busAddr uint16) uint8 {
	if (busAddr & 0x7000) == 0x1000 {
		return mem.Char[busAddr&0x0fff]
	}
	return mem.RAM[busAddr]
}

// VICColorRead returns the lower nibble of a color RAM cell on behalf
// of the VIC.
func (mem *Memory) VICColorRead(addr uint16) uint8 {
	return mem.Color[addr&0x03ff] & 0x0f
}
