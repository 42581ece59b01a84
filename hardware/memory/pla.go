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

package memory

// what a CPU access resolves to after the PLA has looked at the
// processor port lines
type mapped int

const (
	mappedRAM mapped = iota
	mappedBasic
	mappedKernal
	mappedChar
	mappedIO
	mappedCartLo
	mappedCartHi
)

// bit positions of the three banking lines on the processor port
const (
	plaLORAM  = 0x01
	plaHIRAM  = 0x02
	plaCHAREN = 0x04
)

// plaTable is indexed by the low three bits of the effective processor
// port lines and by 4KiB page number. It is built once at package
// initialisation; the real PLA is a fixed truth table too.
var plaTable [8][16]mapped

func init() {
	for lines := 0; lines < 8; lines++ {
		loram := lines&plaLORAM != 0
		hiram := lines&plaHIRAM != 0
		charen := lines&plaCHAREN != 0

		for page := 0; page < 16; page++ {
			m := mappedRAM

			switch {
			case page >= 0xa && page <= 0xb:
				if loram && hiram {
					m = mappedBasic
				}
			case page == 0xd:
				if loram || hiram {
					if charen {
						m = mappedIO
					} else {
						m = mappedChar
					}
				}
			case page >= 0xe:
				if hiram {
					m = mappedKernal
				}
			}

			plaTable[lines][page] = m
		}
	}
}

func visibility(portLines uint8, addr uint16) mapped {
	return plaTable[portLines&0x07][addr>>12]
}

// pull-up resistors on the banking lines. an input line (direction bit
// 0) reads as 1
const portPullup = 0x17

// ProcessorPort is the 6510 on-chip port at addresses 0x0000 (direction
// register) and 0x0001 (data register). Bits 0-2 select the memory
// banks; bits 3-5 drive the datasette.
type ProcessorPort struct {
	Direction uint8
	Data      uint8
}

// Reset the port. The kernal reprograms both registers early in its
// reset routine but the hardware defaults make the full ROM set visible
// from the first cycle.
func (p *ProcessorPort) Reset() {
	p.Direction = 0x00
	p.Data = 0x00
}

// Lines returns the effective value of the port lines: driven bits come
// from the data register, input bits from the pull-ups.
func (p *ProcessorPort) Lines() uint8 {
	return (p.Data & p.Direction) | (portPullup &^ p.Direction)
}

// Peek the port registers.
func (p *ProcessorPort) Peek(addr uint16) uint8 {
	if addr == 0x0000 {
		return p.Direction
	}
	return p.Lines()
}

// Poke the port registers.
func (p *ProcessorPort) Poke(addr uint16, data uint8) {
	if addr == 0x0000 {
		p.Direction = data
		return
	}
	p.Data = data
}
