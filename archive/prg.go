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

package archive

import (
	"github.com/jetsetilly/gopherc64/curated"
)

// PRG is the simplest container: a two byte load address followed by
// the program data.
type PRG struct {
	name string
	addr uint16
	data []uint8
	fp   int
}

// NewPRG creates a PRG archive from raw file data.
func NewPRG(name string, data []uint8) (*PRG, error) {
	if len(data) < 3 {
		return nil, curated.Errorf(curated.InvalidArchive, "prg file too short")
	}
	return &PRG{
		name: name,
		addr: uint16(data[0]) | uint16(data[1])<<8,
		data: data[2:],
	}, nil
}

// Name implements the Archive interface.
func (prg *PRG) Name() string { return prg.name }

// NumItems implements the Archive interface.
func (prg *PRG) NumItems() int { return 1 }

// NameOfItem implements the Archive interface.
func (prg *PRG) NameOfItem(n int) string { return prg.name }

// TypeOfItem implements the Archive interface.
func (prg *PRG) TypeOfItem(n int) string { return "PRG" }

// SizeOfItem implements the Archive interface.
func (prg *PRG) SizeOfItem(n int) int { return len(prg.data) }

// DestAddrOfItem implements the Archive interface.
func (prg *PRG) DestAddrOfItem(n int) uint16 { return prg.addr }

// Select implements the Archive interface.
func (prg *PRG) Select(n int) { prg.fp = 0 }

// NextByte implements the Archive interface.
func (prg *PRG) NextByte() (uint8, bool) {
	if prg.fp >= len(prg.data) {
		return 0, false
	}
	b := prg.data[prg.fp]
	prg.fp++
	return b, true
}

// P00 is a PRG with a 26 byte header carrying the original PET name.
type P00 struct {
	PRG
}

const p00Magic = "C64File\x00"

// NewP00 creates a P00 archive from raw file data.
func NewP00(data []uint8) (*P00, error) {
	if len(data) < 0x1c+2 {
		return nil, curated.Errorf(curated.InvalidArchive, "p00 file too short")
	}
	if string(data[:8]) != p00Magic {
		return nil, curated.Errorf(curated.InvalidArchive, "not a p00 file")
	}

	name := petsciiToString(data[8:0x18])

	prg, err := NewPRG(name, data[0x1a:])
	if err != nil {
		return nil, err
	}
	return &P00{PRG: *prg}, nil
}

// TypeOfItem implements the Archive interface.
func (p00 *P00) TypeOfItem(n int) string { return "P00" }
