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
	"encoding/binary"
	"strings"

	"github.com/jetsetilly/gopherc64/curated"
)

// T64 is a tape archive as produced by the C64S emulator and countless
// tools since. A 64 byte header is followed by a directory of 32 byte
// entries and the file data.
type T64 struct {
	name string

	items []t64Item

	selected int
	fp       int
}

type t64Item struct {
	name      string
	startAddr uint16
	data      []uint8
}

// NewT64 creates a T64 archive from raw file data.
func NewT64(data []uint8) (*T64, error) {
	if len(data) < 64 {
		return nil, curated.Errorf(curated.InvalidArchive, "t64 file too short")
	}
	if !strings.HasPrefix(string(data[:32]), "C64") {
		return nil, curated.Errorf(curated.InvalidArchive, "not a t64 file")
	}

	maxEntries := int(binary.LittleEndian.Uint16(data[34:]))
	usedEntries := int(binary.LittleEndian.Uint16(data[36:]))

	// a popular tape tool wrote zero into the used entry count
	if usedEntries == 0 {
		usedEntries = 1
	}
	if usedEntries > maxEntries || 64+maxEntries*32 > len(data) {
		return nil, curated.Errorf(curated.InvalidArchive, "t64 directory malformed")
	}

	t64 := &T64{
		name: petsciiToString(data[40:64]),
	}

	for i := 0; i < usedEntries; i++ {
		entry := data[64+i*32 : 64+(i+1)*32]

		// entry type 0 is unused; 1 is a normal file
		if entry[0] == 0 {
			continue
		}

		startAddr := binary.LittleEndian.Uint16(entry[2:])
		endAddr := binary.LittleEndian.Uint16(entry[4:])
		offset := int(binary.LittleEndian.Uint32(entry[8:]))

		size := int(endAddr) - int(startAddr)
		if size <= 0 || offset < 0 || offset+size > len(data) {
			// the end address field is unreliable in many images; fall
			// back to the rest of the file
			size = len(data) - offset
			if size <= 0 {
				return nil, curated.Errorf(curated.InvalidArchive, "t64 entry malformed")
			}
		}

		t64.items = append(t64.items, t64Item{
			name:      petsciiToString(entry[16:32]),
			startAddr: startAddr,
			data:      data[offset : offset+size],
		})
	}

	if len(t64.items) == 0 {
		return nil, curated.Errorf(curated.InvalidArchive, "t64 has no items")
	}

	return t64, nil
}

// Name implements the Archive interface.
func (t64 *T64) Name() string { return t64.name }

// NumItems implements the Archive interface.
func (t64 *T64) NumItems() int { return len(t64.items) }

// NameOfItem implements the Archive interface.
func (t64 *T64) NameOfItem(n int) string { return t64.items[n].name }

// TypeOfItem implements the Archive interface.
func (t64 *T64) TypeOfItem(n int) string { return "PRG" }

// SizeOfItem implements the Archive interface.
func (t64 *T64) SizeOfItem(n int) int { return len(t64.items[n].data) }

// DestAddrOfItem implements the Archive interface.
func (t64 *T64) DestAddrOfItem(n int) uint16 { return t64.items[n].startAddr }

// Select implements the Archive interface.
func (t64 *T64) Select(n int) {
	t64.selected = n
	t64.fp = 0
}

// NextByte implements the Archive interface.
func (t64 *T64) NextByte() (uint8, bool) {
	item := t64.items[t64.selected]
	if t64.fp >= len(item.data) {
		return 0, false
	}
	b := item.data[t64.fp]
	t64.fp++
	return b, true
}
