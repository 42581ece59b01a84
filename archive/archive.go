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

// Package archive reads the container formats that C64 software is
// distributed in: PRG and P00 single programs, T64 tape archives, D64
// disk images and NIB raw nibble dumps. Every format is validated
// completely before an Archive is returned; a malformed file is
// rejected, never partially loaded.
package archive

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/gopherc64/curated"
	"github.com/jetsetilly/gopherc64/hardware/memory"
	"github.com/jetsetilly/gopherc64/logger"
)

// Archive is a loadable container with one or more items.
type Archive interface {
	// Name returns the logical name of the archive
	Name() string

	// NumItems returns the number of stored items
	NumItems() int

	// NameOfItem returns the name of the n-th item
	NameOfItem(n int) string

	// TypeOfItem returns the file type of the n-th item ("PRG", "SEQ",
	// ...)
	TypeOfItem(n int) string

	// SizeOfItem returns the size of the n-th item in bytes
	SizeOfItem(n int) int

	// DestAddrOfItem returns the memory location the item wants to be
	// loaded to
	DestAddrOfItem(n int) uint16

	// Select prepares the n-th item for reading
	Select(n int)

	// NextByte returns the next byte of the selected item. The second
	// return value is false at end of file
	NextByte() (uint8, bool)
}

// SizeOfItemInBlocks returns the size of an item in disk blocks, the
// unit a directory listing shows.
func SizeOfItemInBlocks(arc Archive, n int) int {
	return (arc.SizeOfItem(n) + 253) / 254
}

// Open reads an archive from disk, picking the format by file
// extension.
func Open(filename string) (Archive, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(curated.InvalidArchive, err)
	}

	name := strings.ToUpper(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".prg":
		return NewPRG(name, data)
	case ".p00":
		return NewP00(data)
	case ".t64":
		return NewT64(data)
	case ".d64":
		return NewD64(data)
	case ".nib":
		return NewNIB(data)
	}

	return nil, curated.Errorf(curated.InvalidArchive, "unrecognised file extension")
}

// Flash copies an item of an archive directly into emulator RAM at its
// destination address, the way the kernal's LOAD would. The kernal
// pointers at 0x2d/0x2e (end of basic program) are fixed up so that a
// following RUN works.
func Flash(arc Archive, n int, mem *memory.Memory) error {
	if n < 0 || n >= arc.NumItems() {
		return curated.Errorf(curated.InvalidArchive, "no such item")
	}

	addr := arc.DestAddrOfItem(n)
	arc.Select(n)

	for {
		b, ok := arc.NextByte()
		if !ok {
			break
		}
		mem.RAM[addr] = b
		addr++
		if addr == 0 {
			return curated.Errorf(curated.InvalidArchive, "item overflows memory")
		}
	}

	// end-of-program pointer
	mem.RAM[0x2d] = uint8(addr)
	mem.RAM[0x2e] = uint8(addr >> 8)
	mem.RAM[0x2f] = uint8(addr)
	mem.RAM[0x30] = uint8(addr >> 8)
	mem.RAM[0x31] = uint8(addr)
	mem.RAM[0x32] = uint8(addr >> 8)

	logger.Logf("archive", "flashed %s to %#04x-%#04x",
		arc.NameOfItem(n), arc.DestAddrOfItem(n), addr-1)

	return nil
}
