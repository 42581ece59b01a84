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

// D64 is a sector dump of a 1541 diskette. Images come in six sizes: 35,
// 40 or 42 tracks, each with or without a trailing error byte table.
// The directory lives on track 18: sector 0 holds the BAM and the disk
// name, the entry chain starts at sector 1.
type D64 struct {
	data   []uint8
	errors []uint8

	numTracks int

	// directory offsets of the visible items
	items []int

	selected int

	// read position as an offset into data, plus the remaining bytes of
	// the current sector
	fp        int
	remaining int
	atEnd     bool
}

// the six valid image sizes
const (
	d64Size35         = 174848
	d64Size35Err      = 175531
	d64Size40         = 196608
	d64Size40Err      = 197376
	d64Size42         = 205312
	d64Size42Err      = 206114
	d64TotalSectors35 = 683
	d64TotalSectors40 = 768
	d64TotalSectors42 = 802
)

// NumSectorsInTrack returns the number of sectors in a track. Track
// numbering starts at 1; the zones get shorter towards the centre of
// the disk.
func NumSectorsInTrack(track int) int {
	switch {
	case track < 18:
		return 21
	case track < 25:
		return 19
	case track < 31:
		return 18
	}
	return 17
}

// offset of the first byte of a track in the image
func trackOffset(track int) int {
	o := 0
	for t := 1; t < track; t++ {
		o += NumSectorsInTrack(t) * 256
	}
	return o
}

// NewD64 creates a D64 archive from raw file data. The image is
// validated as a whole; directory corruption rejects the file.
func NewD64(data []uint8) (*D64, error) {
	d64 := &D64{}

	switch len(data) {
	case d64Size35:
		d64.numTracks = 35
		d64.data = data
	case d64Size35Err:
		d64.numTracks = 35
		d64.data = data[:d64Size35]
		d64.errors = data[d64Size35:]
	case d64Size40:
		d64.numTracks = 40
		d64.data = data
	case d64Size40Err:
		d64.numTracks = 40
		d64.data = data[:d64Size40]
		d64.errors = data[d64Size40:]
	case d64Size42:
		d64.numTracks = 42
		d64.data = data
	case d64Size42Err:
		d64.numTracks = 42
		d64.data = data[:d64Size42]
		d64.errors = data[d64Size42:]
	default:
		return nil, curated.Errorf(curated.InvalidArchive, "not a d64 image (%d bytes)", len(data))
	}

	if err := d64.scanDirectory(); err != nil {
		return nil, err
	}

	return d64, nil
}

// NumTracks returns the number of tracks in the image.
func (d64 *D64) NumTracks() int {
	return d64.numTracks
}

// FindSector returns the 256 bytes of a sector. Nil if the track and
// sector combination does not exist on this image.
func (d64 *D64) FindSector(track int, sector int) []uint8 {
	if track < 1 || track > d64.numTracks || sector < 0 || sector >= NumSectorsInTrack(track) {
		return nil
	}
	o := trackOffset(track) + sector*256
	return d64.data[o : o+256]
}

// WriteToBuffer returns the image as a byte stream, error table
// included. No BAM recomputation takes place: what was read is what is
// written.
func (d64 *D64) WriteToBuffer() []uint8 {
	buf := make([]uint8, 0, len(d64.data)+len(d64.errors))
	buf = append(buf, d64.data...)
	buf = append(buf, d64.errors...)
	return buf
}

// DiskID returns the two byte disk id from the BAM.
func (d64 *D64) DiskID() (uint8, uint8) {
	bam := d64.FindSector(18, 0)
	return bam[0xa2], bam[0xa3]
}

// itemIsVisible returns true if a directory entry would show up in a
// LOAD "$",8 listing. Deleted and unclosed files are present in the
// directory sectors but hidden.
func itemIsVisible(typeChar uint8) bool {
	return typeChar&0x80 != 0 && typeChar&0x07 != 0x00
}

func typeOfEntry(typeChar uint8) string {
	switch typeChar & 0x07 {
	case 0x01:
		return "SEQ"
	case 0x02:
		return "PRG"
	case 0x03:
		return "USR"
	case 0x04:
		return "REL"
	}
	return "DEL"
}

// scanDirectory walks the entry chain starting at track 18 sector 1 and
// records the offset of every visible entry.
func (d64 *D64) scanDirectory() error {
	track, sector := 18, 1
	seen := 0

	for track != 0 {
		s := d64.FindSector(track, sector)
		if s == nil {
			return curated.Errorf(curated.InvalidArchive, "directory chain leaves the disk")
		}

		for entry := 0; entry < 8; entry++ {
			o := entry * 32
			if itemIsVisible(s[o+2]) {
				d64.items = append(d64.items, trackOffset(track)+sector*256+o)
			}
		}

		track, sector = int(s[0]), int(s[1])

		// a directory longer than the disk has sectors is a loop
		seen++
		if seen > d64TotalSectors42 {
			return curated.Errorf(curated.InvalidArchive, "directory chain loops")
		}
	}

	return nil
}

// Name implements the Archive interface. The disk name is stored in the
// BAM.
func (d64 *D64) Name() string {
	bam := d64.FindSector(18, 0)
	return petsciiToString(bam[0x90:0xa0])
}

// NumItems implements the Archive interface.
func (d64 *D64) NumItems() int {
	return len(d64.items)
}

// NameOfItem implements the Archive interface.
func (d64 *D64) NameOfItem(n int) string {
	o := d64.items[n]
	return petsciiToString(d64.data[o+5 : o+21])
}

// TypeOfItem implements the Archive interface.
func (d64 *D64) TypeOfItem(n int) string {
	return typeOfEntry(d64.data[d64.items[n]+2])
}

// SizeOfItem implements the Archive interface. The directory only
// stores a block count; the exact byte size requires walking the sector
// chain.
func (d64 *D64) SizeOfItem(n int) int {
	size := 0
	o := d64.items[n]
	track, sector := int(d64.data[o+3]), int(d64.data[o+4])

	seen := 0
	for track != 0 {
		s := d64.FindSector(track, sector)
		if s == nil {
			return size
		}
		if s[0] == 0 {
			// the last sector: the second byte is the offset of the
			// last used byte
			size += int(s[1]) - 1
		} else {
			size += 254
		}
		track, sector = int(s[0]), int(s[1])

		seen++
		if seen > d64TotalSectors42 {
			return size
		}
	}

	// the first two bytes of the item are the load address
	if size >= 2 {
		size -= 2
	}
	return size
}

// DestAddrOfItem implements the Archive interface. The load address is
// in the first two bytes of the first sector.
func (d64 *D64) DestAddrOfItem(n int) uint16 {
	o := d64.items[n]
	s := d64.FindSector(int(d64.data[o+3]), int(d64.data[o+4]))
	if s == nil {
		return 0
	}
	return uint16(s[2]) | uint16(s[3])<<8
}

// Select implements the Archive interface. The read position is set
// just past the load address of the item.
func (d64 *D64) Select(n int) {
	d64.selected = n
	d64.atEnd = false

	o := d64.items[n]
	d64.seekSector(int(d64.data[o+3]), int(d64.data[o+4]))

	// skip the load address
	d64.NextByte()
	d64.NextByte()
}

func (d64 *D64) seekSector(track int, sector int) {
	s := d64.FindSector(track, sector)
	if s == nil {
		d64.atEnd = true
		return
	}

	o := trackOffset(track) + sector*256
	d64.fp = o + 2
	if s[0] == 0 {
		d64.remaining = int(s[1]) - 1
	} else {
		d64.remaining = 254
	}
}

// NextByte implements the Archive interface. Sector chains are followed
// transparently.
func (d64 *D64) NextByte() (uint8, bool) {
	for {
		if d64.atEnd {
			return 0, false
		}
		if d64.remaining > 0 {
			b := d64.data[d64.fp]
			d64.fp++
			d64.remaining--
			return b, true
		}

		// move to the next sector in the chain
		sectorStart := (d64.fp - 1) &^ 0xff
		next := int(d64.data[sectorStart])
		if next == 0 {
			d64.atEnd = true
			return 0, false
		}
		d64.seekSector(next, int(d64.data[sectorStart+1]))
	}
}
