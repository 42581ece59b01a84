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

package archive_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/gopherc64/archive"
	"github.com/jetsetilly/gopherc64/hardware/memory"
	"github.com/jetsetilly/gopherc64/test"
)

// build a minimal 35 track image with one PRG on it
func buildD64(t *testing.T) []uint8 {
	t.Helper()

	img := make([]uint8, 174848)

	// offset helper mirroring the zone layout
	offset := func(track, sector int) int {
		o := 0
		for tr := 1; tr < track; tr++ {
			o += archive.NumSectorsInTrack(tr) * 256
		}
		return o + sector*256
	}

	// BAM: disk name and id
	bam := offset(18, 0)
	img[bam] = 18 // first directory sector
	img[bam+1] = 1
	img[bam+2] = 0x41
	copy(img[bam+0x90:], []uint8{'T', 'E', 'S', 'T', 0xa0, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0})
	img[bam+0xa2] = '2'
	img[bam+0xa3] = 'A'

	// directory sector 18/1: one closed PRG starting at 17/0
	dir := offset(18, 1)
	img[dir] = 0 // no further directory sectors
	img[dir+1] = 0xff
	img[dir+2] = 0x82 // closed PRG
	img[dir+3] = 17
	img[dir+4] = 0
	copy(img[dir+5:], []uint8{'H', 'E', 'L', 'L', 'O', 0xa0, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0})
	img[dir+0x1e] = 1

	// data sector 17/0: last in chain, load address 0x0801, four bytes
	// of payload
	dat := offset(17, 0)
	img[dat] = 0
	img[dat+1] = 7 // last used byte offset
	img[dat+2] = 0x01
	img[dat+3] = 0x08
	copy(img[dat+4:], []uint8{0xde, 0xad, 0xbe, 0xef})

	return img
}

func TestD64Directory(t *testing.T) {
	d64, err := archive.NewD64(buildD64(t))
	test.ExpectedSuccess(t, err)

	test.Equate(t, d64.Name(), "TEST")
	test.Equate(t, d64.NumTracks(), 35)
	test.Equate(t, d64.NumItems(), 1)
	test.Equate(t, d64.NameOfItem(0), "HELLO")
	test.Equate(t, d64.TypeOfItem(0), "PRG")
	test.Equate(t, d64.DestAddrOfItem(0), 0x0801)
	test.Equate(t, d64.SizeOfItem(0), 4)

	lo, hi := d64.DiskID()
	test.Equate(t, lo, 0x32)
	test.Equate(t, hi, 0x41)
}

func TestD64RoundTrip(t *testing.T) {
	img := buildD64(t)

	d64, err := archive.NewD64(img)
	test.ExpectedSuccess(t, err)

	// reading all sectors and writing back must reproduce the image
	// byte for byte; no BAM recomputation
	for track := 1; track <= d64.NumTracks(); track++ {
		for sector := 0; sector < archive.NumSectorsInTrack(track); sector++ {
			if d64.FindSector(track, sector) == nil {
				t.Fatalf("sector %d/%d missing", track, sector)
			}
		}
	}

	test.Equate(t, bytes.Equal(d64.WriteToBuffer(), img), true)
}

func TestD64Flash(t *testing.T) {
	d64, err := archive.NewD64(buildD64(t))
	test.ExpectedSuccess(t, err)

	mem := memory.NewMemory()
	test.ExpectedSuccess(t, archive.Flash(d64, 0, mem))

	test.Equate(t, mem.RAM[0x0801], 0xde)
	test.Equate(t, mem.RAM[0x0804], 0xef)

	// basic end-of-program pointer fixed up
	test.Equate(t, mem.RAM[0x2d], 0x05)
	test.Equate(t, mem.RAM[0x2e], 0x08)
}

func TestD64RejectsBadSize(t *testing.T) {
	_, err := archive.NewD64(make([]uint8, 1000))
	test.ExpectedFailure(t, err)
}

func TestPRG(t *testing.T) {
	prg, err := archive.NewPRG("DEMO", []uint8{0x01, 0x08, 0xaa, 0xbb, 0xcc})
	test.ExpectedSuccess(t, err)

	test.Equate(t, prg.NumItems(), 1)
	test.Equate(t, prg.DestAddrOfItem(0), 0x0801)
	test.Equate(t, prg.SizeOfItem(0), 3)

	prg.Select(0)
	b, ok := prg.NextByte()
	test.Equate(t, ok, true)
	test.Equate(t, b, 0xaa)
}

func TestT64(t *testing.T) {
	img := make([]uint8, 64+32+6)
	copy(img, "C64 tape image file")
	img[34] = 1 // max entries
	img[36] = 1 // used entries
	copy(img[40:], "MYTAPE")

	entry := img[64:96]
	entry[0] = 1    // normal file
	entry[2] = 0x01 // start 0x0801
	entry[3] = 0x08
	entry[4] = 0x07 // end 0x0807
	entry[5] = 0x08
	entry[8] = 96 // data offset
	copy(entry[16:], "GAME")
	for i := 20; i < 32; i++ {
		entry[i] = 0xa0
	}

	copy(img[96:], []uint8{1, 2, 3, 4, 5, 6})

	t64, err := archive.NewT64(img)
	test.ExpectedSuccess(t, err)

	test.Equate(t, t64.Name(), "MYTAPE")
	test.Equate(t, t64.NumItems(), 1)
	test.Equate(t, t64.NameOfItem(0), "GAME")
	test.Equate(t, t64.SizeOfItem(0), 6)
	test.Equate(t, t64.DestAddrOfItem(0), 0x0801)
}

func TestP00(t *testing.T) {
	img := make([]uint8, 0x1a+4)
	copy(img, "C64File\x00")
	copy(img[8:], "NOTES")
	copy(img[0x1a:], []uint8{0x00, 0xc0, 0x60, 0x60})

	p00, err := archive.NewP00(img)
	test.ExpectedSuccess(t, err)
	test.Equate(t, p00.NameOfItem(0), "NOTES")
	test.Equate(t, p00.DestAddrOfItem(0), 0xc000)
	test.Equate(t, p00.SizeOfItem(0), 2)
}
