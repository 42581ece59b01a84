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
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherc64/curated"
	"github.com/jetsetilly/gopherc64/logger"
)

// NIB is a raw nibbler dump: one 0x2000 byte GCR bit stream per stored
// halftrack. Because the nibbler cannot know when the disk has
// completed a revolution the streams overlap themselves; scanTrack
// finds the loop and trims each track to its true length.
type NIB struct {
	// decoded halftrack data, indexed 1 to 84. a nil slice means the
	// halftrack is not present in the image
	halftrack [maxHalftracks + 1][]uint8

	// length of each halftrack in bits
	length [maxHalftracks + 1]int

	// item number to halftrack mapping
	items []int

	selected int
	fp       int
}

const (
	nibMagic      = "MNIB-1541-RAW"
	nibHeaderSize = 0x100
	nibTrackSize  = 0x2000

	maxHalftracks = 84

	// length bounds of a track after loop detection, in bytes
	minTrackLength = 6016
	maxTrackLength = 7928
)

// NewNIB creates a NIB archive from raw file data. Every stored track
// is scanned; a track in which no loop can be found rejects the image.
func NewNIB(data []uint8) (*NIB, error) {
	if len(data) < nibHeaderSize+nibTrackSize {
		return nil, curated.Errorf(curated.InvalidArchive, "nib file too short")
	}
	if !strings.HasPrefix(string(data[:len(nibMagic)]), nibMagic) {
		return nil, curated.Errorf(curated.InvalidArchive, "not a nib file")
	}

	nib := &NIB{}

	// the header lists the stored halftracks at offset 0x10, two bytes
	// per entry: halftrack number and density
	numTracks := (len(data) - nibHeaderSize) / nibTrackSize

	for i := 0; i < numTracks; i++ {
		ht := int(data[0x10+i*2])
		if ht < 1 || ht > maxHalftracks {
			continue
		}

		o := nibHeaderSize + i*nibTrackSize
		raw := data[o : o+nibTrackSize]

		if err := nib.scanTrack(ht, raw); err != nil {
			return nil, err
		}
		nib.items = append(nib.items, ht)
	}

	if len(nib.items) == 0 {
		return nil, curated.Errorf(curated.InvalidArchive, "nib image has no tracks")
	}

	return nib, nil
}

// scanTrack finds the revolution loop in the raw stream and stores the
// trimmed track.
func (nib *NIB) scanTrack(ht int, raw []uint8) error {
	start, end, ok := scanForLoop(raw)
	if !ok {
		return curated.Errorf(curated.InvalidArchive, "halftrack %d: no loop found", ht)
	}

	gap := scanForGap(raw[start:end])

	// rotate the track so that it begins at the gap; tracks then align
	// with each other the way a real drive head sees them
	track := make([]uint8, 0, end-start)
	track = append(track, raw[start+gap:end]...)
	track = append(track, raw[start:start+gap]...)

	nib.halftrack[ht] = track
	nib.length[ht] = len(track) * 8

	logger.Logf("nib", "halftrack %d: %d bits", ht, nib.length[ht])
	return nil
}

// scanForLoop looks for the position at which the bit stream repeats
// itself. Returns the bounds of one revolution.
func scanForLoop(raw []uint8) (start int, end int, ok bool) {
	const window = 32

	for end = minTrackLength; end <= maxTrackLength && end+window <= len(raw); end++ {
		match := true
		for i := 0; i < window; i++ {
			if raw[i] != raw[end+i] {
				match = false
				break
			}
		}
		if match {
			return 0, end, true
		}
	}

	return 0, 0, false
}

// scanForGap returns the offset of the longest area between two SYNC
// marks. Every 0xff byte is taken as a SYNC mark; the longest gap is
// where the drive wrote the tail of the track.
func scanForGap(track []uint8) int {
	longest := 0
	longestAt := 0

	run := 0
	runAt := 0

	for i, b := range track {
		if b == 0xff {
			if run > longest {
				longest = run
				longestAt = runAt
			}
			run = 0
			runAt = i + 1
			continue
		}
		run++
	}
	if run > longest {
		longestAt = runAt
	}

	return longestAt
}

// Name implements the Archive interface.
func (nib *NIB) Name() string { return "NIB image" }

// NumItems implements the Archive interface. Each stored halftrack is
// an item.
func (nib *NIB) NumItems() int { return len(nib.items) }

// NameOfItem implements the Archive interface.
func (nib *NIB) NameOfItem(n int) string {
	ht := nib.items[n]
	if ht%2 == 1 {
		return fmt.Sprintf("TRACK %d", (ht+1)/2)
	}
	return fmt.Sprintf("TRACK %d.5", ht/2)
}

// TypeOfItem implements the Archive interface.
func (nib *NIB) TypeOfItem(n int) string { return "NIB" }

// SizeOfItem implements the Archive interface.
func (nib *NIB) SizeOfItem(n int) int { return len(nib.halftrack[nib.items[n]]) }

// DestAddrOfItem implements the Archive interface. Track data has no
// memory destination.
func (nib *NIB) DestAddrOfItem(n int) uint16 { return 0 }

// Select implements the Archive interface.
func (nib *NIB) Select(n int) {
	nib.selected = n
	nib.fp = 0
}

// NextByte implements the Archive interface.
func (nib *NIB) NextByte() (uint8, bool) {
	track := nib.halftrack[nib.items[nib.selected]]
	if nib.fp >= len(track) {
		return 0, false
	}
	b := track[nib.fp]
	nib.fp++
	return b, true
}

// LengthInBits returns the decoded bit length of a stored halftrack.
func (nib *NIB) LengthInBits(ht int) int {
	if ht < 1 || ht > maxHalftracks {
		return 0
	}
	return nib.length[ht]
}
