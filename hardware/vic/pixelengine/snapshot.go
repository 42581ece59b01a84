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

package pixelengine

import "github.com/jetsetilly/gopherc64/snapshot"

// SnapshotLabel implements the snapshot.Component interface.
func (pe *PixelEngine) SnapshotLabel() string {
	return "pixelengine"
}

// SnapshotItems implements the snapshot.Component interface. The pixel
// buffers themselves are not part of a snapshot; they are fully redrawn
// within one frame of resuming.
func (pe *PixelEngine) SnapshotItems() []snapshot.Item {
	pe.scratchRemaining = [8]uint32{}
	for i := range pe.SpriteSR {
		pe.scratchRemaining[i] = uint32(pe.SpriteSR[i].remainingBits)
	}

	items := []snapshot.Item{
		{Ptr: &pe.SR.data},
		{Ptr: &pe.SR.CanLoad},
		{Ptr: &pe.SR.mcFlop},
		{Ptr: &pe.SR.latchedCharacter},
		{Ptr: &pe.SR.latchedColor},
		{Ptr: &pe.SR.colorbits},
		{Ptr: &pe.VisibleColumn},
	}

	for i := range pe.SpriteSR {
		sr := &pe.SpriteSR[i]
		items = append(items,
			snapshot.Item{Ptr: &sr.Chunk1},
			snapshot.Item{Ptr: &sr.Chunk2},
			snapshot.Item{Ptr: &sr.Chunk3},
			snapshot.Item{Ptr: &sr.data},
			snapshot.Item{Ptr: &pe.scratchRemaining[i]},
			snapshot.Item{Ptr: &sr.mcFlop},
			snapshot.Item{Ptr: &sr.expFlop},
			snapshot.Item{Ptr: &sr.colorbits},
		)
	}

	return items
}

// PostSnapshotRestore implements the snapshot.Restorer interface.
func (pe *PixelEngine) PostSnapshotRestore() error {
	for i := range pe.SpriteSR {
		pe.SpriteSR[i].remainingBits = int(int32(pe.scratchRemaining[i]))
	}
	return nil
}
