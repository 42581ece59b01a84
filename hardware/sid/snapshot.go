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

package sid

import "github.com/jetsetilly/gopherc64/snapshot"

// SnapshotLabel implements the snapshot.Component interface.
func (s *SID) SnapshotLabel() string {
	return "sid"
}

// SnapshotItems implements the snapshot.Component interface. The ring
// buffer is transient host-side state and not part of a snapshot.
func (s *SID) SnapshotItems() []snapshot.Item {
	items := []snapshot.Item{
		{Ptr: s.registers[:]},
		{Ptr: &s.cycle},
		{Ptr: &s.latchedDataBus},
	}

	for i := range s.voices {
		v := &s.voices[i]
		items = append(items,
			snapshot.Item{Ptr: &v.freq},
			snapshot.Item{Ptr: &v.pw},
			snapshot.Item{Ptr: &v.control},
			snapshot.Item{Ptr: &v.accum},
			snapshot.Item{Ptr: &v.noiseSR},
			snapshot.Item{Ptr: &v.noiseBits},
		)
	}

	return items
}
