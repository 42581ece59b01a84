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

import "github.com/jetsetilly/gopherc64/snapshot"

// SnapshotLabel implements the snapshot.Component interface.
func (mem *Memory) SnapshotLabel() string {
	return "memory"
}

// SnapshotItems implements the snapshot.Component interface. The ROMs
// are configuration, not state, and are not part of a snapshot.
func (mem *Memory) SnapshotItems() []snapshot.Item {
	return []snapshot.Item{
		{Ptr: mem.RAM[:]},
		{Ptr: mem.Color[:], KeepOnReset: true},
		{Ptr: &mem.Port.Direction},
		{Ptr: &mem.Port.Data},
		{Ptr: &mem.LastByte},
	}
}
