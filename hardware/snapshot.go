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

package hardware

import (
	"github.com/jetsetilly/gopherc64/snapshot"
)

// SnapshotLabel implements the snapshot.Component interface. The
// machine contributes its own clock state to a snapshot.
func (c64 *C64) SnapshotLabel() string {
	return "c64"
}

// SnapshotItems implements the snapshot.Component interface.
func (c64 *C64) SnapshotItems() []snapshot.Item {
	return []snapshot.Item{
		{Ptr: &c64.Cycles},
		{Ptr: &c64.todCounter},
	}
}

func (c64 *C64) snapshotComponents() []snapshot.Component {
	return []snapshot.Component{
		c64,
		c64.Mem,
		c64.CPU,
		c64.VIC,
		c64.VIC.PixelEngine,
		c64.CIA1,
		c64.CIA2,
		c64.SID,
	}
}

// SnapshotToBuffer captures the complete machine state as a V64 byte
// stream. Call between ticks only.
func (c64 *C64) SnapshotToBuffer() []byte {
	return snapshot.SaveToBuffer(c64.snapshotComponents())
}

// SnapshotFromBuffer restores the complete machine state from a V64
// byte stream. A magic or version mismatch rejects the buffer and
// preserves the current state.
func (c64 *C64) SnapshotFromBuffer(buf []byte) error {
	return snapshot.LoadFromBuffer(c64.snapshotComponents(), buf)
}
