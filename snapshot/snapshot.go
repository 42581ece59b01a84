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

// Package snapshot implements the V64 machine state format. A snapshot
// is the header followed by the state of every component, each
// component being a sequence of tagged items.
//
// Components describe themselves with a list of Item values pointing
// into their live state; the same list drives saving and loading, so
// the two can never disagree about layout. Numbers are stored little
// endian.
package snapshot

import (
	"encoding/binary"

	"github.com/jetsetilly/gopherc64/curated"
)

// the file magic and the format version. loading rejects any mismatch
const magic = "VC64"

// Version of the snapshot format.
const (
	VersionMajor    = 1
	VersionMinor    = 0
	VersionSubminor = 0
)

// Item is one tagged span of component state. Ptr points into the live
// component; the concrete type decides the encoding.
type Item struct {
	// pointer to the live value: *uint8, *uint16, *uint32, *uint64,
	// *int, *bool or []uint8
	Ptr interface{}

	// KeepOnReset marks configuration items that survive a hardware
	// reset. Recorded for the component's own reset logic; the snapshot
	// stores every item regardless
	KeepOnReset bool
}

// Component is implemented by every chip that takes part in snapshots.
type Component interface {
	SnapshotLabel() string
	SnapshotItems() []Item
}

// Preparer is implemented by components that need to derive scratch
// state (anything that cannot be pointed at directly, like a function
// table position) before their items are read.
type Preparer interface {
	PreSnapshot()
}

// Restorer is implemented by components that need to rebuild live state
// from scratch fields after their items have been written back.
type Restorer interface {
	PostSnapshotRestore() error
}

func itemSize(item Item) int {
	switch v := item.Ptr.(type) {
	case *uint8, *bool:
		return 1
	case *uint16:
		return 2
	case *uint32:
		return 4
	case *uint64, *int:
		return 8
	case []uint8:
		return len(v)
	}
	panic("unsupported snapshot item type")
}

func writeItem(buf []byte, item Item) []byte {
	switch v := item.Ptr.(type) {
	case *uint8:
		buf = append(buf, *v)
	case *bool:
		if *v {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case *uint16:
		buf = binary.LittleEndian.AppendUint16(buf, *v)
	case *uint32:
		buf = binary.LittleEndian.AppendUint32(buf, *v)
	case *uint64:
		buf = binary.LittleEndian.AppendUint64(buf, *v)
	case *int:
		buf = binary.LittleEndian.AppendUint64(buf, uint64(*v))
	case []uint8:
		buf = append(buf, v...)
	}
	return buf
}

func readItem(buf []byte, item Item) ([]byte, error) {
	if len(buf) < itemSize(item) {
		return nil, curated.Errorf(curated.InvalidSnapshot, "truncated component state")
	}

	switch v := item.Ptr.(type) {
	case *uint8:
		*v = buf[0]
	case *bool:
		*v = buf[0] != 0
	case *uint16:
		*v = binary.LittleEndian.Uint16(buf)
	case *uint32:
		*v = binary.LittleEndian.Uint32(buf)
	case *uint64:
		*v = binary.LittleEndian.Uint64(buf)
	case *int:
		*v = int(binary.LittleEndian.Uint64(buf))
	case []uint8:
		copy(v, buf)
	}

	return buf[itemSize(item):], nil
}

// SaveToBuffer serialises the components into a V64 byte stream.
func SaveToBuffer(components []Component) []byte {
	for _, c := range components {
		if p, ok := c.(Preparer); ok {
			p.PreSnapshot()
		}
	}

	size := 0
	for _, c := range components {
		for _, item := range c.SnapshotItems() {
			size += itemSize(item)
		}
	}

	buf := make([]byte, 0, len(magic)+3+4+size)
	buf = append(buf, magic...)
	buf = append(buf, VersionMajor, VersionMinor, VersionSubminor)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(size))

	for _, c := range components {
		for _, item := range c.SnapshotItems() {
			buf = writeItem(buf, item)
		}
	}

	return buf
}

// LoadFromBuffer restores the components from a V64 byte stream. Magic,
// version, size and layout errors are found before anything is written
// back and leave the components untouched. An error returned by a
// component's PostSnapshotRestore comes after every item has been
// written back.
func LoadFromBuffer(components []Component, buf []byte) error {
	if len(buf) < len(magic)+3+4 {
		return curated.Errorf(curated.InvalidSnapshot, "too short")
	}
	if string(buf[:len(magic)]) != magic {
		return curated.Errorf(curated.InvalidSnapshot, "not a V64 snapshot")
	}
	if buf[4] != VersionMajor || buf[5] != VersionMinor || buf[6] != VersionSubminor {
		return curated.Errorf(curated.InvalidSnapshot,
			"version mismatch (%d.%d.%d)", buf[4], buf[5], buf[6])
	}

	size := int(binary.LittleEndian.Uint32(buf[7:]))
	state := buf[11:]
	if len(state) != size {
		return curated.Errorf(curated.InvalidSnapshot, "size field disagrees with data")
	}

	// validate the total length against the item lists before mutating
	// anything
	expected := 0
	for _, c := range components {
		for _, item := range c.SnapshotItems() {
			expected += itemSize(item)
		}
	}
	if expected != size {
		return curated.Errorf(curated.InvalidSnapshot, "state layout mismatch")
	}

	var err error
	for _, c := range components {
		for _, item := range c.SnapshotItems() {
			state, err = readItem(state, item)
			if err != nil {
				return err
			}
		}
	}

	for _, c := range components {
		if r, ok := c.(Restorer); ok {
			if err := r.PostSnapshotRestore(); err != nil {
				return err
			}
		}
	}

	return nil
}
