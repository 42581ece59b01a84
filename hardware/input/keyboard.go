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

// Package input models the keyboard matrix and the two joysticks, both
// wired to the ports of CIA 1. Host events are injected between frames;
// the kernal scans the matrix whenever it likes.
package input

import "sync"

// Matrix positions of the C64 keys, encoded as row<<3 | column.
const (
	KeyInstDel    = 0<<3 | 0
	KeyReturn     = 0<<3 | 1
	KeyCursorLR   = 0<<3 | 2
	KeyF7         = 0<<3 | 3
	KeyF1         = 0<<3 | 4
	KeyF3         = 0<<3 | 5
	KeyF5         = 0<<3 | 6
	KeyCursorUD   = 0<<3 | 7
	KeyRunStop    = 7<<3 | 7
	KeySpace      = 7<<3 | 4
	KeyLeftShift  = 1<<3 | 7
	KeyRightShift = 6<<3 | 4
)

// Keyboard is the 8x8 key matrix. Rows are selected by CIA 1 port A
// outputs; pressed keys pull the corresponding port B column low.
type Keyboard struct {
	crit sync.Mutex

	// one byte per row, a set bit means the key is pressed
	rows [8]uint8
}

// NewKeyboard is the preferred method of initialisation for the
// Keyboard type.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// KeyDown marks a matrix position as pressed. Safe to call from the
// host event thread.
func (kb *Keyboard) KeyDown(row, col uint8) {
	kb.crit.Lock()
	defer kb.crit.Unlock()
	kb.rows[row&0x07] |= 1 << (col & 0x07)
}

// KeyUp marks a matrix position as released.
func (kb *Keyboard) KeyUp(row, col uint8) {
	kb.crit.Lock()
	defer kb.crit.Unlock()
	kb.rows[row&0x07] &^= 1 << (col & 0x07)
}

// PressKey presses a key given as an encoded matrix position.
func (kb *Keyboard) PressKey(k uint8) {
	kb.KeyDown(k>>3, k&0x07)
}

// ReleaseKey releases a key given as an encoded matrix position.
func (kb *Keyboard) ReleaseKey(k uint8) {
	kb.KeyUp(k>>3, k&0x07)
}

// ReleaseAll releases every key. Called when the host window loses
// focus so that no key sticks.
func (kb *Keyboard) ReleaseAll() {
	kb.crit.Lock()
	defer kb.crit.Unlock()
	for i := range kb.rows {
		kb.rows[i] = 0
	}
}

// Scan returns the port B column bits for the given port A row
// selection. Selected rows are low; a pressed key in a selected row
// pulls its column bit low.
func (kb *Keyboard) Scan(rowSelect uint8) uint8 {
	kb.crit.Lock()
	defer kb.crit.Unlock()

	col := uint8(0xff)
	for row := 0; row < 8; row++ {
		if rowSelect&(1<<row) == 0 {
			col &^= kb.rows[row]
		}
	}
	return col
}
