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

package input_test

import (
	"testing"

	"github.com/jetsetilly/gopherc64/hardware/input"
	"github.com/jetsetilly/gopherc64/test"
)

func TestMatrixScan(t *testing.T) {
	kb := input.NewKeyboard()

	// nothing pressed: all columns high regardless of row selection
	test.Equate(t, kb.Scan(0x00), 0xff)

	// return key is row 0 column 1
	kb.PressKey(input.KeyReturn)

	// row 0 not selected (bit high): key invisible
	test.Equate(t, kb.Scan(0xff), 0xff)

	// row 0 selected (bit low): column 1 pulled low
	test.Equate(t, kb.Scan(0xfe), 0xfd)

	kb.ReleaseKey(input.KeyReturn)
	test.Equate(t, kb.Scan(0xfe), 0xff)
}

func TestReleaseAll(t *testing.T) {
	kb := input.NewKeyboard()
	kb.PressKey(input.KeySpace)
	kb.PressKey(input.KeyRunStop)
	kb.ReleaseAll()
	test.Equate(t, kb.Scan(0x00), 0xff)
}

func TestJoystick(t *testing.T) {
	joy := input.NewJoystick()
	test.Equate(t, joy.Port(), 0xff)

	joy.Set(input.JoystickFire, true)
	joy.Set(input.JoystickLeft, true)
	test.Equate(t, joy.Port()&0x1f, 0x0b)

	joy.Set(input.JoystickFire, false)
	test.Equate(t, joy.Port()&0x1f, 0x1b)
}
