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

package hardware_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopherc64/hardware"
	"github.com/jetsetilly/gopherc64/hardware/vic"
	"github.com/jetsetilly/gopherc64/test"
)

// the stock ROM set is not distributable with the source; tests that
// need it are skipped unless the images are present
func romPath(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join("..", "roms", name)
	if _, err := os.Stat(p); err != nil {
		t.Skipf("no %s image; skipping", name)
	}
	return p
}

func TestResetToBasicPrompt(t *testing.T) {
	kernal := romPath(t, "kernal")
	basic := romPath(t, "basic")
	chargen := romPath(t, "chargen")

	c64 := hardware.NewC64(vic.MOS6569PAL)
	test.ExpectedSuccess(t, c64.AttachROMs(kernal, basic, chargen))

	test.ExpectedSuccess(t, c64.RunForCycles(2500000))

	// "READY." in screen code at the expected position of the screen
	// matrix
	ready := []uint8{0x12, 0x05, 0x01, 0x04, 0x19, 0x2e}
	for i, sc := range ready {
		test.Equate(t, c64.Mem.RAM[0x0400+0x03c0+i], sc)
	}

	// light blue border, blue background
	test.Equate(t, c64.VIC.Peek(0x20)&0x0f, 0x0e)
	test.Equate(t, c64.VIC.Peek(0x21)&0x0f, 0x06)
}
