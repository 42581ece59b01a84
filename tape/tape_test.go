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

package tape_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopherc64/tape"
	"github.com/jetsetilly/gopherc64/test"
)

func writeTAP(t *testing.T, pulses []uint8) string {
	t.Helper()

	img := make([]uint8, 0, 20+len(pulses))
	img = append(img, []uint8("C64-TAPE-RAW")...)
	img = append(img, 1, 0, 0, 0) // version 1
	img = append(img, uint8(len(pulses)), 0, 0, 0)
	img = append(img, pulses...)

	p := filepath.Join(t.TempDir(), "test.tap")
	if err := os.WriteFile(p, img, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestTAPDecode(t *testing.T) {
	p := writeTAP(t, []uint8{0x30, 0x42, 0x30})

	tp, err := tape.NewFromFile(p, 985249)
	test.ExpectedSuccess(t, err)
	test.Equate(t, tp.NumPulses(), 3)
}

func TestTAPRejectsBadMagic(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.tap")
	if err := os.WriteFile(p, []uint8("C64-TAPE-XXXsomething longer than twenty bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := tape.NewFromFile(p, 985249)
	test.ExpectedFailure(t, err)
}

func TestDatasettePulses(t *testing.T) {
	p := writeTAP(t, []uint8{0x10, 0x10})

	tp, err := tape.NewFromFile(p, 985249)
	test.ExpectedSuccess(t, err)

	ds := tape.NewDatasette(tp)
	edges := 0
	ds.Flag = func() { edges++ }

	// without play and motor the tape does not move
	for i := 0; i < 1000; i++ {
		ds.Step()
	}
	test.Equate(t, edges, 0)

	ds.PressPlay(true)
	ds.SetMotor(true)

	// each pulse is 0x10 * 8 clocks long
	for i := 0; i < 0x10*8*2; i++ {
		ds.Step()
	}
	test.Equate(t, edges, 2)
	test.Equate(t, ds.AtEnd(), true)
}
