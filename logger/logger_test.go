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

package logger_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopherc64/logger"
	"github.com/jetsetilly/gopherc64/test"
)

func TestRepeatCollapse(t *testing.T) {
	logger.Clear()
	logger.Log("vic", "pal mode selected")
	logger.Log("vic", "pal mode selected")
	logger.Log("vic", "pal mode selected")

	s := strings.Builder{}
	test.Equate(t, logger.WriteTo(&s), true)
	test.Equate(t, s.String(), "vic: pal mode selected (repeat x3)\n")
}

func TestTail(t *testing.T) {
	logger.Clear()
	logger.Log("cia", "timer a started")
	logger.Log("cia", "timer b started")
	logger.Log("sid", "sample rate 44100")

	s := strings.Builder{}
	logger.Tail(&s, 2)
	test.Equate(t, s.String(), "cia: timer b started\nsid: sample rate 44100\n")
}
