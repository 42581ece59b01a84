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

package archive

import "strings"

// petsciiToString converts a PETSCII name field to a host string.
// Shifted-space padding (0xa0) ends the name; unprintable characters
// become dots.
func petsciiToString(b []uint8) string {
	s := strings.Builder{}
	for _, c := range b {
		if c == 0xa0 || c == 0x00 {
			break
		}
		switch {
		case c >= 0x20 && c <= 0x5f:
			s.WriteByte(c)
		case c >= 0xc1 && c <= 0xda:
			// shifted letters
			s.WriteByte(c - 0x80)
		default:
			s.WriteByte('.')
		}
	}
	return strings.TrimRight(s.String(), " ")
}

// stringToPETSCII converts a host string to a PETSCII name field of the
// given length, padded with shifted spaces.
func stringToPETSCII(s string, length int) []uint8 {
	b := make([]uint8, length)
	for i := range b {
		b[i] = 0xa0
	}
	for i := 0; i < len(s) && i < length; i++ {
		c := strings.ToUpper(s)[i]
		if c >= 0x20 && c <= 0x5f {
			b[i] = c
		} else {
			b[i] = '.'
		}
	}
	return b
}
