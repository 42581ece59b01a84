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

package gui

import "github.com/veandco/go-sdl2/sdl"

// matrix position, encoded row<<3|col as in the input package
type matrixPos uint8

func pos(row, col uint8) matrixPos {
	return matrixPos(row<<3 | col)
}

// keymap maps host keys onto the C64 keyboard matrix. The layout is
// positional for the rows of letters and symbolic where that makes no
// sense on a modern keyboard.
var keymap = map[sdl.Keycode]matrixPos{
	sdl.K_BACKSPACE: pos(0, 0),
	sdl.K_RETURN:    pos(0, 1),
	sdl.K_RIGHT:     pos(0, 2),
	sdl.K_F7:        pos(0, 3),
	sdl.K_F1:        pos(0, 4),
	sdl.K_F3:        pos(0, 5),
	sdl.K_F5:        pos(0, 6),
	sdl.K_DOWN:      pos(0, 7),

	sdl.K_3:      pos(1, 0),
	sdl.K_w:      pos(1, 1),
	sdl.K_a:      pos(1, 2),
	sdl.K_4:      pos(1, 3),
	sdl.K_z:      pos(1, 4),
	sdl.K_s:      pos(1, 5),
	sdl.K_e:      pos(1, 6),
	sdl.K_LSHIFT: pos(1, 7),

	sdl.K_5: pos(2, 0),
	sdl.K_r: pos(2, 1),
	sdl.K_d: pos(2, 2),
	sdl.K_6: pos(2, 3),
	sdl.K_c: pos(2, 4),
	sdl.K_f: pos(2, 5),
	sdl.K_t: pos(2, 6),
	sdl.K_x: pos(2, 7),

	sdl.K_7: pos(3, 0),
	sdl.K_y: pos(3, 1),
	sdl.K_g: pos(3, 2),
	sdl.K_8: pos(3, 3),
	sdl.K_b: pos(3, 4),
	sdl.K_h: pos(3, 5),
	sdl.K_u: pos(3, 6),
	sdl.K_v: pos(3, 7),

	sdl.K_9: pos(4, 0),
	sdl.K_i: pos(4, 1),
	sdl.K_j: pos(4, 2),
	sdl.K_0: pos(4, 3),
	sdl.K_m: pos(4, 4),
	sdl.K_k: pos(4, 5),
	sdl.K_o: pos(4, 6),
	sdl.K_n: pos(4, 7),

	sdl.K_PLUS:   pos(5, 0),
	sdl.K_p:      pos(5, 1),
	sdl.K_l:      pos(5, 2),
	sdl.K_MINUS:  pos(5, 3),
	sdl.K_PERIOD: pos(5, 4),
	sdl.K_COLON:  pos(5, 5),
	sdl.K_AT:     pos(5, 6),
	sdl.K_COMMA:  pos(5, 7),

	sdl.K_INSERT:    pos(6, 0),
	sdl.K_ASTERISK:  pos(6, 1),
	sdl.K_SEMICOLON: pos(6, 2),
	sdl.K_HOME:      pos(6, 3),
	sdl.K_RSHIFT:    pos(6, 4),
	sdl.K_EQUALS:    pos(6, 5),
	sdl.K_CARET:     pos(6, 6),
	sdl.K_SLASH:     pos(6, 7),

	sdl.K_1:         pos(7, 0),
	sdl.K_BACKQUOTE: pos(7, 1),
	sdl.K_LCTRL:     pos(7, 2),
	sdl.K_2:         pos(7, 3),
	sdl.K_SPACE:     pos(7, 4),
	sdl.K_LALT:      pos(7, 5),
	sdl.K_q:         pos(7, 6),
	sdl.K_ESCAPE:    pos(7, 7),
}
