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

// Package terminal wraps "github.com/pkg/term/termios" into the little
// line editor the monitor needs: cbreak input with echo, backspace and
// ctrl-c handling, restoring the terminal state on exit.
package terminal

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Terminal is a posix terminal in cbreak mode.
type Terminal struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// NewTerminal is the preferred method of initialisation for the
// Terminal type. The terminal is left in canonical mode until the
// first ReadLine.
func NewTerminal() (*Terminal, error) {
	tm := &Terminal{
		input:  os.Stdin,
		output: os.Stdout,
	}

	if err := termios.Tcgetattr(tm.input.Fd(), &tm.canAttr); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	tm.cbreakAttr = tm.canAttr
	termios.Cfmakecbreak(&tm.cbreakAttr)

	return tm, nil
}

// CleanUp restores the terminal to canonical mode.
func (tm *Terminal) CleanUp() {
	termios.Tcsetattr(tm.input.Fd(), termios.TCIFLUSH, &tm.canAttr)
}

// Print writes the formatted string to the output terminal.
func (tm *Terminal) Print(s string, a ...interface{}) {
	fmt.Fprintf(tm.output, s, a...)
}

// ReadLine reads a line of input with the prompt shown. Returns false
// on ctrl-c or ctrl-d.
func (tm *Terminal) ReadLine(prompt string) (string, bool) {
	termios.Tcsetattr(tm.input.Fd(), termios.TCIFLUSH, &tm.cbreakAttr)
	defer termios.Tcsetattr(tm.input.Fd(), termios.TCIFLUSH, &tm.canAttr)

	tm.Print("%s", prompt)

	s := strings.Builder{}
	buf := make([]byte, 1)

	for {
		n, err := tm.input.Read(buf)
		if err != nil || n == 0 {
			return "", false
		}

		switch buf[0] {
		case 0x03, 0x04: // ctrl-c, ctrl-d
			tm.Print("\n")
			return "", false

		case '\n', '\r':
			tm.Print("\n")
			return strings.TrimSpace(s.String()), true

		case 0x7f, 0x08: // backspace
			cur := s.String()
			if len(cur) > 0 {
				s.Reset()
				s.WriteString(cur[:len(cur)-1])
				tm.Print("\b \b")
			}

		default:
			if buf[0] >= 0x20 && buf[0] < 0x7f {
				s.WriteByte(buf[0])
				tm.Print("%c", buf[0])
			}
		}
	}
}
