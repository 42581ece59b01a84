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

// Package logger is the central log for the emulator. Entries are kept
// in memory and can be dumped or tailed on demand; optionally every
// entry is echoed to an io.Writer as it arrives.
//
// The log is never written to unprompted during emulation-critical
// paths; chips log on reset, on configuration changes and on unusual
// conditions only.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry represents a single line in the log.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	Repeated  int
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.Tag, e.Detail))
	if e.Repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.Repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

const maxEntries = 256

type logger struct {
	crit    sync.Mutex
	entries []Entry
	echo    io.Writer
}

var central = &logger{
	entries: make([]Entry, 0, maxEntries),
}

// Log adds an entry to the central logger. Newlines in either argument
// are flattened. An entry identical to the most recent one increases
// its repeat count instead of being appended.
func Log(tag, detail string) {
	central.crit.Lock()
	defer central.crit.Unlock()

	tag = strings.ReplaceAll(tag, "\n", " ")
	detail = strings.ReplaceAll(detail, "\n", " ")

	if len(central.entries) > 0 {
		e := &central.entries[len(central.entries)-1]
		if e.Tag == tag && e.Detail == detail {
			e.Repeated++
			e.Timestamp = time.Now()
			return
		}
	}

	central.entries = append(central.entries, Entry{
		Timestamp: time.Now(),
		Tag:       tag,
		Detail:    detail,
	})

	if len(central.entries) > maxEntries {
		central.entries = central.entries[len(central.entries)-maxEntries:]
	}

	if central.echo != nil {
		io.WriteString(central.echo, central.entries[len(central.entries)-1].String())
	}
}

// Logf adds a formatted entry to the central logger.
func Logf(tag, detail string, args ...interface{}) {
	Log(tag, fmt.Sprintf(detail, args...))
}

// Clear empties the central logger.
func Clear() {
	central.crit.Lock()
	defer central.crit.Unlock()
	central.entries = central.entries[:0]
}

// SetEcho instructs the logger to echo every future entry to output. A
// nil output turns echoing off.
func SetEcho(output io.Writer) {
	central.crit.Lock()
	defer central.crit.Unlock()
	central.echo = output
}

// WriteTo writes all entries to output. Returns false if the log is
// empty.
func WriteTo(output io.Writer) bool {
	central.crit.Lock()
	defer central.crit.Unlock()

	if len(central.entries) == 0 {
		return false
	}
	for _, e := range central.entries {
		io.WriteString(output, e.String())
	}
	return true
}

// Tail writes the most recent entries to output. The number argument
// is capped to the number of entries in the log.
func Tail(output io.Writer, number int) {
	central.crit.Lock()
	defer central.crit.Unlock()

	if number > len(central.entries) {
		number = len(central.entries)
	}
	for _, e := range central.entries[len(central.entries)-number:] {
		io.WriteString(output, e.String())
	}
}
