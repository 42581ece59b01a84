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

package cia

// TOD is the time of day clock of a 6526: BCD tenths, seconds, minutes
// and hours with an AM/PM bit in the hours register.
//
// Writing the hours register freezes the clock; it resumes when the
// seconds register is written. Reading the hours register latches all
// four registers; the latch is released when tenths is read. Both rules
// exist so that a program never observes a carry mid-sequence.
type TOD struct {
	Tenths  uint8
	Seconds uint8
	Minutes uint8
	Hours   uint8

	AlarmTenths  uint8
	AlarmSeconds uint8
	AlarmMinutes uint8
	AlarmHours   uint8

	frozen  bool
	latched bool

	latchTenths  uint8
	latchSeconds uint8
	latchMinutes uint8
	latchHours   uint8
}

// Reset the clock. The real chip powers up at a random time; 1:00:00.0
// AM matches what the kernal expects before it programs the clock.
func (tod *TOD) Reset() {
	tod.Tenths = 0
	tod.Seconds = 0
	tod.Minutes = 0
	tod.Hours = 0x01
	tod.frozen = false
	tod.latched = false
}

func bcdIncrement(v uint8, limit uint8) (uint8, bool) {
	v++
	if v&0x0f > 0x09 {
		v = v&0xf0 + 0x10
	}
	if v > limit {
		return 0, true
	}
	return v, false
}

// tick advances the clock by one tenth of a second. Returns false if
// the clock is frozen.
func (tod *TOD) tick() bool {
	if tod.frozen {
		return false
	}

	var carry bool
	if tod.Tenths, carry = bcdIncrement(tod.Tenths, 0x09); !carry {
		return true
	}
	if tod.Seconds, carry = bcdIncrement(tod.Seconds, 0x59); !carry {
		return true
	}
	if tod.Minutes, carry = bcdIncrement(tod.Minutes, 0x59); !carry {
		return true
	}

	// the hours register counts 1 to 12 with the AM/PM flag in bit 7.
	// the flag toggles on the transition from 11:59:59.9 to 12:00:00.0
	ampm := tod.Hours & 0x80
	hr := tod.Hours & 0x1f
	hr, _ = bcdIncrement(hr, 0x12)
	if hr == 0 {
		hr = 0x01
	}
	if hr == 0x12 {
		ampm ^= 0x80
	}
	tod.Hours = ampm | hr
	return true
}

func (tod *TOD) alarmMatch() bool {
	return tod.Tenths == tod.AlarmTenths &&
		tod.Seconds == tod.AlarmSeconds &&
		tod.Minutes == tod.AlarmMinutes &&
		tod.Hours == tod.AlarmHours
}

//
// register access
//

func (tod *TOD) peekTenths() uint8 {
	if tod.latched {
		tod.latched = false
		return tod.latchTenths
	}
	return tod.Tenths
}

func (tod *TOD) peekSeconds() uint8 {
	if tod.latched {
		return tod.latchSeconds
	}
	return tod.Seconds
}

func (tod *TOD) peekMinutes() uint8 {
	if tod.latched {
		return tod.latchMinutes
	}
	return tod.Minutes
}

func (tod *TOD) peekHours() uint8 {
	if !tod.latched {
		tod.latched = true
		tod.latchTenths = tod.Tenths
		tod.latchSeconds = tod.Seconds
		tod.latchMinutes = tod.Minutes
		tod.latchHours = tod.Hours
	}
	return tod.latchHours
}

func (tod *TOD) pokeTenths(v uint8) {
	tod.Tenths = v & 0x0f
}

func (tod *TOD) pokeSeconds(v uint8) {
	tod.Seconds = v & 0x7f
	tod.frozen = false
}

func (tod *TOD) pokeMinutes(v uint8) {
	tod.Minutes = v & 0x7f
}

func (tod *TOD) pokeHours(v uint8) {
	tod.Hours = v & 0x9f
	tod.frozen = true
}

func (tod *TOD) pokeAlarmTenths(v uint8)  { tod.AlarmTenths = v & 0x0f }
func (tod *TOD) pokeAlarmSeconds(v uint8) { tod.AlarmSeconds = v & 0x7f }
func (tod *TOD) pokeAlarmMinutes(v uint8) { tod.AlarmMinutes = v & 0x7f }
func (tod *TOD) pokeAlarmHours(v uint8)   { tod.AlarmHours = v & 0x9f }
