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

// register indices inside the 16 byte window. the window repeats every
// 16 bytes through the chip's 256 byte address space
const (
	regPRA uint16 = iota
	regPRB
	regDDRA
	regDDRB
	regTALo
	regTAHi
	regTBLo
	regTBHi
	regTODTenths
	regTODSeconds
	regTODMinutes
	regTODHours
	regSDR
	regICR
	regCRA
	regCRB
)

// Peek implements the memory.ChipBus interface. Reading the ICR and the
// TOD registers has side effects, as on the real chip.
func (cia *CIA) Peek(reg uint16) uint8 {
	switch reg & 0x0f {
	case regPRA:
		return cia.PortA()

	case regPRB:
		return cia.PortB()

	case regDDRA:
		return cia.DDRA

	case regDDRB:
		return cia.DDRB

	case regTALo:
		return uint8(cia.CounterA)

	case regTAHi:
		return uint8(cia.CounterA >> 8)

	case regTBLo:
		return uint8(cia.CounterB)

	case regTBHi:
		return uint8(cia.CounterB >> 8)

	case regTODTenths:
		return cia.TOD.peekTenths()

	case regTODSeconds:
		return cia.TOD.peekSeconds()

	case regTODMinutes:
		return cia.TOD.peekMinutes()

	case regTODHours:
		return cia.TOD.peekHours()

	case regSDR:
		return cia.SDR

	case regICR:
		// reading the ICR returns and clears it, and releases the
		// interrupt line
		v := cia.ICR
		cia.ICR = 0
		cia.delay &^= Interrupt0 | Interrupt1
		cia.line.Clear()
		return v

	case regCRA:
		return cia.CRA

	case regCRB:
		return cia.CRB
	}

	panic("cia register out of range")
}

// Poke implements the memory.ChipBus interface.
func (cia *CIA) Poke(reg uint16, data uint8) {
	switch reg & 0x0f {
	case regPRA:
		cia.PALatch = data
		cia.notifyPortA()

	case regPRB:
		cia.PBLatch = data

	case regDDRA:
		cia.DDRA = data
		cia.notifyPortA()

	case regDDRB:
		cia.DDRB = data

	case regTALo:
		cia.LatchA = cia.LatchA&0xff00 | uint16(data)

	case regTAHi:
		cia.LatchA = uint16(data)<<8 | cia.LatchA&0x00ff
		// a stopped timer loads the counter immediately
		if cia.CRA&0x01 == 0 {
			cia.delay |= LoadA0
		}

	case regTBLo:
		cia.LatchB = cia.LatchB&0xff00 | uint16(data)

	case regTBHi:
		cia.LatchB = uint16(data)<<8 | cia.LatchB&0x00ff
		if cia.CRB&0x01 == 0 {
			cia.delay |= LoadB0
		}

	case regTODTenths:
		if cia.CRB&0x80 != 0 {
			cia.TOD.pokeAlarmTenths(data)
		} else {
			cia.TOD.pokeTenths(data)
		}

	case regTODSeconds:
		if cia.CRB&0x80 != 0 {
			cia.TOD.pokeAlarmSeconds(data)
		} else {
			cia.TOD.pokeSeconds(data)
		}

	case regTODMinutes:
		if cia.CRB&0x80 != 0 {
			cia.TOD.pokeAlarmMinutes(data)
		} else {
			cia.TOD.pokeMinutes(data)
		}

	case regTODHours:
		if cia.CRB&0x80 != 0 {
			cia.TOD.pokeAlarmHours(data)
		} else {
			cia.TOD.pokeHours(data)
		}

	case regSDR:
		cia.SDR = data
		if cia.IMR&icrSerial != 0 {
			cia.ICR |= icrSerial
			cia.delay |= Interrupt0
		}

	case regICR:
		// bit 7 selects whether the written sources are set or cleared
		// in the mask
		if data&0x80 != 0 {
			cia.IMR |= data & icrSources
		} else {
			cia.IMR &^= data & icrSources
		}
		// enabling a mask bit for an already pending source asserts
		// the interrupt (after the pipeline delay)
		if cia.IMR&cia.ICR&icrSources != 0 {
			cia.delay |= Interrupt0
		}

	case regCRA:
		old := cia.CRA
		cia.CRA = data

		if data&0x01 != 0 && old&0x01 == 0 {
			// starting the timer also forces the toggle bit high
			cia.delay |= CountA1 | CountA0
			cia.feed |= CountA0
			cia.pb67Toggle |= 0x40
		} else if data&0x01 == 0 {
			cia.delay &^= CountA1 | CountA0
			cia.feed &^= CountA0
		}

		// counting CNT edges instead of clock cycles stops the feed
		if data&0x20 != 0 {
			cia.delay &^= CountA1 | CountA0
			cia.feed &^= CountA0
		}

		if data&0x08 != 0 {
			cia.feed |= OneShotA0
		} else {
			cia.feed &^= OneShotA0
		}

		if data&0x10 != 0 {
			cia.delay |= LoadA0
		}

		if data&0x02 != 0 {
			cia.pb67TimerMode |= 0x40
		} else {
			cia.pb67TimerMode &^= 0x40
		}

	case regCRB:
		old := cia.CRB
		cia.CRB = data

		if data&0x01 != 0 && old&0x01 == 0 {
			cia.delay |= CountB1 | CountB0
			cia.feed |= CountB0
			cia.pb67Toggle |= 0x80
		} else if data&0x01 == 0 {
			cia.delay &^= CountB1 | CountB0
			cia.feed &^= CountB0
		}

		// timer B counting anything but clock cycles stops the feed
		if data&0x60 != 0 {
			cia.delay &^= CountB1 | CountB0
			cia.feed &^= CountB0
		}

		if data&0x08 != 0 {
			cia.feed |= OneShotB0
		} else {
			cia.feed &^= OneShotB0
		}

		if data&0x10 != 0 {
			cia.delay |= LoadB0
		}

		if data&0x02 != 0 {
			cia.pb67TimerMode |= 0x80
		} else {
			cia.pb67TimerMode &^= 0x80
		}
	}
}
