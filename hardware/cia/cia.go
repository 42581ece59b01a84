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

// Package cia implements the 6526 complex interface adapter. The C64
// carries two of them: CIA 1 drives the keyboard matrix and the CPU IRQ
// line, CIA 2 drives the serial bus, the VIC bank selection and the CPU
// NMI line.
//
// Internal events travel through a 32-bit delay pipeline that is
// shifted left once per clock. An event staged in bit N of the pipeline
// takes effect when it reaches bit N+1 on a later clock; this is how
// the one-cycle latencies of the real chip (counter start, interrupt
// assertion, forced load) fall out without special cases.
package cia

import "fmt"

// Bits of the delay pipeline. The layout follows Wolfgang Lorenz'
// analysis of the 6526 as used by PC64 and its descendants.
const (
	CountA0 uint32 = 1 << iota
	CountA1
	CountA2
	CountA3
	CountB0
	CountB1
	CountB2
	CountB3
	LoadA0
	LoadA1
	LoadA2
	LoadB0
	LoadB1
	LoadB2
	PB6Low0
	PB6Low1
	PB7Low0
	PB7Low1
	Interrupt0
	Interrupt1
	OneShotA0
	OneShotB0
	delayEnd
)

// DelayMask clears the bits that must not survive the shift.
const DelayMask = ^(delayEnd | CountA0 | CountB0 | LoadA0 | LoadB0 |
	PB6Low0 | PB7Low0 | Interrupt0 | OneShotA0 | OneShotB0)

// bits of the interrupt control register
const (
	icrTimerA   uint8 = 0x01
	icrTimerB   uint8 = 0x02
	icrAlarm    uint8 = 0x04
	icrSerial   uint8 = 0x08
	icrFlag     uint8 = 0x10
	icrSources  uint8 = 0x1f
	icrAsserted uint8 = 0x80
)

// InterruptLine abstracts which CPU line a CIA is wired to. CIA 1
// asserts the IRQ line, CIA 2 the NMI line.
type InterruptLine interface {
	Raise()
	Clear()
}

// CIA implements the functionality common to both chips. The port
// hooks give each instance its identity: keyboard and joysticks on
// CIA 1, serial bus and VIC bank on CIA 2.
type CIA struct {
	label string
	line  InterruptLine

	// timers
	CounterA uint16
	LatchA   uint16
	CounterB uint16
	LatchB   uint16

	TOD TOD

	// the delay pipeline and the bits fed into it every clock
	delay uint32
	feed  uint32

	CRA uint8
	CRB uint8
	ICR uint8
	IMR uint8

	// PB6/PB7 timer output state
	pb67TimerMode uint8
	pb67TimerOut  uint8
	pb67Toggle    uint8

	// ports
	PALatch uint8
	PBLatch uint8
	DDRA    uint8
	DDRB    uint8

	// serial shift register. transmission is not modelled beyond the
	// register itself
	SDR uint8

	// CNT pin
	CNT bool

	// PortAIn/PortBIn supply the external input bits of a port. Unwired
	// input lines float high; nil behaves as 0xff.
	PortAIn func() uint8
	PortBIn func() uint8

	// PortAOut is called whenever the driven value of port A changes.
	// CIA 2 uses this for the VIC bank bits and the serial bus lines.
	PortAOut func(uint8)
}

// NewCIA is the preferred method of initialisation for the CIA type.
func NewCIA(label string, line InterruptLine) *CIA {
	cia := &CIA{label: label, line: line}
	cia.Reset()
	return cia
}

// Reset the CIA to its power-on state.
func (cia *CIA) Reset() {
	cia.CounterA = 0xffff
	cia.CounterB = 0xffff
	cia.LatchA = 0xffff
	cia.LatchB = 0xffff
	cia.delay = 0
	cia.feed = 0
	cia.CRA = 0
	cia.CRB = 0
	cia.ICR = 0
	cia.IMR = 0
	cia.pb67TimerMode = 0
	cia.pb67TimerOut = 0
	cia.pb67Toggle = 0
	cia.PALatch = 0
	cia.PBLatch = 0
	cia.DDRA = 0
	cia.DDRB = 0
	cia.SDR = 0
	cia.CNT = true
	cia.TOD.Reset()
	cia.notifyPortA()
}

func (cia *CIA) String() string {
	return fmt.Sprintf("%s: TA=%04x (latch %04x) TB=%04x (latch %04x) CRA=%02x CRB=%02x ICR=%02x IMR=%02x",
		cia.label, cia.CounterA, cia.LatchA, cia.CounterB, cia.LatchB,
		cia.CRA, cia.CRB, cia.ICR, cia.IMR)
}

// Label returns the identity of the chip ("CIA1" or "CIA2").
func (cia *CIA) Label() string {
	return cia.label
}

// PortA returns the value currently driven on port A, with input lines
// pulled high or supplied by the PortAIn hook.
func (cia *CIA) PortA() uint8 {
	in := uint8(0xff)
	if cia.PortAIn != nil {
		in = cia.PortAIn()
	}
	return (cia.PALatch | ^cia.DDRA) & in
}

// PortB returns the value currently driven on port B. Timer output, if
// enabled, overrides bits 6 and 7.
func (cia *CIA) PortB() uint8 {
	in := uint8(0xff)
	if cia.PortBIn != nil {
		in = cia.PortBIn()
	}
	v := (cia.PBLatch | ^cia.DDRB) & in
	v = v&^cia.pb67TimerMode | cia.pb67TimerOut&cia.pb67TimerMode
	return v
}

func (cia *CIA) notifyPortA() {
	if cia.PortAOut != nil {
		cia.PortAOut(cia.PALatch | ^cia.DDRA)
	}
}

// TriggerFallingEdgeOnFlagPin simulates a negative edge on the FLAG
// input. The datasette read line and the serial SRQ line arrive here.
func (cia *CIA) TriggerFallingEdgeOnFlagPin() {
	cia.ICR |= icrFlag
	if cia.IMR&icrFlag != 0 {
		cia.delay |= Interrupt0
	}
}

// Step advances the CIA by one clock.
func (cia *CIA) Step() {
	// timer A
	if cia.delay&CountA3 != 0 {
		cia.CounterA--
	}

	timerAOutput := cia.CounterA == 0 && cia.delay&CountA2 != 0

	if timerAOutput {
		// one-shot mode clears the start bit on underflow
		if (cia.delay|cia.feed)&OneShotA0 != 0 {
			cia.CRA &^= 0x01
			cia.delay &^= CountA2 | CountA1 | CountA0
			cia.feed &^= CountA0
		}

		// timer B cascade (CRB bits 5-6: count timer A underflows,
		// optionally gated by CNT)
		if cia.CRB&0x61 == 0x41 || (cia.CRB&0x61 == 0x61 && cia.CNT) {
			cia.delay |= CountB1
		}

		cia.delay |= LoadA1

		// PB6 underflow indication
		cia.pb67Toggle ^= 0x40
		if cia.CRA&0x02 != 0 {
			if cia.CRA&0x04 != 0 {
				cia.pb67TimerOut ^= 0x40
			} else {
				cia.pb67TimerOut |= 0x40
				cia.delay |= PB6Low0
			}
		}
	}

	if cia.delay&LoadA1 != 0 {
		cia.CounterA = cia.LatchA
		cia.delay &^= CountA2
	}

	// timer B
	if cia.delay&CountB3 != 0 {
		cia.CounterB--
	}

	timerBOutput := cia.CounterB == 0 && cia.delay&CountB2 != 0

	if timerBOutput {
		if (cia.delay|cia.feed)&OneShotB0 != 0 {
			cia.CRB &^= 0x01
			cia.delay &^= CountB2 | CountB1 | CountB0
			cia.feed &^= CountB0
		}
		cia.delay |= LoadB1

		cia.pb67Toggle ^= 0x80
		if cia.CRB&0x02 != 0 {
			if cia.CRB&0x04 != 0 {
				cia.pb67TimerOut ^= 0x80
			} else {
				cia.pb67TimerOut |= 0x80
				cia.delay |= PB7Low0
			}
		}
	}

	if cia.delay&LoadB1 != 0 {
		cia.CounterB = cia.LatchB
		cia.delay &^= CountB2
	}

	// end of a pulsed underflow indication
	if cia.delay&PB6Low1 != 0 {
		cia.pb67TimerOut &^= 0x40
	}
	if cia.delay&PB7Low1 != 0 {
		cia.pb67TimerOut &^= 0x80
	}

	// interrupt control. the ICR bit is set on the underflow clock but
	// the CPU line moves only after the event has passed through the
	// pipeline
	if timerAOutput {
		cia.ICR |= icrTimerA
	}
	if timerBOutput {
		cia.ICR |= icrTimerB
	}
	if (timerAOutput && cia.IMR&icrTimerA != 0) || (timerBOutput && cia.IMR&icrTimerB != 0) {
		cia.delay |= Interrupt0
	}

	if cia.delay&Interrupt1 != 0 {
		cia.ICR |= icrAsserted
		cia.line.Raise()
	}

	// shift the pipeline
	cia.delay = (cia.delay<<1)&DelayMask | cia.feed
}

// TODTick advances the time of day clock by one tenth of a second. The
// scheduler calls this at the appropriate rate of simulated time.
func (cia *CIA) TODTick() {
	if !cia.TOD.tick() {
		return
	}
	if cia.TOD.alarmMatch() {
		cia.ICR |= icrAlarm
		if cia.IMR&icrAlarm != 0 {
			cia.delay |= Interrupt0
		}
	}
}
