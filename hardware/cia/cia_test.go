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

package cia_test

import (
	"testing"

	"github.com/jetsetilly/gopherc64/hardware/cia"
	"github.com/jetsetilly/gopherc64/test"
)

type mockLine struct {
	raised bool
	count  int
}

func (l *mockLine) Raise() {
	if !l.raised {
		l.count++
	}
	l.raised = true
}

func (l *mockLine) Clear() {
	l.raised = false
}

func TestOneShotTimerA(t *testing.T) {
	line := &mockLine{}
	c := cia.NewCIA("CIA1", line)

	// latch 0x0010, enable timer A interrupts, start in one-shot mode
	// with force load
	c.Poke(0x04, 0x10)
	c.Poke(0x05, 0x00)
	c.Poke(0x0d, 0x81)
	c.Poke(0x0e, 0x19)

	// run until the underflow is signalled
	cycles := 0
	for c.Peek(0x0e)&0x01 == 0x01 {
		c.Step()
		cycles++
		if cycles > 100 {
			t.Fatal("timer never underflowed")
		}
	}

	// the start bit has been cleared by the one-shot underflow and the
	// counter has been reloaded from the latch
	test.Equate(t, c.CRA&0x01, 0)
	test.Equate(t, c.CounterA, 0x0010)

	// 16 decrements plus the pipeline's start-up and reload latency
	test.Equate(t, cycles, 19)

	// the interrupt event reaches the end of the pipeline on the next
	// clock and sets the asserted bit; the second clock leaves it set
	c.Step()
	c.Step()

	v := c.Peek(0x0d)
	test.Equate(t, v&0x01, 0x01)
	test.Equate(t, v&0x80, 0x80)

	// reading cleared it
	test.Equate(t, c.Peek(0x0d)&0x01, 0x00)
}

func TestInterruptDelayPipeline(t *testing.T) {
	line := &mockLine{}
	c := cia.NewCIA("CIA1", line)

	c.Poke(0x04, 0x01)
	c.Poke(0x05, 0x00)
	c.Poke(0x0d, 0x81)
	c.Poke(0x0e, 0x11)

	// find the cycle in which the ICR bit appears
	cycles := 0
	for c.ICR&0x01 == 0 {
		c.Step()
		cycles++
		if cycles > 100 {
			t.Fatal("timer never underflowed")
		}
	}

	// the ICR bit is visible but the CPU line moves only after the
	// event has shifted through the pipeline
	test.Equate(t, line.raised, false)
	c.Step()
	test.Equate(t, line.raised, true)
}

func TestContinuousModeReloads(t *testing.T) {
	line := &mockLine{}
	c := cia.NewCIA("CIA1", line)

	c.Poke(0x04, 0x02)
	c.Poke(0x05, 0x00)
	c.Poke(0x0d, 0x81)
	c.Poke(0x0e, 0x11)

	// two underflows in continuous mode: the line is raised, cleared on
	// ICR read, and raised again
	for i := 0; i < 30; i++ {
		c.Step()
	}
	test.Equate(t, line.count >= 2 || (line.count == 1 && line.raised), true)

	// start bit still set in continuous mode
	test.Equate(t, c.CRA&0x01, 0x01)
}

func TestTimerBCascade(t *testing.T) {
	line := &mockLine{}
	c := cia.NewCIA("CIA2", line)

	// timer B counts timer A underflows
	c.Poke(0x04, 0x02)
	c.Poke(0x05, 0x00)
	c.Poke(0x06, 0x02)
	c.Poke(0x07, 0x00)
	c.Poke(0x0f, 0x41)
	c.Poke(0x0e, 0x11)

	start := c.CounterB
	for i := 0; i < 30; i++ {
		c.Step()
	}
	test.Equate(t, c.CounterB < start, true)
}

func TestTODLatchOnHoursRead(t *testing.T) {
	line := &mockLine{}
	c := cia.NewCIA("CIA1", line)

	c.TOD.Tenths = 0x05
	c.TOD.Seconds = 0x30
	c.TOD.Minutes = 0x15
	c.TOD.Hours = 0x03

	// reading hours latches the full set
	test.Equate(t, c.Peek(0x0b), 0x03)

	// the clock moves on but the latched values are returned
	c.TODTick()
	test.Equate(t, c.Peek(0x0a), 0x15)
	test.Equate(t, c.Peek(0x09), 0x30)

	// reading tenths releases the latch
	test.Equate(t, c.Peek(0x08), 0x05)
	test.Equate(t, c.Peek(0x08), 0x06)
}

func TestTODFreezeOnHoursWrite(t *testing.T) {
	line := &mockLine{}
	c := cia.NewCIA("CIA1", line)

	c.Poke(0x0b, 0x02)

	// frozen: ticks have no effect
	c.TODTick()
	c.TODTick()
	test.Equate(t, c.TOD.Tenths, 0x00)

	// writing seconds releases the clock
	c.Poke(0x09, 0x00)
	c.TODTick()
	test.Equate(t, c.TOD.Tenths, 0x01)
}

func TestTODAlarm(t *testing.T) {
	line := &mockLine{}
	c := cia.NewCIA("CIA1", line)

	// enable alarm interrupts and set the alarm one tenth ahead of the
	// reset time of 1:00:00.0
	c.Poke(0x0d, 0x84)
	c.TOD.AlarmTenths = 0x01
	c.TOD.AlarmSeconds = 0x00
	c.TOD.AlarmMinutes = 0x00
	c.TOD.AlarmHours = 0x01

	c.TODTick()
	test.Equate(t, c.ICR&0x04, 0x04)
}

func TestBCDRollover(t *testing.T) {
	line := &mockLine{}
	c := cia.NewCIA("CIA1", line)

	c.TOD.Tenths = 0x09
	c.TOD.Seconds = 0x59
	c.TOD.Minutes = 0x59
	c.TOD.Hours = 0x11

	c.TODTick()
	test.Equate(t, c.TOD.Tenths, 0x00)
	test.Equate(t, c.TOD.Seconds, 0x00)
	test.Equate(t, c.TOD.Minutes, 0x00)

	// 11:59:59.9 AM rolls over to 12:00:00.0 PM
	test.Equate(t, c.TOD.Hours, 0x92)
}
