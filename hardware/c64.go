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

// Package hardware assembles the chips into a machine. The C64 type
// owns every component; the chips never hold references to the machine,
// they receive narrow interfaces onto each other at construction time.
package hardware

import (
	"github.com/jetsetilly/gopherc64/hardware/cia"
	"github.com/jetsetilly/gopherc64/hardware/cpu"
	"github.com/jetsetilly/gopherc64/hardware/input"
	"github.com/jetsetilly/gopherc64/hardware/memory"
	"github.com/jetsetilly/gopherc64/hardware/serial"
	"github.com/jetsetilly/gopherc64/hardware/sid"
	"github.com/jetsetilly/gopherc64/hardware/vic"
	"github.com/jetsetilly/gopherc64/logger"
	"github.com/jetsetilly/gopherc64/tape"
)

// Clock frequencies of the two machine variants in Hz.
const (
	PALClock  = 985249
	NTSCClock = 1022727
)

// C64 is the main container for the emulated components.
type C64 struct {
	Mem  *memory.Memory
	CPU  *cpu.CPU
	VIC  *vic.VIC
	CIA1 *cia.CIA
	CIA2 *cia.CIA
	SID  *sid.SID

	Keyboard  *input.Keyboard
	Joystick1 *input.Joystick
	Joystick2 *input.Joystick
	Serial    *serial.Bus

	// Datasette is nil until a tape is attached
	Datasette *tape.Datasette

	// Messages is the queue to the host UI. Posts never block; when the
	// host does not drain the queue messages are dropped
	Messages chan Message

	// Cycles counts system clocks since power on
	Cycles uint64

	clockFrequency uint32

	// countdown to the next tenth-of-a-second TOD tick
	todCounter uint32
}

// the VIC's handle on the CPU
type vicLines struct {
	mc *cpu.CPU
}

func (l vicLines) SetRDY(state bool)      { l.mc.RdyLine = state }
func (l vicLines) SetIRQVIC(state bool)   { l.mc.SetIRQLineVIC(state) }
func (l vicLines) ProgramCounter() uint16 { return l.mc.PC }

// CIA 1 asserts the IRQ line, CIA 2 the NMI line
type irqLine struct{ mc *cpu.CPU }

func (l irqLine) Raise() { l.mc.SetIRQLineCIA(true) }
func (l irqLine) Clear() { l.mc.SetIRQLineCIA(false) }

type nmiLine struct{ mc *cpu.CPU }

func (l nmiLine) Raise() { l.mc.SetNMILineCIA(true) }
func (l nmiLine) Clear() { l.mc.SetNMILineCIA(false) }

// NewC64 creates a new C64 and everything associated with the hardware.
// It is used for all aspects of emulation: debugging sessions and
// regular play.
func NewC64(model vic.ChipModel) *C64 {
	c64 := &C64{
		Messages:  make(chan Message, 16),
		Keyboard:  input.NewKeyboard(),
		Joystick1: input.NewJoystick(),
		Joystick2: input.NewJoystick(),
		Serial:    serial.NewBus(),
	}

	c64.Mem = memory.NewMemory()
	c64.CPU = cpu.NewCPU(c64.Mem)
	c64.VIC = vic.NewVIC(c64.Mem, vicLines{c64.CPU}, model)
	c64.CIA1 = cia.NewCIA("CIA1", irqLine{c64.CPU})
	c64.CIA2 = cia.NewCIA("CIA2", nmiLine{c64.CPU})
	c64.SID = sid.NewSID()

	// the I/O window of the bus dispatches to the chips
	c64.Mem.VIC = c64.VIC
	c64.Mem.SID = c64.SID
	c64.Mem.CIA1 = c64.CIA1
	c64.Mem.CIA2 = c64.CIA2

	// CIA 1: keyboard matrix and joysticks. the matrix is scanned with
	// the port A outputs selecting rows; joystick 1 shares the port B
	// lines and joystick 2 the port A lines
	c64.CIA1.PortAIn = func() uint8 {
		return c64.Joystick2.Port() | 0xe0
	}
	c64.CIA1.PortBIn = func() uint8 {
		rows := c64.CIA1.PortA()
		return c64.Keyboard.Scan(rows) & (c64.Joystick1.Port() | 0xe0)
	}

	// CIA 2: VIC bank select on the inverted low bits of port A, the
	// serial bus on bits 3 to 5
	c64.CIA2.PortAOut = func(v uint8) {
		c64.VIC.SetBank(^v & 0x03)
		c64.Serial.SetHostLines(v)
	}
	c64.CIA2.PortAIn = func() uint8 {
		return c64.Serial.PortABits()
	}

	c64.setClockFrequency(model)

	return c64
}

func (c64 *C64) setClockFrequency(model vic.ChipModel) {
	if model == vic.MOS6569PAL {
		c64.clockFrequency = PALClock
	} else {
		c64.clockFrequency = NTSCClock
	}
	c64.todCounter = c64.clockFrequency / 10
	c64.SID.SetClockFrequency(c64.clockFrequency)
}

// SetChipModel switches the machine between PAL and NTSC. Takes effect
// immediately; the host is notified through the message queue.
func (c64 *C64) SetChipModel(model vic.ChipModel) {
	c64.VIC.SetChipModel(model)
	c64.setClockFrequency(model)
	if model == vic.MOS6569PAL {
		c64.PostMessage(MsgPAL)
	} else {
		c64.PostMessage(MsgNTSC)
	}
}

// ClockFrequency returns the system clock in Hz.
func (c64 *C64) ClockFrequency() uint32 {
	return c64.clockFrequency
}

// AttachTape inserts a tape into the datasette. Press play with
// c64.Datasette.PressPlay(true) and let the kernal do the rest.
func (c64 *C64) AttachTape(t *tape.Tape) {
	c64.Datasette = tape.NewDatasette(t)
	c64.Datasette.Flag = func() {
		c64.CIA1.TriggerFallingEdgeOnFlagPin()
	}
	c64.Mem.CassetteSense = func() bool {
		return c64.Datasette.Playing()
	}
	logger.Logf("c64", "tape attached: %s", t.Name())
}

// AttachROMs loads the kernal, basic and character ROMs from disk.
func (c64 *C64) AttachROMs(kernal string, basic string, char string) error {
	err := c64.Mem.LoadROMs(kernal, basic, char)
	if err != nil {
		return err
	}
	logger.Log("c64", "roms attached")
	return nil
}

// Reset emulates the reset line of the board: every chip returns to its
// defined idle state and the CPU restarts through the reset vector.
// Color RAM survives; dynamic RAM does not.
func (c64 *C64) Reset() {
	c64.Mem.Reset()
	c64.CPU.Reset()
	c64.VIC.Reset()
	c64.CIA1.Reset()
	c64.CIA2.Reset()
	c64.SID.Reset()

	c64.PostMessage(MsgReset)
	logger.Log("c64", "machine reset")
}

// PostMessage places a message on the queue to the host. Never blocks.
func (c64 *C64) PostMessage(msg Message) {
	select {
	case c64.Messages <- msg:
	default:
	}
}
