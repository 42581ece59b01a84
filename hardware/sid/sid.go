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

// Package sid wraps the 6581/8580 sound chip. The chip is treated as a
// black box that consumes register writes and produces samples on
// demand: the scheduler tells the wrapper how far the machine clock has
// advanced with ExecuteUntil() and samples accumulate in a lock-free
// ring that the host audio thread drains with ReadSample().
//
// The synthesis itself is a deliberately small model: three phase
// accumulator oscillators with the four classic waveforms and the
// master volume register. Faithful filter and envelope emulation is the
// domain of a dedicated SID library and out of scope here.
package sid

import (
	"github.com/jetsetilly/gopherc64/logger"
)

// ChipModel selects between the two SID revisions. The wrapper records
// it and reports it back; the synthesis is the same for both revisions.
type ChipModel int

// List of valid ChipModel values.
const (
	MOS6581 ChipModel = iota
	MOS8580
)

const numRegisters = 32

// number of samples the ring can hold before old samples are dropped
const ringSize = 16384

type voice struct {
	freq    uint16
	pw      uint16
	control uint8

	accum     uint32
	noiseSR   uint32
	noiseBits uint8
}

// SID is the wrapper around the sound chip.
type SID struct {
	registers [numRegisters]uint8
	voices    [3]voice

	model          ChipModel
	sampleRate     uint32
	clockFrequency uint32
	audioFilter    bool

	// master volume from register 0x18, plus the ramp target used for
	// fade in/out
	volume       float32
	targetVolume float32

	// the machine cycle the synthesis has reached
	cycle uint64

	// fractional cycles per sample accumulator
	sampleCounter float64
	cyclesPerSamp float64

	ring *ringBuffer

	// the last byte written to the chip; reads of write-only registers
	// return it
	latchedDataBus uint8
}

// NewSID is the preferred method of initialisation for the SID type.
func NewSID() *SID {
	s := &SID{
		ring: newRingBuffer(ringSize),
	}
	s.SetSampleRate(44100)
	s.SetClockFrequency(985249)
	s.Reset()
	return s
}

// Reset the SID to its power-on state. The ring buffer is emptied.
func (s *SID) Reset() {
	for i := range s.registers {
		s.registers[i] = 0
	}
	for i := range s.voices {
		s.voices[i] = voice{noiseSR: 0x7ffff8}
	}
	s.volume = 0.0
	s.targetVolume = 0.0
	s.cycle = 0
	s.sampleCounter = 0
	s.ring.clear()
}

// SetChipModel selects the chip revision.
func (s *SID) SetChipModel(model ChipModel) {
	s.model = model
}

// ChipModel returns the selected chip revision.
func (s *SID) ChipModel() ChipModel {
	return s.model
}

// SetSampleRate sets the output sample rate in Hz.
func (s *SID) SetSampleRate(rate uint32) {
	s.sampleRate = rate
	s.cyclesPerSamp = float64(s.clockFrequency) / float64(rate)
	logger.Logf("sid", "sample rate %dHz", rate)
}

// SampleRate returns the output sample rate in Hz.
func (s *SID) SampleRate() uint32 {
	return s.sampleRate
}

// SetClockFrequency tells the wrapper how fast the machine clock runs.
// Needed to map oscillator frequencies onto host samples.
func (s *SID) SetClockFrequency(freq uint32) {
	s.clockFrequency = freq
	if s.sampleRate > 0 {
		s.cyclesPerSamp = float64(freq) / float64(s.sampleRate)
	}
}

// SetAudioFilter records the audio filter setting. The synthesis has no
// filter stage; the output is the same either way.
func (s *SID) SetAudioFilter(enable bool) {
	s.audioFilter = enable
}

// SetVolume sets the output volume directly. Range 0 to 1.
func (s *SID) SetVolume(v float32) {
	s.volume = v
	s.targetVolume = v
}

// RampUp fades the volume towards full over the next batch of samples.
func (s *SID) RampUp() {
	s.targetVolume = 1.0
}

// RampDown fades the volume towards silence over the next batch of
// samples.
func (s *SID) RampDown() {
	s.targetVolume = 0.0
}

// Peek implements the memory.ChipBus interface. Most SID registers are
// write-only and return the last written value; the oscillator and
// envelope taps of voice 3 return live data.
func (s *SID) Peek(reg uint16) uint8 {
	switch reg & 0x1f {
	case 0x1b:
		// oscillator 3 tap
		return uint8(s.voices[2].accum >> 16)
	case 0x1c:
		// envelope 3 tap. the simplified envelope is either silent or
		// at maximum
		if s.voices[2].control&0x01 != 0 {
			return 0xff
		}
		return 0x00
	}
	return s.latchedDataBus
}

// Poke implements the memory.ChipBus interface.
func (s *SID) Poke(reg uint16, data uint8) {
	reg &= 0x1f
	s.latchedDataBus = data
	s.registers[reg] = data

	switch {
	case reg < 0x15:
		v := &s.voices[reg/7]
		switch reg % 7 {
		case 0:
			v.freq = v.freq&0xff00 | uint16(data)
		case 1:
			v.freq = uint16(data)<<8 | v.freq&0x00ff
		case 2:
			v.pw = v.pw&0x0f00 | uint16(data)
		case 3:
			v.pw = uint16(data&0x0f)<<8 | v.pw&0x00ff
		case 4:
			v.control = data
		}
	}
}

// ExecuteUntil advances the synthesis to the specified machine cycle,
// producing samples into the ring buffer as it goes.
func (s *SID) ExecuteUntil(targetCycle uint64) {
	if targetCycle <= s.cycle {
		return
	}
	elapsed := targetCycle - s.cycle
	s.cycle = targetCycle

	s.sampleCounter += float64(elapsed)
	for s.sampleCounter >= s.cyclesPerSamp {
		s.sampleCounter -= s.cyclesPerSamp
		s.ring.put(s.sample())
	}
}

// ReadSample returns the next sample. The host audio thread is the only
// permitted caller. Returns silence when the emulation has not kept up.
func (s *SID) ReadSample() float32 {
	return s.ring.get()
}

// one output sample from the current register state
func (s *SID) sample() float32 {
	var acc float32

	for i := range s.voices {
		v := &s.voices[i]
		if v.control&0x01 == 0 {
			continue
		}

		// phase step for one sample period
		step := uint32(float64(v.freq) * s.cyclesPerSamp)
		v.accum = (v.accum + step) & 0xffffff

		var out float32
		switch {
		case v.control&0x80 != 0:
			// noise. clocked from bit 19 of the accumulator
			if uint8(v.accum>>19)&0x01 != v.noiseBits {
				v.noiseBits = uint8(v.accum>>19) & 0x01
				bit := (v.noiseSR>>22 ^ v.noiseSR>>17) & 0x01
				v.noiseSR = v.noiseSR<<1 | bit
			}
			out = float32(v.noiseSR&0xff)/127.5 - 1.0
		case v.control&0x40 != 0:
			// pulse
			if uint16(v.accum>>12) < v.pw {
				out = 1.0
			} else {
				out = -1.0
			}
		case v.control&0x20 != 0:
			// sawtooth
			out = float32(v.accum)/8388607.5 - 1.0
		case v.control&0x10 != 0:
			// triangle
			t := v.accum
			if t&0x800000 != 0 {
				t = ^t & 0xffffff
			}
			out = float32(t)/4194303.75 - 1.0
		}

		acc += out
	}

	// volume ramp moves a small step per sample so that fades are free
	// of clicks
	if s.volume < s.targetVolume {
		s.volume += 0.001
		if s.volume > s.targetVolume {
			s.volume = s.targetVolume
		}
	} else if s.volume > s.targetVolume {
		s.volume -= 0.001
		if s.volume < s.targetVolume {
			s.volume = s.targetVolume
		}
	}

	master := float32(s.registers[0x18]&0x0f) / 15.0
	return acc / 3.0 * master * s.volume
}

// Registers returns a copy of the register file. Used by the snapshot
// subsystem.
func (s *SID) Registers() [numRegisters]uint8 {
	return s.registers
}
