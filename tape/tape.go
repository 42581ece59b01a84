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

// Package tape implements the datasette. A tape is a sequence of pulse
// lengths, measured in system clocks; every pulse ends with a falling
// edge on the FLAG pin of CIA 1, which is how the kernal's tape loader
// sees the recording.
//
// Three sources of pulses are supported: TAP images, and WAV or MP3
// recordings of real tapes, which are squared into pulses the same way
// the datasette's read amplifier does.
package tape

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/gopherc64/curated"
	"github.com/jetsetilly/gopherc64/logger"
)

// Tape is a recorded cassette: pulse lengths in system clocks.
type Tape struct {
	name   string
	pulses []uint32
}

const tapMagic = "C64-TAPE-RAW"

// NewFromFile loads a tape from a TAP image or from a WAV/MP3 recording
// of a real cassette.
func NewFromFile(filename string, clockFrequency uint32) (*Tape, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf("tape: %v", err)
	}

	name := filepath.Base(filename)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tap":
		return newFromTAP(name, data)
	case ".wav", ".mp3":
		pcm, err := getPCM(filename)
		if err != nil {
			return nil, err
		}
		return newFromPCM(name, pcm, clockFrequency)
	}

	return nil, curated.Errorf("tape: unrecognised file extension")
}

// newFromTAP decodes a TAP image. Version 0 stores pulse lengths as a
// single byte times eight; version 1 extends the escape byte 0x00 with
// a 24 bit length.
func newFromTAP(name string, data []uint8) (*Tape, error) {
	if len(data) < 20 || string(data[:len(tapMagic)]) != tapMagic {
		return nil, curated.Errorf("tape: not a tap file")
	}

	version := data[12]
	if version > 1 {
		return nil, curated.Errorf("tape: unsupported tap version (%d)", version)
	}

	tape := &Tape{name: name}

	i := 20
	for i < len(data) {
		b := data[i]
		i++

		if b != 0 {
			tape.pulses = append(tape.pulses, uint32(b)*8)
			continue
		}

		if version == 0 {
			// an overflow pulse of unspecified length
			tape.pulses = append(tape.pulses, 256*8)
			continue
		}

		if i+3 > len(data) {
			return nil, curated.Errorf("tape: truncated pulse")
		}
		tape.pulses = append(tape.pulses,
			uint32(data[i])|uint32(data[i+1])<<8|uint32(data[i+2])<<16)
		i += 3
	}

	logger.Logf("tape", "%s: %d pulses", name, len(tape.pulses))
	return tape, nil
}

// newFromPCM squares a sampled recording into pulses. A pulse runs from
// one negative-going zero crossing to the next.
func newFromPCM(name string, pcm pcmData, clockFrequency uint32) (*Tape, error) {
	if pcm.sampleRate == 0 || len(pcm.data) == 0 {
		return nil, curated.Errorf("tape: empty recording")
	}

	tape := &Tape{name: name}
	clocksPerSample := float64(clockFrequency) / pcm.sampleRate

	// hysteresis keeps noise on the tape from producing spurious edges
	const threshold = 0.05

	high := false
	lastEdge := 0

	for i, v := range pcm.data {
		if high && v < -threshold {
			high = false
			length := uint32(float64(i-lastEdge) * clocksPerSample)
			if length > 0 {
				tape.pulses = append(tape.pulses, length)
			}
			lastEdge = i
		} else if !high && v > threshold {
			high = true
		}
	}

	if len(tape.pulses) == 0 {
		return nil, curated.Errorf("tape: no pulses in recording")
	}

	logger.Logf("tape", "%s: %d pulses from %0.2fs of audio",
		name, len(tape.pulses), pcm.totalTime)
	return tape, nil
}

// Name returns the name of the tape.
func (tape *Tape) Name() string {
	return tape.name
}

// NumPulses returns the number of pulses on the tape.
func (tape *Tape) NumPulses() int {
	return len(tape.pulses)
}
