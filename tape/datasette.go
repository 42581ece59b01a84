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

package tape

// Datasette is the tape deck. The machine steps it once per system
// clock; at the end of every pulse the Flag hook fires, which the
// machine wires to the FLAG pin of CIA 1.
type Datasette struct {
	tape *Tape

	// Flag is called on the falling edge that ends a pulse
	Flag func()

	// the motor line from the processor port (bit 5, active low)
	motor bool

	playing   bool
	pulse     int
	countdown uint32
}

// NewDatasette is the preferred method of initialisation for the
// Datasette type.
func NewDatasette(tape *Tape) *Datasette {
	ds := &Datasette{tape: tape}
	ds.Rewind()
	return ds
}

// Rewind the tape to the beginning.
func (ds *Datasette) Rewind() {
	ds.pulse = 0
	ds.countdown = 0
	if ds.tape.NumPulses() > 0 {
		ds.countdown = ds.tape.pulses[0]
	}
}

// PressPlay starts or stops the tape.
func (ds *Datasette) PressPlay(play bool) {
	ds.playing = play
}

// Playing returns true while the play key is down. The kernal senses
// this on bit 4 of the processor port.
func (ds *Datasette) Playing() bool {
	return ds.playing
}

// SetMotor is wired to bit 5 of the processor port. The tape only moves
// while the kernal powers the motor.
func (ds *Datasette) SetMotor(on bool) {
	ds.motor = on
}

// AtEnd returns true when the tape has run out.
func (ds *Datasette) AtEnd() bool {
	return ds.pulse >= ds.tape.NumPulses()
}

// Step advances the tape by one system clock.
func (ds *Datasette) Step() {
	if !ds.playing || !ds.motor || ds.AtEnd() {
		return
	}

	ds.countdown--
	if ds.countdown > 0 {
		return
	}

	if ds.Flag != nil {
		ds.Flag()
	}

	ds.pulse++
	if !ds.AtEnd() {
		ds.countdown = ds.tape.pulses[ds.pulse]
	}
}
