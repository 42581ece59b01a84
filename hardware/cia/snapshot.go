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

import "github.com/jetsetilly/gopherc64/snapshot"

// SnapshotLabel implements the snapshot.Component interface.
func (cia *CIA) SnapshotLabel() string {
	return cia.label
}

// SnapshotItems implements the snapshot.Component interface.
func (cia *CIA) SnapshotItems() []snapshot.Item {
	return []snapshot.Item{
		{Ptr: &cia.CounterA},
		{Ptr: &cia.LatchA},
		{Ptr: &cia.CounterB},
		{Ptr: &cia.LatchB},
		{Ptr: &cia.delay},
		{Ptr: &cia.feed},
		{Ptr: &cia.CRA},
		{Ptr: &cia.CRB},
		{Ptr: &cia.ICR},
		{Ptr: &cia.IMR},
		{Ptr: &cia.pb67TimerMode},
		{Ptr: &cia.pb67TimerOut},
		{Ptr: &cia.pb67Toggle},
		{Ptr: &cia.PALatch},
		{Ptr: &cia.PBLatch},
		{Ptr: &cia.DDRA},
		{Ptr: &cia.DDRB},
		{Ptr: &cia.SDR},
		{Ptr: &cia.CNT},

		{Ptr: &cia.TOD.Tenths},
		{Ptr: &cia.TOD.Seconds},
		{Ptr: &cia.TOD.Minutes},
		{Ptr: &cia.TOD.Hours},
		{Ptr: &cia.TOD.AlarmTenths},
		{Ptr: &cia.TOD.AlarmSeconds},
		{Ptr: &cia.TOD.AlarmMinutes},
		{Ptr: &cia.TOD.AlarmHours},
		{Ptr: &cia.TOD.frozen},
		{Ptr: &cia.TOD.latched},
		{Ptr: &cia.TOD.latchTenths},
		{Ptr: &cia.TOD.latchSeconds},
		{Ptr: &cia.TOD.latchMinutes},
		{Ptr: &cia.TOD.latchHours},
	}
}
