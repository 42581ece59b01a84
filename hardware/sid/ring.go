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

package sid

import "sync/atomic"

// ringBuffer is a lock-free single-producer single-consumer queue of
// audio samples. The emulation core is the sole producer and the host
// audio thread the sole consumer, so atomic loads and stores of the two
// cursors are all the synchronisation that is needed.
type ringBuffer struct {
	samples []float32
	head    uint64 // write cursor, owned by the producer
	tail    uint64 // read cursor, owned by the consumer
}

func newRingBuffer(size int) *ringBuffer {
	// size must be a power of two for the index mask to work
	n := 1
	for n < size {
		n <<= 1
	}
	return &ringBuffer{samples: make([]float32, n)}
}

func (r *ringBuffer) mask() uint64 {
	return uint64(len(r.samples) - 1)
}

// put appends a sample. When the buffer is full the oldest sample is
// dropped; audible but preferable to blocking the emulation core.
func (r *ringBuffer) put(v float32) {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail)
	if head-tail >= uint64(len(r.samples)) {
		atomic.StoreUint64(&r.tail, tail+1)
	}
	r.samples[head&r.mask()] = v
	atomic.StoreUint64(&r.head, head+1)
}

// get removes the next sample. Returns silence when the buffer is
// empty.
func (r *ringBuffer) get() float32 {
	tail := atomic.LoadUint64(&r.tail)
	if tail == atomic.LoadUint64(&r.head) {
		return 0.0
	}
	v := r.samples[tail&r.mask()]
	atomic.StoreUint64(&r.tail, tail+1)
	return v
}

func (r *ringBuffer) clear() {
	atomic.StoreUint64(&r.tail, atomic.LoadUint64(&r.head))
}
