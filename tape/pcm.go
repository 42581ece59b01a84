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

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/jetsetilly/gopherc64/curated"
	"github.com/jetsetilly/gopherc64/logger"
)

type pcmData struct {
	totalTime  float64 // in seconds
	sampleRate float64

	// mono data, taken from the left channel of stereo source files,
	// normalised to -1 to 1
	data []float32
}

func getPCM(filename string) (pcmData, error) {
	p := pcmData{
		data: make([]float32, 0),
	}

	f, err := os.Open(filename)
	if err != nil {
		return p, curated.Errorf("tape: %v", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		dec := wav.NewDecoder(f)
		if dec == nil || !dec.IsValidFile() {
			return p, curated.Errorf("tape: not a valid wav file")
		}

		logger.Log("tape", "loading from wav file")

		buf, err := dec.FullPCMBuffer()
		if err != nil {
			return p, curated.Errorf("tape: wav: %v", err)
		}
		floatBuf := buf.AsFloat32Buffer()

		// first channel only
		p.data = make([]float32, 0, len(floatBuf.Data)/int(dec.NumChans))
		for i := 0; i < len(floatBuf.Data); i += int(dec.NumChans) {
			p.data = append(p.data, floatBuf.Data[i])
		}

		p.sampleRate = float64(dec.SampleRate)

		dur, err := dec.Duration()
		if err != nil {
			return p, curated.Errorf("tape: wav: %v", err)
		}
		p.totalTime = dur.Seconds()

	case ".mp3":
		dec, err := mp3.NewDecoder(f)
		if err != nil {
			return p, curated.Errorf("tape: mp3: %v", err)
		}

		logger.Log("tape", "loading from mp3 file")

		// the stream is always 16 bit little endian stereo; four bytes
		// per sample pair, of which we keep the left channel
		chunk := make([]byte, 4096)
		err = nil
		for err != io.EOF {
			var chunkLen int
			chunkLen, err = dec.Read(chunk)
			if err != nil && err != io.EOF {
				return p, curated.Errorf("tape: mp3: %v", err)
			}

			for i := 0; i+1 < chunkLen; i += 4 {
				v := int(chunk[i]) | int(chunk[i+1])<<8
				if v >= 32768 {
					v -= 65536
				}
				p.data = append(p.data, float32(v)/32768.0)
			}
		}

		p.sampleRate = float64(dec.SampleRate())
		p.totalTime = float64(len(p.data)) / p.sampleRate
	}

	logger.Logf("tape", "sample rate: %0.2fHz", p.sampleRate)
	logger.Logf("tape", "total time: %.02fs", p.totalTime)

	return p, nil
}
