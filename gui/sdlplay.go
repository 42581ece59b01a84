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

// Package gui is the SDL play mode: a window showing the pixel engine's
// front buffer, an audio queue fed from the SID ring and host keyboard
// events injected into the keyboard matrix between frames.
package gui

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/gopherc64/hardware"
	"github.com/jetsetilly/gopherc64/hardware/input"
	"github.com/jetsetilly/gopherc64/hardware/vic/pixelengine"
	"github.com/jetsetilly/gopherc64/logger"
	"github.com/jetsetilly/gopherc64/wavwriter"
)

const windowTitle = "GopherC64"

// Play runs the machine against an SDL window until the window closes
// or the CPU halts. If recorder is non-nil the SID output is also
// written to it.
func Play(c64 *hardware.C64, scale int, recorder *wavwriter.WavWriter) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return err
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(pixelengine.BufferWidth*scale), int32(pixelengine.BufferHeight*scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		pixelengine.BufferWidth, pixelengine.BufferHeight)
	if err != nil {
		return err
	}
	defer texture.Destroy()

	// audio. one mono float32 channel at the SID's sample rate
	audioSpec := &sdl.AudioSpec{
		Freq:     int32(c64.SID.SampleRate()),
		Format:   sdl.AUDIO_F32SYS,
		Channels: 1,
		Samples:  1024,
	}
	audioDev, err := sdl.OpenAudioDevice("", false, audioSpec, nil, 0)
	if err != nil {
		return err
	}
	defer sdl.CloseAudioDevice(audioDev)
	sdl.PauseAudioDevice(audioDev, false)
	c64.SID.RampUp()

	pixels := make([]byte, pixelengine.BufferWidth*pixelengine.BufferHeight*4)
	audioChunk := make([]float32, 0, 2048)
	audioBytes := make([]byte, 0, 8192)

	// pace the emulation at the frame rate of the selected chip model
	frameDuration := time.Second * time.Duration(c64.VIC.CyclesPerLine()*c64.VIC.LinesPerFrame()) /
		time.Duration(c64.ClockFrequency())
	limiter := time.NewTicker(frameDuration)
	defer limiter.Stop()

	running := true
	for running {
		// one frame of emulation
		if err := c64.RunForFrameCount(1, nil); err != nil {
			return err
		}

		// host events
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			switch ev := ev.(type) {
			case *sdl.QuitEvent:
				running = false

			case *sdl.KeyboardEvent:
				running = handleKey(c64, ev) && running
			}
		}

		// video
		buf := c64.VIC.ScreenBuffer()
		for i, px := range buf {
			binary.LittleEndian.PutUint32(pixels[i*4:], px)
		}
		if err := texture.Update(nil, pixels, pixelengine.BufferWidth*4); err != nil {
			return err
		}
		if err := renderer.Clear(); err != nil {
			return err
		}
		if err := renderer.Copy(texture, nil, nil); err != nil {
			return err
		}
		renderer.Present()

		// audio. drain the ring into the host queue
		audioChunk = audioChunk[:0]
		for i := 0; i < cap(audioChunk); i++ {
			audioChunk = append(audioChunk, c64.SID.ReadSample())
		}
		audioBytes = audioBytes[:0]
		for _, s := range audioChunk {
			audioBytes = binary.LittleEndian.AppendUint32(audioBytes, math.Float32bits(s))
		}
		if err := sdl.QueueAudio(audioDev, audioBytes); err != nil {
			logger.Logf("gui", "audio: %v", err)
		}
		if recorder != nil {
			recorder.Add(audioChunk)
		}

		// drain machine messages
		for len(c64.Messages) > 0 {
			msg := <-c64.Messages
			logger.Logf("gui", "message: %s", msg)
		}

		<-limiter.C
	}

	return nil
}

// handleKey injects a host key event into the machine. Returns false
// when the emulation should stop.
func handleKey(c64 *hardware.C64, ev *sdl.KeyboardEvent) bool {
	pressed := ev.Type == sdl.KEYDOWN

	// the numpad is joystick 2; right-ctrl is fire
	switch ev.Keysym.Sym {
	case sdl.K_KP_8:
		c64.Joystick2.Set(input.JoystickUp, pressed)
		return true
	case sdl.K_KP_2:
		c64.Joystick2.Set(input.JoystickDown, pressed)
		return true
	case sdl.K_KP_4:
		c64.Joystick2.Set(input.JoystickLeft, pressed)
		return true
	case sdl.K_KP_6:
		c64.Joystick2.Set(input.JoystickRight, pressed)
		return true
	case sdl.K_RCTRL:
		c64.Joystick2.Set(input.JoystickFire, pressed)
		return true

	case sdl.K_F12:
		if pressed {
			c64.Reset()
		}
		return true

	case sdl.K_F11:
		if pressed && c64.Datasette != nil {
			c64.Datasette.PressPlay(!c64.Datasette.Playing())
		}
		return true
	}

	if k, ok := keymap[ev.Keysym.Sym]; ok {
		if pressed {
			c64.Keyboard.PressKey(uint8(k))
		} else {
			c64.Keyboard.ReleaseKey(uint8(k))
		}
	}

	return true
}
