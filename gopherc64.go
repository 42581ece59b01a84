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

// GopherC64 is a cycle-accurate Commodore 64 emulator.
//
//	gopherc64 [mode] [flags] [file]
//
// Modes are RUN (the default), DEBUG and PERFORMANCE. The optional file
// argument is flashed into memory (PRG, P00, T64, D64) or inserted into
// the datasette (TAP, WAV, MP3 recordings).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jetsetilly/gopherc64/archive"
	"github.com/jetsetilly/gopherc64/debugger"
	"github.com/jetsetilly/gopherc64/gui"
	"github.com/jetsetilly/gopherc64/hardware"
	"github.com/jetsetilly/gopherc64/hardware/vic"
	"github.com/jetsetilly/gopherc64/logger"
	"github.com/jetsetilly/gopherc64/statsview"
	"github.com/jetsetilly/gopherc64/tape"
	"github.com/jetsetilly/gopherc64/wavwriter"
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

func launch(args []string, output io.Writer) int {
	mode := "RUN"
	if len(args) > 0 {
		switch strings.ToUpper(args[0]) {
		case "RUN", "DEBUG", "PERFORMANCE":
			mode = strings.ToUpper(args[0])
			args = args[1:]
		}
	}

	flags := flag.NewFlagSet("gopherc64", flag.ContinueOnError)
	tv := flags.String("tv", "PAL", "television specification: PAL or NTSC")
	romDir := flags.String("roms", "roms", "directory containing kernal, basic and chargen images")
	scale := flags.Int("scale", 2, "window scale factor")
	stats := flags.Bool("statsview", false, "run the statistics server")
	wavFile := flags.String("wav", "", "record SID output to the named WAV file")
	echoLog := flags.Bool("log", false, "echo log entries to stdout")
	frames := flags.Int("frames", 500, "number of frames to run in PERFORMANCE mode")

	if err := flags.Parse(args); err != nil {
		return 10
	}

	if *echoLog {
		logger.SetEcho(output)
	}
	if *stats {
		statsview.Launch(output)
	}

	model := vic.MOS6569PAL
	if strings.ToUpper(*tv) == "NTSC" {
		model = vic.MOS6567NTSC
	}

	c64 := hardware.NewC64(model)

	err := c64.AttachROMs(
		filepath.Join(*romDir, "kernal"),
		filepath.Join(*romDir, "basic"),
		filepath.Join(*romDir, "chargen"),
	)
	if err != nil {
		fmt.Fprintf(output, "* %v\n", err)
		return 10
	}

	if flags.NArg() > 0 {
		if err := attachFile(c64, flags.Arg(0)); err != nil {
			fmt.Fprintf(output, "* %v\n", err)
			return 10
		}
	}

	switch mode {
	case "RUN":
		var recorder *wavwriter.WavWriter
		if *wavFile != "" {
			recorder = wavwriter.New(*wavFile, int(c64.SID.SampleRate()))
			defer func() {
				if err := recorder.EndMixing(); err != nil {
					fmt.Fprintf(output, "* %v\n", err)
				}
			}()
		}
		if err := gui.Play(c64, *scale, recorder); err != nil {
			fmt.Fprintf(output, "* %v\n", err)
			return 10
		}

	case "DEBUG":
		dbg, err := debugger.NewDebugger(c64)
		if err != nil {
			fmt.Fprintf(output, "* %v\n", err)
			return 10
		}
		if err := dbg.Start(); err != nil {
			fmt.Fprintf(output, "* %v\n", err)
			return 10
		}

	case "PERFORMANCE":
		start := time.Now()
		if err := c64.RunForFrameCount(*frames, nil); err != nil {
			fmt.Fprintf(output, "* %v\n", err)
			return 10
		}
		elapsed := time.Since(start).Seconds()
		expected := float64(*frames) * float64(c64.VIC.CyclesPerLine()*c64.VIC.LinesPerFrame()) /
			float64(c64.ClockFrequency())
		fmt.Fprintf(output, "%d frames in %.02fs (%.01f%% of realtime)\n",
			*frames, elapsed, 100*expected/elapsed)
	}

	return 0
}

// attachFile interprets the file argument: archives are flashed into
// memory, tape images and recordings go into the datasette.
func attachFile(c64 *hardware.C64, filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tap", ".wav", ".mp3":
		t, err := tape.NewFromFile(filename, c64.ClockFrequency())
		if err != nil {
			return err
		}
		c64.AttachTape(t)
		return nil
	}

	arc, err := archive.Open(filename)
	if err != nil {
		return err
	}

	// give the kernal time to reach the BASIC prompt before flashing
	if err := c64.RunForCycles(2500000); err != nil {
		return err
	}
	return archive.Flash(arc, 0, c64.Mem)
}
