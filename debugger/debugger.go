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

// Package debugger is a machine-language monitor in the spirit of the
// cartridges of the time: step, disassemble, inspect and breakpoint the
// machine from a terminal.
package debugger

import (
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/gopherc64/debugger/terminal"
	"github.com/jetsetilly/gopherc64/hardware"
	"github.com/jetsetilly/gopherc64/hardware/cpu"
	"github.com/jetsetilly/gopherc64/logger"
)

// Debugger is the monitor session.
type Debugger struct {
	c64  *hardware.C64
	term *terminal.Terminal

	running bool
}

// NewDebugger is the preferred method of initialisation for the
// Debugger type.
func NewDebugger(c64 *hardware.C64) (*Debugger, error) {
	term, err := terminal.NewTerminal()
	if err != nil {
		return nil, err
	}

	return &Debugger{
		c64:  c64,
		term: term,
	}, nil
}

// Start the monitor loop. Returns when the user quits.
func (dbg *Debugger) Start() error {
	defer dbg.term.CleanUp()

	dbg.term.Print("GopherC64 monitor. type HELP for commands\n")
	dbg.printState()

	dbg.running = true
	for dbg.running {
		line, ok := dbg.term.ReadLine("(monitor) ")
		if !ok {
			break
		}
		if line == "" {
			line = "STEP"
		}
		if err := dbg.parseCommand(line); err != nil {
			dbg.term.Print("error: %v\n", err)
		}
	}

	return nil
}

func (dbg *Debugger) printState() {
	dbg.term.Print("%s\n", dbg.c64.CPU.String())
	dbg.term.Print("%s\n", dbg.c64.VIC.String())

	d, _ := cpu.Disassemble(ramView{dbg.c64}, dbg.c64.CPU.PC)
	dbg.term.Print("next: %s\n", d)
}

// ramView reads RAM and ROM only, so that disassembling never triggers
// the read side effects of the I/O window.
type ramView struct {
	c64 *hardware.C64
}

func (r ramView) Peek(addr uint16) uint8 {
	if addr >= 0xd000 && addr < 0xe000 {
		return r.c64.Mem.RAM[addr]
	}
	return r.c64.Mem.Peek(addr)
}

func (r ramView) Poke(addr uint16, data uint8) {}

func parseAddress(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "$"), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	return uint16(v), err
}

func (dbg *Debugger) parseCommand(line string) error {
	tok := strings.Fields(strings.ToUpper(line))
	cmd := tok[0]

	switch cmd {
	case "HELP":
		dbg.term.Print("STEP [n]    step n instructions (default 1)\n")
		dbg.term.Print("FRAME       run to the end of the frame\n")
		dbg.term.Print("RUN         run until a breakpoint or ctrl-c\n")
		dbg.term.Print("REGS        show machine state\n")
		dbg.term.Print("M addr      dump 64 bytes of memory\n")
		dbg.term.Print("D [addr]    disassemble 16 instructions\n")
		dbg.term.Print("BREAK addr  set a hard breakpoint\n")
		dbg.term.Print("SOFT addr   set a one-shot breakpoint\n")
		dbg.term.Print("CLEAR addr  clear breakpoints at addr\n")
		dbg.term.Print("RESET       hardware reset\n")
		dbg.term.Print("LOG         show the emulator log\n")
		dbg.term.Print("MEMVIZ file dump the machine graph as dot\n")
		dbg.term.Print("QUIT        leave the monitor\n")

	case "QUIT", "Q":
		dbg.running = false

	case "STEP", "":
		n := 1
		if len(tok) > 1 {
			var err error
			if n, err = strconv.Atoi(tok[1]); err != nil {
				return err
			}
		}
		for i := 0; i < n; i++ {
			if err := dbg.c64.StepInstruction(); err != nil {
				return err
			}
			if dbg.c64.CPU.ErrorState() != cpu.OK {
				dbg.term.Print("%s\n", dbg.c64.CPU.ErrorState())
				dbg.c64.CPU.ClearErrorState()
				break
			}
		}
		dbg.printState()

	case "FRAME":
		frames := 0
		err := dbg.c64.RunForFrameCount(1, func() error {
			frames++
			return nil
		})
		if err != nil {
			return err
		}
		dbg.printState()

	case "RUN":
		err := dbg.c64.Run(func() (bool, error) { return true, nil })
		if err != nil {
			return err
		}
		if dbg.c64.CPU.ErrorState() != cpu.OK {
			dbg.term.Print("%s at %04x\n", dbg.c64.CPU.ErrorState(), dbg.c64.CPU.PC)
			dbg.c64.CPU.ClearErrorState()
		}
		dbg.printState()

	case "REGS":
		dbg.printState()

	case "M":
		if len(tok) < 2 {
			return nil
		}
		addr, err := parseAddress(tok[1])
		if err != nil {
			return err
		}
		for row := 0; row < 4; row++ {
			dbg.term.Print("%04x: ", addr)
			for col := 0; col < 16; col++ {
				dbg.term.Print("%02x ", ramView{dbg.c64}.Peek(addr))
				addr++
			}
			dbg.term.Print("\n")
		}

	case "D":
		addr := dbg.c64.CPU.PC
		if len(tok) > 1 {
			var err error
			if addr, err = parseAddress(tok[1]); err != nil {
				return err
			}
		}
		for i := 0; i < 16; i++ {
			d, length := cpu.Disassemble(ramView{dbg.c64}, addr)
			dbg.term.Print("%04x  %s\n", addr, d)
			addr += uint16(length)
		}

	case "BREAK", "SOFT", "CLEAR":
		if len(tok) < 2 {
			return nil
		}
		addr, err := parseAddress(tok[1])
		if err != nil {
			return err
		}
		switch cmd {
		case "BREAK":
			dbg.c64.CPU.SetBreakpoint(addr, cpu.HardBreakpoint)
		case "SOFT":
			dbg.c64.CPU.SetBreakpoint(addr, cpu.SoftBreakpoint)
		case "CLEAR":
			dbg.c64.CPU.ClearBreakpoint(addr, cpu.HardBreakpoint|cpu.SoftBreakpoint)
		}

	case "RESET":
		dbg.c64.Reset()
		dbg.printState()

	case "LOG":
		if !logger.WriteTo(os.Stdout) {
			dbg.term.Print("log is empty\n")
		}

	case "MEMVIZ":
		if len(tok) < 2 {
			return nil
		}
		f, err := os.Create(strings.ToLower(tok[1]))
		if err != nil {
			return err
		}
		defer f.Close()
		memviz.Map(f, dbg.c64)
		dbg.term.Print("machine graph written to %s\n", strings.ToLower(tok[1]))

	default:
		dbg.term.Print("unknown command %s\n", cmd)
	}

	return nil
}
