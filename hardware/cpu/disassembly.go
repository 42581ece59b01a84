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

package cpu

import "fmt"

// Disassemble formats the instruction at the specified address. It
// returns the formatted string and the number of bytes the instruction
// occupies. Reading through Peek means I/O registers with read side
// effects should not be disassembled; debuggers should restrict
// themselves to RAM and ROM addresses.
func Disassemble(mem Bus, addr uint16) (string, int) {
	opcode := mem.Peek(addr)
	mnemonic, mode, length := Definition(opcode)

	var operand uint16
	switch length {
	case 2:
		operand = uint16(mem.Peek(addr + 1))
	case 3:
		operand = uint16(mem.Peek(addr+1)) | uint16(mem.Peek(addr+2))<<8
	}

	var s string
	switch mode {
	case Implied, BrkMode:
		s = mnemonic
	case Accumulator:
		s = fmt.Sprintf("%s A", mnemonic)
	case Immediate:
		s = fmt.Sprintf("%s #$%02X", mnemonic, operand)
	case ZeroPage:
		s = fmt.Sprintf("%s $%02X", mnemonic, operand)
	case ZeroPageX:
		s = fmt.Sprintf("%s $%02X,X", mnemonic, operand)
	case ZeroPageY:
		s = fmt.Sprintf("%s $%02X,Y", mnemonic, operand)
	case Absolute:
		s = fmt.Sprintf("%s $%04X", mnemonic, operand)
	case AbsoluteX:
		s = fmt.Sprintf("%s $%04X,X", mnemonic, operand)
	case AbsoluteY:
		s = fmt.Sprintf("%s $%04X,Y", mnemonic, operand)
	case IndirectX:
		s = fmt.Sprintf("%s ($%02X,X)", mnemonic, operand)
	case IndirectY:
		s = fmt.Sprintf("%s ($%02X),Y", mnemonic, operand)
	case Indirect:
		s = fmt.Sprintf("%s ($%04X)", mnemonic, operand)
	case Relative:
		target := addr + 2 + uint16(int8(operand))
		s = fmt.Sprintf("%s $%04X", mnemonic, target)
	}

	return s, length
}
