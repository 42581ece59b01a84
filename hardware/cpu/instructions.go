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

// AddressingMode identifies one of the addressing modes of the 6510.
type AddressingMode int

// List of AddressingMode values.
const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	IndirectX
	IndirectY
	Relative
	Indirect
	BrkMode
)

// number of operand bytes that follow the opcode
func (m AddressingMode) operandBytes() int {
	switch m {
	case Implied, Accumulator:
		return 0
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	}
	return 1
}

type class int

const (
	classRead class = iota
	classWrite
	classRMW
	classImplied
	classAccumulator
	classBranch
	classPush
	classPull
	classJmp
	classJmpInd
	classJsr
	classRts
	classRti
	classBrk
	classUnstable
)

// definition ties an opcode to its addressing mode, its micro-step
// sequence and its operation semantics. At most one of the operation
// fields is non-nil, depending on class; the jump, return, BRK and
// unstable classes carry none.
type definition struct {
	Mnemonic string
	Mode     AddressingMode
	Illegal  bool

	class   class
	read    func(mc *CPU, v uint8)
	write   func(mc *CPU) uint8
	modify  func(mc *CPU, v uint8) uint8
	implied func(mc *CPU)
	branch  func(mc *CPU) bool

	seq []microStep
}

// definitions is the complete opcode table. Opcodes in the unstable set
// carry classUnstable and halt the CPU when decoded.
var definitions [256]definition

// Definition returns the table entry for an opcode. Used by the
// disassembler.
func Definition(opcode uint8) (mnemonic string, mode AddressingMode, length int) {
	defn := &definitions[opcode]
	return defn.Mnemonic, defn.Mode, 1 + defn.Mode.operandBytes()
}

func defRead(opcode uint8, mnemonic string, mode AddressingMode, f func(mc *CPU, v uint8)) {
	definitions[opcode] = definition{
		Mnemonic: mnemonic, Mode: mode, class: classRead, read: f,
		seq: readSequences[mode],
	}
}

func defWrite(opcode uint8, mnemonic string, mode AddressingMode, f func(mc *CPU) uint8) {
	definitions[opcode] = definition{
		Mnemonic: mnemonic, Mode: mode, class: classWrite, write: f,
		seq: writeSequences[mode],
	}
}

func defRMW(opcode uint8, mnemonic string, mode AddressingMode, f func(mc *CPU, v uint8) uint8) {
	definitions[opcode] = definition{
		Mnemonic: mnemonic, Mode: mode, class: classRMW, modify: f,
		seq: rmwSequences[mode],
	}
}

func defImplied(opcode uint8, mnemonic string, f func(mc *CPU)) {
	definitions[opcode] = definition{
		Mnemonic: mnemonic, Mode: Implied, class: classImplied, implied: f,
		seq: impliedSeq,
	}
}

func defAccumulator(opcode uint8, mnemonic string, f func(mc *CPU, v uint8) uint8) {
	definitions[opcode] = definition{
		Mnemonic: mnemonic, Mode: Accumulator, class: classAccumulator, modify: f,
		seq: accumulatorSeq,
	}
}

func defBranch(opcode uint8, mnemonic string, f func(mc *CPU) bool) {
	definitions[opcode] = definition{
		Mnemonic: mnemonic, Mode: Relative, class: classBranch, branch: f,
		seq: branchSeq,
	}
}

func defUnstable(opcode uint8, mnemonic string) {
	definitions[opcode] = definition{
		Mnemonic: mnemonic, Mode: Implied, Illegal: true, class: classUnstable,
	}
}

func markIllegal(opcodes ...uint8) {
	for _, op := range opcodes {
		definitions[op].Illegal = true
	}
}

func init() {
	// load and store

	lda := func(mc *CPU, v uint8) { mc.loadA(v) }
	defRead(0xa9, "LDA", Immediate, lda)
	defRead(0xa5, "LDA", ZeroPage, lda)
	defRead(0xb5, "LDA", ZeroPageX, lda)
	defRead(0xad, "LDA", Absolute, lda)
	defRead(0xbd, "LDA", AbsoluteX, lda)
	defRead(0xb9, "LDA", AbsoluteY, lda)
	defRead(0xa1, "LDA", IndirectX, lda)
	defRead(0xb1, "LDA", IndirectY, lda)

	ldx := func(mc *CPU, v uint8) { mc.loadX(v) }
	defRead(0xa2, "LDX", Immediate, ldx)
	defRead(0xa6, "LDX", ZeroPage, ldx)
	defRead(0xb6, "LDX", ZeroPageY, ldx)
	defRead(0xae, "LDX", Absolute, ldx)
	defRead(0xbe, "LDX", AbsoluteY, ldx)

	ldy := func(mc *CPU, v uint8) { mc.loadY(v) }
	defRead(0xa0, "LDY", Immediate, ldy)
	defRead(0xa4, "LDY", ZeroPage, ldy)
	defRead(0xb4, "LDY", ZeroPageX, ldy)
	defRead(0xac, "LDY", Absolute, ldy)
	defRead(0xbc, "LDY", AbsoluteX, ldy)

	sta := func(mc *CPU) uint8 { return mc.A }
	defWrite(0x85, "STA", ZeroPage, sta)
	defWrite(0x95, "STA", ZeroPageX, sta)
	defWrite(0x8d, "STA", Absolute, sta)
	defWrite(0x9d, "STA", AbsoluteX, sta)
	defWrite(0x99, "STA", AbsoluteY, sta)
	defWrite(0x81, "STA", IndirectX, sta)
	defWrite(0x91, "STA", IndirectY, sta)

	stx := func(mc *CPU) uint8 { return mc.X }
	defWrite(0x86, "STX", ZeroPage, stx)
	defWrite(0x96, "STX", ZeroPageY, stx)
	defWrite(0x8e, "STX", Absolute, stx)

	sty := func(mc *CPU) uint8 { return mc.Y }
	defWrite(0x84, "STY", ZeroPage, sty)
	defWrite(0x94, "STY", ZeroPageX, sty)
	defWrite(0x8c, "STY", Absolute, sty)

	// register transfers

	defImplied(0xaa, "TAX", func(mc *CPU) { mc.loadX(mc.A) })
	defImplied(0xa8, "TAY", func(mc *CPU) { mc.loadY(mc.A) })
	defImplied(0x8a, "TXA", func(mc *CPU) { mc.loadA(mc.X) })
	defImplied(0x98, "TYA", func(mc *CPU) { mc.loadA(mc.Y) })
	defImplied(0xba, "TSX", func(mc *CPU) { mc.loadX(mc.SP) })
	defImplied(0x9a, "TXS", func(mc *CPU) { mc.SP = mc.X })

	// stack

	definitions[0x48] = definition{Mnemonic: "PHA", Mode: Implied, class: classPush,
		write: func(mc *CPU) uint8 { return mc.A }, seq: pushSeq}
	definitions[0x08] = definition{Mnemonic: "PHP", Mode: Implied, class: classPush,
		write: func(mc *CPU) uint8 { return mc.Status.Value() | BFlag }, seq: pushSeq}
	definitions[0x68] = definition{Mnemonic: "PLA", Mode: Implied, class: classPull,
		read: func(mc *CPU, v uint8) { mc.loadA(v) }, seq: pullSeq}
	definitions[0x28] = definition{Mnemonic: "PLP", Mode: Implied, class: classPull,
		read: func(mc *CPU, v uint8) {
			old := mc.Status.InterruptDisable
			mc.Status.Load(v)
			mc.Status.Break = true
			mc.snapshotI(old)
		}, seq: pullSeq}

	// logic and arithmetic

	and := func(mc *CPU, v uint8) { mc.loadA(mc.A & v) }
	defRead(0x29, "AND", Immediate, and)
	defRead(0x25, "AND", ZeroPage, and)
	defRead(0x35, "AND", ZeroPageX, and)
	defRead(0x2d, "AND", Absolute, and)
	defRead(0x3d, "AND", AbsoluteX, and)
	defRead(0x39, "AND", AbsoluteY, and)
	defRead(0x21, "AND", IndirectX, and)
	defRead(0x31, "AND", IndirectY, and)

	ora := func(mc *CPU, v uint8) { mc.loadA(mc.A | v) }
	defRead(0x09, "ORA", Immediate, ora)
	defRead(0x05, "ORA", ZeroPage, ora)
	defRead(0x15, "ORA", ZeroPageX, ora)
	defRead(0x0d, "ORA", Absolute, ora)
	defRead(0x1d, "ORA", AbsoluteX, ora)
	defRead(0x19, "ORA", AbsoluteY, ora)
	defRead(0x01, "ORA", IndirectX, ora)
	defRead(0x11, "ORA", IndirectY, ora)

	eor := func(mc *CPU, v uint8) { mc.loadA(mc.A ^ v) }
	defRead(0x49, "EOR", Immediate, eor)
	defRead(0x45, "EOR", ZeroPage, eor)
	defRead(0x55, "EOR", ZeroPageX, eor)
	defRead(0x4d, "EOR", Absolute, eor)
	defRead(0x5d, "EOR", AbsoluteX, eor)
	defRead(0x59, "EOR", AbsoluteY, eor)
	defRead(0x41, "EOR", IndirectX, eor)
	defRead(0x51, "EOR", IndirectY, eor)

	adc := func(mc *CPU, v uint8) { mc.adc(v) }
	defRead(0x69, "ADC", Immediate, adc)
	defRead(0x65, "ADC", ZeroPage, adc)
	defRead(0x75, "ADC", ZeroPageX, adc)
	defRead(0x6d, "ADC", Absolute, adc)
	defRead(0x7d, "ADC", AbsoluteX, adc)
	defRead(0x79, "ADC", AbsoluteY, adc)
	defRead(0x61, "ADC", IndirectX, adc)
	defRead(0x71, "ADC", IndirectY, adc)

	sbc := func(mc *CPU, v uint8) { mc.sbc(v) }
	defRead(0xe9, "SBC", Immediate, sbc)
	defRead(0xe5, "SBC", ZeroPage, sbc)
	defRead(0xf5, "SBC", ZeroPageX, sbc)
	defRead(0xed, "SBC", Absolute, sbc)
	defRead(0xfd, "SBC", AbsoluteX, sbc)
	defRead(0xf9, "SBC", AbsoluteY, sbc)
	defRead(0xe1, "SBC", IndirectX, sbc)
	defRead(0xf1, "SBC", IndirectY, sbc)

	cmp := func(mc *CPU, v uint8) { mc.compare(mc.A, v) }
	defRead(0xc9, "CMP", Immediate, cmp)
	defRead(0xc5, "CMP", ZeroPage, cmp)
	defRead(0xd5, "CMP", ZeroPageX, cmp)
	defRead(0xcd, "CMP", Absolute, cmp)
	defRead(0xdd, "CMP", AbsoluteX, cmp)
	defRead(0xd9, "CMP", AbsoluteY, cmp)
	defRead(0xc1, "CMP", IndirectX, cmp)
	defRead(0xd1, "CMP", IndirectY, cmp)

	cpx := func(mc *CPU, v uint8) { mc.compare(mc.X, v) }
	defRead(0xe0, "CPX", Immediate, cpx)
	defRead(0xe4, "CPX", ZeroPage, cpx)
	defRead(0xec, "CPX", Absolute, cpx)

	cpy := func(mc *CPU, v uint8) { mc.compare(mc.Y, v) }
	defRead(0xc0, "CPY", Immediate, cpy)
	defRead(0xc4, "CPY", ZeroPage, cpy)
	defRead(0xcc, "CPY", Absolute, cpy)

	bit := func(mc *CPU, v uint8) { mc.bit(v) }
	defRead(0x24, "BIT", ZeroPage, bit)
	defRead(0x2c, "BIT", Absolute, bit)

	// increment and decrement

	inc := func(mc *CPU, v uint8) uint8 { return mc.inc(v) }
	defRMW(0xe6, "INC", ZeroPage, inc)
	defRMW(0xf6, "INC", ZeroPageX, inc)
	defRMW(0xee, "INC", Absolute, inc)
	defRMW(0xfe, "INC", AbsoluteX, inc)
	defImplied(0xe8, "INX", func(mc *CPU) { mc.loadX(mc.X + 1) })
	defImplied(0xc8, "INY", func(mc *CPU) { mc.loadY(mc.Y + 1) })

	dec := func(mc *CPU, v uint8) uint8 { return mc.dec(v) }
	defRMW(0xc6, "DEC", ZeroPage, dec)
	defRMW(0xd6, "DEC", ZeroPageX, dec)
	defRMW(0xce, "DEC", Absolute, dec)
	defRMW(0xde, "DEC", AbsoluteX, dec)
	defImplied(0xca, "DEX", func(mc *CPU) { mc.loadX(mc.X - 1) })
	defImplied(0x88, "DEY", func(mc *CPU) { mc.loadY(mc.Y - 1) })

	// shifts and rotates

	asl := func(mc *CPU, v uint8) uint8 { return mc.asl(v) }
	defAccumulator(0x0a, "ASL", asl)
	defRMW(0x06, "ASL", ZeroPage, asl)
	defRMW(0x16, "ASL", ZeroPageX, asl)
	defRMW(0x0e, "ASL", Absolute, asl)
	defRMW(0x1e, "ASL", AbsoluteX, asl)

	lsr := func(mc *CPU, v uint8) uint8 { return mc.lsr(v) }
	defAccumulator(0x4a, "LSR", lsr)
	defRMW(0x46, "LSR", ZeroPage, lsr)
	defRMW(0x56, "LSR", ZeroPageX, lsr)
	defRMW(0x4e, "LSR", Absolute, lsr)
	defRMW(0x5e, "LSR", AbsoluteX, lsr)

	rol := func(mc *CPU, v uint8) uint8 { return mc.rol(v) }
	defAccumulator(0x2a, "ROL", rol)
	defRMW(0x26, "ROL", ZeroPage, rol)
	defRMW(0x36, "ROL", ZeroPageX, rol)
	defRMW(0x2e, "ROL", Absolute, rol)
	defRMW(0x3e, "ROL", AbsoluteX, rol)

	ror := func(mc *CPU, v uint8) uint8 { return mc.ror(v) }
	defAccumulator(0x6a, "ROR", ror)
	defRMW(0x66, "ROR", ZeroPage, ror)
	defRMW(0x76, "ROR", ZeroPageX, ror)
	defRMW(0x6e, "ROR", Absolute, ror)
	defRMW(0x7e, "ROR", AbsoluteX, ror)

	// jumps and subroutines

	definitions[0x4c] = definition{Mnemonic: "JMP", Mode: Absolute, class: classJmp, seq: jmpSeq}
	definitions[0x6c] = definition{Mnemonic: "JMP", Mode: Indirect, class: classJmpInd, seq: jmpIndSeq}
	definitions[0x20] = definition{Mnemonic: "JSR", Mode: Absolute, class: classJsr, seq: jsrSeq}
	definitions[0x60] = definition{Mnemonic: "RTS", Mode: Implied, class: classRts, seq: rtsSeq}
	definitions[0x40] = definition{Mnemonic: "RTI", Mode: Implied, class: classRti, seq: rtiSeq}
	definitions[0x00] = definition{Mnemonic: "BRK", Mode: BrkMode, class: classBrk, seq: brkSeq}

	// branches

	defBranch(0x90, "BCC", func(mc *CPU) bool { return !mc.Status.Carry })
	defBranch(0xb0, "BCS", func(mc *CPU) bool { return mc.Status.Carry })
	defBranch(0xd0, "BNE", func(mc *CPU) bool { return !mc.Status.Zero })
	defBranch(0xf0, "BEQ", func(mc *CPU) bool { return mc.Status.Zero })
	defBranch(0x10, "BPL", func(mc *CPU) bool { return !mc.Status.Sign })
	defBranch(0x30, "BMI", func(mc *CPU) bool { return mc.Status.Sign })
	defBranch(0x50, "BVC", func(mc *CPU) bool { return !mc.Status.Overflow })
	defBranch(0x70, "BVS", func(mc *CPU) bool { return mc.Status.Overflow })

	// flag manipulation

	defImplied(0x18, "CLC", func(mc *CPU) { mc.Status.Carry = false })
	defImplied(0x38, "SEC", func(mc *CPU) { mc.Status.Carry = true })
	defImplied(0x58, "CLI", func(mc *CPU) {
		mc.snapshotI(mc.Status.InterruptDisable)
		mc.Status.InterruptDisable = false
	})
	defImplied(0x78, "SEI", func(mc *CPU) {
		mc.snapshotI(mc.Status.InterruptDisable)
		mc.Status.InterruptDisable = true
	})
	defImplied(0xd8, "CLD", func(mc *CPU) { mc.Status.DecimalMode = false })
	defImplied(0xf8, "SED", func(mc *CPU) { mc.Status.DecimalMode = true })
	defImplied(0xb8, "CLV", func(mc *CPU) { mc.Status.Overflow = false })

	defImplied(0xea, "NOP", func(mc *CPU) {})

	// the stable illegal opcodes

	lax := func(mc *CPU, v uint8) { mc.lax(v) }
	defRead(0xa7, "LAX", ZeroPage, lax)
	defRead(0xb7, "LAX", ZeroPageY, lax)
	defRead(0xaf, "LAX", Absolute, lax)
	defRead(0xbf, "LAX", AbsoluteY, lax)
	defRead(0xa3, "LAX", IndirectX, lax)
	defRead(0xb3, "LAX", IndirectY, lax)

	sax := func(mc *CPU) uint8 { return mc.A & mc.X }
	defWrite(0x87, "SAX", ZeroPage, sax)
	defWrite(0x97, "SAX", ZeroPageY, sax)
	defWrite(0x8f, "SAX", Absolute, sax)
	defWrite(0x83, "SAX", IndirectX, sax)

	dcp := func(mc *CPU, v uint8) uint8 { return mc.dcp(v) }
	defRMW(0xc7, "DCP", ZeroPage, dcp)
	defRMW(0xd7, "DCP", ZeroPageX, dcp)
	defRMW(0xcf, "DCP", Absolute, dcp)
	defRMW(0xdf, "DCP", AbsoluteX, dcp)
	defRMW(0xdb, "DCP", AbsoluteY, dcp)
	defRMW(0xc3, "DCP", IndirectX, dcp)
	defRMW(0xd3, "DCP", IndirectY, dcp)

	isc := func(mc *CPU, v uint8) uint8 { return mc.isc(v) }
	defRMW(0xe7, "ISC", ZeroPage, isc)
	defRMW(0xf7, "ISC", ZeroPageX, isc)
	defRMW(0xef, "ISC", Absolute, isc)
	defRMW(0xff, "ISC", AbsoluteX, isc)
	defRMW(0xfb, "ISC", AbsoluteY, isc)
	defRMW(0xe3, "ISC", IndirectX, isc)
	defRMW(0xf3, "ISC", IndirectY, isc)

	slo := func(mc *CPU, v uint8) uint8 { return mc.slo(v) }
	defRMW(0x07, "SLO", ZeroPage, slo)
	defRMW(0x17, "SLO", ZeroPageX, slo)
	defRMW(0x0f, "SLO", Absolute, slo)
	defRMW(0x1f, "SLO", AbsoluteX, slo)
	defRMW(0x1b, "SLO", AbsoluteY, slo)
	defRMW(0x03, "SLO", IndirectX, slo)
	defRMW(0x13, "SLO", IndirectY, slo)

	rla := func(mc *CPU, v uint8) uint8 { return mc.rla(v) }
	defRMW(0x27, "RLA", ZeroPage, rla)
	defRMW(0x37, "RLA", ZeroPageX, rla)
	defRMW(0x2f, "RLA", Absolute, rla)
	defRMW(0x3f, "RLA", AbsoluteX, rla)
	defRMW(0x3b, "RLA", AbsoluteY, rla)
	defRMW(0x23, "RLA", IndirectX, rla)
	defRMW(0x33, "RLA", IndirectY, rla)

	sre := func(mc *CPU, v uint8) uint8 { return mc.sre(v) }
	defRMW(0x47, "SRE", ZeroPage, sre)
	defRMW(0x57, "SRE", ZeroPageX, sre)
	defRMW(0x4f, "SRE", Absolute, sre)
	defRMW(0x5f, "SRE", AbsoluteX, sre)
	defRMW(0x5b, "SRE", AbsoluteY, sre)
	defRMW(0x43, "SRE", IndirectX, sre)
	defRMW(0x53, "SRE", IndirectY, sre)

	rra := func(mc *CPU, v uint8) uint8 { return mc.rra(v) }
	defRMW(0x67, "RRA", ZeroPage, rra)
	defRMW(0x77, "RRA", ZeroPageX, rra)
	defRMW(0x6f, "RRA", Absolute, rra)
	defRMW(0x7f, "RRA", AbsoluteX, rra)
	defRMW(0x7b, "RRA", AbsoluteY, rra)
	defRMW(0x63, "RRA", IndirectX, rra)
	defRMW(0x73, "RRA", IndirectY, rra)

	defRead(0x0b, "ANC", Immediate, func(mc *CPU, v uint8) { mc.anc(v) })
	defRead(0x2b, "ANC", Immediate, func(mc *CPU, v uint8) { mc.anc(v) })
	defRead(0x4b, "ALR", Immediate, func(mc *CPU, v uint8) { mc.alr(v) })
	defRead(0x6b, "ARR", Immediate, func(mc *CPU, v uint8) { mc.arr(v) })
	defRead(0xcb, "AXS", Immediate, func(mc *CPU, v uint8) { mc.axs(v) })
	defRead(0xeb, "SBC", Immediate, sbc)

	// NOP variants. the read variants really do perform the read,
	// including the page-cross penalty on the absolute indexed forms
	nop := func(mc *CPU, v uint8) {}
	for _, op := range []uint8{0x1a, 0x3a, 0x5a, 0x7a, 0xda, 0xfa} {
		defImplied(op, "NOP", func(mc *CPU) {})
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xc2, 0xe2} {
		defRead(op, "NOP", Immediate, nop)
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		defRead(op, "NOP", ZeroPage, nop)
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xd4, 0xf4} {
		defRead(op, "NOP", ZeroPageX, nop)
	}
	defRead(0x0c, "NOP", Absolute, nop)
	for _, op := range []uint8{0x1c, 0x3c, 0x5c, 0x7c, 0xdc, 0xfc} {
		defRead(op, "NOP", AbsoluteX, nop)
	}

	markIllegal(
		0xa7, 0xb7, 0xaf, 0xbf, 0xa3, 0xb3,
		0x87, 0x97, 0x8f, 0x83,
		0xc7, 0xd7, 0xcf, 0xdf, 0xdb, 0xc3, 0xd3,
		0xe7, 0xf7, 0xef, 0xff, 0xfb, 0xe3, 0xf3,
		0x07, 0x17, 0x0f, 0x1f, 0x1b, 0x03, 0x13,
		0x27, 0x37, 0x2f, 0x3f, 0x3b, 0x23, 0x33,
		0x47, 0x57, 0x4f, 0x5f, 0x5b, 0x43, 0x53,
		0x67, 0x77, 0x6f, 0x7f, 0x7b, 0x63, 0x73,
		0x0b, 0x2b, 0x4b, 0x6b, 0xcb, 0xeb,
		0x1a, 0x3a, 0x5a, 0x7a, 0xda, 0xfa,
		0x80, 0x82, 0x89, 0xc2, 0xe2,
		0x04, 0x44, 0x64,
		0x14, 0x34, 0x54, 0x74, 0xd4, 0xf4,
		0x0c, 0x1c, 0x3c, 0x5c, 0x7c, 0xdc, 0xfc,
	)

	// the unstable set. decoding any of these halts the CPU

	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xb2, 0xd2, 0xf2} {
		defUnstable(op, "KIL")
	}
	defUnstable(0x8b, "XAA")
	defUnstable(0x93, "AHX")
	defUnstable(0x9f, "AHX")
	defUnstable(0x9b, "TAS")
	defUnstable(0x9c, "SHY")
	defUnstable(0x9e, "SHX")
	defUnstable(0xbb, "LAS")
}
