// Package asm implements the 8-bit instruction encoding consumed by the
// CPU-shaped collaborators of the simulation core, plus the bit-string
// form program images are written in. Words are little-endian on the
// bus: bit 0 is the least significant.
package asm

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/xDarkicex/gatesim/core"
)

// Word is one 8-bit instruction or datum.
type Word uint8

// ALU operations, selected by bits 6..4 of an ALU instruction.
type ALUOp uint8

const (
	ADD ALUOp = iota
	SHL
	SHR
	NOT
	AND
	OR
	XOR
	CMP
)

var aluNames = [...]string{"ADD", "SHL", "SHR", "NOT", "AND", "OR", "XOR", "CMP"}

func (op ALUOp) String() string {
	if int(op) < len(aluNames) {
		return aluNames[op]
	}
	return fmt.Sprintf("ALUOp(%d)", uint8(op))
}

// Register selectors for the four general-purpose registers.
type Reg uint8

const (
	R0 Reg = iota
	R1
	R2
	R3
)

// Condition flags for conditional jumps, matching the czae bit order of
// the JMPIF encoding.
const (
	FlagC uint8 = 1 << 3 // carry
	FlagA uint8 = 1 << 2 // a larger
	FlagE uint8 = 1 << 1 // equal
	FlagZ uint8 = 1 << 0 // zero
)

// ALU encodes an ALU operation on registers a and b: 1 ooo aabb.
func ALU(op ALUOp, a, b Reg) Word {
	return Word(0x80 | uint8(op)<<4 | uint8(a)<<2 | uint8(b))
}

// LD encodes a load from RAM[addr] into dst: 0000 aadd.
func LD(addr, dst Reg) Word {
	return Word(uint8(addr)<<2 | uint8(dst))
}

// ST encodes a store of src into RAM[addr]: 0001 aass.
func ST(addr, src Reg) Word {
	return Word(0x10 | uint8(addr)<<2 | uint8(src))
}

// DATA encodes an immediate load into dst; the next word is the datum:
// 0010 00dd.
func DATA(dst Reg) Word {
	return Word(0x20 | uint8(dst))
}

// JMPR encodes a jump to the address held in reg: 0011 00rr.
func JMPR(reg Reg) Word {
	return Word(0x30 | uint8(reg))
}

// JMP encodes a jump to the address in the next word: 0100 0000.
func JMP() Word {
	return Word(0x40)
}

// JMPIF encodes a conditional jump on the given flag set; the next word
// is the target: 0101 czae.
func JMPIF(flags uint8) Word {
	return Word(0x50 | flags&0x0f)
}

// CLF encodes clear-flags: 0110 0000.
func CLF() Word {
	return Word(0x60)
}

// Bits renders the word as an 8-character bit string, most significant
// bit first, the format program images are written in.
func (w Word) Bits() string {
	var b strings.Builder
	for i := 7; i >= 0; i-- {
		if w&(1<<uint(i)) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Signals expands the word to bus levels over `bits` lines, bit 0 least
// significant. Widths beyond the word pad with LOW.
func (w Word) Signals(bits int) []core.Signal {
	sigs := make([]core.Signal, bits)
	for i := range sigs {
		sigs[i] = core.Low
		if i < 8 && w&(1<<uint(i)) != 0 {
			sigs[i] = core.High
		}
	}
	return sigs
}

// ParseWord reads a bit string (most significant bit first) of up to 8
// digits.
func ParseWord(s string) (Word, error) {
	if s == "" || len(s) > 8 {
		return 0, errors.Errorf("asm: word %q must be 1 to 8 binary digits", s)
	}
	var w Word
	for _, c := range s {
		switch c {
		case '0':
			w <<= 1
		case '1':
			w = w<<1 | 1
		default:
			return 0, errors.Errorf("asm: word %q contains non-binary digit %q", s, c)
		}
	}
	return w, nil
}

// ParseProgram reads one bit-string word per element, skipping blank
// entries, as the CLI accepts program images.
func ParseProgram(words []string) ([]Word, error) {
	prog := make([]Word, 0, len(words))
	for i, s := range words {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		w, err := ParseWord(s)
		if err != nil {
			return nil, errors.Wrapf(err, "program word %d", i)
		}
		prog = append(prog, w)
	}
	if len(prog) == 0 {
		return nil, errors.New("asm: program is empty")
	}
	return prog, nil
}

// Disassemble renders the word as the mnemonic the encoding table in the
// external-interface contract defines. Data and address operand words
// following DATA/JMP/JMPIF cannot be distinguished from instructions and
// render as their value.
func Disassemble(w Word) string {
	switch {
	case w&0x80 != 0:
		op := ALUOp(w >> 4 & 0x7)
		return fmt.Sprintf("%s R%d, R%d", op, w>>2&0x3, w&0x3)
	case w&0xf0 == 0x00:
		return fmt.Sprintf("LD R%d, R%d", w>>2&0x3, w&0x3)
	case w&0xf0 == 0x10:
		return fmt.Sprintf("ST R%d, R%d", w>>2&0x3, w&0x3)
	case w&0xfc == 0x20:
		return fmt.Sprintf("DATA R%d", w&0x3)
	case w&0xfc == 0x30:
		return fmt.Sprintf("JMPR R%d", w&0x3)
	case w == 0x40:
		return "JMP"
	case w&0xf0 == 0x50:
		flags := []byte("....")
		if w&Word(FlagC) != 0 {
			flags[0] = 'C'
		}
		if w&Word(FlagA) != 0 {
			flags[1] = 'A'
		}
		if w&Word(FlagE) != 0 {
			flags[2] = 'E'
		}
		if w&Word(FlagZ) != 0 {
			flags[3] = 'Z'
		}
		return fmt.Sprintf("JMPIF %s", flags)
	case w == 0x60:
		return "CLF"
	default:
		return fmt.Sprintf("0x%02x", uint8(w))
	}
}
