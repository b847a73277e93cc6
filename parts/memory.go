package parts

import (
	"fmt"

	"github.com/xDarkicex/gatesim/core"
	"github.com/xDarkicex/gatesim/gates"
)

// MemoryCell is the four-NAND gated latch: while enable "E" is HIGH the
// data input "S" flows to "Q"; when E drops, Q freezes at the last
// level. taps copies of Q are exposed in all, as "Q" and "Q_1"..
// "Q_{taps-1}", so larger parts can route the stored bit to several
// places without an external splitter.
type MemoryCell struct {
	*gates.Compound
}

// NewMemoryCell builds and primes a gated latch with the given number of
// Q output taps (at least one, the port "Q" itself).
func NewMemoryCell(sim *core.Simulation, taps int) *MemoryCell {
	if taps < 1 {
		taps = 1
	}

	s := gates.NewSimpleInput(sim, 1, "S")
	e := gates.NewSimpleInput(sim, 2, "E")
	outs := make([]*gates.SimpleOutput, taps)
	for i := range outs {
		tag := "Q"
		if i > 0 {
			tag = fmt.Sprintf("Q_%d", i)
		}
		outs[i] = gates.NewSimpleOutput(sim, tag)
	}

	m := &MemoryCell{gates.NewCompound(sim, KindMemoryCell,
		[]*gates.SimpleInput{s, e},
		outs,
	)}

	// gateA = NAND(S, E); gateB = NAND(gateA, E);
	// Q = NAND(gateA, Q_n); Q_n = NAND(gateB, Q).
	gateA := gates.NewNand(sim, 2, 2)
	gateB := gates.NewNand(sim, 2, 1)
	gateQ := gates.NewNand(sim, 2, 1+taps)
	gateQn := gates.NewNand(sim, 2, 1)

	gates.Connect(s, 0, gateA, 0)
	gates.Connect(e, 0, gateA, 1)
	gates.Connect(e, 1, gateB, 1)
	gates.Connect(gateA, 0, gateB, 0)
	gates.Connect(gateA, 1, gateQ, 0)
	gates.Connect(gateB, 0, gateQn, 0)
	// Cross-couple Q_n first so priming settles the cell to Q LOW.
	gates.Connect(gateQn, 0, gateQ, 1)
	gates.Connect(gateQ, 0, gateQn, 1)
	for i := 0; i < taps; i++ {
		gates.Connect(gateQ, 1+i, outs[i], 0)
	}

	m.Prime()
	return m
}

// WordMemory is a bank of gated latches sharing one set line: inputs
// i_0..i_{bits-1} and "S", outputs o_0..o_{bits-1} plus the register
// taps reg_0..reg_{bits-1}. While S is HIGH the word on the inputs flows
// through; dropping S freezes it.
type WordMemory struct {
	*gates.Compound
	bits int
}

// NewWordMemory builds and primes a bits-wide memory word.
func NewWordMemory(sim *core.Simulation, bits int) *WordMemory {
	ins := busInputs(sim, bits, 1)
	set := gates.NewSimpleInput(sim, bits, "S")
	outs := append(busOutputs(sim, bits), regOutputs(sim, bits)...)

	w := &WordMemory{
		Compound: gates.NewCompound(sim, KindWordMemory, append(ins, set), outs),
		bits:     bits,
	}

	for i := 0; i < bits; i++ {
		cell := NewMemoryCell(sim, 2)
		gates.Connect(ins[i], 0, cell, gates.MustIndex(cell, "S"))
		gates.Connect(set, i, cell, gates.MustIndex(cell, "E"))
		gates.Connect(cell, gates.MustIndex(cell, "Q"), outs[i], 0)
		gates.Connect(cell, gates.MustIndex(cell, "Q_1"), outs[bits+i], 0)
	}

	w.Prime()
	return w
}

// Bits returns the word width.
func (w *WordMemory) Bits() int {
	return w.bits
}

// EnableBank gates a word with a single enable line: inputs
// i_0..i_{bits-1} and "E", outputs o_0..o_{bits-1}. Each output is
// AND(input, E).
type EnableBank struct {
	*gates.Compound
}

// NewEnableBank builds and primes a bits-wide enable.
func NewEnableBank(sim *core.Simulation, bits int) *EnableBank {
	ins := busInputs(sim, bits, 1)
	enable := gates.NewSimpleInput(sim, bits, "E")
	outs := busOutputs(sim, bits)

	b := &EnableBank{gates.NewCompound(sim, KindEnableBank, append(ins, enable), outs)}

	for i := 0; i < bits; i++ {
		and := gates.NewAnd(sim, 2, 1)
		gates.Connect(ins[i], 0, and, 0)
		gates.Connect(enable, i, and, 1)
		gates.Connect(and, 0, outs[i], 0)
	}

	b.Prime()
	return b
}

// Register is a word memory behind an output enable: inputs
// i_0..i_{bits-1}, "S" (capture) and "E" (drive the bus); outputs
// o_0..o_{bits-1} go through a tri-state buffer and float at NONE while
// E is LOW, so many registers can share one bus. The stored word is
// always visible on reg_0..reg_{bits-1} regardless of E.
type Register struct {
	*gates.Compound
	bits int
}

// NewRegister builds and primes a bits-wide register.
func NewRegister(sim *core.Simulation, bits int) *Register {
	ins := busInputs(sim, bits, 1)
	set := gates.NewSimpleInput(sim, 1, "S")
	enable := gates.NewSimpleInput(sim, 2, "E")
	outs := append(busOutputs(sim, bits), regOutputs(sim, bits)...)

	r := &Register{
		Compound: gates.NewCompound(sim, KindRegister, append(ins, set, enable), outs),
		bits:     bits,
	}

	memory := NewWordMemory(sim, bits)
	gated := NewEnableBank(sim, bits)
	buffer := gates.NewControlledBuffer(sim, bits)

	for i := 0; i < bits; i++ {
		gates.Connect(ins[i], 0, memory, i)
		gates.Connect(memory, i, gated, i)
		gates.Connect(memory, gates.MustIndex(memory, fmt.Sprintf("reg_%d", i)), outs[bits+i], 0)
		gates.Connect(gated, i, buffer, i)
		gates.Connect(buffer, i, outs[i], 0)
	}

	gates.Connect(set, 0, memory, gates.MustIndex(memory, "S"))
	gates.Connect(enable, 0, gated, gates.MustIndex(gated, "E"))
	gates.Connect(enable, 1, buffer, buffer.EnableInput())

	r.Prime()
	return r
}

// Bits returns the register width.
func (r *Register) Bits() int {
	return r.bits
}
