// Package parts is the compound-gate library built on the simulation
// core: latches, memory cells, registers, decoders, a decoded RAM
// array, adders and a ring-counter stepper. Every part is a compound
// gate — an interior network of primitives behind boundary adapters —
// and satisfies the same contract as a primitive, so parts nest and mix
// freely with raw gates.
package parts

import (
	"fmt"

	"github.com/xDarkicex/gatesim/core"
	"github.com/xDarkicex/gatesim/gates"
)

// Part kinds, used in diagnostics.
const (
	KindSRLatch          gates.Kind = "SR_LATCH"
	KindActiveLowSRLatch gates.Kind = "ACTIVE_LOW_SR_LATCH"
	KindMemoryCell       gates.Kind = "MEMORY_CELL"
	KindWordMemory       gates.Kind = "WORD_MEMORY"
	KindEnableBank       gates.Kind = "ENABLE_BANK"
	KindRegister         gates.Kind = "REGISTER"
	KindDecoder          gates.Kind = "DECODER"
	KindRAMCell          gates.Kind = "RAM_CELL"
	KindRAM              gates.Kind = "RAM_UNIT"
	KindHalfAdder        gates.Kind = "HALF_ADDER"
	KindFullAdder        gates.Kind = "FULL_ADDER"
	KindWordAdder        gates.Kind = "WORD_ADDER"
	KindStepper          gates.Kind = "STEPPER"
)

// busInputs builds input adapters i_0..i_{bits-1}, each with fanOut
// interior outputs.
func busInputs(sim *core.Simulation, bits, fanOut int) []*gates.SimpleInput {
	ins := make([]*gates.SimpleInput, bits)
	for i := range ins {
		ins[i] = gates.NewSimpleInput(sim, fanOut, fmt.Sprintf("i_%d", i))
	}
	return ins
}

// busOutputs builds output adapters o_0..o_{bits-1}.
func busOutputs(sim *core.Simulation, bits int) []*gates.SimpleOutput {
	outs := make([]*gates.SimpleOutput, bits)
	for i := range outs {
		outs[i] = gates.NewSimpleOutput(sim, fmt.Sprintf("o_%d", i))
	}
	return outs
}

// regOutputs builds the always-visible register taps reg_0..reg_{bits-1}
// that bus-buffered parts expose alongside their tri-state bus outputs.
func regOutputs(sim *core.Simulation, bits int) []*gates.SimpleOutput {
	outs := make([]*gates.SimpleOutput, bits)
	for i := range outs {
		outs[i] = gates.NewSimpleOutput(sim, fmt.Sprintf("reg_%d", i))
	}
	return outs
}
