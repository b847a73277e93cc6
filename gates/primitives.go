package gates

import "github.com/xDarkicex/gatesim/core"

// Combinational rules for the primitive gates, applied to the reduced
// input vector. Undriven (NONE) inputs are dominated by LOW for AND/OR
// and their negations; XOR distinguishes the all-undriven case.

func computeAnd(inputs []core.Signal) core.Signal {
	for _, s := range inputs {
		if s != core.High {
			return core.Low
		}
	}
	return core.High
}

func computeOr(inputs []core.Signal) core.Signal {
	for _, s := range inputs {
		if s == core.High {
			return core.High
		}
	}
	return core.Low
}

func computeNot(inputs []core.Signal) core.Signal {
	return inputs[0].Invert()
}

func computeNand(inputs []core.Signal) core.Signal {
	return computeAnd(inputs).Invert()
}

func computeNor(inputs []core.Signal) core.Signal {
	return computeOr(inputs).Invert()
}

// computeXor yields HIGH when both driven levels are present, NONE when
// no input is driven at all, and LOW otherwise.
func computeXor(inputs []core.Signal) core.Signal {
	var sawHigh, sawLow bool
	for _, s := range inputs {
		switch s {
		case core.High:
			sawHigh = true
		case core.Low:
			sawLow = true
		}
		if sawHigh && sawLow {
			return core.High
		}
	}
	if !sawHigh && !sawLow {
		return core.None
	}
	return core.Low
}

// Not is an inverter with one input and numOut broadcast outputs.
type Not struct{ Basic }

// NewNot builds a NOT gate. An undriven input reads as LOW, so the
// initial output is HIGH.
func NewNot(sim *core.Simulation, numOut int) *Not {
	return &Not{newBasic(sim, KindNot, 1, numOut, computeNot, nil)}
}

// And outputs HIGH only while every input is HIGH.
type And struct{ Basic }

// NewAnd builds an AND gate with numIn inputs and numOut broadcast
// outputs.
func NewAnd(sim *core.Simulation, numIn, numOut int) *And {
	return &And{newBasic(sim, KindAnd, numIn, numOut, computeAnd, nil)}
}

// Or outputs HIGH while any input is HIGH.
type Or struct{ Basic }

// NewOr builds an OR gate with numIn inputs and numOut broadcast outputs.
func NewOr(sim *core.Simulation, numIn, numOut int) *Or {
	return &Or{newBasic(sim, KindOr, numIn, numOut, computeOr, nil)}
}

// Nand is the negated AND.
type Nand struct{ Basic }

// NewNand builds a NAND gate.
func NewNand(sim *core.Simulation, numIn, numOut int) *Nand {
	return &Nand{newBasic(sim, KindNand, numIn, numOut, computeNand, nil)}
}

// Nor is the negated OR.
type Nor struct{ Basic }

// NewNor builds a NOR gate.
func NewNor(sim *core.Simulation, numIn, numOut int) *Nor {
	return &Nor{newBasic(sim, KindNor, numIn, numOut, computeNor, nil)}
}

// Xor outputs HIGH while both a HIGH and a LOW are present among its
// inputs, and NONE while no input is driven.
type Xor struct{ Basic }

// NewXor builds an XOR gate.
func NewXor(sim *core.Simulation, numIn, numOut int) *Xor {
	return &Xor{newBasic(sim, KindXor, numIn, numOut, computeXor, nil)}
}
