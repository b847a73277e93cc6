package parts

import (
	"github.com/xDarkicex/gatesim/core"
	"github.com/xDarkicex/gatesim/gates"
)

// Stepper is the ring counter that sequences control lines: one "CLK"
// input and steps outputs o_0..o_{steps-1}, exactly one HIGH at a time,
// advancing on each full clock cycle and wrapping from the last step
// back to the first.
//
// The interior is a chain of gated latches clocked alternately from the
// true and inverted clock, with the final latch's taps fed back to
// restart the ring, following the classic stepper construction.
type Stepper struct {
	*gates.Compound
	steps int
}

// NewStepper builds and primes a stepper with the given number of steps.
func NewStepper(sim *core.Simulation, steps int) *Stepper {
	if steps < 2 {
		panic("parts: stepper needs at least two steps")
	}

	clk := gates.NewSimpleInput(sim, 2, "CLK")
	outs := busOutputs(sim, steps)

	s := &Stepper{
		Compound: gates.NewCompound(sim, KindStepper, []*gates.SimpleInput{clk}, outs),
		steps:    steps,
	}

	// Two latches per step; even latches are clocked from the true
	// clock, odd from the inverted one. The last latch exposes extra
	// taps that close the ring.
	cells := make([]*MemoryCell, 0, 2*steps)
	outputAnds := make([]*gates.And, 0, steps-1)
	outputNots := make([]*gates.Not, steps)
	for i := 0; i < steps; i++ {
		outputNots[i] = gates.NewNot(sim, 1)
		if i != 0 {
			outputAnds = append(outputAnds, gates.NewAnd(sim, 2, 1))
			cells = append(cells, NewMemoryCell(sim, 1), NewMemoryCell(sim, 3))
		}
	}
	cells = append(cells, NewMemoryCell(sim, 1), NewMemoryCell(sim, 5))

	outputOr := gates.NewOr(sim, 2, 1)
	clkTopOr := gates.NewOr(sim, 2, steps)
	clkBottomOr := gates.NewOr(sim, 2, steps)
	clkBottomNot := gates.NewNot(sim, 1)
	firstCellNot := gates.NewNot(sim, 1)

	// Bias the first output high until the ring feedback takes over
	// during priming.
	outputOr.UpdateInput(core.GateInput{Index: 1, Signal: core.High, Sender: core.ZeroID})

	gates.Connect(clk, 0, clkTopOr, 1)
	gates.Connect(clk, 1, clkBottomNot, 0)
	gates.Connect(clkBottomNot, 0, clkBottomOr, 1)
	gates.Connect(firstCellNot, 0, cells[0], gates.MustIndex(cells[0], "S"))

	last := len(cells) - 1
	for i := 0; i < last; i++ {
		gates.Connect(cells[i], gates.MustIndex(cells[i], "Q"), cells[i+1], gates.MustIndex(cells[i+1], "S"))

		if i%2 == 0 {
			gates.Connect(clkTopOr, i/2, cells[i], gates.MustIndex(cells[i], "E"))
			continue
		}

		step := i / 2
		gates.Connect(clkBottomOr, step, cells[i], gates.MustIndex(cells[i], "E"))
		gates.Connect(cells[i], gates.MustIndex(cells[i], "Q_1"), outputNots[step], 0)
		gates.Connect(cells[i], gates.MustIndex(cells[i], "Q_2"), outputAnds[step], 0)

		if step == 0 {
			gates.Connect(outputOr, 0, outs[0], 0)
			gates.Connect(outputNots[0], 0, outputOr, 1)
		} else {
			gates.Connect(outputAnds[step-1], 0, outs[step], 0)
			gates.Connect(outputNots[step], 0, outputAnds[step-1], 1)
		}
	}

	gates.Connect(outputAnds[steps-2], 0, outs[steps-1], 0)
	gates.Connect(outputNots[steps-1], 0, outputAnds[steps-2], 1)
	gates.Connect(clkBottomOr, steps-1, cells[last], gates.MustIndex(cells[last], "E"))
	gates.Connect(cells[last], gates.MustIndex(cells[last], "Q"), outputNots[steps-1], 0)
	gates.Connect(cells[last], gates.MustIndex(cells[last], "Q_1"), outputOr, 0)
	gates.Connect(cells[last], gates.MustIndex(cells[last], "Q_2"), firstCellNot, 0)
	gates.Connect(cells[last], gates.MustIndex(cells[last], "Q_3"), clkTopOr, 0)
	gates.Connect(cells[last], gates.MustIndex(cells[last], "Q_4"), clkBottomOr, 0)

	s.Prime()
	return s
}

// Steps returns the number of sequenced control lines.
func (s *Stepper) Steps() int {
	return s.steps
}
