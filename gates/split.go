package gates

import (
	"fmt"

	"github.com/xDarkicex/gatesim/core"
)

// Splitter provides fan-out without violating the one-target-per-output
// rule: each of its numIn inputs is copied to a bank of fanOut outputs.
// Like ControlledBuffer, its output ports are not a broadcast of a
// single level.
type Splitter struct {
	Basic
	fanOut int
}

// NewSplitter builds a splitter with numIn inputs and numIn*fanOut
// outputs; input i feeds outputs [i*fanOut, (i+1)*fanOut).
func NewSplitter(sim *core.Simulation, numIn, fanOut int) *Splitter {
	if fanOut <= 0 {
		panic(fmt.Sprintf("gates: splitter fan-out must be positive, got %d", fanOut))
	}
	low := core.Low
	return &Splitter{
		Basic:  newBasic(sim, KindSplitter, numIn, numIn*fanOut, nil, &low),
		fanOut: fanOut,
	}
}

// OutputIndex returns the output port carrying branch `branch` of input
// `input`.
func (s *Splitter) OutputIndex(input, branch int) int {
	return input*s.fanOut + branch
}

// Fetch copies each resolved input level onto its bank of outputs.
func (s *Splitter) Fetch() ([]OutputState, error) {
	sigs, err := s.resolve()
	if err != nil {
		return nil, err
	}
	for i := range s.outputs {
		s.outputs[i].Signal = sigs[i/s.fanOut]
	}
	return s.snapshot(), nil
}

func (s *Splitter) connectOutput(output int, target Gate, targetInput int) core.Signal {
	sig := s.outputs[output].Signal
	if cur, ok := s.inputs[output/s.fanOut].Resolve(); ok {
		sig = cur
	}
	s.setTarget(output, target, targetInput, sig)
	return sig
}

// ControlledBuffer is the tri-state buffer behind every shared bus line:
// bits data inputs, one enable input, bits outputs. While enable is HIGH
// the data passes through; otherwise every output floats at NONE, so the
// downstream fan-in maps reduce cleanly to whichever buffer is enabled.
type ControlledBuffer struct {
	Basic
	bits int
}

// NewControlledBuffer builds a tri-state buffer for a bits-wide bus. The
// enable input is the last port, addressable by the tag "E".
func NewControlledBuffer(sim *core.Simulation, bits int) *ControlledBuffer {
	none := core.None
	return &ControlledBuffer{
		Basic: newBasic(sim, KindControlledBuffer, bits+1, bits, nil, &none),
		bits:  bits,
	}
}

// EnableInput returns the index of the enable port.
func (c *ControlledBuffer) EnableInput() int {
	return c.bits
}

// Fetch passes the data inputs through while enabled and floats every
// output otherwise.
func (c *ControlledBuffer) Fetch() ([]OutputState, error) {
	sigs, err := c.resolve()
	if err != nil {
		return nil, err
	}
	enabled := sigs[c.bits] == core.High
	for i := 0; i < c.bits; i++ {
		if enabled {
			c.outputs[i].Signal = sigs[i]
		} else {
			c.outputs[i].Signal = core.None
		}
	}
	return c.snapshot(), nil
}

func (c *ControlledBuffer) connectOutput(output int, target Gate, targetInput int) core.Signal {
	sig := c.outputs[output].Signal
	if sigs, _, ok := core.ResolveAll(c.inputs); ok {
		if sigs[c.bits] == core.High {
			sig = sigs[output]
		} else {
			sig = core.None
		}
	}
	c.setTarget(output, target, targetInput, sig)
	return sig
}

// IndexOfTag resolves "E" to the enable port alongside the positional
// names.
func (c *ControlledBuffer) IndexOfTag(tag string) (int, error) {
	if tag == "E" {
		return c.EnableInput(), nil
	}
	return c.Basic.IndexOfTag(tag)
}
