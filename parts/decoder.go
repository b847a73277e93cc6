package parts

import (
	"fmt"

	"github.com/xDarkicex/gatesim/core"
	"github.com/xDarkicex/gatesim/gates"
)

// Decoder is the n-to-2^n one-hot decoder: inputs i_0..i_{n-1} (bit 0
// least significant), outputs o_0..o_{2^n-1}, with exactly the output
// whose index matches the input word HIGH.
type Decoder struct {
	*gates.Compound
	inputs int
}

// NewDecoder builds and primes a decoder over `inputs` address bits.
func NewDecoder(sim *core.Simulation, inputs int) *Decoder {
	if inputs <= 0 {
		panic(fmt.Sprintf("parts: decoder needs at least one input, got %d", inputs))
	}
	rows := 1 << uint(inputs)

	// Each input bit feeds its inverter once and each of the rows/2
	// AND gates that want it asserted; each inverter feeds the rows/2
	// AND gates that want the bit clear.
	ins := busInputs(sim, inputs, rows/2+1)
	outs := busOutputs(sim, rows)

	d := &Decoder{
		Compound: gates.NewCompound(sim, KindDecoder, ins, outs),
		inputs:   inputs,
	}

	nots := make([]*gates.Not, inputs)
	for i := range nots {
		nots[i] = gates.NewNot(sim, rows/2)
		gates.Connect(ins[i], 0, nots[i], 0)
	}

	nextIn := make([]int, inputs)
	nextNot := make([]int, inputs)
	for i := range nextIn {
		nextIn[i] = 1
	}

	for row := 0; row < rows; row++ {
		and := gates.NewAnd(sim, inputs, 1)
		for bit := 0; bit < inputs; bit++ {
			if row&(1<<uint(bit)) != 0 {
				gates.Connect(ins[bit], nextIn[bit], and, bit)
				nextIn[bit]++
			} else {
				gates.Connect(nots[bit], nextNot[bit], and, bit)
				nextNot[bit]++
			}
		}
		gates.Connect(and, 0, outs[row], 0)
	}

	d.Prime()
	return d
}

// Rows returns the number of one-hot outputs.
func (d *Decoder) Rows() int {
	return 1 << uint(d.inputs)
}
