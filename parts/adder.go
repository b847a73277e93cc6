package parts

import (
	"fmt"

	"github.com/xDarkicex/gatesim/core"
	"github.com/xDarkicex/gatesim/gates"
)

// HalfAdder adds two bits: inputs "A" and "B", outputs "S" (sum, XOR)
// and "C" (carry, AND).
type HalfAdder struct {
	*gates.Compound
}

// NewHalfAdder builds and primes a half adder.
func NewHalfAdder(sim *core.Simulation) *HalfAdder {
	a := gates.NewSimpleInput(sim, 2, "A")
	b := gates.NewSimpleInput(sim, 2, "B")
	sum := gates.NewSimpleOutput(sim, "S")
	carry := gates.NewSimpleOutput(sim, "C")

	h := &HalfAdder{gates.NewCompound(sim, KindHalfAdder,
		[]*gates.SimpleInput{a, b},
		[]*gates.SimpleOutput{sum, carry},
	)}

	xor := gates.NewXor(sim, 2, 1)
	and := gates.NewAnd(sim, 2, 1)

	gates.Connect(a, 0, xor, 0)
	gates.Connect(a, 1, and, 0)
	gates.Connect(b, 0, xor, 1)
	gates.Connect(b, 1, and, 1)
	gates.Connect(xor, 0, sum, 0)
	gates.Connect(and, 0, carry, 0)

	h.Prime()
	return h
}

// FullAdder adds two bits and a carry-in: inputs "A", "B", "C_IN";
// outputs "S" and "C_OUT". Built from two half adders and an OR.
type FullAdder struct {
	*gates.Compound
}

// NewFullAdder builds and primes a full adder.
func NewFullAdder(sim *core.Simulation) *FullAdder {
	a := gates.NewSimpleInput(sim, 1, "A")
	b := gates.NewSimpleInput(sim, 1, "B")
	cin := gates.NewSimpleInput(sim, 1, "C_IN")
	sum := gates.NewSimpleOutput(sim, "S")
	cout := gates.NewSimpleOutput(sim, "C_OUT")

	f := &FullAdder{gates.NewCompound(sim, KindFullAdder,
		[]*gates.SimpleInput{a, b, cin},
		[]*gates.SimpleOutput{sum, cout},
	)}

	first := NewHalfAdder(sim)
	second := NewHalfAdder(sim)
	or := gates.NewOr(sim, 2, 1)

	gates.Connect(a, 0, first, gates.MustIndex(first, "A"))
	gates.Connect(b, 0, first, gates.MustIndex(first, "B"))
	gates.Connect(first, gates.MustIndex(first, "S"), second, gates.MustIndex(second, "A"))
	gates.Connect(cin, 0, second, gates.MustIndex(second, "B"))
	gates.Connect(second, gates.MustIndex(second, "S"), f.OutputAdapter(0), 0)
	gates.Connect(second, gates.MustIndex(second, "C"), or, 0)
	gates.Connect(first, gates.MustIndex(first, "C"), or, 1)
	gates.Connect(or, 0, f.OutputAdapter(1), 0)

	f.Prime()
	return f
}

// WordAdder is the ripple-carry adder over two words: inputs a_0..,
// b_0.. and "C_IN"; outputs o_0.. and "C_OUT". Bit 0 is least
// significant.
type WordAdder struct {
	*gates.Compound
	bits int
}

// NewWordAdder builds and primes a bits-wide ripple-carry adder.
func NewWordAdder(sim *core.Simulation, bits int) *WordAdder {
	as := make([]*gates.SimpleInput, bits)
	bs := make([]*gates.SimpleInput, bits)
	for i := 0; i < bits; i++ {
		as[i] = gates.NewSimpleInput(sim, 1, fmt.Sprintf("a_%d", i))
		bs[i] = gates.NewSimpleInput(sim, 1, fmt.Sprintf("b_%d", i))
	}
	cin := gates.NewSimpleInput(sim, 1, "C_IN")

	outs := busOutputs(sim, bits)
	outs = append(outs, gates.NewSimpleOutput(sim, "C_OUT"))

	ins := append(append([]*gates.SimpleInput{}, as...), bs...)
	ins = append(ins, cin)

	w := &WordAdder{
		Compound: gates.NewCompound(sim, KindWordAdder, ins, outs),
		bits:     bits,
	}

	var carry gates.Gate = cin
	carryOut := 0
	for i := 0; i < bits; i++ {
		fa := NewFullAdder(sim)
		gates.Connect(as[i], 0, fa, gates.MustIndex(fa, "A"))
		gates.Connect(bs[i], 0, fa, gates.MustIndex(fa, "B"))
		gates.Connect(carry, carryOut, fa, gates.MustIndex(fa, "C_IN"))
		gates.Connect(fa, gates.MustIndex(fa, "S"), outs[i], 0)
		carry, carryOut = fa, gates.MustIndex(fa, "C_OUT")
	}
	gates.Connect(carry, carryOut, outs[bits], 0)

	w.Prime()
	return w
}

// Bits returns the operand width.
func (w *WordAdder) Bits() int {
	return w.bits
}
