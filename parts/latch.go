package parts

import (
	"github.com/xDarkicex/gatesim/core"
	"github.com/xDarkicex/gatesim/gates"
)

// SRLatch is the classic pair of cross-coupled NOR gates. Ports: inputs
// "S" and "R", outputs "Q" and "Q_n". S HIGH sets Q HIGH; R HIGH resets
// it; both LOW holds. Both HIGH is the forbidden input combination and
// leaves the latch in whichever state the wiring order established.
type SRLatch struct {
	*gates.Compound
}

// NewSRLatch builds and primes an SR latch.
func NewSRLatch(sim *core.Simulation) *SRLatch {
	s := gates.NewSimpleInput(sim, 1, "S")
	r := gates.NewSimpleInput(sim, 1, "R")
	q := gates.NewSimpleOutput(sim, "Q")
	qn := gates.NewSimpleOutput(sim, "Q_n")

	l := &SRLatch{gates.NewCompound(sim, KindSRLatch,
		[]*gates.SimpleInput{s, r},
		[]*gates.SimpleOutput{q, qn},
	)}

	// Q = NOR(R, Q_n); Q_n = NOR(S, Q). Each NOR broadcasts to its
	// cross-coupled partner and to its output adapter.
	norQ := gates.NewNor(sim, 2, 2)
	norQn := gates.NewNor(sim, 2, 2)

	gates.Connect(r, 0, norQ, 0)
	gates.Connect(s, 0, norQn, 0)
	// Cross-couple Q_n first so priming settles the latch reset.
	gates.Connect(norQn, 0, norQ, 1)
	gates.Connect(norQ, 0, norQn, 1)
	gates.Connect(norQ, 1, q, 0)
	gates.Connect(norQn, 1, qn, 0)

	l.Prime()
	return l
}

// ActiveLowSRLatch is the NAND twin of SRLatch: inputs "S" and "R" are
// active LOW, and LOW/LOW is the forbidden combination. The intermediate
// LOW/LOW state does appear transiently inside clocked parts and is
// deliberately not rejected.
type ActiveLowSRLatch struct {
	*gates.Compound
}

// NewActiveLowSRLatch builds and primes an active-low SR latch.
func NewActiveLowSRLatch(sim *core.Simulation) *ActiveLowSRLatch {
	s := gates.NewSimpleInput(sim, 1, "S")
	r := gates.NewSimpleInput(sim, 1, "R")
	q := gates.NewSimpleOutput(sim, "Q")
	qn := gates.NewSimpleOutput(sim, "Q_n")

	l := &ActiveLowSRLatch{gates.NewCompound(sim, KindActiveLowSRLatch,
		[]*gates.SimpleInput{s, r},
		[]*gates.SimpleOutput{q, qn},
	)}

	// Q = NAND(S, Q_n); Q_n = NAND(R, Q).
	nandQ := gates.NewNand(sim, 2, 2)
	nandQn := gates.NewNand(sim, 2, 2)

	gates.Connect(s, 0, nandQ, 0)
	gates.Connect(r, 0, nandQn, 0)
	gates.Connect(nandQ, 0, nandQn, 1)
	gates.Connect(nandQn, 0, nandQ, 1)
	gates.Connect(nandQ, 1, q, 0)
	gates.Connect(nandQn, 1, qn, 0)

	l.Prime()
	return l
}
