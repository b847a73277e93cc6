package gates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/gatesim/core"
)

func poke(t *testing.T, g Gate, input int, sig core.Signal) {
	t.Helper()
	g.UpdateInput(core.GateInput{Index: input, Signal: sig, Sender: core.ZeroID})
}

func fetchOne(t *testing.T, g Gate) core.Signal {
	t.Helper()
	outs, err := g.Fetch()
	require.NoError(t, err)
	require.NotEmpty(t, outs)
	return outs[0].Signal
}

// =======================
// COMBINATIONAL RULE TESTS
// =======================

func TestPrimitiveTruthTables(t *testing.T) {
	sim := core.NewSimulation()

	tests := []struct {
		name   string
		make   func() Gate
		inputs []core.Signal
		want   core.Signal
	}{
		{"NOT low", func() Gate { return NewNot(sim, 1) }, []core.Signal{core.Low}, core.High},
		{"NOT high", func() Gate { return NewNot(sim, 1) }, []core.Signal{core.High}, core.Low},
		{"NOT none reads as low", func() Gate { return NewNot(sim, 1) }, []core.Signal{core.None}, core.High},

		{"AND both high", func() Gate { return NewAnd(sim, 2, 1) }, []core.Signal{core.High, core.High}, core.High},
		{"AND one low", func() Gate { return NewAnd(sim, 2, 1) }, []core.Signal{core.High, core.Low}, core.Low},
		{"AND none dominated by low", func() Gate { return NewAnd(sim, 2, 1) }, []core.Signal{core.None, core.High}, core.Low},

		{"OR both low", func() Gate { return NewOr(sim, 2, 1) }, []core.Signal{core.Low, core.Low}, core.Low},
		{"OR one high", func() Gate { return NewOr(sim, 2, 1) }, []core.Signal{core.Low, core.High}, core.High},
		{"OR none and high", func() Gate { return NewOr(sim, 2, 1) }, []core.Signal{core.None, core.High}, core.High},

		{"NAND both high", func() Gate { return NewNand(sim, 2, 1) }, []core.Signal{core.High, core.High}, core.Low},
		{"NAND one low", func() Gate { return NewNand(sim, 2, 1) }, []core.Signal{core.High, core.Low}, core.High},

		{"NOR both low", func() Gate { return NewNor(sim, 2, 1) }, []core.Signal{core.Low, core.Low}, core.High},
		{"NOR one high", func() Gate { return NewNor(sim, 2, 1) }, []core.Signal{core.High, core.Low}, core.Low},

		{"XOR mixed", func() Gate { return NewXor(sim, 2, 1) }, []core.Signal{core.High, core.Low}, core.High},
		{"XOR both high", func() Gate { return NewXor(sim, 2, 1) }, []core.Signal{core.High, core.High}, core.Low},
		{"XOR high and none", func() Gate { return NewXor(sim, 2, 1) }, []core.Signal{core.High, core.None}, core.Low},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.make()
			for i, sig := range tt.inputs {
				poke(t, g, i, sig)
			}
			assert.Equal(t, tt.want, fetchOne(t, g))
		})
	}
}

// TestXorAllNoneYieldsNone pins the open question: XOR with no driven
// input at all floats, it does not read LOW.
func TestXorAllNoneYieldsNone(t *testing.T) {
	sim := core.NewSimulation()
	x := NewXor(sim, 2, 1)
	poke(t, x, 0, core.None)
	poke(t, x, 1, core.None)
	assert.Equal(t, core.None, fetchOne(t, x))
}

// TestCombinationalPurity re-fetches a primitive with unchanged inputs
// and expects the identical output: no hidden state.
func TestCombinationalPurity(t *testing.T) {
	sim := core.NewSimulation()
	g := NewNand(sim, 3, 1)
	poke(t, g, 0, core.High)
	poke(t, g, 1, core.High)
	poke(t, g, 2, core.Low)

	first := fetchOne(t, g)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, fetchOne(t, g))
	}
}

// TestBroadcast checks that a multi-output primitive emits the same
// level on every port.
func TestBroadcast(t *testing.T) {
	sim := core.NewSimulation()
	g := NewOr(sim, 2, 4)
	poke(t, g, 0, core.High)

	outs, err := g.Fetch()
	require.NoError(t, err)
	require.Len(t, outs, 4)
	for _, out := range outs {
		assert.Equal(t, core.High, out.Signal)
	}
}

// =======================
// WIRING TESTS
// =======================

// TestConnectPropagatesImmediately: wiring is not silent — the target
// sees the driver's current level as soon as the connection is made.
func TestConnectPropagatesImmediately(t *testing.T) {
	sim := core.NewSimulation()
	n := NewNot(sim, 1)
	sink := NewSimpleOutput(sim, "probe")

	// A fresh NOT with a floating input computes HIGH.
	Connect(n, 0, sink, 0)
	assert.Equal(t, core.High, sink.Signal())
}

func TestConnectedOutputMirroredInFanIn(t *testing.T) {
	sim := core.NewSimulation()
	src := NewOr(sim, 2, 1)
	dst := NewAnd(sim, 2, 1)

	Connect(src, 0, dst, 0)

	// The zero-id placeholder is evicted by the real driver.
	res := dst.UpdateInput(core.GateInput{Index: 0, Signal: core.Low, Sender: src.ID()})
	assert.False(t, res.Updated, "connect already delivered LOW")
}

func TestReconnectRefusedNonStrict(t *testing.T) {
	sim := core.NewSimulation()
	src := NewOr(sim, 2, 1)
	a := NewAnd(sim, 2, 1)
	b := NewAnd(sim, 2, 1)

	Connect(src, 0, a, 0)
	Connect(src, 0, b, 0) // refused with a warning

	outs, err := src.Fetch()
	require.NoError(t, err)
	require.True(t, outs[0].Connected())
	assert.Equal(t, a.ID(), outs[0].Target.ID(), "first connection must survive")
}

func TestReconnectPanicsStrict(t *testing.T) {
	sim := core.NewSimulation()
	sim.Strict = true
	src := NewOr(sim, 2, 1)
	a := NewAnd(sim, 2, 1)
	b := NewAnd(sim, 2, 1)

	Connect(src, 0, a, 0)
	assert.PanicsWithError(t,
		(&core.InvariantError{
			Op:      "gates.Connect",
			Gate:    Info(src),
			Message: "output 0 is already connected",
		}).Error(),
		func() { Connect(src, 0, b, 0) },
	)
}

func TestDisconnectRestoresPlaceholder(t *testing.T) {
	sim := core.NewSimulation()
	in := NewAutomaticInput(sim, []core.Signal{core.High}, 1, "script")
	and := NewAnd(sim, 2, 1)

	Connect(in, 0, and, 0)
	in.Disconnect(0)

	// With the scripted driver gone the input falls back to the
	// placeholder LOW, so the AND reads (LOW, LOW).
	assert.Equal(t, core.Low, fetchOne(t, and))

	outs, err := in.Fetch()
	require.NoError(t, err)
	assert.False(t, outs[0].Connected())
}

func TestPositionalTagLookup(t *testing.T) {
	sim := core.NewSimulation()
	g := NewAnd(sim, 3, 2)

	i, err := g.IndexOfTag("i_2")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	o, err := g.IndexOfTag("o_1")
	require.NoError(t, err)
	assert.Equal(t, 1, o)

	_, err = g.IndexOfTag("i_3")
	assert.Error(t, err)
	_, err = g.IndexOfTag("bogus")
	assert.Error(t, err)
}

// =======================
// SPLITTER AND TRI-STATE TESTS
// =======================

func TestSplitterCopiesPerBank(t *testing.T) {
	sim := core.NewSimulation()
	s := NewSplitter(sim, 2, 3)
	poke(t, s, 0, core.High)
	poke(t, s, 1, core.Low)

	outs, err := s.Fetch()
	require.NoError(t, err)
	require.Len(t, outs, 6)
	for branch := 0; branch < 3; branch++ {
		assert.Equal(t, core.High, outs[s.OutputIndex(0, branch)].Signal)
		assert.Equal(t, core.Low, outs[s.OutputIndex(1, branch)].Signal)
	}
}

func TestControlledBufferFloatsWhenDisabled(t *testing.T) {
	sim := core.NewSimulation()
	b := NewControlledBuffer(sim, 2)
	poke(t, b, 0, core.High)
	poke(t, b, 1, core.Low)

	outs, err := b.Fetch()
	require.NoError(t, err)
	assert.Equal(t, core.None, outs[0].Signal)
	assert.Equal(t, core.None, outs[1].Signal)

	poke(t, b, b.EnableInput(), core.High)
	outs, err = b.Fetch()
	require.NoError(t, err)
	assert.Equal(t, core.High, outs[0].Signal)
	assert.Equal(t, core.Low, outs[1].Signal)
}

// =======================
// INPUT SOURCE TESTS
// =======================

func TestClockToggles(t *testing.T) {
	sim := core.NewSimulation()
	c := NewClock(sim, 1, "CLK")

	assert.Equal(t, core.High, fetchOne(t, c))
	assert.Equal(t, core.Low, fetchOne(t, c))
	assert.Equal(t, core.High, fetchOne(t, c))
}

func TestAutomaticInputPlaysScriptThenExhausts(t *testing.T) {
	sim := core.NewSimulation()
	a := NewAutomaticInput(sim, []core.Signal{core.High, core.Low}, 1, "script")

	assert.Equal(t, core.High, fetchOne(t, a))
	assert.Equal(t, core.Low, fetchOne(t, a))

	_, err := a.Fetch()
	require.ErrorIs(t, err, core.ErrInputExhausted)
}

func TestAutomaticInputChainsByAppending(t *testing.T) {
	sim := core.NewSimulation()
	a := NewAutomaticInput(sim, nil, 1, "script")

	a.UpdateInput(core.GateInput{Signal: core.High, Sender: core.ZeroID})
	require.Equal(t, 1, a.Remaining())
	assert.Equal(t, core.High, fetchOne(t, a))
}

func TestContentionSurfacesFromFetch(t *testing.T) {
	sim := core.NewSimulation()
	g := NewOr(sim, 1, 1)

	g.UpdateInput(core.GateInput{Index: 0, Signal: core.High, Sender: core.UniqueID(101)})
	g.UpdateInput(core.GateInput{Index: 0, Signal: core.Low, Sender: core.UniqueID(102)})

	_, err := g.Fetch()
	var contention *core.ContentionError
	require.ErrorAs(t, err, &contention)
	assert.Equal(t, 0, contention.Input)
}
