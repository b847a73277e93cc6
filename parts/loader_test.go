package parts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/gatesim/asm"
	"github.com/xDarkicex/gatesim/core"
	"github.com/xDarkicex/gatesim/gates"
)

// =======================
// LOAD HARNESS TESTS
// =======================

// TestLoaderWritesProgramIntoRAM is the end-to-end harness run: scripted
// inputs clock a program image into the decoded RAM, the END sink
// asserts on the final tick, and the inspection taps read the image
// back.
func TestLoaderWritesProgramIntoRAM(t *testing.T) {
	sim := core.NewSimulation()

	ram := NewRAM(sim, 8, 1)
	program := []asm.Word{
		asm.DATA(asm.R1),
		asm.Word(0x02),
		asm.CLF(),
	}

	loader, err := NewLoader(sim, ram, program)
	require.NoError(t, err)

	err = gates.StartClock(sim, loader.Sources, []*gates.SimpleOutput{loader.End}, nil)
	require.NoError(t, err)

	assert.Equal(t, core.High, loader.End.Signal(), "END must assert after the last word")
	require.NoError(t, Verify(ram, program))

	// Unwritten words stay clear.
	for _, sig := range ram.WordTap(3) {
		assert.Equal(t, core.Low, sig)
	}
}

func TestLoaderRejectsOversizedProgram(t *testing.T) {
	sim := core.NewSimulation()
	ram := NewRAM(sim, 4, 1)

	program := make([]asm.Word, ram.Words()+1)
	_, err := NewLoader(sim, ram, program)
	require.Error(t, err)
}

func TestLoaderRejectsEmptyProgram(t *testing.T) {
	sim := core.NewSimulation()
	ram := NewRAM(sim, 4, 1)

	_, err := NewLoader(sim, ram, nil)
	require.Error(t, err)
}
