// Package main demonstrates usage examples for the gatesim module:
// building networks out of primitive gates, running them to quiescence,
// composing compound parts, and driving a scripted load into RAM.
package main

import (
	"fmt"

	"github.com/xDarkicex/gatesim"
	"github.com/xDarkicex/gatesim/asm"
	"github.com/xDarkicex/gatesim/core"
	"github.com/xDarkicex/gatesim/gates"
	"github.com/xDarkicex/gatesim/parts"
)

// ExampleScriptedCircuit wires a scripted input through a NOT gate into
// an observable sink and runs the clock until the script runs out.
func ExampleScriptedCircuit() {
	fmt.Println("=== Scripted Circuit ===")

	sim := gatesim.NewSimulation()

	script := gates.NewAutomaticInput(sim, []core.Signal{core.Low, core.High, core.Low}, 1, "script")
	invert := gates.NewNot(sim, 1)
	probe := gates.NewSimpleOutput(sim, "probe")

	gates.Connect(script, 0, invert, 0)
	gates.Connect(invert, 0, probe, 0)

	err := gates.StartClock(sim, []gates.Gate{script}, []*gates.SimpleOutput{probe},
		func(_ []gates.TickInput, sinks []*gates.SimpleOutput) {
			fmt.Printf("tick %d: probe=%s\n", sim.Tick(), sinks[0].Signal())
		})
	if err != nil {
		fmt.Printf("clock stopped with error: %v\n", err)
	}

	fmt.Println()
}

// ExampleSRLatch drives the set and reset lines of an SR latch and
// samples both outputs after each quiescent tick.
func ExampleSRLatch() {
	fmt.Println("=== SR Latch ===")

	sim := gatesim.NewSimulation()
	latch := parts.NewSRLatch(sim)

	set := gates.NewAutomaticInput(sim, []core.Signal{core.High, core.Low, core.Low}, 1, "set")
	reset := gates.NewAutomaticInput(sim, []core.Signal{core.Low, core.Low, core.High}, 1, "reset")
	q := gates.NewSimpleOutput(sim, "Q")
	qn := gates.NewSimpleOutput(sim, "Q_n")

	gates.Connect(set, 0, latch, gates.MustIndex(latch, "S"))
	gates.Connect(reset, 0, latch, gates.MustIndex(latch, "R"))
	gates.Connect(latch, gates.MustIndex(latch, "Q"), q, 0)
	gates.Connect(latch, gates.MustIndex(latch, "Q_n"), qn, 0)

	_ = gates.StartClock(sim, []gates.Gate{set, reset}, []*gates.SimpleOutput{q, qn},
		func(_ []gates.TickInput, _ []*gates.SimpleOutput) {
			fmt.Printf("tick %d: Q=%s Q_n=%s\n", sim.Tick(), q.Signal(), qn.Signal())
		})

	fmt.Println()
}

// ExampleSharedBus shows tri-state buffers resolving a shared line: the
// enabled buffer wins and the disabled one floats at NONE.
func ExampleSharedBus() {
	fmt.Println("=== Shared Bus ===")

	sim := gatesim.NewSimulation()

	bufA := gates.NewControlledBuffer(sim, 1)
	bufB := gates.NewControlledBuffer(sim, 1)
	line := gates.NewOr(sim, 1, 1)
	probe := gates.NewSimpleOutput(sim, "bus")

	gates.Connect(bufA, 0, line, 0)
	gates.Connect(bufB, 0, line, 0)
	gates.Connect(line, 0, probe, 0)

	// Buffer A drives HIGH, buffer B is disabled.
	bufA.UpdateInput(core.GateInput{Index: 0, Signal: core.High, Sender: core.ZeroID})
	bufA.UpdateInput(core.GateInput{Index: bufA.EnableInput(), Signal: core.High, Sender: core.ZeroID})

	sim.AdvanceTick()
	if _, err := gates.Run(sim, []gates.Gate{bufA, bufB}, []*gates.SimpleOutput{probe}, true, nil); err != nil {
		fmt.Printf("run failed: %v\n", err)
		return
	}
	fmt.Printf("bus reads %s\n", probe.Signal())

	fmt.Println()
}

// ExampleRAMLoad builds a small decoded RAM, clocks a program image into
// it through scripted inputs, and reads it back from the inspection
// taps.
func ExampleRAMLoad() {
	fmt.Println("=== RAM Load ===")

	sim := gatesim.NewSimulation()
	ram := parts.NewRAM(sim, 8, 1)

	program := []asm.Word{
		asm.DATA(asm.R0),
		asm.Word(0x2a),
		asm.CLF(),
	}

	loader, err := parts.NewLoader(sim, ram, program)
	if err != nil {
		fmt.Printf("loader: %v\n", err)
		return
	}

	if err := gates.StartClock(sim, loader.Sources, []*gates.SimpleOutput{loader.End}, nil); err != nil {
		fmt.Printf("clock: %v\n", err)
		return
	}

	fmt.Printf("END=%s after %d ticks\n", loader.End.Signal(), sim.Tick())
	for w, word := range program {
		fmt.Printf("  word %d: %s  %s\n", w, word.Bits(), asm.Disassemble(word))
	}
	if err := parts.Verify(ram, program); err != nil {
		fmt.Printf("verify: %v\n", err)
	}

	fmt.Println()
}

// main runs all the examples to demonstrate the simulator capabilities.
func main() {
	fmt.Println("Gatesim Examples")
	fmt.Println("================")
	fmt.Println()

	ExampleScriptedCircuit()
	ExampleSRLatch()
	ExampleSharedBus()
	ExampleRAMLoad()

	fmt.Println("All examples completed successfully!")
}
