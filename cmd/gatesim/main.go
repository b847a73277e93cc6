// Command gatesim loads an 8-bit program image into a simulated
// gate-level RAM and runs the clock until the END line asserts. Exit
// code 0 means END asserted and the image verified; 1 means the scripted
// input ran out without END; 2 means a fatal simulation error
// (oscillation or a true multi-driver fault) or a loaded image that does
// not match the program; 3 means bad arguments.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/xDarkicex/gatesim/asm"
	"github.com/xDarkicex/gatesim/core"
	"github.com/xDarkicex/gatesim/gates"
	"github.com/xDarkicex/gatesim/parts"
)

const (
	exitOK = iota
	exitNoEnd
	exitFatal
	exitUsage
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		wordBits   int
		addrBits   int
		maxChanges int
		strict     bool
		trace      bool
	)

	code := exitOK
	root := &cobra.Command{
		Use:   "gatesim <word>...",
		Short: "Gate-level RAM load harness",
		Long: `gatesim builds a decoded RAM out of primitive Boolean gates, clocks a
program image into it through scripted inputs, and runs the simulation
to quiescence each tick until the END line asserts HIGH.

Program words are bit strings, most significant bit first, e.g.:

  gatesim 00100010 00000001 01100000`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := asm.ParseProgram(args)
			if err != nil {
				code = exitUsage
				return err
			}

			sim := core.NewSimulation()
			sim.MaxInputChanges = maxChanges
			sim.Strict = strict
			if trace {
				sim.Log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
					Level(zerolog.TraceLevel).With().Timestamp().Logger()
			}

			ram := parts.NewRAM(sim, wordBits, addrBits)
			loader, err := parts.NewLoader(sim, ram, program)
			if err != nil {
				code = exitUsage
				return err
			}

			sinks := []*gates.SimpleOutput{loader.End}
			if err := gates.StartClock(sim, loader.Sources, sinks, nil); err != nil {
				code = exitFatal
				return err
			}

			if loader.End.Signal() != core.High {
				code = exitNoEnd
				return fmt.Errorf("scripted input exhausted on clock tick %d without END asserting", sim.Tick())
			}

			if err := parts.Verify(ram, program); err != nil {
				code = exitFatal
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "END asserted on clock tick %d; %d words loaded\n", sim.Tick(), len(program))
			for w, word := range program {
				fmt.Fprintf(out, "  %2d  %s  %s\n", w, word.Bits(), asm.Disassemble(word))
			}
			return nil
		},
	}

	root.Flags().IntVar(&wordBits, "bits", 8, "word width in bits")
	root.Flags().IntVar(&addrBits, "addr-bits", 2, "address decoder width per axis (RAM holds 4^n words)")
	root.Flags().IntVar(&maxChanges, "max-changes", core.DefaultMaxInputChanges, "per-gate per-tick input-change bound before declaring oscillation")
	root.Flags().BoolVar(&strict, "strict", false, "panic on construction-API misuse instead of warning")
	root.Flags().BoolVar(&trace, "trace", false, "trace propagation to stderr")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gatesim: %v\n", err)
		if code == exitOK {
			code = exitUsage
		}
	}
	return code
}
