package parts

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/xDarkicex/gatesim/asm"
	"github.com/xDarkicex/gatesim/core"
	"github.com/xDarkicex/gatesim/gates"
)

// ticksPerWord is the load cadence: one tick to capture the address, one
// to write the word, one to settle before the next address.
const ticksPerWord = 3

// Loader drives a program image into a RAM through scripted inputs, the
// same way the CPU's load mode clocks words in from outside: address
// lines plus SA on the first tick of each word, data lines plus S on the
// second, a settle tick, and finally one tick asserting the END sink.
type Loader struct {
	// Sources seed the propagation worklist each tick.
	Sources []gates.Gate

	// End reads HIGH on the tick after the last word is written.
	End *gates.SimpleOutput
}

// NewLoader wires scripted inputs onto the RAM's address, data, SA and S
// ports for the given program. The program must fit the RAM.
func NewLoader(sim *core.Simulation, ram *RAM, program []asm.Word) (*Loader, error) {
	if len(program) == 0 {
		return nil, errors.New("parts: cannot load an empty program")
	}
	if len(program) > ram.Words() {
		return nil, errors.Errorf("parts: program of %d words does not fit RAM of %d words", len(program), ram.Words())
	}

	ticks := ticksPerWord*len(program) + 1
	addrLines := ram.AddressLines()

	scripts := make(map[string][]core.Signal)
	hold := func(tag string) []core.Signal {
		if _, ok := scripts[tag]; !ok {
			scripts[tag] = make([]core.Signal, ticks)
			for i := range scripts[tag] {
				scripts[tag][i] = core.Low
			}
		}
		return scripts[tag]
	}

	for w, word := range program {
		base := ticksPerWord * w

		for l := 0; l < addrLines; l++ {
			if w&(1<<uint(l)) != 0 {
				line := hold(fmt.Sprintf("addr_%d", l))
				for t := 0; t < ticksPerWord; t++ {
					line[base+t] = core.High
				}
			}
		}
		hold("SA")[base] = core.High

		sigs := word.Signals(ram.Bits())
		for b, sig := range sigs {
			if sig == core.High {
				line := hold(fmt.Sprintf("i_%d", b))
				line[base+1] = core.High
				line[base+2] = core.High
			}
		}
		hold("S")[base+1] = core.High
	}

	// Every driven line needs a full-length script so no source runs dry
	// before the END marker fires. The order here also fixes the seed
	// order of the worklist, keeping runs reproducible.
	ordered := []string{"SA", "S"}
	for l := 0; l < addrLines; l++ {
		ordered = append(ordered, fmt.Sprintf("addr_%d", l))
	}
	for b := 0; b < ram.Bits(); b++ {
		ordered = append(ordered, fmt.Sprintf("i_%d", b))
	}
	for _, tag := range ordered {
		hold(tag)
	}

	endScript := make([]core.Signal, ticks)
	for i := range endScript {
		endScript[i] = core.Low
	}
	endScript[ticks-1] = core.High

	l := &Loader{End: gates.NewSimpleOutput(sim, gates.EndTag)}

	for _, tag := range ordered {
		in := gates.NewAutomaticInput(sim, scripts[tag], 1, "load_"+tag)
		gates.Connect(in, 0, ram, gates.MustIndex(ram, tag))
		l.Sources = append(l.Sources, in)
	}

	endIn := gates.NewAutomaticInput(sim, endScript, 1, "load_end")
	gates.Connect(endIn, 0, l.End, 0)
	l.Sources = append(l.Sources, endIn)

	return l, nil
}

// Verify compares the RAM's inspection taps against the program after a
// load run.
func Verify(ram *RAM, program []asm.Word) error {
	for w, word := range program {
		want := word.Signals(ram.Bits())
		got := ram.WordTap(w)
		for b := range want {
			if got[b] != want[b] {
				return errors.Errorf("parts: RAM word %d bit %d is %s, want %s", w, b, got[b], want[b])
			}
		}
	}
	return nil
}
