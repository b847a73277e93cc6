package parts

import (
	"fmt"

	"github.com/xDarkicex/gatesim/core"
	"github.com/xDarkicex/gatesim/gates"
)

// RAMCell is one addressable word in a decoded RAM grid: a Register
// selected by the conjunction of a horizontal and a vertical select
// line. Ports: data inputs i_0..i_{bits-1}; selects "H" and "V"; "S"
// (write), "E" (read onto the bus), "R" (force-write regardless of
// selection); bus outputs o_* (tri-state) and taps reg_*.
type RAMCell struct {
	*gates.Compound
}

// NewRAMCell builds and primes one RAM word.
func NewRAMCell(sim *core.Simulation, bits int) *RAMCell {
	ins := busInputs(sim, bits, 1)
	h := gates.NewSimpleInput(sim, 1, "H")
	v := gates.NewSimpleInput(sim, 1, "V")
	set := gates.NewSimpleInput(sim, 1, "S")
	enable := gates.NewSimpleInput(sim, 1, "E")
	reset := gates.NewSimpleInput(sim, 1, "R")
	outs := append(busOutputs(sim, bits), regOutputs(sim, bits)...)

	c := &RAMCell{gates.NewCompound(sim, KindRAMCell,
		append(ins, h, v, set, enable, reset),
		outs,
	)}

	register := NewRegister(sim, bits)
	selected := gates.NewAnd(sim, 2, 2)
	writeAnd := gates.NewAnd(sim, 2, 1)
	readAnd := gates.NewAnd(sim, 2, 2)
	writeOr := gates.NewOr(sim, 2, 1)
	buffer := gates.NewControlledBuffer(sim, bits)

	gates.Connect(h, 0, selected, 0)
	gates.Connect(v, 0, selected, 1)
	gates.Connect(set, 0, writeAnd, 1)
	gates.Connect(enable, 0, readAnd, 1)
	gates.Connect(reset, 0, writeOr, 0)
	gates.Connect(selected, 0, writeAnd, 0)
	gates.Connect(selected, 1, readAnd, 0)
	gates.Connect(writeAnd, 0, writeOr, 1)
	gates.Connect(writeOr, 0, register, gates.MustIndex(register, "S"))
	gates.Connect(readAnd, 0, register, gates.MustIndex(register, "E"))
	gates.Connect(readAnd, 1, buffer, buffer.EnableInput())

	for i := 0; i < bits; i++ {
		gates.Connect(ins[i], 0, register, i)
		gates.Connect(register, i, buffer, i)
		gates.Connect(register, gates.MustIndex(register, fmt.Sprintf("reg_%d", i)), outs[bits+i], 0)
		gates.Connect(buffer, i, outs[i], 0)
	}

	c.Prime()
	return c
}

// RAM is the two-dimensional decoded array of register-backed words
// behind a memory-address register (spec'd by the grid the original CPU
// uses). With 2*addrBits address lines it holds 4^addrBits words of
// `bits` bits each.
//
// Ports: data inputs i_0..i_{bits-1}; address lines addr_0..; "SA"
// (capture the address), "S" (write the addressed word), "E" (read it
// onto the bus), "R" (write every word's register regardless of
// selection; Loader does not drive it); bus outputs o_0.. plus one
// cell_<w>_bit_<b> tap per stored bit for inspection.
type RAM struct {
	*gates.Compound
	bits     int
	addrBits int
}

// CellTap names the inspection output for one stored bit.
func CellTap(word, bit int) string {
	return fmt.Sprintf("cell_%d_bit_%d", word, bit)
}

// NewRAM builds and primes a RAM of 4^addrBits words of `bits` bits.
func NewRAM(sim *core.Simulation, bits, addrBits int) *RAM {
	rowCells := 1 << uint(addrBits)
	words := rowCells * rowCells

	ins := busInputs(sim, bits, words)
	addr := make([]*gates.SimpleInput, 2*addrBits)
	for i := range addr {
		addr[i] = gates.NewSimpleInput(sim, 1, fmt.Sprintf("addr_%d", i))
	}
	setAddr := gates.NewSimpleInput(sim, 1, "SA")
	set := gates.NewSimpleInput(sim, words, "S")
	enable := gates.NewSimpleInput(sim, words+1, "E")
	reset := gates.NewSimpleInput(sim, words, "R")

	outs := busOutputs(sim, bits)
	for w := 0; w < words; w++ {
		for b := 0; b < bits; b++ {
			outs = append(outs, gates.NewSimpleOutput(sim, CellTap(w, b)))
		}
	}

	allIns := append(append(append(ins, addr...), setAddr, set, enable), reset)
	r := &RAM{
		Compound: gates.NewCompound(sim, KindRAM, allIns, outs),
		bits:     bits,
		addrBits: addrBits,
	}

	addressReg := NewWordMemory(sim, 2*addrBits)
	vertical := NewDecoder(sim, addrBits)
	verticalSplit := gates.NewSplitter(sim, rowCells, rowCells)
	horizontal := NewDecoder(sim, addrBits)
	horizontalSplit := gates.NewSplitter(sim, rowCells, rowCells)
	buffer := gates.NewControlledBuffer(sim, bits)

	cells := make([]*RAMCell, words)
	for w := range cells {
		cells[w] = NewRAMCell(sim, bits)
		cells[w].SetTag(fmt.Sprintf("ram_cell_%d", w))
	}

	gates.Connect(setAddr, 0, addressReg, gates.MustIndex(addressReg, "S"))
	for i := 0; i < 2*addrBits; i++ {
		gates.Connect(addr[i], 0, addressReg, i)
	}

	// Low half of the captured address selects the column, high half the
	// row.
	for i := 0; i < addrBits; i++ {
		gates.Connect(addressReg, i, vertical, i)
		gates.Connect(addressReg, addrBits+i, horizontal, i)
	}

	for i := 0; i < rowCells; i++ {
		gates.Connect(horizontal, i, horizontalSplit, i)
		gates.Connect(vertical, i, verticalSplit, i)
	}

	for i := 0; i < rowCells; i++ {
		for j := 0; j < rowCells; j++ {
			cell := cells[i*rowCells+j]
			gates.Connect(horizontalSplit, horizontalSplit.OutputIndex(i, j), cell, gates.MustIndex(cell, "H"))

			cell = cells[j*rowCells+i]
			gates.Connect(verticalSplit, verticalSplit.OutputIndex(i, j), cell, gates.MustIndex(cell, "V"))
		}
	}

	for w, cell := range cells {
		gates.Connect(enable, w, cell, gates.MustIndex(cell, "E"))
		gates.Connect(set, w, cell, gates.MustIndex(cell, "S"))
		gates.Connect(reset, w, cell, gates.MustIndex(cell, "R"))

		for b := 0; b < bits; b++ {
			gates.Connect(ins[b], w, cell, b)
			gates.Connect(cell, b, buffer, b)
			gates.Connect(cell, gates.MustIndex(cell, fmt.Sprintf("reg_%d", b)), r.OutputAdapter(gates.MustIndex(r, CellTap(w, b))), 0)
		}
	}

	gates.Connect(enable, words, buffer, buffer.EnableInput())
	for b := 0; b < bits; b++ {
		gates.Connect(buffer, b, r.OutputAdapter(b), 0)
	}

	r.Prime()
	return r
}

// Bits returns the word width.
func (r *RAM) Bits() int {
	return r.bits
}

// Words returns the number of addressable words.
func (r *RAM) Words() int {
	row := 1 << uint(r.addrBits)
	return row * row
}

// AddressLines returns the number of addr_* input ports.
func (r *RAM) AddressLines() int {
	return 2 * r.addrBits
}

// WordTap reads the stored word at the given cell index from the
// inspection taps, bit 0 least significant.
func (r *RAM) WordTap(word int) []core.Signal {
	sigs := make([]core.Signal, r.bits)
	for b := 0; b < r.bits; b++ {
		sigs[b] = r.OutputAdapter(gates.MustIndex(r, CellTap(word, b))).Signal()
	}
	return sigs
}
