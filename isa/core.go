// Package isa implements the USONIC instruction-set extension: the four iterator
// registers and their microcode (UsonicCore), the sixteen opcode-only instructions
// that load and traverse an operation's I/O (ยง4.4), and the VmContext that gives them
// something to iterate over (ยง4.3). It composes with package alu's Ctrl and Gfa
// instruction families through alu.ExtDecoder, the same seam the base VM exposes to
// any instruction-set extension per ยง6.2.
package isa

import "ultrasonic.dev/sonic/alu"

// Category names one of the four I/O lists an operation carries, and doubles as the
// index into UsonicCore's iterator registers (UI[Category]).
type Category uint8

const (
	DestructibleInput Category = iota
	ImmutableInput
	DestructibleOutput
	ImmutableOutput

	categoryCount
)

func (c Category) String() string {
	switch c {
	case DestructibleInput:
		return "destructible-in"
	case ImmutableInput:
		return "immutable-in"
	case DestructibleOutput:
		return "destructible-out"
	case ImmutableOutput:
		return "immutable-out"
	default:
		return "unknown-category"
	}
}

// UsonicCore extends the base field-arithmetic core with four u16 iterator registers,
// one per Category, as described in ยง4.3. It is the Ext value threaded through
// alu.Exec for every instruction this package defines.
type UsonicCore struct {
	Gfa *alu.GfaCore
	ui  [categoryCount]uint16
}

// NewUsonicCore wraps an already-constructed field-arithmetic core.
func NewUsonicCore(gfa *alu.GfaCore) *UsonicCore {
	return &UsonicCore{Gfa: gfa}
}

// Reset zeroes every iterator register and clears the underlying Gfa core, matching
// the base VM's reset() contract in ยง4.3: "all UI return to 0; registers exposed to
// the base arithmetic ISA are also reset."
func (c *UsonicCore) Reset() {
	for i := range c.ui {
		c.ui[i] = 0
	}
	c.Gfa.Reset()
}

// Cursor returns the current iterator position for a category.
func (c *UsonicCore) Cursor(cat Category) uint16 { return c.ui[cat] }

// SetCursor assigns a category's iterator position directly; used by rsti/rsto.
func (c *UsonicCore) SetCursor(cat Category, v uint16) { c.ui[cat] = v }

// Advance increments a category's iterator position by one, called after a
// successful ld* over that category.
func (c *UsonicCore) Advance(cat Category) { c.ui[cat]++ }
