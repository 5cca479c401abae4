package isa

import "ultrasonic.dev/sonic/state"

// DestructibleInputEntry pairs a resolved destructible input with the prior cell
// definition it consumes, exactly the "(Input, StateCell)" pairing ยง4.3 asks the VM
// context to hold for destructible_input.
type DestructibleInputEntry struct {
	Input state.Input
	Cell  state.StateCell
}

// VmContext is the runtime view over one operation's resolved inputs and declared
// outputs, passed to the main verifier script. Lock scripts during Phase 1 run
// without one. It borrows from the caller for the lifetime of
// one Codex.verify call and is never retained past it.
type VmContext struct {
	DestructibleInput  []DestructibleInputEntry
	ImmutableInput     []state.Value
	DestructibleOutput []state.StateCell
	ImmutableOutput    []state.StateData
	Witness            state.Value
}

// Len reports how many elements a category holds, used by cknxi/cknxo to test for a
// next element at the iterator's current position.
func (c *VmContext) Len(cat Category) int {
	switch cat {
	case DestructibleInput:
		return len(c.DestructibleInput)
	case ImmutableInput:
		return len(c.ImmutableInput)
	case DestructibleOutput:
		return len(c.DestructibleOutput)
	case ImmutableOutput:
		return len(c.ImmutableOutput)
	default:
		return 0
	}
}

// StateValue returns the i-th element of a category's list, or None if out of range.
// This is ยง4.3's state_value(cat, i) view operation.
func (c *VmContext) StateValue(cat Category, i int) state.Value {
	switch cat {
	case DestructibleInput:
		if i < 0 || i >= len(c.DestructibleInput) {
			return state.None
		}
		return c.DestructibleInput[i].Cell.Data
	case ImmutableInput:
		if i < 0 || i >= len(c.ImmutableInput) {
			return state.None
		}
		return c.ImmutableInput[i]
	case DestructibleOutput:
		if i < 0 || i >= len(c.DestructibleOutput) {
			return state.None
		}
		return c.DestructibleOutput[i].Data
	case ImmutableOutput:
		if i < 0 || i >= len(c.ImmutableOutput) {
			return state.None
		}
		return c.ImmutableOutput[i].Value
	default:
		return state.None
	}
}

// InputLockAux returns the StateValue released by destroying the i-th destructible
// input — its prior cell's data, now available to a script since the cell was
// consumed. This is ยง4.3's input_lock_aux(i).
func (c *VmContext) InputLockAux(i int) state.Value {
	return c.StateValue(DestructibleInput, i)
}

// InputWitness returns the consumer-supplied witness attached to the i-th
// destructible input, the auxiliary data used to satisfy its lock. This is ยง4.3's
// input_witness(i).
func (c *VmContext) InputWitness(i int) state.Value {
	if i < 0 || i >= len(c.DestructibleInput) {
		return state.None
	}
	return c.DestructibleInput[i].Input.Witness
}

// InputAuthToken returns the i-th destructible input's AuthToken and whether its
// cell carried a lock script. This is ยง4.3's input_auth_token(i).
func (c *VmContext) InputAuthToken(i int) (state.AuthToken, bool) {
	if i < 0 || i >= len(c.DestructibleInput) {
		return state.AuthToken{}, false
	}
	cell := c.DestructibleInput[i].Cell
	return cell.Auth, cell.Lock != nil
}
