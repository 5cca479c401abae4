package sonic

import (
	"ultrasonic.dev/sonic/alu"
	"ultrasonic.dev/sonic/ids"
	"ultrasonic.dev/sonic/isa"
	"ultrasonic.dev/sonic/state"
)

// lockWitnessRegs are the four registers a destructible input's witness is loaded
// into ahead of its lock script, per ยง4.5 step 2b: "load up to 4 witness field
// elements into E2..E5".
var lockWitnessRegs = [4]alu.RegE{alu.RegE2, alu.RegE3, alu.RegE4, alu.RegE5}

// Verify runs the two-phase algorithm of ยง4.5: it binds the operation to
// contractId, resolves and unlocks every destructible input, resolves every
// immutable input, then runs the operation's verifier entry point over the full I/O
// context. It returns a VerifiedOperation on success or a *CallError on failure;
// verify never panics except via package alu's executor, which aborts when a
// library cannot be resolved at all or when the resolver returns a library whose id
// differs from the requested one (the fatal assertion of ยง4.6).
func (c Codex) Verify(contractId ids.ContractId, op Operation, mem Memory, repo LibRepo) (*VerifiedOperation, error) {
	if op.ContractId != contractId {
		return nil, errWrongContract(contractId, op.ContractId)
	}

	resolve := alu.Resolver(repo.GetLib)

	readOnce := make([]isa.DestructibleInputEntry, 0, len(op.DestructibleIn))
	for _, in := range op.DestructibleIn {
		cell, ok := mem.Destructible(in.Addr)
		if !ok {
			return nil, errNoReadOnceInput(in.Addr)
		}
		if cell.Lock != nil {
			if err := c.runLock(in, cell, resolve); err != nil {
				return nil, err
			}
		}
		readOnce = append(readOnce, isa.DestructibleInputEntry{Input: in, Cell: cell})
	}

	immutableIn := make([]state.Value, 0, len(op.ImmutableIn))
	for _, addr := range op.ImmutableIn {
		v, ok := mem.Immutable(addr)
		if !ok {
			return nil, errNoImmutableInput(addr)
		}
		immutableIn = append(immutableIn, v)
	}

	entry, ok := c.Verifiers[op.CallId]
	if !ok {
		return nil, errNotFound(op.CallId)
	}

	ctx := &isa.VmContext{
		DestructibleInput:  readOnce,
		ImmutableInput:     immutableIn,
		DestructibleOutput: op.DestructibleOut,
		ImmutableOutput:    op.ImmutableOut,
		Witness:            op.Witness,
	}
	gfa := alu.NewGfaCore(alu.GfaConfig{FieldOrder: c.FieldOrder})
	core := isa.NewUsonicCore(gfa)
	vm := alu.NewVm(gfa, resolve, isa.Decode, c.VerificationConfig)

	if status := vm.Exec(entry, core, ctx); status != alu.StatusOk {
		e1, ok := gfa.Get(alu.RegE1)
		if !ok {
			return nil, errScript(nil)
		}
		return nil, errScript(&e1)
	}

	return &VerifiedOperation{opid: op.Id(), operation: op}, nil
}

// runLock instantiates a fresh input VM per ยง4.5 step 2b: E1 holds the cell's auth
// token, E2..E5 hold up to four witness elements, and *in.Addr's cell lock runs
// against it. The input VM does not carry a USONIC VmContext — lock scripts gate
// access through the base registers only, never by iterating operation I/O — so any
// USONIC opcode a lock script contained would deterministically fail as reserved.
func (c Codex) runLock(in state.Input, cell state.StateCell, resolve alu.Resolver) error {
	gfa := alu.NewGfaCore(alu.GfaConfig{FieldOrder: c.FieldOrder})
	gfa.Set(alu.RegE1, cell.Auth.Elem())
	for i, e := range in.Witness.Elements() {
		if i >= len(lockWitnessRegs) {
			break
		}
		gfa.Set(lockWitnessRegs[i], e)
	}

	vm := alu.NewVm(gfa, resolve, nil, c.InputConfig)
	if status := vm.Exec(*cell.Lock, nil, nil); status != alu.StatusOk {
		e8, ok := gfa.Get(alu.RegE8)
		if !ok {
			return errLock(nil)
		}
		return errLock(&e8)
	}
	return nil
}
