package isa

import (
	"ultrasonic.dev/sonic/alu"
	"ultrasonic.dev/sonic/fe"
	"ultrasonic.dev/sonic/state"
)

// Opcodes, one byte each with zero operands, occupying the fixed range [0x80, 0x8F]
// immediately above the base VM's Ctrl and Gfa ranges (ยง6.2).
const (
	opCknxiDestructible = 0x80
	opCknxiImmutable    = 0x81
	opCknxoDestructible = 0x82
	opCknxoImmutable    = 0x83
	opLdw               = 0x84
	opLdiWitness        = 0x85
	opLdiLock           = 0x86
	opLdiAuth           = 0x87
	opLdiDestructible   = 0x88
	opLdiImmutable      = 0x89
	opLdoDestructible   = 0x8A
	opLdoImmutable      = 0x8B
	opRstiDestructible  = 0x8C
	opRstiImmutable     = 0x8D
	opRstoDestructible  = 0x8E
	opRstoImmutable     = 0x8F
)

type usonicInstr struct{ op byte }

// recoverState recovers the two opaque alu.Exec fields this package relies on. A
// type assertion failure here means the caller built an alu.Vm without wiring isa's
// extension core/context — a construction bug, not a verification outcome, so it
// panics rather than failing the script.
func recoverState(x *alu.Exec) (*UsonicCore, *VmContext) {
	return x.Ext.(*UsonicCore), x.Ctx.(*VmContext)
}

// loadStateValue fills EA..ED from v's elements, clearing any register beyond
// v.Len(), per ยง4.4's register-loading rule: "when fewer than four elements are
// present, the missing high registers are cleared."
func loadStateValue(gfa *alu.GfaCore, v state.Value) {
	for i, r := range alu.LoadRegs {
		if e, ok := v.Get(i); ok {
			gfa.Set(r, e)
		} else {
			gfa.Clr(r)
		}
	}
}

func (i usonicInstr) Exec(x *alu.Exec) alu.Outcome {
	core, ctx := recoverState(x)
	gfa := core.Gfa

	switch i.op {
	case opCknxiDestructible:
		gfa.SetCO(hasNext(core, ctx, DestructibleInput))
	case opCknxiImmutable:
		gfa.SetCO(hasNext(core, ctx, ImmutableInput))
	case opCknxoDestructible:
		gfa.SetCO(hasNext(core, ctx, DestructibleOutput))
	case opCknxoImmutable:
		gfa.SetCO(hasNext(core, ctx, ImmutableOutput))

	case opLdw:
		loadStateValue(gfa, ctx.Witness)

	case opLdiWitness:
		cur := int(core.Cursor(DestructibleInput))
		loadStateValue(gfa, ctx.InputWitness(cur))
		gfa.SetCO(cur < len(ctx.DestructibleInput))

	case opLdiLock:
		cur := int(core.Cursor(DestructibleInput))
		loadStateValue(gfa, ctx.InputLockAux(cur))
		gfa.SetCO(cur < len(ctx.DestructibleInput))

	case opLdiAuth:
		cur := int(core.Cursor(DestructibleInput))
		if cur < len(ctx.DestructibleInput) {
			tok, lockIsSome := ctx.InputAuthToken(cur)
			gfa.Set(alu.RegEA, tok.Elem())
			if lockIsSome {
				gfa.Set(alu.RegEB, fe.FromUint64(1))
			} else {
				gfa.Set(alu.RegEB, fe.Zero)
			}
			gfa.Clr(alu.RegEC)
			gfa.Clr(alu.RegED)
			gfa.SetCO(true)
		} else {
			gfa.Clr(alu.RegEA)
			gfa.Clr(alu.RegEB)
			gfa.Clr(alu.RegEC)
			gfa.Clr(alu.RegED)
			gfa.SetCO(false)
		}

	case opLdiDestructible:
		doLoad(core, gfa, ctx, DestructibleInput)
	case opLdiImmutable:
		doLoad(core, gfa, ctx, ImmutableInput)
	case opLdoDestructible:
		doLoad(core, gfa, ctx, DestructibleOutput)
	case opLdoImmutable:
		doLoad(core, gfa, ctx, ImmutableOutput)

	case opRstiDestructible:
		core.SetCursor(DestructibleInput, 0)
	case opRstiImmutable:
		core.SetCursor(ImmutableInput, 0)
	case opRstoDestructible:
		core.SetCursor(DestructibleOutput, 0)
	case opRstoImmutable:
		core.SetCursor(ImmutableOutput, 0)
	}
	return alu.Next
}

func hasNext(core *UsonicCore, ctx *VmContext, cat Category) bool {
	return int(core.Cursor(cat)) < ctx.Len(cat)
}

// doLoad implements the shared ldi/ldo semantics: load the element at the category's
// current cursor into EA..ED, advance the cursor on success, and set CO accordingly.
func doLoad(core *UsonicCore, gfa *alu.GfaCore, ctx *VmContext, cat Category) {
	cur := int(core.Cursor(cat))
	if cur >= ctx.Len(cat) {
		gfa.SetCO(false)
		return
	}
	loadStateValue(gfa, ctx.StateValue(cat, cur))
	core.Advance(cat)
	gfa.SetCO(true)
}
