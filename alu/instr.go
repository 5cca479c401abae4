package alu

import "ultrasonic.dev/sonic/fe"

// OutcomeKind classifies what the executor should do after an instruction runs.
type OutcomeKind uint8

const (
	// OutcomeNext continues at the following instruction.
	OutcomeNext OutcomeKind = iota
	// OutcomeJump transfers control to a byte offset within the currently executing
	// library.
	OutcomeJump
	// OutcomeHaltOk stops the program successfully.
	OutcomeHaltOk
	// OutcomeHaltFail stops the program unsuccessfully.
	OutcomeHaltFail
)

// Outcome is returned by every instruction's Exec and drives the executor loop.
type Outcome struct {
	Kind OutcomeKind
	Jump uint16
}

// Next, HaltOk and HaltFail are the three fixed outcomes; JumpTo builds the
// variable one.
var (
	Next    = Outcome{Kind: OutcomeNext}
	HaltOk  = Outcome{Kind: OutcomeHaltOk}
	HaltFail = Outcome{Kind: OutcomeHaltFail}
)

// JumpTo builds an Outcome that transfers control to the given byte offset.
func JumpTo(off uint16) Outcome { return Outcome{Kind: OutcomeJump, Jump: off} }

// Exec bundles everything an instruction needs to run a single step: the shared
// field-arithmetic register file, an ISA-extension core (e.g. *isa.UsonicCore, opaque
// to this package), and a per-call context (e.g. *isa.VmContext, also opaque). Ctrl
// and Gfa instructions only ever touch Core; Usonic instructions use Ext and Ctx.
type Exec struct {
	Core *GfaCore
	Ext  any
	Ctx  any
}

// Instruction is anything the executor can run: control-flow, field-arithmetic,
// an ISA extension's own instructions, or the reserved fallback.
type Instruction interface {
	Exec(x *Exec) Outcome
}

// ExtDecoder decodes one instruction belonging to an ISA extension (opcodes in the
// range [extRangeStart, 0xFF]). It returns ok=false if the opcode does not belong to
// the extension, in which case the generic decoder falls back to ReservedInstr.
type ExtDecoder func(code []byte, pos int, opcode byte) (next int, instr Instruction, ok bool, err error)

// ExtRangeStart is the first opcode reserved for ISA extensions; Ctrl and Gfa never
// use opcodes at or above this value, matching ยง6.2's "USONIC's opcodes occupy a fixed
// contiguous range above the ranges of the control-flow and field-arithmetic ISAs".
const ExtRangeStart = 0x80

// Ctrl opcodes.
const (
	opNop = 0x00
	opStop = 0x01
	opChk  = 0x02
	opJmp  = 0x03
	opJif  = 0x04
	opJnif = 0x05
)

// Gfa (field-arithmetic) opcodes.
const (
	opPut  = 0x10
	opClr  = 0x11
	opMov  = 0x12
	opEq   = 0x13
	opTest = 0x14
	opNot  = 0x15
	opAdd  = 0x16
	opMul  = 0x17
	opNeg  = 0x18
)

type ctrlInstr struct {
	op  byte
	arg uint16
}

func (i ctrlInstr) Exec(x *Exec) Outcome {
	switch i.op {
	case opNop:
		return Next
	case opStop:
		return HaltOk
	case opChk:
		if !x.Core.CO() {
			x.Core.ck = true
			return HaltFail
		}
		return Next
	case opJmp:
		return JumpTo(i.arg)
	case opJif:
		if x.Core.CO() {
			return JumpTo(i.arg)
		}
		return Next
	case opJnif:
		if !x.Core.CO() {
			return JumpTo(i.arg)
		}
		return Next
	default:
		return HaltFail
	}
}

type gfaInstr struct {
	op       byte
	a, b     RegE
	imm      fe.Elem
}

func (i gfaInstr) Exec(x *Exec) Outcome {
	switch i.op {
	case opPut:
		x.Core.Set(i.a, i.imm)
	case opClr:
		x.Core.Clr(i.a)
	case opMov:
		v, ok := x.Core.Get(i.b)
		if !ok {
			x.Core.Clr(i.a)
		} else {
			x.Core.Set(i.a, v)
		}
	case opEq:
		av, aok := x.Core.Get(i.a)
		bv, bok := x.Core.Get(i.b)
		x.Core.SetCO(aok == bok && av.Equal(bv))
	case opTest:
		v, ok := x.Core.Get(i.a)
		x.Core.SetCO(ok && !v.IsZero())
	case opNot:
		x.Core.SetCO(!x.Core.CO())
	case opAdd:
		x.Core.Add(i.a, i.b)
	case opMul:
		x.Core.Mul(i.a, i.b)
	case opNeg:
		x.Core.Neg(i.a)
	}
	return Next
}

// ReservedInstr is what any opcode outside the Ctrl, Gfa and registered extension
// ranges decodes to. Per ยง6.2 it fails deterministically whenever it would execute.
type ReservedInstr struct{ Opcode byte }

func (ReservedInstr) Exec(*Exec) Outcome { return HaltFail }
