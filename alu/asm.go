package alu

import "ultrasonic.dev/sonic/fe"

// Asm accumulates raw bytecode for the Ctrl and Gfa ISAs. ISA extensions (package isa)
// define their own append methods operating on the same buffer convention: a single
// growing []byte plus a Bytes() escape hatch, so assembler helpers compose freely
// across packages without either one needing to import the other's instruction types.
type Asm struct {
	code []byte
}

// NewAsm starts an empty assembler.
func NewAsm() *Asm { return &Asm{} }

// Bytes returns the assembled bytecode.
func (a *Asm) Bytes() []byte { return a.code }

// Len reports the current offset, useful for recording jump targets before they are
// known (patch the Asm's buffer directly, or lay code out forward-only as tests do).
func (a *Asm) Len() uint16 { return uint16(len(a.code)) }

// Raw appends already-encoded bytes, used by ISA extensions that build their own
// instruction encodings and splice them into a shared assembler.
func (a *Asm) Raw(b []byte) *Asm {
	a.code = append(a.code, b...)
	return a
}

func (a *Asm) Nop() *Asm  { a.code = append(a.code, opNop); return a }
func (a *Asm) Stop() *Asm { a.code = append(a.code, opStop); return a }
func (a *Asm) Chk() *Asm  { a.code = append(a.code, opChk); return a }

func (a *Asm) Jmp(target uint16) *Asm {
	a.code = appendU16(append(a.code, opJmp), target)
	return a
}

func (a *Asm) Jif(target uint16) *Asm {
	a.code = appendU16(append(a.code, opJif), target)
	return a
}

func (a *Asm) Jnif(target uint16) *Asm {
	a.code = appendU16(append(a.code, opJnif), target)
	return a
}

func (a *Asm) Put(r RegE, v fe.Elem) *Asm {
	a.code = append(appendReg(append(a.code, opPut), r), v.Bytes()...)
	return a
}

func (a *Asm) Clr(r RegE) *Asm {
	a.code = appendReg(append(a.code, opClr), r)
	return a
}

func (a *Asm) Mov(dst, src RegE) *Asm {
	a.code = appendReg(appendReg(append(a.code, opMov), dst), src)
	return a
}

func (a *Asm) Eq(x, y RegE) *Asm {
	a.code = appendReg(appendReg(append(a.code, opEq), x), y)
	return a
}

func (a *Asm) Test(r RegE) *Asm {
	a.code = appendReg(append(a.code, opTest), r)
	return a
}

func (a *Asm) Not() *Asm { a.code = append(a.code, opNot); return a }

func (a *Asm) Add(dst, src RegE) *Asm {
	a.code = appendReg(appendReg(append(a.code, opAdd), dst), src)
	return a
}

func (a *Asm) Mul(dst, src RegE) *Asm {
	a.code = appendReg(appendReg(append(a.code, opMul), dst), src)
	return a
}

func (a *Asm) Neg(r RegE) *Asm {
	a.code = appendReg(append(a.code, opNeg), r)
	return a
}
