package isa

import "ultrasonic.dev/sonic/alu"

// Asm wraps alu.Asm with USONIC's sixteen zero-operand opcodes, so that test and
// sonictest scripts can mix base-VM and USONIC instructions in one buffer. The
// embedded base-VM methods return *alu.Asm, so a USONIC method cannot be chained
// after one of them; scripts issue such calls as separate statements:
// a.Put(...); a.CknxiDestructible(); a.Chk().Stop().
type Asm struct {
	*alu.Asm
}

// NewAsm starts an empty assembler.
func NewAsm() *Asm { return &Asm{Asm: alu.NewAsm()} }

func (a *Asm) op(b byte) *Asm { a.Raw([]byte{b}); return a }

func (a *Asm) CknxiDestructible() *Asm { return a.op(opCknxiDestructible) }
func (a *Asm) CknxiImmutable() *Asm    { return a.op(opCknxiImmutable) }
func (a *Asm) CknxoDestructible() *Asm { return a.op(opCknxoDestructible) }
func (a *Asm) CknxoImmutable() *Asm    { return a.op(opCknxoImmutable) }
func (a *Asm) Ldw() *Asm               { return a.op(opLdw) }
func (a *Asm) LdiWitness() *Asm        { return a.op(opLdiWitness) }
func (a *Asm) LdiLock() *Asm           { return a.op(opLdiLock) }
func (a *Asm) LdiAuth() *Asm           { return a.op(opLdiAuth) }
func (a *Asm) LdiDestructible() *Asm   { return a.op(opLdiDestructible) }
func (a *Asm) LdiImmutable() *Asm      { return a.op(opLdiImmutable) }
func (a *Asm) LdoDestructible() *Asm   { return a.op(opLdoDestructible) }
func (a *Asm) LdoImmutable() *Asm      { return a.op(opLdoImmutable) }
func (a *Asm) RstiDestructible() *Asm  { return a.op(opRstiDestructible) }
func (a *Asm) RstiImmutable() *Asm     { return a.op(opRstiImmutable) }
func (a *Asm) RstoDestructible() *Asm  { return a.op(opRstoDestructible) }
func (a *Asm) RstoImmutable() *Asm     { return a.op(opRstoImmutable) }
