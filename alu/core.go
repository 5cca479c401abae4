package alu

import (
	"math/big"

	"ultrasonic.dev/sonic/fe"
)

// GfaConfig parametrizes the field-arithmetic core with the prime the codex operates
// over. It is supplied fresh for every verification call; the core never persists it.
type GfaConfig struct {
	FieldOrder *big.Int
}

// CoreConfig bounds a VM instantiation: whether running off the end of a program
// counts as success, and the complexity budget enforced by the executor.
type CoreConfig struct {
	Halt         bool
	ComplexityLim uint64 // 0 means unbounded
}

// GfaCore is the register file and status model of the field-arithmetic core: the
// twelve E-registers plus the CO (per-instruction condition) and CK (latched failure)
// flags described in ยง6.2 of the specification.
type GfaCore struct {
	regs    [regCount]*fe.Elem
	co      bool
	ck      bool
	order   *big.Int
}

// NewGfaCore allocates a fresh core for the given field order.
func NewGfaCore(cfg GfaConfig) *GfaCore {
	return &GfaCore{order: cfg.FieldOrder}
}

// Reset clears every register and both status flags, as required before each input's
// lock script runs and at the start of a fresh verification.
func (c *GfaCore) Reset() {
	for i := range c.regs {
		c.regs[i] = nil
	}
	c.co = false
	c.ck = false
}

// Get returns the register's value, or (zero, false) if it has never been set.
func (c *GfaCore) Get(r RegE) (fe.Elem, bool) {
	if !r.valid() || c.regs[r] == nil {
		return fe.Zero, false
	}
	return *c.regs[r], true
}

// Set assigns a value to a register.
func (c *GfaCore) Set(r RegE, v fe.Elem) {
	if !r.valid() {
		return
	}
	val := v
	c.regs[r] = &val
}

// Clr unsets a register, making subsequent Get report absence.
func (c *GfaCore) Clr(r RegE) {
	if !r.valid() {
		return
	}
	c.regs[r] = nil
}

// CO reports the current condition flag.
func (c *GfaCore) CO() bool { return c.co }

// SetCO assigns the condition flag.
func (c *GfaCore) SetCO(v bool) { c.co = v }

// CK reports whether a check has ever failed during this run.
func (c *GfaCore) CK() bool { return c.ck }

func (c *GfaCore) mod(v *big.Int) fe.Elem {
	if c.order != nil && c.order.Sign() > 0 {
		v = new(big.Int).Mod(v, c.order)
	}
	e, _ := fe.FromBigInt(v)
	return e
}

// Add sets dst := (dst + src) mod field_order.
func (c *GfaCore) Add(dst, src RegE) {
	a, _ := c.Get(dst)
	b, _ := c.Get(src)
	c.Set(dst, c.mod(new(big.Int).Add(a.BigInt(), b.BigInt())))
}

// Mul sets dst := (dst * src) mod field_order.
func (c *GfaCore) Mul(dst, src RegE) {
	a, _ := c.Get(dst)
	b, _ := c.Get(src)
	c.Set(dst, c.mod(new(big.Int).Mul(a.BigInt(), b.BigInt())))
}

// Neg sets reg := (-reg) mod field_order.
func (c *GfaCore) Neg(reg RegE) {
	a, _ := c.Get(reg)
	c.Set(reg, c.mod(new(big.Int).Neg(a.BigInt())))
}
