package sonictest

import (
	"ultrasonic.dev/sonic/alu"
	"ultrasonic.dev/sonic/fe"
	"ultrasonic.dev/sonic/isa"
)

// AlwaysOk assembles a library whose only instruction is stop, the smallest possible
// always-succeeding verifier or lock script.
func AlwaysOk() *alu.Lib {
	return alu.NewLib(isa.NewAsm().Stop().Bytes())
}

// AlwaysFail assembles a library that fails unconditionally: it tests a register it
// never set, so CO is false, and chk turns that into a failing halt.
func AlwaysFail() *alu.Lib {
	a := isa.NewAsm()
	a.Clr(alu.RegE1)
	a.Test(alu.RegE1)
	a.Chk()
	a.Stop()
	return alu.NewLib(a.Bytes())
}

// SetErrorAndFail assembles a library that writes code into reg and then fails
// unconditionally, used to build fixtures for the Lock(code) and Script(code)
// CallError variants.
func SetErrorAndFail(reg alu.RegE, code fe.Elem) *alu.Lib {
	a := isa.NewAsm()
	a.Put(reg, code)
	a.Clr(alu.RegE2)
	a.Test(alu.RegE2)
	a.Chk()
	a.Stop()
	return alu.NewLib(a.Bytes())
}
