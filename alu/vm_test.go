package alu

import (
	"math/big"
	"testing"

	"ultrasonic.dev/sonic/fe"
)

func mustElem(t *testing.T, v uint64) fe.Elem { t.Helper(); return fe.FromUint64(v) }

func newTestVm(t *testing.T, resolve Resolver) *Vm {
	t.Helper()
	order := big.NewInt(97)
	core := NewGfaCore(GfaConfig{FieldOrder: order})
	return NewVm(core, resolve, nil, CoreConfig{Halt: false, ComplexityLim: 1000})
}

func TestVm_PutEqChkOk(t *testing.T) {
	a := NewAsm()
	a.Put(RegE1, mustElem(t, 7)).Put(RegE2, mustElem(t, 7)).Eq(RegE1, RegE2).Chk().Stop()
	lib := NewLib(a.Bytes())

	vm := newTestVm(t, StaticResolver(lib))
	status := vm.Exec(Site{Lib: lib.LibId()}, nil, nil)
	if status != StatusOk {
		t.Fatalf("expected ok, got %s", status)
	}
}

func TestVm_ChkFailsOnMismatch(t *testing.T) {
	a := NewAsm()
	a.Put(RegE1, mustElem(t, 7)).Put(RegE2, mustElem(t, 8)).Eq(RegE1, RegE2).Chk().Stop()
	lib := NewLib(a.Bytes())

	vm := newTestVm(t, StaticResolver(lib))
	status := vm.Exec(Site{Lib: lib.LibId()}, nil, nil)
	if status != StatusFail {
		t.Fatalf("expected fail, got %s", status)
	}
}

func TestVm_AddWrapsModField(t *testing.T) {
	a := NewAsm()
	a.Put(RegE1, mustElem(t, 90)).Put(RegE2, mustElem(t, 10)).Add(RegE1, RegE2).
		Put(RegE3, mustElem(t, 3)).Eq(RegE1, RegE3).Chk().Stop()
	lib := NewLib(a.Bytes())

	vm := newTestVm(t, StaticResolver(lib))
	status := vm.Exec(Site{Lib: lib.LibId()}, nil, nil)
	if status != StatusOk {
		t.Fatalf("expected 90+10 mod 97 == 3, got %s", status)
	}
}

func TestVm_JumpSkipsFailingCheck(t *testing.T) {
	a := NewAsm()
	a.Put(RegE1, mustElem(t, 1))
	a.Test(RegE1)
	jifPos := a.Len()
	a.Jif(0) // patched below
	a.Put(RegE2, mustElem(t, 0)).Test(RegE2).Chk() // would fail if reached
	target := a.Len()
	a.Stop()
	code := a.Bytes()
	// patch the JIF target now that `target` is known
	code[jifPos+1] = byte(target >> 8)
	code[jifPos+2] = byte(target)
	lib := NewLib(code)

	vm := newTestVm(t, StaticResolver(lib))
	status := vm.Exec(Site{Lib: lib.LibId()}, nil, nil)
	if status != StatusOk {
		t.Fatalf("expected jump to skip the failing check, got %s", status)
	}
}

func TestVm_RunningOffEndWithoutHaltIsOk(t *testing.T) {
	a := NewAsm()
	a.Nop()
	lib := NewLib(a.Bytes())

	core := NewGfaCore(GfaConfig{FieldOrder: big.NewInt(97)})
	vm := NewVm(core, StaticResolver(lib), nil, CoreConfig{Halt: false})
	if status := vm.Exec(Site{Lib: lib.LibId()}, nil, nil); status != StatusOk {
		t.Fatalf("expected ok, got %s", status)
	}
}

func TestVm_RunningOffEndWithHaltIsFail(t *testing.T) {
	a := NewAsm()
	a.Nop()
	lib := NewLib(a.Bytes())

	core := NewGfaCore(GfaConfig{FieldOrder: big.NewInt(97)})
	vm := NewVm(core, StaticResolver(lib), nil, CoreConfig{Halt: true})
	if status := vm.Exec(Site{Lib: lib.LibId()}, nil, nil); status != StatusFail {
		t.Fatalf("expected fail, got %s", status)
	}
}

func TestVm_ReservedOpcodeFails(t *testing.T) {
	lib := NewLib([]byte{0xF0})
	vm := newTestVm(t, StaticResolver(lib))
	if status := vm.Exec(Site{Lib: lib.LibId()}, nil, nil); status != StatusFail {
		t.Fatalf("expected reserved opcode to fail, got %s", status)
	}
}

func TestVm_ComplexityLimitTrips(t *testing.T) {
	a := NewAsm()
	loopStart := a.Len()
	a.Nop()
	a.Jmp(loopStart)
	lib := NewLib(a.Bytes())

	core := NewGfaCore(GfaConfig{FieldOrder: big.NewInt(97)})
	vm := NewVm(core, StaticResolver(lib), nil, CoreConfig{ComplexityLim: 50})
	if status := vm.Exec(Site{Lib: lib.LibId()}, nil, nil); status != StatusFail {
		t.Fatalf("expected complexity limit to stop the loop with fail, got %s", status)
	}
}

func TestVm_ResolverMismatchPanics(t *testing.T) {
	a := NewAsm()
	a.Stop()
	lib := NewLib(a.Bytes())
	other := NewLib([]byte{0x00})

	resolve := func(LibId) (*Lib, bool) { return other, true }
	vm := newTestVm(t, resolve)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on resolver/library id mismatch")
		}
	}()
	vm.Exec(Site{Lib: lib.LibId()}, nil, nil)
}
