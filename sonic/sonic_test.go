package sonic

import (
	"math/big"
	"testing"

	"ultrasonic.dev/sonic/alu"
	"ultrasonic.dev/sonic/commit"
	"ultrasonic.dev/sonic/fe"
	"ultrasonic.dev/sonic/ids"
	"ultrasonic.dev/sonic/isa"
	"ultrasonic.dev/sonic/sonictest"
	"ultrasonic.dev/sonic/state"
)

var testOrder = big.NewInt(97)

func baseCodex(entry alu.Site) Codex {
	return Codex{
		FieldOrder: testOrder,
		Verifiers:  map[ids.CallId]alu.LibSite{0: entry},
	}
}

func TestVerify_DumbSuccess(t *testing.T) {
	lib := sonictest.AlwaysOk()
	codex := baseCodex(alu.Site{Lib: lib.LibId()})
	op := Operation{ContractId: ids.ContractId{1}}
	repo := sonictest.NewLibRepo(lib)
	mem := sonictest.NewMemory()

	vo, err := codex.Verify(op.ContractId, op, mem, repo)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if vo.Opid() != op.Id() {
		t.Fatal("expected verified opid to equal op.Id()")
	}
}

func TestVerify_WrongContract(t *testing.T) {
	lib := sonictest.AlwaysOk()
	codex := baseCodex(alu.Site{Lib: lib.LibId()})
	op := Operation{ContractId: ids.ContractId{1}}
	repo := sonictest.NewLibRepo(lib)
	mem := sonictest.NewMemory()

	_, err := codex.Verify(ids.ContractId{2}, op, mem, repo)
	ce, ok := err.(*CallError)
	if !ok || ce.Kind != ErrWrongContract {
		t.Fatalf("expected WrongContract, got %v", err)
	}
}

func TestVerify_MissingImmutableInput(t *testing.T) {
	lib := sonictest.AlwaysOk()
	codex := baseCodex(alu.Site{Lib: lib.LibId()})
	addr := state.CellAddr{Opid: ids.Opid{9}, Pos: 0}
	op := Operation{ContractId: ids.ContractId{1}, ImmutableIn: []state.CellAddr{addr}}
	repo := sonictest.NewLibRepo(lib)
	mem := sonictest.NewMemory()

	_, err := codex.Verify(op.ContractId, op, mem, repo)
	ce, ok := err.(*CallError)
	if !ok || ce.Kind != ErrNoImmutableInput || ce.Addr != addr {
		t.Fatalf("expected NoImmutableInput(%v), got %v", addr, err)
	}
}

func TestVerify_LockSuccess(t *testing.T) {
	verifierLib := sonictest.AlwaysOk()

	lockAsm := isa.NewAsm()
	lockAsm.Put(alu.RegE3, fe.FromUint64(48))
	lockAsm.Eq(alu.RegE1, alu.RegE3)
	lockAsm.Chk()
	lockAsm.Eq(alu.RegE2, alu.RegE3)
	lockAsm.Chk()
	lockAsm.Clr(alu.RegE4)
	lockAsm.Test(alu.RegE4)
	lockAsm.Not()
	lockAsm.Chk()
	lockAsm.Stop()
	lockLib := alu.NewLib(lockAsm.Bytes())

	codex := baseCodex(alu.Site{Lib: verifierLib.LibId()})
	repo := sonictest.NewLibRepo(verifierLib, lockLib)
	mem := sonictest.NewMemory()

	srcAddr := state.CellAddr{Opid: ids.Opid{2}, Pos: 0}
	mem.PutDestructible(srcAddr, state.StateCell{
		Data: state.Single(fe.FromUint64(1)),
		Auth: state.NewAuthToken(fe.FromUint64(48)),
		Lock: &alu.LibSite{Lib: lockLib.LibId(), Offset: 0},
	})

	op := Operation{
		ContractId: ids.ContractId{1},
		DestructibleIn: []state.Input{
			{Addr: srcAddr, Witness: state.Single(fe.FromUint64(48))},
		},
	}

	if _, err := codex.Verify(op.ContractId, op, mem, repo); err != nil {
		t.Fatalf("expected lock to succeed, got %v", err)
	}
}

func TestVerify_LockFailureReportsE8(t *testing.T) {
	verifierLib := sonictest.AlwaysOk()
	lockLib := sonictest.SetErrorAndFail(alu.RegE8, fe.FromUint64(2))

	codex := baseCodex(alu.Site{Lib: verifierLib.LibId()})
	repo := sonictest.NewLibRepo(verifierLib, lockLib)
	mem := sonictest.NewMemory()

	srcAddr := state.CellAddr{Opid: ids.Opid{2}, Pos: 0}
	mem.PutDestructible(srcAddr, state.StateCell{
		Data: state.Single(fe.FromUint64(1)),
		Auth: state.NewAuthToken(fe.FromUint64(48)),
		Lock: &alu.LibSite{Lib: lockLib.LibId(), Offset: 0},
	})
	op := Operation{
		ContractId:     ids.ContractId{1},
		DestructibleIn: []state.Input{{Addr: srcAddr}},
	}

	_, err := codex.Verify(op.ContractId, op, mem, repo)
	ce, ok := err.(*CallError)
	if !ok || ce.Kind != ErrLock || ce.Code == nil || *ce.Code != fe.FromUint64(2) {
		t.Fatalf("expected Lock(2), got %v", err)
	}
}

func TestVerify_MainScriptCodedFailure(t *testing.T) {
	lib := sonictest.SetErrorAndFail(alu.RegE1, fe.FromUint64(1))
	codex := baseCodex(alu.Site{Lib: lib.LibId()})
	op := Operation{ContractId: ids.ContractId{1}}
	repo := sonictest.NewLibRepo(lib)
	mem := sonictest.NewMemory()

	_, err := codex.Verify(op.ContractId, op, mem, repo)
	ce, ok := err.(*CallError)
	if !ok || ce.Kind != ErrScript || ce.Code == nil || *ce.Code != fe.FromUint64(1) {
		t.Fatalf("expected Script(1), got %v", err)
	}
}

func TestVerify_MainScriptFailsWithoutE1IsUnspecified(t *testing.T) {
	lib := sonictest.AlwaysFail()
	codex := baseCodex(alu.Site{Lib: lib.LibId()})
	op := Operation{ContractId: ids.ContractId{1}}
	repo := sonictest.NewLibRepo(lib)
	mem := sonictest.NewMemory()

	_, err := codex.Verify(op.ContractId, op, mem, repo)
	ce, ok := err.(*CallError)
	if !ok || ce.Kind != ErrScriptUnspecified {
		t.Fatalf("expected ScriptUnspecified, got %v", err)
	}
}

func TestVerify_NotFound(t *testing.T) {
	lib := sonictest.AlwaysOk()
	codex := Codex{FieldOrder: testOrder, Verifiers: map[ids.CallId]alu.LibSite{}}
	op := Operation{ContractId: ids.ContractId{1}, CallId: 7}
	repo := sonictest.NewLibRepo(lib)
	mem := sonictest.NewMemory()

	_, err := codex.Verify(op.ContractId, op, mem, repo)
	ce, ok := err.(*CallError)
	if !ok || ce.Kind != ErrNotFound || ce.CallId != 7 {
		t.Fatalf("expected NotFound(7), got %v", err)
	}
}

// TestVerify_IteratorWalk exercises S7: one element per category, checked present,
// loaded, reset, loaded again, then checked absent after exhaustion.
func TestVerify_IteratorWalk(t *testing.T) {
	a := isa.NewAsm()
	for pass := 0; pass < 2; pass++ {
		a.CknxiDestructible()
		a.Chk()
		a.LdiDestructible()
		a.Chk()
		a.CknxiImmutable()
		a.Chk()
		a.LdiImmutable()
		a.Chk()
		a.CknxoDestructible()
		a.Chk()
		a.LdoDestructible()
		a.Chk()
		a.CknxoImmutable()
		a.Chk()
		a.LdoImmutable()
		a.Chk()
		if pass == 0 {
			a.RstiDestructible()
			a.RstiImmutable()
			a.RstoDestructible()
			a.RstoImmutable()
		}
	}
	// after the second pass every category is exhausted
	a.CknxiDestructible()
	a.Not()
	a.Chk()
	a.CknxiImmutable()
	a.Not()
	a.Chk()
	a.CknxoDestructible()
	a.Not()
	a.Chk()
	a.CknxoImmutable()
	a.Not()
	a.Chk()
	a.Stop()
	lib := alu.NewLib(a.Bytes())

	codex := baseCodex(alu.Site{Lib: lib.LibId()})
	repo := sonictest.NewLibRepo(lib)
	mem := sonictest.NewMemory()

	v := fe.FromUint64(7)
	srcAddr := state.CellAddr{Opid: ids.Opid{3}, Pos: 0}
	mem.PutDestructible(srcAddr, state.StateCell{Data: state.Single(v)})
	immAddr := state.CellAddr{Opid: ids.Opid{4}, Pos: 0}
	mem.PutImmutable(immAddr, state.Single(v))

	op := Operation{
		ContractId:      ids.ContractId{1},
		DestructibleIn:  []state.Input{{Addr: srcAddr}},
		ImmutableIn:     []state.CellAddr{immAddr},
		DestructibleOut: []state.StateCell{{Data: state.Single(v)}},
		ImmutableOut:    []state.StateData{{Value: state.Single(v)}},
	}

	if _, err := codex.Verify(op.ContractId, op, mem, repo); err != nil {
		t.Fatalf("expected iterator walk to succeed, got %v", err)
	}
}

func TestOperation_IdIsDeterministic(t *testing.T) {
	op := Operation{ContractId: ids.ContractId{1}, Nonce: fe.FromUint64(5)}
	if op.Id() != op.Id() {
		t.Fatal("expected Id() to be deterministic")
	}
	other := op
	other.Nonce = fe.FromUint64(6)
	if op.Id() == other.Id() {
		t.Fatal("expected nonce to affect Opid")
	}
}

func TestOperation_ValidateRejectsOversizedLists(t *testing.T) {
	op := Operation{ContractId: ids.ContractId{1}}
	if err := op.Validate(); err != nil {
		t.Fatalf("expected empty operation to validate, got %v", err)
	}
	op.ImmutableIn = make([]state.CellAddr, MaxListLen+1)
	if err := op.Validate(); err == nil {
		t.Fatal("expected an oversized immutable-input list to fail validation")
	}
}

func TestGenesis_ToOperationHasEmptyInputs(t *testing.T) {
	g := Genesis{CodexId: ids.CodexId{1}}
	op := g.ToOperation(ids.ContractId{2})
	if len(op.DestructibleIn) != 0 || len(op.ImmutableIn) != 0 {
		t.Fatal("expected genesis-derived operation to have empty input lists")
	}
}

func TestCodex_IdDependsOnEveryField(t *testing.T) {
	base := Codex{FieldOrder: testOrder, Name: "a", Verifiers: map[ids.CallId]alu.LibSite{}}
	changed := base
	changed.Name = "b"
	if base.Id() == changed.Id() {
		t.Fatal("expected name to affect CodexId")
	}

	changedOrder := base
	changedOrder.FieldOrder = big.NewInt(101)
	if base.Id() == changedOrder.Id() {
		t.Fatal("expected field order to affect CodexId")
	}

	for name, mutate := range map[string]func(*Codex){
		"version":             func(c *Codex) { c.Version = 1 },
		"developer":           func(c *Codex) { c.Developer = "dev" },
		"timestamp":           func(c *Codex) { c.Timestamp = 1 },
		"input config":        func(c *Codex) { c.InputConfig.Halt = true },
		"verification config": func(c *Codex) { c.VerificationConfig.ComplexityLim = 1 },
		"verifiers":           func(c *Codex) { c.Verifiers = map[ids.CallId]alu.LibSite{0: {}} },
	} {
		changed := base
		mutate(&changed)
		if base.Id() == changed.Id() {
			t.Fatalf("expected %s to affect CodexId", name)
		}
	}
}

func TestIssue_ContractIdMatchesComponents(t *testing.T) {
	codex := Codex{FieldOrder: testOrder, Verifiers: map[ids.CallId]alu.LibSite{}}
	genesis := Genesis{CodexId: codex.Id()}
	issue := Issue{Meta: ContractMeta{Name: "test"}, Codex: codex, Genesis: genesis}

	cid := issue.ContractId()
	expected := genesis.Id(ids.SentinelContractId)
	if issue.GenesisOpid() == expected {
		// promoting under the real contract id must differ from the sentinel promotion
		t.Fatal("expected genesis opid to change once promoted under the real contract id")
	}
	if cid == (ids.ContractId{}) {
		t.Fatal("expected a non-zero contract id")
	}
	want := ids.ContractId(commit.Strict(commit.TagContractId,
		[]byte{issue.Version}, issue.Meta.canonical(), codex.Id().Bytes(), expected.Bytes()))
	if cid != want {
		t.Fatal("expected contract id to commit to version, meta, codex id and sentinel genesis opid")
	}
}
