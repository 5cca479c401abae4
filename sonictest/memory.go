// Package sonictest provides the dummy Memory and LibRepo implementations and the
// assembler shortcuts package sonic's own tests (and any downstream contract test
// suite) use to exercise Codex.verify without a real store. It corresponds to ยง2's
// "testing scaffolding" component: nothing here is loaded by production code paths.
package sonictest

import (
	"ultrasonic.dev/sonic/alu"
	"ultrasonic.dev/sonic/state"
)

// Memory is an in-memory, map-backed Memory implementation. With ConsumeOnRead
// enabled, entries are removed from Destructible's backing map once looked up,
// mimicking read-once consumption closely enough for tests that care about
// NoReadOnceInput on a second call; by default they stay in place. Production
// stores are expected to enforce the real append/consume lifecycle (ยง6.4).
type Memory struct {
	destructible map[state.CellAddr]state.StateCell
	immutable    map[state.CellAddr]state.Value
	consumeOnRead bool
}

// NewMemory builds an empty dummy memory. Entries consumed via Destructible remain
// visible to later lookups unless ConsumeOnRead is enabled, matching most unit tests'
// need to call verify more than once against the same fixture.
func NewMemory() *Memory {
	return &Memory{
		destructible: make(map[state.CellAddr]state.StateCell),
		immutable:    make(map[state.CellAddr]state.Value),
	}
}

// ConsumeOnRead makes Destructible delete an entry the first time it is resolved, so
// a test can assert that consuming the same input twice fails with NoReadOnceInput.
func (m *Memory) ConsumeOnRead(v bool) *Memory { m.consumeOnRead = v; return m }

// PutDestructible registers a destructible cell at addr.
func (m *Memory) PutDestructible(addr state.CellAddr, cell state.StateCell) {
	m.destructible[addr] = cell
}

// PutImmutable registers an immutable value at addr.
func (m *Memory) PutImmutable(addr state.CellAddr, v state.Value) {
	m.immutable[addr] = v
}

// Destructible implements sonic.Memory.
func (m *Memory) Destructible(addr state.CellAddr) (state.StateCell, bool) {
	cell, ok := m.destructible[addr]
	if ok && m.consumeOnRead {
		delete(m.destructible, addr)
	}
	return cell, ok
}

// Immutable implements sonic.Memory.
func (m *Memory) Immutable(addr state.CellAddr) (state.Value, bool) {
	v, ok := m.immutable[addr]
	return v, ok
}

// LibRepo is a dummy LibRepo backed by an in-memory set of libraries, a thin rename
// of alu.StaticResolver into interface shape so it satisfies sonic.LibRepo.
type LibRepo struct {
	resolve alu.Resolver
}

// NewLibRepo builds a LibRepo serving exactly the given libraries.
func NewLibRepo(libs ...*alu.Lib) *LibRepo {
	return &LibRepo{resolve: alu.StaticResolver(libs...)}
}

// GetLib implements sonic.LibRepo.
func (r *LibRepo) GetLib(id alu.LibId) (*alu.Lib, bool) { return r.resolve(id) }

// MismatchedLibRepo always returns a fixed library regardless of which id was
// requested, for tests exercising the fatal resolver-mismatch assertion (ยง4.6, ยง7).
type MismatchedLibRepo struct {
	Lib *alu.Lib
}

// GetLib implements sonic.LibRepo, always answering with m.Lib.
func (m MismatchedLibRepo) GetLib(alu.LibId) (*alu.Lib, bool) { return m.Lib, true }
