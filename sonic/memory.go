package sonic

import (
	"ultrasonic.dev/sonic/alu"
	"ultrasonic.dev/sonic/state"
)

// Memory is the read-only capability Codex.verify consumes to resolve a prior
// operation's outputs. Implementations MUST be side-effect-free and total on defined
// cells; an address that is unknown or already consumed is reported the same way, by
// returning ok=false — the verifier does not distinguish the two cases (ยง4.2).
type Memory interface {
	Destructible(addr state.CellAddr) (cell state.StateCell, ok bool)
	Immutable(addr state.CellAddr) (value state.Value, ok bool)
}

// LibRepo resolves a VM library by its content hash. Implementations MUST return a
// library whose self-computed id equals the requested id; package alu's executor
// treats a mismatch as a fatal programming fault, not a recoverable error (ยง4.6, ยง7).
type LibRepo interface {
	GetLib(id alu.LibId) (lib *alu.Lib, ok bool)
}
