// Package ids defines the small set of identifiers shared across package state
// (CellAddr) and package sonic (Operation, Codex, Issue): the content-derived 256-bit
// Opid, CodexId and ContractId, plus the 16-bit CallId. They live below both so that neither needs to import
// the other just to name the other's identifiers.
package ids

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
)

// Opid identifies an Operation: the tagged commitment over its eight fields (ยง4.1).
type Opid [32]byte

// CodexId identifies a Codex: the tagged commitment over its verifiers, field order
// and configuration (ยง3).
type CodexId [32]byte

// ContractId identifies a contract: the tagged commitment over its issue metadata,
// codex id and genesis operation id (ยง4.8).
type ContractId [32]byte

// CallId selects a verifier entry point within a Codex and an Operation (ยง3): a plain
// 16-bit index, not a commitment, so it lives here only to keep every cross-package id
// type in one place.
type CallId uint16

// SentinelContractId is substituted for the not-yet-known contract id when computing a
// Genesis operation's id, breaking the circular dependency between ContractId (which
// commits to the genesis opid) and the genesis Operation (which would otherwise commit
// to its own contract id) per ยง4.8.
var SentinelContractId = ContractId{
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
}

func (id Opid) String() string       { return hex.EncodeToString(id[:]) }
func (id CodexId) String() string    { return hex.EncodeToString(id[:]) }
func (id ContractId) String() string { return hex.EncodeToString(id[:]) }
func (id CallId) String() string     { return strconv.FormatUint(uint64(id), 10) }

// IsZero reports whether the id is the zero value.
func (id Opid) IsZero() bool { return id == Opid{} }

// Bytes views the identifier as a byte slice for hashing or storage keys.
func (id Opid) Bytes() []byte       { return id[:] }
func (id CodexId) Bytes() []byte    { return id[:] }
func (id ContractId) Bytes() []byte { return id[:] }

// Bytes encodes the call id as two big-endian bytes, its canonical form wherever it
// is absorbed into a commitment (Operation.Id) or used as a Merkle leaf input.
func (id CallId) Bytes() []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(id))
	return b[:]
}
