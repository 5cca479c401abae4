// Package sonic implements the contract-verification layer proper: Operation and
// Genesis, Codex and CodexId, the Issue/ContractId pairing, the Memory/LibRepo
// capabilities Codex.verify consumes, and the verifier itself. It sits above
// packages fe, ids, state, alu and isa, and is the only package that knows how to
// turn a VmContext into a verdict.
package sonic

import (
	"fmt"

	"ultrasonic.dev/sonic/commit"
	"ultrasonic.dev/sonic/fe"
	"ultrasonic.dev/sonic/ids"
	"ultrasonic.dev/sonic/state"
)

// MaxListLen bounds every ordered list an Operation carries: at most 2^16 elements,
// since CellAddr.Pos and the USONIC iterator registers are both u16.
const MaxListLen = 1 << 16

// Operation is a state-transition proposal: a contract binding, a verifier selector,
// inputs consumed and outputs produced. Witness is an operation-level auxiliary
// value available to the main script via the ldw instruction; unlike Input.Witness
// it is not part of the commitment (see Id), so supplying or omitting it
// never changes an operation's identity.
type Operation struct {
	Version         byte
	ContractId      ids.ContractId
	CallId          ids.CallId
	Nonce           fe.Elem
	DestructibleIn  []state.Input
	ImmutableIn     []state.CellAddr
	DestructibleOut []state.StateCell
	ImmutableOut    []state.StateData
	Witness         state.Value
}

// Validate checks the structural bounds every conforming Operation must satisfy
// before its id can be trusted: each of the four lists no longer than MaxListLen.
func (op Operation) Validate() error {
	if len(op.DestructibleIn) > MaxListLen || len(op.ImmutableIn) > MaxListLen ||
		len(op.DestructibleOut) > MaxListLen || len(op.ImmutableOut) > MaxListLen {
		return fmt.Errorf("sonic: operation list exceeds %d elements", MaxListLen)
	}
	return nil
}

func merkleOf[T interface{ Canonical() []byte }](items []T) [32]byte {
	leaves := make([][32]byte, len(items))
	for i, it := range items {
		leaves[i] = commit.LeafHash(it.Canonical())
	}
	return commit.MerkleRoot(leaves)
}

// Id computes the Opid: the tagged commitment over the operation's eight logical
// fields in the fixed order of ยง4.1 (scalar fields, then the four list Merkle roots).
func (op Operation) Id() ids.Opid {
	mDestIn := merkleOf(op.DestructibleIn)
	mImmIn := merkleOf(op.ImmutableIn)
	mDestOut := merkleOf(op.DestructibleOut)
	mImmOut := merkleOf(op.ImmutableOut)

	h := commit.Strict(commit.TagOpid,
		[]byte{op.Version},
		op.ContractId.Bytes(),
		op.CallId.Bytes(),
		op.Nonce.Bytes(),
		mDestIn[:], mImmIn[:], mDestOut[:], mImmOut[:],
	)
	return ids.Opid(h)
}
