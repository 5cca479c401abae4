package state

import (
	"encoding/binary"

	"ultrasonic.dev/sonic/alu"
	"ultrasonic.dev/sonic/ids"
)

// StateCell is a destructible, access-controlled, read-once unit of state: the data a
// consumer receives, the AuthToken gating it, and an optional lock script that must
// succeed before the cell may be spent.
type StateCell struct {
	Data Value
	Auth AuthToken
	Lock *alu.LibSite
}

// Canonical is the byte-exact encoding absorbed by Merkle leaves over destructible_out
// lists.
func (c StateCell) Canonical() []byte {
	out := c.Data.Canonical()
	out = append(out, c.Auth.Elem().Bytes()...)
	if c.Lock == nil {
		return append(out, 0)
	}
	out = append(out, 1)
	out = append(out, c.Lock.Lib[:]...)
	var off [2]byte
	binary.BigEndian.PutUint16(off[:], c.Lock.Offset)
	return append(out, off[:]...)
}

// StateData is an append-only unit of state: a value plus an optional opaque blob.
type StateData struct {
	Value Value
	Raw   *RawData
}

// Canonical is the byte-exact encoding absorbed by Merkle leaves over immutable_out
// lists: the value's encoding followed by either a 0 none-sentinel byte and 32 zero
// bytes, or a 1 byte and the raw blob's SHA-256 hash.
func (d StateData) Canonical() []byte {
	out := d.Value.Canonical()
	if d.Raw == nil {
		out = append(out, 0)
		var zero [32]byte
		return append(out, zero[:]...)
	}
	out = append(out, 1)
	h := d.Raw.Hash()
	return append(out, h[:]...)
}

// CellAddr addresses one output slot of a prior operation. Whether it names a
// destructible or immutable cell is determined by which list (destructible_in vs
// immutable_in) it appears in, not by anything in the address itself.
type CellAddr struct {
	Opid ids.Opid
	Pos  uint16
}

// Canonical is the byte-exact encoding absorbed by Merkle leaves over destructible_in
// and immutable_in lists, and used as the Memory lookup key.
func (a CellAddr) Canonical() []byte {
	out := make([]byte, 0, 34)
	out = append(out, a.Opid.Bytes()...)
	var pos [2]byte
	binary.BigEndian.PutUint16(pos[:], a.Pos)
	return append(out, pos[:]...)
}

// Input pairs a destructible-input address with optional witness data the consumer
// supplies to satisfy the referenced cell's lock.
type Input struct {
	Addr    CellAddr
	Witness Value
}

// Canonical is the byte-exact encoding absorbed by Merkle leaves over destructible_in.
func (i Input) Canonical() []byte {
	return append(i.Addr.Canonical(), i.Witness.Canonical()...)
}
