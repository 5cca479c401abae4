// Package state implements the UltraSONIC state model: StateValue, AuthToken,
// RawData, the destructible StateCell and immutable StateData, and the CellAddr/Input
// pair that addresses a prior operation's output. It sits directly above packages fe,
// ids and alu (for LibSite), and below package isa (which builds a VmContext over these types)
// and package sonic (which embeds them in Operation).
package state

import "ultrasonic.dev/sonic/fe"

// Value is a tagged tuple of zero to four field elements, mirroring the None / Single
// / Double / Triple / Quadripple variants carried by every destructible and immutable
// cell. The zero Value is None.
type Value struct {
	n    uint8
	elems [4]fe.Elem
}

// None is the empty state value.
var None = Value{}

// Single builds a one-element value.
func Single(a fe.Elem) Value { return Value{n: 1, elems: [4]fe.Elem{a}} }

// Double builds a two-element value.
func Double(a, b fe.Elem) Value { return Value{n: 2, elems: [4]fe.Elem{a, b}} }

// Triple builds a three-element value.
func Triple(a, b, c fe.Elem) Value { return Value{n: 3, elems: [4]fe.Elem{a, b, c}} }

// Quadripple builds a four-element value.
func Quadripple(a, b, c, d fe.Elem) Value { return Value{n: 4, elems: [4]fe.Elem{a, b, c, d}} }

// Len reports how many field elements this value carries, 0..4.
func (v Value) Len() int { return int(v.n) }

// Get returns the i-th element and whether it is present. Index must satisfy
// 0 <= i < 4; Get(i) is defined exactly when i < Len().
func (v Value) Get(i int) (fe.Elem, bool) {
	if i < 0 || i >= int(v.n) {
		return fe.Zero, false
	}
	return v.elems[i], true
}

// Elements returns the present elements in order, 0..4 of them.
func (v Value) Elements() []fe.Elem {
	return append([]fe.Elem(nil), v.elems[:v.n]...)
}

// Equal compares two values by length and element-wise content.
func (v Value) Equal(o Value) bool {
	if v.n != o.n {
		return false
	}
	for i := 0; i < int(v.n); i++ {
		if v.elems[i] != o.elems[i] {
			return false
		}
	}
	return true
}

// Canonical returns the byte-exact encoding used as Merkle-leaf and strict-commitment
// input: a one-byte element count followed by each present element's 32-byte encoding.
// The count is part of the preimage so that None, and a value whose only element
// happens to be zero, never collide.
func (v Value) Canonical() []byte {
	out := make([]byte, 0, 1+int(v.n)*32)
	out = append(out, v.n)
	for i := 0; i < int(v.n); i++ {
		out = append(out, v.elems[i].Bytes()...)
	}
	return out
}
