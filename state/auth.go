package state

import "ultrasonic.dev/sonic/fe"

// AuthToken is a 30-byte authorization value embedded in the low 30 bytes of a field
// element (the top two bytes are always zero). It gates access to a destructible cell
// whose lock script typically checks it against a witness-supplied secret or proof.
//
// AuthToken's underlying integer does admit a total order (see fe.Elem.Cmp), but that
// ordering carries no protocol meaning and MUST NOT be relied on by verification
// scripts or by callers comparing tokens for anything other than equality.
type AuthToken struct {
	elem fe.Elem
}

// NewAuthToken wraps a field element as an auth token, zeroing the top two bytes so
// that every token round-trips through the 30-byte representation unambiguously.
func NewAuthToken(e fe.Elem) AuthToken {
	e[0] = 0
	e[1] = 0
	return AuthToken{elem: e}
}

// Elem returns the token's field-element encoding, as written into register E1 at the
// start of a lock script (ยง4.5) and absorbed into a StateCell's canonical encoding.
func (t AuthToken) Elem() fe.Elem { return t.elem }

// Equal compares two tokens by value. Do not use fe.Elem.Cmp on tokens for anything
// beyond host-side bookkeeping (e.g. map keys); consensus logic must only ever test
// equality.
func (t AuthToken) Equal(o AuthToken) bool { return t.elem.Equal(o.elem) }
