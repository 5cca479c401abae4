package store

import (
	"encoding/binary"
	"fmt"

	"ultrasonic.dev/sonic/alu"
	"ultrasonic.dev/sonic/fe"
	"ultrasonic.dev/sonic/state"
)

// encodeStateValue and decodeStateValue round-trip a state.Value through its own
// Canonical encoding: a count byte followed by that many 32-byte field elements. That
// encoding is already byte-exact and lossless, so storage needs no separate format.
func encodeStateValue(v state.Value) []byte { return v.Canonical() }

func decodeStateValue(b []byte) state.Value {
	v, _, err := parseValue(b)
	if err != nil {
		// A corrupt record here means the bucket was written by this package; treat it
		// as a fatal integrity fault rather than a recoverable miss.
		panic(fmt.Sprintf("store: corrupt value record: %v", err))
	}
	return v
}

func parseValue(b []byte) (state.Value, int, error) {
	if len(b) < 1 {
		return state.None, 0, fmt.Errorf("empty value record")
	}
	n := int(b[0])
	if n > 4 {
		return state.None, 0, fmt.Errorf("invalid element count %d", n)
	}
	need := 1 + n*32
	if len(b) < need {
		return state.None, 0, fmt.Errorf("truncated value record")
	}
	elems := make([]fe.Elem, n)
	for i := 0; i < n; i++ {
		e, err := fe.FromBytesBE(b[1+i*32 : 1+(i+1)*32])
		if err != nil {
			return state.None, 0, err
		}
		elems[i] = e
	}
	switch n {
	case 0:
		return state.None, need, nil
	case 1:
		return state.Single(elems[0]), need, nil
	case 2:
		return state.Double(elems[0], elems[1]), need, nil
	case 3:
		return state.Triple(elems[0], elems[1], elems[2]), need, nil
	default:
		return state.Quadripple(elems[0], elems[1], elems[2], elems[3]), need, nil
	}
}

// encodeStateCell and decodeStateCell store a destructible cell as: its Value,
// followed by the 32-byte auth token element, followed by an optional lock site. This
// differs from StateCell.Canonical (which commits the auth token's raw element bytes
// the same way) only in that it is written out explicitly here rather than reused,
// since the store format must stay stable even if the commitment encoding adds fields
// later for reasons unrelated to storage.
func encodeStateCell(c state.StateCell) []byte {
	out := encodeStateValue(c.Data)
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

func decodeStateCell(b []byte) (state.StateCell, error) {
	v, n, err := parseValue(b)
	if err != nil {
		return state.StateCell{}, err
	}
	b = b[n:]
	if len(b) < 33 {
		return state.StateCell{}, fmt.Errorf("truncated auth token")
	}
	authElem, err := fe.FromBytesBE(b[:32])
	if err != nil {
		return state.StateCell{}, err
	}
	b = b[32:]
	present := b[0]
	b = b[1:]

	cell := state.StateCell{Data: v, Auth: state.NewAuthToken(authElem)}
	switch present {
	case 0:
		return cell, nil
	case 1:
		if len(b) < 34 {
			return state.StateCell{}, fmt.Errorf("truncated lock site")
		}
		var lib alu.LibId
		copy(lib[:], b[:32])
		offset := binary.BigEndian.Uint16(b[32:34])
		cell.Lock = &alu.LibSite{Lib: lib, Offset: offset}
		return cell, nil
	default:
		return state.StateCell{}, fmt.Errorf("invalid lock presence byte %d", present)
	}
}
