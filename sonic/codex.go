package sonic

import (
	"encoding/binary"
	"math/big"
	"sort"

	"ultrasonic.dev/sonic/alu"
	"ultrasonic.dev/sonic/commit"
	"ultrasonic.dev/sonic/ids"
)

// Codex is the compiled contract program: a name and authorship record, the field
// every fe value is taken modulo, the two VM configurations Codex.verify
// instantiates, and the map of verifier entry points it dispatches call_id to.
type Codex struct {
	Version            byte
	Name               string
	Developer          string
	Timestamp          int64
	FieldOrder         *big.Int
	InputConfig        alu.CoreConfig
	VerificationConfig alu.CoreConfig
	Verifiers          map[ids.CallId]alu.LibSite
}

func canonicalCoreConfig(cfg alu.CoreConfig) []byte {
	out := make([]byte, 0, 9)
	if cfg.Halt {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	var lim [8]byte
	binary.BigEndian.PutUint64(lim[:], cfg.ComplexityLim)
	return append(out, lim[:]...)
}

func canonicalString(s string) []byte {
	out := make([]byte, 0, 2+len(s))
	var l [2]byte
	binary.BigEndian.PutUint16(l[:], uint16(len(s)))
	out = append(out, l[:]...)
	return append(out, s...)
}

// verifierEntry is one (call_id, LibSite) pair's canonical encoding, used as a Merkle
// leaf input so Id() does not depend on Go's unspecified map iteration order.
type verifierEntry struct {
	callId ids.CallId
	site   alu.LibSite
}

func (e verifierEntry) Canonical() []byte {
	out := e.callId.Bytes()
	out = append(out, e.site.Lib[:]...)
	var off [2]byte
	binary.BigEndian.PutUint16(off[:], e.site.Offset)
	return append(out, off[:]...)
}

// Id computes the CodexId: the tagged commitment over every Codex field, with the
// verifier map sorted by call id first so that two codexes with the same entries in
// a different insertion order always agree on id.
func (c Codex) Id() ids.CodexId {
	entries := make([]verifierEntry, 0, len(c.Verifiers))
	for callId, site := range c.Verifiers {
		entries = append(entries, verifierEntry{callId: callId, site: site})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].callId < entries[j].callId })
	mVerifiers := merkleOf(entries)

	var order [32]byte
	if c.FieldOrder != nil {
		b := c.FieldOrder.Bytes()
		copy(order[32-len(b):], b)
	}
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(c.Timestamp))

	h := commit.Strict(commit.TagCodexId,
		[]byte{c.Version},
		canonicalString(c.Name),
		canonicalString(c.Developer),
		ts[:],
		order[:],
		canonicalCoreConfig(c.InputConfig),
		canonicalCoreConfig(c.VerificationConfig),
		mVerifiers[:],
	)
	return ids.CodexId(h)
}
