package sonic

import (
	"encoding/binary"

	"ultrasonic.dev/sonic/commit"
	"ultrasonic.dev/sonic/ids"
)

// ContractMeta carries the human-facing facts about a deployed contract that are not
// otherwise derivable from its codex or genesis: a display name and the timestamp the
// issuer signed off the issue. It is intentionally thin — richer contract metadata
// schemas are out of scope (ยง1).
type ContractMeta struct {
	Name      string
	Timestamp int64
}

func (m ContractMeta) canonical() []byte {
	out := canonicalString(m.Name)
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(m.Timestamp))
	return append(out, ts[:]...)
}

// Issue is the (meta, codex, genesis) triple that constitutes a deployed contract
// instance.
type Issue struct {
	Version byte
	Meta    ContractMeta
	Codex   Codex
	Genesis Genesis
}

// ContractId computes the tagged commitment of ยง4.8: version, meta, the codex's own
// id (not the raw codex), and the genesis operation's id computed against the
// sentinel all-0xFF contract id. Mixing codex.Id() rather than the codex's full
// fields, and the genesis's opid rather than its raw fields, is what breaks the
// circular dependency between ContractId and Genesis's own binding (ยง9).
func (iss Issue) ContractId() ids.ContractId {
	codexId := iss.Codex.Id()
	genesisOpid := iss.Genesis.Id(ids.SentinelContractId)

	h := commit.Strict(commit.TagContractId,
		[]byte{iss.Version},
		iss.Meta.canonical(),
		codexId.Bytes(),
		genesisOpid.Bytes(),
	)
	return ids.ContractId(h)
}

// GenesisOpid returns the genesis operation's id once promoted under this issue's
// real ContractId, i.e. the id genesis actually carries once the contract exists.
func (iss Issue) GenesisOpid() ids.Opid {
	return iss.Genesis.Id(iss.ContractId())
}
