package sonic

import (
	"ultrasonic.dev/sonic/fe"
	"ultrasonic.dev/sonic/ids"
	"ultrasonic.dev/sonic/state"
)

// Genesis is an operation template lacking inputs: the seed state a contract starts
// from. Its encoding is structurally identical to an Operation with empty
// destructible_in/immutable_in lists, which is what lets ToOperation promote it
// without any special-casing in the commitment logic.
type Genesis struct {
	Version         byte
	CodexId         ids.CodexId
	CallId          ids.CallId
	Nonce           fe.Elem
	DestructibleOut []state.StateCell
	ImmutableOut    []state.StateData
}

// ToOperation promotes a Genesis into a full Operation by substituting the resolved
// ContractId for the codex id it was declared against and using empty input lists,
// per ยง3's Genesis definition and ยง4.8.
func (g Genesis) ToOperation(contractId ids.ContractId) Operation {
	return Operation{
		Version:         g.Version,
		ContractId:      contractId,
		CallId:          g.CallId,
		Nonce:           g.Nonce,
		DestructibleOut: g.DestructibleOut,
		ImmutableOut:    g.ImmutableOut,
	}
}

// Id computes the Opid the genesis operation would have once promoted under
// contractId.
func (g Genesis) Id(contractId ids.ContractId) ids.Opid {
	return g.ToOperation(contractId).Id()
}
