package sonic

import "ultrasonic.dev/sonic/ids"

// VerifiedOperation is an opaque proof that Codex.verify accepted an Operation. It is
// constructible only by a successful verify call (see Verify in verifier.go); there
// is no exported way to build one directly. Equality and ordering are defined purely
// by Opid, per ยง4.7.
type VerifiedOperation struct {
	opid      ids.Opid
	operation Operation
}

// Opid returns the operation id computed once during construction.
func (v VerifiedOperation) Opid() ids.Opid { return v.opid }

// Operation returns the verified operation itself.
func (v VerifiedOperation) Operation() Operation { return v.operation }

// Equal compares two VerifiedOperations by Opid only.
func (v VerifiedOperation) Equal(o VerifiedOperation) bool { return v.opid == o.opid }

// Less orders two VerifiedOperations by their Opid's byte representation, for use in
// sorted containers; it carries no protocol meaning beyond determinism.
func (v VerifiedOperation) Less(o VerifiedOperation) bool {
	for i := range v.opid {
		if v.opid[i] != o.opid[i] {
			return v.opid[i] < o.opid[i]
		}
	}
	return false
}
