package state

import (
	"crypto/sha256"
	"fmt"
)

// MaxRawLen is the largest RawData blob a StateData may attach: 64 KiB.
const MaxRawLen = 64 * 1024

// RawData is an opaque byte blob attached to an immutable cell. It is invisible to
// the VM — no instruction can load it into a register — and is committed by hash
// only, so its contents never affect Opid beyond that hash.
type RawData struct {
	bytes []byte
}

// NewRawData validates and wraps a blob. It rejects anything over MaxRawLen, since a
// StateData carrying a larger blob could never have been committed to by a
// spec-compliant encoder.
func NewRawData(b []byte) (RawData, error) {
	if len(b) > MaxRawLen {
		return RawData{}, fmt.Errorf("state: raw data exceeds %d bytes", MaxRawLen)
	}
	return RawData{bytes: append([]byte(nil), b...)}, nil
}

// Bytes returns the blob's contents.
func (r RawData) Bytes() []byte { return append([]byte(nil), r.bytes...) }

// Hash returns the SHA-256 digest mixed into StateData's canonical encoding in place
// of the raw bytes themselves.
func (r RawData) Hash() [32]byte { return sha256.Sum256(r.bytes) }
