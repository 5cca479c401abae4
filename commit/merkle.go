package commit

import "crypto/sha256"

// emptyMerkleRoot is the fixed root committed to by an empty list, so that
// destructible_in, immutable_in, destructible_out and immutable_out can each be
// empty without making Opid ambiguous with a populated list that happens to hash the
// same way.
var emptyMerkleRoot = tagHash(TagMerkleEmpty)

// leafSalt is the fixed one-byte prefix that promotes an already-computed per-element
// hash (see LeafHash) into the tree's bottom level, keeping it out of the domain of
// internal nodes even when a list happens to have exactly one element.
const leafSalt = 0x00

// MerkleRoot collapses a list of per-element hashes (see LeafHash) into one 32-byte
// root using a balanced binary tree: every leaf is promoted with the fixed leafSalt
// prefix, and each internal node hashes its two children under TagMerkleNode. An odd
// node at any level is carried forward to the next level unchanged rather than paired
// with itself, matching the teacher's merkleRootTagged promotion rule.
func MerkleRoot(items [][32]byte) [32]byte {
	if len(items) == 0 {
		return emptyMerkleRoot
	}

	level := make([][32]byte, len(items))
	for i, item := range items {
		level[i] = sha256.Sum256(append([]byte{leafSalt}, item[:]...))
	}

	nodeTag := tagHash(TagMerkleNode)
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); {
			if i == len(level)-1 {
				next = append(next, level[i])
				i++
				continue
			}
			h := sha256.New()
			h.Write(nodeTag[:])
			h.Write(nodeTag[:])
			h.Write(level[i][:])
			h.Write(level[i+1][:])
			var out [32]byte
			copy(out[:], h.Sum(nil))
			next = append(next, out)
			i += 2
		}
		level = next
	}
	return level[0]
}

// LeafHash commits a single element's canonical encoding under TagMerkleLeaf for
// use as a MerkleRoot input item. Every Merkleized list in ยง4.1 (destructible_in,
// immutable_in, destructible_out, immutable_out) hashes its elements this way before
// folding them into the list's root.
func LeafHash(canonical []byte) [32]byte {
	return Strict(TagMerkleLeaf, canonical)
}
