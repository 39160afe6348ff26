// Package merkle implements the domain-separated Merkle tree operations
// LMS composes its one-time signatures under: leaf and internal node
// hashing (C3), full tree construction (C4), and authentication path
// extraction (C5).
//
// Nodes are addressed 1-indexed as in RFC 8554: index 1 is the root,
// leaves occupy [2^h, 2^(h+1)), internals occupy [1, 2^h), and index 0
// is left unused so that parent-of(r) is simply r/2.
package merkle

import (
	"encoding/binary"

	"github.com/lms-go/lms-go/lms/common"
)

// LeafHash computes T(r) = H(I || u32be(r) || D_LEAF || k) for a leaf at
// 1-indexed node r, where k is that leaf's OTS public key.
func LeafHash(h common.Hasher, id common.ID, r uint32, k []byte, m uint64) []byte {
	var rbe [4]byte
	binary.BigEndian.PutUint32(rbe[:], r)

	hasher := h.New()
	common.HashWrite(hasher, id[:])
	common.HashWrite(hasher, rbe[:])
	common.HashWrite(hasher, common.D_LEAF[:])
	common.HashWrite(hasher, k)
	return common.HashSum(hasher, m)
}

// InternalHash computes T(r) = H(I || u32be(r) || D_INTR || left || right)
// for an internal node at 1-indexed node r, where left = T(2r) and
// right = T(2r+1).
func InternalHash(h common.Hasher, id common.ID, r uint32, left, right []byte, m uint64) []byte {
	var rbe [4]byte
	binary.BigEndian.PutUint32(rbe[:], r)

	hasher := h.New()
	common.HashWrite(hasher, id[:])
	common.HashWrite(hasher, rbe[:])
	common.HashWrite(hasher, common.D_INTR[:])
	common.HashWrite(hasher, left)
	common.HashWrite(hasher, right)
	return common.HashSum(hasher, m)
}
