package merkle

import (
	"github.com/lms-go/lms-go/lms/common"
)

// Build produces the full 1-indexed node array for a tree of the given
// height from its leaf OTS public keys (leafKeys[q] is the public key of
// leaf q, for q in [0, 2^height)). The returned slice has length
// 2^(height+1); slot 0 is left unused so parent-of(r) = r/2.
//
// Leaves are hashed first (ascending q), then internal nodes are filled
// from r = 2^height - 1 down to 1, so a parent is only computed once
// both of its children exist (spec invariant: descending fill order).
func Build(h common.Hasher, id common.ID, height uint64, m uint64, leafKeys [][]byte) [][]byte {
	leaves := uint64(1) << height
	nodes := make([][]byte, leaves<<1)

	for q := uint64(0); q < leaves; q++ {
		r := leaves + q
		nodes[r] = LeafHash(h, id, uint32(r), leafKeys[q], m)
	}

	for r := leaves - 1; r >= 1; r-- {
		nodes[r] = InternalHash(h, id, uint32(r), nodes[2*r], nodes[2*r+1], m)
	}

	return nodes
}

// Path extracts the authentication path for leaf q from a tree built by
// Build: the height sibling nodes encountered walking from the leaf to
// the root, leaf-side first. This is the same order Verify climbs in.
func Path(nodes [][]byte, height uint64, q uint32) [][]byte {
	leaves := uint64(1) << height
	path := make([][]byte, height)

	r := leaves + uint64(q)
	for level := uint64(0); level < height; level++ {
		path[level] = nodes[r^1]
		r >>= 1
	}

	return path
}

// Root returns T(1), the tree's root node, which is the LMS public key.
func Root(nodes [][]byte) []byte {
	return nodes[1]
}
