package merkle_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lms-go/lms-go/lms/common"
	"github.com/lms-go/lms-go/lms/merkle"
)

func randID(t *testing.T) common.ID {
	var id common.ID
	_, err := rand.Read(id[:])
	assert.NoError(t, err)
	return id
}

// TestLeafIndexing checks invariant 7 from spec.md §8: for r in
// [2^h, 2^(h+1)), LeafHash(I, r, K_{r-2^h}) equals the r-th node of a
// freshly built tree.
func TestLeafIndexing(t *testing.T) {
	const height = 4
	leaves := uint64(1) << height
	id := randID(t)
	h := common.Sha256Hasher{}

	keys := make([][]byte, leaves)
	for i := range keys {
		keys[i] = make([]byte, 32)
		_, err := rand.Read(keys[i])
		assert.NoError(t, err)
	}

	tree := merkle.Build(h, id, height, 32, keys)

	for q := uint64(0); q < leaves; q++ {
		r := leaves + q
		expected := merkle.LeafHash(h, id, uint32(r), keys[q], 32)
		assert.Equal(t, expected, tree[r])
	}
}

func TestPathLength(t *testing.T) {
	const height = 6
	leaves := uint64(1) << height
	id := randID(t)
	h := common.Sha256Hasher{}

	keys := make([][]byte, leaves)
	for i := range keys {
		keys[i] = make([]byte, 32)
		_, err := rand.Read(keys[i])
		assert.NoError(t, err)
	}

	tree := merkle.Build(h, id, height, 32, keys)

	for _, q := range []uint32{0, 1, uint32(leaves) / 2, uint32(leaves) - 1} {
		path := merkle.Path(tree, height, q)
		assert.Len(t, path, height)
	}
}

func TestRootIsNode1(t *testing.T) {
	const height = 3
	leaves := uint64(1) << height
	id := randID(t)
	h := common.Sha256Hasher{}

	keys := make([][]byte, leaves)
	for i := range keys {
		keys[i] = make([]byte, 32)
		_, err := rand.Read(keys[i])
		assert.NoError(t, err)
	}

	tree := merkle.Build(h, id, height, 32, keys)
	assert.Equal(t, tree[1], merkle.Root(tree))
	assert.Nil(t, tree[0])
}
