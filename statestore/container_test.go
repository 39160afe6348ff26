package statestore_test

import (
	"encoding/hex"
	"path/filepath"
	"testing"

	"github.com/lms-go/lms-go/lms/common"
	"github.com/lms-go/lms-go/lms/lms"
	"github.com/lms-go/lms-go/statestore"
	"github.com/stretchr/testify/assert"
)

func TestOpenInitializeAdvanceReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key0")

	st, err := statestore.Open(path)
	assert.NoError(t, err)

	seed, err := hexSeed()
	assert.NoError(t, err)
	var id common.ID
	copy(id[:], hexID(t))

	priv, err := lms.NewPrivateKeyFromSeed(common.LMS_SHA256_M32_H10, common.LMOTS_SHA256_N32_W8, id, seed)
	assert.NoError(t, err)

	assert.NoError(t, st.Initialize(&priv, seed))
	assert.Equal(t, uint32(0), st.QNext())

	assert.NoError(t, st.Advance(1))
	assert.Equal(t, uint32(1), st.QNext())

	assert.NoError(t, st.Close())

	reopened, err := statestore.Open(path)
	assert.NoError(t, err)
	assert.Equal(t, uint32(1), reopened.QNext())
	assert.Equal(t, id, reopened.ID())
	assert.NoError(t, reopened.Close())
}

func TestOpenRejectsConcurrentOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key0")

	first, err := statestore.Open(path)
	assert.NoError(t, err)

	_, err = statestore.Open(path)
	assert.Error(t, err)
	serr, ok := err.(*statestore.Error)
	assert.True(t, ok)
	assert.True(t, serr.Locked())

	assert.NoError(t, first.Close())
}

func TestAdvanceRefusesToMoveBackward(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key0")

	st, err := statestore.Open(path)
	assert.NoError(t, err)

	seed, err := hexSeed()
	assert.NoError(t, err)
	var id common.ID
	copy(id[:], hexID(t))

	priv, err := lms.NewPrivateKeyFromSeed(common.LMS_SHA256_M32_H10, common.LMOTS_SHA256_N32_W8, id, seed)
	assert.NoError(t, err)
	assert.NoError(t, st.Initialize(&priv, seed))

	assert.NoError(t, st.Advance(10))
	assert.Error(t, st.Advance(5))
	assert.Equal(t, uint32(10), st.QNext())

	assert.NoError(t, st.Close())
}

func hexSeed() ([]byte, error) {
	return hex.DecodeString("558b8966c48ae9cb898b423c83443aae014a72f1b1ab5cc85cf1d892903b5439")
}

func hexID(t *testing.T) []byte {
	b, err := hex.DecodeString("d08fabd4a2091ff0a8cb4ed834e74534")
	assert.NoError(t, err)
	return b
}
