package ots_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lms-go/lms-go/lms/common"
	"github.com/lms-go/lms-go/lms/ots"
)

func TestOtsSignVerify(t *testing.T) {
	id, err := hex.DecodeString("d08fabd4a2091ff0a8cb4ed834e74534")
	assert.NoError(t, err)

	ots_priv, err := ots.NewPrivateKey(common.LMOTS_SHA256_N32_W8, 0, common.ID(id))
	assert.NoError(t, err)

	ots_pub, err := ots_priv.Public()
	assert.NoError(t, err)
	ots_sig, err := ots_priv.Sign([]byte("example"), nil)
	assert.NoError(t, err)

	result := ots_pub.Verify([]byte("example"), ots_sig)
	assert.True(t, result)
}

func TestOtsSignVerifyFail(t *testing.T) {
	id, err := hex.DecodeString("d08fabd4a2091ff0a8cb4ed834e74534")
	assert.NoError(t, err)

	ots_priv, err := ots.NewPrivateKey(common.LMOTS_SHA256_N32_W8, 0, common.ID(id))
	assert.NoError(t, err)

	ots_pub, err := ots_priv.Public()
	assert.NoError(t, err)
	ots_sig, err := ots_priv.Sign([]byte("example"), nil)
	assert.NoError(t, err)

	// Corrupt the serialized q field so re-parsing it yields a different
	// leaf index than the one that signed.
	ots_pub_bytes := ots_pub.ToBytes()
	ots_pub_bytes[23] ^= 1
	ots_pub, err = ots.LmsOtsPublicKeyFromBytes(ots_pub_bytes)
	assert.NoError(t, err)
	result := ots_pub.Verify([]byte("example"), ots_sig)
	assert.False(t, result)
}

func TestDoubleSign(t *testing.T) {
	id, err := hex.DecodeString("d08fabd4a2091ff0a8cb4ed834e74534")
	assert.NoError(t, err)

	ots_priv, err := ots.NewPrivateKey(common.LMOTS_SHA256_N32_W8, 0, common.ID(id))
	assert.NoError(t, err)

	_, err = ots_priv.Sign([]byte("example"), nil)
	assert.NoError(t, err)
	_, err = ots_priv.Sign([]byte("example2"), nil)
	assert.Error(t, err)
}

func TestOtsPublicKeyFromBytesRejectsShortInput(t *testing.T) {
	for i := 0; i < 200; i++ {
		bytes := make([]byte, i)
		_, err := ots.LmsOtsPublicKeyFromBytes(bytes)
		assert.Error(t, err)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	id, err := hex.DecodeString("d08fabd4a2091ff0a8cb4ed834e74534")
	assert.NoError(t, err)

	ots_priv, err := ots.NewPrivateKey(common.LMOTS_SHA256_N32_W8, 0, common.ID(id))
	assert.NoError(t, err)

	ots_priv.Destroy()
	ots_priv.Destroy()

	_, err = ots_priv.Sign([]byte("example"), nil)
	assert.Error(t, err)
}
