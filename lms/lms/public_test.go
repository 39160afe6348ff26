package lms_test

import (
	"testing"

	"github.com/lms-go/lms-go/lms/common"
	"github.com/lms-go/lms-go/lms/lms"
	"github.com/stretchr/testify/assert"
)

func TestPublicKeyToBytesRoundTrip(t *testing.T) {
	seed, id := fixedSeedID(t)
	priv, err := lms.NewPrivateKeyFromSeed(common.LMS_SHA256_M32_H10, common.LMOTS_SHA256_N32_W8, id, seed)
	assert.NoError(t, err)

	pub := priv.Public()
	serialized := pub.ToBytes()
	assert.Equal(t, 4+4+16+32, len(serialized))

	reloaded, err := lms.LmsPublicKeyFromBytes(serialized)
	assert.NoError(t, err)
	assert.Equal(t, pub.Key(), reloaded.Key())
	assert.Equal(t, pub.ID(), reloaded.ID())
}

func TestNewPublicKeyRejectsWrongRootLength(t *testing.T) {
	_, err := lms.NewPublicKey(common.LMS_SHA256_M32_H10, common.LMOTS_SHA256_N32_W8, common.ID{}, make([]byte, 31))
	assert.Error(t, err)
}

func TestPublicKeyFromBytesRejectsShortInput(t *testing.T) {
	for i := 0; i < 64; i++ {
		_, err := lms.LmsPublicKeyFromBytes(make([]byte, i))
		assert.Error(t, err)
	}
}

func TestPublicKeyFromBytesRejectsUnknownType(t *testing.T) {
	b := make([]byte, 4+4+16+32)
	b[3] = 0x01 // unregistered LMS type
	_, err := lms.LmsPublicKeyFromBytes(b)
	assert.Error(t, err)
}
