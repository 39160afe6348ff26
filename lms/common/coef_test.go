package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lms-go/lms-go/lms/common"
)

func TestCoefW1(t *testing.T) {
	s := []byte{0x12, 0x34}
	assert.Equal(t, []uint8{0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 1, 1, 0, 1, 0, 0}, common.Coefs(s, common.WINDOW_W1))
}

func TestCoefW2(t *testing.T) {
	s := []byte{0x12, 0x34}
	assert.Equal(t, []uint8{0, 1, 0, 2, 0, 3, 1, 0}, common.Coefs(s, common.WINDOW_W2))
}

func TestCoefW4(t *testing.T) {
	s := []byte{0x12, 0x34}
	assert.Equal(t, []uint8{1, 2, 3, 4}, common.Coefs(s, common.WINDOW_W4))
}

func TestCoefW8(t *testing.T) {
	s := []byte{0x12, 0x34}
	assert.Equal(t, []uint8{0x12, 0x34}, common.Coefs(s, common.WINDOW_W8))
}

func TestLmsTypeRejectsUnknown(t *testing.T) {
	_, err := common.Uint32ToLmsType(0x00000001).LmsType()
	assert.Error(t, err)

	tc, err := common.Uint32ToLmsType(common.LMS_SHA256_M32_H10.ToUint32()).LmsType()
	assert.NoError(t, err)
	params, err := tc.LmsParams()
	assert.NoError(t, err)
	assert.Equal(t, uint64(32), params.M)
	assert.Equal(t, uint64(10), params.H)
}

func TestLmsOtsTypeRejectsUnknown(t *testing.T) {
	_, err := common.Uint32ToLmotsType(0x00000001).LmsOtsType()
	assert.Error(t, err)

	tc, err := common.Uint32ToLmotsType(common.LMOTS_SHA256_N32_W8.ToUint32()).LmsOtsType()
	assert.NoError(t, err)
	params, err := tc.Params()
	assert.NoError(t, err)
	assert.Equal(t, uint64(34), params.P)
	assert.Equal(t, uint64(1124), params.SIG_LEN)
}
