package lms_test

import (
	"testing"

	"github.com/lms-go/lms-go/lms/lms"
	"github.com/stretchr/testify/assert"
)

func TestSignatureFromBytesRejectsShortInput(t *testing.T) {
	for i := 0; i < 200; i++ {
		bytes := make([]byte, i)
		_, err := lms.LmsSignatureFromBytes(bytes)
		assert.Error(t, err)
	}
}

func TestSignatureFromBytesRejectsWrongLength(t *testing.T) {
	// one byte short of, and one byte past, a valid H10/W8 signature;
	// both type fields carry registered values (LMOTS_SHA256_N32_W8 at
	// offset 4, LMS_SHA256_M32_H10 after the OTS signature) so only the
	// length is wrong
	short := make([]byte, 4+1124+4+10*32-1)
	short[7] = 0x04
	short[4+1124+3] = 0x06
	_, err := lms.LmsSignatureFromBytes(short)
	assert.Error(t, err)

	long := make([]byte, 4+1124+4+10*32+1)
	long[7] = 0x04
	long[4+1124+3] = 0x06
	_, err = lms.LmsSignatureFromBytes(long)
	assert.Error(t, err)
}
