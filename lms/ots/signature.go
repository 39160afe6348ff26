// Package ots implements LM-OTS one-time signatures for use in LMS.
//
// This file implements the signature wire codec.
package ots

import (
	"encoding/binary"
	"errors"

	"github.com/lms-go/lms-go/lms/common"
)

// LmsOtsSignatureFromBytes parses b, the inverse of ToBytes.
func LmsOtsSignatureFromBytes(b []byte) (LmsOtsSignature, error) {
	if len(b) < 4 {
		return LmsOtsSignature{}, errors.New("LmsOtsSignatureFromBytes(): no typecode")
	}

	typecode := common.Uint32ToLmotsType(binary.BigEndian.Uint32(b[0:4]))
	params, err := typecode.Params()
	if err != nil {
		return LmsOtsSignature{}, err
	}

	if uint64(len(b)) != params.SIG_LEN {
		return LmsOtsSignature{}, errors.New("LmsOtsSignatureFromBytes(): wrong length")
	}

	c := b[4 : 4+int(params.N)]
	cur := uint64(4 + params.N)

	y := make([][]byte, params.P)
	for i := uint64(0); i < params.P; i++ {
		y[i] = b[cur : cur+params.N]
		cur += params.N
	}

	return LmsOtsSignature{
		typecode: typecode,
		c:        c,
		y:        y,
	}, nil
}

// ToBytes serializes the signature for transmission or storage.
func (sig *LmsOtsSignature) ToBytes() ([]byte, error) {
	var serialized []byte
	var u32_be [4]byte
	params, err := sig.typecode.Params()
	if err != nil {
		return nil, err
	}

	typecode, err := sig.typecode.LmsOtsType()
	if err != nil {
		return nil, err
	}
	binary.BigEndian.PutUint32(u32_be[:], typecode.ToUint32())
	serialized = append(serialized, u32_be[:]...)

	serialized = append(serialized, sig.c...)

	for i := uint64(0); i < params.P; i++ {
		serialized = append(serialized, sig.y[i]...)
	}

	return serialized, nil
}
