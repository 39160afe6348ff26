// This file implements the LmsSignature wire codec (C9).
package lms

import (
	"encoding/binary"

	"github.com/lms-go/lms-go/lms/common"
	"github.com/lms-go/lms-go/lms/ots"
)

// NewLmsSignature returns a LmsSignature given an LMS type, leaf index,
// LM-OTS signature, and authentication path.
func NewLmsSignature(tc common.LmsAlgorithmType, q uint32, otsig ots.LmsOtsSignature, path [][]byte) (LmsSignature, error) {
	tc, err := tc.LmsType()
	if err != nil {
		return LmsSignature{}, wrapError(KindBadInput, err, "NewLmsSignature(): invalid LMS type")
	}
	params, err := tc.LmsParams()
	if err != nil {
		return LmsSignature{}, wrapError(KindBadInput, err, "NewLmsSignature(): invalid LMS type")
	}

	leaves := uint32(1) << params.H
	if q >= leaves {
		return LmsSignature{}, newError(KindBadInput, "NewLmsSignature(): q out of range")
	}
	if uint64(len(path)) != params.H {
		return LmsSignature{}, newError(KindBadInput, "NewLmsSignature(): authentication path has wrong length")
	}

	return LmsSignature{
		typecode: tc,
		q:        q,
		ots:      otsig,
		path:     path,
	}, nil
}

// Q returns the leaf index embedded in this signature.
func (sig *LmsSignature) Q() uint32 {
	return sig.q
}

// LmsSignatureFromBytes parses b, the inverse of ToBytes. Per spec.md
// §6.1: q || OTS signature (4+n*(p+1) octets) || LMS type || path
// (m*h octets). Every length is validated before any field is trusted.
func LmsSignatureFromBytes(b []byte) (LmsSignature, error) {
	if len(b) < 8 {
		return LmsSignature{}, newError(KindBadInput, "LmsSignatureFromBytes(): signature too short")
	}

	q := binary.BigEndian.Uint32(b[0:4])

	otstc := common.Uint32ToLmotsType(binary.BigEndian.Uint32(b[4:8]))
	if _, err := otstc.LmsOtsType(); err != nil {
		return LmsSignature{}, wrapError(KindBadInput, err, "LmsSignatureFromBytes(): invalid LM-OTS type")
	}

	otssiglen, err := otstc.LmsOtsSigLength()
	if err != nil {
		return LmsSignature{}, wrapError(KindBadInput, err, "LmsSignatureFromBytes(): invalid LM-OTS type")
	}
	otsigmax := 4 + otssiglen
	if uint64(len(b)) < otsigmax+4 {
		return LmsSignature{}, newError(KindBadInput, "LmsSignatureFromBytes(): signature too short for LMS type field")
	}

	typecode := common.Uint32ToLmsType(binary.BigEndian.Uint32(b[otsigmax : otsigmax+4]))
	if _, err := typecode.LmsType(); err != nil {
		return LmsSignature{}, wrapError(KindBadInput, err, "LmsSignatureFromBytes(): invalid LMS type")
	}

	siglen, err := typecode.LmsSigLength(otstc)
	if err != nil {
		return LmsSignature{}, wrapError(KindBadInput, err, "LmsSignatureFromBytes(): invalid LMS type")
	}
	if siglen != uint64(len(b)) {
		return LmsSignature{}, newError(KindBadInput, "LmsSignatureFromBytes(): wrong signature length")
	}

	otsig, err := ots.LmsOtsSignatureFromBytes(b[4:otsigmax])
	if err != nil {
		return LmsSignature{}, wrapError(KindBadInput, err, "LmsSignatureFromBytes(): invalid LM-OTS signature")
	}

	lmsParams, err := typecode.LmsParams()
	if err != nil {
		return LmsSignature{}, wrapError(KindBadInput, err, "LmsSignatureFromBytes(): invalid LMS type")
	}
	height := lmsParams.H
	m := lmsParams.M

	leaves := uint32(1) << height
	if q >= leaves {
		return LmsSignature{}, newError(KindBadInput, "LmsSignatureFromBytes(): leaf index out of range")
	}

	start := otsigmax + 4
	path := make([][]byte, height)
	for i := uint64(0); i < height; i++ {
		end := start + m
		path[i] = b[start:end]
		start += m
	}

	return LmsSignature{
		typecode: typecode,
		q:        q,
		ots:      otsig,
		path:     path,
	}, nil
}

// ToBytes serializes the signature for transmission or storage.
func (sig *LmsSignature) ToBytes() ([]byte, error) {
	var serialized []byte
	var u32_be [4]byte

	typecode, err := sig.typecode.LmsType()
	if err != nil {
		return nil, wrapError(KindBadInput, err, "ToBytes(): invalid LMS type")
	}
	params, err := typecode.LmsParams()
	if err != nil {
		return nil, wrapError(KindBadInput, err, "ToBytes(): invalid LMS type")
	}

	binary.BigEndian.PutUint32(u32_be[:], sig.q)
	serialized = append(serialized, u32_be[:]...)

	otsSig, err := sig.ots.ToBytes()
	if err != nil {
		return nil, wrapError(KindBadInput, err, "ToBytes(): invalid LM-OTS signature")
	}
	serialized = append(serialized, otsSig...)

	binary.BigEndian.PutUint32(u32_be[:], typecode.ToUint32())
	serialized = append(serialized, u32_be[:]...)

	for i := uint64(0); i < params.H; i++ {
		serialized = append(serialized, sig.path[i]...)
	}

	return serialized, nil
}
