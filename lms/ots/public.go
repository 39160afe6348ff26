// Package ots implements LM-OTS one-time signatures for use in LMS.
//
// This file implements the public key and signature verification/recovery
// logic — the §6.2 "recover public key" and public-key codec operations.
package ots

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"

	"github.com/lms-go/lms-go/lms/common"
)

// Verify reports whether sig is a valid LM-OTS signature of msg under pub.
func (pub *LmsOtsPublicKey) Verify(msg []byte, sig LmsOtsSignature) bool {
	if pub.typecode != sig.typecode {
		return false
	}

	kc, valid := sig.RecoverPublicKey(msg, pub.id, pub.q)

	// Short circuits on valid == false; otherwise does the key comparison.
	return valid && subtle.ConstantTimeCompare(pub.k, kc.k) == 1
}

// RecoverPublicKey computes the candidate public key implied by sig for
// msg. A genuine signature yields the true leaf public key; a forged
// signature yields an unrelated value — the Merkle root comparison in
// the lms package is the actual security boundary, not this function.
func (sig *LmsOtsSignature) RecoverPublicKey(msg []byte, id common.ID, q uint32) (LmsOtsPublicKey, bool) {
	var be16 [2]byte
	var be32 [4]byte
	var tmp []byte
	params, err := sig.typecode.Params()
	if err != nil {
		return LmsOtsPublicKey{}, false
	}
	hasher := params.H.New()
	hash_len := hasher.Size()

	if len(sig.c) != hash_len {
		return LmsOtsPublicKey{}, false
	}

	if uint64(len(sig.y)) != params.P {
		return LmsOtsPublicKey{}, false
	}
	for i := uint64(0); i < params.P; i++ {
		if len(sig.y[i]) != hash_len {
			return LmsOtsPublicKey{}, false
		}
	}

	binary.BigEndian.PutUint32(be32[:], q)

	common.HashWrite(hasher, id[:])
	common.HashWrite(hasher, be32[:])
	common.HashWrite(hasher, common.D_MESG[:])
	common.HashWrite(hasher, sig.c)
	common.HashWrite(hasher, msg)

	Q := hasher.Sum(nil)
	expanded, err := common.Expand(Q, sig.typecode)
	if err != nil {
		return LmsOtsPublicKey{}, false
	}

	hasher.Reset()
	common.HashWrite(hasher, id[:])
	common.HashWrite(hasher, be32[:])
	common.HashWrite(hasher, common.D_PBLC[:])

	for i := uint64(0); i < params.P; i++ {
		a := uint64(expanded[i])
		tmp = make([]byte, len(sig.y[i]))
		copy(tmp, sig.y[i])

		for j := a; j < (uint64(1)<<int(params.W.Window()))-1; j++ {
			inner := params.H.New()

			binary.BigEndian.PutUint32(be32[:], q)
			binary.BigEndian.PutUint16(be16[:], uint16(i))

			common.HashWrite(inner, id[:])
			common.HashWrite(inner, be32[:])
			common.HashWrite(inner, be16[:])
			common.HashWrite(inner, []byte{byte(j)})
			common.HashWrite(inner, tmp)

			tmp = inner.Sum(nil)
		}

		common.HashWrite(hasher, tmp)
	}

	return LmsOtsPublicKey{
		typecode: sig.typecode,
		q:        q,
		id:       id,
		k:        hasher.Sum(nil),
	}, true
}

// Key returns the raw n-octet public key value k, used as the leaf input
// to the Merkle leaf hash.
func (pub *LmsOtsPublicKey) Key() []byte {
	return pub.k
}

// LmsOtsPublicKeyFromBytes parses b, the inverse of ToBytes.
func LmsOtsPublicKeyFromBytes(b []byte) (LmsOtsPublicKey, error) {
	if len(b) < 4 {
		return LmsOtsPublicKey{}, errors.New("LmsOtsPublicKeyFromBytes(): no typecode")
	}
	typecode, err := common.Uint32ToLmotsType(binary.BigEndian.Uint32(b[0:4])).LmsOtsType()
	if err != nil {
		return LmsOtsPublicKey{}, err
	}
	params, err := typecode.Params()
	if err != nil {
		return LmsOtsPublicKey{}, err
	}

	want := 4 + common.ID_LEN + 4 + params.N
	if uint64(len(b)) != want {
		return LmsOtsPublicKey{}, errors.New("LmsOtsPublicKeyFromBytes(): wrong length")
	}

	id := common.ID(b[4 : 4+common.ID_LEN])
	q := binary.BigEndian.Uint32(b[4+common.ID_LEN : 8+common.ID_LEN])
	k := b[8+common.ID_LEN:]

	return LmsOtsPublicKey{
		typecode: typecode,
		id:       id,
		q:        q,
		k:        k,
	}, nil
}

// ToBytes serializes the public key for transmission or storage.
func (pub *LmsOtsPublicKey) ToBytes() []byte {
	var serialized []byte
	var u32_be [4]byte

	typecode, _ := pub.typecode.LmsOtsType()
	binary.BigEndian.PutUint32(u32_be[:], typecode.ToUint32())
	serialized = append(serialized, u32_be[:]...)

	serialized = append(serialized, pub.id[:]...)

	binary.BigEndian.PutUint32(u32_be[:], pub.q)
	serialized = append(serialized, u32_be[:]...)

	serialized = append(serialized, pub.k...)

	return serialized
}
