// This file implements the LMS public key: signature verification (C6)
// and the public-key wire codec (C9).
package lms

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/lms-go/lms-go/lms/common"
	"github.com/lms-go/lms-go/lms/merkle"
)

// NewPublicKey returns a LmsPublicKey given its typecodes, id, and root
// (T1, called k here to match the teacher's naming for the raw bytes).
func NewPublicKey(tc common.LmsAlgorithmType, otstc common.LmsOtsAlgorithmType, id common.ID, k []byte) (LmsPublicKey, error) {
	tc, err := tc.LmsType()
	if err != nil {
		return LmsPublicKey{}, wrapError(KindBadInput, err, "NewPublicKey(): invalid LMS type")
	}
	otstc, err = otstc.LmsOtsType()
	if err != nil {
		return LmsPublicKey{}, wrapError(KindBadInput, err, "NewPublicKey(): invalid LM-OTS type")
	}
	params, err := tc.LmsParams()
	if err != nil {
		return LmsPublicKey{}, wrapError(KindBadInput, err, "NewPublicKey(): invalid LMS type")
	}
	if uint64(len(k)) != params.M {
		return LmsPublicKey{}, newError(KindBadInput, "NewPublicKey(): root must be %d octets, got %d", params.M, len(k))
	}

	return LmsPublicKey{
		typecode: tc,
		otstype:  otstc,
		id:       id,
		k:        k,
	}, nil
}

// Verify reports whether sig is a valid LMS signature of msg under pub.
// It implements the C6 state machine of spec.md §4.6
// (Parse -> OTS-recover -> Hash-up -> Compare) and never exposes which
// sub-check failed: every failure path returns false (via the errVerifyFailed
// kind when a typed error is wanted, see VerifyError).
func (pub *LmsPublicKey) Verify(msg []byte, sig LmsSignature) bool {
	ok := pub.verify(msg, sig)
	Logger.Info().
		Bool("ok", ok).
		Msg("lms: verified signature")
	return ok
}

// VerifyError is Verify, but returns the uniform KindVerifyFailed *Error
// instead of a bare bool, for callers that want an error-shaped API.
func (pub *LmsPublicKey) VerifyError(msg []byte, sig LmsSignature) error {
	if pub.verify(msg, sig) {
		return nil
	}
	return errVerifyFailed
}

func (pub *LmsPublicKey) verify(msg []byte, sig LmsSignature) bool {
	params, err := pub.typecode.LmsParams()
	if err != nil {
		return false
	}
	otsParams, err := pub.otstype.Params()
	if err != nil {
		return false
	}

	// step 2.g of RFC 8554 Algorithm 6a
	if sig.typecode != pub.typecode {
		return false
	}

	height := params.H
	leaves := uint32(1) << height
	if sig.q >= leaves {
		return false
	}

	keyCandidate, valid := sig.ots.RecoverPublicKey(msg, pub.id, sig.q)
	if !valid {
		return false
	}

	node := merkle.LeafHash(otsParams.H, pub.id, leaves+sig.q, keyCandidate.Key(), otsParams.N)

	r := leaves + sig.q
	for i := uint64(0); i < height; i++ {
		parent := r >> 1
		if r%2 == 1 {
			node = merkle.InternalHash(otsParams.H, pub.id, parent, sig.path[i], node, otsParams.N)
		} else {
			node = merkle.InternalHash(otsParams.H, pub.id, parent, node, sig.path[i], otsParams.N)
		}
		r = parent
	}

	return subtle.ConstantTimeCompare(node, pub.k) == 1
}

// ToBytes serializes the public key for transmission or storage,
// per spec.md §6.1: LMS type || LM-OTS type || I || T1.
func (pub *LmsPublicKey) ToBytes() []byte {
	var serialized []byte
	var u32_be [4]byte

	typecode, _ := pub.typecode.LmsType()
	binary.BigEndian.PutUint32(u32_be[:], typecode.ToUint32())
	serialized = append(serialized, u32_be[:]...)

	otstype, _ := pub.otstype.LmsOtsType()
	binary.BigEndian.PutUint32(u32_be[:], otstype.ToUint32())
	serialized = append(serialized, u32_be[:]...)

	serialized = append(serialized, pub.id[:]...)
	serialized = append(serialized, pub.k...)

	return serialized
}

// Key returns the raw root value T1.
func (pub *LmsPublicKey) Key() []byte {
	return pub.k
}

// ID returns the public key's 16-octet identifier.
func (pub *LmsPublicKey) ID() common.ID {
	return pub.id
}

// LmsPublicKeyFromBytes parses b, the inverse of ToBytes. Per spec.md
// §4.9, b must be at least 4+4+16+m octets and exactly that length for
// the parsed LMS type's m.
func LmsPublicKeyFromBytes(b []byte) (LmsPublicKey, error) {
	if len(b) < 8 {
		return LmsPublicKey{}, newError(KindBadInput, "LmsPublicKeyFromBytes(): key must be at least 8 octets")
	}
	typecode, err := common.Uint32ToLmsType(binary.BigEndian.Uint32(b[0:4])).LmsType()
	if err != nil {
		return LmsPublicKey{}, wrapError(KindBadInput, err, "LmsPublicKeyFromBytes(): invalid LMS type")
	}
	otstype, err := common.Uint32ToLmotsType(binary.BigEndian.Uint32(b[4:8])).LmsOtsType()
	if err != nil {
		return LmsPublicKey{}, wrapError(KindBadInput, err, "LmsPublicKeyFromBytes(): invalid LM-OTS type")
	}
	params, err := typecode.LmsParams()
	if err != nil {
		return LmsPublicKey{}, wrapError(KindBadInput, err, "LmsPublicKeyFromBytes(): invalid LMS type")
	}
	if uint64(len(b)) != params.M+4+4+common.ID_LEN {
		return LmsPublicKey{}, newError(KindBadInput, "LmsPublicKeyFromBytes(): wrong length")
	}

	id := common.ID(b[8 : 8+common.ID_LEN])
	k := b[8+common.ID_LEN:]

	return LmsPublicKey{
		typecode: typecode,
		otstype:  otstype,
		id:       id,
		k:        k,
	}, nil
}
