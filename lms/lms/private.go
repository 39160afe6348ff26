// This file implements the LMS private key: key generation (C7) and
// signing (C8).
package lms

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/lms-go/lms-go/lms/common"
	"github.com/lms-go/lms-go/lms/merkle"
	"github.com/lms-go/lms-go/lms/ots"
)

// NewPrivateKey returns a freshly generated LmsPrivateKey, drawing both
// the per-key identifier I and the OTS seed from crypto/rand.Reader.
//
// Per spec.md §4.7: I always comes from the randomness source, never
// from the seed, so that two keys generated from the same seed but a
// different RNG output are distinct.
func NewPrivateKey(tc common.LmsAlgorithmType, otstc common.LmsOtsAlgorithmType) (LmsPrivateKey, error) {
	tc, err := tc.LmsType()
	if err != nil {
		return LmsPrivateKey{}, wrapError(KindBadInput, err, "NewPrivateKey(): invalid LMS type")
	}
	params, err := tc.LmsParams()
	if err != nil {
		return LmsPrivateKey{}, wrapError(KindBadInput, err, "NewPrivateKey(): invalid LMS type")
	}

	seed := make([]byte, params.M)
	if _, err = rand.Read(seed); err != nil {
		return LmsPrivateKey{}, wrapError(KindHashBackend, err, "NewPrivateKey(): failed to draw seed")
	}
	idbytes := make([]byte, common.ID_LEN)
	if _, err = rand.Read(idbytes); err != nil {
		return LmsPrivateKey{}, wrapError(KindHashBackend, err, "NewPrivateKey(): failed to draw id")
	}
	id := common.ID(idbytes)

	priv, err := NewPrivateKeyFromSeed(tc, otstc, id, seed)
	if err == nil {
		otstype, _ := priv.otstype.LmsOtsType()
		Logger.Info().
			Uint32("lms_type", tc.ToUint32()).
			Uint32("lmots_type", otstype.ToUint32()).
			Uint64("leaves", uint64(1)<<params.H).
			Msg("lms: generated private key")
	}
	return priv, err
}

// NewPrivateKeyFromSeed deterministically derives a LmsPrivateKey from a
// caller-supplied seed and id, per RFC 8554 Appendix A's pseudo-random
// key generation method. q_next starts at 0 (spec.md §3: "q_next in
// [0, 2^h]").
//
// This single-seed construction is the pseudo-random key generation
// method spec.md §4.7 explicitly allows in lieu of materializing each
// leaf's OTS private key independently: every leaf's chain seeds are
// re-derived from (seed, id, q) exactly when needed — for tree
// construction, only the derived public key is retained; for signing,
// the private key is derived, consumed, and zeroized within one call.
func NewPrivateKeyFromSeed(tc common.LmsAlgorithmType, otstc common.LmsOtsAlgorithmType, id common.ID, seed []byte) (LmsPrivateKey, error) {
	tc, err := tc.LmsType()
	if err != nil {
		return LmsPrivateKey{}, wrapError(KindBadInput, err, "NewPrivateKeyFromSeed(): invalid LMS type")
	}
	otstc, err = otstc.LmsOtsType()
	if err != nil {
		return LmsPrivateKey{}, wrapError(KindBadInput, err, "NewPrivateKeyFromSeed(): invalid LM-OTS type")
	}

	tree, err := generatePKTree(tc, otstc, id, seed)
	if err != nil {
		return LmsPrivateKey{}, err
	}

	return LmsPrivateKey{
		typecode: tc,
		otstype:  otstc,
		q:        0,
		id:       id,
		seed:     seed,
		tree:     tree,
	}, nil
}

// generatePKTree builds the Merkle tree (C4) needed to derive the public
// key and authentication paths, deriving each leaf's OTS public key
// (step 5 of spec.md §4.7: "generate OTS private ..., then derive OTS
// public") from the shared seed. leafPub's backing array is the
// ALLOC_FAILED boundary named in spec.md §4.7 step 4 — unreachable in
// practice since the registry fixes h = 10 (1024 leaves), see DESIGN.md.
func generatePKTree(tc common.LmsAlgorithmType, otstc common.LmsOtsAlgorithmType, id common.ID, seed []byte) ([][]byte, error) {
	params, err := tc.LmsParams()
	if err != nil {
		return nil, wrapError(KindBadInput, err, "generatePKTree(): invalid LMS type")
	}

	leaves := uint64(1) << params.H
	leafPub := make([][]byte, leaves)

	for q := uint64(0); q < leaves; q++ {
		leafPriv, err := ots.NewPrivateKeyFromSeed(otstc, uint32(q), id, seed)
		if err != nil {
			return nil, wrapError(KindBadInput, err, "generatePKTree(): failed to derive leaf %d", q)
		}
		pub, err := leafPriv.Public()
		leafPriv.Destroy()
		if err != nil {
			return nil, wrapError(KindBadInput, err, "generatePKTree(): failed to derive leaf %d public key", q)
		}
		leafPub[q] = pub.Key()
	}

	return merkle.Build(params.Hash, id, params.H, params.M, leafPub), nil
}

// Public returns the LmsPublicKey that validates signatures made by priv.
func (priv *LmsPrivateKey) Public() LmsPublicKey {
	return LmsPublicKey{
		typecode: priv.typecode,
		otstype:  priv.otstype,
		id:       priv.id,
		k:        merkle.Root(priv.tree),
	}
}

// Sign computes the LMS signature of msg, consuming one leaf. rng is
// optional; if nil, crypto/rand.Reader is used for the OTS nonce.
//
// Per spec.md §4.8 step 3, q_next is advanced before anything else is
// attempted, and is never rolled back — if OTS signing or path
// extraction fails after this point, the leaf is still considered
// consumed (spec.md §5: "attempting to roll back ... cannot be made
// crash-safe"). A caller using the statestore persistence reference
// (§6.3) must persist the advanced counter before releasing the
// signature produced here.
func (priv *LmsPrivateKey) Sign(msg []byte, rng io.Reader) (LmsSignature, error) {
	if rng == nil {
		rng = rand.Reader
	}
	params, err := priv.typecode.LmsParams()
	if err != nil {
		return LmsSignature{}, wrapError(KindBadInput, err, "Sign(): invalid LMS type")
	}
	leaves := uint32(1) << params.H
	if priv.q >= leaves {
		return LmsSignature{}, newError(KindOutOfPrivateKeys, "Sign(): private key exhausted")
	}

	q := priv.q
	priv.q++ // advance before anything else can fail; never rolled back

	otsPriv, err := ots.NewPrivateKeyFromSeed(priv.otstype, q, priv.id, priv.seed)
	if err != nil {
		return LmsSignature{}, wrapError(KindBadInput, err, "Sign(): failed to derive leaf %d", q)
	}
	otsSig, err := otsPriv.Sign(msg, rng)
	if err != nil {
		otsPriv.Destroy()
		return LmsSignature{}, wrapError(KindHashBackend, err, "Sign(): OTS signing failed")
	}

	path := merkle.Path(priv.tree, params.H, q)

	Logger.Info().
		Uint32("lms_type", func() uint32 { t, _ := priv.typecode.LmsType(); return t.ToUint32() }()).
		Uint32("q", q).
		Msg("lms: signed message")

	return LmsSignature{
		typecode: priv.typecode,
		q:        q,
		ots:      otsSig,
		path:     path,
	}, nil
}

// Q returns the current value of the internal leaf counter q_next.
func (priv *LmsPrivateKey) Q() uint32 {
	return priv.q
}

// ID returns the private key's 16-octet identifier.
func (priv *LmsPrivateKey) ID() common.ID {
	return priv.id
}

// Destroy zeroizes the seed backing every leaf's OTS private key
// material. Per spec.md §3, destruction "must overwrite all leaf
// private material"; since this implementation derives leaves from a
// single seed (see NewPrivateKeyFromSeed), zeroizing the seed achieves
// that without walking 2^h leaf slots.
func (priv *LmsPrivateKey) Destroy() {
	for i := range priv.seed {
		priv.seed[i] = 0
	}
	priv.seed = nil
	priv.q = uint32(1) << 31 // force Sign to report exhaustion, not undefined behavior
}

// ToBytes serializes the private key for storage: LMS type || LM-OTS
// type || q || I || seed. The tree is not serialized; a reload
// re-derives it from seed and id (NewPrivateKeyFromSeed is
// deterministic), which is cheap at h = 10.
func (priv *LmsPrivateKey) ToBytes() []byte {
	var serialized []byte
	var u32_be [4]byte

	typecode, _ := priv.typecode.LmsType()
	binary.BigEndian.PutUint32(u32_be[:], typecode.ToUint32())
	serialized = append(serialized, u32_be[:]...)

	otstype, _ := priv.otstype.LmsOtsType()
	binary.BigEndian.PutUint32(u32_be[:], otstype.ToUint32())
	serialized = append(serialized, u32_be[:]...)

	binary.BigEndian.PutUint32(u32_be[:], priv.q)
	serialized = append(serialized, u32_be[:]...)

	serialized = append(serialized, priv.id[:]...)
	serialized = append(serialized, priv.seed...)

	return serialized
}

// LmsPrivateKeyFromBytes parses b, the inverse of ToBytes. The tree is
// rebuilt from the recovered seed and id, then q_next is restored to
// the persisted value: a caller (e.g. the statestore reference, §6.3)
// is responsible for ensuring the persisted q_next was durable before
// the signature it produced was released.
func LmsPrivateKeyFromBytes(b []byte) (LmsPrivateKey, error) {
	if len(b) < 12 {
		return LmsPrivateKey{}, newError(KindBadInput, "LmsPrivateKeyFromBytes(): input too short")
	}

	typecode, err := common.Uint32ToLmsType(binary.BigEndian.Uint32(b[0:4])).LmsType()
	if err != nil {
		return LmsPrivateKey{}, wrapError(KindBadInput, err, "LmsPrivateKeyFromBytes(): invalid LMS type")
	}
	otstype, err := common.Uint32ToLmotsType(binary.BigEndian.Uint32(b[4:8])).LmsOtsType()
	if err != nil {
		return LmsPrivateKey{}, wrapError(KindBadInput, err, "LmsPrivateKeyFromBytes(): invalid LM-OTS type")
	}
	params, err := typecode.LmsParams()
	if err != nil {
		return LmsPrivateKey{}, wrapError(KindBadInput, err, "LmsPrivateKeyFromBytes(): invalid LMS type")
	}

	want := uint64(12) + common.ID_LEN + params.M
	if uint64(len(b)) != want {
		return LmsPrivateKey{}, newError(KindBadInput, "LmsPrivateKeyFromBytes(): wrong length")
	}

	q := binary.BigEndian.Uint32(b[8:12])
	id := common.ID(b[12 : 12+common.ID_LEN])
	seed := append([]byte(nil), b[12+common.ID_LEN:]...)

	priv, err := NewPrivateKeyFromSeed(typecode, otstype, id, seed)
	if err != nil {
		return LmsPrivateKey{}, err
	}
	priv.q = q
	return priv, nil
}
