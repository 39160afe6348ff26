package common

import (
	"crypto/sha256"
	"errors"
	"hash"
)

// ID is the 16-octet key identifier shared by every leaf of one LMS key.
type ID [ID_LEN]byte

type window uint8

const (
	WINDOW_W1 window = 1 << iota
	WINDOW_W2
	WINDOW_W4
	WINDOW_W8
)

// ByteWindow is the representation of bytes used in calculating LM-OTS
// Winternitz chains.
type ByteWindow interface {
	Window() window
	Mask() uint8
}

func (w window) Window() window {
	return w
}

// Mask returns a bit mask (uint8) to bitwise AND with some value.
func (w window) Mask() uint8 {
	switch w {
	case WINDOW_W1:
		return 0x01
	case WINDOW_W2:
		return 0x03
	case WINDOW_W4:
		return 0x0f
	case WINDOW_W8:
		return 0xff
	default:
		panic("invalid window")
	}
}

// lmsTypecode represents a typecode for LMS.
// See https://www.iana.org/assignments/leighton-micali-signatures/leighton-micali-signatures.xhtml#leighton-micali-signatures-1
type lmsTypecode uint32

// lmotsTypecode represents a typecode for LM-OTS.
// See https://www.iana.org/assignments/leighton-micali-signatures/leighton-micali-signatures.xhtml#lm-ots-signatures
type lmotsTypecode uint32

const (
	LMS_RESERVED       lmsTypecode = 0x00000000
	LMS_SHA256_M32_H10 lmsTypecode = 0x00000006
)

const (
	LMOTS_RESERVED      lmotsTypecode = 0x00000000
	LMOTS_SHA256_N32_W8 lmotsTypecode = 0x00000004
)

// LmsAlgorithmType represents a specific instance of LMS.
type LmsAlgorithmType interface {
	LmsType() (lmsTypecode, error)
	LmsParams() (LmsParam, error)
}

// LmsOtsAlgorithmType represents a specific instance of LM-OTS.
type LmsOtsAlgorithmType interface {
	LmsOtsType() (lmotsTypecode, error)
	Params() (LmsOtsParam, error)
}

// Hasher returns a fresh streaming hash function instance.
type Hasher interface {
	New() hash.Hash
}

// Sha256Hasher is the only Hasher this release's registry rows use.
type Sha256Hasher struct{}

func (_ Sha256Hasher) New() hash.Hash {
	return sha256.New()
}

// LmsParam holds the parameters for one instance of the LMS algorithm.
type LmsParam struct {
	Hash Hasher // streaming hash constructor
	M    uint64 // bytes per tree node
	H    uint64 // tree height; leaf count is 2^H
}

// LmsOtsParam holds the parameters for one instance of LM-OTS.
type LmsOtsParam struct {
	H       Hasher     // streaming hash constructor
	N       uint64     // bytes of hash output
	W       ByteWindow // Winternitz coefficient width
	P       uint64     // number of N-byte chains
	LS      uint64     // left shift used in the checksum
	SIG_LEN uint64     // total byte length of a valid signature
}

// lmsRegistry is the parameter lookup table (spec.md §9: "a small tagged
// variant plus a lookup table" rather than compile-time specialization).
// Only the row(s) this release supports are populated; adding support
// for another RFC 8554 LMS type is a one-line addition here.
var lmsRegistry = map[lmsTypecode]LmsParam{
	LMS_SHA256_M32_H10: {Hash: Sha256Hasher{}, M: 32, H: 10},
}

// lmotsRegistry is the LM-OTS analog of lmsRegistry.
var lmotsRegistry = map[lmotsTypecode]LmsOtsParam{
	LMOTS_SHA256_N32_W8: {H: Sha256Hasher{}, N: sha256.Size, W: WINDOW_W8, P: 34, LS: 0, SIG_LEN: 1124},
}

// Uint32ToLmsType returns a lmsTypecode with the same numeric value as x.
func Uint32ToLmsType(x uint32) lmsTypecode {
	return lmsTypecode(x)
}

// ToUint32 returns the numeric value of x.
func (x lmsTypecode) ToUint32() uint32 {
	return uint32(x)
}

// LmsType returns x if it names a registered LMS parameter set; otherwise
// an error ("bad input" per spec.md §4.2).
func (x lmsTypecode) LmsType() (lmsTypecode, error) {
	if _, ok := lmsRegistry[x]; ok {
		return x, nil
	}
	return x, errors.New("LmsType(): unknown or unsupported LMS type code")
}

// LmsSigLength returns the expected total signature length for this LMS
// type paired with the given LM-OTS type.
func (x lmsTypecode) LmsSigLength(otstc lmotsTypecode) (uint64, error) {
	params, err := x.LmsParams()
	if err != nil {
		return 0, err
	}
	otssiglen, err := otstc.LmsOtsSigLength()
	if err != nil {
		return 0, err
	}
	return 4 + 4 + otssiglen + (params.H * params.M), nil
}

// LmsParams returns the LmsParam registered for x.
func (x lmsTypecode) LmsParams() (LmsParam, error) {
	if p, ok := lmsRegistry[x]; ok {
		return p, nil
	}
	return LmsParam{}, errors.New("LmsParams(): unknown or unsupported LMS type code")
}

// Uint32ToLmotsType returns a lmotsTypecode with the same numeric value as x.
func Uint32ToLmotsType(x uint32) lmotsTypecode {
	return lmotsTypecode(x)
}

// ToUint32 returns the numeric value of x.
func (x lmotsTypecode) ToUint32() uint32 {
	return uint32(x)
}

// LmsOtsType returns x if it names a registered LM-OTS parameter set;
// otherwise an error.
func (x lmotsTypecode) LmsOtsType() (lmotsTypecode, error) {
	if _, ok := lmotsRegistry[x]; ok {
		return x, nil
	}
	return x, errors.New("LmsOtsType(): unknown or unsupported LM-OTS type code")
}

// LmsOtsSigLength returns the expected byte length of a signature under x.
func (x lmotsTypecode) LmsOtsSigLength() (uint64, error) {
	params, err := x.Params()
	if err != nil {
		return 0, err
	}
	return params.SIG_LEN, nil
}

// Params returns the LmsOtsParam registered for x.
func (x lmotsTypecode) Params() (LmsOtsParam, error) {
	if p, ok := lmotsRegistry[x]; ok {
		return p, nil
	}
	return LmsOtsParam{}, errors.New("Params(): unknown or unsupported LM-OTS type code")
}
