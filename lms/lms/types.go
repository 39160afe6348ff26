// Package lms implements Leighton-Micali Hash-Based Signatures (RFC 8554):
// the Merkle tree composed over LM-OTS one-time signatures that forms
// the core of a stateful hash-based signature scheme.
package lms

import (
	"github.com/lms-go/lms-go/lms/common"
	"github.com/lms-go/lms-go/lms/ots"
)

// LmsPrivateKey signs a finite number of messages (2^h, one per leaf).
// It is exclusively owned by its signer: concurrent calls on the same
// value are forbidden, though callers may serialize access with their
// own mutex (spec.md §5).
type LmsPrivateKey struct {
	typecode common.LmsAlgorithmType
	otstype  common.LmsOtsAlgorithmType
	q        uint32
	id       common.ID
	seed     []byte
	tree     [][]byte // full 1-indexed Merkle node array, see lms/merkle
}

// LmsPublicKey verifies signatures made by the matching LmsPrivateKey.
// Immutable once populated; safe to share across concurrent verifies.
type LmsPublicKey struct {
	typecode common.LmsAlgorithmType
	otstype  common.LmsOtsAlgorithmType
	id       common.ID
	k        []byte
}

// LmsSignature is a signature produced by an LmsPrivateKey that an
// LmsPublicKey can verify for a given message.
type LmsSignature struct {
	typecode common.LmsAlgorithmType
	q        uint32
	ots      ots.LmsOtsSignature
	path     [][]byte
}
