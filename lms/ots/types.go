package ots

import (
	"github.com/lms-go/lms-go/lms/common"
)

// LmsOtsPrivateKey signs exactly one message.
type LmsOtsPrivateKey struct {
	typecode common.LmsOtsAlgorithmType
	q        uint32
	id       common.ID
	x        [][]byte
	valid    bool
}

// LmsOtsPublicKey verifies a signature produced by the matching
// LmsOtsPrivateKey.
type LmsOtsPublicKey struct {
	typecode common.LmsOtsAlgorithmType
	q        uint32
	id       common.ID
	k        []byte
}

// LmsOtsSignature is a signature of one message under one LmsOtsPrivateKey.
type LmsOtsSignature struct {
	typecode common.LmsOtsAlgorithmType
	c        []byte
	y        [][]byte
}
