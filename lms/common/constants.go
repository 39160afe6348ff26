// Package common contains the data types and utilities shared by the
// lms and ots packages: the byte codec, the parameter registry, and the
// RFC 8554 domain-separation constants.
//
// This file defines values that should be treated as constants.
package common

// ID_LEN is the length in octets of the 16-octet key identifier I.
const ID_LEN uint64 = 16

// Domain separators from RFC 8554 §3.1. Arrays cannot be declared
// constant in Go; please never change these values.
var D_PBLC = [2]uint8{0x80, 0x80}
var D_MESG = [2]uint8{0x81, 0x81}
var D_LEAF = [2]uint8{0x82, 0x82}
var D_INTR = [2]uint8{0x83, 0x83}
