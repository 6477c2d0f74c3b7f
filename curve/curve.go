// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package curve provides the secp256k1 scalar/point arithmetic,
// Keccak-256 hashing, and EVM-style ecrecover point recovery that the
// rest of this module's EOTS verification kernel is built on (§4.1).
//
// It deliberately does not reimplement field arithmetic: group
// operations are delegated to github.com/luxfi/crypto/secp256k1, the
// same curve package this repository's ring and ecies precompiles use.
package curve

import (
	"crypto/elliptic"
	"errors"
	"math/big"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/geth/common"
	"golang.org/x/crypto/sha3"
)

// Q is the secp256k1 group order.
var Q, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

// HalfQ is (Q>>1)+1, the boundary §4.1 requires every public key's
// x-coordinate to stay strictly below.
var HalfQ = new(big.Int).Add(new(big.Int).Rsh(Q, 1), big.NewInt(1))

// ErrInputZero is returned by RecoverAddress when either scalar input
// is zero (§4.1, EcRecoverInputZero in the caller's error taxonomy).
var ErrInputZero = errors.New("curve: ecrecover input is zero")

// ErrOutputZero is returned by RecoverAddress when the recovered point
// is the point at infinity or maps to the zero address (§4.1,
// EcRecoverOutputZero).
var ErrOutputZero = errors.New("curve: ecrecover output is zero")

func curveParams() elliptic.Curve {
	return secp256k1.S256()
}

// Keccak256 hashes data with Keccak-256 (the legacy, pre-NIST-finalization
// variant — not SHA3-256), matching §4.1's "Keccak-256, not SHA-256".
func Keccak256(data ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Point is an affine secp256k1 point.
type Point struct {
	X, Y *big.Int
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.X == nil || p.Y == nil || (p.X.Sign() == 0 && p.Y.Sign() == 0)
}

// ScalarBaseMult returns k*G.
func ScalarBaseMult(k *big.Int) Point {
	x, y := curveParams().ScalarBaseMult(mod(k, Q).Bytes())
	return Point{X: x, Y: y}
}

// ScalarMult returns k*P.
func ScalarMult(p Point, k *big.Int) Point {
	x, y := curveParams().ScalarMult(p.X, p.Y, mod(k, Q).Bytes())
	return Point{X: x, Y: y}
}

// Add returns p+q.
func Add(p, q Point) Point {
	x, y := curveParams().Add(p.X, p.Y, q.X, q.Y)
	return Point{X: x, Y: y}
}

// EvenY reports whether p.Y is even, the "parity" predicate used
// throughout §4.2-§4.3.
func EvenY(p Point) bool {
	return p.Y.Bit(0) == 0
}

// Parity returns the §4.1 parity byte for p: 27 if Y is even, 28
// otherwise.
func Parity(p Point) uint8 {
	if EvenY(p) {
		return 27
	}
	return 28
}

// uncompressed65 returns the 65-byte 0x04||X||Y encoding of p.
func uncompressed65(p Point) []byte {
	out := make([]byte, 65)
	out[0] = 0x04
	p.X.FillBytes(out[1:33])
	p.Y.FillBytes(out[33:65])
	return out
}

// Addr returns the EVM-style address derived from R: the low 20 bytes
// of Keccak256(uncompressed(R)[1:65]) (§4.1, §6.5 "addr(R)").
func Addr(r Point) common.Address {
	raw := uncompressed65(r)
	h := Keccak256(raw[1:])
	var addr common.Address
	copy(addr[:], h[12:])
	return addr
}

// DecompressY recovers the Y coordinate for x under the given parity
// byte (27 = even, 28 = odd), using the curve's DecompressPubkey.
func DecompressY(x *big.Int, parity uint8) (Point, error) {
	compressed := make([]byte, 33)
	if parity == 28 {
		compressed[0] = 0x03
	} else {
		compressed[0] = 0x02
	}
	x.FillBytes(compressed[1:])
	px, py := secp256k1.DecompressPubkey(compressed)
	if px == nil || py == nil {
		return Point{}, ErrOutputZero
	}
	return Point{X: px, Y: py}, nil
}

// RecoverAddress reproduces the semantics of the EVM ecrecover
// precompile applied to the ECDSA-like tuple (r=px, s=sp, v=parity),
// recovering the EVM address of the point (§4.1).
//
// r and s must be non-zero scalars strictly less than Q; if either is
// zero, ErrInputZero is returned. If the recovered point is invalid or
// the point at infinity, ErrOutputZero is returned.
func RecoverAddress(sp *big.Int, parity uint8, px *big.Int, ep *big.Int) (common.Address, error) {
	if sp == nil || ep == nil || sp.Sign() == 0 || ep.Sign() == 0 {
		return common.Address{}, ErrInputZero
	}
	if px == nil || px.Sign() == 0 {
		return common.Address{}, ErrInputZero
	}

	rPoint, err := DecompressY(px, parity)
	if err != nil {
		return common.Address{}, ErrOutputZero
	}

	rInv := new(big.Int).ModInverse(px, Q)
	if rInv == nil {
		return common.Address{}, ErrOutputZero
	}

	// u1 = (Q - sp) * rInv mod Q ; u2 = ep * rInv mod Q
	u1 := mod(new(big.Int).Mul(mod(new(big.Int).Sub(Q, mod(sp, Q)), Q), rInv), Q)
	u2 := mod(new(big.Int).Mul(mod(ep, Q), rInv), Q)

	gTerm := ScalarBaseMult(u1)
	rTerm := ScalarMult(rPoint, u2)
	q := Add(gTerm, rTerm)

	if q.IsInfinity() {
		return common.Address{}, ErrOutputZero
	}

	addr := Addr(q)
	if addr == (common.Address{}) {
		return common.Address{}, ErrOutputZero
	}
	return addr, nil
}

func mod(x, m *big.Int) *big.Int {
	r := new(big.Int).Mod(x, m)
	if r.Sign() < 0 {
		r.Add(r, m)
	}
	return r
}
