// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package eots implements the extractable one-time signature scheme
// (§4.3): Sign/Verify layered directly on the schnorr kernel, plus
// Extract, which recovers the signer's private key from two
// signatures that reused the same nonce.
package eots

import (
	"errors"
	"math/big"

	"github.com/rs/zerolog"

	"github.com/luxfi/eots-precompile/curve"
	"github.com/luxfi/eots-precompile/schnorr"
)

// Errors (§7).
var (
	ErrPubRandMismatch     = errors.New("eots: R.x does not match the committed pubRand")
	ErrOddR                = errors.New("eots: R.y is odd")
	ErrIdenticalSignatures = errors.New("eots: m1 and m2 (or s1 and s2) are identical")
	ErrExtractionMismatch  = errors.New("eots: extracted key does not reproduce P")
)

// Logger receives one warning line whenever Extract succeeds (§10
// ambient logging). Defaults to discarding; callers that want the
// extraction event observed should overwrite it at process start.
var Logger = zerolog.Nop()

// Sign is identical to schnorr.Sign: parity normalization stays
// disabled in this variant (§4.3, §9 decision). The caller must supply
// a (d,k) pair whose corresponding points P=d*G and R=k*G both already
// have even y; a signature made with an odd-y R fails Verify with
// ErrOddR.
func Sign(d, k *big.Int, m [32]byte) (e, s *big.Int) {
	return schnorr.Sign(d, k, m)
}

// Verify checks an EOTS signature against the claimed public key point
// P and nonce point R, requiring R.y even and R.x equal to the
// committed pubRand before delegating to schnorr.Verify (§4.3).
func Verify(p, r curve.Point, pubRand *big.Int, m [32]byte, e, s *big.Int) (bool, error) {
	if !curve.EvenY(r) {
		return false, ErrOddR
	}
	if pubRand == nil || r.X == nil || r.X.Cmp(pubRand) != 0 {
		return false, ErrPubRandMismatch
	}
	parity := curve.Parity(p)
	return schnorr.Verify(parity, p.X, m, e, s)
}

// Extract recovers the private key d shared by two EOTS signatures
// that reused the same nonce R (§4.3, §8 "EOTS extraction law"):
//
//	d = (s1 - s2) * (e1 - e2)^-1 mod Q
//
// The signatures must be over distinct messages (m1 != m2) and must
// carry distinct s values; otherwise ErrIdenticalSignatures is
// returned. The recovered key is checked against P before it is
// returned: if d*G != P, ErrExtractionMismatch is returned instead.
func Extract(p, r curve.Point, m1 [32]byte, s1 *big.Int, m2 [32]byte, s2 *big.Int) (*big.Int, error) {
	if m1 == m2 || s1.Cmp(s2) == 0 {
		return nil, ErrIdenticalSignatures
	}

	parity := curve.Parity(p)
	addr := curve.Addr(r)

	e1 := challengeFor(addr, parity, p.X, m1)
	e2 := challengeFor(addr, parity, p.X, m2)

	eDiff := modQ(new(big.Int).Sub(e1, e2))
	if eDiff.Sign() == 0 {
		return nil, ErrIdenticalSignatures
	}
	eDiffInv := new(big.Int).ModInverse(eDiff, curve.Q)
	if eDiffInv == nil {
		return nil, ErrExtractionMismatch
	}

	sDiff := modQ(new(big.Int).Sub(s1, s2))
	d := modQ(new(big.Int).Mul(sDiff, eDiffInv))

	check := curve.ScalarBaseMult(d)
	if check.X.Cmp(p.X) != 0 || check.Y.Cmp(p.Y) != 0 {
		return nil, ErrExtractionMismatch
	}
	logExtraction(Logger, d)
	return d, nil
}

// challengeFor recomputes e = Keccak(addr || parity || Px || m) mod Q,
// matching schnorr's unexported challenge routine (§6.5).
func challengeFor(addr [20]byte, parity uint8, px *big.Int, m [32]byte) *big.Int {
	var pxBytes [32]byte
	px.FillBytes(pxBytes[:])
	h := curve.Keccak256(addr[:], []byte{parity}, pxBytes[:], m[:])
	return modQ(new(big.Int).SetBytes(h[:]))
}

func modQ(x *big.Int) *big.Int {
	r := new(big.Int).Mod(x, curve.Q)
	if r.Sign() < 0 {
		r.Add(r, curve.Q)
	}
	return r
}

// logExtraction emits a single structured line when a key extraction
// succeeds (§10 ambient logging: "a key extraction" is one of the
// three operationally meaningful transitions worth a log line).
func logExtraction(log zerolog.Logger, d *big.Int) {
	log.Warn().Str("d", d.Text(16)).Msg("eots: private key extracted from reused nonce")
}
