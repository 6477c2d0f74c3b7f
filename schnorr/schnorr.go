// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package schnorr implements the EVM-compatible Schnorr-over-secp256k1
// verification kernel (§4.2): pack/unpack of the fixed signature tuple
// and the non-standard ecrecover-based Verify/Sign pair.
package schnorr

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/luxfi/eots-precompile/curve"
)

// Signature errors (§7).
var (
	ErrInvalidPublicKey                = errors.New("schnorr: Px >= HALF_Q")
	ErrSignatureOverflow               = errors.New("schnorr: s >= Q")
	ErrEcRecoverInputZero              = errors.New("schnorr: ecrecover input is zero")
	ErrEcRecoverOutputZero             = errors.New("schnorr: ecrecover output is zero")
	ErrInvalidSignatureLengthSentinel  = errors.New("schnorr: invalid packed signature length")
)

// InvalidSignatureLengthError reports the observed length of a malformed
// packed signature. It widens the source's uint8-truncated length
// report (§9 open question): Got is an int, never a uint8.
type InvalidSignatureLengthError struct {
	Got int
}

func (e *InvalidSignatureLengthError) Error() string {
	return fmt.Sprintf("%s: got %d bytes, want %d", ErrInvalidSignatureLengthSentinel, e.Got, PackedLen)
}

func (e *InvalidSignatureLengthError) Unwrap() error {
	return ErrInvalidSignatureLengthSentinel
}

// Signature is the unpacked fixed Schnorr tuple (§4.2, §6.2).
type Signature struct {
	Parity uint8
	Px     *big.Int
	M      [32]byte
	E      *big.Int
	S      *big.Int
}

// PackedLen is the fixed byte length of a packed Signature (§6.2).
const PackedLen = 160

// Pack encodes sig into the fixed 160-byte wire tuple using the host's
// canonical tuple encoding: every field, including the 1-byte parity,
// occupies a full 32-byte word (5*32 = 160, §4.2, §6.2) —
// parity_word(32) || Px(32) || m(32) || e(32) || s(32).
func Pack(sig Signature) []byte {
	out := make([]byte, PackedLen)
	out[31] = sig.Parity
	sig.Px.FillBytes(out[32:64])
	copy(out[64:96], sig.M[:])
	sig.E.FillBytes(out[96:128])
	sig.S.FillBytes(out[128:160])
	return out
}

// Unpack decodes a packed 160-byte Signature, failing with
// InvalidSignatureLengthError if len(data) != PackedLen.
func Unpack(data []byte) (Signature, error) {
	if len(data) != PackedLen {
		return Signature{}, &InvalidSignatureLengthError{Got: len(data)}
	}
	var sig Signature
	sig.Parity = data[31]
	sig.Px = new(big.Int).SetBytes(data[32:64])
	copy(sig.M[:], data[64:96])
	sig.E = new(big.Int).SetBytes(data[96:128])
	sig.S = new(big.Int).SetBytes(data[128:160])
	return sig, nil
}

// Verify checks the EVM-compatible Schnorr equation (§4.2):
//  1. sp = (Q - (s*Px mod Q)) mod Q
//  2. ep = (Q - (e*Px mod Q)) mod Q
//  3. Z  = recoverAddress(sp, parity, Px, ep)
//  4. accept iff e == Keccak(Z || parity || Px || m) mod Q
func Verify(parity uint8, px *big.Int, m [32]byte, e, s *big.Int) (bool, error) {
	if px == nil || px.Cmp(curve.HalfQ) >= 0 {
		return false, ErrInvalidPublicKey
	}
	if s == nil || s.Cmp(curve.Q) >= 0 {
		return false, ErrSignatureOverflow
	}
	if e == nil {
		e = new(big.Int)
	}

	sp := modQ(new(big.Int).Sub(curve.Q, modQ(new(big.Int).Mul(s, px))))
	ep := modQ(new(big.Int).Sub(curve.Q, modQ(new(big.Int).Mul(e, px))))

	if sp.Sign() == 0 {
		return false, ErrEcRecoverInputZero
	}

	z, err := curve.RecoverAddress(sp, parity, px, ep)
	if err != nil {
		if errors.Is(err, curve.ErrInputZero) {
			return false, ErrEcRecoverInputZero
		}
		return false, ErrEcRecoverOutputZero
	}

	recomputed := challenge(z, parity, px, m)
	return recomputed.Cmp(e) == 0, nil
}

// challenge computes e = Keccak(addr(R) || parity || Px || m) mod Q,
// used identically by Verify's recomputation step and by Sign (§6.5).
func challenge(addr [20]byte, parity uint8, px *big.Int, m [32]byte) *big.Int {
	var pxBytes [32]byte
	px.FillBytes(pxBytes[:])
	h := curve.Keccak256(addr[:], []byte{parity}, pxBytes[:], m[:])
	return modQ(new(big.Int).SetBytes(h[:]))
}

// Sign implements the reference/test-only signing routine of §4.2.
// Parity normalization is intentionally NOT performed here: the caller
// must supply a keypair and nonce whose points already have even y, as
// required by the EOTS variant in §4.3/§9. If R or P has odd y, Sign
// still produces a value; Verify accepts it when given curve.Parity(P),
// while eots.Verify rejects any R with odd y (ErrOddR).
func Sign(d, k *big.Int, m [32]byte) (e, s *big.Int) {
	r := curve.ScalarBaseMult(k)
	p := curve.ScalarBaseMult(d)

	addr := curve.Addr(r)
	parity := curve.Parity(p)

	e = challenge(addr, parity, p.X, m)
	s = modQ(new(big.Int).Add(k, modQ(new(big.Int).Mul(e, d))))
	return e, s
}

func modQ(x *big.Int) *big.Int {
	r := new(big.Int).Mod(x, curve.Q)
	if r.Sign() < 0 {
		r.Add(r, curve.Q)
	}
	return r
}
