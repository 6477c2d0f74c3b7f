// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package schnorr

import (
	"crypto/ecdsa"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/eots-precompile/curve"
)

// genEvenYScalar draws random scalars until k*G has even y and an
// x-coordinate below HalfQ, the bound Verify enforces on Px.
func genEvenYScalar(t *testing.T) *big.Int {
	t.Helper()
	for {
		priv, err := ecdsa.GenerateKey(secp256k1.S256(), rand.Reader)
		require.NoError(t, err)
		if pt := curve.ScalarBaseMult(priv.D); curve.EvenY(pt) && pt.X.Cmp(curve.HalfQ) < 0 {
			return priv.D
		}
	}
}

func TestSignThenVerify_Succeeds(t *testing.T) {
	d := genEvenYScalar(t)
	k := genEvenYScalar(t)
	p := curve.ScalarBaseMult(d)

	var m [32]byte
	copy(m[:], []byte("a rollup output root, 32 bytes!"))

	e, s := Sign(d, k, m)

	ok, err := Verify(curve.Parity(p), p.X, m, e, s)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerify_BitFlipsFail(t *testing.T) {
	d := genEvenYScalar(t)
	k := genEvenYScalar(t)
	p := curve.ScalarBaseMult(d)

	var m [32]byte
	copy(m[:], []byte("a rollup output root, 32 bytes!"))

	e, s := Sign(d, k, m)
	parity := curve.Parity(p)

	t.Run("flip message", func(t *testing.T) {
		flipped := m
		flipped[0] ^= 0x01
		ok, _ := Verify(parity, p.X, flipped, e, s)
		require.False(t, ok)
	})

	t.Run("flip e", func(t *testing.T) {
		flippedE := new(big.Int).Xor(e, big.NewInt(1))
		ok, _ := Verify(parity, p.X, m, flippedE, s)
		require.False(t, ok)
	})

	t.Run("flip s", func(t *testing.T) {
		flippedS := new(big.Int).Xor(s, big.NewInt(1))
		ok, err := Verify(parity, p.X, m, e, flippedS)
		if err == nil {
			require.False(t, ok)
		}
	})

	t.Run("flip parity", func(t *testing.T) {
		otherParity := uint8(27)
		if parity == 27 {
			otherParity = 28
		}
		ok, _ := Verify(otherParity, p.X, m, e, s)
		require.False(t, ok)
	})

	t.Run("flip px", func(t *testing.T) {
		flippedPx := new(big.Int).Xor(p.X, big.NewInt(1))
		ok, err := Verify(parity, flippedPx, m, e, s)
		if err == nil {
			require.False(t, ok)
		}
	})
}

func TestVerify_InvalidPublicKeyBoundary(t *testing.T) {
	var m [32]byte
	below := new(big.Int).Sub(curve.HalfQ, big.NewInt(1))
	_, err := Verify(27, below, m, big.NewInt(1), big.NewInt(1))
	require.NotErrorIs(t, err, ErrInvalidPublicKey)

	_, err = Verify(27, curve.HalfQ, m, big.NewInt(1), big.NewInt(1))
	require.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestVerify_SignatureOverflowBoundary(t *testing.T) {
	var m [32]byte
	px := big.NewInt(5)

	below := new(big.Int).Sub(curve.Q, big.NewInt(1))
	_, err := Verify(27, px, m, big.NewInt(1), below)
	require.NotErrorIs(t, err, ErrSignatureOverflow)

	_, err = Verify(27, px, m, big.NewInt(1), curve.Q)
	require.ErrorIs(t, err, ErrSignatureOverflow)
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	sig := Signature{
		Parity: 28,
		Px:     big.NewInt(123456789),
		M:      [32]byte{1, 2, 3},
		E:      big.NewInt(987654321),
		S:      big.NewInt(42),
	}

	packed := Pack(sig)
	require.Len(t, packed, PackedLen)

	unpacked, err := Unpack(packed)
	require.NoError(t, err)
	require.Equal(t, sig.Parity, unpacked.Parity)
	require.Equal(t, 0, sig.Px.Cmp(unpacked.Px))
	require.Equal(t, sig.M, unpacked.M)
	require.Equal(t, 0, sig.E.Cmp(unpacked.E))
	require.Equal(t, 0, sig.S.Cmp(unpacked.S))
}

func TestUnpack_WrongLength(t *testing.T) {
	_, err := Unpack(make([]byte, 159))
	require.Error(t, err)

	var lenErr *InvalidSignatureLengthError
	require.ErrorAs(t, err, &lenErr)
	require.Equal(t, 159, lenErr.Got)
	require.ErrorIs(t, err, ErrInvalidSignatureLengthSentinel)
}
