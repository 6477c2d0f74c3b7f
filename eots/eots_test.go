// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package eots

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

func TestSignThenVerify_RequiresMatchingPubRandAndEvenR(t *testing.T) {
	d := genEvenYScalar(t)
	k := genEvenYScalar(t)
	p := curve.ScalarBaseMult(d)
	r := curve.ScalarBaseMult(k)

	var m [32]byte
	copy(m[:], []byte("finality output root 0123456789"))

	e, s := Sign(d, k, m)

	ok, err := Verify(p, r, r.X, m, e, s)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerify_PubRandMismatchRejected(t *testing.T) {
	d := genEvenYScalar(t)
	k := genEvenYScalar(t)
	p := curve.ScalarBaseMult(d)
	r := curve.ScalarBaseMult(k)

	var m [32]byte
	copy(m[:], []byte("finality output root 0123456789"))
	e, s := Sign(d, k, m)

	wrongPubRand := new(big.Int).Add(r.X, big.NewInt(1))
	_, err := Verify(p, r, wrongPubRand, m, e, s)
	require.ErrorIs(t, err, ErrPubRandMismatch)
}

func TestExtract_RecoversKeyFromReusedNonce(t *testing.T) {
	d := genEvenYScalar(t)
	k := genEvenYScalar(t)
	p := curve.ScalarBaseMult(d)
	r := curve.ScalarBaseMult(k)

	var m1, m2 [32]byte
	copy(m1[:], []byte("output root for block N, 32byte"))
	copy(m2[:], []byte("output root for block N+1, 32by"))

	_, s1 := Sign(d, k, m1)
	_, s2 := Sign(d, k, m2)

	extracted, err := Extract(p, r, m1, s1, m2, s2)
	require.NoError(t, err)
	require.Equal(t, 0, extracted.Cmp(d))
}

func TestExtract_IdenticalMessagesRejected(t *testing.T) {
	d := genEvenYScalar(t)
	k := genEvenYScalar(t)
	p := curve.ScalarBaseMult(d)
	r := curve.ScalarBaseMult(k)

	var m [32]byte
	copy(m[:], []byte("same output root thirty two byt"))
	_, s1 := Sign(d, k, m)
	_, s2 := Sign(d, k, m)

	_, err := Extract(p, r, m, s1, m, s2)
	require.ErrorIs(t, err, ErrIdenticalSignatures)
}

func TestExtract_IdenticalSValuesRejected(t *testing.T) {
	d := genEvenYScalar(t)
	k := genEvenYScalar(t)
	p := curve.ScalarBaseMult(d)
	r := curve.ScalarBaseMult(k)

	var m1, m2 [32]byte
	copy(m1[:], []byte("output root for block N, 32byte"))
	copy(m2[:], []byte("output root for block N+1, 32by"))
	_, s1 := Sign(d, k, m1)

	_, err := Extract(p, r, m1, s1, m2, s1)
	require.ErrorIs(t, err, ErrIdenticalSignatures)
}
