// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package finality

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/eots-precompile/config"
	"github.com/luxfi/eots-precompile/curve"
	"github.com/luxfi/eots-precompile/merkle"
	"github.com/luxfi/eots-precompile/oracle"
	"github.com/luxfi/eots-precompile/pubrand"
	"github.com/luxfi/eots-precompile/schnorr"
)

func genEvenYKeypair(t *testing.T) (d *big.Int, p curve.Point) {
	t.Helper()
	for {
		priv, err := ecdsa.GenerateKey(secp256k1.S256(), rand.Reader)
		require.NoError(t, err)
		pt := curve.Point{X: priv.PublicKey.X, Y: priv.PublicKey.Y}
		if curve.EvenY(pt) && pt.X.Cmp(curve.HalfQ) < 0 {
			return priv.D, pt
		}
	}
}

// fpFixture is one finality provider wired up end to end: a committed
// pub-rand batch for one block, plus an EOTS signature over a given
// output root.
type fpFixture struct {
	fpKey       []byte
	pubRand     [32]byte
	merkleProof [][32]byte
	sub         EOTSSubmission
}

func buildFP(t *testing.T, reg *pubrand.Registry, epoch, block uint64, outputRoot [32]byte) fpFixture {
	t.Helper()
	d, p := genEvenYKeypair(t)
	k, r := genEvenYKeypair(t)

	fpKey := secp256k1.CompressPubkey(p.X, p.Y)

	leaves := []merkle.Leaf{{BlockNumber: block, PubRand: bigToBytes32(r.X)}}
	root, proofs := merkle.BuildRoot(leaves)

	var epochBytes [8]byte
	binary.BigEndian.PutUint64(epochBytes[:], epoch)
	popMsg := curve.Keccak256(epochBytes[:], fpKey, root[:])
	popE, popS := schnorr.Sign(d, k, popMsg)
	pop := schnorr.Pack(schnorr.Signature{Parity: curve.Parity(p), Px: p.X, M: popMsg, E: popE, S: popS})

	require.NoError(t, reg.Commit(epoch, fpKey, pop, root))

	sigE, sigS := schnorr.Sign(d, k, outputRoot)

	return fpFixture{
		fpKey:       fpKey,
		pubRand:     bigToBytes32(r.X),
		merkleProof: proofs[0],
		sub: EOTSSubmission{
			FPKey:       fpKey,
			PubRand:     bigToBytes32(r.X),
			MerkleProof: proofs[0],
			Parity:      curve.Parity(p),
			Px:          p.X,
			E:           sigE,
			Sig:         sigS,
		},
	}
}

func bigToBytes32(v *big.Int) [32]byte {
	var out [32]byte
	v.FillBytes(out[:])
	return out
}

func newTestConfig(currentBlock uint64) config.Config {
	return config.Config{
		ChainID:    1,
		StartBlock: 5,
		EpochSize:  4,
		Oracle:     oracle.NewStatic(currentBlock),
	}
}

func TestVerifyEots_SingleFPQuorum(t *testing.T) {
	cfg := newTestConfig(0)
	reg := pubrand.New(cfg)
	var outputRoot [32]byte
	copy(outputRoot[:], []byte("random byte array output root 3"))

	fp := buildFP(t, reg, 1, 5, outputRoot)

	st := cfg.Oracle.(*oracle.Static)
	st.SetTotalVotingPower(1, 5, 100)
	st.SetVotingPowerFor(1, 5, fp.fpKey, 100)

	agg := New(cfg, reg)
	ok, err := agg.VerifyEots(1, 5, outputRoot, []EOTSSubmission{fp.sub})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyEots_ThresholdJustMissed(t *testing.T) {
	cfg := newTestConfig(0)
	reg := pubrand.New(cfg)
	var outputRoot [32]byte
	copy(outputRoot[:], []byte("random byte array output root 3"))

	fp1 := buildFP(t, reg, 1, 5, outputRoot)
	fp2 := buildFP(t, reg, 1, 5, outputRoot)

	st := cfg.Oracle.(*oracle.Static)
	st.SetTotalVotingPower(1, 5, 100)
	st.SetVotingPowerFor(1, 5, fp1.fpKey, 32)
	st.SetVotingPowerFor(1, 5, fp2.fpKey, 33)

	// threshold = floor(100*2/3) = 66; accumulated = 65 < 66.
	agg := New(cfg, reg)
	ok, err := agg.VerifyEots(1, 5, outputRoot, []EOTSSubmission{fp1.sub, fp2.sub})
	require.NoError(t, err)
	require.False(t, ok)
}

// TestVerifyEots_ThresholdExactlyMetBoundary exercises §9's explicit
// decision that a signer set summing to exactly the floor-divided
// threshold is sufficient (not strictly greater).
func TestVerifyEots_ThresholdExactlyMetBoundary(t *testing.T) {
	cfg := newTestConfig(0)
	reg := pubrand.New(cfg)
	var outputRoot [32]byte
	copy(outputRoot[:], []byte("random byte array output root 3"))

	fp1 := buildFP(t, reg, 1, 5, outputRoot)
	fp2 := buildFP(t, reg, 1, 5, outputRoot)

	st := cfg.Oracle.(*oracle.Static)
	st.SetTotalVotingPower(1, 5, 100)
	st.SetVotingPowerFor(1, 5, fp1.fpKey, 33)
	st.SetVotingPowerFor(1, 5, fp2.fpKey, 33)

	agg := New(cfg, reg)
	ok, err := agg.VerifyEots(1, 5, outputRoot, []EOTSSubmission{fp1.sub, fp2.sub})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyEots_QuorumMonotonicity(t *testing.T) {
	cfg := newTestConfig(0)
	reg := pubrand.New(cfg)
	var outputRoot [32]byte
	copy(outputRoot[:], []byte("random byte array output root 3"))

	fp1 := buildFP(t, reg, 1, 5, outputRoot)
	fp2 := buildFP(t, reg, 1, 5, outputRoot)

	st := cfg.Oracle.(*oracle.Static)
	st.SetTotalVotingPower(1, 5, 100)
	st.SetVotingPowerFor(1, 5, fp1.fpKey, 70)
	st.SetVotingPowerFor(1, 5, fp2.fpKey, 10)

	agg := New(cfg, reg)
	okSubset, err := agg.VerifyEots(1, 5, outputRoot, []EOTSSubmission{fp1.sub})
	require.NoError(t, err)
	require.True(t, okSubset)

	okSuperset, err := agg.VerifyEots(1, 5, outputRoot, []EOTSSubmission{fp1.sub, fp2.sub})
	require.NoError(t, err)
	require.True(t, okSuperset)
}

func TestVerifyEots_EmptySubmissions(t *testing.T) {
	cfg := newTestConfig(0)
	reg := pubrand.New(cfg)
	agg := New(cfg, reg)

	_, err := agg.VerifyEots(1, 5, [32]byte{}, nil)
	require.ErrorIs(t, err, ErrDataEmpty)
}

func TestVerifyEots_BlockRangeBoundary(t *testing.T) {
	cfg := newTestConfig(0)
	reg := pubrand.New(cfg)
	agg := New(cfg, reg)

	// epoch 1 spans blocks [5,8].
	_, err := agg.VerifyEots(1, 9, [32]byte{}, []EOTSSubmission{{}})
	require.ErrorIs(t, err, ErrInvalidBlockRange)
}

func TestVerifyEots_PubRandMismatchAborts(t *testing.T) {
	cfg := newTestConfig(0)
	reg := pubrand.New(cfg)
	var outputRoot [32]byte
	copy(outputRoot[:], []byte("random byte array output root 3"))

	fp := buildFP(t, reg, 1, 5, outputRoot)
	fp.sub.PubRand[0] ^= 0xFF // corrupt the pub-rand so the proof fails

	st := cfg.Oracle.(*oracle.Static)
	st.SetTotalVotingPower(1, 5, 100)
	st.SetVotingPowerFor(1, 5, fp.fpKey, 100)

	agg := New(cfg, reg)
	_, err := agg.VerifyEots(1, 5, outputRoot, []EOTSSubmission{fp.sub})
	require.ErrorIs(t, err, ErrPubRandMismatch)
}
