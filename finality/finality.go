// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package finality

import (
	"errors"
	"math/big"

	"github.com/rs/zerolog"

	"github.com/luxfi/eots-precompile/config"
	"github.com/luxfi/eots-precompile/pubrand"
	"github.com/luxfi/eots-precompile/schnorr"
)

// Errors (§7).
var (
	ErrInvalidBlockRange = errors.New("finality: atBlock outside the epoch's block range")
	ErrDataEmpty         = errors.New("finality: submissions is empty")
	ErrPubRandMismatch   = errors.New("finality: submission's Merkle proof does not verify")
)

// EOTSSubmission is one finality provider's claim for a block (§3).
// Every field is caller-supplied; VerifyEots checks but never mutates
// it.
type EOTSSubmission struct {
	FPKey       []byte
	PubRand     [32]byte
	MerkleProof [][32]byte
	Parity      uint8
	Px          *big.Int
	E           *big.Int
	Sig         *big.Int
}

// Aggregator ties a pub-rand Registry to a Config and oracle to
// decide block finality from a batch of submissions (§4.6).
type Aggregator struct {
	cfg      config.Config
	registry *pubrand.Registry
	log      zerolog.Logger
}

// New constructs an Aggregator over registry using cfg for epoch
// range derivation and oracle access.
func New(cfg config.Config, registry *pubrand.Registry) *Aggregator {
	return &Aggregator{cfg: cfg, registry: registry, log: zerolog.Nop()}
}

// SetLogger overrides the aggregator's logger (default: discard).
func (a *Aggregator) SetLogger(log zerolog.Logger) {
	a.log = log
}

// VerifyEots decides whether submissions for epoch at atBlock, over
// outputRoot, meet the two-thirds voting-power quorum (§4.6).
//
// Submissions are processed in the order given; a submission whose
// pub-rand proof fails aborts the whole call (ErrPubRandMismatch) —
// the caller handed in an internally inconsistent record. A
// submission whose signature fails is silently skipped: that signer
// simply does not count toward the quorum. The call returns true as
// soon as the accumulated voting power reaches the threshold
// (early exit, §4.6 step 5c).
func (a *Aggregator) VerifyEots(epoch uint64, atBlock uint64, outputRoot [32]byte, submissions []EOTSSubmission) (bool, error) {
	fromBlock, toBlock := a.cfg.EpochRange(epoch)
	if atBlock < fromBlock || atBlock > toBlock {
		return false, ErrInvalidBlockRange
	}
	if len(submissions) == 0 {
		return false, ErrDataEmpty
	}

	chainID := a.cfg.ChainID
	total := a.cfg.Oracle.TotalVotingPower(chainID, atBlock)
	threshold := (total * 2) / 3

	var accumulated uint64
	for _, sub := range submissions {
		if !a.registry.VerifyPubRandAtBlock(epoch, sub.FPKey, atBlock, sub.PubRand, sub.MerkleProof) {
			return false, ErrPubRandMismatch
		}

		ok, err := schnorr.Verify(sub.Parity, sub.Px, outputRoot, sub.E, sub.Sig)
		if err != nil || !ok {
			continue
		}

		accumulated += a.cfg.Oracle.VotingPowerFor(chainID, atBlock, sub.FPKey)
		if accumulated >= threshold {
			a.log.Info().
				Uint64("epoch", epoch).
				Uint64("atBlock", atBlock).
				Uint64("accumulated", accumulated).
				Uint64("threshold", threshold).
				Msg("finality: quorum reached")
			return true, nil
		}
	}

	return false, nil
}
