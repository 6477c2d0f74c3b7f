// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pubrand implements the public-randomness commitment
// registry (§4.5): per-(epoch, FP key) Merkle root storage gated by a
// Schnorr proof of possession, with duplicate rejection and an
// epoch-window check against the host's current L2 block.
package pubrand

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/luxfi/eots-precompile/config"
	"github.com/luxfi/eots-precompile/curve"
	"github.com/luxfi/eots-precompile/merkle"
	"github.com/luxfi/eots-precompile/schnorr"
)

// Errors (§7).
var (
	ErrInvalidBlockRange       = errors.New("pubrand: epoch has already ended")
	ErrDuplicateBatch          = errors.New("pubrand: (epoch, fpKey) already committed")
	ErrInvalidProofOfPossession = errors.New("pubrand: proof of possession does not verify")
)

// MessageMismatchError reports that a proof of possession's signed
// message does not match the canonical commit preimage (§6.3, §7).
type MessageMismatchError struct {
	Expected [32]byte
	Actual   [32]byte
}

func (e *MessageMismatchError) Error() string {
	return "pubrand: proof-of-possession message mismatch"
}

// key is the registry's fixed-width map key: u64_be(epoch) followed
// by fpKey right-padded/truncated to 33 bytes, the width of a
// compressed secp256k1 public key (§9 decision: a single-level map
// keyed on a fixed [41]byte, avoiding a nested-map double lookup).
type key [41]byte

func makeKey(epoch uint64, fpKey []byte) key {
	var k key
	binary.BigEndian.PutUint64(k[0:8], epoch)
	copy(k[8:41], fpKey)
	return k
}

// CommitPubRandBatch is the event emitted by a successful Commit
// (§6.6).
type CommitPubRandBatch struct {
	Epoch      uint64
	FPKey      []byte
	MerkleRoot [32]byte
}

// Registry holds the (epoch, fpKey) -> Merkle root map. Its exclusive
// ownership of that map is the only state in C1-C6 (§3 "Ownership").
// All methods are guarded by a single mutex over the whole map (§4.5,
// §5) — the same mutex-over-a-map-of-T pattern this codebase's
// threshold manager uses, adapted here to stay fully synchronous.
type Registry struct {
	cfg config.Config
	log zerolog.Logger

	mu     sync.RWMutex
	roots  map[key][32]byte
	events []CommitPubRandBatch
}

// New constructs an empty Registry bound to cfg.
func New(cfg config.Config) *Registry {
	return &Registry{
		cfg:   cfg,
		log:   zerolog.Nop(),
		roots: make(map[key][32]byte),
	}
}

// SetLogger overrides the registry's logger (default: discard).
func (r *Registry) SetLogger(log zerolog.Logger) {
	r.log = log
}

// Commit validates and stores a batch of pub-rand commitments for
// (epoch, fpKey) (§4.5).
func (r *Registry) Commit(epoch uint64, fpKey []byte, proofOfPossession []byte, merkleRoot [32]byte) error {
	_, toBlock := r.cfg.EpochRange(epoch)
	if toBlock <= r.cfg.Oracle.CurrentL2Block() {
		return ErrInvalidBlockRange
	}

	sig, err := schnorr.Unpack(proofOfPossession)
	if err != nil {
		return err
	}

	var epochBytes [8]byte
	binary.BigEndian.PutUint64(epochBytes[:], epoch)
	expected := curve.Keccak256(epochBytes[:], fpKey, merkleRoot[:])
	if sig.M != expected {
		return &MessageMismatchError{Expected: expected, Actual: sig.M}
	}

	ok, err := schnorr.Verify(sig.Parity, sig.Px, sig.M, sig.E, sig.S)
	if err != nil || !ok {
		return ErrInvalidProofOfPossession
	}

	k := makeKey(epoch, fpKey)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.roots[k]; exists {
		return ErrDuplicateBatch
	}
	r.roots[k] = merkleRoot
	event := CommitPubRandBatch{Epoch: epoch, FPKey: append([]byte(nil), fpKey...), MerkleRoot: merkleRoot}
	r.events = append(r.events, event)

	r.log.Info().
		Uint64("epoch", epoch).
		Hex("fpKey", fpKey).
		Hex("merkleRoot", merkleRoot[:]).
		Msg("pubrand: committed batch")

	return nil
}

// VerifyPubRandAtBlock reports whether pubRand at atBlock is a member
// of the Merkle tree committed for (epoch, fpKey), per proof (§4.5).
// An absent commitment returns false, never an error.
func (r *Registry) VerifyPubRandAtBlock(epoch uint64, fpKey []byte, atBlock uint64, pubRand [32]byte, proof [][32]byte) bool {
	k := makeKey(epoch, fpKey)

	r.mu.RLock()
	root, ok := r.roots[k]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	leaf := merkle.Leaf{BlockNumber: atBlock, PubRand: pubRand}
	return merkle.VerifyProof(leaf.Hash(), proof, root)
}

// Root returns the stored root for (epoch, fpKey), if any.
func (r *Registry) Root(epoch uint64, fpKey []byte) (root [32]byte, ok bool) {
	k := makeKey(epoch, fpKey)
	r.mu.RLock()
	defer r.mu.RUnlock()
	root, ok = r.roots[k]
	return root, ok
}

// Events returns every CommitPubRandBatch emitted so far, in commit
// order (§6.6).
func (r *Registry) Events() []CommitPubRandBatch {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]CommitPubRandBatch, len(r.events))
	copy(out, r.events)
	return out
}
