// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package merkle implements the ordered-pair Merkle commitment used to
// batch a finality provider's per-block public randomness into a
// single root (§4.4): leaf hashing, proof verification, and a
// test-side tree builder.
package merkle

import (
	"bytes"
	"encoding/binary"

	"github.com/luxfi/eots-precompile/curve"
)

// Leaf is one committed (blockNumber, pubRand) pair (§3).
type Leaf struct {
	BlockNumber uint64
	PubRand     [32]byte
}

// Hash returns Keccak256(abi_encode(u64 blockNumber, bytes32 pubRand)),
// the leaf hash defined by §6.4: each field occupies a full, big-endian
// 32-byte word — blockNumber left-padded with zeros — matching every
// other wire-format preimage this module hashes, rather than a packed
// 8-byte integer.
func (l Leaf) Hash() [32]byte {
	var blockWord [32]byte
	binary.BigEndian.PutUint64(blockWord[24:32], l.BlockNumber)
	return curve.Keccak256(blockWord[:], l.PubRand[:])
}

// node computes the ordered-pair parent hash Keccak(min(a,b) || max(a,b)),
// removing left/right ambiguity from the tree (§4.4, §6.4, §9).
func node(a, b [32]byte) [32]byte {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return curve.Keccak256(a[:], b[:])
	}
	return curve.Keccak256(b[:], a[:])
}

// VerifyProof folds leafHash up through proof (a list of sibling
// hashes, closest sibling first) using the ordered-pair rule, and
// reports whether the result equals root.
func VerifyProof(leafHash [32]byte, proof [][32]byte, root [32]byte) bool {
	cur := leafHash
	for _, sibling := range proof {
		cur = node(cur, sibling)
	}
	return cur == root
}

// BuildRoot constructs a full ordered-pair Merkle tree over leaves and
// returns the root together with each leaf's authentication path, in
// the same order as leaves. It is a test/tooling helper (§4.4) — the
// core verification path only ever walks a supplied proof; nothing in
// C1-C6 needs to build a tree itself.
//
// An odd node at any level is carried up to the next level unchanged
// and contributes no sibling hash to the leaves beneath it.
func BuildRoot(leaves []Leaf) (root [32]byte, proofs [][][32]byte) {
	if len(leaves) == 0 {
		return [32]byte{}, nil
	}

	level := make([][32]byte, len(leaves))
	// owners[i] is the set of original leaf indices whose path
	// currently terminates at level[i].
	owners := make([][]int, len(leaves))
	for i, l := range leaves {
		level[i] = l.Hash()
		owners[i] = []int{i}
	}

	proofs = make([][][32]byte, len(leaves))

	for len(level) > 1 {
		var nextLevel [][32]byte
		var nextOwners [][]int

		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				nextLevel = append(nextLevel, level[i])
				nextOwners = append(nextOwners, owners[i])
				continue
			}
			a, b := level[i], level[i+1]
			for _, leafIdx := range owners[i] {
				proofs[leafIdx] = append(proofs[leafIdx], b)
			}
			for _, leafIdx := range owners[i+1] {
				proofs[leafIdx] = append(proofs[leafIdx], a)
			}
			nextLevel = append(nextLevel, node(a, b))
			nextOwners = append(nextOwners, append(append([]int{}, owners[i]...), owners[i+1]...))
		}

		level, owners = nextLevel, nextOwners
	}

	return level[0], proofs
}
