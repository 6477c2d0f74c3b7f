// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package merkle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/eots-precompile/curve"
)

func buildLeaves(n int) []Leaf {
	leaves := make([]Leaf, n)
	for i := 0; i < n; i++ {
		var pr [32]byte
		pr[0] = byte(i + 1)
		leaves[i] = Leaf{BlockNumber: uint64(5 + i), PubRand: pr}
	}
	return leaves
}

func TestBuildRoot_EveryLeafProofVerifies(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 8} {
		leaves := buildLeaves(n)
		root, proofs := BuildRoot(leaves)
		require.Len(t, proofs, n)

		for i, leaf := range leaves {
			require.True(t, VerifyProof(leaf.Hash(), proofs[i], root), "leaf %d of %d", i, n)
		}
	}
}

func TestVerifyProof_WrongLeafFails(t *testing.T) {
	leaves := buildLeaves(4)
	root, proofs := BuildRoot(leaves)

	// leaf 1's proof should not verify against leaf 2's hash.
	require.False(t, VerifyProof(leaves[2].Hash(), proofs[1], root))
}

func TestVerifyProof_TamperedSiblingFails(t *testing.T) {
	leaves := buildLeaves(4)
	root, proofs := BuildRoot(leaves)

	tampered := append([][32]byte(nil), proofs[0]...)
	tampered[0][0] ^= 0xFF
	require.False(t, VerifyProof(leaves[0].Hash(), tampered, root))
}

func TestNode_OrderedPairIndependentOfArgumentOrder(t *testing.T) {
	a := Leaf{BlockNumber: 1, PubRand: [32]byte{1}}.Hash()
	b := Leaf{BlockNumber: 2, PubRand: [32]byte{2}}.Hash()

	require.Equal(t, node(a, b), node(b, a))
}

func TestLeafHash_Deterministic(t *testing.T) {
	l := Leaf{BlockNumber: 42, PubRand: [32]byte{9, 9, 9}}
	require.Equal(t, l.Hash(), l.Hash())
}

// TestLeafHash_PreimageIsTwoFullWords pins the §6.4 leaf preimage as
// abi_encode(u64 blockNumber, bytes32 pubRand): blockNumber occupies a
// full, left-padded 32-byte big-endian word, not a packed 8-byte
// integer, so the preimage is 64 bytes wide.
func TestLeafHash_PreimageIsTwoFullWords(t *testing.T) {
	pubRand := [32]byte{1, 2, 3}
	l := Leaf{BlockNumber: 0x0102030405060708, PubRand: pubRand}

	want := curve.Keccak256([]byte{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	}, pubRand[:])

	require.Equal(t, want, l.Hash())
}
