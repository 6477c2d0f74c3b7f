// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatic_DefaultsToZero(t *testing.T) {
	s := NewStatic(10)
	require.Equal(t, uint64(10), s.CurrentL2Block())
	require.Equal(t, uint64(0), s.TotalVotingPower(1, 5))
	require.Equal(t, uint64(0), s.VotingPowerFor(1, 5, []byte("fp")))
}

func TestStatic_SettersAreScopedByKey(t *testing.T) {
	s := NewStatic(0)
	s.SetTotalVotingPower(1, 100, 500)
	s.SetVotingPowerFor(1, 100, []byte("fp-a"), 200)
	s.SetVotingPowerFor(1, 100, []byte("fp-b"), 300)

	require.Equal(t, uint64(500), s.TotalVotingPower(1, 100))
	require.Equal(t, uint64(0), s.TotalVotingPower(1, 101))
	require.Equal(t, uint64(200), s.VotingPowerFor(1, 100, []byte("fp-a")))
	require.Equal(t, uint64(300), s.VotingPowerFor(1, 100, []byte("fp-b")))
	require.Equal(t, uint64(0), s.VotingPowerFor(2, 100, []byte("fp-a")))
}

func TestStatic_SetCurrentL2Block(t *testing.T) {
	s := NewStatic(0)
	s.SetCurrentL2Block(99)
	require.Equal(t, uint64(99), s.CurrentL2Block())
}
