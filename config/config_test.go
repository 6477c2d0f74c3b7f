// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEpochRange_FirstEpochStartsAtStartBlock(t *testing.T) {
	c := Config{StartBlock: 10, EpochSize: 100}
	from, to := c.EpochRange(1)
	require.Equal(t, uint64(10), from)
	require.Equal(t, uint64(109), to)
}

func TestEpochRange_ConsecutiveEpochsDoNotOverlap(t *testing.T) {
	c := Config{StartBlock: 0, EpochSize: 50}
	_, to1 := c.EpochRange(1)
	from2, _ := c.EpochRange(2)
	require.Equal(t, from2, to1+1)
}

func TestEpochRange_ZeroStartBlock(t *testing.T) {
	c := Config{StartBlock: 0, EpochSize: 4}
	from, to := c.EpochRange(1)
	require.Equal(t, uint64(0), from)
	require.Equal(t, uint64(3), to)
}
