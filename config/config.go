// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config carries the small set of fixed parameters the
// registry and aggregator are initialized with (§6.7): chain
// identity, the epoch schedule, and the voting-power oracle.
package config

import "github.com/luxfi/eots-precompile/oracle"

// Config is set once at construction and never mutated afterward
// (§6.7). Library callers build it directly; cmd/eotsctl builds it
// from CLI flags.
type Config struct {
	ChainID    uint32
	StartBlock uint64
	EpochSize  uint64
	Oracle     oracle.Oracle
}

// EpochRange returns the inclusive [fromBlock, toBlock] window owned
// by epoch (§3: "Block range `[startBlock + (epoch-1)*epochSize,
// startBlock + epoch*epochSize - 1]`").
func (c Config) EpochRange(epoch uint64) (fromBlock, toBlock uint64) {
	fromBlock = c.StartBlock + (epoch-1)*c.EpochSize
	toBlock = c.StartBlock + epoch*c.EpochSize - 1
	return fromBlock, toBlock
}
