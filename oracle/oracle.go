// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package oracle defines the voting-power data source consumed by the
// finality aggregator (§6.1), plus an in-memory implementation usable
// by tests and by cmd/eotsctl's offline verification mode.
package oracle

import "sync"

// Oracle supplies chain-height-scoped voting power snapshots. All
// methods are pure from the caller's perspective: the aggregator
// never mutates the oracle and treats every return value as a
// snapshot fixed at atBlock (§5, §6.1).
type Oracle interface {
	// CurrentL2Block returns the latest known L2 block height.
	CurrentL2Block() uint64

	// TotalVotingPower returns the total voting power on chainID at
	// atBlock.
	TotalVotingPower(chainID uint32, atBlock uint64) uint64

	// VotingPowerFor returns fpKey's voting power on chainID at
	// atBlock.
	VotingPowerFor(chainID uint32, atBlock uint64, fpKey []byte) uint64
}

// Static is a fixed, in-memory Oracle: a handful of maps populated
// ahead of time by a test or by cmd/eotsctl, with no background
// refresh (§6.1).
type Static struct {
	mu sync.RWMutex

	currentBlock uint64
	total        map[totalKey]uint64
	perFP        map[fpKey]uint64
}

type totalKey struct {
	chainID uint32
	atBlock uint64
}

type fpKey struct {
	chainID uint32
	atBlock uint64
	key     string
}

// NewStatic returns an empty Static oracle reporting currentBlock for
// CurrentL2Block.
func NewStatic(currentBlock uint64) *Static {
	return &Static{
		currentBlock: currentBlock,
		total:        make(map[totalKey]uint64),
		perFP:        make(map[fpKey]uint64),
	}
}

// SetCurrentL2Block updates the value returned by CurrentL2Block.
func (s *Static) SetCurrentL2Block(block uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentBlock = block
}

// SetTotalVotingPower fixes the total voting power reported for
// (chainID, atBlock).
func (s *Static) SetTotalVotingPower(chainID uint32, atBlock uint64, vp uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total[totalKey{chainID, atBlock}] = vp
}

// SetVotingPowerFor fixes the voting power reported for fpKey at
// (chainID, atBlock).
func (s *Static) SetVotingPowerFor(chainID uint32, atBlock uint64, key []byte, vp uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.perFP[fpKey{chainID, atBlock, string(key)}] = vp
}

func (s *Static) CurrentL2Block() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentBlock
}

func (s *Static) TotalVotingPower(chainID uint32, atBlock uint64) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total[totalKey{chainID, atBlock}]
}

func (s *Static) VotingPowerFor(chainID uint32, atBlock uint64, fpKeyBytes []byte) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.perFP[fpKey{chainID, atBlock, string(fpKeyBytes)}]
}
