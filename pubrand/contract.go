// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubrand

import (
	"errors"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/luxfi/eots-precompile/config"
	"github.com/luxfi/eots-precompile/contract"
	"github.com/luxfi/eots-precompile/oracle"
	"github.com/luxfi/eots-precompile/schnorr"
)

// Operation selectors dispatched on input[0] (§2.1).
const (
	OpCommit        byte = 0x01
	OpVerifyAtBlock byte = 0x02
)

// Gas costs.
const (
	GasCommit        uint64 = 20000
	GasVerifyAtBlock uint64 = 9000
)

// fpKeyLen is the fixed width this precompile's wire format reserves
// for a finality provider's compressed public key.
const fpKeyLen = 33

var ErrInvalidInput = errors.New("pubrand: malformed precompile input")

// Precompile is the singleton stateful precompile hosting the
// pub-rand registry (§2.1). Unlike the pure schnorr/eots kernels, this
// one is genuinely stateful: it wraps a *Registry, defaulted to an
// empty registry over a zero Static oracle so the package is usable
// out of the box, and swappable via SetRegistry once a host wires in
// its real Config/Oracle.
var Precompile = &pubrandPrecompile{
	mu:       sync.RWMutex{},
	registry: New(config.Config{Oracle: oracle.NewStatic(0)}),
}

type pubrandPrecompile struct {
	mu       sync.RWMutex
	registry *Registry
}

// SetRegistry replaces the backing registry, e.g. once a host has
// constructed the real Config (chain ID, epoch schedule, oracle).
func (p *pubrandPrecompile) SetRegistry(r *Registry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registry = r
}

func (p *pubrandPrecompile) registryRef() *Registry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry
}

// ContractAddress is set by module.go from the registry's reserved
// address for this precompile.
var ContractAddress common.Address

func (p *pubrandPrecompile) Address() common.Address { return ContractAddress }

func (p *pubrandPrecompile) RequiredGas(input []byte) uint64 {
	if len(input) == 0 {
		return GasCommit
	}
	switch input[0] {
	case OpCommit:
		return GasCommit
	case OpVerifyAtBlock:
		return GasVerifyAtBlock
	default:
		return GasCommit
	}
}

func (p *pubrandPrecompile) Run(
	accessibleState contract.AccessibleState,
	caller common.Address,
	addr common.Address,
	input []byte,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	gasCost := p.RequiredGas(input)
	if suppliedGas < gasCost {
		return nil, 0, contract.ErrOutOfGas
	}
	remainingGas := suppliedGas - gasCost

	if len(input) == 0 {
		return nil, remainingGas, ErrInvalidInput
	}

	op := input[0]
	args := input[1:]

	switch op {
	case OpCommit:
		if readOnly {
			return nil, remainingGas, errors.New("pubrand: Commit is not permitted in a read-only call")
		}
		return p.runCommit(args, remainingGas)
	case OpVerifyAtBlock:
		return p.runVerifyAtBlock(args, remainingGas)
	default:
		return nil, remainingGas, ErrInvalidInput
	}
}

// runCommit expects args = epoch(32) || fpKey(33) || merkleRoot(32) || pop(160).
func (p *pubrandPrecompile) runCommit(args []byte, gas uint64) ([]byte, uint64, error) {
	want := 32 + fpKeyLen + 32 + schnorr.PackedLen
	if len(args) != want {
		return nil, gas, ErrInvalidInput
	}
	epoch := word256ToUint64(args[0:32])
	fpKey := args[32 : 32+fpKeyLen]
	var merkleRoot [32]byte
	copy(merkleRoot[:], args[32+fpKeyLen:64+fpKeyLen])
	pop := args[64+fpKeyLen : want]

	if err := p.registryRef().Commit(epoch, fpKey, pop, merkleRoot); err != nil {
		return nil, gas, err
	}
	return nil, gas, nil
}

// runVerifyAtBlock expects args = epoch(32) || fpKey(33) || atBlock(32)
// || pubRand(32) || proofCount(32) || proof(32*proofCount).
func (p *pubrandPrecompile) runVerifyAtBlock(args []byte, gas uint64) ([]byte, uint64, error) {
	const head = 32 + fpKeyLen + 32 + 32 + 32
	if len(args) < head {
		return nil, gas, ErrInvalidInput
	}
	epoch := word256ToUint64(args[0:32])
	fpKey := args[32 : 32+fpKeyLen]
	atBlock := word256ToUint64(args[32+fpKeyLen : 64+fpKeyLen])
	var pubRand [32]byte
	copy(pubRand[:], args[64+fpKeyLen:96+fpKeyLen])
	proofCount := word256ToUint64(args[96+fpKeyLen : 128+fpKeyLen])

	rest := args[head:]
	if uint64(len(rest)) != proofCount*32 {
		return nil, gas, ErrInvalidInput
	}
	proof := make([][32]byte, proofCount)
	for i := uint64(0); i < proofCount; i++ {
		copy(proof[i][:], rest[i*32:i*32+32])
	}

	ok := p.registryRef().VerifyPubRandAtBlock(epoch, fpKey, atBlock, pubRand, proof)
	out := make([]byte, 32)
	if ok {
		out[31] = 1
	}
	return out, gas, nil
}

func word256ToUint64(word []byte) uint64 {
	var u uint256.Int
	u.SetBytes(word)
	return u.Uint64()
}
