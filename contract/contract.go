// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract defines the hosting surface that every stateful
// precompile in this module implements: a fixed address, a gas cost
// function, and a dispatching Run entry point. It mirrors the thin
// interface boundary the rest of the precompile family in this
// repository builds against.
package contract

import (
	"errors"
	"math/big"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/eots-precompile/precompileconfig"
)

// ErrOutOfGas is returned by Run when suppliedGas is insufficient for the
// requested operation.
var ErrOutOfGas = errors.New("out of gas")

// StateDB is the minimal key-value view a precompile needs into host
// storage. EOTS verification is stateless by design (§5), so the core
// packages never call these methods themselves; the interface exists so
// a host embedding this module can still satisfy AccessibleState and so
// a future persistence layer has somewhere to attach without changing
// the Run signature.
type StateDB interface {
	GetState(addr common.Address, slot common.Hash) common.Hash
	SetState(addr common.Address, slot common.Hash, value common.Hash)
}

// AccessibleState exposes whatever host state a precompile's Run method
// is allowed to touch.
type AccessibleState interface {
	GetStateDB() StateDB
}

// StatefulPrecompiledContract is the interface every precompile package
// in this module (schnorr, eots, pubrand, finality) implements.
type StatefulPrecompiledContract interface {
	// Address returns the fixed address this contract is hosted at.
	Address() common.Address

	// RequiredGas returns the gas cost of executing Run on input.
	RequiredGas(input []byte) uint64

	// Run executes the contract and returns the output, the gas
	// remaining after execution, and an error if any.
	Run(
		accessibleState AccessibleState,
		caller common.Address,
		addr common.Address,
		input []byte,
		suppliedGas uint64,
		readOnly bool,
	) (ret []byte, remainingGas uint64, err error)
}

// ConfigurationBlockContext carries the block-level facts a
// Configurator needs at activation time.
type ConfigurationBlockContext struct {
	BlockNumber *big.Int
	Timestamp   uint64
}

// Configurator applies a chain-upgrade configuration to a precompile at
// activation time. EOTS verification has no configurable parameters
// beyond the Config carried at construction (§6.7), so every
// Configurator in this module has a trivial Configure body, matching
// the no-op pattern already used by this repository's own
// zero-configuration precompiles.
type Configurator interface {
	MakeConfig() precompileconfig.Config
	Configure(
		chainConfig precompileconfig.ChainConfig,
		cfg precompileconfig.Config,
		state StateDB,
		blockContext ConfigurationBlockContext,
	) error
}
