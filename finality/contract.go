// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package finality

import (
	"errors"
	"math/big"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/luxfi/eots-precompile/config"
	"github.com/luxfi/eots-precompile/contract"
	"github.com/luxfi/eots-precompile/oracle"
	"github.com/luxfi/eots-precompile/pubrand"
)

// Operation selectors dispatched on input[0] (§2.1).
const OpVerifyEots byte = 0x01

// GasPerSubmission is a per-submission gas cost added to the fixed
// GasVerifyEotsBase; RequiredGas scales with the declared submission count so a caller
// cannot under-price an expensive batch.
const (
	GasVerifyEotsBase uint64 = 20000
	GasPerSubmission  uint64 = 8000
)

const submissionLen = 33 /*fpKey*/ + 32 /*pubRand*/ + 32 /*proofCount*/ +
	32 /*parity word*/ + 32 /*Px*/ + 32 /*e*/ + 32 /*sig*/

var ErrInvalidInput = errors.New("finality: malformed precompile input")

// Precompile is the singleton stateful precompile hosting the
// finality aggregator (§2.1). It wraps an *Aggregator, defaulted to
// one built over an empty pubrand.Registry and a zero Static oracle,
// swappable via SetAggregator once a host wires in real config.
var Precompile = &finalityPrecompile{
	aggregator: New(config.Config{Oracle: oracle.NewStatic(0)}, pubrand.New(config.Config{Oracle: oracle.NewStatic(0)})),
}

type finalityPrecompile struct {
	mu         sync.RWMutex
	aggregator *Aggregator
}

// SetAggregator replaces the backing aggregator.
func (p *finalityPrecompile) SetAggregator(a *Aggregator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aggregator = a
}

func (p *finalityPrecompile) aggregatorRef() *Aggregator {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.aggregator
}

// ContractAddress is set by module.go from the registry's reserved
// address for this precompile.
var ContractAddress common.Address

func (p *finalityPrecompile) Address() common.Address { return ContractAddress }

func (p *finalityPrecompile) RequiredGas(input []byte) uint64 {
	if len(input) < 1+32+32+32+32 {
		return GasVerifyEotsBase
	}
	// args = epoch(32) || atBlock(32) || outputRoot(32) || count(32) || submissions...
	count := word256ToUint64(input[1+32+32+32 : 1+32+32+32+32])
	return GasVerifyEotsBase + count*GasPerSubmission
}

func (p *finalityPrecompile) Run(
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

	if len(input) == 0 || input[0] != OpVerifyEots {
		return nil, remainingGas, ErrInvalidInput
	}
	return p.runVerifyEots(input[1:], remainingGas)
}

// runVerifyEots expects args = epoch(32) || atBlock(32) || outputRoot(32)
// || count(32) || count * submission, where each submission is
// fpKey(33) || pubRand(32) || proofCount(32) || proof(32*proofCount)
// || parity_word(32) || Px(32) || e(32) || sig(32).
func (p *finalityPrecompile) runVerifyEots(args []byte, gas uint64) ([]byte, uint64, error) {
	if len(args) < 32+32+32+32 {
		return nil, gas, ErrInvalidInput
	}
	epoch := word256ToUint64(args[0:32])
	atBlock := word256ToUint64(args[32:64])
	var outputRoot [32]byte
	copy(outputRoot[:], args[64:96])
	count := word256ToUint64(args[96:128])

	cursor := args[128:]
	submissions := make([]EOTSSubmission, 0, count)
	for i := uint64(0); i < count; i++ {
		if uint64(len(cursor)) < submissionLen {
			return nil, gas, ErrInvalidInput
		}
		fpKey := append([]byte(nil), cursor[0:33]...)
		var pubRand [32]byte
		copy(pubRand[:], cursor[33:65])
		proofCount := word256ToUint64(cursor[65:97])
		cursor = cursor[97:]

		if uint64(len(cursor)) < proofCount*32+32+32+32+32 {
			return nil, gas, ErrInvalidInput
		}
		proof := make([][32]byte, proofCount)
		for j := uint64(0); j < proofCount; j++ {
			copy(proof[j][:], cursor[j*32:j*32+32])
		}
		cursor = cursor[proofCount*32:]

		parity := cursor[31]
		px := word256ToBig(cursor[32:64])
		e := word256ToBig(cursor[64:96])
		sig := word256ToBig(cursor[96:128])
		cursor = cursor[128:]

		submissions = append(submissions, EOTSSubmission{
			FPKey:       fpKey,
			PubRand:     pubRand,
			MerkleProof: proof,
			Parity:      parity,
			Px:          px,
			E:           e,
			Sig:         sig,
		})
	}

	ok, err := p.aggregatorRef().VerifyEots(epoch, atBlock, outputRoot, submissions)
	if err != nil {
		return nil, gas, err
	}
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

func word256ToBig(word []byte) *big.Int {
	var u uint256.Int
	u.SetBytes(word)
	return u.ToBig()
}
