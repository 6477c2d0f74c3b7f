// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package schnorr

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/luxfi/eots-precompile/contract"
	"github.com/luxfi/eots-precompile/curve"
)

// Operation selectors dispatched on input[0] (§2.1).
const (
	OpVerify         byte = 0x01
	OpRecoverAddress byte = 0x02
	OpPack           byte = 0x03
	OpUnpack         byte = 0x04
)

// Gas costs, following this codebase's fixed-base-cost idiom for pure
// verification precompiles (dead.GasBase, hpke's per-op constants).
const (
	GasVerify         uint64 = 10000
	GasRecoverAddress uint64 = 6000
	GasPack           uint64 = 1000
	GasUnpack         uint64 = 1000
)

var (
	ErrInvalidInput = &InputError{"schnorr: malformed precompile input"}
	ErrUnknownOp    = &InputError{"schnorr: unknown operation selector"}
)

// InputError reports a malformed precompile call. It is distinct from
// the core package's Verify-time errors (InvalidPublicKey, etc.),
// which remain whatever Verify itself returns.
type InputError struct{ msg string }

func (e *InputError) Error() string { return e.msg }

// Precompile is the singleton stateful precompile hosting the Schnorr
// kernel (§2.1), at the address carved out in the registry package.
var Precompile = &schnorrPrecompile{}

type schnorrPrecompile struct{}

// ContractAddress is set by module.go from the registry's reserved
// address for this precompile.
var ContractAddress common.Address

func (p *schnorrPrecompile) Address() common.Address { return ContractAddress }

func (p *schnorrPrecompile) RequiredGas(input []byte) uint64 {
	if len(input) == 0 {
		return GasVerify
	}
	switch input[0] {
	case OpVerify:
		return GasVerify
	case OpRecoverAddress:
		return GasRecoverAddress
	case OpPack:
		return GasPack
	case OpUnpack:
		return GasUnpack
	default:
		return GasVerify
	}
}

func (p *schnorrPrecompile) Run(
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
	case OpVerify:
		return p.runVerify(args, remainingGas)
	case OpRecoverAddress:
		return p.runRecoverAddress(args, remainingGas)
	case OpPack:
		return p.runUnpackThenPack(args, remainingGas)
	case OpUnpack:
		return p.runUnpackThenPack(args, remainingGas)
	default:
		return nil, remainingGas, ErrUnknownOp
	}
}

// runVerify expects args laid out exactly like PackedLen bytes of a
// Signature (parity_word || Px || m || e || s) and returns a single
// padded boolean word.
func (p *schnorrPrecompile) runVerify(args []byte, gas uint64) ([]byte, uint64, error) {
	sig, err := Unpack(args)
	if err != nil {
		return nil, gas, err
	}
	ok, err := Verify(sig.Parity, sig.Px, sig.M, sig.E, sig.S)
	if err != nil {
		return nil, gas, err
	}
	return boolWord(ok), gas, nil
}

// runRecoverAddress expects args = sp(32) || parity_word(32) || px(32) || ep(32).
func (p *schnorrPrecompile) runRecoverAddress(args []byte, gas uint64) ([]byte, uint64, error) {
	if len(args) != 128 {
		return nil, gas, ErrInvalidInput
	}
	sp := word256ToBig(args[0:32])
	parity := args[63]
	px := word256ToBig(args[64:96])
	ep := word256ToBig(args[96:128])

	z, err := curve.RecoverAddress(sp, parity, px, ep)
	if err != nil {
		return nil, gas, err
	}
	out := make([]byte, 32)
	copy(out[12:], z[:])
	return out, gas, nil
}

// runUnpackThenPack round-trips a 160-byte wire tuple: it parses the
// tuple and re-emits it, validating the fixed layout the way this
// codebase's ring precompile round-trips its own Serialize/parse pair.
func (p *schnorrPrecompile) runUnpackThenPack(args []byte, gas uint64) ([]byte, uint64, error) {
	sig, err := Unpack(args)
	if err != nil {
		return nil, gas, err
	}
	return Pack(sig), gas, nil
}

func boolWord(ok bool) []byte {
	out := make([]byte, 32)
	if ok {
		out[31] = 1
	}
	return out
}

// word256ToBig decodes a 32-byte big-endian word through uint256,
// mirroring this codebase's dead.setBurnRatio-style ABI word decoding
// at the precompile boundary.
func word256ToBig(word []byte) *big.Int {
	var u uint256.Int
	u.SetBytes(word)
	return u.ToBig()
}
