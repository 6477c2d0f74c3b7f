// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package eots

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/luxfi/eots-precompile/contract"
	"github.com/luxfi/eots-precompile/curve"
)

// Operation selectors dispatched on input[0] (§2.1).
const (
	OpSign    byte = 0x01
	OpVerify  byte = 0x02
	OpExtract byte = 0x03
)

// Gas costs.
const (
	GasSign    uint64 = 8000
	GasVerify  uint64 = 12000
	GasExtract uint64 = 14000
)

// ErrSignDisabled is returned by OpSign unless SignEnabled has been
// turned on by the host: production hosts never want an on-chain
// signer, only a reference one for test-vector generation (§4.3).
var ErrSignDisabled = errors.New("eots: OpSign is disabled on this host")

// SignEnabled gates OpSign. It defaults to false; a test harness or
// an offline CLI build may set it true.
var SignEnabled = false

var ErrInvalidInput = errors.New("eots: malformed precompile input")

// Precompile is the singleton stateful precompile hosting the EOTS
// engine (§2.1).
var Precompile = &eotsPrecompile{}

type eotsPrecompile struct{}

// ContractAddress is set by module.go from the registry's reserved
// address for this precompile.
var ContractAddress common.Address

func (p *eotsPrecompile) Address() common.Address { return ContractAddress }

func (p *eotsPrecompile) RequiredGas(input []byte) uint64 {
	if len(input) == 0 {
		return GasVerify
	}
	switch input[0] {
	case OpSign:
		return GasSign
	case OpVerify:
		return GasVerify
	case OpExtract:
		return GasExtract
	default:
		return GasVerify
	}
}

func (p *eotsPrecompile) Run(
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
	case OpSign:
		if readOnly || !SignEnabled {
			return nil, remainingGas, ErrSignDisabled
		}
		return p.runSign(args, remainingGas)
	case OpVerify:
		return p.runVerify(args, remainingGas)
	case OpExtract:
		return p.runExtract(args, remainingGas)
	default:
		return nil, remainingGas, ErrInvalidInput
	}
}

// runSign expects args = d(32) || k(32) || m(32).
func (p *eotsPrecompile) runSign(args []byte, gas uint64) ([]byte, uint64, error) {
	if len(args) != 96 {
		return nil, gas, ErrInvalidInput
	}
	d := word256ToBig(args[0:32])
	k := word256ToBig(args[32:64])
	var m [32]byte
	copy(m[:], args[64:96])

	e, s := Sign(d, k, m)

	out := make([]byte, 64)
	e.FillBytes(out[0:32])
	s.FillBytes(out[32:64])
	return out, gas, nil
}

// runVerify expects args = P.x(32) || P.y(32) || R.x(32) || R.y(32) ||
// pubRand(32) || m(32) || e(32) || s(32), 256 bytes total.
func (p *eotsPrecompile) runVerify(args []byte, gas uint64) ([]byte, uint64, error) {
	if len(args) != 256 {
		return nil, gas, ErrInvalidInput
	}
	pPoint := curve.Point{X: word256ToBig(args[0:32]), Y: word256ToBig(args[32:64])}
	rPoint := curve.Point{X: word256ToBig(args[64:96]), Y: word256ToBig(args[96:128])}
	pubRand := word256ToBig(args[128:160])
	var m [32]byte
	copy(m[:], args[160:192])
	e := word256ToBig(args[192:224])
	s := word256ToBig(args[224:256])

	ok, err := Verify(pPoint, rPoint, pubRand, m, e, s)
	if err != nil {
		return nil, gas, err
	}
	out := make([]byte, 32)
	if ok {
		out[31] = 1
	}
	return out, gas, nil
}

// runExtract expects args = P.x(32) || P.y(32) || R.x(32) || R.y(32) ||
// m1(32) || s1(32) || m2(32) || s2(32), 256 bytes total, and returns
// the extracted private key as a single 32-byte word.
func (p *eotsPrecompile) runExtract(args []byte, gas uint64) ([]byte, uint64, error) {
	if len(args) != 256 {
		return nil, gas, ErrInvalidInput
	}
	pPoint := curve.Point{X: word256ToBig(args[0:32]), Y: word256ToBig(args[32:64])}
	rPoint := curve.Point{X: word256ToBig(args[64:96]), Y: word256ToBig(args[96:128])}
	var m1, m2 [32]byte
	copy(m1[:], args[128:160])
	s1 := word256ToBig(args[160:192])
	copy(m2[:], args[192:224])
	s2 := word256ToBig(args[224:256])

	d, err := Extract(pPoint, rPoint, m1, s1, m2, s2)
	if err != nil {
		return nil, gas, err
	}
	out := make([]byte, 32)
	d.FillBytes(out)
	return out, gas, nil
}

func word256ToBig(word []byte) *big.Int {
	var u uint256.Int
	u.SetBytes(word)
	return u.ToBig()
}
