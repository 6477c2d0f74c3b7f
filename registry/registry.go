// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry names the fixed precompile addresses this module
// registers, following this codebase's existing trailing-significant
// addressing scheme (LP-Pxxx family pages).
package registry

import (
	"fmt"

	"github.com/luxfi/geth/common"
)

// ============================================================================
// PRECOMPILE ADDRESS SCHEME - Aligned with LP Numbering (LP-0099)
// ============================================================================
//
// All Lux-native precompiles use trailing-significant 20-byte addresses:
//   Format: 0x0000000000000000000000000000000000PCII
//
// P nibble = LP range first digit; this module claims P=0xF, a new
// family page for finality-provider (FP) EOTS verification that was not
// previously assigned in the LP-Pxxx scheme.
//   P=F → LP-Fxxx (Finality / EOTS)
//
// C nibble = Chain slot:
//   C=2 → C-Chain (main EVM)
//
// Example: Schnorr kernel on C-Chain = P=F, C=2, II=00
//          Address = 0x00000000000000000000000000000000000F200 (LP-F200)

const (
	// PAGE F: FINALITY / EOTS (0xFCII) → LP-Fxxx
	SchnorrCChain  = "0x000000000000000000000000000000000000f200" // LP-F200 schnorr kernel (C1+C2)
	EOTSCChain     = "0x000000000000000000000000000000000000f201" // LP-F201 eots engine (C3)
	PubRandCChain  = "0x000000000000000000000000000000000000f202" // LP-F202 pub-rand registry (C4+C5)
	FinalityCChain = "0x000000000000000000000000000000000000f203" // LP-F203 finality aggregator (C6)
)

// PrecompileAddress calculates address from (P, C, II) nibbles.
// P = Family page (aligned with LP-Pxxx), C = Chain slot, II = Item.
// Returns trailing-significant format: 0x0000000000000000000000000000000000PCII
func PrecompileAddress(p, c, ii uint8) common.Address {
	if p > 15 || c > 15 {
		return common.Address{}
	}
	selector := fmt.Sprintf("%x%x%02x", p, c, ii)
	addr := "0000000000000000000000000000000000" + selector
	return common.HexToAddress("0x" + addr)
}

// ChainSlot returns the C-nibble for a chain name.
func ChainSlot(chain string) uint8 {
	switch chain {
	case "C", "c":
		return 2
	default:
		return 0xFF
	}
}

// FamilyPage returns the P-nibble for a family name (aligned with LP-Pxxx).
func FamilyPage(family string) uint8 {
	switch family {
	case "Finality", "finality", "EOTS", "eots":
		return 0xF // LP-Fxxx
	default:
		return 0xFF
	}
}

// ChainPrecompiles defines which precompiles are enabled for each chain.
var ChainPrecompiles = map[string][]string{
	"C": {
		SchnorrCChain, EOTSCChain, PubRandCChain, FinalityCChain,
	},
}

// PrecompileInfo contains metadata about a precompile.
type PrecompileInfo struct {
	Address     string
	Name        string
	Description string
	GasBase     uint64
	Chains      []string
	LPRange     string
}

// AllPrecompiles lists all available precompiles with their metadata.
var AllPrecompiles = []PrecompileInfo{
	{SchnorrCChain, "SCHNORR_EVM", "EVM-compatible Schnorr-over-secp256k1 verification kernel", 10000, []string{"C"}, "LP-Fxxx"},
	{EOTSCChain, "EOTS", "Extractable one-time signature sign/verify/extract", 12000, []string{"C"}, "LP-Fxxx"},
	{PubRandCChain, "PUBRAND", "Public-randomness Merkle commitment registry", 20000, []string{"C"}, "LP-Fxxx"},
	{FinalityCChain, "FINALITY", "Quorum finality aggregator over EOTS submissions", 20000, []string{"C"}, "LP-Fxxx"},
}

// GetPrecompileAddress returns the address for a precompile by name.
func GetPrecompileAddress(name string) common.Address {
	for _, p := range AllPrecompiles {
		if p.Name == name {
			return common.HexToAddress(p.Address)
		}
	}
	return common.Address{}
}

// GetChainPrecompiles returns all precompile addresses for a chain.
func GetChainPrecompiles(chainLetter string) []common.Address {
	addrs, ok := ChainPrecompiles[chainLetter]
	if !ok {
		return nil
	}

	result := make([]common.Address, len(addrs))
	for i, addr := range addrs {
		result[i] = common.HexToAddress(addr)
	}
	return result
}

// IsPrecompileEnabled checks if a precompile is enabled for a chain.
func IsPrecompileEnabled(chainLetter string, precompileAddr common.Address) bool {
	addrs := ChainPrecompiles[chainLetter]

	for _, addr := range addrs {
		if common.HexToAddress(addr) == precompileAddr {
			return true
		}
	}
	return false
}

// GetPrecompilesByFamily returns all precompiles for a family page.
func GetPrecompilesByFamily(family string) []PrecompileInfo {
	page := FamilyPage(family)
	if page == 0xFF {
		return nil
	}

	lpRange := "LP-Fxxx"
	var result []PrecompileInfo
	for _, p := range AllPrecompiles {
		if p.LPRange == lpRange {
			result = append(result, p)
		}
	}
	return result
}
