// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package modules tracks which stateful precompile is registered at
// which address, and rejects registrations that collide with another
// module or fall outside a reserved address range.
package modules

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/eots-precompile/contract"
)

// Module binds a stateful precompile to a fixed address and an
// optional chain-upgrade Configurator.
type Module struct {
	ConfigKey    string
	Address      common.Address
	Contract     contract.StatefulPrecompiledContract
	Configurator contract.Configurator
}

// AddressRange represents a continuous range of addresses.
type AddressRange struct {
	Start common.Address
	End   common.Address
}

// Contains returns true iff [addr] is contained within the (inclusive)
// range of addresses defined by [a].
func (a *AddressRange) Contains(addr common.Address) bool {
	addrBytes := addr.Bytes()
	return bytes.Compare(addrBytes, a.Start[:]) >= 0 && bytes.Compare(addrBytes, a.End[:]) <= 0
}

// BlackholeAddr is the address where assets are burned.
var BlackholeAddr = common.Address{
	1, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

var (
	// registeredModules is a list of Module to preserve order
	// for deterministic iteration.
	registeredModules = make([]Module, 0)

	// Reserved address ranges for stateful precompiles.
	//
	// LP-Fxxx: Finality-provider verification (EOTS), carved out of the
	// low-byte LP-aligned address scheme documented in registry/registry.go.
	// 0x0000...F000-0x0000...FFFF: schnorr, eots, pubrand, finality.
	reservedRanges = []AddressRange{
		{
			Start: common.HexToAddress("0x000000000000000000000000000000000000F000"),
			End:   common.HexToAddress("0x000000000000000000000000000000000000FFFF"),
		},
	}
)

// ReservedAddress returns true if [addr] is in a reserved range for
// custom precompiles.
func ReservedAddress(addr common.Address) bool {
	for _, reservedRange := range reservedRanges {
		if reservedRange.Contains(addr) {
			return true
		}
	}
	return false
}

// RegisterModule registers a stateful precompile module.
func RegisterModule(stm Module) error {
	address := stm.Address
	key := stm.ConfigKey

	if address == BlackholeAddr {
		return fmt.Errorf("address %s overlaps with blackhole address", address)
	}
	if !ReservedAddress(address) {
		return fmt.Errorf("address %s not in a reserved range", address)
	}

	for _, registeredModule := range registeredModules {
		if registeredModule.ConfigKey == key {
			return fmt.Errorf("name %s already used by a stateful precompile", key)
		}
		if registeredModule.Address == address {
			return fmt.Errorf("address %s already used by a stateful precompile", address)
		}
	}
	// sort by address to ensure deterministic iteration
	registeredModules = insertSortedByAddress(registeredModules, stm)
	return nil
}

// GetPrecompileModuleByAddress returns the module registered at address,
// if any.
func GetPrecompileModuleByAddress(address common.Address) (Module, bool) {
	for _, stm := range registeredModules {
		if stm.Address == address {
			return stm, true
		}
	}
	return Module{}, false
}

// GetPrecompileModule returns the module registered under key, if any.
func GetPrecompileModule(key string) (Module, bool) {
	for _, stm := range registeredModules {
		if stm.ConfigKey == key {
			return stm, true
		}
	}
	return Module{}, false
}

// RegisteredModules returns all currently registered modules, sorted by
// address.
func RegisteredModules() []Module {
	return registeredModules
}

func insertSortedByAddress(data []Module, stm Module) []Module {
	data = append(data, stm)
	sort.Sort(moduleArray(data))
	return data
}

type moduleArray []Module

func (m moduleArray) Len() int      { return len(m) }
func (m moduleArray) Swap(i, j int) { m[i], m[j] = m[j], m[i] }
func (m moduleArray) Less(i, j int) bool {
	return bytes.Compare(m[i].Address[:], m[j].Address[:]) < 0
}
