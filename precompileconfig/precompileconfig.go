// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package precompileconfig defines the chain-upgrade configuration
// surface that this repository's stateful precompiles are activated
// and configured through. It is a leaf package: it imports nothing
// from this module so that both contract and the individual precompile
// packages can depend on it without a cycle.
package precompileconfig

// Config is the per-precompile configuration installed by a chain
// upgrade. Every precompile package in this module (schnorr, eots,
// pubrand, finality) defines its own Config implementation, even
// though EOTS verification takes no runtime-tunable parameters beyond
// the construction-time Config (§6.7) — the Key/Timestamp/IsDisabled
// triple is what the host's upgrade-activation logic needs regardless.
type Config interface {
	// Key returns the unique config key this Config was registered
	// under (see modules.Module.ConfigKey).
	Key() string

	// Timestamp returns the activation timestamp, or nil if the
	// precompile activates at genesis.
	Timestamp() *uint64

	// IsDisabled reports whether this upgrade disables the precompile
	// rather than activating it.
	IsDisabled() bool

	// Equal reports whether cfg describes the same configuration.
	Equal(cfg Config) bool

	// Verify checks the configuration is well-formed against
	// chainConfig, returning an error if not.
	Verify(chainConfig ChainConfig) error
}

// ChainConfig is the subset of host chain configuration a Config.Verify
// implementation may consult. None of this module's precompiles need
// chain-specific rules to verify their configuration, so the interface
// is currently empty; it exists so a future precompile can add methods
// without changing every Verify signature in this module.
type ChainConfig interface{}

// Upgrade is the common "when does this activate / is it disabled"
// pair embedded in every precompile's exported Config struct.
type Upgrade struct {
	BlockTimestamp *uint64 `json:"blockTimestamp,omitempty"`
	Disable        bool    `json:"disable,omitempty"`
}

// Timestamp returns the upgrade's activation timestamp.
func (u *Upgrade) Timestamp() *uint64 {
	return u.BlockTimestamp
}

// Equal reports whether u and other activate at the same timestamp
// with the same disable flag.
func (u *Upgrade) Equal(other *Upgrade) bool {
	if u.Disable != other.Disable {
		return false
	}
	if (u.BlockTimestamp == nil) != (other.BlockTimestamp == nil) {
		return false
	}
	if u.BlockTimestamp == nil {
		return true
	}
	return *u.BlockTimestamp == *other.BlockTimestamp
}
