// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubrand

import (
	"github.com/luxfi/geth/common"

	"github.com/luxfi/eots-precompile/contract"
	"github.com/luxfi/eots-precompile/precompileconfig"
	"github.com/luxfi/eots-precompile/registry"

	"github.com/luxfi/eots-precompile/modules"
)

var _ contract.Configurator = (*configurator)(nil)

const ConfigKey = "pubrandConfig"

var Module = modules.Module{
	ConfigKey:    ConfigKey,
	Address:      common.HexToAddress(registry.PubRandCChain),
	Contract:     Precompile,
	Configurator: &configurator{},
}

type configurator struct{}

func init() {
	ContractAddress = common.HexToAddress(registry.PubRandCChain)
	if err := modules.RegisterModule(Module); err != nil {
		panic(err)
	}
}

func (*configurator) MakeConfig() precompileconfig.Config {
	return &Config{}
}

// Configure is a no-op: it does not touch the live registry. Chain ID,
// epoch schedule and oracle reach the registry only through the
// config.Config passed to Precompile.SetRegistry.
func (*configurator) Configure(
	chainConfig precompileconfig.ChainConfig,
	cfg precompileconfig.Config,
	state contract.StateDB,
	blockContext contract.ConfigurationBlockContext,
) error {
	return nil
}

// Config implements precompileconfig.Config.
type Config struct {
	ChainID uint32                    `json:"chainId,omitempty"`
	Upgrade precompileconfig.Upgrade  `json:"upgrade,omitempty"`
}

func (c *Config) Key() string          { return ConfigKey }
func (c *Config) Timestamp() *uint64   { return c.Upgrade.Timestamp() }
func (c *Config) IsDisabled() bool     { return c.Upgrade.Disable }
func (c *Config) Verify(precompileconfig.ChainConfig) error { return nil }

func (c *Config) Equal(cfg precompileconfig.Config) bool {
	other, ok := cfg.(*Config)
	if !ok {
		return false
	}
	return c.ChainID == other.ChainID && c.Upgrade.Equal(&other.Upgrade)
}
