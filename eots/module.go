// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package eots

import (
	"github.com/luxfi/geth/common"

	"github.com/luxfi/eots-precompile/contract"
	"github.com/luxfi/eots-precompile/precompileconfig"
	"github.com/luxfi/eots-precompile/registry"

	"github.com/luxfi/eots-precompile/modules"
)

var _ contract.Configurator = (*configurator)(nil)

const ConfigKey = "eotsConfig"

var Module = modules.Module{
	ConfigKey:    ConfigKey,
	Address:      common.HexToAddress(registry.EOTSCChain),
	Contract:     Precompile,
	Configurator: &configurator{},
}

type configurator struct{}

func init() {
	ContractAddress = common.HexToAddress(registry.EOTSCChain)
	if err := modules.RegisterModule(Module); err != nil {
		panic(err)
	}
}

func (*configurator) MakeConfig() precompileconfig.Config {
	return &Config{}
}

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
	Upgrade precompileconfig.Upgrade `json:"upgrade,omitempty"`
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
	return c.Upgrade.Equal(&other.Upgrade)
}
