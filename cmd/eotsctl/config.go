// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luxfi/eots-precompile/config"
	"github.com/luxfi/eots-precompile/oracle"
)

// loadConfig builds a config.Config from the root command's
// persistent flags, backed by a Static oracle seeded at currentBlock
// (§6.7, §10).
func loadConfig(cmd *cobra.Command, currentBlock uint64) (config.Config, error) {
	chainID, err := cmd.Flags().GetUint32("chain-id")
	if err != nil {
		return config.Config{}, err
	}
	startBlock, err := cmd.Flags().GetUint64("start-block")
	if err != nil {
		return config.Config{}, err
	}
	epochSize, err := cmd.Flags().GetUint64("epoch-size")
	if err != nil {
		return config.Config{}, err
	}

	return config.Config{
		ChainID:    chainID,
		StartBlock: startBlock,
		EpochSize:  epochSize,
		Oracle:     oracle.NewStatic(currentBlock),
	}, nil
}

func hexToBig(s string) (*big.Int, error) {
	s = strings.TrimPrefix(s, "0x")
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex scalar: %q", s)
	}
	return v, nil
}

func hexToBytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	return hex.DecodeString(s)
}

func hexTo32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hexToBytes(s)
	if err != nil {
		return out, err
	}
	if len(b) > 32 {
		return out, fmt.Errorf("value too long: got %d bytes, want <= 32", len(b))
	}
	copy(out[32-len(b):], b)
	return out, nil
}

func bytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
