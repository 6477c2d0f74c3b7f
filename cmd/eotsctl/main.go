// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command eotsctl is an offline CLI for generating EOTS test vectors
// and running verification/commitment operations against an in-memory
// oracle, without any network or host-chain dependency (§6.7, §10).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "eotsctl",
		Short: "Offline EOTS finality-verification toolkit",
		Long: `eotsctl generates and verifies the Schnorr/EOTS artifacts this module's
precompiles consume: signatures, proofs of possession, Merkle commitments of
public randomness, and whole finality-quorum decisions, all evaluated
in-process against a Static oracle rather than a live chain.`,
	}

	rootCmd.PersistentFlags().Uint32("chain-id", 1, "chain ID used for voting-power lookups")
	rootCmd.PersistentFlags().Uint64("start-block", 0, "epoch schedule start block")
	rootCmd.PersistentFlags().Uint64("epoch-size", 100, "epoch schedule block window size")

	rootCmd.AddCommand(
		signCmd(),
		verifyCmd(),
		extractCmd(),
		commitCmd(),
		verifyAtBlockCmd(),
		verifyEotsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
