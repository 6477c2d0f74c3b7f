// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luxfi/eots-precompile/merkle"
)

func verifyAtBlockCmd() *cobra.Command {
	var rootHex, pubRandHex, proofCSV string
	var atBlock uint64

	cmd := &cobra.Command{
		Use:   "verify-at-block",
		Short: "Verify a single leaf's Merkle proof against a root (§4.4)",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := hexTo32(rootHex)
			if err != nil {
				return err
			}
			pubRand, err := hexTo32(pubRandHex)
			if err != nil {
				return err
			}
			proof, err := parseProofList(proofCSV)
			if err != nil {
				return err
			}

			leaf := merkle.Leaf{BlockNumber: atBlock, PubRand: pubRand}
			fmt.Println(merkle.VerifyProof(leaf.Hash(), proof, root))
			return nil
		},
	}

	cmd.Flags().Uint64Var(&atBlock, "at-block", 0, "block number the leaf commits to")
	cmd.Flags().StringVar(&rootHex, "root", "", "32-byte Merkle root, hex")
	cmd.Flags().StringVar(&pubRandHex, "pubrand", "", "32-byte committed pub-rand, hex")
	cmd.Flags().StringVar(&proofCSV, "proof", "", "comma-separated list of 32-byte sibling hashes, hex")
	cmd.MarkFlagRequired("at-block")
	cmd.MarkFlagRequired("root")
	cmd.MarkFlagRequired("pubrand")

	return cmd
}

func parseProofList(csv string) ([][32]byte, error) {
	if csv == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	out := make([][32]byte, len(parts))
	for i, p := range parts {
		v, err := hexTo32(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
