// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/eots-precompile/pubrand"
)

func commitCmd() *cobra.Command {
	var fpKeyHex, popHex, rootHex string
	var epoch, currentBlock uint64

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit a public-randomness Merkle root for an (epoch, FP key) (§4.5)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, currentBlock)
			if err != nil {
				return err
			}
			fpKey, err := hexToBytes(fpKeyHex)
			if err != nil {
				return err
			}
			pop, err := hexToBytes(popHex)
			if err != nil {
				return err
			}
			root, err := hexTo32(rootHex)
			if err != nil {
				return err
			}

			registry := pubrand.New(cfg)
			if err := registry.Commit(epoch, fpKey, pop, root); err != nil {
				return err
			}
			fmt.Println("committed")
			return nil
		},
	}

	cmd.Flags().Uint64Var(&epoch, "epoch", 0, "epoch index")
	cmd.Flags().Uint64Var(&currentBlock, "current-block", 0, "current L2 block, for the epoch-not-yet-ended check")
	cmd.Flags().StringVar(&fpKeyHex, "fpkey", "", "33-byte compressed FP public key, hex")
	cmd.Flags().StringVar(&popHex, "pop", "", "160-byte packed proof of possession, hex")
	cmd.Flags().StringVar(&rootHex, "root", "", "32-byte Merkle root, hex")
	cmd.MarkFlagRequired("epoch")
	cmd.MarkFlagRequired("fpkey")
	cmd.MarkFlagRequired("pop")
	cmd.MarkFlagRequired("root")

	return cmd
}
