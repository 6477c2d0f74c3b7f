// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/eots-precompile/finality"
	"github.com/luxfi/eots-precompile/oracle"
	"github.com/luxfi/eots-precompile/pubrand"
)

// verifyEotsCmd exercises the full registry+aggregator pipeline for a
// single finality provider: it commits the supplied pub-rand root
// under the supplied proof of possession, seeds a Static oracle with
// the given voting powers, then runs Aggregator.VerifyEots over one
// submission (§4.5, §4.6). It is meant for end-to-end scenario
// reproduction (§8), not as a multi-signer batch tool.
func verifyEotsCmd() *cobra.Command {
	var (
		fpKeyHex, popHex, rootHex   string
		pubRandHex, proofCSV        string
		outputRootHex               string
		parity                      uint8
		pxHex, eHex, sigHex         string
		epoch, atBlock, currentBlk  uint64
		totalVP, fpVP               uint64
	)

	cmd := &cobra.Command{
		Use:   "verify-eots",
		Short: "Run a single-submission finality quorum check end to end (§4.6, §8)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, currentBlk)
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
				return fmt.Errorf("commit: %w", err)
			}

			st := cfg.Oracle.(*oracle.Static)
			st.SetTotalVotingPower(cfg.ChainID, atBlock, totalVP)
			st.SetVotingPowerFor(cfg.ChainID, atBlock, fpKey, fpVP)

			pubRand, err := hexTo32(pubRandHex)
			if err != nil {
				return err
			}
			proof, err := parseProofList(proofCSV)
			if err != nil {
				return err
			}
			outputRoot, err := hexTo32(outputRootHex)
			if err != nil {
				return err
			}
			px, err := hexToBig(pxHex)
			if err != nil {
				return err
			}
			e, err := hexToBig(eHex)
			if err != nil {
				return err
			}
			sig, err := hexToBig(sigHex)
			if err != nil {
				return err
			}

			agg := finality.New(cfg, registry)
			submission := finality.EOTSSubmission{
				FPKey:       fpKey,
				PubRand:     pubRand,
				MerkleProof: proof,
				Parity:      parity,
				Px:          px,
				E:           e,
				Sig:         sig,
			}

			ok, err := agg.VerifyEots(epoch, atBlock, outputRoot, []finality.EOTSSubmission{submission})
			if err != nil {
				return err
			}
			fmt.Println(ok)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&epoch, "epoch", 0, "epoch index")
	cmd.Flags().Uint64Var(&atBlock, "at-block", 0, "block being verified")
	cmd.Flags().Uint64Var(&currentBlk, "current-block", 0, "current L2 block, for the commit's epoch-not-yet-ended check")
	cmd.Flags().Uint64Var(&totalVP, "total-vp", 0, "total voting power at atBlock")
	cmd.Flags().Uint64Var(&fpVP, "fp-vp", 0, "this FP's voting power at atBlock")

	cmd.Flags().StringVar(&fpKeyHex, "fpkey", "", "33-byte compressed FP public key, hex")
	cmd.Flags().StringVar(&popHex, "pop", "", "160-byte packed proof of possession, hex")
	cmd.Flags().StringVar(&rootHex, "root", "", "32-byte committed Merkle root, hex")
	cmd.Flags().StringVar(&pubRandHex, "pubrand", "", "32-byte pub-rand for atBlock, hex")
	cmd.Flags().StringVar(&proofCSV, "proof", "", "comma-separated sibling hashes, hex")
	cmd.Flags().StringVar(&outputRootHex, "output-root", "", "32-byte signed output root, hex")
	cmd.Flags().Uint8Var(&parity, "parity", 27, "EOTS signature parity byte")
	cmd.Flags().StringVar(&pxHex, "px", "", "EOTS signer public key x-coordinate, hex")
	cmd.Flags().StringVar(&eHex, "e", "", "EOTS signature challenge, hex")
	cmd.Flags().StringVar(&sigHex, "sig", "", "EOTS signature response s, hex")

	for _, f := range []string{"epoch", "at-block", "total-vp", "fp-vp", "fpkey", "pop", "root", "pubrand", "output-root", "px", "e", "sig"} {
		cmd.MarkFlagRequired(f)
	}

	return cmd
}
