// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/eots-precompile/eots"
)

func signCmd() *cobra.Command {
	var priv, nonce, message string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Generate an EOTS signature (reference/test vector only, §4.3)",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := hexToBig(priv)
			if err != nil {
				return err
			}
			k, err := hexToBig(nonce)
			if err != nil {
				return err
			}
			m, err := hexTo32(message)
			if err != nil {
				return err
			}

			e, s := eots.Sign(d, k, m)
			fmt.Printf("e: %s\n", bytesToHex(e.Bytes()))
			fmt.Printf("s: %s\n", bytesToHex(s.Bytes()))
			return nil
		},
	}

	cmd.Flags().StringVar(&priv, "priv", "", "private key scalar d, hex")
	cmd.Flags().StringVar(&nonce, "nonce", "", "nonce scalar k, hex")
	cmd.Flags().StringVar(&message, "message", "", "32-byte message, hex")
	cmd.MarkFlagRequired("priv")
	cmd.MarkFlagRequired("nonce")
	cmd.MarkFlagRequired("message")

	return cmd
}
