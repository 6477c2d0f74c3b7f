// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/eots-precompile/schnorr"
)

func verifyCmd() *cobra.Command {
	var px, message, e, s string
	var parity uint8

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a Schnorr signature against the EVM-compatible kernel (§4.2)",
		RunE: func(cmd *cobra.Command, args []string) error {
			pxVal, err := hexToBig(px)
			if err != nil {
				return err
			}
			m, err := hexTo32(message)
			if err != nil {
				return err
			}
			eVal, err := hexToBig(e)
			if err != nil {
				return err
			}
			sVal, err := hexToBig(s)
			if err != nil {
				return err
			}

			ok, err := schnorr.Verify(parity, pxVal, m, eVal, sVal)
			if err != nil {
				return err
			}
			fmt.Println(ok)
			return nil
		},
	}

	cmd.Flags().Uint8Var(&parity, "parity", 27, "recovery parity byte (27 or 28)")
	cmd.Flags().StringVar(&px, "px", "", "public key x-coordinate, hex")
	cmd.Flags().StringVar(&message, "message", "", "32-byte signed message, hex")
	cmd.Flags().StringVar(&e, "e", "", "challenge scalar, hex")
	cmd.Flags().StringVar(&s, "s", "", "response scalar, hex")
	cmd.MarkFlagRequired("px")
	cmd.MarkFlagRequired("message")
	cmd.MarkFlagRequired("e")
	cmd.MarkFlagRequired("s")

	return cmd
}
