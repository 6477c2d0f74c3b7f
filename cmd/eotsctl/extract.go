// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/eots-precompile/curve"
	"github.com/luxfi/eots-precompile/eots"
)

func extractCmd() *cobra.Command {
	var px, py, rx, ry, m1, s1, m2, s2 string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Recover a private key from two EOTS signatures that reused a nonce (§4.3, §8)",
		RunE: func(cmd *cobra.Command, args []string) error {
			pPoint, err := pointFromHex(px, py)
			if err != nil {
				return err
			}
			rPoint, err := pointFromHex(rx, ry)
			if err != nil {
				return err
			}
			m1Bytes, err := hexTo32(m1)
			if err != nil {
				return err
			}
			m2Bytes, err := hexTo32(m2)
			if err != nil {
				return err
			}
			s1Val, err := hexToBig(s1)
			if err != nil {
				return err
			}
			s2Val, err := hexToBig(s2)
			if err != nil {
				return err
			}

			d, err := eots.Extract(pPoint, rPoint, m1Bytes, s1Val, m2Bytes, s2Val)
			if err != nil {
				return err
			}
			fmt.Printf("d: %s\n", bytesToHex(d.Bytes()))
			return nil
		},
	}

	cmd.Flags().StringVar(&px, "px", "", "signer point P.x, hex")
	cmd.Flags().StringVar(&py, "py", "", "signer point P.y, hex")
	cmd.Flags().StringVar(&rx, "rx", "", "shared nonce point R.x, hex")
	cmd.Flags().StringVar(&ry, "ry", "", "shared nonce point R.y, hex")
	cmd.Flags().StringVar(&m1, "m1", "", "first signed message, hex")
	cmd.Flags().StringVar(&s1, "s1", "", "first signature's s, hex")
	cmd.Flags().StringVar(&m2, "m2", "", "second signed message, hex")
	cmd.Flags().StringVar(&s2, "s2", "", "second signature's s, hex")
	for _, f := range []string{"px", "py", "rx", "ry", "m1", "s1", "m2", "s2"} {
		cmd.MarkFlagRequired(f)
	}

	return cmd
}

func pointFromHex(xHex, yHex string) (curve.Point, error) {
	x, err := hexToBig(xHex)
	if err != nil {
		return curve.Point{}, err
	}
	y, err := hexToBig(yHex)
	if err != nil {
		return curve.Point{}, err
	}
	return curve.Point{X: x, Y: y}, nil
}
