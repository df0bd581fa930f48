package main

import (
	"github.com/spf13/cobra"

	"parcels/internal/sampler"
)

func newSampleCmd() *cobra.Command {
	var in, out string
	var fraction float64
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a reproducible random subset of a text file's lines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := sampler.SampleFile(osFs, in, out, fraction); err != nil {
				return err
			}
			log.Info("sample written", "input", in, "output", out, "fraction", fraction)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input text file")
	cmd.Flags().StringVar(&out, "out", "", "output file (created or truncated)")
	cmd.Flags().Float64Var(&fraction, "fraction", sampler.DefaultFraction, "share of lines to keep")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
