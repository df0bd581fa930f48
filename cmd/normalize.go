package main

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"parcels/internal/county"
	"parcels/internal/frame"
)

// countyOptions builds normalizer options shared by normalize and run.
func countyOptions(seed *uint64) []county.Option {
	opts := []county.Option{county.WithFs(osFs), county.WithLogger(log)}
	if seed != nil {
		opts = append(opts, county.WithSource(rand.NewPCG(*seed, *seed)))
	}
	return opts
}

func newNormalizeCmd() *cobra.Command {
	var name, in, out string
	var raw, load bool
	var seed uint64
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize one county extract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var seedp *uint64
			if cmd.Flags().Changed("seed") {
				seedp = &seed
			}
			n, err := county.New(name, countyOptions(seedp)...)
			if err != nil {
				return err
			}

			var parcels *frame.Frame
			if raw {
				parcels, err = n.Clean(in)
			} else {
				parcels, err = n.Normalize(in)
			}
			if err != nil {
				return err
			}
			log.Info("normalized", "county", n.Name(), "rows", parcels.Len())

			if err := writeFrame(out, parcels); err != nil {
				return err
			}
			if load {
				if raw {
					log.Warn("skipping load of a raw county table")
					return nil
				}
				return loadParcels(cmd.Context(), parcels)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "county", "", "county name (Franklin, Licking, Fairfield)")
	cmd.Flags().StringVar(&in, "in", "", "county extract (CSV, text or shapefile)")
	cmd.Flags().StringVar(&out, "out", "", "output CSV (stdout when empty)")
	cmd.Flags().BoolVar(&raw, "raw", false, "write the county table before conforming to the canonical schema")
	cmd.Flags().BoolVar(&load, "load", false, "insert the normalized parcels into the database")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for Fairfield down-sampling")
	_ = cmd.MarkFlagRequired("county")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
