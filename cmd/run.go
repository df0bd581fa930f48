package main

import (
	"github.com/spf13/cobra"

	"parcels/internal/config"
	"parcels/internal/county"
	"parcels/internal/frame"
	"parcels/internal/types"
)

func newRunCmd() *cobra.Command {
	var path string
	var load bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Normalize every county in a pipeline file and combine the results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := config.Load(osFs, path)
			if err != nil {
				return err
			}
			combined, err := runPipeline(p)
			if err != nil {
				return err
			}
			log.Info("combined", "rows", combined.Len(), "output", p.Output)
			if err := writeFrame(p.Output, combined); err != nil {
				return err
			}
			if load {
				return loadParcels(cmd.Context(), combined)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "config", "pipeline.yaml", "pipeline file")
	cmd.Flags().BoolVar(&load, "load", false, "insert the combined parcels into the database")
	return cmd
}

func runPipeline(p *config.Pipeline) (*frame.Frame, error) {
	tables := make([]*frame.Frame, 0, len(p.Jobs))
	for _, job := range p.Jobs {
		n, err := county.New(job.County, countyOptions(p.FairfieldSeed)...)
		if err != nil {
			return nil, err
		}
		parcels, err := n.Normalize(job.Input)
		if err != nil {
			return nil, err
		}
		log.Info("normalized", "county", n.Name(), "input", job.Input, "rows", parcels.Len())
		tables = append(tables, parcels)
	}
	if len(tables) == 0 {
		return frame.New(types.CanonicalColumns...), nil
	}
	return frame.Concat(tables...)
}
