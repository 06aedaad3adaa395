package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energy_balance/internal/export"
	"energy_balance/internal/service"
)

type computeOptions struct {
	zonesFile string
	zoneIDs   []string
	inputs    []string
	format    string
	storage   bool
}

func newComputeCmd(a *app) *cobra.Command {
	opts := &computeOptions{}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compose one energy balance and write it to stdout",
		Example: `  energy-balance compute --zones zones.yaml \
    --input heating=heating.csv --input solar=solar.csv \
    --input surface_flow=surfaces.csv --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.apply(cmd, a); err != nil {
				return err
			}
			return a.compute(cmd)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.zonesFile, "zones", "", "zone graph file (YAML or JSON)")
	f.StringSliceVar(&opts.zoneIDs, "zone", nil, "zone ID to balance, repeatable (default all zones)")
	f.StringArrayVar(&opts.inputs, "input", nil, "input series as term=path.csv, repeatable")
	f.StringVar(&opts.format, "format", "", "output format: json, csv or branches")
	f.BoolVar(&opts.storage, "storage", true, "include the storage term")
	return cmd
}

// apply layers explicitly set flags over the loaded configuration.
func (o *computeOptions) apply(cmd *cobra.Command, a *app) error {
	flags := cmd.Flags()
	if flags.Changed("zones") {
		a.cfg.ZonesFile = o.zonesFile
	}
	if flags.Changed("zone") {
		a.cfg.ZoneIDs = o.zoneIDs
	}
	if flags.Changed("input") {
		inputs, err := parseInputFlags(o.inputs)
		if err != nil {
			return err
		}
		if a.cfg.Inputs == nil {
			a.cfg.Inputs = make(map[string]string, len(inputs))
		}
		for term, path := range inputs {
			a.cfg.Inputs[term] = path
		}
	}
	if flags.Changed("format") {
		a.cfg.Output.Format = o.format
	}
	if flags.Changed("storage") {
		a.cfg.Output.Storage = o.storage
	}
	return a.cfg.Validate()
}

func (a *app) compute(cmd *cobra.Command) error {
	st, in, err := a.load()
	if err != nil {
		return err
	}

	svc := service.New(st, in, a.cfg.ZoneIDs, nil, a.logger)
	run, err := svc.Recompute(nil)
	if err != nil {
		return err
	}
	for _, w := range run.Result.Warnings {
		a.logger.Warn("balance warning", zap.String("warning", w.String()))
	}

	return export.Write(cmd.OutOrStdout(), a.cfg.Output.Format, run.Result.Output(a.cfg.Output.Storage))
}
