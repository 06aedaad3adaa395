package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energy_balance/internal/balance"
	"energy_balance/internal/config"
	"energy_balance/internal/ingest"
	"energy_balance/internal/logging"
	"energy_balance/internal/model"
	"energy_balance/internal/store"
)

// app carries the state shared by every subcommand once the root command
// has loaded configuration.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	logger     *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "energy-balance",
		Short:        "Compose building energy balances from zone and surface results",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./energy-balance.yaml if present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(newComputeCmd(a), newServeCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	a.logger = logging.NewWithWriter(cfg.LogLevel, cfg.Environment, cmd.ErrOrStderr())
	return nil
}

// load registers the configured zones in a fresh store and reads every
// configured input.
func (a *app) load() (*store.Store, balance.Inputs, error) {
	st := store.New()

	zones, err := loadZones(a.cfg.ZonesFile)
	if err != nil {
		return nil, balance.Inputs{}, err
	}
	st.AddZones(zones...)

	files := a.cfg.InputFiles()
	in, err := ingest.LoadInputs(files, ingest.OpenFile)
	if err != nil {
		return nil, balance.Inputs{}, err
	}

	a.logger.Info("inputs loaded",
		zap.String("zones_file", a.cfg.ZonesFile),
		zap.Int("zones", len(zones)),
		zap.Int("inputs", len(files)),
	)
	return st, in, nil
}

func loadZones(path string) ([]model.Zone, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening zones file: %w", err)
	}
	defer f.Close()

	zones, err := ingest.NewZoneParser().Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return zones, nil
}

// parseInputFlags turns term=path pairs into an input manifest.
func parseInputFlags(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, v := range values {
		term, path, ok := strings.Cut(v, "=")
		term, path = strings.TrimSpace(term), strings.TrimSpace(path)
		if !ok || term == "" || path == "" {
			return nil, fmt.Errorf("invalid input %q, want term=path", v)
		}
		out[term] = path
	}
	return out, nil
}
