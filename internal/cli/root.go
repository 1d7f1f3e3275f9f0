// Package cli defines the fovdemo command tree.
package cli

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roguecore/internal/config"
	"roguecore/internal/game"
	"roguecore/internal/logging"
	"roguecore/internal/system"
)

// app carries what PersistentPreRunE prepared for the subcommands.
type app struct {
	configFile string
	cfg        config.Config
	log        *zap.Logger
	registry   *prometheus.Registry
	metrics    *system.Metrics
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "fovdemo",
		Short: "Explore generated dungeons with shadowcast field of view",
		Long: `fovdemo generates BSP dungeons, places a player and a few sentries,
and tracks what each of them sees and remembers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "YAML config file path")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newDumpCmd(a))
	cmd.AddCommand(newPlayCmd(a))
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags(), a.configFile)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.registry = prometheus.NewRegistry()
	a.metrics = system.NewMetrics(a.registry)
	log.Debug("config loaded", zap.Any("config", cfg))
	return nil
}

func (a *app) newGame() (*game.Game, error) {
	return game.New(a.cfg, game.WithLogger(a.log), game.WithMetrics(a.metrics))
}

// writeMetrics writes the registry in the Prometheus text exposition format.
func (a *app) writeMetrics(out io.Writer) error {
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(out, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	if c, ok := enc.(expfmt.Closer); ok {
		return c.Close()
	}
	return nil
}
