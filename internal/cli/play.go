package cli

import (
	"github.com/gdamore/tcell/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Explore interactively in the terminal",
		Long:  `Move with hjklyubn or the arrow keys, '>' descends on stairs, q quits.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.newGame()
			if err != nil {
				return err
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return oops.Wrapf(err, "create screen")
			}
			if err := screen.Init(); err != nil {
				return oops.Wrapf(err, "init screen")
			}
			if err := g.Run(screen); err != nil {
				return err
			}
			stats := g.Stats()
			a.log.Info("session finished",
				zap.String("world", stats.WorldID),
				zap.Int("floors", stats.FloorsReached),
				zap.Int("turns", stats.TurnsPlayed),
				zap.Int("tiles_discovered", stats.TilesDiscovered))
			return nil
		},
	}
}
