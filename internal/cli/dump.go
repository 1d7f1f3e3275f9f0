package cli

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"roguecore/internal/game"
)

func newDumpCmd(a *app) *cobra.Command {
	var (
		walk        string
		showMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the first floor as the player knows it",
		Long: `Generate a floor, compute the player's field of view and print it as text:
'@' is the player, '#' and '.' are visible walls and floor, '+' and ','
are remembered ones, blank tiles are unknown.`,
		Example: `  fovdemo dump --map-seed 42 --walk lllljjj`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.newGame()
			if err != nil {
				return err
			}
			for i, r := range walk {
				action := game.RuneAction(r)
				if action == game.ActionNone || action == game.ActionQuit {
					return oops.Code("CONFIG_INVALID").With("walk", walk, "index", i).Errorf("unknown move %q", r)
				}
				if err := g.Act(action); err != nil {
					return err
				}
			}
			if err := g.Dump(cmd.OutOrStdout()); err != nil {
				return err
			}
			if showMetrics {
				return a.writeMetrics(cmd.ErrOrStderr())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&walk, "walk", "", "moves to make before dumping (hjklyubn, '.' waits, '>' descends)")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print visibility counters to stderr")
	return cmd
}
