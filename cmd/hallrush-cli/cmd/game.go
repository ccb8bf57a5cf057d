package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/nfrund/hallrush/internal/catalog"
	"github.com/nfrund/hallrush/internal/domain"
	"github.com/nfrund/hallrush/internal/handlers"
	"github.com/nfrund/hallrush/internal/modules/hallrush"
	"github.com/nfrund/hallrush/internal/storage"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func newStateCmd(env *environment) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the saved game",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := do.MustInvoke[storage.StateStore](env.injector)
			session, err := store.Load(cmd.Context())
			if errors.Is(err, domain.ErrStateUnavailable) {
				return fmt.Errorf("no game in progress in %s", env.cfg.DataDir)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(handlers.NewStateResponse(session, nil))
			}

			fmt.Fprintf(out, "Game %s\n", session.GameID)
			if winner := session.WinnerName(); winner != "" {
				fmt.Fprintf(out, "Winner: %s\n", winner)
			} else {
				fmt.Fprintf(out, "Next turn: %s\n", session.Roster.Name(session.Turn))
			}
			fmt.Fprintf(out, "Last card: %s\n\n", session.LastCardTime.Format("2006-01-02 15:04:05 MST"))

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SEAT\tNAME\tCOLOR\tTILE\tSKIPS")
			for i, player := range session.Roster {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", i+1, player.Name, player.Color, session.Positions[i], session.Skips[i])
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the state as JSON")
	return cmd
}

func newLogCmd(env *environment) *cobra.Command {
	var tail int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the event log",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := do.MustInvoke[storage.EventLog](env.injector).ReadAll(cmd.Context())
			if err != nil {
				return err
			}
			if tail > 0 && tail < len(lines) {
				lines = lines[len(lines)-tail:]
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&tail, "tail", "n", 0, "Only print the last n lines")
	return cmd
}

func newResetCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the board for the current players",
		Long: `Move every token back to the start, clear pending skips and restart the
event log. The players are kept. A running server with WATCH_DATA_DIR enabled
pushes the cleared board to its viewers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			service := hallrush.NewService(hallrush.ServiceDeps{
				Store:     do.MustInvoke[storage.StateStore](env.injector),
				Log:       do.MustInvoke[storage.EventLog](env.injector),
				Catalog:   do.MustInvoke[*catalog.Catalog](env.injector),
				CardTimer: env.cfg.CardTimer,
			})
			if err := service.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hallrush.LineGameReset)
			return nil
		},
	}
}
