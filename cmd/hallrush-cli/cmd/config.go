package cmd

import (
	"fmt"

	"github.com/nfrund/hallrush/internal/catalog"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func newInitCmd(env *environment) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default tile table and card deck",
		Long: `Write the built-in special tile table and Hall Rush card deck into the
data directory. Existing files are kept unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := do.MustInvoke[*catalog.Catalog](env.injector)
			written, err := cat.ExtractDefaults(force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(written) == 0 {
				fmt.Fprintf(out, "Configuration already present in %s (use --force to overwrite)\n", env.cfg.DataDir)
				return nil
			}
			for _, path := range written {
				fmt.Fprintf(out, "✅ Wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	return cmd
}

func newCheckConfigCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the tile table and card deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := do.MustInvoke[*catalog.Catalog](env.injector)
			tiles, cards, err := cat.Check(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d special tiles, %d cards in %s\n", tiles, cards, env.cfg.DataDir)
			return nil
		},
	}
}
