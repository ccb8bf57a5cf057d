package cmd

import (
	"fmt"

	"github.com/nfrund/hallrush/internal/app"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version number of hallrush-cli",
		Annotations: offline,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hallrush-cli %s\n", app.Version)
		},
	}
}
