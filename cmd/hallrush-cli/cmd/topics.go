package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nfrund/hallrush/internal/pubsub"
	"github.com/spf13/cobra"

	// Registers the game events.
	_ "github.com/nfrund/hallrush/internal/modules/hallrush/topics"
)

func newTopicsCmd() *cobra.Command {
	var format string

	return withFormat(&cobra.Command{
		Use:   "topics",
		Short: "List the events published on the bus",
		Long: `List every event topic the server publishes, with its payload fields.

Output formats:
  table - Human-readable table format (default)
  json  - Machine-readable JSON format`,
		Annotations: offline,
		RunE: func(cmd *cobra.Command, args []string) error {
			events := pubsub.Events()
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(events)
			case "table":
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tPAYLOAD\tFIELDS\tDESCRIPTION")
				fmt.Fprintln(w, "----\t-------\t------\t-----------")
				for _, e := range events {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.PayloadType, strings.Join(e.PayloadFields, ","), e.Description)
				}
				return w.Flush()
			default:
				return fmt.Errorf("unsupported output format %q, use table or json", format)
			}
		},
	}, &format)
}

func withFormat(cmd *cobra.Command, format *string) *cobra.Command {
	cmd.Flags().StringVarP(format, "format", "f", "table", "Output format (table, json)")
	return cmd
}
