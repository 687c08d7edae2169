// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// ItemOptions captures the listing flags for the items command.
type ItemOptions struct {
	ShowPath bool
	Within   string
}

// AddItemArgs wires item listing flags on the provided command.
func AddItemArgs(cmd *cobra.Command, o *ItemOptions) {
	cmd.Flags().BoolVar(&o.ShowPath, "paths", false,
		"Show the source document path for each item.")
	cmd.Flags().StringVarP(&o.Within, "within", "w", "",
		"Only show items overlapping the coming span, e.g. 10d, 8w, 3mo, 1y.")
}
