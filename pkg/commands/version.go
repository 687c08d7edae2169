package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

func addVersion(topLevel *cobra.Command) {
	var (
		short  bool
		output string
	)
	version := "dev"
	commit := "none"
	date := "unknown"

	cmd := &cobra.Command{
		Use:   "version",
		Short: "print build version information",
		Example: `
gantt version
gantt version -o yaml
`,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Print(goversion.FuncWithOutput(short, version, commit, date, output))
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Only the bare version string.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Report format, json or yaml.")

	topLevel.AddCommand(cmd)
}
