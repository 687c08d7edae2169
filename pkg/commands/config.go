package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/vault"
)

func addConfig(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "inspect and change settings",
		Run: func(cmd *cobra.Command, args []string) {
			// a sub-command is required.
			_ = cmd.Help()
		},
	}

	addConfigList(cmd)
	addConfigGet(cmd)
	addConfigSet(cmd)

	topLevel.AddCommand(cmd)
}

func addConfigList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list all settings and their current values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := vault.LoadSettings(); err != nil {
				return err
			}
			for _, key := range vault.Keys() {
				value, err := vault.Get(key)
				if err != nil {
					return err
				}
				fmt.Printf("%s = %s\n", key, value)
			}
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addConfigGet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "print one setting",
		Example: `
gantt config get path
`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: vault.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := vault.LoadSettings(); err != nil {
				return err
			}
			value, err := vault.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addConfigSet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "change a setting and persist it",
		Example: `
gantt config set path ~/notes
gantt config set project-color "#8250df"
`,
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: vault.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := vault.LoadSettings(); err != nil {
				return err
			}
			return vault.Set(args[0], strings.Join(args[1:], " "))
		},
	}
	topLevel.AddCommand(cmd)
}
