package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/gantt/pkg/app"
	"tableflip.dev/gantt/pkg/vault"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "gantt",
		Short: base.Wrap80("A gantt timeline for a markdown vault."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addItems(topLevel)
	addOpen(topLevel)
	addConfig(topLevel)
	addVersion(topLevel)
}

// newService loads settings and opens the vault and parse cache behind a
// Service. Every command goes through here so they agree on configuration.
func newService() (*app.Service, error) {
	settings, err := vault.LoadSettings()
	if err != nil {
		return nil, err
	}
	v, err := vault.Load(settings)
	if err != nil {
		return nil, err
	}
	return &app.Service{
		Vault:    v,
		Settings: settings,
		Cache:    vault.OpenCache(settings.CachePath),
	}, nil
}
