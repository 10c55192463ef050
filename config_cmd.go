package main

import (
	"github.com/spf13/cobra"

	"github.com/tonimelisma/storefront-go/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Display effective configuration after all overrides",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSessionAnnotation: "true"},
		RunE:        runConfigShow,
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	if cc.Flags.JSON {
		return printJSON(cmd.OutOrStdout(), cc.Cfg.Config)
	}

	return config.RenderEffective(cc.Cfg, cmd.OutOrStdout())
}
