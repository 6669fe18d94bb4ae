package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bundler/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build every bundle once and write it to an output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, _ := cmd.Flags().GetString("out")
			concurrency, _ := cmd.Flags().GetInt("concurrency")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				CommonOptions: commonOptions(cmd),
				OutDir:        out,
				Concurrency:   concurrency,
			})
		},
	}
	cmd.Flags().StringP("out", "o", "dist", "Output directory for bundles and manifest.json")
	cmd.Flags().IntP("concurrency", "j", 0, "Number of bundles built in parallel (0 uses all CPUs)")
	return cmd
}
