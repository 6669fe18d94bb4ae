package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bundler/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve bundles over HTTP, rebuilding them when sources change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listen, _ := cmd.Flags().GetString("listen")
			admin, _ := cmd.Flags().GetString("admin")
			noWarm, _ := cmd.Flags().GetBool("no-warm")
			noWatch, _ := cmd.Flags().GetBool("no-watch")

			return c.app.Serve(cmd.Context(), app.ServeOptions{
				CommonOptions: commonOptions(cmd),
				Listen:        listen,
				Admin:         admin,
				NoWarm:        noWarm,
				NoWatch:       noWatch,
			})
		},
	}
	cmd.Flags().StringP("listen", "l", "", "HTTP listen address (overrides the configured address)")
	cmd.Flags().String("admin", "", "gRPC health listen address (overrides the configured address)")
	cmd.Flags().Bool("no-warm", false, "Do not build bundles at startup")
	cmd.Flags().Bool("no-watch", false, "Do not watch sources; bundles refresh only when their TTL expires")
	return cmd
}
