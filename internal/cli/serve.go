package cli

import (
	"github.com/spf13/cobra"

	"github.com/0x0FACED/go-voronoi-paint/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo HTTP server",
		Long:  `serve hosts the demo page, PNG paint endpoints, echarts export and the worklet definition until interrupted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			srv, err := server.New(cfg, c.Logger)
			if err != nil {
				return err
			}
			defer c.Logger.Sync()
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (toml)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
