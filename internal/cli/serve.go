package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/server"
)

// serveCommand creates the serve command for the live preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   renderFlags
		addr    string
		noWatch bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [flows]",
		Short: "Preview a flow file in the browser with live reload",
		Long: `Serve a live preview of a flow file.

Open the printed URL; the page reloads whenever the file changes. Query
parameters (width, height, fill_mode, show_values, decimals, viz) override
the render options per request, e.g. /plot.svg?fill_mode=gradient.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, cfg)
			if err != nil {
				return err
			}
			opts.Source = args[0]
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}

			cc, err := newCache(cmd.Context(), cfg.Cache, noCache)
			if err != nil {
				return fmt.Errorf("initialize cache: %w", err)
			}
			runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, "serve:"), c.Logger)
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:        addr,
				Options:     opts,
				Runner:      runner,
				CORSOrigins: cfg.Server.CORSOrigins,
				Watch:       !noWatch,
				Logger:      c.Logger,
			})
			return c.runServer(cmd.Context(), srv, addr)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config: localhost:8750)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload on file changes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServer serves until the context is cancelled, then shuts down.
func (c *CLI) runServer(ctx context.Context, srv *server.Server, addr string) error {
	printSuccess("Serving preview")
	printKeyValue("URL", StyleLink.Render("http://"+addr+"/"))
	printKeyValue("Plot", StyleLink.Render("http://"+addr+"/plot.svg"))
	printNewline()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		printInfo("Server stopped")
		return nil
	}
}
