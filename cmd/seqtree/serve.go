package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/seqtree/pkg/preview"
	"github.com/vango-dev/seqtree/pkg/render"
	"github.com/vango-dev/seqtree/pkg/script"
	"github.com/vango-dev/seqtree/pkg/telemetry"
)

func (a *app) serveCmd() *cobra.Command {
	var (
		port    int
		host    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Serve every build script in the scripts directory as an HTML page.

Pages reload in the browser when a script changes. Frames are available
as JSON at /scripts/<name>/frames and Prometheus metrics at /metrics.

Examples:
  seqtree serve
  seqtree serve --port=8080
  seqtree serve --no-watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				a.cfg.Preview.Port = port
			}
			if host != "" {
				a.cfg.Preview.Host = host
			}
			if noWatch {
				a.cfg.Preview.Watch = false
			}
			return a.runServe(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from seqtree.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from seqtree.json)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Disable live reload")

	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	opts, err := a.builderOptions()
	if err != nil {
		return err
	}
	metrics := telemetry.NewMetrics()

	server := preview.New(preview.Config{
		ScriptsDir:     a.cfg.ScriptsPath(),
		BuilderOptions: opts,
		Render:         render.Config{Pretty: a.cfg.Render.Pretty, Indent: a.cfg.Render.Indent},
		Registry:       script.NewRegistry(),
		Metrics:        metrics,
		Tracer:         otel.Tracer(telemetry.DefaultTracerName),
		Logger:         a.logger,
		Watch:          a.cfg.Preview.Watch,
		PollInterval:   a.cfg.PollInterval(),
	})

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "\n  Preview:  %s\n\n", a.cfg.PreviewURL())
	return server.ListenAndServe(ctx, a.cfg.PreviewAddress())
}
