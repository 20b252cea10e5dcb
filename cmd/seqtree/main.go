// Command seqtree builds, renders, previews and publishes build scripts.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/seqtree/internal/config"
	"github.com/vango-dev/seqtree/internal/errors"
	"github.com/vango-dev/seqtree/pkg/builder"
	"github.com/vango-dev/seqtree/pkg/render"
	"github.com/vango-dev/seqtree/pkg/script"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds state shared by every command.
type app struct {
	dir        string
	logLevel   string
	pretty     bool
	maxPerLine int
	indent     string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "seqtree",
		Short: "Build render trees with stable sequence numbers",
		Long: `seqtree drives a sequenced tree builder from JSON build scripts.

Each script operation is numbered so that sequence numbers stay stable
across rebuilds. Commands render the resulting tree to HTML, dump its
frames, serve a live preview or publish pages to object storage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.dir, "dir", "C", ".", "Project directory (searched upward for seqtree.json)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&a.pretty, "pretty", false, "Interleave indentation fragments into the tree")
	flags.IntVar(&a.maxPerLine, "max-per-line", 0, "Sequence numbers available per line")
	flags.StringVar(&a.indent, "indent", "", "Indentation unit for pretty printing")

	rootCmd.AddCommand(
		a.renderCmd(),
		a.framesCmd(),
		a.serveCmd(),
		a.publishCmd(),
		explainCmd(),
		versionCmd(),
	)
	return rootCmd
}

// load reads seqtree.json and applies command-line overrides.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(a.dir)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("pretty") {
		cfg.Builder.PrettyPrint = a.pretty
	}
	if flags.Changed("max-per-line") {
		cfg.Builder.MaxPerLine = a.maxPerLine
	}
	if flags.Changed("indent") {
		cfg.Builder.IndentUnit = a.indent
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.SlogLevel())
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (a *app) builderOptions() ([]builder.Option, error) {
	opts, err := a.cfg.BuilderOptions()
	if err != nil {
		return nil, err
	}
	// Per-sequence records are only useful when debugging a build.
	if a.cfg.SlogLevel() <= slog.LevelDebug {
		opts = append(opts, builder.WithLogger(a.logger))
	}
	return opts, nil
}

func (a *app) renderer() *render.Renderer {
	return render.NewRenderer(render.Config{
		Pretty: a.cfg.Render.Pretty,
		Indent: a.cfg.Render.Indent,
	})
}

// renderScript loads and renders the script at path. With page set the
// result is a complete HTML document.
func (a *app) renderScript(cmd *cobra.Command, path string, page bool) (*script.Script, []byte, error) {
	sc, err := script.Load(path)
	if err != nil {
		return nil, nil, err
	}
	opts, err := a.builderOptions()
	if err != nil {
		return nil, nil, err
	}
	frames, err := sc.Frames(cmd.Context(), script.NewRegistry(), opts...)
	if err != nil {
		return nil, nil, err
	}

	r := a.renderer()
	var out []byte
	if page {
		title := sc.Title
		if title == "" {
			title = sc.Name
		}
		var buf bytes.Buffer
		if err := r.RenderPage(&buf, render.PageData{Body: frames, Title: title}); err != nil {
			return nil, nil, err
		}
		out = buf.Bytes()
	} else {
		html, err := r.RenderToString(frames)
		if err != nil {
			return nil, nil, err
		}
		out = []byte(html)
	}
	a.logger.Debug("rendered script", "script", sc.Name, "frames", len(frames), "bytes", len(out))
	return sc, out, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
