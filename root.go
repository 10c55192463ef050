package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/storefront-go/internal/api"
	"github.com/tonimelisma/storefront-go/internal/config"
	"github.com/tonimelisma/storefront-go/internal/storefront"
	"github.com/tonimelisma/storefront-go/internal/tokenstore"
)

// version is set at build time via ldflags.
var version = "dev"

// openStore opens the credential store. Tests override it.
var openStore = tokenstore.Open

// Global persistent flags, bound in newRootCmd().
var (
	flagConfigPath string
	flagBaseURL    string
	flagTimeout    string
	flagJSON       bool
	flagVerbose    bool
	flagQuiet      bool
)

// skipSessionAnnotation marks commands that only need configuration, so no
// credential store is opened for them.
const skipSessionAnnotation = "skip-session"

// CLIFlags snapshots the global output flags.
type CLIFlags struct {
	JSON    bool
	Verbose bool
	Quiet   bool
}

// CLIContext carries everything a subcommand needs. It is built once in
// the root PersistentPreRunE and attached to the command context.
type CLIContext struct {
	Flags   CLIFlags
	Logger  *slog.Logger
	Cfg     *config.Resolved
	Store   tokenstore.Store
	Service *storefront.Service
}

type cliContextKey struct{}

// mustCLIContext returns the CLIContext stored by the root pre-run. A
// missing context is a programming error.
func mustCLIContext(ctx context.Context) *CLIContext {
	cc, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok {
		panic("storefront: CLIContext missing from command context")
	}

	return cc
}

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "storefront",
		Short:   "Storefront API client",
		Long:    "Browse and manage a storefront's catalog, blog and images from the command line.",
		Version: version,
		// Errors are printed by main.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := newCLIContext(cmd)
			if err != nil {
				return err
			}

			cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cc))

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "backend base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&flagTimeout, "timeout", "", "request timeout, e.g. 10s (overrides config)")
	cmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newRefreshCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newCategoriesCmd())
	cmd.AddCommand(newProductsCmd())
	cmd.AddCommand(newBlogCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newImagesCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// newCLIContext resolves configuration and, unless the command opts out,
// opens the credential store and the service on top of it.
func newCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	bootstrap := buildLogger(nil)

	cli := config.CLIOverrides{
		ConfigPath: flagConfigPath,
		BaseURL:    flagBaseURL,
		Timeout:    flagTimeout,
	}

	resolved, err := config.Resolve(config.ReadEnvOverrides(bootstrap), cli)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cc := &CLIContext{
		Flags:  CLIFlags{JSON: flagJSON, Verbose: flagVerbose, Quiet: flagQuiet},
		Logger: buildLogger(resolved),
		Cfg:    resolved,
	}

	if cmd.Annotations[skipSessionAnnotation] != "" {
		return cc, nil
	}

	store, err := openStore(cmd.Context(), resolved.Storage.Backend, resolved.CredentialsPath, cc.Logger)
	if err != nil {
		return nil, fmt.Errorf("opening credential store: %w", err)
	}

	client := api.NewClient(api.Config{
		BaseURL:   resolved.API.BaseURL,
		Timeout:   resolved.Timeout,
		UserAgent: resolved.API.UserAgent,
	}, &http.Client{}, store, cc.Logger)

	cc.Store = store
	cc.Service = storefront.NewService(client, store, cc.Logger, storefront.Options{
		ParallelUploads: resolved.Uploads.ParallelUploads,
		MaxImageSize:    resolved.MaxImageSize,
	})

	cc.Logger.Debug("session ready",
		slog.String("base_url", client.BaseURL()),
		slog.String("storage", resolved.Storage.Backend),
		slog.Duration("timeout", client.Timeout()),
	)

	return cc, nil
}

// buildLogger creates an slog.Logger configured by the resolved config and
// CLI flags. Config-file log level provides the baseline; --verbose and
// --quiet override it because CLI flags always win. A nil cfg yields the
// bootstrap logger used while config is still loading.
func buildLogger(cfg *config.Resolved) *slog.Logger {
	level := slog.LevelWarn
	format := "text"

	if cfg != nil {
		format = cfg.Logging.LogFormat

		switch cfg.Logging.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// execute runs root and closes the credential store opened for the executed
// command. cobra skips PersistentPostRunE when RunE fails, so the close
// happens here to cover error paths too.
func execute(ctx context.Context, root *cobra.Command) error {
	cmd, err := root.ExecuteContextC(ctx)

	if cmd == nil || cmd.Context() == nil {
		return err
	}

	cc, ok := cmd.Context().Value(cliContextKey{}).(*CLIContext)
	if !ok || cc.Store == nil {
		return err
	}

	if closeErr := cc.Store.Close(); closeErr != nil {
		return errors.Join(err, fmt.Errorf("closing credential store: %w", closeErr))
	}

	return err
}
