// Package cli implements the command line adapter.
// Commands parse flags and delegate to the app layer.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/registry-cli/internal/app"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(version, commit, date string) {
	if version != "" {
		Version = version
	}
	if commit != "" {
		Commit = commit
	}
	if date != "" {
		BuildDate = date
	}
}

// Execute runs the CLI and returns the process exit code.
func Execute(version, commit, date string) int {
	SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		_ = cliWriteLine(cmd.ErrOrStderr(), cliRenderError(err.Error()))
		return 1
	}
	return 0
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "registry-cli",
		Short: "Apply a tag retention policy to a container registry",
		Long: `registry-cli lists the repositories of a Docker Registry HTTP API v2 endpoint,
keeps the most recent tags of each repository and reports or deletes the rest.

Without --delete the run only reports what would be removed. --dry-run resolves
every candidate without deleting anything and wins over --delete.`,
		Example: `  registry-cli -r registry.example.com --num 5
  registry-cli -r https://registry.example.com -l user:pass --tags-like '^feature-' --delete
  registry-cli -r http://localhost:5000 -i team/app --num 3 --dry-run -o json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			_, err = app.Run(cmd.Context(), cfg, cmd.OutOrStdout())
			return err
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "Path to config file (default ./registry-cli.yaml)")
	flags.StringP("registry", "r", "", "Registry host[:port], or http(s)://host[:port]")
	flags.StringP("login", "l", "", "Credentials as USER:PASSWORD")
	flags.StringP("image", "i", "", "Only process this repository, skipping the catalog")
	flags.StringArray("images-like", nil, "Only process repositories matching this regex (repeatable)")
	flags.StringArray("tags-like", nil, "Only consider tags matching this regex (repeatable)")
	flags.Int("num", 10, "Number of most recent tags to keep per repository")
	flags.Bool("delete", false, "Delete the tags beyond --num")
	flags.Bool("dry-run", false, "Resolve delete candidates without deleting them")
	flags.Bool("protect-kept-digests", false, "Never delete a digest still referenced by a kept tag")
	flags.String("digest-method", "HEAD", "How to resolve tag digests: HEAD or GET")
	flags.StringP("output", "o", "text", "Report format: text, json or yaml")
	flags.Float64("rps", 0, "Maximum registry requests per second (0 = unlimited)")
	flags.Duration("timeout", 30*time.Second, "Timeout per registry operation (0 = none)")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "console", "Log format: console or json")
	flags.String("log-file", "", "Also write logs to this rotating file")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if short {
				return cliWriteLine(w, Version)
			}
			if err := cliWriteLine(w, cliRenderTitle("registry-cli "+Version)); err != nil {
				return err
			}
			if err := cliWriteLine(w, cliRenderMeta("Commit:", Commit)); err != nil {
				return err
			}
			return cliWriteLine(w, cliRenderMeta("Built:", BuildDate))
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Show only the version number")

	return cmd
}
