// Package cli implements the vendoriq command-line tool. Every command talks
// to a running API server through the Go SDK.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/VendorIQ/pkg/client"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ServerAddr   string
	OutputFormat string
	Timeout      time.Duration
}

// CLIContext carries the initialized SDK client through the command tree.
type CLIContext struct {
	Client       *client.Client
	OutputFormat string
	Timeout      time.Duration
	Out          io.Writer
}

// NewRootCommand creates the root command with global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "vendoriq",
		Short:   "VendorIQ CLI: natural-language vendor matching over a relationship graph",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initCLIContext(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ServerAddr, "server", "http://localhost:8080", "API server base URL")
	cmd.PersistentFlags().StringVarP(&opts.OutputFormat, "output", "o", "table", "Output format: table|json")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Request timeout")

	cmd.AddCommand(
		NewMatchCmd(),
		NewVendorCmd(),
		NewSchemaCmd(),
	)
	return cmd
}

func initCLIContext(cmd *cobra.Command, opts *RootOptions) error {
	if opts.OutputFormat != "table" && opts.OutputFormat != "json" {
		return fmt.Errorf("unsupported output format %q (want table or json)", opts.OutputFormat)
	}

	sdk, err := client.NewClient(opts.ServerAddr,
		client.WithUserAgent(fmt.Sprintf("vendoriq-cli/%s", Version)))
	if err != nil {
		return err
	}

	cliCtx := &CLIContext{
		Client:       sdk,
		OutputFormat: opts.OutputFormat,
		Timeout:      opts.Timeout,
		Out:          cmd.OutOrStdout(),
	}
	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))
	return nil
}

// GetCLIContext extracts the CLIContext installed by the root command.
func GetCLIContext(ctx context.Context) (*CLIContext, error) {
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok {
		return nil, fmt.Errorf("CLI context not initialized")
	}
	return cliCtx, nil
}

func (c *CLIContext) printJSON(v any) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *CLIContext) printSuccess(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(c.Out, format+"\n", args...)
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
