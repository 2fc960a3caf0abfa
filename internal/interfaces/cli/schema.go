package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewSchemaCmd creates the schema command group.
func NewSchemaCmd() *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the graph schema",
	}

	ensureCmd := &cobra.Command{
		Use:   "ensure",
		Short: "Create graph constraints and indexes (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchemaEnsure(cmd.Context())
		},
	}

	schemaCmd.AddCommand(ensureCmd)
	return schemaCmd
}

func runSchemaEnsure(ctx context.Context) error {
	cliCtx, err := GetCLIContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, cliCtx.Timeout)
	defer cancel()

	if err := cliCtx.Client.Vendors().EnsureSchema(ctx); err != nil {
		return err
	}
	cliCtx.printSuccess("schema ensured")
	return nil
}
