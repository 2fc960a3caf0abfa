package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	catalogtypes "github.com/turtacn/VendorIQ/pkg/types/catalog"
)

var (
	vendorFile   string
	vendorOffset int
	vendorLimit  int
)

// NewVendorCmd creates the vendor command group.
func NewVendorCmd() *cobra.Command {
	vendorCmd := &cobra.Command{
		Use:   "vendor",
		Short: "Manage the vendor catalog",
	}

	upsertCmd := &cobra.Command{
		Use:   "upsert",
		Short: "Create or replace one vendor from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVendorUpsert(cmd.Context())
		},
	}
	upsertCmd.Flags().StringVarP(&vendorFile, "file", "f", "", "Path to a vendor JSON document (required)")
	upsertCmd.MarkFlagRequired("file")

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Ingest vendors from a JSON file holding {\"vendors\": [...]}",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVendorBatch(cmd.Context())
		},
	}
	batchCmd.Flags().StringVarP(&vendorFile, "file", "f", "", "Path to a batch JSON document (required)")
	batchCmd.MarkFlagRequired("file")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one vendor by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVendorGet(cmd.Context(), args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog vendors ordered by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVendorList(cmd.Context())
		},
	}
	listCmd.Flags().IntVar(&vendorOffset, "offset", 0, "Page offset")
	listCmd.Flags().IntVar(&vendorLimit, "limit", 50, "Page size")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one vendor and its relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVendorDelete(cmd.Context(), args[0])
		},
	}

	vendorCmd.AddCommand(upsertCmd, batchCmd, getCmd, listCmd, deleteCmd)
	return vendorCmd
}

func runVendorUpsert(ctx context.Context) error {
	cliCtx, err := GetCLIContext(ctx)
	if err != nil {
		return err
	}
	var vendor catalogtypes.Vendor
	if err := readJSONFile(vendorFile, &vendor); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cliCtx.Timeout)
	defer cancel()
	saved, err := cliCtx.Client.Vendors().Upsert(ctx, vendor)
	if err != nil {
		return err
	}
	cliCtx.printSuccess("vendor %s (%s) upserted", saved.ID, saved.Name)
	return nil
}

func runVendorBatch(ctx context.Context) error {
	cliCtx, err := GetCLIContext(ctx)
	if err != nil {
		return err
	}
	var req catalogtypes.BatchRequest
	if err := readJSONFile(vendorFile, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cliCtx.Timeout)
	defer cancel()
	count, err := cliCtx.Client.Vendors().Batch(ctx, req.Vendors)
	if err != nil {
		return err
	}
	cliCtx.printSuccess("%d vendors ingested", count)
	return nil
}

func runVendorGet(ctx context.Context, id string) error {
	cliCtx, err := GetCLIContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, cliCtx.Timeout)
	defer cancel()

	vendor, err := cliCtx.Client.Vendors().Get(ctx, id)
	if err != nil {
		return err
	}
	return cliCtx.printJSON(vendor)
}

func runVendorList(ctx context.Context) error {
	cliCtx, err := GetCLIContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, cliCtx.Timeout)
	defer cancel()

	resp, err := cliCtx.Client.Vendors().List(ctx, vendorOffset, vendorLimit)
	if err != nil {
		return err
	}
	if cliCtx.OutputFormat == "json" {
		return cliCtx.printJSON(resp)
	}

	table := tablewriter.NewWriter(cliCtx.Out)
	table.SetHeader([]string{"ID", "Name", "Industry", "Region", "Risk", "Certifications"})
	for _, v := range resp.Vendors {
		table.Append([]string{
			v.ID, v.Name, v.Industry, v.Region,
			fmt.Sprintf("%.2f", v.RiskScore),
			strings.Join(v.Certifications, ", "),
		})
	}
	table.Render()
	fmt.Fprintf(cliCtx.Out, "%d of %d vendors\n", len(resp.Vendors), resp.Total)
	return nil
}

func runVendorDelete(ctx context.Context, id string) error {
	cliCtx, err := GetCLIContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, cliCtx.Timeout)
	defer cancel()

	if err := cliCtx.Client.Vendors().Delete(ctx, id); err != nil {
		return err
	}
	cliCtx.printSuccess("vendor %s deleted", id)
	return nil
}

func readJSONFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
