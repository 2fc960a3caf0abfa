package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	matchtypes "github.com/turtacn/VendorIQ/pkg/types/match"
)

var (
	matchIndustry  string
	matchRegions   []string
	matchCities    []string
	matchCerts     []string
	matchServices  []string
	matchTolerance int
	matchLimit     int
	matchSortBy    string
)

// NewMatchCmd creates the match command group.
func NewMatchCmd() *cobra.Command {
	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Find the best-matching vendors",
	}

	queryCmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Match vendors from a natural-language query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatchQuery(cmd.Context(), strings.Join(args, " "))
		},
	}

	criteriaCmd := &cobra.Command{
		Use:   "criteria",
		Short: "Match vendors from structured criteria flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatchCriteria(cmd.Context(), cmd)
		},
	}
	criteriaCmd.Flags().StringVar(&matchIndustry, "industry", "", "Industry segment, e.g. healthcare")
	criteriaCmd.Flags().StringSliceVar(&matchRegions, "region", nil, "Region filter, repeatable (us-east, eu-west, apac, global, ...)")
	criteriaCmd.Flags().StringSliceVar(&matchCities, "city", nil, "City filter for facility locations, repeatable")
	criteriaCmd.Flags().StringSliceVar(&matchCerts, "cert", nil, "Required certification, repeatable (hipaa, soc 2, ...)")
	criteriaCmd.Flags().StringSliceVar(&matchServices, "service", nil, "Required service, repeatable (colocation, dark-fiber, ...)")
	criteriaCmd.Flags().IntVar(&matchTolerance, "risk-tolerance", 0, "Risk tolerance 1 (strict) to 10 (permissive); 0 disables the risk filter")
	criteriaCmd.Flags().IntVar(&matchLimit, "limit", 0, "Maximum results (0 uses the server default)")
	criteriaCmd.Flags().StringVar(&matchSortBy, "sort", "", "Sort order: score_desc|risk_asc|name_asc")

	matchCmd.AddCommand(queryCmd, criteriaCmd)
	return matchCmd
}

func runMatchQuery(ctx context.Context, query string) error {
	cliCtx, err := GetCLIContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, cliCtx.Timeout)
	defer cancel()

	resp, err := cliCtx.Client.Match().Query(ctx, query)
	if err != nil {
		return err
	}
	return renderMatchResponse(cliCtx, resp)
}

func runMatchCriteria(ctx context.Context, cmd *cobra.Command) error {
	cliCtx, err := GetCLIContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, cliCtx.Timeout)
	defer cancel()

	req := matchtypes.CriteriaRequest{
		Industry:               matchIndustry,
		Regions:                matchRegions,
		Cities:                 matchCities,
		RequiredCertifications: matchCerts,
		RequiredServices:       matchServices,
		ResultLimit:            matchLimit,
		SortBy:                 matchSortBy,
	}
	if cmd.Flags().Changed("risk-tolerance") {
		tolerance := matchTolerance
		req.RiskTolerance = &tolerance
	}

	resp, err := cliCtx.Client.Match().Structured(ctx, req)
	if err != nil {
		return err
	}
	return renderMatchResponse(cliCtx, resp)
}

func renderMatchResponse(cliCtx *CLIContext, resp *matchtypes.Response) error {
	if cliCtx.OutputFormat == "json" {
		return cliCtx.printJSON(resp)
	}

	if resp.Count == 0 {
		fmt.Fprintln(cliCtx.Out, "No vendors matched.")
		return nil
	}

	table := tablewriter.NewWriter(cliCtx.Out)
	table.SetHeader([]string{"#", "Vendor", "Region", "Risk", "Score", "Matched Reasons"})
	table.SetAutoWrapText(false)
	for i, result := range resp.Results {
		table.Append([]string{
			fmt.Sprint(i + 1),
			result.Name,
			result.Region,
			fmt.Sprintf("%.2f", result.RiskScore),
			fmt.Sprint(result.Score),
			strings.Join(result.MatchedReasons, "; "),
		})
	}
	table.Render()

	if resp.ExtractionStrategy != "" {
		fmt.Fprintf(cliCtx.Out, "extraction strategy: %s\n", resp.ExtractionStrategy)
	}
	return nil
}
