package main

import (
	"fmt"
	"strconv"

	"github.com/deppfellow/shopping-list/internal/lib/utils"
	"github.com/spf13/cobra"
)

func parseCount(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, arg, err)
	}
	return n, nil
}

func newReportCmd(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run read-only reports",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "search <term>",
			Short: "Items whose name contains term, ignoring case",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := r.services.Report.SearchByName(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return utils.PrintJSON(cmd.OutOrStdout(), items)
			},
		},
		&cobra.Command{
			Use:   "page <n>",
			Short: "One page of six items",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				page, err := parseCount("page", args[0])
				if err != nil {
					return err
				}
				items, err := r.services.Report.Paginate(cmd.Context(), page)
				if err != nil {
					return err
				}
				return utils.PrintJSON(cmd.OutOrStdout(), items)
			},
		},
		&cobra.Command{
			Use:   "recent <days>",
			Short: "Items added in the last <days> days",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				days, err := parseCount("days", args[0])
				if err != nil {
					return err
				}
				items, err := r.services.Report.AddedSince(cmd.Context(), days)
				if err != nil {
					return err
				}
				return utils.PrintJSON(cmd.OutOrStdout(), items)
			},
		},
		&cobra.Command{
			Use:   "cost",
			Short: "Total price per category",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				totals, err := r.services.Report.CostPerCategory(cmd.Context())
				if err != nil {
					return err
				}
				return utils.PrintJSON(cmd.OutOrStdout(), totals)
			},
		},
	)
	return cmd
}
