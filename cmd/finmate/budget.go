package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/finmate/internal/budget"
	"github.com/Veraticus/finmate/internal/cli"
	"github.com/Veraticus/finmate/internal/common"
	"github.com/Veraticus/finmate/internal/model"
)

func allocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Split monthly income into needs, wants and savings",
		Example: `  finmate allocate --income 50000 --expenses 20000 --role professional
  finmate allocate --income 20000 --expenses 18000 --role student`,
		RunE: runAllocate,
	}

	cmd.Flags().Float64("income", 0, "monthly income")
	cmd.Flags().Float64("expenses", 0, "total fixed monthly expenses")
	cmd.Flags().String("role", "", "Student, Professional or Housewife")

	return cmd
}

func runAllocate(cmd *cobra.Command, _ []string) error {
	income, _ := cmd.Flags().GetFloat64("income")
	expenses, _ := cmd.Flags().GetFloat64("expenses")

	role, err := roleFlag(cmd)
	if err != nil {
		return err
	}

	alloc := budget.Allocate(income, max(expenses, 0), role)
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderAllocation(role, income, alloc))
	return nil
}

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score how well the budget is being kept",
		Example: `  finmate evaluate --role student --limit 100 --avg-spend 120
  finmate evaluate --role professional --income 50000 --savings 8000`,
		RunE: runEvaluate,
	}

	cmd.Flags().String("role", "", "Student, Professional or Housewife")
	cmd.Flags().Float64("income", 0, "monthly income")
	cmd.Flags().Float64("savings", 0, "actual savings this month")
	cmd.Flags().Float64("limit", 0, "daily spending limit")
	cmd.Flags().Float64("avg-spend", 0, "average daily spending")
	cmd.Flags().Float64("variance", 0, "monthly spending variance")

	return cmd
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	role, err := roleFlag(cmd)
	if err != nil {
		return err
	}

	in := budget.MetricInput{Role: role}
	in.Income, _ = cmd.Flags().GetFloat64("income")
	in.ActualSavings, _ = cmd.Flags().GetFloat64("savings")
	in.DailySpendingLimit, _ = cmd.Flags().GetFloat64("limit")
	in.AverageDailySpending, _ = cmd.Flags().GetFloat64("avg-spend")
	in.MonthlyVariance, _ = cmd.Flags().GetFloat64("variance")

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderMetric(budget.Evaluate(in)))
	return nil
}

// roleFlag parses --role. Empty is allowed and means unset.
func roleFlag(cmd *cobra.Command) (model.Role, error) {
	raw, _ := cmd.Flags().GetString("role")
	if raw == "" {
		return model.RoleUnset, nil
	}
	role, ok := model.ParseRole(raw)
	if !ok {
		return model.RoleUnset, common.NewUserError(
			fmt.Sprintf("unknown role %q: use Student, Professional or Housewife", raw), common.ErrInvalidInput)
	}
	return role, nil
}
