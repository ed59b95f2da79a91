package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/aqarfin/estate_ledger/internal/dto"
)

func newSettleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Match, inspect and undo settlement allocations",
	}

	cmd.AddCommand(newSettleMatchCommand())
	cmd.AddCommand(newSettleAutoCommand())
	cmd.AddCommand(newSettleSummaryCommand())
	cmd.AddCommand(newSettleAllocationsCommand())
	cmd.AddCommand(newSettleUnmatchCommand())
	cmd.AddCommand(newSettleVoidCommand())

	return cmd
}

func newSettleMatchCommand() *cobra.Command {
	var payableLineID, settlingLineID, amount string

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Allocate a settling line against a payable line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				req := dto.MatchSettlementRequest{
					PayableLineID:  payableLineID,
					SettlingLineID: settlingLineID,
				}
				if amount != "" {
					d, err := decimal.NewFromString(amount)
					if err != nil {
						return fmt.Errorf("invalid amount %q: %w", amount, err)
					}
					req.Amount = &d
				}
				alloc, err := rt.svc.Settlement.MatchSettlement(ctx, req, actorFlag)
				if err != nil {
					return err
				}
				return printJSON(dto.ToAllocationResponse(alloc))
			})
		},
	}

	cmd.Flags().StringVar(&payableLineID, "payable", "", "payable line id (required)")
	cmd.Flags().StringVar(&settlingLineID, "settling", "", "settling line id (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "decimal amount to match, defaults to the smaller remaining")
	_ = cmd.MarkFlagRequired("payable")
	_ = cmd.MarkFlagRequired("settling")

	return cmd
}

func newSettleAutoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "auto <line-id>",
		Short: "Run the auto-match pass for one line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				allocs, err := rt.svc.Settlement.AutoMatch(ctx, args[0], actorFlag)
				if err != nil {
					return err
				}
				responses := make([]dto.AllocationResponse, len(allocs))
				for i := range allocs {
					responses[i] = dto.ToAllocationResponse(&allocs[i])
				}
				return printJSON(responses)
			})
		},
	}
}

func newSettleSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <line-id>",
		Short: "Show a line's settled/remaining breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				summary, err := rt.svc.Settlement.SettlementSummary(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(dto.ToSettlementSummaryResponse(summary))
			})
		},
	}
}

func newSettleAllocationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "allocations <line-id>",
		Short: "List every allocation a line participates in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				allocs, err := rt.svc.Settlement.AllocationsForLine(ctx, args[0])
				if err != nil {
					return err
				}
				responses := make([]dto.AllocationResponse, len(allocs))
				for i := range allocs {
					responses[i] = dto.ToAllocationResponse(&allocs[i])
				}
				return printJSON(responses)
			})
		},
	}
}

func newSettleUnmatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unmatch <allocation-id>",
		Short: "Delete one allocation, reopening both lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				return rt.svc.Settlement.UnmatchAllocation(ctx, args[0], actorFlag)
			})
		},
	}
}

func newSettleVoidCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "void <settling-line-id>",
		Short: "Delete every allocation in which the line settles others",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				return rt.svc.Settlement.VoidSettlements(ctx, args[0], actorFlag)
			})
		},
	}
}
