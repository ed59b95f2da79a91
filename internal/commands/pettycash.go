package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aqarfin/estate_ledger/internal/dto"
)

func newPettyCashCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pettycash",
		Short: "Petty-cash issuance and spend tracking",
	}

	cmd.AddCommand(newPettyCashSummaryCommand())
	cmd.AddCommand(newPettyCashLedgerCommand())

	return cmd
}

// resolvePettyCashAccount takes the explicit flag value or falls back to the
// configured petty-cash account code.
func resolvePettyCashAccount(ctx context.Context, rt *runtime, accountID string) (string, error) {
	if accountID != "" {
		return accountID, nil
	}
	account, err := rt.svc.Account.GetAccountByCode(ctx, rt.cfg.PettyCashAccountCode)
	if err != nil {
		return "", fmt.Errorf("resolving petty-cash account %q: %w", rt.cfg.PettyCashAccountCode, err)
	}
	return account.AccountID, nil
}

func newPettyCashSummaryCommand() *cobra.Command {
	var accountID, from, to string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Issued, settled and remaining totals over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				dr, err := parseDateRange(from, to)
				if err != nil {
					return err
				}
				id, err := resolvePettyCashAccount(ctx, rt, accountID)
				if err != nil {
					return err
				}
				summary, err := rt.svc.PettyCash.Summary(ctx, id, dr)
				if err != nil {
					return err
				}
				return printJSON(dto.ToPettyCashSummaryResponse(summary))
			})
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "petty-cash account id, defaults to PETTY_CASH_ACCOUNT_CODE")
	cmd.Flags().StringVar(&from, "from", "", "range start, YYYY-MM-DD or RFC3339 (required)")
	cmd.Flags().StringVar(&to, "to", "", "range end, inclusive (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newPettyCashLedgerCommand() *cobra.Command {
	var accountID, from, to string

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Petty-cash statement with running balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				dr, err := parseDateRange(from, to)
				if err != nil {
					return err
				}
				id, err := resolvePettyCashAccount(ctx, rt, accountID)
				if err != nil {
					return err
				}
				result, err := rt.svc.PettyCash.Ledger(ctx, id, dr)
				if err != nil {
					return err
				}
				return printJSON(dto.ToLedgerResponse(result))
			})
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "petty-cash account id, defaults to PETTY_CASH_ACCOUNT_CODE")
	cmd.Flags().StringVar(&from, "from", "", "range start, YYYY-MM-DD or RFC3339 (required)")
	cmd.Flags().StringVar(&to, "to", "", "range end, inclusive (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
