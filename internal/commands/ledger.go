package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
	"github.com/aqarfin/estate_ledger/internal/dto"
)

// parseInstant accepts a date (whole-day boundary) or a full RFC3339 instant.
// endOfDay pushes a bare date to the last nanosecond of that day so that
// date-only ranges stay inclusive.
func parseInstant(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD or RFC3339", s)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}

func parseDateRange(from, to string) (domain.DateRange, error) {
	start, err := parseInstant(from, false)
	if err != nil {
		return domain.DateRange{}, err
	}
	end, err := parseInstant(to, true)
	if err != nil {
		return domain.DateRange{}, err
	}
	return domain.DateRange{Start: start, End: end}, nil
}

func newLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Statement queries with running balances",
	}

	cmd.AddCommand(newLedgerAccountCommand())
	cmd.AddCommand(newLedgerPartyCommand())

	return cmd
}

func newLedgerAccountCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "account <account-id>",
		Short: "Ledger of one GL account over a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				dr, err := parseDateRange(from, to)
				if err != nil {
					return err
				}
				result, err := rt.svc.Ledger.QueryLedger(ctx, domain.ByAccount(args[0]), dr)
				if err != nil {
					return err
				}
				return printJSON(dto.ToLedgerResponse(result))
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "range start, YYYY-MM-DD or RFC3339 (required)")
	cmd.Flags().StringVar(&to, "to", "", "range end, inclusive (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newLedgerPartyCommand() *cobra.Command {
	var kind, id, propertyID, unitID, from, to string

	cmd := &cobra.Command{
		Use:   "party",
		Short: "Statement of one party, optionally narrowed by property or unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				dr, err := parseDateRange(from, to)
				if err != nil {
					return err
				}
				partyKind := domain.PartyKind(kind)
					if partyKind != domain.PartyCompany && id == "" {
						return fmt.Errorf("--id is required for kind %s", kind)
					}
					party := domain.PartyRef{Kind: partyKind, ID: id}
				var propPtr, unitPtr *string
				if propertyID != "" {
					propPtr = &propertyID
				}
				if unitID != "" {
					unitPtr = &unitID
				}
				result, err := rt.svc.Ledger.QueryLedger(ctx, domain.ByPartyAndSubject(party, propPtr, unitPtr), dr)
				if err != nil {
					return err
				}
				return printJSON(dto.ToLedgerResponse(result))
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "party kind: OWNER, RENTER or COMPANY (required)")
	cmd.Flags().StringVar(&id, "id", "", "party id (required unless kind is COMPANY)")
	cmd.Flags().StringVar(&propertyID, "property", "", "narrow to one property")
	cmd.Flags().StringVar(&unitID, "unit", "", "narrow to one unit")
	cmd.Flags().StringVar(&from, "from", "", "range start, YYYY-MM-DD or RFC3339 (required)")
	cmd.Flags().StringVar(&to, "to", "", "range end, inclusive (required)")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newTrialBalanceCommand() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Every account's balance as of an instant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				at := time.Now().UTC()
				if asOf != "" {
					var err error
					at, err = parseInstant(asOf, true)
					if err != nil {
						return err
					}
				}
				rows, err := rt.svc.Ledger.TrialBalance(ctx, at)
				if err != nil {
					return err
				}
				return printJSON(dto.ToTrialBalanceResponse(at, rows))
			})
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "instant to evaluate at, defaults to now")

	return cmd
}
