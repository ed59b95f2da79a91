package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
	"github.com/aqarfin/estate_ledger/internal/dto"
)

func newAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage the chart of accounts",
	}

	cmd.AddCommand(newAccountsCreateCommand())
	cmd.AddCommand(newAccountsListCommand())
	cmd.AddCommand(newAccountsUpdateCommand())
	cmd.AddCommand(newAccountsDeleteCommand())

	return cmd
}

func newAccountsCreateCommand() *cobra.Command {
	var code, name, normalSide string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new GL account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				account, err := rt.svc.Account.CreateAccount(ctx, dto.CreateAccountRequest{
					Code:       code,
					Name:       name,
					NormalSide: domain.Side(normalSide),
				}, actorFlag)
				if err != nil {
					return err
				}
				return printJSON(dto.ToAccountResponse(account))
			})
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "chart-of-accounts code (required)")
	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	cmd.Flags().StringVar(&normalSide, "normal-side", "", "DEBIT or CREDIT (required)")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("normal-side")

	return cmd
}

func newAccountsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the chart of accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				accounts, err := rt.svc.Account.ListAccounts(ctx)
				if err != nil {
					return err
				}
				responses := make([]dto.AccountResponse, len(accounts))
				for i := range accounts {
					responses[i] = dto.ToAccountResponse(&accounts[i])
				}
				return printJSON(responses)
			})
		},
	}
}

func newAccountsUpdateCommand() *cobra.Command {
	var name string
	var active bool

	cmd := &cobra.Command{
		Use:   "update <account-id>",
		Short: "Rename or (de)activate an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				req := dto.UpdateAccountRequest{}
				if cmd.Flags().Changed("name") {
					req.Name = &name
				}
				if cmd.Flags().Changed("active") {
					req.IsActive = &active
				}
				account, err := rt.svc.Account.UpdateAccount(ctx, args[0], req, actorFlag)
				if err != nil {
					return err
				}
				return printJSON(dto.ToAccountResponse(account))
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new account name")
	cmd.Flags().BoolVar(&active, "active", true, "whether the account accepts new postings")

	return cmd
}

func newAccountsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account-id>",
		Short: "Delete an account that has no posted lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				return rt.svc.Account.DeleteAccount(ctx, args[0], actorFlag)
			})
		},
	}
}
