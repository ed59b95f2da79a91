package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aqarfin/estate_ledger/internal/dto"
)

func newEntriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Post, reverse and inspect journal entries",
	}

	cmd.AddCommand(newEntriesPostCommand())
	cmd.AddCommand(newEntriesReverseCommand())
	cmd.AddCommand(newEntriesGetCommand())
	cmd.AddCommand(newEntriesListCommand())

	return cmd
}

func newEntriesPostCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a balanced journal entry from a JSON document",
		Long: `Post a balanced journal entry. The document follows the PostEntryRequest
shape: a memo and at least two lines, each with accountID, side (DEBIT or
CREDIT), a decimal amount, and optional party/subject refs. Use "-" to read
from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				var reader io.Reader = os.Stdin
				if file != "-" {
					f, err := os.Open(file)
					if err != nil {
						return fmt.Errorf("opening entry document: %w", err)
					}
					defer f.Close()
					reader = f
				}

				var req dto.PostEntryRequest
				if err := json.NewDecoder(reader).Decode(&req); err != nil {
					return fmt.Errorf("decoding entry document: %w", err)
				}
				req.IsManual = true

				entry, err := rt.svc.Journal.PostEntry(ctx, req, actorFlag)
				if err != nil {
					return err
				}
				return printJSON(dto.ToEntryResponse(entry))
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "-", "path to the entry JSON document, or - for stdin")

	return cmd
}

func newEntriesReverseCommand() *cobra.Command {
	var cascadeUnsettle, allowSystem bool

	cmd := &cobra.Command{
		Use:   "reverse <entry-id>",
		Short: "Reverse a posted entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				entry, err := rt.svc.Journal.ReverseEntry(ctx, args[0], dto.ReverseEntryRequest{
					CascadeUnsettle: cascadeUnsettle,
					AllowSystem:     allowSystem,
				}, actorFlag)
				if err != nil {
					return err
				}
				return printJSON(dto.ToEntryResponse(entry))
			})
		},
	}

	cmd.Flags().BoolVar(&cascadeUnsettle, "cascade-unsettle", false, "delete settlement allocations on the entry's lines first")
	cmd.Flags().BoolVar(&allowSystem, "allow-system", false, "permit reversing a system-generated entry")

	return cmd
}

func newEntriesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <entry-id>",
		Short: "Show an entry with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				entry, err := rt.svc.Journal.GetEntry(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(dto.ToEntryResponse(entry))
			})
		},
	}
}

func newEntriesListCommand() *cobra.Command {
	var limit int
	var nextToken string
	var includeReversals, includeLines bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				params := dto.ListEntriesParams{
					Limit:            limit,
					IncludeReversals: includeReversals,
					IncludeLines:     includeLines,
				}
				if limit <= 0 {
					params.Limit = rt.cfg.LedgerPageSize
				}
				if nextToken != "" {
					params.NextToken = &nextToken
				}
				resp, err := rt.svc.Journal.ListEntries(ctx, params)
				if err != nil {
					return err
				}
				return printJSON(resp)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "page size (defaults to LEDGER_PAGE_SIZE)")
	cmd.Flags().StringVar(&nextToken, "next-token", "", "pagination cursor from a previous page")
	cmd.Flags().BoolVar(&includeReversals, "include-reversals", false, "include reversed and reversing entries")
	cmd.Flags().BoolVar(&includeLines, "include-lines", false, "include each entry's lines")

	return cmd
}
