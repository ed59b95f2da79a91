package repositories

import (
	"context"
	"time"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier
	// (without its lines).
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindReversalOf retrieves the reversing entry for an original entry,
	// or ErrNotFound when none exists.
	FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of a single entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLineByID retrieves a single journal line.
	FindLineByID(ctx context.Context, lineID string) (*domain.JournalLine, error)

	// ListEntries retrieves a paginated list of entries using token-based
	// pagination. It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entry data
type JournalWriter interface {
	// SaveEntry persists an entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// SaveReversalEntry persists a reversing entry and its lines, marks the
	// original entry REVERSED with the back-link, and (when cascadeUnsettle
	// is set) deletes every settlement allocation touching the original
	// entry's lines, all within one storage transaction.
	SaveReversalEntry(ctx context.Context, reversing domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, cascadeUnsettle bool) error
}

// LedgerReader defines the balance and statement queries. Reads run outside
// any row lock; the store's snapshot isolation provides a consistent view.
type LedgerReader interface {
	// SumLedgerBefore returns the signed sum of all lines matching the scope
	// created strictly before the given instant.
	SumLedgerBefore(ctx context.Context, scope domain.Scope, before time.Time) (domain.Money, error)

	// FindLedgerLines retrieves lines matching the scope inside the range,
	// annotated with each account's normal side, ordered by createdAt
	// ascending then line id ascending.
	FindLedgerLines(ctx context.Context, scope domain.Scope, r domain.DateRange) ([]domain.LedgerLine, error)

	// TrialBalanceRows returns each account's signed balance as of an instant.
	TrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LedgerReader
}
