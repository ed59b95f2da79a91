package services

import (
	"context"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
	"github.com/aqarfin/estate_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntry retrieves an entry together with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// PostEntry validates and persists a balanced entry, then runs the
	// settlement auto-match pass over its eligible lines.
	PostEntry(ctx context.Context, req dto.PostEntryRequest, creatorID string) (*domain.JournalEntry, error)

	// ReverseEntry posts a new entry with every line's side flipped,
	// linking it to the original.
	ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
