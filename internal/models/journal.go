package models

import "time"

// JournalEntry is the database row shape for journal_entries.
type JournalEntry struct {
	EntryID           string    `db:"entry_id"`
	Memo              string    `db:"memo"`
	IsManual          bool      `db:"is_manual"`
	Status            string    `db:"status"` // POSTED or REVERSED
	ReversalOfEntryID *string   `db:"reversal_of_entry_id"`
	ReversedByEntryID *string   `db:"reversed_by_entry_id"`
	CreatedAt         time.Time `db:"created_at"`
	CreatedBy         string    `db:"created_by"`
	LastUpdatedAt     time.Time `db:"last_updated_at"`
	LastUpdatedBy     string    `db:"last_updated_by"`
}

// JournalLine is the database row shape for journal_lines. Amount is integer
// minor units; the party/subject unions flatten into kind+id column pairs.
type JournalLine struct {
	LineID       string    `db:"line_id"`
	EntryID      string    `db:"entry_id"`
	AccountID    string    `db:"account_id"`
	Side         string    `db:"side"`
	Amount       int64     `db:"amount"`
	PartyKind    *string   `db:"party_kind"`
	PartyID      *string   `db:"party_id"`
	SubjectKind  *string   `db:"subject_kind"`
	SubjectID    *string   `db:"subject_id"`
	SubjectLabel *string   `db:"subject_label"`
	PropertyID   *string   `db:"property_id"`
	UnitID       *string   `db:"unit_id"`
	IsSettled    bool      `db:"is_settled"`
	CreatedAt    time.Time `db:"created_at"`
}
