package domain

import "time"

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of at
// least two lines. Entries are append-only: corrections are made by posting
// a reversing entry, never by mutating the original.
type JournalEntry struct {
	EntryID           string      `json:"entryID"` // Primary key (UUID)
	Memo              string      `json:"memo"`
	IsManual          bool        `json:"isManual"` // false for system-generated entries
	Status            EntryStatus `json:"status"`
	ReversalOfEntryID *string     `json:"reversalOfEntryID,omitempty"` // set on the reversing entry
	ReversedByEntryID *string     `json:"reversedByEntryID,omitempty"` // set on the original once reversed
	Lines             []JournalLine
	AuditFields
}

// IsReversal reports whether the entry reverses another entry.
func (e JournalEntry) IsReversal() bool {
	return e.ReversalOfEntryID != nil
}

// JournalLine is one debit or credit movement against one GL account within
// an entry. Amount is always positive; the sign of its contribution to a
// balance comes from the side vs the account's normal side.
type JournalLine struct {
	LineID     string      `json:"lineID"`  // Primary key (UUID)
	EntryID    string      `json:"entryID"` // FK -> JournalEntry
	AccountID  string      `json:"accountID"`
	Side       Side        `json:"side"`
	Amount     Money       `json:"amount"`
	Party      *PartyRef   `json:"party,omitempty"`
	Subject    *SubjectRef `json:"subject,omitempty"`
	PropertyID *string     `json:"propertyID,omitempty"` // statement scoping only
	UnitID     *string     `json:"unitID,omitempty"`     // statement scoping only
	IsSettled  bool        `json:"isSettled"`
	CreatedAt  time.Time   `json:"createdAt"`
}
