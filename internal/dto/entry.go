package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
)

// PartyRefInput identifies the counterparty of a line input.
type PartyRefInput struct {
	Kind domain.PartyKind `json:"kind" validate:"required,oneof=OWNER RENTER COMPANY"`
	ID   string           `json:"id,omitempty"`
}

// SubjectRefInput tags a line input with its originating business record.
type SubjectRefInput struct {
	Kind  domain.SubjectKind `json:"kind" validate:"required,oneof=INVOICE PAYMENT MAINTENANCE RENT_AGREEMENT SECURITY_DEPOSIT OTHER"`
	ID    string             `json:"id,omitempty"`
	Label string             `json:"label,omitempty"`
}

// LineInput is one prospective journal line. Amount is a decimal in major
// units; the engine converts it to minor units and rejects excess precision.
type LineInput struct {
	AccountID  string           `json:"accountID" validate:"required"`
	Side       domain.Side      `json:"side" validate:"required,oneof=DEBIT CREDIT"`
	Amount     decimal.Decimal  `json:"amount" validate:"required"`
	Party      *PartyRefInput   `json:"party,omitempty"`
	Subject    *SubjectRefInput `json:"subject,omitempty"`
	PropertyID *string          `json:"propertyID,omitempty"`
	UnitID     *string          `json:"unitID,omitempty"`
}

// PostEntryRequest defines the input for posting a balanced journal entry.
type PostEntryRequest struct {
	Memo     string      `json:"memo" validate:"required"`
	IsManual bool        `json:"isManual"`
	Lines    []LineInput `json:"lines" validate:"required,min=2,dive"`
}

// ReverseEntryRequest carries the reversal options. CascadeUnsettle opts into
// deleting settlement allocations on the original entry's lines; AllowSystem
// permits reversing a system-generated entry (administrative action).
type ReverseEntryRequest struct {
	CascadeUnsettle bool `json:"cascadeUnsettle"`
	AllowSystem     bool `json:"allowSystem"`
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Limit            int     `json:"limit"`
	NextToken        *string `json:"nextToken,omitempty"`
	IncludeReversals bool    `json:"includeReversals"`
	IncludeLines     bool    `json:"includeLines"`
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID     string             `json:"lineID"`
	AccountID  string             `json:"accountID"`
	Side       domain.Side        `json:"side"`
	Amount     string             `json:"amount"` // decimal string, major units
	Party      *domain.PartyRef   `json:"party,omitempty"`
	Subject    *domain.SubjectRef `json:"subject,omitempty"`
	PropertyID *string            `json:"propertyID,omitempty"`
	UnitID     *string            `json:"unitID,omitempty"`
	IsSettled  bool               `json:"isSettled"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID           string         `json:"entryID"`
	Memo              string         `json:"memo"`
	IsManual          bool           `json:"isManual"`
	Status            string         `json:"status"`
	ReversalOfEntryID *string        `json:"reversalOfEntryID,omitempty"`
	ReversedByEntryID *string        `json:"reversedByEntryID,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	CreatedBy         string         `json:"createdBy"`
	Lines             []LineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse is a page of entries plus the cursor for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToLineResponse converts a domain.JournalLine to LineResponse DTO.
func ToLineResponse(l *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:     l.LineID,
		AccountID:  l.AccountID,
		Side:       l.Side,
		Amount:     l.Amount.String(),
		Party:      l.Party,
		Subject:    l.Subject,
		PropertyID: l.PropertyID,
		UnitID:     l.UnitID,
		IsSettled:  l.IsSettled,
		CreatedAt:  l.CreatedAt,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:           e.EntryID,
		Memo:              e.Memo,
		IsManual:          e.IsManual,
		Status:            string(e.Status),
		ReversalOfEntryID: e.ReversalOfEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToLineResponse(&e.Lines[i])
		}
	}
	return resp
}
