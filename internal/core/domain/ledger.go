package domain

import "time"

// Scope selects which journal lines a ledger query covers. Exactly one of
// the three shapes is used: account, party, or party narrowed by property
// and/or unit.
type Scope struct {
	AccountID  *string
	Party      *PartyRef
	PropertyID *string
	UnitID     *string
}

// ByAccount scopes a ledger query to a single GL account.
func ByAccount(accountID string) Scope {
	return Scope{AccountID: &accountID}
}

// ByParty scopes a ledger query to every line concerning a party.
func ByParty(party PartyRef) Scope {
	return Scope{Party: &party}
}

// ByPartyAndSubject scopes a ledger query to a party, optionally narrowed to
// one property and/or unit. Nil narrows nothing.
func ByPartyAndSubject(party PartyRef, propertyID, unitID *string) Scope {
	return Scope{Party: &party, PropertyID: propertyID, UnitID: unitID}
}

// DateRange is an inclusive [Start, End] range of UTC instants.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// LedgerLine is a journal line annotated for statement rendering: the normal
// side of its account, its signed contribution, and the running balance up
// to and including it.
type LedgerLine struct {
	JournalLine
	NormalSide     Side  `json:"normalSide"`
	SignedAmount   Money `json:"signedAmount"`
	RunningBalance Money `json:"runningBalance"`
}

// LedgerResult is the outcome of a ledger query: the opening balance before
// the range, the ordered lines with running balances, the closing balance,
// and unsigned debit/credit totals within the range.
type LedgerResult struct {
	Scope          Scope        `json:"-"`
	Range          DateRange    `json:"-"`
	OpeningBalance Money        `json:"openingBalance"`
	ClosingBalance Money        `json:"closingBalance"`
	TotalDebit     Money        `json:"totalDebit"`
	TotalCredit    Money        `json:"totalCredit"`
	Lines          []LedgerLine `json:"lines"`
}

// TrialBalanceRow is one account's signed balance as of an instant, split
// into the conventional debit/credit presentation columns.
type TrialBalanceRow struct {
	AccountID  string `json:"accountID"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	NormalSide Side   `json:"normalSide"`
	Balance    Money  `json:"balance"` // signed per normal side
	Debit      Money  `json:"debit"`   // Balance when it presents on the debit column
	Credit     Money  `json:"credit"`
}
