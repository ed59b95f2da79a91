package accounting

import (
	"sort"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
)

// SignedAmount applies the balance sign convention to a line amount: positive
// when the line side matches the account's normal side, negative otherwise.
// Ledger folds and settlement both go through here so the two can never
// disagree.
func SignedAmount(side, normalSide domain.Side, amount domain.Money) domain.Money {
	if side == normalSide {
		return amount
	}
	return amount.Neg()
}

// EntryTotals sums the debit and credit sides of a prospective entry.
func EntryTotals(lines []domain.JournalLine) (debit, credit domain.Money) {
	for _, line := range lines {
		if line.Side == domain.Debit {
			debit = debit.Add(line.Amount)
		} else {
			credit = credit.Add(line.Amount)
		}
	}
	return debit, credit
}

// SortChronological orders ledger lines by createdAt ascending with the line
// id as tie-break, the canonical replay order shared by statements and the
// settlement matcher.
func SortChronological(lines []domain.LedgerLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.LineID < b.LineID
	})
}

// SortPayablesOldestFirst orders candidate payable lines for the auto-match
// pass: createdAt ascending, then line id.
func SortPayablesOldestFirst(lines []domain.JournalLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.LineID < b.LineID
	})
}

// SortSettlingLargestRemainingFirst orders candidate settling lines for the
// auto-match pass by remaining amount descending; ties fall back to the
// chronological order so repeated runs allocate identically.
func SortSettlingLargestRemainingFirst(lines []domain.JournalLine, remaining map[string]domain.Money) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		ra, rb := remaining[a.LineID], remaining[b.LineID]
		if ra != rb {
			return ra > rb
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.LineID < b.LineID
	})
}

// FoldRunningBalances computes signed amounts and running balances over lines
// already in chronological order, starting from the opening balance. It
// returns the closing balance alongside the unsigned debit/credit totals.
func FoldRunningBalances(lines []domain.LedgerLine, opening domain.Money) (closing, totalDebit, totalCredit domain.Money) {
	running := opening
	for i := range lines {
		signed := SignedAmount(lines[i].Side, lines[i].NormalSide, lines[i].Amount)
		running = running.Add(signed)
		lines[i].SignedAmount = signed
		lines[i].RunningBalance = running
		if lines[i].Side == domain.Debit {
			totalDebit = totalDebit.Add(lines[i].Amount)
		} else {
			totalCredit = totalCredit.Add(lines[i].Amount)
		}
	}
	return running, totalDebit, totalCredit
}
