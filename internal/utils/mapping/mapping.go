// Package mapping converts between database row models and domain types.
package mapping

import (
	"github.com/aqarfin/estate_ledger/internal/core/domain"
	"github.com/aqarfin/estate_ledger/internal/models"
)

func ToModelAccount(a domain.Account) models.Account {
	return models.Account{
		AccountID:     a.AccountID,
		Code:          a.Code,
		Name:          a.Name,
		NormalSide:    string(a.NormalSide),
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:  m.AccountID,
		Code:       m.Code,
		Name:       m.Name,
		NormalSide: domain.Side(m.NormalSide),
		IsActive:   m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func ToModelEntry(e domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           e.EntryID,
		Memo:              e.Memo,
		IsManual:          e.IsManual,
		Status:            string(e.Status),
		ReversalOfEntryID: e.ReversalOfEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
		LastUpdatedAt:     e.LastUpdatedAt,
		LastUpdatedBy:     e.LastUpdatedBy,
	}
}

func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		Memo:              m.Memo,
		IsManual:          m.IsManual,
		Status:            domain.EntryStatus(m.Status),
		ReversalOfEntryID: m.ReversalOfEntryID,
		ReversedByEntryID: m.ReversedByEntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func ToModelLine(l domain.JournalLine) models.JournalLine {
	m := models.JournalLine{
		LineID:     l.LineID,
		EntryID:    l.EntryID,
		AccountID:  l.AccountID,
		Side:       string(l.Side),
		Amount:     l.Amount.MinorUnits(),
		PropertyID: l.PropertyID,
		UnitID:     l.UnitID,
		IsSettled:  l.IsSettled,
		CreatedAt:  l.CreatedAt,
	}
	if l.Party != nil {
		kind := string(l.Party.Kind)
		m.PartyKind = &kind
		if l.Party.ID != "" {
			id := l.Party.ID
			m.PartyID = &id
		}
	}
	if l.Subject != nil {
		kind := string(l.Subject.Kind)
		m.SubjectKind = &kind
		if l.Subject.ID != "" {
			id := l.Subject.ID
			m.SubjectID = &id
		}
		if l.Subject.Label != "" {
			label := l.Subject.Label
			m.SubjectLabel = &label
		}
	}
	return m
}

func ToDomainLine(m models.JournalLine) domain.JournalLine {
	l := domain.JournalLine{
		LineID:     m.LineID,
		EntryID:    m.EntryID,
		AccountID:  m.AccountID,
		Side:       domain.Side(m.Side),
		Amount:     domain.NewMoney(m.Amount),
		PropertyID: m.PropertyID,
		UnitID:     m.UnitID,
		IsSettled:  m.IsSettled,
		CreatedAt:  m.CreatedAt,
	}
	if m.PartyKind != nil {
		party := domain.PartyRef{Kind: domain.PartyKind(*m.PartyKind)}
		if m.PartyID != nil {
			party.ID = *m.PartyID
		}
		l.Party = &party
	}
	if m.SubjectKind != nil {
		subject := domain.SubjectRef{Kind: domain.SubjectKind(*m.SubjectKind)}
		if m.SubjectID != nil {
			subject.ID = *m.SubjectID
		}
		if m.SubjectLabel != nil {
			subject.Label = *m.SubjectLabel
		}
		l.Subject = &subject
	}
	return l
}

func ToDomainLineSlice(ms []models.JournalLine) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		lines[i] = ToDomainLine(m)
	}
	return lines
}

func ToModelAllocation(a domain.SettlementAllocation) models.SettlementAllocation {
	return models.SettlementAllocation{
		AllocationID:   a.AllocationID,
		PayableLineID:  a.PayableLineID,
		SettlingLineID: a.SettlingLineID,
		AmountMatched:  a.AmountMatched.MinorUnits(),
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
	}
}

func ToDomainAllocation(m models.SettlementAllocation) domain.SettlementAllocation {
	return domain.SettlementAllocation{
		AllocationID:   m.AllocationID,
		PayableLineID:  m.PayableLineID,
		SettlingLineID: m.SettlingLineID,
		AmountMatched:  domain.NewMoney(m.AmountMatched),
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}
