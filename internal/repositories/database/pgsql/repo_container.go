package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/aqarfin/estate_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	settlementRepo := newPgxSettlementRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:    accountRepo,
		JournalRepo:    journalRepo,
		SettlementRepo: settlementRepo,
	}
}
