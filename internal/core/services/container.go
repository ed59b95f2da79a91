package services

import (
	portsrepo "github.com/aqarfin/estate_ledger/internal/core/ports/repositories"
	portssvc "github.com/aqarfin/estate_ledger/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies
type Container struct {
	Account    portssvc.AccountSvcFacade
	Journal    portssvc.JournalSvcFacade
	Ledger     portssvc.LedgerSvcFacade
	Settlement portssvc.SettlementSvcFacade
	PettyCash  portssvc.PettyCashSvcFacade
}

// NewContainer creates a new service container with properly initialized dependencies
func NewContainer(repos *portsrepo.RepositoryProvider) *Container {
	container := &Container{}

	container.Account = NewAccountService(repos.AccountRepo)

	// Settlement must exist before Journal: posting triggers auto-match.
	container.Settlement = NewSettlementService(
		repos.JournalRepo,
		repos.AccountRepo,
		repos.SettlementRepo,
	)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		container.Account,
		container.Settlement,
	)

	container.Ledger = NewLedgerService(repos.JournalRepo)

	container.PettyCash = NewPettyCashService(
		repos.AccountRepo,
		container.Ledger,
		container.Settlement,
	)

	return container
}
