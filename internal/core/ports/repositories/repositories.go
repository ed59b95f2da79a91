package repositories

// RepositoryProvider groups the repositories handed to the service container.
type RepositoryProvider struct {
	AccountRepo    AccountRepositoryFacade
	JournalRepo    JournalRepositoryFacade
	SettlementRepo SettlementRepositoryFacade
}
