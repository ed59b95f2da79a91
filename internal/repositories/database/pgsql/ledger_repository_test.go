package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
)

func TestBuildScopeClause_ByAccount(t *testing.T) {
	clause, args := buildScopeClause(domain.ByAccount("acct-1"), []interface{}{"base"})

	assert.Equal(t, ` AND l.account_id = $2`, clause)
	assert.Equal(t, []interface{}{"base", "acct-1"}, args)
}

func TestBuildScopeClause_ByOwner(t *testing.T) {
	clause, args := buildScopeClause(domain.ByParty(domain.OwnerRef("owner-1")), nil)

	assert.Equal(t, ` AND l.party_kind = $1 AND l.party_id = $2`, clause)
	assert.Equal(t, []interface{}{"OWNER", "owner-1"}, args)
}

// Company lines carry no party id, so the scope must test for NULL rather
// than bind an empty string that can never match.
func TestBuildScopeClause_ByCompanyMatchesNullPartyID(t *testing.T) {
	clause, args := buildScopeClause(domain.ByParty(domain.CompanyRef()), nil)

	assert.Equal(t, ` AND l.party_kind = $1 AND l.party_id IS NULL`, clause)
	assert.Equal(t, []interface{}{"COMPANY"}, args)
}

func TestBuildScopeClause_PartyNarrowedByPropertyAndUnit(t *testing.T) {
	propertyID := "prop-1"
	unitID := "unit-7"
	scope := domain.ByPartyAndSubject(domain.RenterRef("renter-1"), &propertyID, &unitID)

	clause, args := buildScopeClause(scope, nil)

	assert.Equal(t, ` AND l.party_kind = $1 AND l.party_id = $2 AND l.property_id = $3 AND l.unit_id = $4`, clause)
	assert.Equal(t, []interface{}{"RENTER", "renter-1", "prop-1", "unit-7"}, args)
}
