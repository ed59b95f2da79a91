package models

import "time"

// Account is the database row shape for gl_accounts.
type Account struct {
	AccountID     string    `db:"account_id"`
	Code          string    `db:"code"`
	Name          string    `db:"name"`
	NormalSide    string    `db:"normal_side"` // DEBIT or CREDIT
	IsActive      bool      `db:"is_active"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
