package domain

// Account represents one GL account in the chart of accounts.
// An account becomes effectively immutable once a posted line references it:
// renaming stays allowed, deletion is refused.
type Account struct {
	AccountID  string `json:"accountID"` // Primary key (UUID)
	Code       string `json:"code"`      // Unique, user-facing (e.g. "1010")
	Name       string `json:"name"`
	NormalSide Side   `json:"normalSide"` // Side on which the balance grows
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// SignedAmount returns the contribution of a line on this account to a
// balance: +amount when the line side matches the normal side, -amount
// otherwise.
func (a Account) SignedAmount(side Side, amount Money) Money {
	if side == a.NormalSide {
		return amount
	}
	return amount.Neg()
}
