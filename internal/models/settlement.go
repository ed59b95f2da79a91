package models

import "time"

// SettlementAllocation is the database row shape for settlement_allocations.
type SettlementAllocation struct {
	AllocationID   string    `db:"allocation_id"`
	PayableLineID  string    `db:"payable_line_id"`
	SettlingLineID string    `db:"settling_line_id"`
	AmountMatched  int64     `db:"amount_matched"`
	CreatedAt      time.Time `db:"created_at"`
	CreatedBy      string    `db:"created_by"`
}
