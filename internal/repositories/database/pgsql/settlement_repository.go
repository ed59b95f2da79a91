package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aqarfin/estate_ledger/internal/apperrors"
	"github.com/aqarfin/estate_ledger/internal/core/domain"
	portsrepo "github.com/aqarfin/estate_ledger/internal/core/ports/repositories"
	"github.com/aqarfin/estate_ledger/internal/models"
	"github.com/aqarfin/estate_ledger/internal/utils/mapping"
)

const allocationColumns = `allocation_id, payable_line_id, settling_line_id, amount_matched, created_at, created_by`

type PgxSettlementRepository struct {
	BaseRepository
}

// newPgxSettlementRepository creates a new repository for settlement allocation data.
func newPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

func scanAllocation(row pgx.Row) (*models.SettlementAllocation, error) {
	var m models.SettlementAllocation
	err := row.Scan(
		&m.AllocationID,
		&m.PayableLineID,
		&m.SettlingLineID,
		&m.AmountMatched,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindAllocationByID retrieves a single allocation.
func (r *PgxSettlementRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.SettlementAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM settlement_allocations WHERE allocation_id = $1;`
	m, err := scanAllocation(r.Pool.QueryRow(ctx, query, allocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find allocation by ID "+allocationID, err)
	}
	alloc := mapping.ToDomainAllocation(*m)
	return &alloc, nil
}

// FindAllocationsForLine retrieves every allocation the line participates in.
func (r *PgxSettlementRepository) FindAllocationsForLine(ctx context.Context, lineID string) ([]domain.SettlementAllocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM settlement_allocations
		WHERE payable_line_id = $1 OR settling_line_id = $1
		ORDER BY created_at, allocation_id;
	`
	rows, err := r.Pool.Query(ctx, query, lineID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query allocations for line "+lineID, err)
	}
	defer rows.Close()

	allocs := []domain.SettlementAllocation{}
	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation row for line "+lineID, err)
		}
		allocs = append(allocs, mapping.ToDomainAllocation(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating allocation rows for line "+lineID, err)
	}
	return allocs, nil
}

// SumMatchedForLines returns, per line id, the total amount matched against
// that line in either role. Lines with no allocations map to zero.
func (r *PgxSettlementRepository) SumMatchedForLines(ctx context.Context, lineIDs []string) (map[string]domain.Money, error) {
	sums := make(map[string]domain.Money, len(lineIDs))
	for _, id := range lineIDs {
		sums[id] = 0
	}
	if len(lineIDs) == 0 {
		return sums, nil
	}

	query := `
		SELECT t.line_id, COALESCE(SUM(t.amount_matched), 0)
		FROM (
			SELECT payable_line_id AS line_id, amount_matched
			FROM settlement_allocations WHERE payable_line_id = ANY($1)
			UNION ALL
			SELECT settling_line_id, amount_matched
			FROM settlement_allocations WHERE settling_line_id = ANY($1)
		) t
		GROUP BY t.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, lineIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum allocations", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lineID string
		var sum int64
		if err := rows.Scan(&lineID, &sum); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation sum row", err)
		}
		sums[lineID] = domain.NewMoney(sum)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating allocation sum rows", err)
	}
	return sums, nil
}

// FindOpenCounterpartLines retrieves not-fully-settled lines of POSTED
// entries on the given account and side carrying the given subject ref.
func (r *PgxSettlementRepository) FindOpenCounterpartLines(ctx context.Context, subject domain.SubjectRef, accountID string, side domain.Side) ([]domain.JournalLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.side, l.amount, l.party_kind, l.party_id, l.subject_kind, l.subject_id, l.subject_label, l.property_id, l.unit_id, l.is_settled, l.created_at
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.subject_kind = $1 AND l.subject_id = $2
		  AND l.account_id = $3 AND l.side = $4
		  AND l.is_settled = FALSE
		  AND e.status = 'POSTED'
		ORDER BY l.created_at, l.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, string(subject.Kind), subject.ID, accountID, string(side))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query counterpart lines", err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan counterpart line row", err)
		}
		lines = append(lines, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating counterpart line rows", err)
	}
	return mapping.ToDomainLineSlice(lines), nil
}

// CreateAllocation persists an allocation within a DB transaction. Both lines
// are locked, their remaining capacity re-verified under the lock, and their
// settled flags refreshed before commit.
func (r *PgxSettlementRepository) CreateAllocation(ctx context.Context, alloc domain.SettlementAllocation) error {
	m := mapping.ToModelAllocation(alloc)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Lock in a fixed order to avoid deadlocks between concurrent matches.
	lineIDs := []string{m.PayableLineID, m.SettlingLineID}
	if lineIDs[1] < lineIDs[0] {
		lineIDs[0], lineIDs[1] = lineIDs[1], lineIDs[0]
	}
	amounts := make(map[string]int64, 2)
	lockQuery := `SELECT line_id, amount FROM journal_lines WHERE line_id = ANY($1) ORDER BY line_id FOR UPDATE;`
	rows, err := tx.Query(ctx, lockQuery, lineIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock lines for allocation", err)
	}
	for rows.Next() {
		var lineID string
		var amount int64
		if err := rows.Scan(&lineID, &amount); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan locked line row", err)
		}
		amounts[lineID] = amount
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating locked line rows", err)
	}
	if len(amounts) != 2 {
		return apperrors.ErrNotFound
	}

	matched, err := sumMatchedInTx(ctx, tx, lineIDs)
	if err != nil {
		return err
	}
	for _, lineID := range lineIDs {
		if amounts[lineID]-matched[lineID] < m.AmountMatched {
			return apperrors.ErrExceedsRemaining
		}
	}

	insertQuery := `
		INSERT INTO settlement_allocations (allocation_id, payable_line_id, settling_line_id, amount_matched, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.AllocationID,
		m.PayableLineID,
		m.SettlingLineID,
		m.AmountMatched,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert allocation "+m.AllocationID, err)
	}

	if err := refreshSettledFlags(ctx, tx, lineIDs); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteAllocation removes one allocation and reopens both lines.
func (r *PgxSettlementRepository) DeleteAllocation(ctx context.Context, allocationID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `DELETE FROM settlement_allocations WHERE allocation_id = $1 RETURNING payable_line_id, settling_line_id;`
	var payableLineID, settlingLineID string
	if err := tx.QueryRow(ctx, query, allocationID).Scan(&payableLineID, &settlingLineID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to delete allocation "+allocationID, err)
	}

	if err := refreshSettledFlags(ctx, tx, []string{payableLineID, settlingLineID}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteAllocationsForLines removes every allocation touching any of the
// given lines and refreshes the settled flags of all affected lines.
func (r *PgxSettlementRepository) DeleteAllocationsForLines(ctx context.Context, lineIDs []string) error {
	if len(lineIDs) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		DELETE FROM settlement_allocations
		WHERE payable_line_id = ANY($1) OR settling_line_id = ANY($1)
		RETURNING payable_line_id, settling_line_id;
	`
	rows, err := tx.Query(ctx, query, lineIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete allocations", err)
	}
	affected := map[string]struct{}{}
	for rows.Next() {
		var payableLineID, settlingLineID string
		if err := rows.Scan(&payableLineID, &settlingLineID); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan deleted allocation row", err)
		}
		affected[payableLineID] = struct{}{}
		affected[settlingLineID] = struct{}{}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating deleted allocation rows", err)
	}

	if len(affected) > 0 {
		affectedIDs := make([]string, 0, len(affected))
		for id := range affected {
			affectedIDs = append(affectedIDs, id)
		}
		if err := refreshSettledFlags(ctx, tx, affectedIDs); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// sumMatchedInTx totals matched amounts per line inside a transaction.
func sumMatchedInTx(ctx context.Context, tx pgx.Tx, lineIDs []string) (map[string]int64, error) {
	sums := make(map[string]int64, len(lineIDs))
	query := `
		SELECT t.line_id, COALESCE(SUM(t.amount_matched), 0)
		FROM (
			SELECT payable_line_id AS line_id, amount_matched
			FROM settlement_allocations WHERE payable_line_id = ANY($1)
			UNION ALL
			SELECT settling_line_id, amount_matched
			FROM settlement_allocations WHERE settling_line_id = ANY($1)
		) t
		GROUP BY t.line_id;
	`
	rows, err := tx.Query(ctx, query, lineIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum allocations in transaction", err)
	}
	defer rows.Close()
	for rows.Next() {
		var lineID string
		var sum int64
		if err := rows.Scan(&lineID, &sum); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation sum row", err)
		}
		sums[lineID] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating allocation sum rows", err)
	}
	return sums, nil
}

// refreshSettledFlags recomputes is_settled for the given lines from the
// surviving allocations.
func refreshSettledFlags(ctx context.Context, tx pgx.Tx, lineIDs []string) error {
	query := `
		UPDATE journal_lines l
		SET is_settled = (l.amount = COALESCE((
			SELECT SUM(s.amount_matched)
			FROM settlement_allocations s
			WHERE s.payable_line_id = l.line_id OR s.settling_line_id = l.line_id
		), 0))
		WHERE l.line_id = ANY($1);
	`
	if _, err := tx.Exec(ctx, query, lineIDs); err != nil {
		return apperrors.NewAppError(500, "failed to refresh settled flags", err)
	}
	return nil
}
