package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/aqarfin/estate_ledger/internal/apperrors"
	"github.com/aqarfin/estate_ledger/internal/core/domain"
	"github.com/aqarfin/estate_ledger/internal/models"
	"github.com/aqarfin/estate_ledger/internal/utils/mapping"
)

// buildScopeClause renders a Scope into SQL conditions over journal_lines l.
// Placeholders continue from the given args slice.
func buildScopeClause(scope domain.Scope, args []interface{}) (string, []interface{}) {
	clause := ``
	if scope.AccountID != nil {
		args = append(args, *scope.AccountID)
		clause += ` AND l.account_id = $` + strconv.Itoa(len(args))
	}
	if scope.Party != nil {
		args = append(args, string(scope.Party.Kind))
		clause += ` AND l.party_kind = $` + strconv.Itoa(len(args))
		// Company lines persist with a NULL party id.
		if scope.Party.ID == "" {
			clause += ` AND l.party_id IS NULL`
		} else {
			args = append(args, scope.Party.ID)
			clause += ` AND l.party_id = $` + strconv.Itoa(len(args))
		}
	}
	if scope.PropertyID != nil {
		args = append(args, *scope.PropertyID)
		clause += ` AND l.property_id = $` + strconv.Itoa(len(args))
	}
	if scope.UnitID != nil {
		args = append(args, *scope.UnitID)
		clause += ` AND l.unit_id = $` + strconv.Itoa(len(args))
	}
	return clause, args
}

// SumLedgerBefore returns the signed sum of all matching lines created
// strictly before the given instant.
func (r *PgxJournalRepository) SumLedgerBefore(ctx context.Context, scope domain.Scope, before time.Time) (domain.Money, error) {
	args := []interface{}{before}
	scopeClause, args := buildScopeClause(scope, args)
	query := `
		SELECT COALESCE(SUM(CASE WHEN l.side = a.normal_side THEN l.amount ELSE -l.amount END), 0)
		FROM journal_lines l
		JOIN gl_accounts a ON a.account_id = l.account_id
		WHERE l.created_at < $1` + scopeClause + `;`

	var sum int64
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return 0, apperrors.NewAppError(500, "failed to sum ledger before "+before.Format(time.RFC3339), err)
	}
	return domain.NewMoney(sum), nil
}

// FindLedgerLines retrieves matching lines inside the range, annotated with
// each account's normal side, in chronological order.
func (r *PgxJournalRepository) FindLedgerLines(ctx context.Context, scope domain.Scope, dr domain.DateRange) ([]domain.LedgerLine, error) {
	args := []interface{}{dr.Start, dr.End}
	scopeClause, args := buildScopeClause(scope, args)
	query := `
		SELECT l.` + lineColumnsAliased + `, a.normal_side
		FROM journal_lines l
		JOIN gl_accounts a ON a.account_id = l.account_id
		WHERE l.created_at >= $1 AND l.created_at <= $2` + scopeClause + `
		ORDER BY l.created_at, l.line_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger lines", err)
	}
	defer rows.Close()

	lines := []domain.LedgerLine{}
	for rows.Next() {
		var m models.JournalLine
		var normalSide string
		err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.Side,
			&m.Amount,
			&m.PartyKind,
			&m.PartyID,
			&m.SubjectKind,
			&m.SubjectID,
			&m.SubjectLabel,
			&m.PropertyID,
			&m.UnitID,
			&m.IsSettled,
			&m.CreatedAt,
			&normalSide,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger line row", err)
		}
		lines = append(lines, domain.LedgerLine{
			JournalLine: mapping.ToDomainLine(m),
			NormalSide:  domain.Side(normalSide),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger line rows", err)
	}
	return lines, nil
}

const lineColumnsAliased = `line_id, l.entry_id, l.account_id, l.side, l.amount, l.party_kind, l.party_id, l.subject_kind, l.subject_id, l.subject_label, l.property_id, l.unit_id, l.is_settled, l.created_at`

// TrialBalanceRows returns every account's signed balance as of an instant,
// ordered by account code.
func (r *PgxJournalRepository) TrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.normal_side,
		       COALESCE(SUM(CASE WHEN l.side = a.normal_side THEN l.amount ELSE -l.amount END), 0)
		FROM gl_accounts a
		LEFT JOIN journal_lines l ON l.account_id = a.account_id AND l.created_at <= $1
		GROUP BY a.account_id, a.code, a.name, a.normal_side
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var normalSide string
		var balance int64
		if err := rows.Scan(&row.AccountID, &row.Code, &row.Name, &normalSide, &balance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		row.NormalSide = domain.Side(normalSide)
		row.Balance = domain.NewMoney(balance)

		// A positive balance presents on the account's normal column; a
		// negative one flips to the opposite column as a positive figure.
		presentSide := row.NormalSide
		presented := row.Balance
		if presented.IsNegative() {
			presentSide = presentSide.Opposite()
			presented = presented.Neg()
		}
		if presentSide == domain.Debit {
			row.Debit = presented
		} else {
			row.Credit = presented
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}
