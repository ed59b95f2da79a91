package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aqarfin/estate_ledger/internal/apperrors"
	"github.com/aqarfin/estate_ledger/internal/core/domain"
	portsrepo "github.com/aqarfin/estate_ledger/internal/core/ports/repositories"
	"github.com/aqarfin/estate_ledger/internal/models"
	"github.com/aqarfin/estate_ledger/internal/utils/mapping"
	"github.com/aqarfin/estate_ledger/internal/utils/pagination"
)

const entryColumns = `entry_id, memo, is_manual, status, reversal_of_entry_id, reversed_by_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, side, amount, party_kind, party_id, subject_kind, subject_id, subject_label, property_id, unit_id, is_settled, created_at`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry and ledger data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.Memo,
		&m.IsManual,
		&m.Status,
		&m.ReversalOfEntryID,
		&m.ReversedByEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanLine(row pgx.Row) (*models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
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
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindEntryByID retrieves an entry by its ID, without lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}
	entry := mapping.ToDomainEntry(*m)
	return &entry, nil
}

// FindReversalOf retrieves the entry that reverses the given entry.
func (r *PgxJournalRepository) FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE reversal_of_entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reversal of entry "+entryID, err)
	}
	entry := mapping.ToDomainEntry(*m)
	return &entry, nil
}

// FindLinesByEntryID retrieves all lines of an entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY created_at, line_id;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}
	return mapping.ToDomainLineSlice(lines), nil
}

// FindLineByID retrieves a single journal line.
func (r *PgxJournalRepository) FindLineByID(ctx context.Context, lineID string) (*domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE line_id = $1;`
	m, err := scanLine(r.Pool.QueryRow(ctx, query, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find line by ID "+lineID, err)
	}
	line := mapping.ToDomainLine(*m)
	return &line, nil
}

// ListEntries retrieves a paginated list of entries using token-based pagination.
// It returns the entries, a token for the next page, and an error.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	filterClause := ``
	if !includeReversals {
		filterClause = ` WHERE status != 'REVERSED' AND reversal_of_entry_id IS NULL`
	}
	// Ordering must be stable: created_at DESC with entry_id DESC as tie-breaker.
	orderByClause := ` ORDER BY created_at DESC, entry_id DESC`

	args := []interface{}{}
	cursorClause := ``
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastEntryID)
		cursorClause = ` (created_at, entry_id) < ($1, $2)`
		if filterClause == "" {
			cursorClause = ` WHERE` + cursorClause
		} else {
			cursorClause = ` AND` + cursorClause
		}
	}

	args = append(args, fetchLimit)
	query := baseQuery + filterClause + cursorClause + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries", err)
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	results := make([]domain.JournalEntry, len(entries))
	for i, m := range entries {
		results[i] = mapping.ToDomainEntry(m)
	}
	return results, nextTokenVal, nil
}

const insertLineQuery = `
	INSERT INTO journal_lines (line_id, entry_id, account_id, side, amount, party_kind, party_id, subject_kind, subject_id, subject_label, property_id, unit_id, is_settled, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

func queueLineInserts(batch *pgx.Batch, lines []domain.JournalLine) {
	for _, line := range lines {
		m := mapping.ToModelLine(line)
		batch.Queue(insertLineQuery,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.Side,
			m.Amount,
			m.PartyKind,
			m.PartyID,
			m.SubjectKind,
			m.SubjectID,
			m.SubjectLabel,
			m.PropertyID,
			m.UnitID,
			m.IsSettled,
			m.CreatedAt,
		)
	}
}

func insertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO journal_entries (entry_id, memo, is_manual, status, reversal_of_entry_id, reversed_by_entry_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.Memo,
		m.IsManual,
		m.Status,
		m.ReversalOfEntryID,
		m.ReversedByEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return err
}

// SaveEntry persists an entry and its lines within a DB transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntry(ctx, tx, entry); err != nil {
		return apperrors.NewAppError(500, "failed to insert entry "+entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// SaveReversalEntry persists the reversing entry and its lines, marks the
// original REVERSED with the back-link, and optionally deletes every
// allocation touching the original's lines, all in one DB transaction.
func (r *PgxJournalRepository) SaveReversalEntry(ctx context.Context, reversing domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, cascadeUnsettle bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Lock the original row so concurrent reversals serialize here.
	var status string
	var reversedBy *string
	lockQuery := `SELECT status, reversed_by_entry_id FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, originalEntryID).Scan(&status, &reversedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock entry "+originalEntryID, err)
	}
	if status == string(domain.Reversed) || reversedBy != nil {
		return apperrors.ErrAlreadyReversed
	}

	if cascadeUnsettle {
		if err := cascadeDeleteAllocations(ctx, tx, originalEntryID); err != nil {
			return err
		}
	}

	if err := insertEntry(ctx, tx, reversing); err != nil {
		return apperrors.NewAppError(500, "failed to insert reversal entry "+reversing.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for entry "+reversing.EntryID, err)
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $2, reversed_by_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		originalEntryID,
		string(domain.Reversed),
		reversing.EntryID,
		reversing.CreatedAt,
		reversing.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry "+originalEntryID+" reversed", err)
	}

	return r.Commit(ctx, tx)
}

// cascadeDeleteAllocations removes every allocation touching the entry's
// lines and refreshes the settled flags of all lines those allocations hit.
func cascadeDeleteAllocations(ctx context.Context, tx pgx.Tx, entryID string) error {
	affectedQuery := `
		SELECT DISTINCT line_id FROM (
			SELECT s.payable_line_id AS line_id
			FROM settlement_allocations s
			JOIN journal_lines l ON l.line_id = s.payable_line_id OR l.line_id = s.settling_line_id
			WHERE l.entry_id = $1
			UNION
			SELECT s.settling_line_id
			FROM settlement_allocations s
			JOIN journal_lines l ON l.line_id = s.payable_line_id OR l.line_id = s.settling_line_id
			WHERE l.entry_id = $1
		) t;
	`
	rows, err := tx.Query(ctx, affectedQuery, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to find allocations for entry "+entryID, err)
	}
	affected := []string{}
	for rows.Next() {
		var lineID string
		if err := rows.Scan(&lineID); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan affected line id", err)
		}
		affected = append(affected, lineID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating affected line ids", err)
	}
	if len(affected) == 0 {
		return nil
	}

	deleteQuery := `
		DELETE FROM settlement_allocations s
		USING journal_lines l
		WHERE (l.line_id = s.payable_line_id OR l.line_id = s.settling_line_id)
		  AND l.entry_id = $1;
	`
	if _, err := tx.Exec(ctx, deleteQuery, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete allocations for entry "+entryID, err)
	}

	return refreshSettledFlags(ctx, tx, affected)
}
