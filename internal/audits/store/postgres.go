package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"checkpoint/internal/audits/models"
	id "checkpoint/pkg/domain"
	"checkpoint/pkg/platform/sentinel"
	txcontext "checkpoint/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists audits, results and action plans in PostgreSQL.
// This store is pure I/O; lifecycle rules live in the models and services.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed audits store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}

const auditColumns = `id, number, location, auditors, auditees, state, created_by, created_at, closed_at`

func scanAudit(row rowScanner) (*models.Audit, error) {
	var (
		a        models.Audit
		auditID  uuid.UUID
		closedAt sql.NullTime
	)
	if err := row.Scan(&auditID, &a.Number, &a.Location, pq.Array(&a.Auditors), pq.Array(&a.Auditees),
		&a.State, &a.CreatedBy, &a.CreatedAt, &closedAt); err != nil {
		return nil, err
	}
	a.ID = id.AuditID(auditID)
	if closedAt.Valid {
		t := closedAt.Time
		a.ClosedAt = &t
	}
	return &a, nil
}

func (s *PostgresStore) CreateAudit(ctx context.Context, a *models.Audit) error {
	query := `
		INSERT INTO audits (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(a.ID), a.Number, a.Location, pq.Array(a.Auditors), pq.Array(a.Auditees),
		string(a.State), a.CreatedBy, a.CreatedAt, a.ClosedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("audit number %s: %w", a.Number, sentinel.ErrConflict)
		}
		return unavailable("insert audit", err)
	}
	return nil
}

func (s *PostgresStore) GetAudit(ctx context.Context, auditID id.AuditID) (*models.Audit, error) {
	query := `SELECT ` + auditColumns + ` FROM audits WHERE id = $1`
	a, err := scanAudit(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(auditID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("audit %s: %w", auditID, sentinel.ErrNotFound)
		}
		return nil, unavailable("get audit", err)
	}
	return a, nil
}

func (s *PostgresStore) UpdateAudit(ctx context.Context, a *models.Audit) error {
	query := `
		UPDATE audits SET state = $2, closed_at = $3, auditors = $4, auditees = $5
		WHERE id = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(a.ID), string(a.State), a.ClosedAt, pq.Array(a.Auditors), pq.Array(a.Auditees))
	if err != nil {
		return unavailable("update audit", err)
	}
	return expectOne(res, fmt.Sprintf("audit %s", a.ID))
}

func (s *PostgresStore) CountAudits(ctx context.Context) (int, error) {
	var n int
	if err := s.execer(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM audits`).Scan(&n); err != nil {
		return 0, unavailable("count audits", err)
	}
	return n, nil
}

// ListAuditsWithResults returns every audit, newest first, with its results.
// Two queries: audits, then all results grouped in memory.
func (s *PostgresStore) ListAuditsWithResults(ctx context.Context) ([]models.Audit, error) {
	rows, err := s.execer(ctx).QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audits ORDER BY created_at DESC, number DESC`)
	if err != nil {
		return nil, unavailable("list audits", err)
	}
	defer rows.Close()

	var audits []models.Audit
	index := make(map[id.AuditID]int)
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		index[a.ID] = len(audits)
		audits = append(audits, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate audits", err)
	}

	results, err := s.queryResults(ctx, `SELECT `+resultColumns+` FROM results ORDER BY requirement_id`)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if i, ok := index[r.AuditID]; ok {
			audits[i].Results = append(audits[i].Results, r)
		}
	}
	return audits, nil
}

const resultColumns = `id, audit_id, pillar_id, standard_id, requirement_id, outcome, comment, attachments, recorded_at`

func scanResult(row rowScanner) (*models.Result, error) {
	var (
		r           models.Result
		resultID    uuid.UUID
		auditID     uuid.UUID
		attachments []byte
	)
	if err := row.Scan(&resultID, &auditID, &r.PillarID, &r.StandardID, &r.RequirementID,
		&r.Outcome, &r.Comment, &attachments, &r.RecordedAt); err != nil {
		return nil, err
	}
	r.ID = id.ResultID(resultID)
	r.AuditID = id.AuditID(auditID)
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &r.Attachments); err != nil {
			return nil, fmt.Errorf("decode attachments: %w", err)
		}
	}
	return &r, nil
}

func (s *PostgresStore) queryResults(ctx context.Context, query string, args ...any) ([]models.Result, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("query results", err)
	}
	defer rows.Close()

	var out []models.Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate results", err)
	}
	return out, nil
}

func (s *PostgresStore) LoadResults(ctx context.Context, auditID id.AuditID) ([]models.Result, error) {
	return s.queryResults(ctx,
		`SELECT `+resultColumns+` FROM results WHERE audit_id = $1 ORDER BY requirement_id`,
		uuid.UUID(auditID))
}

func (s *PostgresStore) GetResult(ctx context.Context, resultID id.ResultID) (*models.Result, error) {
	r, err := scanResult(s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+resultColumns+` FROM results WHERE id = $1`, uuid.UUID(resultID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("result %s: %w", resultID, sentinel.ErrNotFound)
		}
		return nil, unavailable("get result", err)
	}
	return r, nil
}

func encodeAttachments(a []models.Attachment) ([]byte, error) {
	if a == nil {
		a = []models.Attachment{}
	}
	return json.Marshal(a)
}

func (s *PostgresStore) InsertResult(ctx context.Context, r *models.Result) error {
	attachments, err := encodeAttachments(r.Attachments)
	if err != nil {
		return fmt.Errorf("encode attachments: %w", err)
	}
	query := `
		INSERT INTO results (` + resultColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(r.ID), uuid.UUID(r.AuditID), string(r.PillarID), string(r.StandardID), string(r.RequirementID),
		string(r.Outcome), r.Comment, attachments, r.RecordedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("result for %s: %w", r.RequirementID, sentinel.ErrConflict)
		}
		return unavailable("insert result", err)
	}
	return nil
}

func (s *PostgresStore) UpdateResult(ctx context.Context, r *models.Result) error {
	attachments, err := encodeAttachments(r.Attachments)
	if err != nil {
		return fmt.Errorf("encode attachments: %w", err)
	}
	query := `
		UPDATE results SET outcome = $2, comment = $3, attachments = $4, recorded_at = $5
		WHERE id = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(r.ID), string(r.Outcome), r.Comment, attachments, r.RecordedAt)
	if err != nil {
		return unavailable("update result", err)
	}
	return expectOne(res, fmt.Sprintf("result %s", r.ID))
}

const planColumns = `id, result_id, responsible, commitment_date, recommended_actions, state, evidence, created_at, updated_at`

func scanPlan(row rowScanner) (*models.ActionPlan, error) {
	var (
		p          models.ActionPlan
		planID     uuid.UUID
		resultID   uuid.UUID
		commitment sql.NullTime
		evidence   []byte
	)
	if err := row.Scan(&planID, &resultID, &p.Responsible, &commitment, &p.RecommendedActions,
		&p.State, &evidence, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ID = id.ActionPlanID(planID)
	p.ResultID = id.ResultID(resultID)
	if commitment.Valid {
		t := commitment.Time
		p.CommitmentDate = &t
	}
	if len(evidence) > 0 {
		if err := json.Unmarshal(evidence, &p.Evidence); err != nil {
			return nil, fmt.Errorf("decode evidence: %w", err)
		}
	}
	return &p, nil
}

func (s *PostgresStore) GetActionPlanByResult(ctx context.Context, resultID id.ResultID) (*models.ActionPlan, error) {
	p, err := scanPlan(s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM action_plans WHERE result_id = $1`, uuid.UUID(resultID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("action plan for result %s: %w", resultID, sentinel.ErrNotFound)
		}
		return nil, unavailable("get action plan", err)
	}
	return p, nil
}

func (s *PostgresStore) InsertActionPlan(ctx context.Context, p *models.ActionPlan) error {
	evidence, err := encodeAttachments(p.Evidence)
	if err != nil {
		return fmt.Errorf("encode evidence: %w", err)
	}
	query := `
		INSERT INTO action_plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(p.ID), uuid.UUID(p.ResultID), p.Responsible, p.CommitmentDate, p.RecommendedActions,
		string(p.State), evidence, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("action plan for result %s: %w", p.ResultID, sentinel.ErrConflict)
		}
		return unavailable("insert action plan", err)
	}
	return nil
}

func (s *PostgresStore) UpdateActionPlan(ctx context.Context, p *models.ActionPlan) error {
	evidence, err := encodeAttachments(p.Evidence)
	if err != nil {
		return fmt.Errorf("encode evidence: %w", err)
	}
	query := `
		UPDATE action_plans
		SET responsible = $2, commitment_date = $3, recommended_actions = $4,
			state = $5, evidence = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(p.ID), p.Responsible, p.CommitmentDate, p.RecommendedActions,
		string(p.State), evidence, p.UpdatedAt)
	if err != nil {
		return unavailable("update action plan", err)
	}
	return expectOne(res, fmt.Sprintf("action plan %s", p.ID))
}

func (s *PostgresStore) ListActionPlans(ctx context.Context) ([]models.ActionPlan, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `SELECT `+planColumns+` FROM action_plans ORDER BY created_at`)
	if err != nil {
		return nil, unavailable("list action plans", err)
	}
	defer rows.Close()

	var out []models.ActionPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan action plan: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate action plans", err)
	}
	return out, nil
}

func expectOne(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, sentinel.ErrNotFound)
	}
	return nil
}
