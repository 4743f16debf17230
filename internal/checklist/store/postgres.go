package store

import (
	"context"
	"database/sql"
	"fmt"

	"checkpoint/internal/checklist/models"
	id "checkpoint/pkg/domain"
	"checkpoint/pkg/platform/sentinel"
	txcontext "checkpoint/pkg/platform/tx"
)

// PostgresStore reads the checklist from the pillars, standards and
// requirements tables. Position columns carry source order.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed checklist store.
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

// LoadTree reads the whole checklist in one query.
func (s *PostgresStore) LoadTree(ctx context.Context) (*models.Tree, error) {
	query := `
		SELECT p.id, p.name, s.id, s.description, r.id, r.operational, r.guidance
		FROM pillars p
		LEFT JOIN standards s ON s.pillar_id = p.id
		LEFT JOIN requirements r ON r.standard_id = s.id
		ORDER BY p.position, p.id, s.position, s.id, r.position, r.id
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load checklist: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer rows.Close()

	var pillars []models.Pillar
	for rows.Next() {
		var (
			pillarID, pillarName         string
			standardID, description      sql.NullString
			reqID, operational, guidance sql.NullString
		)
		if err := rows.Scan(&pillarID, &pillarName, &standardID, &description, &reqID, &operational, &guidance); err != nil {
			return nil, fmt.Errorf("scan checklist row: %w", err)
		}
		if n := len(pillars); n == 0 || pillars[n-1].ID != id.PillarID(pillarID) {
			pillars = append(pillars, models.Pillar{ID: id.PillarID(pillarID), Name: pillarName})
		}
		p := &pillars[len(pillars)-1]
		if !standardID.Valid {
			continue
		}
		if n := len(p.Standards); n == 0 || p.Standards[n-1].ID != id.StandardID(standardID.String) {
			p.Standards = append(p.Standards, models.Standard{ID: id.StandardID(standardID.String), Description: description.String})
		}
		st := &p.Standards[len(p.Standards)-1]
		if !reqID.Valid {
			continue
		}
		st.Requirements = append(st.Requirements, models.Requirement{
			ID:          id.RequirementID(reqID.String),
			Operational: operational.String,
			Guidance:    guidance.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checklist: %w: %w", sentinel.ErrUnavailable, err)
	}
	return models.NewTree(pillars), nil
}

// ReplaceTree swaps the stored checklist for pillars. Run it inside a
// transaction (tx.Runner) so readers never observe a partial tree.
func (s *PostgresStore) ReplaceTree(ctx context.Context, pillars []models.Pillar) error {
	ex := s.execer(ctx)
	if _, err := ex.ExecContext(ctx, `DELETE FROM pillars`); err != nil {
		return fmt.Errorf("clear checklist: %w", err)
	}
	for pi, p := range pillars {
		if _, err := ex.ExecContext(ctx,
			`INSERT INTO pillars (id, name, position) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			string(p.ID), p.Name, pi); err != nil {
			return fmt.Errorf("insert pillar %s: %w", p.ID, err)
		}
		for si, st := range p.Standards {
			if _, err := ex.ExecContext(ctx,
				`INSERT INTO standards (id, pillar_id, description, position) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
				string(st.ID), string(p.ID), st.Description, si); err != nil {
				return fmt.Errorf("insert standard %s: %w", st.ID, err)
			}
			for ri, r := range st.Requirements {
				if _, err := ex.ExecContext(ctx,
					`INSERT INTO requirements (id, standard_id, operational, guidance, position)
					 VALUES ($1, $2, $3, $4, $5) ON CONFLICT (standard_id, id) DO NOTHING`,
					string(r.ID), string(st.ID), r.Operational, r.Guidance, ri); err != nil {
					return fmt.Errorf("insert requirement %s: %w", r.ID, err)
				}
			}
		}
	}
	return nil
}

// CountRequirements returns the number of stored requirement rows.
func (s *PostgresStore) CountRequirements(ctx context.Context) (int, error) {
	var n int
	if err := s.execer(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM requirements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count requirements: %w: %w", sentinel.ErrUnavailable, err)
	}
	return n, nil
}
