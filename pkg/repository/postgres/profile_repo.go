package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brunovmr/trilha/pkg/resume"
)

// ProfileRepository stores one résumé profile document per owner.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	r := &ProfileRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS profiles (
	owner_id UUID PRIMARY KEY,
	doc JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

// Upsert writes the whole profile document, last write wins. Merge decisions
// (preserving courses on rebuild) are made by the use case before the write.
func (r *ProfileRepository) Upsert(ctx context.Context, p resume.Profile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO profiles (owner_id, doc, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (owner_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at
`, p.OwnerID, doc, p.UpdatedAt)
	return err
}

func (r *ProfileRepository) Get(ctx context.Context, ownerID uuid.UUID) (resume.Profile, error) {
	row := r.pool.QueryRow(ctx, `
SELECT doc, updated_at FROM profiles WHERE owner_id = $1
`, ownerID)
	var doc []byte
	var updated time.Time
	if err := row.Scan(&doc, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Profile{}, resume.ErrNotFound
		}
		return resume.Profile{}, err
	}
	var p resume.Profile
	if err := json.Unmarshal(doc, &p); err != nil {
		return resume.Profile{}, err
	}
	p.OwnerID = ownerID
	p.UpdatedAt = updated.UTC()
	return p, nil
}
