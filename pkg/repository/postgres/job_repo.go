package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brunovmr/trilha/pkg/job"
)

// JobRepository reads job postings. Writes happen in the back-office service,
// so only the read path exists here; ensureSchema still runs for local setups.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	requirements JSONB NOT NULL DEFAULT '[]'
);
`)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, requirements FROM jobs WHERE id = $1
`, id)
	var j job.Job
	var reqBytes []byte
	if err := row.Scan(&j.ID, &j.Title, &reqBytes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	if err := json.Unmarshal(reqBytes, &j.Requirements); err != nil {
		return job.Job{}, err
	}
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	return j, nil
}
