package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brunovmr/trilha/pkg/match"
)

// MatchRepository stores compatibility results keyed by (owner, job).
type MatchRepository struct {
	pool *pgxpool.Pool
}

func NewMatchRepository(pool *pgxpool.Pool) (*MatchRepository, error) {
	r := &MatchRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MatchRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS match_results (
	owner_id UUID NOT NULL,
	job_id UUID NOT NULL,
	score INT NOT NULL,
	source_model TEXT NOT NULL,
	report JSONB NOT NULL,
	computed_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (owner_id, job_id)
);
`)
	return err
}

// matchReport is the JSONB portion of a result row.
type matchReport struct {
	Recommendation    match.Recommendation `json:"recommendation"`
	MatchReasons      []string             `json:"matchReasons"`
	Gaps              []string             `json:"gaps"`
	MatchedKeywords   []string             `json:"matchedKeywords"`
	ResumeSuggestions []string             `json:"resumeSuggestions"`
}

// Upsert overwrites any previous result for the same pair in full.
func (r *MatchRepository) Upsert(ctx context.Context, res match.Result) error {
	if res.ComputedAt.IsZero() {
		res.ComputedAt = time.Now().UTC()
	}
	report, err := json.Marshal(matchReport{
		Recommendation:    res.Recommendation,
		MatchReasons:      res.MatchReasons,
		Gaps:              res.Gaps,
		MatchedKeywords:   res.MatchedKeywords,
		ResumeSuggestions: res.ResumeSuggestions,
	})
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO match_results (owner_id, job_id, score, source_model, report, computed_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (owner_id, job_id) DO UPDATE SET
	score = EXCLUDED.score,
	source_model = EXCLUDED.source_model,
	report = EXCLUDED.report,
	computed_at = EXCLUDED.computed_at
`, res.OwnerID, res.JobID, res.Score, res.SourceModel, report, res.ComputedAt)
	return err
}

func (r *MatchRepository) Get(ctx context.Context, ownerID, jobID uuid.UUID) (match.Result, error) {
	row := r.pool.QueryRow(ctx, `
SELECT score, source_model, report, computed_at
FROM match_results WHERE owner_id = $1 AND job_id = $2
`, ownerID, jobID)
	var res match.Result
	var reportBytes []byte
	var computed time.Time
	if err := row.Scan(&res.Score, &res.SourceModel, &reportBytes, &computed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return match.Result{}, match.ErrNotFound
		}
		return match.Result{}, err
	}
	var report matchReport
	if err := json.Unmarshal(reportBytes, &report); err != nil {
		return match.Result{}, err
	}
	res.OwnerID = ownerID
	res.JobID = jobID
	res.Recommendation = report.Recommendation
	res.MatchReasons = report.MatchReasons
	res.Gaps = report.Gaps
	res.MatchedKeywords = report.MatchedKeywords
	res.ResumeSuggestions = report.ResumeSuggestions
	res.ComputedAt = computed.UTC()
	return res, nil
}
