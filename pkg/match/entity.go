package match

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Recommendation buckets a score; it is always derived from the score, never
// stored independently of it.
type Recommendation string

const (
	RecommendationStrong Recommendation = "strong"
	RecommendationMedium Recommendation = "medium"
	RecommendationWeak   Recommendation = "weak"
)

// Result is the outcome of matching one owner against one job. Identity is
// the (OwnerID, JobID) pair: recomputation overwrites the previous record.
type Result struct {
	OwnerID           uuid.UUID      `json:"ownerId"`
	JobID             uuid.UUID      `json:"jobId"`
	Score             int            `json:"score"`
	Recommendation    Recommendation `json:"recommendation"`
	MatchReasons      []string       `json:"matchReasons"`
	Gaps              []string       `json:"gaps"`
	MatchedKeywords   []string       `json:"matchedKeywords"`
	ResumeSuggestions []string       `json:"resumeSuggestions"`
	SourceModel       string         `json:"sourceModel"`
	ComputedAt        time.Time      `json:"computedAt"`
}

var (
	// ErrNotFound: no result computed for the pair yet. Callers treat it as
	// "not yet computed", not as a failure.
	ErrNotFound = errors.New("análise de compatibilidade não encontrada")
	// ErrInFlight: a computation for the same pair is still running.
	ErrInFlight = errors.New("análise já em andamento para esta vaga")
	// ErrNotPersisted wraps a result that was computed but could not be
	// saved; the result still travels back to the caller.
	ErrNotPersisted = errors.New("resultado calculado mas não salvo")
)

// Repository is the persistence port for match results, keyed by the
// composite (owner, job) pair. Upsert is a full overwrite.
type Repository interface {
	Upsert(ctx context.Context, r Result) error
	Get(ctx context.Context, ownerID, jobID uuid.UUID) (Result, error)
}

// recommendationFor is the single derivation point for the score thresholds.
func recommendationFor(score int) Recommendation {
	switch {
	case score >= 75:
		return RecommendationStrong
	case score >= 50:
		return RecommendationMedium
	default:
		return RecommendationWeak
	}
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
