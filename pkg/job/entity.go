package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Job carries the only slice of a posting the matching core consumes: its
// requirement descriptions. Postings are managed by the back-office, which is
// why the port below is read-only — the core never mutates jobs.
type Job struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Requirements []string  `json:"requirements"`
}

var ErrNotFound = errors.New("vaga não encontrada")

// Repository is the read-only access port for job postings.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
}
