package resume

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/brunovmr/trilha/pkg/nlp"
)

// Profile is the structured résumé record, one per owner. Built from an
// uploaded résumé, mutated by course completions and rebuilds; never
// hard-deleted.
type Profile struct {
	OwnerID    uuid.UUID         `json:"ownerId"`
	HardSkills []string          `json:"hardSkills"`
	SoftSkills []string          `json:"softSkills"`
	Experience []ExperienceItem  `json:"workExperience"`
	Education  []EducationItem   `json:"education"`
	Courses    []CompletedCourse `json:"completedCourses"`
	Keywords   []string          `json:"keywords"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

type ExperienceItem struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	StartDate    string `json:"startDate,omitempty"` // YYYY-MM or free text
}

type EducationItem struct {
	Program        string `json:"program"`
	Institution    string `json:"institution"`
	CompletionDate string `json:"completionDate,omitempty"`
}

// CompletedCourse is appended when the owner finishes a platform course.
// Identity for dedup is (name, institution), accent- and case-insensitive.
type CompletedCourse struct {
	Name        string    `json:"name"`
	Institution string    `json:"institution"`
	Hours       int       `json:"hours"`
	CompletedAt time.Time `json:"completedAt"`
}

var (
	// ErrNotFound: no profile stored for the owner yet.
	ErrNotFound = errors.New("perfil não encontrado")
	// ErrInsufficientText: extracted document text is too short to mean
	// anything, usually a scanned/image-only PDF.
	ErrInsufficientText = errors.New("não foi possível ler o arquivo: texto insuficiente")
)

// Repository is the persistence port for profiles, keyed by owner.
// Writes are last-write-wins; merge decisions happen in the use case.
type Repository interface {
	Upsert(ctx context.Context, p Profile) error
	Get(ctx context.Context, ownerID uuid.UUID) (Profile, error)
}

// MergeSkills unions skill lists, deduplicating on the normalized form while
// keeping the first-seen display form and order.
func MergeSkills(lists ...[]string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, list := range lists {
		for _, s := range list {
			key := nlp.Normalize(s)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// HasCourse reports whether an equivalent course is already recorded.
func (p Profile) HasCourse(c CompletedCourse) bool {
	name := nlp.Normalize(c.Name)
	inst := nlp.Normalize(c.Institution)
	for _, existing := range p.Courses {
		if nlp.Normalize(existing.Name) == name && nlp.Normalize(existing.Institution) == inst {
			return true
		}
	}
	return false
}
