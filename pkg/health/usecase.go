package health

import (
	"context"

	"go.uber.org/multierr"
)

// Checker pings a single dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ReadinessUseCase reports whether the service can take traffic.
type ReadinessUseCase interface {
	Ready(ctx context.Context) error
}

type service struct {
	checkers []Checker
}

func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

// Ready runs every checker and aggregates failures, so a probe response
// names all broken dependencies at once instead of the first one found.
func (s *service) Ready(ctx context.Context) error {
	var errs error
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
