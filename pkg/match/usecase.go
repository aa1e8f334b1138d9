package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brunovmr/trilha/pkg/job"
	"github.com/brunovmr/trilha/pkg/llm"
	"github.com/brunovmr/trilha/pkg/resume"
)

// UseCase computes and reads compatibility results for (owner, job) pairs.
type UseCase interface {
	Compute(ctx context.Context, ownerID, jobID uuid.UUID) (Result, error)
	Get(ctx context.Context, ownerID, jobID uuid.UUID) (Result, error)
}

type service struct {
	repo      Repository
	jobs      job.Repository
	profiles  resume.Repository
	provider  *llm.Provider
	modelName string
	log       *zap.Logger

	saveAttempts int
	retryDelay   time.Duration

	mu       sync.Mutex
	inflight map[pairKey]struct{}
}

type pairKey struct {
	owner uuid.UUID
	job   uuid.UUID
}

func NewService(repo Repository, jobs job.Repository, profiles resume.Repository,
	provider *llm.Provider, modelName string, log *zap.Logger) UseCase {
	return &service{
		repo:         repo,
		jobs:         jobs,
		profiles:     profiles,
		provider:     provider,
		modelName:    modelName,
		log:          log,
		saveAttempts: 3,
		retryDelay:   200 * time.Millisecond,
		inflight:     map[pairKey]struct{}{},
	}
}

// Compute runs the full pipeline: model inference when available, validated
// output, deterministic fallback otherwise, then persistence. The caller
// always gets a result unless the job does not exist; a failed save after a
// successful computation comes back as the result plus ErrNotPersisted.
//
// Concurrent recomputations of the same pair are rejected with ErrInFlight
// instead of racing on the same persistence key.
func (s *service) Compute(ctx context.Context, ownerID, jobID uuid.UUID) (Result, error) {
	key := pairKey{owner: ownerID, job: jobID}
	s.mu.Lock()
	if _, busy := s.inflight[key]; busy {
		s.mu.Unlock()
		return Result{}, ErrInFlight
	}
	s.inflight[key] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inflight, key)
		s.mu.Unlock()
	}()

	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return Result{}, err
	}

	var profile *resume.Profile
	if p, perr := s.profiles.Get(ctx, ownerID); perr == nil {
		profile = &p
	} else if !errors.Is(perr, resume.ErrNotFound) {
		return Result{}, perr
	}

	result := s.score(ctx, ownerID, j, profile)

	if serr := s.saveWithRetry(ctx, result); serr != nil {
		s.log.Error("resultado calculado mas persistência falhou",
			zap.String("ownerId", ownerID.String()),
			zap.String("jobId", jobID.String()),
			zap.Error(serr))
		return result, fmt.Errorf("%w: %v", ErrNotPersisted, serr)
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, ownerID, jobID uuid.UUID) (Result, error) {
	return s.repo.Get(ctx, ownerID, jobID)
}

// score picks the path. Any model-side failure degrades silently to the
// deterministic fallback; the unsupported runtime is terminal and is not
// retried thanks to the sticky provider.
func (s *service) score(ctx context.Context, ownerID uuid.UUID, j job.Job, profile *resume.Profile) Result {
	if profile == nil {
		// unknown candidate: the fallback owns this case entirely
		return ComputeFallback(ownerID, j, nil)
	}

	model, aerr := s.provider.Acquire()
	if aerr != nil {
		if errors.Is(aerr, llm.ErrUnsupportedRuntime) {
			s.log.Debug("runtime de inferência indisponível, usando heurística")
		} else {
			s.log.Warn("falha ao inicializar modelo", zap.Error(aerr))
		}
		return ComputeFallback(ownerID, j, profile)
	}

	result, merr := s.askModel(ctx, model, ownerID, j, *profile)
	if merr != nil {
		s.log.Warn("caminho do modelo falhou, usando heurística",
			zap.String("jobId", j.ID.String()), zap.Error(merr))
		return ComputeFallback(ownerID, j, profile)
	}
	return result
}

// modelAssessment mirrors the JSON schema requested from the model.
type modelAssessment struct {
	Score             float64  `json:"score"`
	MatchReasons      []string `json:"matchReasons"`
	Gaps              []string `json:"gaps"`
	MatchedKeywords   []string `json:"matchedKeywords"`
	ResumeSuggestions []string `json:"resumeSuggestions"`
}

const matchSystemPrompt = "Você é um analista de recrutamento. Responda ESTRITAMENTE com um único objeto JSON, " +
	"sem markdown, sem código e sem explicações. Listas vazias devem ser [], nunca null. Não invente fatos."

func (s *service) askModel(ctx context.Context, model llm.ChatModel, ownerID uuid.UUID, j job.Job, profile resume.Profile) (Result, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return Result{}, err
	}
	user := fmt.Sprintf(
		"Vaga: %s\nRequisitos:\n- %s\n\nPerfil do candidato (JSON):\n%s\n\n"+
			"Avalie a compatibilidade e retorne um único objeto JSON no formato:\n"+
			`{"score": número de 0 a 100, "matchReasons": string[], "gaps": string[], `+
			`"matchedKeywords": string[], "resumeSuggestions": string[]}`+"\n",
		j.Title,
		strings.Join(j.Requirements, "\n- "),
		profileJSON,
	)

	raw, err := model.Ask(ctx, matchSystemPrompt, user)
	if err != nil {
		return Result{}, err
	}
	var a modelAssessment
	if err := llm.DecodeJSON(raw, &a); err != nil {
		return Result{}, err
	}
	if llm.IsPlaceholder(a.MatchReasons...) || llm.IsPlaceholder(a.Gaps...) ||
		llm.IsPlaceholder(a.MatchedKeywords...) || llm.IsPlaceholder(a.ResumeSuggestions...) {
		return Result{}, llm.ErrPlaceholderOutput
	}
	return s.fromModelAssessment(ownerID, j.ID, a), nil
}

// fromModelAssessment is the single mapping point from the model-produced
// variant into the common Result shape. The score is clamped here so the
// [0,100] invariant holds no matter what the model said, and the
// recommendation is rederived from the clamped score.
func (s *service) fromModelAssessment(ownerID, jobID uuid.UUID, a modelAssessment) Result {
	score := clamp(int(math.Round(a.Score)), 0, 100)
	r := Result{
		OwnerID:           ownerID,
		JobID:             jobID,
		Score:             score,
		Recommendation:    recommendationFor(score),
		MatchReasons:      a.MatchReasons,
		Gaps:              a.Gaps,
		MatchedKeywords:   a.MatchedKeywords,
		ResumeSuggestions: a.ResumeSuggestions,
		SourceModel:       s.modelName,
		ComputedAt:        time.Now().UTC(),
	}
	if r.MatchReasons == nil {
		r.MatchReasons = []string{}
	}
	if r.Gaps == nil {
		r.Gaps = []string{}
	}
	if r.MatchedKeywords == nil {
		r.MatchedKeywords = []string{}
	}
	if r.ResumeSuggestions == nil {
		r.ResumeSuggestions = []string{}
	}
	return r
}

// saveWithRetry: the write is cheap and idempotent (full overwrite), so a
// short bounded retry beats silently dropping a computed result.
func (s *service) saveWithRetry(ctx context.Context, r Result) error {
	var err error
	for attempt := 1; attempt <= s.saveAttempts; attempt++ {
		if err = s.repo.Upsert(ctx, r); err == nil {
			return nil
		}
		if attempt == s.saveAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * s.retryDelay):
		}
	}
	return err
}
