package match

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brunovmr/trilha/pkg/job"
	"github.com/brunovmr/trilha/pkg/llm"
	"github.com/brunovmr/trilha/pkg/resume"
)

type memMatchRepo struct {
	mu       sync.Mutex
	results  map[pairKey]Result
	failures int
}

func newMemMatchRepo() *memMatchRepo { return &memMatchRepo{results: map[pairKey]Result{}} }

func (m *memMatchRepo) Upsert(_ context.Context, r Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("conexão recusada")
	}
	m.results[pairKey{owner: r.OwnerID, job: r.JobID}] = r
	return nil
}

func (m *memMatchRepo) Get(_ context.Context, ownerID, jobID uuid.UUID) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.results[pairKey{owner: ownerID, job: jobID}]
	if !ok {
		return Result{}, ErrNotFound
	}
	return r, nil
}

type memJobRepo struct{ jobs map[uuid.UUID]job.Job }

func (m *memJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

type memProfileRepo struct{ profiles map[uuid.UUID]resume.Profile }

func (m *memProfileRepo) Upsert(_ context.Context, p resume.Profile) error {
	m.profiles[p.OwnerID] = p
	return nil
}

func (m *memProfileRepo) Get(_ context.Context, ownerID uuid.UUID) (resume.Profile, error) {
	p, ok := m.profiles[ownerID]
	if !ok {
		return resume.Profile{}, resume.ErrNotFound
	}
	return p, nil
}

type stubModel struct {
	reply   string
	err     error
	started chan struct{}
	release chan struct{}
}

func (s *stubModel) Ask(_ context.Context, _, _ string) (string, error) {
	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type fixture struct {
	svc     UseCase
	repo    *memMatchRepo
	ownerID uuid.UUID
	jobID   uuid.UUID
}

func newFixture(t *testing.T, model llm.ChatModel, buildErr error) *fixture {
	t.Helper()
	jobID := uuid.New()
	ownerID := uuid.New()
	jobs := &memJobRepo{jobs: map[uuid.UUID]job.Job{
		jobID: {ID: jobID, Title: "Pessoa Desenvolvedora", Requirements: []string{"React", "TypeScript"}},
	}}
	profiles := &memProfileRepo{profiles: map[uuid.UUID]resume.Profile{
		ownerID: {OwnerID: ownerID, HardSkills: []string{"React"}},
	}}
	repo := newMemMatchRepo()
	provider := llm.NewProvider(func() (llm.ChatModel, error) { return model, buildErr })
	return &fixture{
		svc:     NewService(repo, jobs, profiles, provider, "llama-3.2-3b", zap.NewNop()),
		repo:    repo,
		ownerID: ownerID,
		jobID:   jobID,
	}
}

func TestComputeModelPath(t *testing.T) {
	model := &stubModel{reply: `{"score": 82, "matchReasons": ["domina React"], "gaps": ["sem TypeScript"], "matchedKeywords": ["react"], "resumeSuggestions": ["estude TypeScript"]}`}
	f := newFixture(t, model, nil)

	r, err := f.svc.Compute(context.Background(), f.ownerID, f.jobID)
	require.NoError(t, err)
	assert.Equal(t, 82, r.Score)
	assert.Equal(t, RecommendationStrong, r.Recommendation)
	assert.Equal(t, "llama-3.2-3b", r.SourceModel)
	assert.Equal(t, []string{"domina React"}, r.MatchReasons)
}

func TestComputeClampsModelScore(t *testing.T) {
	model := &stubModel{reply: `{"score": 140, "matchReasons": [], "gaps": [], "matchedKeywords": [], "resumeSuggestions": []}`}
	f := newFixture(t, model, nil)

	r, err := f.svc.Compute(context.Background(), f.ownerID, f.jobID)
	require.NoError(t, err)
	assert.Equal(t, 100, r.Score)
	assert.Equal(t, RecommendationStrong, r.Recommendation)
}

func TestComputeFallsBackOnUnparsableOutput(t *testing.T) {
	model := &stubModel{reply: "não consigo avaliar este candidato"}
	f := newFixture(t, model, nil)

	r, err := f.svc.Compute(context.Background(), f.ownerID, f.jobID)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, r.SourceModel)
	// 1 of 2 requirements matched: 30 + round(0.5*60) = 60
	assert.Equal(t, 60, r.Score)
}

func TestComputeFallsBackOnPlaceholderOutput(t *testing.T) {
	model := &stubModel{reply: `{"score": 90, "matchReasons": ["exemplo"], "gaps": [], "matchedKeywords": [], "resumeSuggestions": []}`}
	f := newFixture(t, model, nil)

	r, err := f.svc.Compute(context.Background(), f.ownerID, f.jobID)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, r.SourceModel)
}

func TestComputeFallsBackOnUnsupportedRuntime(t *testing.T) {
	f := newFixture(t, nil, llm.ErrUnsupportedRuntime)

	r, err := f.svc.Compute(context.Background(), f.ownerID, f.jobID)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, r.SourceModel)
}

func TestComputeWithoutProfileSkipsModel(t *testing.T) {
	model := &stubModel{reply: `{"score": 90}`}
	f := newFixture(t, model, nil)
	stranger := uuid.New() // owner without a stored profile

	r, err := f.svc.Compute(context.Background(), stranger, f.jobID)
	require.NoError(t, err)
	assert.Equal(t, 25, r.Score)
	assert.Equal(t, RecommendationWeak, r.Recommendation)
	assert.Equal(t, SourceFallback, r.SourceModel)
}

func TestComputeUnknownJob(t *testing.T) {
	f := newFixture(t, &stubModel{reply: "{}"}, nil)
	_, err := f.svc.Compute(context.Background(), f.ownerID, uuid.New())
	require.ErrorIs(t, err, job.ErrNotFound)
}

func TestComputeRoundTrip(t *testing.T) {
	model := &stubModel{reply: `{"score": 61, "matchReasons": ["boa base"], "gaps": [], "matchedKeywords": ["react"], "resumeSuggestions": ["continue assim"]}`}
	f := newFixture(t, model, nil)

	computed, err := f.svc.Compute(context.Background(), f.ownerID, f.jobID)
	require.NoError(t, err)

	read, err := f.svc.Get(context.Background(), f.ownerID, f.jobID)
	require.NoError(t, err)
	assert.Equal(t, computed, read)
}

func TestComputeRecomputationOverwrites(t *testing.T) {
	model := &stubModel{reply: `{"score": 40, "matchReasons": [], "gaps": [], "matchedKeywords": [], "resumeSuggestions": []}`}
	f := newFixture(t, model, nil)

	first, err := f.svc.Compute(context.Background(), f.ownerID, f.jobID)
	require.NoError(t, err)
	assert.Equal(t, 40, first.Score)

	model.reply = `{"score": 70, "matchReasons": [], "gaps": [], "matchedKeywords": [], "resumeSuggestions": []}`
	second, err := f.svc.Compute(context.Background(), f.ownerID, f.jobID)
	require.NoError(t, err)
	assert.Equal(t, 70, second.Score)

	read, err := f.svc.Get(context.Background(), f.ownerID, f.jobID)
	require.NoError(t, err)
	assert.Equal(t, 70, read.Score)
}

func TestComputeGetBeforeComputeIsNotFound(t *testing.T) {
	f := newFixture(t, &stubModel{reply: "{}"}, nil)
	_, err := f.svc.Get(context.Background(), f.ownerID, f.jobID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestComputeRetriesSaveThenSucceeds(t *testing.T) {
	model := &stubModel{reply: `{"score": 55, "matchReasons": [], "gaps": [], "matchedKeywords": [], "resumeSuggestions": []}`}
	f := newFixture(t, model, nil)
	f.repo.failures = 2 // first two writes fail, third lands

	r, err := f.svc.Compute(context.Background(), f.ownerID, f.jobID)
	require.NoError(t, err)

	read, err := f.svc.Get(context.Background(), f.ownerID, f.jobID)
	require.NoError(t, err)
	assert.Equal(t, r, read)
}

func TestComputeSurfacesUnsavedResult(t *testing.T) {
	model := &stubModel{reply: `{"score": 55, "matchReasons": [], "gaps": [], "matchedKeywords": [], "resumeSuggestions": []}`}
	f := newFixture(t, model, nil)
	f.repo.failures = 10 // every attempt fails

	r, err := f.svc.Compute(context.Background(), f.ownerID, f.jobID)
	require.ErrorIs(t, err, ErrNotPersisted)
	// the computed result still comes back instead of being dropped
	assert.Equal(t, 55, r.Score)
}

func TestComputeRejectsConcurrentRun(t *testing.T) {
	model := &stubModel{
		reply:   `{"score": 50, "matchReasons": [], "gaps": [], "matchedKeywords": [], "resumeSuggestions": []}`,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	f := newFixture(t, model, nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Compute(context.Background(), f.ownerID, f.jobID)
		done <- err
	}()

	<-model.started // first run is now inside the model call
	_, err := f.svc.Compute(context.Background(), f.ownerID, f.jobID)
	assert.ErrorIs(t, err, ErrInFlight)

	close(model.release)
	require.NoError(t, <-done)
}
