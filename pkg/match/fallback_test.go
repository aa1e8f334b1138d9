package match

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunovmr/trilha/pkg/job"
	"github.com/brunovmr/trilha/pkg/resume"
)

func jobWith(reqs ...string) job.Job {
	return job.Job{ID: uuid.New(), Title: "Pessoa Desenvolvedora", Requirements: reqs}
}

func TestRecommendationThresholdBoundaries(t *testing.T) {
	assert.Equal(t, RecommendationStrong, recommendationFor(75))
	assert.Equal(t, RecommendationMedium, recommendationFor(74))
	assert.Equal(t, RecommendationMedium, recommendationFor(50))
	assert.Equal(t, RecommendationWeak, recommendationFor(49))
	assert.Equal(t, RecommendationStrong, recommendationFor(100))
	assert.Equal(t, RecommendationWeak, recommendationFor(0))
}

func TestFallbackThreeOfFourWithOneCourse(t *testing.T) {
	j := jobWith("React", "TypeScript", "Node.js", "Kubernetes")
	p := &resume.Profile{
		HardSkills: []string{"React", "TypeScript", "Node.js"},
		Courses: []resume.CompletedCourse{
			{Name: "Lógica de Programação", Institution: "Trilha", Hours: 40, CompletedAt: time.Now()},
		},
	}
	r := ComputeFallback(uuid.New(), j, p)

	// 30 + round(0.75*60) + 3 = 78
	assert.Equal(t, 78, r.Score)
	assert.Equal(t, RecommendationStrong, r.Recommendation)
	assert.Equal(t, SourceFallback, r.SourceModel)
}

func TestFallbackNoOverlapNoCourses(t *testing.T) {
	j := jobWith("Cobol", "Mainframe")
	p := &resume.Profile{HardSkills: []string{"React"}}
	r := ComputeFallback(uuid.New(), j, p)

	assert.Equal(t, 30, r.Score)
	assert.Equal(t, RecommendationWeak, r.Recommendation)
	assert.GreaterOrEqual(t, r.Score, fallbackFloor)
	assert.LessOrEqual(t, r.Score, fallbackCeil)
}

func TestFallbackNoProfileIsFixedScore(t *testing.T) {
	r := ComputeFallback(uuid.New(), jobWith("qualquer requisito", "outro requisito"), nil)
	assert.Equal(t, 25, r.Score)
	assert.Equal(t, RecommendationWeak, r.Recommendation)
	assert.NotEmpty(t, r.ResumeSuggestions)

	// job content is irrelevant without a profile
	r2 := ComputeFallback(uuid.New(), jobWith(), nil)
	assert.Equal(t, 25, r2.Score)
}

func TestFallbackZeroRequirements(t *testing.T) {
	p := &resume.Profile{HardSkills: []string{"React"}}
	r := ComputeFallback(uuid.New(), jobWith(), p)
	assert.GreaterOrEqual(t, r.Score, fallbackFloor)
	assert.LessOrEqual(t, r.Score, fallbackCeil)
	assert.Equal(t, 30, r.Score)
}

func TestFallbackCeilingClamp(t *testing.T) {
	j := jobWith("React")
	p := &resume.Profile{
		HardSkills: []string{"React"},
		Courses: []resume.CompletedCourse{
			{Name: "Curso Um"}, {Name: "Curso Dois"}, {Name: "Curso Três"}, {Name: "Curso Quatro"},
		},
	}
	// 30 + 60 + min(10, 12) = 100, clamped to the fallback ceiling
	r := ComputeFallback(uuid.New(), j, p)
	assert.Equal(t, 98, r.Score)
	assert.Equal(t, RecommendationStrong, r.Recommendation)
}

func TestFallbackDeterministic(t *testing.T) {
	owner := uuid.New()
	j := jobWith("Experiência com React", "Comunicação", "Inglês avançado")
	p := &resume.Profile{
		HardSkills: []string{"React", "Node.js"},
		SoftSkills: []string{"Comunicação"},
		Experience: []resume.ExperienceItem{{Title: "Desenvolvedora Front-end"}},
		Keywords:   []string{"frontend", "interfaces"},
	}

	a := ComputeFallback(owner, j, p)
	b := ComputeFallback(owner, j, p)
	// everything except the computation timestamp must be identical
	a.ComputedAt = time.Time{}
	b.ComputedAt = time.Time{}
	assert.Equal(t, a, b)
}

func TestFallbackBidirectionalContainment(t *testing.T) {
	// term inside requirement
	j := jobWith("Experiência com React em produção")
	p := &resume.Profile{HardSkills: []string{"React"}}
	r := ComputeFallback(uuid.New(), j, p)
	assert.Contains(t, r.MatchedKeywords, "react")

	// requirement inside term
	j2 := jobWith("Git")
	p2 := &resume.Profile{HardSkills: []string{"GitHub Actions"}}
	r2 := ComputeFallback(uuid.New(), j2, p2)
	assert.NotEmpty(t, r2.MatchedKeywords)
}

func TestFallbackReasonsGapsSuggestions(t *testing.T) {
	j := jobWith("React", "Vue.js", "Angular", "Svelte", "Cobol")
	p := &resume.Profile{
		HardSkills: []string{"React"},
		Experience: []resume.ExperienceItem{{Title: "Desenvolvedora"}},
		Courses:    []resume.CompletedCourse{{Name: "Curso de Front-end"}},
	}
	r := ComputeFallback(uuid.New(), j, p)

	require.Len(t, r.MatchReasons, 3)
	assert.Contains(t, r.MatchReasons[0], "requisitos da vaga atendidos")

	// four unmatched requirements, capped at three gaps
	require.Len(t, r.Gaps, 3)
	for _, g := range r.Gaps {
		assert.True(t, strings.HasPrefix(g, "Requisito não atendido: "), g)
	}

	require.Len(t, r.ResumeSuggestions, 2)
}

func TestFallbackReasonsAbsentWhenCountsAreZero(t *testing.T) {
	j := jobWith("Cobol")
	p := &resume.Profile{HardSkills: []string{"React"}}
	r := ComputeFallback(uuid.New(), j, p)
	assert.Empty(t, r.MatchReasons)
	assert.Len(t, r.ResumeSuggestions, 2)
}
