package resume

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brunovmr/trilha/pkg/llm"
)

// UseCase covers the résumé-side scenarios: building a profile from an upload
// or raw text, injecting completed courses, and reading the stored profile.
type UseCase interface {
	BuildFromUpload(ctx context.Context, ownerID uuid.UUID, filename string, data []byte) (Profile, error)
	BuildFromText(ctx context.Context, ownerID uuid.UUID, text string) (Profile, error)
	CompleteCourse(ctx context.Context, ownerID uuid.UUID, course CompletedCourse, skills []string) (Profile, error)
	Get(ctx context.Context, ownerID uuid.UUID) (Profile, error)
}

type service struct {
	repo     Repository
	provider *llm.Provider
	log      *zap.Logger
	maxChars int
}

func NewService(repo Repository, provider *llm.Provider, log *zap.Logger) UseCase {
	return &service{
		repo:     repo,
		provider: provider,
		log:      log,
		maxChars: 12_000,
	}
}

func (s *service) BuildFromUpload(ctx context.Context, ownerID uuid.UUID, filename string, data []byte) (Profile, error) {
	text, err := ExtractText(filename, data)
	if err != nil {
		return Profile{}, err
	}
	return s.BuildFromText(ctx, ownerID, text)
}

func (s *service) BuildFromText(ctx context.Context, ownerID uuid.UUID, text string) (Profile, error) {
	// The heuristic extraction always runs: it is both the fallback and the
	// baseline the model output is merged onto.
	profile, err := ExtractProfile(ownerID, text)
	if err != nil {
		return Profile{}, err
	}

	if model, aerr := s.provider.Acquire(); aerr == nil {
		if enriched, merr := s.enrichWithModel(ctx, model, text); merr == nil {
			profile = mergeModelProfile(profile, enriched)
		} else {
			s.log.Warn("extração via modelo falhou, mantendo heurística",
				zap.String("ownerId", ownerID.String()), zap.Error(merr))
		}
	} else if errors.Is(aerr, llm.ErrUnsupportedRuntime) {
		s.log.Debug("runtime de inferência indisponível para extração")
	}

	// Merge semantics on upsert: a résumé rebuild must not wipe completed
	// courses accumulated on the platform.
	if existing, gerr := s.repo.Get(ctx, ownerID); gerr == nil {
		profile.Courses = existing.Courses
		if profile.Courses == nil {
			profile.Courses = []CompletedCourse{}
		}
	} else if !errors.Is(gerr, ErrNotFound) {
		return Profile{}, gerr
	}

	profile.UpdatedAt = time.Now().UTC()
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return Profile{}, fmt.Errorf("salvar perfil: %w", err)
	}
	return profile, nil
}

func (s *service) CompleteCourse(ctx context.Context, ownerID uuid.UUID, course CompletedCourse, skills []string) (Profile, error) {
	if strings.TrimSpace(course.Name) == "" {
		return Profile{}, errors.New("nome do curso é obrigatório")
	}
	profile, err := s.repo.Get(ctx, ownerID)
	if errors.Is(err, ErrNotFound) {
		// first course completion creates the profile
		profile = Profile{
			OwnerID:    ownerID,
			HardSkills: []string{},
			SoftSkills: []string{},
			Experience: []ExperienceItem{},
			Education:  []EducationItem{},
			Courses:    []CompletedCourse{},
			Keywords:   []string{},
		}
	} else if err != nil {
		return Profile{}, err
	}

	if !profile.HasCourse(course) {
		if course.CompletedAt.IsZero() {
			course.CompletedAt = time.Now().UTC()
		}
		profile.Courses = append(profile.Courses, course)
	}
	profile.HardSkills = MergeSkills(profile.HardSkills, skills)

	profile.UpdatedAt = time.Now().UTC()
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return Profile{}, fmt.Errorf("salvar perfil: %w", err)
	}
	return profile, nil
}

func (s *service) Get(ctx context.Context, ownerID uuid.UUID) (Profile, error) {
	return s.repo.Get(ctx, ownerID)
}

// modelProfile mirrors the JSON schema requested from the model.
type modelProfile struct {
	HardSkills []string `json:"hardSkills"`
	SoftSkills []string `json:"softSkills"`
	Experience []struct {
		Title        string `json:"title"`
		Organization string `json:"organization"`
		StartDate    string `json:"startDate"`
	} `json:"experience"`
	Education []struct {
		Program        string `json:"program"`
		Institution    string `json:"institution"`
		CompletionDate string `json:"completionDate"`
	} `json:"education"`
}

const extractionSystemPrompt = "Você é um analista de RH. Responda ESTRITAMENTE com um único objeto JSON, " +
	"sem markdown, sem código e sem explicações. Listas vazias devem ser [], nunca null. Não invente fatos."

func (s *service) enrichWithModel(ctx context.Context, model llm.ChatModel, text string) (modelProfile, error) {
	if len(text) > s.maxChars {
		text = text[:s.maxChars]
	}
	user := fmt.Sprintf(
		"Texto do currículo:\n<<<\n%s\n>>>\n\nRetorne um único objeto JSON no formato:\n"+
			`{"hardSkills": string[], "softSkills": string[], `+
			`"experience": [{"title": string, "organization": string, "startDate": string}], `+
			`"education": [{"program": string, "institution": string, "completionDate": string}]}`+
			"\n\nRegras:\n- nenhum campo extra\n- use apenas informações presentes no texto\n",
		text,
	)

	raw, err := model.Ask(ctx, extractionSystemPrompt, user)
	if err != nil {
		return modelProfile{}, err
	}
	var p modelProfile
	if err := llm.DecodeJSON(raw, &p); err != nil {
		return modelProfile{}, err
	}
	if hasPlaceholders(p) {
		return modelProfile{}, llm.ErrPlaceholderOutput
	}
	return p, nil
}

// hasPlaceholders rejects model output that echoes template tokens in any of
// the known fields. One echoed token voids the whole payload.
func hasPlaceholders(p modelProfile) bool {
	if llm.IsPlaceholder(p.HardSkills...) || llm.IsPlaceholder(p.SoftSkills...) {
		return true
	}
	for _, e := range p.Experience {
		if llm.IsPlaceholder(e.Title, e.Organization) {
			return true
		}
	}
	for _, e := range p.Education {
		if llm.IsPlaceholder(e.Program, e.Institution) {
			return true
		}
	}
	return false
}

// mergeModelProfile layers validated model output over the heuristic baseline:
// skills are unioned, experience and education are replaced when the model
// found anything (its entries carry organizations and dates the regexes
// cannot recover).
func mergeModelProfile(base Profile, p modelProfile) Profile {
	base.HardSkills = MergeSkills(base.HardSkills, p.HardSkills)
	base.SoftSkills = MergeSkills(base.SoftSkills, p.SoftSkills)
	if len(p.Experience) > 0 {
		base.Experience = make([]ExperienceItem, 0, len(p.Experience))
		for _, e := range p.Experience {
			base.Experience = append(base.Experience, ExperienceItem{
				Title:        e.Title,
				Organization: e.Organization,
				StartDate:    e.StartDate,
			})
		}
	}
	if len(p.Education) > 0 {
		base.Education = make([]EducationItem, 0, len(p.Education))
		for _, e := range p.Education {
			base.Education = append(base.Education, EducationItem{
				Program:        e.Program,
				Institution:    e.Institution,
				CompletionDate: e.CompletionDate,
			})
		}
	}
	return base
}
