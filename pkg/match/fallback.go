package match

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brunovmr/trilha/pkg/job"
	"github.com/brunovmr/trilha/pkg/nlp"
	"github.com/brunovmr/trilha/pkg/resume"
)

// SourceFallback identifies results produced by the deterministic path.
const SourceFallback = "heuristica-local"

// Fallback score bounds: the heuristic never claims full confidence (that is
// reserved for model-backed results) and never reports zero, which would read
// as a hard "no match" the heuristic cannot justify.
const (
	fallbackFloor = 10
	fallbackCeil  = 98

	// score for an owner with no profile at all: "unknown candidate",
	// not "zero overlap"
	noProfileScore = 25
)

// ComputeFallback derives a match result from requirement/profile term
// overlap. Pure and deterministic: identical inputs always produce identical
// scores, reasons and orderings. It never fails — this is the authoritative
// path whenever the model path yields nothing usable.
func ComputeFallback(ownerID uuid.UUID, j job.Job, profile *resume.Profile) Result {
	r := Result{
		OwnerID:           ownerID,
		JobID:             j.ID,
		MatchReasons:      []string{},
		Gaps:              []string{},
		MatchedKeywords:   []string{},
		ResumeSuggestions: []string{},
		SourceModel:       SourceFallback,
		ComputedAt:        time.Now().UTC(),
	}

	if profile == nil {
		r.Score = noProfileScore
		r.Recommendation = recommendationFor(r.Score)
		r.Gaps = append(r.Gaps, "Nenhum currículo cadastrado para comparar com a vaga")
		r.ResumeSuggestions = append(r.ResumeSuggestions,
			"Envie seu currículo para receber uma análise completa de compatibilidade")
		return r
	}

	terms := profileTerms(*profile)
	matched := 0
	var unmatched []string
	for _, req := range j.Requirements {
		if requirementMatched(nlp.Normalize(req), terms) {
			matched++
		} else {
			unmatched = append(unmatched, req)
		}
	}

	total := len(j.Requirements)
	denom := total
	if denom == 0 {
		denom = 1
	}
	ratio := float64(matched) / float64(denom)

	score := 30 + int(math.Round(ratio*60))
	score += min(10, len(profile.Courses)*3)
	r.Score = clamp(score, fallbackFloor, fallbackCeil)
	r.Recommendation = recommendationFor(r.Score)

	r.MatchedKeywords = matchedTerms(j.Requirements, terms)

	if matched > 0 {
		r.MatchReasons = append(r.MatchReasons,
			fmt.Sprintf("%d de %d requisitos da vaga atendidos pelo seu perfil", matched, total))
	}
	if n := len(profile.Courses); n > 0 {
		r.MatchReasons = append(r.MatchReasons,
			fmt.Sprintf("%d curso(s) concluído(s) na plataforma", n))
	}
	if n := len(profile.Experience); n > 0 {
		r.MatchReasons = append(r.MatchReasons,
			fmt.Sprintf("%d experiência(s) profissional(is) registrada(s)", n))
	}

	for i, req := range unmatched {
		if i == 3 {
			break
		}
		r.Gaps = append(r.Gaps, "Requisito não atendido: "+req)
	}

	r.ResumeSuggestions = append(r.ResumeSuggestions,
		"Mantenha seu currículo e perfil sempre atualizados")
	if len(unmatched) > 0 {
		r.ResumeSuggestions = append(r.ResumeSuggestions,
			"Destaque no currículo experiências relacionadas aos requisitos não atendidos")
	}
	return r
}

// profileTerms flattens every comparable string of a profile into normalized
// terms, in a fixed field order so the output stays deterministic.
func profileTerms(p resume.Profile) []string {
	var terms []string
	add := func(s string) {
		if n := nlp.Normalize(s); n != "" {
			terms = append(terms, n)
		}
	}
	for _, s := range p.HardSkills {
		add(s)
	}
	for _, s := range p.SoftSkills {
		add(s)
	}
	for _, c := range p.Courses {
		add(c.Name)
	}
	for _, e := range p.Experience {
		add(e.Title)
	}
	for _, k := range p.Keywords {
		add(k)
	}
	return terms
}

// requirementMatched uses bidirectional substring containment, deliberately
// permissive to tolerate phrasing differences between postings and résumés.
func requirementMatched(normalizedReq string, terms []string) bool {
	if normalizedReq == "" {
		return false
	}
	for _, t := range terms {
		if containsEither(normalizedReq, t) {
			return true
		}
	}
	return false
}

// matchedTerms lists the profile terms that hit at least one requirement,
// deduplicated, in profile order.
func matchedTerms(requirements, terms []string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	normalized := make([]string, 0, len(requirements))
	for _, req := range requirements {
		normalized = append(normalized, nlp.Normalize(req))
	}
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		for _, req := range normalized {
			if req != "" && containsEither(req, t) {
				seen[t] = struct{}{}
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
