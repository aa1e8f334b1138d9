package resume

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/brunovmr/trilha/pkg/nlp"
)

// minExtractableRunes is the threshold below which the text is treated as
// unreadable (likely an image-only PDF). Exactly this length still passes.
const minExtractableRunes = 50

const maxProfileKeywords = 15

var (
	// Role titles: a pt-BR title noun optionally followed by a connective and
	// up to three qualifying words on the same line ("Desenvolvedora Front-end
	// Sênior", "Analista de Dados Pleno").
	reRoleTitle = regexp.MustCompile(`(?i)\b(?:desenvolvedor(?:a)?|programador(?:a)?|engenheir[oa]|analista|arquitet[oa]|cientista|designer|gerente|coordenador(?:a)?|supervisor(?:a)?|consultor(?:a)?|especialista|estagi[áa]ri[oa]|t[ée]cnic[oa])\b(?:[^\S\n]+(?:de|em|do|da)\b)?(?:[^\S\n]+[\p{L}\p{N}][\p{L}\p{N}#+./-]*){0,3}`)

	// Degree type plus field of study ("Bacharelado em Sistemas de Informação").
	reDegree = regexp.MustCompile(`(?i)\b(?:bacharelado|licenciatura|tecn[óo]logo|gradua[çc][ãa]o|p[óo]s-gradua[çc][ãa]o|mestrado|doutorado|mba|curso t[ée]cnico)\b(?:[^\S\n]+(?:em|de)\b)?(?:[^\S\n]+[\p{L}\p{N}][\p{L}\p{N}-]*){0,4}`)

	reInstitution = regexp.MustCompile(`(?i)\b(?:universidade|faculdade|instituto|centro universit[áa]rio|escola)\b(?:[^\S\n]+[\p{L}\p{N}][\p{L}\p{N}.-]*){1,5}`)
)

// ExtractProfile builds a profile from raw document text using dictionary and
// pattern heuristics only. Past the minimum-length gate it never fails: the
// worst case is empty skill/experience/education lists with keywords present.
func ExtractProfile(ownerID uuid.UUID, text string) (Profile, error) {
	if utf8.RuneCountInString(text) < minExtractableRunes {
		return Profile{}, ErrInsufficientText
	}

	normalized := nlp.Normalize(text)

	p := Profile{
		OwnerID:    ownerID,
		HardSkills: nlp.ScanDictionary(normalized, nlp.TechSkills),
		SoftSkills: nlp.ScanDictionary(normalized, nlp.SoftSkills),
		Experience: extractExperience(text),
		Education:  extractEducation(text),
		Courses:    []CompletedCourse{},
		Keywords:   nlp.Keywords(text, maxProfileKeywords),
		UpdatedAt:  time.Now().UTC(),
	}
	if p.HardSkills == nil {
		p.HardSkills = []string{}
	}
	if p.SoftSkills == nil {
		p.SoftSkills = []string{}
	}
	return p, nil
}

// extractExperience recovers role titles from the original (accented) text.
// Matches are deduplicated by exact string equality.
func extractExperience(text string) []ExperienceItem {
	items := []ExperienceItem{}
	seen := map[string]struct{}{}
	for _, m := range reRoleTitle.FindAllString(text, -1) {
		title := strings.TrimSpace(m)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		items = append(items, ExperienceItem{Title: title})
	}
	return items
}

// extractEducation scans line by line so a degree and its institution pair up
// when they share a line.
func extractEducation(text string) []EducationItem {
	items := []EducationItem{}
	seen := map[string]struct{}{}
	for _, line := range strings.Split(text, "\n") {
		program := strings.TrimSpace(reDegree.FindString(line))
		if program == "" {
			continue
		}
		institution := strings.TrimSpace(reInstitution.FindString(line))
		key := program + "|" + institution
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, EducationItem{Program: program, Institution: institution})
	}
	return items
}
