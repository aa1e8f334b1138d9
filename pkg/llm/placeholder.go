package llm

import "github.com/brunovmr/trilha/pkg/nlp"

// placeholderTokens is the frozen set of template strings a model sometimes
// echoes back from the prompt instead of real extracted data. Kept in one
// place so the list is testable in isolation. Membership is checked on the
// normalized form (trimmed, lower case, accent-free), by exact equality —
// real values that merely contain one of these words must not be flagged.
var placeholderTokens = func() map[string]struct{} {
	tokens := []string{
		"string", "texto", "exemplo", "example",
		"skill", "skill1", "skill2", "skill3",
		"habilidade", "habilidade 1", "habilidade 2",
		"empresa", "nome da empresa", "empresa x", "company", "company name",
		"cargo", "nome do cargo", "titulo do cargo", "job title", "role",
		"instituicao", "nome da instituicao", "institution", "school",
		"curso", "nome do curso", "degree", "program",
		"n/a", "na", "null", "undefined", "none",
		"lorem ipsum", "placeholder",
	}
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[nlp.Normalize(t)] = struct{}{}
	}
	return set
}()

// IsPlaceholder reports whether any of the given field values is exactly a
// known template token. Used to reject syntactically valid but semantically
// useless model output before it reaches a stored result.
func IsPlaceholder(values ...string) bool {
	for _, v := range values {
		if _, ok := placeholderTokens[nlp.Normalize(v)]; ok {
			return true
		}
	}
	return false
}
