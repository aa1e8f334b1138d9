package nlp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordsFrequencyOrder(t *testing.T) {
	text := strings.Join([]string{
		"python python python",
		"django django",
		"postgres",
	}, " ")
	got := Keywords(text, 15)
	assert.Equal(t, []string{"python", "django", "postgres"}, got)
}

func TestKeywordsTiesKeepFirstSeenOrder(t *testing.T) {
	got := Keywords("zebra marfim zebra marfim abacate abacate", 15)
	// all counts equal: original first-seen order must survive the stable sort
	assert.Equal(t, []string{"zebra", "marfim", "abacate"}, got)
}

func TestKeywordsCapAndFilters(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString("palavra")
		sb.WriteByte('a' + byte(i%26))
		sb.WriteString(" ")
	}
	// stopwords and short tokens never make it through
	sb.WriteString("sobre quando porque ali go js ")
	got := Keywords(sb.String(), 15)
	require.Len(t, got, 15)
	for _, kw := range got {
		assert.False(t, IsStopword(kw), "stopword leaked: %s", kw)
		assert.GreaterOrEqual(t, len([]rune(kw)), minKeywordRunes)
	}
}

func TestKeywordsNeverNil(t *testing.T) {
	assert.Equal(t, []string{}, Keywords("", 15))
	assert.Equal(t, []string{}, Keywords("texto normal", 0))
}
