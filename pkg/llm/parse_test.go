package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Score  int      `json:"score"`
	Skills []string `json:"skills"`
}

func TestDecodeJSONDirect(t *testing.T) {
	var p payload
	err := DecodeJSON(`{"score": 80, "skills": ["Go"]}`, &p)
	require.NoError(t, err)
	assert.Equal(t, 80, p.Score)
	assert.Equal(t, []string{"Go"}, p.Skills)
}

func TestDecodeJSONFencedBlock(t *testing.T) {
	var p payload
	raw := "```json\n{\"score\": 55, \"skills\": []}\n```"
	require.NoError(t, DecodeJSON(raw, &p))
	assert.Equal(t, 55, p.Score)
}

func TestDecodeJSONEmbeddedObject(t *testing.T) {
	var p payload
	raw := `Claro! Aqui está o resultado: {"score": 42, "skills": ["React"]} Espero ter ajudado.`
	require.NoError(t, DecodeJSON(raw, &p))
	assert.Equal(t, 42, p.Score)
	assert.Equal(t, []string{"React"}, p.Skills)
}

func TestDecodeJSONBracesInsideStrings(t *testing.T) {
	var p struct {
		Note string `json:"note"`
	}
	raw := `prefixo {"note": "uso de {chaves} e \"aspas\" no valor"} sufixo`
	require.NoError(t, DecodeJSON(raw, &p))
	assert.Equal(t, `uso de {chaves} e "aspas" no valor`, p.Note)
}

func TestDecodeJSONNoObjectAtAll(t *testing.T) {
	var p payload
	err := DecodeJSON("desculpe, não consigo responder", &p)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StageDirect, perr.Stage)
}

func TestDecodeJSONBrokenExtractedSpan(t *testing.T) {
	var p payload
	err := DecodeJSON(`texto {"score": } texto`, &p)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StageExtract, perr.Stage)
	assert.NotNil(t, errors.Unwrap(perr))
}
