package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseStage identifies which recovery step of DecodeJSON gave up.
type ParseStage string

const (
	// StageDirect: the reply was not JSON and held no {...} span to recover.
	StageDirect ParseStage = "direct"
	// StageExtract: a {...} span was carved out but still failed to decode.
	StageExtract ParseStage = "extract"
)

// ParseError is the explicit failure result of DecodeJSON, tagged with the
// stage that failed so callers branch on data instead of exception flow.
type ParseError struct {
	Stage ParseStage
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("resposta do modelo não é JSON (%s): %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DecodeJSON parses free-form model output into v using two stages:
//  1. direct unmarshal of the full reply (code fences trimmed first);
//  2. unmarshal of the first balanced {...} span found in the reply.
//
// On failure it returns a *ParseError naming the stage that gave up. It
// guarantees syntactically valid JSON or an explicit failure; semantic
// validation belongs to the caller.
func DecodeJSON(raw string, v any) error {
	cleaned := trimFences(strings.TrimSpace(raw))
	directErr := json.Unmarshal([]byte(cleaned), v)
	if directErr == nil {
		return nil
	}

	span, ok := firstBalancedObject(cleaned)
	if !ok {
		return &ParseError{Stage: StageDirect, Err: directErr}
	}
	if err := json.Unmarshal([]byte(span), v); err != nil {
		return &ParseError{Stage: StageExtract, Err: err}
	}
	return nil
}

// trimFences strips a surrounding markdown code block, a habit chat models
// keep even when told not to.
func trimFences(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	if idx := strings.LastIndex(raw, "```"); idx != -1 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}

// firstBalancedObject finds the first top-level {...} span, tracking string
// literals and escapes so braces inside values do not break the balance.
func firstBalancedObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}
