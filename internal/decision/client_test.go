package decision

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecision_ValidJSON(t *testing.T) {
	raw := `{
		"decision": "accepted",
		"justification": [
			{"clause": "Section 4.2", "text": "Knee surgery is covered.", "relevance": "directly covers the claim"}
		],
		"confidence": 0.92,
		"summary": "Covered under surgical benefits.",
		"reasoning": "The policy lists knee surgery as covered."
	}`

	d := ParseDecision("knee surgery claim", raw)
	assert.Equal(t, "accepted", d.Decision)
	require.Len(t, d.Justification, 1)
	assert.Equal(t, "Section 4.2", d.Justification[0].Clause)
	assert.InDelta(t, 0.92, d.Confidence, 1e-9)
	assert.Empty(t, d.Note)
}

func TestParseDecision_JSONEmbeddedInProse(t *testing.T) {
	raw := "Here is my answer:\n```json\n{\"decision\": \"rejected\", \"confidence\": 0.8}\n```\nHope this helps."

	d := ParseDecision("q", raw)
	assert.Equal(t, "rejected", d.Decision)
	assert.InDelta(t, 0.8, d.Confidence, 1e-9)
}

func TestParseDecision_DefaultsMissingFields(t *testing.T) {
	d := ParseDecision("q", `{"summary": "no idea"}`)
	assert.Equal(t, "unknown", d.Decision)
	assert.InDelta(t, 0.5, d.Confidence, 1e-9)
	assert.Equal(t, "no idea", d.Summary)
}

func TestParseDecision_ClampsConfidence(t *testing.T) {
	d := ParseDecision("q", `{"decision": "accepted", "confidence": 1.7}`)
	assert.InDelta(t, 1.0, d.Confidence, 1e-9)

	d = ParseDecision("q", `{"decision": "rejected", "confidence": -0.3}`)
	assert.InDelta(t, 0.0, d.Confidence, 1e-9)
}

func TestParseDecision_FallbackOnNonJSON(t *testing.T) {
	d := ParseDecision("was my claim approved", "I cannot produce JSON right now, sorry.")
	assert.Equal(t, "processed", d.Decision)
	assert.InDelta(t, 0.5, d.Confidence, 1e-9)
	assert.Contains(t, d.Summary, "was my claim approved")
	assert.NotEmpty(t, d.Note)
	assert.Equal(t, "I cannot produce JSON right now, sorry.", d.RawResponse)
}

func TestParseDecision_FallbackTruncatesRawOutput(t *testing.T) {
	raw := strings.Repeat("x", 2000)
	d := ParseDecision("q", raw)
	assert.Equal(t, "processed", d.Decision)
	assert.LessOrEqual(t, len(d.RawResponse), maxRawResponse+len("..."))
	assert.True(t, strings.HasSuffix(d.RawResponse, "..."))
}

func TestParseDecision_FallbackOnMalformedBraces(t *testing.T) {
	d := ParseDecision("q", `{"decision": "accepted", `)
	assert.Equal(t, "processed", d.Decision)
}

func TestBuildPrompt_NumbersChunks(t *testing.T) {
	p := buildPrompt("my query", []string{"first passage", "second passage"})
	assert.Contains(t, p, "Chunk 1:\nfirst passage")
	assert.Contains(t, p, "Chunk 2:\nsecond passage")
	assert.Contains(t, p, `"my query"`)
}
