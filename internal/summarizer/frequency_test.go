package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_PicksFrequentTopicSentences(t *testing.T) {
	text := "Coverage applies to surgery. Coverage applies to hospital surgery stays. " +
		"Weather was nice yesterday. Coverage for surgery requires preapproval. " +
		"Lunch options vary daily."

	s := NewFrequencySummarizer()
	out, err := s.Summarize(text, 2)
	require.NoError(t, err)

	sentences := strings.Count(out, ".")
	assert.Equal(t, 2, sentences)
	assert.Contains(t, strings.ToLower(out), "coverage")
}

func TestSummarize_KeepsOriginalOrder(t *testing.T) {
	text := "Alpha policy covers claims. Beta filler sentence here. Alpha policy covers alpha claims fully."

	s := NewFrequencySummarizer()
	out, err := s.Summarize(text, 2)
	require.NoError(t, err)

	first := strings.Index(out, "Alpha policy covers claims.")
	second := strings.Index(out, "Alpha policy covers alpha claims fully.")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
}

func TestSummarize_NoSentencePunctuation(t *testing.T) {
	s := NewFrequencySummarizer()
	out, err := s.Summarize("just a fragment without punctuation", 3)
	require.NoError(t, err)
	assert.Equal(t, "just a fragment without punctuation", out)
}

func TestSummarize_MaxLargerThanSentenceCount(t *testing.T) {
	s := NewFrequencySummarizer()
	out, err := s.Summarize("One sentence. Two sentence.", 10)
	require.NoError(t, err)
	assert.Equal(t, "One sentence. Two sentence.", out)
}
