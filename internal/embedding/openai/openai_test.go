package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	c, err := NewClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Name())
	assert.Equal(t, DefaultModel, c.model)
	assert.Equal(t, DefaultTimeout, c.timeout)
}

func TestNewClientCustomKeyEnv(t *testing.T) {
	t.Setenv("MY_PROVIDER_KEY", "test-key")

	c, err := NewClient(Config{APIKeyEnv: "MY_PROVIDER_KEY", Model: "custom-model", Dimension: 42})
	require.NoError(t, err)
	assert.Equal(t, "custom-model", c.model)
	assert.Equal(t, 42, c.dimension)
}

func TestNewClientMissingKey(t *testing.T) {
	t.Setenv("EMPTY_KEY_ENV", "")

	_, err := NewClient(Config{APIKeyEnv: "EMPTY_KEY_ENV"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMPTY_KEY_ENV")
}
