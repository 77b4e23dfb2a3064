package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "OPENAI_MODEL", "EXTRACTION_BATCH_SIZE", "EXTRACTION_CONCURRENCY", "PHONE_CACHE_TTL", "DB_SSL_MODE"} {
		t.Setenv(k, "")
	}

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, 5000, env.PORT)
	assert.Equal(t, "gpt-3.5-turbo", env.OPENAI_MODEL)
	assert.Equal(t, 1500, env.OPENAI_MAX_TOKENS)
	assert.Equal(t, 10, env.EXTRACTION_BATCH_SIZE)
	assert.Equal(t, 1, env.EXTRACTION_CONCURRENCY)
	assert.Equal(t, 24*time.Hour, env.PHONE_CACHE_TTL)
	assert.Equal(t, "require", env.DB_SSL_MODE)
}

func TestGet_Overrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("EXTRACTION_BATCH_SIZE", "25")
	t.Setenv("EXTRACTION_CONCURRENCY", "0")
	t.Setenv("PHONE_CACHE_TTL", "90m")

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, 8088, env.PORT)
	assert.Equal(t, 25, env.EXTRACTION_BATCH_SIZE)
	assert.Equal(t, 1, env.EXTRACTION_CONCURRENCY)
	assert.Equal(t, 90*time.Minute, env.PHONE_CACHE_TTL)
}

func TestGet_RejectsNonPositiveBatchSize(t *testing.T) {
	t.Setenv("EXTRACTION_BATCH_SIZE", "-3")

	_, err := Get()
	assert.Error(t, err)
}

func TestLoadENV_MissingFileIsFine(t *testing.T) {
	t.Setenv("GO_ENV", "development")
	t.Chdir(t.TempDir())

	assert.NoError(t, LoadENV())
}
