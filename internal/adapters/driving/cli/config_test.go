package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/studyhall-labs/coursechat-cli/internal/adapters/driven/config/file"
	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
)

func newTestConfigStore(t *testing.T) *configfile.ConfigStore {
	t.Helper()
	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestLoadLLMSettings_Defaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	store := newTestConfigStore(t)

	settings := loadLLMSettings(store)

	assert.Equal(t, domain.AIProviderAnthropic, settings.Provider)
	assert.Empty(t, settings.APIKey)
}

func TestLoadLLMSettings_EnvFallback(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	store := newTestConfigStore(t)

	settings := loadLLMSettings(store)

	assert.Equal(t, "sk-ant-test", settings.APIKey)
}

func TestLoadLLMSettings_FileWinsOverEnv(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env")
	store := newTestConfigStore(t)
	require.NoError(t, store.Set(keyLLMAPIKey, "sk-ant-file"))

	settings := loadLLMSettings(store)

	assert.Equal(t, "sk-ant-file", settings.APIKey)
}

func TestSaveLLMSettings_RoundTrip(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	store := newTestConfigStore(t)

	in := &domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		Model:    "llama3.1",
		BaseURL:  "http://localhost:11434",
	}
	require.NoError(t, saveLLMSettings(store, in))

	out := loadLLMSettings(store)

	assert.Equal(t, domain.AIProviderOllama, out.Provider)
	assert.Equal(t, "llama3.1", out.Model)
	assert.Equal(t, "http://localhost:11434", out.BaseURL)
}

func TestSaveEmbeddingSettings_RoundTrip(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	store := newTestConfigStore(t)

	in := &domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-small",
		APIKey:   "sk-test",
	}
	require.NoError(t, saveEmbeddingSettings(store, in))

	out := loadEmbeddingSettings(store)

	assert.Equal(t, domain.AIProviderOpenAI, out.Provider)
	assert.Equal(t, "text-embedding-3-small", out.Model)
	assert.Equal(t, "sk-test", out.APIKey)
}

func TestLoadVectorConfig_EnvFallback(t *testing.T) {
	t.Setenv("QDRANT_HOST", "qdrant.example.com")
	t.Setenv("QDRANT_PORT", "7443")
	t.Setenv("QDRANT_API_KEY", "qd-key")
	store := newTestConfigStore(t)

	cfg := loadVectorConfig(store)

	assert.Equal(t, "qdrant.example.com", cfg.Host)
	assert.Equal(t, 7443, cfg.Port)
	assert.Equal(t, "qd-key", cfg.APIKey)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "(not set)", maskAPIKey(""))
	assert.Equal(t, "****", maskAPIKey("abcd"))
	assert.Equal(t, "****6789", maskAPIKey("sk-123456789"))
}
