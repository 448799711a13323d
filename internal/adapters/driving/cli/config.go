package cli

import (
	"os"
	"strconv"

	"github.com/studyhall-labs/coursechat-cli/internal/adapters/driven/vector/qdrant"
	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driven"
)

// Config keys. Flat dotted strings, matching the TOML layout.
const (
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMAPIKey      = "llm.api_key"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMMaxTokens   = "llm.max_tokens"
	keyLLMTemperature = "llm.temperature"

	keyEmbedProvider   = "embedding.provider"
	keyEmbedModel      = "embedding.model"
	keyEmbedAPIKey     = "embedding.api_key"
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedDimensions = "embedding.dimensions"

	keyQdrantHost      = "qdrant.host"
	keyQdrantPort      = "qdrant.port"
	keyQdrantAPIKey    = "qdrant.api_key"
	keyQdrantUseTLS    = "qdrant.use_tls"
	keyQdrantCatalog   = "qdrant.catalog_collection"
	keyQdrantContent   = "qdrant.content_collection"
	keyQdrantThreshold = "qdrant.score_threshold"

	keyChunkSize    = "chunking.size"
	keyChunkOverlap = "chunking.overlap"

	keySessionMaxHistory = "session.max_history"
)

// loadLLMSettings builds LLM settings from the config store, with
// environment variables filling in missing API keys.
func loadLLMSettings(store driven.ConfigStore) *domain.LLMSettings {
	settings := &domain.LLMSettings{
		Provider:    domain.AIProvider(store.GetString(keyLLMProvider)),
		Model:       store.GetString(keyLLMModel),
		APIKey:      store.GetString(keyLLMAPIKey),
		BaseURL:     store.GetString(keyLLMBaseURL),
		MaxTokens:   store.GetInt(keyLLMMaxTokens),
		Temperature: store.GetFloat(keyLLMTemperature),
	}

	if settings.Provider == "" {
		settings.Provider = domain.AIProviderAnthropic
	}
	if settings.APIKey == "" && settings.Provider == domain.AIProviderAnthropic {
		settings.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if settings.BaseURL == "" && settings.Provider == domain.AIProviderOllama {
		settings.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
	return settings
}

// loadEmbeddingSettings builds embedding settings from the config store,
// with environment variables filling in missing API keys.
func loadEmbeddingSettings(store driven.ConfigStore) *domain.EmbeddingSettings {
	settings := &domain.EmbeddingSettings{
		Provider:   domain.AIProvider(store.GetString(keyEmbedProvider)),
		Model:      store.GetString(keyEmbedModel),
		APIKey:     store.GetString(keyEmbedAPIKey),
		BaseURL:    store.GetString(keyEmbedBaseURL),
		Dimensions: store.GetInt(keyEmbedDimensions),
	}

	if settings.Provider == "" {
		settings.Provider = domain.AIProviderOpenAI
	}
	if settings.APIKey == "" && settings.Provider == domain.AIProviderOpenAI {
		settings.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if settings.BaseURL == "" && settings.Provider == domain.AIProviderOllama {
		settings.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
	return settings
}

// loadVectorConfig builds the Qdrant connection config. QDRANT_HOST,
// QDRANT_PORT and QDRANT_API_KEY override unset file values.
func loadVectorConfig(store driven.ConfigStore) qdrant.Config {
	cfg := qdrant.Config{
		Host:              store.GetString(keyQdrantHost),
		Port:              store.GetInt(keyQdrantPort),
		APIKey:            store.GetString(keyQdrantAPIKey),
		UseTLS:            store.GetBool(keyQdrantUseTLS),
		CatalogCollection: store.GetString(keyQdrantCatalog),
		ContentCollection: store.GetString(keyQdrantContent),
		ScoreThreshold:    store.GetFloat(keyQdrantThreshold),
	}

	if cfg.Host == "" {
		cfg.Host = os.Getenv("QDRANT_HOST")
	}
	if cfg.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("QDRANT_PORT")); err == nil {
			cfg.Port = port
		}
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("QDRANT_API_KEY")
	}
	return cfg
}

// saveLLMSettings persists the chat provider configuration. Each Set
// writes through, so partial failures leave earlier keys saved.
func saveLLMSettings(store driven.ConfigStore, settings *domain.LLMSettings) error {
	pairs := []struct {
		key   string
		value any
	}{
		{keyLLMProvider, settings.Provider.String()},
		{keyLLMModel, settings.Model},
		{keyLLMAPIKey, settings.APIKey},
		{keyLLMBaseURL, settings.BaseURL},
	}
	for _, p := range pairs {
		if err := store.Set(p.key, p.value); err != nil {
			return err
		}
	}
	return nil
}

// saveEmbeddingSettings persists the embedding provider configuration.
func saveEmbeddingSettings(store driven.ConfigStore, settings *domain.EmbeddingSettings) error {
	pairs := []struct {
		key   string
		value any
	}{
		{keyEmbedProvider, settings.Provider.String()},
		{keyEmbedModel, settings.Model},
		{keyEmbedAPIKey, settings.APIKey},
		{keyEmbedBaseURL, settings.BaseURL},
	}
	for _, p := range pairs {
		if err := store.Set(p.key, p.value); err != nil {
			return err
		}
	}
	return nil
}

func loadChunkingSettings(store driven.ConfigStore) domain.ChunkingSettings {
	return domain.ChunkingSettings{
		Size:    store.GetInt(keyChunkSize),
		Overlap: store.GetInt(keyChunkOverlap),
	}
}

func loadSessionSettings(store driven.ConfigStore) domain.SessionSettings {
	return domain.SessionSettings{
		MaxHistory: store.GetInt(keySessionMaxHistory),
	}
}
