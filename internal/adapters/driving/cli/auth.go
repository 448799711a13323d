package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/studyhall-labs/coursechat-cli/internal/adapters/driven/ai"
	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Configure AI providers",
	Long: `View and configure the embedding and chat (LLM) providers.

Running 'coursechat auth' with no subcommand shows the current
configuration. API keys can also be supplied via environment variables
(ANTHROPIC_API_KEY, OPENAI_API_KEY) or a local .env file.`,
	RunE: runAuthShow,
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show provider configuration",
	RunE:  runAuthShow,
}

var authLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the chat provider",
	Long: `Configure the language model used for chat.

Supported providers:
  anthropic - Anthropic cloud API (requires API key)
  ollama    - local Ollama instance`,
	RunE: runAuthLLM,
}

var authEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	Long: `Configure the embedding provider used for indexing and search.

Supported providers:
  openai - OpenAI cloud API (requires API key)
  ollama - local Ollama instance`,
	RunE: runAuthEmbedding,
}

func init() {
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authLLMCmd)
	authCmd.AddCommand(authEmbeddingCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthShow(cmd *cobra.Command, _ []string) error {
	store, err := ensureConfigStore()
	if err != nil {
		return err
	}

	llm := loadLLMSettings(store)
	embedding := loadEmbeddingSettings(store)

	cmd.Println("Provider Configuration")
	cmd.Println("======================")
	cmd.Println()

	cmd.Println("[Chat]")
	cmd.Printf("  Provider: %s\n", llm.Provider)
	if llm.Model != "" {
		cmd.Printf("  Model: %s\n", llm.Model)
	}
	if llm.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", maskAPIKey(llm.APIKey))
	}
	cmd.Printf("  Status: %s\n", configuredStatus(llm.IsConfigured()))
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", embedding.Provider)
	if embedding.Model != "" {
		cmd.Printf("  Model: %s\n", embedding.Model)
	}
	if embedding.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", maskAPIKey(embedding.APIKey))
	}
	cmd.Printf("  Status: %s\n", configuredStatus(embedding.IsConfigured()))
	cmd.Println()

	cmd.Printf("Config file: %s\n", store.Path())
	return nil
}

//nolint:errcheck // CLI interactive flow
func runAuthLLM(cmd *cobra.Command, _ []string) error {
	store, err := ensureConfigStore()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	current := loadLLMSettings(store)

	cmd.Printf("Chat provider (anthropic, ollama) [%s]: ", current.Provider)
	input, _ := reader.ReadString('\n')
	provider := current.Provider
	if v := strings.TrimSpace(input); v != "" {
		provider = domain.AIProvider(v)
	}

	settings := &domain.LLMSettings{Provider: provider, Model: current.Model, BaseURL: current.BaseURL}

	cmd.Printf("Model (empty for provider default) [%s]: ", current.Model)
	input, _ = reader.ReadString('\n')
	settings.Model = strings.TrimSpace(input)
	if settings.Model == "" {
		settings.Model = current.Model
	}

	if provider.RequiresAPIKey() {
		key, err := readSecret(cmd, fmt.Sprintf("API key [%s]: ", maskAPIKey(current.APIKey)))
		if err != nil {
			return err
		}
		settings.APIKey = key
		if settings.APIKey == "" {
			settings.APIKey = current.APIKey
		}
	}

	if provider == domain.AIProviderOllama {
		cmd.Printf("Base URL [%s]: ", current.BaseURL)
		input, _ = reader.ReadString('\n')
		if v := strings.TrimSpace(input); v != "" {
			settings.BaseURL = v
		}
	}

	if err := ai.ValidateLLMConfig(settings); err != nil {
		return err
	}

	if err := saveLLMSettings(store, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Chat provider configured.")
	return nil
}

//nolint:errcheck // CLI interactive flow
func runAuthEmbedding(cmd *cobra.Command, _ []string) error {
	store, err := ensureConfigStore()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	current := loadEmbeddingSettings(store)

	cmd.Printf("Embedding provider (openai, ollama) [%s]: ", current.Provider)
	input, _ := reader.ReadString('\n')
	provider := current.Provider
	if v := strings.TrimSpace(input); v != "" {
		provider = domain.AIProvider(v)
	}

	settings := &domain.EmbeddingSettings{Provider: provider, Model: current.Model, BaseURL: current.BaseURL}

	cmd.Printf("Model (empty for provider default) [%s]: ", current.Model)
	input, _ = reader.ReadString('\n')
	settings.Model = strings.TrimSpace(input)
	if settings.Model == "" {
		settings.Model = current.Model
	}

	if provider.RequiresAPIKey() {
		key, err := readSecret(cmd, fmt.Sprintf("API key [%s]: ", maskAPIKey(current.APIKey)))
		if err != nil {
			return err
		}
		settings.APIKey = key
		if settings.APIKey == "" {
			settings.APIKey = current.APIKey
		}
	}

	if provider == domain.AIProviderOllama {
		cmd.Printf("Base URL [%s]: ", current.BaseURL)
		input, _ = reader.ReadString('\n')
		if v := strings.TrimSpace(input); v != "" {
			settings.BaseURL = v
		}
	}

	if err := ai.ValidateEmbeddingConfig(settings); err != nil {
		return err
	}

	if err := saveEmbeddingSettings(store, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Embedding provider configured.")
	return nil
}

// readSecret reads an API key without echoing it. Falls back to a plain
// read when stdin is not a terminal (piped input, tests).
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	cmd.Print(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", nil
	}
	return strings.TrimSpace(line), nil
}

// maskAPIKey shows only the last four characters of a key.
func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
