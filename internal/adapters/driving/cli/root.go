// Package cli implements the coursechat command line interface. Commands
// share a set of lazily wired services; each command builds only what it
// needs, so `version` works without a configured provider while `chat`
// requires the full stack.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/studyhall-labs/coursechat-cli/internal/adapters/driven/ai"
	configfile "github.com/studyhall-labs/coursechat-cli/internal/adapters/driven/config/file"
	"github.com/studyhall-labs/coursechat-cli/internal/adapters/driven/storage/memory"
	"github.com/studyhall-labs/coursechat-cli/internal/adapters/driven/vector/qdrant"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driving"
	"github.com/studyhall-labs/coursechat-cli/internal/core/services"
	"github.com/studyhall-labs/coursechat-cli/internal/logger"
	"github.com/studyhall-labs/coursechat-cli/internal/segmenter"
)

// version is set at build time via ldflags.
var version = "dev"

// Shared services, wired on first use. Tests replace these with mocks.
var (
	configStore   driven.ConfigStore
	searchService driving.SearchService
	ingestService driving.IngestService
	chatService   driving.ChatService
	vectorStore   *qdrant.Store
)

var (
	verboseFlag   bool
	configDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "coursechat",
	Short: "Chat with your course materials",
	Long: `CourseChat indexes course scripts into a vector database and answers
questions about them through a retrieval-backed chat loop.

Typical workflow:
  coursechat auth                 # configure AI providers
  coursechat ingest ./docs        # index course scripts
  coursechat ask "what is MCP?"   # one-shot question
  coursechat chat                 # interactive session`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config", "", "config directory (default ~/.coursechat)")
}

// Execute runs the root command.
func Execute() error {
	// A local .env is a convenience for API keys; absence is not an error.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

// ensureConfigStore opens the TOML config store on first use.
func ensureConfigStore() (driven.ConfigStore, error) {
	if configStore != nil {
		return configStore, nil
	}

	store, err := configfile.NewConfigStore(configDirFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to open config store: %w", err)
	}
	configStore = store
	return configStore, nil
}

// ensureRetrieval wires the embedding provider, the vector store and the
// retrieval-facing services (search, ingest).
func ensureRetrieval(ctx context.Context) error {
	if searchService != nil && ingestService != nil {
		return nil
	}

	store, err := ensureConfigStore()
	if err != nil {
		return err
	}

	embedSettings := loadEmbeddingSettings(store)
	embedder, err := ai.CreateAndValidateEmbeddingService(embedSettings)
	if err != nil {
		return err
	}

	logger.Debug("connecting to qdrant")
	vs, err := qdrant.NewStore(ctx, loadVectorConfig(store), embedder)
	if err != nil {
		return fmt.Errorf("failed to connect to vector store: %w", err)
	}
	vectorStore = vs

	chunking := loadChunkingSettings(store)
	seg := segmenter.New(
		segmenter.WithChunkSize(chunking.Size),
		segmenter.WithOverlap(chunking.Overlap),
	)

	searchService = services.NewSearchService(vs)
	ingestService = services.NewIngestService(seg, vs)
	return nil
}

// ensureChat wires the language model and the tool-calling chat service
// on top of the retrieval stack.
func ensureChat(ctx context.Context) error {
	if chatService != nil {
		return nil
	}

	if err := ensureRetrieval(ctx); err != nil {
		return err
	}

	store, err := ensureConfigStore()
	if err != nil {
		return err
	}

	llmSettings := loadLLMSettings(store)
	llm, err := ai.CreateAndValidateLLMService(llmSettings)
	if err != nil {
		return err
	}

	registry := services.NewToolRegistry()
	registry.Register(services.NewCourseSearchTool(vectorStore, 0))
	registry.Register(services.NewCourseOutlineTool(vectorStore))

	sessions := memory.NewSessionStore(loadSessionSettings(store).MaxHistory)
	chatService = services.NewChatService(llm, registry, sessions, llmSettings)
	return nil
}

// closeStores releases the vector store connection, if one was opened.
func closeStores() {
	if vectorStore != nil {
		if err := vectorStore.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing vector store: %v\n", err)
		}
		vectorStore = nil
	}
}
