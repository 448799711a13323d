package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/studyhall-labs/coursechat-cli/internal/logger"
)

var (
	ingestClear bool
	ingestWatch bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Index course scripts into the vector store",
	Long: `Index a course script file or a folder of course scripts.

Documents are split into lessons and overlapping chunks, embedded, and
stored in Qdrant. A course whose title is already indexed is skipped,
so re-running ingest is cheap.

Examples:
  coursechat ingest ./docs            # index every script in a folder
  coursechat ingest ./docs --clear    # rebuild the index from scratch
  coursechat ingest ./docs --watch    # keep indexing as files change
  coursechat ingest course_mcp.txt    # index a single script`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestClear, "clear", false, "clear existing collections before indexing")
	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false, "watch the folder and index new or changed scripts")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	ctx := cmd.Context()
	if err := ensureRetrieval(ctx); err != nil {
		return err
	}
	defer closeStores()

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	if !info.IsDir() {
		if ingestWatch {
			return errors.New("--watch requires a folder, not a file")
		}
		return ingestFile(ctx, cmd, path)
	}

	stats, err := ingestService.AddCourseFolder(ctx, path, ingestClear)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Indexed %d course(s), %d chunk(s)\n", stats.Courses, stats.Chunks)
	if stats.Skipped > 0 {
		cmd.Printf("Skipped %d already-indexed document(s)\n", stats.Skipped)
	}
	if stats.Failures > 0 {
		cmd.Printf("Failed to process %d document(s)\n", stats.Failures)
	}

	if ingestWatch {
		return watchFolder(ctx, cmd, path)
	}
	return nil
}

func ingestFile(ctx context.Context, cmd *cobra.Command, path string) error {
	course, chunks, err := ingestService.AddCourseDocument(ctx, path)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	if chunks == 0 {
		cmd.Printf("Skipped %q: already indexed\n", course.Title)
		return nil
	}
	cmd.Printf("Indexed %q: %d chunk(s)\n", course.Title, chunks)
	return nil
}

// watchFolder re-indexes scripts as they appear or change. Duplicate
// titles are skipped by the ingest service, so a watch loop never
// double-indexes an unchanged course.
func watchFolder(ctx context.Context, cmd *cobra.Command, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for course scripts (Ctrl+C to stop)\n", dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isCourseScript(event.Name) {
				continue
			}
			logger.Debug("change detected: %s", event.Name)
			if err := ingestFile(ctx, cmd, event.Name); err != nil {
				cmd.PrintErrf("warning: %s: %v\n", filepath.Base(event.Name), err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmd.PrintErrf("warning: watcher: %v\n", err)
		}
	}
}

// isCourseScript filters watch events to the extensions ingest accepts.
func isCourseScript(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	default:
		return false
	}
}
