package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
)

var (
	searchCourse string
	searchLesson int
	searchLimit  int
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed course content",
	Long: `Performs semantic search over the indexed course chunks, without the
chat loop. Useful for inspecting what the model would retrieve.

The --course filter is fuzzy: "mcp" matches "Introduction to Model
Context Protocol".`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCourse, "course", "c", "", "restrict results to one course (fuzzy)")
	searchCmd.Flags().IntVarP(&searchLesson, "lesson", "l", -1, "restrict results to one lesson number")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	ctx := cmd.Context()
	if err := ensureRetrieval(ctx); err != nil {
		return err
	}
	defer closeStores()

	opts := domain.SearchOptions{
		CourseName: searchCourse,
		Limit:      searchLimit,
	}
	if searchLesson >= 0 {
		lesson := searchLesson
		opts.LessonNumber = &lesson
	}

	results, err := searchService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		location := results[i].CourseTitle
		if results[i].LessonNumber != nil {
			location = fmt.Sprintf("%s - Lesson %d", location, *results[i].LessonNumber)
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, location, results[i].Score)
		cmd.Printf("      %s\n", snippet(results[i].Content, 160))
		cmd.Println()
	}
	return nil
}

// snippet truncates content to roughly maxLen runes for table display.
func snippet(content string, maxLen int) string {
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	return string(runes[:maxLen]) + "..."
}
