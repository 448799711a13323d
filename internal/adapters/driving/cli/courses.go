package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List indexed courses",
	RunE:  runCourses,
}

var outlineCmd = &cobra.Command{
	Use:   "outline [course]",
	Short: "Show a course outline",
	Long: `Show the lesson list for one course. The course reference is fuzzy:
"mcp" finds "Introduction to Model Context Protocol".`,
	Args: cobra.ExactArgs(1),
	RunE: runOutline,
}

func init() {
	coursesCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(coursesCmd)
}

func runCourses(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := ensureRetrieval(ctx); err != nil {
		return err
	}
	defer closeStores()

	summaries, err := ingestService.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to list courses: %w", err)
	}

	if len(summaries) == 0 {
		cmd.Println("No courses indexed.")
		cmd.Println("Add some with: coursechat ingest <folder>")
		return nil
	}

	cmd.Println("Indexed courses:")
	cmd.Println()
	for i := range summaries {
		printCourseSummary(cmd, &summaries[i])
	}
	return nil
}

func runOutline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureRetrieval(ctx); err != nil {
		return err
	}
	defer closeStores()

	summary, err := searchService.Outline(ctx, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			cmd.Printf("No course matching '%s' found.\n", args[0])
			return nil
		}
		return fmt.Errorf("failed to fetch outline: %w", err)
	}

	cmd.Printf("%s\n", summary.Title)
	if summary.Instructor != "" {
		cmd.Printf("Instructor: %s\n", summary.Instructor)
	}
	if summary.Link != "" {
		cmd.Printf("Link: %s\n", summary.Link)
	}
	cmd.Println()
	for _, lesson := range summary.Lessons {
		cmd.Printf("  Lesson %d: %s\n", lesson.Number, lesson.Title)
	}
	return nil
}

func printCourseSummary(cmd *cobra.Command, s *domain.CourseSummary) {
	cmd.Printf("  %s\n", s.Title)
	if s.Instructor != "" {
		cmd.Printf("    Instructor: %s\n", s.Instructor)
	}
	cmd.Printf("    Lessons: %d\n", s.LessonCount)
	if s.Link != "" {
		cmd.Printf("    Link: %s\n", s.Link)
	}
	cmd.Println()
}
