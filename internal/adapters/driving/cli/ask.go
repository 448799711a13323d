package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question",
	Long: `Ask a single question about the indexed course materials.

The model decides whether to search the index; answers that used
retrieval list their sources. For a multi-turn conversation use
'coursechat chat' instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureChat(ctx); err != nil {
		return err
	}
	defer closeStores()

	result, err := chatService.Query(ctx, args[0], "")
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	cmd.Println(result.Answer)

	if len(result.Sources) > 0 {
		cmd.Println()
		cmd.Println(color.New(color.Faint).Sprint("Sources:"))
		for _, src := range result.Sources {
			label := src.Label()
			if src.Link != "" {
				label = fmt.Sprintf("%s (%s)", label, src.Link)
			}
			cmd.Printf("  %s %s\n", color.CyanString("•"), label)
		}
	}
	return nil
}
