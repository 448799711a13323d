package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/studyhall-labs/coursechat-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive terminal chat session over the indexed courses.

Follow-up questions share the session, so the model keeps recent
conversational context.

Controls:
  Enter  - Send question
  Esc    - Quit
  Ctrl+C - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Stack traces from a crashed TUI are otherwise swallowed by the
	// alternate screen.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx := cmd.Context()
	if err := ensureChat(ctx); err != nil {
		return err
	}
	defer closeStores()

	if err := tui.Run(chatService); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}
