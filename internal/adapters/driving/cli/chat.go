package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the assistant",
	Long: `Chat with the immigration assistant.

With a message, prints one reply. Without one, opens the interactive chat on
a terminal, or reads one message per line from standard input.

In the interactive chat, type /upload <file.pdf> to attach a document and
then ask questions about it.`,
	RunE: runChat,
}

// runChatTUI runs the interactive chat, replaced in tests.
var runChatTUI = tui.RunChat

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}
	if err := requireDocumentServices(); err != nil {
		return err
	}

	ctx := cmd.Context()
	lang, err := language(ctx)
	if err != nil {
		return err
	}
	sid, err := currentSession(ctx)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		return replyOnce(cmd, sid, lang, strings.Join(args, " "))
	}

	if isTerminal() {
		return runChatTUI(ctx, tui.NewPorts(chatService, assistantService), sid, lang)
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		line, err := reader.ReadString('\n')
		if text := strings.TrimSpace(line); text != "" {
			if replyErr := replyOnce(cmd, sid, lang, text); replyErr != nil {
				return replyErr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}
}

func replyOnce(cmd *cobra.Command, sessionID, lang, message string) error {
	reply, err := chatService.Reply(cmd.Context(), sessionID, lang, message)
	if err != nil {
		return fmt.Errorf("failed to get reply: %w", err)
	}
	cmd.Println(reply)
	return nil
}
