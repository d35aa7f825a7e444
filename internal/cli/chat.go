package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/tui/views"
)

var (
	chatProvider string
	chatModel    string
	chatWidth    int
	chatStream   bool
)

var chatCmd = &cobra.Command{
	Use:   "chat <message...>",
	Short: "Ask the active AI provider a one-off question",
	Long: `Ask the active AI provider a one-off question and print the reply
rendered as markdown.

Examples:
  cleanos chat "what usually fills ~/Library/Caches?"
  cleanos chat --provider openai --model gpt-4o-mini "is it safe to clear the npm cache?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatProvider, "provider", "p", "", "Provider to ask (default: the active provider)")
	chatCmd.Flags().StringVarP(&chatModel, "model", "m", "", "Model to use (default: the provider's model)")
	chatCmd.Flags().IntVar(&chatWidth, "width", 100, "Wrap width for the reply")
	chatCmd.Flags().BoolVar(&chatStream, "stream", false, "Print the reply as it arrives, without markdown rendering")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" {
		return trackCLIError("chat", fmt.Errorf("message is empty"))
	}

	return withEnv(ctx, "chat", func(e *env) error {
		st := e.app.Store.Snapshot()
		provider := chatProvider
		if provider == "" {
			provider = st.ActiveProviderID()
		}
		if provider == "" {
			return fmt.Errorf("no active provider: add a key with \"cleanos key set\"")
		}
		model := chatModel
		if model == "" {
			if status, ok := st.Provider(provider); ok {
				model = status.Model
			}
		}

		req := gateway.ChatRequest{Provider: provider, Model: model, Message: message}
		if chatStream && e.backend != nil {
			_, err := e.backend.ChatStream(ctx, req, func(text string) {
				_, _ = fmt.Fprint(out, text)
			})
			_, _ = fmt.Fprintln(out)
			telemetryClient.TrackChatSent(provider, err == nil)
			if err != nil {
				return fmt.Errorf("%s: %s", provider, gateway.Message(err))
			}
			return nil
		}

		reply, err := e.app.Gateway.Chat(ctx, req)
		telemetryClient.TrackChatSent(provider, err == nil)
		if err != nil {
			return fmt.Errorf("%s: %s", provider, gateway.Message(err))
		}

		_, _ = fmt.Fprintln(out, strings.Join(views.RenderMarkdown(reply, chatWidth, st.DarkPalette), "\n"))
		return nil
	})
}
