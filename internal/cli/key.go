package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cleanos-ai/cleanos/internal/cli/prompts"
	"github.com/cleanos-ai/cleanos/internal/providers"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage AI provider API keys",
	Long: `Manage AI provider API keys. Keys are stored in the local database and
take precedence over keys from the environment.`,
}

var keySetCmd = &cobra.Command{
	Use:   "set [provider] [key]",
	Short: "Store an API key and test it",
	Long: `Store an API key for a provider and test the connection. Missing
arguments are asked for interactively.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runKeySet,
}

var keyDeleteCmd = &cobra.Command{
	Use:     "delete <provider>",
	Aliases: []string{"rm"},
	Short:   "Delete a stored API key",
	Args:    cobra.ExactArgs(1),
	RunE:    runKeyDelete,
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which providers have a key",
	Args:  cobra.NoArgs,
	RunE:  runKeyStatus,
}

var keyYes bool

func init() {
	keyDeleteCmd.Flags().BoolVarP(&keyYes, "yes", "y", false, "Skip the confirmation prompt")
	keyCmd.AddCommand(keySetCmd, keyDeleteCmd, keyStatusCmd)
}

// interactive reports whether prompts can be shown. Tests replace it.
var interactive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func runKeySet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	if id == "" {
		if !interactive() {
			return trackCLIError("key set", fmt.Errorf("provider is required"))
		}
		picked, err := prompts.RunProviderSelector(providers.Providers())
		if err != nil {
			return trackCLIError("key set", err)
		}
		id = picked
	}

	def, ok := providers.Lookup(id)
	if !ok {
		return trackCLIError("key set", fmt.Errorf("unknown provider: %s", id))
	}

	key := ""
	if len(args) > 1 {
		key = args[1]
	}
	if key == "" {
		if !interactive() {
			return trackCLIError("key set", fmt.Errorf("key is required"))
		}
		entered, err := prompts.RunKeyInput(def)
		if err != nil {
			return trackCLIError("key set", err)
		}
		key = entered
	}
	if err := prompts.ValidateKey(key); err != nil {
		return trackCLIError("key set", err)
	}

	return withEnv(ctx, "key set", func(e *env) error {
		if err := e.app.StoreKey(ctx, def.ID, key); err != nil {
			return err
		}
		telemetryClient.TrackProviderKeyChanged(def.ID, true)
		_, _ = fmt.Fprintln(out, okStyle.Render("✓ Stored "+def.Name+" key"))

		if err := e.app.TestProvider(ctx, def.ID); err != nil {
			_, _ = fmt.Fprintln(out, warnStyle.Render("⚠ Connection test failed: "+err.Error()))
			return nil
		}
		_, _ = fmt.Fprintln(out, okStyle.Render("✓ Connected"))
		return nil
	})
}

func runKeyDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	def, ok := providers.Lookup(args[0])
	if !ok {
		return trackCLIError("key delete", fmt.Errorf("unknown provider: %s", args[0]))
	}
	if !keyYes && interactive() {
		confirmed, err := prompts.Confirm("Delete the stored " + def.Name + " key?")
		if err != nil {
			return trackCLIError("key delete", err)
		}
		if !confirmed {
			_, _ = fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	return withEnv(ctx, "key delete", func(e *env) error {
		if err := e.app.DeleteKey(ctx, def.ID); err != nil {
			return err
		}
		telemetryClient.TrackProviderKeyChanged(def.ID, false)
		_, _ = fmt.Fprintln(out, okStyle.Render("✓ Deleted "+def.Name+" key"))
		return nil
	})
}

func runKeyStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withEnv(ctx, "key status", func(e *env) error {
		heading(out, "API KEYS")
		for _, def := range providers.Providers() {
			ok, err := e.app.Gateway.HasAPIKey(ctx, def.ID)
			state := mutedStyle.Render("not set")
			switch {
			case err != nil:
				state = errorStyle.Render(err.Error())
			case ok:
				state = okStyle.Render("set")
			}
			_, _ = fmt.Fprintf(out, "  %-12s %s\n", def.ID, state)
		}
		return nil
	})
}
