package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// secretFromTerminal as a value makes settings set prompt for it.
const secretFromTerminal = "-"

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings. Settings are stored in ~/.grokpedia/config.toml
unless --config names another file. Environment variables such as
OPENAI_API_KEY and GROKPEDIA_DATABASE_URL override stored values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Stores one setting after validating the result.

Pass "-" as the value to type a secret without echoing it, for example:
  grokpedia settings set llm.api_key -`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check connectivity to the configured AI providers",
	Args:  cobra.NoArgs,
	RunE:  runSettingsCheck,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsCheckCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	values, err := settingsService.Values()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")

	group := ""
	for _, v := range values {
		section, _, _ := strings.Cut(v.Key, ".")
		if section != group {
			group = section
			cmd.Println()
			cmd.Printf("[%s]\n", section)
		}
		value := v.Value
		switch {
		case value == "":
			value = "(not set)"
		case v.Secret:
			value = maskAPIKey(value)
		}
		cmd.Printf("  %-36s %s\n", v.Key, value)
	}
	cmd.Println()

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		cmd.Printf("%s %v\n", color.New(color.FgYellow).Sprint("Warning:"), err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if value == secretFromTerminal {
		cmd.Printf("Enter value for %s: ", key)
		value = readPassword()
		cmd.Println()
		if value == "" {
			return errors.New("no value entered")
		}
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

func runSettingsCheck(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	ctx := commandContext(cmd)
	ok := color.New(color.FgGreen).Sprint("ok")
	failed := false

	if err := settingsService.ValidateEmbeddingConfig(ctx); err != nil {
		cmd.Printf("  Embedding: %s\n", color.New(color.FgRed).Sprint(err))
		failed = true
	} else {
		cmd.Printf("  Embedding: %s\n", ok)
	}

	if err := settingsService.ValidateLLMConfig(ctx); err != nil {
		cmd.Printf("  LLM:       %s\n", color.New(color.FgRed).Sprint(err))
		failed = true
	} else {
		cmd.Printf("  LLM:       %s\n", ok)
	}

	if failed {
		return errors.New("provider check failed")
	}
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
