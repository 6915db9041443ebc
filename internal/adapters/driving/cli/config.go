package cli

import (
	"bufio"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored defaults",
	Long: `View and edit the config file supplying defaults for run flags.

Keys use dot notation: source.text_column, output.if_exists,
cassandra.keyspace. Kind-specific options live under the kind's own
table, e.g. github-issues.token.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored defaults",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one stored value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a default value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Store the GitHub token without echoing it",
	RunE:  runConfigToken,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configTokenCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	keys := configStore.Keys()
	if len(keys) == 0 {
		cmd.Printf("No defaults stored in %s\n", configStore.Path())
		return nil
	}

	cmd.Printf("Defaults from %s\n\n", configStore.Path())
	for _, key := range keys {
		value, _ := configStore.Get(key)
		cmd.Printf("  %-24s %v\n", key, maskSecret(key, value))
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return errors.New("key not set: " + args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if err := configStore.Set(args[0], parseConfigValue(args[1])); err != nil {
		return err
	}
	cmd.Printf("Stored %s\n", args[0])
	return nil
}

func runConfigToken(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Print("Enter GitHub token: ")
	token := readPassword()
	cmd.Println()
	if token == "" {
		return errors.New("no token entered")
	}

	if err := configStore.Set("github.token", token); err != nil {
		return err
	}
	cmd.Println("Token stored.")
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println(configStore.Path())
	return nil
}

// parseConfigValue keeps booleans and integers typed so TOML round
// trips them, everything else stays a string.
func parseConfigValue(raw string) any {
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo first
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(key string, value any) any {
	lower := strings.ToLower(key)
	if !strings.Contains(lower, "token") && !strings.Contains(lower, "password") && !strings.Contains(lower, "api_key") {
		return value
	}
	s, ok := value.(string)
	if !ok {
		return "****"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
