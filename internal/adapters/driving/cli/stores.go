package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
)

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "List the available source and output kinds",
	Long: `Lists every registered store kind together with the kind-specific
configuration keys it understands. Keys marked required must be set,
either as flags or in the kind's config table.`,
	Args: cobra.NoArgs,
	RunE: runStores,
}

func init() {
	rootCmd.AddCommand(storesCmd)
}

func runStores(cmd *cobra.Command, _ []string) error {
	if storeCatalog == nil {
		return errors.New("store catalog not configured")
	}

	cmd.Println("Sources:")
	printStoreInfos(cmd, storeCatalog.Sources())
	cmd.Println()
	cmd.Println("Outputs:")
	printStoreInfos(cmd, storeCatalog.Sinks())
	return nil
}

func printStoreInfos(cmd *cobra.Command, infos []driving.StoreInfo) {
	for _, info := range infos {
		cmd.Printf("  %s\n", info.Kind)
		for _, key := range info.ConfigKeys {
			suffix := ""
			if key.Required {
				suffix = " (required)"
			}
			if key.Secret {
				suffix += " (secret)"
			}
			cmd.Printf("    %-14s %s%s\n", key.Key, key.Description, suffix)
		}
	}
}
