package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Check a packet type catalog",
	Long: `Parse the catalog given with --catalog, build the registry and run the
completeness check (every declared expected reply must itself be declared).

Examples:
  aepctl catalog -c catalog.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		runCatalogCommand()
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogCommand() {
	reg := loadRegistry()
	if err := reg.CheckComplete(); err != nil {
		exitWithError("catalog incomplete", err)
	}

	fmt.Printf("OK: %d packet type(s)\n", reg.Len())
	for _, typeID := range reg.Types() {
		s, _ := reg.Get(typeID)
		fmt.Printf("  %-24s required=%d allowed=%d replies=%d\n",
			typeID, len(s.Required), len(s.Allowed), len(s.ExpectedReplies))
	}
}
