package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catalog-sync",
	Short: "Catalog-sync CLI tool",
	Long:  `Catalog-sync generates Backstage catalog descriptors for the repositories of a GitHub organization and registers them with a developer portal.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(logo)
		_ = cmd.Usage()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
