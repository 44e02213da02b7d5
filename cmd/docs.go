package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsDir string

// docsCmd regenerates the Markdown command documentation. Hidden:
// it is for maintainers, not pipeline users.
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate Markdown documentation for every command",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		if err := os.MkdirAll(docsDir, 0755); err != nil {
			log.Fatalf("failed to create the docs directory: %v", err)
		}
		if err := doc.GenMarkdownTree(rootCmd, docsDir); err != nil {
			log.Fatalf("failed to generate docs: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().StringVar(&docsDir, "dir", "./docs", "directory the Markdown files are written into")
}
