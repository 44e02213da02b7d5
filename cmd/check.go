package cmd

import (
	"log"
	"os"

	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/config"
	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/internal/tools"
	"github.com/spf13/cobra"
)

var (
	checkReference  string
	checkAnnotation string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the external tools and reference inputs before a run",
	Run: func(cmd *cobra.Command, args []string) {
		c := config.New()

		failed := false
		missing := tools.Available(
			c.Tools.FasterqDump,
			c.Tools.FastQC,
			c.Tools.Trimmomatic,
			c.Tools.Hisat2Build,
			c.Tools.Hisat2,
			c.Tools.FeatureCounts,
		)
		for _, err := range missing {
			log.Printf("%v", err)
			failed = true
		}

		for _, input := range []string{checkReference, checkAnnotation} {
			if input == "" {
				continue
			}
			if _, err := os.Stat(input); err != nil {
				log.Printf("failed to find %s: %v", input, err)
				failed = true
			}
		}

		if failed {
			os.Exit(1)
		}
		log.Println("all tools and inputs found")
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkReference, "reference", "r", "", "path to the reference sequence FASTA")
	checkCmd.Flags().StringVarP(&checkAnnotation, "annotation", "a", "", "path to the GTF feature annotation")
}
