package cmd

import (
	"context"
	"log"

	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/config"
	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	extractAccession string
	extractArchive   string
	extractWorkspace string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Convert one sample's SRA archive into paired FASTQ files",
	Run: func(cmd *cobra.Command, args []string) {
		p := &pipeline.Pipeline{
			Conf:      config.New(),
			Workspace: extractWorkspace,
		}
		s := &pipeline.Sample{
			Accession: extractAccession,
			Archive:   extractArchive,
		}

		pair, err := p.Extract(context.Background(), s)
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("extracted %s and %s", pair.Mate1, pair.Mate2)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractAccession, "accession", "A", "", "sequencing run accession")
	extractCmd.Flags().StringVar(&extractArchive, "archive", "", "path to the .sra archive (default <workspace>/sra/<accession>.sra)")
	extractCmd.Flags().StringVarP(&extractWorkspace, "workspace", "w", ".", "directory for per-sample working files")

	extractCmd.MarkFlagRequired("accession")
}
