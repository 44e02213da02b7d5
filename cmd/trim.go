package cmd

import (
	"context"
	"log"

	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/config"
	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	trimAccession string
	trimWorkspace string
	trimMate1     string
	trimMate2     string
)

// trimCmd represents the trim command
var trimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Clip adapters and quality-trim one sample's read pair",
	Run: func(cmd *cobra.Command, args []string) {
		p := &pipeline.Pipeline{
			Conf:      config.New(),
			Workspace: trimWorkspace,
		}
		s := &pipeline.Sample{Accession: trimAccession}

		set, err := p.TrimReads(context.Background(), s, pipeline.ReadPair{
			Mate1: trimMate1,
			Mate2: trimMate2,
		})
		if err != nil {
			log.Fatalf("%v", err)
		}

		log.Printf("%d of %d read pairs survived (%.2f%%), paired outputs at %s and %s",
			set.Stats.SurvivingPairs, set.Stats.InputPairs, set.Stats.SurvivalPct,
			set.PairedMate1, set.PairedMate2)
	},
}

func init() {
	rootCmd.AddCommand(trimCmd)

	trimCmd.Flags().StringVarP(&trimAccession, "accession", "A", "", "sequencing run accession")
	trimCmd.Flags().StringVarP(&trimWorkspace, "workspace", "w", ".", "directory for per-sample working files")
	trimCmd.Flags().StringVarP(&trimMate1, "mate1", "1", "", "path to the mate 1 FASTQ")
	trimCmd.Flags().StringVarP(&trimMate2, "mate2", "2", "", "path to the mate 2 FASTQ")

	trimCmd.MarkFlagRequired("accession")
	trimCmd.MarkFlagRequired("mate1")
	trimCmd.MarkFlagRequired("mate2")
}
