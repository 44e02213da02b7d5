package cmd

import (
	"context"
	"log"

	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/config"
	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	alignAccession  string
	alignWorkspace  string
	alignReference  string
	alignAnnotation string
	alignOut        string
	alignIndex      string
	alignMate1      string
	alignMate2      string
)

// alignCmd represents the align command
var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Map one sample's trimmed read pair against the reference index",
	Long: `Map one sample's trimmed read pair against the reference index.

Without --index the index is built from the reference first (or
reused if a bundle already exists under the workspace).`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		p := &pipeline.Pipeline{
			Conf:       config.New(),
			Reference:  alignReference,
			Annotation: alignAnnotation,
			Workspace:  alignWorkspace,
			OutDir:     alignOut,
		}
		s := &pipeline.Sample{Accession: alignAccession}

		index := pipeline.IndexHandle{Prefix: alignIndex}
		if alignIndex == "" {
			if err := p.Prepare(ctx); err != nil {
				log.Fatalf("%v", err)
			}
			index = p.Index()
		} else if err := p.LoadScope(); err != nil {
			log.Fatalf("%v", err)
		}

		aln, err := p.AlignReads(ctx, s, pipeline.TrimSet{
			PairedMate1: alignMate1,
			PairedMate2: alignMate2,
		}, index)
		if err != nil {
			log.Fatalf("%v", err)
		}

		log.Printf("%.2f%% overall alignment rate, SAM at %s", aln.Rate, aln.SAM)
	},
}

func init() {
	rootCmd.AddCommand(alignCmd)

	alignCmd.Flags().StringVarP(&alignAccession, "accession", "A", "", "sequencing run accession")
	alignCmd.Flags().StringVarP(&alignWorkspace, "workspace", "w", ".", "directory for per-sample working files")
	alignCmd.Flags().StringVarP(&alignReference, "reference", "r", "", "path to the reference sequence FASTA")
	alignCmd.Flags().StringVarP(&alignAnnotation, "annotation", "a", "", "path to the GTF feature annotation")
	alignCmd.Flags().StringVarP(&alignOut, "out", "o", "Results", "shared results directory")
	alignCmd.Flags().StringVar(&alignIndex, "index", "", "prefix of a prebuilt index bundle")
	alignCmd.Flags().StringVarP(&alignMate1, "mate1", "1", "", "path to the trimmed, paired mate 1 FASTQ")
	alignCmd.Flags().StringVarP(&alignMate2, "mate2", "2", "", "path to the trimmed, paired mate 2 FASTQ")

	alignCmd.MarkFlagRequired("accession")
	alignCmd.MarkFlagRequired("reference")
	alignCmd.MarkFlagRequired("annotation")
	alignCmd.MarkFlagRequired("mate1")
	alignCmd.MarkFlagRequired("mate2")
}
