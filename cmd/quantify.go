package cmd

import (
	"context"
	"log"

	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/config"
	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	quantAccession  string
	quantWorkspace  string
	quantReference  string
	quantAnnotation string
	quantOut        string
	quantSAM        string
)

// quantifyCmd represents the quantify command
var quantifyCmd = &cobra.Command{
	Use:   "quantify",
	Short: "Count reads per gene for one sample's alignment and reformat the table",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		p := &pipeline.Pipeline{
			Conf:       config.New(),
			Reference:  quantReference,
			Annotation: quantAnnotation,
			Workspace:  quantWorkspace,
			OutDir:     quantOut,
		}
		s := &pipeline.Sample{Accession: quantAccession}

		// the gene inventory backs the reformat checks
		if err := p.LoadScope(); err != nil {
			log.Fatalf("%v", err)
		}

		raw, err := p.Quantify(ctx, s, pipeline.Alignment{SAM: quantSAM})
		if err != nil {
			log.Fatalf("%v", err)
		}

		table, err := p.Reformat(s, raw)
		if err != nil {
			log.Fatalf("%v", err)
		}

		log.Printf("%d reads assigned across %d genes, table at %s",
			table.Assigned, table.Genes, table.Path)
	},
}

func init() {
	rootCmd.AddCommand(quantifyCmd)

	quantifyCmd.Flags().StringVarP(&quantAccession, "accession", "A", "", "sequencing run accession")
	quantifyCmd.Flags().StringVarP(&quantWorkspace, "workspace", "w", ".", "directory for per-sample working files")
	quantifyCmd.Flags().StringVarP(&quantReference, "reference", "r", "", "path to the reference sequence FASTA")
	quantifyCmd.Flags().StringVarP(&quantAnnotation, "annotation", "a", "", "path to the GTF feature annotation")
	quantifyCmd.Flags().StringVarP(&quantOut, "out", "o", "Results", "shared results directory")
	quantifyCmd.Flags().StringVar(&quantSAM, "sam", "", "path to the sample's SAM alignment artifact")

	quantifyCmd.MarkFlagRequired("accession")
	quantifyCmd.MarkFlagRequired("reference")
	quantifyCmd.MarkFlagRequired("annotation")
	quantifyCmd.MarkFlagRequired("sam")
}
