package cmd

import (
	"context"
	"log"

	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/config"
	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	qcAccession string
	qcWorkspace string
	qcLabel     string
)

// qcCmd represents the qc command
var qcCmd = &cobra.Command{
	Use:   "qc [fastq files]",
	Short: "Produce quality reports for one sample's FASTQ files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := &pipeline.Pipeline{
			Conf:      config.New(),
			Workspace: qcWorkspace,
		}
		s := &pipeline.Sample{Accession: qcAccession}

		// QC is observational, failures are logged inside
		p.QCReport(context.Background(), s, qcLabel, args...)
		log.Printf("QC reports written under %s", qcLabel)
	},
}

func init() {
	rootCmd.AddCommand(qcCmd)

	qcCmd.Flags().StringVarP(&qcAccession, "accession", "A", "", "sequencing run accession")
	qcCmd.Flags().StringVarP(&qcWorkspace, "workspace", "w", ".", "directory for per-sample working files")
	qcCmd.Flags().StringVar(&qcLabel, "label", "qc_raw", "QC report subdirectory name (eg qc_raw, qc_trimmed)")

	qcCmd.MarkFlagRequired("accession")
}
