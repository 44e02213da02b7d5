// Package cmd is for command line interactions with the rnaseq
// pipeline
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// path to an optional YAML settings file
var settingsPath string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "rnaseq",
	Short: `Turn paired-end RNA-Seq samples into gene count tables.
Sequences fasterq-dump, FastQC, Trimmomatic, HISAT2 and featureCounts per sample`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initSettings)

	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "path to a YAML settings file")
}

// initSettings wires viper to the environment and the optional
// settings file before any command runs
func initSettings() {
	viper.SetEnvPrefix("RNASEQ")
	viper.AutomaticEnv()

	if settingsPath != "" {
		viper.SetConfigFile(settingsPath)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("failed to read settings file %s: %v", settingsPath, err)
		}
	}
}
