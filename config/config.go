// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"runtime"

	"github.com/spf13/viper"
)

// ToolConfig holds the executable names (or absolute paths) of the
// external programs the pipeline shells out to. Defaults assume the
// tools are on PATH.
type ToolConfig struct {
	// the SRA read extractor
	FasterqDump string `mapstructure:"fasterq-dump"`

	// the per-FASTQ quality reporter
	FastQC string `mapstructure:"fastqc"`

	// the paired-end read trimmer
	Trimmomatic string `mapstructure:"trimmomatic"`

	// the splice-aware index builder
	Hisat2Build string `mapstructure:"hisat2-build"`

	// the splice-aware aligner
	Hisat2 string `mapstructure:"hisat2"`

	// the exon-level read counter
	FeatureCounts string `mapstructure:"featurecounts"`
}

// TrimConfig is the Trimmomatic rule set applied to every sample
type TrimConfig struct {
	// path to a stock adapter FASTA (ILLUMINACLIP), empty to rely
	// only on the generated synthetic adapter file
	Adapters string `mapstructure:"adapters"`

	// ILLUMINACLIP seed mismatch tolerance
	SeedMismatches int `mapstructure:"seed-mismatches"`

	// ILLUMINACLIP palindrome clip threshold
	PalindromeThreshold int `mapstructure:"palindrome-threshold"`

	// ILLUMINACLIP simple clip threshold
	SimpleThreshold int `mapstructure:"simple-threshold"`

	// bases cropped from the start of every read
	HeadCrop int `mapstructure:"head-crop"`

	// sliding window width in bases
	WindowSize int `mapstructure:"window-size"`

	// mean quality a window must keep to survive
	WindowQuality int `mapstructure:"window-quality"`

	// trailing base quality cutoff
	TrailingQuality int `mapstructure:"trailing-quality"`

	// reads shorter than this after trimming are dropped
	MinLength int `mapstructure:"min-length"`
}

// AlignConfig is settings for the alignment stage
type AlignConfig struct {
	// threads passed to the aligner per sample
	Threads int `mapstructure:"threads"`
}

// QuantConfig is settings for the read counting stage
type QuantConfig struct {
	// annotation rows counted against (eg "exon")
	FeatureType string `mapstructure:"feature-type"`

	// annotation attribute reads are grouped by (eg "gene_id")
	GroupAttr string `mapstructure:"group-attr"`

	// count fragments rather than individual reads
	Paired bool `mapstructure:"paired"`

	// threads passed to the counter
	Threads int `mapstructure:"threads"`
}

// Config is the root-level settings struct and is a mix of settings
// available in a settings.yaml file, environment variables with an
// RNASEQ_ prefix, and command line arguments
type Config struct {
	// external executables
	Tools ToolConfig `mapstructure:"tools"`

	// trimming rules
	Trim TrimConfig `mapstructure:"trim"`

	// alignment settings
	Align AlignConfig `mapstructure:"align"`

	// quantification settings
	Quant QuantConfig `mapstructure:"quant"`
}

// New returns a new Config struct populated by Viper settings
// (either from a settings file) and/or command line arguments
func New() Config {
	setDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into config: %v", err)
	}

	return c
}

// setDefaults registers the pipeline defaults with viper so a bare
// run works when the tools are on PATH
func setDefaults() {
	viper.SetDefault("tools.fasterq-dump", "fasterq-dump")
	viper.SetDefault("tools.fastqc", "fastqc")
	viper.SetDefault("tools.trimmomatic", "trimmomatic")
	viper.SetDefault("tools.hisat2-build", "hisat2-build")
	viper.SetDefault("tools.hisat2", "hisat2")
	viper.SetDefault("tools.featurecounts", "featureCounts")

	viper.SetDefault("trim.adapters", "")
	viper.SetDefault("trim.seed-mismatches", 2)
	viper.SetDefault("trim.palindrome-threshold", 30)
	viper.SetDefault("trim.simple-threshold", 10)
	viper.SetDefault("trim.head-crop", 11)
	viper.SetDefault("trim.window-size", 4)
	viper.SetDefault("trim.window-quality", 20)
	viper.SetDefault("trim.trailing-quality", 10)
	viper.SetDefault("trim.min-length", 20)

	viper.SetDefault("align.threads", runtime.NumCPU())

	viper.SetDefault("quant.feature-type", "exon")
	viper.SetDefault("quant.group-attr", "gene_id")
	viper.SetDefault("quant.paired", true)
	viper.SetDefault("quant.threads", runtime.NumCPU())
}
