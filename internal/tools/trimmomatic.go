package tools

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// TrimJob describes one Trimmomatic PE invocation: the input mate
// pair, the four output files, the clip rule files and the quality
// trimming parameters.
type TrimJob struct {
	// input mates
	Mate1, Mate2 string

	// paired and unpaired outputs per mate
	PairedMate1, UnpairedMate1 string
	PairedMate2, UnpairedMate2 string

	// adapter/contaminant FASTA files, each becomes an ILLUMINACLIP step
	ClipFiles []string

	// ILLUMINACLIP thresholds
	SeedMismatches      int
	PalindromeThreshold int
	SimpleThreshold     int

	// quality trimming rules, applied in this order
	HeadCrop        int
	WindowSize      int
	WindowQuality   int
	TrailingQuality int
	MinLength       int

	// worker threads
	Threads int
}

// TrimStats is the read survival accounting Trimmomatic reports on
// stderr after a PE run
type TrimStats struct {
	// read pairs in the input
	InputPairs int

	// pairs where both mates survived trimming
	SurvivingPairs int

	// SurvivingPairs as a percentage of InputPairs
	SurvivalPct float64
}

// matches "Input Read Pairs: 1000 Both Surviving: 950 (95.00%)"
var survivalRegexp = regexp.MustCompile(`Input Read Pairs: (\d+) Both Surviving: (\d+) \(([\d.]+)%\)`)

// Trim runs Trimmomatic in paired-end mode and returns the survival
// stats parsed from its stderr
func Trim(ctx context.Context, exe string, job TrimJob) (TrimStats, error) {
	args := []string{
		"PE",
		"-threads", strconv.Itoa(job.Threads),
		job.Mate1, job.Mate2,
		job.PairedMate1, job.UnpairedMate1,
		job.PairedMate2, job.UnpairedMate2,
	}

	for _, clip := range job.ClipFiles {
		args = append(args, fmt.Sprintf(
			"ILLUMINACLIP:%s:%d:%d:%d",
			clip, job.SeedMismatches, job.PalindromeThreshold, job.SimpleThreshold,
		))
	}

	args = append(args,
		fmt.Sprintf("HEADCROP:%d", job.HeadCrop),
		fmt.Sprintf("SLIDINGWINDOW:%d:%d", job.WindowSize, job.WindowQuality),
		fmt.Sprintf("TRAILING:%d", job.TrailingQuality),
		fmt.Sprintf("MINLEN:%d", job.MinLength),
	)

	stderr, err := run(ctx, exe, args...)
	if err != nil {
		return TrimStats{}, err
	}

	return ParseSurvival(stderr)
}

// ParseSurvival extracts the pair survival counts from Trimmomatic's
// stderr output
func ParseSurvival(stderr string) (TrimStats, error) {
	m := survivalRegexp.FindStringSubmatch(stderr)
	if m == nil {
		return TrimStats{}, fmt.Errorf("failed to find a survival summary in trimmer output")
	}

	input, _ := strconv.Atoi(m[1])
	surviving, _ := strconv.Atoi(m[2])
	pct, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return TrimStats{}, fmt.Errorf("failed to parse survival percentage %q: %v", m[3], err)
	}

	return TrimStats{
		InputPairs:     input,
		SurvivingPairs: surviving,
		SurvivalPct:    pct,
	}, nil
}
