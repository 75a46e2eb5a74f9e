package main

import (
	"fmt"
	"strconv"

	"pagesync/internal/config"
	"pagesync/internal/pipeline"
)

// pipelineOptions merges the command-line threshold override with configured
// alignment settings. A negative threshold means "use the config value".
func pipelineOptions(cfg *config.Config, thresholdFlag int) pipeline.Options {
	threshold := cfg.Align.Threshold
	if thresholdFlag >= 0 {
		threshold = thresholdFlag
	}
	return pipeline.Options{
		Threshold: threshold,
		HashSize:  cfg.Align.HashSize,
		Workers:   cfg.Align.Workers,
	}
}

func formatDistance(distance *int) string {
	if distance == nil {
		return "-"
	}
	return strconv.Itoa(*distance)
}

func formatAvg(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}

// truncateName shortens long page filenames for table display.
func truncateName(name string, limit int) string {
	if name == "" {
		return "---"
	}
	if len(name) <= limit {
		return name
	}
	return name[:limit-2] + ".."
}
