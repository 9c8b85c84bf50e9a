package cmd

import (
	"fmt"
	"io"

	"github.com/sarchlab/cachesim/mem/cache"
)

type reportFormat int

const (
	reportVerbose reportFormat = iota
	reportCompact
)

func parseReportFormat(flag string) (reportFormat, error) {
	switch flag {
	case "0":
		return reportVerbose, nil
	case "1":
		return reportCompact, nil
	default:
		return 0, fmt.Errorf("output flag must be 0 or 1, got %q", flag)
	}
}

// writeReport prints total accesses, hit rate, miss rate, and the
// compulsory, capacity and conflict shares of the misses, in that order.
func writeReport(w io.Writer, stats cache.Statistics, format reportFormat) error {
	if format == reportCompact {
		_, err := fmt.Fprintf(w, "%d %.4f %.4f %.4f %.4f %.4f\n",
			stats.TotalAccesses(),
			stats.HitRate(),
			stats.MissRate(),
			stats.CompulsoryRate(),
			stats.CapacityRate(),
			stats.ConflictRate(),
		)

		return err
	}

	_, err := fmt.Fprintf(w,
		"Total accesses: %d\n"+
			"Hit rate: %.2f%%\n"+
			"Miss rate: %.2f%%\n"+
			"Compulsory miss rate: %.2f%%\n"+
			"Capacity miss rate: %.2f%%\n"+
			"Conflict miss rate: %.2f%%\n",
		stats.TotalAccesses(),
		stats.HitRate()*100,
		stats.MissRate()*100,
		stats.CompulsoryRate()*100,
		stats.CapacityRate()*100,
		stats.ConflictRate()*100,
	)

	return err
}
