package crawler

import (
	"os"
	"time"

	"github.com/rodaine/table"
)

// logSummary reports the final crawl stats, once, when the loop exits.
func (c *Crawler) logSummary(duration time.Duration) {
	c.log.Info("========================================================================")
	c.log.Info("CRAWL FINISHED")
	c.log.Infof("Duration:    %v", duration)
	c.log.Infof("Final Stats: Visited: %d, Lookups OK: %d, Failures: %d, Max Depth Reached: %d",
		c.stats.Visited, c.stats.Processed, c.stats.Failed, c.stats.MaxDepthReached)
	c.log.Info("========================================================================")

	tbl := table.New("Visited", "Lookups OK", "Failures", "Max depth reached").WithWriter(os.Stderr)
	tbl.AddRow(c.stats.Visited, c.stats.Processed, c.stats.Failed, c.stats.MaxDepthReached)
	tbl.Print()
}
