package check

import (
	"fmt"

	nagios "github.com/atc0005/go-nagios"

	"github.com/clustermon/check-hdfs/pkg/output"
	"github.com/clustermon/check-hdfs/pkg/report"
	"github.com/clustermon/check-hdfs/pkg/threshold"
)

// NodesCheck alerts when the available datanode count drops below its
// thresholds. Any dead datanode raises the result to at least WARNING even
// when the count itself is acceptable; unlike block corruption this is a
// degraded state, not a data-loss state, so it never escalates to CRITICAL
// on its own.
type NodesCheck struct {
	thresholds threshold.Thresholds
}

func (c *NodesCheck) Name() string { return ModeNodes.String() }

func (c *NodesCheck) Run(s report.ClusterSummary, _ []report.DatanodeRecord) (output.Result, error) {
	status := c.thresholds.Evaluate(float64(s.DatanodesAvailable))
	summary := fmt.Sprintf("%d datanodes available of %d total", s.DatanodesAvailable, s.DatanodesTotal)

	if s.DatanodesDead > 0 {
		if status == output.OK {
			status = output.Warning
		}
		summary = fmt.Sprintf("%d dead datanodes - %s", s.DatanodesDead, summary)
	}

	warn, crit := c.thresholds.Warning.String(), c.thresholds.Critical.String()
	perf := []nagios.PerformanceData{
		output.Perf("datanodes_available", float64(s.DatanodesAvailable), "", warn, crit, "0", ""),
		output.Perf("datanodes_dead", float64(s.DatanodesDead), "", "", "", "0", ""),
		output.Perf("datanodes_total", float64(s.DatanodesTotal), "", "", "", "0", ""),
	}
	return output.Result{Status: status, Summary: summary, Perf: perf}, nil
}
