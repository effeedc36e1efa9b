package check

import (
	"fmt"

	nagios "github.com/atc0005/go-nagios"

	"github.com/clustermon/check-hdfs/pkg/output"
	"github.com/clustermon/check-hdfs/pkg/report"
	"github.com/clustermon/check-hdfs/pkg/threshold"
)

// ReplicationCheck alerts when under-replicated blocks cross their
// thresholds. Corrupt or missing blocks escalate to CRITICAL no matter what
// the thresholds say; there is no configuration under which losing block
// replicas is acceptable.
type ReplicationCheck struct {
	thresholds threshold.Thresholds
}

func (c *ReplicationCheck) Name() string { return ModeReplication.String() }

func (c *ReplicationCheck) Run(s report.ClusterSummary, _ []report.DatanodeRecord) (output.Result, error) {
	status := c.thresholds.Evaluate(float64(s.UnderReplicatedBlocks))
	summary := fmt.Sprintf("%d under-replicated blocks", s.UnderReplicatedBlocks)

	if s.CorruptBlocks > 0 || s.MissingBlocks > 0 {
		status = output.Critical
		summary = fmt.Sprintf("%d corrupt blocks, %d missing blocks - %s",
			s.CorruptBlocks, s.MissingBlocks, summary)
	}

	warn, crit := c.thresholds.Warning.String(), c.thresholds.Critical.String()
	perf := []nagios.PerformanceData{
		output.Perf("under_replicated_blocks", float64(s.UnderReplicatedBlocks), "", warn, crit, "0", ""),
		output.Perf("corrupt_blocks", float64(s.CorruptBlocks), "", "", "", "0", ""),
		output.Perf("missing_blocks", float64(s.MissingBlocks), "", "", "", "0", ""),
	}
	return output.Result{Status: status, Summary: summary, Perf: perf}, nil
}
