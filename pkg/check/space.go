package check

import (
	"fmt"
	"strconv"

	nagios "github.com/atc0005/go-nagios"

	"github.com/clustermon/check-hdfs/pkg/output"
	"github.com/clustermon/check-hdfs/pkg/report"
	"github.com/clustermon/check-hdfs/pkg/threshold"
)

// SpaceCheck alerts when the cluster-wide DFS used percentage crosses its
// thresholds.
type SpaceCheck struct {
	thresholds threshold.Thresholds
}

func (c *SpaceCheck) Name() string { return ModeSpace.String() }

func (c *SpaceCheck) Run(s report.ClusterSummary, _ []report.DatanodeRecord) (output.Result, error) {
	status := c.thresholds.Evaluate(s.UsedPercent)
	summary := fmt.Sprintf("%.2f%% HDFS space used (%s of %s) on %d available datanodes",
		s.UsedPercent, s.UsedHuman, s.ConfiguredCapacityHuman, s.DatanodesAvailable)

	warn, crit := c.thresholds.Warning.String(), c.thresholds.Critical.String()
	perf := []nagios.PerformanceData{
		output.Perf("dfs_used_pc", s.UsedPercent, "%", warn, crit, "0", "100"),
		output.Perf("dfs_used", float64(s.Used), "B", "", "", "0", strconv.FormatInt(s.ConfiguredCapacity, 10)),
		output.Perf("present_capacity", float64(s.PresentCapacity), "B", "", "", "", ""),
		output.Perf("configured_capacity", float64(s.ConfiguredCapacity), "B", "", "", "", ""),
		output.Perf("datanodes_available", float64(s.DatanodesAvailable), "", "", "", "", ""),
	}
	return output.Result{Status: status, Summary: summary, Perf: perf}, nil
}
