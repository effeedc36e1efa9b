package check

import (
	"fmt"
	"math"
	"sort"
	"strings"

	nagios "github.com/atc0005/go-nagios"

	"github.com/clustermon/check-hdfs/pkg/output"
	"github.com/clustermon/check-hdfs/pkg/report"
	"github.com/clustermon/check-hdfs/pkg/threshold"
)

// BalanceCheck compares each live datanode's used percentage against the
// cluster-wide figure and alerts on the worst deviation. Dead datanodes are
// excluded; the namenode reports them with zero configured capacity and a
// meaningless used percentage.
type BalanceCheck struct {
	thresholds threshold.Thresholds
}

func (c *BalanceCheck) Name() string { return ModeBalance.String() }

type nodeImbalance struct {
	name  string
	value float64
}

func (c *BalanceCheck) Run(s report.ClusterSummary, nodes []report.DatanodeRecord) (output.Result, error) {
	live := make([]report.DatanodeRecord, 0, len(nodes))
	for _, n := range nodes {
		if !n.Dead {
			live = append(live, n)
		}
	}
	if int64(len(live)) != s.DatanodesAvailable {
		return output.Result{}, fmt.Errorf("internal: parsed %d live datanodes but report declares %d available",
			len(live), s.DatanodesAvailable)
	}

	var (
		max        float64
		imbalances = make([]nodeImbalance, 0, len(live))
	)
	for _, n := range live {
		if n.UsedPercent == nil {
			return output.Result{}, fmt.Errorf("internal: datanode %s has no used percentage recorded", n.Name)
		}
		d := math.Abs(s.UsedPercent - *n.UsedPercent)
		imbalances = append(imbalances, nodeImbalance{name: n.Name, value: d})
		if d > max {
			max = d
		}
	}

	status := c.thresholds.Evaluate(max)
	summary := fmt.Sprintf("%.2f%% max imbalance of HDFS space used across %d datanodes", max, len(live))
	if status != output.OK {
		// name every node past the warning bound, not just the worst one
		offenders := make([]string, 0, len(imbalances))
		for _, im := range imbalances {
			if im.value >= c.thresholds.Warning.Upper() {
				offenders = append(offenders, fmt.Sprintf("%s(%.2f%%)", im.name, im.value))
			}
		}
		sort.Strings(offenders)
		summary += fmt.Sprintf(" [%s]", strings.Join(offenders, ","))
	}

	warn, crit := c.thresholds.Warning.String(), c.thresholds.Critical.String()
	perf := []nagios.PerformanceData{
		output.Perf("max_imbalance", max, "%", warn, crit, "0", ""),
	}
	return output.Result{Status: status, Summary: summary, Perf: perf}, nil
}
