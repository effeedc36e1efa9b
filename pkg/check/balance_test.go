package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clustermon/check-hdfs/pkg/output"
	"github.com/clustermon/check-hdfs/pkg/report"
)

func TestBalanceCheck(t *testing.T) {
	// cluster at 50%, nodes at 55/45/70 -> imbalances 5/5/20, max 20
	chk := &BalanceCheck{thresholds: upperThresholds(t, "15", "30")}
	s := baseSummary()
	s.UsedPercent = 50
	nodes := []report.DatanodeRecord{
		{Name: "A", UsedPercent: pct(55)},
		{Name: "B", UsedPercent: pct(45)},
		{Name: "C", UsedPercent: pct(70)},
	}

	res, err := chk.Run(s, nodes)
	require.NoError(t, err)
	assert.Equal(t, output.Warning, res.Status)
	assert.Contains(t, res.Summary, "20.00% max imbalance")
	// only C crossed the warning bound; A and B stay out of the list
	assert.Contains(t, res.Summary, "[C(20.00%)]")
	assert.NotContains(t, res.Summary, "A(")
	assert.NotContains(t, res.Summary, "B(")
}

func TestBalanceCheckListsEveryOffender(t *testing.T) {
	chk := &BalanceCheck{thresholds: upperThresholds(t, "15", "30")}
	s := baseSummary()
	s.UsedPercent = 50
	s.DatanodesAvailable = 4
	nodes := []report.DatanodeRecord{
		{Name: "D", UsedPercent: pct(85)},
		{Name: "A", UsedPercent: pct(55)},
		{Name: "B", UsedPercent: pct(32)},
		{Name: "C", UsedPercent: pct(70)},
	}

	res, err := chk.Run(s, nodes)
	require.NoError(t, err)
	assert.Equal(t, output.Critical, res.Status)
	// all nodes past the warning bound, sorted by name, not just the max
	assert.Contains(t, res.Summary, "[B(18.00%),C(20.00%),D(35.00%)]")
}

func TestBalanceCheckOK(t *testing.T) {
	chk := &BalanceCheck{thresholds: upperThresholds(t, "15", "30")}
	s := baseSummary()
	s.UsedPercent = 50
	nodes := []report.DatanodeRecord{
		{Name: "A", UsedPercent: pct(51)},
		{Name: "B", UsedPercent: pct(49)},
		{Name: "C", UsedPercent: pct(50)},
	}

	res, err := chk.Run(s, nodes)
	require.NoError(t, err)
	assert.Equal(t, output.OK, res.Status)
	assert.NotContains(t, res.Summary, "[")
	require.Len(t, res.Perf, 1)
	assert.Equal(t, output.Perf("max_imbalance", 1, "%", "15", "30", "0", ""), res.Perf[0])
}

func TestBalanceCheckExcludesDeadNodes(t *testing.T) {
	chk := &BalanceCheck{thresholds: upperThresholds(t, "15", "30")}
	s := baseSummary()
	s.UsedPercent = 50
	nodes := []report.DatanodeRecord{
		{Name: "A", UsedPercent: pct(51)},
		{Name: "B", UsedPercent: pct(49)},
		{Name: "C", UsedPercent: pct(50)},
		// dead nodes report a nonsense 100% and must not count
		{Name: "Z", UsedPercent: pct(100), Dead: true},
	}

	res, err := chk.Run(s, nodes)
	require.NoError(t, err)
	assert.Equal(t, output.OK, res.Status)
}

func TestBalanceCheckCountMismatch(t *testing.T) {
	chk := &BalanceCheck{thresholds: upperThresholds(t, "15", "30")}
	s := baseSummary()
	s.DatanodesAvailable = 5
	nodes := []report.DatanodeRecord{
		{Name: "A", UsedPercent: pct(51)},
		{Name: "B", UsedPercent: pct(49)},
	}

	_, err := chk.Run(s, nodes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 live datanodes")
	assert.Contains(t, err.Error(), "5 available")
}

func TestBalanceCheckMissingUsedPercent(t *testing.T) {
	chk := &BalanceCheck{thresholds: upperThresholds(t, "15", "30")}
	s := baseSummary()
	s.DatanodesAvailable = 1
	nodes := []report.DatanodeRecord{{Name: "A"}}

	_, err := chk.Run(s, nodes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no used percentage")
}
