package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clustermon/check-hdfs/pkg/output"
)

func TestReplicationCheckThresholds(t *testing.T) {
	tests := []struct {
		name            string
		underReplicated int64
		want            output.Status
	}{
		{"healthy", 5, output.OK},
		{"warning", 15, output.Warning},
		{"critical", 25, output.Critical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chk := &ReplicationCheck{thresholds: upperThresholds(t, "10", "20")}
			s := baseSummary()
			s.UnderReplicatedBlocks = tt.underReplicated

			res, err := chk.Run(s, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
			assert.Contains(t, res.Summary, "under-replicated blocks")
		})
	}
}

func TestReplicationCheckCorruptionOverride(t *testing.T) {
	// 5 under-replicated blocks pass the thresholds, but a single corrupt
	// block must force CRITICAL anyway.
	chk := &ReplicationCheck{thresholds: upperThresholds(t, "10", "20")}
	s := baseSummary()
	s.UnderReplicatedBlocks = 5
	s.CorruptBlocks = 1

	res, err := chk.Run(s, nil)
	require.NoError(t, err)
	assert.Equal(t, output.Critical, res.Status)
	assert.Contains(t, res.Summary, "1 corrupt blocks, 0 missing blocks - 5 under-replicated blocks")
}

func TestReplicationCheckMissingOverride(t *testing.T) {
	chk := &ReplicationCheck{thresholds: upperThresholds(t, "10", "20")}
	s := baseSummary()
	s.MissingBlocks = 3

	res, err := chk.Run(s, nil)
	require.NoError(t, err)
	assert.Equal(t, output.Critical, res.Status)
	assert.Contains(t, res.Summary, "3 missing blocks")
}

func TestReplicationCheckPerfdata(t *testing.T) {
	chk := &ReplicationCheck{thresholds: upperThresholds(t, "10", "20")}
	s := baseSummary()
	s.UnderReplicatedBlocks = 5
	s.CorruptBlocks = 1
	s.MissingBlocks = 2

	res, err := chk.Run(s, nil)
	require.NoError(t, err)
	require.Len(t, res.Perf, 3)
	assert.Equal(t, output.Perf("under_replicated_blocks", 5, "", "10", "20", "0", ""), res.Perf[0])
	assert.Equal(t, output.Perf("corrupt_blocks", 1, "", "", "", "0", ""), res.Perf[1])
	assert.Equal(t, output.Perf("missing_blocks", 2, "", "", "", "0", ""), res.Perf[2])
}
