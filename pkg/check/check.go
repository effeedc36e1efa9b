// Package check implements the four health checks that run against a parsed
// dfsadmin report: space usage, replication health, per-node balance and
// node availability.
package check

import (
	"errors"
	"fmt"

	"github.com/clustermon/check-hdfs/pkg/output"
	"github.com/clustermon/check-hdfs/pkg/report"
	"github.com/clustermon/check-hdfs/pkg/threshold"
)

// Mode identifies which of the mutually exclusive checks is active.
type Mode int

const (
	ModeNone Mode = iota
	ModeSpace
	ModeReplication
	ModeBalance
	ModeNodes
)

func (m Mode) String() string {
	switch m {
	case ModeSpace:
		return "space-used"
	case ModeReplication:
		return "replication"
	case ModeBalance:
		return "balance"
	case ModeNodes:
		return "nodes-available"
	default:
		return "none"
	}
}

// Direction returns the threshold direction the mode's metric uses. Every
// check alerts on values that climb too high except node availability,
// which alerts on a count that drops too low.
func (m Mode) Direction() threshold.Direction {
	if m == ModeNodes {
		return threshold.LowerBound
	}
	return threshold.UpperBound
}

// ResolveMode enforces that exactly one check was selected. Selecting none
// or several is a configuration error, caught before any report is fetched.
func ResolveMode(space, replication, balance, nodes bool) (Mode, error) {
	var (
		mode  Mode
		count int
	)
	for _, sel := range []struct {
		on bool
		m  Mode
	}{
		{space, ModeSpace},
		{replication, ModeReplication},
		{balance, ModeBalance},
		{nodes, ModeNodes},
	} {
		if sel.on {
			mode = sel.m
			count++
		}
	}
	switch {
	case count == 0:
		return ModeNone, errors.New("no check selected: use exactly one of --space-used, --replication, --balance, --nodes-available")
	case count > 1:
		return ModeNone, errors.New("multiple checks selected: use exactly one of --space-used, --replication, --balance, --nodes-available")
	}
	return mode, nil
}

// Check evaluates one parsed report against its thresholds. A returned error
// is an internal or data-consistency failure and maps to UNKNOWN, never to
// a health severity.
type Check interface {
	Name() string
	Run(summary report.ClusterSummary, nodes []report.DatanodeRecord) (output.Result, error)
}

// New constructs the check for a resolved mode.
func New(mode Mode, t threshold.Thresholds) (Check, error) {
	switch mode {
	case ModeSpace:
		return &SpaceCheck{thresholds: t}, nil
	case ModeReplication:
		return &ReplicationCheck{thresholds: t}, nil
	case ModeBalance:
		return &BalanceCheck{thresholds: t}, nil
	case ModeNodes:
		return &NodesCheck{thresholds: t}, nil
	default:
		return nil, fmt.Errorf("no check for mode %d", mode)
	}
}
