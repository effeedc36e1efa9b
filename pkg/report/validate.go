package report

import "fmt"

// requiredField pairs a reportable field name with a presence probe on the
// accumulated summary fields.
type requiredField struct {
	name string
	ok   func(f *summaryFields) bool
}

var requiredFields = []requiredField{
	{"configured capacity", func(f *summaryFields) bool { return f.configuredCapacity != nil }},
	{"configured capacity (human)", func(f *summaryFields) bool { return f.configuredCapacityHuman != nil }},
	{"present capacity", func(f *summaryFields) bool { return f.presentCapacity != nil }},
	{"present capacity (human)", func(f *summaryFields) bool { return f.presentCapacityHuman != nil }},
	{"dfs remaining", func(f *summaryFields) bool { return f.remaining != nil }},
	{"dfs remaining (human)", func(f *summaryFields) bool { return f.remainingHuman != nil }},
	{"dfs used", func(f *summaryFields) bool { return f.used != nil }},
	{"dfs used (human)", func(f *summaryFields) bool { return f.usedHuman != nil }},
	{"dfs used percent", func(f *summaryFields) bool { return f.usedPercent != nil }},
	{"under replicated blocks", func(f *summaryFields) bool { return f.underReplicatedBlocks != nil }},
	{"corrupt blocks", func(f *summaryFields) bool { return f.corruptBlocks != nil }},
	{"missing blocks", func(f *summaryFields) bool { return f.missingBlocks != nil }},
	{"datanodes available", func(f *summaryFields) bool { return f.datanodesAvailable != nil }},
	{"datanodes total", func(f *summaryFields) bool { return f.datanodesTotal != nil }},
	{"datanodes dead", func(f *summaryFields) bool { return f.datanodesDead != nil }},
}

// Summary runs completeness validation and returns the cluster summary.
// No check may run against a partially populated summary; the first field
// that never matched is reported by name.
func (p *ParsedReport) Summary() (ClusterSummary, error) {
	for _, rf := range requiredFields {
		if !rf.ok(&p.fields) {
			return ClusterSummary{}, fmt.Errorf("failed to determine %s from report", rf.name)
		}
	}
	f := p.fields
	return ClusterSummary{
		ConfiguredCapacity:      *f.configuredCapacity,
		ConfiguredCapacityHuman: *f.configuredCapacityHuman,
		PresentCapacity:         *f.presentCapacity,
		PresentCapacityHuman:    *f.presentCapacityHuman,
		Remaining:               *f.remaining,
		RemainingHuman:          *f.remainingHuman,
		Used:                    *f.used,
		UsedHuman:               *f.usedHuman,
		UsedPercent:             *f.usedPercent,
		UnderReplicatedBlocks:   *f.underReplicatedBlocks,
		CorruptBlocks:           *f.corruptBlocks,
		MissingBlocks:           *f.missingBlocks,
		DatanodesAvailable:      *f.datanodesAvailable,
		DatanodesTotal:          *f.datanodesTotal,
		DatanodesDead:           *f.datanodesDead,
	}, nil
}
