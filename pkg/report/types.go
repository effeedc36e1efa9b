package report

// ClusterSummary holds the cluster-wide fields of a dfsadmin report after
// completeness validation. Byte-valued fields keep both the raw byte count
// and the human-readable rendering that accompanied them in the report.
type ClusterSummary struct {
	ConfiguredCapacity      int64
	ConfiguredCapacityHuman string
	PresentCapacity         int64
	PresentCapacityHuman    string
	Remaining               int64
	RemainingHuman          string
	Used                    int64
	UsedHuman               string

	// UsedPercent is taken verbatim from the report. Values outside [0,100]
	// have been observed on real clusters and are passed through untouched.
	UsedPercent float64

	UnderReplicatedBlocks int64
	CorruptBlocks         int64
	MissingBlocks         int64

	DatanodesAvailable int64
	DatanodesTotal     int64
	DatanodesDead      int64
}

// DatanodeRecord is one node block from the per-node section of the report.
type DatanodeRecord struct {
	Name string

	// UsedPercent is nil until a node-scoped "DFS Used%" line is seen.
	UsedPercent *float64

	// Dead is set when the node reports zero configured capacity, the
	// sentinel the namenode emits for nodes it has given up on.
	Dead bool
}
