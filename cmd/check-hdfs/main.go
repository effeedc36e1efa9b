// check-hdfs is a Nagios-style plugin that evaluates the health of an HDFS
// cluster from the output of `hdfs dfsadmin -report`.
package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clustermon/check-hdfs/pkg/check"
	"github.com/clustermon/check-hdfs/pkg/collector"
	"github.com/clustermon/check-hdfs/pkg/config"
	"github.com/clustermon/check-hdfs/pkg/output"
	"github.com/clustermon/check-hdfs/pkg/report"
	"github.com/clustermon/check-hdfs/pkg/threshold"
)

const defaultTimeout = 30 * time.Second

type options struct {
	space       bool
	replication bool
	balance     bool
	nodes       bool

	warning  string
	critical string

	hadoopBin  string
	runAs      string
	reportFile string
	configFile string
	timeout    time.Duration
	timeoutSet bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Every failure class maps to UNKNOWN: "could not determine
		// cluster health" is not "the cluster is unhealthy".
		output.Exit(output.Unknownf("%v", err))
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "check-hdfs",
		Short: "Check HDFS health from the dfsadmin report",
		Long: `check-hdfs runs (or reads) the output of 'hdfs dfsadmin -report' and
evaluates one of four checks against warning/critical threshold ranges:

  --space-used        cluster-wide DFS used percentage
  --replication       under-replicated blocks, CRITICAL on corrupt/missing
  --balance           worst per-datanode deviation from cluster DFS used%
  --nodes-available   available datanode count floor, WARNING on dead nodes

Exactly one check must be selected. The result is printed as a single
status line with perfdata and the process exits 0/1/2/3 for
OK/WARNING/CRITICAL/UNKNOWN.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.timeoutSet = cmd.Flags().Changed("timeout")
			res, err := run(opts)
			if err != nil {
				return err
			}
			output.Exit(res)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.space, "space-used", false, "check cluster-wide DFS space usage")
	flags.BoolVar(&opts.replication, "replication", false, "check block replication health")
	flags.BoolVar(&opts.balance, "balance", false, "check per-datanode space balance")
	flags.BoolVar(&opts.nodes, "nodes-available", false, "check available datanode count")
	flags.StringVarP(&opts.warning, "warning", "w", "", "warning threshold range (N or N:M)")
	flags.StringVarP(&opts.critical, "critical", "c", "", "critical threshold range (N or N:M)")
	flags.StringVar(&opts.hadoopBin, "hadoop-bin", "", "path to the hdfs/hadoop binary (default \"hdfs\")")
	flags.StringVar(&opts.runAs, "run-as", "", "run dfsadmin as this user via sudo")
	flags.StringVar(&opts.reportFile, "report-file", "", "read a captured report from this file instead of running dfsadmin")
	flags.StringVar(&opts.configFile, "config", "", "path to a YAML defaults file")
	flags.DurationVar(&opts.timeout, "timeout", defaultTimeout, "overall timeout for fetching the report")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(opts *options) (output.Result, error) {
	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}

	// Configuration problems must surface before any report is fetched.
	mode, err := check.ResolveMode(opts.space, opts.replication, opts.balance, opts.nodes)
	if err != nil {
		return output.Result{}, err
	}

	cfg := &config.Config{}
	if opts.configFile != "" {
		cfg, err = config.Load(opts.configFile)
		if err != nil {
			return output.Result{}, err
		}
	}

	th, err := resolveThresholds(opts, cfg, mode)
	if err != nil {
		return output.Result{}, err
	}
	chk, err := check.New(mode, th)
	if err != nil {
		return output.Result{}, err
	}

	timeout, err := resolveTimeout(opts, cfg)
	if err != nil {
		return output.Result{}, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	lines, err := newSource(opts, cfg).Lines(ctx)
	if err != nil {
		return output.Result{}, err
	}

	parsed, err := report.Parse(lines)
	if err != nil {
		return output.Result{}, err
	}
	summary, err := parsed.Summary()
	if err != nil {
		return output.Result{}, err
	}

	return chk.Run(summary, parsed.Nodes())
}

// resolveThresholds picks flag values over config-file defaults and parses
// them with the mode's direction.
func resolveThresholds(opts *options, cfg *config.Config, mode check.Mode) (threshold.Thresholds, error) {
	warning, critical := opts.warning, opts.critical
	if defaults, ok := cfg.CheckThresholds(mode.String()); ok {
		if warning == "" {
			warning = defaults.Warning
		}
		if critical == "" {
			critical = defaults.Critical
		}
	}
	if warning == "" || critical == "" {
		return threshold.Thresholds{}, fmt.Errorf("%s check needs both --warning and --critical thresholds", mode)
	}
	if mode == check.ModeNodes {
		return threshold.ParseCountThresholds(warning, critical, mode.Direction())
	}
	return threshold.ParseThresholds(warning, critical, mode.Direction())
}

func resolveTimeout(opts *options, cfg *config.Config) (time.Duration, error) {
	if opts.timeoutSet {
		return opts.timeout, nil
	}
	configured, err := cfg.TimeoutDuration()
	if err != nil {
		return 0, err
	}
	if configured > 0 {
		return configured, nil
	}
	return opts.timeout, nil
}

func newSource(opts *options, cfg *config.Config) collector.Source {
	if opts.reportFile != "" {
		return &collector.FileSource{Path: opts.reportFile}
	}
	bin := opts.hadoopBin
	if bin == "" {
		bin = cfg.HadoopBin
	}
	runAs := opts.runAs
	if runAs == "" {
		runAs = cfg.RunAs
	}
	return &collector.CommandSource{Bin: bin, RunAs: runAs}
}
