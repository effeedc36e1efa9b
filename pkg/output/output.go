// Package output adapts check results to the Nagios plugin protocol. Status
// labels, exit codes, perfdata and the final status line all come from the
// go-nagios toolkit; this package only maps check outcomes onto it.
package output

import (
	"fmt"
	"strconv"

	nagios "github.com/atc0005/go-nagios"
)

// ServiceName prefixes every status line emitted by this plugin.
const ServiceName = "HDFS"

// Status is a monitoring severity level.
type Status int

const (
	OK Status = iota
	Warning
	Critical
	Unknown
)

func (s Status) String() string {
	switch s {
	case OK:
		return nagios.StateOKLabel
	case Warning:
		return nagios.StateWARNINGLabel
	case Critical:
		return nagios.StateCRITICALLabel
	default:
		return nagios.StateUNKNOWNLabel
	}
}

// ExitCode returns the conventional plugin exit code for the status.
func (s Status) ExitCode() int {
	switch s {
	case OK:
		return nagios.StateOKExitCode
	case Warning:
		return nagios.StateWARNINGExitCode
	case Critical:
		return nagios.StateCRITICALExitCode
	default:
		return nagios.StateUNKNOWNExitCode
	}
}

// Perf builds one perfdata entry from a numeric metric value. Threshold and
// bound annotations stay empty when a field does not apply.
func Perf(label string, value float64, uom, warn, crit, min, max string) nagios.PerformanceData {
	return nagios.PerformanceData{
		Label:             label,
		Value:             strconv.FormatFloat(value, 'f', -1, 64),
		UnitOfMeasurement: uom,
		Warn:              warn,
		Crit:              crit,
		Min:               min,
		Max:               max,
	}
}

// Result is the complete outcome of one check invocation.
type Result struct {
	Status  Status
	Summary string
	Perf    []nagios.PerformanceData
}

// StatusLine returns the service-output line without the perfdata section;
// perfdata is rendered by the plugin machinery on exit.
func (r Result) StatusLine() string {
	return fmt.Sprintf("%s %s - %s", ServiceName, r.Status, r.Summary)
}

// ApplyToPlugin copies the result into a go-nagios plugin state.
func (r Result) ApplyToPlugin(p *nagios.Plugin) {
	p.ExitStatusCode = r.Status.ExitCode()
	p.ServiceOutput = r.StatusLine()
	if len(r.Perf) > 0 {
		if err := p.AddPerfData(false, r.Perf...); err != nil {
			p.ExitStatusCode = nagios.StateUNKNOWNExitCode
			p.ServiceOutput = fmt.Sprintf("%s %s - invalid perfdata: %v", ServiceName, Unknown, err)
		}
	}
}

// Unknownf builds an UNKNOWN result from a fatal condition. Fatal conditions
// never map to WARNING or CRITICAL; "could not determine health" is kept
// distinct from "unhealthy".
func Unknownf(format string, args ...any) Result {
	return Result{Status: Unknown, Summary: fmt.Sprintf(format, args...)}
}

// Exit hands the result to the plugin machinery, which prints the status
// line with perfdata and terminates with the matching exit code.
func Exit(r Result) {
	p := nagios.NewPlugin()
	r.ApplyToPlugin(p)
	p.ReturnCheckResults()
}
