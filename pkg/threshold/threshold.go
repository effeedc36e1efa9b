// Package threshold parses warning/critical range specifications and
// evaluates metric values against them. Range semantics come from the
// go-nagios toolkit; the local layer orients single-bound specs by check
// direction and validates the bounds before they reach the range parser.
package threshold

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	nagios "github.com/atc0005/go-nagios"

	"github.com/clustermon/check-hdfs/pkg/output"
)

// Direction selects which side of a range is the unhealthy one.
type Direction int

const (
	// UpperBound treats values above the range as breaches, the usual
	// semantics for usage-style metrics.
	UpperBound Direction = iota
	// LowerBound treats values below the range as breaches, used for
	// availability-style metrics that must not fall under a floor.
	LowerBound
)

var (
	rangeRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)(?::(\d+(?:\.\d+)?))?$`)
	countRe = regexp.MustCompile(`^\d+(?::\d+)?$`)
)

// Range wraps a go-nagios range. Values outside it breach the range.
type Range struct {
	spec string
	rng  *nagios.Range
}

// Parse parses a range spec: either a single bound ("80") or an explicit
// "low:high" pair. A single bound is oriented by dir before it reaches the
// toolkit parser: "80" stays a ceiling for UpperBound checks and becomes
// the Nagios floor form "80:" for LowerBound checks.
func Parse(spec string, dir Direction) (Range, error) {
	m := rangeRe.FindStringSubmatch(strings.TrimSpace(spec))
	if m == nil {
		return Range{}, fmt.Errorf("invalid threshold range %q", spec)
	}

	normalized := m[1]
	switch {
	case m[2] != "":
		lo, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid threshold range %q: %v", spec, err)
		}
		hi, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid threshold range %q: %v", spec, err)
		}
		if hi < lo {
			return Range{}, fmt.Errorf("invalid threshold range %q: lower bound %s above upper bound %s", spec, m[1], m[2])
		}
		normalized = m[1] + ":" + m[2]
	case dir == LowerBound:
		normalized = m[1] + ":"
	}

	rng := nagios.ParseRangeString(normalized)
	if rng == nil {
		return Range{}, fmt.Errorf("invalid threshold range %q", spec)
	}
	return Range{spec: normalized, rng: rng}, nil
}

// ParseCount is Parse restricted to non-negative integer bounds, used by
// checks that count discrete resources.
func ParseCount(spec string, dir Direction) (Range, error) {
	if !countRe.MatchString(strings.TrimSpace(spec)) {
		return Range{}, fmt.Errorf("invalid threshold range %q: non-negative integer bounds required", spec)
	}
	return Parse(spec, dir)
}

// Breached reports whether v falls outside the range.
func (r Range) Breached(v float64) bool {
	return r.rng.CheckRange(strconv.FormatFloat(v, 'f', -1, 64))
}

// String renders the range in Nagios range form, suitable for perfdata
// threshold annotations.
func (r Range) String() string { return r.spec }

// Lower returns the low end of the range, -Inf when unbounded.
func (r Range) Lower() float64 {
	if r.rng.StartInfinity {
		return math.Inf(-1)
	}
	return r.rng.Start
}

// Upper returns the high end of the range, +Inf when unbounded.
func (r Range) Upper() float64 {
	if r.rng.EndInfinity {
		return math.Inf(1)
	}
	return r.rng.End
}

// Thresholds pairs the warning and critical ranges of one check.
type Thresholds struct {
	Warning  Range
	Critical Range
}

// ParseThresholds parses both range specs with the same direction.
func ParseThresholds(warning, critical string, dir Direction) (Thresholds, error) {
	w, err := Parse(warning, dir)
	if err != nil {
		return Thresholds{}, fmt.Errorf("warning: %w", err)
	}
	c, err := Parse(critical, dir)
	if err != nil {
		return Thresholds{}, fmt.Errorf("critical: %w", err)
	}
	return Thresholds{Warning: w, Critical: c}, nil
}

// ParseCountThresholds is ParseThresholds with ParseCount's restrictions.
func ParseCountThresholds(warning, critical string, dir Direction) (Thresholds, error) {
	w, err := ParseCount(warning, dir)
	if err != nil {
		return Thresholds{}, fmt.Errorf("warning: %w", err)
	}
	c, err := ParseCount(critical, dir)
	if err != nil {
		return Thresholds{}, fmt.Errorf("critical: %w", err)
	}
	return Thresholds{Warning: w, Critical: c}, nil
}

// Evaluate returns the severity of v. The critical range is consulted first,
// then the warning range.
func (t Thresholds) Evaluate(v float64) output.Status {
	switch {
	case t.Critical.Breached(v):
		return output.Critical
	case t.Warning.Breached(v):
		return output.Warning
	default:
		return output.OK
	}
}
