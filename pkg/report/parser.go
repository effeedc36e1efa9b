// Package report parses the free-text output of `hdfs dfsadmin -report`
// into a cluster summary and per-node records.
//
// The parser targets one versioned report format and fails closed: any line
// it has no pattern for is a fatal error. A monitoring check that silently
// computes a wrong number against a drifted format is worse than one that
// clearly breaks.
package report

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrBlankReport flags report output with no content at all, which in
	// practice means the command ran as a user with no HDFS visibility
	// rather than a parse bug.
	ErrBlankReport = errors.New("blank report output")

	// ErrUnrecognizedLine flags report content no known pattern matched.
	ErrUnrecognizedLine = errors.New("unrecognized report line")
)

var (
	reSeparator   = regexp.MustCompile(`^-+$`)
	reName        = regexp.MustCompile(`(?i)^Name\s*:\s*(\S+)`)
	reUsedPercent = regexp.MustCompile(`(?i)^DFS Used%\s*:\s*(\d+(?:\.\d+)?)\s*%$`)
	reDatanodes   = regexp.MustCompile(`(?i)^Datanodes available\s*:\s*(\d+)(?:\s*\((\d+)\s+total,\s*(\d+)\s+dead\))?$`)
	reDeadNode    = regexp.MustCompile(`(?i)^Configured Capacity\s*:\s*0\s*\(0 KB\)$`)

	// Per-node fields the checks have no use for. Order matters where one
	// label is a prefix of another.
	reNodeIgnored = regexp.MustCompile(`(?i)^(?:Rack|Decommission Status|Configured Capacity|Non DFS Used|DFS Used|DFS Remaining%|DFS Remaining|Last contact)\s*:`)
)

// summaryFields accumulates cluster-wide fields during phase A. Every field
// stays nil until its line is seen so that completeness validation can name
// what never turned up.
type summaryFields struct {
	configuredCapacity      *int64
	configuredCapacityHuman *string
	presentCapacity         *int64
	presentCapacityHuman    *string
	remaining               *int64
	remainingHuman          *string
	used                    *int64
	usedHuman               *string
	usedPercent             *float64
	underReplicatedBlocks   *int64
	corruptBlocks           *int64
	missingBlocks           *int64
	datanodesAvailable      *int64
	datanodesTotal          *int64
	datanodesDead           *int64
}

type summaryPattern struct {
	re     *regexp.Regexp
	assign func(f *summaryFields, m []string) error
}

// bytesPattern matches `<label>: <int> (<human>)`. The parenthetical is
// optional; when absent the human rendering is synthesized from the byte
// count so downstream messages always have one.
func bytesPattern(label string, assign func(f *summaryFields, bytes int64, human string)) summaryPattern {
	re := regexp.MustCompile(`(?i)^` + label + `\s*:\s*(\d+)(?:\s*\(([^)]*)\))?$`)
	return summaryPattern{re: re, assign: func(f *summaryFields, m []string) error {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %v", label, err)
		}
		// An empty m[2] covers both a missing parenthetical and an
		// explicitly empty one; either way the line carries no human
		// rendering and gets a synthesized one.
		human := m[2]
		if human == "" {
			human = units.BytesSize(float64(n))
		}
		assign(f, n, human)
		return nil
	}}
}

func countPattern(label string, assign func(f *summaryFields, n int64)) summaryPattern {
	re := regexp.MustCompile(`(?i)^` + label + `\s*:\s*(\d+)$`)
	return summaryPattern{re: re, assign: func(f *summaryFields, m []string) error {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %v", label, err)
		}
		assign(f, n)
		return nil
	}}
}

var summaryPatterns = []summaryPattern{
	bytesPattern("Configured Capacity", func(f *summaryFields, b int64, h string) {
		f.configuredCapacity, f.configuredCapacityHuman = &b, &h
	}),
	bytesPattern("Present Capacity", func(f *summaryFields, b int64, h string) {
		f.presentCapacity, f.presentCapacityHuman = &b, &h
	}),
	bytesPattern("DFS Remaining", func(f *summaryFields, b int64, h string) {
		f.remaining, f.remainingHuman = &b, &h
	}),
	bytesPattern("DFS Used", func(f *summaryFields, b int64, h string) {
		f.used, f.usedHuman = &b, &h
	}),
	{re: reUsedPercent, assign: func(f *summaryFields, m []string) error {
		pc, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return fmt.Errorf("DFS Used%%: %v", err)
		}
		f.usedPercent = &pc
		return nil
	}},
	countPattern("Under replicated blocks", func(f *summaryFields, n int64) { f.underReplicatedBlocks = &n }),
	countPattern("Blocks with corrupt replicas", func(f *summaryFields, n int64) { f.corruptBlocks = &n }),
	countPattern("Missing blocks", func(f *summaryFields, n int64) { f.missingBlocks = &n }),
	{re: reDatanodes, assign: func(f *summaryFields, m []string) error {
		avail, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return fmt.Errorf("Datanodes available: %v", err)
		}
		f.datanodesAvailable = &avail
		if m[2] != "" {
			total, err := strconv.ParseInt(m[2], 10, 64)
			if err != nil {
				return fmt.Errorf("Datanodes total: %v", err)
			}
			dead, err := strconv.ParseInt(m[3], 10, 64)
			if err != nil {
				return fmt.Errorf("Datanodes dead: %v", err)
			}
			f.datanodesTotal, f.datanodesDead = &total, &dead
		}
		return nil
	}},
}

// ParsedReport is the result of parsing one report. It is not mutated after
// Parse returns.
type ParsedReport struct {
	fields summaryFields
	nodes  map[string]*DatanodeRecord
}

// Parse consumes the full ordered line sequence of a dfsadmin report. It
// runs two sequential phases over the lines: summary extraction up to the
// first `Name:` line, then per-node extraction from there on.
func Parse(lines []string) (*ParsedReport, error) {
	if blank(lines) {
		return nil, ErrBlankReport
	}
	p := &ParsedReport{nodes: make(map[string]*DatanodeRecord)}
	rest, err := p.parseSummary(lines)
	if err != nil {
		return nil, err
	}
	if err := p.parseNodes(rest); err != nil {
		return nil, err
	}
	return p, nil
}

// parseSummary scans from the start and returns the remaining lines
// beginning at the per-node section, or nil if the report has none.
func (p *ParsedReport) parseSummary(lines []string) ([]string, error) {
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || reSeparator.MatchString(line) {
			continue
		}
		if reName.MatchString(line) {
			return lines[i:], nil
		}
		if err := p.matchSummaryLine(line); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (p *ParsedReport) matchSummaryLine(line string) error {
	for _, pat := range summaryPatterns {
		m := pat.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		log.Debugf("summary field: %s", line)
		return pat.assign(&p.fields, m)
	}
	return fmt.Errorf("%w: %q", ErrUnrecognizedLine, line)
}

// parseNodes walks the per-node section. A blank line ends the current node
// block; the next `Name:` line starts a new one.
func (p *ParsedReport) parseNodes(lines []string) error {
	current := ""
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			current = ""
			continue
		}
		if m := reName.FindStringSubmatch(line); m != nil {
			current = m[1]
			if _, ok := p.nodes[current]; !ok {
				p.nodes[current] = &DatanodeRecord{Name: current}
			}
			continue
		}
		if current == "" {
			// A node-scoped field with no active node means the parser's
			// own invariants broke, not that the operator did anything wrong.
			return fmt.Errorf("internal: datanode field %q seen with no active node name", line)
		}
		node := p.nodes[current]
		switch {
		case reDeadNode.MatchString(line):
			log.Debugf("datanode %s flagged dead", current)
			node.Dead = true
		case reUsedPercent.MatchString(line):
			m := reUsedPercent.FindStringSubmatch(line)
			pc, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return fmt.Errorf("datanode %s DFS Used%%: %v", current, err)
			}
			node.UsedPercent = &pc
		case reNodeIgnored.MatchString(line):
			// known field, nothing the checks need
		default:
			return fmt.Errorf("%w: %q", ErrUnrecognizedLine, line)
		}
	}
	return nil
}

// Nodes returns the per-node records sorted by name.
func (p *ParsedReport) Nodes() []DatanodeRecord {
	out := make([]DatanodeRecord, 0, len(p.nodes))
	for _, n := range p.nodes {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func blank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}
