// Package collector obtains the dfsadmin report text, either by running the
// hadoop CLI or by reading a previously captured report file.
package collector

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Source yields the ordered report lines for one check run.
type Source interface {
	Lines(ctx context.Context) ([]string, error)
}

// DefaultBin is the modern HDFS CLI entrypoint. Older clusters ship the
// same subcommand under `hadoop`.
const DefaultBin = "hdfs"

// CommandSource runs `<bin> dfsadmin -report`, optionally as another user
// through sudo. Report access usually needs the HDFS superuser.
type CommandSource struct {
	Bin   string
	RunAs string
}

func (s *CommandSource) command(ctx context.Context) *exec.Cmd {
	bin := s.Bin
	if bin == "" {
		bin = DefaultBin
	}
	if s.RunAs != "" {
		return exec.CommandContext(ctx, "sudo", "-n", "-u", s.RunAs, bin, "dfsadmin", "-report")
	}
	return exec.CommandContext(ctx, bin, "dfsadmin", "-report")
}

func (s *CommandSource) Lines(ctx context.Context) ([]string, error) {
	cmd := s.command(ctx)
	log.Debugf("running %s", strings.Join(cmd.Args, " "))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("dfsadmin report timed out: %w", ctx.Err())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("dfsadmin report failed: %v: %s", err, msg)
		}
		return nil, fmt.Errorf("dfsadmin report failed: %w", err)
	}

	lines := splitLines(stdout.String())
	log.Debugf("captured %d report lines", len(lines))
	return lines, nil
}

// FileSource reads a captured report, mainly for offline runs and tests.
type FileSource struct {
	Path string
}

func (s *FileSource) Lines(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}
	return splitLines(string(data)), nil
}

func splitLines(out string) []string {
	return strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n")
}
