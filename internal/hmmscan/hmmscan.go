// Package hmmscan drives the HMMER hmmpress and hmmscan executables and
// parses their per-sequence tables.
package hmmscan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when an executable cannot be located.
var ErrNotFound = errors.New("executable not found")

// PressedExts are the files hmmpress leaves next to a database.
var PressedExts = []string{".h3f", ".h3i", ".h3m", ".h3p"}

type Config struct {
	ScanExec  string
	PressExec string
	CPUs      int
	// CutGA applies the Pfam gathering thresholds.
	CutGA bool
	// Max turns off the acceleration heuristics.
	Max     bool
	Timeout time.Duration
}

var Default = Config{
	ScanExec:  "hmmscan",
	PressExec: "hmmpress",
	CPUs:      runtime.NumCPU(),
	Max:       true,
	Timeout:   60 * time.Second,
}

// Pressed reports whether every pressed file of db exists.
func Pressed(db string) bool {
	for _, ext := range PressedExts {
		if _, err := os.Stat(db + ext); err != nil {
			return false
		}
	}
	return true
}

// Press runs hmmpress on db, overwriting stale pressed files.
func (c Config) Press(ctx context.Context, db string) error {
	_, err := c.run(ctx, c.PressExec, "-f", db)
	return err
}

// Scan runs hmmscan of every sequence in fasta against db and parses the
// resulting --tblout table.
func (c Config) Scan(ctx context.Context, db, fasta string) (*Table, error) {
	dir, err := os.MkdirTemp("", "iseq-hmmscan")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	tbl := filepath.Join(dir, "tblout")

	args := []string{"-o", os.DevNull, "--noali", "--tblout", tbl}
	if c.CPUs > 0 {
		args = append(args, "--cpu", strconv.Itoa(c.CPUs))
	}
	if c.CutGA {
		args = append(args, "--cut_ga")
	}
	if c.Max {
		args = append(args, "--max")
	}
	args = append(args, db, fasta)
	if _, err := c.run(ctx, c.ScanExec, args...); err != nil {
		return nil, err
	}
	f, err := os.Open(tbl)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTblout(f)
}

func (c Config) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(name), ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		return nil, fmt.Errorf("%s %s: %w: %s", filepath.Base(name), strings.Join(args, " "), err, msg)
	}
	return stdout.Bytes(), nil
}
