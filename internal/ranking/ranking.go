// Package ranking loads and saves ordered key sequence rankings.
package ranking

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/keyseq/internal/model"
)

// DuplicateError reports a sequence that appears more than once in a source.
type DuplicateError struct {
	Seq    model.KeySeq
	Source string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate session data: sequence %s appears more than once in %s", e.Seq, e.Source)
}

// Load reads one sequence per line from path.
func Load(path string) ([]model.KeySeq, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only ranking.
			_ = cerr
		}
	}()
	return Parse(file, path)
}

// Parse reads one comma separated sequence per line. Blank lines are skipped.
// source names the input in errors.
func Parse(r io.Reader, source string) ([]model.KeySeq, error) {
	var seqs []model.KeySeq
	seen := make(map[model.KeySeq]struct{})
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		seq, err := model.ParseKeySeq(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", source, lineNo, err)
		}
		if _, dup := seen[seq]; dup {
			return nil, &DuplicateError{Seq: seq, Source: source}
		}
		seen[seq] = struct{}{}
		seqs = append(seqs, seq)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return seqs, nil
}

// Save atomically replaces path with seqs, one per line, in ranked order.
func Save(path string, seqs []model.KeySeq) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create ranking dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "ranking-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp ranking: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, seq := range seqs {
		if _, err := fmt.Fprintln(writer, seq.String()); err != nil {
			return fmt.Errorf("failed to write ranking: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush ranking: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close ranking: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write ranking: %w", err)
	}
	return nil
}
