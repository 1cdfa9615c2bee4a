// Package catalog loads job postings from spreadsheet exports (CSV), JSON or YAML files.
package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/profile"
	"github.com/spigell/job-matcher/internal/utils"
)

// ErrNoValidRecords is returned when a catalog has rows but none of them could be used.
var ErrNoValidRecords = errors.New("catalog has no valid records")

// RecordError describes a catalog row that was left out.
type RecordError struct {
	// Row is the 1-based position among non-blank records, header excluded.
	Row   int
	Title string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("record %d (%s): %v", e.Row, e.Title, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Row, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Catalog is an ordered list of job postings. Order is the source order and is what
// ranking uses to break ties.
type Catalog struct {
	Jobs     []matching.JobPosting
	Rejected []*RecordError
}

// Load reads the catalog at path. The format is picked by extension: .csv, .json,
// .yaml or .yml. Malformed rows are logged, collected in Rejected and skipped.
func Load(path string, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer file.Close()

	var rows []any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSV(file)
	case ".json":
		rows, err = readJSON(file)
	case ".yaml", ".yml":
		rows, err = readYAML(file)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog %q: %w", path, err)
	}

	c := FromRows(rows)
	for _, rejected := range c.Rejected {
		logger.Warn("skipping catalog record",
			zap.Int("row", rejected.Row),
			zap.String("title", rejected.Title),
			zap.Error(rejected.Err),
		)
	}

	if len(rows) > 0 && c.Len() == 0 {
		return c, ErrNoValidRecords
	}

	logger.Debug("catalog loaded",
		zap.String("path", path),
		zap.Int("records", len(rows)),
		zap.Int("jobs", c.Len()),
		zap.Int("rejected", len(c.Rejected)),
		zap.Strings("companies", c.Companies()),
	)

	return c, nil
}

// FromRows builds a catalog from already parsed rows. Rows that are not objects are
// rejected like any other malformed record.
func FromRows(rows []any) *Catalog {
	c := &Catalog{Jobs: make([]matching.JobPosting, 0, len(rows))}
	for i, item := range rows {
		row, ok := item.(map[string]any)
		if !ok {
			c.Rejected = append(c.Rejected, &RecordError{Row: i + 1, Err: fmt.Errorf("expected an object, got %T", item)})
			continue
		}

		job, err := decodeRecord(row)
		if err != nil {
			title, _ := profile.Canonicalize(row)[profile.FieldTitle].(string)
			c.Rejected = append(c.Rejected, &RecordError{Row: i + 1, Title: strings.TrimSpace(title), Err: err})
			continue
		}
		c.Jobs = append(c.Jobs, job)
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.Jobs)
}

// Companies returns the distinct company names in catalog order.
func (c *Catalog) Companies() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, job := range c.Jobs {
		key := utils.Fold(job.Company)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, job.Company)
	}
	return out
}

func readCSV(r io.Reader) ([]any, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []any
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if blankRow(fields) {
			continue
		}

		row := make(map[string]any, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func readJSON(r io.Reader) ([]any, error) {
	var rows []any
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return rows, nil
}

func readYAML(r io.Reader) ([]any, error) {
	var rows []any
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return rows, nil
}

func blankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
