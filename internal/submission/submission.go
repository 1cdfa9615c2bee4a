// Package submission keeps a JSON log of the candidate forms that were submitted for matching.
package submission

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/job-matcher/internal/profile"
)

// Submission is one stored candidate form.
type Submission struct {
	ID          string        `json:"id"`
	SubmittedAt time.Time     `json:"submitted_at"`
	Form        *profile.Form `json:"form"`
}

// Log is the content of a submissions file.
type Log struct {
	Items []*Submission `json:"items"`
}

// New wraps form into a submission with a fresh id.
func New(form *profile.Form, now time.Time) *Submission {
	return &Submission{
		ID:          uuid.NewString(),
		SubmittedAt: now.UTC(),
		Form:        form,
	}
}

// Load reads the log at path. A missing or empty file is an empty log.
func Load(path string) (*Log, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Log{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Log{}, nil
	}

	var log Log
	if err := json.NewDecoder(file).Decode(&log); err != nil {
		return nil, fmt.Errorf("decoding submissions file %q: %w", path, err)
	}
	return &log, nil
}

func (l *Log) Append(items ...*Submission) {
	l.Items = append(l.Items, items...)
}

func (l *Log) Len() int {
	return len(l.Items)
}

// ByEmail returns the submissions of one candidate, oldest first.
func (l *Log) ByEmail(email string) []*Submission {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	var out []*Submission
	for _, item := range l.Items {
		if item.Form != nil && strings.ToLower(strings.TrimSpace(item.Form.Email)) == email {
			out = append(out, item)
		}
	}
	return out
}

func (l *Log) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return err
	}
	return nil
}

// Record appends form to the log at path and returns the stored submission together
// with the earlier submissions that share its email.
func Record(path string, form *profile.Form, now time.Time) (*Submission, []*Submission, error) {
	if form == nil {
		return nil, nil, fmt.Errorf("candidate form is required")
	}

	log, err := Load(path)
	if err != nil {
		return nil, nil, err
	}

	earlier := log.ByEmail(form.Email)

	s := New(form, now)
	log.Append(s)

	if err := log.ToFile(path); err != nil {
		return nil, nil, fmt.Errorf("saving submissions file %q: %w", path, err)
	}
	return s, earlier, nil
}
