// Package validate enforces the field constraints shared by both record
// kinds. Checks never short-circuit: every violation is collected so the
// caller can surface all problems at once.
package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"secondbrain/internal/model"
)

// Field length ceilings.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 10000
	MaxContentLen     = 10000
	MaxTagsLen        = 200
	MaxContextLen     = 500
)

// TargetDateHorizonYears bounds how far in the future a target date may be
// set by a creation or edit form.
const TargetDateHorizonYears = 10

// FieldError describes a single constraint violation.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// Errors is the full set of violations found in one record. A nil or empty
// set signals success.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// TodoChecks selects which caller-policy checks apply on top of the
// storage-level constraints.
type TodoChecks struct {
	// TargetDateBounds enforces today <= target_date <= today+10y. This is
	// a form-level policy: the repository accepts any date.
	TargetDateBounds bool
	// Now anchors the date-bound check; zero means time.Now().
	Now time.Time
}

// Todo validates a todo record and returns every violation found.
func Todo(t model.Todo, checks TodoChecks) Errors {
	var errs Errors

	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, FieldError{"title", "is required"})
	}
	if strings.TrimSpace(t.UniqueID) == "" {
		errs = append(errs, FieldError{"unique_id", "is required"})
	} else if _, err := uuid.Parse(t.UniqueID); err != nil {
		errs = append(errs, FieldError{"unique_id", "must be a valid UUID"})
	}

	errs = append(errs, checkLen("title", t.Title, MaxTitleLen)...)
	errs = append(errs, checkLen("description", t.Description, MaxDescriptionLen)...)

	if t.Status != "" && !t.Status.IsValid() {
		errs = append(errs, FieldError{"status", fmt.Sprintf("%q is not a valid status", t.Status)})
	}
	if t.Priority != "" && !t.Priority.IsValid() {
		errs = append(errs, FieldError{"priority", fmt.Sprintf("%q is not a valid priority", t.Priority)})
	}

	if checks.TargetDateBounds && t.TargetDate != nil {
		now := checks.Now
		if now.IsZero() {
			now = time.Now()
		}
		errs = append(errs, checkDateBounds("target_date", *t.TargetDate, now)...)
	}

	return errs
}

// Experience validates an experience record and returns every violation
// found.
func Experience(e model.Experience) Errors {
	var errs Errors

	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, FieldError{"title", "is required"})
	}

	errs = append(errs, checkLen("title", e.Title, MaxTitleLen)...)
	errs = append(errs, checkLen("content", e.Content, MaxContentLen)...)
	errs = append(errs, checkLen("tags", e.Tags, MaxTagsLen)...)
	errs = append(errs, checkLen("context", e.Context, MaxContextLen)...)

	if e.Category != "" && !e.Category.IsValid() {
		errs = append(errs, FieldError{"category", fmt.Sprintf("%q is not a valid category", e.Category)})
	}

	return errs
}

func checkLen(field, value string, max int) Errors {
	if utf8.RuneCountInString(value) > max {
		return Errors{{field, fmt.Sprintf("must be at most %d characters", max)}}
	}
	return nil
}

func checkDateBounds(field string, d, now time.Time) Errors {
	today := dateOnly(now)
	horizon := today.AddDate(TargetDateHorizonYears, 0, 0)
	day := dateOnly(d)

	switch {
	case day.Before(today):
		return Errors{{field, "must not be in the past"}}
	case day.After(horizon):
		return Errors{{field, fmt.Sprintf("must be within %d years from today", TargetDateHorizonYears)}}
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
