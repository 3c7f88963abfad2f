package validate_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secondbrain/internal/model"
	"secondbrain/internal/validate"
)

var anchor = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func validTodo() model.Todo {
	return model.Todo{
		UniqueID: uuid.NewString(),
		Title:    "Write weekly report",
		Status:   model.StatusInQueue,
		Priority: model.PriorityMedium,
	}
}

func fields(errs validate.Errors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func TestTodoValid(t *testing.T) {
	require.Empty(t, validate.Todo(validTodo(), validate.TodoChecks{}))
}

func TestTodoCollectsAllViolations(t *testing.T) {
	todo := model.Todo{
		UniqueID:    "not-a-uuid",
		Title:       "",
		Description: strings.Repeat("x", validate.MaxDescriptionLen+1),
		Status:      "paused",
		Priority:    "Urgent",
	}

	errs := validate.Todo(todo, validate.TodoChecks{})
	assert.ElementsMatch(t,
		[]string{"title", "unique_id", "description", "status", "priority"},
		fields(errs))
}

func TestTodoFieldChecks(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*model.Todo)
		wantField string
	}{
		{
			name:      "missing title",
			mutate:    func(td *model.Todo) { td.Title = "   " },
			wantField: "title",
		},
		{
			name:      "title too long",
			mutate:    func(td *model.Todo) { td.Title = strings.Repeat("a", validate.MaxTitleLen+1) },
			wantField: "title",
		},
		{
			name:      "missing unique id",
			mutate:    func(td *model.Todo) { td.UniqueID = "" },
			wantField: "unique_id",
		},
		{
			name:      "malformed unique id",
			mutate:    func(td *model.Todo) { td.UniqueID = "1234" },
			wantField: "unique_id",
		},
		{
			name:      "unknown status",
			mutate:    func(td *model.Todo) { td.Status = "pending" },
			wantField: "status",
		},
		{
			name:      "unknown priority",
			mutate:    func(td *model.Todo) { td.Priority = "urgent" },
			wantField: "priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todo := validTodo()
			tt.mutate(&todo)
			errs := validate.Todo(todo, validate.TodoChecks{})
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func TestTodoTitleLengthCountsRunes(t *testing.T) {
	todo := validTodo()
	todo.Title = strings.Repeat("ü", validate.MaxTitleLen)
	assert.Empty(t, validate.Todo(todo, validate.TodoChecks{}))
}

func TestTodoTargetDateBounds(t *testing.T) {
	day := func(d time.Time) *time.Time { return &d }

	tests := []struct {
		name   string
		date   *time.Time
		checks validate.TodoChecks
		wantOK bool
	}{
		{
			name:   "today is allowed",
			date:   day(anchor),
			checks: validate.TodoChecks{TargetDateBounds: true, Now: anchor},
			wantOK: true,
		},
		{
			name:   "yesterday is rejected",
			date:   day(anchor.AddDate(0, 0, -1)),
			checks: validate.TodoChecks{TargetDateBounds: true, Now: anchor},
			wantOK: false,
		},
		{
			name:   "horizon boundary is allowed",
			date:   day(anchor.AddDate(validate.TargetDateHorizonYears, 0, 0)),
			checks: validate.TodoChecks{TargetDateBounds: true, Now: anchor},
			wantOK: true,
		},
		{
			name:   "beyond horizon is rejected",
			date:   day(anchor.AddDate(validate.TargetDateHorizonYears, 0, 1)),
			checks: validate.TodoChecks{TargetDateBounds: true, Now: anchor},
			wantOK: false,
		},
		{
			name:   "past date passes when bounds are not enforced",
			date:   day(anchor.AddDate(-1, 0, 0)),
			checks: validate.TodoChecks{},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todo := validTodo()
			todo.TargetDate = tt.date
			errs := validate.Todo(todo, tt.checks)
			if tt.wantOK {
				assert.Empty(t, errs)
			} else {
				require.Len(t, errs, 1)
				assert.Equal(t, "target_date", errs[0].Field)
			}
		})
	}
}

func TestExperience(t *testing.T) {
	tests := []struct {
		name       string
		exp        model.Experience
		wantFields []string
	}{
		{
			name: "valid",
			exp: model.Experience{
				Title:    "Debugging tip",
				Content:  "Always check logs first.\nThen check config.",
				Tags:     "debugging,logs",
				Category: model.CategoryTroubleshooting,
			},
		},
		{
			name: "valid without optional fields",
			exp:  model.Experience{Title: "Note"},
		},
		{
			name: "missing title and bad category",
			exp: model.Experience{
				Category: "Random",
			},
			wantFields: []string{"title", "category"},
		},
		{
			name: "length ceilings",
			exp: model.Experience{
				Title:   "Note",
				Content: strings.Repeat("c", validate.MaxContentLen+1),
				Tags:    strings.Repeat("t", validate.MaxTagsLen+1),
				Context: strings.Repeat("x", validate.MaxContextLen+1),
			},
			wantFields: []string{"content", "tags", "context"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validate.Experience(tt.exp)
			assert.ElementsMatch(t, tt.wantFields, fields(errs))
		})
	}
}

func TestErrorsMessage(t *testing.T) {
	errs := validate.Errors{
		{Field: "title", Reason: "is required"},
		{Field: "status", Reason: `"paused" is not a valid status`},
	}
	msg := errs.Error()
	assert.Contains(t, msg, "title: is required")
	assert.Contains(t, msg, "status:")
}
