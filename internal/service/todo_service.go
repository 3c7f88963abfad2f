package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"secondbrain/internal/model"
	"secondbrain/internal/repository"
	"secondbrain/internal/validate"
)

// nowUTC returns the current time in UTC at whole-second precision, the
// granularity both timestamp columns are stored at.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// CreateTodoInput carries a candidate todo. UniqueID comes from the caller;
// id and timestamps are assigned here.
type CreateTodoInput struct {
	UniqueID    string
	Title       string
	Description string
	Status      model.Status
	Priority    model.Priority
	TargetDate  *time.Time
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateTodoInput is a partial update: nil fields keep their stored value.
// The Clear flags reset the corresponding optional date.
type UpdateTodoInput struct {
	Title           *string
	Description     *string
	Status          *model.Status
	Priority        *model.Priority
	TargetDate      *time.Time
	ClearTargetDate bool
	StartDate       *time.Time
	ClearStartDate  bool
	EndDate         *time.Time
	ClearEndDate    bool
}

// TodoService wraps todo business logic: defaults, validation, timestamp
// handling and error mapping on top of the repository.
type TodoService struct {
	repo *repository.TodoRepository
}

func NewTodoService(repo *repository.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// Create validates the candidate, applies enum defaults, assigns both
// timestamps (equal at creation) and persists it.
func (s *TodoService) Create(ctx context.Context, input CreateTodoInput) (*model.Todo, error) {
	todo := model.Todo{
		UniqueID:    input.UniqueID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		TargetDate:  input.TargetDate,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if todo.Status == "" {
		todo.Status = model.DefaultStatus
	}
	if todo.Priority == "" {
		todo.Priority = model.DefaultPriority
	}

	if errs := validate.Todo(todo, validate.TodoChecks{TargetDateBounds: true}); len(errs) > 0 {
		return nil, errs
	}

	now := nowUTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	if err := s.repo.Create(ctx, &todo); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUniqueID
		}
		return nil, err
	}
	return &todo, nil
}

// Update merges the patch into the stored record, validates the result and
// saves it. ID, unique id and created_at never change; updated_at is
// refreshed on every call.
func (s *TodoService) Update(ctx context.Context, id uint, input UpdateTodoInput) (*model.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "get todo for update")
	}

	if input.Title != nil {
		todo.Title = *input.Title
	}
	if input.Description != nil {
		todo.Description = *input.Description
	}
	if input.Status != nil {
		todo.Status = *input.Status
	}
	if input.Priority != nil {
		todo.Priority = *input.Priority
	}
	switch {
	case input.ClearTargetDate:
		todo.TargetDate = nil
	case input.TargetDate != nil:
		todo.TargetDate = input.TargetDate
	}
	switch {
	case input.ClearStartDate:
		todo.StartDate = nil
	case input.StartDate != nil:
		todo.StartDate = input.StartDate
	}
	switch {
	case input.ClearEndDate:
		todo.EndDate = nil
	case input.EndDate != nil:
		todo.EndDate = input.EndDate
	}

	// Date bounds are a form policy on newly supplied values; a stored
	// target date that has since passed must not block unrelated edits.
	checks := validate.TodoChecks{TargetDateBounds: input.TargetDate != nil}
	if errs := validate.Todo(*todo, checks); len(errs) > 0 {
		return nil, errs
	}

	todo.UpdatedAt = nowUTC()
	if err := s.repo.Save(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// UpdateStatus changes only the workflow status of a todo.
func (s *TodoService) UpdateStatus(ctx context.Context, id uint, status model.Status) (*model.Todo, error) {
	if !status.IsValid() {
		return nil, validate.Errors{{Field: "status", Reason: fmt.Sprintf("%q is not a valid status", status)}}
	}

	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "get todo for status update")
	}

	todo.Status = status
	todo.UpdatedAt = nowUTC()
	if err := s.repo.Save(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Get(ctx context.Context, id uint) (*model.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "get todo")
	}
	return todo, nil
}

func (s *TodoService) GetByUniqueID(ctx context.Context, uniqueID string) (*model.Todo, error) {
	todo, err := s.repo.FindByUniqueID(ctx, uniqueID)
	if err != nil {
		return nil, mapNotFound(err, "get todo by unique id")
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "delete todo")
	}
	return nil
}

func (s *TodoService) List(ctx context.Context, filter model.TodoFilter, sort model.Sort) ([]model.Todo, error) {
	return s.repo.List(ctx, filter, sort)
}

// TodaysTasks returns the planning view for the given day.
func (s *TodoService) TodaysTasks(ctx context.Context, now time.Time) ([]model.Todo, error) {
	return s.repo.TodaysTasks(ctx, now)
}

func mapNotFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
