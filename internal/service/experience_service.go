package service

import (
	"context"

	"secondbrain/internal/model"
	"secondbrain/internal/repository"
	"secondbrain/internal/validate"
)

// CreateExperienceInput carries a candidate experience entry.
type CreateExperienceInput struct {
	Title    string
	Content  string
	Tags     string
	Category model.Category
	Context  string
}

// UpdateExperienceInput is a partial update: nil fields keep their stored
// value.
type UpdateExperienceInput struct {
	Title    *string
	Content  *string
	Tags     *string
	Category *model.Category
	Context  *string
}

// ExperienceService wraps experience business logic on top of the
// repository.
type ExperienceService struct {
	repo *repository.ExperienceRepository
}

func NewExperienceService(repo *repository.ExperienceRepository) *ExperienceService {
	return &ExperienceService{repo: repo}
}

func (s *ExperienceService) Create(ctx context.Context, input CreateExperienceInput) (*model.Experience, error) {
	exp := model.Experience{
		Title:    input.Title,
		Content:  input.Content,
		Tags:     input.Tags,
		Category: input.Category,
		Context:  input.Context,
	}

	if errs := validate.Experience(exp); len(errs) > 0 {
		return nil, errs
	}

	now := nowUTC()
	exp.CreatedAt = now
	exp.UpdatedAt = now

	if err := s.repo.Create(ctx, &exp); err != nil {
		return nil, err
	}
	return &exp, nil
}

// Update merges the patch into the stored record, validates the result and
// saves it. ID and created_at never change; updated_at is refreshed on
// every call.
func (s *ExperienceService) Update(ctx context.Context, id uint, input UpdateExperienceInput) (*model.Experience, error) {
	exp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "get experience for update")
	}

	if input.Title != nil {
		exp.Title = *input.Title
	}
	if input.Content != nil {
		exp.Content = *input.Content
	}
	if input.Tags != nil {
		exp.Tags = *input.Tags
	}
	if input.Category != nil {
		exp.Category = *input.Category
	}
	if input.Context != nil {
		exp.Context = *input.Context
	}

	if errs := validate.Experience(*exp); len(errs) > 0 {
		return nil, errs
	}

	exp.UpdatedAt = nowUTC()
	if err := s.repo.Save(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

func (s *ExperienceService) Get(ctx context.Context, id uint) (*model.Experience, error) {
	exp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "get experience")
	}
	return exp, nil
}

func (s *ExperienceService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "delete experience")
	}
	return nil
}

func (s *ExperienceService) List(ctx context.Context, filter model.ExperienceFilter, sort model.Sort) ([]model.Experience, error) {
	return s.repo.List(ctx, filter, sort)
}
