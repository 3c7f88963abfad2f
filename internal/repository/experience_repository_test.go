package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"secondbrain/internal/model"
	"secondbrain/internal/repository"
)

func newExperience(title string, createdAt time.Time) *model.Experience {
	return &model.Experience{
		Title:     title,
		Content:   "Always check logs first.\nThen check config.",
		Tags:      "debugging,logs",
		Category:  model.CategoryTroubleshooting,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestExperienceCreateAndFind(t *testing.T) {
	repo := repository.NewExperienceRepository(newTestDB(t))
	ctx := context.Background()

	exp := newExperience("Debugging tip", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, exp))
	require.NotZero(t, exp.ID)

	got, err := repo.FindByID(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Debugging tip", got.Title)
	assert.Equal(t, "Always check logs first.\nThen check config.", got.Content, "line breaks are preserved")
	assert.Equal(t, model.CategoryTroubleshooting, got.Category)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestExperienceDelete(t *testing.T) {
	repo := repository.NewExperienceRepository(newTestDB(t))
	ctx := context.Background()

	exp := newExperience("gone soon", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, exp))
	require.NoError(t, repo.Delete(ctx, exp.ID))

	_, err := repo.FindByID(ctx, exp.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, exp.ID), gorm.ErrRecordNotFound)
}

func TestExperienceListDateRange(t *testing.T) {
	repo := repository.NewExperienceRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newExperience("january", time.Date(2025, 1, 5, 8, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Create(ctx, newExperience("april", time.Date(2025, 4, 5, 8, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Create(ctx, newExperience("august", time.Date(2025, 8, 5, 8, 0, 0, 0, time.UTC))))

	got, err := repo.List(ctx, model.ExperienceFilter{
		From: datePtr(2025, 4, 5),
		To:   datePtr(2025, 8, 5),
	}, model.Sort{By: "created_at"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "april", got[0].Title)
	assert.Equal(t, "august", got[1].Title)
}

func TestExperienceListUpdatedAtRange(t *testing.T) {
	repo := repository.NewExperienceRepository(newTestDB(t))
	ctx := context.Background()

	old := newExperience("stale", time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, old))

	fresh := newExperience("fresh", time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC))
	fresh.UpdatedAt = time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, fresh))

	got, err := repo.List(ctx, model.ExperienceFilter{
		DateField: "updated_at",
		From:      datePtr(2025, 6, 1),
	}, model.Sort{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].Title)
}

func TestExperienceListSort(t *testing.T) {
	repo := repository.NewExperienceRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newExperience("banana", base)))
	require.NoError(t, repo.Create(ctx, newExperience("apple", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newExperience("cherry", base.Add(2*time.Hour))))

	byTitle, err := repo.List(ctx, model.ExperienceFilter{}, model.Sort{By: "title"})
	require.NoError(t, err)
	require.Len(t, byTitle, 3)
	assert.Equal(t, "apple", byTitle[0].Title)
	assert.Equal(t, "cherry", byTitle[2].Title)

	newestFirst, err := repo.List(ctx, model.ExperienceFilter{}, model.Sort{By: "created_at", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, "cherry", newestFirst[0].Title)

	// Unknown sort columns fall back to created_at.
	fallback, err := repo.List(ctx, model.ExperienceFilter{}, model.Sort{By: "category"})
	require.NoError(t, err)
	assert.Equal(t, "banana", fallback[0].Title)
}
