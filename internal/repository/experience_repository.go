package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"secondbrain/internal/model"
)

// ExperienceRepository handles CRUD and listing for experience entries.
type ExperienceRepository struct {
	db *gorm.DB
}

func NewExperienceRepository(db *gorm.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

func (r *ExperienceRepository) Create(ctx context.Context, exp *model.Experience) error {
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return fmt.Errorf("create experience: %w", err)
	}
	return nil
}

func (r *ExperienceRepository) FindByID(ctx context.Context, id uint) (*model.Experience, error) {
	var exp model.Experience
	if err := r.db.WithContext(ctx).First(&exp, id).Error; err != nil {
		return nil, err
	}
	return &exp, nil
}

// Save persists the full state of an existing experience.
func (r *ExperienceRepository) Save(ctx context.Context, exp *model.Experience) error {
	if err := r.db.WithContext(ctx).Save(exp).Error; err != nil {
		return fmt.Errorf("save experience: %w", err)
	}
	return nil
}

// Delete removes an experience. Returns gorm.ErrRecordNotFound when no row
// matched.
func (r *ExperienceRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Experience{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete experience: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns experiences matching the filter in the requested order.
func (r *ExperienceRepository) List(ctx context.Context, filter model.ExperienceFilter, sort model.Sort) ([]model.Experience, error) {
	q := r.db.WithContext(ctx).Model(&model.Experience{})

	field := filter.DateField
	if field != "updated_at" {
		field = "created_at"
	}
	if filter.From != nil {
		q = q.Where(fmt.Sprintf("DATE(%s) >= ?", field), filter.From.Format(dateLayout))
	}
	if filter.To != nil {
		q = q.Where(fmt.Sprintf("DATE(%s) <= ?", field), filter.To.Format(dateLayout))
	}

	var exps []model.Experience
	if err := q.Order(experienceOrderClause(sort)).Find(&exps).Error; err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	return exps, nil
}

var experienceSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
}

// experienceOrderClause whitelists the sortable columns; anything else falls
// back to created_at. Ties break by ascending id.
func experienceOrderClause(sort model.Sort) string {
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}
	by := sort.By
	if !experienceSortColumns[by] {
		by = "created_at"
	}
	return by + " " + dir + ", id ASC"
}
