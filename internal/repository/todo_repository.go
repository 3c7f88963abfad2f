package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"secondbrain/internal/model"
)

const dateLayout = "2006-01-02"

// TodoRepository handles CRUD and listing for todos.
type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id uint) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepository) FindByUniqueID(ctx context.Context, uniqueID string) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).Where("unique_id = ?", uniqueID).First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// Save persists the full state of an existing todo.
func (r *TodoRepository) Save(ctx context.Context, todo *model.Todo) error {
	if err := r.db.WithContext(ctx).Save(todo).Error; err != nil {
		return fmt.Errorf("save todo: %w", err)
	}
	return nil
}

// Delete removes a todo. Returns gorm.ErrRecordNotFound when no row matched
// so repeated deletes of the same id keep failing after the first success.
func (r *TodoRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Todo{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete todo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns todos matching the filter in the requested order. The result
// is fully materialized, so callers may range over it as often as they like.
func (r *TodoRepository) List(ctx context.Context, filter model.TodoFilter, sort model.Sort) ([]model.Todo, error) {
	q := r.db.WithContext(ctx).Model(&model.Todo{})

	switch {
	case filter.Status != "":
		q = q.Where("status = ?", filter.Status)
	case filter.ExcludeDone:
		q = q.Where("status <> ?", model.StatusDone)
	}

	if filter.TargetFrom != nil {
		q = q.Where("target_date IS NOT NULL AND DATE(target_date) >= ?", filter.TargetFrom.Format(dateLayout))
	}
	if filter.TargetTo != nil {
		q = q.Where("target_date IS NOT NULL AND DATE(target_date) <= ?", filter.TargetTo.Format(dateLayout))
	}

	var todos []model.Todo
	if err := q.Order(todoOrderClause(sort)).Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// TodaysTasks returns todos whose planned work window covers the given day,
// plus overdue tasks whose window has passed without completion. Overdue
// tasks come first, then by priority (most urgent first), then start date.
func (r *TodoRepository) TodaysTasks(ctx context.Context, now time.Time) ([]model.Todo, error) {
	today := now.UTC().Format(dateLayout)

	overdueExpr := fmt.Sprintf(
		"CASE WHEN end_date IS NOT NULL AND DATE(end_date) < '%s' AND status <> '%s' THEN 0 ELSE 1 END",
		today, model.StatusDone,
	)

	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Where("(start_date IS NOT NULL AND end_date IS NOT NULL AND ? BETWEEN DATE(start_date) AND DATE(end_date))"+
			" OR (end_date IS NOT NULL AND DATE(end_date) < ? AND status <> ?)",
			today, today, model.StatusDone).
		Order(overdueExpr + ", " + priorityCase("DESC") + ", start_date ASC, id ASC").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("list today's tasks: %w", err)
	}
	return todos, nil
}

var todoSortColumns = map[string]bool{
	"id":          true,
	"unique_id":   true,
	"title":       true,
	"description": true,
	"target_date": true,
	"start_date":  true,
	"end_date":    true,
	"created_at":  true,
	"updated_at":  true,
}

// todoOrderClause builds the ORDER BY clause for a todo listing. Status and
// priority sort by workflow/urgency position rather than alphabetically, and
// remaining_days sorts by the days left until the target date with undated
// records last. Unknown columns fall back to created_at.
func todoOrderClause(sort model.Sort) string {
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}

	var clause string
	switch {
	case sort.By == "status":
		clause = statusCase(dir)
	case sort.By == "priority":
		clause = priorityCase(dir)
	case sort.By == "remaining_days":
		clause = "CASE WHEN target_date IS NULL THEN 1 ELSE 0 END, " +
			"julianday(target_date) - julianday('now') " + dir
	case todoSortColumns[sort.By]:
		clause = sort.By + " " + dir
	default:
		clause = "created_at " + dir
	}

	return clause + ", id ASC"
}

func statusCase(dir string) string {
	var b strings.Builder
	b.WriteString("CASE status")
	for _, s := range model.Statuses {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", s, s.Rank())
	}
	fmt.Fprintf(&b, " ELSE %d END %s", len(model.Statuses)+1, dir)
	return b.String()
}

func priorityCase(dir string) string {
	var b strings.Builder
	b.WriteString("CASE priority")
	for _, p := range model.Priorities {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
	}
	fmt.Fprintf(&b, " ELSE %d END %s", len(model.Priorities)+1, dir)
	return b.String()
}
