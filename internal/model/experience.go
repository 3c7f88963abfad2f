package model

import "time"

// Category classifies an experience entry.
type Category string

const (
	CategoryTechnical       Category = "Technical"
	CategoryProblemSolving  Category = "Problem-Solving"
	CategoryProject         Category = "Project"
	CategoryLearning        Category = "Learning"
	CategoryBestPractice    Category = "Best-Practice"
	CategoryTroubleshooting Category = "Troubleshooting"
	CategoryDesign          Category = "Design"
	CategoryOther           Category = "Other"
)

// Categories lists every valid experience category.
var Categories = []Category{
	CategoryTechnical,
	CategoryProblemSolving,
	CategoryProject,
	CategoryLearning,
	CategoryBestPractice,
	CategoryTroubleshooting,
	CategoryDesign,
	CategoryOther,
}

func (c Category) IsValid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Experience is a free-form knowledge snippet stored for later retrieval.
// Content is plain text with line breaks preserved; Tags is a
// comma-separated list.
type Experience struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `json:"content"`
	Tags      string    `json:"tags"`
	Category  Category  `json:"category"`
	Context   string    `json:"context"`
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// ExperienceFilter narrows an experience listing by a date range on either
// created_at or updated_at. The zero value matches every record.
type ExperienceFilter struct {
	DateField string // "created_at" (default) or "updated_at"
	From      *time.Time
	To        *time.Time
}
