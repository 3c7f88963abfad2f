package model

import "time"

// Status is the workflow state of a todo.
type Status string

const (
	StatusInQueue    Status = "in-queue"
	StatusReady      Status = "ready"
	StatusInProgress Status = "in-progress"
	StatusHold       Status = "hold"
	StatusDone       Status = "done"
)

// DefaultStatus is applied when a candidate record omits status.
const DefaultStatus = StatusInQueue

// Statuses lists every valid status in workflow order.
var Statuses = []Status{StatusInQueue, StatusReady, StatusInProgress, StatusHold, StatusDone}

func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Rank returns the workflow position used for semantic sorting.
// Unknown values sort last.
func (s Status) Rank() int {
	for i, v := range Statuses {
		if s == v {
			return i + 1
		}
	}
	return len(Statuses) + 1
}

// Priority is the urgency of a todo.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// DefaultPriority is applied when a candidate record omits priority.
const DefaultPriority = PriorityMedium

// Priorities lists every valid priority from least to most urgent.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p Priority) IsValid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

func (p Priority) Rank() int {
	for i, v := range Priorities {
		if p == v {
			return i + 1
		}
	}
	return len(Priorities) + 1
}

// Todo is a single task record. UniqueID is supplied by the caller at
// creation time and never changes afterwards; ID is assigned by the store
// and never reused after deletion.
type Todo struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UniqueID    string     `gorm:"uniqueIndex;not null" json:"unique_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Status      Status     `gorm:"default:in-queue" json:"status"`
	Priority    Priority   `gorm:"default:Medium" json:"priority"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// TodoFilter narrows a todo listing. The zero value matches every record.
type TodoFilter struct {
	Status      Status // exact match when non-empty
	ExcludeDone bool   // hide done records when no status filter is set
	TargetFrom  *time.Time
	TargetTo    *time.Time
}

// Sort describes the ordering of a listing. Ties are always broken by
// ascending ID so output is deterministic.
type Sort struct {
	By   string
	Desc bool
}
