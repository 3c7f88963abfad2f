package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"secondbrain/internal/model"
	"secondbrain/internal/repository"
)

const (
	iconDefault = "🟢"
	iconDueSoon = "⏳"
	iconOverdue = "⚠️"
)

// DigestService renders a daily plan as Telegram-ready HTML: today's
// scheduled work first, then the remaining open todos.
type DigestService struct {
	todoRepo *repository.TodoRepository
}

func NewDigestService(todoRepo *repository.TodoRepository) *DigestService {
	return &DigestService{todoRepo: todoRepo}
}

// DailySummary builds the digest text for the given day.
func (s *DigestService) DailySummary(ctx context.Context, now time.Time) (string, error) {
	today, err := s.todoRepo.TodaysTasks(ctx, now)
	if err != nil {
		return "", err
	}

	open, err := s.todoRepo.List(ctx,
		model.TodoFilter{ExcludeDone: true},
		model.Sort{By: "remaining_days"},
	)
	if err != nil {
		return "", err
	}

	scheduled := make(map[uint]bool, len(today))
	for _, t := range today {
		scheduled[t.ID] = true
	}

	var b strings.Builder
	b.WriteString("📋 <b>Daily plan</b>\n")
	fmt.Fprintf(&b, "🗓 %s\n\n", now.Format("Mon, 02 Jan 2006"))

	b.WriteString("🔥 <b>Today's tasks</b>\n")
	if len(today) == 0 {
		b.WriteString("— nothing scheduled for today\n")
	} else {
		for _, t := range today {
			b.WriteString(formatDigestTodo(t, now))
		}
	}

	b.WriteString("\n📌 <b>Other open todos</b>\n")
	rest := 0
	for _, t := range open {
		if scheduled[t.ID] {
			continue
		}
		b.WriteString(formatDigestTodo(t, now))
		rest++
	}
	if rest == 0 {
		b.WriteString("— no other open todos\n")
	}

	return strings.TrimSpace(b.String()), nil
}

func formatDigestTodo(t model.Todo, now time.Time) string {
	var b strings.Builder

	icon := iconDefault
	if t.TargetDate != nil {
		switch {
		case dayBefore(*t.TargetDate, now):
			icon = iconOverdue
		case t.TargetDate.Sub(now) <= 48*time.Hour:
			icon = iconDueSoon
		}
	}

	title := html.EscapeString(strings.TrimSpace(t.Title))
	fmt.Fprintf(&b, "%s %s <i>(%s, %s)</i>", icon, title, t.Priority, t.Status)

	if t.TargetDate != nil {
		if dayBefore(*t.TargetDate, now) {
			fmt.Fprintf(&b, "\n   ⏰ due %s — <b>overdue</b>", t.TargetDate.Format("2006-01-02"))
		} else {
			daysLeft := int(t.TargetDate.Sub(now).Hours()/24) + 1
			fmt.Fprintf(&b, "\n   ⏰ due %s · ≈%d day(s) left", t.TargetDate.Format("2006-01-02"), daysLeft)
		}
	}

	b.WriteByte('\n')
	return b.String()
}

// dayBefore reports whether d falls on a calendar day before now.
func dayBefore(d, now time.Time) bool {
	y1, m1, d1 := d.UTC().Date()
	y2, m2, d2 := now.UTC().Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	z := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return a.Before(z)
}
