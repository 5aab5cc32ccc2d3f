// Package report aggregates workout history into progress buckets and
// renders CSV and printable exports.
package report

import (
	"context"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// WindowDays is the trailing window covered by a progress report.
const WindowDays = 30

// Store is the history surface the reporter reads from.
type Store interface {
	ListHistorySince(ctx context.Context, userID int, since time.Time) ([]models.CompletedSession, error)
}

// DayBucket aggregates one calendar day of the window. Days without
// workouts are present with zero values so charts get a full axis.
type DayBucket struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	Workouts      int     `json:"workouts"`
	Minutes       int     `json:"minutes"`
	TotalWeight   float64 `json:"totalWeight"`
	CompletedSets int     `json:"completedSets"`
}

// Summary totals the whole window.
type Summary struct {
	Workouts      int     `json:"workouts"`
	Minutes       int     `json:"minutes"`
	TotalWeight   float64 `json:"totalWeight"`
	CompletedSets int     `json:"completedSets"`
}

// Progress is the full report payload.
type Progress struct {
	Days    []DayBucket `json:"days"`
	Summary Summary     `json:"summary"`
}

type Reporter struct {
	store Store
}

func New(store Store) *Reporter {
	return &Reporter{store: store}
}

// Progress builds the trailing 30-day report ending at now. Buckets are
// ordered oldest first and always number exactly WindowDays.
func (r *Reporter) Progress(ctx context.Context, userID int, now time.Time) (*Progress, error) {
	start := dayStart(now).AddDate(0, 0, -(WindowDays - 1))
	sessions, err := r.store.ListHistorySince(ctx, userID, start)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*DayBucket, WindowDays)
	days := make([]DayBucket, WindowDays)
	for i := 0; i < WindowDays; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		days[i] = DayBucket{Date: date}
		byDay[date] = &days[i]
	}

	var sum Summary
	for _, s := range sessions {
		b, ok := byDay[s.CompletedAt.Format("2006-01-02")]
		if !ok {
			continue
		}
		minutes := s.DurationSec / 60
		b.Workouts++
		b.Minutes += minutes
		b.TotalWeight += s.TotalWeight
		b.CompletedSets += s.CompletedSets

		sum.Workouts++
		sum.Minutes += minutes
		sum.TotalWeight += s.TotalWeight
		sum.CompletedSets += s.CompletedSets
	}
	return &Progress{Days: days, Summary: sum}, nil
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
