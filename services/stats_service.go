package services

import (
	"context"
	"time"

	"tapr/entity"
	"tapr/repository"
)

const (
	DefaultStatsDays = 7
	MaxStatsDays     = 90
)

type StatsService struct {
	Repo *repository.StatsRepository
	now  func() time.Time
}

func NewStatsService(repo *repository.StatsRepository) *StatsService {
	return &StatsService{Repo: repo, now: time.Now}
}

type Dashboard struct {
	Totals     *repository.Totals `json:"totals"`
	DailyStats []entity.DailyStat `json:"dailyStats"`
}

// Summary returns totals plus one entry per day for the last days days,
// today included. Days without visits are reported as zero.
func (s *StatsService) Summary(ctx context.Context, days int) (*Dashboard, error) {
	if days <= 0 {
		days = DefaultStatsDays
	}
	if days > MaxStatsDays {
		days = MaxStatsDays
	}

	totals, err := s.Repo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC()
	start := today.AddDate(0, 0, -(days - 1))
	stored, err := s.Repo.DailyVisits(ctx, start.Format(dayLayout))
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]int64, len(stored))
	for _, st := range stored {
		byDay[st.Date] = st.TotalVisits
	}

	series := make([]entity.DailyStat, 0, days)
	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d).Format(dayLayout)
		series = append(series, entity.DailyStat{Date: day, TotalVisits: byDay[day]})
	}
	return &Dashboard{Totals: totals, DailyStats: series}, nil
}
