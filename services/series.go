// services/series.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"word-league-system/models"
)

// DefaultLookahead is how far past "now" series and answers are pre-generated.
const DefaultLookahead = 7 * 24 * time.Hour

// SeriesScheduler keeps every league covered by series windows up to the lookahead.
type SeriesScheduler struct {
	store     SeriesStore
	lookahead time.Duration
}

func NewSeriesScheduler(store SeriesStore, lookahead time.Duration) *SeriesScheduler {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	return &SeriesScheduler{store: store, lookahead: lookahead}
}

// EnsureSeriesCoverage appends contiguous series to league until the newest one starts at
// or after now + lookahead. It returns how many rows this call inserted. Running it again
// with the same now inserts nothing.
func (s *SeriesScheduler) EnsureSeriesCoverage(ctx context.Context, league models.League, now time.Time) (int, error) {
	if league.SeriesDays <= 0 {
		return 0, models.NewValidationError("series_days", "league %s: series_days must be positive", league.Slug)
	}

	latest, err := s.store.ListSeries(ctx, models.SeriesFilter{
		LeagueID:    league.ID,
		ListOptions: models.First("-start_date"),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to load latest series of %s: %w", league.Slug, err)
	}

	start := league.StartDate.UTC()
	if len(latest) > 0 {
		start = latest[0].EndDate.UTC()
	}
	cutoff := now.Add(s.lookahead)

	created := 0
	for start.Before(cutoff) {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		row := &models.Series{
			LeagueID:  league.ID,
			StartDate: start,
			EndDate:   league.SeriesLength(start),
			CreatedAt: now,
		}
		inserted, err := s.store.InsertSeries(ctx, row)
		if err != nil {
			return created, fmt.Errorf("failed to insert series %s@%s: %w", league.Slug, start.Format(time.RFC3339), err)
		}
		if inserted {
			created++
			log.Printf("[Generate] 📅 series %s [%s, %s)", league.Slug, row.StartDate.Format(time.RFC3339), row.EndDate.Format(time.RFC3339))
		}
		start = row.EndDate.UTC()
	}
	return created, nil
}
