// services/answers.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"word-league-system/models"
)

// AnswerScheduler assigns secret words to upcoming answer slots.
type AnswerScheduler struct {
	store     AnswerStore
	words     WordSource
	lookahead time.Duration
}

func NewAnswerScheduler(store AnswerStore, words WordSource, lookahead time.Duration) *AnswerScheduler {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	return &AnswerScheduler{store: store, words: words, lookahead: lookahead}
}

// GenerateAnswer makes sure an answer exists for the slot starting at activeAfter.
//
// When no series covers activeAfter the slot is skipped: the result is nil, nil. An existing
// answer for the slot is returned untouched; otherwise a fresh word is drawn and inserted.
func (s *AnswerScheduler) GenerateAnswer(ctx context.Context, league models.League, activeAfter time.Time) (*models.Answer, error) {
	answer, _, err := s.generateAnswer(ctx, league, activeAfter)
	return answer, err
}

func (s *AnswerScheduler) generateAnswer(ctx context.Context, league models.League, activeAfter time.Time) (*models.Answer, bool, error) {
	activeAfter = activeAfter.UTC()

	series, err := s.store.ListSeries(ctx, models.SeriesFilter{
		LeagueID:        league.ID,
		StartOnOrBefore: &activeAfter,
		EndAfter:        &activeAfter,
		ListOptions:     models.First("-start_date"),
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to find series of %s: %w", league.Slug, err)
	}
	if len(series) == 0 {
		log.Printf("[Generate] no series for %s at %s, skipping answer", league.Slug, activeAfter.Format(time.RFC3339))
		return nil, false, nil
	}

	existing, err := s.store.ListAnswers(ctx, models.AnswerFilter{
		LeagueID:    league.ID,
		ActiveAfter: &activeAfter,
		ListOptions: models.First(),
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up answer of %s: %w", league.Slug, err)
	}
	if len(existing) > 0 {
		return &existing[0], false, nil
	}

	word, err := s.words.RandomWord(league.Letters)
	if err != nil {
		return nil, false, fmt.Errorf("league %s: %w", league.Slug, err)
	}

	row := &models.Answer{
		SeriesID:     series[0].ID,
		LeagueID:     league.ID,
		Answer:       NormalizeWord(word),
		ActiveAfter:  activeAfter,
		ActiveBefore: activeAfter.Add(league.TimeToLive()),
	}
	inserted, err := s.store.InsertAnswer(ctx, row)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert answer %s@%s: %w", league.Slug, activeAfter.Format(time.RFC3339), err)
	}
	return row, inserted, nil
}

// GenerateAnswers fills answer slots after the latest existing answer of league, one every
// answer_interval_hours, while the slot starts before now + lookahead. It returns how many
// answers this call inserted.
func (s *AnswerScheduler) GenerateAnswers(ctx context.Context, league models.League, now time.Time) (int, error) {
	interval := league.AnswerInterval()
	if interval <= 0 {
		return 0, models.NewValidationError("answer_interval_hours", "league %s: answer_interval_hours must be positive", league.Slug)
	}

	latest, err := s.store.ListAnswers(ctx, models.AnswerFilter{
		LeagueID:    league.ID,
		ListOptions: models.First("-active_after"),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to load latest answer of %s: %w", league.Slug, err)
	}

	next := league.StartDate.UTC()
	if len(latest) > 0 {
		next = latest[0].ActiveAfter.UTC().Add(interval)
	}
	cutoff := now.Add(s.lookahead)

	created := 0
	for ; next.Before(cutoff); next = next.Add(interval) {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		_, inserted, err := s.generateAnswer(ctx, league, next)
		if err != nil {
			return created, err
		}
		if inserted {
			created++
		}
	}
	if created > 0 {
		log.Printf("[Generate] 🧩 %d new answer(s) for %s", created, league.Slug)
	}
	return created, nil
}

// EnsureAnswerCoverage is GenerateAnswers without the count.
func (s *AnswerScheduler) EnsureAnswerCoverage(ctx context.Context, league models.League, now time.Time) error {
	_, err := s.GenerateAnswers(ctx, league, now)
	return err
}
