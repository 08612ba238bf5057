// services/puzzles.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"word-league-system/models"

	"github.com/google/uuid"
)

// PuzzleStore is what PuzzleService reads and writes.
type PuzzleStore interface {
	ListLeagues(ctx context.Context, f models.LeagueFilter) ([]models.League, error)
	ListMemberships(ctx context.Context, f models.MembershipFilter) ([]models.Membership, error)
	ListSeries(ctx context.Context, f models.SeriesFilter) ([]models.Series, error)
	GuessStore
	ListAnswers(ctx context.Context, f models.AnswerFilter) ([]models.Answer, error)
}

type PuzzleService struct {
	store PuzzleStore
}

func NewPuzzleService(store PuzzleStore) *PuzzleService {
	return &PuzzleService{store: store}
}

// ActivePuzzles lists the answers live at now in every league userID actively belongs to,
// with the user's progress on each. The secret is revealed only once the user solved it or
// used up max_guesses.
func (s *PuzzleService) ActivePuzzles(ctx context.Context, userID string, now time.Time) ([]models.ActivePuzzle, error) {
	if userID == "" {
		return nil, models.NewValidationError("user_id", "user id is required")
	}

	active := true
	memberships, err := s.store.ListMemberships(ctx, models.MembershipFilter{UserID: userID, Active: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	puzzles := make([]models.ActivePuzzle, 0, len(memberships))
	for _, m := range memberships {
		league, err := s.league(ctx, m.LeagueID)
		if err != nil {
			return nil, err
		}

		answers, err := s.store.ListAnswers(ctx, models.AnswerFilter{
			LeagueID:    league.ID,
			ActiveAt:    &now,
			ListOptions: models.ListOptions{Sort: []string{"active_after"}},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list answers of %s: %w", league.Slug, err)
		}

		for _, a := range answers {
			series, err := s.store.ListSeries(ctx, models.SeriesFilter{ID: a.SeriesID})
			if err != nil {
				return nil, fmt.Errorf("failed to load series of answer %s: %w", a.ID, err)
			}
			owner, err := only(series, "series")
			if err != nil {
				return nil, fmt.Errorf("answer %s: %w", a.ID, err)
			}

			guesses, err := s.store.ListGuesses(ctx, models.GuessFilter{UserID: userID, AnswerID: a.ID})
			if err != nil {
				return nil, fmt.Errorf("failed to list guesses: %w", err)
			}
			correct := false
			for _, g := range guesses {
				correct = correct || g.Correct
			}

			p := models.ActivePuzzle{
				LeagueSlug:      league.Slug,
				LeagueName:      league.Name,
				Letters:         league.Letters,
				MaxGuesses:      league.MaxGuesses,
				AnswerID:        a.ID,
				ActiveAfter:     a.ActiveAfter,
				ActiveBefore:    a.ActiveBefore,
				SeriesStartDate: owner.StartDate,
				SeriesEndDate:   owner.EndDate,
				Guesses:         len(guesses),
				Correct:         correct,
			}
			if finished(correct, len(guesses), league.MaxGuesses) {
				secret := a.Answer
				p.CorrectAnswer = &secret
			}
			puzzles = append(puzzles, p)
		}
	}

	sort.SliceStable(puzzles, func(i, j int) bool {
		if puzzles[i].LeagueSlug != puzzles[j].LeagueSlug {
			return puzzles[i].LeagueSlug < puzzles[j].LeagueSlug
		}
		return puzzles[i].ActiveAfter.Before(puzzles[j].ActiveAfter)
	})
	return puzzles, nil
}

// SubmitGuess scores guess against the answer and records it.
//
// The answer must be live at now and the user an active member of its league. A guess of
// the wrong length is rejected with a ValidationError and nothing is stored.
func (s *PuzzleService) SubmitGuess(ctx context.Context, userID, answerID, guess string, now time.Time) (*models.GuessResult, error) {
	if userID == "" {
		return nil, models.NewValidationError("user_id", "user id is required")
	}
	if answerID == "" {
		return nil, models.NewValidationError("answer_id", `must pass field named "answer_id"`)
	}
	if strings.TrimSpace(guess) == "" {
		return nil, models.NewValidationError("guess", `must pass field named "guess" containing guessed word`)
	}

	answers, err := s.store.ListAnswers(ctx, models.AnswerFilter{ID: answerID})
	if err != nil {
		return nil, fmt.Errorf("failed to load answer: %w", err)
	}
	answer, err := only(answers, "answer")
	if err != nil {
		return nil, err
	}
	if !answer.IsActive(now) {
		return nil, models.ErrPuzzleInactive
	}

	league, err := s.league(ctx, answer.LeagueID)
	if err != nil {
		return nil, err
	}

	active := true
	memberships, err := s.store.ListMemberships(ctx, models.MembershipFilter{
		UserID: userID, LeagueID: league.ID, Active: &active,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if len(memberships) == 0 {
		return nil, models.ErrNotMember
	}

	marks, err := CheckGuess(answer.Answer, guess)
	if err != nil {
		return nil, err
	}

	row := &models.Guess{
		ID:               uuid.NewString(),
		UserID:           userID,
		AnswerID:         answer.ID,
		Guess:            NormalizeWord(guess),
		Marks:            marks.String(),
		CorrectPlacement: marks.Exact(),
		CorrectLetters:   marks.Matched(),
		Correct:          marks.Solved(),
		CreatedAt:        now,
	}
	count, err := s.store.InsertGuess(ctx, row, league.MaxGuesses)
	if err != nil {
		return nil, err
	}

	result := &models.GuessResult{
		Result:     row.Marks,
		Correct:    row.Correct,
		Guesses:    count,
		MaxGuesses: league.MaxGuesses,
	}
	if finished(row.Correct, count, league.MaxGuesses) {
		secret := answer.Answer
		result.Answer = &secret
	}
	return result, nil
}

// GuessHistory returns the user's guesses on one answer, oldest first.
func (s *PuzzleService) GuessHistory(ctx context.Context, userID, answerID string) ([]models.Guess, error) {
	if userID == "" {
		return nil, models.NewValidationError("user_id", "user id is required")
	}
	guesses, err := s.store.ListGuesses(ctx, models.GuessFilter{
		UserID:      userID,
		AnswerID:    answerID,
		ListOptions: models.ListOptions{Sort: []string{"created_at"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list guesses: %w", err)
	}
	return guesses, nil
}

func (s *PuzzleService) league(ctx context.Context, id string) (*models.League, error) {
	leagues, err := s.store.ListLeagues(ctx, models.LeagueFilter{ID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to load league %s: %w", id, err)
	}
	return only(leagues, "league")
}

// finished reports whether the secret may be revealed. maxGuesses <= 0 means no limit.
func finished(correct bool, guesses, maxGuesses int) bool {
	return correct || (maxGuesses > 0 && guesses >= maxGuesses)
}
